package identity

import (
	"context"
	"testing"
	"time"

	"github.com/cmlabs-hris/face-attendance-backend-go/internal/domain/identity"
	"github.com/cmlabs-hris/face-attendance-backend-go/internal/pkg/facematch"
	"github.com/cmlabs-hris/face-attendance-backend-go/internal/pkg/metrics"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type fakeIdentityRepo struct {
	identities []identity.Identity
}

func (f *fakeIdentityRepo) Create(ctx context.Context, ident identity.Identity) (identity.Identity, error) {
	ident.CreatedAt = time.Now()
	ident.UpdatedAt = ident.CreatedAt
	f.identities = append(f.identities, ident)
	return ident, nil
}

func (f *fakeIdentityRepo) GetByID(ctx context.Context, id string) (identity.Identity, error) {
	for _, ident := range f.identities {
		if ident.ID == id {
			return ident, nil
		}
	}
	return identity.Identity{}, identity.ErrIdentityNotFound
}

func (f *fakeIdentityRepo) GetByEmail(ctx context.Context, email string) (identity.Identity, error) {
	for _, ident := range f.identities {
		if ident.Email != nil && *ident.Email == email {
			return ident, nil
		}
	}
	return identity.Identity{}, identity.ErrIdentityNotFound
}

func (f *fakeIdentityRepo) ListEnrolled(ctx context.Context) ([]identity.Identity, error) {
	return f.identities, nil
}

func (f *fakeIdentityRepo) List(ctx context.Context, filter identity.ListFilter) ([]identity.Identity, int64, error) {
	return f.identities, int64(len(f.identities)), nil
}

func (f *fakeIdentityRepo) Update(ctx context.Context, ident identity.Identity) error {
	for i := range f.identities {
		if f.identities[i].ID == ident.ID {
			f.identities[i] = ident
			return nil
		}
	}
	return identity.ErrIdentityNotFound
}

func testDescriptor(fill float32) []float32 {
	d := make([]float32, facematch.DescriptorDim)
	for i := range d {
		d[i] = fill
	}
	return d
}

func newTestService(repo *fakeIdentityRepo) identity.IdentityService {
	return NewIdentityService(repo, metrics.NewCollector(prometheus.NewRegistry()))
}

func TestRegister_AppliesShiftDefaults(t *testing.T) {
	repo := &fakeIdentityRepo{}
	svc := newTestService(repo)

	resp, err := svc.Register(context.Background(), identity.RegisterRequest{
		DisplayName:    "Budi Santoso",
		EmployeeCode:   "EMP-002",
		FaceDescriptor: testDescriptor(0.2),
	})

	require.NoError(t, err)
	assert.NotEmpty(t, resp.ID)
	assert.Equal(t, identity.DefaultShiftStart, resp.ShiftStart)
	assert.Equal(t, identity.DefaultGraceMinutes, resp.GraceMinutes)
	assert.Equal(t, string(identity.RoleEmployee), resp.Role)
}

func TestRegister_DefaultsEmailFromEmployeeCode(t *testing.T) {
	repo := &fakeIdentityRepo{}
	svc := newTestService(repo)

	resp, err := svc.Register(context.Background(), identity.RegisterRequest{
		DisplayName:    "Budi Santoso",
		EmployeeCode:   "EMP-002",
		FaceDescriptor: testDescriptor(0.2),
	})

	require.NoError(t, err)
	require.NotNil(t, resp.Email)
	assert.Equal(t, "EMP-002@company.com", *resp.Email)
}

func TestRegister_KeepsProvidedEmail(t *testing.T) {
	repo := &fakeIdentityRepo{}
	svc := newTestService(repo)

	email := "budi@corp.example.com"
	resp, err := svc.Register(context.Background(), identity.RegisterRequest{
		DisplayName:    "Budi Santoso",
		EmployeeCode:   "EMP-002",
		Email:          &email,
		FaceDescriptor: testDescriptor(0.2),
	})

	require.NoError(t, err)
	require.NotNil(t, resp.Email)
	assert.Equal(t, "budi@corp.example.com", *resp.Email)
}

func TestRegister_CustomShiftSchedule(t *testing.T) {
	repo := &fakeIdentityRepo{}
	svc := newTestService(repo)

	shift := "07:30"
	grace := 5
	resp, err := svc.Register(context.Background(), identity.RegisterRequest{
		DisplayName:    "Budi Santoso",
		EmployeeCode:   "EMP-002",
		FaceDescriptor: testDescriptor(0.2),
		ShiftStart:     &shift,
		GraceMinutes:   &grace,
	})

	require.NoError(t, err)
	assert.Equal(t, "07:30", resp.ShiftStart)
	assert.Equal(t, 5, resp.GraceMinutes)
}

func TestRegister_HashesPassword(t *testing.T) {
	repo := &fakeIdentityRepo{}
	svc := newTestService(repo)

	email := "admin@example.com"
	password := "s3cret-pass"
	_, err := svc.Register(context.Background(), identity.RegisterRequest{
		DisplayName:    "Admin",
		EmployeeCode:   "EMP-ADM",
		Email:          &email,
		Password:       &password,
		FaceDescriptor: testDescriptor(0.3),
	})

	require.NoError(t, err)
	require.Len(t, repo.identities, 1)
	require.NotNil(t, repo.identities[0].PasswordHash)
	assert.NotEqual(t, password, *repo.identities[0].PasswordHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(*repo.identities[0].PasswordHash), []byte(password)))
}

func TestRegister_RejectsWrongDescriptorLength(t *testing.T) {
	svc := newTestService(&fakeIdentityRepo{})

	_, err := svc.Register(context.Background(), identity.RegisterRequest{
		DisplayName:    "Budi Santoso",
		EmployeeCode:   "EMP-002",
		FaceDescriptor: make([]float32, 64),
	})

	assert.Error(t, err)
}

func TestRegister_ResponseOmitsDescriptor(t *testing.T) {
	svc := newTestService(&fakeIdentityRepo{})

	resp, err := svc.Register(context.Background(), identity.RegisterRequest{
		DisplayName:    "Budi Santoso",
		EmployeeCode:   "EMP-002",
		FaceDescriptor: testDescriptor(0.2),
	})

	require.NoError(t, err)
	assert.Equal(t, "Budi Santoso", resp.DisplayName)
	assert.Equal(t, "EMP-002", resp.EmployeeCode)
}

func TestVerify_MatchesEnrolledIdentity(t *testing.T) {
	repo := &fakeIdentityRepo{identities: []identity.Identity{{
		ID:             "id-1",
		DisplayName:    "Ana Prasetyo",
		EmployeeCode:   "EMP-001",
		FaceDescriptor: testDescriptor(0.1),
	}}}
	svc := newTestService(repo)

	resp, err := svc.Verify(context.Background(), identity.VerifyRequest{
		CapturedDescriptor: testDescriptor(0.1),
	})

	require.NoError(t, err)
	assert.Equal(t, "Ana Prasetyo", resp.DisplayName)
	assert.Equal(t, "EMP-001", resp.EmployeeCode)
}

func TestVerify_UnknownFace(t *testing.T) {
	repo := &fakeIdentityRepo{identities: []identity.Identity{{
		ID:             "id-1",
		FaceDescriptor: testDescriptor(0.1),
	}}}
	svc := newTestService(repo)

	_, err := svc.Verify(context.Background(), identity.VerifyRequest{
		CapturedDescriptor: testDescriptor(0.9),
	})

	assert.ErrorIs(t, err, identity.ErrFaceNotRecognized)
}

func TestVerify_EmptyEnrollment(t *testing.T) {
	svc := newTestService(&fakeIdentityRepo{})

	_, err := svc.Verify(context.Background(), identity.VerifyRequest{
		CapturedDescriptor: testDescriptor(0.1),
	})

	assert.ErrorIs(t, err, identity.ErrFaceNotRecognized)
}

func TestUpdate_AppliesPartialChanges(t *testing.T) {
	repo := &fakeIdentityRepo{identities: []identity.Identity{{
		ID:           "id-1",
		DisplayName:  "Ana Prasetyo",
		EmployeeCode: "EMP-001",
		Role:         identity.RoleEmployee,
		ShiftStart:   "09:00",
		GraceMinutes: 15,
	}}}
	svc := newTestService(repo)

	shift := "08:00"
	resp, err := svc.Update(context.Background(), identity.UpdateRequest{
		ID:         "id-1",
		ShiftStart: &shift,
	})

	require.NoError(t, err)
	assert.Equal(t, "08:00", resp.ShiftStart)
	assert.Equal(t, "Ana Prasetyo", resp.DisplayName, "unset fields keep their values")
	assert.Equal(t, 15, resp.GraceMinutes)
}

func TestUpdate_UnknownIdentity(t *testing.T) {
	svc := newTestService(&fakeIdentityRepo{})

	name := "Nobody"
	_, err := svc.Update(context.Background(), identity.UpdateRequest{ID: "missing", DisplayName: &name})

	assert.ErrorIs(t, err, identity.ErrIdentityNotFound)
}
