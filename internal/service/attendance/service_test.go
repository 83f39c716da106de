package attendance

import (
	"context"
	"testing"
	"time"

	"github.com/cmlabs-hris/face-attendance-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/face-attendance-backend-go/internal/domain/identity"
	"github.com/cmlabs-hris/face-attendance-backend-go/internal/pkg/facematch"
	"github.com/cmlabs-hris/face-attendance-backend-go/internal/pkg/metrics"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeIdentityRepo struct {
	identities []identity.Identity
}

func (f *fakeIdentityRepo) Create(ctx context.Context, ident identity.Identity) (identity.Identity, error) {
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

type fakeEventRepo struct {
	events []attendance.Event
}

func (f *fakeEventRepo) Append(ctx context.Context, event attendance.Event) (attendance.Event, error) {
	f.events = append(f.events, event)
	return event, nil
}

func (f *fakeEventRepo) MostRecentSince(ctx context.Context, identityID string, since time.Time) (*attendance.Event, error) {
	var newest *attendance.Event
	for i := range f.events {
		e := f.events[i]
		if e.IdentityID == identityID && !e.CreatedAt.Before(since) {
			if newest == nil || e.CreatedAt.After(newest.CreatedAt) {
				newest = &f.events[i]
			}
		}
	}
	return newest, nil
}

func (f *fakeEventRepo) LastOfDay(ctx context.Context, identityID string, date string) (*attendance.Event, error) {
	var newest *attendance.Event
	for i := range f.events {
		e := f.events[i]
		if e.IdentityID == identityID && e.EventDate == date {
			if newest == nil || e.CreatedAt.After(newest.CreatedAt) {
				newest = &f.events[i]
			}
		}
	}
	return newest, nil
}

func (f *fakeEventRepo) ListByDate(ctx context.Context, identityID string, date string) ([]attendance.Event, error) {
	var out []attendance.Event
	for _, e := range f.events {
		if e.IdentityID == identityID && e.EventDate == date {
			out = append(out, e)
		}
	}
	return out, nil
}

func (f *fakeEventRepo) ListRange(ctx context.Context, identityID string, from string, to string) ([]attendance.Event, error) {
	var out []attendance.Event
	for _, e := range f.events {
		if e.IdentityID == identityID && e.EventDate >= from && e.EventDate <= to {
			out = append(out, e)
		}
	}
	return out, nil
}

func (f *fakeEventRepo) List(ctx context.Context, filter attendance.EventFilter) ([]attendance.Event, int64, error) {
	out := make([]attendance.Event, 0, len(f.events))
	for _, e := range f.events {
		if filter.IdentityID != nil && e.IdentityID != *filter.IdentityID {
			continue
		}
		if filter.State != nil && string(e.State) != *filter.State {
			continue
		}
		out = append(out, e)
	}
	return out, int64(len(out)), nil
}

func testDescriptor(fill float32) []float32 {
	d := make([]float32, facematch.DescriptorDim)
	for i := range d {
		d[i] = fill
	}
	return d
}

func newTestService(identRepo *fakeIdentityRepo, eventRepo *fakeEventRepo, now time.Time) *AttendanceServiceImpl {
	s := &AttendanceServiceImpl{
		EventRepository:    eventRepo,
		IdentityRepository: identRepo,
		recorder:           metrics.NewCollector(prometheus.NewRegistry()),
		location:           time.UTC,
		now:                func() time.Time { return now },
	}
	s.withLock = func(ctx context.Context, identityID string, fn func(ctx context.Context) error) error {
		return fn(ctx)
	}
	return s
}

func enrolledIdentity() identity.Identity {
	return identity.Identity{
		ID:             "id-1",
		DisplayName:    "Ana Prasetyo",
		EmployeeCode:   "EMP-001",
		Role:           identity.RoleEmployee,
		FaceDescriptor: testDescriptor(0.1),
		ShiftStart:     "09:00",
		GraceMinutes:   15,
	}
}

func TestMark_UnknownFaceRejected(t *testing.T) {
	identRepo := &fakeIdentityRepo{identities: []identity.Identity{enrolledIdentity()}}
	eventRepo := &fakeEventRepo{}
	svc := newTestService(identRepo, eventRepo, time.Date(2026, 3, 2, 8, 30, 0, 0, time.UTC))

	_, err := svc.Mark(context.Background(), attendance.MarkRequest{
		CapturedDescriptor: testDescriptor(0.9),
	})

	assert.ErrorIs(t, err, identity.ErrFaceNotRecognized)
	assert.Empty(t, eventRepo.events)
}

func TestMark_FirstOfDayIsArrival(t *testing.T) {
	identRepo := &fakeIdentityRepo{identities: []identity.Identity{enrolledIdentity()}}
	eventRepo := &fakeEventRepo{}
	svc := newTestService(identRepo, eventRepo, time.Date(2026, 3, 2, 8, 30, 0, 0, time.UTC))

	resp, err := svc.Mark(context.Background(), attendance.MarkRequest{
		CapturedDescriptor: testDescriptor(0.1),
	})

	require.NoError(t, err)
	assert.Equal(t, "id-1", resp.IdentityID)
	assert.Equal(t, "Ana Prasetyo", resp.DisplayName)
	assert.Equal(t, string(attendance.StateArrived), resp.State)
	assert.False(t, resp.IsLate)
	assert.Equal(t, attendance.DefaultLocation, resp.Location)
	assert.Equal(t, "2026-03-02", resp.EventDate)
	require.Len(t, eventRepo.events, 1)
}

func TestMark_TogglesToDeparture(t *testing.T) {
	identRepo := &fakeIdentityRepo{identities: []identity.Identity{enrolledIdentity()}}
	eventRepo := &fakeEventRepo{}

	morning := time.Date(2026, 3, 2, 8, 30, 0, 0, time.UTC)
	svc := newTestService(identRepo, eventRepo, morning)
	_, err := svc.Mark(context.Background(), attendance.MarkRequest{CapturedDescriptor: testDescriptor(0.1)})
	require.NoError(t, err)

	svc.now = func() time.Time { return morning.Add(8 * time.Hour) }
	resp, err := svc.Mark(context.Background(), attendance.MarkRequest{CapturedDescriptor: testDescriptor(0.1)})

	require.NoError(t, err)
	assert.Equal(t, string(attendance.StateDeparted), resp.State)
	assert.False(t, resp.IsLate, "lateness only applies to arrivals")
}

func TestMark_CooldownRejectsRapidResubmission(t *testing.T) {
	identRepo := &fakeIdentityRepo{identities: []identity.Identity{enrolledIdentity()}}
	eventRepo := &fakeEventRepo{}

	first := time.Date(2026, 3, 2, 8, 30, 0, 0, time.UTC)
	svc := newTestService(identRepo, eventRepo, first)
	_, err := svc.Mark(context.Background(), attendance.MarkRequest{CapturedDescriptor: testDescriptor(0.1)})
	require.NoError(t, err)

	svc.now = func() time.Time { return first.Add(30 * time.Second) }
	_, err = svc.Mark(context.Background(), attendance.MarkRequest{CapturedDescriptor: testDescriptor(0.1)})

	assert.ErrorIs(t, err, attendance.ErrCooldownActive)
	assert.Len(t, eventRepo.events, 1)
}

func TestMark_CooldownBoundaryStillBlocks(t *testing.T) {
	identRepo := &fakeIdentityRepo{identities: []identity.Identity{enrolledIdentity()}}
	eventRepo := &fakeEventRepo{}

	first := time.Date(2026, 3, 2, 8, 30, 0, 0, time.UTC)
	svc := newTestService(identRepo, eventRepo, first)
	_, err := svc.Mark(context.Background(), attendance.MarkRequest{CapturedDescriptor: testDescriptor(0.1)})
	require.NoError(t, err)

	// an event exactly the window's age still blocks
	svc.now = func() time.Time { return first.Add(attendance.CooldownWindow) }
	_, err = svc.Mark(context.Background(), attendance.MarkRequest{CapturedDescriptor: testDescriptor(0.1)})

	assert.ErrorIs(t, err, attendance.ErrCooldownActive)
	assert.Len(t, eventRepo.events, 1)
}

func TestMark_CooldownExpiryAllowsNextEvent(t *testing.T) {
	identRepo := &fakeIdentityRepo{identities: []identity.Identity{enrolledIdentity()}}
	eventRepo := &fakeEventRepo{}

	first := time.Date(2026, 3, 2, 8, 30, 0, 0, time.UTC)
	svc := newTestService(identRepo, eventRepo, first)
	_, err := svc.Mark(context.Background(), attendance.MarkRequest{CapturedDescriptor: testDescriptor(0.1)})
	require.NoError(t, err)

	svc.now = func() time.Time { return first.Add(attendance.CooldownWindow + time.Second) }
	resp, err := svc.Mark(context.Background(), attendance.MarkRequest{CapturedDescriptor: testDescriptor(0.1)})

	require.NoError(t, err)
	assert.Equal(t, string(attendance.StateDeparted), resp.State)
}

func TestMark_LateArrivalAfterGrace(t *testing.T) {
	identRepo := &fakeIdentityRepo{identities: []identity.Identity{enrolledIdentity()}}
	eventRepo := &fakeEventRepo{}

	// shift 09:00 + 15min grace, arriving 09:16
	svc := newTestService(identRepo, eventRepo, time.Date(2026, 3, 2, 9, 16, 0, 0, time.UTC))
	resp, err := svc.Mark(context.Background(), attendance.MarkRequest{CapturedDescriptor: testDescriptor(0.1)})

	require.NoError(t, err)
	assert.Equal(t, string(attendance.StateArrived), resp.State)
	assert.True(t, resp.IsLate)
}

func TestMark_ArrivalExactlyAtDeadlineIsOnTime(t *testing.T) {
	identRepo := &fakeIdentityRepo{identities: []identity.Identity{enrolledIdentity()}}
	eventRepo := &fakeEventRepo{}

	svc := newTestService(identRepo, eventRepo, time.Date(2026, 3, 2, 9, 15, 0, 0, time.UTC))
	resp, err := svc.Mark(context.Background(), attendance.MarkRequest{CapturedDescriptor: testDescriptor(0.1)})

	require.NoError(t, err)
	assert.False(t, resp.IsLate)
}

func TestMark_NewDayResetsToArrival(t *testing.T) {
	identRepo := &fakeIdentityRepo{identities: []identity.Identity{enrolledIdentity()}}
	eventRepo := &fakeEventRepo{
		events: []attendance.Event{{
			ID:         "ev-1",
			IdentityID: "id-1",
			State:      attendance.StateArrived,
			EventDate:  "2026-03-01",
			CreatedAt:  time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC),
		}},
	}

	svc := newTestService(identRepo, eventRepo, time.Date(2026, 3, 2, 8, 30, 0, 0, time.UTC))
	resp, err := svc.Mark(context.Background(), attendance.MarkRequest{CapturedDescriptor: testDescriptor(0.1)})

	require.NoError(t, err)
	assert.Equal(t, string(attendance.StateArrived), resp.State,
		"yesterday's open arrival must not flip today's first event")
}

func TestMark_CustomLocationRecorded(t *testing.T) {
	identRepo := &fakeIdentityRepo{identities: []identity.Identity{enrolledIdentity()}}
	eventRepo := &fakeEventRepo{}

	svc := newTestService(identRepo, eventRepo, time.Date(2026, 3, 2, 8, 30, 0, 0, time.UTC))
	resp, err := svc.Mark(context.Background(), attendance.MarkRequest{
		CapturedDescriptor: testDescriptor(0.1),
		Location:           "Gate B",
	})

	require.NoError(t, err)
	assert.Equal(t, "Gate B", resp.Location)
}

func TestMark_EmptyDescriptorFailsValidation(t *testing.T) {
	identRepo := &fakeIdentityRepo{identities: []identity.Identity{enrolledIdentity()}}
	eventRepo := &fakeEventRepo{}

	svc := newTestService(identRepo, eventRepo, time.Date(2026, 3, 2, 8, 30, 0, 0, time.UTC))
	_, err := svc.Mark(context.Background(), attendance.MarkRequest{})

	assert.Error(t, err)
	assert.Empty(t, eventRepo.events)
}

func TestMark_DenormalizesNameAndCode(t *testing.T) {
	identRepo := &fakeIdentityRepo{identities: []identity.Identity{enrolledIdentity()}}
	eventRepo := &fakeEventRepo{}

	svc := newTestService(identRepo, eventRepo, time.Date(2026, 3, 2, 8, 30, 0, 0, time.UTC))
	_, err := svc.Mark(context.Background(), attendance.MarkRequest{CapturedDescriptor: testDescriptor(0.1)})
	require.NoError(t, err)

	require.Len(t, eventRepo.events, 1)
	assert.Equal(t, "Ana Prasetyo", eventRepo.events[0].DisplayName)
	assert.Equal(t, "EMP-001", eventRepo.events[0].EmployeeCode)
}

func TestListEvents_FiltersByState(t *testing.T) {
	identRepo := &fakeIdentityRepo{}
	eventRepo := &fakeEventRepo{
		events: []attendance.Event{
			{ID: "ev-1", IdentityID: "id-1", State: attendance.StateArrived, EventDate: "2026-03-02"},
			{ID: "ev-2", IdentityID: "id-1", State: attendance.StateDeparted, EventDate: "2026-03-02"},
		},
	}

	svc := newTestService(identRepo, eventRepo, time.Date(2026, 3, 2, 18, 0, 0, 0, time.UTC))
	state := string(attendance.StateArrived)
	resp, err := svc.ListEvents(context.Background(), attendance.EventFilter{State: &state})

	require.NoError(t, err)
	assert.Equal(t, int64(1), resp.TotalCount)
	require.Len(t, resp.Events, 1)
	assert.Equal(t, "ev-1", resp.Events[0].ID)
}

func TestListEvents_RejectsInvalidState(t *testing.T) {
	svc := newTestService(&fakeIdentityRepo{}, &fakeEventRepo{}, time.Now())

	state := "Lingering"
	_, err := svc.ListEvents(context.Background(), attendance.EventFilter{State: &state})

	assert.Error(t, err)
}
