package identity

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cmlabs-hris/face-attendance-backend-go/internal/domain/identity"
	"github.com/cmlabs-hris/face-attendance-backend-go/internal/pkg/facematch"
	"github.com/cmlabs-hris/face-attendance-backend-go/internal/pkg/metrics"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"golang.org/x/crypto/bcrypt"
)

type IdentityServiceImpl struct {
	identity.IdentityRepository
	recorder metrics.Recorder
}

// Register implements identity.IdentityService.
func (s *IdentityServiceImpl) Register(ctx context.Context, req identity.RegisterRequest) (identity.IdentityResponse, error) {
	if err := req.Validate(); err != nil {
		return identity.IdentityResponse{}, err
	}

	ident := identity.Identity{
		ID:             uuid.NewString(),
		DisplayName:    req.DisplayName,
		EmployeeCode:   req.EmployeeCode,
		Email:          req.Email,
		Role:           identity.RoleEmployee,
		FaceDescriptor: req.FaceDescriptor,
		ShiftStart:     identity.DefaultShiftStart,
		GraceMinutes:   identity.DefaultGraceMinutes,
	}
	if req.ShiftStart != nil {
		ident.ShiftStart = *req.ShiftStart
	}
	if req.GraceMinutes != nil {
		ident.GraceMinutes = *req.GraceMinutes
	}
	if ident.Email == nil || *ident.Email == "" {
		// Enrollment without an email gets one derived from the code
		derived := req.EmployeeCode + "@company.com"
		ident.Email = &derived
	}
	if req.Password != nil && *req.Password != "" {
		hashed, err := bcrypt.GenerateFromPassword([]byte(*req.Password), bcrypt.DefaultCost)
		if err != nil {
			return identity.IdentityResponse{}, fmt.Errorf("failed to hash password: %w", err)
		}
		hash := string(hashed)
		ident.PasswordHash = &hash
	}

	created, err := s.IdentityRepository.Create(ctx, ident)
	if err != nil {
		// Check for duplicate employee code or email (unique constraint violation)
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			switch pgErr.Code {
			case "23505": // unique_violation
				if pgErr.ConstraintName == "identities_email_key" {
					return identity.IdentityResponse{}, identity.ErrEmailExists
				}
				return identity.IdentityResponse{}, identity.ErrEmployeeCodeExists
			}
		}
		return identity.IdentityResponse{}, fmt.Errorf("failed to register identity: %w", err)
	}

	return toIdentityResponse(created), nil
}

// Verify implements identity.IdentityService.
func (s *IdentityServiceImpl) Verify(ctx context.Context, req identity.VerifyRequest) (identity.VerifyResponse, error) {
	if err := req.Validate(); err != nil {
		return identity.VerifyResponse{}, err
	}

	candidates, err := s.loadCandidates(ctx)
	if err != nil {
		return identity.VerifyResponse{}, err
	}

	s.recorder.RecordMatchAttempt()
	start := time.Now()
	result := facematch.Match(req.CapturedDescriptor, candidates)
	s.recorder.RecordMatchLatency(time.Since(start))

	if !result.Matched {
		s.recorder.RecordMatchMiss()
		return identity.VerifyResponse{}, identity.ErrFaceNotRecognized
	}
	s.recorder.RecordMatchHit()

	ident, err := s.IdentityRepository.GetByID(ctx, result.IdentityID)
	if err != nil {
		return identity.VerifyResponse{}, fmt.Errorf("failed to load matched identity: %w", err)
	}

	return identity.VerifyResponse{
		DisplayName:  ident.DisplayName,
		EmployeeCode: ident.EmployeeCode,
	}, nil
}

// List implements identity.IdentityService.
func (s *IdentityServiceImpl) List(ctx context.Context, filter identity.ListFilter) (identity.ListIdentitiesResponse, error) {
	if err := filter.Validate(); err != nil {
		return identity.ListIdentitiesResponse{}, err
	}

	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit == 0 {
		filter.Limit = 20
	}

	identities, total, err := s.IdentityRepository.List(ctx, filter)
	if err != nil {
		return identity.ListIdentitiesResponse{}, fmt.Errorf("failed to list identities: %w", err)
	}

	responses := make([]identity.IdentityResponse, 0, len(identities))
	for _, ident := range identities {
		responses = append(responses, toIdentityResponse(ident))
	}

	totalPages := int((total + int64(filter.Limit) - 1) / int64(filter.Limit))

	return identity.ListIdentitiesResponse{
		TotalCount: total,
		Page:       filter.Page,
		Limit:      filter.Limit,
		TotalPages: totalPages,
		Identities: responses,
	}, nil
}

// Update implements identity.IdentityService.
func (s *IdentityServiceImpl) Update(ctx context.Context, req identity.UpdateRequest) (identity.IdentityResponse, error) {
	if err := req.Validate(); err != nil {
		return identity.IdentityResponse{}, err
	}

	ident, err := s.IdentityRepository.GetByID(ctx, req.ID)
	if err != nil {
		return identity.IdentityResponse{}, err
	}

	if req.DisplayName != nil {
		ident.DisplayName = *req.DisplayName
	}
	if req.Email != nil {
		ident.Email = req.Email
	}
	if req.ShiftStart != nil {
		ident.ShiftStart = *req.ShiftStart
	}
	if req.GraceMinutes != nil {
		ident.GraceMinutes = *req.GraceMinutes
	}
	if req.Role != nil {
		ident.Role = identity.Role(*req.Role)
	}

	if err := s.IdentityRepository.Update(ctx, ident); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			switch pgErr.Code {
			case "23505": // unique_violation
				return identity.IdentityResponse{}, identity.ErrEmailExists
			}
		}
		return identity.IdentityResponse{}, err
	}

	return toIdentityResponse(ident), nil
}

// loadCandidates builds the matching candidate set from enrolled identities.
func (s *IdentityServiceImpl) loadCandidates(ctx context.Context) ([]facematch.Candidate, error) {
	enrolled, err := s.IdentityRepository.ListEnrolled(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load enrolled identities: %w", err)
	}

	candidates := make([]facematch.Candidate, 0, len(enrolled))
	for _, ident := range enrolled {
		candidates = append(candidates, facematch.Candidate{
			IdentityID: ident.ID,
			Descriptor: ident.FaceDescriptor,
		})
	}
	return candidates, nil
}

func toIdentityResponse(ident identity.Identity) identity.IdentityResponse {
	resp := identity.IdentityResponse{
		ID:           ident.ID,
		DisplayName:  ident.DisplayName,
		EmployeeCode: ident.EmployeeCode,
		Email:        ident.Email,
		Role:         string(ident.Role),
		ShiftStart:   ident.ShiftStart,
		GraceMinutes: ident.GraceMinutes,
	}
	if !ident.CreatedAt.IsZero() {
		resp.CreatedAt = ident.CreatedAt.Format(time.RFC3339)
	}
	if !ident.UpdatedAt.IsZero() {
		resp.UpdatedAt = ident.UpdatedAt.Format(time.RFC3339)
	}
	return resp
}

func NewIdentityService(
	identityRepo identity.IdentityRepository,
	recorder metrics.Recorder,
) identity.IdentityService {
	return &IdentityServiceImpl{
		IdentityRepository: identityRepo,
		recorder:           recorder,
	}
}
