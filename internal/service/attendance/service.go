package attendance

import (
	"context"
	"fmt"
	"time"

	"github.com/cmlabs-hris/face-attendance-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/face-attendance-backend-go/internal/domain/identity"
	"github.com/cmlabs-hris/face-attendance-backend-go/internal/pkg/database"
	"github.com/cmlabs-hris/face-attendance-backend-go/internal/pkg/facematch"
	"github.com/cmlabs-hris/face-attendance-backend-go/internal/pkg/metrics"
	"github.com/cmlabs-hris/face-attendance-backend-go/internal/repository/postgresql"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type AttendanceServiceImpl struct {
	db *database.DB
	attendance.EventRepository
	identity.IdentityRepository
	recorder metrics.Recorder
	location *time.Location

	// now and withLock are injectable for tests
	now      func() time.Time
	withLock func(ctx context.Context, identityID string, fn func(ctx context.Context) error) error
}

// Mark implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) Mark(ctx context.Context, req attendance.MarkRequest) (attendance.MarkResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.MarkResponse{}, err
	}

	candidates, err := s.loadCandidates(ctx)
	if err != nil {
		return attendance.MarkResponse{}, err
	}

	s.recorder.RecordMatchAttempt()
	start := time.Now()
	result := facematch.Match(req.CapturedDescriptor, candidates)
	s.recorder.RecordMatchLatency(time.Since(start))

	if !result.Matched {
		s.recorder.RecordMatchMiss()
		return attendance.MarkResponse{}, identity.ErrFaceNotRecognized
	}
	s.recorder.RecordMatchHit()

	ident, err := s.IdentityRepository.GetByID(ctx, result.IdentityID)
	if err != nil {
		return attendance.MarkResponse{}, fmt.Errorf("failed to load matched identity: %w", err)
	}

	location := req.Location
	if location == "" {
		location = attendance.DefaultLocation
	}

	// The cooldown check, toggle resolution and append must observe a
	// consistent event log, so they run under a per-identity lock.
	var event attendance.Event
	err = s.withLock(ctx, ident.ID, func(txCtx context.Context) error {
		now := s.now().In(s.location)

		recent, err := s.EventRepository.MostRecentSince(txCtx, ident.ID, now.Add(-attendance.CooldownWindow))
		if err != nil {
			return err
		}
		if recent != nil {
			s.recorder.RecordCooldownRejection()
			return attendance.ErrCooldownActive
		}

		today := now.Format(attendance.DateLayout)
		lastOfDay, err := s.EventRepository.LastOfDay(txCtx, ident.ID, today)
		if err != nil {
			return err
		}
		state := attendance.ResolveState(lastOfDay)

		isLate := false
		if state == attendance.StateArrived {
			deadline, err := ident.LatenessDeadline(now)
			if err != nil {
				return fmt.Errorf("failed to compute lateness deadline: %w", err)
			}
			isLate = now.After(deadline)
		}

		event = attendance.Event{
			ID:           uuid.NewString(),
			IdentityID:   ident.ID,
			DisplayName:  ident.DisplayName,
			EmployeeCode: ident.EmployeeCode,
			State:        state,
			IsLate:       isLate,
			Location:     location,
			EventDate:    today,
			CreatedAt:    now,
		}
		event, err = s.EventRepository.Append(txCtx, event)
		if err != nil {
			return err
		}

		s.recorder.RecordEventAccepted(string(state))
		return nil
	})
	if err != nil {
		return attendance.MarkResponse{}, err
	}

	return attendance.MarkResponse{
		IdentityID:   event.IdentityID,
		DisplayName:  event.DisplayName,
		EmployeeCode: event.EmployeeCode,
		State:        string(event.State),
		IsLate:       event.IsLate,
		Location:     event.Location,
		EventDate:    event.EventDate,
		MarkedAt:     event.CreatedAt.Format(time.RFC3339),
	}, nil
}

// ListEvents implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) ListEvents(ctx context.Context, filter attendance.EventFilter) (attendance.ListEventsResponse, error) {
	if err := filter.Validate(); err != nil {
		return attendance.ListEventsResponse{}, err
	}

	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit == 0 {
		filter.Limit = 20
	}

	events, total, err := s.EventRepository.List(ctx, filter)
	if err != nil {
		return attendance.ListEventsResponse{}, fmt.Errorf("failed to list events: %w", err)
	}

	responses := make([]attendance.EventResponse, 0, len(events))
	for _, event := range events {
		responses = append(responses, attendance.EventResponse{
			ID:           event.ID,
			IdentityID:   event.IdentityID,
			DisplayName:  event.DisplayName,
			EmployeeCode: event.EmployeeCode,
			State:        string(event.State),
			IsLate:       event.IsLate,
			Location:     event.Location,
			EventDate:    event.EventDate,
			CreatedAt:    event.CreatedAt.Format(time.RFC3339),
		})
	}

	totalPages := int((total + int64(filter.Limit) - 1) / int64(filter.Limit))

	return attendance.ListEventsResponse{
		TotalCount: total,
		Page:       filter.Page,
		Limit:      filter.Limit,
		TotalPages: totalPages,
		Events:     responses,
	}, nil
}

func (s *AttendanceServiceImpl) loadCandidates(ctx context.Context) ([]facematch.Candidate, error) {
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

func NewAttendanceService(
	db *database.DB,
	eventRepo attendance.EventRepository,
	identityRepo identity.IdentityRepository,
	recorder metrics.Recorder,
	location *time.Location,
) attendance.AttendanceService {
	s := &AttendanceServiceImpl{
		db:                 db,
		EventRepository:    eventRepo,
		IdentityRepository: identityRepo,
		recorder:           recorder,
		location:           location,
		now:                time.Now,
	}
	s.withLock = func(ctx context.Context, identityID string, fn func(ctx context.Context) error) error {
		return postgresql.WithIdentityLock(ctx, s.db, identityID, func(tx pgx.Tx) error {
			return fn(context.WithValue(ctx, "tx", tx))
		})
	}
	return s
}
