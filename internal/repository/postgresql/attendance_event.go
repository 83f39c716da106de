package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/cmlabs-hris/face-attendance-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/face-attendance-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type attendanceEventRepository struct {
	db *database.DB
}

// Append implements attendance.EventRepository.
func (r *attendanceEventRepository) Append(ctx context.Context, event attendance.Event) (attendance.Event, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO attendance_events (
			id, identity_id, display_name, employee_code,
			state, is_late, location, event_date, created_at
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9
		)
	`

	_, err := q.Exec(ctx, query,
		event.ID,
		event.IdentityID,
		event.DisplayName,
		event.EmployeeCode,
		event.State,
		event.IsLate,
		event.Location,
		event.EventDate,
		event.CreatedAt,
	)
	if err != nil {
		return attendance.Event{}, fmt.Errorf("failed to append attendance event: %w", err)
	}

	return event, nil
}

// MostRecentSince implements attendance.EventRepository.
func (r *attendanceEventRepository) MostRecentSince(ctx context.Context, identityID string, since time.Time) (*attendance.Event, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, identity_id, display_name, employee_code,
			   state, is_late, location, event_date, created_at
		FROM attendance_events
		WHERE identity_id = $1
		  AND created_at >= $2
		ORDER BY created_at DESC
		LIMIT 1
	`

	var event attendance.Event
	err := q.QueryRow(ctx, query, identityID, since).Scan(
		&event.ID, &event.IdentityID, &event.DisplayName, &event.EmployeeCode,
		&event.State, &event.IsLate, &event.Location, &event.EventDate, &event.CreatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get most recent event: %w", err)
	}

	return &event, nil
}

// LastOfDay implements attendance.EventRepository.
func (r *attendanceEventRepository) LastOfDay(ctx context.Context, identityID string, date string) (*attendance.Event, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, identity_id, display_name, employee_code,
			   state, is_late, location, event_date, created_at
		FROM attendance_events
		WHERE identity_id = $1
		  AND event_date = $2
		ORDER BY created_at DESC
		LIMIT 1
	`

	var event attendance.Event
	err := q.QueryRow(ctx, query, identityID, date).Scan(
		&event.ID, &event.IdentityID, &event.DisplayName, &event.EmployeeCode,
		&event.State, &event.IsLate, &event.Location, &event.EventDate, &event.CreatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get last event of day: %w", err)
	}

	return &event, nil
}

// ListByDate implements attendance.EventRepository.
func (r *attendanceEventRepository) ListByDate(ctx context.Context, identityID string, date string) ([]attendance.Event, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, identity_id, display_name, employee_code,
			   state, is_late, location, event_date, created_at
		FROM attendance_events
		WHERE identity_id = $1
		  AND event_date = $2
		ORDER BY created_at ASC
	`

	rows, err := q.Query(ctx, query, identityID, date)
	if err != nil {
		return nil, fmt.Errorf("failed to query events by date: %w", err)
	}
	defer rows.Close()

	return scanEvents(rows)
}

// ListRange implements attendance.EventRepository.
func (r *attendanceEventRepository) ListRange(ctx context.Context, identityID string, from string, to string) ([]attendance.Event, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, identity_id, display_name, employee_code,
			   state, is_late, location, event_date, created_at
		FROM attendance_events
		WHERE identity_id = $1
		  AND event_date >= $2
		  AND event_date <= $3
		ORDER BY created_at ASC
	`

	rows, err := q.Query(ctx, query, identityID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to query events in range: %w", err)
	}
	defer rows.Close()

	return scanEvents(rows)
}

// List implements attendance.EventRepository.
func (r *attendanceEventRepository) List(ctx context.Context, filter attendance.EventFilter) ([]attendance.Event, int64, error) {
	q := GetQuerier(ctx, r.db)

	// Build WHERE clause
	baseWhere := "1=1"
	args := []interface{}{}
	argIdx := 1

	if filter.IdentityID != nil && *filter.IdentityID != "" {
		baseWhere += fmt.Sprintf(" AND identity_id = $%d", argIdx)
		args = append(args, *filter.IdentityID)
		argIdx++
	}

	if filter.Date != nil && *filter.Date != "" {
		baseWhere += fmt.Sprintf(" AND event_date = $%d", argIdx)
		args = append(args, *filter.Date)
		argIdx++
	}

	if filter.StartDate != nil && *filter.StartDate != "" {
		baseWhere += fmt.Sprintf(" AND event_date >= $%d", argIdx)
		args = append(args, *filter.StartDate)
		argIdx++
	}

	if filter.EndDate != nil && *filter.EndDate != "" {
		baseWhere += fmt.Sprintf(" AND event_date <= $%d", argIdx)
		args = append(args, *filter.EndDate)
		argIdx++
	}

	if filter.State != nil && *filter.State != "" {
		baseWhere += fmt.Sprintf(" AND state = $%d", argIdx)
		args = append(args, *filter.State)
		argIdx++
	}

	countQuery := "SELECT COUNT(*) FROM attendance_events WHERE " + baseWhere
	var total int64
	if err := q.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count events: %w", err)
	}

	selectQuery := fmt.Sprintf(`
		SELECT id, identity_id, display_name, employee_code,
			   state, is_late, location, event_date, created_at
		FROM attendance_events
		WHERE %s
		ORDER BY created_at DESC
		LIMIT $%d OFFSET $%d
	`, baseWhere, argIdx, argIdx+1)

	limit := filter.Limit
	if limit == 0 {
		limit = 20
	}
	page := filter.Page
	if page < 1 {
		page = 1
	}
	offset := (page - 1) * limit
	args = append(args, limit, offset)

	rows, err := q.Query(ctx, selectQuery, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query events: %w", err)
	}
	defer rows.Close()

	events, err := scanEvents(rows)
	if err != nil {
		return nil, 0, err
	}

	return events, total, nil
}

func scanEvents(rows pgx.Rows) ([]attendance.Event, error) {
	var events []attendance.Event
	for rows.Next() {
		var event attendance.Event
		err := rows.Scan(
			&event.ID, &event.IdentityID, &event.DisplayName, &event.EmployeeCode,
			&event.State, &event.IsLate, &event.Location, &event.EventDate, &event.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan attendance event: %w", err)
		}
		events = append(events, event)
	}
	return events, nil
}

func NewAttendanceEventRepository(db *database.DB) attendance.EventRepository {
	return &attendanceEventRepository{db: db}
}
