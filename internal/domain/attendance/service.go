package attendance

import (
	"context"
)

// AttendanceService defines business logic for attendance submissions
type AttendanceService interface {
	// Mark runs the full submission pipeline: match the captured
	// descriptor, apply cooldown and toggle logic, determine lateness and
	// append the resulting event
	Mark(ctx context.Context, req MarkRequest) (MarkResponse, error)

	// ListEvents retrieves attendance events with filters (admin)
	ListEvents(ctx context.Context, filter EventFilter) (ListEventsResponse, error)
}
