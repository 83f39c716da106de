package attendance

import (
	"context"
	"time"
)

// EventRepository defines data access methods for the append-only event
// log. Events are never updated or deleted here; administrative cleanup is
// out of scope.
type EventRepository interface {
	// Append inserts a new event
	Append(ctx context.Context, event Event) (Event, error)

	// MostRecentSince retrieves the identity's newest event created at or
	// after since. Returns nil when there is none. Used for the cooldown
	// check: an event exactly the window's age still blocks.
	MostRecentSince(ctx context.Context, identityID string, since time.Time) (*Event, error)

	// LastOfDay retrieves the identity's newest event on the given
	// calendar date. Returns nil when the day has none. Used to resolve
	// the next toggle state.
	LastOfDay(ctx context.Context, identityID string, date string) (*Event, error)

	// ListByDate retrieves all events for one identity on one calendar
	// date, ordered by creation time ascending
	ListByDate(ctx context.Context, identityID string, date string) ([]Event, error)

	// ListRange retrieves all events for one identity with calendar date
	// in [from, to], ordered by creation time ascending
	ListRange(ctx context.Context, identityID string, from string, to string) ([]Event, error)

	// List retrieves events across identities with filters and
	// pagination, newest first
	List(ctx context.Context, filter EventFilter) ([]Event, int64, error)
}
