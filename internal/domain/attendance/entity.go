package attendance

import (
	"time"
)

// State is the presence state an accepted event puts the identity in.
type State string

const (
	StateArrived  State = "Arrived"
	StateDeparted State = "Departed"
)

const (
	// CooldownWindow is the minimum gap between two accepted events for
	// one identity. Submissions inside it are rejected, so a burst of
	// recognition frames produces a single event.
	CooldownWindow = 2 * time.Minute

	// DefaultLocation labels events whose submission carried no location.
	DefaultLocation = "Main Lobby"

	// DateLayout is the calendar-date grouping key format. Stored as a
	// plain string so grouping is stable regardless of display time zones.
	DateLayout = "2006-01-02"
)

// Event is one accepted attendance submission. Events are append-only;
// display name and employee code are denormalized at write time so later
// profile edits never rewrite history.
type Event struct {
	ID           string
	IdentityID   string
	DisplayName  string
	EmployeeCode string
	State        State
	IsLate       bool
	Location     string
	EventDate    string // DateLayout, local calendar date
	CreatedAt    time.Time
}

// ResolveState returns the state a newly accepted submission produces,
// given the most recent accepted event of the current calendar day (nil
// when the day has none). The day boundary resets the machine: scoping the
// lookup to today's events is what makes mornings start at Arrived.
func ResolveState(lastOfDay *Event) State {
	if lastOfDay != nil && lastOfDay.State == StateArrived {
		return StateDeparted
	}
	return StateArrived
}
