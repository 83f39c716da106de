package identity

import (
	"time"
)

type Role string

const (
	RoleEmployee Role = "employee"
	RoleAdmin    Role = "admin"
)

const (
	// DefaultShiftStart applies when enrollment omits a shift schedule.
	DefaultShiftStart = "09:00"
	// DefaultGraceMinutes applies when enrollment omits a grace period.
	DefaultGraceMinutes = 15
)

type Identity struct {
	ID             string
	DisplayName    string
	EmployeeCode   string
	Email          *string
	PasswordHash   *string
	Role           Role
	FaceDescriptor []float32
	ShiftStart     string // "HH:MM", 24-hour
	GraceMinutes   int
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// LatenessDeadline returns the instant on day after which an arrival counts
// as late: shift start plus the grace period, in day's location.
func (i Identity) LatenessDeadline(day time.Time) (time.Time, error) {
	shift, err := time.Parse("15:04", i.ShiftStart)
	if err != nil {
		return time.Time{}, err
	}

	start := time.Date(day.Year(), day.Month(), day.Day(),
		shift.Hour(), shift.Minute(), 0, 0, day.Location())
	return start.Add(time.Duration(i.GraceMinutes) * time.Minute), nil
}
