package report

import (
	"github.com/cmlabs-hris/face-attendance-backend-go/internal/pkg/validator"
)

type DailyTotalRequest struct {
	IdentityID string
	Date       *string // defaults to today when nil
}

func (r *DailyTotalRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.IdentityID) {
		errs = append(errs, validator.ValidationError{
			Field:   "identity_id",
			Message: "identity_id is required",
		})
	}

	if r.Date != nil && *r.Date != "" {
		if _, ok := validator.IsValidDate(*r.Date); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "date",
				Message: "date must be in YYYY-MM-DD format",
			})
		}
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type WeeklyBreakdownRequest struct {
	IdentityID string
	AsOf       *string // last day of the window, defaults to today
}

func (r *WeeklyBreakdownRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.IdentityID) {
		errs = append(errs, validator.ValidationError{
			Field:   "identity_id",
			Message: "identity_id is required",
		})
	}

	if r.AsOf != nil && *r.AsOf != "" {
		if _, ok := validator.IsValidDate(*r.AsOf); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "as_of",
				Message: "as_of must be in YYYY-MM-DD format",
			})
		}
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type DailyTotalResponse struct {
	IdentityID   string  `json:"identity_id"`
	Date         string  `json:"date"`
	WorkingHours float64 `json:"working_hours"`
}

// DayHours is one bucket of the weekly breakdown, keyed by a short weekday
// name ("Mon", "Tue", ...).
type DayHours struct {
	Day   string  `json:"day"`
	Date  string  `json:"date"`
	Hours float64 `json:"hours"`
}

type WeeklyBreakdownResponse struct {
	IdentityID string     `json:"identity_id"`
	Days       []DayHours `json:"days"`
}
