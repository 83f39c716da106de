package attendance

import (
	"github.com/cmlabs-hris/face-attendance-backend-go/internal/pkg/validator"
)

// ========================================
// ATTENDANCE DTOs
// ========================================

type MarkRequest struct {
	CapturedDescriptor []float32 `json:"captured_descriptor"`
	Location           string    `json:"location"`
}

func (r *MarkRequest) Validate() error {
	var errs validator.ValidationErrors

	if len(r.CapturedDescriptor) == 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "captured_descriptor",
			Message: "captured_descriptor is required",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type MarkResponse struct {
	IdentityID   string `json:"identity_id"`
	DisplayName  string `json:"name"`
	EmployeeCode string `json:"employee_code"`
	State        string `json:"state"`
	IsLate       bool   `json:"is_late"`
	Location     string `json:"location"`
	EventDate    string `json:"date"`
	MarkedAt     string `json:"marked_at"`
}

type EventFilter struct {
	IdentityID *string
	Date       *string
	StartDate  *string
	EndDate    *string
	State      *string
	Page       int
	Limit      int
}

func (f *EventFilter) Validate() error {
	var errs validator.ValidationErrors

	if f.Date != nil && *f.Date != "" {
		if _, ok := validator.IsValidDate(*f.Date); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "date",
				Message: "date must be in YYYY-MM-DD format",
			})
		}
	}

	if f.StartDate != nil && *f.StartDate != "" {
		if _, ok := validator.IsValidDate(*f.StartDate); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "start_date",
				Message: "start_date must be in YYYY-MM-DD format",
			})
		}
	}

	if f.EndDate != nil && *f.EndDate != "" {
		if _, ok := validator.IsValidDate(*f.EndDate); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "end_date",
				Message: "end_date must be in YYYY-MM-DD format",
			})
		}
	}

	if f.State != nil && *f.State != "" &&
		*f.State != string(StateArrived) && *f.State != string(StateDeparted) {
		errs = append(errs, validator.ValidationError{
			Field:   "state",
			Message: "state must be either Arrived or Departed",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type EventResponse struct {
	ID           string `json:"id"`
	IdentityID   string `json:"identity_id"`
	DisplayName  string `json:"name"`
	EmployeeCode string `json:"employee_code"`
	State        string `json:"state"`
	IsLate       bool   `json:"is_late"`
	Location     string `json:"location"`
	EventDate    string `json:"date"`
	CreatedAt    string `json:"created_at"`
}

type ListEventsResponse struct {
	TotalCount int64           `json:"total_count"`
	Page       int             `json:"page"`
	Limit      int             `json:"limit"`
	TotalPages int             `json:"total_pages"`
	Events     []EventResponse `json:"events"`
}
