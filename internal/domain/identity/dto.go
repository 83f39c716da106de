package identity

import (
	"github.com/cmlabs-hris/face-attendance-backend-go/internal/pkg/facematch"
	"github.com/cmlabs-hris/face-attendance-backend-go/internal/pkg/validator"
)

// ========================================
// IDENTITY DTOs
// ========================================

type RegisterRequest struct {
	DisplayName    string    `json:"name"`
	EmployeeCode   string    `json:"employee_code"`
	Email          *string   `json:"email,omitempty"`
	Password       *string   `json:"password,omitempty"`
	FaceDescriptor []float32 `json:"face_descriptor"`
	ShiftStart     *string   `json:"shift_start,omitempty"`
	GraceMinutes   *int      `json:"grace_minutes,omitempty"`
}

func (r *RegisterRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.DisplayName) {
		errs = append(errs, validator.ValidationError{
			Field:   "name",
			Message: "name is required",
		})
	}

	if validator.IsEmpty(r.EmployeeCode) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_code",
			Message: "employee_code is required",
		})
	}

	if len(r.FaceDescriptor) != facematch.DescriptorDim {
		errs = append(errs, validator.ValidationError{
			Field:   "face_descriptor",
			Message: "face_descriptor must contain exactly " + validator.Itoa(facematch.DescriptorDim) + " values",
		})
	}

	if r.Email != nil && !validator.IsValidEmail(*r.Email) {
		errs = append(errs, validator.ValidationError{
			Field:   "email",
			Message: "email format is invalid",
		})
	}

	if r.ShiftStart != nil && !validator.IsValidShiftTime(*r.ShiftStart) {
		errs = append(errs, validator.ValidationError{
			Field:   "shift_start",
			Message: "shift_start must be in HH:MM 24-hour format",
		})
	}

	if r.GraceMinutes != nil && *r.GraceMinutes < 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "grace_minutes",
			Message: "grace_minutes must not be negative",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type VerifyRequest struct {
	CapturedDescriptor []float32 `json:"captured_descriptor"`
}

func (r *VerifyRequest) Validate() error {
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

type UpdateRequest struct {
	ID           string  `json:"-"`
	DisplayName  *string `json:"name,omitempty"`
	Email        *string `json:"email,omitempty"`
	ShiftStart   *string `json:"shift_start,omitempty"`
	GraceMinutes *int    `json:"grace_minutes,omitempty"`
	Role         *string `json:"role,omitempty"`
}

func (r *UpdateRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.ID) {
		errs = append(errs, validator.ValidationError{
			Field:   "id",
			Message: "id is required",
		})
	}

	if r.DisplayName != nil && validator.IsEmpty(*r.DisplayName) {
		errs = append(errs, validator.ValidationError{
			Field:   "name",
			Message: "name must not be empty",
		})
	}

	if r.Email != nil && !validator.IsValidEmail(*r.Email) {
		errs = append(errs, validator.ValidationError{
			Field:   "email",
			Message: "email format is invalid",
		})
	}

	if r.ShiftStart != nil && !validator.IsValidShiftTime(*r.ShiftStart) {
		errs = append(errs, validator.ValidationError{
			Field:   "shift_start",
			Message: "shift_start must be in HH:MM 24-hour format",
		})
	}

	if r.GraceMinutes != nil && *r.GraceMinutes < 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "grace_minutes",
			Message: "grace_minutes must not be negative",
		})
	}

	if r.Role != nil && *r.Role != string(RoleEmployee) && *r.Role != string(RoleAdmin) {
		errs = append(errs, validator.ValidationError{
			Field:   "role",
			Message: "role must be either employee or admin",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type ListFilter struct {
	Search *string
	Role   *string
	Page   int
	Limit  int
}

func (f *ListFilter) Validate() error {
	var errs validator.ValidationErrors

	if f.Role != nil && *f.Role != string(RoleEmployee) && *f.Role != string(RoleAdmin) {
		errs = append(errs, validator.ValidationError{
			Field:   "role",
			Message: "role must be either employee or admin",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// IdentityResponse never carries the face descriptor or password hash.
type IdentityResponse struct {
	ID           string  `json:"id"`
	DisplayName  string  `json:"name"`
	EmployeeCode string  `json:"employee_code"`
	Email        *string `json:"email,omitempty"`
	Role         string  `json:"role"`
	ShiftStart   string  `json:"shift_start"`
	GraceMinutes int     `json:"grace_minutes"`
	CreatedAt    string  `json:"created_at,omitempty"`
	UpdatedAt    string  `json:"updated_at,omitempty"`
}

type VerifyResponse struct {
	DisplayName  string `json:"name"`
	EmployeeCode string `json:"employee_code"`
}

type ListIdentitiesResponse struct {
	TotalCount int64              `json:"total_count"`
	Page       int                `json:"page"`
	Limit      int                `json:"limit"`
	TotalPages int                `json:"total_pages"`
	Identities []IdentityResponse `json:"identities"`
}
