package response

import (
	"errors"
	"net/http"

	"github.com/cmlabs-hris/face-attendance-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/face-attendance-backend-go/internal/domain/auth"
	"github.com/cmlabs-hris/face-attendance-backend-go/internal/domain/identity"
	"github.com/cmlabs-hris/face-attendance-backend-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	// Auth domain errors
	case errors.Is(err, auth.ErrInvalidCredentials):
		Unauthorized(w, err.Error())
	case errors.Is(err, auth.ErrInvalidToken):
		Unauthorized(w, "Invalid or missing token")
	case errors.Is(err, auth.ErrAdminRequired):
		Forbidden(w, "Admin privilege required")

	// Identity domain errors
	case errors.Is(err, identity.ErrFaceNotRecognized):
		Unauthorized(w, "Face not recognized")
	case errors.Is(err, identity.ErrIdentityNotFound):
		NotFound(w, "Identity not found")
	case errors.Is(err, identity.ErrEmployeeCodeExists):
		Conflict(w, "Employee code already exists")
	case errors.Is(err, identity.ErrEmailExists):
		Conflict(w, "Email already registered")

	// Attendance domain errors
	case errors.Is(err, attendance.ErrCooldownActive):
		TooManyRequests(w, "Please wait before marking attendance again")
	case errors.Is(err, attendance.ErrEventNotFound):
		NotFound(w, "Attendance event not found")

	// Default
	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
