package attendance

import "errors"

// Attendance domain errors
var (
	// ErrCooldownActive rejects a submission arriving too soon after the
	// identity's previous accepted event. Retryable after the window.
	ErrCooldownActive = errors.New("cooldown active, please wait before marking again")

	ErrEventNotFound = errors.New("attendance event not found")
)
