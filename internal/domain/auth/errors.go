package auth

import "errors"

// Auth domain errors
var (
	ErrInvalidCredentials = errors.New("invalid credentials or unauthorized")
	ErrInvalidToken       = errors.New("invalid or missing token")
	ErrAdminRequired      = errors.New("admin privilege required")
)
