package auth

import (
	"context"
)

// AuthService defines admin authentication
type AuthService interface {
	// Login verifies admin credentials and issues an access token
	Login(ctx context.Context, req LoginRequest) (TokenResponse, error)
}
