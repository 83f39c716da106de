package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/cmlabs-hris/face-attendance-backend-go/internal/domain/auth"
	"github.com/cmlabs-hris/face-attendance-backend-go/internal/domain/identity"
	"github.com/cmlabs-hris/face-attendance-backend-go/internal/pkg/jwt"
	"golang.org/x/crypto/bcrypt"
)

type AuthServiceImpl struct {
	identity.IdentityRepository
	jwtService jwt.Service
}

// Login implements auth.AuthService. Lookup failures, wrong passwords and
// non-admin accounts all collapse into the same error so a caller cannot
// probe which emails exist.
func (s *AuthServiceImpl) Login(ctx context.Context, req auth.LoginRequest) (auth.TokenResponse, error) {
	if err := req.Validate(); err != nil {
		return auth.TokenResponse{}, err
	}

	ident, err := s.IdentityRepository.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, identity.ErrIdentityNotFound) {
			return auth.TokenResponse{}, auth.ErrInvalidCredentials
		}
		return auth.TokenResponse{}, fmt.Errorf("failed to look up account: %w", err)
	}

	if ident.Role != identity.RoleAdmin || ident.PasswordHash == nil {
		return auth.TokenResponse{}, auth.ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(*ident.PasswordHash), []byte(req.Password)); err != nil {
		return auth.TokenResponse{}, auth.ErrInvalidCredentials
	}

	email := ""
	if ident.Email != nil {
		email = *ident.Email
	}
	token, expiresAt, err := s.jwtService.GenerateAccessToken(ident.ID, email, ident.Role)
	if err != nil {
		return auth.TokenResponse{}, fmt.Errorf("failed to generate access token: %w", err)
	}

	return auth.TokenResponse{
		AccessToken: token,
		ExpiresAt:   expiresAt,
		DisplayName: ident.DisplayName,
		Role:        string(ident.Role),
	}, nil
}

func NewAuthService(identityRepo identity.IdentityRepository, jwtService jwt.Service) auth.AuthService {
	return &AuthServiceImpl{
		IdentityRepository: identityRepo,
		jwtService:         jwtService,
	}
}
