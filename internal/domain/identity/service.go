package identity

import (
	"context"
)

// IdentityService defines business logic for enrollment and matching
type IdentityService interface {
	// Register enrolls a new identity with its face descriptor
	Register(ctx context.Context, req RegisterRequest) (IdentityResponse, error)

	// Verify matches a query descriptor against the enrolled set without
	// recording any attendance event
	Verify(ctx context.Context, req VerifyRequest) (VerifyResponse, error)

	// List retrieves enrolled identities without face descriptors
	List(ctx context.Context, filter ListFilter) (ListIdentitiesResponse, error)

	// Update applies profile changes to one identity
	Update(ctx context.Context, req UpdateRequest) (IdentityResponse, error)
}
