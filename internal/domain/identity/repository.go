package identity

import (
	"context"
)

// IdentityRepository defines data access methods for enrolled identities.
type IdentityRepository interface {
	// Create inserts a new identity. Unique violations on employee code or
	// email surface as pgconn errors for the service to map.
	Create(ctx context.Context, ident Identity) (Identity, error)

	// GetByID retrieves one identity including its face descriptor
	GetByID(ctx context.Context, id string) (Identity, error)

	// GetByEmail retrieves one identity by email, used for admin login
	GetByEmail(ctx context.Context, email string) (Identity, error)

	// ListEnrolled retrieves every identity that has a face descriptor.
	// This is the candidate set for matching.
	ListEnrolled(ctx context.Context) ([]Identity, error)

	// List retrieves identities without descriptors, with pagination
	List(ctx context.Context, filter ListFilter) ([]Identity, int64, error)

	// Update applies profile changes (display name, shift schedule, role)
	Update(ctx context.Context, ident Identity) error
}
