package identity

import (
	"context"

	"github.com/google/uuid"
)

// TenantRepository provides access to tenant records.
// Read-only from the authorization pipeline's perspective; writes happen in
// registration and payment flows only.
type TenantRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Tenant, error)
	Save(ctx context.Context, tenant *Tenant) error
	Update(ctx context.Context, tenant *Tenant) error
	// Delete removes a tenant. Used only to compensate a failed
	// registration; tenants are never deleted through the API.
	Delete(ctx context.Context, id uuid.UUID) error
}

// UserRepository is the user directory consulted by the authentication stage
type UserRepository interface {
	FindByEmail(ctx context.Context, email string) (*User, error)
	FindByID(ctx context.Context, id uuid.UUID) (*User, error)
	Save(ctx context.Context, user *User) error
	Update(ctx context.Context, user *User) error
}
