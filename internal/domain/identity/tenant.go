package identity

import (
	"strings"
	"time"

	"github.com/gestock/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// Tenant represents one paying business unit in the multi-tenant system.
// All business data is partitioned by tenant.
type Tenant struct {
	ID        uuid.UUID
	Name      string
	Plan      Plan
	ExpiresAt *time.Time // nil = unlimited (trial or non-expiring legacy account)
	Active    bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewTenant creates a new active tenant on the given plan
func NewTenant(name string, plan Plan) (*Tenant, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, shared.NewDomainError("INVALID_TENANT_NAME", "Tenant name is required")
	}
	if len(name) > 200 {
		return nil, shared.NewDomainError("INVALID_TENANT_NAME", "Tenant name cannot exceed 200 characters")
	}
	if !plan.IsValid() {
		return nil, shared.NewDomainError("INVALID_PLAN", "Unknown subscription plan: "+string(plan))
	}

	now := time.Now()
	return &Tenant{
		ID:        uuid.New(),
		Name:      name,
		Plan:      plan,
		Active:    true,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

// Expired reports whether the tenant's paid period has lapsed at the given
// instant. A nil ExpiresAt never expires.
func (t *Tenant) Expired(now time.Time) bool {
	return t.ExpiresAt != nil && t.ExpiresAt.Before(now)
}

// ExtendSubscription moves the expiry forward by the given duration, starting
// from the current expiry when it is still in the future, otherwise from now.
func (t *Tenant) ExtendSubscription(now time.Time, d time.Duration) {
	base := now
	if t.ExpiresAt != nil && t.ExpiresAt.After(now) {
		base = *t.ExpiresAt
	}
	expires := base.Add(d)
	t.ExpiresAt = &expires
	t.UpdatedAt = now
}

// Rename changes the tenant's display name
func (t *Tenant) Rename(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return shared.NewDomainError("INVALID_TENANT_NAME", "Tenant name is required")
	}
	if len(name) > 200 {
		return shared.NewDomainError("INVALID_TENANT_NAME", "Tenant name cannot exceed 200 characters")
	}
	t.Name = name
	t.UpdatedAt = time.Now()
	return nil
}

// ChangePlan switches the tenant to a different plan
func (t *Tenant) ChangePlan(plan Plan) error {
	if !plan.IsValid() {
		return shared.NewDomainError("INVALID_PLAN", "Unknown subscription plan: "+string(plan))
	}
	t.Plan = plan
	t.UpdatedAt = time.Now()
	return nil
}

// Deactivate marks the tenant as inactive
func (t *Tenant) Deactivate() {
	t.Active = false
	t.UpdatedAt = time.Now()
}
