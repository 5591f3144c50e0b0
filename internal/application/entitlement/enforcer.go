// Package entitlement evaluates per-operation plan policies. A guarded
// operation declares which plans may invoke it; the enforcer resolves the
// caller's tenant at call time and rejects mismatches with a message naming
// the required plans. The check is pure beyond logging and never mutates
// tenant or plan state.
package entitlement

import (
	"context"
	"errors"
	"fmt"

	"github.com/gestock/backend/internal/domain/identity"
	"github.com/gestock/backend/internal/domain/shared"
	"github.com/gestock/backend/internal/tenantctx"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Policy declares which plans may invoke an operation. Policies are attached
// at registration time, never discovered by reflection. An empty AllowedPlans
// slice means the operation is unrestricted by this enforcer.
type Policy struct {
	// AllowedPlans is evaluated in declaration order; the order is also
	// used when rendering the rejection message.
	AllowedPlans []identity.Plan
	// Message overrides the generated rejection message when non-empty
	Message string
}

// RequirePlans builds a policy allowing the given plans
func RequirePlans(plans ...identity.Plan) Policy {
	return Policy{AllowedPlans: plans}
}

// WithMessage returns a copy of the policy with a custom rejection message
func (p Policy) WithMessage(message string) Policy {
	p.Message = message
	return p
}

// allows reports whether the plan is in the policy's allowed set. An
// unknown or empty plan never matches any entry, so it is always denied.
func (p Policy) allows(plan identity.Plan) bool {
	for _, allowed := range p.AllowedPlans {
		if plan == allowed {
			return true
		}
	}
	return false
}

// rejection renders the user-facing rejection for the given current plan
func (p Policy) rejection(current identity.Plan) *shared.DomainError {
	if p.Message != "" {
		return shared.NewDomainError("PLAN_RESTRICTION", p.Message)
	}
	return shared.NewDomainError("PLAN_RESTRICTION", fmt.Sprintf(
		"This operation requires one of the following plans: %s. Your current plan is %s. Please upgrade your subscription to proceed.",
		identity.JoinPlans(p.AllowedPlans), current,
	))
}

// Enforcer checks policies against the caller's resolved tenant plan
type Enforcer struct {
	tenants identity.TenantRepository
	logger  *zap.Logger
}

// NewEnforcer creates a new entitlement enforcer
func NewEnforcer(tenants identity.TenantRepository, logger *zap.Logger) *Enforcer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Enforcer{tenants: tenants, logger: logger}
}

// Check evaluates the policy against the tenant bound to ctx. It returns nil
// when the operation may proceed, a PLAN_RESTRICTION domain error when the
// tenant's plan is not allowed, and TENANT_NOT_BOUND when no tenant can be
// resolved. Repository failures propagate untouched so the HTTP layer can
// answer with a sanitized 5xx.
func (e *Enforcer) Check(ctx context.Context, policy Policy) error {
	if len(policy.AllowedPlans) == 0 {
		return nil
	}

	tenantID, ok := tenantctx.Current(ctx)
	if !ok {
		// Security-relevant: a tenant-scoped operation reached the
		// enforcer without a bound tenant. Deny rather than guess.
		e.logger.Warn("entitlement check without bound tenant")
		return shared.ErrTenantNotBound
	}

	id, err := uuid.Parse(tenantID)
	if err != nil {
		e.logger.Warn("entitlement check with malformed tenant id",
			zap.String("tenant_id", tenantID))
		return shared.ErrInvalidTenant
	}

	tenant, err := e.tenants.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			e.logger.Warn("entitlement check for unknown tenant",
				zap.String("tenant_id", tenantID))
			return shared.ErrTenantNotBound
		}
		return err
	}

	if !policy.allows(tenant.Plan) {
		e.logger.Info("operation rejected by plan policy",
			zap.String("tenant_id", tenantID),
			zap.String("plan", string(tenant.Plan)),
			zap.String("allowed_plans", identity.JoinPlans(policy.AllowedPlans)),
		)
		return policy.rejection(tenant.Plan)
	}

	return nil
}
