package entitlement

import (
	"context"
	"errors"
	"testing"

	"github.com/gestock/backend/internal/domain/identity"
	"github.com/gestock/backend/internal/domain/shared"
	"github.com/gestock/backend/internal/tenantctx"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeTenantRepository struct {
	tenants map[uuid.UUID]*identity.Tenant
	err     error
}

func (r *fakeTenantRepository) FindByID(_ context.Context, id uuid.UUID) (*identity.Tenant, error) {
	if r.err != nil {
		return nil, r.err
	}
	tenant, ok := r.tenants[id]
	if !ok {
		return nil, shared.ErrNotFound
	}
	return tenant, nil
}

func (r *fakeTenantRepository) Save(_ context.Context, _ *identity.Tenant) error   { return nil }
func (r *fakeTenantRepository) Update(_ context.Context, _ *identity.Tenant) error { return nil }
func (r *fakeTenantRepository) Delete(_ context.Context, _ uuid.UUID) error        { return nil }

func boundContext(t *testing.T, tenantID string) (context.Context, *tenantctx.Scope) {
	t.Helper()
	ctx, scope := tenantctx.Acquire(context.Background())
	require.NoError(t, tenantctx.Bind(ctx, tenantID))
	return ctx, scope
}

func planTenant(id uuid.UUID, plan identity.Plan) *identity.Tenant {
	return &identity.Tenant{ID: id, Name: "Boutique Centrale", Plan: plan, Active: true}
}

func TestCheckEmptyPolicyAllowsAnyone(t *testing.T) {
	enforcer := NewEnforcer(&fakeTenantRepository{}, zap.NewNop())

	// No tenant bound, no tenant in the repository: still allowed.
	assert.NoError(t, enforcer.Check(context.Background(), Policy{}))
	assert.NoError(t, enforcer.Check(context.Background(), RequirePlans()))
}

func TestCheckAllowedPlan(t *testing.T) {
	id := uuid.New()
	repo := &fakeTenantRepository{tenants: map[uuid.UUID]*identity.Tenant{
		id: planTenant(id, identity.PlanPremium),
	}}
	enforcer := NewEnforcer(repo, zap.NewNop())

	ctx, scope := boundContext(t, id.String())
	defer scope.Release()

	policy := RequirePlans(identity.PlanPremium, identity.PlanEnterprise)
	assert.NoError(t, enforcer.Check(ctx, policy))
}

func TestCheckRejectedPlanGeneratedMessage(t *testing.T) {
	id := uuid.New()
	repo := &fakeTenantRepository{tenants: map[uuid.UUID]*identity.Tenant{
		id: planTenant(id, identity.PlanBasic),
	}}
	enforcer := NewEnforcer(repo, zap.NewNop())

	ctx, scope := boundContext(t, id.String())
	defer scope.Release()

	err := enforcer.Check(ctx, RequirePlans(identity.PlanPremium, identity.PlanEnterprise))
	require.Error(t, err)

	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "PLAN_RESTRICTION", domainErr.Code)
	assert.Contains(t, domainErr.Message, "PREMIUM, ENTERPRISE")
	assert.Contains(t, domainErr.Message, "BASIC")
}

func TestCheckRejectedPlanCustomMessage(t *testing.T) {
	id := uuid.New()
	repo := &fakeTenantRepository{tenants: map[uuid.UUID]*identity.Tenant{
		id: planTenant(id, identity.PlanBasic),
	}}
	enforcer := NewEnforcer(repo, zap.NewNop())

	ctx, scope := boundContext(t, id.String())
	defer scope.Release()

	policy := RequirePlans(identity.PlanEnterprise).WithMessage("Exports are reserved for ENTERPRISE accounts")
	err := enforcer.Check(ctx, policy)
	require.Error(t, err)

	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "Exports are reserved for ENTERPRISE accounts", domainErr.Message)
}

func TestCheckUnknownPlanDenied(t *testing.T) {
	id := uuid.New()
	repo := &fakeTenantRepository{tenants: map[uuid.UUID]*identity.Tenant{
		id: planTenant(id, identity.Plan("LEGACY")),
	}}
	enforcer := NewEnforcer(repo, zap.NewNop())

	ctx, scope := boundContext(t, id.String())
	defer scope.Release()

	err := enforcer.Check(ctx, RequirePlans(identity.PlanBasic, identity.PlanPremium, identity.PlanEnterprise))
	require.Error(t, err)

	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "PLAN_RESTRICTION", domainErr.Code)
}

func TestCheckNoBoundTenantDenied(t *testing.T) {
	enforcer := NewEnforcer(&fakeTenantRepository{}, zap.NewNop())

	err := enforcer.Check(context.Background(), RequirePlans(identity.PlanBasic))
	assert.ErrorIs(t, err, shared.ErrTenantNotBound)
}

func TestCheckMalformedTenantIDDenied(t *testing.T) {
	enforcer := NewEnforcer(&fakeTenantRepository{}, zap.NewNop())

	ctx, scope := boundContext(t, "not-a-uuid")
	defer scope.Release()

	err := enforcer.Check(ctx, RequirePlans(identity.PlanBasic))
	assert.ErrorIs(t, err, shared.ErrInvalidTenant)
}

func TestCheckUnknownTenantDenied(t *testing.T) {
	enforcer := NewEnforcer(&fakeTenantRepository{}, zap.NewNop())

	ctx, scope := boundContext(t, uuid.NewString())
	defer scope.Release()

	err := enforcer.Check(ctx, RequirePlans(identity.PlanBasic))
	assert.ErrorIs(t, err, shared.ErrTenantNotBound)
}

func TestCheckRepositoryFailurePropagates(t *testing.T) {
	boom := errors.New("connection reset")
	enforcer := NewEnforcer(&fakeTenantRepository{err: boom}, zap.NewNop())

	ctx, scope := boundContext(t, uuid.NewString())
	defer scope.Release()

	assert.ErrorIs(t, enforcer.Check(ctx, RequirePlans(identity.PlanBasic)), boom)
}
