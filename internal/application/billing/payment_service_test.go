package billing

import (
	"context"
	"testing"
	"time"

	"github.com/gestock/backend/internal/domain/identity"
	"github.com/gestock/backend/internal/domain/shared"
	"github.com/gestock/backend/internal/tenantctx"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type stubTenantRepository struct {
	tenant  *identity.Tenant
	updated int
}

func (r *stubTenantRepository) FindByID(_ context.Context, id uuid.UUID) (*identity.Tenant, error) {
	if r.tenant == nil || r.tenant.ID != id {
		return nil, shared.ErrNotFound
	}
	return r.tenant, nil
}

func (r *stubTenantRepository) Save(_ context.Context, _ *identity.Tenant) error { return nil }

func (r *stubTenantRepository) Update(_ context.Context, tenant *identity.Tenant) error {
	r.tenant = tenant
	r.updated++
	return nil
}

func (r *stubTenantRepository) Delete(_ context.Context, _ uuid.UUID) error { return nil }

func boundCtx(t *testing.T, tenantID string) (context.Context, *tenantctx.Scope) {
	t.Helper()
	ctx, scope := tenantctx.Acquire(context.Background())
	require.NoError(t, tenantctx.Bind(ctx, tenantID))
	return ctx, scope
}

func TestConfirmExtendsExpiredTenantFromNow(t *testing.T) {
	tenant, err := identity.NewTenant("Boutique Centrale", identity.PlanBasic)
	require.NoError(t, err)
	past := time.Now().Add(-72 * time.Hour)
	tenant.ExpiresAt = &past

	repo := &stubTenantRepository{tenant: tenant}
	service := NewPaymentService(repo, 30*24*time.Hour, zap.NewNop())

	ctx, scope := boundCtx(t, tenant.ID.String())
	defer scope.Release()

	info, err := service.Confirm(ctx, ConfirmPaymentInput{Reference: "OM-12345"})
	require.NoError(t, err)
	require.NotNil(t, info.ExpiresAt)

	// Restarted from now, not stacked onto the lapsed expiry.
	assert.WithinDuration(t, time.Now().Add(30*24*time.Hour), *info.ExpiresAt, time.Minute)
	assert.False(t, info.Expired)
	assert.Equal(t, 1, repo.updated)
}

func TestConfirmStacksOntoLiveSubscription(t *testing.T) {
	tenant, err := identity.NewTenant("Boutique Centrale", identity.PlanPremium)
	require.NoError(t, err)
	future := time.Now().Add(10 * 24 * time.Hour)
	tenant.ExpiresAt = &future

	repo := &stubTenantRepository{tenant: tenant}
	service := NewPaymentService(repo, 30*24*time.Hour, zap.NewNop())

	ctx, scope := boundCtx(t, tenant.ID.String())
	defer scope.Release()

	info, err := service.Confirm(ctx, ConfirmPaymentInput{Reference: "OM-12345"})
	require.NoError(t, err)
	require.NotNil(t, info.ExpiresAt)
	assert.WithinDuration(t, future.Add(30*24*time.Hour), *info.ExpiresAt, time.Second)
}

func TestConfirmRejectsUnlimitedSubscription(t *testing.T) {
	tenant, err := identity.NewTenant("Boutique Centrale", identity.PlanEnterprise)
	require.NoError(t, err)
	require.Nil(t, tenant.ExpiresAt)

	repo := &stubTenantRepository{tenant: tenant}
	service := NewPaymentService(repo, 30*24*time.Hour, zap.NewNop())

	ctx, scope := boundCtx(t, tenant.ID.String())
	defer scope.Release()

	_, err = service.Confirm(ctx, ConfirmPaymentInput{Reference: "OM-12345"})

	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "PAYMENT_NOT_REQUIRED", domainErr.Code)
	assert.Nil(t, tenant.ExpiresAt, "an unlimited subscription must stay unlimited")
	assert.Zero(t, repo.updated)
}

func TestConfirmWithoutBoundTenant(t *testing.T) {
	service := NewPaymentService(&stubTenantRepository{}, 30*24*time.Hour, zap.NewNop())

	_, err := service.Confirm(context.Background(), ConfirmPaymentInput{Reference: "OM-12345"})
	assert.ErrorIs(t, err, shared.ErrTenantNotBound)
}

func TestConfirmUnknownTenant(t *testing.T) {
	service := NewPaymentService(&stubTenantRepository{}, 30*24*time.Hour, zap.NewNop())

	ctx, scope := boundCtx(t, uuid.NewString())
	defer scope.Release()

	_, err := service.Confirm(ctx, ConfirmPaymentInput{Reference: "OM-12345"})
	assert.ErrorIs(t, err, shared.ErrNotFound)
}
