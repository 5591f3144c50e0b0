package cache

import (
	"context"
	"testing"
	"time"

	"github.com/gestock/backend/internal/domain/identity"
	"github.com/gestock/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// countingTenantRepository counts FindByID calls to observe read-through
type countingTenantRepository struct {
	tenants map[uuid.UUID]*identity.Tenant
	finds   int
}

func (r *countingTenantRepository) FindByID(_ context.Context, id uuid.UUID) (*identity.Tenant, error) {
	r.finds++
	if tenant, ok := r.tenants[id]; ok {
		copied := *tenant
		return &copied, nil
	}
	return nil, shared.ErrNotFound
}

func (r *countingTenantRepository) Save(_ context.Context, tenant *identity.Tenant) error {
	r.tenants[tenant.ID] = tenant
	return nil
}

func (r *countingTenantRepository) Update(_ context.Context, tenant *identity.Tenant) error {
	if _, ok := r.tenants[tenant.ID]; !ok {
		return shared.ErrNotFound
	}
	r.tenants[tenant.ID] = tenant
	return nil
}

func (r *countingTenantRepository) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := r.tenants[id]; !ok {
		return shared.ErrNotFound
	}
	delete(r.tenants, id)
	return nil
}

func newTestTenant(t *testing.T) *identity.Tenant {
	t.Helper()
	tenant, err := identity.NewTenant("Boutique Awa", identity.PlanBasic)
	require.NoError(t, err)
	return tenant
}

func TestInMemoryTenantCache(t *testing.T) {
	ctx := context.Background()
	tenantCache := NewInMemoryTenantCache()
	tenant := newTestTenant(t)

	t.Run("miss on empty cache", func(t *testing.T) {
		_, found, err := tenantCache.Get(ctx, tenant.ID)
		require.NoError(t, err)
		assert.False(t, found)
	})

	t.Run("hit after set", func(t *testing.T) {
		require.NoError(t, tenantCache.Set(ctx, tenant, time.Minute))

		cached, found, err := tenantCache.Get(ctx, tenant.ID)
		require.NoError(t, err)
		require.True(t, found)
		assert.Equal(t, tenant.ID, cached.ID)
		assert.Equal(t, tenant.Plan, cached.Plan)
	})

	t.Run("expired entry reads as miss", func(t *testing.T) {
		require.NoError(t, tenantCache.Set(ctx, tenant, -time.Second))

		_, found, err := tenantCache.Get(ctx, tenant.ID)
		require.NoError(t, err)
		assert.False(t, found)
	})

	t.Run("delete removes entry", func(t *testing.T) {
		require.NoError(t, tenantCache.Set(ctx, tenant, time.Minute))
		require.NoError(t, tenantCache.Delete(ctx, tenant.ID))

		_, found, err := tenantCache.Get(ctx, tenant.ID)
		require.NoError(t, err)
		assert.False(t, found)
	})
}

func TestCachedTenantRepository_ReadThrough(t *testing.T) {
	ctx := context.Background()
	tenant := newTestTenant(t)
	inner := &countingTenantRepository{tenants: map[uuid.UUID]*identity.Tenant{tenant.ID: tenant}}
	repo := NewCachedTenantRepository(inner, NewInMemoryTenantCache(), time.Minute)

	first, err := repo.FindByID(ctx, tenant.ID)
	require.NoError(t, err)
	second, err := repo.FindByID(ctx, tenant.ID)
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, 1, inner.finds, "second read must be served from cache")
}

func TestCachedTenantRepository_UpdateInvalidates(t *testing.T) {
	ctx := context.Background()
	tenant := newTestTenant(t)
	inner := &countingTenantRepository{tenants: map[uuid.UUID]*identity.Tenant{tenant.ID: tenant}}
	repo := NewCachedTenantRepository(inner, NewInMemoryTenantCache(), time.Minute)

	_, err := repo.FindByID(ctx, tenant.ID)
	require.NoError(t, err)

	require.NoError(t, tenant.ChangePlan(identity.PlanEnterprise))
	require.NoError(t, repo.Update(ctx, tenant))

	refreshed, err := repo.FindByID(ctx, tenant.ID)
	require.NoError(t, err)
	assert.Equal(t, identity.PlanEnterprise, refreshed.Plan)
	assert.Equal(t, 2, inner.finds, "update must invalidate the cached record")
}

func TestCachedTenantRepository_NotFoundPassesThrough(t *testing.T) {
	inner := &countingTenantRepository{tenants: map[uuid.UUID]*identity.Tenant{}}
	repo := NewCachedTenantRepository(inner, NewInMemoryTenantCache(), time.Minute)

	_, err := repo.FindByID(context.Background(), uuid.New())
	assert.ErrorIs(t, err, shared.ErrNotFound)
}
