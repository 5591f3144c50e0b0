package cache

import (
	"context"
	"sync"
	"time"

	"github.com/gestock/backend/internal/domain/identity"
	"github.com/google/uuid"
)

// TenantCache caches tenant records in front of the repository. The
// subscription gate and the entitlement enforcer read the tenant on every
// guarded request; a short TTL keeps that from turning into one database
// round-trip per request.
type TenantCache interface {
	Get(ctx context.Context, id uuid.UUID) (*identity.Tenant, bool, error)
	Set(ctx context.Context, tenant *identity.Tenant, ttl time.Duration) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// CachedTenantRepository decorates an identity.TenantRepository with a
// read-through cache. Writes invalidate the cached record so the gate never
// honors a stale expiry longer than the TTL after a payment.
type CachedTenantRepository struct {
	inner identity.TenantRepository
	cache TenantCache
	ttl   time.Duration
}

// NewCachedTenantRepository creates a caching decorator around inner
func NewCachedTenantRepository(inner identity.TenantRepository, tenantCache TenantCache, ttl time.Duration) *CachedTenantRepository {
	return &CachedTenantRepository{inner: inner, cache: tenantCache, ttl: ttl}
}

// FindByID returns the cached tenant when fresh, otherwise reads through
func (r *CachedTenantRepository) FindByID(ctx context.Context, id uuid.UUID) (*identity.Tenant, error) {
	if tenant, found, err := r.cache.Get(ctx, id); err == nil && found {
		return tenant, nil
	}

	tenant, err := r.inner.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	// Cache failures are not fatal; the next read just hits the database
	_ = r.cache.Set(ctx, tenant, r.ttl)
	return tenant, nil
}

// Save persists through the inner repository and primes the cache
func (r *CachedTenantRepository) Save(ctx context.Context, tenant *identity.Tenant) error {
	if err := r.inner.Save(ctx, tenant); err != nil {
		return err
	}
	_ = r.cache.Set(ctx, tenant, r.ttl)
	return nil
}

// Update persists through the inner repository and invalidates the cache
func (r *CachedTenantRepository) Update(ctx context.Context, tenant *identity.Tenant) error {
	if err := r.inner.Update(ctx, tenant); err != nil {
		return err
	}
	_ = r.cache.Delete(ctx, tenant.ID)
	return nil
}

// Delete removes the tenant through the inner repository and invalidates the
// cache
func (r *CachedTenantRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if err := r.inner.Delete(ctx, id); err != nil {
		return err
	}
	_ = r.cache.Delete(ctx, id)
	return nil
}

// InMemoryTenantCache is a process-local TenantCache, used in development
// and tests. Entries expire lazily on read.
type InMemoryTenantCache struct {
	mu      sync.RWMutex
	entries map[uuid.UUID]inMemoryEntry
}

type inMemoryEntry struct {
	tenant    identity.Tenant
	expiresAt time.Time
}

// NewInMemoryTenantCache creates an empty in-memory tenant cache
func NewInMemoryTenantCache() *InMemoryTenantCache {
	return &InMemoryTenantCache{entries: make(map[uuid.UUID]inMemoryEntry)}
}

// Get returns the cached tenant when present and unexpired
func (c *InMemoryTenantCache) Get(_ context.Context, id uuid.UUID) (*identity.Tenant, bool, error) {
	c.mu.RLock()
	entry, ok := c.entries[id]
	c.mu.RUnlock()

	if !ok || time.Now().After(entry.expiresAt) {
		return nil, false, nil
	}
	tenant := entry.tenant
	return &tenant, true, nil
}

// Set stores a copy of the tenant with the given TTL
func (c *InMemoryTenantCache) Set(_ context.Context, tenant *identity.Tenant, ttl time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[tenant.ID] = inMemoryEntry{
		tenant:    *tenant,
		expiresAt: time.Now().Add(ttl),
	}
	return nil
}

// Delete removes the cached tenant
func (c *InMemoryTenantCache) Delete(_ context.Context, id uuid.UUID) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, id)
	return nil
}
