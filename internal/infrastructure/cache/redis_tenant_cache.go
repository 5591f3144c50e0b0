package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/gestock/backend/internal/domain/identity"
	"github.com/gestock/backend/internal/infrastructure/config"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const tenantKeyPrefix = "tenant:"

// RedisTenantCache implements TenantCache using Redis. Suitable for
// multi-instance deployments where the gate's view of a tenant must converge
// across instances within the TTL.
type RedisTenantCache struct {
	client    *redis.Client
	keyPrefix string
}

// NewRedisTenantCache creates a Redis-backed tenant cache and verifies the
// connection
func NewRedisTenantCache(cfg config.RedisConfig) (*RedisTenantCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &RedisTenantCache{client: client, keyPrefix: tenantKeyPrefix}, nil
}

// NewRedisTenantCacheWithClient creates a cache with an existing Redis client
func NewRedisTenantCacheWithClient(client *redis.Client) *RedisTenantCache {
	return &RedisTenantCache{client: client, keyPrefix: tenantKeyPrefix}
}

// Get returns the cached tenant when present
func (c *RedisTenantCache) Get(ctx context.Context, id uuid.UUID) (*identity.Tenant, bool, error) {
	payload, err := c.client.Get(ctx, c.keyPrefix+id.String()).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("failed to read tenant from cache: %w", err)
	}

	var tenant identity.Tenant
	if err := json.Unmarshal(payload, &tenant); err != nil {
		// A corrupt entry behaves like a miss; the next Set overwrites it
		return nil, false, nil
	}
	return &tenant, true, nil
}

// Set stores the tenant with the given TTL
func (c *RedisTenantCache) Set(ctx context.Context, tenant *identity.Tenant, ttl time.Duration) error {
	payload, err := json.Marshal(tenant)
	if err != nil {
		return fmt.Errorf("failed to marshal tenant: %w", err)
	}
	if err := c.client.Set(ctx, c.keyPrefix+tenant.ID.String(), payload, ttl).Err(); err != nil {
		return fmt.Errorf("failed to cache tenant: %w", err)
	}
	return nil
}

// Delete removes the cached tenant
func (c *RedisTenantCache) Delete(ctx context.Context, id uuid.UUID) error {
	if err := c.client.Del(ctx, c.keyPrefix+id.String()).Err(); err != nil {
		return fmt.Errorf("failed to invalidate cached tenant: %w", err)
	}
	return nil
}

// Close closes the underlying Redis client
func (c *RedisTenantCache) Close() error {
	return c.client.Close()
}
