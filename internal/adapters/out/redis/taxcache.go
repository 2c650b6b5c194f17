package redis

import (
	"context"
	"strconv"
	"time"

	"cleanmatex/internal/core/domain/model/kernel"
	"cleanmatex/internal/core/ports"
	"cleanmatex/internal/pkg/errs"

	"github.com/redis/go-redis/v9"
)

const defaultTTL = 15 * time.Minute

var _ ports.TaxRateCache = (*TaxRateCache)(nil)

// TaxRateCache is a Redis-backed read-through cache for per-tenant tax
// rates. Entries expire after the configured TTL; a settings change
// invalidates the entry explicitly so the next read refreshes it.
type TaxRateCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewTaxRateCache creates a tax rate cache with the given TTL.
// A non-positive TTL falls back to the default of fifteen minutes.
func NewTaxRateCache(client *redis.Client, ttl time.Duration) *TaxRateCache {
	if ttl <= 0 {
		ttl = defaultTTL
	}
	return &TaxRateCache{client: client, ttl: ttl}
}

// Get returns the cached rate for the tenant. A missing or unparsable key
// is reported as a miss, not an error.
func (c *TaxRateCache) Get(ctx context.Context, tenantID kernel.TenantID) (float64, bool, error) {
	value, err := c.client.Get(ctx, c.key(tenantID)).Result()
	if err == redis.Nil {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, errs.NewDependencyFailureError("tax_cache", err)
	}

	rate, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0, false, nil
	}
	return rate, true, nil
}

// Set stores the rate for the tenant under the cache TTL.
func (c *TaxRateCache) Set(ctx context.Context, tenantID kernel.TenantID, rate float64) error {
	err := c.client.Set(ctx, c.key(tenantID), strconv.FormatFloat(rate, 'f', -1, 64), c.ttl).Err()
	if err != nil {
		return errs.NewDependencyFailureError("tax_cache", err)
	}
	return nil
}

// Invalidate drops the tenant's cached rate.
func (c *TaxRateCache) Invalidate(ctx context.Context, tenantID kernel.TenantID) error {
	if err := c.client.Del(ctx, c.key(tenantID)).Err(); err != nil {
		return errs.NewDependencyFailureError("tax_cache", err)
	}
	return nil
}

func (c *TaxRateCache) key(tenantID kernel.TenantID) string {
	return "tax_rate:" + tenantID.String()
}
