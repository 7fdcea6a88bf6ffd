package repos

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/modashop/catalog-gateway/internal/infrastructure"
	"github.com/modashop/catalog-gateway/internal/ports"
	"github.com/modashop/catalog-gateway/pkg/logger"
	"github.com/redis/go-redis/v9"
)

const (
	responseCacheVersion = "v1"
	responseKeyPrefix    = "catalog:response:" + responseCacheVersion + ":"
)

// KeydbCacheRepository implements the ResponseCache port on a shared
// KeyDB/Redis instance. TTL expiry and memory-pressure eviction are
// delegated to the server; hit and miss counters stay process-local.
type KeydbCacheRepository struct {
	client  *infrastructure.KeydbClient
	clock   ports.Clock
	logger  logger.Logger
	maxSize int

	hitCount  atomic.Uint64
	missCount atomic.Uint64
}

var _ ports.ResponseCache = (*KeydbCacheRepository)(nil)

// NewKeydbCacheRepository creates a new shared-cache repository.
func NewKeydbCacheRepository(client *infrastructure.KeydbClient, clock ports.Clock, maxSize int, log logger.Logger) *KeydbCacheRepository {
	return &KeydbCacheRepository{
		client:  client,
		clock:   clock,
		logger:  log,
		maxSize: maxSize,
	}
}

// Lookup retrieves a cached payload by fingerprint.
func (r *KeydbCacheRepository) Lookup(ctx context.Context, fingerprint string) (*ports.CacheEntry, bool, error) {
	key := r.cacheKey(fingerprint)

	data, err := r.client.Get(ctx, key)
	if err != nil {
		if errors.Is(err, redis.Nil) {
			r.missCount.Add(1)

			return nil, false, nil
		}

		r.missCount.Add(1)

		return nil, false, fmt.Errorf("getting cached response: %w", err)
	}

	r.hitCount.Add(1)

	return &ports.CacheEntry{
		Fingerprint: fingerprint,
		Payload:     data,
		StoredAt:    r.clock.Now(),
	}, true, nil
}

// Store writes the payload under the fingerprint with the given TTL.
func (r *KeydbCacheRepository) Store(ctx context.Context, fingerprint string, payload []byte, ttl time.Duration) error {
	if ttl <= 0 {
		return fmt.Errorf("ttl must be positive, got %s", ttl)
	}

	if err := r.client.Set(ctx, r.cacheKey(fingerprint), payload, ttl); err != nil {
		return fmt.Errorf("setting cached response: %w", err)
	}

	return nil
}

// Stats reports process-local counters and the current server-side entry
// count.
func (r *KeydbCacheRepository) Stats(ctx context.Context) ports.CacheStats {
	size, err := r.client.CountKeys(ctx, responseKeyPrefix+"*")
	if err != nil {
		r.logger.Warn().Err(err).Msg("counting cached responses failed")
	}

	return ports.CacheStats{
		Size:      size,
		MaxSize:   r.maxSize,
		HitCount:  r.hitCount.Load(),
		MissCount: r.missCount.Load(),
	}
}

// IsHealthy checks if the cache is available.
func (r *KeydbCacheRepository) IsHealthy(ctx context.Context) bool {
	return r.client.IsHealthy(ctx)
}

func (r *KeydbCacheRepository) cacheKey(fingerprint string) string {
	return responseKeyPrefix + fingerprint
}
