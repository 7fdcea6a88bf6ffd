package repos

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/hashicorp/golang-lru/v2/simplelru"
	"github.com/modashop/catalog-gateway/internal/ports"
)

// MemoryCacheRepository is the in-process ResponseCache: an LRU table with
// lazily expired, TTL-bound entries. The clock is injected so expiry is
// deterministically testable.
//
// The critical section covers only map and list operations; nothing in
// here performs I/O under the lock.
type MemoryCacheRepository struct {
	mu    sync.Mutex
	lru   *simplelru.LRU[string, ports.CacheEntry]
	clock ports.Clock

	maxSize   int
	hitCount  atomic.Uint64
	missCount atomic.Uint64
}

var _ ports.ResponseCache = (*MemoryCacheRepository)(nil)

// NewMemoryCacheRepository creates a cache with a fixed capacity.
func NewMemoryCacheRepository(maxSize int, clock ports.Clock) (*MemoryCacheRepository, error) {
	if maxSize <= 0 {
		return nil, fmt.Errorf("cache max size must be positive, got %d", maxSize)
	}

	lru, err := simplelru.NewLRU[string, ports.CacheEntry](maxSize, nil)
	if err != nil {
		return nil, fmt.Errorf("creating lru table: %w", err)
	}

	return &MemoryCacheRepository{
		lru:     lru,
		clock:   clock,
		maxSize: maxSize,
	}, nil
}

// Lookup returns the live entry for the fingerprint. A present-but-expired
// entry behaves as absent and is removed on the spot rather than waiting
// for eviction pressure.
func (r *MemoryCacheRepository) Lookup(_ context.Context, fingerprint string) (*ports.CacheEntry, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	entry, ok := r.lru.Get(fingerprint)
	if !ok {
		r.missCount.Add(1)

		return nil, false, nil
	}

	if entry.Expired(r.clock.Now()) {
		r.lru.Remove(fingerprint)
		r.missCount.Add(1)

		return nil, false, nil
	}

	r.hitCount.Add(1)

	return &entry, true, nil
}

// Store inserts or replaces the entry wholesale. At capacity, a new
// fingerprint evicts the least recently used entry first.
func (r *MemoryCacheRepository) Store(_ context.Context, fingerprint string, payload []byte, ttl time.Duration) error {
	if ttl <= 0 {
		return fmt.Errorf("ttl must be positive, got %s", ttl)
	}

	entry := ports.CacheEntry{
		Fingerprint: fingerprint,
		Payload:     payload,
		StoredAt:    r.clock.Now(),
		TTL:         ttl,
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.lru.Add(fingerprint, entry)

	return nil
}

// Stats reports counters without touching recency.
func (r *MemoryCacheRepository) Stats(_ context.Context) ports.CacheStats {
	r.mu.Lock()
	size := r.lru.Len()
	r.mu.Unlock()

	return ports.CacheStats{
		Size:      size,
		MaxSize:   r.maxSize,
		HitCount:  r.hitCount.Load(),
		MissCount: r.missCount.Load(),
	}
}
