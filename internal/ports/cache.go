package ports

import (
	"context"
	"time"
)

type (
	// CacheEntry is a stored upstream payload. Entries are never mutated
	// after creation; a refresh replaces the entry wholesale.
	CacheEntry struct {
		Fingerprint string
		Payload     []byte
		StoredAt    time.Time
		TTL         time.Duration
	}

	// CacheStats is a point-in-time snapshot of cache counters.
	CacheStats struct {
		Size      int
		MaxSize   int
		HitCount  uint64
		MissCount uint64
	}

	// ResponseCache maps a request fingerprint to a previously fetched
	// upstream payload. A lookup never returns an entry whose TTL has
	// elapsed; stale entries are removed lazily on lookup.
	ResponseCache interface {
		// Lookup returns the entry for the fingerprint, or ok=false when
		// absent or expired.
		Lookup(ctx context.Context, fingerprint string) (*CacheEntry, bool, error)

		// Store inserts or replaces the entry for the fingerprint. When the
		// cache is at capacity and the fingerprint is new, the least
		// recently used entry is evicted first.
		Store(ctx context.Context, fingerprint string, payload []byte, ttl time.Duration) error

		// Stats reports the current counters for status reporting. Counter
		// reads never affect recency or eviction.
		Stats(ctx context.Context) CacheStats
	}
)

// Expired reports whether the entry's TTL has elapsed at the given instant.
func (e CacheEntry) Expired(now time.Time) bool {
	return !now.Before(e.StoredAt.Add(e.TTL))
}
