package gateway

import (
	"context"
	"fmt"
	"time"

	"github.com/modashop/catalog-gateway/internal/config"
	"github.com/modashop/catalog-gateway/internal/domain/model"
	"github.com/modashop/catalog-gateway/pkg/logger"
	"github.com/throttled/throttled/v2"
	"github.com/throttled/throttled/v2/store/memstore"
)

const upstreamRateLimitKey = "upstream"

// RateLimiter bounds outbound calls to the upstream service within the
// trailing window. Old calls' contribution to the budget expires naturally
// as time passes; there is no background sweep.
type RateLimiter struct {
	limiter *throttled.GCRARateLimiterCtx
	mode    string
	budget  int
	window  time.Duration
	log     logger.Logger
}

// NewRateLimiter builds a limiter from configuration. Returns nil when
// rate limiting is disabled; a nil limiter admits every call.
func NewRateLimiter(cfg config.RateLimit, log logger.Logger) (*RateLimiter, error) {
	if !cfg.Enabled {
		return nil, nil
	}

	store, err := memstore.NewCtx(int(cfg.MaxKeys))
	if err != nil {
		return nil, fmt.Errorf("creating rate limit store: %w", err)
	}

	quota := throttled.RateQuota{
		MaxRate:  throttled.PerDuration(int(cfg.Budget), cfg.Window),
		MaxBurst: int(cfg.Budget) - 1,
	}

	limiter, err := throttled.NewGCRARateLimiterCtx(store, quota)
	if err != nil {
		return nil, fmt.Errorf("creating rate limiter: %w", err)
	}

	return &RateLimiter{
		limiter: limiter,
		mode:    cfg.Mode,
		budget:  int(cfg.Budget),
		window:  cfg.Window,
		log:     log,
	}, nil
}

// Acquire consumes one permit. In reject mode an exhausted budget returns
// model.ErrRateLimited immediately; in wait mode the caller is suspended
// until capacity frees, bounded by the window duration and the context.
func (l *RateLimiter) Acquire(ctx context.Context) error {
	if l == nil {
		return nil
	}

	deadline := time.Now().Add(l.window)

	for {
		limited, result, err := l.limiter.RateLimitCtx(ctx, upstreamRateLimitKey, 1)
		if err != nil {
			// A broken limiter store must not take the upstream path down
			// with it.
			l.log.Warn().Err(err).Msg("rate limiter store error, admitting call")

			return nil
		}

		if !limited {
			return nil
		}

		if l.mode == config.RateLimitModeReject {
			return model.ErrRateLimited
		}

		wait := result.RetryAfter
		if remaining := time.Until(deadline); wait > remaining {
			return model.ErrRateLimited
		}

		timer := time.NewTimer(wait)
		select {
		case <-ctx.Done():
			timer.Stop()

			return ctx.Err()
		case <-timer.C:
		}
	}
}

// Snapshot reports the configured budget and the permits currently in use.
func (l *RateLimiter) Snapshot(ctx context.Context) (budget, used int) {
	if l == nil {
		return 0, 0
	}

	_, result, err := l.limiter.RateLimitCtx(ctx, upstreamRateLimitKey, 0)
	if err != nil {
		return l.budget, 0
	}

	used = result.Limit - result.Remaining
	if used < 0 {
		used = 0
	}

	return l.budget, used
}
