package gateway

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/modashop/catalog-gateway/internal/config"
	"github.com/modashop/catalog-gateway/internal/domain/model"
	"github.com/modashop/catalog-gateway/internal/ports"
	"github.com/modashop/catalog-gateway/pkg/circuitbreaker"
	"github.com/modashop/catalog-gateway/pkg/logger"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/singleflight"
)

// statusCancelled mirrors the nginx convention for client-aborted calls.
const statusCancelled = 499

type (
	// Config carries every knob the gateway needs. All values are injected
	// at construction; nothing in the gateway reads the environment.
	Config struct {
		Cache          config.Cache
		RateLimit      config.RateLimit
		CircuitBreaker config.CircuitBreaker
		Backoff        config.Backoff
		MaxRetries     uint
	}

	// Gateway is the resilient read-through facade in front of the
	// upstream catalog service. All shared state (cache, limiter, breaker)
	// hangs off this value; multiple independently configured instances
	// can coexist without cross-contamination.
	Gateway struct {
		cache     ports.ResponseCache
		transport ports.CatalogTransport
		breaker   *circuitbreaker.CircuitBreaker[fetchResult]
		limiter   *RateLimiter
		retrier   *Retrier
		ttls      map[model.CacheStrategy]time.Duration
		group     singleflight.Group
		log       logger.Logger
		tracer    trace.Tracer
	}
)

var _ ports.CatalogGateway = (*Gateway)(nil)

// New constructs a Gateway around the given cache and transport.
func New(cfg Config, cache ports.ResponseCache, transport ports.CatalogTransport, log logger.Logger) (*Gateway, error) {
	limiter, err := NewRateLimiter(cfg.RateLimit, log)
	if err != nil {
		return nil, err
	}

	breaker := circuitbreaker.New[fetchResult](circuitbreaker.Config{
		Name:             "catalog-upstream",
		Enabled:          cfg.CircuitBreaker.Enabled,
		MaxRequests:      cfg.CircuitBreaker.MaxRequests,
		Cooldown:         cfg.CircuitBreaker.Cooldown,
		FailureThreshold: cfg.CircuitBreaker.FailureThreshold,
		IsSuccessful:     isUpstreamSuccess,
	})

	return &Gateway{
		cache:     cache,
		transport: transport,
		breaker:   breaker,
		limiter:   limiter,
		retrier:   NewRetrier(cfg.MaxRetries, cfg.Backoff),
		ttls: map[model.CacheStrategy]time.Duration{
			model.CacheShortTerm:  cfg.Cache.ShortTermTTL,
			model.CacheMediumTerm: cfg.Cache.MediumTermTTL,
			model.CacheLongTerm:   cfg.Cache.LongTermTTL,
		},
		log:    log,
		tracer: otel.Tracer("catalog-gateway"),
	}, nil
}

// Call executes one logical upstream request: fingerprint, cache lookup,
// breaker check, rate permit, retry-wrapped transport call, cache store.
// Error responses are never cached.
func (g *Gateway) Call(ctx context.Context, endpoint model.Endpoint, params map[string]string, strategy model.CacheStrategy) model.UpstreamResponse {
	start := time.Now()

	ctx, span := g.tracer.Start(ctx, "gateway.call",
		trace.WithAttributes(
			attribute.String("catalog.endpoint", string(endpoint)),
			attribute.String("catalog.cache_strategy", strategy.String()),
		))
	defer span.End()

	fingerprint := Fingerprint(endpoint, params)

	if strategy != model.CacheNone {
		entry, hit, err := g.cache.Lookup(ctx, fingerprint)
		if err != nil {
			ctxLog := g.log.WithContext(ctx)
			ctxLog.Warn().Err(err).Str("fingerprint", fingerprint).Msg("cache lookup failed")
		}

		if hit {
			span.SetAttributes(attribute.Bool("catalog.cached", true))

			return model.UpstreamResponse{
				Data:       entry.Payload,
				Success:    true,
				StatusCode: http.StatusOK,
				Cached:     true,
				ElapsedMs:  time.Since(start).Milliseconds(),
			}
		}
	}

	result, err := g.fetch(ctx, fingerprint, endpoint, params, strategy)
	if err != nil {
		ctxLog := g.log.WithContext(ctx)
		ctxLog.Warn().
			Err(err).
			Str("endpoint", string(endpoint)).
			Msg("upstream call failed")

		return errorEnvelope(err, start)
	}

	return model.UpstreamResponse{
		Data:       result.payload,
		Success:    true,
		StatusCode: result.statusCode,
		ElapsedMs:  time.Since(start).Milliseconds(),
	}
}

// Status reports the gateway's observability snapshot.
func (g *Gateway) Status(ctx context.Context) model.GatewayStatus {
	stats := g.cache.Stats(ctx)
	budget, used := g.limiter.Snapshot(ctx)

	return model.GatewayStatus{
		CacheSize:           stats.Size,
		CacheMaxSize:        stats.MaxSize,
		CacheHitCount:       stats.HitCount,
		CacheMissCount:      stats.MissCount,
		RateLimitBudget:     budget,
		RateLimitUsed:       used,
		BreakerState:        g.breaker.State(),
		ConsecutiveFailures: g.breaker.ConsecutiveFailures(),
	}
}

// fetch runs the breaker-guarded, rate-limited, retry-wrapped transport
// call. Concurrent misses for the same fingerprint are collapsed into one
// upstream flight; a whole retry sequence counts as a single failure from
// the breaker's point of view.
func (g *Gateway) fetch(ctx context.Context, fingerprint string, endpoint model.Endpoint, params map[string]string, strategy model.CacheStrategy) (fetchResult, error) {
	value, err, _ := g.group.Do(fingerprint, func() (any, error) {
		result, err := circuitbreaker.Execute(g.breaker, func() (fetchResult, error) {
			if err := g.limiter.Acquire(ctx); err != nil {
				return fetchResult{}, err
			}

			payload, statusCode, err := g.retrier.Do(ctx, func() ([]byte, int, error) {
				return g.transport.Fetch(ctx, endpoint, params)
			})
			if err != nil {
				return fetchResult{statusCode: statusCode}, err
			}

			return fetchResult{payload: payload, statusCode: statusCode}, nil
		})
		if err != nil {
			return fetchResult{}, err
		}

		if strategy != model.CacheNone {
			if ttl := g.ttls[strategy]; ttl > 0 {
				if storeErr := g.cache.Store(ctx, fingerprint, result.payload, ttl); storeErr != nil {
					ctxLog := g.log.WithContext(ctx)
					ctxLog.Warn().Err(storeErr).Str("fingerprint", fingerprint).Msg("cache store failed")
				}
			}
		}

		return result, nil
	})
	if err != nil {
		return fetchResult{}, err
	}

	return value.(fetchResult), nil
}

// isUpstreamSuccess keeps local rejections and caller cancellations from
// feeding the breaker's consecutive-failure counter.
func isUpstreamSuccess(err error) bool {
	if err == nil {
		return true
	}

	return errors.Is(err, model.ErrRateLimited) ||
		errors.Is(err, context.Canceled) ||
		errors.Is(err, context.DeadlineExceeded)
}

// errorEnvelope normalizes any internal failure into the single envelope
// callers consume. No raw transport error crosses this boundary.
func errorEnvelope(err error, start time.Time) model.UpstreamResponse {
	envelope := model.UpstreamResponse{
		Success:   false,
		ElapsedMs: time.Since(start).Milliseconds(),
	}

	switch {
	case errors.Is(err, circuitbreaker.ErrCircuitOpen), errors.Is(err, circuitbreaker.ErrTooManyRequests):
		envelope.ErrorKind = model.ErrorKindCircuitOpen
		envelope.StatusCode = http.StatusServiceUnavailable

	case errors.Is(err, model.ErrRateLimited):
		envelope.ErrorKind = model.ErrorKindRateLimited
		envelope.StatusCode = http.StatusTooManyRequests

	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		envelope.ErrorKind = model.ErrorKindCancelled
		envelope.StatusCode = statusCancelled

	default:
		var upstreamErr *model.UpstreamError
		if errors.As(err, &upstreamErr) {
			envelope.ErrorKind = upstreamErr.Kind
			envelope.StatusCode = upstreamErr.StatusCode

			break
		}

		envelope.ErrorKind = model.ErrorKindUpstreamServer
		envelope.StatusCode = http.StatusBadGateway
	}

	return envelope
}
