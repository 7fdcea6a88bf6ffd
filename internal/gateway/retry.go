package gateway

import (
	"context"
	"errors"

	"github.com/cenkalti/backoff/v5"
	"github.com/modashop/catalog-gateway/internal/config"
	"github.com/modashop/catalog-gateway/internal/domain/model"
)

type (
	// Retrier wraps a single logical upstream call with bounded retries
	// and exponential backoff. At most maxRetries retries follow the
	// initial attempt; terminal failures stop the sequence immediately.
	Retrier struct {
		maxRetries uint
		backoffCfg config.Backoff
	}

	fetchResult struct {
		payload    []byte
		statusCode int
	}
)

func NewRetrier(maxRetries uint, backoffCfg config.Backoff) *Retrier {
	return &Retrier{
		maxRetries: maxRetries,
		backoffCfg: backoffCfg,
	}
}

// Do runs fn until it succeeds, fails terminally, exhausts the retry
// budget, or the context is cancelled. Pending backoff waits abort
// promptly on cancellation.
func (r *Retrier) Do(ctx context.Context, fn func() ([]byte, int, error)) ([]byte, int, error) {
	expBackoff := backoff.NewExponentialBackOff()
	expBackoff.InitialInterval = r.backoffCfg.BaseDelay
	expBackoff.Multiplier = r.backoffCfg.Multiplier
	expBackoff.RandomizationFactor = r.backoffCfg.Jitter
	expBackoff.MaxInterval = r.backoffCfg.MaxDelay

	operation := func() (fetchResult, error) {
		payload, statusCode, err := fn()
		if err == nil {
			return fetchResult{payload: payload, statusCode: statusCode}, nil
		}

		if isRetryable(err) {
			return fetchResult{statusCode: statusCode}, err
		}

		return fetchResult{statusCode: statusCode}, backoff.Permanent(err)
	}

	result, err := backoff.Retry(
		ctx,
		operation,
		backoff.WithMaxTries(r.maxRetries+1),
		backoff.WithBackOff(expBackoff),
	)

	return result.payload, result.statusCode, err
}

// isRetryable reports whether a further attempt may succeed. Timeouts,
// connection failures and 5xx responses are retryable; 4xx responses,
// validation failures and caller cancellations are terminal.
func isRetryable(err error) bool {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}

	var upstreamErr *model.UpstreamError
	if errors.As(err, &upstreamErr) {
		return upstreamErr.Kind.Retryable()
	}

	return false
}
