package catalog

import (
	"context"

	"github.com/modashop/catalog-gateway/internal/domain/model"
)

// classifyTransportError turns a raw HTTP client error into a classified
// upstream error. Caller cancellation is reported as-is so it is never
// retried or counted against the breaker.
func classifyTransportError(ctx context.Context, err error) error {
	if ctx.Err() != nil {
		return ctx.Err()
	}

	// Timeouts, connection resets, refused connections and DNS failures
	// all land here; they are worth another attempt.
	return model.NewUpstreamError(model.ErrorKindTransientNetwork, 0, err)
}

// classifyStatus maps an HTTP status code to an error kind, or
// ErrorKindNone for success.
func classifyStatus(statusCode int) model.ErrorKind {
	switch {
	case statusCode >= 500:
		return model.ErrorKindUpstreamServer
	case statusCode >= 400:
		return model.ErrorKindUpstreamClient
	default:
		return model.ErrorKindNone
	}
}
