package ports

import (
	"context"

	"github.com/modashop/catalog-gateway/internal/domain/model"
)

// CatalogGateway is the resilient facade over the upstream catalog
// service. Every call is normalized into an UpstreamResponse envelope;
// no transport error escapes this boundary.
type CatalogGateway interface {
	// Call executes one logical upstream request through the cache, the
	// circuit breaker, the rate limiter and the retry orchestrator.
	Call(ctx context.Context, endpoint model.Endpoint, params map[string]string, strategy model.CacheStrategy) model.UpstreamResponse

	// Status reports the gateway's observability snapshot.
	Status(ctx context.Context) model.GatewayStatus
}
