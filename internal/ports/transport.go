package ports

import (
	"context"

	"github.com/modashop/catalog-gateway/internal/domain/model"
)

// CatalogTransport performs a single raw request against the upstream
// catalog service. Implementations return the response body and HTTP status
// on success, or a typed error the retry layer can classify. Transport
// calls execute outside any lock.
type CatalogTransport interface {
	Fetch(ctx context.Context, endpoint model.Endpoint, params map[string]string) ([]byte, int, error)
}
