package search

import (
	"context"
	"net/http"

	"github.com/modashop/catalog-gateway/internal/config"
	"github.com/modashop/catalog-gateway/internal/domain/model"
	"github.com/modashop/catalog-gateway/internal/ports"
	"github.com/modashop/catalog-gateway/pkg/logger"
)

// Orchestrator composes the normalizer, the gateway and the ranker into
// the end-to-end search operation. It never raises on upstream failure;
// callers receive an empty result set plus the error envelope and decide
// on a fallback themselves.
type Orchestrator struct {
	normalizer *Normalizer
	ranker     *Ranker
	gateway    ports.CatalogGateway
	log        logger.Logger
	cfg        config.Search
}

func NewOrchestrator(normalizer *Normalizer, ranker *Ranker, gateway ports.CatalogGateway, cfg config.Search, log logger.Logger) *Orchestrator {
	return &Orchestrator{
		normalizer: normalizer,
		ranker:     ranker,
		gateway:    gateway,
		log:        log,
		cfg:        cfg,
	}
}

// Search normalizes the raw query, fetches candidates through the gateway
// and returns the top matches in ranked order.
func (o *Orchestrator) Search(ctx context.Context, rawQuery string, limit int) ([]model.CatalogItem, model.UpstreamResponse) {
	limit = o.clampLimit(limit)

	normalized := o.normalizer.Normalize(rawQuery)

	ctxLog := o.log.WithContext(ctx)
	ctxLog.Debug().
		Str("raw_query", rawQuery).
		Str("canonical", normalized.CanonicalText).
		Int("keywords", len(normalized.Keywords)).
		Msg("normalized search query")

	params := map[string]string{"q": normalized.CanonicalText}

	resp := o.gateway.Call(ctx, model.EndpointSearch, params, model.CacheMediumTerm)
	if !resp.Success {
		return []model.CatalogItem{}, resp
	}

	page, err := model.DecodeCatalogPage(resp.Data)
	if err != nil {
		ctxLog := o.log.WithContext(ctx)
		ctxLog.Error().Err(err).Msg("malformed catalog search payload")

		resp.Success = false
		resp.ErrorKind = model.ErrorKindUpstreamServer
		resp.StatusCode = http.StatusBadGateway
		resp.Data = nil

		return []model.CatalogItem{}, resp
	}

	matches := o.ranker.Rank(normalized, page.Items, limit)

	items := make([]model.CatalogItem, len(matches))
	for i, match := range matches {
		items[i] = match.Item
	}

	return items, resp
}

// ListByFilter fetches items matching one explicit filter value. The
// filter is validated once here at the boundary.
func (o *Orchestrator) ListByFilter(ctx context.Context, filter model.SearchFilter, limit int) ([]model.CatalogItem, model.UpstreamResponse) {
	limit = o.clampLimit(limit)

	if err := filter.Validate(); err != nil {
		return []model.CatalogItem{}, model.UpstreamResponse{
			Success:    false,
			ErrorKind:  model.ErrorKindUpstreamClient,
			StatusCode: http.StatusBadRequest,
		}
	}

	endpoint := model.EndpointList
	if filter.Category != "" {
		endpoint = model.EndpointCategory
	}

	resp := o.gateway.Call(ctx, endpoint, filter.Params(), model.CacheLongTerm)
	if !resp.Success {
		return []model.CatalogItem{}, resp
	}

	page, err := model.DecodeCatalogPage(resp.Data)
	if err != nil {
		ctxLog := o.log.WithContext(ctx)
		ctxLog.Error().Err(err).Msg("malformed catalog list payload")

		resp.Success = false
		resp.ErrorKind = model.ErrorKindUpstreamServer
		resp.StatusCode = http.StatusBadGateway
		resp.Data = nil

		return []model.CatalogItem{}, resp
	}

	items := page.Items
	if len(items) > limit {
		items = items[:limit]
	}

	return items, resp
}

func (o *Orchestrator) clampLimit(limit int) int {
	if limit <= 0 {
		return int(o.cfg.DefaultLimit)
	}

	if max := int(o.cfg.MaxLimit); max > 0 && limit > max {
		return max
	}

	return limit
}
