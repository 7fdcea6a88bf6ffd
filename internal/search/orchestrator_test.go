package search_test

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"testing"

	"github.com/modashop/catalog-gateway/internal/config"
	"github.com/modashop/catalog-gateway/internal/domain/model"
	"github.com/modashop/catalog-gateway/internal/search"
	"github.com/modashop/catalog-gateway/internal/search/lexicon"
	"github.com/modashop/catalog-gateway/pkg/logger"
	"github.com/stretchr/testify/require"
)

// stubGateway records calls and replays a scripted envelope.
type stubGateway struct {
	mu       sync.Mutex
	calls    []stubCall
	response model.UpstreamResponse
	status   model.GatewayStatus
}

type stubCall struct {
	endpoint model.Endpoint
	params   map[string]string
	strategy model.CacheStrategy
}

func (g *stubGateway) Call(_ context.Context, endpoint model.Endpoint, params map[string]string, strategy model.CacheStrategy) model.UpstreamResponse {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.calls = append(g.calls, stubCall{endpoint: endpoint, params: params, strategy: strategy})

	return g.response
}

func (g *stubGateway) Status(context.Context) model.GatewayStatus {
	return g.status
}

func (g *stubGateway) lastCall() stubCall {
	g.mu.Lock()
	defer g.mu.Unlock()

	return g.calls[len(g.calls)-1]
}

func successEnvelope(t *testing.T, page model.CatalogPage) model.UpstreamResponse {
	t.Helper()

	data, err := json.Marshal(page)
	require.NoError(t, err)

	return model.UpstreamResponse{
		Data:       data,
		Success:    true,
		StatusCode: http.StatusOK,
		ElapsedMs:  12,
	}
}

func newOrchestrator(gw *stubGateway) *search.Orchestrator {
	return search.NewOrchestrator(
		search.NewNormalizer(lexicon.Default()),
		search.NewRanker(),
		gw,
		config.Search{DefaultLimit: 10, MaxLimit: 50},
		logger.NewTestLogger(),
	)
}

func summerPage() model.CatalogPage {
	return model.CatalogPage{
		Items: []model.CatalogItem{
			{ID: "sku-1", Name: "Linen Summer Dress", Category: "dresses", Tags: []string{"summer"}, Rating: 4.5, Stock: 12},
			{ID: "sku-2", Name: "Summer Beach Outfit", Category: "sets", Tags: []string{"summer", "beach"}, Rating: 4.2, Stock: 6},
			{ID: "sku-3", Name: "Winter Parka", Category: "jackets", Tags: []string{"winter"}, Rating: 4.8, Stock: 3},
			{ID: "sku-4", Name: "Beach Shorts", Category: "shorts", Tags: []string{"summer", "beach"}, Rating: 3.9, Stock: 20},
		},
		Total: 4,
	}
}

func TestSearch_RanksAndReturnsItems(t *testing.T) {
	t.Parallel()

	gw := &stubGateway{}
	gw.response = successEnvelope(t, summerPage())

	orchestrator := newOrchestrator(gw)

	items, resp := orchestrator.Search(context.Background(), "show me a summer outfit", 10)

	require.True(t, resp.Success)
	require.NotEmpty(t, items)

	// The winter parka matches neither keyword and must not appear.
	for _, item := range items {
		require.NotEqual(t, "sku-3", item.ID)
	}

	call := gw.lastCall()
	require.Equal(t, model.EndpointSearch, call.endpoint)
	require.Equal(t, "summer outfit", call.params["q"])
	require.Equal(t, model.CacheMediumTerm, call.strategy)
}

func TestSearch_VariantQueriesProduceSameUpstreamRequest(t *testing.T) {
	t.Parallel()

	gw := &stubGateway{}
	gw.response = successEnvelope(t, summerPage())

	orchestrator := newOrchestrator(gw)
	ctx := context.Background()

	_, _ = orchestrator.Search(ctx, "summer outfit", 10)
	canonical := gw.lastCall().params["q"]

	variants := []string{
		"sumer outfit",
		"summer clothes",
		"summery outfit",
		"warm weather outfit",
		"I want some summer clothes please",
	}

	for _, variant := range variants {
		_, _ = orchestrator.Search(ctx, variant, 10)
		require.Equal(t, canonical, gw.lastCall().params["q"],
			"variant %q should normalize to the same upstream query", variant)
	}
}

func TestSearch_TypoQueryKeepsTopResults(t *testing.T) {
	t.Parallel()

	gw := &stubGateway{}
	gw.response = successEnvelope(t, summerPage())

	orchestrator := newOrchestrator(gw)
	ctx := context.Background()

	clean, resp := orchestrator.Search(ctx, "summer dress", 3)
	require.True(t, resp.Success)

	// "dress" is misspelled with a transposition the lexicon does not
	// know; ranking has to absorb it.
	typo, resp := orchestrator.Search(ctx, "summer drses", 3)
	require.True(t, resp.Success)

	overlap := 0
	for _, cleanItem := range clean {
		for _, typoItem := range typo {
			if cleanItem.ID == typoItem.ID {
				overlap++
			}
		}
	}
	require.GreaterOrEqual(t, overlap, 2)
}

func TestSearch_FailureReturnsEmptyListAndEnvelope(t *testing.T) {
	t.Parallel()

	gw := &stubGateway{
		response: model.UpstreamResponse{
			Success:    false,
			ErrorKind:  model.ErrorKindCircuitOpen,
			StatusCode: http.StatusServiceUnavailable,
		},
	}

	orchestrator := newOrchestrator(gw)

	items, resp := orchestrator.Search(context.Background(), "summer outfit", 10)

	require.NotNil(t, items)
	require.Empty(t, items)
	require.False(t, resp.Success)
	require.Equal(t, model.ErrorKindCircuitOpen, resp.ErrorKind)
}

func TestSearch_MalformedPayloadBecomesUpstreamError(t *testing.T) {
	t.Parallel()

	gw := &stubGateway{
		response: model.UpstreamResponse{
			Data:       json.RawMessage(`{"items": "not-a-list"}`),
			Success:    true,
			StatusCode: http.StatusOK,
		},
	}

	orchestrator := newOrchestrator(gw)

	items, resp := orchestrator.Search(context.Background(), "summer outfit", 10)

	require.Empty(t, items)
	require.False(t, resp.Success)
	require.Equal(t, model.ErrorKindUpstreamServer, resp.ErrorKind)
	require.Equal(t, http.StatusBadGateway, resp.StatusCode)
}

func TestSearch_LimitClamping(t *testing.T) {
	t.Parallel()

	page := model.CatalogPage{}
	for i := 0; i < 8; i++ {
		page.Items = append(page.Items, model.CatalogItem{
			ID:     string(rune('a' + i)),
			Name:   "Summer Dress",
			Rating: 4.0,
			Stock:  5,
		})
	}
	page.Total = len(page.Items)

	gw := &stubGateway{}
	gw.response = successEnvelope(t, page)

	orchestrator := search.NewOrchestrator(
		search.NewNormalizer(lexicon.Default()),
		search.NewRanker(),
		gw,
		config.Search{DefaultLimit: 3, MaxLimit: 5},
		logger.NewTestLogger(),
	)
	ctx := context.Background()

	// Zero falls back to the default limit.
	items, _ := orchestrator.Search(ctx, "summer dress", 0)
	require.Len(t, items, 3)

	// Oversized requests are capped at the maximum.
	items, _ = orchestrator.Search(ctx, "summer dress", 100)
	require.Len(t, items, 5)
}

func TestListByFilter_CategoryEndpoint(t *testing.T) {
	t.Parallel()

	gw := &stubGateway{}
	gw.response = successEnvelope(t, summerPage())

	orchestrator := newOrchestrator(gw)

	items, resp := orchestrator.ListByFilter(context.Background(), model.SearchFilter{Category: "dresses"}, 10)

	require.True(t, resp.Success)
	require.NotEmpty(t, items)

	call := gw.lastCall()
	require.Equal(t, model.EndpointCategory, call.endpoint)
	require.Equal(t, "dresses", call.params["category"])
	require.Equal(t, model.CacheLongTerm, call.strategy)
}

func TestListByFilter_InvalidFilterRejectedLocally(t *testing.T) {
	t.Parallel()

	gw := &stubGateway{}
	gw.response = successEnvelope(t, summerPage())

	orchestrator := newOrchestrator(gw)

	items, resp := orchestrator.ListByFilter(context.Background(), model.SearchFilter{PriceMin: 80, PriceMax: 20}, 10)

	require.Empty(t, items)
	require.False(t, resp.Success)
	require.Equal(t, model.ErrorKindUpstreamClient, resp.ErrorKind)
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)

	// The gateway must never see an invalid filter.
	gw.mu.Lock()
	defer gw.mu.Unlock()
	require.Empty(t, gw.calls)
}
