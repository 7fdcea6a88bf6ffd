package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/modashop/catalog-gateway/internal/domain/model"
	"github.com/modashop/catalog-gateway/internal/ports"
	"github.com/modashop/catalog-gateway/internal/search"
	"github.com/modashop/catalog-gateway/pkg/logger"
)

// CatalogHandler serves the read-through catalog API.
type CatalogHandler struct {
	search  *search.Orchestrator
	gateway ports.CatalogGateway
	log     logger.Logger
}

func NewCatalogHandler(searchOrchestrator *search.Orchestrator, gateway ports.CatalogGateway, log logger.Logger) *CatalogHandler {
	return &CatalogHandler{
		search:  searchOrchestrator,
		gateway: gateway,
		log:     log,
	}
}

// Search handles GET /search?q=...&limit=...
func (h *CatalogHandler) Search(w http.ResponseWriter, r *http.Request) {
	rawQuery := strings.TrimSpace(r.URL.Query().Get("q"))
	if rawQuery == "" {
		writeBadRequest(w, r, "query parameter q is required")

		return
	}

	items, resp := h.search.Search(r.Context(), rawQuery, parseLimit(r))
	if !resp.Success {
		writeFailure(w, r, resp)

		return
	}

	writeJSON(w, http.StatusOK, EnvelopedResponse{
		Data: items,
		Meta: newMeta(r, resp),
	})
}

// ListItems handles GET /items with optional filter parameters.
func (h *CatalogHandler) ListItems(w http.ResponseWriter, r *http.Request) {
	filter, err := parseFilter(r)
	if err != nil {
		writeBadRequest(w, r, err.Error())

		return
	}

	items, resp := h.search.ListByFilter(r.Context(), filter, parseLimit(r))
	if !resp.Success {
		writeFailure(w, r, resp)

		return
	}

	writeJSON(w, http.StatusOK, EnvelopedResponse{
		Data: items,
		Meta: newMeta(r, resp),
	})
}

// GetItem handles GET /items/{itemID}.
func (h *CatalogHandler) GetItem(w http.ResponseWriter, r *http.Request) {
	itemID := chi.URLParam(r, "itemID")
	if itemID == "" {
		writeBadRequest(w, r, "item id is required")

		return
	}

	resp := h.gateway.Call(r.Context(), model.EndpointItem, map[string]string{"id": itemID}, model.CacheLongTerm)
	if !resp.Success {
		writeFailure(w, r, resp)

		return
	}

	item, err := model.DecodeCatalogItem(resp.Data)
	if err != nil {
		ctxLog := h.log.WithContext(r.Context())
		ctxLog.Error().Err(err).Str("item_id", itemID).Msg("malformed catalog item payload")

		resp.Success = false
		resp.ErrorKind = model.ErrorKindUpstreamServer
		resp.StatusCode = http.StatusBadGateway

		writeFailure(w, r, resp)

		return
	}

	writeJSON(w, http.StatusOK, EnvelopedResponse{
		Data: item,
		Meta: newMeta(r, resp),
	})
}

// Status handles GET /status with the gateway observability snapshot.
func (h *CatalogHandler) Status(w http.ResponseWriter, r *http.Request) {
	status := h.gateway.Status(r.Context())

	writeJSON(w, http.StatusOK, EnvelopedResponse{
		Data: status,
		Meta: newMeta(r, model.UpstreamResponse{Success: true}),
	})
}

func parseLimit(r *http.Request) int {
	raw := r.URL.Query().Get("limit")
	if raw == "" {
		return 0
	}

	limit, err := strconv.Atoi(raw)
	if err != nil || limit < 0 {
		return 0
	}

	return limit
}

func parseFilter(r *http.Request) (model.SearchFilter, error) {
	query := r.URL.Query()

	filter := model.SearchFilter{
		Category: strings.TrimSpace(query.Get("category")),
		Color:    strings.TrimSpace(query.Get("color")),
		Season:   strings.TrimSpace(query.Get("season")),
	}

	var err error

	if raw := query.Get("price_min"); raw != "" {
		if filter.PriceMin, err = strconv.ParseFloat(raw, 64); err != nil {
			return model.SearchFilter{}, err
		}
	}

	if raw := query.Get("price_max"); raw != "" {
		if filter.PriceMax, err = strconv.ParseFloat(raw, 64); err != nil {
			return model.SearchFilter{}, err
		}
	}

	if raw := query.Get("min_rating"); raw != "" {
		if filter.MinRating, err = strconv.ParseFloat(raw, 64); err != nil {
			return model.SearchFilter{}, err
		}
	}

	if raw := query.Get("in_stock"); raw != "" {
		if filter.InStockOnly, err = strconv.ParseBool(raw); err != nil {
			return model.SearchFilter{}, err
		}
	}

	return filter, nil
}
