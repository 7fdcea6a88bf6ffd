package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/modashop/catalog-gateway/internal/adapters/inbound/http/handlers"
	"github.com/modashop/catalog-gateway/internal/adapters/inbound/http/middleware"
	"github.com/modashop/catalog-gateway/internal/config"
	"github.com/modashop/catalog-gateway/internal/ports"
	"github.com/modashop/catalog-gateway/internal/search"
	"github.com/modashop/catalog-gateway/pkg/logger"
)

const baseURL = "/v1"

type RouterConfig struct {
	Search  *search.Orchestrator
	Gateway ports.CatalogGateway
	Config  *config.ServiceConfig
	Logger  logger.Logger
}

func NewRouter(cfg RouterConfig) http.Handler {
	router := chi.NewRouter()

	// Core middlewares - always applied
	router.Use(middleware.RequestID())
	router.Use(chimiddleware.RealIP)
	router.Use(middleware.Recovery(cfg.Logger))
	router.Use(chimiddleware.Timeout(cfg.Config.HTTPServer.WriteTimeout))
	router.Use(middleware.AccessLogger(cfg.Logger))

	handler := handlers.NewCatalogHandler(cfg.Search, cfg.Gateway, cfg.Logger)

	router.Route(baseURL, func(r chi.Router) {
		r.Get("/search", handler.Search)
		r.Get("/items", handler.ListItems)
		r.Get("/items/{itemID}", handler.GetItem)
		r.Get("/status", handler.Status)
	})

	router.Get("/healthz", handlers.Healthz(cfg.Config.App.ServiceName))

	return router
}
