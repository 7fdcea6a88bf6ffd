package runtime

import (
	"context"
	"fmt"
	"net/http"

	"github.com/modashop/catalog-gateway/internal/config"
	"github.com/modashop/catalog-gateway/internal/infrastructure"
	"github.com/modashop/catalog-gateway/internal/ports"
	"github.com/modashop/catalog-gateway/internal/search"
	"github.com/modashop/catalog-gateway/pkg/logger"
)

type (
	infrastructureDep struct {
		httpServer  *http.Server
		cacheClient *infrastructure.KeydbClient
		logger      logger.Logger
	}

	repositories struct {
		secretsRepo   ports.SecretsRepository
		responseCache ports.ResponseCache
	}

	servicesDep struct {
		transport ports.CatalogTransport
		gateway   ports.CatalogGateway
		search    *search.Orchestrator
	}

	dependencies struct {
		config *config.ServiceConfig

		infra infrastructureDep

		repos repositories

		services servicesDep

		cleanupFuncs map[string]func(ctx context.Context) error
	}

	DependencyOption func(*dependencies) error
)

func initializeDependencies(ctx context.Context, opts ...DependencyOption) (*dependencies, error) {
	deps := &dependencies{
		cleanupFuncs: make(map[string]func(ctx context.Context) error),
	}

	allOpts := append(defaultOptions(ctx), opts...)

	for _, opt := range allOpts {
		if err := opt(deps); err != nil {
			return nil, fmt.Errorf("failed to apply dependency option: %w", err)
		}
	}

	return deps, nil
}
