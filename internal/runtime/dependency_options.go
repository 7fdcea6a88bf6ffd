package runtime

import (
	"context"
	"fmt"
	"net"
	"net/http"

	inboundhttp "github.com/modashop/catalog-gateway/internal/adapters/inbound/http"
	"github.com/modashop/catalog-gateway/internal/adapters/outbound/catalog"
	"github.com/modashop/catalog-gateway/internal/adapters/repos"
	"github.com/modashop/catalog-gateway/internal/config"
	"github.com/modashop/catalog-gateway/internal/gateway"
	"github.com/modashop/catalog-gateway/internal/infrastructure"
	"github.com/modashop/catalog-gateway/internal/ports"
	"github.com/modashop/catalog-gateway/internal/search"
	"github.com/modashop/catalog-gateway/internal/search/lexicon"
	"github.com/modashop/catalog-gateway/pkg/logger"
)

func defaultOptions(ctx context.Context) []DependencyOption {
	return []DependencyOption{
		WithConfig(),
		WithLogger(),
		WithSecretsStorage(ctx),
		WithResponseCache(ctx),
		WithCatalogTransport(),
		WithGateway(),
		WithSearchOrchestrator(),
		WithHTTPServer(),
	}
}

func WithConfig() DependencyOption {
	return func(d *dependencies) error {
		cfg, err := config.Init()
		if err != nil {
			return fmt.Errorf("initializing configuration: %w", err)
		}

		d.config = cfg

		return nil
	}
}

func WithLogger() DependencyOption {
	return func(d *dependencies) error {
		d.infra.logger = logger.New(d.config.Logging.Level, d.config.Logging.Format)

		return nil
	}
}

func WithSecretsStorage(ctx context.Context) DependencyOption {
	return func(d *dependencies) error {
		if !d.config.SecretsStorage.Enabled {
			return nil
		}

		secretsRepo, err := repos.NewVaultRepository(d.config.SecretsStorage)
		if err != nil {
			return fmt.Errorf("creating Vault repository: %w", err)
		}

		d.repos.secretsRepo = secretsRepo

		loader := config.NewLoader(d.config, secretsRepo)
		if err := loader.Load(ctx); err != nil {
			return fmt.Errorf("loading secrets from Vault: %w", err)
		}

		return nil
	}
}

func WithResponseCache(ctx context.Context) DependencyOption {
	return func(d *dependencies) error {
		switch d.config.Cache.Backend {
		case config.CacheBackendKeydb:
			client := infrastructure.NewKeydbClient(d.config.Cache, d.infra.logger)

			if err := client.Ping(ctx); err != nil {
				return fmt.Errorf("connecting to keydb at %s: %w", d.config.Cache.Address, err)
			}

			d.infra.cacheClient = client
			d.cleanupFuncs["keydb"] = func(context.Context) error {
				return client.Close()
			}

			d.repos.responseCache = repos.NewKeydbCacheRepository(
				client,
				ports.SystemClock{},
				int(d.config.Cache.MaxSize),
				d.infra.logger,
			)

		default:
			cache, err := repos.NewMemoryCacheRepository(int(d.config.Cache.MaxSize), ports.SystemClock{})
			if err != nil {
				return fmt.Errorf("creating in-memory response cache: %w", err)
			}

			d.repos.responseCache = cache
		}

		return nil
	}
}

func WithCatalogTransport() DependencyOption {
	return func(d *dependencies) error {
		d.services.transport = catalog.NewClient(d.config.Catalog, d.infra.logger)

		return nil
	}
}

func WithGateway() DependencyOption {
	return func(d *dependencies) error {
		gw, err := gateway.New(gateway.Config{
			Cache:          d.config.Cache,
			RateLimit:      d.config.RateLimit,
			CircuitBreaker: d.config.CircuitBreaker,
			Backoff:        d.config.Backoff,
			MaxRetries:     d.config.Catalog.MaxRetries,
		}, d.repos.responseCache, d.services.transport, d.infra.logger)
		if err != nil {
			return fmt.Errorf("creating catalog gateway: %w", err)
		}

		d.services.gateway = gw

		return nil
	}
}

func WithSearchOrchestrator() DependencyOption {
	return func(d *dependencies) error {
		normalizer := search.NewNormalizer(lexicon.Default())

		d.services.search = search.NewOrchestrator(
			normalizer,
			search.NewRanker(),
			d.services.gateway,
			d.config.Search,
			d.infra.logger,
		)

		return nil
	}
}

func WithHTTPServer() DependencyOption {
	return func(d *dependencies) error {
		router := inboundhttp.NewRouter(inboundhttp.RouterConfig{
			Search:  d.services.search,
			Gateway: d.services.gateway,
			Config:  d.config,
			Logger:  d.infra.logger,
		})

		d.infra.httpServer = &http.Server{
			Addr:         net.JoinHostPort(d.config.HTTPServer.Host, fmt.Sprintf("%d", d.config.HTTPServer.Port)),
			Handler:      router,
			ReadTimeout:  d.config.HTTPServer.ReadTimeout,
			WriteTimeout: d.config.HTTPServer.WriteTimeout,
			IdleTimeout:  d.config.HTTPServer.IdleTimeout,
		}

		return nil
	}
}
