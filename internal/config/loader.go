package config

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/hashicorp/vault/api"
	"github.com/kelseyhightower/envconfig"
	"github.com/modashop/catalog-gateway/internal/ports"
)

// Init parses the service configuration from the environment.
func Init() (*ServiceConfig, error) {
	cfg := &ServiceConfig{}

	err := envconfig.Process("", cfg)
	if err != nil {
		return nil, fmt.Errorf("unable to parse service configuration: %w", err)
	}

	if err := cfg.Cache.Validate(); err != nil {
		return nil, fmt.Errorf("invalid cache configuration: %w", err)
	}

	if err := cfg.RateLimit.Validate(); err != nil {
		return nil, fmt.Errorf("invalid rate limit configuration: %w", err)
	}

	return cfg, nil
}

// Loader overlays secrets from Vault on top of the environment-derived
// configuration. Only secret material is loaded here; every other knob
// stays environment-owned.
type Loader struct {
	cfg         *ServiceConfig
	secretsRepo ports.SecretsRepository
}

func NewLoader(cfg *ServiceConfig, secretsRepo ports.SecretsRepository) *Loader {
	return &Loader{
		cfg:         cfg,
		secretsRepo: secretsRepo,
	}
}

// Load authenticates against Vault and applies the stored secrets to the
// configuration. It is a no-op error when secrets storage is disabled.
func (l *Loader) Load(ctx context.Context) error {
	if !l.cfg.SecretsStorage.Enabled {
		return fmt.Errorf("secret storage is not enabled")
	}

	if err := l.authenticateVault(ctx, l.cfg.SecretsStorage); err != nil {
		return fmt.Errorf("failed to authenticate with Vault: %w", err)
	}

	data, err := l.loadSecrets(ctx)
	if err != nil {
		return fmt.Errorf("failed to load secrets from Vault: %w", err)
	}

	if err := l.applySecretsToConfig(data); err != nil {
		return fmt.Errorf("failed to apply secrets to config: %w", err)
	}

	return nil
}

func (l *Loader) authenticateVault(ctx context.Context, cfg SecretsStorage) error {
	switch strings.ToLower(cfg.AuthMethod) {
	case "token":
		if cfg.Token == "" {
			return fmt.Errorf("token is required for token auth method")
		}
		l.secretsRepo.SetToken(cfg.Token)

		return nil

	case "approle":
		if cfg.RoleID == "" || cfg.SecretID == "" {
			return fmt.Errorf("role_id and secret_id are required for approle auth method")
		}

		data := map[string]any{
			"role_id":   cfg.RoleID,
			"secret_id": cfg.SecretID,
		}

		resp, err := l.secretsRepo.WriteWithContext(ctx, "auth/approle/login", data)
		if err != nil {
			return fmt.Errorf("failed to authenticate via approle: %w", err)
		}

		if resp.Auth == nil {
			return fmt.Errorf("no auth info returned from Vault")
		}

		l.secretsRepo.SetToken(resp.Auth.ClientToken)

		return nil

	default:
		return fmt.Errorf("unsupported auth method: %s", cfg.AuthMethod)
	}
}

func (l *Loader) loadSecrets(ctx context.Context) (map[string]any, error) {
	secret, err := l.getSecretsWithRetry(ctx)
	if err != nil {
		return nil, err
	}

	if secret == nil || secret.Data == nil {
		return nil, nil
	}

	result, ok := secret.Data["data"].(map[string]any)
	if !ok {
		return nil, fmt.Errorf("invalid secret format at mount %s, missing 'data' key", l.cfg.SecretsStorage.MountPath)
	}

	return result, nil
}

func (l *Loader) getSecretsWithRetry(ctx context.Context) (*api.Secret, error) {
	path := fmt.Sprintf("apps/data/%s", l.cfg.SecretsStorage.MountPath)

	ctx, cancel := context.WithTimeout(ctx, l.cfg.SecretsStorage.Timeout)
	defer cancel()

	var secret *api.Secret
	var err error

	maxRetries := l.cfg.SecretsStorage.MaxRetries
	for attempt := uint(0); attempt <= maxRetries; attempt++ {
		secret, err = l.secretsRepo.GetSecrets(ctx, path)
		if err == nil {
			break
		}

		if attempt < maxRetries {
			time.Sleep(time.Duration(attempt+1) * time.Second)
		}
	}

	if err != nil {
		return nil, fmt.Errorf("failed to read from path %s after %d retries: %w", path, maxRetries, err)
	}

	return secret, nil
}

func (l *Loader) applySecretsToConfig(data map[string]any) error {
	for key, value := range data {
		strValue, ok := value.(string)
		if !ok || strValue == "" {
			continue
		}

		if err := os.Setenv(key, strValue); err != nil {
			return fmt.Errorf("failed to set environment variable %s: %w", key, err)
		}

		switch key {
		case "CATALOG_API_KEY":
			l.cfg.Catalog.APIKey = strValue
		case "CACHE_PASSWORD":
			l.cfg.Cache.Password = strValue
		}
	}

	return nil
}
