package repos

import (
	"context"
	"fmt"

	"github.com/hashicorp/vault/api"
	"github.com/modashop/catalog-gateway/internal/config"
	"github.com/modashop/catalog-gateway/internal/ports"
)

// VaultRepository implements the SecretsRepository port over the Vault
// HTTP API.
type VaultRepository struct {
	client *api.Client
}

var _ ports.SecretsRepository = (*VaultRepository)(nil)

// NewVaultRepository creates a Vault client for the configured address.
func NewVaultRepository(cfg config.SecretsStorage) (*VaultRepository, error) {
	vaultConfig := api.DefaultConfig()
	vaultConfig.Address = cfg.Address
	vaultConfig.Timeout = cfg.Timeout

	client, err := api.NewClient(vaultConfig)
	if err != nil {
		return nil, fmt.Errorf("creating vault client: %w", err)
	}

	return &VaultRepository{client: client}, nil
}

// SetToken sets the authentication token for subsequent requests.
func (r *VaultRepository) SetToken(v string) {
	r.client.SetToken(v)
}

// GetSecrets retrieves secrets from the specified path.
func (r *VaultRepository) GetSecrets(ctx context.Context, path string) (*api.Secret, error) {
	secret, err := r.client.Logical().ReadWithContext(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("reading secrets at %s: %w", path, err)
	}

	return secret, nil
}

// WriteWithContext writes data to the specified path.
func (r *VaultRepository) WriteWithContext(ctx context.Context, path string, data map[string]any) (*api.Secret, error) {
	secret, err := r.client.Logical().WriteWithContext(ctx, path, data)
	if err != nil {
		return nil, fmt.Errorf("writing to %s: %w", path, err)
	}

	return secret, nil
}
