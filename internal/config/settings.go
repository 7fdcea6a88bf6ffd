package config

import (
	"fmt"
	"time"
)

// Compile time variables are set by -ldflags.
var (
	ServiceVersion string
	CommitSHA      string
)

const (
	Development = 1 << iota
	Sandbox
	Staging
	Production
)

const (
	CacheBackendMemory = "memory"
	CacheBackendKeydb  = "keydb"

	RateLimitModeReject = "reject"
	RateLimitModeWait   = "wait"
)

type (
	ServiceConfig struct {
		App            App            `json:"app"`
		SecretsStorage SecretsStorage `json:"secrets_storage"`
		HTTPServer     HTTPServer     `json:"http_server"`
		Catalog        Catalog        `json:"catalog"`
		Cache          Cache          `json:"cache"`
		RateLimit      RateLimit      `json:"rate_limit"`
		CircuitBreaker CircuitBreaker `json:"circuit_breaker"`
		Backoff        Backoff        `json:"backoff"`
		Search         Search         `json:"search"`
		Logging        Logging        `json:"logging"`
	}

	App struct {
		ServiceName string      `envconfig:"APP_SERVICE_NAME" default:"catalog-gateway" json:"service_name"`
		APIVersion  string      `envconfig:"APP_API_VERSION" default:"v1" json:"api_version"`
		Env         Environment `json:"environment"`
	}

	Environment struct {
		Name string `envconfig:"APP_ENVIRONMENT" default:"development" json:"env"`
	}

	SecretsStorage struct {
		Enabled    bool          `envconfig:"VAULT_ENABLED" default:"false" json:"enabled"`
		Address    string        `envconfig:"VAULT_ADDRESS" default:"http://vault:8200" json:"address"`
		Token      string        `envconfig:"VAULT_TOKEN" default:"" json:"token,omitempty"`
		RoleID     string        `envconfig:"VAULT_ROLE_ID" default:"" json:"role_id,omitempty"`
		SecretID   string        `envconfig:"VAULT_SECRET_ID" default:"" json:"secret_id,omitempty"`
		AuthMethod string        `envconfig:"VAULT_AUTH_METHOD" default:"token" json:"auth_method"`
		MountPath  string        `envconfig:"VAULT_MOUNT_PATH" default:"catalog-gateway" json:"mount_path"`
		Timeout    time.Duration `envconfig:"VAULT_TIMEOUT" default:"30s" json:"timeout"`
		MaxRetries uint          `envconfig:"VAULT_MAX_RETRIES" default:"3" json:"max_retries"`
	}

	HTTPServer struct {
		Host            string        `envconfig:"HTTP_SERVER_HOST" default:"0.0.0.0" json:"host"`
		Port            uint          `envconfig:"HTTP_SERVER_PORT" default:"8088" json:"port"`
		ReadTimeout     time.Duration `envconfig:"HTTP_READ_TIMEOUT" default:"15s" json:"read_timeout"`
		WriteTimeout    time.Duration `envconfig:"HTTP_WRITE_TIMEOUT" default:"15s" json:"write_timeout"`
		IdleTimeout     time.Duration `envconfig:"HTTP_IDLE_TIMEOUT" default:"60s" json:"idle_timeout"`
		ShutdownTimeout time.Duration `envconfig:"HTTP_SHUTDOWN_TIMEOUT" default:"30s" json:"shutdown_timeout"`
	}

	// Catalog configures the upstream catalog service client.
	Catalog struct {
		BaseURL    string        `envconfig:"CATALOG_BASE_URL" default:"https://catalog.internal/v1" json:"base_url"`
		APIKey     string        `envconfig:"CATALOG_API_KEY" default:"" json:"api_key,omitempty"`
		Timeout    time.Duration `envconfig:"CATALOG_TIMEOUT" default:"10s" json:"timeout"`
		MaxRetries uint          `envconfig:"CATALOG_MAX_RETRIES" default:"3" json:"max_retries"`
	}

	Cache struct {
		Backend       string        `envconfig:"CACHE_BACKEND" default:"memory" json:"backend"`
		MaxSize       uint          `envconfig:"CACHE_MAX_SIZE" default:"512" json:"max_size"`
		ShortTermTTL  time.Duration `envconfig:"CACHE_SHORT_TERM_TTL" default:"300s" json:"short_term_ttl"`
		MediumTermTTL time.Duration `envconfig:"CACHE_MEDIUM_TERM_TTL" default:"900s" json:"medium_term_ttl"`
		LongTermTTL   time.Duration `envconfig:"CACHE_LONG_TERM_TTL" default:"3600s" json:"long_term_ttl"`

		Address      string        `envconfig:"CACHE_ADDRESS" default:"keydb:6379" json:"address"`
		Password     string        `envconfig:"CACHE_PASSWORD" default:"" json:"password,omitempty"`
		DB           uint          `envconfig:"CACHE_DB" default:"0" json:"db"`
		PoolSize     uint          `envconfig:"CACHE_POOL_SIZE" default:"10" json:"pool_size"`
		DialTimeout  time.Duration `envconfig:"CACHE_DIAL_TIMEOUT" default:"5s" json:"dial_timeout"`
		ReadTimeout  time.Duration `envconfig:"CACHE_READ_TIMEOUT" default:"3s" json:"read_timeout"`
		WriteTimeout time.Duration `envconfig:"CACHE_WRITE_TIMEOUT" default:"3s" json:"write_timeout"`
	}

	RateLimit struct {
		Enabled bool          `envconfig:"RATE_LIMIT_ENABLED" default:"true" json:"enabled"`
		Budget  uint          `envconfig:"RATE_LIMIT_BUDGET" default:"60" json:"budget"`
		Window  time.Duration `envconfig:"RATE_LIMIT_WINDOW" default:"60s" json:"window"`
		Mode    string        `envconfig:"RATE_LIMIT_MODE" default:"reject" json:"mode"`
		MaxKeys uint          `envconfig:"RATE_LIMIT_MAX_KEYS" default:"64" json:"max_keys"`
	}

	CircuitBreaker struct {
		Enabled          bool          `envconfig:"BREAKER_ENABLED" default:"true" json:"enabled"`
		FailureThreshold uint          `envconfig:"BREAKER_FAILURE_THRESHOLD" default:"5" json:"failure_threshold"`
		Cooldown         time.Duration `envconfig:"BREAKER_COOLDOWN" default:"30s" json:"cooldown"`
		MaxRequests      uint          `envconfig:"BREAKER_MAX_REQUESTS" default:"1" json:"max_requests"`
	}

	Backoff struct {
		BaseDelay  time.Duration `envconfig:"BACKOFF_BASE_DELAY" default:"1s" json:"base_delay"`
		Multiplier float64       `envconfig:"BACKOFF_MULTIPLIER" default:"2.0" json:"multiplier"`
		Jitter     float64       `envconfig:"BACKOFF_JITTER" default:"0.3" json:"jitter"`
		MaxDelay   time.Duration `envconfig:"BACKOFF_MAX_DELAY" default:"10s" json:"max_delay"`
	}

	Search struct {
		DefaultLimit uint `envconfig:"SEARCH_DEFAULT_LIMIT" default:"10" json:"default_limit"`
		MaxLimit     uint `envconfig:"SEARCH_MAX_LIMIT" default:"50" json:"max_limit"`
	}

	Logging struct {
		Level  string `envconfig:"LOG_LEVEL" default:"info" json:"level"`
		Format string `envconfig:"LOG_FORMAT" default:"json" json:"format"`
	}
)

func (c *ServiceConfig) GetEnvironment() int {
	switch c.App.Env.Name {
	case "production", "prod":
		return Production
	case "staging", "stg":
		return Staging
	case "sandbox", "sbx":
		return Sandbox
	default:
		return Development
	}
}

func (c *ServiceConfig) IsProduction() bool {
	return c.GetEnvironment() == Production
}

// Validate validates the Cache configuration.
func (c *Cache) Validate() error {
	if c.Backend != CacheBackendMemory && c.Backend != CacheBackendKeydb {
		return fmt.Errorf("unsupported cache backend %q", c.Backend)
	}

	if c.MaxSize == 0 {
		return fmt.Errorf("cache max size must be positive")
	}

	return nil
}

// Validate validates the RateLimit configuration.
func (c *RateLimit) Validate() error {
	if c.Mode != RateLimitModeReject && c.Mode != RateLimitModeWait {
		return fmt.Errorf("unsupported rate limit mode %q", c.Mode)
	}

	if c.Enabled && c.Budget == 0 {
		return fmt.Errorf("rate limit budget must be positive when enabled")
	}

	if c.Enabled && c.Window <= 0 {
		return fmt.Errorf("rate limit window must be positive when enabled")
	}

	return nil
}
