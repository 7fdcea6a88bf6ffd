package model

import "encoding/json"

type (
	// Endpoint identifies a logical upstream operation.
	Endpoint string

	// ErrorKind classifies a failed upstream call.
	ErrorKind string

	// UpstreamResponse is the single normalized envelope every component
	// downstream of the Gateway consumes. No raw transport error crosses
	// the Gateway boundary.
	UpstreamResponse struct {
		Data       json.RawMessage `json:"data,omitempty"`
		Success    bool            `json:"success"`
		ErrorKind  ErrorKind       `json:"error_kind,omitempty"`
		StatusCode int             `json:"status_code"`
		Cached     bool            `json:"cached"`
		ElapsedMs  int64           `json:"elapsed_ms"`
	}

	// GatewayStatus is the observability snapshot exposed to callers.
	GatewayStatus struct {
		CacheSize           int    `json:"cache_size"`
		CacheMaxSize        int    `json:"cache_max_size"`
		CacheHitCount       uint64 `json:"cache_hit_count"`
		CacheMissCount      uint64 `json:"cache_miss_count"`
		RateLimitBudget     int    `json:"rate_limit_budget"`
		RateLimitUsed       int    `json:"rate_limit_used"`
		BreakerState        string `json:"breaker_state"`
		ConsecutiveFailures uint32 `json:"consecutive_failures"`
	}
)

const (
	EndpointList     Endpoint = "catalog.list"
	EndpointItem     Endpoint = "catalog.item"
	EndpointSearch   Endpoint = "catalog.search"
	EndpointCategory Endpoint = "catalog.category"
)

const (
	ErrorKindNone             ErrorKind = ""
	ErrorKindTransientNetwork ErrorKind = "transient_network"
	ErrorKindUpstreamServer   ErrorKind = "upstream_server"
	ErrorKindUpstreamClient   ErrorKind = "upstream_client"
	ErrorKindRateLimited      ErrorKind = "rate_limit_exceeded"
	ErrorKindCircuitOpen      ErrorKind = "circuit_open"
	ErrorKindCancelled        ErrorKind = "cancelled"
)

// Retryable reports whether a failure of this kind may be retried.
func (k ErrorKind) Retryable() bool {
	return k == ErrorKindTransientNetwork || k == ErrorKindUpstreamServer
}
