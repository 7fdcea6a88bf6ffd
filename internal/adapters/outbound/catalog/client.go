package catalog

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/modashop/catalog-gateway/internal/config"
	"github.com/modashop/catalog-gateway/internal/domain/model"
	"github.com/modashop/catalog-gateway/internal/ports"
	"github.com/modashop/catalog-gateway/pkg/logger"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

const apiKeyHeader = "X-Api-Key"

// Client is the raw HTTPS JSON transport to the upstream catalog service.
// It owns no resilience logic; the gateway layers cache, breaker, limiter
// and retries on top of it.
type Client struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
	log        logger.Logger
}

var _ ports.CatalogTransport = (*Client)(nil)

// NewClient creates a transport client for the configured upstream.
func NewClient(cfg config.Catalog, log logger.Logger) *Client {
	return &Client{
		httpClient: &http.Client{
			Timeout:   cfg.Timeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		apiKey:  cfg.APIKey,
		log:     log,
	}
}

// Fetch performs a single GET against the logical endpoint and returns the
// response body and status. Failures come back as classified upstream
// errors; the caller decides whether to retry.
func (c *Client) Fetch(ctx context.Context, endpoint model.Endpoint, params map[string]string) ([]byte, int, error) {
	requestURL, err := c.buildURL(endpoint, params)
	if err != nil {
		return nil, 0, model.NewUpstreamError(model.ErrorKindUpstreamClient, 0, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, requestURL, nil)
	if err != nil {
		return nil, 0, model.NewUpstreamError(model.ErrorKindUpstreamClient, 0, err)
	}

	req.Header.Set("Accept", "application/json")
	if c.apiKey != "" {
		req.Header.Set(apiKeyHeader, c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, 0, classifyTransportError(ctx, err)
	}
	defer func() {
		_, _ = io.Copy(io.Discard, resp.Body)
		_ = resp.Body.Close()
	}()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, resp.StatusCode, classifyTransportError(ctx, err)
	}

	if kind := classifyStatus(resp.StatusCode); kind != model.ErrorKindNone {
		return nil, resp.StatusCode, model.NewUpstreamError(kind, resp.StatusCode,
			fmt.Errorf("unexpected status %d from %s", resp.StatusCode, endpoint))
	}

	return body, resp.StatusCode, nil
}

func (c *Client) buildURL(endpoint model.Endpoint, params map[string]string) (string, error) {
	path, query, err := endpointPath(endpoint, params)
	if err != nil {
		return "", err
	}

	requestURL := c.baseURL + path
	if encoded := query.Encode(); encoded != "" {
		requestURL += "?" + encoded
	}

	return requestURL, nil
}

// endpointPath maps a logical endpoint to its URL path. The item endpoint
// consumes the id parameter into the path; everything else travels as
// query parameters.
func endpointPath(endpoint model.Endpoint, params map[string]string) (string, url.Values, error) {
	query := url.Values{}
	for key, value := range params {
		query.Set(key, value)
	}

	switch endpoint {
	case model.EndpointList:
		return "/products", query, nil

	case model.EndpointItem:
		id := params["id"]
		if id == "" {
			return "", nil, fmt.Errorf("item endpoint requires an id parameter")
		}
		query.Del("id")

		return "/products/" + url.PathEscape(id), query, nil

	case model.EndpointSearch:
		return "/products/search", query, nil

	case model.EndpointCategory:
		if params["category"] == "" {
			return "", nil, fmt.Errorf("category endpoint requires a category parameter")
		}

		return "/products", query, nil

	default:
		return "", nil, fmt.Errorf("unknown endpoint %q", endpoint)
	}
}
