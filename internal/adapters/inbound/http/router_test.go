package http_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	inboundhttp "github.com/modashop/catalog-gateway/internal/adapters/inbound/http"
	"github.com/modashop/catalog-gateway/internal/config"
	"github.com/modashop/catalog-gateway/internal/domain/model"
	"github.com/modashop/catalog-gateway/internal/search"
	"github.com/modashop/catalog-gateway/internal/search/lexicon"
	"github.com/modashop/catalog-gateway/pkg/logger"
	"github.com/stretchr/testify/suite"
)

// scriptedGateway replays envelopes per endpoint.
type scriptedGateway struct {
	responses map[model.Endpoint]model.UpstreamResponse
	status    model.GatewayStatus
}

func (g *scriptedGateway) Call(_ context.Context, endpoint model.Endpoint, _ map[string]string, _ model.CacheStrategy) model.UpstreamResponse {
	resp, ok := g.responses[endpoint]
	if !ok {
		return model.UpstreamResponse{
			Success:    false,
			ErrorKind:  model.ErrorKindUpstreamServer,
			StatusCode: http.StatusBadGateway,
		}
	}

	return resp
}

func (g *scriptedGateway) Status(context.Context) model.GatewayStatus {
	return g.status
}

type RouterTestSuite struct {
	suite.Suite
	gateway *scriptedGateway
	server  *httptest.Server
}

func TestRouterTestSuite(t *testing.T) {
	t.Parallel()
	suite.Run(t, new(RouterTestSuite))
}

func (s *RouterTestSuite) SetupTest() {
	s.gateway = &scriptedGateway{
		responses: make(map[model.Endpoint]model.UpstreamResponse),
		status: model.GatewayStatus{
			CacheSize:       2,
			CacheMaxSize:    512,
			CacheHitCount:   7,
			CacheMissCount:  3,
			RateLimitBudget: 60,
			RateLimitUsed:   5,
			BreakerState:    "closed",
		},
	}

	cfg := &config.ServiceConfig{}
	cfg.App.ServiceName = "catalog-gateway"
	cfg.HTTPServer.WriteTimeout = 5 * time.Second
	cfg.Search = config.Search{DefaultLimit: 10, MaxLimit: 50}

	orchestrator := search.NewOrchestrator(
		search.NewNormalizer(lexicon.Default()),
		search.NewRanker(),
		s.gateway,
		cfg.Search,
		logger.NewTestLogger(),
	)

	router := inboundhttp.NewRouter(inboundhttp.RouterConfig{
		Search:  orchestrator,
		Gateway: s.gateway,
		Config:  cfg,
		Logger:  logger.NewTestLogger(),
	})

	s.server = httptest.NewServer(router)
}

func (s *RouterTestSuite) TearDownTest() {
	s.server.Close()
}

func (s *RouterTestSuite) scriptSearchPage() {
	page := model.CatalogPage{
		Items: []model.CatalogItem{
			{ID: "sku-1", Name: "Linen Summer Dress", Category: "dresses", Tags: []string{"summer"}, Rating: 4.5, Stock: 12},
			{ID: "sku-2", Name: "Beach Shorts", Category: "shorts", Tags: []string{"summer", "beach"}, Rating: 3.9, Stock: 20},
		},
		Total: 2,
	}

	data, err := json.Marshal(page)
	s.Require().NoError(err)

	s.gateway.responses[model.EndpointSearch] = model.UpstreamResponse{
		Data:       data,
		Success:    true,
		StatusCode: http.StatusOK,
		ElapsedMs:  21,
	}
}

func (s *RouterTestSuite) get(path string, headers map[string]string) (*http.Response, []byte) {
	req, err := http.NewRequest(http.MethodGet, s.server.URL+path, nil)
	s.Require().NoError(err)

	for key, value := range headers {
		req.Header.Set(key, value)
	}

	resp, err := s.server.Client().Do(req)
	s.Require().NoError(err)

	body, err := io.ReadAll(resp.Body)
	s.Require().NoError(err)
	s.Require().NoError(resp.Body.Close())

	return resp, body
}

func (s *RouterTestSuite) TestHealthz() {
	resp, body := s.get("/healthz", nil)

	s.Require().Equal(http.StatusOK, resp.StatusCode)

	var health struct {
		Status  string `json:"status"`
		Service string `json:"service"`
	}
	s.Require().NoError(json.Unmarshal(body, &health))
	s.Require().Equal("ok", health.Status)
	s.Require().Equal("catalog-gateway", health.Service)
}

func (s *RouterTestSuite) TestSearch_Success() {
	s.scriptSearchPage()

	resp, body := s.get("/v1/search?q=summer+dress", nil)

	s.Require().Equal(http.StatusOK, resp.StatusCode)
	s.Require().Equal("application/json", resp.Header.Get("Content-Type"))
	s.Require().NotEmpty(resp.Header.Get("X-Request-Id"))

	var envelope struct {
		Data []model.CatalogItem `json:"data"`
		Meta struct {
			RequestID  string `json:"requestId"`
			APIVersion string `json:"apiVersion"`
			ElapsedMs  int64  `json:"elapsedMs"`
		} `json:"meta"`
	}
	s.Require().NoError(json.Unmarshal(body, &envelope))
	s.Require().NotEmpty(envelope.Data)
	s.Require().Equal("sku-1", envelope.Data[0].ID)
	s.Require().Equal("v1", envelope.Meta.APIVersion)
	s.Require().NotEmpty(envelope.Meta.RequestID)
	s.Require().Equal(int64(21), envelope.Meta.ElapsedMs)
}

func (s *RouterTestSuite) TestSearch_MissingQuery() {
	resp, body := s.get("/v1/search", nil)

	s.Require().Equal(http.StatusBadRequest, resp.StatusCode)

	var envelope struct {
		Error struct {
			Kind    string `json:"kind"`
			Message string `json:"message"`
		} `json:"error"`
	}
	s.Require().NoError(json.Unmarshal(body, &envelope))
	s.Require().Equal(string(model.ErrorKindUpstreamClient), envelope.Error.Kind)
	s.Require().Contains(envelope.Error.Message, "q")
}

func (s *RouterTestSuite) TestSearch_UpstreamFailurePassesThrough() {
	s.gateway.responses[model.EndpointSearch] = model.UpstreamResponse{
		Success:    false,
		ErrorKind:  model.ErrorKindCircuitOpen,
		StatusCode: http.StatusServiceUnavailable,
	}

	resp, body := s.get("/v1/search?q=summer+dress", nil)

	s.Require().Equal(http.StatusServiceUnavailable, resp.StatusCode)

	var envelope struct {
		Error struct {
			Kind string `json:"kind"`
		} `json:"error"`
	}
	s.Require().NoError(json.Unmarshal(body, &envelope))
	s.Require().Equal(string(model.ErrorKindCircuitOpen), envelope.Error.Kind)
}

func (s *RouterTestSuite) TestRequestIDPropagation() {
	s.scriptSearchPage()

	resp, body := s.get("/v1/search?q=dress", map[string]string{
		"X-Request-Id": "req-12345",
	})

	s.Require().Equal("req-12345", resp.Header.Get("X-Request-Id"))

	var envelope struct {
		Meta struct {
			RequestID string `json:"requestId"`
		} `json:"meta"`
	}
	s.Require().NoError(json.Unmarshal(body, &envelope))
	s.Require().Equal("req-12345", envelope.Meta.RequestID)
}

func (s *RouterTestSuite) TestGetItem_Success() {
	item := model.CatalogItem{ID: "sku-42", Name: "Linen Dress", Category: "dresses", Rating: 4.4, Stock: 2}
	data, err := json.Marshal(item)
	s.Require().NoError(err)

	s.gateway.responses[model.EndpointItem] = model.UpstreamResponse{
		Data:       data,
		Success:    true,
		StatusCode: http.StatusOK,
	}

	resp, body := s.get("/v1/items/sku-42", nil)

	s.Require().Equal(http.StatusOK, resp.StatusCode)

	var envelope struct {
		Data model.CatalogItem `json:"data"`
	}
	s.Require().NoError(json.Unmarshal(body, &envelope))
	s.Require().Equal("sku-42", envelope.Data.ID)
	s.Require().Equal("Linen Dress", envelope.Data.Name)
}

func (s *RouterTestSuite) TestGetItem_NotFound() {
	s.gateway.responses[model.EndpointItem] = model.UpstreamResponse{
		Success:    false,
		ErrorKind:  model.ErrorKindUpstreamClient,
		StatusCode: http.StatusNotFound,
	}

	resp, body := s.get("/v1/items/sku-missing", nil)

	s.Require().Equal(http.StatusNotFound, resp.StatusCode)

	var envelope struct {
		Error struct {
			Kind string `json:"kind"`
		} `json:"error"`
	}
	s.Require().NoError(json.Unmarshal(body, &envelope))
	s.Require().Equal(string(model.ErrorKindUpstreamClient), envelope.Error.Kind)
}

func (s *RouterTestSuite) TestGetItem_MalformedPayload() {
	s.gateway.responses[model.EndpointItem] = model.UpstreamResponse{
		Data:       json.RawMessage(`{"id": 42}`),
		Success:    true,
		StatusCode: http.StatusOK,
	}

	resp, _ := s.get("/v1/items/sku-42", nil)

	s.Require().Equal(http.StatusBadGateway, resp.StatusCode)
}

func (s *RouterTestSuite) TestListItems_InvalidParam() {
	resp, _ := s.get("/v1/items?price_min=abc", nil)

	s.Require().Equal(http.StatusBadRequest, resp.StatusCode)
}

func (s *RouterTestSuite) TestListItems_CategoryFilter() {
	page := model.CatalogPage{
		Items: []model.CatalogItem{
			{ID: "sku-1", Name: "Linen Summer Dress", Category: "dresses"},
		},
		Total: 1,
	}
	data, err := json.Marshal(page)
	s.Require().NoError(err)

	s.gateway.responses[model.EndpointCategory] = model.UpstreamResponse{
		Data:       data,
		Success:    true,
		StatusCode: http.StatusOK,
	}

	resp, body := s.get("/v1/items?category=dresses", nil)

	s.Require().Equal(http.StatusOK, resp.StatusCode)

	var envelope struct {
		Data []model.CatalogItem `json:"data"`
	}
	s.Require().NoError(json.Unmarshal(body, &envelope))
	s.Require().Len(envelope.Data, 1)
}

func (s *RouterTestSuite) TestStatus() {
	resp, body := s.get("/v1/status", nil)

	s.Require().Equal(http.StatusOK, resp.StatusCode)

	var envelope struct {
		Data model.GatewayStatus `json:"data"`
	}
	s.Require().NoError(json.Unmarshal(body, &envelope))
	s.Require().Equal(2, envelope.Data.CacheSize)
	s.Require().Equal(uint64(7), envelope.Data.CacheHitCount)
	s.Require().Equal(60, envelope.Data.RateLimitBudget)
	s.Require().Equal("closed", envelope.Data.BreakerState)
}

func (s *RouterTestSuite) TestUnknownRouteReturns404() {
	resp, _ := s.get("/v1/unknown", nil)

	s.Require().Equal(http.StatusNotFound, resp.StatusCode)
}
