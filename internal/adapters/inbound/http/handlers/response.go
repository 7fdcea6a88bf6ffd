package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/modashop/catalog-gateway/internal/adapters/inbound/http/middleware"
	"github.com/modashop/catalog-gateway/internal/domain/model"
)

const apiVersion = "v1"

type (
	// responseMeta carries request correlation and gateway provenance for
	// every response body.
	responseMeta struct {
		RequestID  string `json:"requestId"`
		APIVersion string `json:"apiVersion"`
		Cached     bool   `json:"cached"`
		ElapsedMs  int64  `json:"elapsedMs"`
	}

	// EnvelopedResponse wraps response data with metadata.
	EnvelopedResponse struct {
		Data any          `json:"data"`
		Meta responseMeta `json:"meta"`
	}

	errorBody struct {
		Kind    string `json:"kind"`
		Message string `json:"message"`
	}

	// ErrorResponse is the failure counterpart of EnvelopedResponse.
	ErrorResponse struct {
		Error errorBody    `json:"error"`
		Meta  responseMeta `json:"meta"`
	}
)

func newMeta(r *http.Request, upstream model.UpstreamResponse) responseMeta {
	return responseMeta{
		RequestID:  middleware.GetRequestID(r.Context()),
		APIVersion: apiVersion,
		Cached:     upstream.Cached,
		ElapsedMs:  upstream.ElapsedMs,
	}
}

func writeJSON(w http.ResponseWriter, statusCode int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	_ = json.NewEncoder(w).Encode(body)
}

// writeFailure renders a failed gateway envelope. The upstream status code
// is passed through when it is a valid HTTP error; everything else becomes
// a 502.
func writeFailure(w http.ResponseWriter, r *http.Request, upstream model.UpstreamResponse) {
	statusCode := upstream.StatusCode
	if statusCode < http.StatusBadRequest {
		statusCode = http.StatusBadGateway
	}

	writeJSON(w, statusCode, ErrorResponse{
		Error: errorBody{
			Kind:    string(upstream.ErrorKind),
			Message: errorMessage(upstream.ErrorKind),
		},
		Meta: newMeta(r, upstream),
	})
}

func writeBadRequest(w http.ResponseWriter, r *http.Request, message string) {
	writeJSON(w, http.StatusBadRequest, ErrorResponse{
		Error: errorBody{
			Kind:    string(model.ErrorKindUpstreamClient),
			Message: message,
		},
		Meta: newMeta(r, model.UpstreamResponse{}),
	})
}

func errorMessage(kind model.ErrorKind) string {
	switch kind {
	case model.ErrorKindRateLimited:
		return "upstream request budget exhausted, try again later"
	case model.ErrorKindCircuitOpen:
		return "upstream catalog service is temporarily unavailable"
	case model.ErrorKindCancelled:
		return "request was cancelled"
	case model.ErrorKindUpstreamClient:
		return "upstream rejected the request"
	case model.ErrorKindTransientNetwork, model.ErrorKindUpstreamServer:
		return "upstream catalog service failed"
	default:
		return "request failed"
	}
}
