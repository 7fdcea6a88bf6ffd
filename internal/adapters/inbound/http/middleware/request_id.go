package middleware

import (
	"context"
	"net/http"

	"github.com/google/uuid"
	"github.com/modashop/catalog-gateway/pkg/logger"
)

type contextKey string

const (
	RequestIDHeader = "X-Request-Id"
)

// RequestID propagates the inbound request id, generating one when the
// caller did not send any. The id is stored under the logger's context
// key so every log line downstream carries it.
func RequestID() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			requestID := r.Header.Get(RequestIDHeader)
			if requestID == "" {
				requestID = uuid.New().String()
			}

			ctx := context.WithValue(r.Context(), logger.ContextKeyRequestID, requestID)
			w.Header().Set(RequestIDHeader, requestID)

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func GetRequestID(ctx context.Context) string {
	if id, ok := ctx.Value(logger.ContextKeyRequestID).(string); ok {
		return id
	}

	return ""
}
