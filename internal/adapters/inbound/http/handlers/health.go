package handlers

import (
	"net/http"

	"github.com/modashop/catalog-gateway/internal/config"
)

type healthStatus struct {
	Status  string `json:"status"`
	Service string `json:"service"`
	Version string `json:"version,omitempty"`
}

// Healthz reports process liveness. It deliberately touches no dependency;
// upstream health is visible through the status endpoint instead.
func Healthz(serviceName string) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, healthStatus{
			Status:  "ok",
			Service: serviceName,
			Version: config.ServiceVersion,
		})
	}
}
