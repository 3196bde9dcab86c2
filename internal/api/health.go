package api

import (
	"net/http"
	"time"

	"github.com/mycelian/tool-catalog/internal/api/respond"
)

// HealthReporter exposes cached service health.
type HealthReporter interface {
	IsHealthy() bool
	Components() map[string]bool
}

// HealthHandler handles health check endpoints
type HealthHandler struct {
	reporter HealthReporter
}

// NewHealthHandler creates a new health handler
func NewHealthHandler(reporter HealthReporter) *HealthHandler {
	return &HealthHandler{reporter: reporter}
}

// CheckHealth handles GET /api/health
// Always returns 200; body reports healthy/unhealthy. 500 indicates handler failure only.
func (h *HealthHandler) CheckHealth(w http.ResponseWriter, r *http.Request) {
	status := "unhealthy"
	if h.reporter.IsHealthy() {
		status = "healthy"
	}

	components := make(map[string]string)
	for name, ok := range h.reporter.Components() {
		if ok {
			components[name] = "healthy"
		} else {
			components[name] = "unhealthy"
		}
	}

	response := map[string]interface{}{
		"status":     status,
		"components": components,
		"timestamp":  time.Now().UTC().Format(time.RFC3339),
	}
	respond.WriteJSON(w, http.StatusOK, response)
}
