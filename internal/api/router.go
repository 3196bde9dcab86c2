package api

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/mycelian/tool-catalog/internal/api/cors"
	"github.com/mycelian/tool-catalog/internal/api/recovery"
	"github.com/mycelian/tool-catalog/internal/api/respond"
	"github.com/mycelian/tool-catalog/internal/catalog"
	"github.com/rs/zerolog"
)

// NewRouter registers the API routes.
func NewRouter(src catalog.Source, reporter HealthReporter) *mux.Router {
	router := mux.NewRouter()

	// Global middlewares
	router.Use(recovery.Middleware)

	toolsHandler := NewToolsHandler(src)
	healthHandler := NewHealthHandler(reporter)

	router.HandleFunc("/api/tools", toolsHandler.ListTools).Methods(http.MethodGet, http.MethodHead)
	router.HandleFunc("/api/health", healthHandler.CheckHealth).Methods(http.MethodGet, http.MethodHead)

	router.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		respond.WriteNotFound(w, "Not Found")
	})
	router.MethodNotAllowedHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		respond.WriteMethodNotAllowed(w, "Method Not Allowed")
	})
	return router
}

// NewHandler builds the full HTTP handler: request logging and CORS wrap the
// router so that 404, 405 and preflight responses carry them too.
func NewHandler(log zerolog.Logger, src catalog.Source, reporter HealthReporter) http.Handler {
	return withRequestLogging(log, cors.Middleware(NewRouter(src, reporter)))
}
