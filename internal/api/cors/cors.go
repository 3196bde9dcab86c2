// Package cors applies a permissive cross-origin policy to every response.
package cors

import (
	"net/http"
	"strconv"
)

// AllowedMethods is advertised on preflight responses.
const AllowedMethods = "GET,HEAD,PUT,PATCH,POST,DELETE"

// Middleware allows any origin. Preflight requests are answered with 204 and
// never reach next; every other request, OPTIONS included, passes through.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h := w.Header()
		h.Set("Access-Control-Allow-Origin", "*")

		if !isPreflight(r) {
			next.ServeHTTP(w, r)
			return
		}

		h.Set("Access-Control-Allow-Methods", AllowedMethods)
		if reqHeaders := r.Header.Get("Access-Control-Request-Headers"); reqHeaders != "" {
			h.Set("Access-Control-Allow-Headers", reqHeaders)
			h.Add("Vary", "Access-Control-Request-Headers")
		}
		h.Set("Content-Length", strconv.Itoa(0))
		w.WriteHeader(http.StatusNoContent)
	})
}

func isPreflight(r *http.Request) bool {
	return r.Method == http.MethodOptions && r.Header.Get("Access-Control-Request-Method") != ""
}
