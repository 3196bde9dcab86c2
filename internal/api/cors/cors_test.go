package cors

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func okHandler(called *bool) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		*called = true
		w.WriteHeader(http.StatusTeapot)
	})
}

func TestMiddleware_SimpleRequest(t *testing.T) {
	var called bool
	req := httptest.NewRequest(http.MethodGet, "/api/tools", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	rr := httptest.NewRecorder()

	Middleware(okHandler(&called)).ServeHTTP(rr, req)

	assert.True(t, called)
	assert.Equal(t, http.StatusTeapot, rr.Code)
	assert.Equal(t, "*", rr.Header().Get("Access-Control-Allow-Origin"))
	assert.Empty(t, rr.Header().Get("Access-Control-Allow-Methods"))
}

func TestMiddleware_Preflight(t *testing.T) {
	var called bool
	req := httptest.NewRequest(http.MethodOptions, "/api/tools", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	req.Header.Set("Access-Control-Request-Method", "GET")
	req.Header.Set("Access-Control-Request-Headers", "X-Custom, Content-Type")
	rr := httptest.NewRecorder()

	Middleware(okHandler(&called)).ServeHTTP(rr, req)

	assert.False(t, called)
	assert.Equal(t, http.StatusNoContent, rr.Code)
	assert.Equal(t, "*", rr.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, AllowedMethods, rr.Header().Get("Access-Control-Allow-Methods"))
	assert.Equal(t, "X-Custom, Content-Type", rr.Header().Get("Access-Control-Allow-Headers"))
	assert.Equal(t, "Access-Control-Request-Headers", rr.Header().Get("Vary"))
	assert.Equal(t, "0", rr.Header().Get("Content-Length"))
	assert.Empty(t, rr.Body.String())
}

func TestMiddleware_PlainOptionsPassesThrough(t *testing.T) {
	var called bool
	req := httptest.NewRequest(http.MethodOptions, "/api/tools", nil)
	rr := httptest.NewRecorder()

	Middleware(okHandler(&called)).ServeHTTP(rr, req)

	assert.True(t, called)
	assert.Equal(t, "*", rr.Header().Get("Access-Control-Allow-Origin"))
}
