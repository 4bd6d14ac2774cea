package api

import (
	"net/http"
	"net/http/httptest"
	"testing"

	intconfig "busbooking/internal/config"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

func preflight(r *gin.Engine, origin string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodOptions, "/api/health", nil)
	req.Header.Set("Origin", origin)
	req.Header.Set("Access-Control-Request-Method", http.MethodGet)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestCORSOriginsComeFromConfig(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := NewRouter(intconfig.Env{CORSOrigins: "https://tickets.example.com"})

	w := preflight(r, "https://tickets.example.com")
	require.Equal(t, "https://tickets.example.com", w.Header().Get("Access-Control-Allow-Origin"))

	w = preflight(r, "http://localhost:3000")
	require.Empty(t, w.Header().Get("Access-Control-Allow-Origin"),
		"configured origins must replace the defaults")
}

func TestCORSDefaultsToLocalDevHosts(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := NewRouter(intconfig.Env{})

	w := preflight(r, "http://localhost:3000")
	require.Equal(t, "http://localhost:3000", w.Header().Get("Access-Control-Allow-Origin"))
}

func TestUnknownRouteReturnsJSON(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := NewRouter(intconfig.Env{})

	req := httptest.NewRequest(http.MethodGet, "/api/nope", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusNotFound, w.Code)
	require.Contains(t, w.Body.String(), "route not found")
}
