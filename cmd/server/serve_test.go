package main

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"aerozone_backend/internal/config"
	"aerozone_backend/internal/database/dbtest"
	"aerozone_backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

func TestNewEngine(t *testing.T) {
	gin.SetMode(gin.TestMode)
	cfg := &config.Config{
		JWTSecret:          "serve-secret",
		JWTTTL:             time.Hour,
		CORSAllowedOrigins: []string{"http://localhost:3000"},
		PrometheusEnabled:  true,
	}
	engine := newEngine(cfg, dbtest.New(t))

	w := httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping", nil))
	if w.Code != http.StatusOK || !strings.Contains(w.Body.String(), "pong") {
		t.Fatalf("/ping = %d %s", w.Code, w.Body.String())
	}
	if w.Header().Get(utils.RequestIDHeader) == "" {
		t.Error("missing request id header")
	}

	w = httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if w.Code != http.StatusOK || !strings.Contains(w.Body.String(), "aerozone_http_request_duration_seconds") {
		t.Errorf("/metrics = %d", w.Code)
	}
}
