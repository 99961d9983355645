package router

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vitasports/backend/internal/config"
	"github.com/vitasports/backend/internal/errs"
	"github.com/vitasports/backend/internal/handler"
	"github.com/vitasports/backend/internal/lib/auth"
	"github.com/vitasports/backend/internal/server"
	"github.com/vitasports/backend/internal/service"
)

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()
	logger := zerolog.Nop()
	s := &server.Server{
		Config: &config.Config{
			Primary:   config.Primary{Env: "test"},
			Server:    config.ServerConfig{CORSAllowedOrigins: []string{"http://localhost:3000"}},
			RateLimit: config.DefaultRateLimitConfig(),
		},
		Logger: &logger,
		Tokens: auth.NewTokenManager("router-test-secret", time.Hour),
	}

	tests, err := service.NewTestService()
	require.NoError(t, err)

	return NewRouter(s, handler.NewHandlers(s, &service.Services{Tests: tests}))
}

func serve(h http.Handler, method, target string, headers map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, nil)
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestRouter_Routes(t *testing.T) {
	r := newTestRouter(t)

	tests := []struct {
		name        string
		method      string
		target      string
		wantStatus  int
		wantMessage string
	}{
		{name: "status", method: http.MethodGet, target: "/status", wantStatus: http.StatusOK},
		{name: "docs", method: http.MethodGet, target: "/docs", wantStatus: http.StatusOK},
		{name: "openapi document", method: http.MethodGet, target: "/static/openapi.json", wantStatus: http.StatusOK},
		{name: "function", method: http.MethodGet, target: "/functions/tests:list", wantStatus: http.StatusOK},
		{name: "unknown function", method: http.MethodPost, target: "/functions/nope", wantStatus: http.StatusNotFound, wantMessage: "Unknown function: nope"},
		{name: "unknown route", method: http.MethodGet, target: "/nowhere", wantStatus: http.StatusNotFound, wantMessage: "Route not found"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := serve(r, tt.method, tt.target, nil)

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))
			if tt.wantMessage != "" {
				var body errs.HTTPError
				require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
				assert.Equal(t, tt.wantMessage, body.Message)
			}
		})
	}
}

func TestRouter_SecureHeaders(t *testing.T) {
	rec := serve(newTestRouter(t), http.MethodGet, "/status", nil)
	assert.Equal(t, "nosniff", rec.Header().Get("X-Content-Type-Options"))
}

func TestRouter_CORS(t *testing.T) {
	r := newTestRouter(t)

	t.Run("configured origins on functions", func(t *testing.T) {
		rec := serve(r, http.MethodGet, "/functions/tests:list", map[string]string{"Origin": "http://localhost:3000"})
		assert.Equal(t, "http://localhost:3000", rec.Header().Get("Access-Control-Allow-Origin"))
	})

	t.Run("proxy preflight answers for any origin", func(t *testing.T) {
		rec := serve(r, http.MethodOptions, "/api/proxy/getUserStats", map[string]string{
			"Origin":                        "https://elsewhere.example",
			"Access-Control-Request-Method": "POST",
		})
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
	})
}
