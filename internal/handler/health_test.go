package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckHealth(t *testing.T) {
	ok := func(context.Context) error { return nil }
	down := func(context.Context) error { return errors.New("connection refused") }

	tests := []struct {
		name       string
		checks     []healthCheck
		wantStatus int
		want       string
	}{
		{
			name:       "all healthy",
			checks:     []healthCheck{{name: "database", required: true, ping: ok}, {name: "redis", ping: ok}},
			wantStatus: http.StatusOK,
			want:       "healthy",
		},
		{
			name:       "database down",
			checks:     []healthCheck{{name: "database", required: true, ping: down}, {name: "redis", ping: ok}},
			wantStatus: http.StatusServiceUnavailable,
			want:       "unhealthy",
		},
		{
			name:       "redis down only degrades",
			checks:     []healthCheck{{name: "database", required: true, ping: ok}, {name: "redis", ping: down}},
			wantStatus: http.StatusOK,
			want:       "healthy",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := testServer()
			h := NewHealthHandler(s)
			h.checks = tt.checks

			e := newEcho(s)
			e.GET("/status", h.CheckHealth)
			rec := do(t, e, http.MethodGet, "/status", "", nil)

			require.Equal(t, tt.wantStatus, rec.Code)
			var body healthResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.Equal(t, tt.want, body.Status)
			assert.Equal(t, "test", body.Environment)
			assert.Len(t, body.Checks, len(tt.checks))
		})
	}
}

func TestNewHealthHandler_SkipsMissingDependencies(t *testing.T) {
	h := NewHealthHandler(testServer())
	assert.Empty(t, h.checks)
}
