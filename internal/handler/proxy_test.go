package handler

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type backendCall struct {
	method string
	path   string
	query  string
	body   string
	auth   string
}

func newProxy(t *testing.T, backend http.HandlerFunc) (*ProxyHandler, *echo.Echo) {
	t.Helper()
	s := testServer()
	if backend != nil {
		srv := httptest.NewServer(backend)
		t.Cleanup(srv.Close)
		s.Config.Proxy.BackendURL = srv.URL + "/"
	}

	h := NewProxyHandler(s)
	h.now = func() time.Time { return time.Date(2026, 10, 14, 12, 0, 0, 0, time.UTC) }

	e := newEcho(s)
	e.Any("/api/proxy/:functionName", h.Proxy)
	return h, e
}

func recordingBackend(calls *[]backendCall, status int, reply string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		*calls = append(*calls, backendCall{
			method: r.Method,
			path:   r.URL.Path,
			query:  r.URL.RawQuery,
			body:   string(body),
			auth:   r.Header.Get("Authorization"),
		})
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = io.WriteString(w, reply)
	}
}

func TestProxy_Forwards(t *testing.T) {
	tests := []struct {
		name     string
		method   string
		target   string
		body     string
		wantCall backendCall
	}{
		{
			name:     "get keeps the query string",
			method:   http.MethodGet,
			target:   "/api/proxy/getUserStats?userId=u1",
			wantCall: backendCall{method: http.MethodGet, path: "/functions/getUserStats", query: "userId=u1"},
		},
		{
			name:     "post forwards the body",
			method:   http.MethodPost,
			target:   "/api/proxy/getMentors",
			body:     `{"category":"strength"}`,
			wantCall: backendCall{method: http.MethodPost, path: "/functions/getMentors", body: `{"category":"strength"}`},
		},
		{
			name:     "put becomes post",
			method:   http.MethodPut,
			target:   "/api/proxy/getMentors",
			body:     `{"a":1}`,
			wantCall: backendCall{method: http.MethodPost, path: "/functions/getMentors", body: `{"a":1}`},
		},
		{
			name:     "empty body becomes an empty object",
			method:   http.MethodDelete,
			target:   "/api/proxy/getCommunityPosts",
			wantCall: backendCall{method: http.MethodPost, path: "/functions/getCommunityPosts", body: `{}`},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var calls []backendCall
			_, e := newProxy(t, recordingBackend(&calls, http.StatusOK, `{"ok":true}`))

			rec := do(t, e, tt.method, tt.target, tt.body, nil)

			require.Equal(t, http.StatusOK, rec.Code)
			assert.JSONEq(t, `{"ok":true}`, rec.Body.String())
			require.Len(t, calls, 1)
			assert.Equal(t, tt.wantCall, calls[0])
			assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
		})
	}
}

func TestProxy_ForwardsAuthorization(t *testing.T) {
	var calls []backendCall
	_, e := newProxy(t, recordingBackend(&calls, http.StatusOK, `[]`))

	rec := do(t, e, http.MethodPost, "/api/proxy/getMentors", `{}`, map[string]string{"Authorization": "Bearer abc"})

	require.Equal(t, http.StatusOK, rec.Code)
	require.Len(t, calls, 1)
	assert.Equal(t, "Bearer abc", calls[0].auth)
}

func TestProxy_Options(t *testing.T) {
	_, e := newProxy(t, nil)

	rec := do(t, e, http.MethodOptions, "/api/proxy/getUserStats", "", nil)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, rec.Body.String())
	assert.Equal(t, "GET, POST, PUT, DELETE, OPTIONS", rec.Header().Get("Access-Control-Allow-Methods"))
	assert.Equal(t, "Content-Type, Authorization", rec.Header().Get("Access-Control-Allow-Headers"))
}

func TestProxy_FallsBackToMockData(t *testing.T) {
	tests := []struct {
		name    string
		backend http.HandlerFunc
	}{
		{name: "no backend configured"},
		{name: "backend error status", backend: func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadGateway)
			_, _ = io.WriteString(w, `{"error":"down"}`)
		}},
		{name: "backend invalid json", backend: func(w http.ResponseWriter, r *http.Request) {
			_, _ = io.WriteString(w, `<html>`)
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, e := newProxy(t, tt.backend)

			rec := do(t, e, http.MethodGet, "/api/proxy/getUserStats", "", nil)

			require.Equal(t, http.StatusOK, rec.Code)
			assert.JSONEq(t, `{
				"totalTests": 15, "avgScore": 85.5, "bestScore": 95, "improvementRate": 12.5,
				"weeklyGoal": 3, "completedThisWeek": 2, "streak": 7
			}`, rec.Body.String())
		})
	}
}

func TestProxy_MockPayloads(t *testing.T) {
	_, e := newProxy(t, nil)

	t.Run("mentors", func(t *testing.T) {
		rec := do(t, e, http.MethodGet, "/api/proxy/getMentors", "", nil)
		var body struct {
			Mentors []mockMentor `json:"mentors"`
		}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		require.Len(t, body.Mentors, 1)
		assert.Equal(t, "Sarah Johnson", body.Mentors[0].Name)
		assert.Equal(t, 75, body.Mentors[0].HourlyRate)
		assert.Equal(t, []string{"Monday", "Wednesday", "Friday"}, body.Mentors[0].Availability)
	})

	t.Run("community posts are two hours old", func(t *testing.T) {
		rec := do(t, e, http.MethodGet, "/api/proxy/getCommunityPosts", "", nil)
		var body struct {
			Posts []mockPost `json:"posts"`
		}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		require.Len(t, body.Posts, 1)
		assert.Equal(t, time.Date(2026, 10, 14, 10, 0, 0, 0, time.UTC), body.Posts[0].CreatedAt)
		assert.Equal(t, []string{"marathon", "achievement"}, body.Posts[0].Tags)
	})

	t.Run("unknown function", func(t *testing.T) {
		rec := do(t, e, http.MethodPost, "/api/proxy/getWeather", `{}`, nil)
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `{"error":"Unknown function: getWeather"}`, rec.Body.String())
	})
}
