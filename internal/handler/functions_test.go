package handler

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vitasports/backend/internal/config"
	"github.com/vitasports/backend/internal/lib/email"
	"github.com/vitasports/backend/internal/model"
	"github.com/vitasports/backend/internal/server"
	"github.com/vitasports/backend/internal/service"
)

func newFunctions(t *testing.T, s *server.Server) (*FunctionsHandler, *echo.Echo) {
	t.Helper()
	tests, err := service.NewTestService()
	require.NoError(t, err)

	logger := zerolog.Nop()
	mailer, err := email.NewClient(config.IntegrationConfig{}, &logger)
	require.NoError(t, err)

	// Only the services exercised without a database are real. The rest are
	// zero values that the self checks reject before use.
	services := &service.Services{
		Tests:        tests,
		Achievements: service.NewAchievementService(nil),
		Email:        service.NewEmailService(mailer, false, &logger),
		Users:        new(service.UserService),
		Store:        new(service.StoreService),
	}

	h := NewFunctionsHandler(s, services)
	e := newEcho(s)
	e.GET("/functions/:name", h.Invoke)
	e.POST("/functions/:name", h.Invoke)
	return h, e
}

func TestFunctions_RegistersEveryFunction(t *testing.T) {
	h, _ := newFunctions(t, testServer())

	names := h.Names()
	assert.Len(t, names, 51)
	for _, name := range []string{
		"auth:signUp", "users:getStats", "creditPoints:addTransaction", "tests:list",
		"testResults:submitWithML", "achievements:getByUser", "leaderboard:get",
		"community:joinGroup", "mentors:getWithMatching", "emails:preview",
		"store:purchase", "bodyLogs:getByUser", "analytics:getRealtime",
		"storage:generateUploadUrl", "admin:clearMentors",
	} {
		assert.Contains(t, names, name)
	}
	assert.IsIncreasing(t, names)
}

func TestFunctions_UnknownName(t *testing.T) {
	_, e := newFunctions(t, testServer())

	rec := do(t, e, http.MethodPost, "/functions/users:delete", "{}", nil)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	body := decodeError(t, rec)
	assert.Equal(t, "Unknown function: users:delete", body.Message)
}

func TestFunctions_TestsCatalog(t *testing.T) {
	_, e := newFunctions(t, testServer())

	t.Run("list via POST without body", func(t *testing.T) {
		rec := do(t, e, http.MethodPost, "/functions/tests:list", "", nil)
		require.Equal(t, http.StatusOK, rec.Code)

		var tests []model.AssessmentTest
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &tests))
		assert.Len(t, tests, 6)
	})

	t.Run("getById via query", func(t *testing.T) {
		rec := do(t, e, http.MethodGet, "/functions/tests:getById?testId=plank", "", nil)
		require.Equal(t, http.StatusOK, rec.Code)

		var test model.AssessmentTest
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &test))
		assert.Equal(t, "plank", test.ID)
	})

	t.Run("getById miss", func(t *testing.T) {
		rec := do(t, e, http.MethodPost, "/functions/tests:getById", `{"testId":"burpees"}`, nil)
		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.Equal(t, "Test not found with ID: burpees", decodeError(t, rec).Message)
	})

	t.Run("getById missing argument", func(t *testing.T) {
		rec := do(t, e, http.MethodPost, "/functions/tests:getById", `{}`, nil)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestFunctions_AchievementsList(t *testing.T) {
	_, e := newFunctions(t, testServer())

	rec := do(t, e, http.MethodGet, "/functions/achievements:list", "", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	var achievements []model.Achievement
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &achievements))
	assert.Len(t, achievements, len(model.Achievements))
}

func TestFunctions_EmailPreview(t *testing.T) {
	_, e := newFunctions(t, testServer())

	rec := do(t, e, http.MethodGet, "/functions/emails:preview?template=welcome", "", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	var preview model.EmailPreview
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &preview))
	assert.Equal(t, "welcome", preview.Template)
	assert.Contains(t, preview.HTML, "Alex Athlete")
}

func TestFunctions_SelfOnly(t *testing.T) {
	s := testServer()
	_, e := newFunctions(t, s)

	owner := uuid.New()
	other := uuid.New()
	otherToken, _, err := s.Tokens.Issue(other)
	require.NoError(t, err)

	tests := []struct {
		name    string
		fn      string
		body    string
		headers map[string]string
		want    int
	}{
		{
			name: "update without token",
			fn:   "users:update",
			body: fmt.Sprintf(`{"userId":%q,"name":"New"}`, owner),
			want: http.StatusUnauthorized,
		},
		{
			name:    "update another user",
			fn:      "users:update",
			body:    fmt.Sprintf(`{"userId":%q,"name":"New"}`, owner),
			headers: bearer(otherToken),
			want:    http.StatusForbidden,
		},
		{
			name:    "profile of another user",
			fn:      "users:updateProfile",
			body:    fmt.Sprintf(`{"userId":%q,"bio":"hi"}`, owner),
			headers: bearer(otherToken),
			want:    http.StatusForbidden,
		},
		{
			name: "credits without token",
			fn:   "creditPoints:addTransaction",
			body: fmt.Sprintf(`{"userId":%q,"amount":500,"type":"bonus","description":"gift"}`, owner),
			want: http.StatusUnauthorized,
		},
		{
			name:    "credits for another user",
			fn:      "creditPoints:addTransaction",
			body:    fmt.Sprintf(`{"userId":%q,"amount":500,"type":"bonus","description":"gift"}`, owner),
			headers: bearer(otherToken),
			want:    http.StatusForbidden,
		},
		{
			name:    "purchase for another user",
			fn:      "store:purchase",
			body:    fmt.Sprintf(`{"userId":%q,"productId":%q}`, owner, uuid.New()),
			headers: bearer(otherToken),
			want:    http.StatusForbidden,
		},
		{
			name:    "invalid token counts as anonymous",
			fn:      "store:purchase",
			body:    fmt.Sprintf(`{"userId":%q,"productId":%q}`, owner, uuid.New()),
			headers: bearer("not-a-jwt"),
			want:    http.StatusUnauthorized,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(t, e, http.MethodPost, "/functions/"+tt.fn, tt.body, tt.headers)
			assert.Equal(t, tt.want, rec.Code)
		})
	}
}
