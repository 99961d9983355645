package email

import (
	"context"
	"errors"
	"testing"

	"github.com/resend/resend-go/v2"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vitasports/backend/internal/config"
)

type fakeSender struct {
	requests []*resend.SendEmailRequest
	err      error
}

func (f *fakeSender) SendWithContext(_ context.Context, params *resend.SendEmailRequest) (*resend.SendEmailResponse, error) {
	f.requests = append(f.requests, params)
	if f.err != nil {
		return nil, f.err
	}
	return &resend.SendEmailResponse{Id: "email_123"}, nil
}

func testConfig() config.IntegrationConfig {
	return config.IntegrationConfig{
		ResendAPIKey:      "re_test",
		AdminEmail:        "admin@example.com",
		EmailFrom:         "Vita Sports <onboarding@vitasports.shop>",
		NotificationsFrom: "Vita Sports <notifications@vitasports.shop>",
		ResultsFrom:       "Vita Sports <results@vitasports.shop>",
	}
}

func newTestClient(t *testing.T, s sender) *Client {
	t.Helper()
	logger := zerolog.Nop()
	c, err := newClient(s, testConfig(), &logger)
	require.NoError(t, err)
	return c
}

func TestClient_SendWelcomeEmail(t *testing.T) {
	fake := &fakeSender{}
	c := newTestClient(t, fake)

	id, err := c.SendWelcomeEmail(context.Background(), "alex@example.com", "Alex")
	require.NoError(t, err)
	assert.Equal(t, "email_123", id)

	require.Len(t, fake.requests, 1)
	req := fake.requests[0]
	assert.Equal(t, "Vita Sports <onboarding@vitasports.shop>", req.From)
	assert.Equal(t, []string{"alex@example.com"}, req.To)
	assert.Equal(t, "🎉 Welcome to AI Sports Assessment Platform!", req.Subject)
	assert.Contains(t, req.Html, "Hey Alex!")
}

func TestClient_SendAdminNotification(t *testing.T) {
	fake := &fakeSender{}
	c := newTestClient(t, fake)

	_, err := c.SendAdminNotification(context.Background(), "Alex", "alex@example.com", "user-1")
	require.NoError(t, err)

	req := fake.requests[0]
	assert.Equal(t, []string{"admin@example.com"}, req.To)
	assert.Equal(t, "🎊 New User Registration Alert", req.Subject)
	assert.Contains(t, req.Html, "user-1")
}

func TestClient_SendTestResultEmail(t *testing.T) {
	fake := &fakeSender{}
	c := newTestClient(t, fake)

	_, err := c.SendTestResultEmail(context.Background(), "alex@example.com", TestResultData{
		UserName: "Alex",
		TestType: "push-ups",
		Score:    88,
		Rank:     3,
	})
	require.NoError(t, err)

	req := fake.requests[0]
	assert.Equal(t, "🏆 Your push-ups Test Results", req.Subject)
	assert.Contains(t, req.Html, "88.0")
	assert.Contains(t, req.Html, "#3")
}

func TestClient_RankHiddenWhenZero(t *testing.T) {
	c := newTestClient(t, &fakeSender{})

	html, err := c.Render(TemplateTestResult, TestResultData{UserName: "Alex", TestType: "plank", Score: 40})
	require.NoError(t, err)
	assert.NotContains(t, html, "Leaderboard rank")
}

func TestClient_NotConfigured(t *testing.T) {
	c := newTestClient(t, nil)
	assert.False(t, c.Configured())

	_, err := c.SendWelcomeEmail(context.Background(), "alex@example.com", "Alex")
	assert.True(t, errors.Is(err, ErrNotConfigured))
}

func TestClient_ProviderError(t *testing.T) {
	c := newTestClient(t, &fakeSender{err: errors.New("domain not verified")})

	_, err := c.SendWelcomeEmail(context.Background(), "alex@example.com", "Alex")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "domain not verified")
}

func TestPreview_AllTemplates(t *testing.T) {
	c := newTestClient(t, nil)

	for name := range PreviewData {
		html, err := c.Preview(name)
		require.NoError(t, err, name)
		assert.Contains(t, html, "<html>", name)
	}

	_, err := ParseTemplate("missing")
	assert.Error(t, err)
}
