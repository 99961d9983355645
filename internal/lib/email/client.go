// Package email renders the embedded HTML templates and delivers them
// through Resend.
package email

import (
	"bytes"
	"context"
	"embed"
	"html/template"

	"github.com/pkg/errors"
	"github.com/resend/resend-go/v2"
	"github.com/rs/zerolog"

	"github.com/vitasports/backend/internal/config"
)

//go:embed templates/*.html
var templateFS embed.FS

// ErrNotConfigured is returned by every send when no API key is set.
var ErrNotConfigured = errors.New("email service not configured")

// sender is the subset of the Resend emails service the client uses.
type sender interface {
	SendWithContext(ctx context.Context, params *resend.SendEmailRequest) (*resend.SendEmailResponse, error)
}

type Client struct {
	sender    sender
	cfg       config.IntegrationConfig
	templates *template.Template
	logger    *zerolog.Logger
}

// NewClient parses the embedded templates. With no API key the client still
// renders templates but every send returns ErrNotConfigured.
func NewClient(cfg config.IntegrationConfig, logger *zerolog.Logger) (*Client, error) {
	var s sender
	if cfg.EmailConfigured() {
		s = resend.NewClient(cfg.ResendAPIKey).Emails
	}
	return newClient(s, cfg, logger)
}

func newClient(s sender, cfg config.IntegrationConfig, logger *zerolog.Logger) (*Client, error) {
	tmpl, err := template.ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, errors.Wrap(err, "failed to parse email templates")
	}

	return &Client{
		sender:    s,
		cfg:       cfg,
		templates: tmpl,
		logger:    logger,
	}, nil
}

func (c *Client) Configured() bool {
	return c.sender != nil
}

// Render executes the named template with data.
func (c *Client) Render(name Template, data any) (string, error) {
	var body bytes.Buffer
	if err := c.templates.ExecuteTemplate(&body, name.file(), data); err != nil {
		return "", errors.Wrapf(err, "failed to execute email template %s", name)
	}
	return body.String(), nil
}

// SendEmail renders a template and sends it, returning the provider's id.
func (c *Client) SendEmail(ctx context.Context, from, to, subject string, name Template, data any) (string, error) {
	if c.sender == nil {
		return "", ErrNotConfigured
	}

	html, err := c.Render(name, data)
	if err != nil {
		return "", err
	}

	resp, err := c.sender.SendWithContext(ctx, &resend.SendEmailRequest{
		From:    from,
		To:      []string{to},
		Subject: subject,
		Html:    html,
	})
	if err != nil {
		return "", errors.Wrapf(err, "failed to send %s email", name)
	}

	c.logger.Debug().
		Str("template", string(name)).
		Str("email_id", resp.Id).
		Msg("email sent")

	return resp.Id, nil
}
