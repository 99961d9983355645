package service

import (
	"context"
	"errors"

	"github.com/rs/zerolog"

	"github.com/vitasports/backend/internal/errs"
	"github.com/vitasports/backend/internal/lib/email"
	"github.com/vitasports/backend/internal/model"
)

type resultMailer interface {
	SendTestResultEmail(ctx context.Context, to string, data email.TestResultData) (string, error)
	Preview(name email.Template) (string, error)
}

type EmailService struct {
	mailer     resultMailer
	production bool
	logger     *zerolog.Logger
}

func NewEmailService(mailer resultMailer, production bool, logger *zerolog.Logger) *EmailService {
	return &EmailService{mailer: mailer, production: production, logger: logger}
}

// SendTestResult sends synchronously. Delivery problems are reported in the
// result body rather than as an API error.
func (s *EmailService) SendTestResult(ctx context.Context, p *model.SendTestResultPayload) (*model.EmailSendResult, error) {
	id, err := s.mailer.SendTestResultEmail(ctx, p.UserEmail, email.TestResultData{
		UserName: p.UserName,
		TestType: p.TestType,
		Score:    p.Score,
		Rank:     p.Rank,
	})
	if err != nil {
		if errors.Is(err, email.ErrNotConfigured) {
			s.logger.Warn().Str("to", p.UserEmail).Msg("email not configured, skipping test result email")
			return &model.EmailSendResult{Success: false, Error: "Email service not configured"}, nil
		}

		s.logger.Error().Err(err).Str("to", p.UserEmail).Msg("failed to send test result email")
		return &model.EmailSendResult{Success: false, Error: err.Error()}, nil
	}

	return &model.EmailSendResult{Success: true, EmailID: id}, nil
}

func (s *EmailService) Preview(p *model.PreviewPayload) (*model.EmailPreview, error) {
	if s.production {
		return nil, errs.NewForbiddenError("Email previews are disabled in production", true)
	}

	name, err := email.ParseTemplate(p.Template)
	if err != nil {
		return nil, errs.NewNotFoundError("Unknown email template: "+p.Template, true, nil)
	}

	html, err := s.mailer.Preview(name)
	if err != nil {
		return nil, err
	}

	return &model.EmailPreview{Template: p.Template, HTML: html}, nil
}
