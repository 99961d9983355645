package email

import (
	"context"
	"fmt"
	"time"

	"github.com/vitasports/backend/internal/model"
)

const (
	subjectWelcome           = "🎉 Welcome to AI Sports Assessment Platform!"
	subjectAdminNotification = "🎊 New User Registration Alert"
)

func (c *Client) SendWelcomeEmail(ctx context.Context, to, userName string) (string, error) {
	return c.SendEmail(ctx, c.cfg.EmailFrom, to, subjectWelcome, TemplateWelcome, WelcomeData{
		UserName: userName,
		Credits:  model.InitialCredits,
		JoinedOn: time.Now().Format("January 2, 2006"),
	})
}

// SendAdminNotification alerts the configured admin address about a signup.
func (c *Client) SendAdminNotification(ctx context.Context, userName, userEmail, userID string) (string, error) {
	if c.cfg.AdminEmail == "" {
		return "", ErrNotConfigured
	}
	return c.SendEmail(ctx, c.cfg.NotificationsFrom, c.cfg.AdminEmail, subjectAdminNotification, TemplateAdminNotification,
		AdminNotificationData{
			UserName:     userName,
			UserEmail:    userEmail,
			UserID:       userID,
			RegisteredAt: time.Now().UTC().Format(time.RFC1123),
		})
}

func (c *Client) SendTestResultEmail(ctx context.Context, to string, data TestResultData) (string, error) {
	subject := fmt.Sprintf("🏆 Your %s Test Results", data.TestType)
	return c.SendEmail(ctx, c.cfg.ResultsFrom, to, subject, TemplateTestResult, data)
}
