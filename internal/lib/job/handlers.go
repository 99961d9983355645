package job

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/hibiken/asynq"
	"github.com/pkg/errors"

	"github.com/vitasports/backend/internal/lib/email"
)

// emailOutcome logs the result of a send. A missing API key is not retried.
func (j *JobService) emailOutcome(kind, to string, err error) error {
	if err == nil {
		j.logger.Info().
			Str("type", kind).
			Str("to", to).
			Msg("Successfully sent email")
		return nil
	}

	if errors.Is(err, email.ErrNotConfigured) {
		j.logger.Warn().
			Str("type", kind).
			Str("to", to).
			Msg("Email service not configured, dropping task")
		return fmt.Errorf("%s: %w", err.Error(), asynq.SkipRetry)
	}

	j.logger.Error().
		Str("type", kind).
		Str("to", to).
		Err(err).
		Msg("Failed to send email")
	return err
}

func (j *JobService) handleWelcomeEmailTask(ctx context.Context, t *asynq.Task) error {
	var p WelcomeEmailPayload
	if err := json.Unmarshal(t.Payload(), &p); err != nil {
		return fmt.Errorf("failed to unmarshal welcome email payload: %w", asynq.SkipRetry)
	}

	j.logger.Info().
		Str("type", "welcome").
		Str("to", p.To).
		Msg("Processing welcome email task")

	_, err := j.emails.SendWelcomeEmail(ctx, p.To, p.Name)
	return j.emailOutcome("welcome", p.To, err)
}

func (j *JobService) handleAdminNotificationTask(ctx context.Context, t *asynq.Task) error {
	var p AdminNotificationPayload
	if err := json.Unmarshal(t.Payload(), &p); err != nil {
		return fmt.Errorf("failed to unmarshal admin notification payload: %w", asynq.SkipRetry)
	}

	_, err := j.emails.SendAdminNotification(ctx, p.UserName, p.UserEmail, p.UserID)
	return j.emailOutcome("admin_notification", p.UserEmail, err)
}

func (j *JobService) handleTestResultEmailTask(ctx context.Context, t *asynq.Task) error {
	var p TestResultEmailPayload
	if err := json.Unmarshal(t.Payload(), &p); err != nil {
		return fmt.Errorf("failed to unmarshal test result payload: %w", asynq.SkipRetry)
	}

	_, err := j.emails.SendTestResultEmail(ctx, p.To, email.TestResultData{
		UserName: p.UserName,
		TestType: p.TestType,
		Score:    p.Score,
		Rank:     p.Rank,
	})
	return j.emailOutcome("test_result", p.To, err)
}

func (j *JobService) handleRecomputeRanksTask(ctx context.Context, _ *asynq.Task) error {
	n, err := j.ranks.RecomputeRanks(ctx)
	if err != nil {
		j.logger.Error().Err(err).Msg("Failed to recompute leaderboard ranks")
		return err
	}

	j.logger.Info().Int64("rows", n).Msg("Recomputed leaderboard ranks")
	return nil
}
