// Package job runs background work on Asynq: transactional emails and the
// leaderboard rank recompute.
package job

import (
	"context"
	"fmt"

	"github.com/hibiken/asynq"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"

	"github.com/vitasports/backend/internal/config"
	"github.com/vitasports/backend/internal/lib/email"
)

// RankRecomputer rewrites the stored leaderboard ranks.
type RankRecomputer interface {
	RecomputeRanks(ctx context.Context) (int64, error)
}

// JobService holds the Asynq client used to enqueue and the server that
// processes tasks.
type JobService struct {
	Client *asynq.Client
	server *asynq.Server
	logger *zerolog.Logger

	emails *email.Client
	ranks  RankRecomputer
}

func NewJobService(logger *zerolog.Logger, cfg *config.Config) *JobService {
	redisAddr := cfg.Redis.Address

	client := asynq.NewClient(asynq.RedisClientOpt{
		Addr: redisAddr,
	})

	server := asynq.NewServer(
		asynq.RedisClientOpt{Addr: redisAddr},
		asynq.Config{
			Concurrency: 10,
			Queues: map[string]int{
				"critical": 6,
				"default":  3,
				"low":      1,
			},
			Logger:   newAsynqLogger(logger),
			LogLevel: asynq.WarnLevel,
		},
	)

	return &JobService{
		Client: client,
		server: server,
		logger: logger,
	}
}

// InitHandlers injects the dependencies task handlers need. It must be called
// before Start.
func (j *JobService) InitHandlers(emails *email.Client, ranks RankRecomputer) {
	j.emails = emails
	j.ranks = ranks
}

func (j *JobService) mux() *asynq.ServeMux {
	mux := asynq.NewServeMux()
	mux.HandleFunc(TaskWelcome, j.handleWelcomeEmailTask)
	mux.HandleFunc(TaskAdminNotification, j.handleAdminNotificationTask)
	mux.HandleFunc(TaskTestResult, j.handleTestResultEmailTask)
	mux.HandleFunc(TaskRecomputeRanks, j.handleRecomputeRanksTask)
	return mux
}

// Start launches the workers in the background.
func (j *JobService) Start() error {
	if j.emails == nil || j.ranks == nil {
		return errors.New("job handlers not initialized")
	}

	j.logger.Info().Msg("Starting background job server")

	if err := j.server.Start(j.mux()); err != nil {
		return errors.Wrap(err, "failed to start job server")
	}

	return nil
}

func (j *JobService) Stop() {
	j.logger.Info().Msg("Stopping background job server")
	j.server.Shutdown()
	j.Client.Close()
}

func (j *JobService) enqueue(ctx context.Context, task *asynq.Task) error {
	info, err := j.Client.EnqueueContext(ctx, task)
	if err != nil {
		if errors.Is(err, asynq.ErrDuplicateTask) || errors.Is(err, asynq.ErrTaskIDConflict) {
			return nil
		}
		return errors.Wrapf(err, "failed to enqueue %s", task.Type())
	}

	j.logger.Debug().
		Str("task", task.Type()).
		Str("task_id", info.ID).
		Str("queue", info.Queue).
		Msg("task enqueued")

	return nil
}

// EnqueueSignupEmails queues the welcome email and the admin notification.
func (j *JobService) EnqueueSignupEmails(ctx context.Context, userID, to, name string) error {
	welcome, err := NewWelcomeEmailTask(to, name)
	if err != nil {
		return err
	}
	if err := j.enqueue(ctx, welcome); err != nil {
		return err
	}

	notification, err := NewAdminNotificationTask(userID, to, name)
	if err != nil {
		return err
	}
	return j.enqueue(ctx, notification)
}

func (j *JobService) EnqueueTestResultEmail(ctx context.Context, p TestResultEmailPayload) error {
	task, err := NewTestResultEmailTask(p)
	if err != nil {
		return err
	}
	return j.enqueue(ctx, task)
}

// EnqueueRankRecompute schedules a recompute shortly in the future. Calls
// within the uniqueness window collapse into one task.
func (j *JobService) EnqueueRankRecompute(ctx context.Context) error {
	return j.enqueue(ctx, NewRecomputeRanksTask())
}

// asynqLogger routes Asynq's internal logging through zerolog.
type asynqLogger struct {
	l zerolog.Logger
}

func newAsynqLogger(logger *zerolog.Logger) asynqLogger {
	return asynqLogger{l: logger.With().Str("component", "asynq").Logger()}
}

func (a asynqLogger) Debug(args ...any) { a.l.Debug().Msg(fmt.Sprint(args...)) }
func (a asynqLogger) Info(args ...any)  { a.l.Info().Msg(fmt.Sprint(args...)) }
func (a asynqLogger) Warn(args ...any)  { a.l.Warn().Msg(fmt.Sprint(args...)) }
func (a asynqLogger) Error(args ...any) { a.l.Error().Msg(fmt.Sprint(args...)) }
func (a asynqLogger) Fatal(args ...any) { a.l.Fatal().Msg(fmt.Sprint(args...)) }
