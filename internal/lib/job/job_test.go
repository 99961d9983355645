package job

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/hibiken/asynq"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vitasports/backend/internal/config"
	"github.com/vitasports/backend/internal/lib/email"
)

type fakeRanks struct {
	calls int
	err   error
}

func (f *fakeRanks) RecomputeRanks(context.Context) (int64, error) {
	f.calls++
	return 4, f.err
}

func newTestService(t *testing.T, ranks RankRecomputer) *JobService {
	t.Helper()
	logger := zerolog.Nop()

	emails, err := email.NewClient(config.IntegrationConfig{}, &logger)
	require.NoError(t, err)

	return &JobService{logger: &logger, emails: emails, ranks: ranks}
}

func TestTaskConstructors(t *testing.T) {
	task, err := NewWelcomeEmailTask("alex@example.com", "Alex")
	require.NoError(t, err)
	assert.Equal(t, TaskWelcome, task.Type())

	var p WelcomeEmailPayload
	require.NoError(t, json.Unmarshal(task.Payload(), &p))
	assert.Equal(t, WelcomeEmailPayload{To: "alex@example.com", Name: "Alex"}, p)

	task, err = NewTestResultEmailTask(TestResultEmailPayload{To: "a@b.c", TestType: "plank", Score: 12})
	require.NoError(t, err)
	assert.Equal(t, TaskTestResult, task.Type())

	assert.Equal(t, TaskRecomputeRanks, NewRecomputeRanksTask().Type())
}

func TestEmailTasks_SkipRetryWhenNotConfigured(t *testing.T) {
	j := newTestService(t, &fakeRanks{})

	welcome, err := NewWelcomeEmailTask("alex@example.com", "Alex")
	require.NoError(t, err)
	err = j.handleWelcomeEmailTask(context.Background(), welcome)
	assert.True(t, errors.Is(err, asynq.SkipRetry))

	admin, err := NewAdminNotificationTask("id", "alex@example.com", "Alex")
	require.NoError(t, err)
	err = j.handleAdminNotificationTask(context.Background(), admin)
	assert.True(t, errors.Is(err, asynq.SkipRetry))
}

func TestEmailTasks_BadPayload(t *testing.T) {
	j := newTestService(t, &fakeRanks{})

	err := j.handleTestResultEmailTask(context.Background(), asynq.NewTask(TaskTestResult, []byte("{")))
	assert.True(t, errors.Is(err, asynq.SkipRetry))
}

func TestRecomputeRanksTask(t *testing.T) {
	ranks := &fakeRanks{}
	j := newTestService(t, ranks)

	require.NoError(t, j.handleRecomputeRanksTask(context.Background(), NewRecomputeRanksTask()))
	assert.Equal(t, 1, ranks.calls)

	ranks.err = errors.New("db down")
	assert.Error(t, j.handleRecomputeRanksTask(context.Background(), NewRecomputeRanksTask()))
}

func TestStart_RequiresHandlers(t *testing.T) {
	logger := zerolog.Nop()
	j := &JobService{logger: &logger}
	assert.Error(t, j.Start())
}
