package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/vitasports/backend/internal/model"
	"github.com/vitasports/backend/internal/sqlerr"
)

func resultAt(testID string, score float64, at time.Time) model.TestResult {
	return model.TestResult{ID: uuid.New(), TestID: testID, Score: score, Status: model.TestStatusCompleted, CreatedAt: at}
}

func TestComputeUserStats(t *testing.T) {
	// Wednesday
	now := time.Date(2026, 10, 14, 12, 0, 0, 0, time.UTC)

	t.Run("no results", func(t *testing.T) {
		stats := computeUserStats(nil, now)
		assert.Equal(t, model.UserStats{WeeklyGoal: weeklyGoal}, stats)
	})

	t.Run("mixed history", func(t *testing.T) {
		results := []model.TestResult{
			resultAt("push-ups", 80, time.Date(2026, 10, 14, 10, 0, 0, 0, time.UTC)),
			resultAt("squats", 50, time.Date(2026, 10, 10, 8, 0, 0, 0, time.UTC)),
			resultAt("plank", 70, time.Date(2026, 10, 13, 10, 0, 0, 0, time.UTC)),
			resultAt("sit-ups", 60, time.Date(2026, 10, 12, 9, 0, 0, 0, time.UTC)),
		}

		stats := computeUserStats(results, now)

		assert.Equal(t, 4, stats.TotalTests)
		assert.InDelta(t, 65.0, stats.AvgScore, 0.001)
		assert.InDelta(t, 80.0, stats.BestScore, 0.001)
		assert.InDelta(t, 36.4, stats.ImprovementRate, 0.001)
		assert.Equal(t, 3, stats.CompletedThisWeek)
		assert.Equal(t, 3, stats.Streak)
		assert.Equal(t, weeklyGoal, stats.WeeklyGoal)
	})

	t.Run("unfinished results are ignored", func(t *testing.T) {
		pending := resultAt("squats", 0, now.Add(-time.Hour))
		pending.Status = model.TestStatusPending
		processing := resultAt("plank", 0, now.Add(-2*time.Hour))
		processing.Status = model.TestStatusProcessing

		results := []model.TestResult{
			pending,
			resultAt("push-ups", 80, now.Add(-3*time.Hour)),
			processing,
			resultAt("push-ups", 60, now.AddDate(0, 0, -1)),
		}

		stats := computeUserStats(results, now)

		assert.Equal(t, 2, stats.TotalTests)
		assert.InDelta(t, 70.0, stats.AvgScore, 0.001)
		assert.InDelta(t, 33.3, stats.ImprovementRate, 0.001)
		assert.Equal(t, 2, stats.Streak)
	})

	t.Run("only pending results", func(t *testing.T) {
		pending := resultAt("squats", 0, now)
		pending.Status = model.TestStatusPending

		stats := computeUserStats([]model.TestResult{pending}, now)
		assert.Equal(t, model.UserStats{WeeklyGoal: weeklyGoal}, stats)
	})

	t.Run("streak breaks without a result today", func(t *testing.T) {
		results := []model.TestResult{
			resultAt("push-ups", 80, now.AddDate(0, 0, -1)),
			resultAt("push-ups", 80, now.AddDate(0, 0, -2)),
		}
		assert.Equal(t, 0, computeUserStats(results, now).Streak)
	})
}

func TestImprovementRate(t *testing.T) {
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	var ordered []model.TestResult
	for i, score := range []float64{40, 40, 40, 40, 40, 50, 60, 60, 60, 60, 60, 60} {
		ordered = append(ordered, resultAt("push-ups", score, base.AddDate(0, 0, i)))
	}

	// windows of five: 40 -> 60
	assert.InDelta(t, 50.0, improvementRate(ordered), 0.001)
	assert.Zero(t, improvementRate(ordered[:1]))

	zeros := []model.TestResult{resultAt("a", 0, base), resultAt("a", 10, base)}
	assert.Zero(t, improvementRate(zeros))
}

func TestStartOfWeek(t *testing.T) {
	sunday := time.Date(2026, 10, 18, 23, 0, 0, 0, time.UTC)
	assert.Equal(t, time.Date(2026, 10, 12, 0, 0, 0, 0, time.UTC), startOfWeek(sunday))

	monday := time.Date(2026, 10, 12, 0, 30, 0, 0, time.UTC)
	assert.Equal(t, time.Date(2026, 10, 12, 0, 0, 0, 0, time.UTC), startOfWeek(monday))
}

func TestComputeMLStats(t *testing.T) {
	results := []model.TestResult{
		{TestID: "push-ups", MLAnalysis: &model.MLAnalysis{FormScore: 80, PoseAccuracy: 90, Repetitions: 10}},
		{TestID: "push-ups", MLAnalysis: &model.MLAnalysis{FormScore: 70, PoseAccuracy: 85, Repetitions: 20, CheatDetected: true}},
		{TestID: "squats"},
	}

	stats := computeMLStats(results)

	assert.InDelta(t, 75.0, stats.AverageFormScore, 0.001)
	assert.InDelta(t, 87.5, stats.AveragePoseAccuracy, 0.001)
	assert.InDelta(t, 50.0, stats.CheatDetectionRate, 0.001)
	assert.Equal(t, 30, stats.TotalRepetitions)
	assert.Equal(t, map[string]int{"push-ups": 2, "squats": 1}, stats.TestsByType)

	empty := computeMLStats(nil)
	assert.NotNil(t, empty.TestsByType)
	assert.Zero(t, empty.AverageFormScore)
}

func TestUserService_GetStats_MissingUser(t *testing.T) {
	ctx := context.Background()
	users := &mockUsers{}
	results := &mockResults{}
	id := uuid.New()
	users.On("GetByID", ctx, id).Return(nil, sqlerr.NotFound("users"))

	svc := NewUserService(users, results, nil, nil, nil)
	_, err := svc.GetStats(ctx, &model.UserIDPayload{UserID: id})

	require.Error(t, err)
	assert.True(t, sqlerr.IsNotFound(err))
	results.AssertNotCalled(t, "ListByUser", mock.Anything, mock.Anything)
}
