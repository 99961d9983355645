package model

import (
	"time"

	"github.com/google/uuid"
)

type TestStatus string

const (
	TestStatusPending    TestStatus = "pending"
	TestStatusProcessing TestStatus = "processing"
	TestStatusCompleted  TestStatus = "completed"
)

// MLAnalysis is the pose-analysis summary attached to a submission.
type MLAnalysis struct {
	CheatDetected   bool           `json:"cheatDetected"`
	PoseAccuracy    float64        `json:"poseAccuracy" validate:"gte=0,lte=100"`
	Repetitions     int            `json:"repetitions" validate:"gte=0"`
	FormScore       float64        `json:"formScore" validate:"gte=0,lte=100"`
	Violations      []string       `json:"violations"`
	KeyPoints       map[string]any `json:"keyPoints,omitempty"`
	ConfidenceScore float64        `json:"confidenceScore" validate:"gte=0"`
	Recommendations []string       `json:"recommendations"`
}

// KeyPointFloat reads a numeric key point, returning 0 when absent.
func (a *MLAnalysis) KeyPointFloat(key string) float64 {
	if a == nil || a.KeyPoints == nil {
		return 0
	}
	switch v := a.KeyPoints[key].(type) {
	case float64:
		return v
	case float32:
		return float64(v)
	case int:
		return float64(v)
	case int64:
		return float64(v)
	default:
		return 0
	}
}

type TestResult struct {
	ID              uuid.UUID      `json:"id" db:"id"`
	UserID          uuid.UUID      `json:"userId" db:"user_id"`
	TestID          string         `json:"testId" db:"test_id"`
	Score           float64        `json:"score" db:"score"`
	Status          TestStatus     `json:"status" db:"status"`
	Grade           *string        `json:"grade,omitempty" db:"grade"`
	Percentile      *float64       `json:"percentile,omitempty" db:"percentile"`
	Feedback        *string        `json:"feedback,omitempty" db:"feedback"`
	RawData         map[string]any `json:"rawData,omitempty" db:"raw_data"`
	ProcessedData   map[string]any `json:"processedData,omitempty" db:"processed_data"`
	Recommendations []string       `json:"recommendations,omitempty" db:"recommendations"`
	MLAnalysis      *MLAnalysis    `json:"mlAnalysis,omitempty" db:"ml_analysis"`
	VideoURL        *string        `json:"videoUrl,omitempty" db:"video_url"`
	CreatedAt       time.Time      `json:"createdAt" db:"created_at"`
	CompletedAt     *time.Time     `json:"completedAt,omitempty" db:"completed_at"`
}

// NewTestResult is the insert shape for every submission path.
type NewTestResult struct {
	UserID          uuid.UUID
	TestID          string
	Score           float64
	Status          TestStatus
	RawData         map[string]any
	ProcessedData   map[string]any
	Recommendations []string
	MLAnalysis      *MLAnalysis
	VideoURL        *string
	CreatedAt       time.Time
	CompletedAt     *time.Time
}

// TestCompletion finalizes a pending result.
type TestCompletion struct {
	Score           float64
	Grade           *string
	Percentile      *float64
	Feedback        *string
	RawData         map[string]any
	ProcessedData   map[string]any
	Recommendations []string
}

// ScoreUpdate is the outcome of applying a score delta to a user.
type ScoreUpdate struct {
	UserID     uuid.UUID `json:"userId"`
	TotalScore float64   `json:"totalScore"`
	Rank       int       `json:"rank"`
}

// MLStats aggregates ML analysis across a user's results.
type MLStats struct {
	AverageFormScore    float64        `json:"averageFormScore"`
	TotalRepetitions    int            `json:"totalRepetitions"`
	CheatDetectionRate  float64        `json:"cheatDetectionRate"`
	AveragePoseAccuracy float64        `json:"averagePoseAccuracy"`
	TestsByType         map[string]int `json:"testsByType"`
}

// UserStats is the dashboard summary of a user's results.
type UserStats struct {
	TotalTests        int     `json:"totalTests"`
	AvgScore          float64 `json:"avgScore"`
	BestScore         float64 `json:"bestScore"`
	ImprovementRate   float64 `json:"improvementRate"`
	WeeklyGoal        int     `json:"weeklyGoal"`
	CompletedThisWeek int     `json:"completedThisWeek"`
	Streak            int     `json:"streak"`
}
