package model

import (
	"time"

	"github.com/google/uuid"
)

type LeaderboardEntry struct {
	UserID     uuid.UUID `json:"userId" db:"user_id"`
	UserName   string    `json:"userName" db:"user_name"`
	TotalScore float64   `json:"totalScore" db:"score"`
	Rank       int       `json:"rank" db:"rank"`
	UpdatedAt  time.Time `json:"updatedAt" db:"updated_at"`
}

// TestLeaderboardEntry ranks individual results for a single test.
type TestLeaderboardEntry struct {
	ResultID  uuid.UUID `json:"resultId" db:"id"`
	UserID    uuid.UUID `json:"userId" db:"user_id"`
	UserName  string    `json:"userName" db:"user_name"`
	TestID    string    `json:"testId" db:"test_id"`
	Score     float64   `json:"score" db:"score"`
	Rank      int       `json:"rank" db:"rank"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
}

// Leaderboard is the cached read model returned by leaderboard:get.
type Leaderboard struct {
	TestType string                 `json:"testType,omitempty"`
	Overall  []LeaderboardEntry     `json:"overall,omitempty"`
	ByTest   []TestLeaderboardEntry `json:"byTest,omitempty"`
}

const LeaderboardEventScoreUpdated = "score_updated"

// LeaderboardEvent is pushed to realtime subscribers after a score change.
type LeaderboardEvent struct {
	Type       string    `json:"type"`
	UserID     uuid.UUID `json:"userId"`
	TotalScore float64   `json:"totalScore"`
	Rank       int       `json:"rank"`
	At         time.Time `json:"at"`
}
