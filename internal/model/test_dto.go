package model

import (
	"time"

	"github.com/google/uuid"

	"github.com/vitasports/backend/internal/validation"
)

type TestIDPayload struct {
	TestID string `json:"testId" query:"testId" validate:"required,max=64"`
}

func (p *TestIDPayload) Validate() error {
	return validation.Struct(p)
}

type CreateTestResultPayload struct {
	UserID          uuid.UUID      `json:"userId" validate:"required"`
	TestID          string         `json:"testId" validate:"required,max=64"`
	Status          TestStatus     `json:"status" validate:"omitempty,oneof=pending processing completed"`
	RawData         map[string]any `json:"rawData"`
	ProcessedData   map[string]any `json:"processedData"`
	Recommendations []string       `json:"recommendations"`
}

func (p *CreateTestResultPayload) Validate() error {
	return validation.Struct(p)
}

type CompleteTestResultPayload struct {
	ResultID        uuid.UUID      `json:"resultId" validate:"required"`
	Score           float64        `json:"score" validate:"gte=0"`
	Grade           *string        `json:"grade" validate:"omitempty,max=8"`
	Percentile      *float64       `json:"percentile" validate:"omitempty,gte=0,lte=100"`
	Feedback        *string        `json:"feedback" validate:"omitempty,max=2000"`
	RawData         map[string]any `json:"rawData"`
	ProcessedData   map[string]any `json:"processedData"`
	Recommendations []string       `json:"recommendations"`
}

func (p *CompleteTestResultPayload) Validate() error {
	return validation.Struct(p)
}

func (p *CompleteTestResultPayload) Completion() TestCompletion {
	return TestCompletion{
		Score:           p.Score,
		Grade:           p.Grade,
		Percentile:      p.Percentile,
		Feedback:        p.Feedback,
		RawData:         p.RawData,
		ProcessedData:   p.ProcessedData,
		Recommendations: p.Recommendations,
	}
}

type SaveTestResultPayload struct {
	UserID uuid.UUID `json:"userId" validate:"required"`
	TestID string    `json:"testId" validate:"required,max=64"`
	Score  float64   `json:"score" validate:"gte=0"`
}

func (p *SaveTestResultPayload) Validate() error {
	return validation.Struct(p)
}

type SubmitWithMLPayload struct {
	UserID      uuid.UUID   `json:"userId" validate:"required"`
	TestID      string      `json:"testId" validate:"required,max=64"`
	Score       float64     `json:"score" validate:"gte=0"`
	MLAnalysis  *MLAnalysis `json:"mlAnalysis" validate:"required"`
	VideoURL    *string     `json:"videoUrl" validate:"omitempty,max=2048"`
	CompletedAt *time.Time  `json:"completedAt"`
}

func (p *SubmitWithMLPayload) Validate() error {
	return validation.Struct(p)
}

type ResultCreated struct {
	ResultID uuid.UUID `json:"resultId"`
	Success  bool      `json:"success"`
}

type CompletionResult struct {
	Success    bool      `json:"success"`
	ResultID   uuid.UUID `json:"resultId"`
	TotalScore float64   `json:"totalScore"`
	Rank       int       `json:"rank"`
}

// SubmissionResult is returned by scored submissions.
type SubmissionResult struct {
	ResultID             uuid.UUID     `json:"resultId"`
	TotalScore           float64       `json:"totalScore"`
	Rank                 int           `json:"rank"`
	UnlockedAchievements []Achievement `json:"unlockedAchievements"`
}
