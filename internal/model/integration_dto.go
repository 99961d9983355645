package model

import (
	"time"

	"github.com/google/uuid"

	"github.com/vitasports/backend/internal/validation"
)

type SendTestResultPayload struct {
	UserEmail string  `json:"userEmail" validate:"required,email"`
	UserName  string  `json:"userName" validate:"required,max=100"`
	TestType  string  `json:"testType" validate:"required,max=64"`
	Score     float64 `json:"score" validate:"gte=0"`
	Rank      int     `json:"rank" validate:"gte=0"`
}

func (p *SendTestResultPayload) Validate() error {
	return validation.Struct(p)
}

// EmailSendResult reports a synchronous send. Failures are not API errors.
type EmailSendResult struct {
	Success bool   `json:"success"`
	EmailID string `json:"emailId,omitempty"`
	Error   string `json:"error,omitempty"`
}

type PreviewPayload struct {
	Template string `json:"template" query:"template" validate:"required"`
}

func (p *PreviewPayload) Validate() error {
	return validation.Struct(p)
}

type EmailPreview struct {
	Template string `json:"template"`
	HTML     string `json:"html"`
}

type UploadURLPayload struct {
	UserID      uuid.UUID `json:"userId" validate:"required"`
	FileName    string    `json:"fileName" validate:"max=255"`
	ContentType string    `json:"contentType" validate:"omitempty,max=100"`
}

func (p *UploadURLPayload) Validate() error {
	return validation.Struct(p)
}

type UploadURL struct {
	UploadURL string    `json:"uploadUrl"`
	ObjectKey string    `json:"objectKey"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// SeedResult is returned by the demo data functions.
type SeedResult struct {
	Message string      `json:"message"`
	Count   int64       `json:"count"`
	Tables  SeedSummary `json:"tables,omitempty"`
}
