package model

import (
	"github.com/google/uuid"

	"github.com/vitasports/backend/internal/validation"
)

type CreateBodyLogPayload struct {
	UserID     uuid.UUID `json:"userId" validate:"required"`
	Date       string    `json:"date" validate:"omitempty,datetime=2006-01-02"`
	Weight     *float64  `json:"weight" validate:"omitempty,gt=0,lte=500"`
	Height     *float64  `json:"height" validate:"omitempty,gt=0,lte=300"`
	BodyFat    *float64  `json:"bodyFat" validate:"omitempty,gte=0,lte=100"`
	MuscleMass *float64  `json:"muscleMass" validate:"omitempty,gte=0,lte=500"`
	Notes      *string   `json:"notes" validate:"omitempty,max=1000"`
}

func (p *CreateBodyLogPayload) Validate() error {
	return validation.Struct(p)
}

type BodyLogsPayload struct {
	UserID uuid.UUID `json:"userId" query:"userId" validate:"required"`
	Limit  int       `json:"limit" query:"limit" validate:"gte=0,lte=365"`
}

func (p *BodyLogsPayload) Validate() error {
	return validation.Struct(p)
}

type BodyLogCreated struct {
	BodyLogID uuid.UUID `json:"bodyLogId"`
}
