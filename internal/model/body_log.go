package model

import (
	"time"

	"github.com/google/uuid"
)

type BodyLog struct {
	ID         uuid.UUID `json:"id" db:"id"`
	UserID     uuid.UUID `json:"userId" db:"user_id"`
	LoggedOn   time.Time `json:"date" db:"logged_on"`
	Weight     *float64  `json:"weight,omitempty" db:"weight"`
	Height     *float64  `json:"height,omitempty" db:"height"`
	BodyFat    *float64  `json:"bodyFat,omitempty" db:"body_fat"`
	MuscleMass *float64  `json:"muscleMass,omitempty" db:"muscle_mass"`
	Notes      *string   `json:"notes,omitempty" db:"notes"`
	CreatedAt  time.Time `json:"createdAt" db:"created_at"`
}

type NewBodyLog struct {
	UserID     uuid.UUID
	LoggedOn   time.Time
	Weight     *float64
	Height     *float64
	BodyFat    *float64
	MuscleMass *float64
	Notes      *string
}
