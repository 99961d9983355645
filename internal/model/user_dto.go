package model

import (
	"github.com/google/uuid"

	"github.com/vitasports/backend/internal/validation"
)

// UserIDPayload is the argument of every read keyed by user.
type UserIDPayload struct {
	UserID uuid.UUID `json:"userId" query:"userId" validate:"required"`
}

func (p *UserIDPayload) Validate() error {
	return validation.Struct(p)
}

type UpdateUserPayload struct {
	UserID      uuid.UUID `json:"userId" validate:"required"`
	Name        *string   `json:"name" validate:"omitempty,min=1,max=100"`
	Phone       *string   `json:"phone" validate:"omitempty,max=32"`
	DateOfBirth *string   `json:"dateOfBirth" validate:"omitempty,datetime=2006-01-02"`
	Gender      *string   `json:"gender" validate:"omitempty,oneof=male female other"`
	Height      *float64  `json:"height" validate:"omitempty,gt=0,lte=300"`
	Weight      *float64  `json:"weight" validate:"omitempty,gt=0,lte=500"`
	Sport       *string   `json:"sport" validate:"omitempty,max=100"`
	Level       *string   `json:"level" validate:"omitempty,max=50"`
}

func (p *UpdateUserPayload) Validate() error {
	return validation.Struct(p)
}

func (p *UpdateUserPayload) Patch() UserPatch {
	return UserPatch{
		Name:        p.Name,
		Phone:       p.Phone,
		DateOfBirth: p.DateOfBirth,
		Gender:      p.Gender,
		Height:      p.Height,
		Weight:      p.Weight,
		Sport:       p.Sport,
		Level:       p.Level,
	}
}

type UpdateProfilePayload struct {
	UserID      uuid.UUID      `json:"userId" validate:"required"`
	Name        *string        `json:"name" validate:"omitempty,min=1,max=100"`
	Bio         *string        `json:"bio" validate:"omitempty,max=500"`
	AvatarURL   *string        `json:"avatarUrl" validate:"omitempty,url"`
	Preferences map[string]any `json:"preferences"`
}

func (p *UpdateProfilePayload) Validate() error {
	return validation.Struct(p)
}

func (p *UpdateProfilePayload) Patch() UserPatch {
	return UserPatch{
		Name:        p.Name,
		Bio:         p.Bio,
		AvatarURL:   p.AvatarURL,
		Preferences: p.Preferences,
	}
}

type UpdateResult struct {
	Success bool      `json:"success"`
	UserID  uuid.UUID `json:"userId"`
}

// ProfileWithStats is the user document enriched with ML aggregates.
type ProfileWithStats struct {
	User
	Rank         int     `json:"rank"`
	MLStats      MLStats `json:"mlStats"`
	TestResults  int     `json:"testResults"`
	Achievements int     `json:"achievements"`
}

type ProfileStats struct {
	TotalTests     int     `json:"totalTests"`
	CompletedTests int     `json:"completedTests"`
	AverageScore   float64 `json:"averageScore"`
	Achievements   int     `json:"achievements"`
	Level          int     `json:"level"`
}

type DetailedProfile struct {
	User
	Stats         ProfileStats `json:"stats"`
	LatestBodyLog *BodyLog     `json:"latestBodyLog"`
}
