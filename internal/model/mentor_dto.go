package model

import (
	"time"

	"github.com/google/uuid"

	"github.com/vitasports/backend/internal/validation"
)

type CategoryPayload struct {
	Category string `json:"category" query:"category" validate:"required,max=64"`
}

func (p *CategoryPayload) Validate() error {
	return validation.Struct(p)
}

type MentorIDPayload struct {
	MentorID uuid.UUID `json:"mentorId" query:"mentorId" validate:"required"`
}

func (p *MentorIDPayload) Validate() error {
	return validation.Struct(p)
}

type CreateMentorPayload struct {
	Name          string   `json:"name" validate:"required,max=100"`
	Subtitle      string   `json:"subtitle" validate:"max=200"`
	Specialty     string   `json:"specialty" validate:"max=100"`
	Description   string   `json:"description" validate:"max=2000"`
	Rating        float64  `json:"rating" validate:"gte=0,lte=5"`
	SessionsCount int      `json:"sessionsCount" validate:"gte=0"`
	Price         string   `json:"price" validate:"max=50"`
	Categories    []string `json:"categories" validate:"dive,required,max=64"`
	IsOnline      bool     `json:"isOnline"`
	AvatarURL     string   `json:"avatarUrl" validate:"omitempty,url"`
}

func (p *CreateMentorPayload) Validate() error {
	return validation.Struct(p)
}

func (p *CreateMentorPayload) Mentor() Mentor {
	categories := p.Categories
	if categories == nil {
		categories = []string{}
	}
	return Mentor{
		Name:          p.Name,
		Subtitle:      p.Subtitle,
		Specialty:     p.Specialty,
		Description:   p.Description,
		Rating:        p.Rating,
		SessionsCount: p.SessionsCount,
		Price:         p.Price,
		Categories:    categories,
		IsOnline:      p.IsOnline,
		AvatarURL:     p.AvatarURL,
	}
}

// MatchingPayload scores mentors for a user. Both fields are optional.
type MatchingPayload struct {
	UserID    uuid.UUID `json:"userId" query:"userId"`
	Specialty string    `json:"specialty" query:"specialty" validate:"omitempty,max=64"`
}

func (p *MatchingPayload) Validate() error {
	return validation.Struct(p)
}

type BookSessionPayload struct {
	UserID      uuid.UUID   `json:"userId" validate:"required"`
	MentorID    uuid.UUID   `json:"mentorId" validate:"required"`
	Topic       string      `json:"topic" validate:"required,max=200"`
	ScheduledAt time.Time   `json:"scheduledAt" validate:"required"`
	Type        SessionType `json:"type" validate:"required,oneof=video_call chat_session"`
}

func (p *BookSessionPayload) Validate() error {
	if err := validation.Struct(p); err != nil {
		return err
	}
	if !p.ScheduledAt.After(time.Now()) {
		return validation.CustomValidationErrors{
			{Field: "scheduledAt", Message: "must be in the future"},
		}
	}
	return nil
}

type FavoritePayload struct {
	UserID   uuid.UUID `json:"userId" validate:"required"`
	MentorID uuid.UUID `json:"mentorId" validate:"required"`
}

func (p *FavoritePayload) Validate() error {
	return validation.Struct(p)
}

type SessionBooked struct {
	SessionID uuid.UUID `json:"sessionId"`
	Success   bool      `json:"success"`
}

type FavoriteResult struct {
	Favorite bool `json:"favorite"`
}
