package model

import (
	"time"

	"github.com/google/uuid"
)

type Mentor struct {
	ID            uuid.UUID `json:"id" db:"id"`
	Name          string    `json:"name" db:"name"`
	Subtitle      string    `json:"subtitle" db:"subtitle"`
	Specialty     string    `json:"specialty" db:"specialty"`
	Description   string    `json:"description" db:"description"`
	Rating        float64   `json:"rating" db:"rating"`
	SessionsCount int       `json:"sessionsCount" db:"sessions_count"`
	Price         string    `json:"price" db:"price"`
	Categories    []string  `json:"categories" db:"categories"`
	IsOnline      bool      `json:"isOnline" db:"is_online"`
	AvatarURL     string    `json:"avatarUrl" db:"avatar_url"`
	CreatedAt     time.Time `json:"createdAt" db:"created_at"`
}

// HasCategory reports whether the mentor lists category exactly.
func (m Mentor) HasCategory(category string) bool {
	for _, c := range m.Categories {
		if c == category {
			return true
		}
	}
	return false
}

// MatchedMentor is a mentor scored against a user's assessment history.
type MatchedMentor struct {
	Mentor
	MatchingScore float64 `json:"matchingScore"`
}

type SessionType string

const (
	SessionTypeVideoCall   SessionType = "video_call"
	SessionTypeChatSession SessionType = "chat_session"
)

type SessionStatus string

const (
	SessionStatusUpcoming  SessionStatus = "upcoming"
	SessionStatusCompleted SessionStatus = "completed"
	SessionStatusCancelled SessionStatus = "cancelled"
)

type MentorSession struct {
	ID              uuid.UUID     `json:"id" db:"id"`
	UserID          uuid.UUID     `json:"userId" db:"user_id"`
	MentorID        uuid.UUID     `json:"mentorId" db:"mentor_id"`
	MentorName      string        `json:"mentorName" db:"mentor_name"`
	Topic           string        `json:"topic" db:"topic"`
	Type            SessionType   `json:"type" db:"type"`
	Status          SessionStatus `json:"status" db:"status"`
	ScheduledAt     time.Time     `json:"scheduledAt" db:"scheduled_at"`
	DurationMinutes int           `json:"durationMinutes" db:"duration_minutes"`
	Rating          *float64      `json:"rating,omitempty" db:"rating"`
	Notes           *string       `json:"notes,omitempty" db:"notes"`
	CreatedAt       time.Time     `json:"createdAt" db:"created_at"`
}

type NewMentorSession struct {
	UserID          uuid.UUID
	MentorID        uuid.UUID
	Topic           string
	Type            SessionType
	Status          SessionStatus
	ScheduledAt     time.Time
	DurationMinutes int
	Rating          *float64
}
