// Package model holds the domain types shared by repositories, services and
// handlers.
package model

import (
	"time"

	"github.com/google/uuid"
)

const (
	// InitialCredits is granted to every new account.
	InitialCredits int64 = 100
)

type User struct {
	ID          uuid.UUID      `json:"id" db:"id"`
	Email       string         `json:"email" db:"email"`
	Name        string         `json:"name" db:"name"`
	Phone       *string        `json:"phone,omitempty" db:"phone"`
	DateOfBirth *string        `json:"dateOfBirth,omitempty" db:"date_of_birth"`
	Gender      *string        `json:"gender,omitempty" db:"gender"`
	Height      *float64       `json:"height,omitempty" db:"height"`
	Weight      *float64       `json:"weight,omitempty" db:"weight"`
	Sport       *string        `json:"sport,omitempty" db:"sport"`
	Level       *string        `json:"level,omitempty" db:"level"`
	Bio         *string        `json:"bio,omitempty" db:"bio"`
	AvatarURL   *string        `json:"avatarUrl,omitempty" db:"avatar_url"`
	Preferences map[string]any `json:"preferences,omitempty" db:"preferences"`
	Credits     int64          `json:"credits" db:"credits"`
	TotalScore  float64        `json:"totalScore" db:"total_score"`
	CreatedAt   time.Time      `json:"createdAt" db:"created_at"`
	UpdatedAt   time.Time      `json:"updatedAt" db:"updated_at"`
}

// NewUser is the input for account creation.
type NewUser struct {
	Email        string
	Name         string
	PasswordHash string
	Sport        *string
	Level        *string
	Credits      int64
	TotalScore   float64
}

// UserPatch carries the optional fields of a profile update. Nil fields are
// left untouched.
type UserPatch struct {
	Name        *string
	Phone       *string
	DateOfBirth *string
	Gender      *string
	Height      *float64
	Weight      *float64
	Sport       *string
	Level       *string
	Bio         *string
	AvatarURL   *string
	Preferences map[string]any
}

// Empty reports whether the patch would change nothing.
func (p UserPatch) Empty() bool {
	return p.Name == nil && p.Phone == nil && p.DateOfBirth == nil && p.Gender == nil &&
		p.Height == nil && p.Weight == nil && p.Sport == nil && p.Level == nil &&
		p.Bio == nil && p.AvatarURL == nil && p.Preferences == nil
}

// Credentials is the subset of a user row needed to verify a sign-in.
type Credentials struct {
	ID           uuid.UUID `db:"id"`
	Email        string    `db:"email"`
	Name         string    `db:"name"`
	PasswordHash *string   `db:"password_hash"`
}
