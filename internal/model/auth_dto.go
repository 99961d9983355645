package model

import (
	"time"

	"github.com/google/uuid"

	"github.com/vitasports/backend/internal/validation"
)

type SignUpPayload struct {
	Email    string `json:"email" validate:"required,email,max=254"`
	Password string `json:"password" validate:"required,min=6,max=72"`
	Name     string `json:"name" validate:"required,min=1,max=100"`
}

func (p *SignUpPayload) Validate() error {
	return validation.Struct(p)
}

type SignInPayload struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

func (p *SignInPayload) Validate() error {
	return validation.Struct(p)
}

// AuthResponse is returned by both sign-up and sign-in.
type AuthResponse struct {
	UserID    uuid.UUID `json:"userId"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	Success   bool      `json:"success"`
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// EmptyPayload is accepted by functions that take no arguments.
type EmptyPayload struct{}

func (p *EmptyPayload) Validate() error {
	return nil
}
