package model

import (
	"github.com/google/uuid"

	"github.com/vitasports/backend/internal/validation"
)

type PostsPayload struct {
	Limit int `json:"limit" query:"limit" validate:"gte=0"`
}

func (p *PostsPayload) Validate() error {
	return validation.Struct(p)
}

type CreatePostPayload struct {
	UserID   uuid.UUID `json:"userId" validate:"required"`
	Content  string    `json:"content" validate:"required,max=2000"`
	Type     string    `json:"type" validate:"omitempty,max=50"`
	ImageURL *string   `json:"imageUrl" validate:"omitempty,url"`
}

func (p *CreatePostPayload) Validate() error {
	return validation.Struct(p)
}

type LikePostPayload struct {
	PostID uuid.UUID `json:"postId" validate:"required"`
	UserID uuid.UUID `json:"userId" validate:"required"`
}

func (p *LikePostPayload) Validate() error {
	return validation.Struct(p)
}

type JoinGroupPayload struct {
	UserID  uuid.UUID `json:"userId" validate:"required"`
	GroupID uuid.UUID `json:"groupId" validate:"required"`
}

func (p *JoinGroupPayload) Validate() error {
	return validation.Struct(p)
}

type PostCreated struct {
	PostID uuid.UUID `json:"postId"`
}

type LikeResult struct {
	Success bool `json:"success"`
	Likes   int  `json:"likes"`
}

type JoinResult struct {
	Joined bool `json:"joined"`
}
