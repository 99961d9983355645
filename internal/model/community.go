package model

import (
	"time"

	"github.com/google/uuid"
)

type CommunityPost struct {
	ID        uuid.UUID `json:"id" db:"id"`
	UserID    uuid.UUID `json:"userId" db:"user_id"`
	UserName  string    `json:"userName" db:"user_name"`
	Content   string    `json:"content" db:"content"`
	Type      string    `json:"type" db:"type"`
	ImageURL  *string   `json:"imageUrl,omitempty" db:"image_url"`
	Likes     int       `json:"likes" db:"likes"`
	Comments  int       `json:"comments" db:"comments"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
}

type NewCommunityPost struct {
	UserID    uuid.UUID
	Content   string
	Type      string
	ImageURL  *string
	Likes     int
	CreatedAt time.Time
}

type CommunityGroup struct {
	ID          uuid.UUID  `json:"id" db:"id"`
	Name        string     `json:"name" db:"name"`
	Description string     `json:"description" db:"description"`
	Category    string     `json:"category" db:"category"`
	MemberCount int        `json:"memberCount" db:"member_count"`
	IsPublic    bool       `json:"isPublic" db:"is_public"`
	CreatedBy   *uuid.UUID `json:"createdBy,omitempty" db:"created_by"`
	CreatedAt   time.Time  `json:"createdAt" db:"created_at"`
}

type Challenge struct {
	ID            uuid.UUID `json:"id" db:"id"`
	Title         string    `json:"title" db:"title"`
	Description   string    `json:"description" db:"description"`
	Type          string    `json:"type" db:"type"`
	TargetValue   float64   `json:"targetValue" db:"target_value"`
	RewardCredits int64     `json:"rewardCredits" db:"reward_credits"`
	StartDate     time.Time `json:"startDate" db:"start_date"`
	EndDate       time.Time `json:"endDate" db:"end_date"`
	Participants  int       `json:"participants" db:"participants"`
	IsActive      bool      `json:"isActive" db:"is_active"`
	CreatedAt     time.Time `json:"createdAt" db:"created_at"`
}
