package model

import (
	"time"

	"github.com/google/uuid"
)

// DemoUser is a seeded account with a pre-assigned id.
type DemoUser struct {
	ID           uuid.UUID
	Email        string
	Name         string
	PasswordHash string
	Sport        string
	Level        string
	Credits      int64
	TotalScore   float64
	CreatedAt    time.Time
}

type GroupMembership struct {
	GroupID uuid.UUID
	UserID  uuid.UUID
}

type MentorFavorite struct {
	UserID   uuid.UUID
	MentorID uuid.UUID
}

type DemoPurchase struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	ProductID uuid.UUID
	Quantity  int
	TotalCost int64
	Status    string
	CreatedAt time.Time
}

// DemoDataset is everything written by a full demo seed. Rows reference each
// other by the ids assigned when the dataset is generated.
type DemoDataset struct {
	Users        []DemoUser
	TestResults  []NewTestResult
	Credits      []NewCreditTransaction
	Groups       []CommunityGroup
	Memberships  []GroupMembership
	Posts        []NewCommunityPost
	Challenges   []Challenge
	Achievements []UserAchievement
	BodyLogs     []NewBodyLog
	Products     []Product
	Purchases    []DemoPurchase
	Sessions     []NewMentorSession
	Favorites    []MentorFavorite
}

// SeedSummary counts the rows written per table.
type SeedSummary map[string]int64
