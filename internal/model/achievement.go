package model

import (
	"time"

	"github.com/google/uuid"
)

type Achievement struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
}

type UserAchievement struct {
	UserID        uuid.UUID `json:"userId" db:"user_id"`
	AchievementID string    `json:"achievementId" db:"achievement_id"`
	UnlockedAt    time.Time `json:"unlockedAt" db:"unlocked_at"`
}

// UnlockedAchievement joins an unlock with its catalog entry.
type UnlockedAchievement struct {
	Achievement
	UnlockedAt time.Time `json:"unlockedAt"`
}

const (
	AchievementFirstTest      = "first_test"
	AchievementCenturyScore   = "century_score"
	AchievementDoubleCentury  = "double_century"
	AchievementPerfectForm    = "perfect_form"
	AchievementSitUpMaster    = "sit_up_master"
	AchievementPushUpChampion = "push_up_champion"
	AchievementHighJumper     = "high_jumper"
)

// Achievements is the catalog of unlockable badges in display order.
var Achievements = []Achievement{
	{ID: AchievementFirstTest, Name: "First Steps", Description: "Complete your first assessment", Icon: "🎯"},
	{ID: AchievementCenturyScore, Name: "Century", Description: "Score 100 or more in a single test", Icon: "💯"},
	{ID: AchievementDoubleCentury, Name: "Double Century", Description: "Score 200 or more in a single test", Icon: "🔥"},
	{ID: AchievementPerfectForm, Name: "Perfect Form", Description: "Reach a form score of 95 without a cheat flag", Icon: "✨"},
	{ID: AchievementSitUpMaster, Name: "Sit-Up Master", Description: "Complete 50 sit-ups in one test", Icon: "🏋️"},
	{ID: AchievementPushUpChampion, Name: "Push-Up Champion", Description: "Complete 30 push-ups in one test", Icon: "💪"},
	{ID: AchievementHighJumper, Name: "High Jumper", Description: "Jump 60 cm or higher", Icon: "🦘"},
}

// AchievementByID looks up a catalog entry.
func AchievementByID(id string) (Achievement, bool) {
	for _, a := range Achievements {
		if a.ID == id {
			return a, true
		}
	}
	return Achievement{}, false
}
