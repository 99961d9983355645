package service

import (
	"context"

	"github.com/google/uuid"

	"github.com/vitasports/backend/internal/model"
)

type achievementStore interface {
	Unlock(ctx context.Context, userID uuid.UUID, ids []string) ([]string, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]model.UserAchievement, error)
}

type AchievementService struct {
	achievements achievementStore
}

func NewAchievementService(achievements achievementStore) *AchievementService {
	return &AchievementService{achievements: achievements}
}

func (s *AchievementService) List() []model.Achievement {
	return model.Achievements
}

// GetByUser joins the user's unlocks with the catalog. Unlocks of retired
// achievements are skipped.
func (s *AchievementService) GetByUser(ctx context.Context, p *model.UserIDPayload) ([]model.UnlockedAchievement, error) {
	rows, err := s.achievements.ListByUser(ctx, p.UserID)
	if err != nil {
		return nil, err
	}

	out := make([]model.UnlockedAchievement, 0, len(rows))
	for _, row := range rows {
		a, ok := model.AchievementByID(row.AchievementID)
		if !ok {
			continue
		}
		out = append(out, model.UnlockedAchievement{Achievement: a, UnlockedAt: row.UnlockedAt})
	}
	return out, nil
}

// Unlock records every rule satisfied by a submission and returns the
// achievements that were new for the user.
func (s *AchievementService) Unlock(ctx context.Context, userID uuid.UUID, sub achievementInput) ([]model.Achievement, error) {
	earned := evaluateAchievements(sub)
	if len(earned) == 0 {
		return []model.Achievement{}, nil
	}

	fresh, err := s.achievements.Unlock(ctx, userID, earned)
	if err != nil {
		return nil, err
	}

	out := make([]model.Achievement, 0, len(fresh))
	for _, id := range fresh {
		if a, ok := model.AchievementByID(id); ok {
			out = append(out, a)
		}
	}
	return out, nil
}

type achievementInput struct {
	TestID      string
	Score       float64
	Analysis    *model.MLAnalysis
	ResultCount int
}

func evaluateAchievements(in achievementInput) []string {
	var ids []string

	if in.ResultCount == 1 {
		ids = append(ids, model.AchievementFirstTest)
	}
	if in.Score >= 100 {
		ids = append(ids, model.AchievementCenturyScore)
	}
	if in.Score >= 200 {
		ids = append(ids, model.AchievementDoubleCentury)
	}

	a := in.Analysis
	if a == nil {
		return ids
	}

	if a.FormScore >= 95 && !a.CheatDetected {
		ids = append(ids, model.AchievementPerfectForm)
	}
	switch in.TestID {
	case "sit-ups":
		if a.Repetitions >= 50 {
			ids = append(ids, model.AchievementSitUpMaster)
		}
	case "push-ups":
		if a.Repetitions >= 30 {
			ids = append(ids, model.AchievementPushUpChampion)
		}
	case "vertical-jump":
		if a.KeyPointFloat("jump_height") >= 60 {
			ids = append(ids, model.AchievementHighJumper)
		}
	}

	return ids
}
