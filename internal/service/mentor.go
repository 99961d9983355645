package service

import (
	"cmp"
	"context"
	"slices"
	"strings"

	"github.com/google/uuid"

	"github.com/vitasports/backend/internal/lib/utils"
	"github.com/vitasports/backend/internal/model"
)

const (
	defaultSessionMinutes = 60
	maxMatchingScore      = 100.0
)

// Mentor categories that the matching rules look for.
const (
	CategoryFormCorrection      = "form_correction"
	CategoryTechniqueSpecialist = "technique_specialist"
	CategoryPostureExpert       = "posture_expert"
)

type mentorStore interface {
	List(ctx context.Context) ([]model.Mentor, error)
	ListByCategory(ctx context.Context, category string) ([]model.Mentor, error)
	GetByID(ctx context.Context, id uuid.UUID) (*model.Mentor, error)
	Create(ctx context.Context, m model.Mentor) (*model.Mentor, error)
	ListSessionsByUser(ctx context.Context, userID uuid.UUID) ([]model.MentorSession, error)
	CreateSession(ctx context.Context, in model.NewMentorSession) (uuid.UUID, error)
	ToggleFavorite(ctx context.Context, userID, mentorID uuid.UUID) (bool, error)
	ListFavorites(ctx context.Context, userID uuid.UUID) ([]model.Mentor, error)
}

type MentorService struct {
	mentors mentorStore
	users   userLookup
	results resultReader
}

func NewMentorService(mentors mentorStore, users userLookup, results resultReader) *MentorService {
	return &MentorService{mentors: mentors, users: users, results: results}
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}

func (s *MentorService) List(ctx context.Context) ([]model.Mentor, error) {
	mentors, err := s.mentors.List(ctx)
	return nonNil(mentors), err
}

func (s *MentorService) GetByCategory(ctx context.Context, p *model.CategoryPayload) ([]model.Mentor, error) {
	mentors, err := s.mentors.ListByCategory(ctx, p.Category)
	return nonNil(mentors), err
}

func (s *MentorService) GetByID(ctx context.Context, p *model.MentorIDPayload) (*model.Mentor, error) {
	return s.mentors.GetByID(ctx, p.MentorID)
}

func (s *MentorService) Create(ctx context.Context, p *model.CreateMentorPayload) (*model.Mentor, error) {
	return s.mentors.Create(ctx, p.Mentor())
}

// GetWithMatching lists mentors, optionally narrowed to a specialty, and
// ranks them against the user's assessment history when a user is given.
func (s *MentorService) GetWithMatching(ctx context.Context, p *model.MatchingPayload) ([]model.MatchedMentor, error) {
	var (
		mentors []model.Mentor
		err     error
	)
	if p.Specialty != "" {
		mentors, err = s.mentors.ListByCategory(ctx, p.Specialty)
	} else {
		mentors, err = s.mentors.List(ctx)
	}
	if err != nil {
		return nil, err
	}

	matched := make([]model.MatchedMentor, len(mentors))
	for i, m := range mentors {
		matched[i] = model.MatchedMentor{Mentor: m}
	}

	if p.UserID == uuid.Nil {
		return matched, nil
	}

	if _, err := s.users.GetByID(ctx, p.UserID); err != nil {
		return nil, err
	}
	results, err := s.results.ListByUser(ctx, p.UserID)
	if err != nil {
		return nil, err
	}
	profile := newMatchProfile(results)

	for i := range matched {
		matched[i].MatchingScore = matchingScore(matched[i].Mentor, profile)
	}
	slices.SortStableFunc(matched, func(a, b model.MatchedMentor) int {
		return cmp.Compare(b.MatchingScore, a.MatchingScore)
	})

	return matched, nil
}

type matchProfile struct {
	hasResults bool
	stats      model.MLStats
	testTypes  []string
}

func newMatchProfile(results []model.TestResult) matchProfile {
	stats := computeMLStats(results)

	types := make([]string, 0, len(stats.TestsByType))
	for t := range stats.TestsByType {
		types = append(types, t)
	}
	slices.Sort(types)

	return matchProfile{
		hasResults: len(results) > 0,
		stats:      stats,
		testTypes:  types,
	}
}

// matchingScore rewards mentors whose categories address the user's weak
// spots. A user without results is matched on rating alone.
func matchingScore(m model.Mentor, profile matchProfile) float64 {
	score := m.Rating * 2

	if profile.hasResults {
		if profile.stats.AverageFormScore < 70 && m.HasCategory(CategoryFormCorrection) {
			score += 30
		}
		if profile.stats.CheatDetectionRate > 20 && m.HasCategory(CategoryTechniqueSpecialist) {
			score += 25
		}
		if profile.stats.AveragePoseAccuracy < 80 && m.HasCategory(CategoryPostureExpert) {
			score += 20
		}
	}

	for _, category := range m.Categories {
		for _, t := range profile.testTypes {
			if strings.Contains(category, t) {
				score += 15
				break
			}
		}
	}

	return utils.Round(min(score, maxMatchingScore), 1)
}

func (s *MentorService) GetSessions(ctx context.Context, p *model.UserIDPayload) ([]model.MentorSession, error) {
	sessions, err := s.mentors.ListSessionsByUser(ctx, p.UserID)
	return nonNil(sessions), err
}

func (s *MentorService) BookSession(ctx context.Context, p *model.BookSessionPayload) (*model.SessionBooked, error) {
	id, err := s.mentors.CreateSession(ctx, model.NewMentorSession{
		UserID:          p.UserID,
		MentorID:        p.MentorID,
		Topic:           strings.TrimSpace(p.Topic),
		Type:            p.Type,
		Status:          model.SessionStatusUpcoming,
		ScheduledAt:     p.ScheduledAt,
		DurationMinutes: defaultSessionMinutes,
	})
	if err != nil {
		return nil, err
	}
	return &model.SessionBooked{SessionID: id, Success: true}, nil
}

func (s *MentorService) ToggleFavorite(ctx context.Context, p *model.FavoritePayload) (*model.FavoriteResult, error) {
	favorite, err := s.mentors.ToggleFavorite(ctx, p.UserID, p.MentorID)
	if err != nil {
		return nil, err
	}
	return &model.FavoriteResult{Favorite: favorite}, nil
}

func (s *MentorService) GetFavorites(ctx context.Context, p *model.UserIDPayload) ([]model.Mentor, error) {
	mentors, err := s.mentors.ListFavorites(ctx, p.UserID)
	return nonNil(mentors), err
}
