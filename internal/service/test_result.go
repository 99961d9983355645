package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/vitasports/backend/internal/lib/job"
	"github.com/vitasports/backend/internal/model"
	"github.com/vitasports/backend/internal/server"
)

type resultStore interface {
	ListByUser(ctx context.Context, userID uuid.UUID) ([]model.TestResult, error)
	Create(ctx context.Context, in model.NewTestResult) (uuid.UUID, error)
	Submit(ctx context.Context, in model.NewTestResult) (uuid.UUID, model.ScoreUpdate, error)
	Complete(ctx context.Context, resultID uuid.UUID, in model.TestCompletion) (model.ScoreUpdate, error)
	CountByUser(ctx context.Context, userID uuid.UUID) (int, error)
}

type userLookup interface {
	GetByID(ctx context.Context, id uuid.UUID) (*model.User, error)
}

type TestResultService struct {
	results      resultStore
	users        userLookup
	achievements *AchievementService
	cache        ReadCache
	jobs         TaskEnqueuer
	logger       *zerolog.Logger
	now          func() time.Time
}

func NewTestResultService(
	results resultStore,
	users userLookup,
	achievements *AchievementService,
	cache ReadCache,
	jobs TaskEnqueuer,
	logger *zerolog.Logger,
) *TestResultService {
	return &TestResultService{
		results:      results,
		users:        users,
		achievements: achievements,
		cache:        cache,
		jobs:         jobs,
		logger:       logger,
		now:          time.Now,
	}
}

func (s *TestResultService) GetByUser(ctx context.Context, p *model.UserIDPayload) ([]model.TestResult, error) {
	results, err := s.results.ListByUser(ctx, p.UserID)
	if err != nil {
		return nil, err
	}
	if results == nil {
		results = []model.TestResult{}
	}
	return results, nil
}

// Create records an unscored result. The user's total is untouched until
// the result is completed.
func (s *TestResultService) Create(ctx context.Context, p *model.CreateTestResultPayload) (*model.ResultCreated, error) {
	status := p.Status
	if status == "" {
		status = model.TestStatusPending
	}

	id, err := s.results.Create(ctx, model.NewTestResult{
		UserID:          p.UserID,
		TestID:          p.TestID,
		Status:          status,
		RawData:         p.RawData,
		ProcessedData:   p.ProcessedData,
		Recommendations: p.Recommendations,
	})
	if err != nil {
		return nil, err
	}

	return &model.ResultCreated{ResultID: id, Success: true}, nil
}

func (s *TestResultService) Complete(ctx context.Context, p *model.CompleteTestResultPayload) (*model.CompletionResult, error) {
	update, err := s.results.Complete(ctx, p.ResultID, p.Completion())
	if err != nil {
		return nil, err
	}

	s.scoreChanged(ctx, update)

	return &model.CompletionResult{
		Success:    true,
		ResultID:   p.ResultID,
		TotalScore: update.TotalScore,
		Rank:       update.Rank,
	}, nil
}

// Save records a completed result without ML data and applies its score.
func (s *TestResultService) Save(ctx context.Context, p *model.SaveTestResultPayload) (*model.SubmissionResult, error) {
	now := s.now()

	id, update, err := s.results.Submit(ctx, model.NewTestResult{
		UserID:      p.UserID,
		TestID:      p.TestID,
		Score:       p.Score,
		Status:      model.TestStatusCompleted,
		CreatedAt:   now,
		CompletedAt: &now,
	})
	if err != nil {
		return nil, err
	}

	s.scoreChanged(ctx, update)

	return &model.SubmissionResult{
		ResultID:             id,
		TotalScore:           update.TotalScore,
		Rank:                 update.Rank,
		UnlockedAchievements: []model.Achievement{},
	}, nil
}

// SubmitWithML stores an analysed submission, applies its score and
// evaluates achievements. Nothing is written for an unknown user.
func (s *TestResultService) SubmitWithML(ctx context.Context, p *model.SubmitWithMLPayload) (*model.SubmissionResult, error) {
	completedAt := s.now()
	if p.CompletedAt != nil {
		completedAt = *p.CompletedAt
	}

	id, update, err := s.results.Submit(ctx, model.NewTestResult{
		UserID:          p.UserID,
		TestID:          p.TestID,
		Score:           p.Score,
		Status:          model.TestStatusCompleted,
		Recommendations: p.MLAnalysis.Recommendations,
		MLAnalysis:      p.MLAnalysis,
		VideoURL:        p.VideoURL,
		CreatedAt:       completedAt,
		CompletedAt:     &completedAt,
	})
	if err != nil {
		return nil, err
	}

	s.scoreChanged(ctx, update)
	unlocked := s.unlockAchievements(ctx, id, p)
	s.enqueueResultEmail(ctx, p, update)

	return &model.SubmissionResult{
		ResultID:             id,
		TotalScore:           update.TotalScore,
		Rank:                 update.Rank,
		UnlockedAchievements: unlocked,
	}, nil
}

// unlockAchievements runs after the submission has committed, so failures
// are logged and reported as no unlocks.
func (s *TestResultService) unlockAchievements(ctx context.Context, resultID uuid.UUID, p *model.SubmitWithMLPayload) []model.Achievement {
	log := s.logger.With().
		Str("user_id", p.UserID.String()).
		Str("result_id", resultID.String()).
		Logger()

	count, err := s.results.CountByUser(ctx, p.UserID)
	if err != nil {
		log.Error().Err(err).Msg("failed to count results for achievements")
		return []model.Achievement{}
	}

	unlocked, err := s.achievements.Unlock(ctx, p.UserID, achievementInput{
		TestID:      p.TestID,
		Score:       p.Score,
		Analysis:    p.MLAnalysis,
		ResultCount: count,
	})
	if err != nil {
		log.Error().Err(err).Msg("failed to unlock achievements")
		return []model.Achievement{}
	}
	if len(unlocked) > 0 {
		log.Info().Int("count", len(unlocked)).Msg("achievements unlocked")
	}
	return unlocked
}

// scoreChanged invalidates cached leaderboards, notifies realtime
// subscribers and schedules the stored rank recompute. Failures are logged.
func (s *TestResultService) scoreChanged(ctx context.Context, update model.ScoreUpdate) {
	log := s.logger.With().Str("user_id", update.UserID.String()).Logger()

	if _, err := s.cache.Bump(ctx, LeaderboardNamespace); err != nil {
		log.Warn().Err(err).Msg("failed to invalidate leaderboard cache")
	}

	event := model.LeaderboardEvent{
		Type:       model.LeaderboardEventScoreUpdated,
		UserID:     update.UserID,
		TotalScore: update.TotalScore,
		Rank:       update.Rank,
		At:         s.now().UTC(),
	}
	if err := s.cache.Publish(ctx, server.LeaderboardChannel, event); err != nil {
		log.Warn().Err(err).Msg("failed to publish leaderboard update")
	}

	if err := s.jobs.EnqueueRankRecompute(ctx); err != nil {
		log.Error().Err(err).Msg("failed to enqueue rank recompute")
	}
}

func (s *TestResultService) enqueueResultEmail(ctx context.Context, p *model.SubmitWithMLPayload, update model.ScoreUpdate) {
	user, err := s.users.GetByID(ctx, p.UserID)
	if err != nil {
		s.logger.Warn().Err(err).Str("user_id", p.UserID.String()).Msg("skipping result email")
		return
	}

	err = s.jobs.EnqueueTestResultEmail(ctx, job.TestResultEmailPayload{
		To:       user.Email,
		UserName: user.Name,
		TestType: p.TestID,
		Score:    p.Score,
		Rank:     update.Rank,
	})
	if err != nil {
		s.logger.Error().Err(err).Str("user_id", p.UserID.String()).Msg("failed to enqueue result email")
	}
}
