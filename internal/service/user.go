package service

import (
	"context"
	"fmt"
	"slices"
	"time"

	"github.com/google/uuid"

	"github.com/vitasports/backend/internal/lib/utils"
	"github.com/vitasports/backend/internal/model"
)

const (
	weeklyGoal        = 3
	passingScore      = 70.0
	testsPerLevel     = 10
	improvementWindow = 5
)

type userStore interface {
	GetByID(ctx context.Context, id uuid.UUID) (*model.User, error)
	Update(ctx context.Context, id uuid.UUID, patch model.UserPatch) error
}

type resultReader interface {
	ListByUser(ctx context.Context, userID uuid.UUID) ([]model.TestResult, error)
}

type rankReader interface {
	RankOf(ctx context.Context, userID uuid.UUID) (int, error)
}

type achievementCounter interface {
	CountByUser(ctx context.Context, userID uuid.UUID) (int, error)
}

type latestBodyLogReader interface {
	Latest(ctx context.Context, userID uuid.UUID) (*model.BodyLog, error)
}

type UserService struct {
	users        userStore
	results      resultReader
	ranks        rankReader
	achievements achievementCounter
	bodyLogs     latestBodyLogReader
	now          func() time.Time
}

func NewUserService(
	users userStore,
	results resultReader,
	ranks rankReader,
	achievements achievementCounter,
	bodyLogs latestBodyLogReader,
) *UserService {
	return &UserService{
		users:        users,
		results:      results,
		ranks:        ranks,
		achievements: achievements,
		bodyLogs:     bodyLogs,
		now:          time.Now,
	}
}

func (s *UserService) GetByID(ctx context.Context, p *model.UserIDPayload) (*model.User, error) {
	return s.users.GetByID(ctx, p.UserID)
}

func (s *UserService) Update(ctx context.Context, p *model.UpdateUserPayload) (*model.UpdateResult, error) {
	return s.patch(ctx, p.UserID, p.Patch())
}

func (s *UserService) UpdateProfile(ctx context.Context, p *model.UpdateProfilePayload) (*model.UpdateResult, error) {
	return s.patch(ctx, p.UserID, p.Patch())
}

// patch still touches updated_at for an empty patch so a missing user is
// reported either way.
func (s *UserService) patch(ctx context.Context, id uuid.UUID, patch model.UserPatch) (*model.UpdateResult, error) {
	if err := s.users.Update(ctx, id, patch); err != nil {
		return nil, err
	}
	return &model.UpdateResult{Success: true, UserID: id}, nil
}

func (s *UserService) GetProfileWithStats(ctx context.Context, p *model.UserIDPayload) (*model.ProfileWithStats, error) {
	user, err := s.users.GetByID(ctx, p.UserID)
	if err != nil {
		return nil, err
	}

	results, err := s.results.ListByUser(ctx, user.ID)
	if err != nil {
		return nil, err
	}

	rank, err := s.ranks.RankOf(ctx, user.ID)
	if err != nil {
		return nil, err
	}

	achievements, err := s.achievements.CountByUser(ctx, user.ID)
	if err != nil {
		return nil, err
	}

	return &model.ProfileWithStats{
		User:         *user,
		Rank:         rank,
		MLStats:      computeMLStats(results),
		TestResults:  len(results),
		Achievements: achievements,
	}, nil
}

func (s *UserService) GetDetailedProfile(ctx context.Context, p *model.UserIDPayload) (*model.DetailedProfile, error) {
	user, err := s.users.GetByID(ctx, p.UserID)
	if err != nil {
		return nil, err
	}

	results, err := s.results.ListByUser(ctx, user.ID)
	if err != nil {
		return nil, err
	}

	achievements, err := s.achievements.CountByUser(ctx, user.ID)
	if err != nil {
		return nil, err
	}

	latest, err := s.bodyLogs.Latest(ctx, user.ID)
	if err != nil {
		return nil, err
	}

	stats := model.ProfileStats{
		TotalTests:   len(results),
		Achievements: achievements,
		Level:        len(results)/testsPerLevel + 1,
	}
	var total float64
	for _, r := range results {
		total += r.Score
		if r.Score >= passingScore {
			stats.CompletedTests++
		}
	}
	if len(results) > 0 {
		stats.AverageScore = utils.Round(total/float64(len(results)), 1)
	}

	return &model.DetailedProfile{
		User:          *user,
		Stats:         stats,
		LatestBodyLog: latest,
	}, nil
}

func (s *UserService) GetStats(ctx context.Context, p *model.UserIDPayload) (*model.UserStats, error) {
	if _, err := s.users.GetByID(ctx, p.UserID); err != nil {
		return nil, err
	}

	results, err := s.results.ListByUser(ctx, p.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to load results: %w", err)
	}

	stats := computeUserStats(results, s.now())
	return &stats, nil
}

// computeMLStats aggregates the ML analysis attached to results. Results
// without analysis only count towards TestsByType.
func computeMLStats(results []model.TestResult) model.MLStats {
	stats := model.MLStats{TestsByType: map[string]int{}}

	var (
		analysed  int
		cheats    int
		formTotal float64
		poseTotal float64
	)
	for _, r := range results {
		stats.TestsByType[r.TestID]++

		if r.MLAnalysis == nil {
			continue
		}
		analysed++
		formTotal += r.MLAnalysis.FormScore
		poseTotal += r.MLAnalysis.PoseAccuracy
		stats.TotalRepetitions += r.MLAnalysis.Repetitions
		if r.MLAnalysis.CheatDetected {
			cheats++
		}
	}

	if analysed > 0 {
		n := float64(analysed)
		stats.AverageFormScore = utils.Round(formTotal/n, 1)
		stats.AveragePoseAccuracy = utils.Round(poseTotal/n, 1)
		stats.CheatDetectionRate = utils.Round(float64(cheats)/n*100, 1)
	}

	return stats
}

// computeUserStats summarises completed results in any order relative to
// now. Pending and processing results are ignored.
func computeUserStats(results []model.TestResult, now time.Time) model.UserStats {
	ordered := slices.DeleteFunc(slices.Clone(results), func(r model.TestResult) bool {
		return r.Status != model.TestStatusCompleted
	})

	stats := model.UserStats{
		TotalTests: len(ordered),
		WeeklyGoal: weeklyGoal,
	}
	if len(ordered) == 0 {
		return stats
	}

	slices.SortFunc(ordered, func(a, b model.TestResult) int {
		return a.CreatedAt.Compare(b.CreatedAt)
	})

	var total float64
	for _, r := range ordered {
		total += r.Score
		stats.BestScore = max(stats.BestScore, r.Score)
	}
	stats.AvgScore = utils.Round(total/float64(len(ordered)), 1)
	stats.BestScore = utils.Round(stats.BestScore, 1)
	stats.ImprovementRate = improvementRate(ordered)

	weekStart := startOfWeek(now)
	for _, r := range ordered {
		if !r.CreatedAt.Before(weekStart) {
			stats.CompletedThisWeek++
		}
	}

	stats.Streak = streak(ordered, now)
	return stats
}

// improvementRate compares the mean of the oldest and the newest window of
// chronologically ordered results, as a percentage.
func improvementRate(ordered []model.TestResult) float64 {
	if len(ordered) < 2 {
		return 0
	}
	window := min(improvementWindow, len(ordered)/2)

	first := meanScore(ordered[:window])
	last := meanScore(ordered[len(ordered)-window:])
	if first == 0 {
		return 0
	}
	return utils.Round((last-first)/first*100, 1)
}

func meanScore(results []model.TestResult) float64 {
	var total float64
	for _, r := range results {
		total += r.Score
	}
	return total / float64(len(results))
}

// startOfWeek returns Monday 00:00 UTC of the week containing t.
func startOfWeek(t time.Time) time.Time {
	day := truncateDay(t)
	offset := (int(day.Weekday()) + 6) % 7
	return day.AddDate(0, 0, -offset)
}

func truncateDay(t time.Time) time.Time {
	u := t.UTC()
	return time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)
}

// streak counts consecutive UTC days, ending today, with at least one result.
func streak(results []model.TestResult, now time.Time) int {
	days := make(map[time.Time]struct{}, len(results))
	for _, r := range results {
		days[truncateDay(r.CreatedAt)] = struct{}{}
	}

	count := 0
	for day := truncateDay(now); ; day = day.AddDate(0, 0, -1) {
		if _, ok := days[day]; !ok {
			return count
		}
		count++
	}
}
