package repository

import (
	"github.com/vitasports/backend/internal/server"
)

type Repositories struct {
	Users        *UserRepository
	Credits      *CreditRepository
	TestResults  *TestResultRepository
	Leaderboard  *LeaderboardRepository
	Achievements *AchievementRepository
	Community    *CommunityRepository
	Mentors      *MentorRepository
	Store        *StoreRepository
	BodyLogs     *BodyLogRepository
	Analytics    *AnalyticsRepository
	Demo         *DemoRepository
}

func NewRepositories(s *server.Server) *Repositories {
	pool := s.DB.Pool

	return &Repositories{
		Users:        NewUserRepository(pool),
		Credits:      NewCreditRepository(pool),
		TestResults:  NewTestResultRepository(pool),
		Leaderboard:  NewLeaderboardRepository(pool),
		Achievements: NewAchievementRepository(pool),
		Community:    NewCommunityRepository(pool),
		Mentors:      NewMentorRepository(pool),
		Store:        NewStoreRepository(pool),
		BodyLogs:     NewBodyLogRepository(pool),
		Analytics:    NewAnalyticsRepository(pool),
		Demo:         NewDemoRepository(pool),
	}
}
