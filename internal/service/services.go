package service

import (
	"github.com/vitasports/backend/internal/repository"
	"github.com/vitasports/backend/internal/server"
)

type Services struct {
	Auth         *AuthService
	Users        *UserService
	Credits      *CreditService
	Tests        *TestService
	TestResults  *TestResultService
	Achievements *AchievementService
	Leaderboard  *LeaderboardService
	Community    *CommunityService
	Mentors      *MentorService
	Store        *StoreService
	BodyLogs     *BodyLogService
	Analytics    *AnalyticsService
	Email        *EmailService
	Storage      *StorageService
	Demo         *DemoService
}

func NewServices(s *server.Server, repos *repository.Repositories) (*Services, error) {
	tests, err := NewTestService()
	if err != nil {
		return nil, err
	}

	var presigner uploadPresigner
	if s.Storage != nil {
		presigner = s.Storage
	}

	production := s.Config.IsProduction()
	achievements := NewAchievementService(repos.Achievements)

	return &Services{
		Auth:         NewAuthService(repos.Users, s.Tokens, s.Job, s.Logger),
		Users:        NewUserService(repos.Users, repos.TestResults, repos.Leaderboard, repos.Achievements, repos.BodyLogs),
		Credits:      NewCreditService(repos.Credits),
		Tests:        tests,
		TestResults:  NewTestResultService(repos.TestResults, repos.Users, achievements, s.Cache, s.Job, s.Logger),
		Achievements: achievements,
		Leaderboard:  NewLeaderboardService(repos.Leaderboard, s.Cache, s.Config.Cache.LeaderboardTTL, s.Logger),
		Community:    NewCommunityService(repos.Community),
		Mentors:      NewMentorService(repos.Mentors, repos.Users, repos.TestResults),
		Store:        NewStoreService(repos.Store),
		BodyLogs:     NewBodyLogService(repos.BodyLogs),
		Analytics:    NewAnalyticsService(repos.Analytics),
		Email:        NewEmailService(s.Email, production, s.Logger),
		Storage:      NewStorageService(presigner, s.Config.Storage.PresignTTL),
		Demo:         NewDemoService(repos.Demo, repos.Mentors, production, s.Logger),
	}, nil
}
