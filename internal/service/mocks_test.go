package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/vitasports/backend/internal/lib/email"
	"github.com/vitasports/backend/internal/lib/job"
	"github.com/vitasports/backend/internal/model"
)

type mockAccounts struct{ mock.Mock }

func (m *mockAccounts) Create(ctx context.Context, in model.NewUser) (*model.User, error) {
	args := m.Called(ctx, in)
	u, _ := args.Get(0).(*model.User)
	return u, args.Error(1)
}

func (m *mockAccounts) GetCredentialsByEmail(ctx context.Context, email string) (*model.Credentials, error) {
	args := m.Called(ctx, email)
	c, _ := args.Get(0).(*model.Credentials)
	return c, args.Error(1)
}

type mockUsers struct{ mock.Mock }

func (m *mockUsers) GetByID(ctx context.Context, id uuid.UUID) (*model.User, error) {
	args := m.Called(ctx, id)
	u, _ := args.Get(0).(*model.User)
	return u, args.Error(1)
}

func (m *mockUsers) Update(ctx context.Context, id uuid.UUID, patch model.UserPatch) error {
	return m.Called(ctx, id, patch).Error(0)
}

type mockJobs struct{ mock.Mock }

func (m *mockJobs) EnqueueSignupEmails(ctx context.Context, userID, to, name string) error {
	return m.Called(ctx, userID, to, name).Error(0)
}

func (m *mockJobs) EnqueueTestResultEmail(ctx context.Context, p job.TestResultEmailPayload) error {
	return m.Called(ctx, p).Error(0)
}

func (m *mockJobs) EnqueueRankRecompute(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

type mockCache struct{ mock.Mock }

func (m *mockCache) GetJSON(ctx context.Context, key string, dst any) (bool, error) {
	args := m.Called(ctx, key, dst)
	return args.Bool(0), args.Error(1)
}

func (m *mockCache) SetJSON(ctx context.Context, key string, v any, ttl time.Duration) error {
	return m.Called(ctx, key, v, ttl).Error(0)
}

func (m *mockCache) Version(ctx context.Context, namespace string) (int64, error) {
	args := m.Called(ctx, namespace)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockCache) Bump(ctx context.Context, namespace string) (int64, error) {
	args := m.Called(ctx, namespace)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockCache) Publish(ctx context.Context, channel string, v any) error {
	return m.Called(ctx, channel, v).Error(0)
}

type mockResults struct{ mock.Mock }

func (m *mockResults) ListByUser(ctx context.Context, userID uuid.UUID) ([]model.TestResult, error) {
	args := m.Called(ctx, userID)
	r, _ := args.Get(0).([]model.TestResult)
	return r, args.Error(1)
}

func (m *mockResults) Create(ctx context.Context, in model.NewTestResult) (uuid.UUID, error) {
	args := m.Called(ctx, in)
	return args.Get(0).(uuid.UUID), args.Error(1)
}

func (m *mockResults) Submit(ctx context.Context, in model.NewTestResult) (uuid.UUID, model.ScoreUpdate, error) {
	args := m.Called(ctx, in)
	return args.Get(0).(uuid.UUID), args.Get(1).(model.ScoreUpdate), args.Error(2)
}

func (m *mockResults) Complete(ctx context.Context, resultID uuid.UUID, in model.TestCompletion) (model.ScoreUpdate, error) {
	args := m.Called(ctx, resultID, in)
	return args.Get(0).(model.ScoreUpdate), args.Error(1)
}

func (m *mockResults) CountByUser(ctx context.Context, userID uuid.UUID) (int, error) {
	args := m.Called(ctx, userID)
	return args.Int(0), args.Error(1)
}

type mockAchievements struct{ mock.Mock }

func (m *mockAchievements) Unlock(ctx context.Context, userID uuid.UUID, ids []string) ([]string, error) {
	args := m.Called(ctx, userID, ids)
	r, _ := args.Get(0).([]string)
	return r, args.Error(1)
}

func (m *mockAchievements) ListByUser(ctx context.Context, userID uuid.UUID) ([]model.UserAchievement, error) {
	args := m.Called(ctx, userID)
	r, _ := args.Get(0).([]model.UserAchievement)
	return r, args.Error(1)
}

type mockCredits struct{ mock.Mock }

func (m *mockCredits) ListByUser(ctx context.Context, userID uuid.UUID) ([]model.CreditTransaction, error) {
	args := m.Called(ctx, userID)
	r, _ := args.Get(0).([]model.CreditTransaction)
	return r, args.Error(1)
}

func (m *mockCredits) Add(ctx context.Context, in model.NewCreditTransaction) (model.CreditResult, error) {
	args := m.Called(ctx, in)
	return args.Get(0).(model.CreditResult), args.Error(1)
}

func (m *mockCredits) Balance(ctx context.Context, userID uuid.UUID) (int64, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(int64), args.Error(1)
}

type mockBoard struct{ mock.Mock }

func (m *mockBoard) Top(ctx context.Context, limit int) ([]model.LeaderboardEntry, error) {
	args := m.Called(ctx, limit)
	r, _ := args.Get(0).([]model.LeaderboardEntry)
	return r, args.Error(1)
}

func (m *mockBoard) TopByTest(ctx context.Context, testID string, limit int) ([]model.TestLeaderboardEntry, error) {
	args := m.Called(ctx, testID, limit)
	r, _ := args.Get(0).([]model.TestLeaderboardEntry)
	return r, args.Error(1)
}

type mockStore struct{ mock.Mock }

func (m *mockStore) ListProducts(ctx context.Context, category *string) ([]model.Product, error) {
	args := m.Called(ctx, category)
	r, _ := args.Get(0).([]model.Product)
	return r, args.Error(1)
}

func (m *mockStore) GetProduct(ctx context.Context, id uuid.UUID) (*model.Product, error) {
	args := m.Called(ctx, id)
	r, _ := args.Get(0).(*model.Product)
	return r, args.Error(1)
}

func (m *mockStore) Purchase(ctx context.Context, userID, productID uuid.UUID, quantity int) (model.PurchaseResult, error) {
	args := m.Called(ctx, userID, productID, quantity)
	return args.Get(0).(model.PurchaseResult), args.Error(1)
}

func (m *mockStore) ListPurchases(ctx context.Context, userID uuid.UUID) ([]model.Purchase, error) {
	args := m.Called(ctx, userID)
	r, _ := args.Get(0).([]model.Purchase)
	return r, args.Error(1)
}

type mockMailer struct{ mock.Mock }

func (m *mockMailer) SendTestResultEmail(ctx context.Context, to string, data email.TestResultData) (string, error) {
	args := m.Called(ctx, to, data)
	return args.String(0), args.Error(1)
}

func (m *mockMailer) Preview(name email.Template) (string, error) {
	args := m.Called(name)
	return args.String(0), args.Error(1)
}

type mockPresigner struct{ mock.Mock }

func (m *mockPresigner) PresignPut(ctx context.Context, key string, ttl time.Duration) (string, error) {
	args := m.Called(ctx, key, ttl)
	return args.String(0), args.Error(1)
}

type mockDemo struct{ mock.Mock }

func (m *mockDemo) ClearAll(ctx context.Context) (model.SeedSummary, error) {
	args := m.Called(ctx)
	r, _ := args.Get(0).(model.SeedSummary)
	return r, args.Error(1)
}

func (m *mockDemo) ClearMentors(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockDemo) ClearUsers(ctx context.Context) (model.SeedSummary, error) {
	args := m.Called(ctx)
	r, _ := args.Get(0).(model.SeedSummary)
	return r, args.Error(1)
}

func (m *mockDemo) InsertMentors(ctx context.Context, mentors []model.Mentor) (int64, error) {
	args := m.Called(ctx, mentors)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockDemo) MentorIDs(ctx context.Context) ([]uuid.UUID, error) {
	args := m.Called(ctx)
	r, _ := args.Get(0).([]uuid.UUID)
	return r, args.Error(1)
}

func (m *mockDemo) Seed(ctx context.Context, ds model.DemoDataset) (model.SeedSummary, error) {
	args := m.Called(ctx, ds)
	r, _ := args.Get(0).(model.SeedSummary)
	return r, args.Error(1)
}

type stubMentorCount int

func (c stubMentorCount) Count(context.Context) (int, error) {
	return int(c), nil
}
