package service

import (
	"context"
	"math/rand/v2"
	"net/http"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/vitasports/backend/internal/model"
)

func TestDemoService_RefusedInProduction(t *testing.T) {
	ctx := context.Background()
	demo := &mockDemo{}
	svc := NewDemoService(demo, stubMentorCount(0), true, nopLogger())

	ops := map[string]func(context.Context) (*model.SeedResult, error){
		"seedMentors":  svc.SeedMentors,
		"seedData":     svc.SeedData,
		"quickSeed":    svc.QuickSeed,
		"clearData":    svc.ClearData,
		"clearMentors": svc.ClearMentors,
	}
	for name, op := range ops {
		t.Run(name, func(t *testing.T) {
			_, err := op(ctx)
			requireStatus(t, err, http.StatusForbidden)
		})
	}
	assert.Empty(t, demo.Calls)
}

func TestDemoService_SeedMentors(t *testing.T) {
	ctx := context.Background()

	t.Run("skips when mentors exist", func(t *testing.T) {
		demo := &mockDemo{}
		res, err := NewDemoService(demo, stubMentorCount(3), false, nopLogger()).SeedMentors(ctx)
		require.NoError(t, err)

		assert.Equal(t, "Mentors already exist", res.Message)
		assert.Equal(t, int64(3), res.Count)
		demo.AssertNotCalled(t, "InsertMentors", mock.Anything, mock.Anything)
	})

	t.Run("inserts the demo roster", func(t *testing.T) {
		demo := &mockDemo{}
		demo.On("InsertMentors", ctx, mock.MatchedBy(func(m []model.Mentor) bool {
			return len(m) == 10
		})).Return(int64(10), nil)

		res, err := NewDemoService(demo, stubMentorCount(0), false, nopLogger()).SeedMentors(ctx)
		require.NoError(t, err)
		assert.Equal(t, int64(10), res.Count)
	})
}

func TestBuildDemoDataset_Consistency(t *testing.T) {
	now := time.Date(2026, 10, 14, 12, 0, 0, 0, time.UTC)
	mentorIDs := []uuid.UUID{uuid.New(), uuid.New(), uuid.New()}
	r := rand.New(rand.NewPCG(1, 2))

	ds := buildDemoDataset(r, now, "hash", mentorIDs)

	require.Len(t, ds.Users, len(demoProfiles))
	assert.Len(t, ds.Products, 5)
	assert.Len(t, ds.Groups, 4)
	assert.Len(t, ds.Challenges, 3)
	assert.Len(t, ds.BodyLogs, 4*len(demoProfiles))
	assert.Len(t, ds.Posts, 2*len(demoProfiles))

	for _, u := range ds.Users {
		var scores float64
		results := 0
		for _, res := range ds.TestResults {
			if res.UserID == u.ID {
				scores += res.Score
				results++
				assert.False(t, res.CreatedAt.After(now))
			}
		}
		assert.GreaterOrEqual(t, results, minDemoResults)
		assert.LessOrEqual(t, results, maxDemoResults)
		assert.InDelta(t, scores, u.TotalScore, 0.05, u.Email)

		ledger := model.InitialCredits
		for _, tx := range ds.Credits {
			if tx.UserID == u.ID {
				ledger += tx.Amount
				if tx.ReferenceType != nil {
					assert.NotNil(t, tx.ExpiresAt)
				}
			}
		}
		assert.Equal(t, ledger, u.Credits, u.Email)
		assert.GreaterOrEqual(t, u.Credits, int64(0))

		seen := map[string]bool{}
		for _, a := range ds.Achievements {
			if a.UserID != u.ID {
				continue
			}
			assert.False(t, seen[a.AchievementID], "duplicate %s for %s", a.AchievementID, u.Email)
			seen[a.AchievementID] = true
		}
		assert.True(t, seen[model.AchievementFirstTest])
	}

	members := 0
	for _, g := range ds.Groups {
		members += g.MemberCount
	}
	assert.Equal(t, len(ds.Memberships), members)

	favorites := map[[2]uuid.UUID]bool{}
	for _, f := range ds.Favorites {
		key := [2]uuid.UUID{f.UserID, f.MentorID}
		assert.False(t, favorites[key])
		favorites[key] = true
	}
}

func TestBuildQuickDataset(t *testing.T) {
	now := time.Date(2026, 10, 14, 12, 0, 0, 0, time.UTC)
	ds := buildQuickDataset(rand.New(rand.NewPCG(3, 4)), now, "hash")

	assert.Len(t, ds.Users, len(demoProfiles))
	assert.Len(t, ds.TestResults, quickSeedResults*len(demoProfiles))
	assert.Empty(t, ds.Credits)
}
