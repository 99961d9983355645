package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/vitasports/backend/internal/lib/utils"
	"github.com/vitasports/backend/internal/model"
)

const (
	defaultLeaderboardLimit = 50
	maxLeaderboardLimit     = 200
)

type leaderboardStore interface {
	Top(ctx context.Context, limit int) ([]model.LeaderboardEntry, error)
	TopByTest(ctx context.Context, testID string, limit int) ([]model.TestLeaderboardEntry, error)
}

type LeaderboardService struct {
	board  leaderboardStore
	cache  ReadCache
	ttl    time.Duration
	logger *zerolog.Logger
}

func NewLeaderboardService(board leaderboardStore, cache ReadCache, ttl time.Duration, logger *zerolog.Logger) *LeaderboardService {
	return &LeaderboardService{
		board:  board,
		cache:  cache,
		ttl:    ttl,
		logger: logger,
	}
}

// LeaderboardLimit applies the default and the upper bound to a requested
// page size.
func LeaderboardLimit(limit int) int {
	if limit <= 0 {
		return defaultLeaderboardLimit
	}
	return utils.Clamp(limit, 1, maxLeaderboardLimit)
}

// Get serves the overall or per-test leaderboard. Reads go through a cache
// keyed by the namespace version, so any score change makes older entries
// unreachable. Cache failures fall back to the database.
func (s *LeaderboardService) Get(ctx context.Context, p *model.LeaderboardPayload) (*model.Leaderboard, error) {
	limit := LeaderboardLimit(p.Limit)

	version, err := s.cache.Version(ctx, LeaderboardNamespace)
	cacheable := err == nil
	if err != nil {
		s.logger.Warn().Err(err).Msg("leaderboard cache unavailable")
	}

	scope := "overall"
	if p.TestType != "" {
		scope = "test:" + p.TestType
	}
	key := fmt.Sprintf("%s:v%d:%s:%d", LeaderboardNamespace, version, scope, limit)

	if cacheable {
		var cached model.Leaderboard
		hit, err := s.cache.GetJSON(ctx, key, &cached)
		if err != nil {
			s.logger.Warn().Err(err).Str("key", key).Msg("leaderboard cache read failed")
		}
		if hit {
			return &cached, nil
		}
	}

	board, err := s.load(ctx, p.TestType, limit)
	if err != nil {
		return nil, err
	}

	if cacheable {
		if err := s.cache.SetJSON(ctx, key, board, s.ttl); err != nil {
			s.logger.Warn().Err(err).Str("key", key).Msg("leaderboard cache write failed")
		}
	}

	return board, nil
}

func (s *LeaderboardService) load(ctx context.Context, testType string, limit int) (*model.Leaderboard, error) {
	if testType == "" {
		entries, err := s.board.Top(ctx, limit)
		if err != nil {
			return nil, err
		}
		if entries == nil {
			entries = []model.LeaderboardEntry{}
		}
		return &model.Leaderboard{Overall: entries}, nil
	}

	entries, err := s.board.TopByTest(ctx, testType, limit)
	if err != nil {
		return nil, err
	}
	if entries == nil {
		entries = []model.TestLeaderboardEntry{}
	}
	return &model.Leaderboard{TestType: testType, ByTest: entries}, nil
}
