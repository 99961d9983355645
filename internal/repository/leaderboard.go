package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/vitasports/backend/internal/model"
)

type LeaderboardRepository struct {
	pool *pgxpool.Pool
}

func NewLeaderboardRepository(pool *pgxpool.Pool) *LeaderboardRepository {
	return &LeaderboardRepository{pool: pool}
}

// Top returns users with a positive score. Ranks are computed at read time
// so ties share a rank.
func (r *LeaderboardRepository) Top(ctx context.Context, limit int) ([]model.LeaderboardEntry, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT l.user_id, u.name AS user_name, l.score,
			RANK() OVER (ORDER BY l.score DESC)::int AS rank,
			l.updated_at
		FROM leaderboard l
		JOIN users u ON u.id = l.user_id
		WHERE l.score > 0
		ORDER BY l.score DESC, l.updated_at ASC
		LIMIT $1`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query leaderboard: %w", err)
	}

	entries, err := pgx.CollectRows(rows, pgx.RowToStructByName[model.LeaderboardEntry])
	if err != nil {
		return nil, fmt.Errorf("failed to collect leaderboard: %w", err)
	}

	return entries, nil
}

// TopByTest ranks individual results of one test.
func (r *LeaderboardRepository) TopByTest(ctx context.Context, testID string, limit int) ([]model.TestLeaderboardEntry, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT t.id, t.user_id, u.name AS user_name, t.test_id, t.score,
			RANK() OVER (ORDER BY t.score DESC)::int AS rank,
			t.created_at
		FROM test_results t
		JOIN users u ON u.id = t.user_id
		WHERE t.test_id = $1 AND t.score > 0
		ORDER BY t.score DESC, t.created_at ASC
		LIMIT $2`, testID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query test leaderboard: %w", err)
	}

	entries, err := pgx.CollectRows(rows, pgx.RowToStructByName[model.TestLeaderboardEntry])
	if err != nil {
		return nil, fmt.Errorf("failed to collect test leaderboard: %w", err)
	}

	return entries, nil
}

// RankOf returns the live rank of a user, or 0 when the user has no entry.
func (r *LeaderboardRepository) RankOf(ctx context.Context, userID uuid.UUID) (int, error) {
	var rank int
	err := r.pool.QueryRow(ctx, `
		SELECT (SELECT count(*) FROM leaderboard o WHERE o.score > l.score)::int + 1
		FROM leaderboard l
		WHERE l.user_id = $1`, userID).Scan(&rank)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, nil
		}
		return 0, fmt.Errorf("failed to compute rank: %w", err)
	}
	return rank, nil
}

// RecomputeRanks rewrites stored ranks that drifted from the live ordering
// and reports how many rows changed.
func (r *LeaderboardRepository) RecomputeRanks(ctx context.Context) (int64, error) {
	tag, err := r.pool.Exec(ctx, `
		UPDATE leaderboard l
		SET rank = ranked.rnk
		FROM (
			SELECT user_id, RANK() OVER (ORDER BY score DESC)::int AS rnk
			FROM leaderboard
		) ranked
		WHERE l.user_id = ranked.user_id AND l.rank <> ranked.rnk`)
	if err != nil {
		return 0, fmt.Errorf("failed to recompute ranks: %w", err)
	}
	return tag.RowsAffected(), nil
}
