package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/vitasports/backend/internal/model"
)

type AchievementRepository struct {
	pool *pgxpool.Pool
}

func NewAchievementRepository(pool *pgxpool.Pool) *AchievementRepository {
	return &AchievementRepository{pool: pool}
}

// Unlock records the given achievements and returns only the ones that were
// not unlocked before.
func (r *AchievementRepository) Unlock(ctx context.Context, userID uuid.UUID, ids []string) ([]string, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	rows, err := r.pool.Query(ctx, `
		INSERT INTO achievements (user_id, achievement_id)
		SELECT $1, unnest($2::text[])
		ON CONFLICT (user_id, achievement_id) DO NOTHING
		RETURNING achievement_id`, userID, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to unlock achievements: %w", missingParent(err, "users"))
	}

	unlocked, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return nil, fmt.Errorf("failed to collect unlocked achievements: %w", missingParent(err, "users"))
	}

	return unlocked, nil
}

func (r *AchievementRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]model.UserAchievement, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT user_id, achievement_id, unlocked_at
		FROM achievements
		WHERE user_id = $1
		ORDER BY unlocked_at ASC`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query achievements: %w", err)
	}

	achievements, err := pgx.CollectRows(rows, pgx.RowToStructByName[model.UserAchievement])
	if err != nil {
		return nil, fmt.Errorf("failed to collect achievements: %w", err)
	}

	return achievements, nil
}

func (r *AchievementRepository) CountByUser(ctx context.Context, userID uuid.UUID) (int, error) {
	var n int
	err := r.pool.QueryRow(ctx, `SELECT count(*) FROM achievements WHERE user_id = $1`, userID).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("failed to count achievements: %w", err)
	}
	return n, nil
}
