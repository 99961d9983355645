package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/vitasports/backend/internal/model"
)

const bodyLogColumns = `id, user_id, logged_on, weight, height, body_fat, muscle_mass, notes, created_at`

type BodyLogRepository struct {
	pool *pgxpool.Pool
}

func NewBodyLogRepository(pool *pgxpool.Pool) *BodyLogRepository {
	return &BodyLogRepository{pool: pool}
}

func (r *BodyLogRepository) Create(ctx context.Context, in model.NewBodyLog) (uuid.UUID, error) {
	loggedOn := in.LoggedOn
	if loggedOn.IsZero() {
		loggedOn = time.Now()
	}

	var id uuid.UUID
	err := r.pool.QueryRow(ctx, `
		INSERT INTO body_logs (user_id, logged_on, weight, height, body_fat, muscle_mass, notes)
		VALUES ($1, $2::date, $3, $4, $5, $6, $7)
		RETURNING id`,
		in.UserID, loggedOn, in.Weight, in.Height, in.BodyFat, in.MuscleMass, in.Notes,
	).Scan(&id)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to create body log: %w", missingParent(err, "users"))
	}
	return id, nil
}

func (r *BodyLogRepository) ListByUser(ctx context.Context, userID uuid.UUID, limit int) ([]model.BodyLog, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+bodyLogColumns+`
		FROM body_logs
		WHERE user_id = $1
		ORDER BY logged_on DESC, created_at DESC
		LIMIT $2`, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query body logs: %w", err)
	}

	logs, err := pgx.CollectRows(rows, pgx.RowToStructByName[model.BodyLog])
	if err != nil {
		return nil, fmt.Errorf("failed to collect body logs: %w", err)
	}

	return logs, nil
}

// Latest returns the most recent body log, or nil when the user has none.
func (r *BodyLogRepository) Latest(ctx context.Context, userID uuid.UUID) (*model.BodyLog, error) {
	logs, err := r.ListByUser(ctx, userID, 1)
	if err != nil {
		return nil, err
	}
	if len(logs) == 0 {
		return nil, nil
	}
	return &logs[0], nil
}

