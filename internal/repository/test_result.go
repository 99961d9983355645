package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/vitasports/backend/internal/model"
	"github.com/vitasports/backend/internal/sqlerr"
)

const testResultColumns = `id, user_id, test_id, score, status, grade, percentile, feedback, raw_data,
	processed_data, recommendations, ml_analysis, video_url, created_at, completed_at`

type TestResultRepository struct {
	pool *pgxpool.Pool
}

func NewTestResultRepository(pool *pgxpool.Pool) *TestResultRepository {
	return &TestResultRepository{pool: pool}
}

// ListByUser returns the user's results, newest first.
func (r *TestResultRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]model.TestResult, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+testResultColumns+`
		FROM test_results
		WHERE user_id = $1
		ORDER BY created_at DESC`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query test results: %w", err)
	}

	results, err := pgx.CollectRows(rows, pgx.RowToStructByName[model.TestResult])
	if err != nil {
		return nil, fmt.Errorf("failed to collect test results: %w", err)
	}

	return results, nil
}

// Create records a result without touching the user's score.
func (r *TestResultRepository) Create(ctx context.Context, in model.NewTestResult) (uuid.UUID, error) {
	id, err := insertTestResult(ctx, r.pool, in)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to create test result: %w", missingParent(err, "users"))
	}
	return id, nil
}

// Submit records a scored result and raises the user's total score by the
// same amount in one transaction. Nothing is written for an unknown user.
func (r *TestResultRepository) Submit(ctx context.Context, in model.NewTestResult) (uuid.UUID, model.ScoreUpdate, error) {
	var (
		id     uuid.UUID
		update model.ScoreUpdate
	)

	err := pgx.BeginFunc(ctx, r.pool, func(tx pgx.Tx) error {
		var err error
		update, err = applyScoreDelta(ctx, tx, in.UserID, in.Score)
		if err != nil {
			return err
		}

		id, err = insertTestResult(ctx, tx, in)
		return err
	})
	if err != nil {
		return uuid.Nil, update, fmt.Errorf("failed to submit test result: %w", err)
	}

	return id, update, nil
}

// Complete finalizes a result and applies the difference between the new
// and the previously recorded score, so repeated completion never counts a
// score twice.
func (r *TestResultRepository) Complete(ctx context.Context, resultID uuid.UUID, in model.TestCompletion) (model.ScoreUpdate, error) {
	var update model.ScoreUpdate

	err := pgx.BeginFunc(ctx, r.pool, func(tx pgx.Tx) error {
		var (
			userID   uuid.UUID
			previous float64
		)
		err := tx.QueryRow(ctx, `SELECT user_id, score FROM test_results WHERE id = $1 FOR UPDATE`, resultID).
			Scan(&userID, &previous)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return sqlerr.NotFound("test_results")
			}
			return err
		}

		_, err = tx.Exec(ctx, `
			UPDATE test_results SET
				score = @score,
				status = 'completed',
				grade = COALESCE(@grade, grade),
				percentile = COALESCE(@percentile, percentile),
				feedback = COALESCE(@feedback, feedback),
				raw_data = COALESCE(@raw_data, raw_data),
				processed_data = COALESCE(@processed_data, processed_data),
				recommendations = COALESCE(@recommendations, recommendations),
				completed_at = now()
			WHERE id = @id`, pgx.NamedArgs{
			"id":              resultID,
			"score":           in.Score,
			"grade":           in.Grade,
			"percentile":      in.Percentile,
			"feedback":        in.Feedback,
			"raw_data":        jsonArg(in.RawData),
			"processed_data":  jsonArg(in.ProcessedData),
			"recommendations": textArrayArg(in.Recommendations),
		})
		if err != nil {
			return err
		}

		update, err = applyScoreDelta(ctx, tx, userID, in.Score-previous)
		return err
	})
	if err != nil {
		return update, fmt.Errorf("failed to complete test result: %w", err)
	}

	return update, nil
}

func (r *TestResultRepository) CountByUser(ctx context.Context, userID uuid.UUID) (int, error) {
	var n int
	err := r.pool.QueryRow(ctx, `SELECT count(*) FROM test_results WHERE user_id = $1`, userID).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("failed to count test results: %w", err)
	}
	return n, nil
}

func insertTestResult(ctx context.Context, q querier, in model.NewTestResult) (uuid.UUID, error) {
	status := in.Status
	if status == "" {
		status = model.TestStatusPending
	}
	createdAt := in.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now()
	}

	var id uuid.UUID
	err := q.QueryRow(ctx, `
		INSERT INTO test_results (user_id, test_id, score, status, raw_data, processed_data,
			recommendations, ml_analysis, video_url, created_at, completed_at)
		VALUES (@user_id, @test_id, @score, @status, @raw_data, @processed_data,
			@recommendations, @ml_analysis, @video_url, @created_at, @completed_at)
		RETURNING id`, pgx.NamedArgs{
		"user_id":         in.UserID,
		"test_id":         in.TestID,
		"score":           in.Score,
		"status":          status,
		"raw_data":        jsonArg(in.RawData),
		"processed_data":  jsonArg(in.ProcessedData),
		"recommendations": textArrayArg(in.Recommendations),
		"ml_analysis":     in.MLAnalysis,
		"video_url":       in.VideoURL,
		"created_at":      createdAt,
		"completed_at":    in.CompletedAt,
	}).Scan(&id)
	return id, err
}
