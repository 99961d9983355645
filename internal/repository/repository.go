// Package repository implements persistence on top of a pgx pool. Every
// write that touches a denormalized aggregate runs in a single transaction
// or a single conditional statement.
package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/vitasports/backend/internal/model"
	"github.com/vitasports/backend/internal/sqlerr"
)

// ErrInsufficientCredits is returned when a debit would leave a negative
// balance.
var ErrInsufficientCredits = errors.New("insufficient credits")

// querier is satisfied by both *pgxpool.Pool and pgx.Tx.
type querier interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

func userExists(ctx context.Context, q querier, userID uuid.UUID) (bool, error) {
	var exists bool
	err := q.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM users WHERE id = $1)`, userID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check user existence: %w", err)
	}
	return exists, nil
}

// missingParent converts a foreign key violation on insert into a tagged
// not-found error for table.
func missingParent(err error, table string) error {
	if sqlerr.ErrCode(err) == sqlerr.ForeignKeyViolation {
		return sqlerr.NotFound(table)
	}
	return err
}

// fkTable names the parent table of a violated foreign key, relying on the
// default <table>_<column>_fkey constraint names.
func fkTable(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch {
		case strings.Contains(pgErr.ConstraintName, "mentor_id"):
			return "mentors"
		case strings.Contains(pgErr.ConstraintName, "product_id"):
			return "products"
		case strings.Contains(pgErr.ConstraintName, "group_id"):
			return "community_groups"
		}
	}
	return "users"
}

// applyScoreDelta adds delta to the user's total score and mirrors the new
// total into the leaderboard. The users row lock taken by the UPDATE
// serializes concurrent submissions for the same user.
func applyScoreDelta(ctx context.Context, tx pgx.Tx, userID uuid.UUID, delta float64) (model.ScoreUpdate, error) {
	update := model.ScoreUpdate{UserID: userID}

	err := tx.QueryRow(ctx, `
		UPDATE users
		SET total_score = total_score + $2, updated_at = now()
		WHERE id = $1
		RETURNING total_score`, userID, delta).Scan(&update.TotalScore)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return update, sqlerr.NotFound("users")
		}
		return update, fmt.Errorf("failed to update total score: %w", err)
	}

	err = tx.QueryRow(ctx, `
		INSERT INTO leaderboard (user_id, score, rank, updated_at)
		VALUES (
			$1,
			$2::double precision,
			(SELECT count(*) + 1 FROM leaderboard WHERE score > $2::double precision AND user_id <> $1),
			now()
		)
		ON CONFLICT (user_id) DO UPDATE
		SET score = EXCLUDED.score, rank = EXCLUDED.rank, updated_at = EXCLUDED.updated_at
		RETURNING rank`, userID, update.TotalScore).Scan(&update.Rank)
	if err != nil {
		return update, fmt.Errorf("failed to upsert leaderboard entry: %w", err)
	}

	return update, nil
}

// jsonArg sends a nil map as SQL NULL rather than the JSON literal null.
func jsonArg(m map[string]any) any {
	if m == nil {
		return nil
	}
	return m
}

func textArrayArg(values []string) any {
	if values == nil {
		return nil
	}
	return values
}
