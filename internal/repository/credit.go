package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/vitasports/backend/internal/model"
	"github.com/vitasports/backend/internal/sqlerr"
)

const creditColumns = `id, user_id, amount, type, description, reference_id, reference_type, expires_at, created_at`

type CreditRepository struct {
	pool *pgxpool.Pool
}

func NewCreditRepository(pool *pgxpool.Pool) *CreditRepository {
	return &CreditRepository{pool: pool}
}

func (r *CreditRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]model.CreditTransaction, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+creditColumns+`
		FROM credit_transactions
		WHERE user_id = $1
		ORDER BY created_at DESC`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query credit transactions: %w", err)
	}

	txs, err := pgx.CollectRows(rows, pgx.RowToStructByName[model.CreditTransaction])
	if err != nil {
		return nil, fmt.Errorf("failed to collect credit transactions: %w", err)
	}

	return txs, nil
}

// Add moves the cached balance and appends the ledger row atomically. A
// debit that would overdraw the balance fails with ErrInsufficientCredits.
func (r *CreditRepository) Add(ctx context.Context, in model.NewCreditTransaction) (model.CreditResult, error) {
	var result model.CreditResult

	err := pgx.BeginFunc(ctx, r.pool, func(tx pgx.Tx) error {
		balance, err := adjustCredits(ctx, tx, in.UserID, in.Amount)
		if err != nil {
			return err
		}
		result.Balance = balance

		result.TransactionID, err = insertCreditTransaction(ctx, tx, in)
		return err
	})
	if err != nil {
		return result, fmt.Errorf("failed to add credit transaction: %w", err)
	}

	return result, nil
}

func (r *CreditRepository) Balance(ctx context.Context, userID uuid.UUID) (int64, error) {
	var credits int64
	err := r.pool.QueryRow(ctx, `SELECT credits FROM users WHERE id = $1`, userID).Scan(&credits)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, sqlerr.NotFound("users")
		}
		return 0, fmt.Errorf("failed to read balance: %w", err)
	}
	return credits, nil
}

func adjustCredits(ctx context.Context, tx pgx.Tx, userID uuid.UUID, amount int64) (int64, error) {
	var balance int64
	err := tx.QueryRow(ctx, `
		UPDATE users
		SET credits = credits + $2, updated_at = now()
		WHERE id = $1 AND credits + $2 >= 0
		RETURNING credits`, userID, amount).Scan(&balance)
	if err == nil {
		return balance, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return 0, err
	}

	exists, err := userExists(ctx, tx, userID)
	if err != nil {
		return 0, err
	}
	if !exists {
		return 0, sqlerr.NotFound("users")
	}
	return 0, ErrInsufficientCredits
}

func insertCreditTransaction(ctx context.Context, tx pgx.Tx, in model.NewCreditTransaction) (uuid.UUID, error) {
	var id uuid.UUID
	err := tx.QueryRow(ctx, `
		INSERT INTO credit_transactions (user_id, amount, type, description, reference_id, reference_type, expires_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id`,
		in.UserID, in.Amount, in.Type, in.Description, in.ReferenceID, in.ReferenceType, in.ExpiresAt,
	).Scan(&id)
	return id, err
}
