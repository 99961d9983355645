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

const productColumns = `id, name, description, price, category, image_url, is_active, created_at`

type StoreRepository struct {
	pool *pgxpool.Pool
}

func NewStoreRepository(pool *pgxpool.Pool) *StoreRepository {
	return &StoreRepository{pool: pool}
}

// ListProducts returns active products, optionally narrowed to a category.
func (r *StoreRepository) ListProducts(ctx context.Context, category *string) ([]model.Product, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+productColumns+`
		FROM products
		WHERE is_active AND ($1::text IS NULL OR category = $1)
		ORDER BY category ASC, price ASC`, category)
	if err != nil {
		return nil, fmt.Errorf("failed to query products: %w", err)
	}

	products, err := pgx.CollectRows(rows, pgx.RowToStructByName[model.Product])
	if err != nil {
		return nil, fmt.Errorf("failed to collect products: %w", err)
	}

	return products, nil
}

func (r *StoreRepository) GetProduct(ctx context.Context, id uuid.UUID) (*model.Product, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+productColumns+` FROM products WHERE id = $1`, id)
	if err != nil {
		return nil, fmt.Errorf("failed to query product: %w", err)
	}

	product, err := pgx.CollectExactlyOneRow(rows, pgx.RowToStructByName[model.Product])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, sqlerr.NotFound("products")
		}
		return nil, fmt.Errorf("failed to collect product: %w", err)
	}

	return &product, nil
}

// Purchase debits the product cost, records the purchase and appends the
// ledger row in one transaction. The debit only succeeds while the balance
// covers the cost.
func (r *StoreRepository) Purchase(ctx context.Context, userID, productID uuid.UUID, quantity int) (model.PurchaseResult, error) {
	var result model.PurchaseResult

	err := pgx.BeginFunc(ctx, r.pool, func(tx pgx.Tx) error {
		var (
			name  string
			price int64
		)
		err := tx.QueryRow(ctx, `SELECT name, price FROM products WHERE id = $1 AND is_active`, productID).
			Scan(&name, &price)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return sqlerr.NotFound("products")
			}
			return err
		}

		result.TotalCost = price * int64(quantity)

		result.Balance, err = adjustCredits(ctx, tx, userID, -result.TotalCost)
		if err != nil {
			return err
		}

		err = tx.QueryRow(ctx, `
			INSERT INTO purchases (user_id, product_id, quantity, total_cost, status)
			VALUES ($1, $2, $3, $4, 'completed')
			RETURNING id`, userID, productID, quantity, result.TotalCost).Scan(&result.PurchaseID)
		if err != nil {
			return err
		}

		if result.TotalCost == 0 {
			return nil
		}

		refID := result.PurchaseID.String()
		refType := "purchase"
		_, err = insertCreditTransaction(ctx, tx, model.NewCreditTransaction{
			UserID:        userID,
			Amount:        -result.TotalCost,
			Type:          model.CreditTypePurchase,
			Description:   fmt.Sprintf("Purchased %s", name),
			ReferenceID:   &refID,
			ReferenceType: &refType,
		})
		return err
	})
	if err != nil {
		return result, fmt.Errorf("failed to purchase product: %w", err)
	}

	return result, nil
}

func (r *StoreRepository) ListPurchases(ctx context.Context, userID uuid.UUID) ([]model.Purchase, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT p.id, p.user_id, p.product_id, pr.name AS product_name, p.quantity, p.total_cost,
			p.status, p.created_at
		FROM purchases p
		JOIN products pr ON pr.id = p.product_id
		WHERE p.user_id = $1
		ORDER BY p.created_at DESC`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query purchases: %w", err)
	}

	purchases, err := pgx.CollectRows(rows, pgx.RowToStructByName[model.Purchase])
	if err != nil {
		return nil, fmt.Errorf("failed to collect purchases: %w", err)
	}

	return purchases, nil
}
