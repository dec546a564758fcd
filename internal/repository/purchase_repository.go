package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"sweetshop/api/internal/ids"
	"sweetshop/api/internal/models"
)

// InsufficientStockError carries the stock level seen at decision time so
// callers can report it.
type InsufficientStockError struct {
	Available int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("only %d items available", e.Available)
}

type PurchaseRepository struct {
	pool *pgxpool.Pool
}

func NewPurchaseRepository(pool *pgxpool.Pool) *PurchaseRepository {
	return &PurchaseRepository{pool: pool}
}

// Purchase decrements stock and appends the ledger row in one transaction.
// The decrement is conditional on sufficient stock, so two concurrent
// purchases can never drive the counter negative: the second one loses
// the conditional update and gets InsufficientStockError.
func (r *PurchaseRepository) Purchase(ctx context.Context, userID string, sweetID string, quantity int) (models.Purchase, int, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return models.Purchase{}, 0, fmt.Errorf("begin purchase tx: %w", err)
	}
	defer tx.Rollback(ctx)

	const fetchQuery = `SELECT name, price, quantity FROM sweets WHERE id = $1`

	var (
		name      string
		price     float64
		available int
	)
	if err := tx.QueryRow(ctx, fetchQuery, sweetID).Scan(&name, &price, &available); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.Purchase{}, 0, ErrSweetNotFound
		}
		return models.Purchase{}, 0, err
	}

	const decrementQuery = `
		UPDATE sweets SET quantity = quantity - $2, updated_at = NOW()
		WHERE id = $1 AND quantity >= $2
		RETURNING quantity
	`

	var remaining int
	if err := tx.QueryRow(ctx, decrementQuery, sweetID, quantity).Scan(&remaining); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.Purchase{}, 0, &InsufficientStockError{Available: available}
		}
		return models.Purchase{}, 0, err
	}

	purchase := models.Purchase{
		ID:              ids.New(),
		UserID:          userID,
		SweetID:         &sweetID,
		SweetName:       name,
		Quantity:        quantity,
		PriceAtPurchase: price,
		TotalAmount:     price * float64(quantity),
	}

	const insertQuery = `
		INSERT INTO purchases (id, user_id, sweet_id, sweet_name, quantity, price_at_purchase, total_amount, purchased_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, NOW())
		RETURNING purchased_at
	`

	if err := tx.QueryRow(ctx, insertQuery,
		purchase.ID,
		purchase.UserID,
		purchase.SweetID,
		purchase.SweetName,
		purchase.Quantity,
		purchase.PriceAtPurchase,
		purchase.TotalAmount,
	).Scan(&purchase.PurchasedAt); err != nil {
		return models.Purchase{}, 0, fmt.Errorf("record purchase: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return models.Purchase{}, 0, fmt.Errorf("commit purchase tx: %w", err)
	}

	return purchase, remaining, nil
}

func (r *PurchaseRepository) ListByUser(ctx context.Context, userID string) ([]models.Purchase, error) {
	const query = `
		SELECT id, user_id, sweet_id, sweet_name, quantity, price_at_purchase, total_amount, purchased_at
		FROM purchases
		WHERE user_id = $1
		ORDER BY purchased_at DESC
	`

	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var purchases []models.Purchase
	for rows.Next() {
		var p models.Purchase
		if err := rows.Scan(
			&p.ID,
			&p.UserID,
			&p.SweetID,
			&p.SweetName,
			&p.Quantity,
			&p.PriceAtPurchase,
			&p.TotalAmount,
			&p.PurchasedAt,
		); err != nil {
			return nil, err
		}
		purchases = append(purchases, p)
	}
	return purchases, rows.Err()
}
