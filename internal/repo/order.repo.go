package repo

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"checkout-mini-demo/internal/apperr"
	"checkout-mini-demo/internal/domain"
)

type OrderRepo interface {
	// Create inserts a new PENDING order. An existing order_id reports
	// apperr.ErrDuplicateOrder via insert-or-ignore semantics, so a
	// notification racing a retry never corrupts the row.
	Create(ctx context.Context, order *domain.Order) error
	FindByID(ctx context.Context, orderID string) (*domain.Order, error)
	// ListAll returns every order, newest first.
	ListAll(ctx context.Context) ([]domain.Order, error)
	// UpdateStatus sets status, provider_tx and updated_at in one statement.
	// Unknown order ids report apperr.ErrNotFound; no shadow rows are created.
	UpdateStatus(ctx context.Context, orderID string, status domain.OrderStatus, providerTx *string) error
}

type orderRepo struct {
	db *sql.DB
}

func NewOrderRepo(db *sql.DB) OrderRepo {
	return &orderRepo{db: db}
}

func (r *orderRepo) Create(ctx context.Context, order *domain.Order) error {
	res, err := r.db.ExecContext(ctx, `
		INSERT INTO orders (order_id, amount, currency, status, idempotency_key, provider_tx, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (order_id) DO NOTHING`,
		order.OrderID, order.Amount, order.Currency, order.Status,
		order.IdempotencyKey, order.ProviderTx, order.CreatedAt, order.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert order: %w", err)
	}

	inserted, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("insert order: %w", err)
	}
	if inserted == 0 {
		return apperr.ErrDuplicateOrder
	}
	return nil
}

func (r *orderRepo) FindByID(ctx context.Context, orderID string) (*domain.Order, error) {
	var order domain.Order
	err := r.db.QueryRowContext(ctx, `
		SELECT order_id, amount, currency, status, idempotency_key, provider_tx, created_at, updated_at
		FROM orders WHERE order_id = $1`, orderID,
	).Scan(
		&order.OrderID,
		&order.Amount,
		&order.Currency,
		&order.Status,
		&order.IdempotencyKey,
		&order.ProviderTx,
		&order.CreatedAt,
		&order.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperr.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find order: %w", err)
	}
	return &order, nil
}

func (r *orderRepo) ListAll(ctx context.Context) ([]domain.Order, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT order_id, amount, currency, status, idempotency_key, provider_tx, created_at, updated_at
		FROM orders ORDER BY created_at DESC`,
	)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	defer rows.Close()

	var orders []domain.Order
	for rows.Next() {
		var order domain.Order
		if err := rows.Scan(
			&order.OrderID,
			&order.Amount,
			&order.Currency,
			&order.Status,
			&order.IdempotencyKey,
			&order.ProviderTx,
			&order.CreatedAt,
			&order.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan order: %w", err)
		}
		orders = append(orders, order)
	}
	return orders, rows.Err()
}

func (r *orderRepo) UpdateStatus(ctx context.Context, orderID string, status domain.OrderStatus, providerTx *string) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE orders
		SET status = $2,
		    provider_tx = COALESCE($3, provider_tx),
		    updated_at = now()
		WHERE order_id = $1`,
		orderID, status, providerTx,
	)
	if err != nil {
		return fmt.Errorf("update order status: %w", err)
	}

	updated, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update order status: %w", err)
	}
	if updated == 0 {
		return apperr.ErrNotFound
	}
	return nil
}
