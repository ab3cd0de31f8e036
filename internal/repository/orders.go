package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/purelife/storefront/internal/domain"
)

const orderColumns = `id, user_id, customer_info, items, total_price::text, status,
	COALESCE(payment_intent_id, ''), payment_status, created_at, updated_at`

func scanOrder(row interface{ Scan(...any) error }) (*domain.Order, error) {
	var o domain.Order
	var userID *uuid.UUID
	var customerInfo, items []byte
	var total string
	err := row.Scan(&o.ID, &userID, &customerInfo, &items, &total, &o.Status,
		&o.PaymentIntentID, &o.PaymentStatus, &o.CreatedAt, &o.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if userID != nil {
		o.UserID = *userID
	}
	if o.TotalPrice, err = parseDecimal(total); err != nil {
		return nil, err
	}
	if err := unmarshalJSON(customerInfo, &o.CustomerInfo); err != nil {
		return nil, err
	}
	if err := unmarshalJSON(items, &o.Items); err != nil {
		return nil, err
	}
	return &o, nil
}

// CreateOrder inserts the order with its totals frozen. Status and payment
// status must already be validated by the service.
func (q *Queries) CreateOrder(ctx context.Context, order *domain.Order) (*domain.Order, error) {
	customerInfo, err := marshalJSON(order.CustomerInfo)
	if err != nil {
		return nil, err
	}
	items, err := marshalJSON(order.Items)
	if err != nil {
		return nil, err
	}

	var userID *uuid.UUID
	if order.UserID != uuid.Nil {
		userID = &order.UserID
	}
	var paymentIntentID *string
	if order.PaymentIntentID != "" {
		paymentIntentID = &order.PaymentIntentID
	}

	row := q.db.QueryRow(ctx, `
		INSERT INTO orders (user_id, customer_info, items, total_price, status, payment_intent_id, payment_status)
		VALUES ($1, $2, $3, $4::numeric, $5, $6, $7)
		RETURNING `+orderColumns,
		userID, customerInfo, items, order.TotalPrice.StringFixed(2),
		order.Status, paymentIntentID, order.PaymentStatus,
	)
	return scanOrder(row)
}

func (q *Queries) GetOrderByID(ctx context.Context, id uuid.UUID) (*domain.Order, error) {
	row := q.db.QueryRow(ctx, `SELECT `+orderColumns+` FROM orders WHERE id = $1`, id)
	return scanOrder(row)
}

func (q *Queries) ListOrdersByUser(ctx context.Context, userID uuid.UUID) ([]domain.Order, error) {
	rows, err := q.db.Query(ctx,
		`SELECT `+orderColumns+` FROM orders WHERE user_id = $1 ORDER BY created_at DESC`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}
	defer rows.Close()
	return collectOrders(rows)
}

func (q *Queries) ListOrders(ctx context.Context, filter OrderFilter) ([]domain.Order, error) {
	limit := filter.Limit
	if limit <= 0 {
		limit = 20
	}

	var rows pgx.Rows
	var err error
	if filter.Status != "" {
		rows, err = q.db.Query(ctx,
			`SELECT `+orderColumns+` FROM orders WHERE status = $1 ORDER BY created_at DESC LIMIT $2 OFFSET $3`,
			filter.Status, limit, filter.Offset,
		)
	} else {
		rows, err = q.db.Query(ctx,
			`SELECT `+orderColumns+` FROM orders ORDER BY created_at DESC LIMIT $1 OFFSET $2`,
			limit, filter.Offset,
		)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}
	defer rows.Close()
	return collectOrders(rows)
}

func collectOrders(rows interface {
	Next() bool
	Scan(...any) error
	Err() error
}) ([]domain.Order, error) {
	var orders []domain.Order
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		orders = append(orders, *o)
	}
	return orders, rows.Err()
}

func (q *Queries) CountOrders(ctx context.Context, filter OrderFilter) (int64, error) {
	var n int64
	var err error
	if filter.Status != "" {
		err = q.db.QueryRow(ctx, `SELECT COUNT(*) FROM orders WHERE status = $1`, filter.Status).Scan(&n)
	} else {
		err = q.db.QueryRow(ctx, `SELECT COUNT(*) FROM orders`).Scan(&n)
	}
	return n, err
}

// UpdateOrderStatus sets the shipping status directly. The service
// validates membership in the status set.
func (q *Queries) UpdateOrderStatus(ctx context.Context, id uuid.UUID, status string) (*domain.Order, error) {
	row := q.db.QueryRow(ctx, `
		UPDATE orders SET status = $2, updated_at = now()
		WHERE id = $1
		RETURNING `+orderColumns,
		id, status,
	)
	return scanOrder(row)
}

// MarkPaymentSucceeded applies a gateway success event. The status guard
// makes the update idempotent: a pending order advances to processing,
// an order already past pending keeps its status. Returns rows affected;
// zero means no order references the payment intent.
func (q *Queries) MarkPaymentSucceeded(ctx context.Context, paymentIntentID string) (int64, error) {
	tag, err := q.db.Exec(ctx, `
		UPDATE orders SET
			payment_status = 'succeeded',
			status = CASE WHEN status = 'pending' THEN 'processing' ELSE status END,
			updated_at = now()
		WHERE payment_intent_id = $1`,
		paymentIntentID,
	)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

// MarkPaymentFailed flips only the payment status; the order may still be
// handled manually.
func (q *Queries) MarkPaymentFailed(ctx context.Context, paymentIntentID string) (int64, error) {
	tag, err := q.db.Exec(ctx, `
		UPDATE orders SET payment_status = 'failed', updated_at = now()
		WHERE payment_intent_id = $1`,
		paymentIntentID,
	)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

// MarkOrderRefunded cancels the order; payment status is left untouched.
func (q *Queries) MarkOrderRefunded(ctx context.Context, paymentIntentID string) (int64, error) {
	tag, err := q.db.Exec(ctx, `
		UPDATE orders SET status = 'cancelled', updated_at = now()
		WHERE payment_intent_id = $1`,
		paymentIntentID,
	)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

// HasDeliveredOrderWithProduct gates review creation: the user must have a
// delivered order containing the product.
func (q *Queries) HasDeliveredOrderWithProduct(ctx context.Context, userID, productID uuid.UUID) (bool, error) {
	var exists bool
	err := q.db.QueryRow(ctx, `
		SELECT EXISTS (
			SELECT 1 FROM orders
			WHERE user_id = $1
			  AND status = 'delivered'
			  AND items @> jsonb_build_array(jsonb_build_object('productId', $2::text))
		)`,
		userID, productID.String(),
	).Scan(&exists)
	return exists, err
}

// GetStoreStats aggregates the admin dashboard numbers. Revenue sums the
// frozen order totals over non-cancelled orders.
func (q *Queries) GetStoreStats(ctx context.Context) (*StoreStats, error) {
	var stats StoreStats
	var revenue string
	err := q.db.QueryRow(ctx, `
		SELECT
			(SELECT COUNT(*) FROM orders),
			(SELECT COUNT(*) FROM products),
			(SELECT COUNT(*) FROM users),
			(SELECT COUNT(*) FROM contact_queries),
			COALESCE((SELECT SUM(total_price) FROM orders WHERE status <> 'cancelled'), 0)::text`,
	).Scan(&stats.TotalOrders, &stats.TotalProducts, &stats.TotalUsers, &stats.TotalQueries, &revenue)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate store stats: %w", err)
	}
	if stats.Revenue, err = parseDecimal(revenue); err != nil {
		return nil, err
	}

	recent, err := q.ListOrders(ctx, OrderFilter{Limit: 5})
	if err != nil {
		return nil, err
	}
	stats.RecentOrders = recent
	return &stats, nil
}
