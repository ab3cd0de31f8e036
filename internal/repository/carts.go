package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/purelife/storefront/internal/domain"
)

// GetCart returns the user's cart row. pgx.ErrNoRows when none exists;
// callers treat a missing cart as empty.
func (q *Queries) GetCart(ctx context.Context, userID uuid.UUID) (*domain.Cart, error) {
	var cart domain.Cart
	var items []byte
	err := q.db.QueryRow(ctx,
		`SELECT user_id, items, updated_at FROM carts WHERE user_id = $1`,
		userID,
	).Scan(&cart.UserID, &items, &cart.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if err := unmarshalJSON(items, &cart.Items); err != nil {
		return nil, err
	}
	return &cart, nil
}

// UpsertCart writes the full item list for the user. Last writer wins.
func (q *Queries) UpsertCart(ctx context.Context, userID uuid.UUID, items []domain.CartItem) (*domain.Cart, error) {
	if items == nil {
		items = []domain.CartItem{}
	}
	encoded, err := marshalJSON(items)
	if err != nil {
		return nil, err
	}

	var cart domain.Cart
	var stored []byte
	err = q.db.QueryRow(ctx, `
		INSERT INTO carts (user_id, items, updated_at)
		VALUES ($1, $2, now())
		ON CONFLICT (user_id) DO UPDATE SET items = EXCLUDED.items, updated_at = now()
		RETURNING user_id, items, updated_at`,
		userID, encoded,
	).Scan(&cart.UserID, &stored, &cart.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if err := unmarshalJSON(stored, &cart.Items); err != nil {
		return nil, err
	}
	return &cart, nil
}

// ClearCart empties the user's cart. Clearing an absent cart is a no-op.
func (q *Queries) ClearCart(ctx context.Context, userID uuid.UUID) error {
	_, err := q.db.Exec(ctx,
		`UPDATE carts SET items = '[]', updated_at = now() WHERE user_id = $1`,
		userID,
	)
	return err
}
