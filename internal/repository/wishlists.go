package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/purelife/storefront/internal/domain"
)

// GetWishlist returns the user's saved product ids. A missing row is an
// empty wishlist.
func (q *Queries) GetWishlist(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error) {
	var raw []string
	err := q.db.QueryRow(ctx,
		`SELECT product_ids::text[] FROM wishlists WHERE user_id = $1`,
		userID,
	).Scan(&raw)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return parseUUIDs(raw)
}

// AddWishlistProduct appends the product if absent. Set semantics: adding
// twice leaves one entry.
func (q *Queries) AddWishlistProduct(ctx context.Context, userID, productID uuid.UUID) error {
	_, err := q.db.Exec(ctx, `
		INSERT INTO wishlists (user_id, product_ids, updated_at)
		VALUES ($1, ARRAY[$2::uuid], now())
		ON CONFLICT (user_id) DO UPDATE SET
			product_ids = CASE
				WHEN $2::uuid = ANY (wishlists.product_ids) THEN wishlists.product_ids
				ELSE array_append(wishlists.product_ids, $2::uuid)
			END,
			updated_at = now()`,
		userID, productID.String(),
	)
	return err
}

// RemoveWishlistProduct drops the product. Removing an absent product is a
// no-op.
func (q *Queries) RemoveWishlistProduct(ctx context.Context, userID, productID uuid.UUID) error {
	_, err := q.db.Exec(ctx, `
		UPDATE wishlists SET product_ids = array_remove(product_ids, $2::uuid), updated_at = now()
		WHERE user_id = $1`,
		userID, productID.String(),
	)
	return err
}

// ListWishlistProducts hydrates the wishlist with active products. Products
// deactivated since being saved are filtered out.
func (q *Queries) ListWishlistProducts(ctx context.Context, userID uuid.UUID) ([]domain.Product, error) {
	rows, err := q.db.Query(ctx, `
		SELECT `+productColumns+` FROM products
		WHERE is_active AND id = ANY (
			SELECT UNNEST(product_ids) FROM wishlists WHERE user_id = $1
		)
		ORDER BY name`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list wishlist products: %w", err)
	}
	defer rows.Close()

	var products []domain.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		products = append(products, *p)
	}
	return products, rows.Err()
}
