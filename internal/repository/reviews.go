package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/purelife/storefront/internal/domain"
)

const reviewColumns = `id, product_id, user_id, user_name, rating, comment, created_at, updated_at`

func scanReview(row interface{ Scan(...any) error }) (*domain.Review, error) {
	var r domain.Review
	err := row.Scan(&r.ID, &r.ProductID, &r.UserID, &r.UserName, &r.Rating, &r.Comment, &r.CreatedAt, &r.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &r, nil
}

// CreateReview inserts a review. The unique (product_id, user_id) index
// rejects duplicates; callers check IsUniqueViolation.
func (q *Queries) CreateReview(ctx context.Context, review *domain.Review) (*domain.Review, error) {
	row := q.db.QueryRow(ctx, `
		INSERT INTO reviews (product_id, user_id, user_name, rating, comment)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING `+reviewColumns,
		review.ProductID, review.UserID, review.UserName, review.Rating, review.Comment,
	)
	return scanReview(row)
}

func (q *Queries) GetReviewByID(ctx context.Context, id uuid.UUID) (*domain.Review, error) {
	row := q.db.QueryRow(ctx, `SELECT `+reviewColumns+` FROM reviews WHERE id = $1`, id)
	return scanReview(row)
}

func (q *Queries) ListReviewsByProduct(ctx context.Context, productID uuid.UUID) ([]domain.Review, error) {
	rows, err := q.db.Query(ctx,
		`SELECT `+reviewColumns+` FROM reviews WHERE product_id = $1 ORDER BY created_at DESC`,
		productID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list reviews: %w", err)
	}
	defer rows.Close()

	var reviews []domain.Review
	for rows.Next() {
		r, err := scanReview(rows)
		if err != nil {
			return nil, err
		}
		reviews = append(reviews, *r)
	}
	return reviews, rows.Err()
}

func (q *Queries) UpdateReview(ctx context.Context, id uuid.UUID, rating int32, comment string) (*domain.Review, error) {
	row := q.db.QueryRow(ctx, `
		UPDATE reviews SET rating = $2, comment = $3, updated_at = now()
		WHERE id = $1
		RETURNING `+reviewColumns,
		id, rating, comment,
	)
	return scanReview(row)
}

func (q *Queries) DeleteReview(ctx context.Context, id uuid.UUID) error {
	tag, err := q.db.Exec(ctx, `DELETE FROM reviews WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("review %s: no rows deleted", id)
	}
	return nil
}
