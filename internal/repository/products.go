package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/purelife/storefront/internal/domain"
)

const productColumns = `id, name, slug, description, price::text, images, category, stock,
	rating, num_reviews, features, specifications, is_active, created_at, updated_at`

func scanProduct(row interface{ Scan(...any) error }) (*domain.Product, error) {
	var p domain.Product
	var price string
	var specs []byte
	err := row.Scan(&p.ID, &p.Name, &p.Slug, &p.Description, &price, &p.Images, &p.Category,
		&p.Stock, &p.Rating, &p.NumReviews, &p.Features, &specs, &p.IsActive, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if p.Price, err = parseDecimal(price); err != nil {
		return nil, err
	}
	if err := unmarshalJSON(specs, &p.Specifications); err != nil {
		return nil, err
	}
	return &p, nil
}

func (q *Queries) CreateProduct(ctx context.Context, p *domain.Product) (*domain.Product, error) {
	specs, err := marshalJSON(p.Specifications)
	if err != nil {
		return nil, err
	}
	row := q.db.QueryRow(ctx, `
		INSERT INTO products (name, slug, description, price, images, category, stock, features, specifications, is_active)
		VALUES ($1, $2, $3, $4::numeric, $5, $6, $7, $8, $9, $10)
		RETURNING `+productColumns,
		p.Name, p.Slug, p.Description, p.Price.StringFixed(2), p.Images, p.Category,
		p.Stock, p.Features, specs, p.IsActive,
	)
	return scanProduct(row)
}

func (q *Queries) GetProductByID(ctx context.Context, id uuid.UUID) (*domain.Product, error) {
	row := q.db.QueryRow(ctx, `SELECT `+productColumns+` FROM products WHERE id = $1`, id)
	return scanProduct(row)
}

func (q *Queries) GetProductBySlug(ctx context.Context, slug string) (*domain.Product, error) {
	row := q.db.QueryRow(ctx, `SELECT `+productColumns+` FROM products WHERE slug = $1`, slug)
	return scanProduct(row)
}

// buildProductFilter renders the WHERE clause shared by list and count.
func buildProductFilter(filter ProductFilter) (string, []any) {
	var conds []string
	var args []any

	if !filter.IncludeInactive {
		conds = append(conds, "is_active")
	}
	if filter.Category != "" {
		args = append(args, filter.Category)
		conds = append(conds, fmt.Sprintf("category = $%d", len(args)))
	}
	if filter.Search != "" {
		args = append(args, "%"+filter.Search+"%")
		n := len(args)
		conds = append(conds, fmt.Sprintf("(name ILIKE $%d OR description ILIKE $%d)", n, n))
	}
	if filter.MinPrice != nil {
		args = append(args, filter.MinPrice.StringFixed(2))
		conds = append(conds, fmt.Sprintf("price >= $%d::numeric", len(args)))
	}
	if filter.MaxPrice != nil {
		args = append(args, filter.MaxPrice.StringFixed(2))
		conds = append(conds, fmt.Sprintf("price <= $%d::numeric", len(args)))
	}

	if len(conds) == 0 {
		return "", args
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

func productOrderBy(sort string) string {
	switch sort {
	case "price_asc":
		return "price ASC"
	case "price_desc":
		return "price DESC"
	case "rating":
		return "rating DESC, num_reviews DESC"
	default:
		return "created_at DESC"
	}
}

func (q *Queries) ListProducts(ctx context.Context, filter ProductFilter) ([]domain.Product, error) {
	where, args := buildProductFilter(filter)

	limit := filter.Limit
	if limit <= 0 {
		limit = 12
	}
	args = append(args, limit)
	limitPos := len(args)
	args = append(args, filter.Offset)
	offsetPos := len(args)

	sql := fmt.Sprintf("SELECT %s FROM products%s ORDER BY %s LIMIT $%d OFFSET $%d",
		productColumns, where, productOrderBy(filter.Sort), limitPos, offsetPos)

	rows, err := q.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
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

func (q *Queries) CountProducts(ctx context.Context, filter ProductFilter) (int64, error) {
	where, args := buildProductFilter(filter)
	var n int64
	err := q.db.QueryRow(ctx, "SELECT COUNT(*) FROM products"+where, args...).Scan(&n)
	return n, err
}

func (q *Queries) UpdateProduct(ctx context.Context, params UpdateProductParams) (*domain.Product, error) {
	specs, err := marshalJSON(params.Specifications)
	if err != nil {
		return nil, err
	}
	row := q.db.QueryRow(ctx, `
		UPDATE products
		SET name = $2, slug = $3, description = $4, price = $5::numeric, images = $6,
		    category = $7, stock = $8, features = $9, specifications = $10,
		    is_active = $11, updated_at = now()
		WHERE id = $1
		RETURNING `+productColumns,
		params.ID, params.Name, params.Slug, params.Description, params.Price.StringFixed(2),
		params.Images, params.Category, params.Stock, params.Features, specs, params.IsActive,
	)
	return scanProduct(row)
}

// SetProductActive soft-deletes or restores a product.
func (q *Queries) SetProductActive(ctx context.Context, id uuid.UUID, active bool) error {
	tag, err := q.db.Exec(ctx, `UPDATE products SET is_active = $2, updated_at = now() WHERE id = $1`, id, active)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("product %s: no rows updated", id)
	}
	return nil
}

// RefreshProductRating recomputes the denormalized rating and review count
// after a review is created, updated, or deleted.
func (q *Queries) RefreshProductRating(ctx context.Context, productID uuid.UUID) error {
	_, err := q.db.Exec(ctx, `
		UPDATE products SET
			rating = COALESCE((SELECT AVG(rating) FROM reviews WHERE product_id = $1), 0),
			num_reviews = (SELECT COUNT(*) FROM reviews WHERE product_id = $1),
			updated_at = now()
		WHERE id = $1`,
		productID,
	)
	return err
}
