package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/purelife/storefront/internal/domain"
	"github.com/purelife/storefront/internal/repository"
	"github.com/purelife/storefront/internal/telemetry"
)

// ProductPage is a page of catalog results with pagination totals.
type ProductPage struct {
	Products []domain.Product `json:"products"`
	Total    int64            `json:"total"`
	Page     int32            `json:"page"`
	PageSize int32            `json:"pageSize"`
}

// ProductService provides catalog browsing and admin product management.
type ProductService interface {
	ListProducts(ctx context.Context, filter repository.ProductFilter) (*ProductPage, error)
	GetProductBySlug(ctx context.Context, slug string) (*domain.Product, error)
	GetProductByID(ctx context.Context, id uuid.UUID) (*domain.Product, error)
	CreateProduct(ctx context.Context, p *domain.Product) (*domain.Product, error)
	UpdateProduct(ctx context.Context, params repository.UpdateProductParams) (*domain.Product, error)
	DeactivateProduct(ctx context.Context, id uuid.UUID) error
}

type productService struct {
	repo repository.Querier
}

// NewProductService creates a new ProductService instance.
func NewProductService(repo repository.Querier) ProductService {
	return &productService{repo: repo}
}

// ListProducts returns a filtered page of products with the total count.
func (s *productService) ListProducts(ctx context.Context, filter repository.ProductFilter) (*ProductPage, error) {
	const op = "ProductService.ListProducts"

	if filter.Category != "" && !domain.ValidCategory(filter.Category) {
		return nil, domain.NewValidationError(op, "category", "category must be water or air")
	}
	if filter.Limit <= 0 {
		filter.Limit = 12
	}
	if filter.Offset < 0 {
		filter.Offset = 0
	}

	products, err := s.repo.ListProducts(ctx, filter)
	if err != nil {
		return nil, domain.Internal(err, op, "failed to list products")
	}
	total, err := s.repo.CountProducts(ctx, filter)
	if err != nil {
		return nil, domain.Internal(err, op, "failed to count products")
	}

	if telemetry.Business != nil {
		telemetry.Business.ProductSearches.WithLabelValues(filterType(filter)).Inc()
	}

	return &ProductPage{
		Products: products,
		Total:    total,
		Page:     filter.Offset/filter.Limit + 1,
		PageSize: filter.Limit,
	}, nil
}

// GetProductBySlug returns one active product by its URL slug.
func (s *productService) GetProductBySlug(ctx context.Context, slug string) (*domain.Product, error) {
	const op = "ProductService.GetProductBySlug"

	product, err := s.repo.GetProductBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.NotFound(op, "product", slug)
		}
		return nil, domain.Internal(err, op, "failed to get product")
	}
	if !product.IsActive {
		return nil, domain.NotFound(op, "product", slug)
	}

	if telemetry.Business != nil {
		telemetry.Business.ProductViews.WithLabelValues(product.Slug).Inc()
	}
	return product, nil
}

// GetProductByID returns a product regardless of active state.
// Used by the admin surface and by cart validation.
func (s *productService) GetProductByID(ctx context.Context, id uuid.UUID) (*domain.Product, error) {
	const op = "ProductService.GetProductByID"

	product, err := s.repo.GetProductByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.NotFound(op, "product", id.String())
		}
		return nil, domain.Internal(err, op, "failed to get product")
	}
	return product, nil
}

// CreateProduct validates and stores a new product. A missing slug is
// derived from the name.
func (s *productService) CreateProduct(ctx context.Context, p *domain.Product) (*domain.Product, error) {
	const op = "ProductService.CreateProduct"

	if p.Slug == "" {
		p.Slug = domain.Slugify(p.Name)
	}
	if err := p.Validate(op); err != nil {
		return nil, err
	}

	created, err := s.repo.CreateProduct(ctx, p)
	if err != nil {
		if repository.IsUniqueViolation(err) {
			return nil, domain.Conflict(op, "A product with this slug already exists")
		}
		return nil, domain.Internal(err, op, "failed to create product")
	}
	return created, nil
}

// UpdateProduct validates and stores product edits.
func (s *productService) UpdateProduct(ctx context.Context, params repository.UpdateProductParams) (*domain.Product, error) {
	const op = "ProductService.UpdateProduct"

	if params.Slug == "" {
		params.Slug = domain.Slugify(params.Name)
	}
	check := &domain.Product{
		Name:     params.Name,
		Slug:     params.Slug,
		Category: params.Category,
		Price:    params.Price,
		Stock:    params.Stock,
	}
	if err := check.Validate(op); err != nil {
		return nil, err
	}

	updated, err := s.repo.UpdateProduct(ctx, params)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.NotFound(op, "product", params.ID.String())
		}
		if repository.IsUniqueViolation(err) {
			return nil, domain.Conflict(op, "A product with this slug already exists")
		}
		return nil, domain.Internal(err, op, "failed to update product")
	}
	return updated, nil
}

// DeactivateProduct soft-deletes a product. Existing orders and carts
// keep their snapshots; the product stops appearing in the catalog.
func (s *productService) DeactivateProduct(ctx context.Context, id uuid.UUID) error {
	const op = "ProductService.DeactivateProduct"

	if _, err := s.repo.GetProductByID(ctx, id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.NotFound(op, "product", id.String())
		}
		return domain.Internal(err, op, "failed to get product")
	}
	if err := s.repo.SetProductActive(ctx, id, false); err != nil {
		return domain.Internal(err, op, "failed to deactivate product")
	}
	return nil
}

func filterType(f repository.ProductFilter) string {
	switch {
	case f.Search != "":
		return "search"
	case f.Category != "":
		return "category"
	case f.MinPrice != nil || f.MaxPrice != nil:
		return "price"
	default:
		return "none"
	}
}
