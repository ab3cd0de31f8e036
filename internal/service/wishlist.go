package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/purelife/storefront/internal/domain"
	"github.com/purelife/storefront/internal/repository"
)

// WishlistService provides the per-user wishlist. Adding is a set
// operation: adding a product twice leaves a single entry.
type WishlistService interface {
	GetWishlist(ctx context.Context, userID uuid.UUID) ([]domain.Product, error)
	AddProduct(ctx context.Context, userID, productID uuid.UUID) error
	RemoveProduct(ctx context.Context, userID, productID uuid.UUID) error
}

type wishlistService struct {
	repo repository.Querier
}

// NewWishlistService creates a new WishlistService instance.
func NewWishlistService(repo repository.Querier) WishlistService {
	return &wishlistService{repo: repo}
}

// GetWishlist returns the active products on the user's wishlist.
// Deactivated products are filtered out at read time.
func (s *wishlistService) GetWishlist(ctx context.Context, userID uuid.UUID) ([]domain.Product, error) {
	const op = "WishlistService.GetWishlist"

	products, err := s.repo.ListWishlistProducts(ctx, userID)
	if err != nil {
		return nil, domain.Internal(err, op, "failed to load wishlist")
	}
	if products == nil {
		products = []domain.Product{}
	}
	return products, nil
}

func (s *wishlistService) AddProduct(ctx context.Context, userID, productID uuid.UUID) error {
	const op = "WishlistService.AddProduct"

	product, err := s.repo.GetProductByID(ctx, productID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.NotFound(op, "product", productID.String())
		}
		return domain.Internal(err, op, "failed to get product")
	}
	if !product.IsActive {
		return domain.Errorf(domain.EGONE, op, "This product is no longer available")
	}

	if err := s.repo.AddWishlistProduct(ctx, userID, productID); err != nil {
		return domain.Internal(err, op, "failed to add to wishlist")
	}
	return nil
}

// RemoveProduct removes a product from the wishlist. Removing an absent
// product is a no-op.
func (s *wishlistService) RemoveProduct(ctx context.Context, userID, productID uuid.UUID) error {
	const op = "WishlistService.RemoveProduct"

	if err := s.repo.RemoveWishlistProduct(ctx, userID, productID); err != nil {
		return domain.Internal(err, op, "failed to remove from wishlist")
	}
	return nil
}
