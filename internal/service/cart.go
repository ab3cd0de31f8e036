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

// CartService provides the per-user shopping cart.
//
// Quantities follow clamp semantics: a requested quantity above the
// product's stock snapshot is silently reduced to the stock, and a
// quantity of zero or less removes the line.
type CartService interface {
	GetCart(ctx context.Context, userID uuid.UUID) (*domain.Cart, error)
	AddItem(ctx context.Context, userID, productID uuid.UUID, quantity int32) (*domain.Cart, error)
	UpdateItem(ctx context.Context, userID, productID uuid.UUID, quantity int32) (*domain.Cart, error)
	RemoveItem(ctx context.Context, userID, productID uuid.UUID) (*domain.Cart, error)
	ReplaceCart(ctx context.Context, userID uuid.UUID, items []domain.CartItem) (*domain.Cart, error)
	ClearCart(ctx context.Context, userID uuid.UUID) error
}

type cartService struct {
	repo repository.Querier
}

// NewCartService creates a new CartService instance.
func NewCartService(repo repository.Querier) CartService {
	return &cartService{repo: repo}
}

// GetCart returns the user's cart. Users without a stored cart get an
// empty one; a cart row is only created on first write.
func (s *cartService) GetCart(ctx context.Context, userID uuid.UUID) (*domain.Cart, error) {
	const op = "CartService.GetCart"

	cart, err := s.repo.GetCart(ctx, userID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return &domain.Cart{UserID: userID, Items: []domain.CartItem{}}, nil
		}
		return nil, domain.Internal(err, op, "failed to get cart")
	}
	return cart, nil
}

// AddItem adds quantity units of a product, merging with any existing
// line. The product must be active.
func (s *cartService) AddItem(ctx context.Context, userID, productID uuid.UUID, quantity int32) (*domain.Cart, error) {
	const op = "CartService.AddItem"

	if quantity < 1 {
		return nil, domain.NewValidationError(op, "quantity", "quantity must be at least 1")
	}

	product, err := s.repo.GetProductByID(ctx, productID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.NotFound(op, "product", productID.String())
		}
		return nil, domain.Internal(err, op, "failed to get product")
	}
	if !product.IsActive {
		return nil, domain.Errorf(domain.EGONE, op, "This product is no longer available")
	}
	if product.Stock < 1 {
		return nil, domain.Conflict(op, "This product is out of stock")
	}

	cart, err := s.GetCart(ctx, userID)
	if err != nil {
		return nil, err
	}

	imageURL := ""
	if len(product.Images) > 0 {
		imageURL = product.Images[0]
	}
	cart.AddItem(domain.CartItem{
		ProductID: product.ID,
		Name:      product.Name,
		Price:     product.Price,
		Quantity:  quantity,
		ImageURL:  imageURL,
		Stock:     product.Stock,
	})

	if telemetry.Business != nil {
		telemetry.Business.CartItemsAdded.WithLabelValues(product.ID.String()).Inc()
	}
	return s.save(ctx, op, userID, cart.Items)
}

// UpdateItem sets the quantity for a product line; zero or less removes it.
func (s *cartService) UpdateItem(ctx context.Context, userID, productID uuid.UUID, quantity int32) (*domain.Cart, error) {
	const op = "CartService.UpdateItem"

	cart, err := s.GetCart(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !cart.UpdateQuantity(productID, quantity) {
		return nil, domain.NotFound(op, "cart item", productID.String())
	}
	return s.save(ctx, op, userID, cart.Items)
}

// RemoveItem deletes a product line from the cart.
func (s *cartService) RemoveItem(ctx context.Context, userID, productID uuid.UUID) (*domain.Cart, error) {
	const op = "CartService.RemoveItem"

	cart, err := s.GetCart(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !cart.RemoveItem(productID) {
		return nil, domain.NotFound(op, "cart item", productID.String())
	}
	return s.save(ctx, op, userID, cart.Items)
}

// ReplaceCart swaps the whole cart, revalidating every line against the
// current catalog. Used to merge a client-side guest cart after login.
// Last writer wins.
func (s *cartService) ReplaceCart(ctx context.Context, userID uuid.UUID, items []domain.CartItem) (*domain.Cart, error) {
	const op = "CartService.ReplaceCart"

	validated := make([]domain.CartItem, 0, len(items))
	for _, it := range items {
		if it.Quantity <= 0 {
			continue
		}
		product, err := s.repo.GetProductByID(ctx, it.ProductID)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				continue
			}
			return nil, domain.Internal(err, op, "failed to validate cart item")
		}
		if !product.IsActive || product.Stock < 1 {
			continue
		}
		imageURL := ""
		if len(product.Images) > 0 {
			imageURL = product.Images[0]
		}
		validated = append(validated, domain.CartItem{
			ProductID: product.ID,
			Name:      product.Name,
			Price:     product.Price,
			Quantity:  it.Quantity,
			ImageURL:  imageURL,
			Stock:     product.Stock,
		})
	}

	cart := &domain.Cart{UserID: userID}
	cart.ReplaceItems(validated)
	return s.save(ctx, op, userID, cart.Items)
}

// ClearCart empties the cart. Clearing an absent cart is a no-op.
func (s *cartService) ClearCart(ctx context.Context, userID uuid.UUID) error {
	const op = "CartService.ClearCart"

	if err := s.repo.ClearCart(ctx, userID); err != nil {
		return domain.Internal(err, op, "failed to clear cart")
	}
	return nil
}

func (s *cartService) save(ctx context.Context, op string, userID uuid.UUID, items []domain.CartItem) (*domain.Cart, error) {
	cart, err := s.repo.UpsertCart(ctx, userID, items)
	if err != nil {
		return nil, domain.Internal(err, op, "failed to save cart")
	}
	return cart, nil
}
