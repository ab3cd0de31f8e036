package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/purelife/storefront/internal/domain"
)

func activeProduct(id uuid.UUID, stock int32) *domain.Product {
	return &domain.Product{
		ID:       id,
		Name:     "AquaPure Home",
		Slug:     "aquapure-home",
		Price:    decimal.RequireFromString("149.00"),
		Images:   []string{"https://cdn.example.com/aquapure.jpg"},
		Category: domain.CategoryWater,
		Stock:    stock,
		IsActive: true,
	}
}

func TestCartAddItemClampsToStock(t *testing.T) {
	userID := uuid.New()
	productID := uuid.New()
	var saved []domain.CartItem

	repo := &mockQuerier{
		GetProductByIDFunc: func(ctx context.Context, id uuid.UUID) (*domain.Product, error) {
			return activeProduct(productID, 5), nil
		},
		UpsertCartFunc: func(ctx context.Context, uid uuid.UUID, items []domain.CartItem) (*domain.Cart, error) {
			saved = items
			return &domain.Cart{UserID: uid, Items: items}, nil
		},
	}
	svc := NewCartService(repo)

	cart, err := svc.AddItem(context.Background(), userID, productID, 12)
	require.NoError(t, err)

	require.Len(t, saved, 1)
	assert.Equal(t, int32(5), saved[0].Quantity, "quantity should clamp to stock")
	assert.Equal(t, "149.00", saved[0].Price.StringFixed(2), "price should snapshot the product price")
	assert.Equal(t, int32(5), cart.TotalItems())
}

func TestCartAddItemMergesExistingLine(t *testing.T) {
	userID := uuid.New()
	productID := uuid.New()

	repo := &mockQuerier{
		GetProductByIDFunc: func(ctx context.Context, id uuid.UUID) (*domain.Product, error) {
			return activeProduct(productID, 10), nil
		},
		GetCartFunc: func(ctx context.Context, uid uuid.UUID) (*domain.Cart, error) {
			return &domain.Cart{UserID: uid, Items: []domain.CartItem{
				{ProductID: productID, Name: "AquaPure Home", Price: decimal.RequireFromString("149.00"), Quantity: 3, Stock: 10},
			}}, nil
		},
	}
	svc := NewCartService(repo)

	cart, err := svc.AddItem(context.Background(), userID, productID, 2)
	require.NoError(t, err)

	require.Len(t, cart.Items, 1)
	assert.Equal(t, int32(5), cart.Items[0].Quantity)
}

func TestCartAddItemRejectsInactiveProduct(t *testing.T) {
	productID := uuid.New()
	repo := &mockQuerier{
		GetProductByIDFunc: func(ctx context.Context, id uuid.UUID) (*domain.Product, error) {
			p := activeProduct(productID, 5)
			p.IsActive = false
			return p, nil
		},
	}
	svc := NewCartService(repo)

	_, err := svc.AddItem(context.Background(), uuid.New(), productID, 1)
	require.Error(t, err)
	assert.Equal(t, domain.EGONE, domain.ErrorCode(err))
}

func TestCartAddItemRejectsOutOfStock(t *testing.T) {
	productID := uuid.New()
	repo := &mockQuerier{
		GetProductByIDFunc: func(ctx context.Context, id uuid.UUID) (*domain.Product, error) {
			return activeProduct(productID, 0), nil
		},
	}
	svc := NewCartService(repo)

	_, err := svc.AddItem(context.Background(), uuid.New(), productID, 1)
	require.Error(t, err)
	assert.Equal(t, domain.ECONFLICT, domain.ErrorCode(err))
}

func TestCartAddItemUnknownProduct(t *testing.T) {
	svc := NewCartService(&mockQuerier{})

	_, err := svc.AddItem(context.Background(), uuid.New(), uuid.New(), 1)
	require.Error(t, err)
	assert.Equal(t, domain.ENOTFOUND, domain.ErrorCode(err))
}

func TestCartGetReturnsEmptyWhenAbsent(t *testing.T) {
	svc := NewCartService(&mockQuerier{})

	cart, err := svc.GetCart(context.Background(), uuid.New())
	require.NoError(t, err)
	assert.Empty(t, cart.Items)
	assert.True(t, cart.TotalPrice().IsZero())
}

func TestCartUpdateItemZeroRemovesLine(t *testing.T) {
	userID := uuid.New()
	productID := uuid.New()

	repo := &mockQuerier{
		GetCartFunc: func(ctx context.Context, uid uuid.UUID) (*domain.Cart, error) {
			return &domain.Cart{UserID: uid, Items: []domain.CartItem{
				{ProductID: productID, Quantity: 2, Stock: 5, Price: decimal.RequireFromString("10.00")},
			}}, nil
		},
	}
	svc := NewCartService(repo)

	cart, err := svc.UpdateItem(context.Background(), userID, productID, 0)
	require.NoError(t, err)
	assert.Empty(t, cart.Items)
}

func TestCartUpdateItemMissingLine(t *testing.T) {
	repo := &mockQuerier{
		GetCartFunc: func(ctx context.Context, uid uuid.UUID) (*domain.Cart, error) {
			return &domain.Cart{UserID: uid}, nil
		},
	}
	svc := NewCartService(repo)

	_, err := svc.UpdateItem(context.Background(), uuid.New(), uuid.New(), 3)
	require.Error(t, err)
	assert.Equal(t, domain.ENOTFOUND, domain.ErrorCode(err))
}

func TestCartReplaceDropsUnknownAndInactive(t *testing.T) {
	userID := uuid.New()
	goodID := uuid.New()
	goneID := uuid.New()

	repo := &mockQuerier{
		GetProductByIDFunc: func(ctx context.Context, id uuid.UUID) (*domain.Product, error) {
			if id == goodID {
				return activeProduct(goodID, 4), nil
			}
			if id == goneID {
				p := activeProduct(goneID, 4)
				p.IsActive = false
				return p, nil
			}
			return nil, errMockNotImplemented
		},
	}
	svc := NewCartService(repo)

	cart, err := svc.ReplaceCart(context.Background(), userID, []domain.CartItem{
		{ProductID: goodID, Quantity: 9},
		{ProductID: goneID, Quantity: 1},
		{ProductID: goodID, Quantity: 0},
	})
	require.NoError(t, err)

	require.Len(t, cart.Items, 1)
	assert.Equal(t, goodID, cart.Items[0].ProductID)
	assert.Equal(t, int32(4), cart.Items[0].Quantity, "quantity should clamp to current stock")
}
