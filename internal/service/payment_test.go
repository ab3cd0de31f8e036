package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/purelife/storefront/internal/billing"
	"github.com/purelife/storefront/internal/domain"
)

func cartWithTotal(userID uuid.UUID, price string, qty int32) *domain.Cart {
	return &domain.Cart{
		UserID: userID,
		Items: []domain.CartItem{
			{ProductID: uuid.New(), Name: "AquaPure Home", Price: decimal.RequireFromString(price), Quantity: qty, Stock: 99},
		},
	}
}

func TestCreateIntentConvertsToMinorUnits(t *testing.T) {
	userID := uuid.New()
	repo := &mockQuerier{
		GetCartFunc: func(ctx context.Context, uid uuid.UUID) (*domain.Cart, error) {
			return cartWithTotal(uid, "149.99", 2), nil
		},
	}
	provider := billing.NewMockProvider()
	svc := NewPaymentService(repo, provider)

	intent, err := svc.CreateIntent(context.Background(), userID, "Jordan Rivers", "jordan@example.com")
	require.NoError(t, err)

	assert.Equal(t, int64(29998), intent.AmountCents)
	assert.Equal(t, "usd", intent.Currency)
	assert.Equal(t, userID.String(), intent.Metadata["userId"])
	assert.Equal(t, "Jordan Rivers", intent.Metadata["customerName"])
	assert.Equal(t, "jordan@example.com", intent.ReceiptEmail)
}

func TestCreateIntentIdempotencyKeyTracksRequestParams(t *testing.T) {
	userID := uuid.New()
	price := "100.00"
	repo := &mockQuerier{
		GetCartFunc: func(ctx context.Context, uid uuid.UUID) (*domain.Cart, error) {
			return cartWithTotal(uid, price, 1), nil
		},
	}

	var keys []string
	provider := billing.NewMockProvider()
	provider.CreatePaymentIntentFunc = func(ctx context.Context, params billing.CreatePaymentIntentParams) (*billing.PaymentIntent, error) {
		keys = append(keys, params.IdempotencyKey)
		return &billing.PaymentIntent{ID: "pi_key_test", AmountCents: params.AmountCents}, nil
	}
	svc := NewPaymentService(repo, provider)

	// An identical retry must reuse the key; Stripe rejects a reused key
	// with different request params, so any change must mint a new one.
	_, err := svc.CreateIntent(context.Background(), userID, "Jordan Rivers", "jordan@example.com")
	require.NoError(t, err)
	_, err = svc.CreateIntent(context.Background(), userID, "Jordan Rivers", "jordan@example.com")
	require.NoError(t, err)
	_, err = svc.CreateIntent(context.Background(), userID, "J. Rivers", "jordan@example.com")
	require.NoError(t, err)
	price = "125.00"
	_, err = svc.CreateIntent(context.Background(), userID, "J. Rivers", "jordan@example.com")
	require.NoError(t, err)

	require.Len(t, keys, 4)
	assert.Equal(t, keys[0], keys[1])
	assert.NotEqual(t, keys[1], keys[2])
	assert.NotEqual(t, keys[2], keys[3])
}

func TestCreateIntentRoundsHalfCents(t *testing.T) {
	repo := &mockQuerier{
		GetCartFunc: func(ctx context.Context, uid uuid.UUID) (*domain.Cart, error) {
			// 33.335 * 100 = 3333.5, rounds half away from zero to 3334
			return &domain.Cart{UserID: uid, Items: []domain.CartItem{
				{ProductID: uuid.New(), Price: decimal.RequireFromString("33.335"), Quantity: 1, Stock: 5},
			}}, nil
		},
	}
	provider := billing.NewMockProvider()
	svc := NewPaymentService(repo, provider)

	intent, err := svc.CreateIntent(context.Background(), uuid.New(), "A", "a@example.com")
	require.NoError(t, err)
	assert.Equal(t, int64(3334), intent.AmountCents)
}

func TestCreateIntentEmptyCartRejectedBeforeProviderCall(t *testing.T) {
	provider := billing.NewMockProvider()
	svc := NewPaymentService(&mockQuerier{
		GetCartFunc: func(ctx context.Context, uid uuid.UUID) (*domain.Cart, error) {
			return &domain.Cart{UserID: uid}, nil
		},
	}, provider)

	_, err := svc.CreateIntent(context.Background(), uuid.New(), "A", "a@example.com")
	require.Error(t, err)
	assert.Equal(t, domain.EINVALID, domain.ErrorCode(err))
	assert.Empty(t, provider.CallLog, "provider should not be called for an empty cart")
}

func TestCreateIntentProviderErrorMapsToPayment(t *testing.T) {
	repo := &mockQuerier{
		GetCartFunc: func(ctx context.Context, uid uuid.UUID) (*domain.Cart, error) {
			return cartWithTotal(uid, "50.00", 1), nil
		},
	}
	provider := billing.NewMockProvider()
	provider.CreatePaymentIntentFunc = func(ctx context.Context, params billing.CreatePaymentIntentParams) (*billing.PaymentIntent, error) {
		return nil, billing.ErrPaymentFailed
	}
	svc := NewPaymentService(repo, provider)

	_, err := svc.CreateIntent(context.Background(), uuid.New(), "A", "a@example.com")
	require.Error(t, err)
	assert.Equal(t, domain.EPAYMENT, domain.ErrorCode(err))
}
