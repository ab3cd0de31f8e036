package service

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/purelife/storefront/internal/billing"
	"github.com/purelife/storefront/internal/domain"
	"github.com/purelife/storefront/internal/repository"
	"github.com/purelife/storefront/internal/telemetry"
)

// PaymentService creates payment intents for checkout.
type PaymentService interface {
	// CreateIntent creates a payment intent for the user's current cart.
	// The amount is always computed server-side from the stored cart.
	CreateIntent(ctx context.Context, userID uuid.UUID, customerName, customerEmail string) (*billing.PaymentIntent, error)
}

type paymentService struct {
	repo     repository.Querier
	provider billing.Provider
}

// NewPaymentService creates a new PaymentService instance.
func NewPaymentService(repo repository.Querier, provider billing.Provider) PaymentService {
	return &paymentService{
		repo:     repo,
		provider: provider,
	}
}

// CreateIntent computes the cart total, converts it to minor units, and
// creates a payment intent carrying the user ID in metadata so webhook
// events can be reconciled back to the order.
func (s *paymentService) CreateIntent(ctx context.Context, userID uuid.UUID, customerName, customerEmail string) (*billing.PaymentIntent, error) {
	const op = "PaymentService.CreateIntent"

	cart, err := s.repo.GetCart(ctx, userID)
	if err != nil && !errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.Internal(err, op, "failed to load cart")
	}
	if cart == nil || len(cart.Items) == 0 {
		return nil, domain.Invalid(op, "Cart is empty")
	}

	total := cart.TotalPrice()
	if total.LessThanOrEqual(decimal.Zero) {
		return nil, domain.Invalid(op, "Order total must be positive")
	}

	// Stripe charges in minor units; round half up to whole cents.
	amountCents := total.Mul(decimal.NewFromInt(100)).Round(0).IntPart()

	intent, err := s.provider.CreatePaymentIntent(ctx, billing.CreatePaymentIntentParams{
		AmountCents:   amountCents,
		Currency:      "usd",
		CustomerEmail: customerEmail,
		Description:   fmt.Sprintf("PureLife order for %s", customerName),
		Metadata: map[string]string{
			"userId":       userID.String(),
			"customerName": customerName,
		},
		IdempotencyKey: intentIdempotencyKey(userID, amountCents, customerName, customerEmail),
	})
	if err != nil {
		return nil, domain.WrapError(err, domain.EPAYMENT, op, "Failed to create payment intent")
	}

	if telemetry.Business != nil {
		telemetry.Business.PaymentIntentsCreated.Inc()
		value, _ := total.Float64()
		telemetry.Business.CartValue.Observe(value)
	}
	return intent, nil
}

// intentIdempotencyKey derives a stable key from everything that goes
// into the intent request. Stripe rejects a reused key with different
// params, so any change to the customer details must produce a new key
// while an identical retry reuses the old one.
func intentIdempotencyKey(userID uuid.UUID, amountCents int64, customerName, customerEmail string) string {
	sum := sha256.Sum256([]byte(fmt.Sprintf("%s|%d|%s|%s", userID, amountCents, customerName, customerEmail)))
	return "cart-" + hex.EncodeToString(sum[:12])
}
