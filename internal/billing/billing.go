package billing

import (
	"context"
	"time"
)

// Provider defines the interface for payment processing.
// Implementations can use Stripe, PayPal, Square, etc.
type Provider interface {
	// CreatePaymentIntent creates a payment intent for one-time charges.
	// Returns payment intent with client_secret for frontend confirmation.
	CreatePaymentIntent(ctx context.Context, params CreatePaymentIntentParams) (*PaymentIntent, error)

	// GetPaymentIntent retrieves an existing payment intent.
	// Used to verify payment state before creating or reconciling an order.
	GetPaymentIntent(ctx context.Context, paymentIntentID string) (*PaymentIntent, error)

	// VerifyWebhookSignature verifies that a webhook request is authentic.
	// Required to process async payment confirmations safely.
	VerifyWebhookSignature(payload []byte, signature string, secret string) error

	// RefundPayment refunds a completed payment.
	// Used for order cancellations and returns.
	RefundPayment(ctx context.Context, params RefundParams) (*Refund, error)
}

// CreatePaymentIntentParams contains parameters for creating a payment intent.
type CreatePaymentIntentParams struct {
	// AmountCents is the amount in smallest currency unit (cents for USD)
	AmountCents int64

	// Currency code (ISO 4217) - e.g., "usd", "eur"
	Currency string

	// CustomerEmail receives the Stripe receipt after payment
	CustomerEmail string

	// Description appears on customer's statement and in Stripe dashboard
	Description string

	// Metadata for reconciliation and reporting (userId, customerName)
	Metadata map[string]string

	// IdempotencyKey prevents duplicate payment intents for retried requests
	IdempotencyKey string
}

// PaymentIntent represents a payment intent.
type PaymentIntent struct {
	// ID is the Stripe payment intent ID (pi_...)
	ID string

	// ClientSecret is used by Stripe.js on frontend to confirm payment
	ClientSecret string

	// AmountCents is the amount in smallest currency unit (cents)
	AmountCents int64

	// Currency code
	Currency string

	// Status: requires_payment_method, requires_confirmation, succeeded, etc.
	Status string

	// Metadata passed during creation
	Metadata map[string]string

	// CreatedAt is when payment intent was created
	CreatedAt time.Time

	// LastPaymentError contains details if payment failed
	LastPaymentError *PaymentError

	// ReceiptEmail is the email where Stripe sends receipts
	ReceiptEmail string
}

// PaymentError contains details about a failed payment attempt.
type PaymentError struct {
	Code        string // Stripe error code
	Message     string // Human-readable message
	DeclineCode string // Reason card was declined (if applicable)
}

// RefundParams contains parameters for refunding a payment.
type RefundParams struct {
	// PaymentIntentID is the payment intent to refund
	PaymentIntentID string

	// AmountCents refunds a partial amount; zero refunds the full charge
	AmountCents int64

	// Reason: "duplicate", "fraudulent", or "requested_by_customer"
	Reason string
}

// Refund represents a completed or pending refund.
type Refund struct {
	ID              string
	PaymentIntentID string
	AmountCents     int64
	Status          string
	CreatedAt       time.Time
}
