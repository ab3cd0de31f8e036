package billing

import (
	"errors"
	"fmt"
)

var (
	// ErrPaymentIntentNotFound means the referenced payment intent does
	// not exist on the Stripe account.
	ErrPaymentIntentNotFound = errors.New("billing: payment intent not found")

	// ErrPaymentFailed covers declines and other terminal payment errors.
	ErrPaymentFailed = errors.New("billing: payment failed")

	// ErrInvalidWebhookSignature means the webhook payload was not signed
	// with our endpoint secret.
	ErrInvalidWebhookSignature = errors.New("billing: invalid webhook signature")

	// ErrAmountTooSmall guards Stripe's minimum charge of $0.50 USD.
	ErrAmountTooSmall = errors.New("billing: amount below minimum charge")
)

// StripeError carries the Stripe error details worth logging alongside
// the wrapped SDK error.
type StripeError struct {
	Message       string
	Code          string // Stripe error code, e.g. "card_declined"
	DeclineCode   string // issuer decline reason, when the card was declined
	RequestID     string // Stripe request ID, for support tickets
	OriginalError error
}

func (e *StripeError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("stripe: %s (code: %s)", e.Message, e.Code)
	}
	return "stripe: " + e.Message
}

func (e *StripeError) Unwrap() error {
	return e.OriginalError
}

// IsDeclined reports whether the card issuer declined the charge.
func (e *StripeError) IsDeclined() bool {
	return e.Code == "card_declined" || e.DeclineCode != ""
}

// IsTemporary reports whether retrying the call may succeed.
func (e *StripeError) IsTemporary() bool {
	return e.Code == "rate_limit" || e.Code == "api_connection_error"
}
