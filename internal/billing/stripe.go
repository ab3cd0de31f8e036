package billing

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/stripe/stripe-go/v83"
	"github.com/stripe/stripe-go/v83/paymentintent"
	"github.com/stripe/stripe-go/v83/refund"
	"github.com/stripe/stripe-go/v83/webhook"
)

const (
	defaultMaxRetries     = 3
	defaultTimeoutSeconds = 30

	// minimumChargeCents is Stripe's minimum charge for USD.
	minimumChargeCents = 50
)

// StripeProvider implements Provider using the Stripe Go SDK.
type StripeProvider struct {
	config StripeConfig
}

// NewStripeProvider creates a Stripe billing provider and configures
// the SDK's shared backend with retry and timeout settings.
func NewStripeProvider(config StripeConfig) (*StripeProvider, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	if config.MaxRetries <= 0 {
		config.MaxRetries = defaultMaxRetries
	}
	if config.TimeoutSeconds <= 0 {
		config.TimeoutSeconds = defaultTimeoutSeconds
	}

	stripe.Key = config.APIKey
	stripe.SetBackend(stripe.APIBackend, stripe.GetBackendWithConfig(stripe.APIBackend, &stripe.BackendConfig{
		HTTPClient: &http.Client{
			Timeout: time.Duration(config.TimeoutSeconds) * time.Second,
		},
		MaxNetworkRetries: stripe.Int64(int64(config.MaxRetries)),
	}))

	return &StripeProvider{config: config}, nil
}

// CreatePaymentIntent creates a Stripe payment intent with automatic
// payment methods enabled.
func (s *StripeProvider) CreatePaymentIntent(ctx context.Context, params CreatePaymentIntentParams) (*PaymentIntent, error) {
	if params.AmountCents < minimumChargeCents {
		return nil, ErrAmountTooSmall
	}
	currency := params.Currency
	if currency == "" {
		currency = "usd"
	}

	piParams := &stripe.PaymentIntentParams{
		Params: stripe.Params{
			Context: ctx,
		},
		Amount:   stripe.Int64(params.AmountCents),
		Currency: stripe.String(currency),
		AutomaticPaymentMethods: &stripe.PaymentIntentAutomaticPaymentMethodsParams{
			Enabled: stripe.Bool(true),
		},
	}
	if params.CustomerEmail != "" {
		piParams.ReceiptEmail = stripe.String(params.CustomerEmail)
	}
	if params.Description != "" {
		piParams.Description = stripe.String(params.Description)
	}
	for k, v := range params.Metadata {
		piParams.AddMetadata(k, v)
	}
	if params.IdempotencyKey != "" {
		piParams.SetIdempotencyKey(params.IdempotencyKey)
	}

	pi, err := paymentintent.New(piParams)
	if err != nil {
		return nil, wrapStripeError(err, "creating payment intent")
	}
	return fromStripePaymentIntent(pi), nil
}

// GetPaymentIntent retrieves a payment intent by ID.
func (s *StripeProvider) GetPaymentIntent(ctx context.Context, paymentIntentID string) (*PaymentIntent, error) {
	if paymentIntentID == "" {
		return nil, fmt.Errorf("billing: payment intent ID is required")
	}

	pi, err := paymentintent.Get(paymentIntentID, &stripe.PaymentIntentParams{
		Params: stripe.Params{Context: ctx},
	})
	if err != nil {
		var stripeErr *stripe.Error
		if errors.As(err, &stripeErr) && stripeErr.HTTPStatusCode == http.StatusNotFound {
			return nil, ErrPaymentIntentNotFound
		}
		return nil, wrapStripeError(err, "retrieving payment intent")
	}
	return fromStripePaymentIntent(pi), nil
}

// VerifyWebhookSignature checks the Stripe-Signature header against the payload.
func (s *StripeProvider) VerifyWebhookSignature(payload []byte, signature string, secret string) error {
	if secret == "" {
		secret = s.config.WebhookSecret
	}
	if _, err := webhook.ConstructEvent(payload, signature, secret); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidWebhookSignature, err)
	}
	return nil
}

// RefundPayment refunds a payment intent, fully or partially.
func (s *StripeProvider) RefundPayment(ctx context.Context, params RefundParams) (*Refund, error) {
	if params.PaymentIntentID == "" {
		return nil, fmt.Errorf("billing: payment intent ID is required")
	}

	rParams := &stripe.RefundParams{
		Params:        stripe.Params{Context: ctx},
		PaymentIntent: stripe.String(params.PaymentIntentID),
	}
	if params.AmountCents > 0 {
		rParams.Amount = stripe.Int64(params.AmountCents)
	}
	if params.Reason != "" {
		rParams.Reason = stripe.String(params.Reason)
	}

	r, err := refund.New(rParams)
	if err != nil {
		return nil, wrapStripeError(err, "creating refund")
	}

	out := &Refund{
		ID:          r.ID,
		AmountCents: r.Amount,
		Status:      string(r.Status),
		CreatedAt:   time.Unix(r.Created, 0),
	}
	if r.PaymentIntent != nil {
		out.PaymentIntentID = r.PaymentIntent.ID
	}
	return out, nil
}

func fromStripePaymentIntent(pi *stripe.PaymentIntent) *PaymentIntent {
	out := &PaymentIntent{
		ID:           pi.ID,
		ClientSecret: pi.ClientSecret,
		AmountCents:  pi.Amount,
		Currency:     string(pi.Currency),
		Status:       string(pi.Status),
		Metadata:     pi.Metadata,
		CreatedAt:    time.Unix(pi.Created, 0),
		ReceiptEmail: pi.ReceiptEmail,
	}
	if pi.LastPaymentError != nil {
		out.LastPaymentError = &PaymentError{
			Code:        string(pi.LastPaymentError.Code),
			Message:     pi.LastPaymentError.Msg,
			DeclineCode: string(pi.LastPaymentError.DeclineCode),
		}
	}
	return out
}

func wrapStripeError(err error, action string) error {
	var stripeErr *stripe.Error
	if errors.As(err, &stripeErr) {
		return &StripeError{
			Message:       fmt.Sprintf("%s: %s", action, stripeErr.Msg),
			Code:          string(stripeErr.Code),
			DeclineCode:   string(stripeErr.DeclineCode),
			RequestID:     stripeErr.RequestID,
			OriginalError: err,
		}
	}
	return fmt.Errorf("stripe: %s: %w", action, err)
}
