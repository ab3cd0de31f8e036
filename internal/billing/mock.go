package billing

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// MockProvider is a mock billing provider for testing.
// Simulates successful payment flows without calling Stripe API.
type MockProvider struct {
	// CreatePaymentIntentFunc allows customizing payment intent creation behavior
	CreatePaymentIntentFunc func(ctx context.Context, params CreatePaymentIntentParams) (*PaymentIntent, error)

	// GetPaymentIntentFunc allows customizing payment intent retrieval behavior
	GetPaymentIntentFunc func(ctx context.Context, paymentIntentID string) (*PaymentIntent, error)

	// VerifyWebhookSignatureFunc allows customizing webhook verification behavior
	VerifyWebhookSignatureFunc func(payload []byte, signature string, secret string) error

	// RefundPaymentFunc allows customizing refund behavior
	RefundPaymentFunc func(ctx context.Context, params RefundParams) (*Refund, error)

	// PaymentIntents stores created payment intents for retrieval
	PaymentIntents map[string]*PaymentIntent

	// CallLog tracks method calls for test assertions
	CallLog []string
}

// NewMockProvider creates a new mock billing provider.
func NewMockProvider() *MockProvider {
	return &MockProvider{
		PaymentIntents: make(map[string]*PaymentIntent),
		CallLog:        []string{},
	}
}

// CreatePaymentIntent creates a mock payment intent.
func (m *MockProvider) CreatePaymentIntent(ctx context.Context, params CreatePaymentIntentParams) (*PaymentIntent, error) {
	m.CallLog = append(m.CallLog, fmt.Sprintf("CreatePaymentIntent(%d, %s)", params.AmountCents, params.Currency))

	if m.CreatePaymentIntentFunc != nil {
		return m.CreatePaymentIntentFunc(ctx, params)
	}

	// Default mock behavior: create a payment intent awaiting confirmation
	pi := &PaymentIntent{
		ID:           "pi_" + uuid.New().String(),
		ClientSecret: "pi_" + uuid.New().String() + "_secret_" + uuid.New().String(),
		AmountCents:  params.AmountCents,
		Currency:     params.Currency,
		Status:       "requires_payment_method",
		Metadata:     params.Metadata,
		CreatedAt:    time.Now(),
		ReceiptEmail: params.CustomerEmail,
	}
	m.PaymentIntents[pi.ID] = pi
	return pi, nil
}

// GetPaymentIntent retrieves a stored mock payment intent.
func (m *MockProvider) GetPaymentIntent(ctx context.Context, paymentIntentID string) (*PaymentIntent, error) {
	m.CallLog = append(m.CallLog, fmt.Sprintf("GetPaymentIntent(%s)", paymentIntentID))

	if m.GetPaymentIntentFunc != nil {
		return m.GetPaymentIntentFunc(ctx, paymentIntentID)
	}

	pi, ok := m.PaymentIntents[paymentIntentID]
	if !ok {
		return nil, ErrPaymentIntentNotFound
	}
	return pi, nil
}

// VerifyWebhookSignature always succeeds unless customized.
func (m *MockProvider) VerifyWebhookSignature(payload []byte, signature string, secret string) error {
	m.CallLog = append(m.CallLog, "VerifyWebhookSignature")

	if m.VerifyWebhookSignatureFunc != nil {
		return m.VerifyWebhookSignatureFunc(payload, signature, secret)
	}
	return nil
}

// RefundPayment creates a mock refund.
func (m *MockProvider) RefundPayment(ctx context.Context, params RefundParams) (*Refund, error) {
	m.CallLog = append(m.CallLog, fmt.Sprintf("RefundPayment(%s)", params.PaymentIntentID))

	if m.RefundPaymentFunc != nil {
		return m.RefundPaymentFunc(ctx, params)
	}

	amount := params.AmountCents
	if amount == 0 {
		if pi, ok := m.PaymentIntents[params.PaymentIntentID]; ok {
			amount = pi.AmountCents
		}
	}
	return &Refund{
		ID:              "re_" + uuid.New().String(),
		PaymentIntentID: params.PaymentIntentID,
		AmountCents:     amount,
		Status:          "succeeded",
		CreatedAt:       time.Now(),
	}, nil
}

// Reset clears stored state and call log.
func (m *MockProvider) Reset() {
	m.PaymentIntents = make(map[string]*PaymentIntent)
	m.CallLog = []string{}
}

var _ Provider = (*MockProvider)(nil)
var _ Provider = (*StripeProvider)(nil)
