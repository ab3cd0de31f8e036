package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"

	"github.com/purelife/storefront/internal/billing"
	"github.com/purelife/storefront/internal/domain"
	"github.com/purelife/storefront/internal/service"
)

// mockPaymentService implements service.PaymentService for handler tests.
type mockPaymentService struct {
	createIntentFunc func(ctx context.Context, userID uuid.UUID, customerName, customerEmail string) (*billing.PaymentIntent, error)
}

func (m *mockPaymentService) CreateIntent(ctx context.Context, userID uuid.UUID, customerName, customerEmail string) (*billing.PaymentIntent, error) {
	if m.createIntentFunc != nil {
		return m.createIntentFunc(ctx, userID, customerName, customerEmail)
	}
	return nil, errors.New("not implemented")
}

var _ service.PaymentService = (*mockPaymentService)(nil)

func intentRequest(body string, user *domain.SessionUser) *http.Request {
	req := httptest.NewRequest(http.MethodPost, "/api/payments/intent", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	return req.WithContext(domain.NewContextWithUser(req.Context(), user))
}

func TestCreateIntentRequestShape(t *testing.T) {
	user := &domain.SessionUser{ID: uuid.New(), Email: "account@example.com", Role: domain.RoleUser}

	var gotName, gotEmail string
	payments := &mockPaymentService{
		createIntentFunc: func(ctx context.Context, userID uuid.UUID, customerName, customerEmail string) (*billing.PaymentIntent, error) {
			if userID != user.ID {
				t.Errorf("expected intent for user %s, got %s", user.ID, userID)
			}
			gotName, gotEmail = customerName, customerEmail
			return &billing.PaymentIntent{
				ID:           "pi_test_1",
				ClientSecret: "pi_test_1_secret",
				AmountCents:  12999,
				Currency:     "usd",
			}, nil
		},
	}
	h := NewPaymentHandler(payments)

	rec := httptest.NewRecorder()
	h.CreateIntent(rec, intentRequest(`{"name":"Ada Crestwater","email":"ada@example.com"}`, user))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if gotName != "Ada Crestwater" || gotEmail != "ada@example.com" {
		t.Errorf("unexpected customer passed to service: name=%q email=%q", gotName, gotEmail)
	}

	var body struct {
		ClientSecret    string `json:"clientSecret"`
		PaymentIntentID string `json:"paymentIntentId"`
		AmountCents     int64  `json:"amountCents"`
		Currency        string `json:"currency"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if body.ClientSecret != "pi_test_1_secret" || body.PaymentIntentID != "pi_test_1" {
		t.Errorf("unexpected intent payload: %+v", body)
	}
	if body.AmountCents != 12999 || body.Currency != "usd" {
		t.Errorf("unexpected amount payload: %+v", body)
	}
}

func TestCreateIntentDefaultsEmailToSessionUser(t *testing.T) {
	user := &domain.SessionUser{ID: uuid.New(), Email: "account@example.com", Role: domain.RoleUser}

	var gotEmail string
	payments := &mockPaymentService{
		createIntentFunc: func(ctx context.Context, userID uuid.UUID, customerName, customerEmail string) (*billing.PaymentIntent, error) {
			gotEmail = customerEmail
			return &billing.PaymentIntent{ID: "pi_test_2"}, nil
		},
	}
	h := NewPaymentHandler(payments)

	rec := httptest.NewRecorder()
	h.CreateIntent(rec, intentRequest(`{"name":"Ada Crestwater"}`, user))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if gotEmail != "account@example.com" {
		t.Errorf("expected session email fallback, got %q", gotEmail)
	}
}

func TestCreateIntentRejectsClientSuppliedAmount(t *testing.T) {
	// The charge amount comes from the stored cart. A client trying to
	// price its own order gets a 400, not a silently dropped field.
	user := &domain.SessionUser{ID: uuid.New(), Email: "account@example.com", Role: domain.RoleUser}

	payments := &mockPaymentService{
		createIntentFunc: func(ctx context.Context, userID uuid.UUID, customerName, customerEmail string) (*billing.PaymentIntent, error) {
			t.Fatal("service must not be called for a rejected body")
			return nil, nil
		},
	}
	h := NewPaymentHandler(payments)

	rec := httptest.NewRecorder()
	h.CreateIntent(rec, intentRequest(`{"name":"Ada Crestwater","email":"ada@example.com","totalPrice":1}`, user))

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d: %s", rec.Code, rec.Body.String())
	}

	var body struct {
		Error struct {
			Fields map[string]string `json:"fields"`
		} `json:"error"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("failed to decode error body: %v", err)
	}
	if _, ok := body.Error.Fields["totalPrice"]; !ok {
		t.Errorf("expected a field error for totalPrice, got %+v", body.Error.Fields)
	}
}
