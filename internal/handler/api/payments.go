package api

import (
	"net/http"

	"github.com/purelife/storefront/internal/domain"
	"github.com/purelife/storefront/internal/handler"
	"github.com/purelife/storefront/internal/service"
)

// PaymentHandler creates Stripe payment intents for checkout.
type PaymentHandler struct {
	payments service.PaymentService
}

// NewPaymentHandler creates a new payment handler.
func NewPaymentHandler(payments service.PaymentService) *PaymentHandler {
	return &PaymentHandler{payments: payments}
}

type createIntentRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// CreateIntent handles POST /api/payments/intent. The charge amount is
// computed from the stored cart, never taken from the client.
func (h *PaymentHandler) CreateIntent(w http.ResponseWriter, r *http.Request) {
	var req createIntentRequest
	if err := handler.DecodeJSON(r, &req); err != nil {
		handler.ErrorResponse(w, r, err)
		return
	}

	user := domain.MustUser(r.Context())
	email := req.Email
	if email == "" {
		email = user.Email
	}

	intent, err := h.payments.CreateIntent(r.Context(), user.ID, req.Name, email)
	if err != nil {
		handler.ErrorResponse(w, r, err)
		return
	}

	handler.RespondJSON(w, http.StatusOK, map[string]interface{}{
		"clientSecret":    intent.ClientSecret,
		"paymentIntentId": intent.ID,
		"amountCents":     intent.AmountCents,
		"currency":        intent.Currency,
	})
}
