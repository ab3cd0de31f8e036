// Package webhook handles inbound Stripe webhook events. Payment state
// is reconciled into orders here; the checkout flow only creates intents
// and orders, Stripe remains the source of truth for payment outcomes.
package webhook

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/stripe/stripe-go/v83"

	"github.com/purelife/storefront/internal/billing"
	"github.com/purelife/storefront/internal/domain"
	"github.com/purelife/storefront/internal/handler"
	"github.com/purelife/storefront/internal/service"
	"github.com/purelife/storefront/internal/telemetry"
)

// StripeHandler processes Stripe webhook events and applies them to
// orders by payment intent ID.
type StripeHandler struct {
	provider billing.Provider
	orders   service.OrderService
	secret   string
	logger   *slog.Logger
}

// NewStripeHandler creates a Stripe webhook handler. The secret is the
// signing secret from the Stripe dashboard for this endpoint.
func NewStripeHandler(provider billing.Provider, orders service.OrderService, secret string, logger *slog.Logger) *StripeHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &StripeHandler{
		provider: provider,
		orders:   orders,
		secret:   secret,
		logger:   logger,
	}
}

// HandleWebhook verifies and dispatches a Stripe event.
//
// Stripe CLI testing:
//
//	stripe listen --forward-to localhost:3000/webhooks/stripe
//	stripe trigger payment_intent.succeeded
func (h *StripeHandler) HandleWebhook(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	if r.Method != http.MethodPost {
		handler.ErrorResponse(w, r, domain.Errorf(domain.EINVALID, "", "Method not allowed"))
		return
	}

	payload, err := io.ReadAll(r.Body)
	if err != nil {
		handler.ErrorResponse(w, r, domain.Errorf(domain.EINVALID, "", "Error reading request body"))
		return
	}

	signature := r.Header.Get("Stripe-Signature")
	if signature == "" {
		handler.ErrorResponse(w, r, domain.Errorf(domain.EINVALID, "", "Missing signature"))
		return
	}

	if err := h.provider.VerifyWebhookSignature(payload, signature, h.secret); err != nil {
		h.logger.Warn("webhook signature verification failed", "error", err)
		handler.ErrorResponse(w, r, domain.Unauthorized("", "Invalid signature"))
		return
	}

	var event stripe.Event
	if err := json.Unmarshal(payload, &event); err != nil {
		handler.ErrorResponse(w, r, domain.Errorf(domain.EINVALID, "", "Invalid JSON"))
		return
	}

	h.logger.Info("stripe webhook received", "type", event.Type, "id", event.ID)
	if telemetry.Business != nil {
		telemetry.Business.WebhookReceived.WithLabelValues(string(event.Type)).Inc()
	}
	defer func() {
		if telemetry.Business != nil {
			telemetry.Business.WebhookLatency.WithLabelValues(string(event.Type)).Observe(time.Since(start).Seconds())
		}
	}()

	switch event.Type {
	case "payment_intent.succeeded":
		h.applyIntentEvent(r, event, h.orders.ApplyPaymentSucceeded)

	case "payment_intent.payment_failed":
		h.applyIntentEvent(r, event, h.orders.ApplyPaymentFailed)

	case "charge.refunded":
		h.applyChargeRefund(r, event)

	case "payment_intent.created":
		// Monitoring only, the intent is already tracked from checkout.

	default:
		h.logger.Debug("unhandled stripe event type", "type", event.Type)
	}

	// Always acknowledge; Stripe retries on non-2xx and our handlers
	// are idempotent anyway.
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(`{"received": true}`))
}

func (h *StripeHandler) applyIntentEvent(r *http.Request, event stripe.Event, apply func(ctx context.Context, paymentIntentID string) (bool, error)) {
	var intent stripe.PaymentIntent
	if err := json.Unmarshal(event.Data.Raw, &intent); err != nil {
		h.logger.Error("failed to parse payment intent from webhook", "type", event.Type, "error", err)
		h.recordFailure(event)
		return
	}

	applied, err := apply(r.Context(), intent.ID)
	if err != nil {
		h.logger.Error("failed to apply webhook event",
			"type", event.Type,
			"payment_intent", intent.ID,
			"error", err,
		)
		telemetry.CaptureError(err, map[string]interface{}{
			"event_type":        string(event.Type),
			"payment_intent_id": intent.ID,
		})
		h.recordFailure(event)
		return
	}

	if !applied {
		// No order references this intent. Log and count it, the
		// payment may belong to another environment.
		h.logger.Warn("webhook references unknown payment intent",
			"type", event.Type,
			"payment_intent", intent.ID,
		)
		if telemetry.Business != nil {
			telemetry.Business.OrphanedPayments.Inc()
		}
		return
	}

	if telemetry.Business != nil {
		telemetry.Business.WebhookProcessed.WithLabelValues(string(event.Type)).Inc()
	}
}

func (h *StripeHandler) applyChargeRefund(r *http.Request, event stripe.Event) {
	var charge stripe.Charge
	if err := json.Unmarshal(event.Data.Raw, &charge); err != nil {
		h.logger.Error("failed to parse charge from webhook", "error", err)
		h.recordFailure(event)
		return
	}
	if charge.PaymentIntent == nil || charge.PaymentIntent.ID == "" {
		h.logger.Warn("refunded charge has no payment intent", "charge", charge.ID)
		return
	}

	applied, err := h.orders.ApplyRefund(r.Context(), charge.PaymentIntent.ID)
	if err != nil {
		h.logger.Error("failed to apply refund",
			"payment_intent", charge.PaymentIntent.ID,
			"error", err,
		)
		telemetry.CaptureError(err, map[string]interface{}{
			"event_type":        string(event.Type),
			"payment_intent_id": charge.PaymentIntent.ID,
		})
		h.recordFailure(event)
		return
	}
	if !applied {
		h.logger.Warn("refund references unknown payment intent", "payment_intent", charge.PaymentIntent.ID)
		if telemetry.Business != nil {
			telemetry.Business.OrphanedPayments.Inc()
		}
		return
	}

	if telemetry.Business != nil {
		telemetry.Business.WebhookProcessed.WithLabelValues(string(event.Type)).Inc()
	}
}

func (h *StripeHandler) recordFailure(event stripe.Event) {
	if telemetry.Business != nil {
		telemetry.Business.WebhookFailed.WithLabelValues(string(event.Type)).Inc()
	}
}
