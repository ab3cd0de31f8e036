package telemetry

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// BusinessMetrics holds Prometheus metrics for business-level observability.
type BusinessMetrics struct {
	// Product engagement
	ProductViews    *prometheus.CounterVec
	ProductSearches *prometheus.CounterVec

	// Cart
	CartItemsAdded *prometheus.CounterVec
	CartValue      prometheus.Histogram

	// Checkout and payments
	PaymentIntentsCreated prometheus.Counter
	PaymentSucceeded      prometheus.Counter
	PaymentFailed         prometheus.Counter
	RefundsIssued         prometheus.Counter

	// Orders
	OrdersCreated  prometheus.Counter
	OrderValue     prometheus.Histogram
	OrderItemCount prometheus.Histogram
	OrderStatus    *prometheus.CounterVec

	// Webhooks
	WebhookReceived  *prometheus.CounterVec
	WebhookProcessed *prometheus.CounterVec
	WebhookFailed    *prometheus.CounterVec
	WebhookLatency   *prometheus.HistogramVec
	OrphanedPayments prometheus.Counter

	// Auth & accounts
	Signups     prometheus.Counter
	Logins      prometheus.Counter
	LoginFailed prometheus.Counter

	// Reviews
	ReviewsCreated  prometheus.Counter
	ReviewsRejected *prometheus.CounterVec

	// AI enhancement
	EnhancementRequests *prometheus.CounterVec
	RateLimitExceeded   *prometheus.CounterVec

	// Email delivery
	EmailSent   *prometheus.CounterVec
	EmailFailed *prometheus.CounterVec
}

// NewBusinessMetrics creates and registers all business metrics
func NewBusinessMetrics(namespace string) *BusinessMetrics {
	if namespace == "" {
		namespace = "purelife"
	}

	subsystem := "business"

	counter := func(name, help string) prometheus.Counter {
		return promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      name,
			Help:      help,
		})
	}
	counterVec := func(name, help string, labels ...string) *prometheus.CounterVec {
		return promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      name,
			Help:      help,
		}, labels)
	}

	return &BusinessMetrics{
		ProductViews:    counterVec("product_views_total", "Total product detail views", "product_slug"),
		ProductSearches: counterVec("product_searches_total", "Total product list requests with filters", "filter_type"),

		CartItemsAdded: counterVec("cart_items_added_total", "Total add to cart actions", "product_id"),
		CartValue: promauto.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "cart_value_dollars",
			Help:      "Cart total at payment intent creation",
			Buckets:   []float64{25, 50, 100, 250, 500, 1000, 2500},
		}),

		PaymentIntentsCreated: counter("payment_intents_created_total", "Total payment intents created"),
		PaymentSucceeded:      counter("payment_succeeded_total", "Total payments confirmed succeeded"),
		PaymentFailed:         counter("payment_failed_total", "Total payments reported failed"),
		RefundsIssued:         counter("refunds_issued_total", "Total refunds applied to orders"),

		OrdersCreated: counter("orders_created_total", "Total orders created"),
		OrderValue: promauto.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "order_value_dollars",
			Help:      "Order totals",
			Buckets:   []float64{25, 50, 100, 250, 500, 1000, 2500},
		}),
		OrderItemCount: promauto.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "order_item_count",
			Help:      "Number of line items per order",
			Buckets:   []float64{1, 2, 3, 5, 8, 13},
		}),
		OrderStatus: counterVec("order_status_transitions_total", "Order status transitions", "status"),

		WebhookReceived:  counterVec("webhook_received_total", "Total webhook events received", "event_type"),
		WebhookProcessed: counterVec("webhook_processed_total", "Total webhook events processed successfully", "event_type"),
		WebhookFailed:    counterVec("webhook_failed_total", "Total webhook events that failed processing", "event_type"),
		WebhookLatency: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "webhook_duration_seconds",
			Help:      "Webhook handler duration",
			Buckets:   []float64{.01, .05, .1, .25, .5, 1, 2.5},
		}, []string{"event_type"}),
		OrphanedPayments: counter("webhook_orphaned_payments_total", "Webhook events referencing no known order"),

		Signups:     counter("signups_total", "Total account registrations"),
		Logins:      counter("logins_total", "Total successful logins"),
		LoginFailed: counter("login_failed_total", "Total failed login attempts"),

		ReviewsCreated:  counter("reviews_created_total", "Total reviews created"),
		ReviewsRejected: counterVec("reviews_rejected_total", "Reviews rejected before creation", "reason"),

		EnhancementRequests: counterVec("enhancement_requests_total", "AI enhancement requests", "kind"),
		RateLimitExceeded:   counterVec("rate_limit_exceeded_total", "Requests rejected by a rate limiter", "scope"),

		EmailSent:   counterVec("email_sent_total", "Emails sent", "template"),
		EmailFailed: counterVec("email_failed_total", "Emails that failed to send", "template"),
	}
}

// Global instance for easy access from handlers
var Business *BusinessMetrics

// InitBusinessMetrics initializes the global business metrics instance
func InitBusinessMetrics(namespace string) *BusinessMetrics {
	Business = NewBusinessMetrics(namespace)
	return Business
}
