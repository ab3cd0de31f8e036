package routes

import "github.com/purelife/storefront/internal/router"

// RegisterWebhookRoutes mounts the Stripe webhook endpoint. It sits
// outside the session middleware groups; the handler authenticates the
// sender by verifying the event signature.
func RegisterWebhookRoutes(r *router.Router, deps WebhookDeps) {
	r.Post("/webhooks/stripe", deps.Stripe.HandleWebhook)
}
