// Package routes wires handlers onto the router. Route registration is
// kept separate from handler construction so main stays a straight
// dependency assembly.
package routes

import (
	"github.com/purelife/storefront/internal/handler/admin"
	"github.com/purelife/storefront/internal/handler/api"
	"github.com/purelife/storefront/internal/handler/webhook"
)

// APIDeps contains the customer-facing handlers.
type APIDeps struct {
	Auth     *api.AuthHandler
	Products *api.ProductHandler
	Cart     *api.CartHandler
	Payments *api.PaymentHandler
	Orders   *api.OrderHandler
	Reviews  *api.ReviewHandler
	Wishlist *api.WishlistHandler
	Profile  *api.ProfileHandler
	Contact  *api.ContactHandler
	Content  *api.ContentHandler
}

// AdminDeps contains the back-office handlers.
type AdminDeps struct {
	Products  *admin.ProductHandler
	Orders    *admin.OrderHandler
	Stats     *admin.StatsHandler
	Queries   *admin.QueryHandler
	Customers *admin.CustomerHandler
	Content   *admin.ContentHandler
	Enhance   *api.EnhanceHandler
}

// WebhookDeps contains the webhook handlers.
type WebhookDeps struct {
	Stripe *webhook.StripeHandler
}
