package routes

import (
	"github.com/purelife/storefront/internal/middleware"
	"github.com/purelife/storefront/internal/router"
)

// RegisterAPIRoutes registers the customer-facing JSON routes.
// Auth and contact endpoints get a stricter rate limit than the rest
// of the API.
func RegisterAPIRoutes(r *router.Router, deps APIDeps) {
	strict := middleware.RateLimit(middleware.StrictRateLimiterConfig())

	// Accounts
	r.Post("/api/auth/register", deps.Auth.Register, strict)
	r.Post("/api/auth/login", deps.Auth.Login, strict)
	r.Post("/api/auth/logout", deps.Auth.Logout)
	r.Get("/api/auth/me", deps.Auth.Me, middleware.RequireAuth)

	// Catalog and content, no authentication required
	r.Get("/api/products", deps.Products.List)
	r.Get("/api/products/{slug}", deps.Products.Get)
	r.Get("/api/products/{slug}/reviews", deps.Products.ListReviews)
	r.Get("/api/content/{key}", deps.Content.Get)
	r.Post("/api/contact", deps.Contact.Submit, strict)

	// Authenticated storefront routes
	user := r.Group(middleware.RequireAuth)

	user.Get("/api/profile", deps.Profile.Get)
	user.Put("/api/profile", deps.Profile.Update)

	user.Get("/api/cart", deps.Cart.Get)
	user.Put("/api/cart", deps.Cart.Replace)
	user.Delete("/api/cart", deps.Cart.Clear)
	user.Post("/api/cart/items", deps.Cart.AddItem)
	user.Put("/api/cart/items/{productID}", deps.Cart.UpdateItem)
	user.Delete("/api/cart/items/{productID}", deps.Cart.RemoveItem)

	user.Post("/api/payments/intent", deps.Payments.CreateIntent)

	user.Post("/api/orders", deps.Orders.Create)
	user.Get("/api/orders", deps.Orders.List)
	user.Get("/api/orders/{id}", deps.Orders.Get)

	user.Post("/api/reviews", deps.Reviews.Create)
	user.Put("/api/reviews/{id}", deps.Reviews.Update)
	user.Delete("/api/reviews/{id}", deps.Reviews.Delete)

	user.Get("/api/wishlist", deps.Wishlist.Get)
	user.Post("/api/wishlist/{productID}", deps.Wishlist.Add)
	user.Delete("/api/wishlist/{productID}", deps.Wishlist.Remove)
}
