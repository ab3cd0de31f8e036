package routes

import (
	"github.com/purelife/storefront/internal/middleware"
	"github.com/purelife/storefront/internal/router"
)

// RegisterAdminRoutes registers the back-office routes. Everything is
// behind RequireAdmin.
func RegisterAdminRoutes(r *router.Router, deps AdminDeps) {
	admin := r.Group(middleware.RequireAdmin)

	admin.Get("/api/admin/stats", deps.Stats.Get)

	admin.Get("/api/admin/products", deps.Products.List)
	admin.Post("/api/admin/products", deps.Products.Create)
	admin.Put("/api/admin/products/{id}", deps.Products.Update)
	admin.Delete("/api/admin/products/{id}", deps.Products.Delete)

	admin.Get("/api/admin/orders", deps.Orders.List)
	admin.Get("/api/admin/orders/{id}", deps.Orders.Get)
	admin.Put("/api/admin/orders/{id}/status", deps.Orders.UpdateStatus)

	admin.Get("/api/admin/queries", deps.Queries.List)
	admin.Put("/api/admin/queries/{id}/status", deps.Queries.UpdateStatus)

	admin.Get("/api/admin/customers", deps.Customers.List)

	admin.Put("/api/admin/content/{key}", deps.Content.Update)

	// Copy generation calls an external model, rate limited per client
	// IP inside the service on top of the admin gate.
	admin.Post("/api/admin/enhance", deps.Enhance.Enhance)
}
