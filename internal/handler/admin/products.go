// Package admin contains the JSON handlers for the back-office
// endpoints. Every route is mounted behind RequireAdmin.
package admin

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/purelife/storefront/internal/domain"
	"github.com/purelife/storefront/internal/handler"
	"github.com/purelife/storefront/internal/repository"
	"github.com/purelife/storefront/internal/service"
)

// ProductHandler manages the catalog.
type ProductHandler struct {
	products service.ProductService
}

// NewProductHandler creates a new admin product handler.
func NewProductHandler(products service.ProductService) *ProductHandler {
	return &ProductHandler{products: products}
}

type productRequest struct {
	Name           string            `json:"name"`
	Slug           string            `json:"slug"`
	Description    string            `json:"description"`
	Price          decimal.Decimal   `json:"price"`
	Images         []string          `json:"images"`
	Category       string            `json:"category"`
	Stock          int32             `json:"stock"`
	Features       []string          `json:"features"`
	Specifications map[string]string `json:"specifications"`
	IsActive       *bool             `json:"isActive"`
}

// List handles GET /api/admin/products. Unlike the public catalog this
// includes inactive products.
func (h *ProductHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	pageSize := parseInt32(q.Get("page_size"), 20)
	page := parseInt32(q.Get("page"), 1)

	result, err := h.products.ListProducts(r.Context(), repository.ProductFilter{
		Category:        q.Get("category"),
		Search:          q.Get("search"),
		IncludeInactive: true,
		Limit:           pageSize,
		Offset:          (page - 1) * pageSize,
	})
	if err != nil {
		handler.ErrorResponse(w, r, err)
		return
	}
	handler.RespondJSON(w, http.StatusOK, result)
}

// Create handles POST /api/admin/products.
func (h *ProductHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req productRequest
	if err := handler.DecodeJSON(r, &req); err != nil {
		handler.ErrorResponse(w, r, err)
		return
	}

	active := true
	if req.IsActive != nil {
		active = *req.IsActive
	}

	product, err := h.products.CreateProduct(r.Context(), &domain.Product{
		Name:           req.Name,
		Slug:           req.Slug,
		Description:    req.Description,
		Price:          req.Price,
		Images:         req.Images,
		Category:       req.Category,
		Stock:          req.Stock,
		Features:       req.Features,
		Specifications: req.Specifications,
		IsActive:       active,
	})
	if err != nil {
		handler.ErrorResponse(w, r, err)
		return
	}
	handler.RespondJSON(w, http.StatusCreated, product)
}

// Update handles PUT /api/admin/products/{id}.
func (h *ProductHandler) Update(w http.ResponseWriter, r *http.Request) {
	productID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		handler.ErrorResponse(w, r, domain.Invalid("", "Invalid product ID"))
		return
	}

	var req productRequest
	if err := handler.DecodeJSON(r, &req); err != nil {
		handler.ErrorResponse(w, r, err)
		return
	}

	active := true
	if req.IsActive != nil {
		active = *req.IsActive
	}

	product, err := h.products.UpdateProduct(r.Context(), repository.UpdateProductParams{
		ID:             productID,
		Name:           req.Name,
		Slug:           req.Slug,
		Description:    req.Description,
		Price:          req.Price,
		Images:         req.Images,
		Category:       req.Category,
		Stock:          req.Stock,
		Features:       req.Features,
		Specifications: req.Specifications,
		IsActive:       active,
	})
	if err != nil {
		handler.ErrorResponse(w, r, err)
		return
	}
	handler.RespondJSON(w, http.StatusOK, product)
}

// Delete handles DELETE /api/admin/products/{id}. Products referenced
// by orders are deactivated rather than removed.
func (h *ProductHandler) Delete(w http.ResponseWriter, r *http.Request) {
	productID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		handler.ErrorResponse(w, r, domain.Invalid("", "Invalid product ID"))
		return
	}

	if err := h.products.DeactivateProduct(r.Context(), productID); err != nil {
		handler.ErrorResponse(w, r, err)
		return
	}
	handler.RespondJSON(w, http.StatusOK, map[string]bool{"ok": true})
}
