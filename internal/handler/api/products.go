package api

import (
	"net/http"
	"strconv"

	"github.com/shopspring/decimal"

	"github.com/purelife/storefront/internal/handler"
	"github.com/purelife/storefront/internal/repository"
	"github.com/purelife/storefront/internal/service"
)

// ProductHandler serves the public catalog.
type ProductHandler struct {
	products service.ProductService
	reviews  service.ReviewService
}

// NewProductHandler creates a new product handler.
func NewProductHandler(products service.ProductService, reviews service.ReviewService) *ProductHandler {
	return &ProductHandler{products: products, reviews: reviews}
}

// List handles GET /api/products. Supported query parameters: category,
// search, min_price, max_price, sort, page, page_size.
func (h *ProductHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	filter := repository.ProductFilter{
		Category: q.Get("category"),
		Search:   q.Get("search"),
		Sort:     q.Get("sort"),
	}

	if raw := q.Get("min_price"); raw != "" {
		if min, err := decimal.NewFromString(raw); err == nil {
			filter.MinPrice = &min
		}
	}
	if raw := q.Get("max_price"); raw != "" {
		if max, err := decimal.NewFromString(raw); err == nil {
			filter.MaxPrice = &max
		}
	}

	pageSize := parseInt32(q.Get("page_size"), 12)
	page := parseInt32(q.Get("page"), 1)
	if page < 1 {
		page = 1
	}
	filter.Limit = pageSize
	filter.Offset = (page - 1) * pageSize

	result, err := h.products.ListProducts(r.Context(), filter)
	if err != nil {
		handler.ErrorResponse(w, r, err)
		return
	}
	handler.RespondJSON(w, http.StatusOK, result)
}

// Get handles GET /api/products/{slug}.
func (h *ProductHandler) Get(w http.ResponseWriter, r *http.Request) {
	product, err := h.products.GetProductBySlug(r.Context(), r.PathValue("slug"))
	if err != nil {
		handler.ErrorResponse(w, r, err)
		return
	}
	handler.RespondJSON(w, http.StatusOK, product)
}

// ListReviews handles GET /api/products/{slug}/reviews.
func (h *ProductHandler) ListReviews(w http.ResponseWriter, r *http.Request) {
	product, err := h.products.GetProductBySlug(r.Context(), r.PathValue("slug"))
	if err != nil {
		handler.ErrorResponse(w, r, err)
		return
	}

	reviews, err := h.reviews.ListByProduct(r.Context(), product.ID)
	if err != nil {
		handler.ErrorResponse(w, r, err)
		return
	}
	handler.RespondJSON(w, http.StatusOK, map[string]interface{}{"reviews": reviews})
}

func parseInt32(raw string, fallback int32) int32 {
	if raw == "" {
		return fallback
	}
	n, err := strconv.ParseInt(raw, 10, 32)
	if err != nil || n < 1 {
		return fallback
	}
	return int32(n)
}
