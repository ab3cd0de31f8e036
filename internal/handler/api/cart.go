package api

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/purelife/storefront/internal/domain"
	"github.com/purelife/storefront/internal/handler"
	"github.com/purelife/storefront/internal/service"
)

// CartHandler serves the authenticated user's cart. All routes sit
// behind RequireAuth, so a user is always present in context.
type CartHandler struct {
	carts service.CartService
}

// NewCartHandler creates a new cart handler.
func NewCartHandler(carts service.CartService) *CartHandler {
	return &CartHandler{carts: carts}
}

type cartItemRequest struct {
	ProductID uuid.UUID `json:"productId"`
	Quantity  int32     `json:"quantity"`
}

type replaceCartRequest struct {
	Items []cartItemRequest `json:"items"`
}

// Get handles GET /api/cart.
func (h *CartHandler) Get(w http.ResponseWriter, r *http.Request) {
	cart, err := h.carts.GetCart(r.Context(), domain.RequireUserID(r.Context()))
	if err != nil {
		handler.ErrorResponse(w, r, err)
		return
	}
	handler.RespondJSON(w, http.StatusOK, cart)
}

// AddItem handles POST /api/cart/items.
func (h *CartHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	var req cartItemRequest
	if err := handler.DecodeJSON(r, &req); err != nil {
		handler.ErrorResponse(w, r, err)
		return
	}

	cart, err := h.carts.AddItem(r.Context(), domain.RequireUserID(r.Context()), req.ProductID, req.Quantity)
	if err != nil {
		handler.ErrorResponse(w, r, err)
		return
	}
	handler.RespondJSON(w, http.StatusOK, cart)
}

// UpdateItem handles PUT /api/cart/items/{productID}.
func (h *CartHandler) UpdateItem(w http.ResponseWriter, r *http.Request) {
	productID, err := uuid.Parse(r.PathValue("productID"))
	if err != nil {
		handler.ErrorResponse(w, r, domain.Invalid("", "Invalid product ID"))
		return
	}

	var req struct {
		Quantity int32 `json:"quantity"`
	}
	if err := handler.DecodeJSON(r, &req); err != nil {
		handler.ErrorResponse(w, r, err)
		return
	}

	cart, err := h.carts.UpdateItem(r.Context(), domain.RequireUserID(r.Context()), productID, req.Quantity)
	if err != nil {
		handler.ErrorResponse(w, r, err)
		return
	}
	handler.RespondJSON(w, http.StatusOK, cart)
}

// RemoveItem handles DELETE /api/cart/items/{productID}.
func (h *CartHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	productID, err := uuid.Parse(r.PathValue("productID"))
	if err != nil {
		handler.ErrorResponse(w, r, domain.Invalid("", "Invalid product ID"))
		return
	}

	cart, err := h.carts.RemoveItem(r.Context(), domain.RequireUserID(r.Context()), productID)
	if err != nil {
		handler.ErrorResponse(w, r, err)
		return
	}
	handler.RespondJSON(w, http.StatusOK, cart)
}

// Replace handles PUT /api/cart. Used to merge a locally stored guest
// cart into the account cart after login; every line is revalidated
// against the catalog.
func (h *CartHandler) Replace(w http.ResponseWriter, r *http.Request) {
	var req replaceCartRequest
	if err := handler.DecodeJSON(r, &req); err != nil {
		handler.ErrorResponse(w, r, err)
		return
	}

	items := make([]domain.CartItem, 0, len(req.Items))
	for _, it := range req.Items {
		items = append(items, domain.CartItem{ProductID: it.ProductID, Quantity: it.Quantity})
	}

	cart, err := h.carts.ReplaceCart(r.Context(), domain.RequireUserID(r.Context()), items)
	if err != nil {
		handler.ErrorResponse(w, r, err)
		return
	}
	handler.RespondJSON(w, http.StatusOK, cart)
}

// Clear handles DELETE /api/cart.
func (h *CartHandler) Clear(w http.ResponseWriter, r *http.Request) {
	if err := h.carts.ClearCart(r.Context(), domain.RequireUserID(r.Context())); err != nil {
		handler.ErrorResponse(w, r, err)
		return
	}
	handler.RespondJSON(w, http.StatusOK, map[string]bool{"ok": true})
}
