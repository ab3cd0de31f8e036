package api

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/purelife/storefront/internal/domain"
	"github.com/purelife/storefront/internal/handler"
	"github.com/purelife/storefront/internal/service"
)

// WishlistHandler serves the authenticated user's wishlist.
type WishlistHandler struct {
	wishlists service.WishlistService
}

// NewWishlistHandler creates a new wishlist handler.
func NewWishlistHandler(wishlists service.WishlistService) *WishlistHandler {
	return &WishlistHandler{wishlists: wishlists}
}

// Get handles GET /api/wishlist.
func (h *WishlistHandler) Get(w http.ResponseWriter, r *http.Request) {
	products, err := h.wishlists.GetWishlist(r.Context(), domain.RequireUserID(r.Context()))
	if err != nil {
		handler.ErrorResponse(w, r, err)
		return
	}
	handler.RespondJSON(w, http.StatusOK, map[string]interface{}{"products": products})
}

// Add handles POST /api/wishlist/{productID}.
func (h *WishlistHandler) Add(w http.ResponseWriter, r *http.Request) {
	productID, err := uuid.Parse(r.PathValue("productID"))
	if err != nil {
		handler.ErrorResponse(w, r, domain.Invalid("", "Invalid product ID"))
		return
	}

	if err := h.wishlists.AddProduct(r.Context(), domain.RequireUserID(r.Context()), productID); err != nil {
		handler.ErrorResponse(w, r, err)
		return
	}
	handler.RespondJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

// Remove handles DELETE /api/wishlist/{productID}.
func (h *WishlistHandler) Remove(w http.ResponseWriter, r *http.Request) {
	productID, err := uuid.Parse(r.PathValue("productID"))
	if err != nil {
		handler.ErrorResponse(w, r, domain.Invalid("", "Invalid product ID"))
		return
	}

	if err := h.wishlists.RemoveProduct(r.Context(), domain.RequireUserID(r.Context()), productID); err != nil {
		handler.ErrorResponse(w, r, err)
		return
	}
	handler.RespondJSON(w, http.StatusOK, map[string]bool{"ok": true})
}
