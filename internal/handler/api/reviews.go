package api

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/purelife/storefront/internal/domain"
	"github.com/purelife/storefront/internal/handler"
	"github.com/purelife/storefront/internal/service"
)

// ReviewHandler serves review creation and editing. Listing lives on
// the product handler since reviews are read through the product page.
type ReviewHandler struct {
	reviews service.ReviewService
	users   service.UserService
}

// NewReviewHandler creates a new review handler.
func NewReviewHandler(reviews service.ReviewService, users service.UserService) *ReviewHandler {
	return &ReviewHandler{reviews: reviews, users: users}
}

type reviewRequest struct {
	ProductID uuid.UUID `json:"productId"`
	Rating    int32     `json:"rating"`
	Comment   string    `json:"comment"`
}

// Create handles POST /api/reviews.
func (h *ReviewHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req reviewRequest
	if err := handler.DecodeJSON(r, &req); err != nil {
		handler.ErrorResponse(w, r, err)
		return
	}

	user := domain.MustUser(r.Context())

	// The review carries the display name at submission time.
	profile, err := h.users.GetProfile(r.Context(), user.ID)
	if err != nil {
		handler.ErrorResponse(w, r, err)
		return
	}

	review, err := h.reviews.CreateReview(r.Context(), user, profile.Name, req.ProductID, req.Rating, req.Comment)
	if err != nil {
		handler.ErrorResponse(w, r, err)
		return
	}
	handler.RespondJSON(w, http.StatusCreated, review)
}

// Update handles PUT /api/reviews/{id}.
func (h *ReviewHandler) Update(w http.ResponseWriter, r *http.Request) {
	reviewID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		handler.ErrorResponse(w, r, domain.Invalid("", "Invalid review ID"))
		return
	}

	var req struct {
		Rating  int32  `json:"rating"`
		Comment string `json:"comment"`
	}
	if err := handler.DecodeJSON(r, &req); err != nil {
		handler.ErrorResponse(w, r, err)
		return
	}

	review, err := h.reviews.UpdateReview(r.Context(), domain.MustUser(r.Context()), reviewID, req.Rating, req.Comment)
	if err != nil {
		handler.ErrorResponse(w, r, err)
		return
	}
	handler.RespondJSON(w, http.StatusOK, review)
}

// Delete handles DELETE /api/reviews/{id}.
func (h *ReviewHandler) Delete(w http.ResponseWriter, r *http.Request) {
	reviewID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		handler.ErrorResponse(w, r, domain.Invalid("", "Invalid review ID"))
		return
	}

	if err := h.reviews.DeleteReview(r.Context(), domain.MustUser(r.Context()), reviewID); err != nil {
		handler.ErrorResponse(w, r, err)
		return
	}
	handler.RespondJSON(w, http.StatusOK, map[string]bool{"ok": true})
}
