package api

import (
	"net/http"

	"github.com/purelife/storefront/internal/domain"
	"github.com/purelife/storefront/internal/handler"
	"github.com/purelife/storefront/internal/service"
)

// ProfileHandler serves the authenticated user's account profile.
type ProfileHandler struct {
	users service.UserService
}

// NewProfileHandler creates a new profile handler.
func NewProfileHandler(users service.UserService) *ProfileHandler {
	return &ProfileHandler{users: users}
}

// Get handles GET /api/profile.
func (h *ProfileHandler) Get(w http.ResponseWriter, r *http.Request) {
	user, err := h.users.GetProfile(r.Context(), domain.RequireUserID(r.Context()))
	if err != nil {
		handler.ErrorResponse(w, r, err)
		return
	}
	handler.RespondJSON(w, http.StatusOK, user)
}

type updateProfileRequest struct {
	Name        string              `json:"name"`
	BillingInfo *domain.BillingInfo `json:"billingInfo"`
}

// Update handles PUT /api/profile.
func (h *ProfileHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req updateProfileRequest
	if err := handler.DecodeJSON(r, &req); err != nil {
		handler.ErrorResponse(w, r, err)
		return
	}

	user, err := h.users.UpdateProfile(r.Context(), domain.RequireUserID(r.Context()), req.Name, req.BillingInfo)
	if err != nil {
		handler.ErrorResponse(w, r, err)
		return
	}
	handler.RespondJSON(w, http.StatusOK, user)
}
