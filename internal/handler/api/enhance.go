package api

import (
	"net/http"

	"github.com/purelife/storefront/internal/enhance"
	"github.com/purelife/storefront/internal/handler"
	"github.com/purelife/storefront/internal/middleware"
	"github.com/purelife/storefront/internal/service"
)

// EnhanceHandler generates product copy suggestions. Rate limited per
// client IP inside the service.
type EnhanceHandler struct {
	enhancer service.EnhanceService
}

// NewEnhanceHandler creates a new enhance handler.
func NewEnhanceHandler(enhancer service.EnhanceService) *EnhanceHandler {
	return &EnhanceHandler{enhancer: enhancer}
}

type enhanceRequest struct {
	Kind        string `json:"kind"`
	ProductName string `json:"productName"`
	Description string `json:"description"`
	Category    string `json:"category"`
}

// Enhance handles POST /api/enhance.
func (h *EnhanceHandler) Enhance(w http.ResponseWriter, r *http.Request) {
	var req enhanceRequest
	if err := handler.DecodeJSON(r, &req); err != nil {
		handler.ErrorResponse(w, r, err)
		return
	}

	clientKey := middleware.GetClientIPFromContext(r.Context())
	if clientKey == "" {
		clientKey = middleware.GetClientIP(r)
	}

	text, err := h.enhancer.Enhance(r.Context(), clientKey, enhance.Request{
		Kind:        enhance.Kind(req.Kind),
		ProductName: req.ProductName,
		Description: req.Description,
		Category:    req.Category,
	})
	if err != nil {
		handler.ErrorResponse(w, r, err)
		return
	}
	handler.RespondJSON(w, http.StatusOK, map[string]string{"result": text})
}
