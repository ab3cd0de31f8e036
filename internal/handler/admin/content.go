package admin

import (
	"net/http"

	"github.com/purelife/storefront/internal/handler"
	"github.com/purelife/storefront/internal/service"
)

// ContentHandler edits site content blocks.
type ContentHandler struct {
	content service.ContentService
}

// NewContentHandler creates a new admin content handler.
func NewContentHandler(content service.ContentService) *ContentHandler {
	return &ContentHandler{content: content}
}

type updateContentRequest struct {
	Sections map[string]string `json:"sections"`
}

// Update handles PUT /api/admin/content/{key}.
func (h *ContentHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req updateContentRequest
	if err := handler.DecodeJSON(r, &req); err != nil {
		handler.ErrorResponse(w, r, err)
		return
	}

	block, err := h.content.UpdateContent(r.Context(), r.PathValue("key"), req.Sections)
	if err != nil {
		handler.ErrorResponse(w, r, err)
		return
	}
	handler.RespondJSON(w, http.StatusOK, block)
}
