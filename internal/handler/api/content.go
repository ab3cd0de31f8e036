package api

import (
	"net/http"

	"github.com/purelife/storefront/internal/handler"
	"github.com/purelife/storefront/internal/service"
)

// ContentHandler serves editable site content blocks, like the about
// page copy.
type ContentHandler struct {
	content service.ContentService
}

// NewContentHandler creates a new content handler.
func NewContentHandler(content service.ContentService) *ContentHandler {
	return &ContentHandler{content: content}
}

// Get handles GET /api/content/{key}.
func (h *ContentHandler) Get(w http.ResponseWriter, r *http.Request) {
	block, err := h.content.GetContent(r.Context(), r.PathValue("key"))
	if err != nil {
		handler.ErrorResponse(w, r, err)
		return
	}
	handler.RespondJSON(w, http.StatusOK, block)
}
