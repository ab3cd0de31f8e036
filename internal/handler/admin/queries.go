package admin

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/purelife/storefront/internal/domain"
	"github.com/purelife/storefront/internal/handler"
	"github.com/purelife/storefront/internal/service"
)

// QueryHandler triages contact form submissions.
type QueryHandler struct {
	contacts service.ContactService
}

// NewQueryHandler creates a new contact query handler.
func NewQueryHandler(contacts service.ContactService) *QueryHandler {
	return &QueryHandler{contacts: contacts}
}

// List handles GET /api/admin/queries.
func (h *QueryHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	pageSize := parseInt32(q.Get("page_size"), 20)
	page := parseInt32(q.Get("page"), 1)

	queries, err := h.contacts.ListQueries(r.Context(), pageSize, (page-1)*pageSize)
	if err != nil {
		handler.ErrorResponse(w, r, err)
		return
	}
	handler.RespondJSON(w, http.StatusOK, map[string]interface{}{"queries": queries})
}

// UpdateStatus handles PUT /api/admin/queries/{id}/status.
func (h *QueryHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	queryID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		handler.ErrorResponse(w, r, domain.Invalid("", "Invalid query ID"))
		return
	}

	var req struct {
		Status string `json:"status"`
	}
	if err := handler.DecodeJSON(r, &req); err != nil {
		handler.ErrorResponse(w, r, err)
		return
	}

	query, err := h.contacts.UpdateStatus(r.Context(), queryID, req.Status)
	if err != nil {
		handler.ErrorResponse(w, r, err)
		return
	}
	handler.RespondJSON(w, http.StatusOK, query)
}
