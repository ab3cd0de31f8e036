package admin

import (
	"net/http"

	"github.com/purelife/storefront/internal/handler"
	"github.com/purelife/storefront/internal/service"
)

// CustomerHandler lists registered accounts.
type CustomerHandler struct {
	users service.UserService
}

// NewCustomerHandler creates a new customer handler.
func NewCustomerHandler(users service.UserService) *CustomerHandler {
	return &CustomerHandler{users: users}
}

// List handles GET /api/admin/customers.
func (h *CustomerHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	pageSize := parseInt32(q.Get("page_size"), 20)
	page := parseInt32(q.Get("page"), 1)

	users, total, err := h.users.ListCustomers(r.Context(), pageSize, (page-1)*pageSize)
	if err != nil {
		handler.ErrorResponse(w, r, err)
		return
	}

	handler.RespondJSON(w, http.StatusOK, map[string]interface{}{
		"customers": users,
		"total":     total,
		"page":      page,
		"pageSize":  pageSize,
	})
}
