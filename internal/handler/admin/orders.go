package admin

import (
	"net/http"
	"strconv"

	"github.com/google/uuid"

	"github.com/purelife/storefront/internal/domain"
	"github.com/purelife/storefront/internal/handler"
	"github.com/purelife/storefront/internal/repository"
	"github.com/purelife/storefront/internal/service"
)

// OrderHandler manages the order pipeline.
type OrderHandler struct {
	orders service.OrderService
}

// NewOrderHandler creates a new admin order handler.
func NewOrderHandler(orders service.OrderService) *OrderHandler {
	return &OrderHandler{orders: orders}
}

// List handles GET /api/admin/orders with optional status filtering.
func (h *OrderHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	pageSize := parseInt32(q.Get("page_size"), 20)
	page := parseInt32(q.Get("page"), 1)

	orders, total, err := h.orders.ListOrders(r.Context(), repository.OrderFilter{
		Status: q.Get("status"),
		Limit:  pageSize,
		Offset: (page - 1) * pageSize,
	})
	if err != nil {
		handler.ErrorResponse(w, r, err)
		return
	}

	handler.RespondJSON(w, http.StatusOK, map[string]interface{}{
		"orders":   orders,
		"total":    total,
		"page":     page,
		"pageSize": pageSize,
	})
}

// Get handles GET /api/admin/orders/{id}.
func (h *OrderHandler) Get(w http.ResponseWriter, r *http.Request) {
	orderID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		handler.ErrorResponse(w, r, domain.Invalid("", "Invalid order ID"))
		return
	}

	order, err := h.orders.GetOrder(r.Context(), domain.MustUser(r.Context()), orderID)
	if err != nil {
		handler.ErrorResponse(w, r, err)
		return
	}
	handler.RespondJSON(w, http.StatusOK, order)
}

// UpdateStatus handles PUT /api/admin/orders/{id}/status. Moving a paid
// order to cancelled refunds the payment; moving to shipped sends the
// shipping notification.
func (h *OrderHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	orderID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		handler.ErrorResponse(w, r, domain.Invalid("", "Invalid order ID"))
		return
	}

	var req struct {
		Status string `json:"status"`
	}
	if err := handler.DecodeJSON(r, &req); err != nil {
		handler.ErrorResponse(w, r, err)
		return
	}

	order, err := h.orders.UpdateStatus(r.Context(), orderID, req.Status)
	if err != nil {
		handler.ErrorResponse(w, r, err)
		return
	}
	handler.RespondJSON(w, http.StatusOK, order)
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
