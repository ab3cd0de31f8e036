package api

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/purelife/storefront/internal/domain"
	"github.com/purelife/storefront/internal/handler"
	"github.com/purelife/storefront/internal/service"
)

// OrderHandler serves customer order creation and history.
type OrderHandler struct {
	orders service.OrderService
}

// NewOrderHandler creates a new order handler.
func NewOrderHandler(orders service.OrderService) *OrderHandler {
	return &OrderHandler{orders: orders}
}

type createOrderRequest struct {
	CustomerInfo    domain.CustomerInfo `json:"customerInfo"`
	PaymentIntentID string              `json:"paymentIntentId"`
}

// Create handles POST /api/orders. The order lines are snapshotted from
// the stored cart, not from the request body.
func (h *OrderHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createOrderRequest
	if err := handler.DecodeJSON(r, &req); err != nil {
		handler.ErrorResponse(w, r, err)
		return
	}

	order, err := h.orders.CreateOrder(r.Context(), domain.RequireUserID(r.Context()), req.CustomerInfo, req.PaymentIntentID)
	if err != nil {
		handler.ErrorResponse(w, r, err)
		return
	}
	handler.RespondJSON(w, http.StatusCreated, order)
}

// List handles GET /api/orders, returning the user's own orders.
func (h *OrderHandler) List(w http.ResponseWriter, r *http.Request) {
	orders, err := h.orders.ListUserOrders(r.Context(), domain.RequireUserID(r.Context()))
	if err != nil {
		handler.ErrorResponse(w, r, err)
		return
	}
	handler.RespondJSON(w, http.StatusOK, map[string]interface{}{"orders": orders})
}

// Get handles GET /api/orders/{id}. Owners see their own orders,
// admins see all; anything else is a 404.
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
