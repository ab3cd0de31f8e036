package service

import (
	"context"
	"errors"
	"log/slog"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/purelife/storefront/internal/billing"
	"github.com/purelife/storefront/internal/domain"
	"github.com/purelife/storefront/internal/email"
	"github.com/purelife/storefront/internal/repository"
	"github.com/purelife/storefront/internal/telemetry"
)

// OrderService provides order creation, retrieval, the admin status
// machine, and webhook reconciliation.
type OrderService interface {
	// CreateOrder snapshots the user's cart into an order. When a payment
	// intent ID is supplied its current status seeds the order's payment
	// state; an already-succeeded intent starts the order in processing.
	CreateOrder(ctx context.Context, userID uuid.UUID, customer domain.CustomerInfo, paymentIntentID string) (*domain.Order, error)

	// GetOrder returns an order visible to user: owners see their own
	// orders, admins see all.
	GetOrder(ctx context.Context, user *domain.SessionUser, orderID uuid.UUID) (*domain.Order, error)

	ListUserOrders(ctx context.Context, userID uuid.UUID) ([]domain.Order, error)

	// Admin surface
	ListOrders(ctx context.Context, filter repository.OrderFilter) ([]domain.Order, int64, error)
	UpdateStatus(ctx context.Context, orderID uuid.UUID, status string) (*domain.Order, error)

	// Webhook reconciliation. Each returns whether a matching order was
	// found; an unmatched payment intent is not an error.
	ApplyPaymentSucceeded(ctx context.Context, paymentIntentID string) (bool, error)
	ApplyPaymentFailed(ctx context.Context, paymentIntentID string) (bool, error)
	ApplyRefund(ctx context.Context, paymentIntentID string) (bool, error)
}

type orderService struct {
	repo            repository.Querier
	billingProvider billing.Provider
	emails          *email.Service
	logger          *slog.Logger
}

// NewOrderService creates a new OrderService instance. The email service
// may be nil, in which case no order emails are sent.
func NewOrderService(repo repository.Querier, billingProvider billing.Provider, emails *email.Service, logger *slog.Logger) OrderService {
	if logger == nil {
		logger = slog.Default()
	}
	return &orderService{
		repo:            repo,
		billingProvider: billingProvider,
		emails:          emails,
		logger:          logger,
	}
}

func (s *orderService) CreateOrder(ctx context.Context, userID uuid.UUID, customer domain.CustomerInfo, paymentIntentID string) (*domain.Order, error) {
	const op = "OrderService.CreateOrder"

	if err := validateCustomerInfo(op, customer); err != nil {
		return nil, err
	}

	cart, err := s.repo.GetCart(ctx, userID)
	if err != nil && !errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.Internal(err, op, "failed to load cart")
	}
	if cart == nil || len(cart.Items) == 0 {
		return nil, domain.Invalid(op, "Cart is empty")
	}

	items := make([]domain.OrderItem, 0, len(cart.Items))
	for _, it := range cart.Items {
		items = append(items, domain.OrderItem{
			ProductID: it.ProductID,
			Name:      it.Name,
			Price:     it.Price,
			Quantity:  it.Quantity,
			ImageURL:  it.ImageURL,
		})
	}

	order := &domain.Order{
		UserID:          userID,
		CustomerInfo:    customer,
		Items:           items,
		TotalPrice:      cart.TotalPrice(),
		Status:          domain.OrderStatusPending,
		PaymentIntentID: paymentIntentID,
		PaymentStatus:   domain.PaymentStatusPending,
	}

	// The webhook is the authoritative confirmation path, but checking
	// the intent here lets a fast client see the order as processing
	// immediately after Stripe.js confirms the payment.
	if paymentIntentID != "" && s.billingProvider != nil {
		intent, err := s.billingProvider.GetPaymentIntent(ctx, paymentIntentID)
		if err != nil {
			s.logger.Warn("could not verify payment intent at order creation",
				"payment_intent_id", paymentIntentID, "error", err)
		} else if intent.Status == "succeeded" {
			order.PaymentStatus = domain.PaymentStatusSucceeded
			order.Status = domain.OrderStatusProcessing
		}
	}

	created, err := s.repo.CreateOrder(ctx, order)
	if err != nil {
		return nil, domain.Internal(err, op, "failed to create order")
	}

	if err := s.repo.ClearCart(ctx, userID); err != nil {
		// The order exists; an unconverted cart is an annoyance, not a failure.
		s.logger.Error("failed to clear cart after order creation",
			"order_id", created.ID, "error", err)
	}

	if telemetry.Business != nil {
		telemetry.Business.OrdersCreated.Inc()
		value, _ := created.TotalPrice.Float64()
		telemetry.Business.OrderValue.Observe(value)
		telemetry.Business.OrderItemCount.Observe(float64(len(created.Items)))
	}

	s.sendOrderConfirmation(ctx, created)
	return created, nil
}

func (s *orderService) GetOrder(ctx context.Context, user *domain.SessionUser, orderID uuid.UUID) (*domain.Order, error) {
	const op = "OrderService.GetOrder"

	order, err := s.repo.GetOrderByID(ctx, orderID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.NotFound(op, "order", orderID.String())
		}
		return nil, domain.Internal(err, op, "failed to get order")
	}

	if !user.IsAdmin() && order.UserID != user.ID {
		// Hide the order's existence from non-owners.
		return nil, domain.NotFound(op, "order", orderID.String())
	}
	return order, nil
}

func (s *orderService) ListUserOrders(ctx context.Context, userID uuid.UUID) ([]domain.Order, error) {
	const op = "OrderService.ListUserOrders"

	orders, err := s.repo.ListOrdersByUser(ctx, userID)
	if err != nil {
		return nil, domain.Internal(err, op, "failed to list orders")
	}
	return orders, nil
}

func (s *orderService) ListOrders(ctx context.Context, filter repository.OrderFilter) ([]domain.Order, int64, error) {
	const op = "OrderService.ListOrders"

	if filter.Status != "" && !domain.ValidOrderStatus(filter.Status) {
		return nil, 0, domain.NewValidationError(op, "status", "unknown order status")
	}

	orders, err := s.repo.ListOrders(ctx, filter)
	if err != nil {
		return nil, 0, domain.Internal(err, op, "failed to list orders")
	}
	total, err := s.repo.CountOrders(ctx, filter)
	if err != nil {
		return nil, 0, domain.Internal(err, op, "failed to count orders")
	}
	return orders, total, nil
}

// UpdateStatus sets an order's status to any of the five lifecycle
// values. Admins decide transitions; the service only validates set
// membership. Entering shipped sends the shipping notification;
// cancelling a paid order issues a refund through the billing provider.
func (s *orderService) UpdateStatus(ctx context.Context, orderID uuid.UUID, status string) (*domain.Order, error) {
	const op = "OrderService.UpdateStatus"

	if !domain.ValidOrderStatus(status) {
		return nil, domain.NewValidationError(op, "status", "unknown order status")
	}

	order, err := s.repo.GetOrderByID(ctx, orderID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.NotFound(op, "order", orderID.String())
		}
		return nil, domain.Internal(err, op, "failed to get order")
	}

	if order.Status == status {
		return order, nil
	}

	if status == domain.OrderStatusCancelled &&
		order.PaymentStatus == domain.PaymentStatusSucceeded &&
		order.PaymentIntentID != "" && s.billingProvider != nil {
		if _, err := s.billingProvider.RefundPayment(ctx, billing.RefundParams{
			PaymentIntentID: order.PaymentIntentID,
			Reason:          "requested_by_customer",
		}); err != nil {
			return nil, domain.WrapError(err, domain.EPAYMENT, op, "Failed to refund payment")
		}
		if telemetry.Business != nil {
			telemetry.Business.RefundsIssued.Inc()
		}
	}

	updated, err := s.repo.UpdateOrderStatus(ctx, orderID, status)
	if err != nil {
		return nil, domain.Internal(err, op, "failed to update order status")
	}

	if telemetry.Business != nil {
		telemetry.Business.OrderStatus.WithLabelValues(status).Inc()
	}

	// The same-status early return above keeps a repeated shipped
	// update from resending the notification.
	if status == domain.OrderStatusShipped {
		s.sendShippingNotification(ctx, updated)
	}
	return updated, nil
}

func (s *orderService) ApplyPaymentSucceeded(ctx context.Context, paymentIntentID string) (bool, error) {
	const op = "OrderService.ApplyPaymentSucceeded"

	n, err := s.repo.MarkPaymentSucceeded(ctx, paymentIntentID)
	if err != nil {
		return false, domain.Internal(err, op, "failed to mark payment succeeded")
	}
	if telemetry.Business != nil && n > 0 {
		telemetry.Business.PaymentSucceeded.Inc()
	}
	return n > 0, nil
}

func (s *orderService) ApplyPaymentFailed(ctx context.Context, paymentIntentID string) (bool, error) {
	const op = "OrderService.ApplyPaymentFailed"

	n, err := s.repo.MarkPaymentFailed(ctx, paymentIntentID)
	if err != nil {
		return false, domain.Internal(err, op, "failed to mark payment failed")
	}
	if telemetry.Business != nil && n > 0 {
		telemetry.Business.PaymentFailed.Inc()
	}
	return n > 0, nil
}

func (s *orderService) ApplyRefund(ctx context.Context, paymentIntentID string) (bool, error) {
	const op = "OrderService.ApplyRefund"

	n, err := s.repo.MarkOrderRefunded(ctx, paymentIntentID)
	if err != nil {
		return false, domain.Internal(err, op, "failed to mark order refunded")
	}
	if telemetry.Business != nil && n > 0 {
		telemetry.Business.RefundsIssued.Inc()
	}
	return n > 0, nil
}

func (s *orderService) sendOrderConfirmation(ctx context.Context, order *domain.Order) {
	if s.emails == nil {
		return
	}

	data := email.OrderConfirmationEmail{
		OrderNumber:  shortOrderNumber(order.ID),
		CustomerName: order.CustomerInfo.Name,
		Email:        order.CustomerInfo.Email,
		OrderDate:    order.CreatedAt,
		Items:        emailLineItems(order.Items),
		Total:        order.TotalPrice.StringFixed(2),
		ShippingAddr: emailAddress(order.CustomerInfo.Address),
	}
	if err := s.emails.SendOrderConfirmation(ctx, data); err != nil {
		s.logger.Error("failed to send order confirmation",
			"order_id", order.ID, "error", err)
		if telemetry.Business != nil {
			telemetry.Business.EmailFailed.WithLabelValues("order_confirmation").Inc()
		}
		return
	}
	if telemetry.Business != nil {
		telemetry.Business.EmailSent.WithLabelValues("order_confirmation").Inc()
	}
}

func (s *orderService) sendShippingNotification(ctx context.Context, order *domain.Order) {
	if s.emails == nil {
		return
	}

	data := email.ShippingNotificationEmail{
		OrderNumber:  shortOrderNumber(order.ID),
		CustomerName: order.CustomerInfo.Name,
		Email:        order.CustomerInfo.Email,
		ShippedDate:  order.UpdatedAt,
		Items:        emailLineItems(order.Items),
		ShippingAddr: emailAddress(order.CustomerInfo.Address),
	}
	if err := s.emails.SendShippingNotification(ctx, data); err != nil {
		s.logger.Error("failed to send shipping notification",
			"order_id", order.ID, "error", err)
		if telemetry.Business != nil {
			telemetry.Business.EmailFailed.WithLabelValues("shipping_notification").Inc()
		}
		return
	}
	if telemetry.Business != nil {
		telemetry.Business.EmailSent.WithLabelValues("shipping_notification").Inc()
	}
}

func validateCustomerInfo(op string, c domain.CustomerInfo) error {
	var err error
	if c.Name == "" {
		err = domain.AddFieldError(err, "name", "name is required")
	}
	if c.Email == "" {
		err = domain.AddFieldError(err, "email", "email is required")
	}
	if c.Address.Street == "" || c.Address.City == "" || c.Address.Zip == "" {
		err = domain.AddFieldError(err, "address", "street, city, and zip are required")
	}
	if ve, ok := err.(*domain.ValidationError); ok {
		ve.Op = op
	}
	return err
}

// shortOrderNumber is the customer-facing order reference: the first
// UUID segment, as printed on emails and the order confirmation page.
func shortOrderNumber(id uuid.UUID) string {
	s := id.String()
	if len(s) > 8 {
		return s[:8]
	}
	return s
}

func emailLineItems(items []domain.OrderItem) []email.LineItem {
	out := make([]email.LineItem, 0, len(items))
	for _, it := range items {
		out = append(out, email.LineItem{
			ProductName: it.Name,
			Quantity:    int(it.Quantity),
			Price:       it.Price.StringFixed(2),
			ImageURL:    it.ImageURL,
		})
	}
	return out
}

func emailAddress(a domain.Address) email.Address {
	return email.Address{
		Street:  a.Street,
		City:    a.City,
		State:   a.State,
		Zip:     a.Zip,
		Country: a.Country,
	}
}
