package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/purelife/storefront/internal/billing"
	"github.com/purelife/storefront/internal/domain"
	"github.com/purelife/storefront/internal/email"
	"github.com/purelife/storefront/internal/repository"
)

func testCustomer() domain.CustomerInfo {
	return domain.CustomerInfo{
		Name:  "Jordan Rivers",
		Email: "jordan@example.com",
		Address: domain.Address{
			Street: "12 Lakeview Dr", City: "Austin", State: "TX", Zip: "78701", Country: "USA",
		},
	}
}

func newEmailService(t *testing.T) (*email.Service, *email.MockSender) {
	t.Helper()
	sender := email.NewMockSender()
	svc, err := email.NewService(sender, "orders@purelife.example", "PureLife")
	require.NoError(t, err)
	return svc, sender
}

func TestCreateOrderSnapshotsCartAndClearsIt(t *testing.T) {
	userID := uuid.New()
	cleared := false

	repo := &mockQuerier{
		GetCartFunc: func(ctx context.Context, uid uuid.UUID) (*domain.Cart, error) {
			return cartWithTotal(uid, "149.00", 2), nil
		},
		CreateOrderFunc: func(ctx context.Context, order *domain.Order) (*domain.Order, error) {
			out := *order
			out.ID = uuid.New()
			return &out, nil
		},
		ClearCartFunc: func(ctx context.Context, uid uuid.UUID) error {
			cleared = true
			return nil
		},
	}
	emails, sender := newEmailService(t)
	svc := NewOrderService(repo, billing.NewMockProvider(), emails, nil)

	order, err := svc.CreateOrder(context.Background(), userID, testCustomer(), "")
	require.NoError(t, err)

	assert.Equal(t, domain.OrderStatusPending, order.Status)
	assert.Equal(t, domain.PaymentStatusPending, order.PaymentStatus)
	assert.Equal(t, "298.00", order.TotalPrice.StringFixed(2))
	require.Len(t, order.Items, 1)
	assert.Equal(t, int32(2), order.Items[0].Quantity)
	assert.True(t, cleared, "cart should be cleared after order creation")
	assert.Equal(t, 1, sender.SentCount(), "order confirmation should be sent")
}

func TestCreateOrderSucceededIntentStartsProcessing(t *testing.T) {
	userID := uuid.New()
	provider := billing.NewMockProvider()
	provider.PaymentIntents["pi_123"] = &billing.PaymentIntent{
		ID:     "pi_123",
		Status: "succeeded",
	}

	repo := &mockQuerier{
		GetCartFunc: func(ctx context.Context, uid uuid.UUID) (*domain.Cart, error) {
			return cartWithTotal(uid, "50.00", 1), nil
		},
		CreateOrderFunc: func(ctx context.Context, order *domain.Order) (*domain.Order, error) {
			return order, nil
		},
	}
	svc := NewOrderService(repo, provider, nil, nil)

	order, err := svc.CreateOrder(context.Background(), userID, testCustomer(), "pi_123")
	require.NoError(t, err)

	assert.Equal(t, domain.OrderStatusProcessing, order.Status)
	assert.Equal(t, domain.PaymentStatusSucceeded, order.PaymentStatus)
	assert.Equal(t, "pi_123", order.PaymentIntentID)
}

func TestCreateOrderEmptyCart(t *testing.T) {
	svc := NewOrderService(&mockQuerier{}, nil, nil, nil)

	_, err := svc.CreateOrder(context.Background(), uuid.New(), testCustomer(), "")
	require.Error(t, err)
	assert.Equal(t, domain.EINVALID, domain.ErrorCode(err))
}

func TestCreateOrderMissingCustomerInfo(t *testing.T) {
	svc := NewOrderService(&mockQuerier{}, nil, nil, nil)

	_, err := svc.CreateOrder(context.Background(), uuid.New(), domain.CustomerInfo{}, "")
	require.Error(t, err)
	assert.True(t, domain.IsValidationError(err))
}

func TestGetOrderHiddenFromNonOwner(t *testing.T) {
	orderID := uuid.New()
	ownerID := uuid.New()

	repo := &mockQuerier{
		GetOrderByIDFunc: func(ctx context.Context, id uuid.UUID) (*domain.Order, error) {
			return &domain.Order{ID: orderID, UserID: ownerID}, nil
		},
	}
	svc := NewOrderService(repo, nil, nil, nil)

	stranger := &domain.SessionUser{ID: uuid.New(), Role: domain.RoleUser}
	_, err := svc.GetOrder(context.Background(), stranger, orderID)
	require.Error(t, err)
	assert.Equal(t, domain.ENOTFOUND, domain.ErrorCode(err))

	admin := &domain.SessionUser{ID: uuid.New(), Role: domain.RoleAdmin}
	order, err := svc.GetOrder(context.Background(), admin, orderID)
	require.NoError(t, err)
	assert.Equal(t, orderID, order.ID)
}

func TestUpdateStatusShippedSendsNotificationOnce(t *testing.T) {
	orderID := uuid.New()
	current := &domain.Order{
		ID:           orderID,
		UserID:       uuid.New(),
		CustomerInfo: testCustomer(),
		Items: []domain.OrderItem{
			{ProductID: uuid.New(), Name: "AquaPure Home", Price: decimal.RequireFromString("149.00"), Quantity: 1},
		},
		Status:        domain.OrderStatusProcessing,
		PaymentStatus: domain.PaymentStatusSucceeded,
	}

	repo := &mockQuerier{
		GetOrderByIDFunc: func(ctx context.Context, id uuid.UUID) (*domain.Order, error) {
			out := *current
			return &out, nil
		},
		UpdateOrderStatusFunc: func(ctx context.Context, id uuid.UUID, status string) (*domain.Order, error) {
			out := *current
			out.Status = status
			current = &out
			return &out, nil
		},
	}
	emails, sender := newEmailService(t)
	svc := NewOrderService(repo, billing.NewMockProvider(), emails, nil)

	_, err := svc.UpdateStatus(context.Background(), orderID, domain.OrderStatusShipped)
	require.NoError(t, err)
	assert.Equal(t, 1, sender.SentCount())

	// Setting shipped again is a no-op: no second email.
	_, err = svc.UpdateStatus(context.Background(), orderID, domain.OrderStatusShipped)
	require.NoError(t, err)
	assert.Equal(t, 1, sender.SentCount())
}

func TestUpdateStatusAcceptsAnyLifecycleValue(t *testing.T) {
	// Admins decide transitions; the service only checks set membership.
	orderID := uuid.New()
	repo := &mockQuerier{
		GetOrderByIDFunc: func(ctx context.Context, id uuid.UUID) (*domain.Order, error) {
			return &domain.Order{ID: orderID, Status: domain.OrderStatusDelivered}, nil
		},
		UpdateOrderStatusFunc: func(ctx context.Context, id uuid.UUID, status string) (*domain.Order, error) {
			return &domain.Order{ID: id, Status: status}, nil
		},
	}
	svc := NewOrderService(repo, nil, nil, nil)

	updated, err := svc.UpdateStatus(context.Background(), orderID, domain.OrderStatusPending)
	require.NoError(t, err)
	assert.Equal(t, domain.OrderStatusPending, updated.Status)
}

func TestUpdateStatusRejectsUnknownValue(t *testing.T) {
	repo := &mockQuerier{}
	svc := NewOrderService(repo, nil, nil, nil)

	_, err := svc.UpdateStatus(context.Background(), uuid.New(), "returned")
	require.Error(t, err)
	assert.True(t, domain.IsValidationError(err))
}

func TestUpdateStatusCancelsShippedOrder(t *testing.T) {
	orderID := uuid.New()
	provider := billing.NewMockProvider()

	repo := &mockQuerier{
		GetOrderByIDFunc: func(ctx context.Context, id uuid.UUID) (*domain.Order, error) {
			return &domain.Order{
				ID:              orderID,
				Status:          domain.OrderStatusShipped,
				PaymentStatus:   domain.PaymentStatusSucceeded,
				PaymentIntentID: "pi_shipped",
			}, nil
		},
		UpdateOrderStatusFunc: func(ctx context.Context, id uuid.UUID, status string) (*domain.Order, error) {
			return &domain.Order{ID: id, Status: status}, nil
		},
	}
	svc := NewOrderService(repo, provider, nil, nil)

	updated, err := svc.UpdateStatus(context.Background(), orderID, domain.OrderStatusCancelled)
	require.NoError(t, err)
	assert.Equal(t, domain.OrderStatusCancelled, updated.Status)
	assert.Contains(t, provider.CallLog, "RefundPayment(pi_shipped)")
}

func TestUpdateStatusCancelRefundsPaidOrder(t *testing.T) {
	orderID := uuid.New()
	provider := billing.NewMockProvider()

	repo := &mockQuerier{
		GetOrderByIDFunc: func(ctx context.Context, id uuid.UUID) (*domain.Order, error) {
			return &domain.Order{
				ID:              orderID,
				Status:          domain.OrderStatusProcessing,
				PaymentStatus:   domain.PaymentStatusSucceeded,
				PaymentIntentID: "pi_paid",
			}, nil
		},
		UpdateOrderStatusFunc: func(ctx context.Context, id uuid.UUID, status string) (*domain.Order, error) {
			return &domain.Order{ID: id, Status: status}, nil
		},
	}
	svc := NewOrderService(repo, provider, nil, nil)

	_, err := svc.UpdateStatus(context.Background(), orderID, domain.OrderStatusCancelled)
	require.NoError(t, err)
	assert.Contains(t, provider.CallLog, "RefundPayment(pi_paid)")
}

func TestApplyPaymentSucceededReportsMatch(t *testing.T) {
	repo := &mockQuerier{
		MarkPaymentSucceededFunc: func(ctx context.Context, paymentIntentID string) (int64, error) {
			if paymentIntentID == "pi_known" {
				return 1, nil
			}
			return 0, nil
		},
	}
	svc := NewOrderService(repo, nil, nil, nil)

	applied, err := svc.ApplyPaymentSucceeded(context.Background(), "pi_known")
	require.NoError(t, err)
	assert.True(t, applied)

	applied, err = svc.ApplyPaymentSucceeded(context.Background(), "pi_orphan")
	require.NoError(t, err)
	assert.False(t, applied, "an unknown payment intent is a no-op, not an error")
}

func TestListOrdersRejectsUnknownStatus(t *testing.T) {
	svc := NewOrderService(&mockQuerier{}, nil, nil, nil)

	_, _, err := svc.ListOrders(context.Background(), repository.OrderFilter{Status: "bogus"})
	require.Error(t, err)
	assert.True(t, domain.IsValidationError(err))
}
