package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/purelife/storefront/internal/domain"
	"github.com/purelife/storefront/internal/repository"
)

// mockQuerier implements repository.Querier for testing. Unset funcs
// fall back to pgx.ErrNoRows for lookups and an error for writes.
type mockQuerier struct {
	CreateUserFunc        func(ctx context.Context, name, email, passwordHash, role string) (*domain.User, error)
	GetUserByEmailFunc    func(ctx context.Context, email string) (*domain.User, error)
	GetUserByIDFunc       func(ctx context.Context, id uuid.UUID) (*domain.User, error)
	UpdateUserProfileFunc func(ctx context.Context, params repository.UpdateUserProfileParams) (*domain.User, error)
	ListUsersFunc         func(ctx context.Context, limit, offset int32) ([]domain.User, error)
	CountUsersFunc        func(ctx context.Context) (int64, error)

	CreateProductFunc        func(ctx context.Context, p *domain.Product) (*domain.Product, error)
	GetProductByIDFunc       func(ctx context.Context, id uuid.UUID) (*domain.Product, error)
	GetProductBySlugFunc     func(ctx context.Context, slug string) (*domain.Product, error)
	ListProductsFunc         func(ctx context.Context, filter repository.ProductFilter) ([]domain.Product, error)
	CountProductsFunc        func(ctx context.Context, filter repository.ProductFilter) (int64, error)
	UpdateProductFunc        func(ctx context.Context, params repository.UpdateProductParams) (*domain.Product, error)
	SetProductActiveFunc     func(ctx context.Context, id uuid.UUID, active bool) error
	RefreshProductRatingFunc func(ctx context.Context, productID uuid.UUID) error

	GetCartFunc    func(ctx context.Context, userID uuid.UUID) (*domain.Cart, error)
	UpsertCartFunc func(ctx context.Context, userID uuid.UUID, items []domain.CartItem) (*domain.Cart, error)
	ClearCartFunc  func(ctx context.Context, userID uuid.UUID) error

	CreateOrderFunc                  func(ctx context.Context, order *domain.Order) (*domain.Order, error)
	GetOrderByIDFunc                 func(ctx context.Context, id uuid.UUID) (*domain.Order, error)
	ListOrdersByUserFunc             func(ctx context.Context, userID uuid.UUID) ([]domain.Order, error)
	ListOrdersFunc                   func(ctx context.Context, filter repository.OrderFilter) ([]domain.Order, error)
	CountOrdersFunc                  func(ctx context.Context, filter repository.OrderFilter) (int64, error)
	UpdateOrderStatusFunc            func(ctx context.Context, id uuid.UUID, status string) (*domain.Order, error)
	MarkPaymentSucceededFunc         func(ctx context.Context, paymentIntentID string) (int64, error)
	MarkPaymentFailedFunc            func(ctx context.Context, paymentIntentID string) (int64, error)
	MarkOrderRefundedFunc            func(ctx context.Context, paymentIntentID string) (int64, error)
	HasDeliveredOrderWithProductFunc func(ctx context.Context, userID, productID uuid.UUID) (bool, error)
	GetStoreStatsFunc                func(ctx context.Context) (*repository.StoreStats, error)

	CreateReviewFunc         func(ctx context.Context, review *domain.Review) (*domain.Review, error)
	GetReviewByIDFunc        func(ctx context.Context, id uuid.UUID) (*domain.Review, error)
	ListReviewsByProductFunc func(ctx context.Context, productID uuid.UUID) ([]domain.Review, error)
	UpdateReviewFunc         func(ctx context.Context, id uuid.UUID, rating int32, comment string) (*domain.Review, error)
	DeleteReviewFunc         func(ctx context.Context, id uuid.UUID) error

	GetWishlistFunc           func(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error)
	AddWishlistProductFunc    func(ctx context.Context, userID, productID uuid.UUID) error
	RemoveWishlistProductFunc func(ctx context.Context, userID, productID uuid.UUID) error
	ListWishlistProductsFunc  func(ctx context.Context, userID uuid.UUID) ([]domain.Product, error)

	CreateContactQueryFunc       func(ctx context.Context, q *domain.ContactQuery) (*domain.ContactQuery, error)
	ListContactQueriesFunc       func(ctx context.Context, limit, offset int32) ([]domain.ContactQuery, error)
	UpdateContactQueryStatusFunc func(ctx context.Context, id uuid.UUID, status string) (*domain.ContactQuery, error)

	GetContentFunc    func(ctx context.Context, key string) (*domain.Content, error)
	UpsertContentFunc func(ctx context.Context, key string, sections map[string]string) (*domain.Content, error)
}

var errMockNotImplemented = errors.New("mock: not implemented")

func (m *mockQuerier) CreateUser(ctx context.Context, name, email, passwordHash, role string) (*domain.User, error) {
	if m.CreateUserFunc != nil {
		return m.CreateUserFunc(ctx, name, email, passwordHash, role)
	}
	return nil, errMockNotImplemented
}

func (m *mockQuerier) GetUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	if m.GetUserByEmailFunc != nil {
		return m.GetUserByEmailFunc(ctx, email)
	}
	return nil, pgx.ErrNoRows
}

func (m *mockQuerier) GetUserByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	if m.GetUserByIDFunc != nil {
		return m.GetUserByIDFunc(ctx, id)
	}
	return nil, pgx.ErrNoRows
}

func (m *mockQuerier) UpdateUserProfile(ctx context.Context, params repository.UpdateUserProfileParams) (*domain.User, error) {
	if m.UpdateUserProfileFunc != nil {
		return m.UpdateUserProfileFunc(ctx, params)
	}
	return nil, errMockNotImplemented
}

func (m *mockQuerier) ListUsers(ctx context.Context, limit, offset int32) ([]domain.User, error) {
	if m.ListUsersFunc != nil {
		return m.ListUsersFunc(ctx, limit, offset)
	}
	return nil, nil
}

func (m *mockQuerier) CountUsers(ctx context.Context) (int64, error) {
	if m.CountUsersFunc != nil {
		return m.CountUsersFunc(ctx)
	}
	return 0, nil
}

func (m *mockQuerier) CreateProduct(ctx context.Context, p *domain.Product) (*domain.Product, error) {
	if m.CreateProductFunc != nil {
		return m.CreateProductFunc(ctx, p)
	}
	return nil, errMockNotImplemented
}

func (m *mockQuerier) GetProductByID(ctx context.Context, id uuid.UUID) (*domain.Product, error) {
	if m.GetProductByIDFunc != nil {
		return m.GetProductByIDFunc(ctx, id)
	}
	return nil, pgx.ErrNoRows
}

func (m *mockQuerier) GetProductBySlug(ctx context.Context, slug string) (*domain.Product, error) {
	if m.GetProductBySlugFunc != nil {
		return m.GetProductBySlugFunc(ctx, slug)
	}
	return nil, pgx.ErrNoRows
}

func (m *mockQuerier) ListProducts(ctx context.Context, filter repository.ProductFilter) ([]domain.Product, error) {
	if m.ListProductsFunc != nil {
		return m.ListProductsFunc(ctx, filter)
	}
	return nil, nil
}

func (m *mockQuerier) CountProducts(ctx context.Context, filter repository.ProductFilter) (int64, error) {
	if m.CountProductsFunc != nil {
		return m.CountProductsFunc(ctx, filter)
	}
	return 0, nil
}

func (m *mockQuerier) UpdateProduct(ctx context.Context, params repository.UpdateProductParams) (*domain.Product, error) {
	if m.UpdateProductFunc != nil {
		return m.UpdateProductFunc(ctx, params)
	}
	return nil, errMockNotImplemented
}

func (m *mockQuerier) SetProductActive(ctx context.Context, id uuid.UUID, active bool) error {
	if m.SetProductActiveFunc != nil {
		return m.SetProductActiveFunc(ctx, id, active)
	}
	return nil
}

func (m *mockQuerier) RefreshProductRating(ctx context.Context, productID uuid.UUID) error {
	if m.RefreshProductRatingFunc != nil {
		return m.RefreshProductRatingFunc(ctx, productID)
	}
	return nil
}

func (m *mockQuerier) GetCart(ctx context.Context, userID uuid.UUID) (*domain.Cart, error) {
	if m.GetCartFunc != nil {
		return m.GetCartFunc(ctx, userID)
	}
	return nil, pgx.ErrNoRows
}

func (m *mockQuerier) UpsertCart(ctx context.Context, userID uuid.UUID, items []domain.CartItem) (*domain.Cart, error) {
	if m.UpsertCartFunc != nil {
		return m.UpsertCartFunc(ctx, userID, items)
	}
	return &domain.Cart{UserID: userID, Items: items}, nil
}

func (m *mockQuerier) ClearCart(ctx context.Context, userID uuid.UUID) error {
	if m.ClearCartFunc != nil {
		return m.ClearCartFunc(ctx, userID)
	}
	return nil
}

func (m *mockQuerier) CreateOrder(ctx context.Context, order *domain.Order) (*domain.Order, error) {
	if m.CreateOrderFunc != nil {
		return m.CreateOrderFunc(ctx, order)
	}
	return nil, errMockNotImplemented
}

func (m *mockQuerier) GetOrderByID(ctx context.Context, id uuid.UUID) (*domain.Order, error) {
	if m.GetOrderByIDFunc != nil {
		return m.GetOrderByIDFunc(ctx, id)
	}
	return nil, pgx.ErrNoRows
}

func (m *mockQuerier) ListOrdersByUser(ctx context.Context, userID uuid.UUID) ([]domain.Order, error) {
	if m.ListOrdersByUserFunc != nil {
		return m.ListOrdersByUserFunc(ctx, userID)
	}
	return nil, nil
}

func (m *mockQuerier) ListOrders(ctx context.Context, filter repository.OrderFilter) ([]domain.Order, error) {
	if m.ListOrdersFunc != nil {
		return m.ListOrdersFunc(ctx, filter)
	}
	return nil, nil
}

func (m *mockQuerier) CountOrders(ctx context.Context, filter repository.OrderFilter) (int64, error) {
	if m.CountOrdersFunc != nil {
		return m.CountOrdersFunc(ctx, filter)
	}
	return 0, nil
}

func (m *mockQuerier) UpdateOrderStatus(ctx context.Context, id uuid.UUID, status string) (*domain.Order, error) {
	if m.UpdateOrderStatusFunc != nil {
		return m.UpdateOrderStatusFunc(ctx, id, status)
	}
	return nil, errMockNotImplemented
}

func (m *mockQuerier) MarkPaymentSucceeded(ctx context.Context, paymentIntentID string) (int64, error) {
	if m.MarkPaymentSucceededFunc != nil {
		return m.MarkPaymentSucceededFunc(ctx, paymentIntentID)
	}
	return 0, nil
}

func (m *mockQuerier) MarkPaymentFailed(ctx context.Context, paymentIntentID string) (int64, error) {
	if m.MarkPaymentFailedFunc != nil {
		return m.MarkPaymentFailedFunc(ctx, paymentIntentID)
	}
	return 0, nil
}

func (m *mockQuerier) MarkOrderRefunded(ctx context.Context, paymentIntentID string) (int64, error) {
	if m.MarkOrderRefundedFunc != nil {
		return m.MarkOrderRefundedFunc(ctx, paymentIntentID)
	}
	return 0, nil
}

func (m *mockQuerier) HasDeliveredOrderWithProduct(ctx context.Context, userID, productID uuid.UUID) (bool, error) {
	if m.HasDeliveredOrderWithProductFunc != nil {
		return m.HasDeliveredOrderWithProductFunc(ctx, userID, productID)
	}
	return false, nil
}

func (m *mockQuerier) GetStoreStats(ctx context.Context) (*repository.StoreStats, error) {
	if m.GetStoreStatsFunc != nil {
		return m.GetStoreStatsFunc(ctx)
	}
	return &repository.StoreStats{}, nil
}

func (m *mockQuerier) CreateReview(ctx context.Context, review *domain.Review) (*domain.Review, error) {
	if m.CreateReviewFunc != nil {
		return m.CreateReviewFunc(ctx, review)
	}
	return nil, errMockNotImplemented
}

func (m *mockQuerier) GetReviewByID(ctx context.Context, id uuid.UUID) (*domain.Review, error) {
	if m.GetReviewByIDFunc != nil {
		return m.GetReviewByIDFunc(ctx, id)
	}
	return nil, pgx.ErrNoRows
}

func (m *mockQuerier) ListReviewsByProduct(ctx context.Context, productID uuid.UUID) ([]domain.Review, error) {
	if m.ListReviewsByProductFunc != nil {
		return m.ListReviewsByProductFunc(ctx, productID)
	}
	return nil, nil
}

func (m *mockQuerier) UpdateReview(ctx context.Context, id uuid.UUID, rating int32, comment string) (*domain.Review, error) {
	if m.UpdateReviewFunc != nil {
		return m.UpdateReviewFunc(ctx, id, rating, comment)
	}
	return nil, errMockNotImplemented
}

func (m *mockQuerier) DeleteReview(ctx context.Context, id uuid.UUID) error {
	if m.DeleteReviewFunc != nil {
		return m.DeleteReviewFunc(ctx, id)
	}
	return nil
}

func (m *mockQuerier) GetWishlist(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error) {
	if m.GetWishlistFunc != nil {
		return m.GetWishlistFunc(ctx, userID)
	}
	return nil, nil
}

func (m *mockQuerier) AddWishlistProduct(ctx context.Context, userID, productID uuid.UUID) error {
	if m.AddWishlistProductFunc != nil {
		return m.AddWishlistProductFunc(ctx, userID, productID)
	}
	return nil
}

func (m *mockQuerier) RemoveWishlistProduct(ctx context.Context, userID, productID uuid.UUID) error {
	if m.RemoveWishlistProductFunc != nil {
		return m.RemoveWishlistProductFunc(ctx, userID, productID)
	}
	return nil
}

func (m *mockQuerier) ListWishlistProducts(ctx context.Context, userID uuid.UUID) ([]domain.Product, error) {
	if m.ListWishlistProductsFunc != nil {
		return m.ListWishlistProductsFunc(ctx, userID)
	}
	return nil, nil
}

func (m *mockQuerier) CreateContactQuery(ctx context.Context, q *domain.ContactQuery) (*domain.ContactQuery, error) {
	if m.CreateContactQueryFunc != nil {
		return m.CreateContactQueryFunc(ctx, q)
	}
	return nil, errMockNotImplemented
}

func (m *mockQuerier) ListContactQueries(ctx context.Context, limit, offset int32) ([]domain.ContactQuery, error) {
	if m.ListContactQueriesFunc != nil {
		return m.ListContactQueriesFunc(ctx, limit, offset)
	}
	return nil, nil
}

func (m *mockQuerier) UpdateContactQueryStatus(ctx context.Context, id uuid.UUID, status string) (*domain.ContactQuery, error) {
	if m.UpdateContactQueryStatusFunc != nil {
		return m.UpdateContactQueryStatusFunc(ctx, id, status)
	}
	return nil, errMockNotImplemented
}

func (m *mockQuerier) GetContent(ctx context.Context, key string) (*domain.Content, error) {
	if m.GetContentFunc != nil {
		return m.GetContentFunc(ctx, key)
	}
	return nil, pgx.ErrNoRows
}

func (m *mockQuerier) UpsertContent(ctx context.Context, key string, sections map[string]string) (*domain.Content, error) {
	if m.UpsertContentFunc != nil {
		return m.UpsertContentFunc(ctx, key, sections)
	}
	return &domain.Content{Key: key, Sections: sections}, nil
}

var _ repository.Querier = (*mockQuerier)(nil)
