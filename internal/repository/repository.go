// Package repository implements PostgreSQL persistence for the storefront.
//
// Queries holds a pgx connection pool (or transaction) and exposes one
// method per query. Services depend on the Querier interface so tests can
// substitute mocks.
package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shopspring/decimal"

	"github.com/purelife/storefront/internal/domain"
)

// DBTX is the subset of pgxpool.Pool and pgx.Tx the queries need.
type DBTX interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// Queries runs SQL against the given connection.
type Queries struct {
	db DBTX
}

// New creates a Queries bound to db.
func New(db DBTX) *Queries {
	return &Queries{db: db}
}

// ProductFilter narrows ListProducts and CountProducts.
type ProductFilter struct {
	Category        string
	Search          string
	MinPrice        *decimal.Decimal
	MaxPrice        *decimal.Decimal
	Sort            string // "price_asc", "price_desc", "rating", "newest"
	IncludeInactive bool
	Limit           int32
	Offset          int32
}

// OrderFilter narrows ListOrders and CountOrders.
type OrderFilter struct {
	Status string
	Limit  int32
	Offset int32
}

// UpdateProductParams carries the editable product fields.
type UpdateProductParams struct {
	ID             uuid.UUID
	Name           string
	Slug           string
	Description    string
	Price          decimal.Decimal
	Images         []string
	Category       string
	Stock          int32
	Features       []string
	Specifications map[string]string
	IsActive       bool
}

// UpdateUserProfileParams carries the editable profile fields.
type UpdateUserProfileParams struct {
	ID          uuid.UUID
	Name        string
	BillingInfo *domain.BillingInfo
}

// StoreStats is the admin dashboard aggregate.
type StoreStats struct {
	TotalOrders   int64
	TotalProducts int64
	TotalUsers    int64
	TotalQueries  int64
	Revenue       decimal.Decimal
	RecentOrders  []domain.Order
}

// Querier is the query surface services depend on.
type Querier interface {
	// Users
	CreateUser(ctx context.Context, name, email, passwordHash, role string) (*domain.User, error)
	GetUserByEmail(ctx context.Context, email string) (*domain.User, error)
	GetUserByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
	UpdateUserProfile(ctx context.Context, params UpdateUserProfileParams) (*domain.User, error)
	ListUsers(ctx context.Context, limit, offset int32) ([]domain.User, error)
	CountUsers(ctx context.Context) (int64, error)

	// Products
	CreateProduct(ctx context.Context, p *domain.Product) (*domain.Product, error)
	GetProductByID(ctx context.Context, id uuid.UUID) (*domain.Product, error)
	GetProductBySlug(ctx context.Context, slug string) (*domain.Product, error)
	ListProducts(ctx context.Context, filter ProductFilter) ([]domain.Product, error)
	CountProducts(ctx context.Context, filter ProductFilter) (int64, error)
	UpdateProduct(ctx context.Context, params UpdateProductParams) (*domain.Product, error)
	SetProductActive(ctx context.Context, id uuid.UUID, active bool) error
	RefreshProductRating(ctx context.Context, productID uuid.UUID) error

	// Carts
	GetCart(ctx context.Context, userID uuid.UUID) (*domain.Cart, error)
	UpsertCart(ctx context.Context, userID uuid.UUID, items []domain.CartItem) (*domain.Cart, error)
	ClearCart(ctx context.Context, userID uuid.UUID) error

	// Orders
	CreateOrder(ctx context.Context, order *domain.Order) (*domain.Order, error)
	GetOrderByID(ctx context.Context, id uuid.UUID) (*domain.Order, error)
	ListOrdersByUser(ctx context.Context, userID uuid.UUID) ([]domain.Order, error)
	ListOrders(ctx context.Context, filter OrderFilter) ([]domain.Order, error)
	CountOrders(ctx context.Context, filter OrderFilter) (int64, error)
	UpdateOrderStatus(ctx context.Context, id uuid.UUID, status string) (*domain.Order, error)
	MarkPaymentSucceeded(ctx context.Context, paymentIntentID string) (int64, error)
	MarkPaymentFailed(ctx context.Context, paymentIntentID string) (int64, error)
	MarkOrderRefunded(ctx context.Context, paymentIntentID string) (int64, error)
	HasDeliveredOrderWithProduct(ctx context.Context, userID, productID uuid.UUID) (bool, error)
	GetStoreStats(ctx context.Context) (*StoreStats, error)

	// Reviews
	CreateReview(ctx context.Context, review *domain.Review) (*domain.Review, error)
	GetReviewByID(ctx context.Context, id uuid.UUID) (*domain.Review, error)
	ListReviewsByProduct(ctx context.Context, productID uuid.UUID) ([]domain.Review, error)
	UpdateReview(ctx context.Context, id uuid.UUID, rating int32, comment string) (*domain.Review, error)
	DeleteReview(ctx context.Context, id uuid.UUID) error

	// Wishlists
	GetWishlist(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error)
	AddWishlistProduct(ctx context.Context, userID, productID uuid.UUID) error
	RemoveWishlistProduct(ctx context.Context, userID, productID uuid.UUID) error
	ListWishlistProducts(ctx context.Context, userID uuid.UUID) ([]domain.Product, error)

	// Contact queries
	CreateContactQuery(ctx context.Context, q *domain.ContactQuery) (*domain.ContactQuery, error)
	ListContactQueries(ctx context.Context, limit, offset int32) ([]domain.ContactQuery, error)
	UpdateContactQueryStatus(ctx context.Context, id uuid.UUID, status string) (*domain.ContactQuery, error)

	// Content
	GetContent(ctx context.Context, key string) (*domain.Content, error)
	UpsertContent(ctx context.Context, key string, sections map[string]string) (*domain.Content, error)
}

var _ Querier = (*Queries)(nil)
