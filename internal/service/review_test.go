package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/purelife/storefront/internal/domain"
)

func sessionUser(role string) *domain.SessionUser {
	return &domain.SessionUser{ID: uuid.New(), Email: "user@example.com", Role: role}
}

func TestCreateReviewRequiresDeliveredOrder(t *testing.T) {
	productID := uuid.New()
	repo := &mockQuerier{
		GetProductByIDFunc: func(ctx context.Context, id uuid.UUID) (*domain.Product, error) {
			return activeProduct(productID, 5), nil
		},
		HasDeliveredOrderWithProductFunc: func(ctx context.Context, userID, pid uuid.UUID) (bool, error) {
			return false, nil
		},
	}
	svc := NewReviewService(repo)

	_, err := svc.CreateReview(context.Background(), sessionUser(domain.RoleUser), "Jordan", productID, 5, "Great filter")
	require.Error(t, err)
	assert.Equal(t, domain.EFORBIDDEN, domain.ErrorCode(err))
}

func TestCreateReviewSucceedsAndRefreshesRating(t *testing.T) {
	productID := uuid.New()
	refreshed := false

	repo := &mockQuerier{
		GetProductByIDFunc: func(ctx context.Context, id uuid.UUID) (*domain.Product, error) {
			return activeProduct(productID, 5), nil
		},
		HasDeliveredOrderWithProductFunc: func(ctx context.Context, userID, pid uuid.UUID) (bool, error) {
			return true, nil
		},
		CreateReviewFunc: func(ctx context.Context, review *domain.Review) (*domain.Review, error) {
			out := *review
			out.ID = uuid.New()
			return &out, nil
		},
		RefreshProductRatingFunc: func(ctx context.Context, pid uuid.UUID) error {
			refreshed = true
			return nil
		},
	}
	svc := NewReviewService(repo)

	review, err := svc.CreateReview(context.Background(), sessionUser(domain.RoleUser), "Jordan", productID, 4, "Solid unit")
	require.NoError(t, err)
	assert.Equal(t, int32(4), review.Rating)
	assert.True(t, refreshed, "denormalized rating should be recomputed")
}

func TestCreateReviewDuplicateIsConflict(t *testing.T) {
	productID := uuid.New()
	repo := &mockQuerier{
		GetProductByIDFunc: func(ctx context.Context, id uuid.UUID) (*domain.Product, error) {
			return activeProduct(productID, 5), nil
		},
		HasDeliveredOrderWithProductFunc: func(ctx context.Context, userID, pid uuid.UUID) (bool, error) {
			return true, nil
		},
		CreateReviewFunc: func(ctx context.Context, review *domain.Review) (*domain.Review, error) {
			return nil, &pgconn.PgError{Code: "23505"}
		},
	}
	svc := NewReviewService(repo)

	_, err := svc.CreateReview(context.Background(), sessionUser(domain.RoleUser), "Jordan", productID, 3, "Again")
	require.Error(t, err)
	assert.Equal(t, domain.ECONFLICT, domain.ErrorCode(err))
}

func TestCreateReviewValidatesRating(t *testing.T) {
	svc := NewReviewService(&mockQuerier{})

	_, err := svc.CreateReview(context.Background(), sessionUser(domain.RoleUser), "Jordan", uuid.New(), 6, "Too good")
	require.Error(t, err)
	assert.True(t, domain.IsValidationError(err))
	assert.Contains(t, domain.GetValidationFields(err), "rating")
}

func TestUpdateReviewOnlyAuthor(t *testing.T) {
	author := sessionUser(domain.RoleUser)
	reviewID := uuid.New()

	repo := &mockQuerier{
		GetReviewByIDFunc: func(ctx context.Context, id uuid.UUID) (*domain.Review, error) {
			return &domain.Review{ID: reviewID, UserID: author.ID, ProductID: uuid.New()}, nil
		},
	}
	svc := NewReviewService(repo)

	_, err := svc.UpdateReview(context.Background(), sessionUser(domain.RoleUser), reviewID, 2, "Edited")
	require.Error(t, err)
	assert.Equal(t, domain.EFORBIDDEN, domain.ErrorCode(err))
}

func TestDeleteReviewAdminOverride(t *testing.T) {
	reviewID := uuid.New()
	deleted := false

	repo := &mockQuerier{
		GetReviewByIDFunc: func(ctx context.Context, id uuid.UUID) (*domain.Review, error) {
			return &domain.Review{ID: reviewID, UserID: uuid.New(), ProductID: uuid.New()}, nil
		},
		DeleteReviewFunc: func(ctx context.Context, id uuid.UUID) error {
			deleted = true
			return nil
		},
	}
	svc := NewReviewService(repo)

	err := svc.DeleteReview(context.Background(), sessionUser(domain.RoleAdmin), reviewID)
	require.NoError(t, err)
	assert.True(t, deleted)
}
