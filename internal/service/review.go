package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/purelife/storefront/internal/domain"
	"github.com/purelife/storefront/internal/repository"
	"github.com/purelife/storefront/internal/telemetry"
)

// ReviewService provides product reviews. Creation is gated on a
// delivered order containing the product, and each user may review a
// product once.
type ReviewService interface {
	CreateReview(ctx context.Context, user *domain.SessionUser, userName string, productID uuid.UUID, rating int32, comment string) (*domain.Review, error)
	ListByProduct(ctx context.Context, productID uuid.UUID) ([]domain.Review, error)
	UpdateReview(ctx context.Context, user *domain.SessionUser, reviewID uuid.UUID, rating int32, comment string) (*domain.Review, error)
	DeleteReview(ctx context.Context, user *domain.SessionUser, reviewID uuid.UUID) error
}

type reviewService struct {
	repo repository.Querier
}

// NewReviewService creates a new ReviewService instance.
func NewReviewService(repo repository.Querier) ReviewService {
	return &reviewService{repo: repo}
}

func (s *reviewService) CreateReview(ctx context.Context, user *domain.SessionUser, userName string, productID uuid.UUID, rating int32, comment string) (*domain.Review, error) {
	const op = "ReviewService.CreateReview"

	review := &domain.Review{
		ProductID: productID,
		UserID:    user.ID,
		UserName:  userName,
		Rating:    rating,
		Comment:   comment,
	}
	if err := review.Validate(op); err != nil {
		return nil, err
	}

	if _, err := s.repo.GetProductByID(ctx, productID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.NotFound(op, "product", productID.String())
		}
		return nil, domain.Internal(err, op, "failed to get product")
	}

	delivered, err := s.repo.HasDeliveredOrderWithProduct(ctx, user.ID, productID)
	if err != nil {
		return nil, domain.Internal(err, op, "failed to check purchase history")
	}
	if !delivered {
		if telemetry.Business != nil {
			telemetry.Business.ReviewsRejected.WithLabelValues("not_delivered").Inc()
		}
		return nil, domain.Forbidden(op, "Reviews are limited to products from your delivered orders")
	}

	created, err := s.repo.CreateReview(ctx, review)
	if err != nil {
		if repository.IsUniqueViolation(err) {
			if telemetry.Business != nil {
				telemetry.Business.ReviewsRejected.WithLabelValues("duplicate").Inc()
			}
			return nil, domain.Conflict(op, "You have already reviewed this product")
		}
		return nil, domain.Internal(err, op, "failed to create review")
	}

	if err := s.repo.RefreshProductRating(ctx, productID); err != nil {
		return nil, domain.Internal(err, op, "failed to refresh product rating")
	}

	if telemetry.Business != nil {
		telemetry.Business.ReviewsCreated.Inc()
	}
	return created, nil
}

func (s *reviewService) ListByProduct(ctx context.Context, productID uuid.UUID) ([]domain.Review, error) {
	const op = "ReviewService.ListByProduct"

	reviews, err := s.repo.ListReviewsByProduct(ctx, productID)
	if err != nil {
		return nil, domain.Internal(err, op, "failed to list reviews")
	}
	return reviews, nil
}

// UpdateReview edits a review's rating and comment. Only the author may
// edit; admins moderate via delete, not edit.
func (s *reviewService) UpdateReview(ctx context.Context, user *domain.SessionUser, reviewID uuid.UUID, rating int32, comment string) (*domain.Review, error) {
	const op = "ReviewService.UpdateReview"

	check := &domain.Review{Rating: rating, Comment: comment}
	if err := check.Validate(op); err != nil {
		return nil, err
	}

	review, err := s.repo.GetReviewByID(ctx, reviewID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.NotFound(op, "review", reviewID.String())
		}
		return nil, domain.Internal(err, op, "failed to get review")
	}
	if review.UserID != user.ID {
		return nil, domain.Forbidden(op, "You can only edit your own reviews")
	}

	updated, err := s.repo.UpdateReview(ctx, reviewID, rating, comment)
	if err != nil {
		return nil, domain.Internal(err, op, "failed to update review")
	}
	if err := s.repo.RefreshProductRating(ctx, review.ProductID); err != nil {
		return nil, domain.Internal(err, op, "failed to refresh product rating")
	}
	return updated, nil
}

// DeleteReview removes a review. The author or an admin may delete.
func (s *reviewService) DeleteReview(ctx context.Context, user *domain.SessionUser, reviewID uuid.UUID) error {
	const op = "ReviewService.DeleteReview"

	review, err := s.repo.GetReviewByID(ctx, reviewID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.NotFound(op, "review", reviewID.String())
		}
		return domain.Internal(err, op, "failed to get review")
	}
	if review.UserID != user.ID && !user.IsAdmin() {
		return domain.Forbidden(op, "You can only delete your own reviews")
	}

	if err := s.repo.DeleteReview(ctx, reviewID); err != nil {
		return domain.Internal(err, op, "failed to delete review")
	}
	if err := s.repo.RefreshProductRating(ctx, review.ProductID); err != nil {
		return domain.Internal(err, op, "failed to refresh product rating")
	}
	return nil
}
