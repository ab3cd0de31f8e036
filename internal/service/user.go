// Package service implements the business logic behind the storefront
// and admin APIs. Services depend on the repository.Querier interface
// and on provider interfaces (billing, email, enhancement) so tests can
// substitute mocks.
package service

import (
	"context"
	"errors"
	"net/mail"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/purelife/storefront/internal/auth"
	"github.com/purelife/storefront/internal/domain"
	"github.com/purelife/storefront/internal/repository"
	"github.com/purelife/storefront/internal/telemetry"
)

// UserService provides account registration, login, and profile management.
type UserService interface {
	Register(ctx context.Context, name, email, password string) (*domain.User, string, error)
	Login(ctx context.Context, email, password string) (*domain.User, string, error)
	GetProfile(ctx context.Context, userID uuid.UUID) (*domain.User, error)
	UpdateProfile(ctx context.Context, userID uuid.UUID, name string, billing *domain.BillingInfo) (*domain.User, error)
	ListCustomers(ctx context.Context, limit, offset int32) ([]domain.User, int64, error)
}

type userService struct {
	repo          repository.Querier
	sessionSecret string
}

// NewUserService creates a new UserService instance.
func NewUserService(repo repository.Querier, sessionSecret string) UserService {
	return &userService{
		repo:          repo,
		sessionSecret: sessionSecret,
	}
}

// Register creates a user account and returns it with a session token.
func (s *userService) Register(ctx context.Context, name, email, password string) (*domain.User, string, error) {
	const op = "UserService.Register"

	name = strings.TrimSpace(name)
	email = normalizeEmail(email)

	var verr error
	if name == "" {
		verr = domain.AddFieldError(verr, "name", "name is required")
	}
	if _, err := mail.ParseAddress(email); err != nil {
		verr = domain.AddFieldError(verr, "email", "a valid email is required")
	}
	if verr != nil {
		if ve, ok := verr.(*domain.ValidationError); ok {
			ve.Op = op
		}
		return nil, "", verr
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		if errors.Is(err, auth.ErrPasswordTooShort) {
			return nil, "", domain.NewValidationError(op, "password", "password must be at least 8 characters")
		}
		return nil, "", domain.Internal(err, op, "failed to hash password")
	}

	user, err := s.repo.CreateUser(ctx, name, email, hash, domain.RoleUser)
	if err != nil {
		if repository.IsUniqueViolation(err) {
			return nil, "", domain.Conflict(op, "An account with this email already exists")
		}
		return nil, "", domain.Internal(err, op, "failed to create user")
	}

	token, err := auth.GenerateToken(s.sessionSecret, user.ID, user.Email, user.Role)
	if err != nil {
		return nil, "", domain.Internal(err, op, "failed to issue session token")
	}

	if telemetry.Business != nil {
		telemetry.Business.Signups.Inc()
	}
	return user, token, nil
}

// Login verifies credentials and returns the user with a session token.
// Unknown email and wrong password return the same error so the endpoint
// does not leak which accounts exist.
func (s *userService) Login(ctx context.Context, email, password string) (*domain.User, string, error) {
	const op = "UserService.Login"

	user, err := s.repo.GetUserByEmail(ctx, normalizeEmail(email))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			if telemetry.Business != nil {
				telemetry.Business.LoginFailed.Inc()
			}
			return nil, "", domain.Unauthorized(op, "Invalid email or password")
		}
		return nil, "", domain.Internal(err, op, "failed to look up user")
	}

	if err := auth.VerifyPassword(password, user.PasswordHash); err != nil {
		if telemetry.Business != nil {
			telemetry.Business.LoginFailed.Inc()
		}
		return nil, "", domain.Unauthorized(op, "Invalid email or password")
	}

	token, err := auth.GenerateToken(s.sessionSecret, user.ID, user.Email, user.Role)
	if err != nil {
		return nil, "", domain.Internal(err, op, "failed to issue session token")
	}

	if telemetry.Business != nil {
		telemetry.Business.Logins.Inc()
	}
	return user, token, nil
}

// GetProfile returns the user record for the given ID.
func (s *userService) GetProfile(ctx context.Context, userID uuid.UUID) (*domain.User, error) {
	const op = "UserService.GetProfile"

	user, err := s.repo.GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.NotFound(op, "user", userID.String())
		}
		return nil, domain.Internal(err, op, "failed to get user")
	}
	return user, nil
}

// UpdateProfile updates the user's display name and saved billing info.
func (s *userService) UpdateProfile(ctx context.Context, userID uuid.UUID, name string, billing *domain.BillingInfo) (*domain.User, error) {
	const op = "UserService.UpdateProfile"

	name = strings.TrimSpace(name)
	if name == "" {
		return nil, domain.NewValidationError(op, "name", "name is required")
	}

	user, err := s.repo.UpdateUserProfile(ctx, repository.UpdateUserProfileParams{
		ID:          userID,
		Name:        name,
		BillingInfo: billing,
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.NotFound(op, "user", userID.String())
		}
		return nil, domain.Internal(err, op, "failed to update profile")
	}
	return user, nil
}

// ListCustomers returns a page of user accounts with the total count.
func (s *userService) ListCustomers(ctx context.Context, limit, offset int32) ([]domain.User, int64, error) {
	const op = "UserService.ListCustomers"

	users, err := s.repo.ListUsers(ctx, limit, offset)
	if err != nil {
		return nil, 0, domain.Internal(err, op, "failed to list users")
	}
	total, err := s.repo.CountUsers(ctx)
	if err != nil {
		return nil, 0, domain.Internal(err, op, "failed to count users")
	}
	return users, total, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
