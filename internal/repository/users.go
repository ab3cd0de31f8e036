package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/purelife/storefront/internal/domain"
)

const userColumns = `id, name, email, password_hash, role, billing_info, created_at, updated_at`

func scanUser(row interface{ Scan(...any) error }) (*domain.User, error) {
	var u domain.User
	var billing []byte
	if err := row.Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash, &u.Role, &billing, &u.CreatedAt, &u.UpdatedAt); err != nil {
		return nil, err
	}
	if len(billing) > 0 {
		u.BillingInfo = &domain.BillingInfo{}
		if err := unmarshalJSON(billing, u.BillingInfo); err != nil {
			return nil, err
		}
	}
	return &u, nil
}

// CreateUser inserts a new account. The caller hashes the password.
func (q *Queries) CreateUser(ctx context.Context, name, email, passwordHash, role string) (*domain.User, error) {
	row := q.db.QueryRow(ctx, `
		INSERT INTO users (name, email, password_hash, role)
		VALUES ($1, $2, $3, $4)
		RETURNING `+userColumns,
		name, email, passwordHash, role,
	)
	return scanUser(row)
}

func (q *Queries) GetUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	row := q.db.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE email = $1`, email)
	return scanUser(row)
}

func (q *Queries) GetUserByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	row := q.db.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id)
	return scanUser(row)
}

// UpdateUserProfile updates the customer-editable fields.
func (q *Queries) UpdateUserProfile(ctx context.Context, params UpdateUserProfileParams) (*domain.User, error) {
	var billing []byte
	if params.BillingInfo != nil {
		var err error
		billing, err = marshalJSON(params.BillingInfo)
		if err != nil {
			return nil, err
		}
	}
	row := q.db.QueryRow(ctx, `
		UPDATE users
		SET name = $2, billing_info = $3, updated_at = now()
		WHERE id = $1
		RETURNING `+userColumns,
		params.ID, params.Name, billing,
	)
	return scanUser(row)
}

func (q *Queries) ListUsers(ctx context.Context, limit, offset int32) ([]domain.User, error) {
	rows, err := q.db.Query(ctx, `
		SELECT `+userColumns+` FROM users
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2`,
		limit, offset,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	defer rows.Close()

	var users []domain.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, *u)
	}
	return users, rows.Err()
}

func (q *Queries) CountUsers(ctx context.Context) (int64, error) {
	var n int64
	err := q.db.QueryRow(ctx, `SELECT COUNT(*) FROM users`).Scan(&n)
	return n, err
}
