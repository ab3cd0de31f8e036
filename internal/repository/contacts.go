package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/purelife/storefront/internal/domain"
)

const contactColumns = `id, name, email, phone, subject, message, status, created_at`

func scanContactQuery(row interface{ Scan(...any) error }) (*domain.ContactQuery, error) {
	var c domain.ContactQuery
	err := row.Scan(&c.ID, &c.Name, &c.Email, &c.Phone, &c.Subject, &c.Message, &c.Status, &c.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (q *Queries) CreateContactQuery(ctx context.Context, query *domain.ContactQuery) (*domain.ContactQuery, error) {
	row := q.db.QueryRow(ctx, `
		INSERT INTO contact_queries (name, email, phone, subject, message)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING `+contactColumns,
		query.Name, query.Email, query.Phone, query.Subject, query.Message,
	)
	return scanContactQuery(row)
}

func (q *Queries) ListContactQueries(ctx context.Context, limit, offset int32) ([]domain.ContactQuery, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := q.db.Query(ctx,
		`SELECT `+contactColumns+` FROM contact_queries ORDER BY created_at DESC LIMIT $1 OFFSET $2`,
		limit, offset,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list contact queries: %w", err)
	}
	defer rows.Close()

	var queries []domain.ContactQuery
	for rows.Next() {
		c, err := scanContactQuery(rows)
		if err != nil {
			return nil, err
		}
		queries = append(queries, *c)
	}
	return queries, rows.Err()
}

func (q *Queries) UpdateContactQueryStatus(ctx context.Context, id uuid.UUID, status string) (*domain.ContactQuery, error) {
	row := q.db.QueryRow(ctx, `
		UPDATE contact_queries SET status = $2 WHERE id = $1
		RETURNING `+contactColumns,
		id, status,
	)
	return scanContactQuery(row)
}
