package repository

import (
	"context"

	"github.com/purelife/storefront/internal/domain"
)

func (q *Queries) GetContent(ctx context.Context, key string) (*domain.Content, error) {
	var c domain.Content
	var sections []byte
	err := q.db.QueryRow(ctx,
		`SELECT key, sections, updated_at FROM content WHERE key = $1`,
		key,
	).Scan(&c.Key, &sections, &c.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if err := unmarshalJSON(sections, &c.Sections); err != nil {
		return nil, err
	}
	return &c, nil
}

// UpsertContent writes a content block. Used both by the admin editor and
// to seed defaults on first read.
func (q *Queries) UpsertContent(ctx context.Context, key string, sections map[string]string) (*domain.Content, error) {
	encoded, err := marshalJSON(sections)
	if err != nil {
		return nil, err
	}

	var c domain.Content
	var stored []byte
	err = q.db.QueryRow(ctx, `
		INSERT INTO content (key, sections, updated_at)
		VALUES ($1, $2, now())
		ON CONFLICT (key) DO UPDATE SET sections = EXCLUDED.sections, updated_at = now()
		RETURNING key, sections, updated_at`,
		key, encoded,
	).Scan(&c.Key, &stored, &c.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if err := unmarshalJSON(stored, &c.Sections); err != nil {
		return nil, err
	}
	return &c, nil
}
