package service

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/purelife/storefront/internal/domain"
	"github.com/purelife/storefront/internal/repository"
)

// ContentService serves and edits keyed site copy blocks.
type ContentService interface {
	// GetContent returns the content block for key. A missing block with
	// registered defaults is seeded on first read.
	GetContent(ctx context.Context, key string) (*domain.Content, error)
	UpdateContent(ctx context.Context, key string, sections map[string]string) (*domain.Content, error)
}

type contentService struct {
	repo repository.Querier
}

// NewContentService creates a new ContentService instance.
func NewContentService(repo repository.Querier) ContentService {
	return &contentService{repo: repo}
}

func (s *contentService) GetContent(ctx context.Context, key string) (*domain.Content, error) {
	const op = "ContentService.GetContent"

	content, err := s.repo.GetContent(ctx, key)
	if err == nil {
		return content, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.Internal(err, op, "failed to get content")
	}

	defaults := domain.DefaultContent(key)
	if defaults == nil {
		return nil, domain.NotFound(op, "content", key)
	}

	seeded, err := s.repo.UpsertContent(ctx, key, defaults.Sections)
	if err != nil {
		return nil, domain.Internal(err, op, "failed to seed default content")
	}
	return seeded, nil
}

func (s *contentService) UpdateContent(ctx context.Context, key string, sections map[string]string) (*domain.Content, error) {
	const op = "ContentService.UpdateContent"

	if key == "" {
		return nil, domain.NewValidationError(op, "key", "key is required")
	}
	if len(sections) == 0 {
		return nil, domain.NewValidationError(op, "sections", "at least one section is required")
	}

	updated, err := s.repo.UpsertContent(ctx, key, sections)
	if err != nil {
		return nil, domain.Internal(err, op, "failed to update content")
	}
	return updated, nil
}
