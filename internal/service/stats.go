package service

import (
	"context"

	"github.com/purelife/storefront/internal/domain"
	"github.com/purelife/storefront/internal/repository"
)

// StatsService provides the admin dashboard aggregates.
type StatsService interface {
	GetStoreStats(ctx context.Context) (*repository.StoreStats, error)
}

type statsService struct {
	repo repository.Querier
}

// NewStatsService creates a new StatsService instance.
func NewStatsService(repo repository.Querier) StatsService {
	return &statsService{repo: repo}
}

func (s *statsService) GetStoreStats(ctx context.Context) (*repository.StoreStats, error) {
	const op = "StatsService.GetStoreStats"

	stats, err := s.repo.GetStoreStats(ctx)
	if err != nil {
		return nil, domain.Internal(err, op, "failed to compute store stats")
	}
	return stats, nil
}
