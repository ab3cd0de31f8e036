package service

import (
	"context"
	"strings"

	"github.com/purelife/storefront/internal/domain"
	"github.com/purelife/storefront/internal/enhance"
	"github.com/purelife/storefront/internal/ratelimit"
	"github.com/purelife/storefront/internal/telemetry"
)

// EnhanceService generates AI product copy behind a per-client rate limit.
type EnhanceService interface {
	// Enhance generates copy for the request. clientKey identifies the
	// caller for rate limiting, usually the client IP.
	Enhance(ctx context.Context, clientKey string, req enhance.Request) (string, error)
}

type enhanceService struct {
	provider enhance.Provider
	limiter  ratelimit.Limiter
}

// NewEnhanceService creates a new EnhanceService instance.
func NewEnhanceService(provider enhance.Provider, limiter ratelimit.Limiter) EnhanceService {
	return &enhanceService{
		provider: provider,
		limiter:  limiter,
	}
}

func (s *enhanceService) Enhance(ctx context.Context, clientKey string, req enhance.Request) (string, error) {
	const op = "EnhanceService.Enhance"

	if req.Kind == "" {
		req.Kind = enhance.KindDescription
	}
	if !enhance.ValidKind(req.Kind) {
		return "", domain.NewValidationError(op, "kind", "kind must be description or keywords")
	}
	if strings.TrimSpace(req.ProductName) == "" {
		return "", domain.NewValidationError(op, "productName", "product name is required")
	}

	if s.limiter != nil {
		ok, err := s.limiter.Allow(ctx, clientKey)
		if err != nil {
			return "", domain.Internal(err, op, "rate limiter unavailable")
		}
		if !ok {
			if telemetry.Business != nil {
				telemetry.Business.RateLimitExceeded.WithLabelValues("enhance").Inc()
			}
			return "", domain.Errorf(domain.ERATELIMIT, op, "Too many enhancement requests, try again in a minute")
		}
	}

	text, err := s.provider.Enhance(ctx, req)
	if err != nil {
		return "", domain.Internal(err, op, "enhancement provider failed")
	}

	if telemetry.Business != nil {
		telemetry.Business.EnhancementRequests.WithLabelValues(string(req.Kind)).Inc()
	}
	return text, nil
}
