// Package bootstrap contains one-time startup tasks.
package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5"

	"github.com/purelife/storefront/internal"
	"github.com/purelife/storefront/internal/auth"
	"github.com/purelife/storefront/internal/domain"
	"github.com/purelife/storefront/internal/repository"
)

// EnsureAdmin creates the configured admin account if it does not
// exist. Safe to run on every startup; an existing account is left
// untouched.
func EnsureAdmin(ctx context.Context, repo repository.Querier, cfg internal.AdminConfig, logger *slog.Logger) error {
	if cfg.Email == "" {
		logger.Debug("no admin account configured, skipping bootstrap")
		return nil
	}
	if cfg.Password == "" {
		return fmt.Errorf("admin bootstrap: PURELIFE_ADMIN_PASSWORD is required when PURELIFE_ADMIN_EMAIL is set")
	}

	_, err := repo.GetUserByEmail(ctx, cfg.Email)
	if err == nil {
		return nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return fmt.Errorf("admin bootstrap: looking up admin account: %w", err)
	}

	hash, err := auth.HashPassword(cfg.Password)
	if err != nil {
		return fmt.Errorf("admin bootstrap: hashing admin password: %w", err)
	}

	name := cfg.Name
	if name == "" {
		name = "Administrator"
	}

	if _, err := repo.CreateUser(ctx, name, cfg.Email, hash, domain.RoleAdmin); err != nil {
		// A concurrent instance may have won the race.
		if repository.IsUniqueViolation(err) {
			return nil
		}
		return fmt.Errorf("admin bootstrap: creating admin account: %w", err)
	}

	logger.Info("created admin account", "email", cfg.Email)
	return nil
}
