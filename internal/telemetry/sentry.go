package telemetry

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/getsentry/sentry-go"
)

// SentryConfig configures error tracking. With Enabled false every capture
// helper is a no-op, so callers never need to guard their calls.
type SentryConfig struct {
	// DSN is the Sentry project DSN; required when Enabled
	DSN string

	// Enabled turns error tracking on
	Enabled bool

	// Environment tags events (dev, prod)
	Environment string

	// Release tags events with the deployed version
	Release string

	// SampleRate is the fraction of errors captured; zero means 1.0
	SampleRate float64

	// TracesSampleRate is the fraction of transactions traced; zero
	// disables tracing
	TracesSampleRate float64

	// Debug enables SDK debug logging
	Debug bool
}

var sentryEnabled bool

// InitSentry initializes the Sentry SDK. The returned cleanup flushes
// buffered events and should run on shutdown.
func InitSentry(cfg SentryConfig, logger *slog.Logger) (func(), error) {
	noop := func() {}

	if !cfg.Enabled {
		logger.Info("Sentry disabled")
		return noop, nil
	}
	if cfg.DSN == "" {
		logger.Warn("Sentry enabled but DSN not configured, disabling error tracking")
		return noop, nil
	}

	sampleRate := cfg.SampleRate
	if sampleRate == 0 {
		sampleRate = 1.0
	}

	err := sentry.Init(sentry.ClientOptions{
		Dsn:              cfg.DSN,
		Environment:      cfg.Environment,
		Release:          cfg.Release,
		SampleRate:       sampleRate,
		TracesSampleRate: cfg.TracesSampleRate,
		Debug:            cfg.Debug,
	})
	if err != nil {
		return nil, fmt.Errorf("initialize sentry: %w", err)
	}

	sentryEnabled = true
	logger.Info("Sentry initialized",
		"environment", cfg.Environment,
		"release", cfg.Release,
		"sample_rate", sampleRate,
	)

	return func() {
		sentry.Flush(2 * time.Second)
	}, nil
}

// IsEnabled reports whether captures are being sent.
func IsEnabled() bool {
	return sentryEnabled
}

// CaptureError reports err with optional extra key/value context. Safe to
// call when Sentry is disabled or err is nil.
func CaptureError(err error, extras ...map[string]interface{}) {
	if !sentryEnabled || err == nil {
		return
	}
	sentry.WithScope(func(scope *sentry.Scope) {
		for _, extra := range extras {
			for k, v := range extra {
				scope.SetExtra(k, v)
			}
		}
		sentry.CaptureException(err)
	})
}

// CaptureErrorFromContext reports err on the hub stored in ctx, picking up
// the request and user scope set by SentryContextMiddleware. Falls back to
// the global hub when the context has none.
func CaptureErrorFromContext(ctx context.Context, err error, extras map[string]interface{}) {
	if !sentryEnabled || err == nil {
		return
	}

	hub := sentry.GetHubFromContext(ctx)
	if hub == nil {
		hub = sentry.CurrentHub()
	}

	hub.WithScope(func(scope *sentry.Scope) {
		for k, v := range extras {
			scope.SetExtra(k, v)
		}
		hub.CaptureException(err)
	})
}

// UserInfo identifies the authenticated user on captured events.
type UserInfo struct {
	ID    string
	Email string
}

// UserContextExtractor pulls the session user out of a request context.
type UserContextExtractor func(ctx context.Context) *UserInfo

// SentryContextMiddleware binds a per-request hub carrying request and
// user scope, so errors captured downstream arrive annotated. Apply after
// the session middleware; userExtractor may be nil.
func SentryContextMiddleware(userExtractor UserContextExtractor) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !sentryEnabled {
				next.ServeHTTP(w, r)
				return
			}

			hub := sentry.GetHubFromContext(r.Context())
			if hub == nil {
				hub = sentry.CurrentHub().Clone()
			}

			hub.ConfigureScope(func(scope *sentry.Scope) {
				scope.SetContext("request", map[string]interface{}{
					"url":    r.URL.String(),
					"method": r.Method,
					"path":   r.URL.Path,
				})
				if userExtractor != nil {
					if user := userExtractor(r.Context()); user != nil {
						scope.SetUser(sentry.User{ID: user.ID, Email: user.Email})
					}
				}
			})

			ctx := sentry.SetHubOnContext(r.Context(), hub)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
