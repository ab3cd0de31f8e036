package middleware

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/purelife/storefront/internal/domain"
)

const (
	// LoggerContextKey is the context key for the request-scoped logger
	LoggerContextKey contextKey = "logger"
)

// WithRequestLogger stores a request-scoped logger in the context, tagged
// with method, path, request ID, and the user ID when the session is
// authenticated. Place it after RequestID and WithUser.
func WithRequestLogger(baseLogger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			l := baseLogger.With(
				slog.String("method", r.Method),
				slog.String("path", r.URL.Path),
			)
			if id := GetRequestID(r.Context()); id != "" {
				l = l.With(slog.String("request_id", id))
			}
			if user := domain.UserFromContext(r.Context()); user != nil {
				l = l.With(slog.String("user_id", user.ID.String()))
			}

			ctx := context.WithValue(r.Context(), LoggerContextKey, l)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetLogger returns the request-scoped logger, or slog.Default when the
// middleware did not run.
func GetLogger(ctx context.Context) *slog.Logger {
	if l, ok := ctx.Value(LoggerContextKey).(*slog.Logger); ok {
		return l
	}
	return slog.Default()
}
