package middleware

import (
	"context"
	"net/http"

	"github.com/google/uuid"
)

const (
	// RequestIDHeader carries the request ID on both request and response
	RequestIDHeader = "X-Request-ID"

	// RequestIDContextKey is the context key for the request ID
	RequestIDContextKey contextKey = "request_id"
)

// RequestID tags every request with an ID for log correlation. An incoming
// X-Request-ID (load balancer, upstream service) is kept; otherwise a fresh
// UUID is generated. The ID is echoed on the response and stored in the
// request context.
func RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(RequestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}

		w.Header().Set(RequestIDHeader, id)

		ctx := context.WithValue(r.Context(), RequestIDContextKey, id)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// GetRequestID returns the request ID set by RequestID, or an empty string.
func GetRequestID(ctx context.Context) string {
	if id, ok := ctx.Value(RequestIDContextKey).(string); ok {
		return id
	}
	return ""
}
