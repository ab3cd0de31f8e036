package middleware

import (
	"net/http"
	"strings"

	"github.com/purelife/storefront/internal/auth"
	"github.com/purelife/storefront/internal/domain"
)

type contextKey string

// SessionCookieName is the cookie carrying the session token. API
// clients may send the same token as a bearer token instead.
const SessionCookieName = "purelife_session"

// WithUser parses the session token from the cookie or Authorization
// header and attaches the user to the request context. The middleware
// is optional: requests without a valid token continue anonymously.
func WithUser(sessionSecret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := sessionToken(r)
			if token == "" {
				next.ServeHTTP(w, r)
				return
			}

			claims, err := auth.ParseToken(sessionSecret, token)
			if err != nil {
				// Expired or tampered token, continue without user.
				next.ServeHTTP(w, r)
				return
			}

			user := &domain.SessionUser{
				ID:    claims.UserID,
				Email: claims.Email,
				Role:  claims.Role,
			}
			next.ServeHTTP(w, r.WithContext(domain.NewContextWithUser(r.Context(), user)))
		})
	}
}

// RequireAuth ensures the request carries an authenticated user.
func RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if domain.UserFromContext(r.Context()) == nil {
			respondUnauthorized(w, r)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// RequireAdmin ensures the request carries an admin user.
func RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user := domain.UserFromContext(r.Context())
		if user == nil {
			respondUnauthorized(w, r)
			return
		}
		if !user.IsAdmin() {
			respondForbidden(w, r)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func sessionToken(r *http.Request) string {
	if cookie, err := r.Cookie(SessionCookieName); err == nil && cookie.Value != "" {
		return cookie.Value
	}
	if header := r.Header.Get("Authorization"); strings.HasPrefix(header, "Bearer ") {
		return strings.TrimPrefix(header, "Bearer ")
	}
	return ""
}
