// Package domain provides core business types and context helpers for the
// PureLife storefront.
//
// Context helpers centralize request-scoped data access so handlers and
// services share one way of reading the authenticated user and request ID.
package domain

import (
	"context"

	"github.com/google/uuid"
)

// contextKey is an unexported type for context keys to prevent collisions.
type contextKey int

const (
	// userContextKey stores user information in context.
	userContextKey contextKey = iota

	// requestIDContextKey stores the request ID for tracing.
	requestIDContextKey
)

// Roles assignable to a user account.
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// SessionUser represents the authenticated user stored in context.
// This is a minimal struct decoded from the session token - the full user
// record can be fetched from the database if needed.
type SessionUser struct {
	ID    uuid.UUID
	Email string
	Role  string
}

// IsAdmin reports whether the session user carries the admin role.
func (u *SessionUser) IsAdmin() bool {
	return u != nil && u.Role == RoleAdmin
}

// --- User Context Helpers ---

// NewContextWithUser returns a new context with the user attached.
func NewContextWithUser(ctx context.Context, user *SessionUser) context.Context {
	return context.WithValue(ctx, userContextKey, user)
}

// UserFromContext retrieves the user from context.
// Returns nil if no user is present.
func UserFromContext(ctx context.Context) *SessionUser {
	user, _ := ctx.Value(userContextKey).(*SessionUser)
	return user
}

// UserIDFromContext retrieves the user ID from context.
// Returns uuid.Nil if no user is present.
func UserIDFromContext(ctx context.Context) uuid.UUID {
	if user := UserFromContext(ctx); user != nil {
		return user.ID
	}
	return uuid.Nil
}

// RequireUserID retrieves the user ID from context, panicking if not present.
// Use this in service layers where an authenticated user is required; the
// panic will be caught by the recovery middleware in HTTP handlers.
func RequireUserID(ctx context.Context) uuid.UUID {
	id := UserIDFromContext(ctx)
	if id == uuid.Nil {
		panic("user_id required in context but not found")
	}
	return id
}

// MustUser retrieves the user from context, panicking if not present.
func MustUser(ctx context.Context) *SessionUser {
	user := UserFromContext(ctx)
	if user == nil {
		panic("user required in context but not found")
	}
	return user
}

// IsAuthenticated returns true if there is a user in context.
func IsAuthenticated(ctx context.Context) bool {
	return UserFromContext(ctx) != nil
}

// --- Request ID Context Helpers ---

// NewContextWithRequestID returns a new context with the request ID attached.
func NewContextWithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, requestIDContextKey, requestID)
}

// RequestIDFromContext retrieves the request ID from context.
// Returns empty string if no request ID is present.
func RequestIDFromContext(ctx context.Context) string {
	requestID, _ := ctx.Value(requestIDContextKey).(string)
	return requestID
}
