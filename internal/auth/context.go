package auth

import (
	"context"

	"github.com/lifelog/lifelog/internal/model"
)

// contextKey is a custom type for context keys to avoid collisions.
type contextKey string

const authContextKey contextKey = "auth_context"

// ContextWithAuth adds the caller identity to the context.
func ContextWithAuth(ctx context.Context, ac *model.AuthContext) context.Context {
	return context.WithValue(ctx, authContextKey, ac)
}

// FromContext retrieves the caller identity from the context.
// Returns nil if not present.
func FromContext(ctx context.Context) *model.AuthContext {
	ac, ok := ctx.Value(authContextKey).(*model.AuthContext)
	if !ok {
		return nil
	}
	return ac
}

// MustFromContext retrieves the caller identity from the context.
// Panics if not present (use only behind the auth middleware).
func MustFromContext(ctx context.Context) *model.AuthContext {
	ac := FromContext(ctx)
	if ac == nil {
		panic("auth context not found - ensure auth middleware is applied")
	}
	return ac
}

// UserIDFromContext returns the authenticated user ID, or "" when the
// request is unauthenticated.
func UserIDFromContext(ctx context.Context) string {
	ac := FromContext(ctx)
	if ac == nil {
		return ""
	}
	return ac.UserID
}
