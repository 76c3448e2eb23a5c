// Package context provides request-scoped values extraction.
package context

import (
	"context"
)

// UserContext contains authenticated user information.
type UserContext struct {
	// ActorID is the numeric user id on the security service.
	// It is stamped into usuario_creacion / usuario_modificacion on every
	// mutation sent to the procurement store.
	ActorID  int64
	Username string
	Role     string
	RoleID   string
}

type userContextKey struct{}

// WithUser adds UserContext to context.
func WithUser(ctx context.Context, user *UserContext) context.Context {
	return context.WithValue(ctx, userContextKey{}, user)
}

// GetUser returns UserContext from context.
func GetUser(ctx context.Context) *UserContext {
	if v, ok := ctx.Value(userContextKey{}).(*UserContext); ok {
		return v
	}
	return nil
}

// GetActorID returns the acting user's numeric id from context, or 0.
func GetActorID(ctx context.Context) int64 {
	if u := GetUser(ctx); u != nil {
		return u.ActorID
	}
	return 0
}

// GetUsername returns the user name from context or empty string.
func GetUsername(ctx context.Context) string {
	if u := GetUser(ctx); u != nil {
		return u.Username
	}
	return ""
}

// HasRole checks if user has specific role.
func HasRole(ctx context.Context, role string) bool {
	u := GetUser(ctx)
	return u != nil && u.Role == role
}
