// Package security provides security-related utilities including actor context management.
package security

import "context"

type actorIDKey struct{}

// WithActorID adds the acting user's numeric id to context.
// Used by middleware to propagate the authenticated user through request chain.
func WithActorID(ctx context.Context, actorID int64) context.Context {
	return context.WithValue(ctx, actorIDKey{}, actorID)
}

// GetActorID retrieves the acting user's id from context.
// Returns 0 if not found.
//
// Usage in the remote layer:
//
//	if actor := security.GetActorID(ctx); actor != 0 {
//	    payload.UsuarioCreacion = actor
//	}
func GetActorID(ctx context.Context) int64 {
	if id, ok := ctx.Value(actorIDKey{}).(int64); ok {
		return id
	}
	return 0
}
