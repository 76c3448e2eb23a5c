package middleware

import (
	"github.com/gin-gonic/gin"

	"compras/internal/core/security"
)

// UserContext extracts the actor id from gin context and adds it to request
// context.
//
// This middleware must run AFTER Auth middleware, which sets "actor_id" in
// gin context. The actor id is then available to the remote store layer via
// security.GetActorID(ctx) for audit stamping on writes.
func UserContext() gin.HandlerFunc {
	return func(c *gin.Context) {
		actorID, exists := c.Get("actor_id")
		if exists {
			if id, ok := actorID.(int64); ok && id != 0 {
				ctx := security.WithActorID(c.Request.Context(), id)
				c.Request = c.Request.WithContext(ctx)
			}
		}
		c.Next()
	}
}
