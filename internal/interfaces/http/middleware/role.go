package middleware

import (
	"slices"

	"github.com/gin-gonic/gin"
	"github.com/pos/backend/internal/domain/identity"
	"github.com/pos/backend/internal/interfaces/http/dto"
)

// RequireRole lets a request through only when the actor has one of roles.
// It must run after JWTAuthMiddleware.
func RequireRole(roles ...identity.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		actor := GetActor(c)
		if err := actor.RequireAuthenticated(); err != nil {
			abortWithError(c, dto.ErrCodeUnauthorized, "Authentication required")
			return
		}
		if !slices.Contains(roles, actor.Role) {
			abortWithError(c, dto.ErrCodeForbidden, "Your role does not allow this operation")
			return
		}
		c.Next()
	}
}

// RequireAdmin is RequireRole(identity.RoleAdmin)
func RequireAdmin() gin.HandlerFunc {
	return RequireRole(identity.RoleAdmin)
}
