package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/hestiabank/property_portal_app/internal/core/domain"
)

// RequireRole gates a route group behind the portal role hierarchy
// (user < employee < admin). It must run after AuthMiddleware.
func RequireRole(required domain.UserRole) gin.HandlerFunc {
	return func(c *gin.Context) {
		logger := GetLoggerFromCtx(c.Request.Context())

		actor, ok := GetActorFromContext(c.Request.Context())
		if !ok {
			logger.Error("Role gate reached without an authenticated actor")
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}

		if !actor.Role.AtLeast(required) {
			logger.Warn("Insufficient role for route", "role", string(actor.Role), "required", string(required))
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Insufficient privileges"})
			return
		}

		c.Next()
	}
}
