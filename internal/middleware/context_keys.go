package middleware

import (
	"context"

	"github.com/hestiabank/property_portal_app/internal/core/domain"
)

// contextKey is a private type for context keys to prevent collisions.
type contextKey string

const (
	loggerCtxKey = contextKey("logger")
	userIDKey    = contextKey("userID")
	userRoleKey  = contextKey("userRole")
)

// GetActorFromContext retrieves the authenticated actor (user ID + role) from
// the request context. It returns false if the auth middleware did not run.
func GetActorFromContext(ctx context.Context) (domain.Actor, bool) {
	userID, ok := ctx.Value(userIDKey).(string)
	if !ok || userID == "" {
		return domain.Actor{}, false
	}
	role, ok := ctx.Value(userRoleKey).(domain.UserRole)
	if !ok {
		return domain.Actor{}, false
	}
	return domain.Actor{UserID: userID, Role: role}, true
}
