package middleware

import (
	"context"

	"github.com/SscSPs/expense_tracker/internal/core/domain"
	"github.com/gin-gonic/gin"
)

const (
	// subjectKey holds the identity provider subject of the bearer token.
	subjectKey = contextKey("subject")
	claimsKey  = contextKey("claims")
	userKey    = contextKey("user")
)

// GetSubjectFromContext retrieves the authenticated token subject.
func GetSubjectFromContext(c *gin.Context) (string, bool) {
	subject, ok := c.Request.Context().Value(subjectKey).(string)
	return subject, ok && subject != ""
}

// GetClaimsFromContext retrieves the validated token claims.
func GetClaimsFromContext(c *gin.Context) (*Claims, bool) {
	claims, ok := c.Request.Context().Value(claimsKey).(*Claims)
	return claims, ok && claims != nil
}

// WithUser returns a copy of ctx carrying the resolved user.
func WithUser(ctx context.Context, user *domain.User) context.Context {
	return context.WithValue(ctx, userKey, user)
}

// GetUserFromContext retrieves the user resolved by ResolveUser.
func GetUserFromContext(c *gin.Context) (*domain.User, bool) {
	user, ok := c.Request.Context().Value(userKey).(*domain.User)
	return user, ok && user != nil
}

// GetUserIDFromContext returns the internal id of the resolved user, or the
// token subject when no user has been resolved yet.
func GetUserIDFromContext(c *gin.Context) (string, bool) {
	if user, ok := GetUserFromContext(c); ok {
		return user.UserID, true
	}
	return GetSubjectFromContext(c)
}
