package middleware

import (
	"log/slog"
	"net/http"

	"github.com/SscSPs/expense_tracker/internal/apperrors"
	portssvc "github.com/SscSPs/expense_tracker/internal/core/ports/services"
	"github.com/gin-gonic/gin"
)

// ResolveUser maps the token subject onto a stored user, creating it on first
// sight. It must run after AuthMiddleware.
func ResolveUser(userSvc portssvc.UserWriterSvc) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		logger := GetLoggerFromCtx(ctx)

		claims, ok := GetClaimsFromContext(c)
		if !ok {
			abortWithError(c, http.StatusUnauthorized, codeUnauthorized, "Unauthorized")
			return
		}

		user, err := userSvc.EnsureUser(ctx, claims.Subject, optional(claims.Email), optional(claims.Name))
		if err != nil {
			logger.Error("Failed to resolve user", slog.String("error", err.Error()))
			abortWithError(c, apperrors.HTTPStatus(err), apperrors.Kind(err), "Failed to resolve user")
			return
		}

		ctx = WithUser(ctx, user)
		ctx = WithLogger(ctx, logger.With(slog.String("user_id", user.UserID)))
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
