package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/SscSPs/expense_tracker/internal/apperrors"
	"github.com/SscSPs/expense_tracker/internal/core/domain"
	"github.com/SscSPs/expense_tracker/internal/dto"
	"github.com/SscSPs/expense_tracker/internal/middleware"
	"github.com/gin-gonic/gin"
)

// respondWithError maps err onto a status and the standard error body.
// Internal failures are logged and reported without their cause.
func respondWithError(c *gin.Context, err error, fallbackMsg string) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	status := apperrors.HTTPStatus(err)

	msg := err.Error()
	switch {
	case status >= http.StatusInternalServerError && !errors.Is(err, apperrors.ErrFxUnavailable):
		logger.Error(fallbackMsg, slog.String("error", err.Error()))
		msg = fallbackMsg
	case errors.Is(err, apperrors.ErrFxUnavailable):
		logger.Warn("Exchange rate unavailable", slog.String("error", err.Error()))
	default:
		logger.Warn(fallbackMsg, slog.String("error", err.Error()), slog.Int("status", status))
	}

	c.JSON(status, dto.ErrorResponse{
		Error:     msg,
		Code:      apperrors.Kind(err),
		RequestID: middleware.GetRequestIDFromCtx(c.Request.Context()),
	})
}

// respondBindError reports a request that failed binding or validation.
func respondBindError(c *gin.Context, err error) {
	middleware.GetLoggerFromCtx(c.Request.Context()).Warn("Invalid request", slog.String("error", err.Error()))
	c.JSON(http.StatusBadRequest, dto.ErrorResponse{
		Error:     "Invalid request: " + err.Error(),
		Code:      apperrors.Kind(apperrors.ErrValidation),
		RequestID: middleware.GetRequestIDFromCtx(c.Request.Context()),
	})
}

// currentUser returns the user resolved by middleware.ResolveUser.
func currentUser(c *gin.Context) (domain.User, bool) {
	user, ok := middleware.GetUserFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, dto.ErrorResponse{
			Error:     "Unauthorized",
			Code:      apperrors.Kind(apperrors.ErrUnauthorized),
			RequestID: middleware.GetRequestIDFromCtx(c.Request.Context()),
		})
		return domain.User{}, false
	}
	return *user, true
}
