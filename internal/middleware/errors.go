package middleware

import (
	"github.com/SscSPs/expense_tracker/internal/dto"
	"github.com/gin-gonic/gin"
)

// abortWithError stops the chain with the standard error body.
func abortWithError(c *gin.Context, status int, code, message string) {
	c.AbortWithStatusJSON(status, dto.ErrorResponse{
		Error:     message,
		Code:      code,
		RequestID: GetRequestIDFromCtx(c.Request.Context()),
	})
}
