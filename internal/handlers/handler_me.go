package handlers

import (
	"net/http"

	"github.com/SscSPs/expense_tracker/internal/dto"
	"github.com/gin-gonic/gin"
)

// registerMeRoutes exposes the resolved caller profile.
func registerMeRoutes(rg *gin.RouterGroup) {
	rg.GET("/me", getMe)
}

// getMe returns the user resolved for the bearer token.
func getMe(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, dto.ToUserResponse(&user))
}
