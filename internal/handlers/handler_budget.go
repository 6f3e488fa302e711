package handlers

import (
	"net/http"
	"time"

	portssvc "github.com/SscSPs/expense_tracker/internal/core/ports/services"
	"github.com/SscSPs/expense_tracker/internal/dto"
	"github.com/SscSPs/expense_tracker/internal/utils/period"
	"github.com/gin-gonic/gin"
)

type budgetHandler struct {
	budgetService portssvc.BudgetSvcFacade
	loc           *time.Location
	now           func() time.Time
}

func newBudgetHandler(bs portssvc.BudgetSvcFacade, loc *time.Location, now func() time.Time) *budgetHandler {
	return &budgetHandler{budgetService: bs, loc: loc, now: now}
}

func registerBudgetRoutes(rg *gin.RouterGroup, budgetService portssvc.BudgetSvcFacade, loc *time.Location, now func() time.Time) {
	h := newBudgetHandler(budgetService, loc, now)

	budgets := rg.Group("/budgets")
	{
		budgets.GET("", h.listBudgets)
		budgets.POST("", h.createBudget)
		budgets.PATCH("/:budgetID", h.updateBudget)
		budgets.DELETE("/:budgetID", h.deleteBudget)
	}
}

// listBudgets returns progress for each budget of the month, defaulting to
// the current month in the caller's timezone.
func (h *budgetHandler) listBudgets(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	var params dto.ListBudgetsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		respondBindError(c, err)
		return
	}

	rows, err := h.budgetService.ListBudgets(c.Request.Context(), user, params.Month)
	if err != nil {
		respondWithError(c, err, "Failed to list budgets")
		return
	}

	month := params.Month
	if month == "" {
		month = period.MonthOf(h.now(), user.Location(h.loc))
	}
	c.JSON(http.StatusOK, dto.ToListBudgetsResponse(month, rows))
}

func (h *budgetHandler) createBudget(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	var req dto.CreateBudgetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	budget, err := h.budgetService.CreateBudget(c.Request.Context(), user, req)
	if err != nil {
		respondWithError(c, err, "Failed to create budget")
		return
	}

	c.JSON(http.StatusCreated, dto.ToBudgetResponse(budget))
}

func (h *budgetHandler) updateBudget(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	var req dto.UpdateBudgetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	budget, err := h.budgetService.UpdateBudget(c.Request.Context(), user, c.Param("budgetID"), req.ToPatch())
	if err != nil {
		respondWithError(c, err, "Failed to update budget")
		return
	}

	c.JSON(http.StatusOK, dto.ToBudgetResponse(budget))
}

func (h *budgetHandler) deleteBudget(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	if err := h.budgetService.DeleteBudget(c.Request.Context(), user, c.Param("budgetID")); err != nil {
		respondWithError(c, err, "Failed to delete budget")
		return
	}

	c.Status(http.StatusNoContent)
}
