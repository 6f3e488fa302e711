package handlers

import (
	"net/http"
	"time"

	"github.com/SscSPs/expense_tracker/internal/core/domain"
	portssvc "github.com/SscSPs/expense_tracker/internal/core/ports/services"
	"github.com/SscSPs/expense_tracker/internal/dto"
	"github.com/SscSPs/expense_tracker/internal/utils/period"
	"github.com/gin-gonic/gin"
)

type reportingHandler struct {
	reportingService portssvc.ReportingSvcFacade
}

func newReportingHandler(rs portssvc.ReportingSvcFacade) *reportingHandler {
	return &reportingHandler{reportingService: rs}
}

func registerReportingRoutes(rg *gin.RouterGroup, reportingService portssvc.ReportingSvcFacade) {
	h := newReportingHandler(reportingService)

	rg.GET("/dashboard", h.dashboard)

	stats := rg.Group("/stats")
	{
		stats.GET("/summary", h.statsSummary)
		stats.GET("/timeseries", h.statsTimeSeries)
	}
}

// dashboard returns the month summary with budgets excluded.
func (h *reportingHandler) dashboard(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	var params dto.DashboardParams
	if err := c.ShouldBindQuery(&params); err != nil {
		respondBindError(c, err)
		return
	}

	summary, err := h.reportingService.DashboardSummary(c.Request.Context(), user, params.Month)
	if err != nil {
		respondWithError(c, err, "Failed to build dashboard")
		return
	}

	c.JSON(http.StatusOK, dto.ToDashboardResponse(summary))
}

func (h *reportingHandler) statsSummary(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	params, ok := bindStatsParams(c)
	if !ok {
		return
	}

	summary, err := h.reportingService.StatsSummary(c.Request.Context(), user, params.from, params.to)
	if err != nil {
		respondWithError(c, err, "Failed to build summary")
		return
	}

	c.JSON(http.StatusOK, dto.ToStatsSummaryResponse(summary))
}

func (h *reportingHandler) statsTimeSeries(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	params, ok := bindStatsParams(c)
	if !ok {
		return
	}

	buckets, err := h.reportingService.StatsTimeSeries(c.Request.Context(), user, params.from, params.to, params.granularity)
	if err != nil {
		respondWithError(c, err, "Failed to build time series")
		return
	}

	g := params.granularity
	if g == "" {
		g = domain.GranularityDay
	}
	c.JSON(http.StatusOK, dto.ToTimeSeriesResponse(params.from, params.to, g, user.BaseCurrency, buckets))
}

type statsRange struct {
	from, to    time.Time
	granularity domain.Granularity
}

func bindStatsParams(c *gin.Context) (statsRange, bool) {
	var params dto.StatsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		respondBindError(c, err)
		return statsRange{}, false
	}

	from, err := period.ParseDate(params.From)
	if err != nil {
		respondWithError(c, err, "Invalid range")
		return statsRange{}, false
	}
	to, err := period.ParseDate(params.To)
	if err != nil {
		respondWithError(c, err, "Invalid range")
		return statsRange{}, false
	}

	return statsRange{from: from, to: to, granularity: domain.Granularity(params.Granularity)}, true
}
