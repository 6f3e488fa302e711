package handlers

import (
	"net/http"
	"strings"
	"time"

	"github.com/SscSPs/expense_tracker/internal/apperrors"
	portssvc "github.com/SscSPs/expense_tracker/internal/core/ports/services"
	"github.com/SscSPs/expense_tracker/internal/dto"
	"github.com/SscSPs/expense_tracker/internal/utils/period"
	"github.com/gin-gonic/gin"
)

// maxQuoteSymbols bounds a batch lookup.
const maxQuoteSymbols = 50

type fxHandler struct {
	fxService portssvc.FxRateReaderSvc
	loc       *time.Location
	now       func() time.Time
}

func newFxHandler(fs portssvc.FxRateReaderSvc, loc *time.Location, now func() time.Time) *fxHandler {
	return &fxHandler{fxService: fs, loc: loc, now: now}
}

func registerFxRoutes(rg *gin.RouterGroup, fxService portssvc.FxRateReaderSvc, loc *time.Location, now func() time.Time) {
	h := newFxHandler(fxService, loc, now)

	fx := rg.Group("/fx")
	{
		fx.GET("/rate", h.getRate)
		fx.GET("/latest", h.getLatestRate)
		fx.GET("/quotes", h.getQuotes)
	}
}

// asOfOrToday parses asOf, defaulting to today in the caller's timezone.
func (h *fxHandler) asOfOrToday(c *gin.Context, asOf string) (time.Time, bool) {
	if asOf == "" {
		user, ok := currentUser(c)
		if !ok {
			return time.Time{}, false
		}
		return period.Date(h.now(), user.Location(h.loc)), true
	}
	d, err := period.ParseDate(asOf)
	if err != nil {
		respondWithError(c, err, "Invalid asOf")
		return time.Time{}, false
	}
	return d, true
}

// getRate resolves base/quote for a calendar date with weekend fallback.
func (h *fxHandler) getRate(c *gin.Context) {
	var params dto.FxRateParams
	if err := c.ShouldBindQuery(&params); err != nil {
		respondBindError(c, err)
		return
	}

	asOf, ok := h.asOfOrToday(c, params.AsOf)
	if !ok {
		return
	}

	quote, err := h.fxService.GetRate(c.Request.Context(), params.Base, params.Quote, asOf)
	if err != nil {
		respondWithError(c, err, "Failed to resolve exchange rate")
		return
	}

	c.JSON(http.StatusOK, dto.ToFxQuoteResponse(quote))
}

func (h *fxHandler) getLatestRate(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	var params dto.FxRateParams
	if err := c.ShouldBindQuery(&params); err != nil {
		respondBindError(c, err)
		return
	}

	quote, err := h.fxService.GetLatestRate(c.Request.Context(), params.Base, params.Quote, user.Location(h.loc))
	if err != nil {
		respondWithError(c, err, "Failed to resolve exchange rate")
		return
	}

	c.JSON(http.StatusOK, dto.ToFxQuoteResponse(quote))
}

// getQuotes resolves several quotes against one base from a single day table.
func (h *fxHandler) getQuotes(c *gin.Context) {
	var params dto.FxQuotesParams
	if err := c.ShouldBindQuery(&params); err != nil {
		respondBindError(c, err)
		return
	}

	symbols := splitSymbols(params.Symbols)
	if len(symbols) == 0 || len(symbols) > maxQuoteSymbols {
		respondWithError(c, apperrors.NewValidationError("symbols must list between 1 and 50 currency codes"), "Invalid symbols")
		return
	}

	asOf, ok := h.asOfOrToday(c, params.AsOf)
	if !ok {
		return
	}

	set, err := h.fxService.GetRates(c.Request.Context(), params.Base, symbols, asOf)
	if err != nil {
		respondWithError(c, err, "Failed to resolve exchange rates")
		return
	}

	c.JSON(http.StatusOK, dto.ToFxQuotesResponse(set))
}

func splitSymbols(raw string) []string {
	var out []string
	for _, s := range strings.Split(raw, ",") {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}
