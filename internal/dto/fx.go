package dto

import (
	"github.com/SscSPs/expense_tracker/internal/core/domain"
	"github.com/shopspring/decimal"
)

// FxRateParams defines query parameters for a single rate lookup.
type FxRateParams struct {
	Base  string `form:"base" binding:"required,currency"`
	Quote string `form:"quote" binding:"required,currency"`
	AsOf  string `form:"asOf" binding:"omitempty,datetime=2006-01-02"`
}

// FxQuotesParams defines query parameters for a batch rate lookup.
type FxQuotesParams struct {
	Base    string `form:"base" binding:"required,currency"`
	Symbols string `form:"symbols" binding:"required"`
	AsOf    string `form:"asOf" binding:"omitempty,datetime=2006-01-02"`
}

// FxQuoteResponse defines the data returned for a resolved rate.
type FxQuoteResponse struct {
	Base          string          `json:"base"`
	Quote         string          `json:"quote"`
	Rate          decimal.Decimal `json:"rate"`
	AsOfRequested string          `json:"asOfRequested"`
	ResolvedDate  string          `json:"resolvedDate"`
}

// FxQuotesResponse defines the data returned for a batch lookup.
type FxQuotesResponse struct {
	Base          string                     `json:"base"`
	AsOfRequested string                     `json:"asOfRequested"`
	ResolvedDate  string                     `json:"resolvedDate"`
	Rates         map[string]decimal.Decimal `json:"rates"`
}

// ToFxQuoteResponse converts a domain.FxQuote to its DTO.
func ToFxQuoteResponse(q *domain.FxQuote) FxQuoteResponse {
	return FxQuoteResponse{
		Base:          q.Base,
		Quote:         q.Quote,
		Rate:          q.Rate,
		AsOfRequested: formatDate(q.AsOfRequested),
		ResolvedDate:  formatDate(q.ResolvedDate),
	}
}

// ToFxQuotesResponse converts a domain.FxRateSet to its DTO.
func ToFxQuotesResponse(s *domain.FxRateSet) FxQuotesResponse {
	return FxQuotesResponse{
		Base:          s.Base,
		AsOfRequested: formatDate(s.AsOfRequested),
		ResolvedDate:  formatDate(s.ResolvedDate),
		Rates:         s.Rates,
	}
}
