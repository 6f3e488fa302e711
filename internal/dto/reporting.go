package dto

import (
	"time"

	"github.com/SscSPs/expense_tracker/internal/core/domain"
	"github.com/shopspring/decimal"
)

// DashboardParams defines query parameters for the month dashboard.
type DashboardParams struct {
	Month string `form:"month" binding:"omitempty,yearmonth"`
}

// StatsParams defines query parameters for period statistics.
type StatsParams struct {
	From        string `form:"from" binding:"required,datetime=2006-01-02"`
	To          string `form:"to" binding:"required,datetime=2006-01-02"`
	Granularity string `form:"granularity" binding:"omitempty,oneof=day week month"`
}

// CategoryTotalResponse is a base-currency category breakdown row.
type CategoryTotalResponse struct {
	CategoryID   string          `json:"categoryID"`
	CategoryName string          `json:"categoryName"`
	CategoryIcon *string         `json:"categoryIcon,omitempty"`
	Total        string          `json:"total"`
	Percent      decimal.Decimal `json:"percent"`
}

// CategoryCurrencyTotalResponse is an original-currency category breakdown row.
type CategoryCurrencyTotalResponse struct {
	CategoryID   string          `json:"categoryID"`
	CategoryName string          `json:"categoryName"`
	CategoryIcon *string         `json:"categoryIcon,omitempty"`
	Currency     string          `json:"currency"`
	Total        string          `json:"total"`
	Percent      decimal.Decimal `json:"percent"`
}

// RecentTransactionResponse is a compact transaction row for the dashboard.
type RecentTransactionResponse struct {
	TransactionID    string                 `json:"transactionID"`
	Type             domain.TransactionType `json:"type"`
	CategoryID       string                 `json:"categoryID"`
	CategoryName     string                 `json:"categoryName"`
	Amount           string                 `json:"amount"`
	OriginalAmount   string                 `json:"originalAmount"`
	OriginalCurrency string                 `json:"originalCurrency"`
	FxRate           decimal.Decimal        `json:"fxRate"`
	FxDate           string                 `json:"fxDate"`
	OccurredAt       time.Time              `json:"occurredAt"`
	Note             *string                `json:"note,omitempty"`
}

// PeriodSummaryResponse carries every aggregate of a period.
type PeriodSummaryResponse struct {
	BaseCurrency                string                          `json:"baseCurrency"`
	IncomeTotal                 string                          `json:"incomeTotal"`
	ExpenseTotal                string                          `json:"expenseTotal"`
	Balance                     string                          `json:"balance"`
	IncomeTotalByOriginal       []CurrencyAmountResponse        `json:"incomeTotalByOriginal"`
	ExpenseTotalByOriginal      []CurrencyAmountResponse        `json:"expenseTotalByOriginal"`
	ByCategory                  []CategoryTotalResponse         `json:"byCategory"`
	ExpenseByCategoryByOriginal []CategoryCurrencyTotalResponse `json:"expenseByCategoryByOriginal"`
}

// DashboardResponse is the month dashboard.
type DashboardResponse struct {
	Month string `json:"month"`
	PeriodSummaryResponse
	Recent []RecentTransactionResponse `json:"recent"`
}

// StatsSummaryResponse is the statistics summary over an inclusive date range.
type StatsSummaryResponse struct {
	From string `json:"from"`
	To   string `json:"to"`
	PeriodSummaryResponse
}

// TimeSeriesPointResponse is one bucket of a series.
type TimeSeriesPointResponse struct {
	Date    string `json:"date"`
	Income  string `json:"income"`
	Expense string `json:"expense"`
	Balance string `json:"balance"`
}

// TimeSeriesResponse is a base-currency time series.
type TimeSeriesResponse struct {
	From         string                    `json:"from"`
	To           string                    `json:"to"`
	Granularity  domain.Granularity        `json:"granularity"`
	BaseCurrency string                    `json:"baseCurrency"`
	Points       []TimeSeriesPointResponse `json:"points"`
}

func toCurrencyAmounts(in []domain.CurrencyAmount) []CurrencyAmountResponse {
	out := make([]CurrencyAmountResponse, len(in))
	for i, c := range in {
		out[i] = CurrencyAmountResponse{Currency: c.Currency, Amount: amount(c.Cents)}
	}
	return out
}

// ToPeriodSummaryResponse converts a domain summary to its response DTO.
func ToPeriodSummaryResponse(s *domain.PeriodSummary) PeriodSummaryResponse {
	byCategory := make([]CategoryTotalResponse, len(s.ByCategory))
	for i, c := range s.ByCategory {
		byCategory[i] = CategoryTotalResponse{
			CategoryID:   c.CategoryID,
			CategoryName: c.CategoryName,
			CategoryIcon: c.CategoryIcon,
			Total:        amount(c.TotalCents),
			Percent:      c.Percent,
		}
	}
	byOriginal := make([]CategoryCurrencyTotalResponse, len(s.ExpenseByCategoryByOriginal))
	for i, c := range s.ExpenseByCategoryByOriginal {
		byOriginal[i] = CategoryCurrencyTotalResponse{
			CategoryID:   c.CategoryID,
			CategoryName: c.CategoryName,
			CategoryIcon: c.CategoryIcon,
			Currency:     c.Currency,
			Total:        amount(c.TotalCents),
			Percent:      c.Percent,
		}
	}
	return PeriodSummaryResponse{
		BaseCurrency:                s.BaseCurrency,
		IncomeTotal:                 amount(s.Totals.IncomeCents),
		ExpenseTotal:                amount(s.Totals.ExpenseCents),
		Balance:                     amount(s.Totals.BalanceCents),
		IncomeTotalByOriginal:       toCurrencyAmounts(s.ByOriginal.Income),
		ExpenseTotalByOriginal:      toCurrencyAmounts(s.ByOriginal.Expense),
		ByCategory:                  byCategory,
		ExpenseByCategoryByOriginal: byOriginal,
	}
}

// ToDashboardResponse converts a domain dashboard to its response DTO.
func ToDashboardResponse(d *domain.DashboardSummary) DashboardResponse {
	recent := make([]RecentTransactionResponse, len(d.Recent))
	for i, t := range d.Recent {
		recent[i] = RecentTransactionResponse{
			TransactionID:    t.ID,
			Type:             t.Type,
			CategoryID:       t.CategoryID,
			CategoryName:     d.CategoryNames[t.CategoryID],
			Amount:           amount(t.BaseAmount.Cents),
			OriginalAmount:   amount(t.OriginalAmount.Cents),
			OriginalCurrency: t.OriginalAmount.Currency,
			FxRate:           t.FxRate,
			FxDate:           formatDate(t.FxDate),
			OccurredAt:       t.OccurredAt,
			Note:             t.Note,
		}
	}
	return DashboardResponse{
		Month:                 d.Month,
		PeriodSummaryResponse: ToPeriodSummaryResponse(&d.PeriodSummary),
		Recent:                recent,
	}
}

// ToStatsSummaryResponse converts a period summary to the stats DTO.
func ToStatsSummaryResponse(s *domain.PeriodSummary) StatsSummaryResponse {
	return StatsSummaryResponse{
		From:                  formatDate(s.From),
		To:                    formatDate(s.To),
		PeriodSummaryResponse: ToPeriodSummaryResponse(s),
	}
}

// ToTimeSeriesResponse converts buckets to the series DTO.
func ToTimeSeriesResponse(from, to time.Time, g domain.Granularity, baseCurrency string, buckets []domain.TimeBucket) TimeSeriesResponse {
	points := make([]TimeSeriesPointResponse, len(buckets))
	for i, b := range buckets {
		points[i] = TimeSeriesPointResponse{
			Date:    formatDate(b.Start),
			Income:  amount(b.IncomeCents),
			Expense: amount(b.ExpenseCents),
			Balance: amount(b.BalanceCents),
		}
	}
	return TimeSeriesResponse{
		From:         formatDate(from),
		To:           formatDate(to),
		Granularity:  g,
		BaseCurrency: baseCurrency,
		Points:       points,
	}
}
