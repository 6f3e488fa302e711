package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Totals are base-currency sums split by type.
type Totals struct {
	IncomeCents  int64 `json:"incomeCents"`
	ExpenseCents int64 `json:"expenseCents"`
	BalanceCents int64 `json:"balanceCents"`
}

// CurrencyAmount is an unconverted sum in one original currency.
type CurrencyAmount struct {
	Currency string `json:"currency"`
	Cents    int64  `json:"cents"`
}

// OriginalTotals are per-original-currency sums. They are never converted.
type OriginalTotals struct {
	Income  []CurrencyAmount `json:"income"`
	Expense []CurrencyAmount `json:"expense"`
}

// CategoryTotal is a base-currency expense breakdown row.
type CategoryTotal struct {
	CategoryID   string          `json:"categoryID"`
	CategoryName string          `json:"categoryName"`
	CategoryIcon *string         `json:"categoryIcon,omitempty"`
	TotalCents   int64           `json:"totalCents"`
	Percent      decimal.Decimal `json:"percent"`
}

// CategoryCurrencyTotal is an expense breakdown row in one original currency.
// Percent is relative to the total of that currency only.
type CategoryCurrencyTotal struct {
	CategoryID   string          `json:"categoryID"`
	CategoryName string          `json:"categoryName"`
	CategoryIcon *string         `json:"categoryIcon,omitempty"`
	Currency     string          `json:"currency"`
	TotalCents   int64           `json:"totalCents"`
	Percent      decimal.Decimal `json:"percent"`
}

// Granularity is the bucket width of a time series.
type Granularity string

const (
	GranularityDay   Granularity = "day"
	GranularityWeek  Granularity = "week"
	GranularityMonth Granularity = "month"
)

// IsValid reports whether g is a supported granularity.
func (g Granularity) IsValid() bool {
	return g == GranularityDay || g == GranularityWeek || g == GranularityMonth
}

// TimeBucket is one point of a base-currency time series.
type TimeBucket struct {
	Start        time.Time `json:"start"`
	IncomeCents  int64     `json:"incomeCents"`
	ExpenseCents int64     `json:"expenseCents"`
	BalanceCents int64     `json:"balanceCents"`
}

// PeriodSummary is the full set of aggregates over a period.
type PeriodSummary struct {
	From                        time.Time
	To                          time.Time // inclusive calendar date
	BaseCurrency                string
	Totals                      Totals
	ByOriginal                  OriginalTotals
	ByCategory                  []CategoryTotal
	ExpenseByCategoryByOriginal []CategoryCurrencyTotal
}

// DashboardSummary is a month summary plus the newest entries of that month.
type DashboardSummary struct {
	Month string
	PeriodSummary
	Recent        []Transaction
	CategoryNames map[string]string // category id -> name, for Recent
}
