// Package aggregation computes report figures from ledger entries.
// Base-currency and original-currency sums are kept strictly apart.
package aggregation

import (
	"sort"
	"time"

	"github.com/SscSPs/expense_tracker/internal/core/domain"
	"github.com/SscSPs/expense_tracker/internal/utils/period"
	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// DefaultWarningThreshold is the share of a budget limit at which status turns to warning.
var DefaultWarningThreshold = decimal.RequireFromString("0.85")

// Percent returns part/total*100 rounded to 2 decimals, or 0 when total is 0.
func Percent(part, total int64) decimal.Decimal {
	if total == 0 {
		return decimal.Zero
	}
	return decimal.NewFromInt(part).Mul(hundred).Div(decimal.NewFromInt(total)).Round(2)
}

// ComputeTotals sums base cents by type.
func ComputeTotals(entries []domain.Transaction) domain.Totals {
	var t domain.Totals
	for _, e := range entries {
		switch e.Type {
		case domain.Income:
			t.IncomeCents += e.BaseAmount.Cents
		case domain.Expense:
			t.ExpenseCents += e.BaseAmount.Cents
		}
	}
	t.BalanceCents = t.IncomeCents - t.ExpenseCents
	return t
}

// TotalsByOriginal sums original cents per currency and type, ordered by currency.
func TotalsByOriginal(entries []domain.Transaction) domain.OriginalTotals {
	income := map[string]int64{}
	expense := map[string]int64{}
	for _, e := range entries {
		cur := e.OriginalAmount.Currency
		switch e.Type {
		case domain.Income:
			income[cur] += e.OriginalAmount.Cents
		case domain.Expense:
			expense[cur] += e.OriginalAmount.Cents
		}
	}
	return domain.OriginalTotals{
		Income:  sortedCurrencyAmounts(income),
		Expense: sortedCurrencyAmounts(expense),
	}
}

func sortedCurrencyAmounts(m map[string]int64) []domain.CurrencyAmount {
	out := make([]domain.CurrencyAmount, 0, len(m))
	for cur, cents := range m {
		out = append(out, domain.CurrencyAmount{Currency: cur, Cents: cents})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Currency < out[j].Currency })
	return out
}

// ByCategory breaks base expense cents down by category, largest first.
func ByCategory(entries []domain.Transaction, categories map[string]domain.Category) []domain.CategoryTotal {
	totals := map[string]int64{}
	var all int64
	for _, e := range entries {
		if e.Type != domain.Expense {
			continue
		}
		totals[e.CategoryID] += e.BaseAmount.Cents
		all += e.BaseAmount.Cents
	}

	out := make([]domain.CategoryTotal, 0, len(totals))
	for id, cents := range totals {
		row := domain.CategoryTotal{CategoryID: id, TotalCents: cents, Percent: Percent(cents, all)}
		if c, ok := categories[id]; ok {
			row.CategoryName = c.Name
			row.CategoryIcon = c.Icon
		}
		out = append(out, row)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].TotalCents != out[j].TotalCents {
			return out[i].TotalCents > out[j].TotalCents
		}
		return out[i].CategoryID < out[j].CategoryID
	})
	return out
}

// ByCategoryByOriginal breaks original expense cents down by (category, currency).
// Each percent is relative to the total of its own currency.
func ByCategoryByOriginal(entries []domain.Transaction, categories map[string]domain.Category) []domain.CategoryCurrencyTotal {
	type key struct{ category, currency string }
	totals := map[key]int64{}
	perCurrency := map[string]int64{}
	for _, e := range entries {
		if e.Type != domain.Expense {
			continue
		}
		k := key{e.CategoryID, e.OriginalAmount.Currency}
		totals[k] += e.OriginalAmount.Cents
		perCurrency[k.currency] += e.OriginalAmount.Cents
	}

	out := make([]domain.CategoryCurrencyTotal, 0, len(totals))
	for k, cents := range totals {
		row := domain.CategoryCurrencyTotal{
			CategoryID: k.category,
			Currency:   k.currency,
			TotalCents: cents,
			Percent:    Percent(cents, perCurrency[k.currency]),
		}
		if c, ok := categories[k.category]; ok {
			row.CategoryName = c.Name
			row.CategoryIcon = c.Icon
		}
		out = append(out, row)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Currency != out[j].Currency {
			return out[i].Currency < out[j].Currency
		}
		if out[i].TotalCents != out[j].TotalCents {
			return out[i].TotalCents > out[j].TotalCents
		}
		return out[i].CategoryID < out[j].CategoryID
	})
	return out
}

// BudgetStatus classifies spending against a limit. Limits of zero or less are always on track.
func BudgetStatus(limitCents, spentCents int64, threshold decimal.Decimal) domain.BudgetStatus {
	if limitCents <= 0 {
		return domain.BudgetOnTrack
	}
	if spentCents > limitCents {
		return domain.BudgetOver
	}
	warnAt := decimal.NewFromInt(limitCents).Mul(threshold).Ceil().IntPart()
	if spentCents >= warnAt {
		return domain.BudgetWarning
	}
	return domain.BudgetOnTrack
}

// Remaining is limit minus spent and may be negative.
func Remaining(limitCents, spentCents int64) int64 {
	return limitCents - spentCents
}

// SpentByCategory sums base expense cents per category.
func SpentByCategory(entries []domain.Transaction) map[string]int64 {
	out := map[string]int64{}
	for _, e := range entries {
		if e.Type == domain.Expense {
			out[e.CategoryID] += e.BaseAmount.Cents
		}
	}
	return out
}

// SpentByCategoryOriginal sums original expense cents per category and currency.
func SpentByCategoryOriginal(entries []domain.Transaction) map[string][]domain.CurrencyAmount {
	grouped := map[string]map[string]int64{}
	for _, e := range entries {
		if e.Type != domain.Expense {
			continue
		}
		m, ok := grouped[e.CategoryID]
		if !ok {
			m = map[string]int64{}
			grouped[e.CategoryID] = m
		}
		m[e.OriginalAmount.Currency] += e.OriginalAmount.Cents
	}
	out := make(map[string][]domain.CurrencyAmount, len(grouped))
	for id, m := range grouped {
		out[id] = sortedCurrencyAmounts(m)
	}
	return out
}

// TimeSeries buckets base income and expense over the inclusive calendar range [from, to].
// Every bucket in the range is present, ordered by start. Entry dates are taken in loc.
func TimeSeries(entries []domain.Transaction, from, to time.Time, g domain.Granularity, loc *time.Location) []domain.TimeBucket {
	starts := period.Buckets(from, to, g)
	index := make(map[time.Time]int, len(starts))
	out := make([]domain.TimeBucket, len(starts))
	for i, s := range starts {
		index[s] = i
		out[i] = domain.TimeBucket{Start: s}
	}

	for _, e := range entries {
		start := period.BucketStart(period.Date(e.OccurredAt, loc), g)
		i, ok := index[start]
		if !ok {
			continue
		}
		switch e.Type {
		case domain.Income:
			out[i].IncomeCents += e.BaseAmount.Cents
		case domain.Expense:
			out[i].ExpenseCents += e.BaseAmount.Cents
		}
	}
	for i := range out {
		out[i].BalanceCents = out[i].IncomeCents - out[i].ExpenseCents
	}
	return out
}

// Summarize fills every aggregate of a period summary.
func Summarize(entries []domain.Transaction, categories map[string]domain.Category) (domain.Totals, domain.OriginalTotals, []domain.CategoryTotal, []domain.CategoryCurrencyTotal) {
	return ComputeTotals(entries), TotalsByOriginal(entries), ByCategory(entries, categories), ByCategoryByOriginal(entries, categories)
}
