package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// FxQuote is a resolved rate: 1 unit of Base = Rate units of Quote.
type FxQuote struct {
	Base          string          `json:"base"`
	Quote         string          `json:"quote"`
	Rate          decimal.Decimal `json:"rate"`
	AsOfRequested time.Time       `json:"asOfRequested"`
	ResolvedDate  time.Time       `json:"resolvedDate"`
}

// DayTable is the full set of rates a provider published for one date.
// Rates holds units of the reference currency per 1 unit of each code and
// always contains the reference currency itself at rate 1.
type DayTable struct {
	Reference    string
	ResolvedDate time.Time
	Rates        map[string]decimal.Decimal
}

// Rate returns the reference-per-unit rate for code.
func (t *DayTable) Rate(code string) (decimal.Decimal, bool) {
	if t == nil {
		return decimal.Zero, false
	}
	r, ok := t.Rates[code]
	return r, ok
}

// FxFields is the derived bundle written onto a ledger entry. Writers must
// replace all of it together.
type FxFields struct {
	OriginalAmount MoneyAmount     `json:"originalAmount"`
	BaseAmount     MoneyAmount     `json:"baseAmount"`
	FxRate         decimal.Decimal `json:"fxRate"`
	FxDate         time.Time       `json:"fxDate"`
}

// IsConverted reports whether the entry was entered in a currency other than base.
func (f FxFields) IsConverted() bool {
	return f.OriginalAmount.Currency != f.BaseAmount.Currency
}

// LedgerEntry is the dual-currency shape shared by transactions and budgets.
type LedgerEntry struct {
	ID         string `json:"id"`
	UserID     string `json:"userID"`
	CategoryID string `json:"categoryID"`
	FxFields
}

// FxRateSet is the result of a batch lookup: 1 Base = Rates[code] units of code.
type FxRateSet struct {
	Base          string                     `json:"base"`
	AsOfRequested time.Time                  `json:"asOfRequested"`
	ResolvedDate  time.Time                  `json:"resolvedDate"`
	Rates         map[string]decimal.Decimal `json:"rates"`
}
