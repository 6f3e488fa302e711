package services

import (
	"context"
	"time"

	"github.com/SscSPs/expense_tracker/internal/core/domain"
)

// FxRateReaderSvc resolves exchange rates from the provider's day tables.
type FxRateReaderSvc interface {
	// GetRate resolves 1 base in quote units for the calendar date asOf,
	// walking back to earlier published tables when asOf has none.
	GetRate(ctx context.Context, base, quote string, asOf time.Time) (*domain.FxQuote, error)

	// GetRates resolves several quotes against one day table. Quotes the
	// table does not publish are omitted from the result.
	GetRates(ctx context.Context, base string, quotes []string, asOf time.Time) (*domain.FxRateSet, error)

	// GetLatestRate is GetRate for today's date in loc.
	GetLatestRate(ctx context.Context, base, quote string, loc *time.Location) (*domain.FxQuote, error)
}

// FxFieldsCalculator derives the FX bundle written onto ledger entries.
type FxFieldsCalculator interface {
	// ComputeFxFields parses amount, resolves currency->baseCurrency at anchor
	// and returns original amount, base amount, rate and date as one unit.
	ComputeFxFields(ctx context.Context, baseCurrency string, anchor time.Time, amount, currency string) (*domain.FxFields, error)
}

// FxRateSvcFacade combines all FX service interfaces
type FxRateSvcFacade interface {
	FxRateReaderSvc
	FxFieldsCalculator
}
