package providers

import (
	"context"
	"errors"
	"time"

	"github.com/SscSPs/expense_tracker/internal/core/domain"
)

// ErrNoData means the provider published no table for the requested date
// (weekend or holiday). It is a normal outcome that triggers fallback.
var ErrNoData = errors.New("no rates published for date")

// FxTableProvider fetches the full rate table for one calendar date.
type FxTableProvider interface {
	// FetchDayTable returns the table for date, ErrNoData when nothing was
	// published, or another error for transport or payload failures.
	FetchDayTable(ctx context.Context, date time.Time) (*domain.DayTable, error)
	// ReferenceCurrency is the currency all table rates are expressed in.
	ReferenceCurrency() string
}
