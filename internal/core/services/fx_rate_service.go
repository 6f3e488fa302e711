package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/SscSPs/expense_tracker/internal/apperrors"
	"github.com/SscSPs/expense_tracker/internal/core/domain"
	"github.com/SscSPs/expense_tracker/internal/core/ports/providers"
	portssvc "github.com/SscSPs/expense_tracker/internal/core/ports/services"
	"github.com/SscSPs/expense_tracker/internal/platform/cache"
	"github.com/SscSPs/expense_tracker/internal/utils/money"
	"github.com/SscSPs/expense_tracker/internal/utils/period"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/singleflight"
)

// RateScale is the number of decimal places rates are stored and applied with.
const RateScale = 10

var one = decimal.NewFromInt(1)

// errNotInTable marks a currency the resolved day table does not publish.
var errNotInTable = errors.New("currency not published in rate table")

// FxConfig tunes rate resolution.
type FxConfig struct {
	TodayTTL       time.Duration  // lifetime of entries resolved for today
	HistoricalTTL  time.Duration  // lifetime of entries for past dates
	FallbackDays   int            // extra earlier days tried when a date has no table
	AttemptTimeout time.Duration  // per provider call
	Location       *time.Location // defines "today"
	Now            func() time.Time
}

// DefaultFxConfig returns the standard resolution policy.
func DefaultFxConfig() FxConfig {
	return FxConfig{
		TodayTTL:       30 * time.Minute,
		HistoricalTTL:  90 * 24 * time.Hour,
		FallbackDays:   7,
		AttemptTimeout: 10 * time.Second,
		Location:       time.UTC,
	}
}

type pairKey struct {
	date  string
	base  string
	quote string
}

type pairEntry struct {
	rate         decimal.Decimal
	resolvedDate time.Time
}

// FxCaches are the process-wide resolver caches. They are built once and
// closed on shutdown.
type FxCaches struct {
	pairs  *cache.TTLCache[pairKey, pairEntry]
	tables *cache.TTLCache[string, *domain.DayTable]
}

// NewFxCaches creates pair and day-table caches holding up to size entries each.
func NewFxCaches(size int, now func() time.Time) (*FxCaches, error) {
	pairs, err := cache.NewTTLCache[pairKey, pairEntry](size, now)
	if err != nil {
		return nil, fmt.Errorf("pair cache: %w", err)
	}
	tables, err := cache.NewTTLCache[string, *domain.DayTable](size, now)
	if err != nil {
		return nil, fmt.Errorf("day table cache: %w", err)
	}
	return &FxCaches{pairs: pairs, tables: tables}, nil
}

// Cleaners exposes both caches for lifecycle management.
func (c *FxCaches) Cleaners() []cache.Cleaner {
	return []cache.Cleaner{c.pairs, c.tables}
}

// fxRateService resolves rates from provider day tables with caching and
// a backwards walk over days without a published table.
type fxRateService struct {
	BaseService
	provider providers.FxTableProvider
	caches   *FxCaches
	group    singleflight.Group
	cfg      FxConfig
}

// NewFxRateService creates the rate resolver.
func NewFxRateService(provider providers.FxTableProvider, caches *FxCaches, cfg FxConfig) portssvc.FxRateSvcFacade {
	if cfg.Location == nil {
		cfg.Location = time.UTC
	}
	if cfg.FallbackDays < 0 {
		cfg.FallbackDays = 0
	}
	s := &fxRateService{
		BaseService: newBaseService(cfg.Location),
		provider:    provider,
		caches:      caches,
		cfg:         cfg,
	}
	if cfg.Now != nil {
		s.Now = cfg.Now
	}
	return s
}

var _ portssvc.FxRateSvcFacade = (*fxRateService)(nil)

func normalizeCurrencyPair(base, quote string) (string, string, error) {
	base = domain.NormalizeCurrency(base)
	quote = domain.NormalizeCurrency(quote)
	if !domain.IsValidCurrency(base) {
		return "", "", fmt.Errorf("%w: invalid currency code %q", apperrors.ErrValidation, base)
	}
	if !domain.IsValidCurrency(quote) {
		return "", "", fmt.Errorf("%w: invalid currency code %q", apperrors.ErrValidation, quote)
	}
	return base, quote, nil
}

// GetRate resolves 1 base in quote units as of the calendar date asOf.
func (s *fxRateService) GetRate(ctx context.Context, base, quote string, asOf time.Time) (*domain.FxQuote, error) {
	base, quote, err := normalizeCurrencyPair(base, quote)
	if err != nil {
		return nil, err
	}
	asOf = period.Date(asOf, nil)

	if base == quote {
		return &domain.FxQuote{Base: base, Quote: quote, Rate: one, AsOfRequested: asOf, ResolvedDate: asOf}, nil
	}

	if e, ok := s.caches.pairs.Get(pairKey{asOf.Format(time.DateOnly), base, quote}); ok {
		return &domain.FxQuote{Base: base, Quote: quote, Rate: e.rate, AsOfRequested: asOf, ResolvedDate: e.resolvedDate}, nil
	}

	table, err := s.getDayTable(ctx, asOf)
	if err != nil {
		return nil, s.unavailable(asOf, err, base, quote)
	}

	rate, err := crossRate(table, base, quote)
	if err != nil {
		return nil, s.unavailable(asOf, err, base, quote)
	}
	s.storePair(asOf, table.ResolvedDate, base, quote, rate)

	return &domain.FxQuote{Base: base, Quote: quote, Rate: rate, AsOfRequested: asOf, ResolvedDate: table.ResolvedDate}, nil
}

// GetRates resolves every quote against a single day table. Quotes missing
// from the table are omitted.
func (s *fxRateService) GetRates(ctx context.Context, base string, quotes []string, asOf time.Time) (*domain.FxRateSet, error) {
	base = domain.NormalizeCurrency(base)
	if !domain.IsValidCurrency(base) {
		return nil, fmt.Errorf("%w: invalid currency code %q", apperrors.ErrValidation, base)
	}
	wanted := make([]string, 0, len(quotes))
	seen := make(map[string]bool, len(quotes))
	for _, q := range quotes {
		q = domain.NormalizeCurrency(q)
		if q == "" || seen[q] {
			continue
		}
		if !domain.IsValidCurrency(q) {
			return nil, fmt.Errorf("%w: invalid currency code %q", apperrors.ErrValidation, q)
		}
		seen[q] = true
		wanted = append(wanted, q)
	}
	if len(wanted) == 0 {
		return nil, fmt.Errorf("%w: at least one quote currency is required", apperrors.ErrValidation)
	}
	asOf = period.Date(asOf, nil)

	table, err := s.getDayTable(ctx, asOf)
	if err != nil {
		return nil, s.unavailable(asOf, err, append([]string{base}, wanted...)...)
	}
	if _, ok := table.Rate(base); !ok {
		return nil, s.unavailable(asOf, fmt.Errorf("%w: %s", errNotInTable, base), base)
	}

	set := &domain.FxRateSet{
		Base:          base,
		AsOfRequested: asOf,
		ResolvedDate:  table.ResolvedDate,
		Rates:         make(map[string]decimal.Decimal, len(wanted)),
	}
	for _, q := range wanted {
		if q == base {
			set.Rates[q] = one
			continue
		}
		rate, err := crossRate(table, base, q)
		if err != nil {
			s.LogDebug(ctx, "Quote currency absent from rate table", slog.String("currency", q))
			continue
		}
		set.Rates[q] = rate
		s.storePair(asOf, table.ResolvedDate, base, q, rate)
	}
	return set, nil
}

// GetLatestRate resolves the rate for today's calendar date in loc.
func (s *fxRateService) GetLatestRate(ctx context.Context, base, quote string, loc *time.Location) (*domain.FxQuote, error) {
	if loc == nil {
		loc = s.cfg.Location
	}
	return s.GetRate(ctx, base, quote, period.Date(s.now(), loc))
}

// ComputeFxFields derives the full FX bundle for an entry of amount in currency.
// The amount is validated before any rate lookup.
func (s *fxRateService) ComputeFxFields(ctx context.Context, baseCurrency string, anchor time.Time, amount, currency string) (*domain.FxFields, error) {
	originalCents, err := money.ParseAmount(amount)
	if err != nil {
		return nil, err
	}
	currency, baseCurrency, err = normalizeCurrencyPair(currency, baseCurrency)
	if err != nil {
		return nil, err
	}
	anchor = period.Date(anchor, nil)

	rate := one
	if currency != baseCurrency {
		q, err := s.GetRate(ctx, currency, baseCurrency, anchor)
		if err != nil {
			return nil, err
		}
		rate = q.Rate
	}

	baseCents, err := money.ConvertToBaseCents(strings.TrimSpace(amount), rate)
	if err != nil {
		return nil, err
	}

	return &domain.FxFields{
		OriginalAmount: domain.MoneyAmount{Cents: originalCents, Currency: currency},
		BaseAmount:     domain.MoneyAmount{Cents: baseCents, Currency: baseCurrency},
		FxRate:         rate,
		FxDate:         anchor,
	}, nil
}

// crossRate divides the reference rates of base and quote.
func crossRate(table *domain.DayTable, base, quote string) (decimal.Decimal, error) {
	rb, ok := table.Rate(base)
	if !ok {
		return decimal.Zero, fmt.Errorf("%w: %s", errNotInTable, base)
	}
	rq, ok := table.Rate(quote)
	if !ok {
		return decimal.Zero, fmt.Errorf("%w: %s", errNotInTable, quote)
	}
	if !rb.IsPositive() || !rq.IsPositive() {
		return decimal.Zero, fmt.Errorf("non-positive rate for %s/%s", base, quote)
	}
	return rb.Div(rq).Round(RateScale), nil
}

func (s *fxRateService) storePair(asOf, resolved time.Time, base, quote string, rate decimal.Decimal) {
	ttl := s.ttlFor(asOf, resolved)
	e := pairEntry{rate: rate, resolvedDate: resolved}
	s.caches.pairs.Set(pairKey{asOf.Format(time.DateOnly), base, quote}, e, ttl)
	if !resolved.Equal(asOf) {
		s.caches.pairs.Set(pairKey{resolved.Format(time.DateOnly), base, quote}, e, ttl)
	}
}

// ttlFor keeps anything touching today or later short lived, since a later
// publication may supersede a fallback result.
func (s *fxRateService) ttlFor(asOf, resolved time.Time) time.Duration {
	today := period.Date(s.now(), s.cfg.Location)
	if !asOf.Before(today) || !resolved.Before(today) {
		return s.cfg.TodayTTL
	}
	return s.cfg.HistoricalTTL
}

func (s *fxRateService) unavailable(asOf time.Time, cause error, currencies ...string) error {
	if errors.Is(cause, apperrors.ErrValidation) {
		return cause
	}
	return apperrors.NewFxUnavailableError(asOf.AddDate(0, 0, -s.cfg.FallbackDays), asOf, cause, currencies...)
}

// getDayTable returns the table for asOf, from cache or by walking back day by
// day. Concurrent misses for the same date share one walk.
func (s *fxRateService) getDayTable(ctx context.Context, asOf time.Time) (*domain.DayTable, error) {
	key := asOf.Format(time.DateOnly)
	if t, ok := s.caches.tables.Get(key); ok {
		return t, nil
	}

	v, err, _ := s.group.Do(key, func() (any, error) {
		if t, ok := s.caches.tables.Get(key); ok {
			return t, nil
		}
		table, err := s.fetchWithFallback(ctx, asOf)
		if err != nil {
			return nil, err
		}
		s.caches.tables.Set(key, table, s.ttlFor(asOf, table.ResolvedDate))
		return table, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*domain.DayTable), nil
}

// fetchWithFallback tries asOf, then up to FallbackDays earlier dates. A failed
// or timed out attempt only moves the walk on; the caller's cancellation is not
// propagated into the shared fetch.
func (s *fxRateService) fetchWithFallback(ctx context.Context, asOf time.Time) (*domain.DayTable, error) {
	logger := s.GetLogger(ctx)
	fetchCtx := context.WithoutCancel(ctx)

	var lastErr error
	for i := 0; i <= s.cfg.FallbackDays; i++ {
		date := asOf.AddDate(0, 0, -i)
		table, err := s.fetchOnce(fetchCtx, date)
		if err == nil {
			if i > 0 {
				logger.Info("Using earlier rate table",
					slog.String("requested", asOf.Format(time.DateOnly)),
					slog.String("resolved", table.ResolvedDate.Format(time.DateOnly)))
			}
			return table, nil
		}
		lastErr = err
		if errors.Is(err, providers.ErrNoData) {
			logger.Debug("No rate table published", slog.String("date", date.Format(time.DateOnly)))
		} else {
			logger.Warn("Rate table fetch failed",
				slog.String("date", date.Format(time.DateOnly)),
				slog.String("error", err.Error()))
		}
	}
	return nil, fmt.Errorf("no rate table within %d days before %s: %w", s.cfg.FallbackDays, asOf.Format(time.DateOnly), lastErr)
}

func (s *fxRateService) fetchOnce(ctx context.Context, date time.Time) (*domain.DayTable, error) {
	if s.cfg.AttemptTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.cfg.AttemptTimeout)
		defer cancel()
	}
	table, err := s.provider.FetchDayTable(ctx, date)
	if err != nil {
		return nil, err
	}
	if table == nil || len(table.Rates) == 0 {
		return nil, providers.ErrNoData
	}
	return withReference(table, s.provider.ReferenceCurrency(), date), nil
}

// withReference guarantees the reference currency at rate 1 and a resolved date.
func withReference(table *domain.DayTable, reference string, date time.Time) *domain.DayTable {
	if table.ResolvedDate.IsZero() {
		table.ResolvedDate = date
	}
	if reference == "" {
		return table
	}
	if _, ok := table.Rates[reference]; !ok {
		rates := make(map[string]decimal.Decimal, len(table.Rates)+1)
		for k, v := range table.Rates {
			rates[k] = v
		}
		rates[reference] = one
		table.Rates = rates
	}
	if table.Reference == "" {
		table.Reference = reference
	}
	return table
}
