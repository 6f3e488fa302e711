package services

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/SscSPs/expense_tracker/internal/apperrors"
	"github.com/SscSPs/expense_tracker/internal/core/domain"
	portsrepo "github.com/SscSPs/expense_tracker/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/expense_tracker/internal/core/ports/services"
	"github.com/SscSPs/expense_tracker/internal/utils/aggregation"
	"github.com/SscSPs/expense_tracker/internal/utils/period"
)

const (
	recentTransactionsLimit = 10
	maxSeriesBuckets        = 1000
)

type reportingService struct {
	BaseService
	txnRepo      portsrepo.TransactionReader
	categoryRepo portsrepo.CategoryReader
	txManager    portsrepo.TransactionManager
}

// ReportingServiceOption is a function that configures a reportingService
type ReportingServiceOption func(*reportingService)

// WithReportingLocation sets the timezone used for users without one.
func WithReportingLocation(loc *time.Location) ReportingServiceOption {
	return func(s *reportingService) {
		if loc != nil {
			s.DefaultLocation = loc
		}
	}
}

// WithReportingClock replaces the service clock.
func WithReportingClock(now func() time.Time) ReportingServiceOption {
	return func(s *reportingService) {
		s.Now = now
	}
}

// NewReportingService creates a new ReportingService.
func NewReportingService(txnRepo portsrepo.TransactionReader, categoryRepo portsrepo.CategoryReader, txManager portsrepo.TransactionManager, opts ...ReportingServiceOption) portssvc.ReportingSvcFacade {
	s := &reportingService{
		BaseService:  newBaseService(nil),
		txnRepo:      txnRepo,
		categoryRepo: categoryRepo,
		txManager:    txManager,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

var _ portssvc.ReportingSvcFacade = (*reportingService)(nil)

// DashboardSummary aggregates one month. An empty month means the current one.
func (s *reportingService) DashboardSummary(ctx context.Context, user domain.User, month string) (*domain.DashboardSummary, error) {
	loc := s.userLocation(user)
	if month == "" {
		month = period.MonthOf(s.now(), loc)
	}
	rng, err := period.MonthRange(month, loc)
	if err != nil {
		return nil, err
	}
	first, _ := period.ParseMonth(month)

	entries, categories, err := s.load(ctx, user, rng)
	if err != nil {
		return nil, err
	}

	summary := s.summarize(user, first, first.AddDate(0, 1, -1), entries, categories)
	names := make(map[string]string, len(categories))
	for _, c := range categories {
		names[c.ID] = c.Name
	}
	return &domain.DashboardSummary{
		Month:         month,
		PeriodSummary: *summary,
		Recent:        newest(entries, recentTransactionsLimit),
		CategoryNames: names,
	}, nil
}

// StatsSummary aggregates the inclusive calendar range [from, to].
func (s *reportingService) StatsSummary(ctx context.Context, user domain.User, from, to time.Time) (*domain.PeriodSummary, error) {
	from, to = period.Date(from, nil), period.Date(to, nil)
	rng, err := period.DayRange(from, to, s.userLocation(user))
	if err != nil {
		return nil, err
	}
	entries, categories, err := s.load(ctx, user, rng)
	if err != nil {
		return nil, err
	}
	return s.summarize(user, from, to, entries, categories), nil
}

// StatsTimeSeries returns every bucket of [from, to] in ascending order, empty ones included.
func (s *reportingService) StatsTimeSeries(ctx context.Context, user domain.User, from, to time.Time, g domain.Granularity) ([]domain.TimeBucket, error) {
	if g == "" {
		g = domain.GranularityDay
	}
	if !g.IsValid() {
		return nil, fmt.Errorf("%w: invalid granularity %q", apperrors.ErrValidation, g)
	}
	from, to = period.Date(from, nil), period.Date(to, nil)
	loc := s.userLocation(user)
	rng, err := period.DayRange(from, to, loc)
	if err != nil {
		return nil, err
	}
	if n := len(period.Buckets(from, to, g)); n > maxSeriesBuckets {
		return nil, fmt.Errorf("%w: range spans %d %s buckets, at most %d allowed", apperrors.ErrValidation, n, g, maxSeriesBuckets)
	}

	var entries []domain.Transaction
	err = s.txManager.WithinSnapshot(ctx, func(ctx context.Context) error {
		var err error
		entries, err = s.txnRepo.FindTransactionsInRange(ctx, user.UserID, rng.Start, rng.End, domain.TransactionFilter{})
		return err
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to load transactions for series")
		return nil, err
	}
	return aggregation.TimeSeries(entries, from, to, g, loc), nil
}

// load reads the range's entries and every category from one snapshot.
func (s *reportingService) load(ctx context.Context, user domain.User, rng period.Range) ([]domain.Transaction, []domain.Category, error) {
	var (
		entries    []domain.Transaction
		categories []domain.Category
	)
	err := s.txManager.WithinSnapshot(ctx, func(ctx context.Context) error {
		var err error
		if entries, err = s.txnRepo.FindTransactionsInRange(ctx, user.UserID, rng.Start, rng.End, domain.TransactionFilter{}); err != nil {
			return err
		}
		categories, err = s.categoryRepo.ListCategories(ctx, user.UserID, nil, true)
		return err
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to load report data",
			slog.Time("from", rng.Start), slog.Time("to", rng.End))
		return nil, nil, err
	}
	return entries, categories, nil
}

func (s *reportingService) summarize(user domain.User, from, to time.Time, entries []domain.Transaction, categories []domain.Category) *domain.PeriodSummary {
	totals, byOriginal, byCategory, byCategoryOriginal := aggregation.Summarize(entries, categoryIndex(categories))
	return &domain.PeriodSummary{
		From:                        from,
		To:                          to,
		BaseCurrency:                user.BaseCurrency,
		Totals:                      totals,
		ByOriginal:                  byOriginal,
		ByCategory:                  byCategory,
		ExpenseByCategoryByOriginal: byCategoryOriginal,
	}
}

// newest returns up to n entries ordered by (occurredAt DESC, id DESC).
func newest(entries []domain.Transaction, n int) []domain.Transaction {
	sorted := make([]domain.Transaction, len(entries))
	copy(sorted, entries)
	sort.Slice(sorted, func(i, j int) bool {
		if !sorted[i].OccurredAt.Equal(sorted[j].OccurredAt) {
			return sorted[i].OccurredAt.After(sorted[j].OccurredAt)
		}
		return sorted[i].ID > sorted[j].ID
	})
	if len(sorted) > n {
		sorted = sorted[:n]
	}
	return sorted
}
