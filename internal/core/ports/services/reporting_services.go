package services

import (
	"context"
	"time"

	"github.com/SscSPs/expense_tracker/internal/core/domain"
)

// ReportingSvcFacade computes period reports from ledger entries.
type ReportingSvcFacade interface {
	// DashboardSummary aggregates a YYYY-MM month and lists its newest entries.
	DashboardSummary(ctx context.Context, user domain.User, month string) (*domain.DashboardSummary, error)

	// StatsSummary aggregates the inclusive calendar range [from, to].
	StatsSummary(ctx context.Context, user domain.User, from, to time.Time) (*domain.PeriodSummary, error)

	// StatsTimeSeries buckets base income and expense over [from, to].
	StatsTimeSeries(ctx context.Context, user domain.User, from, to time.Time, g domain.Granularity) ([]domain.TimeBucket, error)
}
