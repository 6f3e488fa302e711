package services

import (
	portsprov "github.com/SscSPs/expense_tracker/internal/core/ports/providers"
	portsrepo "github.com/SscSPs/expense_tracker/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/expense_tracker/internal/core/ports/services"
	"github.com/SscSPs/expense_tracker/internal/platform/config"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider, provider portsprov.FxTableProvider, fxCaches *FxCaches) *portssvc.ServiceContainer {
	loc := cfg.Location()

	container := &portssvc.ServiceContainer{}

	// The FX resolver is shared by every ledger writer.
	container.FxRate = NewFxRateService(provider, fxCaches, FxConfig{
		TodayTTL:       cfg.FxTodayTTL,
		HistoricalTTL:  cfg.FxHistoricalTTL,
		FallbackDays:   cfg.FxFallbackDays,
		AttemptTimeout: cfg.FxHTTPTimeout,
		Location:       loc,
	})

	container.Category = NewCategoryService(repos.CategoryRepo)
	container.User = NewUserService(repos.UserRepo, container.Category, repos.TxManager, UserDefaults{
		BaseCurrency: cfg.DefaultBaseCurrency,
		Timezone:     cfg.DefaultTimezone,
	})
	container.Transaction = NewTransactionService(
		repos.TransactionRepo,
		repos.CategoryRepo,
		container.FxRate,
		WithPageSizes(cfg.PageSizeDefault, cfg.PageSizeMax),
		WithTransactionLocation(loc),
	)
	container.Budget = NewBudgetService(
		repos.BudgetRepo,
		repos.CategoryRepo,
		repos.TransactionRepo,
		repos.TxManager,
		container.FxRate,
		WithWarningThreshold(cfg.WarningThreshold),
		WithBudgetLocation(loc),
	)
	container.Reporting = NewReportingService(
		repos.TransactionRepo,
		repos.CategoryRepo,
		repos.TxManager,
		WithReportingLocation(loc),
	)

	return container
}
