package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/SscSPs/expense_tracker/internal/apperrors"
	"github.com/SscSPs/expense_tracker/internal/core/domain"
	portsrepo "github.com/SscSPs/expense_tracker/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/expense_tracker/internal/core/ports/services"
	"github.com/SscSPs/expense_tracker/internal/dto"
	"github.com/SscSPs/expense_tracker/internal/utils/aggregation"
	"github.com/SscSPs/expense_tracker/internal/utils/money"
	"github.com/SscSPs/expense_tracker/internal/utils/period"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// budgetService manages monthly expense limits. A budget's FX date is always
// the first day of its month.
type budgetService struct {
	BaseService
	budgetRepo   portsrepo.BudgetRepositoryFacade
	categoryRepo portsrepo.CategoryReader
	txnRepo      portsrepo.TransactionReader
	txManager    portsrepo.TransactionManager
	fx           portssvc.FxFieldsCalculator
	threshold    decimal.Decimal
}

// BudgetServiceOption is a function that configures a budgetService
type BudgetServiceOption func(*budgetService)

// WithWarningThreshold sets the spent/limit share at which status becomes warning.
func WithWarningThreshold(threshold decimal.Decimal) BudgetServiceOption {
	return func(s *budgetService) {
		if threshold.IsPositive() {
			s.threshold = threshold
		}
	}
}

// WithBudgetLocation sets the timezone used for users without one.
func WithBudgetLocation(loc *time.Location) BudgetServiceOption {
	return func(s *budgetService) {
		if loc != nil {
			s.DefaultLocation = loc
		}
	}
}

// WithBudgetClock replaces the service clock.
func WithBudgetClock(now func() time.Time) BudgetServiceOption {
	return func(s *budgetService) {
		s.Now = now
	}
}

// NewBudgetService creates a new BudgetService.
func NewBudgetService(
	budgetRepo portsrepo.BudgetRepositoryFacade,
	categoryRepo portsrepo.CategoryReader,
	txnRepo portsrepo.TransactionReader,
	txManager portsrepo.TransactionManager,
	fx portssvc.FxFieldsCalculator,
	opts ...BudgetServiceOption,
) portssvc.BudgetSvcFacade {
	s := &budgetService{
		BaseService:  newBaseService(nil),
		budgetRepo:   budgetRepo,
		categoryRepo: categoryRepo,
		txnRepo:      txnRepo,
		txManager:    txManager,
		fx:           fx,
		threshold:    aggregation.DefaultWarningThreshold,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

var _ portssvc.BudgetSvcFacade = (*budgetService)(nil)

func (s *budgetService) CreateBudget(ctx context.Context, user domain.User, req dto.CreateBudgetRequest) (*domain.BudgetLimit, error) {
	anchor, err := period.ParseMonth(req.Month)
	if err != nil {
		return nil, err
	}
	if _, err := money.ParseAmount(req.LimitAmount); err != nil {
		return nil, err
	}
	if _, err := requireCategory(ctx, s.categoryRepo, user.UserID, req.CategoryID, domain.Expense); err != nil {
		return nil, err
	}

	fields, err := s.fx.ComputeFxFields(ctx, user.BaseCurrency, anchor, req.LimitAmount, req.Currency)
	if err != nil {
		s.LogError(ctx, err, "Failed to compute budget FX fields", slog.String("month", req.Month))
		return nil, err
	}

	budget := domain.BudgetLimit{
		LedgerEntry: domain.LedgerEntry{
			ID:         uuid.NewString(),
			UserID:     user.UserID,
			CategoryID: req.CategoryID,
			FxFields:   *fields,
		},
		Month:       anchor.Format(period.MonthLayout),
		AuditFields: domain.NewAuditFields(user.UserID, s.now()),
	}
	if err := s.budgetRepo.SaveBudget(ctx, budget); err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			return nil, apperrors.NewConflictError(fmt.Sprintf("budget for category %s in %s already exists", req.CategoryID, budget.Month))
		}
		s.LogError(ctx, err, "Failed to save budget")
		return nil, err
	}
	s.LogInfo(ctx, "Budget created", slog.String("budget_id", budget.ID), slog.String("month", budget.Month))
	return &budget, nil
}

// UpdateBudget re-resolves FX at the unchanged first-of-month anchor whenever
// limit or currency is present.
func (s *budgetService) UpdateBudget(ctx context.Context, user domain.User, budgetID string, patch domain.BudgetPatch) (*domain.BudgetLimit, error) {
	existing, err := s.budgetRepo.FindBudgetByID(ctx, user.UserID, budgetID)
	if err != nil {
		return nil, err
	}
	if !patch.TouchesFx() {
		return existing, nil
	}

	anchor, err := period.ParseMonth(existing.Month)
	if err != nil {
		return nil, err
	}
	amount := money.FormatCents(existing.OriginalAmount.Cents)
	if patch.LimitAmount != nil {
		amount = *patch.LimitAmount
	}
	currency := existing.OriginalAmount.Currency
	if patch.Currency != nil {
		currency = *patch.Currency
	}

	fields, err := s.fx.ComputeFxFields(ctx, user.BaseCurrency, anchor, amount, currency)
	if err != nil {
		s.LogError(ctx, err, "Failed to recompute budget FX fields", slog.String("budget_id", budgetID))
		return nil, err
	}

	updated := *existing
	updated.FxFields = *fields
	updated.Touch(user.UserID, s.now())
	if err := s.budgetRepo.UpdateBudget(ctx, updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

func (s *budgetService) DeleteBudget(ctx context.Context, user domain.User, budgetID string) error {
	if err := s.budgetRepo.DeleteBudget(ctx, user.UserID, budgetID); err != nil {
		return err
	}
	s.LogInfo(ctx, "Budget deleted", slog.String("budget_id", budgetID))
	return nil
}

// ListBudgets reads budgets, categories and the month's expenses from one
// snapshot and joins them into progress rows. An empty month means the
// current month in the user's timezone.
func (s *budgetService) ListBudgets(ctx context.Context, user domain.User, month string) ([]domain.BudgetProgress, error) {
	loc := s.userLocation(user)
	if month == "" {
		month = period.MonthOf(s.now(), loc)
	}
	rng, err := period.MonthRange(month, loc)
	if err != nil {
		return nil, err
	}

	var (
		budgets    []domain.BudgetLimit
		expenses   []domain.Transaction
		categories []domain.Category
	)
	err = s.txManager.WithinSnapshot(ctx, func(ctx context.Context) error {
		var err error
		if budgets, err = s.budgetRepo.ListBudgetsByMonth(ctx, user.UserID, month); err != nil {
			return err
		}
		if len(budgets) == 0 {
			return nil
		}
		expense := domain.Expense
		if expenses, err = s.txnRepo.FindTransactionsInRange(ctx, user.UserID, rng.Start, rng.End, domain.TransactionFilter{Type: &expense}); err != nil {
			return err
		}
		categories, err = s.categoryRepo.ListCategories(ctx, user.UserID, &expense, true)
		return err
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to load budgets", slog.String("month", month))
		return nil, err
	}

	spent := aggregation.SpentByCategory(expenses)
	spentOriginal := aggregation.SpentByCategoryOriginal(expenses)
	byID := categoryIndex(categories)

	out := make([]domain.BudgetProgress, 0, len(budgets))
	for _, b := range budgets {
		limit := b.BaseAmount.Cents
		used := spent[b.CategoryID]
		original := spentOriginal[b.CategoryID]
		if original == nil {
			original = []domain.CurrencyAmount{}
		}
		cat := byID[b.CategoryID]
		out = append(out, domain.BudgetProgress{
			Budget:          b,
			CategoryName:    cat.Name,
			CategoryIcon:    cat.Icon,
			LimitCents:      limit,
			SpentCents:      used,
			RemainingCents:  aggregation.Remaining(limit, used),
			Status:          aggregation.BudgetStatus(limit, used, s.threshold),
			SpentByOriginal: original,
		})
	}
	return out, nil
}
