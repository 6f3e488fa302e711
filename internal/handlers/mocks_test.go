package handlers_test

import (
	"context"
	"time"

	"github.com/SscSPs/expense_tracker/internal/core/domain"
	portssvc "github.com/SscSPs/expense_tracker/internal/core/ports/services"
	"github.com/SscSPs/expense_tracker/internal/dto"
	"github.com/stretchr/testify/mock"
)

// --- Mock UserService ---
type MockUserService struct {
	mock.Mock
}

func (m *MockUserService) GetUserByID(ctx context.Context, userID string) (*domain.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserService) EnsureUser(ctx context.Context, externalAuthID string, email, name *string) (*domain.User, error) {
	args := m.Called(ctx, externalAuthID, email, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

var _ portssvc.UserSvcFacade = (*MockUserService)(nil)

// --- Mock CategoryService ---
type MockCategoryService struct {
	mock.Mock
}

func (m *MockCategoryService) ListCategories(ctx context.Context, user domain.User, categoryType *domain.TransactionType, includeArchived bool) ([]domain.Category, error) {
	args := m.Called(ctx, user, categoryType, includeArchived)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Category), args.Error(1)
}

func (m *MockCategoryService) CreateCategory(ctx context.Context, user domain.User, req dto.CreateCategoryRequest) (*domain.Category, error) {
	args := m.Called(ctx, user, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Category), args.Error(1)
}

func (m *MockCategoryService) UpdateCategory(ctx context.Context, user domain.User, categoryID string, patch domain.CategoryPatch) (*domain.Category, error) {
	args := m.Called(ctx, user, categoryID, patch)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Category), args.Error(1)
}

func (m *MockCategoryService) SeedDefaultCategories(ctx context.Context, userID string) error {
	return m.Called(ctx, userID).Error(0)
}

var _ portssvc.CategorySvcFacade = (*MockCategoryService)(nil)

// --- Mock TransactionService ---
type MockTransactionService struct {
	mock.Mock
}

func (m *MockTransactionService) GetTransaction(ctx context.Context, user domain.User, transactionID string) (*domain.Transaction, error) {
	args := m.Called(ctx, user, transactionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}

func (m *MockTransactionService) ListTransactions(ctx context.Context, user domain.User, params dto.ListTransactionsParams) (*domain.TransactionPage, error) {
	args := m.Called(ctx, user, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.TransactionPage), args.Error(1)
}

func (m *MockTransactionService) CreateTransaction(ctx context.Context, user domain.User, req dto.CreateTransactionRequest) (*domain.Transaction, error) {
	args := m.Called(ctx, user, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}

func (m *MockTransactionService) UpdateTransaction(ctx context.Context, user domain.User, transactionID string, patch domain.TransactionPatch) (*domain.Transaction, error) {
	args := m.Called(ctx, user, transactionID, patch)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}

func (m *MockTransactionService) DeleteTransaction(ctx context.Context, user domain.User, transactionID string) error {
	return m.Called(ctx, user, transactionID).Error(0)
}

var _ portssvc.TransactionSvcFacade = (*MockTransactionService)(nil)

// --- Mock BudgetService ---
type MockBudgetService struct {
	mock.Mock
}

func (m *MockBudgetService) ListBudgets(ctx context.Context, user domain.User, month string) ([]domain.BudgetProgress, error) {
	args := m.Called(ctx, user, month)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.BudgetProgress), args.Error(1)
}

func (m *MockBudgetService) CreateBudget(ctx context.Context, user domain.User, req dto.CreateBudgetRequest) (*domain.BudgetLimit, error) {
	args := m.Called(ctx, user, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.BudgetLimit), args.Error(1)
}

func (m *MockBudgetService) UpdateBudget(ctx context.Context, user domain.User, budgetID string, patch domain.BudgetPatch) (*domain.BudgetLimit, error) {
	args := m.Called(ctx, user, budgetID, patch)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.BudgetLimit), args.Error(1)
}

func (m *MockBudgetService) DeleteBudget(ctx context.Context, user domain.User, budgetID string) error {
	return m.Called(ctx, user, budgetID).Error(0)
}

var _ portssvc.BudgetSvcFacade = (*MockBudgetService)(nil)

// --- Mock ReportingService ---
type MockReportingService struct {
	mock.Mock
}

func (m *MockReportingService) DashboardSummary(ctx context.Context, user domain.User, month string) (*domain.DashboardSummary, error) {
	args := m.Called(ctx, user, month)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.DashboardSummary), args.Error(1)
}

func (m *MockReportingService) StatsSummary(ctx context.Context, user domain.User, from, to time.Time) (*domain.PeriodSummary, error) {
	args := m.Called(ctx, user, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PeriodSummary), args.Error(1)
}

func (m *MockReportingService) StatsTimeSeries(ctx context.Context, user domain.User, from, to time.Time, g domain.Granularity) ([]domain.TimeBucket, error) {
	args := m.Called(ctx, user, from, to, g)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.TimeBucket), args.Error(1)
}

var _ portssvc.ReportingSvcFacade = (*MockReportingService)(nil)

// --- Mock FxRateService ---
type MockFxRateService struct {
	mock.Mock
}

func (m *MockFxRateService) GetRate(ctx context.Context, base, quote string, asOf time.Time) (*domain.FxQuote, error) {
	args := m.Called(ctx, base, quote, asOf)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.FxQuote), args.Error(1)
}

func (m *MockFxRateService) GetRates(ctx context.Context, base string, quotes []string, asOf time.Time) (*domain.FxRateSet, error) {
	args := m.Called(ctx, base, quotes, asOf)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.FxRateSet), args.Error(1)
}

func (m *MockFxRateService) GetLatestRate(ctx context.Context, base, quote string, loc *time.Location) (*domain.FxQuote, error) {
	args := m.Called(ctx, base, quote, loc)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.FxQuote), args.Error(1)
}

func (m *MockFxRateService) ComputeFxFields(ctx context.Context, baseCurrency string, anchor time.Time, amount, currency string) (*domain.FxFields, error) {
	args := m.Called(ctx, baseCurrency, anchor, amount, currency)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.FxFields), args.Error(1)
}

var _ portssvc.FxRateSvcFacade = (*MockFxRateService)(nil)
