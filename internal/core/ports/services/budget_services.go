package services

import (
	"context"

	"github.com/SscSPs/expense_tracker/internal/core/domain"
	"github.com/SscSPs/expense_tracker/internal/dto"
)

// BudgetReaderSvc defines read operations for budgets
type BudgetReaderSvc interface {
	// ListBudgets returns every budget of month with its month-to-date spending.
	ListBudgets(ctx context.Context, user domain.User, month string) ([]domain.BudgetProgress, error)
}

// BudgetWriterSvc defines write operations for budgets
type BudgetWriterSvc interface {
	CreateBudget(ctx context.Context, user domain.User, req dto.CreateBudgetRequest) (*domain.BudgetLimit, error)
	UpdateBudget(ctx context.Context, user domain.User, budgetID string, patch domain.BudgetPatch) (*domain.BudgetLimit, error)
	DeleteBudget(ctx context.Context, user domain.User, budgetID string) error
}

// BudgetSvcFacade combines all budget service interfaces
type BudgetSvcFacade interface {
	BudgetReaderSvc
	BudgetWriterSvc
}
