package repositories

import (
	"context"

	"github.com/SscSPs/expense_tracker/internal/core/domain"
)

// BudgetReader defines read operations for budgets
type BudgetReader interface {
	// FindBudgetByID retrieves a budget owned by userID.
	FindBudgetByID(ctx context.Context, userID, budgetID string) (*domain.BudgetLimit, error)

	// ListBudgetsByMonth lists a user's budgets for a YYYY-MM month.
	ListBudgetsByMonth(ctx context.Context, userID, month string) ([]domain.BudgetLimit, error)
}

// BudgetWriter defines write operations for budgets
type BudgetWriter interface {
	// SaveBudget inserts a new budget. A second budget for the same month and category is ErrDuplicate.
	SaveBudget(ctx context.Context, budget domain.BudgetLimit) error

	// UpdateBudget overwrites the limit and FX fields of a budget in one statement.
	UpdateBudget(ctx context.Context, budget domain.BudgetLimit) error

	// DeleteBudget hard-deletes a budget.
	DeleteBudget(ctx context.Context, userID, budgetID string) error
}

// BudgetRepositoryFacade combines all budget repository interfaces
type BudgetRepositoryFacade interface {
	BudgetReader
	BudgetWriter
}
