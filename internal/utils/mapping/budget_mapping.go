package mapping

import (
	"github.com/SscSPs/expense_tracker/internal/core/domain"
	"github.com/SscSPs/expense_tracker/internal/models"
	"github.com/SscSPs/expense_tracker/internal/utils/period"
)

// ToModelBudget converts a domain BudgetLimit to a model Budget. The month
// must already be validated.
func ToModelBudget(d domain.BudgetLimit) models.Budget {
	month, _ := period.ParseMonth(d.Month)
	return models.Budget{
		BudgetID:    d.ID,
		UserID:      d.UserID,
		CategoryID:  d.CategoryID,
		Month:       month,
		FxColumns:   ToModelFxColumns(d.FxFields),
		AuditFields: ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainBudget converts a model Budget to a domain BudgetLimit
func ToDomainBudget(m models.Budget) domain.BudgetLimit {
	return domain.BudgetLimit{
		LedgerEntry: domain.LedgerEntry{
			ID:         m.BudgetID,
			UserID:     m.UserID,
			CategoryID: m.CategoryID,
			FxFields:   ToDomainFxFields(m.FxColumns),
		},
		Month:       m.Month.UTC().Format(period.MonthLayout),
		AuditFields: ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainBudgetSlice converts a slice of model Budgets to domain BudgetLimits
func ToDomainBudgetSlice(ms []models.Budget) []domain.BudgetLimit {
	ds := make([]domain.BudgetLimit, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainBudget(m)
	}
	return ds
}
