package models

import "time"

// Budget is the budgets table row. Month is stored as the first day of the month.
type Budget struct {
	BudgetID   string    `db:"budget_id"`
	UserID     string    `db:"user_id"`
	CategoryID string    `db:"category_id"`
	Month      time.Time `db:"month"`
	FxColumns
	AuditFields
}
