package domain

// BudgetLimit is a monthly spending limit for one expense category.
// FxDate is always the first day of Month.
type BudgetLimit struct {
	LedgerEntry
	Month string `json:"month"` // YYYY-MM
	AuditFields
}

// BudgetPatch holds the optional mutable attributes of a budget.
type BudgetPatch struct {
	LimitAmount *string
	Currency    *string
}

// TouchesFx reports whether applying the patch requires re-resolving FX fields.
func (p BudgetPatch) TouchesFx() bool {
	return p.LimitAmount != nil || p.Currency != nil
}

// BudgetStatus is the progress state of a budget.
type BudgetStatus string

const (
	BudgetOnTrack BudgetStatus = "on_track"
	BudgetWarning BudgetStatus = "warning"
	BudgetOver    BudgetStatus = "over"
)

// BudgetProgress is a budget joined with its month-to-date spending.
type BudgetProgress struct {
	Budget          BudgetLimit
	CategoryName    string
	CategoryIcon    *string
	LimitCents      int64
	SpentCents      int64
	RemainingCents  int64
	Status          BudgetStatus
	SpentByOriginal []CurrencyAmount
}
