package dto

import (
	"github.com/SscSPs/expense_tracker/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateBudgetRequest defines the data needed to create a monthly budget.
type CreateBudgetRequest struct {
	Month       string `json:"month" binding:"required,yearmonth"`
	CategoryID  string `json:"categoryID" binding:"required"`
	LimitAmount string `json:"limitAmount" binding:"required,amount"`
	Currency    string `json:"currency" binding:"required,currency"`
}

// UpdateBudgetRequest defines the data allowed for updating a budget.
type UpdateBudgetRequest struct {
	LimitAmount *string `json:"limitAmount" binding:"omitempty,amount"`
	Currency    *string `json:"currency" binding:"omitempty,currency"`
}

// ToPatch converts the request into a domain patch.
func (r UpdateBudgetRequest) ToPatch() domain.BudgetPatch {
	return domain.BudgetPatch{LimitAmount: r.LimitAmount, Currency: r.Currency}
}

// ListBudgetsParams defines query parameters for listing budgets.
type ListBudgetsParams struct {
	Month string `form:"month" binding:"omitempty,yearmonth"`
}

// BudgetResponse defines the data returned for a budget without progress.
type BudgetResponse struct {
	BudgetID         string          `json:"budgetID"`
	Month            string          `json:"month"`
	CategoryID       string          `json:"categoryID"`
	Limit            string          `json:"limit"`
	BaseCurrency     string          `json:"baseCurrency"`
	OriginalLimit    string          `json:"originalLimit"`
	OriginalCurrency string          `json:"originalCurrency"`
	FxRate           decimal.Decimal `json:"fxRate"`
	FxDate           string          `json:"fxDate"`
}

// BudgetProgressResponse is a budget with month-to-date spending.
type BudgetProgressResponse struct {
	BudgetResponse
	CategoryName    string                   `json:"categoryName"`
	CategoryIcon    *string                  `json:"categoryIcon,omitempty"`
	Spent           string                   `json:"spent"`
	Remaining       string                   `json:"remaining"`
	Status          domain.BudgetStatus      `json:"status"`
	SpentByOriginal []CurrencyAmountResponse `json:"spentByOriginal"`
}

// ListBudgetsResponse wraps a month of budgets.
type ListBudgetsResponse struct {
	Month   string                   `json:"month"`
	Budgets []BudgetProgressResponse `json:"budgets"`
}

// ToBudgetResponse converts a domain.BudgetLimit to BudgetResponse DTO.
func ToBudgetResponse(b *domain.BudgetLimit) BudgetResponse {
	return BudgetResponse{
		BudgetID:         b.ID,
		Month:            b.Month,
		CategoryID:       b.CategoryID,
		Limit:            amount(b.BaseAmount.Cents),
		BaseCurrency:     b.BaseAmount.Currency,
		OriginalLimit:    amount(b.OriginalAmount.Cents),
		OriginalCurrency: b.OriginalAmount.Currency,
		FxRate:           b.FxRate,
		FxDate:           formatDate(b.FxDate),
	}
}

// ToListBudgetsResponse converts budget progress rows to the list DTO.
func ToListBudgetsResponse(month string, rows []domain.BudgetProgress) ListBudgetsResponse {
	out := ListBudgetsResponse{Month: month, Budgets: make([]BudgetProgressResponse, len(rows))}
	for i := range rows {
		r := &rows[i]
		spent := make([]CurrencyAmountResponse, len(r.SpentByOriginal))
		for j, s := range r.SpentByOriginal {
			spent[j] = CurrencyAmountResponse{Currency: s.Currency, Amount: amount(s.Cents)}
		}
		out.Budgets[i] = BudgetProgressResponse{
			BudgetResponse:  ToBudgetResponse(&r.Budget),
			CategoryName:    r.CategoryName,
			CategoryIcon:    r.CategoryIcon,
			Spent:           amount(r.SpentCents),
			Remaining:       amount(r.RemainingCents),
			Status:          r.Status,
			SpentByOriginal: spent,
		}
	}
	return out
}
