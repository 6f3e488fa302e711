package dto

import (
	"strings"
	"time"

	"github.com/SscSPs/expense_tracker/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateTransactionRequest defines the data needed to record a transaction.
type CreateTransactionRequest struct {
	Type          domain.TransactionType `json:"type" binding:"required,oneof=expense income"`
	CategoryID    string                 `json:"categoryID" binding:"required"`
	Amount        string                 `json:"amount" binding:"required,amount"`
	Currency      string                 `json:"currency" binding:"required,currency"`
	OccurredAt    time.Time              `json:"occurredAt" binding:"required"`
	PaymentMethod domain.PaymentMethod   `json:"paymentMethod" binding:"omitempty,oneof=cash card transfer other"`
	Note          *string                `json:"note" binding:"omitempty,max=500"`
	ClientRef     *string                `json:"clientRef" binding:"omitempty,min=1,max=64"`
}

// UpdateTransactionRequest defines the data allowed for updating a transaction.
// Using pointers to differentiate between omitted fields and zero-value fields.
type UpdateTransactionRequest struct {
	Type          *domain.TransactionType `json:"type" binding:"omitempty,oneof=expense income"`
	CategoryID    *string                 `json:"categoryID" binding:"omitempty,min=1"`
	Amount        *string                 `json:"amount" binding:"omitempty,amount"`
	Currency      *string                 `json:"currency" binding:"omitempty,currency"`
	OccurredAt    *time.Time              `json:"occurredAt"`
	PaymentMethod *domain.PaymentMethod   `json:"paymentMethod" binding:"omitempty,oneof=cash card transfer other"`
	Note          *string                 `json:"note" binding:"omitempty,max=500"`
	ClientRef     *string                 `json:"clientRef" binding:"omitempty,min=1,max=64"`
}

// ToPatch converts the request into a domain patch.
func (r UpdateTransactionRequest) ToPatch() domain.TransactionPatch {
	return domain.TransactionPatch{
		Type:          r.Type,
		CategoryID:    r.CategoryID,
		Amount:        r.Amount,
		Currency:      r.Currency,
		OccurredAt:    r.OccurredAt,
		PaymentMethod: r.PaymentMethod,
		Note:          r.Note,
		ClientRef:     r.ClientRef,
	}
}

// ListTransactionsParams defines query parameters for listing transactions.
// Either Month or the From/To pair selects the period; both are optional.
type ListTransactionsParams struct {
	Month         string `form:"month" binding:"omitempty,yearmonth"`
	From          string `form:"from" binding:"omitempty,datetime=2006-01-02"`
	To            string `form:"to" binding:"omitempty,datetime=2006-01-02"`
	Type          string `form:"type" binding:"omitempty,oneof=expense income"`
	CategoryID    string `form:"categoryID"`
	PaymentMethod string `form:"paymentMethod" binding:"omitempty,oneof=cash card transfer other"`
	Query         string `form:"q" binding:"omitempty,max=100"`
	Limit         int    `form:"limit" binding:"omitempty,min=0"`
	Cursor        string `form:"cursor"`
}

// Filter builds the domain filter from the query parameters.
func (p ListTransactionsParams) Filter() domain.TransactionFilter {
	var f domain.TransactionFilter
	if p.Type != "" {
		t := domain.TransactionType(p.Type)
		f.Type = &t
	}
	if p.CategoryID != "" {
		id := p.CategoryID
		f.CategoryID = &id
	}
	if p.PaymentMethod != "" {
		m := domain.PaymentMethod(p.PaymentMethod)
		f.PaymentMethod = &m
	}
	if q := strings.TrimSpace(p.Query); q != "" {
		f.Query = &q
	}
	return f
}

// TransactionResponse defines the data returned for a transaction.
type TransactionResponse struct {
	TransactionID    string                 `json:"transactionID"`
	Type             domain.TransactionType `json:"type"`
	CategoryID       string                 `json:"categoryID"`
	Amount           string                 `json:"amount"`
	Currency         string                 `json:"currency"`
	OriginalAmount   string                 `json:"originalAmount"`
	OriginalCurrency string                 `json:"originalCurrency"`
	FxRateToBase     decimal.Decimal        `json:"fxRateToBase"`
	FxDate           string                 `json:"fxDate"`
	OccurredAt       time.Time              `json:"occurredAt"`
	PaymentMethod    domain.PaymentMethod   `json:"paymentMethod"`
	Note             *string                `json:"note,omitempty"`
	ClientRef        *string                `json:"clientRef,omitempty"`
	CreatedAt        time.Time              `json:"createdAt"`
	LastUpdatedAt    time.Time              `json:"lastUpdatedAt"`
}

// ListTransactionsResponse wraps one page of transactions.
type ListTransactionsResponse struct {
	Items      []TransactionResponse `json:"items"`
	NextCursor *string               `json:"nextCursor"`
}

// ToTransactionResponse converts a domain.Transaction to TransactionResponse DTO.
func ToTransactionResponse(txn *domain.Transaction) TransactionResponse {
	return TransactionResponse{
		TransactionID:    txn.ID,
		Type:             txn.Type,
		CategoryID:       txn.CategoryID,
		Amount:           amount(txn.BaseAmount.Cents),
		Currency:         txn.BaseAmount.Currency,
		OriginalAmount:   amount(txn.OriginalAmount.Cents),
		OriginalCurrency: txn.OriginalAmount.Currency,
		FxRateToBase:     txn.FxRate,
		FxDate:           formatDate(txn.FxDate),
		OccurredAt:       txn.OccurredAt,
		PaymentMethod:    txn.PaymentMethod,
		Note:             txn.Note,
		ClientRef:        txn.ClientRef,
		CreatedAt:        txn.CreatedAt,
		LastUpdatedAt:    txn.LastUpdatedAt,
	}
}

// ToTransactionResponses converts a slice of domain.Transaction to []TransactionResponse.
func ToTransactionResponses(txns []domain.Transaction) []TransactionResponse {
	responses := make([]TransactionResponse, len(txns))
	for i := range txns {
		responses[i] = ToTransactionResponse(&txns[i])
	}
	return responses
}

// ToListTransactionsResponse converts a page into its response DTO.
func ToListTransactionsResponse(page *domain.TransactionPage) ListTransactionsResponse {
	return ListTransactionsResponse{
		Items:      ToTransactionResponses(page.Items),
		NextCursor: page.NextCursor,
	}
}
