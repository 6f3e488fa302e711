package dto

import (
	"time"

	"github.com/SscSPs/expense_tracker/internal/utils/money"
)

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	Error     string `json:"error"`
	Code      string `json:"code"`
	RequestID string `json:"requestId,omitempty"`
}

// CurrencyAmountResponse is an unconverted amount in one currency.
type CurrencyAmountResponse struct {
	Currency string `json:"currency"`
	Amount   string `json:"amount"`
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(time.DateOnly)
}

func amount(cents int64) string {
	return money.FormatCents(cents)
}
