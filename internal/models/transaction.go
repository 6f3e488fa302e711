package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// FxColumns are the dual-currency columns shared by transactions and budgets.
// They are always written together.
type FxColumns struct {
	OriginalCents    int64           `db:"original_cents"`
	OriginalCurrency string          `db:"original_currency"`
	BaseCents        int64           `db:"base_cents"`
	BaseCurrency     string          `db:"base_currency"`
	FxRate           decimal.Decimal `db:"fx_rate"` // NUMERIC(24,10)
	FxDate           time.Time       `db:"fx_date"` // DATE
}

// Transaction is the transactions table row.
type Transaction struct {
	TransactionID string    `db:"transaction_id"`
	UserID        string    `db:"user_id"`
	CategoryID    string    `db:"category_id"`
	Type          string    `db:"type"`
	OccurredAt    time.Time `db:"occurred_at"`
	PaymentMethod string    `db:"payment_method"`
	Note          *string   `db:"note"`
	ClientRef     *string   `db:"client_ref"`
	FxColumns
	AuditFields
}
