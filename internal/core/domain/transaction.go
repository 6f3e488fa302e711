package domain

import "time"

// TransactionType is the direction of money movement. Categories share it.
type TransactionType string

const (
	Expense TransactionType = "expense"
	Income  TransactionType = "income"
)

// IsValid reports whether t is a known type.
func (t TransactionType) IsValid() bool {
	return t == Expense || t == Income
}

// PaymentMethod describes how a transaction was paid.
type PaymentMethod string

const (
	PaymentCash     PaymentMethod = "cash"
	PaymentCard     PaymentMethod = "card"
	PaymentTransfer PaymentMethod = "transfer"
	PaymentOther    PaymentMethod = "other"
)

// IsValid reports whether m is a known payment method.
func (m PaymentMethod) IsValid() bool {
	switch m {
	case PaymentCash, PaymentCard, PaymentTransfer, PaymentOther:
		return true
	}
	return false
}

const (
	MaxNoteLength      = 500
	MaxClientRefLength = 64
)

// Transaction is a single income or expense entry.
type Transaction struct {
	LedgerEntry
	Type          TransactionType `json:"type"`
	OccurredAt    time.Time       `json:"occurredAt"`
	PaymentMethod PaymentMethod   `json:"paymentMethod"`
	Note          *string         `json:"note,omitempty"`
	ClientRef     *string         `json:"clientRef,omitempty"` // idempotency key, unique per user
	AuditFields
}

// TransactionPatch holds the optional mutable attributes of a transaction.
type TransactionPatch struct {
	Type          *TransactionType
	CategoryID    *string
	Amount        *string
	Currency      *string
	OccurredAt    *time.Time
	PaymentMethod *PaymentMethod
	Note          *string
	ClientRef     *string
}

// TouchesFx reports whether applying the patch requires re-resolving FX fields.
func (p TransactionPatch) TouchesFx() bool {
	return p.Amount != nil || p.Currency != nil || p.OccurredAt != nil
}

// TouchesCategory reports whether the category/type pairing must be re-checked.
func (p TransactionPatch) TouchesCategory() bool {
	return p.Type != nil || p.CategoryID != nil
}

// TransactionFilter narrows listings and range reads.
type TransactionFilter struct {
	Type          *TransactionType
	CategoryID    *string
	PaymentMethod *PaymentMethod
	Query         *string // case-insensitive substring of the note
}

// TransactionPage is one page of a keyset-paginated listing.
type TransactionPage struct {
	Items      []Transaction
	NextCursor *string
}
