package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/expense_tracker/internal/core/domain"
	"github.com/SscSPs/expense_tracker/internal/utils/pagination"
)

// TransactionReader defines read operations for ledger transactions
type TransactionReader interface {
	// FindTransactionByID retrieves a transaction owned by userID.
	FindTransactionByID(ctx context.Context, userID, transactionID string) (*domain.Transaction, error)

	// FindTransactionByClientRef retrieves a transaction by its idempotency key.
	FindTransactionByClientRef(ctx context.Context, userID, clientRef string) (*domain.Transaction, error)

	// FindTransactionsInRange returns every transaction with from <= occurredAt < to.
	FindTransactionsInRange(ctx context.Context, userID string, from, to time.Time, filter domain.TransactionFilter) ([]domain.Transaction, error)

	// ListTransactions returns up to limit transactions in [from, to) ordered by
	// (occurredAt DESC, id DESC), starting strictly after cursor when given.
	ListTransactions(ctx context.Context, userID string, from, to *time.Time, filter domain.TransactionFilter, limit int, cursor *pagination.Cursor) ([]domain.Transaction, error)
}

// TransactionWriter defines write operations for ledger transactions.
// Writes always carry the full FX field bundle.
type TransactionWriter interface {
	// SaveTransaction inserts a new transaction.
	SaveTransaction(ctx context.Context, txn domain.Transaction) error

	// UpdateTransaction overwrites every mutable column of a transaction in one statement.
	UpdateTransaction(ctx context.Context, txn domain.Transaction) error

	// DeleteTransaction hard-deletes a transaction.
	DeleteTransaction(ctx context.Context, userID, transactionID string) error
}

// TransactionRepositoryFacade combines all transaction repository interfaces
type TransactionRepositoryFacade interface {
	TransactionReader
	TransactionWriter
}
