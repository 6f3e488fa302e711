package services

import (
	"context"

	"github.com/SscSPs/expense_tracker/internal/core/domain"
	"github.com/SscSPs/expense_tracker/internal/dto"
)

// TransactionReaderSvc defines read operations for transactions
type TransactionReaderSvc interface {
	GetTransaction(ctx context.Context, user domain.User, transactionID string) (*domain.Transaction, error)

	// ListTransactions returns one keyset page ordered by (occurredAt DESC, id DESC).
	ListTransactions(ctx context.Context, user domain.User, params dto.ListTransactionsParams) (*domain.TransactionPage, error)
}

// TransactionWriterSvc defines write operations for transactions.
// Every write that touches amount, currency or occurredAt re-resolves the
// whole FX bundle before persisting.
type TransactionWriterSvc interface {
	CreateTransaction(ctx context.Context, user domain.User, req dto.CreateTransactionRequest) (*domain.Transaction, error)
	UpdateTransaction(ctx context.Context, user domain.User, transactionID string, patch domain.TransactionPatch) (*domain.Transaction, error)
	DeleteTransaction(ctx context.Context, user domain.User, transactionID string) error
}

// TransactionSvcFacade combines all transaction service interfaces
type TransactionSvcFacade interface {
	TransactionReaderSvc
	TransactionWriterSvc
}
