package mapping

import (
	"github.com/SscSPs/expense_tracker/internal/core/domain"
	"github.com/SscSPs/expense_tracker/internal/models"
)

// ToModelTransaction converts a domain Transaction to a model Transaction
func ToModelTransaction(d domain.Transaction) models.Transaction {
	return models.Transaction{
		TransactionID: d.ID,
		UserID:        d.UserID,
		CategoryID:    d.CategoryID,
		Type:          string(d.Type),
		OccurredAt:    d.OccurredAt.UTC(),
		PaymentMethod: string(d.PaymentMethod),
		Note:          d.Note,
		ClientRef:     d.ClientRef,
		FxColumns:     ToModelFxColumns(d.FxFields),
		AuditFields:   ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainTransaction converts a model Transaction to a domain Transaction
func ToDomainTransaction(m models.Transaction) domain.Transaction {
	return domain.Transaction{
		LedgerEntry: domain.LedgerEntry{
			ID:         m.TransactionID,
			UserID:     m.UserID,
			CategoryID: m.CategoryID,
			FxFields:   ToDomainFxFields(m.FxColumns),
		},
		Type:          domain.TransactionType(m.Type),
		OccurredAt:    m.OccurredAt.UTC(),
		PaymentMethod: domain.PaymentMethod(m.PaymentMethod),
		Note:          m.Note,
		ClientRef:     m.ClientRef,
		AuditFields:   ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainTransactionSlice converts a slice of model Transactions to domain Transactions
func ToDomainTransactionSlice(ms []models.Transaction) []domain.Transaction {
	ds := make([]domain.Transaction, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainTransaction(m)
	}
	return ds
}
