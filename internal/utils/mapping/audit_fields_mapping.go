package mapping

import (
	"github.com/SscSPs/expense_tracker/internal/core/domain"
	"github.com/SscSPs/expense_tracker/internal/models"
)

// ToModelAuditFields converts a domain AuditFields to a model AuditFields
func ToModelAuditFields(d domain.AuditFields) models.AuditFields {
	return models.AuditFields{
		CreatedAt:     d.CreatedAt,
		CreatedBy:     d.CreatedBy,
		LastUpdatedAt: d.LastUpdatedAt,
		LastUpdatedBy: d.LastUpdatedBy,
	}
}

// ToDomainAuditFields converts a model AuditFields to a domain AuditFields
func ToDomainAuditFields(m models.AuditFields) domain.AuditFields {
	return domain.AuditFields{
		CreatedAt:     m.CreatedAt,
		CreatedBy:     m.CreatedBy,
		LastUpdatedAt: m.LastUpdatedAt,
		LastUpdatedBy: m.LastUpdatedBy,
	}
}

// ToModelFxColumns flattens a domain FX bundle into its columns.
func ToModelFxColumns(f domain.FxFields) models.FxColumns {
	return models.FxColumns{
		OriginalCents:    f.OriginalAmount.Cents,
		OriginalCurrency: f.OriginalAmount.Currency,
		BaseCents:        f.BaseAmount.Cents,
		BaseCurrency:     f.BaseAmount.Currency,
		FxRate:           f.FxRate,
		FxDate:           f.FxDate,
	}
}

// ToDomainFxFields rebuilds the domain FX bundle from its columns.
func ToDomainFxFields(m models.FxColumns) domain.FxFields {
	return domain.FxFields{
		OriginalAmount: domain.MoneyAmount{Cents: m.OriginalCents, Currency: m.OriginalCurrency},
		BaseAmount:     domain.MoneyAmount{Cents: m.BaseCents, Currency: m.BaseCurrency},
		FxRate:         m.FxRate,
		FxDate:         m.FxDate.UTC(),
	}
}
