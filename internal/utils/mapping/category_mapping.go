package mapping

import (
	"github.com/SscSPs/expense_tracker/internal/core/domain"
	"github.com/SscSPs/expense_tracker/internal/models"
)

// ToModelCategory converts a domain Category to a model Category
func ToModelCategory(d domain.Category) models.Category {
	return models.Category{
		CategoryID:  d.ID,
		UserID:      d.UserID,
		Type:        string(d.Type),
		Name:        d.Name,
		Icon:        d.Icon,
		Color:       d.Color,
		Position:    d.Position,
		IsArchived:  d.IsArchived,
		AuditFields: ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainCategory converts a model Category to a domain Category
func ToDomainCategory(m models.Category) domain.Category {
	return domain.Category{
		ID:          m.CategoryID,
		UserID:      m.UserID,
		Type:        domain.TransactionType(m.Type),
		Name:        m.Name,
		Icon:        m.Icon,
		Color:       m.Color,
		Position:    m.Position,
		IsArchived:  m.IsArchived,
		AuditFields: ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainCategorySlice converts a slice of model Categories to domain Categories
func ToDomainCategorySlice(ms []models.Category) []domain.Category {
	ds := make([]domain.Category, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainCategory(m)
	}
	return ds
}
