package mapping

import (
	"github.com/SscSPs/expense_tracker/internal/core/domain"
	"github.com/SscSPs/expense_tracker/internal/models"
)

// ToModelUser converts a domain User to a model User
func ToModelUser(d domain.User) models.User {
	return models.User{
		UserID:          d.UserID,
		ExternalAuthID:  d.ExternalAuthID,
		Email:           d.Email,
		Name:            d.Name,
		BaseCurrency:    d.BaseCurrency,
		DisplayCurrency: d.DisplayCurrency,
		Timezone:        d.Timezone,
		AuditFields:     ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainUser converts a model User to a domain User
func ToDomainUser(m models.User) domain.User {
	return domain.User{
		UserID:          m.UserID,
		ExternalAuthID:  m.ExternalAuthID,
		Email:           m.Email,
		Name:            m.Name,
		BaseCurrency:    m.BaseCurrency,
		DisplayCurrency: m.DisplayCurrency,
		Timezone:        m.Timezone,
		AuditFields:     ToDomainAuditFields(m.AuditFields),
	}
}
