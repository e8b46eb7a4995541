package mapping

import (
	"github.com/snngymn-development/modatasar-m/internal/core/domain"
	"github.com/snngymn-development/modatasar-m/internal/models"
)

// ToModelAccount converts a domain Account to a model Account
func ToModelAccount(d domain.Account) models.Account {
	return models.Account{
		AccountID:    d.AccountID,
		AccountType:  models.AccountType(d.AccountType),
		Name:         d.Name,
		CurrencyCode: string(d.CurrencyCode),
		IsActive:     d.IsActive,
		AuditFields:  ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainAccount converts a model Account to a domain Account
func ToDomainAccount(m models.Account) domain.Account {
	return domain.Account{
		AccountID:    m.AccountID,
		AccountType:  domain.AccountType(m.AccountType),
		Name:         m.Name,
		CurrencyCode: domain.CurrencyCode(m.CurrencyCode),
		IsActive:     m.IsActive,
		AuditFields:  ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainAccountSlice converts a slice of model Accounts to domain Accounts
func ToDomainAccountSlice(ms []models.Account) []domain.Account {
	ds := make([]domain.Account, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainAccount(m)
	}
	return ds
}
