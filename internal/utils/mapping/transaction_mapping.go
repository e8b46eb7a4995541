package mapping

import (
	"github.com/snngymn-development/modatasar-m/internal/core/domain"
	"github.com/snngymn-development/modatasar-m/internal/models"
)

// ToModelTransaction converts a domain Transaction to a model Transaction
func ToModelTransaction(d domain.Transaction) models.Transaction {
	return models.Transaction{
		TransactionID:          d.TransactionID,
		Kind:                   models.TransactionKind(d.Kind),
		Date:                   d.Date,
		AmountCents:            d.AmountCents,
		CurrencyCode:           string(d.CurrencyCode),
		RateToTRY:              d.RateToTRY,
		Note:                   d.Note,
		CustomerID:             d.CustomerID,
		SupplierID:             d.SupplierID,
		EmployeeID:             d.EmployeeID,
		Status:                 models.TransactionStatus(d.Status),
		OriginalTransactionID:  d.OriginalTransactionID,
		ReversingTransactionID: d.ReversingTransactionID,
		AuditFields:            ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainTransaction converts a model Transaction to a domain Transaction
func ToDomainTransaction(m models.Transaction) domain.Transaction {
	return domain.Transaction{
		TransactionID:          m.TransactionID,
		Kind:                   domain.TransactionKind(m.Kind),
		Date:                   m.Date,
		AmountCents:            m.AmountCents,
		CurrencyCode:           domain.CurrencyCode(m.CurrencyCode),
		RateToTRY:              m.RateToTRY,
		Note:                   m.Note,
		CustomerID:             m.CustomerID,
		SupplierID:             m.SupplierID,
		EmployeeID:             m.EmployeeID,
		Status:                 domain.TransactionStatus(m.Status),
		OriginalTransactionID:  m.OriginalTransactionID,
		ReversingTransactionID: m.ReversingTransactionID,
		AuditFields:            ToDomainAuditFields(m.AuditFields),
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

// ToModelPosting converts a domain Posting to a model Posting
func ToModelPosting(d domain.Posting) models.Posting {
	return models.Posting{
		PostingID:     d.PostingID,
		TransactionID: d.TransactionID,
		AccountID:     d.AccountID,
		Direction:     models.PostingDirection(d.Direction),
		AmountCents:   d.AmountCents,
		CurrencyCode:  string(d.CurrencyCode),
		RateToTRY:     d.RateToTRY,
		AuditFields:   ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainPosting converts a model Posting to a domain Posting
func ToDomainPosting(m models.Posting) domain.Posting {
	return domain.Posting{
		PostingID:     m.PostingID,
		TransactionID: m.TransactionID,
		AccountID:     m.AccountID,
		Direction:     domain.PostingDirection(m.Direction),
		AmountCents:   m.AmountCents,
		CurrencyCode:  domain.CurrencyCode(m.CurrencyCode),
		RateToTRY:     m.RateToTRY,
		AuditFields:   ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainPostingSlice converts a slice of model Postings to domain Postings
func ToDomainPostingSlice(ms []models.Posting) []domain.Posting {
	ds := make([]domain.Posting, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainPosting(m)
	}
	return ds
}
