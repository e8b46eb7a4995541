package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionKind classifies a ledger transaction row.
type TransactionKind string

// TransactionStatus indicates the state of a transaction row.
type TransactionStatus string

// PostingDirection indicates whether a posting row is a debit or a credit.
type PostingDirection string

// Transaction represents a row of the transactions table.
type Transaction struct {
	TransactionID          string            `json:"transactionID"` // Primary Key (UUID)
	Kind                   TransactionKind   `json:"kind"`
	Date                   time.Time         `json:"date"`
	AmountCents            int64             `json:"amountCents"`
	CurrencyCode           string            `json:"currencyCode"`
	RateToTRY              decimal.Decimal   `json:"rateToTRY"`
	Note                   string            `json:"note"`
	CustomerID             string            `json:"customerID"`
	SupplierID             string            `json:"supplierID"`
	EmployeeID             string            `json:"employeeID"`
	Status                 TransactionStatus `json:"status"`
	OriginalTransactionID  string            `json:"originalTransactionID"`
	ReversingTransactionID string            `json:"reversingTransactionID"`
	AuditFields
}

// Posting represents a row of the postings table.
type Posting struct {
	PostingID     string           `json:"postingID"` // Primary Key (UUID)
	TransactionID string           `json:"transactionID"`
	AccountID     string           `json:"accountID"`
	Direction     PostingDirection `json:"direction"`
	AmountCents   int64            `json:"amountCents"`
	CurrencyCode  string           `json:"currencyCode"`
	RateToTRY     decimal.Decimal  `json:"rateToTRY"`
	AuditFields
}
