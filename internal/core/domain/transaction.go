package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionKind classifies a ledger transaction.
type TransactionKind string

const (
	Receivable       TransactionKind = "RECEIVABLE"
	Payable          TransactionKind = "PAYABLE"
	InternalTransfer TransactionKind = "INTERNAL_TRANSFER"
	Payroll          TransactionKind = "PAYROLL"
	PayrollAdvance   TransactionKind = "PAYROLL_ADVANCE"
	PayrollRefund    TransactionKind = "PAYROLL_REFUND"
)

// IsValid reports whether the kind is one of the closed set.
func (k TransactionKind) IsValid() bool {
	switch k {
	case Receivable, Payable, InternalTransfer, Payroll, PayrollAdvance, PayrollRefund:
		return true
	}
	return false
}

// IsPayroll reports whether the kind is one of the payroll variants.
func (k TransactionKind) IsPayroll() bool {
	switch k {
	case Payroll, PayrollAdvance, PayrollRefund:
		return true
	}
	return false
}

// TransactionStatus indicates the state of a posted transaction.
type TransactionStatus string

const (
	Posted   TransactionStatus = "POSTED"
	Reversed TransactionStatus = "REVERSED"
)

// PostingDirection indicates whether a posting is a debit or a credit.
type PostingDirection string

const (
	Debit  PostingDirection = "DEBIT"
	Credit PostingDirection = "CREDIT"
)

// IsValid reports whether the direction is DEBIT or CREDIT.
func (d PostingDirection) IsValid() bool {
	return d == Debit || d == Credit
}

// Transaction represents a single, balanced financial event. It exclusively
// owns its postings: a posting never outlives its transaction.
type Transaction struct {
	TransactionID string            `json:"transactionID"` // Primary key (UUID)
	Kind          TransactionKind   `json:"kind"`
	Date          time.Time         `json:"date"`
	AmountCents   int64             `json:"amountCents"` // Face amount in transaction currency cents
	CurrencyCode  CurrencyCode      `json:"currencyCode"`
	RateToTRY     decimal.Decimal   `json:"rateToTRY"` // Historical rate at entry time
	Note          string            `json:"note"`
	CustomerID    string            `json:"customerID,omitempty"` // Optional counterparty references
	SupplierID    string            `json:"supplierID,omitempty"`
	EmployeeID    string            `json:"employeeID,omitempty"`
	Status        TransactionStatus `json:"status"`

	// Reversal linkage. A reversed transaction keeps its postings intact and
	// points at the contra entry that cancels it, and vice versa.
	OriginalTransactionID  string `json:"originalTransactionID,omitempty"`
	ReversingTransactionID string `json:"reversingTransactionID,omitempty"`

	AuditFields
	Postings []Posting `json:"postings,omitempty"`
}

// IsLocked reports whether the transaction may no longer be hard-deleted or
// mutated. Reversed transactions and reversal entries are audit history.
func (t Transaction) IsLocked() bool {
	return t.Status == Reversed || t.OriginalTransactionID != "" || t.ReversingTransactionID != ""
}

// Posting is one directional (debit or credit) line within a transaction,
// against one account. RateToTRY is the historical conversion rate captured
// at posting time; it is never recomputed against a live rate.
type Posting struct {
	PostingID     string           `json:"postingID"` // Primary key (UUID)
	TransactionID string           `json:"transactionID"`
	AccountID     string           `json:"accountID"`
	Direction     PostingDirection `json:"direction"`
	AmountCents   int64            `json:"amountCents"` // Positive, in posting currency cents
	CurrencyCode  CurrencyCode     `json:"currencyCode"`
	RateToTRY     decimal.Decimal  `json:"rateToTRY"`
	AuditFields
}
