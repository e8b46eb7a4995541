package dto

import (
	"time"

	"github.com/snngymn-development/modatasar-m/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreatePostingRequest defines one debit/credit line of a new transaction.
// RateToTRY is the historical rate at entry time; the service stores it on
// the posting verbatim and never replaces it with a live lookup.
type CreatePostingRequest struct {
	AccountID    string                  `json:"accountID" binding:"required"`
	Direction    domain.PostingDirection `json:"direction" binding:"required,oneof=DEBIT CREDIT"`
	AmountCents  int64                   `json:"amountCents" binding:"required,gt=0"`
	CurrencyCode domain.CurrencyCode     `json:"currencyCode" binding:"required,oneof=TRY USD EUR"`
	RateToTRY    decimal.Decimal         `json:"rateToTRY" binding:"required"`
}

// CreateTransactionRequest defines the payload for a new ledger transaction.
type CreateTransactionRequest struct {
	Kind         domain.TransactionKind `json:"kind" binding:"required"`
	Date         *time.Time             `json:"date,omitempty"`
	AmountCents  int64                  `json:"amountCents" binding:"required,gt=0"`
	CurrencyCode domain.CurrencyCode    `json:"currencyCode" binding:"required,oneof=TRY USD EUR"`
	RateToTRY    decimal.Decimal        `json:"rateToTRY" binding:"required"`
	Note         string                 `json:"note,omitempty"`
	CustomerID   string                 `json:"customerID,omitempty"`
	SupplierID   string                 `json:"supplierID,omitempty"`
	EmployeeID   string                 `json:"employeeID,omitempty"`
	Postings     []CreatePostingRequest `json:"postings" binding:"required,min=2,dive"`
}

// UpdateTransactionRequest updates header fields only. Amounts and postings
// are immutable so the double-entry invariant cannot be broken after the fact.
type UpdateTransactionRequest struct {
	Date       *time.Time `json:"date,omitempty"`
	Note       *string    `json:"note,omitempty"`
	CustomerID *string    `json:"customerID,omitempty"`
	SupplierID *string    `json:"supplierID,omitempty"`
}

// CreatePayrollTransactionRequest posts net pay for one employee through the
// ledger. AccountID is the account the money leaves; ExpenseAccountID carries
// the balancing expense leg.
type CreatePayrollTransactionRequest struct {
	EmployeeID       string                 `json:"employeeID" binding:"required"`
	AccountID        string                 `json:"accountID" binding:"required"`
	ExpenseAccountID string                 `json:"expenseAccountID" binding:"required"`
	Kind             domain.TransactionKind `json:"kind" binding:"required,oneof=PAYROLL PAYROLL_ADVANCE PAYROLL_REFUND"`
	AmountCents      int64                  `json:"amountCents" binding:"required,gt=0"`
	Note             string                 `json:"note,omitempty"`
}

// CreateBulkPayrollRequest posts net pay for several employees; each payment
// succeeds or fails independently.
type CreateBulkPayrollRequest struct {
	Payments []CreatePayrollTransactionRequest `json:"payments" binding:"required,min=1,dive"`
}

// BulkPayrollResultEntry reports the outcome for one payment in a bulk run.
type BulkPayrollResultEntry struct {
	EmployeeID    string `json:"employeeID"`
	Success       bool   `json:"success"`
	TransactionID string `json:"transactionID,omitempty"`
	Error         string `json:"error,omitempty"`
}

// BulkPayrollResponse summarises a bulk payroll run.
type BulkPayrollResponse struct {
	Total      int                      `json:"total"`
	Successful int                      `json:"successful"`
	Failed     int                      `json:"failed"`
	Results    []BulkPayrollResultEntry `json:"results"`
}

// ListTransactionsParams filters and paginates transaction listings.
type ListTransactionsParams struct {
	From       *time.Time               `form:"from"`
	To         *time.Time               `form:"to"`
	Kinds      []domain.TransactionKind `form:"kinds"`
	AccountIDs []string                 `form:"accounts"`
	Query      string                   `form:"q"`
	Page       int                      `form:"page"`
	Limit      int                      `form:"limit"`
}

// PostingResponse defines the data returned for a posting.
type PostingResponse struct {
	PostingID    string                  `json:"postingID"`
	AccountID    string                  `json:"accountID"`
	Direction    domain.PostingDirection `json:"direction"`
	AmountCents  int64                   `json:"amountCents"`
	CurrencyCode domain.CurrencyCode     `json:"currencyCode"`
	RateToTRY    decimal.Decimal         `json:"rateToTRY"`
}

// TransactionResponse defines the data returned for a transaction.
type TransactionResponse struct {
	TransactionID          string                   `json:"transactionID"`
	Kind                   domain.TransactionKind   `json:"kind"`
	Date                   time.Time                `json:"date"`
	AmountCents            int64                    `json:"amountCents"`
	CurrencyCode           domain.CurrencyCode      `json:"currencyCode"`
	RateToTRY              decimal.Decimal          `json:"rateToTRY"`
	Note                   string                   `json:"note,omitempty"`
	CustomerID             string                   `json:"customerID,omitempty"`
	SupplierID             string                   `json:"supplierID,omitempty"`
	EmployeeID             string                   `json:"employeeID,omitempty"`
	Status                 domain.TransactionStatus `json:"status"`
	OriginalTransactionID  string                   `json:"originalTransactionID,omitempty"`
	ReversingTransactionID string                   `json:"reversingTransactionID,omitempty"`
	CreatedAt              time.Time                `json:"createdAt"`
	CreatedBy              string                   `json:"createdBy"`
	Postings               []PostingResponse        `json:"postings,omitempty"`
}

// ListTransactionsResponse is a page of transactions plus pagination info.
type ListTransactionsResponse struct {
	Transactions []TransactionResponse `json:"transactions"`
	Total        int64                 `json:"total"`
	Page         int                   `json:"page"`
	Limit        int                   `json:"limit"`
}

// ToPostingResponse converts a domain.Posting to its response DTO.
func ToPostingResponse(p *domain.Posting) PostingResponse {
	return PostingResponse{
		PostingID:    p.PostingID,
		AccountID:    p.AccountID,
		Direction:    p.Direction,
		AmountCents:  p.AmountCents,
		CurrencyCode: p.CurrencyCode,
		RateToTRY:    p.RateToTRY,
	}
}

// ToTransactionResponse converts a domain.Transaction to its response DTO.
func ToTransactionResponse(t *domain.Transaction) TransactionResponse {
	resp := TransactionResponse{
		TransactionID:          t.TransactionID,
		Kind:                   t.Kind,
		Date:                   t.Date,
		AmountCents:            t.AmountCents,
		CurrencyCode:           t.CurrencyCode,
		RateToTRY:              t.RateToTRY,
		Note:                   t.Note,
		CustomerID:             t.CustomerID,
		SupplierID:             t.SupplierID,
		EmployeeID:             t.EmployeeID,
		Status:                 t.Status,
		OriginalTransactionID:  t.OriginalTransactionID,
		ReversingTransactionID: t.ReversingTransactionID,
		CreatedAt:              t.CreatedAt,
		CreatedBy:              t.CreatedBy,
	}
	if len(t.Postings) > 0 {
		resp.Postings = make([]PostingResponse, len(t.Postings))
		for i := range t.Postings {
			resp.Postings[i] = ToPostingResponse(&t.Postings[i])
		}
	}
	return resp
}

// ToTransactionResponses converts a slice of transactions to response DTOs.
func ToTransactionResponses(txns []domain.Transaction) []TransactionResponse {
	responses := make([]TransactionResponse, len(txns))
	for i := range txns {
		responses[i] = ToTransactionResponse(&txns[i])
	}
	return responses
}
