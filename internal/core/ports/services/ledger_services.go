package services

import (
	"context"

	"github.com/snngymn-development/modatasar-m/internal/core/domain"
	"github.com/snngymn-development/modatasar-m/internal/dto"
)

// LedgerSvcFacade exposes double-entry ledger operations.
type LedgerSvcFacade interface {
	// CreateTransaction validates the double-entry invariant and persists the
	// transaction with all its postings atomically. On invariant violation
	// nothing is written.
	CreateTransaction(ctx context.Context, req dto.CreateTransactionRequest, creatorUserID string) (*domain.Transaction, error)

	// GetTransaction retrieves a transaction with its postings.
	GetTransaction(ctx context.Context, transactionID string) (*domain.Transaction, error)

	// ListTransactions retrieves a filtered, paginated transaction list.
	ListTransactions(ctx context.Context, params dto.ListTransactionsParams) (*dto.ListTransactionsResponse, error)

	// UpdateTransaction updates header fields of an unlocked transaction.
	UpdateTransaction(ctx context.Context, transactionID string, req dto.UpdateTransactionRequest, userID string) (*domain.Transaction, error)

	// DeleteTransaction hard-deletes an unlocked transaction together with
	// its postings. Reversed transactions and reversal entries are locked.
	DeleteTransaction(ctx context.Context, transactionID string, userID string) error

	// ReverseTransaction creates a contra transaction that cancels the
	// original while keeping it intact for audit.
	ReverseTransaction(ctx context.Context, transactionID string, userID string) (*domain.Transaction, error)

	// CreatePayrollTransaction posts net pay for one employee.
	CreatePayrollTransaction(ctx context.Context, req dto.CreatePayrollTransactionRequest, creatorUserID string) (*domain.Transaction, error)

	// CreateBulkPayrollTransactions posts several payroll payments; each one
	// succeeds or fails independently.
	CreateBulkPayrollTransactions(ctx context.Context, req dto.CreateBulkPayrollRequest, creatorUserID string) (*dto.BulkPayrollResponse, error)

	// GetAccountBalance derives an account's balance in base-currency cents
	// from its postings, each converted at its stored historical rate.
	GetAccountBalance(ctx context.Context, accountID string) (int64, error)

	// GetTotalBalance sums the balances of all active accounts.
	GetTotalBalance(ctx context.Context) (int64, error)
}

// LedgerPoster is the narrow posting surface the payment tracker may use to
// mirror purchase payments into the ledger. Left nil in the default wiring;
// purchase payments then only move the paid counter.
type LedgerPoster interface {
	CreateTransaction(ctx context.Context, req dto.CreateTransactionRequest, creatorUserID string) (*domain.Transaction, error)
}
