package repositories

import (
	"context"
	"time"

	"github.com/snngymn-development/modatasar-m/internal/core/domain"
)

// TransactionFilter narrows ListTransactions results.
type TransactionFilter struct {
	From       *time.Time
	To         *time.Time
	Kinds      []domain.TransactionKind
	AccountIDs []string
	Query      string // matches note, customer and supplier references
	EmployeeID string
	Limit      int
	Offset     int
}

// TransactionReader defines read operations for ledger data.
type TransactionReader interface {
	// FindTransactionByID retrieves a transaction with its postings.
	FindTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error)

	// ListTransactions retrieves transactions matching the filter, newest
	// first, plus the total match count for pagination.
	ListTransactions(ctx context.Context, filter TransactionFilter) ([]domain.Transaction, int64, error)

	// FindPostingsByTransactionID retrieves the postings of one transaction.
	FindPostingsByTransactionID(ctx context.Context, transactionID string) ([]domain.Posting, error)

	// FindPostingsByAccountID retrieves every posting against an account.
	FindPostingsByAccountID(ctx context.Context, accountID string) ([]domain.Posting, error)
}

// TransactionWriter defines write operations for ledger data. All multi-row
// writes are atomic: either every row exists afterwards or none do.
type TransactionWriter interface {
	// SaveTransaction persists a transaction and all its postings as one unit.
	SaveTransaction(ctx context.Context, txn domain.Transaction, postings []domain.Posting) error

	// UpdateTransaction updates mutable header fields (note, date,
	// counterparty references). Postings and amounts are immutable.
	UpdateTransaction(ctx context.Context, txn domain.Transaction) error

	// DeleteTransaction removes a transaction together with its postings.
	DeleteTransaction(ctx context.Context, transactionID string) error

	// SaveReversal persists the contra transaction with its postings and
	// marks the original as reversed with cross-links, atomically.
	SaveReversal(ctx context.Context, original domain.Transaction, reversal domain.Transaction, postings []domain.Posting) error
}

// TransactionRepositoryFacade combines all ledger repository interfaces.
type TransactionRepositoryFacade interface {
	TransactionReader
	TransactionWriter
}
