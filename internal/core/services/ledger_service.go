package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/snngymn-development/modatasar-m/internal/apperrors"
	"github.com/snngymn-development/modatasar-m/internal/core/domain"
	portsrepo "github.com/snngymn-development/modatasar-m/internal/core/ports/repositories"
	portssvc "github.com/snngymn-development/modatasar-m/internal/core/ports/services"
	"github.com/snngymn-development/modatasar-m/internal/dto"
	"github.com/snngymn-development/modatasar-m/internal/middleware"
	"github.com/snngymn-development/modatasar-m/internal/utils/accounting"
)

const (
	defaultListLimit = 50
	maxListLimit     = 200
)

// ledgerService implements the double-entry ledger. Every write goes through
// the invariant check before anything touches the repository.
type ledgerService struct {
	transactionRepo portsrepo.TransactionRepositoryFacade
	accountRepo     portsrepo.AccountRepositoryFacade
}

// NewLedgerService creates a new ledger service.
func NewLedgerService(transactionRepo portsrepo.TransactionRepositoryFacade, accountRepo portsrepo.AccountRepositoryFacade) portssvc.LedgerSvcFacade {
	return &ledgerService{
		transactionRepo: transactionRepo,
		accountRepo:     accountRepo,
	}
}

var _ portssvc.LedgerSvcFacade = (*ledgerService)(nil)
var _ portssvc.LedgerPoster = (*ledgerService)(nil)

// CreateTransaction validates and persists a new balanced transaction.
func (s *ledgerService) CreateTransaction(ctx context.Context, req dto.CreateTransactionRequest, creatorUserID string) (*domain.Transaction, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if !req.Kind.IsValid() {
		return nil, fmt.Errorf("%w: unknown transaction kind %q", apperrors.ErrValidation, req.Kind)
	}
	if !req.CurrencyCode.IsValid() {
		return nil, fmt.Errorf("%w: unknown currency %q", apperrors.ErrValidation, req.CurrencyCode)
	}
	if req.AmountCents <= 0 {
		return nil, fmt.Errorf("%w: amount must be positive", apperrors.ErrValidation)
	}
	if !req.RateToTRY.IsPositive() {
		return nil, fmt.Errorf("%w: rate to TRY must be positive", apperrors.ErrValidation)
	}

	now := time.Now().UTC()
	date := now
	if req.Date != nil {
		date = req.Date.UTC()
	}

	txn := domain.Transaction{
		TransactionID: uuid.NewString(),
		Kind:          req.Kind,
		Date:          date,
		AmountCents:   req.AmountCents,
		CurrencyCode:  req.CurrencyCode,
		RateToTRY:     req.RateToTRY,
		Note:          req.Note,
		CustomerID:    req.CustomerID,
		SupplierID:    req.SupplierID,
		EmployeeID:    req.EmployeeID,
		Status:        domain.Posted,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	postings, err := s.buildPostings(ctx, txn, req.Postings, creatorUserID, now)
	if err != nil {
		return nil, err
	}

	if err := accounting.ValidateDoubleEntry(postings); err != nil {
		logger.Warn("Transaction rejected", slog.String("reason", err.Error()))
		return nil, fmt.Errorf("%w: %s", apperrors.ErrInvariantViolation, err.Error())
	}

	if err := s.transactionRepo.SaveTransaction(ctx, txn, postings); err != nil {
		logger.Error("Failed to save transaction", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to save transaction: %w", err)
	}

	txn.Postings = postings
	logger.Info("Transaction created",
		slog.String("transaction_id", txn.TransactionID),
		slog.String("kind", string(txn.Kind)),
		slog.Int64("amount_cents", txn.AmountCents))
	return &txn, nil
}

// buildPostings materialises posting rows from the request and verifies that
// every referenced account exists and is active.
func (s *ledgerService) buildPostings(ctx context.Context, txn domain.Transaction, reqs []dto.CreatePostingRequest, userID string, now time.Time) ([]domain.Posting, error) {
	accountIDs := make([]string, 0, len(reqs))
	for _, pr := range reqs {
		accountIDs = append(accountIDs, pr.AccountID)
	}

	accounts, err := s.accountRepo.FindAccountsByIDs(ctx, accountIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch posting accounts: %w", err)
	}

	postings := make([]domain.Posting, 0, len(reqs))
	for _, pr := range reqs {
		account, ok := accounts[pr.AccountID]
		if !ok {
			return nil, fmt.Errorf("%w: account %s", apperrors.ErrNotFound, pr.AccountID)
		}
		if !account.IsActive {
			return nil, fmt.Errorf("%w: account %s is inactive", apperrors.ErrValidation, pr.AccountID)
		}
		if !pr.Direction.IsValid() {
			return nil, fmt.Errorf("%w: unknown posting direction %q", apperrors.ErrValidation, pr.Direction)
		}
		if !pr.CurrencyCode.IsValid() {
			return nil, fmt.Errorf("%w: unknown posting currency %q", apperrors.ErrValidation, pr.CurrencyCode)
		}
		if !pr.RateToTRY.IsPositive() {
			return nil, fmt.Errorf("%w: posting rate to TRY must be positive", apperrors.ErrValidation)
		}

		postings = append(postings, domain.Posting{
			PostingID:     uuid.NewString(),
			TransactionID: txn.TransactionID,
			AccountID:     pr.AccountID,
			Direction:     pr.Direction,
			AmountCents:   pr.AmountCents,
			CurrencyCode:  pr.CurrencyCode,
			RateToTRY:     pr.RateToTRY,
			AuditFields: domain.AuditFields{
				CreatedAt:     now,
				CreatedBy:     userID,
				LastUpdatedAt: now,
				LastUpdatedBy: userID,
			},
		})
	}
	return postings, nil
}

// GetTransaction retrieves a transaction and its postings.
func (s *ledgerService) GetTransaction(ctx context.Context, transactionID string) (*domain.Transaction, error) {
	txn, err := s.transactionRepo.FindTransactionByID(ctx, transactionID)
	if err != nil {
		return nil, fmt.Errorf("failed to find transaction %s: %w", transactionID, err)
	}
	return txn, nil
}

// ListTransactions retrieves a filtered, paginated transaction page.
func (s *ledgerService) ListTransactions(ctx context.Context, params dto.ListTransactionsParams) (*dto.ListTransactionsResponse, error) {
	page := params.Page
	if page < 1 {
		page = 1
	}
	limit := params.Limit
	if limit <= 0 {
		limit = defaultListLimit
	}
	if limit > maxListLimit {
		limit = maxListLimit
	}

	for _, k := range params.Kinds {
		if !k.IsValid() {
			return nil, fmt.Errorf("%w: unknown transaction kind %q", apperrors.ErrValidation, k)
		}
	}

	filter := portsrepo.TransactionFilter{
		From:       params.From,
		To:         params.To,
		Kinds:      params.Kinds,
		AccountIDs: params.AccountIDs,
		Query:      params.Query,
		Limit:      limit,
		Offset:     (page - 1) * limit,
	}

	txns, total, err := s.transactionRepo.ListTransactions(ctx, filter)
	if err != nil {
		middleware.GetLoggerFromCtx(ctx).Error("Failed to list transactions", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}

	return &dto.ListTransactionsResponse{
		Transactions: dto.ToTransactionResponses(txns),
		Total:        total,
		Page:         page,
		Limit:        limit,
	}, nil
}

// UpdateTransaction updates header fields of an unlocked transaction. Amounts
// and postings stay immutable; a wrong amount is fixed by reversal and re-entry.
func (s *ledgerService) UpdateTransaction(ctx context.Context, transactionID string, req dto.UpdateTransactionRequest, userID string) (*domain.Transaction, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	txn, err := s.transactionRepo.FindTransactionByID(ctx, transactionID)
	if err != nil {
		return nil, fmt.Errorf("failed to find transaction %s: %w", transactionID, err)
	}
	if txn.IsLocked() {
		return nil, fmt.Errorf("%w: transaction %s is part of a reversal pair", apperrors.ErrState, transactionID)
	}

	if req.Date != nil {
		txn.Date = req.Date.UTC()
	}
	if req.Note != nil {
		txn.Note = *req.Note
	}
	if req.CustomerID != nil {
		txn.CustomerID = *req.CustomerID
	}
	if req.SupplierID != nil {
		txn.SupplierID = *req.SupplierID
	}
	txn.LastUpdatedAt = time.Now().UTC()
	txn.LastUpdatedBy = userID

	if err := s.transactionRepo.UpdateTransaction(ctx, *txn); err != nil {
		logger.Error("Failed to update transaction", slog.String("error", err.Error()), slog.String("transaction_id", transactionID))
		return nil, fmt.Errorf("failed to update transaction %s: %w", transactionID, err)
	}

	logger.Info("Transaction updated", slog.String("transaction_id", transactionID))
	return txn, nil
}

// DeleteTransaction hard-deletes an unlocked transaction with its postings.
// Reversed transactions and their contra entries are permanent audit history.
func (s *ledgerService) DeleteTransaction(ctx context.Context, transactionID string, userID string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	txn, err := s.transactionRepo.FindTransactionByID(ctx, transactionID)
	if err != nil {
		return fmt.Errorf("failed to find transaction %s: %w", transactionID, err)
	}
	if txn.IsLocked() {
		return fmt.Errorf("%w: transaction %s is part of a reversal pair and cannot be deleted", apperrors.ErrState, transactionID)
	}

	if err := s.transactionRepo.DeleteTransaction(ctx, transactionID); err != nil {
		logger.Error("Failed to delete transaction", slog.String("error", err.Error()), slog.String("transaction_id", transactionID))
		return fmt.Errorf("failed to delete transaction %s: %w", transactionID, err)
	}

	logger.Info("Transaction deleted", slog.String("transaction_id", transactionID), slog.String("deleted_by", userID))
	return nil
}

// ReverseTransaction cancels a posted transaction by creating a contra entry
// with every posting direction flipped, at the original historical rates. The
// original row is marked reversed and cross-linked, never removed.
func (s *ledgerService) ReverseTransaction(ctx context.Context, transactionID string, userID string) (*domain.Transaction, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	original, err := s.transactionRepo.FindTransactionByID(ctx, transactionID)
	if err != nil {
		return nil, fmt.Errorf("failed to find transaction %s: %w", transactionID, err)
	}
	if original.IsLocked() {
		return nil, fmt.Errorf("%w: transaction %s is already part of a reversal pair", apperrors.ErrState, transactionID)
	}
	if len(original.Postings) == 0 {
		original.Postings, err = s.transactionRepo.FindPostingsByTransactionID(ctx, transactionID)
		if err != nil {
			return nil, fmt.Errorf("failed to load postings for %s: %w", transactionID, err)
		}
	}

	now := time.Now().UTC()
	reversal := domain.Transaction{
		TransactionID:         uuid.NewString(),
		Kind:                  original.Kind,
		Date:                  now,
		AmountCents:           original.AmountCents,
		CurrencyCode:          original.CurrencyCode,
		RateToTRY:             original.RateToTRY,
		Note:                  fmt.Sprintf("Reversal of %s", original.TransactionID),
		CustomerID:            original.CustomerID,
		SupplierID:            original.SupplierID,
		EmployeeID:            original.EmployeeID,
		Status:                domain.Posted,
		OriginalTransactionID: original.TransactionID,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}

	contraPostings := make([]domain.Posting, 0, len(original.Postings))
	for _, p := range original.Postings {
		direction := domain.Debit
		if p.Direction == domain.Debit {
			direction = domain.Credit
		}
		contraPostings = append(contraPostings, domain.Posting{
			PostingID:     uuid.NewString(),
			TransactionID: reversal.TransactionID,
			AccountID:     p.AccountID,
			Direction:     direction,
			AmountCents:   p.AmountCents,
			CurrencyCode:  p.CurrencyCode,
			RateToTRY:     p.RateToTRY,
			AuditFields: domain.AuditFields{
				CreatedAt:     now,
				CreatedBy:     userID,
				LastUpdatedAt: now,
				LastUpdatedBy: userID,
			},
		})
	}

	if err := accounting.ValidateDoubleEntry(contraPostings); err != nil {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrInvariantViolation, err.Error())
	}

	original.Status = domain.Reversed
	original.ReversingTransactionID = reversal.TransactionID
	original.LastUpdatedAt = now
	original.LastUpdatedBy = userID

	if err := s.transactionRepo.SaveReversal(ctx, *original, reversal, contraPostings); err != nil {
		logger.Error("Failed to save reversal", slog.String("error", err.Error()), slog.String("transaction_id", transactionID))
		return nil, fmt.Errorf("failed to reverse transaction %s: %w", transactionID, err)
	}

	reversal.Postings = contraPostings
	logger.Info("Transaction reversed",
		slog.String("original_transaction_id", original.TransactionID),
		slog.String("reversal_transaction_id", reversal.TransactionID))
	return &reversal, nil
}

// CreatePayrollTransaction posts net pay for one employee as a balanced pair:
// a payroll expense debit against a cash/bank credit, both in TRY.
func (s *ledgerService) CreatePayrollTransaction(ctx context.Context, req dto.CreatePayrollTransactionRequest, creatorUserID string) (*domain.Transaction, error) {
	if !req.Kind.IsPayroll() {
		return nil, fmt.Errorf("%w: kind %q is not a payroll kind", apperrors.ErrValidation, req.Kind)
	}

	if req.AccountID == req.ExpenseAccountID {
		return nil, fmt.Errorf("%w: payout and expense accounts must differ", apperrors.ErrValidation)
	}

	account, err := s.accountRepo.FindAccountByID(ctx, req.AccountID)
	if err != nil {
		return nil, fmt.Errorf("failed to find payout account %s: %w", req.AccountID, err)
	}

	// An advance refund flows back into the payout account; regular payroll
	// and advances flow out of it.
	payoutDirection := domain.Credit
	expenseDirection := domain.Debit
	if req.Kind == domain.PayrollRefund {
		payoutDirection = domain.Debit
		expenseDirection = domain.Credit
	}

	txnReq := dto.CreateTransactionRequest{
		Kind:         req.Kind,
		AmountCents:  req.AmountCents,
		CurrencyCode: account.CurrencyCode,
		RateToTRY:    decimal.NewFromInt(1),
		Note:         req.Note,
		EmployeeID:   req.EmployeeID,
		Postings: []dto.CreatePostingRequest{
			{
				AccountID:    req.ExpenseAccountID,
				Direction:    expenseDirection,
				AmountCents:  req.AmountCents,
				CurrencyCode: account.CurrencyCode,
				RateToTRY:    decimal.NewFromInt(1),
			},
			{
				AccountID:    req.AccountID,
				Direction:    payoutDirection,
				AmountCents:  req.AmountCents,
				CurrencyCode: account.CurrencyCode,
				RateToTRY:    decimal.NewFromInt(1),
			},
		},
	}
	return s.CreateTransaction(ctx, txnReq, creatorUserID)
}

// CreateBulkPayrollTransactions posts several payroll payments. Each payment
// is independent; one failure does not roll back the others.
func (s *ledgerService) CreateBulkPayrollTransactions(ctx context.Context, req dto.CreateBulkPayrollRequest, creatorUserID string) (*dto.BulkPayrollResponse, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	resp := &dto.BulkPayrollResponse{
		Total:   len(req.Payments),
		Results: make([]dto.BulkPayrollResultEntry, 0, len(req.Payments)),
	}

	for _, payment := range req.Payments {
		entry := dto.BulkPayrollResultEntry{EmployeeID: payment.EmployeeID}
		txn, err := s.CreatePayrollTransaction(ctx, payment, creatorUserID)
		if err != nil {
			entry.Error = err.Error()
			resp.Failed++
		} else {
			entry.Success = true
			entry.TransactionID = txn.TransactionID
			resp.Successful++
		}
		resp.Results = append(resp.Results, entry)
	}

	logger.Info("Bulk payroll processed",
		slog.Int("total", resp.Total),
		slog.Int("successful", resp.Successful),
		slog.Int("failed", resp.Failed))
	return resp, nil
}

// GetAccountBalance derives an account's balance in base-currency cents from
// its posting history.
func (s *ledgerService) GetAccountBalance(ctx context.Context, accountID string) (int64, error) {
	if _, err := s.accountRepo.FindAccountByID(ctx, accountID); err != nil {
		return 0, fmt.Errorf("failed to find account %s: %w", accountID, err)
	}

	postings, err := s.transactionRepo.FindPostingsByAccountID(ctx, accountID)
	if err != nil {
		return 0, fmt.Errorf("failed to load postings for account %s: %w", accountID, err)
	}
	return accounting.CalculateAccountBalance(postings), nil
}

// GetTotalBalance sums the derived balances of all active accounts.
func (s *ledgerService) GetTotalBalance(ctx context.Context) (int64, error) {
	accounts, err := s.accountRepo.ListAccounts(ctx, false)
	if err != nil {
		return 0, fmt.Errorf("failed to list accounts: %w", err)
	}

	var total int64
	for _, account := range accounts {
		postings, err := s.transactionRepo.FindPostingsByAccountID(ctx, account.AccountID)
		if err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				continue
			}
			return 0, fmt.Errorf("failed to load postings for account %s: %w", account.AccountID, err)
		}
		total += accounting.CalculateAccountBalance(postings)
	}
	return total, nil
}
