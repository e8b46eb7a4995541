package pgsql

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/snngymn-development/modatasar-m/internal/apperrors"
	"github.com/snngymn-development/modatasar-m/internal/core/domain"
	portsrepo "github.com/snngymn-development/modatasar-m/internal/core/ports/repositories"
	"github.com/snngymn-development/modatasar-m/internal/models"
	"github.com/snngymn-development/modatasar-m/internal/utils/mapping"
)

const transactionColumns = `transaction_id, kind, date, amount_cents, currency_code, rate_to_try, note, customer_id, supplier_id, employee_id, status, original_transaction_id, reversing_transaction_id, created_at, created_by, last_updated_at, last_updated_by`

const postingColumns = `posting_id, transaction_id, account_id, direction, amount_cents, currency_code, rate_to_try, created_at, created_by, last_updated_at, last_updated_by`

const insertPostingQuery = `
	INSERT INTO postings (` + postingColumns + `)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11);
`

type PgxTransactionRepository struct {
	BaseRepository
}

// newPgxTransactionRepository creates a new repository for ledger data.
func newPgxTransactionRepository(pool *pgxpool.Pool) portsrepo.TransactionRepositoryFacade {
	return &PgxTransactionRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.TransactionRepositoryFacade = (*PgxTransactionRepository)(nil)

func scanTransaction(row pgx.Row) (models.Transaction, error) {
	var m models.Transaction
	err := row.Scan(
		&m.TransactionID,
		&m.Kind,
		&m.Date,
		&m.AmountCents,
		&m.CurrencyCode,
		&m.RateToTRY,
		&m.Note,
		&m.CustomerID,
		&m.SupplierID,
		&m.EmployeeID,
		&m.Status,
		&m.OriginalTransactionID,
		&m.ReversingTransactionID,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

func scanPosting(row pgx.Row) (models.Posting, error) {
	var m models.Posting
	err := row.Scan(
		&m.PostingID,
		&m.TransactionID,
		&m.AccountID,
		&m.Direction,
		&m.AmountCents,
		&m.CurrencyCode,
		&m.RateToTRY,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

func insertTransactionTx(ctx context.Context, tx pgx.Tx, m models.Transaction) error {
	query := `
		INSERT INTO transactions (` + transactionColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17);
	`
	_, err := tx.Exec(ctx, query,
		m.TransactionID,
		m.Kind,
		m.Date,
		m.AmountCents,
		m.CurrencyCode,
		m.RateToTRY,
		m.Note,
		m.CustomerID,
		m.SupplierID,
		m.EmployeeID,
		m.Status,
		m.OriginalTransactionID,
		m.ReversingTransactionID,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	return err
}

func insertPostingsTx(ctx context.Context, tx pgx.Tx, postings []domain.Posting) error {
	batch := &pgx.Batch{}
	for _, p := range postings {
		m := mapping.ToModelPosting(p)
		batch.Queue(insertPostingQuery,
			m.PostingID,
			m.TransactionID,
			m.AccountID,
			m.Direction,
			m.AmountCents,
			m.CurrencyCode,
			m.RateToTRY,
			m.CreatedAt,
			m.CreatedBy,
			m.LastUpdatedAt,
			m.LastUpdatedBy,
		)
	}

	br := tx.SendBatch(ctx, batch)
	var batchErr error
	for i := 0; i < batch.Len(); i++ {
		if _, err := br.Exec(); err != nil && batchErr == nil {
			batchErr = fmt.Errorf("failed to insert posting %s: %w", postings[i].PostingID, err)
		}
	}
	if err := br.Close(); err != nil && batchErr == nil {
		batchErr = fmt.Errorf("failed to close posting batch: %w", err)
	}
	return batchErr
}

// SaveTransaction persists a transaction and all its postings as one unit.
func (r *PgxTransactionRepository) SaveTransaction(ctx context.Context, txn domain.Transaction, postings []domain.Posting) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	if err := insertTransactionTx(ctx, tx, mapping.ToModelTransaction(txn)); err != nil {
		return fmt.Errorf("failed to insert transaction %s: %w", txn.TransactionID, err)
	}
	if err := insertPostingsTx(ctx, tx, postings); err != nil {
		return err
	}

	return r.Commit(ctx, tx)
}

// FindTransactionByID retrieves a transaction with its postings.
func (r *PgxTransactionRepository) FindTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM transactions WHERE transaction_id = $1;`

	m, err := scanTransaction(r.Pool.QueryRow(ctx, query, transactionID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find transaction by ID %s: %w", transactionID, err)
	}

	d := mapping.ToDomainTransaction(m)
	d.Postings, err = r.FindPostingsByTransactionID(ctx, transactionID)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

// FindPostingsByTransactionID retrieves the postings of one transaction.
func (r *PgxTransactionRepository) FindPostingsByTransactionID(ctx context.Context, transactionID string) ([]domain.Posting, error) {
	query := `SELECT ` + postingColumns + ` FROM postings WHERE transaction_id = $1 ORDER BY posting_id;`

	rows, err := r.Pool.Query(ctx, query, transactionID)
	if err != nil {
		return nil, fmt.Errorf("failed to query postings for transaction %s: %w", transactionID, err)
	}
	defer rows.Close()

	postings := []domain.Posting{}
	for rows.Next() {
		m, err := scanPosting(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan posting row: %w", err)
		}
		postings = append(postings, mapping.ToDomainPosting(m))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating posting rows: %w", err)
	}
	return postings, nil
}

// FindPostingsByAccountID retrieves every posting against an account.
func (r *PgxTransactionRepository) FindPostingsByAccountID(ctx context.Context, accountID string) ([]domain.Posting, error) {
	query := `SELECT ` + postingColumns + ` FROM postings WHERE account_id = $1 ORDER BY created_at;`

	rows, err := r.Pool.Query(ctx, query, accountID)
	if err != nil {
		return nil, fmt.Errorf("failed to query postings for account %s: %w", accountID, err)
	}
	defer rows.Close()

	postings := []domain.Posting{}
	for rows.Next() {
		m, err := scanPosting(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan posting row: %w", err)
		}
		postings = append(postings, mapping.ToDomainPosting(m))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating posting rows: %w", err)
	}
	return postings, nil
}

// ListTransactions retrieves transactions matching the filter, newest first,
// plus the total match count for pagination. Postings are not loaded here.
func (r *PgxTransactionRepository) ListTransactions(ctx context.Context, filter portsrepo.TransactionFilter) ([]domain.Transaction, int64, error) {
	conditions := []string{}
	args := []any{}
	arg := func(v any) string {
		args = append(args, v)
		return "$" + strconv.Itoa(len(args))
	}

	if filter.From != nil {
		conditions = append(conditions, "t.date >= "+arg(*filter.From))
	}
	if filter.To != nil {
		conditions = append(conditions, "t.date <= "+arg(*filter.To))
	}
	if len(filter.Kinds) > 0 {
		kinds := make([]string, len(filter.Kinds))
		for i, k := range filter.Kinds {
			kinds[i] = string(k)
		}
		conditions = append(conditions, "t.kind = ANY("+arg(kinds)+")")
	}
	if len(filter.AccountIDs) > 0 {
		conditions = append(conditions, "EXISTS (SELECT 1 FROM postings p WHERE p.transaction_id = t.transaction_id AND p.account_id = ANY("+arg(filter.AccountIDs)+"))")
	}
	if filter.Query != "" {
		pattern := "%" + filter.Query + "%"
		conditions = append(conditions, "(t.note ILIKE "+arg(pattern)+" OR t.customer_id = "+arg(filter.Query)+" OR t.supplier_id = "+arg(filter.Query)+")")
	}
	if filter.EmployeeID != "" {
		conditions = append(conditions, "t.employee_id = "+arg(filter.EmployeeID))
	}

	where := ""
	if len(conditions) > 0 {
		where = " WHERE " + strings.Join(conditions, " AND ")
	}

	countQuery := `SELECT COUNT(*) FROM transactions t` + where
	var total int64
	if err := r.Pool.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count transactions: %w", err)
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = 50
	}
	offset := filter.Offset
	if offset < 0 {
		offset = 0
	}

	listQuery := `SELECT ` + prefixColumns("t", transactionColumns) + ` FROM transactions t` + where +
		` ORDER BY t.date DESC, t.created_at DESC LIMIT ` + arg(limit) + ` OFFSET ` + arg(offset) + `;`

	rows, err := r.Pool.Query(ctx, listQuery, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query transactions: %w", err)
	}
	defer rows.Close()

	txns := []domain.Transaction{}
	for rows.Next() {
		m, err := scanTransaction(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan transaction row: %w", err)
		}
		txns = append(txns, mapping.ToDomainTransaction(m))
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("error iterating transaction rows: %w", err)
	}

	return txns, total, nil
}

// UpdateTransaction updates mutable header fields.
func (r *PgxTransactionRepository) UpdateTransaction(ctx context.Context, txn domain.Transaction) error {
	m := mapping.ToModelTransaction(txn)

	query := `
		UPDATE transactions
		SET date = $2, note = $3, customer_id = $4, supplier_id = $5, last_updated_at = $6, last_updated_by = $7
		WHERE transaction_id = $1;
	`
	cmdTag, err := r.Pool.Exec(ctx, query,
		m.TransactionID,
		m.Date,
		m.Note,
		m.CustomerID,
		m.SupplierID,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to execute update transaction %s: %w", m.TransactionID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// DeleteTransaction removes a transaction together with its postings.
func (r *PgxTransactionRepository) DeleteTransaction(ctx context.Context, transactionID string) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	if _, err := tx.Exec(ctx, `DELETE FROM postings WHERE transaction_id = $1;`, transactionID); err != nil {
		return fmt.Errorf("failed to delete postings for transaction %s: %w", transactionID, err)
	}

	cmdTag, err := tx.Exec(ctx, `DELETE FROM transactions WHERE transaction_id = $1;`, transactionID)
	if err != nil {
		return fmt.Errorf("failed to delete transaction %s: %w", transactionID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}

	return r.Commit(ctx, tx)
}

// SaveReversal persists the contra transaction with its postings and marks the
// original as reversed with cross-links, atomically. The original row is
// guarded so double reversals fail even under concurrency.
func (r *PgxTransactionRepository) SaveReversal(ctx context.Context, original domain.Transaction, reversal domain.Transaction, postings []domain.Posting) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	markQuery := `
		UPDATE transactions
		SET status = $2, reversing_transaction_id = $3, last_updated_at = $4, last_updated_by = $5
		WHERE transaction_id = $1 AND status = $6 AND reversing_transaction_id = '';
	`
	cmdTag, err := tx.Exec(ctx, markQuery,
		original.TransactionID,
		string(domain.Reversed),
		reversal.TransactionID,
		original.LastUpdatedAt,
		original.LastUpdatedBy,
		string(domain.Posted),
	)
	if err != nil {
		return fmt.Errorf("failed to mark transaction %s reversed: %w", original.TransactionID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("%w: transaction %s was already reversed", apperrors.ErrState, original.TransactionID)
	}

	if err := insertTransactionTx(ctx, tx, mapping.ToModelTransaction(reversal)); err != nil {
		return fmt.Errorf("failed to insert reversal transaction %s: %w", reversal.TransactionID, err)
	}
	if err := insertPostingsTx(ctx, tx, postings); err != nil {
		return err
	}

	return r.Commit(ctx, tx)
}

// prefixColumns qualifies a comma-separated column list with a table alias.
func prefixColumns(alias, columns string) string {
	parts := strings.Split(columns, ", ")
	for i, p := range parts {
		parts[i] = alias + "." + p
	}
	return strings.Join(parts, ", ")
}
