package pgsql

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/snngymn-development/modatasar-m/internal/apperrors"
	"github.com/snngymn-development/modatasar-m/internal/core/domain"
	portsrepo "github.com/snngymn-development/modatasar-m/internal/core/ports/repositories"
	"github.com/snngymn-development/modatasar-m/internal/models"
	"github.com/snngymn-development/modatasar-m/internal/utils/mapping"
)

const purchaseColumns = `purchase_id, supplier_id, code, type, note, status, payment_status, paid_cents, vat_rate, sub_total_cents, discount_total_cents, charge_total_cents, vat_total_cents, rounding_adj_cents, total_cents, created_at, created_by, last_updated_at, last_updated_by`

const purchaseItemColumns = `item_id, purchase_id, product_id, description, qty_ordered, qty_received, unit_price_cents, line_discount_cents, line_charge_cents, line_sub_total_cents, line_vat_cents, line_total_cents, created_at, created_by, last_updated_at, last_updated_by`

const headerChargeColumns = `charge_id, purchase_id, label, amount_cents, allocation, created_at, created_by, last_updated_at, last_updated_by`

const headerDiscountColumns = `discount_id, purchase_id, label, kind, amount_cents, percent, created_at, created_by, last_updated_at, last_updated_by`

type PgxPurchaseRepository struct {
	BaseRepository
}

// newPgxPurchaseRepository creates a new repository for purchase data.
func newPgxPurchaseRepository(pool *pgxpool.Pool) portsrepo.PurchaseRepositoryFacade {
	return &PgxPurchaseRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.PurchaseRepositoryFacade = (*PgxPurchaseRepository)(nil)

func scanPurchase(row pgx.Row) (models.Purchase, error) {
	var m models.Purchase
	err := row.Scan(
		&m.PurchaseID,
		&m.SupplierID,
		&m.Code,
		&m.Type,
		&m.Note,
		&m.Status,
		&m.PaymentStatus,
		&m.PaidCents,
		&m.VATRate,
		&m.SubTotalCents,
		&m.DiscountTotalCents,
		&m.ChargeTotalCents,
		&m.VATTotalCents,
		&m.RoundingAdjCents,
		&m.TotalCents,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

func scanPurchaseItem(row pgx.Row) (models.PurchaseItem, error) {
	var m models.PurchaseItem
	err := row.Scan(
		&m.ItemID,
		&m.PurchaseID,
		&m.ProductID,
		&m.Description,
		&m.QtyOrdered,
		&m.QtyReceived,
		&m.UnitPriceCents,
		&m.LineDiscountCents,
		&m.LineChargeCents,
		&m.LineSubTotalCents,
		&m.LineVATCents,
		&m.LineTotalCents,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

func scanHeaderCharge(row pgx.Row) (models.HeaderCharge, error) {
	var m models.HeaderCharge
	err := row.Scan(
		&m.ChargeID,
		&m.PurchaseID,
		&m.Label,
		&m.AmountCents,
		&m.Allocation,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

func scanHeaderDiscount(row pgx.Row) (models.HeaderDiscount, error) {
	var m models.HeaderDiscount
	err := row.Scan(
		&m.DiscountID,
		&m.PurchaseID,
		&m.Label,
		&m.Kind,
		&m.AmountCents,
		&m.Percent,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

// FindPurchaseByID retrieves the full aggregate: items, header charges,
// header discounts, and receipts with their lines.
func (r *PgxPurchaseRepository) FindPurchaseByID(ctx context.Context, purchaseID string) (*domain.Purchase, error) {
	query := `SELECT ` + purchaseColumns + ` FROM purchases WHERE purchase_id = $1;`

	m, err := scanPurchase(r.Pool.QueryRow(ctx, query, purchaseID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find purchase by ID %s: %w", purchaseID, err)
	}

	d := mapping.ToDomainPurchase(m)
	if d.Items, err = r.findItemsByPurchaseID(ctx, purchaseID); err != nil {
		return nil, err
	}
	if d.HeaderCharges, err = r.findChargesByPurchaseID(ctx, purchaseID); err != nil {
		return nil, err
	}
	if d.HeaderDiscounts, err = r.findDiscountsByPurchaseID(ctx, purchaseID); err != nil {
		return nil, err
	}
	if d.Receipts, err = r.findReceiptsByPurchaseID(ctx, purchaseID); err != nil {
		return nil, err
	}
	return &d, nil
}

func (r *PgxPurchaseRepository) findItemsByPurchaseID(ctx context.Context, purchaseID string) ([]domain.PurchaseItem, error) {
	query := `SELECT ` + purchaseItemColumns + ` FROM purchase_items WHERE purchase_id = $1 ORDER BY created_at, item_id;`

	rows, err := r.Pool.Query(ctx, query, purchaseID)
	if err != nil {
		return nil, fmt.Errorf("failed to query items for purchase %s: %w", purchaseID, err)
	}
	defer rows.Close()

	items := []domain.PurchaseItem{}
	for rows.Next() {
		m, err := scanPurchaseItem(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan purchase item row: %w", err)
		}
		items = append(items, mapping.ToDomainPurchaseItem(m))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating purchase item rows: %w", err)
	}
	return items, nil
}

func (r *PgxPurchaseRepository) findChargesByPurchaseID(ctx context.Context, purchaseID string) ([]domain.HeaderCharge, error) {
	query := `SELECT ` + headerChargeColumns + ` FROM header_charges WHERE purchase_id = $1 ORDER BY created_at, charge_id;`

	rows, err := r.Pool.Query(ctx, query, purchaseID)
	if err != nil {
		return nil, fmt.Errorf("failed to query charges for purchase %s: %w", purchaseID, err)
	}
	defer rows.Close()

	charges := []domain.HeaderCharge{}
	for rows.Next() {
		m, err := scanHeaderCharge(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan header charge row: %w", err)
		}
		charges = append(charges, mapping.ToDomainHeaderCharge(m))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating header charge rows: %w", err)
	}
	return charges, nil
}

func (r *PgxPurchaseRepository) findDiscountsByPurchaseID(ctx context.Context, purchaseID string) ([]domain.HeaderDiscount, error) {
	query := `SELECT ` + headerDiscountColumns + ` FROM header_discounts WHERE purchase_id = $1 ORDER BY created_at, discount_id;`

	rows, err := r.Pool.Query(ctx, query, purchaseID)
	if err != nil {
		return nil, fmt.Errorf("failed to query discounts for purchase %s: %w", purchaseID, err)
	}
	defer rows.Close()

	discounts := []domain.HeaderDiscount{}
	for rows.Next() {
		m, err := scanHeaderDiscount(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan header discount row: %w", err)
		}
		discounts = append(discounts, mapping.ToDomainHeaderDiscount(m))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating header discount rows: %w", err)
	}
	return discounts, nil
}

func (r *PgxPurchaseRepository) findReceiptsByPurchaseID(ctx context.Context, purchaseID string) ([]domain.GoodsReceipt, error) {
	query := `
		SELECT r.receipt_id, r.purchase_id, r.date, r.warehouse, r.created_at, r.created_by
		FROM goods_receipts r
		WHERE r.purchase_id = $1
		ORDER BY r.date, r.receipt_id;
	`
	rows, err := r.Pool.Query(ctx, query, purchaseID)
	if err != nil {
		return nil, fmt.Errorf("failed to query receipts for purchase %s: %w", purchaseID, err)
	}
	defer rows.Close()

	receipts := []domain.GoodsReceipt{}
	for rows.Next() {
		var m models.GoodsReceipt
		if err := rows.Scan(&m.ReceiptID, &m.PurchaseID, &m.Date, &m.Warehouse, &m.CreatedAt, &m.CreatedBy); err != nil {
			return nil, fmt.Errorf("failed to scan goods receipt row: %w", err)
		}
		receipts = append(receipts, mapping.ToDomainGoodsReceipt(m))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating goods receipt rows: %w", err)
	}

	for i := range receipts {
		lines, err := r.findReceiptLines(ctx, receipts[i].ReceiptID)
		if err != nil {
			return nil, err
		}
		receipts[i].Lines = lines
	}
	return receipts, nil
}

func (r *PgxPurchaseRepository) findReceiptLines(ctx context.Context, receiptID string) ([]domain.GoodsReceiptLine, error) {
	query := `
		SELECT line_id, receipt_id, item_id, qty, lot_code
		FROM goods_receipt_lines
		WHERE receipt_id = $1
		ORDER BY line_id;
	`
	rows, err := r.Pool.Query(ctx, query, receiptID)
	if err != nil {
		return nil, fmt.Errorf("failed to query lines for receipt %s: %w", receiptID, err)
	}
	defer rows.Close()

	lines := []domain.GoodsReceiptLine{}
	for rows.Next() {
		var m models.GoodsReceiptLine
		if err := rows.Scan(&m.LineID, &m.ReceiptID, &m.ItemID, &m.Qty, &m.LotCode); err != nil {
			return nil, fmt.Errorf("failed to scan goods receipt line row: %w", err)
		}
		lines = append(lines, mapping.ToDomainGoodsReceiptLine(m))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating goods receipt line rows: %w", err)
	}
	return lines, nil
}

// ListPurchases retrieves purchase headers matching the filter, newest first,
// plus the total match count. Child rows are not loaded for listings.
func (r *PgxPurchaseRepository) ListPurchases(ctx context.Context, filter portsrepo.PurchaseFilter) ([]domain.Purchase, int64, error) {
	conditions := []string{}
	args := []any{}
	arg := func(v any) string {
		args = append(args, v)
		return "$" + strconv.Itoa(len(args))
	}

	if filter.Query != "" {
		pattern := "%" + filter.Query + "%"
		conditions = append(conditions, "(code ILIKE "+arg(pattern)+" OR note ILIKE "+arg(pattern)+" OR supplier_id = "+arg(filter.Query)+")")
	}
	if filter.SupplierID != "" {
		conditions = append(conditions, "supplier_id = "+arg(filter.SupplierID))
	}
	if filter.Type != "" {
		conditions = append(conditions, "type = "+arg(filter.Type))
	}
	if filter.Status != "" {
		conditions = append(conditions, "status = "+arg(string(filter.Status)))
	}
	if filter.PaymentStatus != "" {
		conditions = append(conditions, "payment_status = "+arg(string(filter.PaymentStatus)))
	}
	if filter.From != nil {
		conditions = append(conditions, "created_at >= "+arg(*filter.From))
	}
	if filter.To != nil {
		conditions = append(conditions, "created_at <= "+arg(*filter.To))
	}

	where := ""
	if len(conditions) > 0 {
		where = " WHERE " + strings.Join(conditions, " AND ")
	}

	var total int64
	if err := r.Pool.QueryRow(ctx, `SELECT COUNT(*) FROM purchases`+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count purchases: %w", err)
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = 50
	}
	offset := filter.Offset
	if offset < 0 {
		offset = 0
	}

	listQuery := `SELECT ` + purchaseColumns + ` FROM purchases` + where +
		` ORDER BY created_at DESC LIMIT ` + arg(limit) + ` OFFSET ` + arg(offset) + `;`

	rows, err := r.Pool.Query(ctx, listQuery, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query purchases: %w", err)
	}
	defer rows.Close()

	purchases := []domain.Purchase{}
	for rows.Next() {
		m, err := scanPurchase(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan purchase row: %w", err)
		}
		purchases = append(purchases, mapping.ToDomainPurchase(m))
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("error iterating purchase rows: %w", err)
	}

	return purchases, total, nil
}

// FindItemByID retrieves a single purchase item.
func (r *PgxPurchaseRepository) FindItemByID(ctx context.Context, itemID string) (*domain.PurchaseItem, error) {
	query := `SELECT ` + purchaseItemColumns + ` FROM purchase_items WHERE item_id = $1;`

	m, err := scanPurchaseItem(r.Pool.QueryRow(ctx, query, itemID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find item by ID %s: %w", itemID, err)
	}

	d := mapping.ToDomainPurchaseItem(m)
	return &d, nil
}

// FindChargeByID retrieves a single header charge.
func (r *PgxPurchaseRepository) FindChargeByID(ctx context.Context, chargeID string) (*domain.HeaderCharge, error) {
	query := `SELECT ` + headerChargeColumns + ` FROM header_charges WHERE charge_id = $1;`

	m, err := scanHeaderCharge(r.Pool.QueryRow(ctx, query, chargeID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find charge by ID %s: %w", chargeID, err)
	}

	d := mapping.ToDomainHeaderCharge(m)
	return &d, nil
}

// FindDiscountByID retrieves a single header discount.
func (r *PgxPurchaseRepository) FindDiscountByID(ctx context.Context, discountID string) (*domain.HeaderDiscount, error) {
	query := `SELECT ` + headerDiscountColumns + ` FROM header_discounts WHERE discount_id = $1;`

	m, err := scanHeaderDiscount(r.Pool.QueryRow(ctx, query, discountID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find discount by ID %s: %w", discountID, err)
	}

	d := mapping.ToDomainHeaderDiscount(m)
	return &d, nil
}

// SavePurchase persists a new purchase header.
func (r *PgxPurchaseRepository) SavePurchase(ctx context.Context, purchase domain.Purchase) error {
	m := mapping.ToModelPurchase(purchase)

	query := `
		INSERT INTO purchases (` + purchaseColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.PurchaseID, m.SupplierID, m.Code, m.Type, m.Note,
		m.Status, m.PaymentStatus, m.PaidCents, m.VATRate,
		m.SubTotalCents, m.DiscountTotalCents, m.ChargeTotalCents,
		m.VATTotalCents, m.RoundingAdjCents, m.TotalCents,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to save purchase %s: %w", m.PurchaseID, err)
	}
	return nil
}

// UpdatePurchase updates mutable header fields.
func (r *PgxPurchaseRepository) UpdatePurchase(ctx context.Context, purchase domain.Purchase) error {
	m := mapping.ToModelPurchase(purchase)

	query := `
		UPDATE purchases
		SET supplier_id = $2, type = $3, note = $4, vat_rate = $5, last_updated_at = $6, last_updated_by = $7
		WHERE purchase_id = $1;
	`
	cmdTag, err := r.Pool.Exec(ctx, query,
		m.PurchaseID, m.SupplierID, m.Type, m.Note, m.VATRate, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to execute update purchase %s: %w", m.PurchaseID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// UpdatePurchaseStatus moves the purchase to the given status.
func (r *PgxPurchaseRepository) UpdatePurchaseStatus(ctx context.Context, purchaseID string, status domain.PurchaseStatus, userID string, now time.Time) error {
	query := `
		UPDATE purchases
		SET status = $2, last_updated_at = $3, last_updated_by = $4
		WHERE purchase_id = $1;
	`
	cmdTag, err := r.Pool.Exec(ctx, query, purchaseID, string(status), now, userID)
	if err != nil {
		return fmt.Errorf("failed to execute update purchase %s status: %w", purchaseID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// SaveItem inserts a new purchase item.
func (r *PgxPurchaseRepository) SaveItem(ctx context.Context, item domain.PurchaseItem) error {
	m := mapping.ToModelPurchaseItem(item)

	query := `
		INSERT INTO purchase_items (` + purchaseItemColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.ItemID, m.PurchaseID, m.ProductID, m.Description,
		m.QtyOrdered, m.QtyReceived, m.UnitPriceCents,
		m.LineDiscountCents, m.LineChargeCents,
		m.LineSubTotalCents, m.LineVATCents, m.LineTotalCents,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to save item %s: %w", m.ItemID, err)
	}
	return nil
}

// UpdateItem updates a purchase item's ordered fields.
func (r *PgxPurchaseRepository) UpdateItem(ctx context.Context, item domain.PurchaseItem) error {
	m := mapping.ToModelPurchaseItem(item)

	query := `
		UPDATE purchase_items
		SET product_id = $2, description = $3, qty_ordered = $4, unit_price_cents = $5,
		    line_discount_cents = $6, line_charge_cents = $7, last_updated_at = $8, last_updated_by = $9
		WHERE item_id = $1;
	`
	cmdTag, err := r.Pool.Exec(ctx, query,
		m.ItemID, m.ProductID, m.Description, m.QtyOrdered, m.UnitPriceCents,
		m.LineDiscountCents, m.LineChargeCents, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to execute update item %s: %w", m.ItemID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// DeleteItem removes a purchase item.
func (r *PgxPurchaseRepository) DeleteItem(ctx context.Context, itemID string) error {
	cmdTag, err := r.Pool.Exec(ctx, `DELETE FROM purchase_items WHERE item_id = $1;`, itemID)
	if err != nil {
		return fmt.Errorf("failed to delete item %s: %w", itemID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// SaveCharge inserts a new header charge.
func (r *PgxPurchaseRepository) SaveCharge(ctx context.Context, charge domain.HeaderCharge) error {
	m := mapping.ToModelHeaderCharge(charge)

	query := `
		INSERT INTO header_charges (` + headerChargeColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.ChargeID, m.PurchaseID, m.Label, m.AmountCents, m.Allocation,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to save charge %s: %w", m.ChargeID, err)
	}
	return nil
}

// UpdateCharge updates a header charge.
func (r *PgxPurchaseRepository) UpdateCharge(ctx context.Context, charge domain.HeaderCharge) error {
	m := mapping.ToModelHeaderCharge(charge)

	query := `
		UPDATE header_charges
		SET label = $2, amount_cents = $3, allocation = $4, last_updated_at = $5, last_updated_by = $6
		WHERE charge_id = $1;
	`
	cmdTag, err := r.Pool.Exec(ctx, query,
		m.ChargeID, m.Label, m.AmountCents, m.Allocation, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to execute update charge %s: %w", m.ChargeID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// DeleteCharge removes a header charge.
func (r *PgxPurchaseRepository) DeleteCharge(ctx context.Context, chargeID string) error {
	cmdTag, err := r.Pool.Exec(ctx, `DELETE FROM header_charges WHERE charge_id = $1;`, chargeID)
	if err != nil {
		return fmt.Errorf("failed to delete charge %s: %w", chargeID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// SaveDiscount inserts a new header discount.
func (r *PgxPurchaseRepository) SaveDiscount(ctx context.Context, discount domain.HeaderDiscount) error {
	m := mapping.ToModelHeaderDiscount(discount)

	query := `
		INSERT INTO header_discounts (` + headerDiscountColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.DiscountID, m.PurchaseID, m.Label, m.Kind, m.AmountCents, m.Percent,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to save discount %s: %w", m.DiscountID, err)
	}
	return nil
}

// UpdateDiscount updates a header discount.
func (r *PgxPurchaseRepository) UpdateDiscount(ctx context.Context, discount domain.HeaderDiscount) error {
	m := mapping.ToModelHeaderDiscount(discount)

	query := `
		UPDATE header_discounts
		SET label = $2, kind = $3, amount_cents = $4, percent = $5, last_updated_at = $6, last_updated_by = $7
		WHERE discount_id = $1;
	`
	cmdTag, err := r.Pool.Exec(ctx, query,
		m.DiscountID, m.Label, m.Kind, m.AmountCents, m.Percent, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to execute update discount %s: %w", m.DiscountID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// DeleteDiscount removes a header discount.
func (r *PgxPurchaseRepository) DeleteDiscount(ctx context.Context, discountID string) error {
	cmdTag, err := r.Pool.Exec(ctx, `DELETE FROM header_discounts WHERE discount_id = $1;`, discountID)
	if err != nil {
		return fmt.Errorf("failed to delete discount %s: %w", discountID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// SaveTotals persists the recalculated header totals and every line's computed
// fields in one atomic write.
func (r *PgxPurchaseRepository) SaveTotals(ctx context.Context, purchaseID string, totals portsrepo.HeaderTotals, lines []portsrepo.LineTotals, userID string, now time.Time) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	headerQuery := `
		UPDATE purchases
		SET sub_total_cents = $2, discount_total_cents = $3, charge_total_cents = $4,
		    vat_total_cents = $5, rounding_adj_cents = $6, total_cents = $7,
		    payment_status = CASE
		        WHEN $7 > 0 AND paid_cents >= $7 THEN 'PAID'
		        WHEN paid_cents > 0 THEN 'PARTIAL'
		        ELSE 'UNPAID'
		    END,
		    last_updated_at = $8, last_updated_by = $9
		WHERE purchase_id = $1;
	`
	cmdTag, err := tx.Exec(ctx, headerQuery,
		purchaseID,
		totals.SubTotalCents, totals.DiscountTotalCents, totals.ChargeTotalCents,
		totals.VATTotalCents, totals.RoundingAdjCents, totals.TotalCents,
		now, userID,
	)
	if err != nil {
		return fmt.Errorf("failed to update totals for purchase %s: %w", purchaseID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}

	lineQuery := `
		UPDATE purchase_items
		SET line_sub_total_cents = $2, line_vat_cents = $3, line_total_cents = $4,
		    last_updated_at = $5, last_updated_by = $6
		WHERE item_id = $1;
	`
	batch := &pgx.Batch{}
	for _, line := range lines {
		batch.Queue(lineQuery, line.ItemID, line.LineSubTotalCents, line.LineVATCents, line.LineTotalCents, now, userID)
	}

	br := tx.SendBatch(ctx, batch)
	var batchErr error
	for i := 0; i < batch.Len(); i++ {
		ct, err := br.Exec()
		if err != nil && batchErr == nil {
			batchErr = fmt.Errorf("failed to update totals for item %s: %w", lines[i].ItemID, err)
		} else if err == nil && ct.RowsAffected() == 0 && batchErr == nil {
			batchErr = fmt.Errorf("%w: item %s not found during totals update", apperrors.ErrNotFound, lines[i].ItemID)
		}
	}
	if err := br.Close(); err != nil && batchErr == nil {
		batchErr = fmt.Errorf("failed to close totals batch: %w", err)
	}
	if batchErr != nil {
		return batchErr
	}

	return r.Commit(ctx, tx)
}

// SaveReceipt atomically creates the receipt with its lines, increments each
// item's received quantity, and re-derives the purchase status. Item rows are
// locked for the duration so concurrent receipts cannot both pass the
// over-receive guard.
func (r *PgxPurchaseRepository) SaveReceipt(ctx context.Context, receipt domain.GoodsReceipt, createdBy string) (*domain.Purchase, error) {
	tx, err := r.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer r.Rollback(ctx, tx)

	itemIDs := make([]string, 0, len(receipt.Lines))
	qtyByItem := make(map[string]int64, len(receipt.Lines))
	for _, line := range receipt.Lines {
		itemIDs = append(itemIDs, line.ItemID)
		qtyByItem[line.ItemID] = line.Qty
	}

	lockQuery := `
		SELECT item_id, qty_ordered, qty_received
		FROM purchase_items
		WHERE item_id = ANY($1) AND purchase_id = $2
		FOR UPDATE;
	`
	rows, err := tx.Query(ctx, lockQuery, itemIDs, receipt.PurchaseID)
	if err != nil {
		return nil, fmt.Errorf("failed to lock items for receipt: %w", err)
	}

	type lockedItem struct {
		ordered  int64
		received int64
	}
	locked := make(map[string]lockedItem, len(itemIDs))
	for rows.Next() {
		var id string
		var li lockedItem
		if err := rows.Scan(&id, &li.ordered, &li.received); err != nil {
			rows.Close()
			return nil, fmt.Errorf("failed to scan locked item row: %w", err)
		}
		locked[id] = li
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating locked item rows: %w", err)
	}

	// The guard re-check under lock is authoritative. The service-level check
	// only filters the obvious cases before the transaction starts.
	for _, itemID := range itemIDs {
		li, ok := locked[itemID]
		if !ok {
			return nil, fmt.Errorf("%w: item %s not found on purchase %s", apperrors.ErrNotFound, itemID, receipt.PurchaseID)
		}
		if li.received+qtyByItem[itemID] > li.ordered {
			return nil, fmt.Errorf("%w: item %s has %d of %d received, cannot receive %d more",
				apperrors.ErrOverReceive, itemID, li.received, li.ordered, qtyByItem[itemID])
		}
	}

	receiptQuery := `
		INSERT INTO goods_receipts (receipt_id, purchase_id, date, warehouse, created_at, created_by)
		VALUES ($1, $2, $3, $4, $5, $6);
	`
	if _, err := tx.Exec(ctx, receiptQuery,
		receipt.ReceiptID, receipt.PurchaseID, receipt.Date, receipt.Warehouse, receipt.CreatedAt, createdBy,
	); err != nil {
		return nil, fmt.Errorf("failed to insert receipt %s: %w", receipt.ReceiptID, err)
	}

	lineQuery := `
		INSERT INTO goods_receipt_lines (line_id, receipt_id, item_id, qty, lot_code)
		VALUES ($1, $2, $3, $4, $5);
	`
	itemQuery := `
		UPDATE purchase_items
		SET qty_received = qty_received + $2, last_updated_at = $3, last_updated_by = $4
		WHERE item_id = $1;
	`
	batch := &pgx.Batch{}
	for _, line := range receipt.Lines {
		batch.Queue(lineQuery, line.LineID, line.ReceiptID, line.ItemID, line.Qty, line.LotCode)
		batch.Queue(itemQuery, line.ItemID, line.Qty, receipt.CreatedAt, createdBy)
	}
	br := tx.SendBatch(ctx, batch)
	var batchErr error
	for i := 0; i < batch.Len(); i++ {
		if _, err := br.Exec(); err != nil && batchErr == nil {
			batchErr = fmt.Errorf("failed to apply receipt line batch: %w", err)
		}
	}
	if err := br.Close(); err != nil && batchErr == nil {
		batchErr = fmt.Errorf("failed to close receipt batch: %w", err)
	}
	if batchErr != nil {
		return nil, batchErr
	}

	// Re-derive status across ALL items of the purchase, not only the ones on
	// this receipt. Quantities are re-read inside the transaction so the
	// increments above are visible.
	itemsQuery := `SELECT qty_ordered, qty_received FROM purchase_items WHERE purchase_id = $1;`
	itemRows, err := tx.Query(ctx, itemsQuery, receipt.PurchaseID)
	if err != nil {
		return nil, fmt.Errorf("failed to read items for status derivation on purchase %s: %w", receipt.PurchaseID, err)
	}
	var allItems []domain.PurchaseItem
	for itemRows.Next() {
		var it domain.PurchaseItem
		if err := itemRows.Scan(&it.QtyOrdered, &it.QtyReceived); err != nil {
			itemRows.Close()
			return nil, fmt.Errorf("failed to scan item quantities: %w", err)
		}
		allItems = append(allItems, it)
	}
	itemRows.Close()
	if err := itemRows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating item quantities: %w", err)
	}

	status := domain.DeriveReceiptStatus(allItems)
	statusQuery := `
		UPDATE purchases
		SET status = $2, last_updated_at = $3, last_updated_by = $4
		WHERE purchase_id = $1;
	`
	if _, err := tx.Exec(ctx, statusQuery, receipt.PurchaseID, string(status), receipt.CreatedAt, createdBy); err != nil {
		return nil, fmt.Errorf("failed to re-derive status for purchase %s: %w", receipt.PurchaseID, err)
	}

	if err := r.Commit(ctx, tx); err != nil {
		return nil, err
	}
	return r.FindPurchaseByID(ctx, receipt.PurchaseID)
}

// AddPayment atomically increments the paid counter under a row lock and
// re-derives the payment status.
func (r *PgxPurchaseRepository) AddPayment(ctx context.Context, purchaseID string, amountCents int64, userID string, now time.Time) (*domain.Purchase, error) {
	tx, err := r.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer r.Rollback(ctx, tx)

	var paid, total int64
	lockQuery := `SELECT paid_cents, total_cents FROM purchases WHERE purchase_id = $1 FOR UPDATE;`
	if err := tx.QueryRow(ctx, lockQuery, purchaseID).Scan(&paid, &total); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to lock purchase %s for payment: %w", purchaseID, err)
	}

	newPaid := paid + amountCents
	newStatus := domain.DerivePaymentStatus(newPaid, total)

	updateQuery := `
		UPDATE purchases
		SET paid_cents = $2, payment_status = $3, last_updated_at = $4, last_updated_by = $5
		WHERE purchase_id = $1;
	`
	if _, err := tx.Exec(ctx, updateQuery, purchaseID, newPaid, string(newStatus), now, userID); err != nil {
		return nil, fmt.Errorf("failed to apply payment to purchase %s: %w", purchaseID, err)
	}

	if err := r.Commit(ctx, tx); err != nil {
		return nil, err
	}
	return r.FindPurchaseByID(ctx, purchaseID)
}
