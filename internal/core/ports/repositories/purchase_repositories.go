package repositories

import (
	"context"
	"time"

	"github.com/snngymn-development/modatasar-m/internal/core/domain"
)

// PurchaseFilter narrows ListPurchases results.
type PurchaseFilter struct {
	Query         string // matches code, note, supplier reference
	SupplierID    string
	Type          string
	Status        domain.PurchaseStatus
	PaymentStatus domain.PaymentStatus
	From          *time.Time
	To            *time.Time
	Limit         int
	Offset        int
}

// LineTotals carries the recalculated computed fields for one item.
type LineTotals struct {
	ItemID            string
	LineSubTotalCents int64
	LineVATCents      int64
	LineTotalCents    int64
}

// HeaderTotals carries the five reconciled purchase totals.
type HeaderTotals struct {
	SubTotalCents      int64
	DiscountTotalCents int64
	ChargeTotalCents   int64
	VATTotalCents      int64
	RoundingAdjCents   int64
	TotalCents         int64
}

// PurchaseReader defines read operations for purchase data.
type PurchaseReader interface {
	// FindPurchaseByID retrieves the full aggregate: items, header charges,
	// header discounts, and receipts with their lines.
	FindPurchaseByID(ctx context.Context, purchaseID string) (*domain.Purchase, error)

	// ListPurchases retrieves purchase headers matching the filter, newest
	// first, plus the total match count for pagination.
	ListPurchases(ctx context.Context, filter PurchaseFilter) ([]domain.Purchase, int64, error)

	// FindItemByID retrieves a single purchase item.
	FindItemByID(ctx context.Context, itemID string) (*domain.PurchaseItem, error)

	// FindChargeByID retrieves a single header charge.
	FindChargeByID(ctx context.Context, chargeID string) (*domain.HeaderCharge, error)

	// FindDiscountByID retrieves a single header discount.
	FindDiscountByID(ctx context.Context, discountID string) (*domain.HeaderDiscount, error)
}

// PurchaseWriter defines write operations for the purchase aggregate.
type PurchaseWriter interface {
	// SavePurchase persists a new purchase header.
	SavePurchase(ctx context.Context, purchase domain.Purchase) error

	// UpdatePurchase updates mutable header fields (supplier, type, note).
	UpdatePurchase(ctx context.Context, purchase domain.Purchase) error

	// UpdatePurchaseStatus moves the purchase to the given status.
	UpdatePurchaseStatus(ctx context.Context, purchaseID string, status domain.PurchaseStatus, userID string, now time.Time) error

	// SaveItem, UpdateItem and DeleteItem mutate line items. Recalculation is
	// the caller's responsibility and runs immediately after.
	SaveItem(ctx context.Context, item domain.PurchaseItem) error
	UpdateItem(ctx context.Context, item domain.PurchaseItem) error
	DeleteItem(ctx context.Context, itemID string) error

	SaveCharge(ctx context.Context, charge domain.HeaderCharge) error
	UpdateCharge(ctx context.Context, charge domain.HeaderCharge) error
	DeleteCharge(ctx context.Context, chargeID string) error

	SaveDiscount(ctx context.Context, discount domain.HeaderDiscount) error
	UpdateDiscount(ctx context.Context, discount domain.HeaderDiscount) error
	DeleteDiscount(ctx context.Context, discountID string) error

	// SaveTotals persists the recalculated header totals and every line's
	// computed fields in one atomic write.
	SaveTotals(ctx context.Context, purchaseID string, totals HeaderTotals, lines []LineTotals, userID string, now time.Time) error
}

// PurchaseReceiptSupport defines the storage operations whose correctness
// depends on row locking: the over-receive guard and the paid counter are
// check-then-act sequences that must serialize against concurrent callers.
type PurchaseReceiptSupport interface {
	// SaveReceipt atomically creates the receipt with its lines, increments
	// each item's received quantity, and re-derives the purchase status.
	// The items are locked for the duration; the over-receive guard is
	// re-checked under that lock and returns apperrors.ErrOverReceive on
	// violation with nothing applied.
	SaveReceipt(ctx context.Context, receipt domain.GoodsReceipt, createdBy string) (*domain.Purchase, error)

	// AddPayment atomically increments the paid counter under a row lock and
	// re-derives the payment status, returning the updated purchase.
	AddPayment(ctx context.Context, purchaseID string, amountCents int64, userID string, now time.Time) (*domain.Purchase, error)
}

// PurchaseRepositoryFacade combines all purchase repository interfaces.
type PurchaseRepositoryFacade interface {
	PurchaseReader
	PurchaseWriter
	PurchaseReceiptSupport
}
