package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// PurchaseStatus tracks a purchase order through its lifecycle:
// DRAFT -> ORDERED -> PARTIAL_RECEIVED/RECEIVED -> CLOSED. CANCELLED is
// reachable from any non-terminal status. No transition re-enters DRAFT.
type PurchaseStatus string

const (
	PurchaseDraft           PurchaseStatus = "DRAFT"
	PurchaseOrdered         PurchaseStatus = "ORDERED"
	PurchasePartialReceived PurchaseStatus = "PARTIAL_RECEIVED"
	PurchaseReceived        PurchaseStatus = "RECEIVED"
	PurchaseClosed          PurchaseStatus = "CLOSED"
	PurchaseCancelled       PurchaseStatus = "CANCELLED"
)

// IsTerminal reports whether no further status transition is possible.
func (s PurchaseStatus) IsTerminal() bool {
	return s == PurchaseClosed || s == PurchaseCancelled
}

// CanReceiveGoods reports whether goods receipts may still be recorded.
func (s PurchaseStatus) CanReceiveGoods() bool {
	switch s {
	case PurchaseReceived, PurchaseClosed, PurchaseCancelled:
		return false
	}
	return true
}

// CanTransitionTo reports whether the status machine permits moving to next.
func (s PurchaseStatus) CanTransitionTo(next PurchaseStatus) bool {
	if next == PurchaseCancelled {
		return !s.IsTerminal()
	}
	switch s {
	case PurchaseDraft:
		return next == PurchaseOrdered
	case PurchaseOrdered:
		return next == PurchasePartialReceived || next == PurchaseReceived
	case PurchasePartialReceived:
		return next == PurchasePartialReceived || next == PurchaseReceived
	case PurchaseReceived:
		return next == PurchaseClosed
	}
	return false
}

// DeriveReceiptStatus returns the status a purchase should hold given its
// items' received quantities: RECEIVED only when every line is complete,
// PARTIAL_RECEIVED once anything arrived, ORDERED otherwise.
func DeriveReceiptStatus(items []PurchaseItem) PurchaseStatus {
	if len(items) == 0 {
		return PurchaseOrdered
	}
	any, all := false, true
	for _, it := range items {
		if it.QtyReceived > 0 {
			any = true
		}
		if it.QtyReceived < it.QtyOrdered {
			all = false
		}
	}
	switch {
	case all:
		return PurchaseReceived
	case any:
		return PurchasePartialReceived
	}
	return PurchaseOrdered
}

// PaymentStatus is derived from the accumulated paid amount against the total.
type PaymentStatus string

const (
	PaymentUnpaid  PaymentStatus = "UNPAID"
	PaymentPartial PaymentStatus = "PARTIAL"
	PaymentPaid    PaymentStatus = "PAID"
)

// DerivePaymentStatus returns the payment status for a paid/total pair.
func DerivePaymentStatus(paidCents, totalCents int64) PaymentStatus {
	switch {
	case totalCents > 0 && paidCents >= totalCents:
		return PaymentPaid
	case paidCents > 0:
		return PaymentPartial
	}
	return PaymentUnpaid
}

// AllocationMethod says how a header charge is distributed across line items.
type AllocationMethod string

const (
	AllocateProportional AllocationMethod = "PROPORTIONAL" // by line value
	AllocateByQty        AllocationMethod = "BY_QTY"
	AllocateByValue      AllocationMethod = "BY_VALUE" // explicit by-value, same arithmetic as PROPORTIONAL
	AllocateNone         AllocationMethod = "NONE"     // affects header totals only
)

// IsValid reports whether the method is one of the closed set.
func (m AllocationMethod) IsValid() bool {
	switch m {
	case AllocateProportional, AllocateByQty, AllocateByValue, AllocateNone:
		return true
	}
	return false
}

// DiscountKind distinguishes absolute from percentage header discounts.
type DiscountKind string

const (
	DiscountAbsolute   DiscountKind = "ABS"
	DiscountPercentage DiscountKind = "PCT"
)

// IsValid reports whether the kind is ABS or PCT.
func (k DiscountKind) IsValid() bool {
	return k == DiscountAbsolute || k == DiscountPercentage
}

// Purchase is a purchase order aggregate: line items, header charges and
// discounts, goods receipts, and the five reconciled totals the allocation
// engine maintains.
type Purchase struct {
	PurchaseID    string          `json:"purchaseID"` // Primary key (UUID)
	SupplierID    string          `json:"supplierID"`
	Code          string          `json:"code"`
	Type          string          `json:"type"` // e.g. FABRIC, ACCESSORY; free-form reference
	Note          string          `json:"note"`
	Status        PurchaseStatus  `json:"status"`
	PaymentStatus PaymentStatus   `json:"paymentStatus"`
	PaidCents     int64           `json:"paidCents"`
	VATRate       decimal.Decimal `json:"vatRate"` // 0 <= rate <= 1

	// Reconciled totals, overwritten by every recalculation.
	SubTotalCents      int64 `json:"subTotalCents"`
	DiscountTotalCents int64 `json:"discountTotalCents"`
	ChargeTotalCents   int64 `json:"chargeTotalCents"`
	VATTotalCents      int64 `json:"vatTotalCents"`
	RoundingAdjCents   int64 `json:"roundingAdjCents"`
	TotalCents         int64 `json:"totalCents"`

	AuditFields
	Items           []PurchaseItem   `json:"items,omitempty"`
	HeaderCharges   []HeaderCharge   `json:"headerCharges,omitempty"`
	HeaderDiscounts []HeaderDiscount `json:"headerDiscounts,omitempty"`
	Receipts        []GoodsReceipt   `json:"receipts,omitempty"`
}

// PurchaseItem is one ordered line. The three computed fields are overwritten
// on every recalculation. Invariant: 0 <= QtyReceived <= QtyOrdered, always.
type PurchaseItem struct {
	ItemID            string `json:"itemID"` // Primary key (UUID)
	PurchaseID        string `json:"purchaseID"`
	ProductID         string `json:"productID,omitempty"`
	Description       string `json:"description"`
	QtyOrdered        int64  `json:"qtyOrdered"`
	QtyReceived       int64  `json:"qtyReceived"`
	UnitPriceCents    int64  `json:"unitPriceCents"`
	LineDiscountCents int64  `json:"lineDiscountCents"`
	LineChargeCents   int64  `json:"lineChargeCents"`

	// Computed by the allocation engine.
	LineSubTotalCents int64 `json:"lineSubTotalCents"`
	LineVATCents      int64 `json:"lineVATCents"`
	LineTotalCents    int64 `json:"lineTotalCents"`
	AuditFields
}

// HeaderCharge is a purchase-level cost (freight, customs, handling)
// distributed onto line items by its allocation method.
type HeaderCharge struct {
	ChargeID    string           `json:"chargeID"` // Primary key (UUID)
	PurchaseID  string           `json:"purchaseID"`
	Label       string           `json:"label"`
	AmountCents int64            `json:"amountCents"`
	Allocation  AllocationMethod `json:"allocation"`
	AuditFields
}

// HeaderDiscount is a purchase-level reduction. ABS discounts carry an
// absolute AmountCents; PCT discounts carry a Percent of the pre-allocation
// subtotal (0-100).
type HeaderDiscount struct {
	DiscountID  string          `json:"discountID"` // Primary key (UUID)
	PurchaseID  string          `json:"purchaseID"`
	Label       string          `json:"label"`
	Kind        DiscountKind    `json:"kind"`
	AmountCents int64           `json:"amountCents"`
	Percent     decimal.Decimal `json:"percent"`
	AuditFields
}

// GoodsReceipt records one partial or complete delivery against a purchase.
// Receipts are append-only: their lines are never edited, only summed into
// the parent item's received-quantity counter.
type GoodsReceipt struct {
	ReceiptID  string             `json:"receiptID"` // Primary key (UUID)
	PurchaseID string             `json:"purchaseID"`
	Date       time.Time          `json:"date"`
	Warehouse  string             `json:"warehouse"`
	CreatedAt  time.Time          `json:"createdAt"`
	CreatedBy  string             `json:"createdBy"`
	Lines      []GoodsReceiptLine `json:"lines"`
}

// GoodsReceiptLine records the quantity received for one purchase item.
type GoodsReceiptLine struct {
	LineID    string `json:"lineID"` // Primary key (UUID)
	ReceiptID string `json:"receiptID"`
	ItemID    string `json:"itemID"`
	Qty       int64  `json:"qty"`
	LotCode   string `json:"lotCode,omitempty"`
}
