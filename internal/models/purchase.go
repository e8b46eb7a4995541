package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// PurchaseStatus tracks a purchase row through its lifecycle.
type PurchaseStatus string

// PaymentStatus tracks how much of a purchase row has been paid.
type PaymentStatus string

// AllocationMethod says how a header charge row spreads across items.
type AllocationMethod string

// DiscountKind distinguishes absolute from percentage discount rows.
type DiscountKind string

// Purchase represents a row of the purchases table.
type Purchase struct {
	PurchaseID    string          `json:"purchaseID"` // Primary Key (UUID)
	SupplierID    string          `json:"supplierID"`
	Code          string          `json:"code"`
	Type          string          `json:"type"`
	Note          string          `json:"note"`
	Status        PurchaseStatus  `json:"status"`
	PaymentStatus PaymentStatus   `json:"paymentStatus"`
	PaidCents     int64           `json:"paidCents"`
	VATRate       decimal.Decimal `json:"vatRate"`

	SubTotalCents      int64 `json:"subTotalCents"`
	DiscountTotalCents int64 `json:"discountTotalCents"`
	ChargeTotalCents   int64 `json:"chargeTotalCents"`
	VATTotalCents      int64 `json:"vatTotalCents"`
	RoundingAdjCents   int64 `json:"roundingAdjCents"`
	TotalCents         int64 `json:"totalCents"`
	AuditFields
}

// PurchaseItem represents a row of the purchase_items table.
type PurchaseItem struct {
	ItemID            string `json:"itemID"` // Primary Key (UUID)
	PurchaseID        string `json:"purchaseID"`
	ProductID         string `json:"productID"`
	Description       string `json:"description"`
	QtyOrdered        int64  `json:"qtyOrdered"`
	QtyReceived       int64  `json:"qtyReceived"`
	UnitPriceCents    int64  `json:"unitPriceCents"`
	LineDiscountCents int64  `json:"lineDiscountCents"`
	LineChargeCents   int64  `json:"lineChargeCents"`
	LineSubTotalCents int64  `json:"lineSubTotalCents"`
	LineVATCents      int64  `json:"lineVATCents"`
	LineTotalCents    int64  `json:"lineTotalCents"`
	AuditFields
}

// HeaderCharge represents a row of the header_charges table.
type HeaderCharge struct {
	ChargeID    string           `json:"chargeID"` // Primary Key (UUID)
	PurchaseID  string           `json:"purchaseID"`
	Label       string           `json:"label"`
	AmountCents int64            `json:"amountCents"`
	Allocation  AllocationMethod `json:"allocation"`
	AuditFields
}

// HeaderDiscount represents a row of the header_discounts table.
type HeaderDiscount struct {
	DiscountID  string          `json:"discountID"` // Primary Key (UUID)
	PurchaseID  string          `json:"purchaseID"`
	Label       string          `json:"label"`
	Kind        DiscountKind    `json:"kind"`
	AmountCents int64           `json:"amountCents"`
	Percent     decimal.Decimal `json:"percent"`
	AuditFields
}

// GoodsReceipt represents a row of the goods_receipts table.
type GoodsReceipt struct {
	ReceiptID  string    `json:"receiptID"` // Primary Key (UUID)
	PurchaseID string    `json:"purchaseID"`
	Date       time.Time `json:"date"`
	Warehouse  string    `json:"warehouse"`
	CreatedAt  time.Time `json:"createdAt"`
	CreatedBy  string    `json:"createdBy"`
}

// GoodsReceiptLine represents a row of the goods_receipt_lines table.
type GoodsReceiptLine struct {
	LineID    string `json:"lineID"` // Primary Key (UUID)
	ReceiptID string `json:"receiptID"`
	ItemID    string `json:"itemID"`
	Qty       int64  `json:"qty"`
	LotCode   string `json:"lotCode"`
}
