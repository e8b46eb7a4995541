package dto

import (
	"time"

	"github.com/snngymn-development/modatasar-m/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreatePurchaseRequest opens a new purchase order in DRAFT.
type CreatePurchaseRequest struct {
	SupplierID string          `json:"supplierID" binding:"required"`
	Type       string          `json:"type" binding:"required,max=40"`
	Note       string          `json:"note,omitempty"`
	VATRate    decimal.Decimal `json:"vatRate"`
}

// UpdatePurchaseRequest updates mutable purchase header fields.
type UpdatePurchaseRequest struct {
	SupplierID *string          `json:"supplierID,omitempty"`
	Type       *string          `json:"type,omitempty"`
	Note       *string          `json:"note,omitempty"`
	VATRate    *decimal.Decimal `json:"vatRate,omitempty"`
}

// AddPurchaseItemRequest appends a line item.
type AddPurchaseItemRequest struct {
	ProductID         string `json:"productID,omitempty"`
	Description       string `json:"description,omitempty"`
	QtyOrdered        int64  `json:"qtyOrdered" binding:"required,gt=0"`
	UnitPriceCents    int64  `json:"unitPriceCents" binding:"gte=0"`
	LineDiscountCents int64  `json:"lineDiscountCents" binding:"gte=0"`
	LineChargeCents   int64  `json:"lineChargeCents" binding:"gte=0"`
}

// UpdatePurchaseItemRequest edits a line item's ordered fields. Received
// quantity is only ever changed by goods receipts.
type UpdatePurchaseItemRequest struct {
	ProductID         *string `json:"productID,omitempty"`
	Description       *string `json:"description,omitempty"`
	QtyOrdered        *int64  `json:"qtyOrdered,omitempty" binding:"omitempty,gt=0"`
	UnitPriceCents    *int64  `json:"unitPriceCents,omitempty" binding:"omitempty,gte=0"`
	LineDiscountCents *int64  `json:"lineDiscountCents,omitempty" binding:"omitempty,gte=0"`
	LineChargeCents   *int64  `json:"lineChargeCents,omitempty" binding:"omitempty,gte=0"`
}

// AddHeaderChargeRequest appends a header-level charge.
type AddHeaderChargeRequest struct {
	Label       string                  `json:"label" binding:"required,max=120"`
	AmountCents int64                   `json:"amountCents" binding:"required,gte=0"`
	Allocation  domain.AllocationMethod `json:"allocation" binding:"required,oneof=PROPORTIONAL BY_QTY BY_VALUE NONE"`
}

// UpdateHeaderChargeRequest edits a header charge.
type UpdateHeaderChargeRequest struct {
	Label       *string                  `json:"label,omitempty"`
	AmountCents *int64                   `json:"amountCents,omitempty" binding:"omitempty,gte=0"`
	Allocation  *domain.AllocationMethod `json:"allocation,omitempty" binding:"omitempty,oneof=PROPORTIONAL BY_QTY BY_VALUE NONE"`
}

// AddHeaderDiscountRequest appends a header-level discount. ABS discounts use
// amountCents; PCT discounts use percent (0-100).
type AddHeaderDiscountRequest struct {
	Label       string              `json:"label" binding:"required,max=120"`
	Kind        domain.DiscountKind `json:"kind" binding:"required,oneof=ABS PCT"`
	AmountCents int64               `json:"amountCents" binding:"gte=0"`
	Percent     decimal.Decimal     `json:"percent"`
}

// UpdateHeaderDiscountRequest edits a header discount.
type UpdateHeaderDiscountRequest struct {
	Label       *string              `json:"label,omitempty"`
	Kind        *domain.DiscountKind `json:"kind,omitempty" binding:"omitempty,oneof=ABS PCT"`
	AmountCents *int64               `json:"amountCents,omitempty" binding:"omitempty,gte=0"`
	Percent     *decimal.Decimal     `json:"percent,omitempty"`
}

// ReceiptLineRequest records the received quantity for one item.
type ReceiptLineRequest struct {
	ItemID  string `json:"itemID" binding:"required"`
	Qty     int64  `json:"qty" binding:"required,gt=0"`
	LotCode string `json:"lotCode,omitempty"`
}

// CreateReceiptRequest records a partial or complete goods receipt.
type CreateReceiptRequest struct {
	Date      *time.Time           `json:"date,omitempty"`
	Warehouse string               `json:"warehouse,omitempty"`
	Lines     []ReceiptLineRequest `json:"lines" binding:"required,min=1,dive"`
}

// AddPaymentRequest accumulates a payment against the purchase total.
type AddPaymentRequest struct {
	AmountCents int64  `json:"amountCents" binding:"required,gt=0"`
	Method      string `json:"method,omitempty"`
}

// ListPurchasesParams filters and paginates purchase listings.
type ListPurchasesParams struct {
	Query         string                `form:"q"`
	SupplierID    string                `form:"supplierId"`
	Type          string                `form:"type"`
	Status        domain.PurchaseStatus `form:"status"`
	PaymentStatus domain.PaymentStatus  `form:"paymentStatus"`
	From          *time.Time            `form:"dateFrom"`
	To            *time.Time            `form:"dateTo"`
	Page          int                   `form:"page"`
	Limit         int                   `form:"limit"`
}

// PurchaseItemResponse defines the data returned for one line item.
type PurchaseItemResponse struct {
	ItemID            string `json:"itemID"`
	ProductID         string `json:"productID,omitempty"`
	Description       string `json:"description,omitempty"`
	QtyOrdered        int64  `json:"qtyOrdered"`
	QtyReceived       int64  `json:"qtyReceived"`
	UnitPriceCents    int64  `json:"unitPriceCents"`
	LineDiscountCents int64  `json:"lineDiscountCents"`
	LineChargeCents   int64  `json:"lineChargeCents"`
	LineSubTotalCents int64  `json:"lineSubTotalCents"`
	LineVATCents      int64  `json:"lineVATCents"`
	LineTotalCents    int64  `json:"lineTotalCents"`
}

// HeaderChargeResponse defines the data returned for one header charge.
type HeaderChargeResponse struct {
	ChargeID    string                  `json:"chargeID"`
	Label       string                  `json:"label"`
	AmountCents int64                   `json:"amountCents"`
	Allocation  domain.AllocationMethod `json:"allocation"`
}

// HeaderDiscountResponse defines the data returned for one header discount.
type HeaderDiscountResponse struct {
	DiscountID  string              `json:"discountID"`
	Label       string              `json:"label"`
	Kind        domain.DiscountKind `json:"kind"`
	AmountCents int64               `json:"amountCents"`
	Percent     decimal.Decimal     `json:"percent"`
}

// ReceiptLineResponse defines the data returned for one receipt line.
type ReceiptLineResponse struct {
	LineID  string `json:"lineID"`
	ItemID  string `json:"itemID"`
	Qty     int64  `json:"qty"`
	LotCode string `json:"lotCode,omitempty"`
}

// GoodsReceiptResponse defines the data returned for one goods receipt.
type GoodsReceiptResponse struct {
	ReceiptID string                `json:"receiptID"`
	Date      time.Time             `json:"date"`
	Warehouse string                `json:"warehouse"`
	Lines     []ReceiptLineResponse `json:"lines"`
}

// PurchaseResponse defines the data returned for a purchase.
type PurchaseResponse struct {
	PurchaseID    string                `json:"purchaseID"`
	SupplierID    string                `json:"supplierID"`
	Code          string                `json:"code"`
	Type          string                `json:"type"`
	Note          string                `json:"note,omitempty"`
	Status        domain.PurchaseStatus `json:"status"`
	PaymentStatus domain.PaymentStatus  `json:"paymentStatus"`
	PaidCents     int64                 `json:"paidCents"`
	VATRate       decimal.Decimal       `json:"vatRate"`

	SubTotalCents      int64 `json:"subTotalCents"`
	DiscountTotalCents int64 `json:"discountTotalCents"`
	ChargeTotalCents   int64 `json:"chargeTotalCents"`
	VATTotalCents      int64 `json:"vatTotalCents"`
	RoundingAdjCents   int64 `json:"roundingAdjCents"`
	TotalCents         int64 `json:"totalCents"`

	Items           []PurchaseItemResponse   `json:"items,omitempty"`
	HeaderCharges   []HeaderChargeResponse   `json:"headerCharges,omitempty"`
	HeaderDiscounts []HeaderDiscountResponse `json:"headerDiscounts,omitempty"`
	Receipts        []GoodsReceiptResponse   `json:"receipts,omitempty"`
}

// ListPurchasesResponse is a page of purchases plus pagination info.
type ListPurchasesResponse struct {
	Purchases []PurchaseResponse `json:"purchases"`
	Total     int64              `json:"total"`
	Page      int                `json:"page"`
	Limit     int                `json:"limit"`
}

// ToPurchaseItemResponse converts a domain.PurchaseItem to its response DTO.
func ToPurchaseItemResponse(it *domain.PurchaseItem) PurchaseItemResponse {
	return PurchaseItemResponse{
		ItemID:            it.ItemID,
		ProductID:         it.ProductID,
		Description:       it.Description,
		QtyOrdered:        it.QtyOrdered,
		QtyReceived:       it.QtyReceived,
		UnitPriceCents:    it.UnitPriceCents,
		LineDiscountCents: it.LineDiscountCents,
		LineChargeCents:   it.LineChargeCents,
		LineSubTotalCents: it.LineSubTotalCents,
		LineVATCents:      it.LineVATCents,
		LineTotalCents:    it.LineTotalCents,
	}
}

// ToGoodsReceiptResponse converts a domain.GoodsReceipt to its response DTO.
func ToGoodsReceiptResponse(r *domain.GoodsReceipt) GoodsReceiptResponse {
	lines := make([]ReceiptLineResponse, len(r.Lines))
	for i, l := range r.Lines {
		lines[i] = ReceiptLineResponse{LineID: l.LineID, ItemID: l.ItemID, Qty: l.Qty, LotCode: l.LotCode}
	}
	return GoodsReceiptResponse{ReceiptID: r.ReceiptID, Date: r.Date, Warehouse: r.Warehouse, Lines: lines}
}

// ToPurchaseResponse converts a domain.Purchase aggregate to its response DTO.
func ToPurchaseResponse(p *domain.Purchase) PurchaseResponse {
	resp := PurchaseResponse{
		PurchaseID:         p.PurchaseID,
		SupplierID:         p.SupplierID,
		Code:               p.Code,
		Type:               p.Type,
		Note:               p.Note,
		Status:             p.Status,
		PaymentStatus:      p.PaymentStatus,
		PaidCents:          p.PaidCents,
		VATRate:            p.VATRate,
		SubTotalCents:      p.SubTotalCents,
		DiscountTotalCents: p.DiscountTotalCents,
		ChargeTotalCents:   p.ChargeTotalCents,
		VATTotalCents:      p.VATTotalCents,
		RoundingAdjCents:   p.RoundingAdjCents,
		TotalCents:         p.TotalCents,
	}
	if len(p.Items) > 0 {
		resp.Items = make([]PurchaseItemResponse, len(p.Items))
		for i := range p.Items {
			resp.Items[i] = ToPurchaseItemResponse(&p.Items[i])
		}
	}
	if len(p.HeaderCharges) > 0 {
		resp.HeaderCharges = make([]HeaderChargeResponse, len(p.HeaderCharges))
		for i, c := range p.HeaderCharges {
			resp.HeaderCharges[i] = HeaderChargeResponse{ChargeID: c.ChargeID, Label: c.Label, AmountCents: c.AmountCents, Allocation: c.Allocation}
		}
	}
	if len(p.HeaderDiscounts) > 0 {
		resp.HeaderDiscounts = make([]HeaderDiscountResponse, len(p.HeaderDiscounts))
		for i, d := range p.HeaderDiscounts {
			resp.HeaderDiscounts[i] = HeaderDiscountResponse{DiscountID: d.DiscountID, Label: d.Label, Kind: d.Kind, AmountCents: d.AmountCents, Percent: d.Percent}
		}
	}
	if len(p.Receipts) > 0 {
		resp.Receipts = make([]GoodsReceiptResponse, len(p.Receipts))
		for i := range p.Receipts {
			resp.Receipts[i] = ToGoodsReceiptResponse(&p.Receipts[i])
		}
	}
	return resp
}

// ToPurchaseResponses converts a slice of purchases to response DTOs.
func ToPurchaseResponses(purchases []domain.Purchase) []PurchaseResponse {
	responses := make([]PurchaseResponse, len(purchases))
	for i := range purchases {
		responses[i] = ToPurchaseResponse(&purchases[i])
	}
	return responses
}
