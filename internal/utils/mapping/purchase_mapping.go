package mapping

import (
	"github.com/snngymn-development/modatasar-m/internal/core/domain"
	"github.com/snngymn-development/modatasar-m/internal/models"
)

// ToModelPurchase converts a domain Purchase header to a model Purchase
func ToModelPurchase(d domain.Purchase) models.Purchase {
	return models.Purchase{
		PurchaseID:         d.PurchaseID,
		SupplierID:         d.SupplierID,
		Code:               d.Code,
		Type:               d.Type,
		Note:               d.Note,
		Status:             models.PurchaseStatus(d.Status),
		PaymentStatus:      models.PaymentStatus(d.PaymentStatus),
		PaidCents:          d.PaidCents,
		VATRate:            d.VATRate,
		SubTotalCents:      d.SubTotalCents,
		DiscountTotalCents: d.DiscountTotalCents,
		ChargeTotalCents:   d.ChargeTotalCents,
		VATTotalCents:      d.VATTotalCents,
		RoundingAdjCents:   d.RoundingAdjCents,
		TotalCents:         d.TotalCents,
		AuditFields:        ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainPurchase converts a model Purchase to a domain Purchase header
func ToDomainPurchase(m models.Purchase) domain.Purchase {
	return domain.Purchase{
		PurchaseID:         m.PurchaseID,
		SupplierID:         m.SupplierID,
		Code:               m.Code,
		Type:               m.Type,
		Note:               m.Note,
		Status:             domain.PurchaseStatus(m.Status),
		PaymentStatus:      domain.PaymentStatus(m.PaymentStatus),
		PaidCents:          m.PaidCents,
		VATRate:            m.VATRate,
		SubTotalCents:      m.SubTotalCents,
		DiscountTotalCents: m.DiscountTotalCents,
		ChargeTotalCents:   m.ChargeTotalCents,
		VATTotalCents:      m.VATTotalCents,
		RoundingAdjCents:   m.RoundingAdjCents,
		TotalCents:         m.TotalCents,
		AuditFields:        ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainPurchaseSlice converts a slice of model Purchases to domain Purchases
func ToDomainPurchaseSlice(ms []models.Purchase) []domain.Purchase {
	ds := make([]domain.Purchase, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainPurchase(m)
	}
	return ds
}

// ToModelPurchaseItem converts a domain PurchaseItem to a model PurchaseItem
func ToModelPurchaseItem(d domain.PurchaseItem) models.PurchaseItem {
	return models.PurchaseItem{
		ItemID:            d.ItemID,
		PurchaseID:        d.PurchaseID,
		ProductID:         d.ProductID,
		Description:       d.Description,
		QtyOrdered:        d.QtyOrdered,
		QtyReceived:       d.QtyReceived,
		UnitPriceCents:    d.UnitPriceCents,
		LineDiscountCents: d.LineDiscountCents,
		LineChargeCents:   d.LineChargeCents,
		LineSubTotalCents: d.LineSubTotalCents,
		LineVATCents:      d.LineVATCents,
		LineTotalCents:    d.LineTotalCents,
		AuditFields:       ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainPurchaseItem converts a model PurchaseItem to a domain PurchaseItem
func ToDomainPurchaseItem(m models.PurchaseItem) domain.PurchaseItem {
	return domain.PurchaseItem{
		ItemID:            m.ItemID,
		PurchaseID:        m.PurchaseID,
		ProductID:         m.ProductID,
		Description:       m.Description,
		QtyOrdered:        m.QtyOrdered,
		QtyReceived:       m.QtyReceived,
		UnitPriceCents:    m.UnitPriceCents,
		LineDiscountCents: m.LineDiscountCents,
		LineChargeCents:   m.LineChargeCents,
		LineSubTotalCents: m.LineSubTotalCents,
		LineVATCents:      m.LineVATCents,
		LineTotalCents:    m.LineTotalCents,
		AuditFields:       ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainPurchaseItemSlice converts a slice of model PurchaseItems to domain PurchaseItems
func ToDomainPurchaseItemSlice(ms []models.PurchaseItem) []domain.PurchaseItem {
	ds := make([]domain.PurchaseItem, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainPurchaseItem(m)
	}
	return ds
}

// ToModelHeaderCharge converts a domain HeaderCharge to a model HeaderCharge
func ToModelHeaderCharge(d domain.HeaderCharge) models.HeaderCharge {
	return models.HeaderCharge{
		ChargeID:    d.ChargeID,
		PurchaseID:  d.PurchaseID,
		Label:       d.Label,
		AmountCents: d.AmountCents,
		Allocation:  models.AllocationMethod(d.Allocation),
		AuditFields: ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainHeaderCharge converts a model HeaderCharge to a domain HeaderCharge
func ToDomainHeaderCharge(m models.HeaderCharge) domain.HeaderCharge {
	return domain.HeaderCharge{
		ChargeID:    m.ChargeID,
		PurchaseID:  m.PurchaseID,
		Label:       m.Label,
		AmountCents: m.AmountCents,
		Allocation:  domain.AllocationMethod(m.Allocation),
		AuditFields: ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainHeaderChargeSlice converts a slice of model HeaderCharges to domain HeaderCharges
func ToDomainHeaderChargeSlice(ms []models.HeaderCharge) []domain.HeaderCharge {
	ds := make([]domain.HeaderCharge, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainHeaderCharge(m)
	}
	return ds
}

// ToModelHeaderDiscount converts a domain HeaderDiscount to a model HeaderDiscount
func ToModelHeaderDiscount(d domain.HeaderDiscount) models.HeaderDiscount {
	return models.HeaderDiscount{
		DiscountID:  d.DiscountID,
		PurchaseID:  d.PurchaseID,
		Label:       d.Label,
		Kind:        models.DiscountKind(d.Kind),
		AmountCents: d.AmountCents,
		Percent:     d.Percent,
		AuditFields: ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainHeaderDiscount converts a model HeaderDiscount to a domain HeaderDiscount
func ToDomainHeaderDiscount(m models.HeaderDiscount) domain.HeaderDiscount {
	return domain.HeaderDiscount{
		DiscountID:  m.DiscountID,
		PurchaseID:  m.PurchaseID,
		Label:       m.Label,
		Kind:        domain.DiscountKind(m.Kind),
		AmountCents: m.AmountCents,
		Percent:     m.Percent,
		AuditFields: ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainHeaderDiscountSlice converts a slice of model HeaderDiscounts to domain HeaderDiscounts
func ToDomainHeaderDiscountSlice(ms []models.HeaderDiscount) []domain.HeaderDiscount {
	ds := make([]domain.HeaderDiscount, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainHeaderDiscount(m)
	}
	return ds
}

// ToModelGoodsReceipt converts a domain GoodsReceipt header to a model GoodsReceipt
func ToModelGoodsReceipt(d domain.GoodsReceipt) models.GoodsReceipt {
	return models.GoodsReceipt{
		ReceiptID:  d.ReceiptID,
		PurchaseID: d.PurchaseID,
		Date:       d.Date,
		Warehouse:  d.Warehouse,
		CreatedAt:  d.CreatedAt,
		CreatedBy:  d.CreatedBy,
	}
}

// ToDomainGoodsReceipt converts a model GoodsReceipt to a domain GoodsReceipt header
func ToDomainGoodsReceipt(m models.GoodsReceipt) domain.GoodsReceipt {
	return domain.GoodsReceipt{
		ReceiptID:  m.ReceiptID,
		PurchaseID: m.PurchaseID,
		Date:       m.Date,
		Warehouse:  m.Warehouse,
		CreatedAt:  m.CreatedAt,
		CreatedBy:  m.CreatedBy,
	}
}

// ToModelGoodsReceiptLine converts a domain GoodsReceiptLine to a model GoodsReceiptLine
func ToModelGoodsReceiptLine(d domain.GoodsReceiptLine) models.GoodsReceiptLine {
	return models.GoodsReceiptLine{
		LineID:    d.LineID,
		ReceiptID: d.ReceiptID,
		ItemID:    d.ItemID,
		Qty:       d.Qty,
		LotCode:   d.LotCode,
	}
}

// ToDomainGoodsReceiptLine converts a model GoodsReceiptLine to a domain GoodsReceiptLine
func ToDomainGoodsReceiptLine(m models.GoodsReceiptLine) domain.GoodsReceiptLine {
	return domain.GoodsReceiptLine{
		LineID:    m.LineID,
		ReceiptID: m.ReceiptID,
		ItemID:    m.ItemID,
		Qty:       m.Qty,
		LotCode:   m.LotCode,
	}
}
