package services

import (
	"context"

	"github.com/snngymn-development/modatasar-m/internal/core/domain"
	"github.com/snngymn-development/modatasar-m/internal/dto"
)

// PurchaseSvcFacade exposes purchase order management. Every mutation of
// items, header charges or header discounts triggers a full recalculation of
// line and header totals before it returns.
type PurchaseSvcFacade interface {
	CreatePurchase(ctx context.Context, req dto.CreatePurchaseRequest, creatorUserID string) (*domain.Purchase, error)
	GetPurchase(ctx context.Context, purchaseID string) (*domain.Purchase, error)
	ListPurchases(ctx context.Context, params dto.ListPurchasesParams) (*dto.ListPurchasesResponse, error)
	UpdatePurchase(ctx context.Context, purchaseID string, req dto.UpdatePurchaseRequest, userID string) (*domain.Purchase, error)

	// SubmitPurchase moves DRAFT to ORDERED.
	SubmitPurchase(ctx context.Context, purchaseID string, userID string) (*domain.Purchase, error)
	// ClosePurchase moves RECEIVED to CLOSED.
	ClosePurchase(ctx context.Context, purchaseID string, userID string) (*domain.Purchase, error)
	// CancelPurchase moves any non-terminal status to CANCELLED.
	CancelPurchase(ctx context.Context, purchaseID string, userID string) (*domain.Purchase, error)

	AddItem(ctx context.Context, purchaseID string, req dto.AddPurchaseItemRequest, userID string) (*domain.Purchase, error)
	UpdateItem(ctx context.Context, itemID string, req dto.UpdatePurchaseItemRequest, userID string) (*domain.Purchase, error)
	DeleteItem(ctx context.Context, itemID string, userID string) (*domain.Purchase, error)

	AddCharge(ctx context.Context, purchaseID string, req dto.AddHeaderChargeRequest, userID string) (*domain.Purchase, error)
	UpdateCharge(ctx context.Context, chargeID string, req dto.UpdateHeaderChargeRequest, userID string) (*domain.Purchase, error)
	DeleteCharge(ctx context.Context, chargeID string, userID string) (*domain.Purchase, error)

	AddDiscount(ctx context.Context, purchaseID string, req dto.AddHeaderDiscountRequest, userID string) (*domain.Purchase, error)
	UpdateDiscount(ctx context.Context, discountID string, req dto.UpdateHeaderDiscountRequest, userID string) (*domain.Purchase, error)
	DeleteDiscount(ctx context.Context, discountID string, userID string) (*domain.Purchase, error)

	// Recalculate reruns the allocation engine over the purchase and persists
	// all line and header totals. It is pure and idempotent over its inputs.
	Recalculate(ctx context.Context, purchaseID string, userID string) (*domain.Purchase, error)
}

// ReceiptSvcFacade exposes the goods receipt processor.
type ReceiptSvcFacade interface {
	// CreateReceipt records a partial or complete receipt and advances the
	// purchase status. Over-receiving any line fails the whole receipt.
	CreateReceipt(ctx context.Context, purchaseID string, req dto.CreateReceiptRequest, userID string) (*domain.Purchase, error)
}

// PaymentSvcFacade exposes the payment tracker.
type PaymentSvcFacade interface {
	// AddPayment accumulates a payment and re-derives the payment status.
	// Payments are monotonic; no refund path exists in this version.
	AddPayment(ctx context.Context, purchaseID string, req dto.AddPaymentRequest, userID string) (*domain.Purchase, error)
}
