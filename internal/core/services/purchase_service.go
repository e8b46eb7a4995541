package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/snngymn-development/modatasar-m/internal/apperrors"
	"github.com/snngymn-development/modatasar-m/internal/core/domain"
	portsrepo "github.com/snngymn-development/modatasar-m/internal/core/ports/repositories"
	portssvc "github.com/snngymn-development/modatasar-m/internal/core/ports/services"
	"github.com/snngymn-development/modatasar-m/internal/dto"
	"github.com/snngymn-development/modatasar-m/internal/middleware"
	"github.com/snngymn-development/modatasar-m/internal/utils/purchasing"
)

// purchaseService manages purchase orders. Every mutation of items, charges or
// discounts ends with a full recalculation so the stored totals are never
// stale relative to their inputs.
type purchaseService struct {
	purchaseRepo portsrepo.PurchaseRepositoryFacade
}

// NewPurchaseService creates a new purchase service.
func NewPurchaseService(purchaseRepo portsrepo.PurchaseRepositoryFacade) portssvc.PurchaseSvcFacade {
	return &purchaseService{purchaseRepo: purchaseRepo}
}

var _ portssvc.PurchaseSvcFacade = (*purchaseService)(nil)

// CreatePurchase opens a new purchase order in DRAFT with zeroed totals.
func (s *purchaseService) CreatePurchase(ctx context.Context, req dto.CreatePurchaseRequest, creatorUserID string) (*domain.Purchase, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if req.VATRate.IsNegative() || req.VATRate.GreaterThan(decimal.NewFromInt(1)) {
		return nil, fmt.Errorf("%w: vat rate must be between 0 and 1", apperrors.ErrValidation)
	}

	now := time.Now().UTC()
	purchase := domain.Purchase{
		PurchaseID:    uuid.NewString(),
		SupplierID:    req.SupplierID,
		Code:          newPurchaseCode(now),
		Type:          strings.ToUpper(strings.TrimSpace(req.Type)),
		Note:          req.Note,
		Status:        domain.PurchaseDraft,
		PaymentStatus: domain.PaymentUnpaid,
		VATRate:       req.VATRate,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := s.purchaseRepo.SavePurchase(ctx, purchase); err != nil {
		logger.Error("Failed to save purchase", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to save purchase: %w", err)
	}

	logger.Info("Purchase created", slog.String("purchase_id", purchase.PurchaseID), slog.String("code", purchase.Code))
	return &purchase, nil
}

// newPurchaseCode returns a short human-facing order code. Uniqueness comes
// from the UUID suffix, not the date part.
func newPurchaseCode(now time.Time) string {
	return fmt.Sprintf("PO-%s-%s", now.Format("20060102"), strings.ToUpper(uuid.NewString()[:8]))
}

// GetPurchase retrieves the full aggregate.
func (s *purchaseService) GetPurchase(ctx context.Context, purchaseID string) (*domain.Purchase, error) {
	purchase, err := s.purchaseRepo.FindPurchaseByID(ctx, purchaseID)
	if err != nil {
		return nil, fmt.Errorf("failed to find purchase %s: %w", purchaseID, err)
	}
	return purchase, nil
}

// ListPurchases retrieves a filtered, paginated purchase page.
func (s *purchaseService) ListPurchases(ctx context.Context, params dto.ListPurchasesParams) (*dto.ListPurchasesResponse, error) {
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

	filter := portsrepo.PurchaseFilter{
		Query:         params.Query,
		SupplierID:    params.SupplierID,
		Type:          params.Type,
		Status:        params.Status,
		PaymentStatus: params.PaymentStatus,
		From:          params.From,
		To:            params.To,
		Limit:         limit,
		Offset:        (page - 1) * limit,
	}

	purchases, total, err := s.purchaseRepo.ListPurchases(ctx, filter)
	if err != nil {
		middleware.GetLoggerFromCtx(ctx).Error("Failed to list purchases", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to list purchases: %w", err)
	}

	return &dto.ListPurchasesResponse{
		Purchases: dto.ToPurchaseResponses(purchases),
		Total:     total,
		Page:      page,
		Limit:     limit,
	}, nil
}

// UpdatePurchase updates mutable header fields. A VAT rate change invalidates
// every line's VAT, so it triggers a recalculation.
func (s *purchaseService) UpdatePurchase(ctx context.Context, purchaseID string, req dto.UpdatePurchaseRequest, userID string) (*domain.Purchase, error) {
	purchase, err := s.purchaseRepo.FindPurchaseByID(ctx, purchaseID)
	if err != nil {
		return nil, fmt.Errorf("failed to find purchase %s: %w", purchaseID, err)
	}
	if purchase.Status.IsTerminal() {
		return nil, fmt.Errorf("%w: purchase %s is %s", apperrors.ErrState, purchaseID, purchase.Status)
	}

	vatChanged := false
	if req.SupplierID != nil {
		purchase.SupplierID = *req.SupplierID
	}
	if req.Type != nil {
		purchase.Type = strings.ToUpper(strings.TrimSpace(*req.Type))
	}
	if req.Note != nil {
		purchase.Note = *req.Note
	}
	if req.VATRate != nil {
		if req.VATRate.IsNegative() || req.VATRate.GreaterThan(decimal.NewFromInt(1)) {
			return nil, fmt.Errorf("%w: vat rate must be between 0 and 1", apperrors.ErrValidation)
		}
		vatChanged = !purchase.VATRate.Equal(*req.VATRate)
		purchase.VATRate = *req.VATRate
	}

	now := time.Now().UTC()
	purchase.LastUpdatedAt = now
	purchase.LastUpdatedBy = userID
	if err := s.purchaseRepo.UpdatePurchase(ctx, *purchase); err != nil {
		return nil, fmt.Errorf("failed to update purchase %s: %w", purchaseID, err)
	}

	if vatChanged {
		return s.Recalculate(ctx, purchaseID, userID)
	}
	return purchase, nil
}

// SubmitPurchase moves a DRAFT purchase to ORDERED.
func (s *purchaseService) SubmitPurchase(ctx context.Context, purchaseID string, userID string) (*domain.Purchase, error) {
	return s.transition(ctx, purchaseID, domain.PurchaseOrdered, userID)
}

// ClosePurchase moves a fully RECEIVED purchase to CLOSED.
func (s *purchaseService) ClosePurchase(ctx context.Context, purchaseID string, userID string) (*domain.Purchase, error) {
	return s.transition(ctx, purchaseID, domain.PurchaseClosed, userID)
}

// CancelPurchase moves any non-terminal purchase to CANCELLED.
func (s *purchaseService) CancelPurchase(ctx context.Context, purchaseID string, userID string) (*domain.Purchase, error) {
	return s.transition(ctx, purchaseID, domain.PurchaseCancelled, userID)
}

func (s *purchaseService) transition(ctx context.Context, purchaseID string, next domain.PurchaseStatus, userID string) (*domain.Purchase, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	purchase, err := s.purchaseRepo.FindPurchaseByID(ctx, purchaseID)
	if err != nil {
		return nil, fmt.Errorf("failed to find purchase %s: %w", purchaseID, err)
	}
	if !purchase.Status.CanTransitionTo(next) {
		return nil, fmt.Errorf("%w: cannot move purchase %s from %s to %s", apperrors.ErrState, purchaseID, purchase.Status, next)
	}

	now := time.Now().UTC()
	if err := s.purchaseRepo.UpdatePurchaseStatus(ctx, purchaseID, next, userID, now); err != nil {
		logger.Error("Failed to update purchase status", slog.String("error", err.Error()), slog.String("purchase_id", purchaseID))
		return nil, fmt.Errorf("failed to update purchase %s status: %w", purchaseID, err)
	}

	purchase.Status = next
	purchase.LastUpdatedAt = now
	purchase.LastUpdatedBy = userID
	logger.Info("Purchase status changed",
		slog.String("purchase_id", purchaseID),
		slog.String("status", string(next)))
	return purchase, nil
}

// AddItem appends a line item and recalculates.
func (s *purchaseService) AddItem(ctx context.Context, purchaseID string, req dto.AddPurchaseItemRequest, userID string) (*domain.Purchase, error) {
	purchase, err := s.mutablePurchase(ctx, purchaseID)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	item := domain.PurchaseItem{
		ItemID:            uuid.NewString(),
		PurchaseID:        purchase.PurchaseID,
		ProductID:         req.ProductID,
		Description:       req.Description,
		QtyOrdered:        req.QtyOrdered,
		UnitPriceCents:    req.UnitPriceCents,
		LineDiscountCents: req.LineDiscountCents,
		LineChargeCents:   req.LineChargeCents,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}
	if err := s.purchaseRepo.SaveItem(ctx, item); err != nil {
		return nil, fmt.Errorf("failed to save item: %w", err)
	}
	return s.Recalculate(ctx, purchaseID, userID)
}

// UpdateItem edits a line item's ordered fields and recalculates. Shrinking
// the ordered quantity below what was already received is rejected.
func (s *purchaseService) UpdateItem(ctx context.Context, itemID string, req dto.UpdatePurchaseItemRequest, userID string) (*domain.Purchase, error) {
	item, err := s.purchaseRepo.FindItemByID(ctx, itemID)
	if err != nil {
		return nil, fmt.Errorf("failed to find item %s: %w", itemID, err)
	}
	if _, err := s.mutablePurchase(ctx, item.PurchaseID); err != nil {
		return nil, err
	}

	if req.ProductID != nil {
		item.ProductID = *req.ProductID
	}
	if req.Description != nil {
		item.Description = *req.Description
	}
	if req.QtyOrdered != nil {
		if *req.QtyOrdered < item.QtyReceived {
			return nil, fmt.Errorf("%w: ordered quantity %d cannot drop below received quantity %d",
				apperrors.ErrValidation, *req.QtyOrdered, item.QtyReceived)
		}
		item.QtyOrdered = *req.QtyOrdered
	}
	if req.UnitPriceCents != nil {
		item.UnitPriceCents = *req.UnitPriceCents
	}
	if req.LineDiscountCents != nil {
		item.LineDiscountCents = *req.LineDiscountCents
	}
	if req.LineChargeCents != nil {
		item.LineChargeCents = *req.LineChargeCents
	}

	now := time.Now().UTC()
	item.LastUpdatedAt = now
	item.LastUpdatedBy = userID
	if err := s.purchaseRepo.UpdateItem(ctx, *item); err != nil {
		return nil, fmt.Errorf("failed to update item %s: %w", itemID, err)
	}
	return s.Recalculate(ctx, item.PurchaseID, userID)
}

// DeleteItem removes a line item and recalculates. Items with received goods
// are part of receipt history and cannot be removed.
func (s *purchaseService) DeleteItem(ctx context.Context, itemID string, userID string) (*domain.Purchase, error) {
	item, err := s.purchaseRepo.FindItemByID(ctx, itemID)
	if err != nil {
		return nil, fmt.Errorf("failed to find item %s: %w", itemID, err)
	}
	if _, err := s.mutablePurchase(ctx, item.PurchaseID); err != nil {
		return nil, err
	}
	if item.QtyReceived > 0 {
		return nil, fmt.Errorf("%w: item %s has received goods", apperrors.ErrState, itemID)
	}

	if err := s.purchaseRepo.DeleteItem(ctx, itemID); err != nil {
		return nil, fmt.Errorf("failed to delete item %s: %w", itemID, err)
	}
	return s.Recalculate(ctx, item.PurchaseID, userID)
}

// AddCharge appends a header charge and recalculates.
func (s *purchaseService) AddCharge(ctx context.Context, purchaseID string, req dto.AddHeaderChargeRequest, userID string) (*domain.Purchase, error) {
	purchase, err := s.mutablePurchase(ctx, purchaseID)
	if err != nil {
		return nil, err
	}
	if !req.Allocation.IsValid() {
		return nil, fmt.Errorf("%w: unknown allocation method %q", apperrors.ErrValidation, req.Allocation)
	}

	now := time.Now().UTC()
	charge := domain.HeaderCharge{
		ChargeID:    uuid.NewString(),
		PurchaseID:  purchase.PurchaseID,
		Label:       req.Label,
		AmountCents: req.AmountCents,
		Allocation:  req.Allocation,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}
	if err := s.purchaseRepo.SaveCharge(ctx, charge); err != nil {
		return nil, fmt.Errorf("failed to save charge: %w", err)
	}
	return s.Recalculate(ctx, purchaseID, userID)
}

// UpdateCharge edits a header charge and recalculates.
func (s *purchaseService) UpdateCharge(ctx context.Context, chargeID string, req dto.UpdateHeaderChargeRequest, userID string) (*domain.Purchase, error) {
	charge, err := s.purchaseRepo.FindChargeByID(ctx, chargeID)
	if err != nil {
		return nil, fmt.Errorf("failed to find charge %s: %w", chargeID, err)
	}
	if _, err := s.mutablePurchase(ctx, charge.PurchaseID); err != nil {
		return nil, err
	}

	if req.Label != nil {
		charge.Label = *req.Label
	}
	if req.AmountCents != nil {
		charge.AmountCents = *req.AmountCents
	}
	if req.Allocation != nil {
		if !req.Allocation.IsValid() {
			return nil, fmt.Errorf("%w: unknown allocation method %q", apperrors.ErrValidation, *req.Allocation)
		}
		charge.Allocation = *req.Allocation
	}

	now := time.Now().UTC()
	charge.LastUpdatedAt = now
	charge.LastUpdatedBy = userID
	if err := s.purchaseRepo.UpdateCharge(ctx, *charge); err != nil {
		return nil, fmt.Errorf("failed to update charge %s: %w", chargeID, err)
	}
	return s.Recalculate(ctx, charge.PurchaseID, userID)
}

// DeleteCharge removes a header charge and recalculates.
func (s *purchaseService) DeleteCharge(ctx context.Context, chargeID string, userID string) (*domain.Purchase, error) {
	charge, err := s.purchaseRepo.FindChargeByID(ctx, chargeID)
	if err != nil {
		return nil, fmt.Errorf("failed to find charge %s: %w", chargeID, err)
	}
	if _, err := s.mutablePurchase(ctx, charge.PurchaseID); err != nil {
		return nil, err
	}

	if err := s.purchaseRepo.DeleteCharge(ctx, chargeID); err != nil {
		return nil, fmt.Errorf("failed to delete charge %s: %w", chargeID, err)
	}
	return s.Recalculate(ctx, charge.PurchaseID, userID)
}

// AddDiscount appends a header discount and recalculates.
func (s *purchaseService) AddDiscount(ctx context.Context, purchaseID string, req dto.AddHeaderDiscountRequest, userID string) (*domain.Purchase, error) {
	purchase, err := s.mutablePurchase(ctx, purchaseID)
	if err != nil {
		return nil, err
	}
	if err := validateDiscountFields(req.Kind, req.AmountCents, req.Percent); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	discount := domain.HeaderDiscount{
		DiscountID:  uuid.NewString(),
		PurchaseID:  purchase.PurchaseID,
		Label:       req.Label,
		Kind:        req.Kind,
		AmountCents: req.AmountCents,
		Percent:     req.Percent,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}
	if err := s.purchaseRepo.SaveDiscount(ctx, discount); err != nil {
		return nil, fmt.Errorf("failed to save discount: %w", err)
	}
	return s.Recalculate(ctx, purchaseID, userID)
}

// UpdateDiscount edits a header discount and recalculates.
func (s *purchaseService) UpdateDiscount(ctx context.Context, discountID string, req dto.UpdateHeaderDiscountRequest, userID string) (*domain.Purchase, error) {
	discount, err := s.purchaseRepo.FindDiscountByID(ctx, discountID)
	if err != nil {
		return nil, fmt.Errorf("failed to find discount %s: %w", discountID, err)
	}
	if _, err := s.mutablePurchase(ctx, discount.PurchaseID); err != nil {
		return nil, err
	}

	if req.Label != nil {
		discount.Label = *req.Label
	}
	if req.Kind != nil {
		discount.Kind = *req.Kind
	}
	if req.AmountCents != nil {
		discount.AmountCents = *req.AmountCents
	}
	if req.Percent != nil {
		discount.Percent = *req.Percent
	}
	if err := validateDiscountFields(discount.Kind, discount.AmountCents, discount.Percent); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	discount.LastUpdatedAt = now
	discount.LastUpdatedBy = userID
	if err := s.purchaseRepo.UpdateDiscount(ctx, *discount); err != nil {
		return nil, fmt.Errorf("failed to update discount %s: %w", discountID, err)
	}
	return s.Recalculate(ctx, discount.PurchaseID, userID)
}

// DeleteDiscount removes a header discount and recalculates.
func (s *purchaseService) DeleteDiscount(ctx context.Context, discountID string, userID string) (*domain.Purchase, error) {
	discount, err := s.purchaseRepo.FindDiscountByID(ctx, discountID)
	if err != nil {
		return nil, fmt.Errorf("failed to find discount %s: %w", discountID, err)
	}
	if _, err := s.mutablePurchase(ctx, discount.PurchaseID); err != nil {
		return nil, err
	}

	if err := s.purchaseRepo.DeleteDiscount(ctx, discountID); err != nil {
		return nil, fmt.Errorf("failed to delete discount %s: %w", discountID, err)
	}
	return s.Recalculate(ctx, discount.PurchaseID, userID)
}

// Recalculate reruns the allocation engine over the purchase and persists the
// header totals together with every line's computed fields.
func (s *purchaseService) Recalculate(ctx context.Context, purchaseID string, userID string) (*domain.Purchase, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	purchase, err := s.purchaseRepo.FindPurchaseByID(ctx, purchaseID)
	if err != nil {
		return nil, fmt.Errorf("failed to find purchase %s: %w", purchaseID, err)
	}

	result, err := purchasing.CalculateTotals(engineInput(purchase))
	if err != nil {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, err.Error())
	}

	lineTotals := make([]portsrepo.LineTotals, len(result.Lines))
	for i, line := range result.Lines {
		lineTotals[i] = portsrepo.LineTotals{
			ItemID:            line.ItemID,
			LineSubTotalCents: line.LineSubTotalCents,
			LineVATCents:      line.LineVATCents,
			LineTotalCents:    line.LineTotalCents,
		}
	}
	headerTotals := portsrepo.HeaderTotals{
		SubTotalCents:      result.SubTotalCents,
		DiscountTotalCents: result.DiscountTotalCents,
		ChargeTotalCents:   result.ChargeTotalCents,
		VATTotalCents:      result.VATTotalCents,
		RoundingAdjCents:   result.RoundingAdjCents,
		TotalCents:         result.TotalCents,
	}

	now := time.Now().UTC()
	if err := s.purchaseRepo.SaveTotals(ctx, purchaseID, headerTotals, lineTotals, userID, now); err != nil {
		logger.Error("Failed to save totals", slog.String("error", err.Error()), slog.String("purchase_id", purchaseID))
		return nil, fmt.Errorf("failed to save totals for purchase %s: %w", purchaseID, err)
	}

	applyTotals(purchase, result, now, userID)
	logger.Info("Purchase recalculated",
		slog.String("purchase_id", purchaseID),
		slog.Int64("total_cents", result.TotalCents))
	return purchase, nil
}

// mutablePurchase loads a purchase and rejects mutation of terminal ones.
func (s *purchaseService) mutablePurchase(ctx context.Context, purchaseID string) (*domain.Purchase, error) {
	purchase, err := s.purchaseRepo.FindPurchaseByID(ctx, purchaseID)
	if err != nil {
		return nil, fmt.Errorf("failed to find purchase %s: %w", purchaseID, err)
	}
	if purchase.Status.IsTerminal() {
		return nil, fmt.Errorf("%w: purchase %s is %s", apperrors.ErrState, purchaseID, purchase.Status)
	}
	return purchase, nil
}

// engineInput snapshots a purchase aggregate for the allocation engine.
func engineInput(p *domain.Purchase) purchasing.Input {
	in := purchasing.Input{VATRate: p.VATRate}
	for _, it := range p.Items {
		in.Lines = append(in.Lines, purchasing.LineInput{
			ItemID:            it.ItemID,
			QtyOrdered:        it.QtyOrdered,
			UnitPriceCents:    it.UnitPriceCents,
			LineDiscountCents: it.LineDiscountCents,
			LineChargeCents:   it.LineChargeCents,
		})
	}
	for _, c := range p.HeaderCharges {
		in.Charges = append(in.Charges, purchasing.ChargeInput{
			ChargeID:    c.ChargeID,
			AmountCents: c.AmountCents,
			Allocation:  c.Allocation,
		})
	}
	for _, d := range p.HeaderDiscounts {
		in.Discounts = append(in.Discounts, purchasing.DiscountInput{
			DiscountID:  d.DiscountID,
			Kind:        d.Kind,
			AmountCents: d.AmountCents,
			Percent:     d.Percent,
		})
	}
	return in
}

// applyTotals writes an engine result back onto the in-memory aggregate so the
// caller gets fresh numbers without a second fetch.
func applyTotals(p *domain.Purchase, result purchasing.Result, now time.Time, userID string) {
	byItem := make(map[string]purchasing.LineResult, len(result.Lines))
	for _, line := range result.Lines {
		byItem[line.ItemID] = line
	}
	for i := range p.Items {
		if line, ok := byItem[p.Items[i].ItemID]; ok {
			p.Items[i].LineSubTotalCents = line.LineSubTotalCents
			p.Items[i].LineVATCents = line.LineVATCents
			p.Items[i].LineTotalCents = line.LineTotalCents
		}
	}
	p.SubTotalCents = result.SubTotalCents
	p.DiscountTotalCents = result.DiscountTotalCents
	p.ChargeTotalCents = result.ChargeTotalCents
	p.VATTotalCents = result.VATTotalCents
	p.RoundingAdjCents = result.RoundingAdjCents
	p.TotalCents = result.TotalCents
	p.PaymentStatus = domain.DerivePaymentStatus(p.PaidCents, p.TotalCents)
	p.LastUpdatedAt = now
	p.LastUpdatedBy = userID
}

// validateDiscountFields checks the kind-specific discount fields.
func validateDiscountFields(kind domain.DiscountKind, amountCents int64, percent decimal.Decimal) error {
	if !kind.IsValid() {
		return fmt.Errorf("%w: unknown discount kind %q", apperrors.ErrValidation, kind)
	}
	if amountCents < 0 {
		return fmt.Errorf("%w: discount amount cannot be negative", apperrors.ErrValidation)
	}
	if kind == domain.DiscountPercentage && (percent.IsNegative() || percent.GreaterThan(decimal.NewFromInt(100))) {
		return fmt.Errorf("%w: discount percent must be between 0 and 100", apperrors.ErrValidation)
	}
	return nil
}
