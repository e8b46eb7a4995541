package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/snngymn-development/modatasar-m/internal/apperrors"
	"github.com/snngymn-development/modatasar-m/internal/core/domain"
	portsrepo "github.com/snngymn-development/modatasar-m/internal/core/ports/repositories"
	portssvc "github.com/snngymn-development/modatasar-m/internal/core/ports/services"
	"github.com/snngymn-development/modatasar-m/internal/dto"
	"github.com/snngymn-development/modatasar-m/internal/middleware"
)

// receiptService records goods receipts. The authoritative over-receive check
// runs inside the repository under a row lock; the service-level check only
// gives fast feedback before the transaction starts.
type receiptService struct {
	purchaseRepo     portsrepo.PurchaseRepositoryFacade
	defaultWarehouse string
}

// NewReceiptService creates a new goods receipt service. defaultWarehouse is
// used when a receipt names no warehouse.
func NewReceiptService(purchaseRepo portsrepo.PurchaseRepositoryFacade, defaultWarehouse string) portssvc.ReceiptSvcFacade {
	return &receiptService{
		purchaseRepo:     purchaseRepo,
		defaultWarehouse: defaultWarehouse,
	}
}

var _ portssvc.ReceiptSvcFacade = (*receiptService)(nil)

// CreateReceipt records a partial or complete goods receipt. All lines apply
// or none do; over-receiving any single line fails the whole receipt.
func (s *receiptService) CreateReceipt(ctx context.Context, purchaseID string, req dto.CreateReceiptRequest, userID string) (*domain.Purchase, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	purchase, err := s.purchaseRepo.FindPurchaseByID(ctx, purchaseID)
	if err != nil {
		return nil, fmt.Errorf("failed to find purchase %s: %w", purchaseID, err)
	}
	if !purchase.Status.CanReceiveGoods() {
		return nil, fmt.Errorf("%w: purchase %s is %s and cannot receive goods", apperrors.ErrState, purchaseID, purchase.Status)
	}

	items := make(map[string]*domain.PurchaseItem, len(purchase.Items))
	for i := range purchase.Items {
		items[purchase.Items[i].ItemID] = &purchase.Items[i]
	}

	seen := make(map[string]bool, len(req.Lines))
	for _, line := range req.Lines {
		if seen[line.ItemID] {
			return nil, fmt.Errorf("%w: item %s appears more than once", apperrors.ErrValidation, line.ItemID)
		}
		seen[line.ItemID] = true

		item, ok := items[line.ItemID]
		if !ok {
			return nil, fmt.Errorf("%w: item %s does not belong to purchase %s", apperrors.ErrNotFound, line.ItemID, purchaseID)
		}
		if line.Qty <= 0 {
			return nil, fmt.Errorf("%w: receipt quantity must be positive for item %s", apperrors.ErrValidation, line.ItemID)
		}
		if item.QtyReceived+line.Qty > item.QtyOrdered {
			return nil, fmt.Errorf("%w: item %s has %d of %d received, cannot receive %d more",
				apperrors.ErrOverReceive, line.ItemID, item.QtyReceived, item.QtyOrdered, line.Qty)
		}
	}

	now := time.Now().UTC()
	date := now
	if req.Date != nil {
		date = req.Date.UTC()
	}
	warehouse := req.Warehouse
	if warehouse == "" {
		warehouse = s.defaultWarehouse
	}

	receipt := domain.GoodsReceipt{
		ReceiptID:  uuid.NewString(),
		PurchaseID: purchaseID,
		Date:       date,
		Warehouse:  warehouse,
		CreatedAt:  now,
		CreatedBy:  userID,
	}
	for _, line := range req.Lines {
		receipt.Lines = append(receipt.Lines, domain.GoodsReceiptLine{
			LineID:    uuid.NewString(),
			ReceiptID: receipt.ReceiptID,
			ItemID:    line.ItemID,
			Qty:       line.Qty,
			LotCode:   line.LotCode,
		})
	}

	updated, err := s.purchaseRepo.SaveReceipt(ctx, receipt, userID)
	if err != nil {
		logger.Error("Failed to save receipt", slog.String("error", err.Error()), slog.String("purchase_id", purchaseID))
		return nil, fmt.Errorf("failed to save receipt for purchase %s: %w", purchaseID, err)
	}

	logger.Info("Goods receipt recorded",
		slog.String("purchase_id", purchaseID),
		slog.String("receipt_id", receipt.ReceiptID),
		slog.Int("lines", len(receipt.Lines)),
		slog.String("status", string(updated.Status)))
	return updated, nil
}
