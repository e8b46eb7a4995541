package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/shopspring/decimal"

	"github.com/snngymn-development/modatasar-m/internal/apperrors"
	"github.com/snngymn-development/modatasar-m/internal/core/domain"
	portsrepo "github.com/snngymn-development/modatasar-m/internal/core/ports/repositories"
	portssvc "github.com/snngymn-development/modatasar-m/internal/core/ports/services"
	"github.com/snngymn-development/modatasar-m/internal/dto"
	"github.com/snngymn-development/modatasar-m/internal/middleware"
)

// paymentService tracks supplier payments against purchase totals. The paid
// counter only ever grows; correcting a mistaken payment is a ledger concern,
// not a counter decrement.
type paymentService struct {
	purchaseRepo portsrepo.PurchaseRepositoryFacade

	// ledger is optional. When wired, every payment is mirrored into the
	// ledger as a PAYABLE transaction; when nil, only the counter moves.
	ledger        portssvc.LedgerPoster
	cashAccountID string
	apAccountID   string
}

// NewPaymentService creates a payment tracker without ledger mirroring.
func NewPaymentService(purchaseRepo portsrepo.PurchaseRepositoryFacade) portssvc.PaymentSvcFacade {
	return &paymentService{purchaseRepo: purchaseRepo}
}

// NewPaymentServiceWithLedger creates a payment tracker that also posts each
// payment as a balanced ledger transaction: credit the cash account, debit the
// accounts payable account.
func NewPaymentServiceWithLedger(purchaseRepo portsrepo.PurchaseRepositoryFacade, ledger portssvc.LedgerPoster, cashAccountID, apAccountID string) portssvc.PaymentSvcFacade {
	return &paymentService{
		purchaseRepo:  purchaseRepo,
		ledger:        ledger,
		cashAccountID: cashAccountID,
		apAccountID:   apAccountID,
	}
}

var _ portssvc.PaymentSvcFacade = (*paymentService)(nil)

// AddPayment accumulates a payment and re-derives the payment status. The
// increment runs under a row lock in the repository so concurrent payments
// cannot lose updates.
func (s *paymentService) AddPayment(ctx context.Context, purchaseID string, req dto.AddPaymentRequest, userID string) (*domain.Purchase, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if req.AmountCents <= 0 {
		return nil, fmt.Errorf("%w: payment amount must be positive", apperrors.ErrValidation)
	}

	purchase, err := s.purchaseRepo.FindPurchaseByID(ctx, purchaseID)
	if err != nil {
		return nil, fmt.Errorf("failed to find purchase %s: %w", purchaseID, err)
	}
	if purchase.Status == domain.PurchaseCancelled {
		return nil, fmt.Errorf("%w: purchase %s is cancelled", apperrors.ErrState, purchaseID)
	}

	now := time.Now().UTC()
	updated, err := s.purchaseRepo.AddPayment(ctx, purchaseID, req.AmountCents, userID, now)
	if err != nil {
		logger.Error("Failed to add payment", slog.String("error", err.Error()), slog.String("purchase_id", purchaseID))
		return nil, fmt.Errorf("failed to add payment to purchase %s: %w", purchaseID, err)
	}

	if s.ledger != nil {
		if err := s.postToLedger(ctx, updated, req, userID); err != nil {
			// The counter already moved; the mirror entry is best effort and
			// its failure is surfaced in the log, not to the caller.
			logger.Error("Failed to mirror payment into ledger",
				slog.String("error", err.Error()),
				slog.String("purchase_id", purchaseID))
		}
	}

	logger.Info("Payment recorded",
		slog.String("purchase_id", purchaseID),
		slog.Int64("amount_cents", req.AmountCents),
		slog.Int64("paid_cents", updated.PaidCents),
		slog.String("payment_status", string(updated.PaymentStatus)))
	return updated, nil
}

func (s *paymentService) postToLedger(ctx context.Context, purchase *domain.Purchase, req dto.AddPaymentRequest, userID string) error {
	note := fmt.Sprintf("Supplier payment for %s", purchase.Code)
	if req.Method != "" {
		note = fmt.Sprintf("%s (%s)", note, req.Method)
	}
	one := decimal.NewFromInt(1)
	_, err := s.ledger.CreateTransaction(ctx, dto.CreateTransactionRequest{
		Kind:         domain.Payable,
		AmountCents:  req.AmountCents,
		CurrencyCode: domain.BaseCurrency,
		RateToTRY:    one,
		Note:         note,
		SupplierID:   purchase.SupplierID,
		Postings: []dto.CreatePostingRequest{
			{
				AccountID:    s.apAccountID,
				Direction:    domain.Debit,
				AmountCents:  req.AmountCents,
				CurrencyCode: domain.BaseCurrency,
				RateToTRY:    one,
			},
			{
				AccountID:    s.cashAccountID,
				Direction:    domain.Credit,
				AmountCents:  req.AmountCents,
				CurrencyCode: domain.BaseCurrency,
				RateToTRY:    one,
			},
		},
	}, userID)
	return err
}
