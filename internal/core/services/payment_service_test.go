package services_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/snngymn-development/modatasar-m/internal/apperrors"
	"github.com/snngymn-development/modatasar-m/internal/core/domain"
	portssvc "github.com/snngymn-development/modatasar-m/internal/core/ports/services"
	"github.com/snngymn-development/modatasar-m/internal/core/services"
	"github.com/snngymn-development/modatasar-m/internal/dto"
)

// --- Mock LedgerPoster ---
type MockLedgerPoster struct {
	mock.Mock
}

var _ portssvc.LedgerPoster = (*MockLedgerPoster)(nil)

func (m *MockLedgerPoster) CreateTransaction(ctx context.Context, req dto.CreateTransactionRequest, creatorUserID string) (*domain.Transaction, error) {
	args := m.Called(ctx, req, creatorUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}

type PaymentServiceTestSuite struct {
	suite.Suite
	mockRepo   *MockPurchaseRepository
	mockLedger *MockLedgerPoster
	service    portssvc.PaymentSvcFacade
	userID     string
}

func (suite *PaymentServiceTestSuite) SetupTest() {
	suite.mockRepo = new(MockPurchaseRepository)
	suite.mockLedger = new(MockLedgerPoster)
	suite.service = services.NewPaymentService(suite.mockRepo)
	suite.userID = "user-123"
}

func (suite *PaymentServiceTestSuite) orderedPurchase() *domain.Purchase {
	return &domain.Purchase{
		PurchaseID:    "purchase-1",
		SupplierID:    "supplier-1",
		Code:          "PO-20260115-AB12CD34",
		Status:        domain.PurchaseOrdered,
		PaymentStatus: domain.PaymentUnpaid,
		TotalCents:    50000,
	}
}

func (suite *PaymentServiceTestSuite) TestAddPayment_Success() {
	purchase := suite.orderedPurchase()
	updated := *purchase
	updated.PaidCents = 20000
	updated.PaymentStatus = domain.PaymentPartial
	suite.mockRepo.On("FindPurchaseByID", mock.Anything, "purchase-1").Return(purchase, nil)
	suite.mockRepo.On("AddPayment", mock.Anything, "purchase-1", int64(20000), suite.userID, mock.AnythingOfType("time.Time")).Return(&updated, nil)

	result, err := suite.service.AddPayment(context.Background(), "purchase-1", dto.AddPaymentRequest{AmountCents: 20000}, suite.userID)

	suite.Require().NoError(err)
	suite.Equal(int64(20000), result.PaidCents)
	suite.Equal(domain.PaymentPartial, result.PaymentStatus)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *PaymentServiceTestSuite) TestAddPayment_NonPositiveAmount() {
	result, err := suite.service.AddPayment(context.Background(), "purchase-1", dto.AddPaymentRequest{AmountCents: 0}, suite.userID)

	suite.Require().Error(err)
	suite.Nil(result)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockRepo.AssertNotCalled(suite.T(), "AddPayment", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *PaymentServiceTestSuite) TestAddPayment_CancelledRejected() {
	purchase := suite.orderedPurchase()
	purchase.Status = domain.PurchaseCancelled
	suite.mockRepo.On("FindPurchaseByID", mock.Anything, "purchase-1").Return(purchase, nil)

	result, err := suite.service.AddPayment(context.Background(), "purchase-1", dto.AddPaymentRequest{AmountCents: 1000}, suite.userID)

	suite.Require().Error(err)
	suite.Nil(result)
	suite.ErrorIs(err, apperrors.ErrState)
	suite.mockRepo.AssertNotCalled(suite.T(), "AddPayment", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *PaymentServiceTestSuite) TestAddPayment_MirrorsIntoLedger() {
	suite.service = services.NewPaymentServiceWithLedger(suite.mockRepo, suite.mockLedger, "acc-cash", "acc-ap")

	purchase := suite.orderedPurchase()
	updated := *purchase
	updated.PaidCents = 50000
	updated.PaymentStatus = domain.PaymentPaid
	suite.mockRepo.On("FindPurchaseByID", mock.Anything, "purchase-1").Return(purchase, nil)
	suite.mockRepo.On("AddPayment", mock.Anything, "purchase-1", int64(50000), suite.userID, mock.AnythingOfType("time.Time")).Return(&updated, nil)
	suite.mockLedger.On("CreateTransaction", mock.Anything, mock.MatchedBy(func(req dto.CreateTransactionRequest) bool {
		if req.Kind != domain.Payable || req.AmountCents != 50000 || len(req.Postings) != 2 {
			return false
		}
		debit, credit := req.Postings[0], req.Postings[1]
		return debit.AccountID == "acc-ap" && debit.Direction == domain.Debit &&
			credit.AccountID == "acc-cash" && credit.Direction == domain.Credit &&
			debit.AmountCents == 50000 && credit.AmountCents == 50000
	}), suite.userID).Return(&domain.Transaction{TransactionID: "txn-1"}, nil)

	result, err := suite.service.AddPayment(context.Background(), "purchase-1", dto.AddPaymentRequest{AmountCents: 50000, Method: "EFT"}, suite.userID)

	suite.Require().NoError(err)
	suite.Equal(domain.PaymentPaid, result.PaymentStatus)
	suite.mockLedger.AssertExpectations(suite.T())
}

func (suite *PaymentServiceTestSuite) TestAddPayment_LedgerFailureDoesNotFailPayment() {
	suite.service = services.NewPaymentServiceWithLedger(suite.mockRepo, suite.mockLedger, "acc-cash", "acc-ap")

	purchase := suite.orderedPurchase()
	updated := *purchase
	updated.PaidCents = 10000
	updated.PaymentStatus = domain.PaymentPartial
	suite.mockRepo.On("FindPurchaseByID", mock.Anything, "purchase-1").Return(purchase, nil)
	suite.mockRepo.On("AddPayment", mock.Anything, "purchase-1", int64(10000), suite.userID, mock.AnythingOfType("time.Time")).Return(&updated, nil)
	suite.mockLedger.On("CreateTransaction", mock.Anything, mock.Anything, suite.userID).Return(nil, errors.New("ledger unavailable"))

	result, err := suite.service.AddPayment(context.Background(), "purchase-1", dto.AddPaymentRequest{AmountCents: 10000}, suite.userID)

	suite.Require().NoError(err, "the counter moved; a failed mirror entry is logged, not returned")
	suite.Equal(int64(10000), result.PaidCents)
	suite.mockLedger.AssertExpectations(suite.T())
}

func (suite *PaymentServiceTestSuite) TestAddPayment_NoLedgerWiredSkipsMirror() {
	purchase := suite.orderedPurchase()
	updated := *purchase
	updated.PaidCents = 5000
	suite.mockRepo.On("FindPurchaseByID", mock.Anything, "purchase-1").Return(purchase, nil)
	suite.mockRepo.On("AddPayment", mock.Anything, "purchase-1", int64(5000), suite.userID, mock.AnythingOfType("time.Time")).Return(&updated, nil)

	_, err := suite.service.AddPayment(context.Background(), "purchase-1", dto.AddPaymentRequest{AmountCents: 5000}, suite.userID)

	suite.Require().NoError(err)
	suite.mockLedger.AssertNotCalled(suite.T(), "CreateTransaction", mock.Anything, mock.Anything, mock.Anything)
}

func TestPaymentServiceTestSuite(t *testing.T) {
	suite.Run(t, new(PaymentServiceTestSuite))
}
