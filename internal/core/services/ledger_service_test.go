package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/snngymn-development/modatasar-m/internal/apperrors"
	"github.com/snngymn-development/modatasar-m/internal/core/domain"
	portsrepo "github.com/snngymn-development/modatasar-m/internal/core/ports/repositories"
	portssvc "github.com/snngymn-development/modatasar-m/internal/core/ports/services"
	"github.com/snngymn-development/modatasar-m/internal/core/services"
	"github.com/snngymn-development/modatasar-m/internal/dto"
)

// --- Mock TransactionRepository ---
type MockTransactionRepository struct {
	mock.Mock
}

// Ensure MockTransactionRepository implements portsrepo.TransactionRepositoryFacade
var _ portsrepo.TransactionRepositoryFacade = (*MockTransactionRepository)(nil)

func (m *MockTransactionRepository) FindTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error) {
	args := m.Called(ctx, transactionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}

func (m *MockTransactionRepository) ListTransactions(ctx context.Context, filter portsrepo.TransactionFilter) ([]domain.Transaction, int64, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]domain.Transaction), args.Get(1).(int64), args.Error(2)
}

func (m *MockTransactionRepository) FindPostingsByTransactionID(ctx context.Context, transactionID string) ([]domain.Posting, error) {
	args := m.Called(ctx, transactionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Posting), args.Error(1)
}

func (m *MockTransactionRepository) FindPostingsByAccountID(ctx context.Context, accountID string) ([]domain.Posting, error) {
	args := m.Called(ctx, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Posting), args.Error(1)
}

func (m *MockTransactionRepository) SaveTransaction(ctx context.Context, txn domain.Transaction, postings []domain.Posting) error {
	args := m.Called(ctx, txn, postings)
	return args.Error(0)
}

func (m *MockTransactionRepository) UpdateTransaction(ctx context.Context, txn domain.Transaction) error {
	args := m.Called(ctx, txn)
	return args.Error(0)
}

func (m *MockTransactionRepository) DeleteTransaction(ctx context.Context, transactionID string) error {
	args := m.Called(ctx, transactionID)
	return args.Error(0)
}

func (m *MockTransactionRepository) SaveReversal(ctx context.Context, original domain.Transaction, reversal domain.Transaction, postings []domain.Posting) error {
	args := m.Called(ctx, original, reversal, postings)
	return args.Error(0)
}

// --- Mock AccountRepository ---
type MockAccountRepository struct {
	mock.Mock
}

// Ensure MockAccountRepository implements portsrepo.AccountRepositoryFacade
var _ portsrepo.AccountRepositoryFacade = (*MockAccountRepository)(nil)

func (m *MockAccountRepository) FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error) {
	args := m.Called(ctx, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountRepository) FindAccountsByIDs(ctx context.Context, accountIDs []string) (map[string]domain.Account, error) {
	args := m.Called(ctx, accountIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]domain.Account), args.Error(1)
}

func (m *MockAccountRepository) ListAccounts(ctx context.Context, includeInactive bool) ([]domain.Account, error) {
	args := m.Called(ctx, includeInactive)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Account), args.Error(1)
}

func (m *MockAccountRepository) SaveAccount(ctx context.Context, account domain.Account) error {
	args := m.Called(ctx, account)
	return args.Error(0)
}

func (m *MockAccountRepository) UpdateAccount(ctx context.Context, account domain.Account) error {
	args := m.Called(ctx, account)
	return args.Error(0)
}

func (m *MockAccountRepository) DeactivateAccount(ctx context.Context, accountID string, userID string, now time.Time) error {
	args := m.Called(ctx, accountID, userID, now)
	return args.Error(0)
}

// --- Test Suite Setup ---
type LedgerServiceTestSuite struct {
	suite.Suite
	mockTxnRepo     *MockTransactionRepository
	mockAccountRepo *MockAccountRepository
	service         portssvc.LedgerSvcFacade
	cashAccount     domain.Account
	bankAccount     domain.Account
	userID          string
}

func (suite *LedgerServiceTestSuite) SetupTest() {
	suite.mockTxnRepo = new(MockTransactionRepository)
	suite.mockAccountRepo = new(MockAccountRepository)
	suite.service = services.NewLedgerService(suite.mockTxnRepo, suite.mockAccountRepo)

	suite.userID = uuid.NewString()
	suite.cashAccount = domain.Account{
		AccountID:    uuid.NewString(),
		AccountType:  domain.AccountCash,
		Name:         "Kasa",
		CurrencyCode: domain.TRY,
		IsActive:     true,
	}
	suite.bankAccount = domain.Account{
		AccountID:    uuid.NewString(),
		AccountType:  domain.AccountBank,
		Name:         "Banka",
		CurrencyCode: domain.TRY,
		IsActive:     true,
	}
}

func (suite *LedgerServiceTestSuite) accountsMap() map[string]domain.Account {
	return map[string]domain.Account{
		suite.cashAccount.AccountID: suite.cashAccount,
		suite.bankAccount.AccountID: suite.bankAccount,
	}
}

func (suite *LedgerServiceTestSuite) balancedRequest() dto.CreateTransactionRequest {
	return dto.CreateTransactionRequest{
		Kind:         domain.Receivable,
		AmountCents:  150000,
		CurrencyCode: domain.TRY,
		RateToTRY:    decimal.NewFromInt(1),
		Note:         "Gelinlik satisi pesinat",
		Postings: []dto.CreatePostingRequest{
			{AccountID: suite.cashAccount.AccountID, Direction: domain.Debit, AmountCents: 150000, CurrencyCode: domain.TRY, RateToTRY: decimal.NewFromInt(1)},
			{AccountID: suite.bankAccount.AccountID, Direction: domain.Credit, AmountCents: 150000, CurrencyCode: domain.TRY, RateToTRY: decimal.NewFromInt(1)},
		},
	}
}

// --- Test Cases ---

func (suite *LedgerServiceTestSuite) TestCreateTransaction_Success() {
	ctx := context.Background()
	req := suite.balancedRequest()

	suite.mockAccountRepo.On("FindAccountsByIDs", ctx, mock.AnythingOfType("[]string")).Return(suite.accountsMap(), nil).Once()
	suite.mockTxnRepo.On("SaveTransaction", ctx, mock.AnythingOfType("domain.Transaction"), mock.AnythingOfType("[]domain.Posting")).Return(nil).Once()

	txn, err := suite.service.CreateTransaction(ctx, req, suite.userID)

	suite.Require().NoError(err)
	suite.Require().NotNil(txn)
	suite.NotEmpty(txn.TransactionID)
	suite.Equal(domain.Posted, txn.Status)
	suite.Equal(suite.userID, txn.CreatedBy)
	suite.Len(txn.Postings, 2)
	suite.Equal(txn.TransactionID, txn.Postings[0].TransactionID)

	suite.mockAccountRepo.AssertExpectations(suite.T())
	suite.mockTxnRepo.AssertExpectations(suite.T())
}

func (suite *LedgerServiceTestSuite) TestCreateTransaction_UnbalancedRejected() {
	ctx := context.Background()
	req := suite.balancedRequest()
	req.Postings[1].AmountCents = 140000 // break the balance

	suite.mockAccountRepo.On("FindAccountsByIDs", ctx, mock.AnythingOfType("[]string")).Return(suite.accountsMap(), nil).Once()

	_, err := suite.service.CreateTransaction(ctx, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrInvariantViolation)
	suite.mockTxnRepo.AssertNotCalled(suite.T(), "SaveTransaction", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *LedgerServiceTestSuite) TestCreateTransaction_MixedCurrencyBalancedAtHistoricalRates() {
	ctx := context.Background()
	usdAccount := domain.Account{
		AccountID:    uuid.NewString(),
		AccountType:  domain.AccountBank,
		Name:         "USD Banka",
		CurrencyCode: domain.USD,
		IsActive:     true,
	}
	accounts := suite.accountsMap()
	accounts[usdAccount.AccountID] = usdAccount

	req := dto.CreateTransactionRequest{
		Kind:         domain.InternalTransfer,
		AmountCents:  10000,
		CurrencyCode: domain.USD,
		RateToTRY:    decimal.RequireFromString("32.5"),
		Postings: []dto.CreatePostingRequest{
			{AccountID: usdAccount.AccountID, Direction: domain.Debit, AmountCents: 10000, CurrencyCode: domain.USD, RateToTRY: decimal.RequireFromString("32.5")},
			{AccountID: suite.cashAccount.AccountID, Direction: domain.Credit, AmountCents: 325000, CurrencyCode: domain.TRY, RateToTRY: decimal.NewFromInt(1)},
		},
	}

	suite.mockAccountRepo.On("FindAccountsByIDs", ctx, mock.AnythingOfType("[]string")).Return(accounts, nil).Once()
	suite.mockTxnRepo.On("SaveTransaction", ctx, mock.AnythingOfType("domain.Transaction"), mock.AnythingOfType("[]domain.Posting")).Return(nil).Once()

	txn, err := suite.service.CreateTransaction(ctx, req, suite.userID)

	suite.Require().NoError(err)
	suite.Require().NotNil(txn)
	suite.mockTxnRepo.AssertExpectations(suite.T())
}

func (suite *LedgerServiceTestSuite) TestCreateTransaction_InactiveAccountRejected() {
	ctx := context.Background()
	req := suite.balancedRequest()
	accounts := suite.accountsMap()
	inactive := accounts[suite.bankAccount.AccountID]
	inactive.IsActive = false
	accounts[suite.bankAccount.AccountID] = inactive

	suite.mockAccountRepo.On("FindAccountsByIDs", ctx, mock.AnythingOfType("[]string")).Return(accounts, nil).Once()

	_, err := suite.service.CreateTransaction(ctx, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *LedgerServiceTestSuite) TestCreateTransaction_UnknownAccountRejected() {
	ctx := context.Background()
	req := suite.balancedRequest()
	accounts := suite.accountsMap()
	delete(accounts, suite.bankAccount.AccountID)

	suite.mockAccountRepo.On("FindAccountsByIDs", ctx, mock.AnythingOfType("[]string")).Return(accounts, nil).Once()

	_, err := suite.service.CreateTransaction(ctx, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *LedgerServiceTestSuite) TestCreateTransaction_InvalidKind() {
	ctx := context.Background()
	req := suite.balancedRequest()
	req.Kind = "SOMEHOW"

	_, err := suite.service.CreateTransaction(ctx, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockAccountRepo.AssertNotCalled(suite.T(), "FindAccountsByIDs", mock.Anything, mock.Anything)
}

func (suite *LedgerServiceTestSuite) TestUpdateTransaction_LockedRejected() {
	ctx := context.Background()
	locked := &domain.Transaction{
		TransactionID:          uuid.NewString(),
		Status:                 domain.Reversed,
		ReversingTransactionID: uuid.NewString(),
	}
	suite.mockTxnRepo.On("FindTransactionByID", ctx, locked.TransactionID).Return(locked, nil).Once()

	newNote := "corrected"
	_, err := suite.service.UpdateTransaction(ctx, locked.TransactionID, dto.UpdateTransactionRequest{Note: &newNote}, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrState)
	suite.mockTxnRepo.AssertNotCalled(suite.T(), "UpdateTransaction", mock.Anything, mock.Anything)
}

func (suite *LedgerServiceTestSuite) TestDeleteTransaction_LockedRejected() {
	ctx := context.Background()
	locked := &domain.Transaction{
		TransactionID:         uuid.NewString(),
		Status:                domain.Posted,
		OriginalTransactionID: uuid.NewString(), // this row is itself a reversal entry
	}
	suite.mockTxnRepo.On("FindTransactionByID", ctx, locked.TransactionID).Return(locked, nil).Once()

	err := suite.service.DeleteTransaction(ctx, locked.TransactionID, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrState)
	suite.mockTxnRepo.AssertNotCalled(suite.T(), "DeleteTransaction", mock.Anything, mock.Anything)
}

func (suite *LedgerServiceTestSuite) TestReverseTransaction_Success() {
	ctx := context.Background()
	originalID := uuid.NewString()
	original := &domain.Transaction{
		TransactionID: originalID,
		Kind:          domain.Payable,
		AmountCents:   50000,
		CurrencyCode:  domain.TRY,
		RateToTRY:     decimal.NewFromInt(1),
		Status:        domain.Posted,
		Postings: []domain.Posting{
			{PostingID: uuid.NewString(), TransactionID: originalID, AccountID: suite.cashAccount.AccountID, Direction: domain.Credit, AmountCents: 50000, CurrencyCode: domain.TRY, RateToTRY: decimal.NewFromInt(1)},
			{PostingID: uuid.NewString(), TransactionID: originalID, AccountID: suite.bankAccount.AccountID, Direction: domain.Debit, AmountCents: 50000, CurrencyCode: domain.TRY, RateToTRY: decimal.NewFromInt(1)},
		},
	}
	suite.mockTxnRepo.On("FindTransactionByID", ctx, originalID).Return(original, nil).Once()
	suite.mockTxnRepo.On("SaveReversal", ctx, mock.AnythingOfType("domain.Transaction"), mock.AnythingOfType("domain.Transaction"), mock.AnythingOfType("[]domain.Posting")).Return(nil).Once()

	reversal, err := suite.service.ReverseTransaction(ctx, originalID, suite.userID)

	suite.Require().NoError(err)
	suite.Require().NotNil(reversal)
	suite.Equal(originalID, reversal.OriginalTransactionID)
	suite.Require().Len(reversal.Postings, 2)
	// Directions flip, amounts and rates stay.
	suite.Equal(domain.Debit, reversal.Postings[0].Direction)
	suite.Equal(domain.Credit, reversal.Postings[1].Direction)
	suite.Equal(int64(50000), reversal.Postings[0].AmountCents)

	savedOriginal := suite.mockTxnRepo.Calls[1].Arguments.Get(1).(domain.Transaction)
	suite.Equal(domain.Reversed, savedOriginal.Status)
	suite.Equal(reversal.TransactionID, savedOriginal.ReversingTransactionID)
}

func (suite *LedgerServiceTestSuite) TestReverseTransaction_AlreadyReversedRejected() {
	ctx := context.Background()
	reversed := &domain.Transaction{
		TransactionID:          uuid.NewString(),
		Status:                 domain.Reversed,
		ReversingTransactionID: uuid.NewString(),
	}
	suite.mockTxnRepo.On("FindTransactionByID", ctx, reversed.TransactionID).Return(reversed, nil).Once()

	_, err := suite.service.ReverseTransaction(ctx, reversed.TransactionID, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrState)
	suite.mockTxnRepo.AssertNotCalled(suite.T(), "SaveReversal", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *LedgerServiceTestSuite) TestCreatePayrollTransaction_CreditsPayoutDebitsExpense() {
	ctx := context.Background()
	expenseAccount := domain.Account{
		AccountID:    uuid.NewString(),
		AccountType:  domain.AccountCash,
		Name:         "Maas Gideri",
		CurrencyCode: domain.TRY,
		IsActive:     true,
	}
	accounts := suite.accountsMap()
	accounts[expenseAccount.AccountID] = expenseAccount

	req := dto.CreatePayrollTransactionRequest{
		EmployeeID:       uuid.NewString(),
		AccountID:        suite.cashAccount.AccountID,
		ExpenseAccountID: expenseAccount.AccountID,
		Kind:             domain.Payroll,
		AmountCents:      4500000,
	}

	suite.mockAccountRepo.On("FindAccountByID", ctx, suite.cashAccount.AccountID).Return(&suite.cashAccount, nil).Once()
	suite.mockAccountRepo.On("FindAccountsByIDs", ctx, mock.AnythingOfType("[]string")).Return(accounts, nil).Once()
	suite.mockTxnRepo.On("SaveTransaction", ctx, mock.AnythingOfType("domain.Transaction"), mock.AnythingOfType("[]domain.Posting")).Return(nil).Once()

	txn, err := suite.service.CreatePayrollTransaction(ctx, req, suite.userID)

	suite.Require().NoError(err)
	suite.Require().Len(txn.Postings, 2)
	suite.Equal(expenseAccount.AccountID, txn.Postings[0].AccountID)
	suite.Equal(domain.Debit, txn.Postings[0].Direction)
	suite.Equal(suite.cashAccount.AccountID, txn.Postings[1].AccountID)
	suite.Equal(domain.Credit, txn.Postings[1].Direction)
	suite.Equal(req.EmployeeID, txn.EmployeeID)
}

func (suite *LedgerServiceTestSuite) TestCreatePayrollTransaction_RefundFlipsDirections() {
	ctx := context.Background()
	expenseAccount := domain.Account{
		AccountID:    uuid.NewString(),
		AccountType:  domain.AccountCash,
		Name:         "Avans",
		CurrencyCode: domain.TRY,
		IsActive:     true,
	}
	accounts := suite.accountsMap()
	accounts[expenseAccount.AccountID] = expenseAccount

	req := dto.CreatePayrollTransactionRequest{
		EmployeeID:       uuid.NewString(),
		AccountID:        suite.cashAccount.AccountID,
		ExpenseAccountID: expenseAccount.AccountID,
		Kind:             domain.PayrollRefund,
		AmountCents:      100000,
	}

	suite.mockAccountRepo.On("FindAccountByID", ctx, suite.cashAccount.AccountID).Return(&suite.cashAccount, nil).Once()
	suite.mockAccountRepo.On("FindAccountsByIDs", ctx, mock.AnythingOfType("[]string")).Return(accounts, nil).Once()
	suite.mockTxnRepo.On("SaveTransaction", ctx, mock.AnythingOfType("domain.Transaction"), mock.AnythingOfType("[]domain.Posting")).Return(nil).Once()

	txn, err := suite.service.CreatePayrollTransaction(ctx, req, suite.userID)

	suite.Require().NoError(err)
	suite.Equal(domain.Credit, txn.Postings[0].Direction) // expense side
	suite.Equal(domain.Debit, txn.Postings[1].Direction)  // money returns to cash
}

func (suite *LedgerServiceTestSuite) TestCreatePayrollTransaction_NonPayrollKindRejected() {
	ctx := context.Background()
	req := dto.CreatePayrollTransactionRequest{
		EmployeeID:       uuid.NewString(),
		AccountID:        suite.cashAccount.AccountID,
		ExpenseAccountID: uuid.NewString(),
		Kind:             domain.Receivable,
		AmountCents:      100,
	}

	_, err := suite.service.CreatePayrollTransaction(ctx, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *LedgerServiceTestSuite) TestCreatePayrollTransaction_SameAccountRejected() {
	ctx := context.Background()
	req := dto.CreatePayrollTransactionRequest{
		EmployeeID:       uuid.NewString(),
		AccountID:        suite.cashAccount.AccountID,
		ExpenseAccountID: suite.cashAccount.AccountID,
		Kind:             domain.Payroll,
		AmountCents:      100,
	}

	_, err := suite.service.CreatePayrollTransaction(ctx, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *LedgerServiceTestSuite) TestCreateBulkPayrollTransactions_PartialFailure() {
	ctx := context.Background()
	expenseAccount := domain.Account{
		AccountID:    uuid.NewString(),
		AccountType:  domain.AccountCash,
		Name:         "Maas Gideri",
		CurrencyCode: domain.TRY,
		IsActive:     true,
	}
	accounts := suite.accountsMap()
	accounts[expenseAccount.AccountID] = expenseAccount

	good := dto.CreatePayrollTransactionRequest{
		EmployeeID:       "emp-1",
		AccountID:        suite.cashAccount.AccountID,
		ExpenseAccountID: expenseAccount.AccountID,
		Kind:             domain.Payroll,
		AmountCents:      200000,
	}
	bad := good
	bad.EmployeeID = "emp-2"
	bad.ExpenseAccountID = good.AccountID // same-account payout fails validation

	suite.mockAccountRepo.On("FindAccountByID", ctx, suite.cashAccount.AccountID).Return(&suite.cashAccount, nil).Once()
	suite.mockAccountRepo.On("FindAccountsByIDs", ctx, mock.AnythingOfType("[]string")).Return(accounts, nil).Once()
	suite.mockTxnRepo.On("SaveTransaction", ctx, mock.AnythingOfType("domain.Transaction"), mock.AnythingOfType("[]domain.Posting")).Return(nil).Once()

	resp, err := suite.service.CreateBulkPayrollTransactions(ctx, dto.CreateBulkPayrollRequest{
		Payments: []dto.CreatePayrollTransactionRequest{good, bad},
	}, suite.userID)

	suite.Require().NoError(err)
	suite.Equal(2, resp.Total)
	suite.Equal(1, resp.Successful)
	suite.Equal(1, resp.Failed)
	suite.True(resp.Results[0].Success)
	suite.NotEmpty(resp.Results[0].TransactionID)
	suite.False(resp.Results[1].Success)
	suite.NotEmpty(resp.Results[1].Error)
}

func (suite *LedgerServiceTestSuite) TestGetAccountBalance() {
	ctx := context.Background()
	postings := []domain.Posting{
		{AccountID: suite.cashAccount.AccountID, Direction: domain.Debit, AmountCents: 100000, RateToTRY: decimal.NewFromInt(1)},
		{AccountID: suite.cashAccount.AccountID, Direction: domain.Credit, AmountCents: 25000, RateToTRY: decimal.NewFromInt(1)},
	}
	suite.mockAccountRepo.On("FindAccountByID", ctx, suite.cashAccount.AccountID).Return(&suite.cashAccount, nil).Once()
	suite.mockTxnRepo.On("FindPostingsByAccountID", ctx, suite.cashAccount.AccountID).Return(postings, nil).Once()

	balance, err := suite.service.GetAccountBalance(ctx, suite.cashAccount.AccountID)

	suite.Require().NoError(err)
	suite.Equal(int64(75000), balance)
}

func (suite *LedgerServiceTestSuite) TestGetTotalBalance_SumsActiveAccounts() {
	ctx := context.Background()
	suite.mockAccountRepo.On("ListAccounts", ctx, false).Return([]domain.Account{suite.cashAccount, suite.bankAccount}, nil).Once()
	suite.mockTxnRepo.On("FindPostingsByAccountID", ctx, suite.cashAccount.AccountID).Return([]domain.Posting{
		{Direction: domain.Debit, AmountCents: 100000, RateToTRY: decimal.NewFromInt(1)},
	}, nil).Once()
	suite.mockTxnRepo.On("FindPostingsByAccountID", ctx, suite.bankAccount.AccountID).Return([]domain.Posting{
		{Direction: domain.Debit, AmountCents: 50000, RateToTRY: decimal.NewFromInt(1)},
	}, nil).Once()

	total, err := suite.service.GetTotalBalance(ctx)

	suite.Require().NoError(err)
	suite.Equal(int64(150000), total)
}

func (suite *LedgerServiceTestSuite) TestListTransactions_ClampsPagination() {
	ctx := context.Background()
	suite.mockTxnRepo.On("ListTransactions", ctx, mock.MatchedBy(func(f portsrepo.TransactionFilter) bool {
		return f.Limit == 200 && f.Offset == 0
	})).Return([]domain.Transaction{}, int64(0), nil).Once()

	resp, err := suite.service.ListTransactions(ctx, dto.ListTransactionsParams{Page: 0, Limit: 9999})

	suite.Require().NoError(err)
	suite.Equal(1, resp.Page)
	suite.Equal(200, resp.Limit)
	suite.mockTxnRepo.AssertExpectations(suite.T())
}

func TestLedgerServiceTestSuite(t *testing.T) {
	suite.Run(t, new(LedgerServiceTestSuite))
}
