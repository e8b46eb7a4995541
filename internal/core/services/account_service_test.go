package services_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/snngymn-development/modatasar-m/internal/apperrors"
	"github.com/snngymn-development/modatasar-m/internal/core/domain"
	portssvc "github.com/snngymn-development/modatasar-m/internal/core/ports/services"
	"github.com/snngymn-development/modatasar-m/internal/core/services"
	"github.com/snngymn-development/modatasar-m/internal/dto"
)

type AccountServiceTestSuite struct {
	suite.Suite
	mockRepo *MockAccountRepository
	service  portssvc.AccountSvcFacade
	userID   string
}

func (suite *AccountServiceTestSuite) SetupTest() {
	suite.mockRepo = new(MockAccountRepository)
	suite.service = services.NewAccountService(suite.mockRepo)
	suite.userID = "user-123"
}

func (suite *AccountServiceTestSuite) TestCreateAccount_Success() {
	req := dto.CreateAccountRequest{
		AccountType:  domain.AccountCash,
		Name:         "Register Till",
		CurrencyCode: domain.TRY,
	}
	suite.mockRepo.On("SaveAccount", mock.Anything, mock.MatchedBy(func(acc domain.Account) bool {
		return acc.AccountType == domain.AccountCash && acc.Name == "Register Till" &&
			acc.CurrencyCode == domain.TRY && acc.IsActive
	})).Return(nil)

	account, err := suite.service.CreateAccount(context.Background(), req, suite.userID)

	suite.Require().NoError(err)
	suite.Require().NotNil(account)
	suite.NotEmpty(account.AccountID)
	suite.True(account.IsActive)
	suite.Equal(suite.userID, account.CreatedBy)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *AccountServiceTestSuite) TestCreateAccount_UnknownType() {
	req := dto.CreateAccountRequest{
		AccountType:  "WALLET",
		Name:         "Petty Cash",
		CurrencyCode: domain.TRY,
	}

	account, err := suite.service.CreateAccount(context.Background(), req, suite.userID)

	suite.Require().Error(err)
	suite.Nil(account)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockRepo.AssertNotCalled(suite.T(), "SaveAccount", mock.Anything, mock.Anything)
}

func (suite *AccountServiceTestSuite) TestCreateAccount_UnknownCurrency() {
	req := dto.CreateAccountRequest{
		AccountType:  domain.AccountBank,
		Name:         "Operating Account",
		CurrencyCode: "GBP",
	}

	account, err := suite.service.CreateAccount(context.Background(), req, suite.userID)

	suite.Require().Error(err)
	suite.Nil(account)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *AccountServiceTestSuite) TestCreateAccount_EmptyName() {
	req := dto.CreateAccountRequest{
		AccountType:  domain.AccountPOS,
		CurrencyCode: domain.TRY,
	}

	account, err := suite.service.CreateAccount(context.Background(), req, suite.userID)

	suite.Require().Error(err)
	suite.Nil(account)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *AccountServiceTestSuite) TestGetAccountByID_Success() {
	account := domain.Account{AccountID: "acc-1", AccountType: domain.AccountBank, Name: "Operating", CurrencyCode: domain.USD, IsActive: true}
	suite.mockRepo.On("FindAccountByID", mock.Anything, "acc-1").Return(&account, nil)

	result, err := suite.service.GetAccountByID(context.Background(), "acc-1")

	suite.Require().NoError(err)
	suite.Equal("acc-1", result.AccountID)
	suite.Equal(domain.USD, result.CurrencyCode)
}

func (suite *AccountServiceTestSuite) TestGetAccountByID_NotFound() {
	suite.mockRepo.On("FindAccountByID", mock.Anything, "acc-missing").Return(nil, apperrors.ErrNotFound)

	result, err := suite.service.GetAccountByID(context.Background(), "acc-missing")

	suite.Require().Error(err)
	suite.Nil(result)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *AccountServiceTestSuite) TestListAccounts_PassesIncludeInactive() {
	accounts := []domain.Account{
		{AccountID: "acc-1", IsActive: true},
		{AccountID: "acc-2", IsActive: false},
	}
	suite.mockRepo.On("ListAccounts", mock.Anything, true).Return(accounts, nil)

	result, err := suite.service.ListAccounts(context.Background(), true)

	suite.Require().NoError(err)
	suite.Len(result, 2)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *AccountServiceTestSuite) TestDeactivateAccount_Success() {
	account := domain.Account{AccountID: "acc-1", IsActive: true}
	suite.mockRepo.On("FindAccountByID", mock.Anything, "acc-1").Return(&account, nil)
	suite.mockRepo.On("DeactivateAccount", mock.Anything, "acc-1", suite.userID, mock.AnythingOfType("time.Time")).Return(nil)

	err := suite.service.DeactivateAccount(context.Background(), "acc-1", suite.userID)

	suite.Require().NoError(err)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *AccountServiceTestSuite) TestDeactivateAccount_NotFound() {
	suite.mockRepo.On("FindAccountByID", mock.Anything, "acc-missing").Return(nil, apperrors.ErrNotFound)

	err := suite.service.DeactivateAccount(context.Background(), "acc-missing", suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.mockRepo.AssertNotCalled(suite.T(), "DeactivateAccount", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestAccountServiceTestSuite(t *testing.T) {
	suite.Run(t, new(AccountServiceTestSuite))
}
