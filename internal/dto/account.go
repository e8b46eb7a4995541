package dto

import (
	"github.com/snngymn-development/modatasar-m/internal/core/domain"
)

// CreateAccountRequest defines the payload for creating a financial account.
type CreateAccountRequest struct {
	AccountType  domain.AccountType  `json:"accountType" binding:"required,oneof=CASH BANK POS"`
	Name         string              `json:"name" binding:"required,max=120"`
	CurrencyCode domain.CurrencyCode `json:"currencyCode" binding:"required,oneof=TRY USD EUR"`
}

// AccountResponse defines the data returned for an account. BalanceCents is
// derived from postings when requested; it is never a stored column.
type AccountResponse struct {
	AccountID    string              `json:"accountID"`
	AccountType  domain.AccountType  `json:"accountType"`
	Name         string              `json:"name"`
	CurrencyCode domain.CurrencyCode `json:"currencyCode"`
	IsActive     bool                `json:"isActive"`
	BalanceCents *int64              `json:"balanceCents,omitempty"`
}

// BalanceResponse carries a derived balance in base-currency cents.
type BalanceResponse struct {
	AccountID    string `json:"accountID,omitempty"`
	BalanceCents int64  `json:"balanceCents"`
	Display      string `json:"display"`
}

// ListAccountsResponse wraps a list of accounts.
type ListAccountsResponse struct {
	Accounts []AccountResponse `json:"accounts"`
}

// ToAccountResponse converts a domain.Account to its response DTO.
func ToAccountResponse(a *domain.Account) AccountResponse {
	return AccountResponse{
		AccountID:    a.AccountID,
		AccountType:  a.AccountType,
		Name:         a.Name,
		CurrencyCode: a.CurrencyCode,
		IsActive:     a.IsActive,
	}
}

// ToAccountResponses converts a slice of accounts to response DTOs.
func ToAccountResponses(accounts []domain.Account) []AccountResponse {
	responses := make([]AccountResponse, len(accounts))
	for i := range accounts {
		responses[i] = ToAccountResponse(&accounts[i])
	}
	return responses
}
