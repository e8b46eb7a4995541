package services

import (
	"context"

	"github.com/snngymn-development/modatasar-m/internal/core/domain"
	"github.com/snngymn-development/modatasar-m/internal/dto"
)

// AccountSvcFacade exposes the account registry to handlers and other services.
type AccountSvcFacade interface {
	// CreateAccount registers a new financial account.
	CreateAccount(ctx context.Context, req dto.CreateAccountRequest, creatorUserID string) (*domain.Account, error)

	// GetAccountByID retrieves a single account.
	GetAccountByID(ctx context.Context, accountID string) (*domain.Account, error)

	// GetAccountsByIDs retrieves several accounts keyed by ID.
	GetAccountsByIDs(ctx context.Context, accountIDs []string) (map[string]domain.Account, error)

	// ListAccounts retrieves accounts, optionally including inactive ones.
	ListAccounts(ctx context.Context, includeInactive bool) ([]domain.Account, error)

	// DeactivateAccount flags an account inactive; accounts are never deleted.
	DeactivateAccount(ctx context.Context, accountID string, userID string) error
}
