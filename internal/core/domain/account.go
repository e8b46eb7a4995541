package domain

// AccountType defines the kind of financial account.
type AccountType string

const (
	AccountCash AccountType = "CASH"
	AccountBank AccountType = "BANK"
	AccountPOS  AccountType = "POS" // card terminal
)

// IsValid reports whether the account type is one of the closed set.
func (t AccountType) IsValid() bool {
	switch t {
	case AccountCash, AccountBank, AccountPOS:
		return true
	}
	return false
}

// Account represents a financial account (cash drawer, bank account, card
// terminal). Its balance is always derived from postings, never stored.
type Account struct {
	AccountID    string       `json:"accountID"` // Primary key (UUID)
	AccountType  AccountType  `json:"accountType"`
	Name         string       `json:"name"`
	CurrencyCode CurrencyCode `json:"currencyCode"`
	IsActive     bool         `json:"isActive"`
	AuditFields
}
