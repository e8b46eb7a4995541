package models

// AccountType categorizes a financial account.
type AccountType string

// Account represents a row of the accounts table.
type Account struct {
	AccountID    string      `json:"accountID"` // Primary Key (UUID)
	AccountType  AccountType `json:"accountType"`
	Name         string      `json:"name"`
	CurrencyCode string      `json:"currencyCode"`
	IsActive     bool        `json:"isActive"`
	AuditFields
}
