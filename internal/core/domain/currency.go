package domain

// CurrencyCode identifies one of the currencies the business operates in.
// TRY is the base currency: all balances aggregate into TRY cents.
type CurrencyCode string

const (
	TRY CurrencyCode = "TRY"
	USD CurrencyCode = "USD"
	EUR CurrencyCode = "EUR"
)

// BaseCurrency is the currency balances are aggregated and compared in.
const BaseCurrency = TRY

// IsValid reports whether the code is one of the supported currencies.
func (c CurrencyCode) IsValid() bool {
	switch c {
	case TRY, USD, EUR:
		return true
	}
	return false
}
