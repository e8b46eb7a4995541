package utils

import (
	"strconv"

	"github.com/snngymn-development/modatasar-m/internal/core/domain"
)

// currencySymbols maps supported currencies to their display symbols.
var currencySymbols = map[domain.CurrencyCode]string{
	domain.TRY: "₺",
	domain.USD: "$",
	domain.EUR: "€",
}

// FormatTRY formats an amount in base-currency cents for display, whole lira
// with Turkish thousands separators: 1234500 -> "₺12.345".
func FormatTRY(cents int64) string {
	return FormatCents(cents, domain.TRY)
}

// FormatCents formats a cent amount in the given currency, rounded to whole
// units as invoices display them.
func FormatCents(cents int64, currency domain.CurrencyCode) string {
	symbol, ok := currencySymbols[currency]
	if !ok {
		symbol = string(currency) + " "
	}
	units := cents / 100
	if cents%100 >= 50 {
		units++
	} else if cents%100 <= -50 {
		units--
	}
	return symbol + groupThousands(units)
}

// groupThousands inserts dot separators per Turkish convention.
func groupThousands(n int64) string {
	s := strconv.FormatInt(n, 10)
	neg := false
	if len(s) > 0 && s[0] == '-' {
		neg = true
		s = s[1:]
	}
	for i := len(s) - 3; i > 0; i -= 3 {
		s = s[:i] + "." + s[i:]
	}
	if neg {
		s = "-" + s
	}
	return s
}
