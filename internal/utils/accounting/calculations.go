package accounting

import (
	"fmt"

	"github.com/snngymn-development/modatasar-m/internal/core/domain"
	"github.com/shopspring/decimal"
)

// balanceEpsilon absorbs sub-cent rounding when comparing debit and credit
// totals in base currency. Amounts are integer cents but historical rates are
// fractional, so the converted sums may differ by a hair on a balanced entry.
var balanceEpsilon = decimal.NewFromFloat(0.01)

// BaseAmount converts a posting amount to base-currency (TRY) cents using the
// posting's own historically captured rate. The rate is a fact recorded at
// entry time; callers must never substitute a live rate lookup.
func BaseAmount(amountCents int64, rateToTRY decimal.Decimal) decimal.Decimal {
	return decimal.NewFromInt(amountCents).Mul(rateToTRY)
}

// BaseCents is BaseAmount rounded to the nearest whole cent.
func BaseCents(amountCents int64, rateToTRY decimal.Decimal) int64 {
	return BaseAmount(amountCents, rateToTRY).Round(0).IntPart()
}

// SignedBaseAmount returns the posting's base-currency value signed by
// direction: positive for DEBIT, negative for CREDIT.
func SignedBaseAmount(p domain.Posting) decimal.Decimal {
	base := BaseAmount(p.AmountCents, p.RateToTRY)
	if p.Direction == domain.Credit {
		return base.Neg()
	}
	return base
}

// ValidateDoubleEntry checks the double-entry invariant for a posting set:
// the base-currency sum of debits must equal the sum of credits, each posting
// converted with its own rate. A mixed-currency entry legitimately posts in
// two different currencies, so the transaction's face rate is never used here.
func ValidateDoubleEntry(postings []domain.Posting) error {
	if len(postings) < 2 {
		return fmt.Errorf("transaction must have at least two postings")
	}

	debitSum := decimal.Zero
	creditSum := decimal.Zero
	for _, p := range postings {
		if p.AmountCents <= 0 {
			return fmt.Errorf("posting amount must be positive for account %s", p.AccountID)
		}
		base := BaseAmount(p.AmountCents, p.RateToTRY)
		if p.Direction == domain.Debit {
			debitSum = debitSum.Add(base)
		} else {
			creditSum = creditSum.Add(base)
		}
	}

	if debitSum.Sub(creditSum).Abs().GreaterThanOrEqual(balanceEpsilon) {
		return fmt.Errorf("debit total %s does not equal credit total %s in base currency",
			debitSum.String(), creditSum.String())
	}
	return nil
}

// CalculateAccountBalance sums an account's postings in base-currency cents,
// DEBIT positive and CREDIT negative, each posting converted with its own
// stored rate. A balance is a historical fact, not a live valuation.
func CalculateAccountBalance(postings []domain.Posting) int64 {
	sum := decimal.Zero
	for _, p := range postings {
		sum = sum.Add(SignedBaseAmount(p))
	}
	return sum.Round(0).IntPart()
}
