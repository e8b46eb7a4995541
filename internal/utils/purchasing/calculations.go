// Package purchasing holds the cost allocation engine for purchase orders:
// pure, deterministic functions that compute per-line and header totals from
// line items, header charges/discounts, and a VAT rate. The engine keeps no
// state; it is rerun in full after every mutation of its inputs.
package purchasing

import (
	"fmt"

	"github.com/snngymn-development/modatasar-m/internal/core/domain"
	"github.com/shopspring/decimal"
)

// LineInput is the snapshot of one purchase item the engine needs.
type LineInput struct {
	ItemID            string
	QtyOrdered        int64
	UnitPriceCents    int64
	LineDiscountCents int64
	LineChargeCents   int64
}

// ChargeInput is the snapshot of one header charge.
type ChargeInput struct {
	ChargeID    string
	AmountCents int64
	Allocation  domain.AllocationMethod
}

// DiscountInput is the snapshot of one header discount. PCT discounts carry
// Percent; ABS discounts carry AmountCents.
type DiscountInput struct {
	DiscountID  string
	Kind        domain.DiscountKind
	AmountCents int64
	Percent     decimal.Decimal
}

// Input gathers everything a recalculation needs.
type Input struct {
	Lines     []LineInput
	Charges   []ChargeInput
	Discounts []DiscountInput
	VATRate   decimal.Decimal // 0 <= rate <= 1
}

// LineResult holds the computed totals for one line.
type LineResult struct {
	ItemID                 string
	LineBaseCents          int64
	LineAfterDiscountCents int64
	LineAfterChargeCents   int64
	AllocatedChargeCents   int64
	AllocatedDiscountCents int64
	LineSubTotalCents      int64 // final base after header allocation
	LineVATCents           int64
	LineTotalCents         int64
}

// Result holds per-line results plus the five reconciled header totals.
// TotalCents always equals the literal sum of LineTotalCents; RoundingAdjCents
// is the cent-level correction between the raw sum and the rounded total.
type Result struct {
	Lines              []LineResult
	SubTotalCents      int64
	DiscountTotalCents int64
	ChargeTotalCents   int64
	VATTotalCents      int64
	RoundingAdjCents   int64
	TotalCents         int64
}

// Validate rejects inputs the engine must never see. Quantities must be
// positive, money fields non-negative, the VAT rate within [0, 1], and every
// enum value a member of its closed set.
func Validate(in Input) error {
	for i, line := range in.Lines {
		if line.QtyOrdered <= 0 {
			return fmt.Errorf("line %d: ordered quantity must be positive", i+1)
		}
		if line.UnitPriceCents < 0 {
			return fmt.Errorf("line %d: unit price cannot be negative", i+1)
		}
		if line.LineDiscountCents < 0 {
			return fmt.Errorf("line %d: line discount cannot be negative", i+1)
		}
		if line.LineChargeCents < 0 {
			return fmt.Errorf("line %d: line charge cannot be negative", i+1)
		}
	}
	if in.VATRate.IsNegative() || in.VATRate.GreaterThan(decimal.NewFromInt(1)) {
		return fmt.Errorf("vat rate must be between 0 and 1")
	}
	for i, c := range in.Charges {
		if c.AmountCents < 0 {
			return fmt.Errorf("header charge %d: amount cannot be negative", i+1)
		}
		if !c.Allocation.IsValid() {
			return fmt.Errorf("header charge %d: unknown allocation method %q", i+1, c.Allocation)
		}
	}
	for i, d := range in.Discounts {
		if !d.Kind.IsValid() {
			return fmt.Errorf("header discount %d: unknown kind %q", i+1, d.Kind)
		}
		if d.AmountCents < 0 {
			return fmt.Errorf("header discount %d: amount cannot be negative", i+1)
		}
		if d.Kind == domain.DiscountPercentage && (d.Percent.IsNegative() || d.Percent.GreaterThan(decimal.NewFromInt(100))) {
			return fmt.Errorf("header discount %d: percent must be between 0 and 100", i+1)
		}
	}
	return nil
}

// CalculateTotals runs the full allocation in a fixed order of operations so
// results are reproducible:
//
//  1. line base, line-level discount then charge
//  2. pre-allocation subtotal
//  3. per-charge and per-discount allocation onto lines
//  4. final line base (clamped at zero), per-line VAT, line total
//  5. header totals and rounding adjustment
func CalculateTotals(in Input) (Result, error) {
	if err := Validate(in); err != nil {
		return Result{}, err
	}

	lines := make([]LineResult, len(in.Lines))
	var subTotal, totalQty int64
	for i, line := range in.Lines {
		base := line.QtyOrdered * line.UnitPriceCents
		afterDiscount := base - line.LineDiscountCents
		if afterDiscount < 0 {
			afterDiscount = 0
		}
		afterCharge := afterDiscount + line.LineChargeCents
		lines[i] = LineResult{
			ItemID:                 line.ItemID,
			LineBaseCents:          base,
			LineAfterDiscountCents: afterDiscount,
			LineAfterChargeCents:   afterCharge,
		}
		subTotal += afterCharge
		totalQty += line.QtyOrdered
	}

	// Header charges: each charge is allocated by its own method.
	var chargeTotal int64
	for _, charge := range in.Charges {
		chargeTotal += charge.AmountCents
		for i := range lines {
			lines[i].AllocatedChargeCents += allocateShare(
				charge.AmountCents, charge.Allocation,
				lines[i].LineAfterChargeCents, subTotal,
				in.Lines[i].QtyOrdered, totalQty,
			)
		}
	}

	// Header discounts: PCT resolves against the pre-allocation subtotal,
	// then every discount spreads proportionally by line value.
	var discountTotal int64
	for _, discount := range in.Discounts {
		amount := effectiveDiscountCents(discount, subTotal)
		discountTotal += amount
		for i := range lines {
			lines[i].AllocatedDiscountCents += allocateShare(
				amount, domain.AllocateProportional,
				lines[i].LineAfterChargeCents, subTotal,
				in.Lines[i].QtyOrdered, totalQty,
			)
		}
	}

	var finalSubTotal, vatTotal, rawTotal int64
	for i := range lines {
		finalBase := lines[i].LineAfterChargeCents + lines[i].AllocatedChargeCents - lines[i].AllocatedDiscountCents
		if finalBase < 0 {
			finalBase = 0
		}
		vat := decimal.NewFromInt(finalBase).Mul(in.VATRate).Round(0).IntPart()
		lines[i].LineSubTotalCents = finalBase
		lines[i].LineVATCents = vat
		lines[i].LineTotalCents = finalBase + vat

		finalSubTotal += finalBase
		vatTotal += vat
		rawTotal += lines[i].LineTotalCents
	}

	// Amounts are whole cents throughout, so the rounded total and the raw
	// sum coincide and the adjustment records the (at most one cent) gap.
	roundedTotal := rawTotal
	return Result{
		Lines:              lines,
		SubTotalCents:      finalSubTotal,
		DiscountTotalCents: discountTotal,
		ChargeTotalCents:   chargeTotal,
		VATTotalCents:      vatTotal,
		RoundingAdjCents:   roundedTotal - rawTotal,
		TotalCents:         roundedTotal,
	}, nil
}

// allocateShare computes one line's share of a header amount. Zero
// denominators mean no meaningful basis to allocate on, so the share is zero.
func allocateShare(amountCents int64, method domain.AllocationMethod, lineValue, totalValue, lineQty, totalQty int64) int64 {
	if amountCents == 0 {
		return 0
	}
	switch method {
	case domain.AllocateProportional, domain.AllocateByValue:
		if totalValue == 0 {
			return 0
		}
		return ratioShare(amountCents, lineValue, totalValue)
	case domain.AllocateByQty:
		if totalQty == 0 {
			return 0
		}
		return ratioShare(amountCents, lineQty, totalQty)
	case domain.AllocateNone:
		return 0
	}
	return 0
}

// ratioShare rounds amount * num/den to the nearest cent.
func ratioShare(amountCents, num, den int64) int64 {
	return decimal.NewFromInt(amountCents).
		Mul(decimal.NewFromInt(num)).
		Div(decimal.NewFromInt(den)).
		Round(0).IntPart()
}

// effectiveDiscountCents resolves a discount to an absolute amount. PCT is a
// percentage of the pre-allocation subtotal.
func effectiveDiscountCents(d DiscountInput, subTotalCents int64) int64 {
	if d.Kind == domain.DiscountPercentage {
		return decimal.NewFromInt(subTotalCents).
			Mul(d.Percent).
			Div(decimal.NewFromInt(100)).
			Round(0).IntPart()
	}
	return d.AmountCents
}
