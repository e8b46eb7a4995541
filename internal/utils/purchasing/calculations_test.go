package purchasing_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/snngymn-development/modatasar-m/internal/core/domain"
	"github.com/snngymn-development/modatasar-m/internal/utils/purchasing"
)

func TestCalculateTotals_ProportionalChargeWithVAT(t *testing.T) {
	// Two lines of equal value each take half of the freight charge.
	in := purchasing.Input{
		Lines: []purchasing.LineInput{
			{ItemID: "fabric", QtyOrdered: 10, UnitPriceCents: 10000},
			{ItemID: "lining", QtyOrdered: 5, UnitPriceCents: 20000},
		},
		Charges: []purchasing.ChargeInput{
			{ChargeID: "freight", AmountCents: 3000, Allocation: domain.AllocateProportional},
		},
		VATRate: decimal.RequireFromString("0.20"),
	}

	res, err := purchasing.CalculateTotals(in)
	require.NoError(t, err)
	require.Len(t, res.Lines, 2)

	for _, line := range res.Lines {
		assert.Equal(t, int64(100000), line.LineBaseCents)
		assert.Equal(t, int64(1500), line.AllocatedChargeCents)
		assert.Equal(t, int64(101500), line.LineSubTotalCents)
		assert.Equal(t, int64(20300), line.LineVATCents)
		assert.Equal(t, int64(121800), line.LineTotalCents)
	}

	assert.Equal(t, int64(203000), res.SubTotalCents)
	assert.Equal(t, int64(3000), res.ChargeTotalCents)
	assert.Equal(t, int64(0), res.DiscountTotalCents)
	assert.Equal(t, int64(40600), res.VATTotalCents)
	assert.Equal(t, int64(0), res.RoundingAdjCents)
	assert.Equal(t, int64(243600), res.TotalCents)
	assert.Equal(t, res.Lines[0].LineTotalCents+res.Lines[1].LineTotalCents, res.TotalCents)
}

func TestCalculateTotals_ByQtyCharge(t *testing.T) {
	in := purchasing.Input{
		Lines: []purchasing.LineInput{
			{ItemID: "a", QtyOrdered: 10, UnitPriceCents: 100},
			{ItemID: "b", QtyOrdered: 5, UnitPriceCents: 5000},
		},
		Charges: []purchasing.ChargeInput{
			{ChargeID: "customs", AmountCents: 3000, Allocation: domain.AllocateByQty},
		},
	}

	res, err := purchasing.CalculateTotals(in)
	require.NoError(t, err)

	assert.Equal(t, int64(2000), res.Lines[0].AllocatedChargeCents)
	assert.Equal(t, int64(1000), res.Lines[1].AllocatedChargeCents)
}

func TestCalculateTotals_NoneChargeLeavesLinesUntouched(t *testing.T) {
	in := purchasing.Input{
		Lines: []purchasing.LineInput{
			{ItemID: "a", QtyOrdered: 1, UnitPriceCents: 10000},
		},
		Charges: []purchasing.ChargeInput{
			{ChargeID: "handling", AmountCents: 500, Allocation: domain.AllocateNone},
		},
	}

	res, err := purchasing.CalculateTotals(in)
	require.NoError(t, err)

	assert.Equal(t, int64(0), res.Lines[0].AllocatedChargeCents)
	assert.Equal(t, int64(500), res.ChargeTotalCents)
	assert.Equal(t, int64(10000), res.TotalCents)
}

func TestCalculateTotals_PercentDiscountOnPreAllocationSubtotal(t *testing.T) {
	in := purchasing.Input{
		Lines: []purchasing.LineInput{
			{ItemID: "a", QtyOrdered: 1, UnitPriceCents: 150000},
			{ItemID: "b", QtyOrdered: 1, UnitPriceCents: 50000},
		},
		Discounts: []purchasing.DiscountInput{
			{DiscountID: "seasonal", Kind: domain.DiscountPercentage, Percent: decimal.NewFromInt(10)},
		},
	}

	res, err := purchasing.CalculateTotals(in)
	require.NoError(t, err)

	// 10% of 200000 = 20000, spread by line value: 15000 / 5000.
	assert.Equal(t, int64(20000), res.DiscountTotalCents)
	assert.Equal(t, int64(15000), res.Lines[0].AllocatedDiscountCents)
	assert.Equal(t, int64(5000), res.Lines[1].AllocatedDiscountCents)
	assert.Equal(t, int64(135000), res.Lines[0].LineSubTotalCents)
	assert.Equal(t, int64(45000), res.Lines[1].LineSubTotalCents)
	assert.Equal(t, int64(180000), res.TotalCents)
}

func TestCalculateTotals_LineDiscountClampsAtZero(t *testing.T) {
	in := purchasing.Input{
		Lines: []purchasing.LineInput{
			{ItemID: "a", QtyOrdered: 1, UnitPriceCents: 1000, LineDiscountCents: 5000},
		},
	}

	res, err := purchasing.CalculateTotals(in)
	require.NoError(t, err)

	assert.Equal(t, int64(0), res.Lines[0].LineAfterDiscountCents)
	assert.Equal(t, int64(0), res.TotalCents)
}

func TestCalculateTotals_HeaderDiscountClampsFinalBaseAtZero(t *testing.T) {
	in := purchasing.Input{
		Lines: []purchasing.LineInput{
			{ItemID: "a", QtyOrdered: 1, UnitPriceCents: 1000},
		},
		Discounts: []purchasing.DiscountInput{
			{DiscountID: "promo", Kind: domain.DiscountAbsolute, AmountCents: 5000},
		},
	}

	res, err := purchasing.CalculateTotals(in)
	require.NoError(t, err)

	assert.Equal(t, int64(0), res.Lines[0].LineSubTotalCents)
	assert.Equal(t, int64(0), res.Lines[0].LineVATCents)
	assert.Equal(t, int64(5000), res.DiscountTotalCents)
	assert.Equal(t, int64(0), res.TotalCents)
}

func TestCalculateTotals_ZeroValueLinesAllocateNothing(t *testing.T) {
	in := purchasing.Input{
		Lines: []purchasing.LineInput{
			{ItemID: "a", QtyOrdered: 2, UnitPriceCents: 0},
		},
		Charges: []purchasing.ChargeInput{
			{ChargeID: "freight", AmountCents: 1000, Allocation: domain.AllocateProportional},
		},
	}

	res, err := purchasing.CalculateTotals(in)
	require.NoError(t, err)

	// Zero pre-allocation subtotal leaves no basis to distribute on.
	assert.Equal(t, int64(0), res.Lines[0].AllocatedChargeCents)
	assert.Equal(t, int64(1000), res.ChargeTotalCents)
	assert.Equal(t, int64(0), res.TotalCents)
}

func TestCalculateTotals_NoLines(t *testing.T) {
	res, err := purchasing.CalculateTotals(purchasing.Input{
		Charges: []purchasing.ChargeInput{
			{ChargeID: "freight", AmountCents: 1000, Allocation: domain.AllocateProportional},
		},
	})
	require.NoError(t, err)

	assert.Empty(t, res.Lines)
	assert.Equal(t, int64(1000), res.ChargeTotalCents)
	assert.Equal(t, int64(0), res.TotalCents)
}

func TestCalculateTotals_SharesRoundToNearestCent(t *testing.T) {
	// 100 split over three equal lines: 33 + 33 + 33, each share rounded.
	in := purchasing.Input{
		Lines: []purchasing.LineInput{
			{ItemID: "a", QtyOrdered: 1, UnitPriceCents: 1000},
			{ItemID: "b", QtyOrdered: 1, UnitPriceCents: 1000},
			{ItemID: "c", QtyOrdered: 1, UnitPriceCents: 1000},
		},
		Charges: []purchasing.ChargeInput{
			{ChargeID: "freight", AmountCents: 100, Allocation: domain.AllocateProportional},
		},
	}

	res, err := purchasing.CalculateTotals(in)
	require.NoError(t, err)

	for _, line := range res.Lines {
		assert.Equal(t, int64(33), line.AllocatedChargeCents)
	}
	// The cent lost to rounding stays visible in the header charge total.
	assert.Equal(t, int64(100), res.ChargeTotalCents)
	assert.Equal(t, int64(3099), res.TotalCents)
}

func TestValidate_Rejections(t *testing.T) {
	tests := []struct {
		name   string
		in     purchasing.Input
		errMsg string
	}{
		{
			name: "non-positive quantity",
			in: purchasing.Input{
				Lines: []purchasing.LineInput{{ItemID: "a", QtyOrdered: 0, UnitPriceCents: 100}},
			},
			errMsg: "quantity must be positive",
		},
		{
			name: "negative unit price",
			in: purchasing.Input{
				Lines: []purchasing.LineInput{{ItemID: "a", QtyOrdered: 1, UnitPriceCents: -1}},
			},
			errMsg: "unit price cannot be negative",
		},
		{
			name:   "vat rate above 1",
			in:     purchasing.Input{VATRate: decimal.RequireFromString("1.5")},
			errMsg: "vat rate",
		},
		{
			name: "unknown allocation method",
			in: purchasing.Input{
				Charges: []purchasing.ChargeInput{{ChargeID: "x", AmountCents: 100, Allocation: "SOMEHOW"}},
			},
			errMsg: "unknown allocation method",
		},
		{
			name: "percent discount above 100",
			in: purchasing.Input{
				Discounts: []purchasing.DiscountInput{{DiscountID: "d", Kind: domain.DiscountPercentage, Percent: decimal.NewFromInt(150)}},
			},
			errMsg: "percent must be between 0 and 100",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := purchasing.CalculateTotals(tt.in)
			assert.Error(t, err)
			assert.Contains(t, err.Error(), tt.errMsg)
		})
	}
}
