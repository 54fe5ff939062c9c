package ledger

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestNormalizeZeroesInactiveModes(t *testing.T) {
	d := Discount{
		Mode:    DiscountPercent,
		Pct:     decimal.NewFromInt(10),
		PerUnit: decimal.NewFromInt(500),
		Flat:    decimal.NewFromInt(1000),
	}
	n := d.Normalize()

	assert.Equal(t, DiscountPercent, n.Mode)
	assert.True(t, n.Pct.Equal(decimal.NewFromInt(10)))
	assert.True(t, n.PerUnit.IsZero())
	assert.True(t, n.Flat.IsZero())
}

func TestAmountForPercentTruncates(t *testing.T) {
	// 333 × 3 × 7% = 69.93 → 69
	d := Discount{Mode: DiscountPercent, Pct: decimal.NewFromInt(7)}
	got := d.AmountFor(decimal.NewFromInt(333), 3)
	assert.True(t, got.Equal(decimal.NewFromInt(69)), "got %s", got)
}

func TestAmountForPerUnitScalesWithQty(t *testing.T) {
	d := Discount{Mode: DiscountPerUnit, PerUnit: decimal.NewFromInt(250)}
	assert.True(t, d.AmountFor(decimal.NewFromInt(5000), 4).Equal(decimal.NewFromInt(1000)))
}

func TestAmountForFlatIgnoresQty(t *testing.T) {
	d := Discount{Mode: DiscountFlat, Flat: decimal.NewFromInt(700)}
	assert.True(t, d.AmountFor(decimal.NewFromInt(5000), 9).Equal(decimal.NewFromInt(700)))
}

func TestAmountForNone(t *testing.T) {
	assert.True(t, Discount{}.AmountFor(decimal.NewFromInt(5000), 9).IsZero())
}
