package ledger

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func line(sku, unit string, unitValue int, price int64, qty int) Line {
	return Line{
		Key:       ItemKey{SKU: sku, Unit: unit},
		UnitValue: unitValue,
		Price:     decimal.NewFromInt(price),
		Qty:       qty,
	}
}

func TestAddMergesSameKey(t *testing.T) {
	g := New()

	first, merged := g.Add(line("SKU001", "PCS", 1, 1500, 2))
	assert.False(t, merged)
	assert.Equal(t, 2, first.Qty)

	second, merged := g.Add(line("SKU001", "PCS", 1, 1500, 3))
	assert.True(t, merged)
	assert.Equal(t, 5, second.Qty)
	assert.Equal(t, 1, g.Len(), "merge must not create a second row")
	assert.True(t, second.Subtotal.Equal(decimal.NewFromInt(7500)))
}

func TestAddSameSKUDifferentUnitStaysSeparate(t *testing.T) {
	g := New()
	g.Add(line("SKU001", "PCS", 1, 1500, 2))
	g.Add(line("SKU001", "DUS", 40, 52000, 1))

	assert.Equal(t, 2, g.Len())
	assert.NotNil(t, g.Get(ItemKey{SKU: "SKU001", Unit: "PCS"}))
	assert.NotNil(t, g.Get(ItemKey{SKU: "SKU001", Unit: "DUS"}))
}

func TestMergeKeepsFirstPrice(t *testing.T) {
	g := New()
	g.Add(line("SKU001", "PCS", 1, 1500, 1))
	merged, _ := g.Add(line("SKU001", "PCS", 1, 9999, 1))

	assert.True(t, merged.Price.Equal(decimal.NewFromInt(1500)))
	assert.True(t, merged.Subtotal.Equal(decimal.NewFromInt(3000)))
}

func TestTotalIsFullScanOfLines(t *testing.T) {
	g := New()
	g.Add(line("A", "PCS", 1, 1000, 2))
	g.Add(line("B", "PCS", 1, 4000, 1))
	g.Add(line("C", "BTL", 1, 500, 4))

	assert.True(t, g.Total().Equal(decimal.NewFromInt(8000)))

	require.NoError(t, g.Remove(ItemKey{SKU: "B", Unit: "PCS"}))
	assert.True(t, g.Total().Equal(decimal.NewFromInt(4000)))
}

func TestRemoveRebuildsIndex(t *testing.T) {
	g := New()
	g.Add(line("A", "PCS", 1, 100, 1))
	g.Add(line("B", "PCS", 1, 200, 1))
	g.Add(line("C", "PCS", 1, 300, 1))

	require.NoError(t, g.Remove(ItemKey{SKU: "A", Unit: "PCS"}))

	// Later lines must still be addressable after reindexing.
	ln, err := g.Update(ItemKey{SKU: "C", Unit: "PCS"}, 5, Discount{})
	require.NoError(t, err)
	assert.Equal(t, 5, ln.Qty)
	assert.Equal(t, 2, g.Len())

	assert.Error(t, g.Remove(ItemKey{SKU: "A", Unit: "PCS"}))
}

func TestUpdateRecomputesSubtotal(t *testing.T) {
	g := New()
	g.Add(line("A", "PCS", 1, 1000, 1))

	ln, err := g.Update(ItemKey{SKU: "A", Unit: "PCS"}, 4,
		Discount{Mode: DiscountPercent, Pct: decimal.NewFromInt(10)})
	require.NoError(t, err)

	// 1000×4 = 4000, 10% = 400
	assert.True(t, ln.DiscountRp.Equal(decimal.NewFromInt(400)))
	assert.True(t, ln.Subtotal.Equal(decimal.NewFromInt(3600)))
}

func TestUpdateUnknownKey(t *testing.T) {
	g := New()
	_, err := g.Update(ItemKey{SKU: "nope", Unit: "PCS"}, 1, Discount{})
	assert.Error(t, err)
}

func TestClear(t *testing.T) {
	g := New()
	g.Add(line("A", "PCS", 1, 100, 1))
	g.Clear()

	assert.Equal(t, 0, g.Len())
	assert.True(t, g.Total().IsZero())
	_, merged := g.Add(line("A", "PCS", 1, 100, 1))
	assert.False(t, merged, "cleared ledger must not remember old keys")
}

func TestQueuedBaseQtySumsAcrossUnits(t *testing.T) {
	g := New()
	g.Add(line("SKU001", "PCS", 1, 1500, 3))
	g.Add(line("SKU001", "DUS", 40, 52000, 2))
	g.Add(line("SKU002", "PCS", 1, 4000, 7))

	assert.Equal(t, 83, g.QueuedBaseQty("SKU001"))
	assert.Equal(t, 7, g.QueuedBaseQty("SKU002"))
	assert.Equal(t, 0, g.QueuedBaseQty("SKU003"))
}

func TestTotalDiscount(t *testing.T) {
	g := New()
	g.Add(Line{
		Key: ItemKey{SKU: "A", Unit: "PCS"}, UnitValue: 1,
		Price: decimal.NewFromInt(1000), Qty: 2,
		Discount: Discount{Mode: DiscountFlat, Flat: decimal.NewFromInt(300)},
	})
	g.Add(Line{
		Key: ItemKey{SKU: "B", Unit: "PCS"}, UnitValue: 1,
		Price: decimal.NewFromInt(2000), Qty: 3,
		Discount: Discount{Mode: DiscountPerUnit, PerUnit: decimal.NewFromInt(100)},
	})

	assert.True(t, g.TotalDiscount().Equal(decimal.NewFromInt(600)))
	assert.True(t, g.Total().Equal(decimal.NewFromInt(7400)))
}
