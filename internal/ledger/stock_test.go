package ledger

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestProjectCountsQueuedAndTyped(t *testing.T) {
	g := New()
	g.Add(line("SKU001", "PCS", 1, 1500, 10))
	g.Add(line("SKU001", "DUS", 40, 52000, 1))

	// stock 100, queued 10+40, typing 2 more DUS (80 base)
	p := g.Project("SKU001", 100, 2, 40)
	assert.Equal(t, 100, p.CurrentStock)
	assert.Equal(t, 50, p.QueuedBase)
	assert.Equal(t, 80, p.TypedBase)
	assert.Equal(t, -30, p.After)
	assert.True(t, p.Negative)
}

func TestProjectNonNegative(t *testing.T) {
	g := New()
	p := g.Project("SKU001", 5, 5, 1)
	assert.Equal(t, 0, p.After)
	assert.False(t, p.Negative)
}

func TestUnitCacheUnitsFor(t *testing.T) {
	c := make(UnitCache)
	c.Put(ItemKey{SKU: "A", Unit: "PCS"}, UnitInfo{UnitValue: 1, Price: decimal.NewFromInt(100), Stock: 10})
	c.Put(ItemKey{SKU: "A", Unit: "DUS"}, UnitInfo{UnitValue: 40, Price: decimal.NewFromInt(3500), Stock: 10})
	c.Put(ItemKey{SKU: "B", Unit: "PCS"}, UnitInfo{UnitValue: 1, Price: decimal.NewFromInt(200), Stock: 4})

	assert.Len(t, c.UnitsFor("A"), 2)
	assert.Len(t, c.UnitsFor("B"), 1)
	assert.Empty(t, c.UnitsFor("C"))

	info, ok := c.Get(ItemKey{SKU: "A", Unit: "DUS"})
	assert.True(t, ok)
	assert.Equal(t, 40, info.UnitValue)
}

func TestWeightedAverageCost(t *testing.T) {
	tests := []struct {
		name     string
		oldAvg   int64
		oldStock int
		price    int64
		baseQty  int
		want     int64
	}{
		{"receipt onto existing stock", 1000, 50, 1200, 10, 1033},
		{"even division", 100, 3, 200, 3, 150},
		{"zero stock takes line price", 1000, 0, 1200, 0, 1200},
		{"negative stock takes line price", 1000, -5, 1200, 3, 1200},
		{"same price is stable", 500, 10, 500, 90, 500},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := WeightedAverageCost(
				decimal.NewFromInt(tt.oldAvg), tt.oldStock,
				decimal.NewFromInt(tt.price), tt.baseQty)
			assert.True(t, got.Equal(decimal.NewFromInt(tt.want)), "got %s want %d", got, tt.want)
		})
	}
}
