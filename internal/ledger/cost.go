package ledger

import "github.com/shopspring/decimal"

// WeightedAverageCost applies the purchasing cost recurrence:
//
//	new_avg = (old_avg×old_stock + price×base_qty) / (old_stock + base_qty)
//
// truncated to a whole rupiah amount. When the denominator is not positive —
// receiving onto zero or negative stock — the line price becomes the new
// average instead of dividing by zero.
func WeightedAverageCost(oldAvg decimal.Decimal, oldStock int, price decimal.Decimal, baseQty int) decimal.Decimal {
	denom := oldStock + baseQty
	if denom <= 0 {
		return price
	}
	carried := oldAvg.Mul(decimal.NewFromInt(int64(oldStock)))
	incoming := price.Mul(decimal.NewFromInt(int64(baseQty)))
	return carried.Add(incoming).Div(decimal.NewFromInt(int64(denom))).Floor()
}
