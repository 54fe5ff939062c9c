package ledger

import "github.com/shopspring/decimal"

// StockProjection is the stock-after-transaction preview for one SKU:
// current stock minus everything already queued in the ledger minus the
// quantity currently being typed (not yet added). A negative projection is
// flagged for display but never blocks submission — the system deliberately
// allows stock to go negative.
type StockProjection struct {
	CurrentStock int  `json:"current_stock"`
	QueuedBase   int  `json:"queued_base_qty"`
	TypedBase    int  `json:"typed_base_qty"`
	After        int  `json:"stock_after"`
	Negative     bool `json:"negative"`
}

// Project computes the stock-after value for typedQty units of unitValue base
// units each, on top of what the ledger already holds for sku.
func (g *Ledger) Project(sku string, currentStock, typedQty, unitValue int) StockProjection {
	queued := g.QueuedBaseQty(sku)
	typed := typedQty * unitValue
	after := currentStock - queued - typed
	return StockProjection{
		CurrentStock: currentStock,
		QueuedBase:   queued,
		TypedBase:    typed,
		After:        after,
		Negative:     after < 0,
	}
}

// UnitInfo is the cached lookup result for one (sku, unit): conversion factor,
// unit price, and base stock at fetch time. Populated when a product is
// selected so unit switches don't re-query the database.
type UnitInfo struct {
	UnitValue int
	Price     decimal.Decimal
	Stock     int
}

// UnitCache maps item keys to their unit details for one open draft.
type UnitCache map[ItemKey]UnitInfo

func (c UnitCache) Put(key ItemKey, info UnitInfo) { c[key] = info }

func (c UnitCache) Get(key ItemKey) (UnitInfo, bool) {
	info, ok := c[key]
	return info, ok
}

// UnitsFor lists the cached units for one SKU, used to show the wholesale
// price table when a product is selected.
func (c UnitCache) UnitsFor(sku string) []ItemKey {
	var keys []ItemKey
	for k := range c {
		if k.SKU == sku {
			keys = append(keys, k)
		}
	}
	return keys
}
