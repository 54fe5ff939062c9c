// Package ledger implements the in-memory line-item ledger behind a sales
// cart or purchasing draft: the set of lines being entered for one document
// before submission. Lines are keyed by (sku, unit); adding a line whose key
// already exists merges quantities instead of duplicating rows. Totals are
// always re-derived by a full scan of the current lines, never maintained
// incrementally, so they cannot drift from the line state.
package ledger

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// ItemKey identifies a line: one SKU in one packaging unit. At most one line
// per key exists in a ledger at any time.
type ItemKey struct {
	SKU  string
	Unit string
}

func (k ItemKey) String() string { return k.SKU + "_" + k.Unit }

// Line is one ledger row. Subtotal is net of the line discount:
// price × qty − discount.
type Line struct {
	Key         ItemKey
	ProductName string
	// UnitValue converts one Key.Unit into base stocking units.
	UnitValue int
	Price     decimal.Decimal
	Qty       int
	Discount  Discount
	// DiscountRp is the resolved flat discount amount for the whole line,
	// derived from Discount via its mode.
	DiscountRp decimal.Decimal
	Subtotal   decimal.Decimal
}

// BaseQty is the line quantity expressed in base stocking units.
func (l *Line) BaseQty() int { return l.Qty * l.UnitValue }

func (l *Line) recompute() {
	l.DiscountRp = l.Discount.AmountFor(l.Price, l.Qty)
	l.Subtotal = l.Price.Mul(decimal.NewFromInt(int64(l.Qty))).Sub(l.DiscountRp)
}

// Ledger holds the ordered lines of one draft document plus the key index.
// It is not safe for concurrent use; callers serialize access.
type Ledger struct {
	lines []*Line
	index map[ItemKey]int
}

func New() *Ledger {
	return &Ledger{index: make(map[ItemKey]int)}
}

// Add inserts a line or merges it into the existing line with the same key.
// On merge the quantity is summed and the subtotal recomputed from the
// existing line's price and discount; the incoming price is ignored (the
// first entry wins, as the row identity fields are frozen once added).
// Returns the resulting line and whether a merge happened.
func (g *Ledger) Add(ln Line) (*Line, bool) {
	if idx, ok := g.index[ln.Key]; ok {
		existing := g.lines[idx]
		existing.Qty += ln.Qty
		existing.recompute()
		return existing, true
	}

	added := ln
	added.recompute()
	g.lines = append(g.lines, &added)
	g.index[added.Key] = len(g.lines) - 1
	return &added, false
}

// Get returns the line for key, or nil.
func (g *Ledger) Get(key ItemKey) *Line {
	idx, ok := g.index[key]
	if !ok {
		return nil
	}
	return g.lines[idx]
}

// Update overwrites quantity and discount of the line for key in place and
// recomputes its subtotal. Identity fields (sku, unit, price, name) are not
// touchable here, mirroring the edit flow where only qty/discount are mutable.
func (g *Ledger) Update(key ItemKey, qty int, d Discount) (*Line, error) {
	idx, ok := g.index[key]
	if !ok {
		return nil, fmt.Errorf("ledger: no line for %s", key)
	}
	ln := g.lines[idx]
	ln.Qty = qty
	ln.Discount = d.Normalize()
	ln.recompute()
	return ln, nil
}

// Remove deletes the line for key and drops its key from the index. Remaining
// lines keep their relative order; their index positions are rebuilt.
func (g *Ledger) Remove(key ItemKey) error {
	idx, ok := g.index[key]
	if !ok {
		return fmt.Errorf("ledger: no line for %s", key)
	}
	g.lines = append(g.lines[:idx], g.lines[idx+1:]...)
	delete(g.index, key)
	for i := idx; i < len(g.lines); i++ {
		g.index[g.lines[i].Key] = i
	}
	return nil
}

// Clear discards every line, as happens after a successful submit.
func (g *Ledger) Clear() {
	g.lines = nil
	g.index = make(map[ItemKey]int)
}

// Lines returns a snapshot copy of the current lines in entry order.
func (g *Ledger) Lines() []Line {
	out := make([]Line, len(g.lines))
	for i, ln := range g.lines {
		out[i] = *ln
	}
	return out
}

func (g *Ledger) Len() int { return len(g.lines) }

// Total re-derives the document total by scanning every line. O(n) per call;
// correctness over cleverness — the total is a pure function of line state.
func (g *Ledger) Total() decimal.Decimal {
	total := decimal.Zero
	for _, ln := range g.lines {
		total = total.Add(ln.Subtotal)
	}
	return total
}

// TotalDiscount is the full-scan sum of resolved line discounts.
func (g *Ledger) TotalDiscount() decimal.Decimal {
	total := decimal.Zero
	for _, ln := range g.lines {
		total = total.Add(ln.DiscountRp)
	}
	return total
}

// QueuedBaseQty sums the base-unit quantity already queued for sku across all
// lines, regardless of unit. Feeds the stock-after projection.
func (g *Ledger) QueuedBaseQty(sku string) int {
	total := 0
	for _, ln := range g.lines {
		if ln.Key.SKU == sku {
			total += ln.BaseQty()
		}
	}
	return total
}
