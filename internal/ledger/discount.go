package ledger

import "github.com/shopspring/decimal"

// DiscountMode selects how a sales line discount is entered. The modes are
// mutually exclusive: normalizing a discount zeroes every field that does not
// belong to the active mode, matching the radio-button behavior where
// switching modes clears the other inputs.
type DiscountMode int

const (
	// DiscountNone — purchasing lines and undiscounted sales lines.
	DiscountNone DiscountMode = iota
	// DiscountPercent — percentage of the line subtotal.
	DiscountPercent
	// DiscountPerUnit — flat amount per unit, multiplied by quantity.
	DiscountPerUnit
	// DiscountFlat — flat amount for the whole line.
	DiscountFlat
)

type Discount struct {
	Mode    DiscountMode
	Pct     decimal.Decimal
	PerUnit decimal.Decimal
	Flat    decimal.Decimal
}

// Normalize zeroes the fields of the inactive modes.
func (d Discount) Normalize() Discount {
	out := Discount{Mode: d.Mode}
	switch d.Mode {
	case DiscountPercent:
		out.Pct = d.Pct
	case DiscountPerUnit:
		out.PerUnit = d.PerUnit
	case DiscountFlat:
		out.Flat = d.Flat
	}
	return out
}

// AmountFor resolves the discount to a flat rupiah amount for a line of qty
// units at the given price. Percent amounts truncate toward zero so resolved
// discounts are always whole rupiah.
func (d Discount) AmountFor(price decimal.Decimal, qty int) decimal.Decimal {
	q := decimal.NewFromInt(int64(qty))
	switch d.Mode {
	case DiscountPercent:
		return price.Mul(q).Mul(d.Pct).Div(decimal.NewFromInt(100)).Floor()
	case DiscountPerUnit:
		return d.PerUnit.Mul(q)
	case DiscountFlat:
		return d.Flat
	default:
		return decimal.Zero
	}
}
