// Package format holds the display helpers used on receipts and report
// exports: Indonesian thousand separators (dots) and the Rp currency prefix.
package format

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Number renders n with '.' thousand separators, e.g. 1234567 -> "1.234.567".
// Negative values keep a leading minus sign.
func Number(n int64) string {
	neg := n < 0
	if neg {
		n = -n
	}
	s := decimal.NewFromInt(n).String()

	var b strings.Builder
	for i, r := range s {
		if i > 0 && (len(s)-i)%3 == 0 {
			b.WriteByte('.')
		}
		b.WriteRune(r)
	}
	if neg {
		return "-" + b.String()
	}
	return b.String()
}

// Rupiah renders a decimal amount as "Rp. 1.234.567". Fractions are dropped;
// rupiah amounts are whole numbers throughout the system.
func Rupiah(d decimal.Decimal) string {
	return "Rp. " + Number(d.IntPart())
}

// Digits strips every non-digit rune, the inverse of Number. Used when
// re-parsing formatted amounts from imports.
func Digits(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
