package format

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestNumber(t *testing.T) {
	assert.Equal(t, "0", Number(0))
	assert.Equal(t, "999", Number(999))
	assert.Equal(t, "1.000", Number(1000))
	assert.Equal(t, "1.234.567", Number(1234567))
	assert.Equal(t, "-1.234.567", Number(-1234567))
}

func TestRupiah(t *testing.T) {
	assert.Equal(t, "Rp. 52.000", Rupiah(decimal.NewFromInt(52000)))
	assert.Equal(t, "Rp. 1.500", Rupiah(decimal.NewFromFloat(1500.75)))
}

func TestDigits(t *testing.T) {
	assert.Equal(t, "1234567", Digits("1.234.567"))
	assert.Equal(t, "8991002101", Digits(" 8991002101\n"))
	assert.Equal(t, "", Digits("Rp. "))
}
