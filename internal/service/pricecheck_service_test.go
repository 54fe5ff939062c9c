package service

import (
	"context"
	"testing"

	"warungpos/internal/repository"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Without a Redis client the service degrades to plain database lookups,
// which is also the cache-miss path.
func TestPriceLookupWithoutCache(t *testing.T) {
	db := newTestDB(t)
	p := seedProduct(t, db, "SKU001", 50, 52000, 40000)
	barcode := "8991002101"
	p.Barcode = &barcode
	require.NoError(t, db.Save(p).Error)

	svc := NewPriceCheckService(repository.NewProductRepository(db), nil, nopLogger())
	ctx := context.Background()

	resp, err := svc.Lookup(ctx, barcode)
	require.NoError(t, err)
	assert.Equal(t, "SKU001", resp.SKU)
	assert.True(t, resp.Price.Equal(decimal.NewFromInt(52000)))
	assert.Equal(t, "Rp. 52.000", resp.PriceLabel)

	// Formatted input is normalized to digits before lookup.
	resp, err = svc.Lookup(ctx, " 8991-002-101 ")
	require.NoError(t, err)
	assert.Equal(t, "SKU001", resp.SKU)

	_, err = svc.Lookup(ctx, "0000000000")
	assert.Error(t, err)
	_, err = svc.Lookup(ctx, "no-digits")
	assert.Error(t, err)
}
