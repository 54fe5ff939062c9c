package service

import (
	"context"
	"testing"

	"warungpos/internal/dto"
	"warungpos/internal/repository"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// recordedInvalidations captures the barcodes whose cached prices were
// dropped.
type recordedInvalidations struct{ barcodes []string }

func (r *recordedInvalidations) Invalidate(_ context.Context, barcode string) {
	r.barcodes = append(r.barcodes, barcode)
}

func newProducts(db *gorm.DB, prices PriceCacheInvalidator) *ProductService {
	return NewProductService(
		repository.NewProductRepository(db),
		repository.NewUnitRepository(db),
		prices,
		nil,
		nopLogger(),
	)
}

func TestProductUpdateDropsCachedPrice(t *testing.T) {
	db := newTestDB(t)
	p := seedProduct(t, db, "SKU001", 10, 1500, 1000)
	oldBarcode := "8991002101"
	require.NoError(t, db.Model(p).Update("barcode", oldBarcode).Error)

	rec := &recordedInvalidations{}
	svc := newProducts(db, rec)

	newBarcode := "8991002102"
	_, err := svc.Update(context.Background(), "SKU001", dto.ProductRequest{
		SKU:         "SKU001",
		ProductName: "Product SKU001",
		Barcode:     &newBarcode,
		Price:       decimal.NewFromInt(1600),
		Stock:       10,
		Unit:        "PCS",
	}, 1)
	require.NoError(t, err)

	// Both the old and the new barcode can have stale cache entries.
	assert.ElementsMatch(t, []string{oldBarcode, newBarcode}, rec.barcodes)
}

func TestProductDeleteDropsCachedPrice(t *testing.T) {
	db := newTestDB(t)
	p := seedProduct(t, db, "SKU001", 10, 1500, 1000)
	barcode := "8991002101"
	require.NoError(t, db.Model(p).Update("barcode", barcode).Error)

	rec := &recordedInvalidations{}
	svc := newProducts(db, rec)

	require.NoError(t, svc.Delete(context.Background(), "SKU001", 1))
	assert.Equal(t, []string{barcode}, rec.barcodes)
}
