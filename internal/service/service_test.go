package service

import (
	"path/filepath"
	"testing"

	"warungpos/internal/infra"
	"warungpos/internal/model"
	"warungpos/internal/repository"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// newTestDB opens a throwaway SQLite file with the full schema migrated.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := infra.NewDatabase(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	return db
}

func nopLogger() zerolog.Logger { return zerolog.Nop() }

// seedProduct inserts a product with the given base stock and prices.
func seedProduct(t *testing.T, db *gorm.DB, sku string, stock int, price, avg int64) *model.Product {
	t.Helper()
	p := &model.Product{
		SKU:          sku,
		ProductName:  "Product " + sku,
		Price:        decimal.NewFromInt(price),
		Stock:        stock,
		Unit:         "PCS",
		AveragePrice: decimal.NewFromInt(avg),
		LastPrice:    decimal.NewFromInt(avg),
	}
	require.NoError(t, db.Create(p).Error)
	return p
}

func seedUnit(t *testing.T, db *gorm.DB, sku, unit string, unitValue int, price int64) *model.ProductUnit {
	t.Helper()
	u := &model.ProductUnit{
		SKU:       sku,
		Unit:      unit,
		UnitValue: unitValue,
		Price:     decimal.NewFromInt(price),
	}
	require.NoError(t, db.Create(u).Error)
	return u
}

func seedSupplier(t *testing.T, db *gorm.DB) *model.Supplier {
	t.Helper()
	s := &model.Supplier{SupplierName: "Test Supplier"}
	require.NoError(t, db.Create(s).Error)
	return s
}

func seedCustomer(t *testing.T, db *gorm.DB) *model.Customer {
	t.Helper()
	c := &model.Customer{CustomerName: "Test Customer", CustomerPhone: "0800000001"}
	require.NoError(t, db.Create(c).Error)
	return c
}

// newCarts builds a CartService over the test database.
func newCarts(db *gorm.DB) *CartService {
	return NewCartService(
		repository.NewProductRepository(db),
		repository.NewUnitRepository(db),
		nopLogger(),
	)
}
