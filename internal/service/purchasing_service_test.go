package service

import (
	"context"
	"strings"
	"testing"
	"time"

	"warungpos/internal/dto"
	"warungpos/internal/model"
	"warungpos/internal/repository"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newPurchasing(db *gorm.DB) *PurchasingService {
	return NewPurchasingService(
		repository.NewPurchasingRepository(db),
		repository.NewProductRepository(db),
		repository.NewUnitRepository(db),
		repository.NewSupplierRepository(db),
		nil,
		nopLogger(),
	)
}

func TestSubmitReceiptUpdatesCostBasis(t *testing.T) {
	db := newTestDB(t)
	seedProduct(t, db, "SKU001", 50, 1500, 1000)
	supplier := seedSupplier(t, db)
	svc := newPurchasing(db)

	resp, err := svc.Submit(context.Background(), dto.PurchasingSubmitRequest{
		SupplierID:         supplier.SupplierID,
		InvoiceNumber:      "INV-001",
		InvoiceDate:        "2026-08-30",
		InvoiceExpiredDate: "2026-09-30",
		Lines: []dto.PurchasingLineRequest{
			{SKU: "SKU001", Qty: 10, Price: decimal.NewFromInt(1200)},
		},
	}, 1)
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(resp.PurchasingID, "PO"+time.Now().Format("20060102")))
	assert.True(t, resp.TotalAmount.Equal(decimal.NewFromInt(12000)))

	var p model.Product
	require.NoError(t, db.Where("sku = ?", "SKU001").First(&p).Error)
	assert.Equal(t, 60, p.Stock)
	assert.True(t, p.LastPrice.Equal(decimal.NewFromInt(1200)))
	// (1000×50 + 1200×10) / 60 = 1033.33 → 1033
	assert.True(t, p.AveragePrice.Equal(decimal.NewFromInt(1033)), "got %s", p.AveragePrice)
}

func TestSubmitReceiptMergesDuplicateLines(t *testing.T) {
	db := newTestDB(t)
	seedProduct(t, db, "SKU001", 0, 1500, 0)
	supplier := seedSupplier(t, db)
	svc := newPurchasing(db)

	resp, err := svc.Submit(context.Background(), dto.PurchasingSubmitRequest{
		SupplierID:         supplier.SupplierID,
		InvoiceNumber:      "INV-002",
		InvoiceDate:        "2026-08-30",
		InvoiceExpiredDate: "2026-09-30",
		Lines: []dto.PurchasingLineRequest{
			{SKU: "SKU001", Qty: 5, Price: decimal.NewFromInt(1000)},
			{SKU: "SKU001", Qty: 7, Price: decimal.NewFromInt(1000)},
		},
	}, 1)
	require.NoError(t, err)

	require.Len(t, resp.Lines, 1, "duplicate lines must merge")
	assert.Equal(t, 12, resp.Lines[0].Qty)

	var p model.Product
	require.NoError(t, db.Where("sku = ?", "SKU001").First(&p).Error)
	assert.Equal(t, 12, p.Stock)
	// Receiving onto zero stock takes the line price as the new average.
	assert.True(t, p.AveragePrice.Equal(decimal.NewFromInt(1000)))
}

func TestSubmitReceiptDuplicateLinesKeepFirstDiscount(t *testing.T) {
	db := newTestDB(t)
	seedProduct(t, db, "SKU001", 0, 1500, 0)
	supplier := seedSupplier(t, db)
	svc := newPurchasing(db)

	resp, err := svc.Submit(context.Background(), dto.PurchasingSubmitRequest{
		SupplierID:         supplier.SupplierID,
		InvoiceNumber:      "INV-005",
		InvoiceDate:        "2026-08-30",
		InvoiceExpiredDate: "2026-09-30",
		Lines: []dto.PurchasingLineRequest{
			{SKU: "SKU001", Qty: 5, Price: decimal.NewFromInt(1000), DiscountPct: decimal.NewFromInt(10)},
			{SKU: "SKU001", Qty: 5, Price: decimal.NewFromInt(1000)},
		},
	}, 1)
	require.NoError(t, err)

	// The merge keeps the first line's discount; the stored pct must match
	// the subtotal it sits next to: 10×1000 − 10% = 9000.
	require.Len(t, resp.Lines, 1)
	assert.Equal(t, 10, resp.Lines[0].Qty)
	assert.True(t, resp.Lines[0].DiscountPct.Equal(decimal.NewFromInt(10)),
		"got pct %s", resp.Lines[0].DiscountPct)
	assert.True(t, resp.Lines[0].Subtotal.Equal(decimal.NewFromInt(9000)))
}

func TestSubmitReceiptWholesaleUnitConvertsToBase(t *testing.T) {
	db := newTestDB(t)
	seedProduct(t, db, "SKU001", 0, 1500, 0)
	seedUnit(t, db, "SKU001", "DUS", 40, 52000)
	supplier := seedSupplier(t, db)
	svc := newPurchasing(db)

	_, err := svc.Submit(context.Background(), dto.PurchasingSubmitRequest{
		SupplierID:         supplier.SupplierID,
		InvoiceNumber:      "INV-003",
		InvoiceDate:        "2026-08-30",
		InvoiceExpiredDate: "2026-09-30",
		Lines: []dto.PurchasingLineRequest{
			{SKU: "SKU001", Unit: "DUS", Qty: 2, Price: decimal.NewFromInt(40000)},
		},
	}, 1)
	require.NoError(t, err)

	var p model.Product
	require.NoError(t, db.Where("sku = ?", "SKU001").First(&p).Error)
	assert.Equal(t, 80, p.Stock)
	// Per-base price 40000/40 = 1000 becomes average and last price.
	assert.True(t, p.AveragePrice.Equal(decimal.NewFromInt(1000)))
	assert.True(t, p.LastPrice.Equal(decimal.NewFromInt(1000)))
}

func TestSubmitReceiptValidations(t *testing.T) {
	db := newTestDB(t)
	seedProduct(t, db, "SKU001", 10, 1500, 1000)
	supplier := seedSupplier(t, db)
	svc := newPurchasing(db)
	ctx := context.Background()

	base := dto.PurchasingSubmitRequest{
		SupplierID:         supplier.SupplierID,
		InvoiceNumber:      "INV-004",
		InvoiceDate:        "2026-08-30",
		InvoiceExpiredDate: "2026-09-30",
	}

	req := base
	req.Lines = []dto.PurchasingLineRequest{{SKU: "NOPE", Qty: 1, Price: decimal.NewFromInt(100)}}
	_, err := svc.Submit(ctx, req, 1)
	assert.Error(t, err, "unknown sku")

	req = base
	req.SupplierID = 9999
	req.Lines = []dto.PurchasingLineRequest{{SKU: "SKU001", Qty: 1, Price: decimal.NewFromInt(100)}}
	_, err = svc.Submit(ctx, req, 1)
	assert.Error(t, err, "unknown supplier")

	req = base
	req.Lines = []dto.PurchasingLineRequest{{
		SKU: "SKU001", Qty: 1, Price: decimal.NewFromInt(100),
		DiscountRp:  decimal.NewFromInt(10),
		DiscountPct: decimal.NewFromInt(5),
	}}
	_, err = svc.Submit(ctx, req, 1)
	assert.Error(t, err, "both discounts set")

	// Nothing was booked and stock is untouched.
	var n int64
	require.NoError(t, db.Model(&model.Purchasing{}).Count(&n).Error)
	assert.Zero(t, n)
	var p model.Product
	require.NoError(t, db.Where("sku = ?", "SKU001").First(&p).Error)
	assert.Equal(t, 10, p.Stock)
}

func TestReceiptHistoryBySKU(t *testing.T) {
	db := newTestDB(t)
	seedProduct(t, db, "SKU001", 0, 1500, 0)
	supplier := seedSupplier(t, db)
	svc := newPurchasing(db)
	ctx := context.Background()

	for _, price := range []int64{900, 1100} {
		_, err := svc.Submit(ctx, dto.PurchasingSubmitRequest{
			SupplierID:         supplier.SupplierID,
			InvoiceNumber:      "INV-H",
			InvoiceDate:        "2026-08-30",
			InvoiceExpiredDate: "2026-09-30",
			Lines: []dto.PurchasingLineRequest{
				{SKU: "SKU001", Qty: 1, Price: decimal.NewFromInt(price)},
			},
		}, 1)
		require.NoError(t, err)
	}

	history, err := svc.HistoryBySKU(ctx, "SKU001")
	require.NoError(t, err)
	require.Len(t, history, 2)
	// Newest first.
	assert.True(t, history[0].Price.Equal(decimal.NewFromInt(1100)))
}

func TestReceiptIDCountsUncommittedRows(t *testing.T) {
	db := newTestDB(t)
	supplier := seedSupplier(t, db)
	repo := repository.NewPurchasingRepository(db)
	now := time.Now()

	// The generator must see a header inserted earlier in the same open
	// transaction, otherwise two in-flight submits would derive the same id.
	require.NoError(t, db.Transaction(func(tx *gorm.DB) error {
		first, err := repo.NextIDTx(tx, now)
		require.NoError(t, err)
		require.NoError(t, tx.Omit("Details", "Supplier").Create(&model.Purchasing{
			PurchasingID:       first,
			SupplierID:         supplier.SupplierID,
			InvoiceDate:        now,
			InvoiceNumber:      "INV-SEQ",
			InvoiceExpiredDate: now,
			TotalAmount:        decimal.NewFromInt(1000),
			CreatedAt:          now,
		}).Error)

		second, err := repo.NextIDTx(tx, now)
		require.NoError(t, err)
		assert.NotEqual(t, first, second)
		assert.Equal(t, "PO"+now.Format("20060102")+"0002", second)
		return nil
	}))
}
