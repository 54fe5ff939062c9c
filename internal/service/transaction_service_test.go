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

func newTransactions(db *gorm.DB, carts *CartService) *TransactionService {
	return NewTransactionService(
		repository.NewTransactionRepository(db),
		repository.NewProductRepository(db),
		repository.NewCustomerRepository(db),
		carts,
		nil,
		nil,
		nopLogger(),
	)
}

func saleCart(t *testing.T, carts *CartService, items ...dto.AddItemRequest) string {
	t.Helper()
	cart, err := carts.Create(CartKindSale)
	require.NoError(t, err)
	for _, it := range items {
		_, err = carts.AddItem(context.Background(), cart.CartID, it)
		require.NoError(t, err)
	}
	return cart.CartID
}

func TestCheckoutDecrementsStockInBaseUnits(t *testing.T) {
	db := newTestDB(t)
	seedProduct(t, db, "SKU001", 100, 1500, 1000)
	seedUnit(t, db, "SKU001", "DUS", 40, 52000)
	carts := newCarts(db)
	svc := newTransactions(db, carts)

	cartID := saleCart(t, carts,
		dto.AddItemRequest{SKU: "SKU001", Qty: 3},
		dto.AddItemRequest{SKU: "SKU001", Unit: "DUS", Qty: 1},
	)

	resp, err := svc.Checkout(context.Background(), cartID, dto.CheckoutRequest{
		PaymentMethod: "cash",
		PaymentRp:     decimal.NewFromInt(60000),
	}, 1)
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(resp.TransactionID, "A"+time.Now().Format("20060102")))
	// 3×1500 + 1×52000 = 56500
	assert.True(t, resp.TotalAmount.Equal(decimal.NewFromInt(56500)))
	assert.True(t, resp.PaymentChange.Equal(decimal.NewFromInt(3500)))

	var p model.Product
	require.NoError(t, db.Where("sku = ?", "SKU001").First(&p).Error)
	assert.Equal(t, 57, p.Stock, "3 + 40 base units sold")

	// The cart is empty again but still open.
	cart, err := carts.Get(cartID)
	require.NoError(t, err)
	assert.Empty(t, cart.Items)
}

func TestCheckoutRejectsShortPayment(t *testing.T) {
	db := newTestDB(t)
	seedProduct(t, db, "SKU001", 10, 1500, 1000)
	carts := newCarts(db)
	svc := newTransactions(db, carts)

	cartID := saleCart(t, carts, dto.AddItemRequest{SKU: "SKU001", Qty: 2})

	_, err := svc.Checkout(context.Background(), cartID, dto.CheckoutRequest{
		PaymentMethod: "cash",
		PaymentRp:     decimal.NewFromInt(2999),
	}, 1)
	require.Error(t, err)

	// Nothing persisted, stock untouched, cart intact.
	var n int64
	require.NoError(t, db.Model(&model.Transaction{}).Count(&n).Error)
	assert.Zero(t, n)
	var p model.Product
	require.NoError(t, db.Where("sku = ?", "SKU001").First(&p).Error)
	assert.Equal(t, 10, p.Stock)
	cart, err := carts.Get(cartID)
	require.NoError(t, err)
	assert.Len(t, cart.Items, 1)
}

func TestCheckoutAllowsNegativeStock(t *testing.T) {
	db := newTestDB(t)
	seedProduct(t, db, "SKU001", 2, 1500, 1000)
	carts := newCarts(db)
	svc := newTransactions(db, carts)

	cartID := saleCart(t, carts, dto.AddItemRequest{SKU: "SKU001", Qty: 5})

	_, err := svc.Checkout(context.Background(), cartID, dto.CheckoutRequest{
		PaymentMethod: "cash",
		PaymentRp:     decimal.NewFromInt(7500),
	}, 1)
	require.NoError(t, err)

	var p model.Product
	require.NoError(t, db.Where("sku = ?", "SKU001").First(&p).Error)
	assert.Equal(t, -3, p.Stock)
}

func TestCheckoutRollsBackWhenStockUpdateFails(t *testing.T) {
	db := newTestDB(t)
	seedProduct(t, db, "SKU001", 10, 1500, 1000)
	seedProduct(t, db, "SKU002", 10, 4000, 3000)
	carts := newCarts(db)
	svc := newTransactions(db, carts)

	cartID := saleCart(t, carts,
		dto.AddItemRequest{SKU: "SKU001", Qty: 1},
		dto.AddItemRequest{SKU: "SKU002", Qty: 1},
	)

	// The second product disappears between cart entry and checkout; the
	// whole sale must roll back, including the first line's stock move.
	require.NoError(t, db.Where("sku = ?", "SKU002").Delete(&model.Product{}).Error)

	_, err := svc.Checkout(context.Background(), cartID, dto.CheckoutRequest{
		PaymentMethod: "cash",
		PaymentRp:     decimal.NewFromInt(10000),
	}, 1)
	require.Error(t, err)

	var n int64
	require.NoError(t, db.Model(&model.Transaction{}).Count(&n).Error)
	assert.Zero(t, n)
	require.NoError(t, db.Model(&model.TransactionDetail{}).Count(&n).Error)
	assert.Zero(t, n)
	var p model.Product
	require.NoError(t, db.Where("sku = ?", "SKU001").First(&p).Error)
	assert.Equal(t, 10, p.Stock)
}

func TestCheckoutTaxAndLoyalty(t *testing.T) {
	db := newTestDB(t)
	seedProduct(t, db, "SKU001", 100, 10000, 8000)
	customer := seedCustomer(t, db)
	carts := newCarts(db)
	svc := newTransactions(db, carts)

	cartID := saleCart(t, carts, dto.AddItemRequest{SKU: "SKU001", Qty: 3})

	resp, err := svc.Checkout(context.Background(), cartID, dto.CheckoutRequest{
		PaymentMethod: "cash",
		PaymentRp:     decimal.NewFromInt(50000),
		TaxPct:        decimal.NewFromInt(11),
		CustomerID:    &customer.CustomerID,
	}, 1)
	require.NoError(t, err)

	// 30000 + 11% = 33300
	assert.True(t, resp.TaxAmount.Equal(decimal.NewFromInt(3300)))
	assert.True(t, resp.TotalAmount.Equal(decimal.NewFromInt(33300)))

	var c model.Customer
	require.NoError(t, db.First(&c, customer.CustomerID).Error)
	assert.Equal(t, 1, c.NumberOfTransactions)
	assert.True(t, c.TransactionValue.Equal(decimal.NewFromInt(33300)))
	assert.Equal(t, 3, c.CustomerPoints, "one point per 10000 spent")
}

func TestSuspendAndResume(t *testing.T) {
	db := newTestDB(t)
	seedProduct(t, db, "SKU001", 10, 1500, 1000)
	carts := newCarts(db)
	svc := newTransactions(db, carts)
	ctx := context.Background()

	cartID := saleCart(t, carts, dto.AddItemRequest{SKU: "SKU001", Qty: 4})

	pending, err := svc.Suspend(ctx, cartID, dto.SuspendRequest{Remarks: "customer forgot wallet"}, 1)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(pending.TransactionID, "P"+time.Now().Format("20060102")))
	assert.True(t, pending.TotalAmount.Equal(decimal.NewFromInt(6000)))

	// Suspension does not move stock.
	var p model.Product
	require.NoError(t, db.Where("sku = ?", "SKU001").First(&p).Error)
	assert.Equal(t, 10, p.Stock)

	// The original cart is empty again.
	cart, err := carts.Get(cartID)
	require.NoError(t, err)
	assert.Empty(t, cart.Items)

	resumed, err := svc.Resume(ctx, pending.TransactionID, 1)
	require.NoError(t, err)
	require.Len(t, resumed.Items, 1)
	assert.Equal(t, 4, resumed.Items[0].Qty)
	assert.True(t, resumed.Total.Equal(decimal.NewFromInt(6000)))

	// Resuming again must fail: the pending record is consumed.
	_, err = svc.Resume(ctx, pending.TransactionID, 1)
	assert.Error(t, err)
	var n int64
	require.NoError(t, db.Model(&model.PendingTransaction{}).Count(&n).Error)
	assert.Zero(t, n)
	require.NoError(t, db.Model(&model.PendingTransactionDetail{}).Count(&n).Error)
	assert.Zero(t, n)
}

func TestTransactionIDsIncrementPerDay(t *testing.T) {
	db := newTestDB(t)
	seedProduct(t, db, "SKU001", 100, 1500, 1000)
	carts := newCarts(db)
	svc := newTransactions(db, carts)
	ctx := context.Background()

	var ids []string
	for i := 0; i < 2; i++ {
		cartID := saleCart(t, carts, dto.AddItemRequest{SKU: "SKU001", Qty: 1})
		resp, err := svc.Checkout(ctx, cartID, dto.CheckoutRequest{
			PaymentMethod: "cash",
			PaymentRp:     decimal.NewFromInt(1500),
		}, 1)
		require.NoError(t, err)
		ids = append(ids, resp.TransactionID)
	}

	day := time.Now().Format("20060102")
	assert.Equal(t, "A"+day+"0001", ids[0])
	assert.Equal(t, "A"+day+"0002", ids[1])
}

func TestSaleIDCountsUncommittedRows(t *testing.T) {
	db := newTestDB(t)
	repo := repository.NewTransactionRepository(db)
	now := time.Now()

	// The generator must see a header inserted earlier in the same open
	// transaction, otherwise two in-flight checkouts would derive the same id.
	require.NoError(t, db.Transaction(func(tx *gorm.DB) error {
		first, err := repo.NextIDTx(tx, now, false)
		require.NoError(t, err)
		require.NoError(t, tx.Omit("Details").Create(&model.Transaction{
			TransactionID: first,
			TotalAmount:   decimal.NewFromInt(1000),
			PaymentMethod: "cash",
			PaymentRp:     decimal.NewFromInt(1000),
			CreatedAt:     now,
		}).Error)

		second, err := repo.NextIDTx(tx, now, false)
		require.NoError(t, err)
		assert.NotEqual(t, first, second)
		assert.Equal(t, "A"+now.Format("20060102")+"0002", second)
		return nil
	}))
}
