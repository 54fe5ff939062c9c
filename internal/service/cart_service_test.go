package service

import (
	"context"
	"testing"

	"warungpos/internal/dto"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCartAddItemMergesSameSKUAndUnit(t *testing.T) {
	db := newTestDB(t)
	seedProduct(t, db, "SKU001", 50, 1500, 1000)
	carts := newCarts(db)

	cart, err := carts.Create(CartKindSale)
	require.NoError(t, err)

	ctx := context.Background()
	_, err = carts.AddItem(ctx, cart.CartID, dto.AddItemRequest{SKU: "SKU001", Qty: 2})
	require.NoError(t, err)
	resp, err := carts.AddItem(ctx, cart.CartID, dto.AddItemRequest{SKU: "SKU001", Qty: 3})
	require.NoError(t, err)

	require.Len(t, resp.Items, 1)
	assert.Equal(t, 5, resp.Items[0].Qty)
	assert.True(t, resp.Total.Equal(decimal.NewFromInt(7500)))
}

func TestCartWholesaleUnitIsSeparateLine(t *testing.T) {
	db := newTestDB(t)
	seedProduct(t, db, "SKU001", 100, 1500, 1000)
	seedUnit(t, db, "SKU001", "DUS", 40, 52000)
	carts := newCarts(db)

	cart, err := carts.Create(CartKindSale)
	require.NoError(t, err)

	ctx := context.Background()
	_, err = carts.AddItem(ctx, cart.CartID, dto.AddItemRequest{SKU: "SKU001", Qty: 2})
	require.NoError(t, err)
	resp, err := carts.AddItem(ctx, cart.CartID, dto.AddItemRequest{SKU: "SKU001", Unit: "DUS", Qty: 1})
	require.NoError(t, err)

	require.Len(t, resp.Items, 2)
	assert.True(t, resp.Total.Equal(decimal.NewFromInt(55000)))

	// The wholesale line carries the unit price and conversion factor.
	dus := resp.Items[1]
	assert.Equal(t, "DUS", dus.Unit)
	assert.Equal(t, 40, dus.UnitValue)
	assert.True(t, dus.Price.Equal(decimal.NewFromInt(52000)))
}

func TestCartDiscountModesAreExclusive(t *testing.T) {
	db := newTestDB(t)
	seedProduct(t, db, "SKU001", 50, 1500, 1000)
	carts := newCarts(db)

	cart, err := carts.Create(CartKindSale)
	require.NoError(t, err)

	_, err = carts.AddItem(context.Background(), cart.CartID, dto.AddItemRequest{
		SKU: "SKU001", Qty: 1,
		DiscountPct:  decimal.NewFromInt(10),
		DiscountFlat: decimal.NewFromInt(100),
	})
	assert.Error(t, err)
}

func TestCartUpdateAndRemoveItem(t *testing.T) {
	db := newTestDB(t)
	seedProduct(t, db, "SKU001", 50, 1000, 800)
	carts := newCarts(db)

	cart, err := carts.Create(CartKindSale)
	require.NoError(t, err)
	_, err = carts.AddItem(context.Background(), cart.CartID, dto.AddItemRequest{SKU: "SKU001", Qty: 1})
	require.NoError(t, err)

	resp, err := carts.UpdateItem(cart.CartID, "SKU001", "PCS", dto.UpdateItemRequest{
		Qty:         4,
		DiscountPct: decimal.NewFromInt(25),
	})
	require.NoError(t, err)
	require.Len(t, resp.Items, 1)
	assert.True(t, resp.Items[0].Subtotal.Equal(decimal.NewFromInt(3000)))

	resp, err = carts.RemoveItem(cart.CartID, "SKU001", "PCS")
	require.NoError(t, err)
	assert.Empty(t, resp.Items)
	assert.True(t, resp.Total.IsZero())
}

func TestCartStockCheckFlagsNegative(t *testing.T) {
	db := newTestDB(t)
	seedProduct(t, db, "SKU001", 10, 1500, 1000)
	carts := newCarts(db)

	cart, err := carts.Create(CartKindSale)
	require.NoError(t, err)
	ctx := context.Background()
	_, err = carts.AddItem(ctx, cart.CartID, dto.AddItemRequest{SKU: "SKU001", Qty: 8})
	require.NoError(t, err)

	proj, err := carts.StockCheck(ctx, cart.CartID, dto.StockCheckRequest{SKU: "SKU001", Qty: 5})
	require.NoError(t, err)
	assert.Equal(t, -3, proj.After)
	assert.True(t, proj.Negative)
}

func TestCartAddByBarcode(t *testing.T) {
	db := newTestDB(t)
	p := seedProduct(t, db, "SKU001", 50, 1500, 1000)
	barcode := "8991002101"
	p.Barcode = &barcode
	require.NoError(t, db.Save(p).Error)
	carts := newCarts(db)

	cart, err := carts.Create(CartKindSale)
	require.NoError(t, err)
	resp, err := carts.AddItem(context.Background(), cart.CartID, dto.AddItemRequest{Barcode: barcode, Qty: 1})
	require.NoError(t, err)

	require.Len(t, resp.Items, 1)
	assert.Equal(t, "SKU001", resp.Items[0].SKU)
}

func TestCartUnknownIDAndKind(t *testing.T) {
	db := newTestDB(t)
	carts := newCarts(db)

	_, err := carts.Get("does-not-exist")
	assert.Error(t, err)

	_, err = carts.Create("weird")
	assert.Error(t, err)
}
