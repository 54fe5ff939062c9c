package dto

import (
	"warungpos/internal/ledger"

	"github.com/shopspring/decimal"
)

// AddItemRequest adds a scanned or typed product to a cart. Exactly one of
// SKU or Barcode must be set; Unit selects a wholesale packaging unit and
// defaults to the product's base unit.
type AddItemRequest struct {
	SKU     string `json:"sku" binding:"omitempty,max=20"`
	Barcode string `json:"barcode" binding:"omitempty,max=20"`
	Unit    string `json:"unit" binding:"omitempty,max=10"`
	Qty     int    `json:"qty" binding:"required,gt=0"`

	DiscountPct  decimal.Decimal `json:"discount_pct"`
	DiscountUnit decimal.Decimal `json:"discount_unit"`
	DiscountFlat decimal.Decimal `json:"discount_flat"`
}

type UpdateItemRequest struct {
	Qty int `json:"qty" binding:"required,gt=0"`

	DiscountPct  decimal.Decimal `json:"discount_pct"`
	DiscountUnit decimal.Decimal `json:"discount_unit"`
	DiscountFlat decimal.Decimal `json:"discount_flat"`
}

type CartItemResponse struct {
	SKU         string          `json:"sku"`
	ProductName string          `json:"product_name"`
	Unit        string          `json:"unit"`
	UnitValue   int             `json:"unit_value"`
	Qty         int             `json:"qty"`
	Price       decimal.Decimal `json:"price"`
	Discount    decimal.Decimal `json:"discount"`
	Subtotal    decimal.Decimal `json:"subtotal"`

	Stock *ledger.StockProjection `json:"stock,omitempty"`
}

type CartResponse struct {
	CartID        string             `json:"cart_id"`
	Kind          string             `json:"kind"`
	Items         []CartItemResponse `json:"items"`
	Total         decimal.Decimal    `json:"total"`
	TotalDiscount decimal.Decimal    `json:"total_discount"`
}

// StockCheckRequest previews the stock-after projection for a quantity the
// cashier has typed but not yet committed to the cart.
type StockCheckRequest struct {
	SKU  string `json:"sku" binding:"required,max=20"`
	Unit string `json:"unit" binding:"omitempty,max=10"`
	Qty  int    `json:"qty" binding:"gte=0"`
}
