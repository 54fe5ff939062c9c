package dto

import (
	"warungpos/internal/model"

	"github.com/shopspring/decimal"
)

type ProductRequest struct {
	SKU         string          `json:"sku" binding:"required,max=20"`
	ProductName string          `json:"product_name" binding:"required,max=120"`
	Barcode     *string         `json:"barcode,omitempty" binding:"omitempty,max=20"`
	CategoryID  *int64          `json:"category_id,omitempty"`
	SupplierID  *int64          `json:"supplier_id,omitempty"`
	CostPrice   decimal.Decimal `json:"cost_price"`
	Price       decimal.Decimal `json:"price" binding:"required"`
	Stock       int             `json:"stock"`
	Unit        string          `json:"unit" binding:"max=10"`
	Remarks     string          `json:"remarks"`
}

type ProductResponse struct {
	SKU          string          `json:"sku"`
	ProductName  string          `json:"product_name"`
	Barcode      *string         `json:"barcode,omitempty"`
	CategoryID   *int64          `json:"category_id,omitempty"`
	SupplierID   *int64          `json:"supplier_id,omitempty"`
	CostPrice    decimal.Decimal `json:"cost_price"`
	Price        decimal.Decimal `json:"price"`
	Stock        int             `json:"stock"`
	Unit         string          `json:"unit"`
	LastPrice    decimal.Decimal `json:"last_price"`
	AveragePrice decimal.Decimal `json:"average_price"`
	Remarks      string          `json:"remarks,omitempty"`
}

func FromProduct(p *model.Product) ProductResponse {
	return ProductResponse{
		SKU:          p.SKU,
		ProductName:  p.ProductName,
		Barcode:      p.Barcode,
		CategoryID:   p.CategoryID,
		SupplierID:   p.SupplierID,
		CostPrice:    p.CostPrice,
		Price:        p.Price,
		Stock:        p.Stock,
		Unit:         p.Unit,
		LastPrice:    p.LastPrice,
		AveragePrice: p.AveragePrice,
		Remarks:      p.Remarks,
	}
}

type UnitRequest struct {
	Unit      string          `json:"unit" binding:"required,max=10"`
	UnitValue int             `json:"unit_value" binding:"required,gt=0"`
	Price     decimal.Decimal `json:"price" binding:"required"`
	Barcode   *string         `json:"barcode,omitempty" binding:"omitempty,max=20"`
}

type UnitResponse struct {
	SKU       string          `json:"sku"`
	Unit      string          `json:"unit"`
	UnitValue int             `json:"unit_value"`
	Price     decimal.Decimal `json:"price"`
	Barcode   *string         `json:"barcode,omitempty"`
}

func FromUnit(u *model.ProductUnit) UnitResponse {
	return UnitResponse{
		SKU:       u.SKU,
		Unit:      u.Unit,
		UnitValue: u.UnitValue,
		Price:     u.Price,
		Barcode:   u.Barcode,
	}
}
