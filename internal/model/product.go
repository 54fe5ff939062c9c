package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product is the stock master record. SKU is the business key; stock is kept
// in the base unit, and AveragePrice/LastPrice are maintained by purchasing
// receipts (weighted average cost basis).
type Product struct {
	SKU          string  `gorm:"column:sku;primaryKey;size:20"`
	ProductName  string  `gorm:"size:120;not null;index"`
	Barcode      *string `gorm:"size:20;index"`
	CategoryID   *int64
	SupplierID   *int64
	CostPrice    decimal.Decimal `gorm:"type:decimal(12,2)"`
	Price        decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Remarks      string          `gorm:"type:text;not null;default:''"`
	Stock        int             `gorm:"not null;default:0"`
	Unit         string          `gorm:"size:10;not null;default:''"`
	LastPrice    decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	AveragePrice decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	CreatedAt    time.Time
	UpdatedAt    *time.Time
}

func (Product) TableName() string { return "products" }

// ProductUnit is an alternate packaging unit for a SKU: UnitValue converts one
// of this unit into base stocking units (e.g. DUS=10, KODI=20), Price is the
// wholesale price for that unit.
type ProductUnit struct {
	ID        int64   `gorm:"primaryKey;autoIncrement"`
	SKU       string  `gorm:"column:sku;size:20;not null;uniqueIndex:idx_units_sku_unit"`
	Barcode   *string `gorm:"size:20"`
	Unit      string  `gorm:"size:10;not null;uniqueIndex:idx_units_sku_unit"`
	UnitValue int     `gorm:"not null"`
	Price     decimal.Decimal `gorm:"type:decimal(12,2);not null"`
}

func (ProductUnit) TableName() string { return "units" }
