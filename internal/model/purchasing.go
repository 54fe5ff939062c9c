package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Purchasing is a goods-receipt header. PurchasingID is the business key in
// the form PO{yyyymmdd}{seq}.
type Purchasing struct {
	PurchasingID       string    `gorm:"primaryKey;size:20"`
	SupplierID         int64     `gorm:"not null"`
	InvoiceDate        time.Time `gorm:"not null"`
	InvoiceNumber      string    `gorm:"size:20;not null"`
	InvoiceExpiredDate time.Time `gorm:"not null"`
	TotalAmount        decimal.Decimal `gorm:"type:decimal(14,2);not null"`
	CreatedAt          time.Time
	PurchasingRemarks  string `gorm:"type:text;default:''"`

	Details  []PurchasingDetail `gorm:"foreignKey:PurchasingID;references:PurchasingID"`
	Supplier *Supplier          `gorm:"belongsTo;foreignKey:SupplierID;references:SupplierID"`
}

func (Purchasing) TableName() string { return "purchasing_history" }

type PurchasingDetail struct {
	ID           int64  `gorm:"primaryKey;autoIncrement"`
	PurchasingID string `gorm:"size:20;not null;index"`
	SKU          string `gorm:"column:sku;size:20;not null;index"`
	Unit         string `gorm:"size:10;not null"`
	UnitValue    int    `gorm:"not null;default:1"`
	Qty          int    `gorm:"not null"`
	Price        decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	DiscountRp   decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	DiscountPct  decimal.Decimal `gorm:"type:decimal(5,2);not null;default:0"`
	Subtotal     decimal.Decimal `gorm:"type:decimal(14,2);not null"`
}

func (PurchasingDetail) TableName() string { return "detail_purchasing_history" }
