package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Transaction is a completed sale. TransactionID is the business key in the
// form A{yyyymmdd}{seq}; pending (suspended) sales use the P prefix and live
// in the pending tables until resumed.
type Transaction struct {
	TransactionID  string          `gorm:"primaryKey;size:20"`
	TotalAmount    decimal.Decimal `gorm:"type:decimal(14,2);not null"`
	PaymentMethod  string          `gorm:"size:10;not null"`
	PaymentRp      decimal.Decimal `gorm:"type:decimal(14,2);not null"`
	PaymentChange  decimal.Decimal `gorm:"type:decimal(14,2);not null"`
	DiscountAmount decimal.Decimal `gorm:"type:decimal(14,2);not null;default:0"`
	TaxAmount      decimal.Decimal `gorm:"type:decimal(14,2);not null;default:0"`
	CustomerID     *int64
	CreatedAt      time.Time
	PaymentRemarks string `gorm:"type:text;default:''"`

	Details []TransactionDetail `gorm:"foreignKey:TransactionID;references:TransactionID"`
}

func (Transaction) TableName() string { return "transactions" }

type TransactionDetail struct {
	ID            int64  `gorm:"primaryKey;autoIncrement"`
	TransactionID string `gorm:"size:20;not null;index"`
	SKU           string `gorm:"column:sku;size:20;not null;index"`
	Unit          string `gorm:"size:10;not null"`
	UnitValue     int    `gorm:"not null;default:1"`
	Qty           int    `gorm:"not null"`
	Price         decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Discount      decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	SubTotal      decimal.Decimal `gorm:"column:sub_total;type:decimal(14,2);not null"`
}

func (TransactionDetail) TableName() string { return "detail_transactions" }

type PendingTransaction struct {
	TransactionID  string          `gorm:"primaryKey;size:20"`
	TotalAmount    decimal.Decimal `gorm:"type:decimal(14,2);not null"`
	DiscountAmount decimal.Decimal `gorm:"type:decimal(14,2);not null;default:0"`
	CreatedAt      time.Time
	PaymentRemarks string `gorm:"type:text;default:''"`

	Details []PendingTransactionDetail `gorm:"foreignKey:TransactionID;references:TransactionID"`
}

func (PendingTransaction) TableName() string { return "pending_transactions" }

type PendingTransactionDetail struct {
	ID            int64  `gorm:"primaryKey;autoIncrement"`
	TransactionID string `gorm:"size:20;not null;index"`
	SKU           string `gorm:"column:sku;size:20;not null"`
	Unit          string `gorm:"size:10;not null"`
	UnitValue     int    `gorm:"not null;default:1"`
	Qty           int    `gorm:"not null"`
	Price         decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Discount      decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	SubTotal      decimal.Decimal `gorm:"column:sub_total;type:decimal(14,2);not null"`
}

func (PendingTransactionDetail) TableName() string { return "pending_detail_transactions" }
