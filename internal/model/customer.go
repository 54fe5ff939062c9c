package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Customer carries loyalty counters updated by completed transactions.
type Customer struct {
	CustomerID           int64           `gorm:"primaryKey;autoIncrement"`
	CustomerName         string          `gorm:"size:50;not null"`
	CustomerPhone        string          `gorm:"size:20;not null;uniqueIndex"`
	CustomerPoints       int             `gorm:"not null;default:0"`
	NumberOfTransactions int             `gorm:"not null;default:0"`
	TransactionValue     decimal.Decimal `gorm:"type:decimal(14,2);not null;default:0"`
	CreatedAt            time.Time
	UpdatedAt            *time.Time
}

func (Customer) TableName() string { return "customers" }
