package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// DateRangeQuery is the common query-string filter for history and report
// endpoints; dates are inclusive calendar days (YYYY-MM-DD).
type DateRangeQuery struct {
	StartDate string `form:"start_date"`
	EndDate   string `form:"end_date"`
	Search    string `form:"search"`
}

type SalesSummaryResponse struct {
	StartDate        time.Time       `json:"start_date"`
	EndDate          time.Time       `json:"end_date"`
	TransactionCount int             `json:"transaction_count"`
	GrossSales       decimal.Decimal `json:"gross_sales"`
	TotalDiscount    decimal.Decimal `json:"total_discount"`
	TotalTax         decimal.Decimal `json:"total_tax"`
}

type PriceCheckResponse struct {
	SKU         string          `json:"sku"`
	ProductName string          `json:"product_name"`
	Unit        string          `json:"unit"`
	Price       decimal.Decimal `json:"price"`
	PriceLabel  string          `json:"price_label"`
}

type LogResponse struct {
	LogID          int64     `json:"log_id"`
	LogName        string    `json:"log_name"`
	LogDescription string    `json:"log_description,omitempty"`
	LogType        string    `json:"log_type"`
	OldData        string    `json:"old_data,omitempty"`
	NewData        string    `json:"new_data,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
	CreatedBy      int64     `json:"created_by"`
}
