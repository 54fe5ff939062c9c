package dto

import (
	"time"

	"warungpos/internal/model"

	"github.com/shopspring/decimal"
)

type CheckoutRequest struct {
	PaymentMethod string          `json:"payment_method" binding:"required,oneof=cash card qris transfer"`
	PaymentRp     decimal.Decimal `json:"payment_rp" binding:"required"`
	TaxPct        decimal.Decimal `json:"tax_pct"`
	CustomerID    *int64          `json:"customer_id,omitempty"`
	Remarks       string          `json:"remarks"`
	ReceiptEmail  string          `json:"receipt_email" binding:"omitempty,email"`
}

type SuspendRequest struct {
	Remarks string `json:"remarks"`
}

type TransactionLineResponse struct {
	SKU       string          `json:"sku"`
	Unit      string          `json:"unit"`
	UnitValue int             `json:"unit_value"`
	Qty       int             `json:"qty"`
	Price     decimal.Decimal `json:"price"`
	Discount  decimal.Decimal `json:"discount"`
	SubTotal  decimal.Decimal `json:"sub_total"`
}

type TransactionResponse struct {
	TransactionID  string          `json:"transaction_id"`
	TotalAmount    decimal.Decimal `json:"total_amount"`
	DiscountAmount decimal.Decimal `json:"discount_amount"`
	TaxAmount      decimal.Decimal `json:"tax_amount"`
	PaymentMethod  string          `json:"payment_method"`
	PaymentRp      decimal.Decimal `json:"payment_rp"`
	PaymentChange  decimal.Decimal `json:"payment_change"`
	CustomerID     *int64          `json:"customer_id,omitempty"`
	CreatedAt      time.Time       `json:"created_at"`
	Remarks        string          `json:"remarks,omitempty"`

	Lines []TransactionLineResponse `json:"lines,omitempty"`
}

func FromTransaction(t *model.Transaction) TransactionResponse {
	resp := TransactionResponse{
		TransactionID:  t.TransactionID,
		TotalAmount:    t.TotalAmount,
		DiscountAmount: t.DiscountAmount,
		TaxAmount:      t.TaxAmount,
		PaymentMethod:  t.PaymentMethod,
		PaymentRp:      t.PaymentRp,
		PaymentChange:  t.PaymentChange,
		CustomerID:     t.CustomerID,
		CreatedAt:      t.CreatedAt,
		Remarks:        t.PaymentRemarks,
	}
	for _, d := range t.Details {
		resp.Lines = append(resp.Lines, TransactionLineResponse{
			SKU:       d.SKU,
			Unit:      d.Unit,
			UnitValue: d.UnitValue,
			Qty:       d.Qty,
			Price:     d.Price,
			Discount:  d.Discount,
			SubTotal:  d.SubTotal,
		})
	}
	return resp
}

type PendingTransactionResponse struct {
	TransactionID  string          `json:"transaction_id"`
	TotalAmount    decimal.Decimal `json:"total_amount"`
	DiscountAmount decimal.Decimal `json:"discount_amount"`
	CreatedAt      time.Time       `json:"created_at"`
	Remarks        string          `json:"remarks,omitempty"`
	ItemCount      int             `json:"item_count"`
}
