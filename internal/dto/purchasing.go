package dto

import (
	"time"

	"warungpos/internal/model"

	"github.com/shopspring/decimal"
)

type PurchasingLineRequest struct {
	SKU  string `json:"sku" binding:"required,max=20"`
	Unit string `json:"unit" binding:"omitempty,max=10"`
	Qty  int    `json:"qty" binding:"required,gt=0"`

	Price       decimal.Decimal `json:"price" binding:"required"`
	DiscountRp  decimal.Decimal `json:"discount_rp"`
	DiscountPct decimal.Decimal `json:"discount_pct"`
}

type PurchasingSubmitRequest struct {
	SupplierID         int64  `json:"supplier_id" binding:"required"`
	InvoiceNumber      string `json:"invoice_number" binding:"required,max=20"`
	InvoiceDate        string `json:"invoice_date" binding:"required"`
	InvoiceExpiredDate string `json:"invoice_expired_date" binding:"required"`
	Remarks            string `json:"remarks"`

	Lines []PurchasingLineRequest `json:"lines" binding:"required,min=1,dive"`
}

type PurchasingLineResponse struct {
	SKU         string          `json:"sku"`
	Unit        string          `json:"unit"`
	UnitValue   int             `json:"unit_value"`
	Qty         int             `json:"qty"`
	Price       decimal.Decimal `json:"price"`
	DiscountRp  decimal.Decimal `json:"discount_rp"`
	DiscountPct decimal.Decimal `json:"discount_pct"`
	Subtotal    decimal.Decimal `json:"subtotal"`
}

type PurchasingResponse struct {
	PurchasingID       string          `json:"purchasing_id"`
	SupplierID         int64           `json:"supplier_id"`
	SupplierName       string          `json:"supplier_name,omitempty"`
	InvoiceNumber      string          `json:"invoice_number"`
	InvoiceDate        time.Time       `json:"invoice_date"`
	InvoiceExpiredDate time.Time       `json:"invoice_expired_date"`
	TotalAmount        decimal.Decimal `json:"total_amount"`
	CreatedAt          time.Time       `json:"created_at"`
	Remarks            string          `json:"remarks,omitempty"`

	Lines []PurchasingLineResponse `json:"lines,omitempty"`
}

func FromPurchasing(p *model.Purchasing) PurchasingResponse {
	resp := PurchasingResponse{
		PurchasingID:       p.PurchasingID,
		SupplierID:         p.SupplierID,
		InvoiceNumber:      p.InvoiceNumber,
		InvoiceDate:        p.InvoiceDate,
		InvoiceExpiredDate: p.InvoiceExpiredDate,
		TotalAmount:        p.TotalAmount,
		CreatedAt:          p.CreatedAt,
		Remarks:            p.PurchasingRemarks,
	}
	if p.Supplier != nil {
		resp.SupplierName = p.Supplier.SupplierName
	}
	for _, d := range p.Details {
		resp.Lines = append(resp.Lines, PurchasingLineResponse{
			SKU:         d.SKU,
			Unit:        d.Unit,
			UnitValue:   d.UnitValue,
			Qty:         d.Qty,
			Price:       d.Price,
			DiscountRp:  d.DiscountRp,
			DiscountPct: d.DiscountPct,
			Subtotal:    d.Subtotal,
		})
	}
	return resp
}
