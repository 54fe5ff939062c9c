package service

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"warungpos/internal/apierror"
	"warungpos/internal/dto"
	"warungpos/internal/repository"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
)

type ReportService struct {
	transactions repository.TransactionRepository
	log          zerolog.Logger
}

func NewReportService(transactions repository.TransactionRepository, log zerolog.Logger) *ReportService {
	return &ReportService{
		transactions: transactions,
		log:          log.With().Str("component", "reports").Logger(),
	}
}

// SalesSummary aggregates completed sales over an inclusive day range.
func (s *ReportService) SalesSummary(ctx context.Context, start, end time.Time) (*dto.SalesSummaryResponse, error) {
	txns, err := s.transactions.List(ctx, start, end.AddDate(0, 0, 1), "")
	if err != nil {
		return nil, apierror.Storage("transaction list failed", err)
	}

	gross := decimal.Zero
	discount := decimal.Zero
	tax := decimal.Zero
	for _, t := range txns {
		gross = gross.Add(t.TotalAmount)
		discount = discount.Add(t.DiscountAmount)
		tax = tax.Add(t.TaxAmount)
	}
	return &dto.SalesSummaryResponse{
		StartDate:        start,
		EndDate:          end,
		TransactionCount: len(txns),
		GrossSales:       gross,
		TotalDiscount:    discount,
		TotalTax:         tax,
	}, nil
}

// ExportTransactionsXLSX renders the sales history for the range as a
// spreadsheet: one row per detail line, with the header fields repeated.
func (s *ReportService) ExportTransactionsXLSX(ctx context.Context, start, end time.Time) (*bytes.Buffer, error) {
	txns, err := s.transactions.List(ctx, start, end.AddDate(0, 0, 1), "")
	if err != nil {
		return nil, apierror.Storage("transaction list failed", err)
	}

	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Transactions"
	idx, err := f.NewSheet(sheet)
	if err != nil {
		return nil, apierror.Storage("spreadsheet creation failed", err)
	}
	f.SetActiveSheet(idx)
	f.DeleteSheet("Sheet1")

	headers := []string{
		"Transaction ID", "Date", "SKU", "Unit", "Qty", "Price",
		"Discount", "Subtotal", "Payment Method", "Total", "Tax",
	}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(sheet, cell, h); err != nil {
			return nil, apierror.Storage("spreadsheet write failed", err)
		}
	}

	row := 2
	for _, t := range txns {
		for _, d := range t.Details {
			values := []interface{}{
				t.TransactionID,
				t.CreatedAt.Format("2006-01-02 15:04:05"),
				d.SKU,
				d.Unit,
				d.Qty,
				d.Price.InexactFloat64(),
				d.Discount.InexactFloat64(),
				d.SubTotal.InexactFloat64(),
				t.PaymentMethod,
				t.TotalAmount.InexactFloat64(),
				t.TaxAmount.InexactFloat64(),
			}
			for i, v := range values {
				cell, _ := excelize.CoordinatesToCellName(i+1, row)
				if err := f.SetCellValue(sheet, cell, v); err != nil {
					return nil, apierror.Storage("spreadsheet write failed", err)
				}
			}
			row++
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, apierror.Storage("spreadsheet rendering failed", err)
	}
	s.log.Info().Int("rows", row-2).Msg("transactions exported")
	return buf, nil
}

// ExportFileName suggests a download name for the range.
func ExportFileName(start, end time.Time) string {
	return fmt.Sprintf("transactions_%s_%s.xlsx", start.Format("20060102"), end.Format("20060102"))
}
