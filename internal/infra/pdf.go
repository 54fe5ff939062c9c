package infra

// pdf.go — receipt generation using go-pdf/fpdf. Renders a thermal-paper
// style slip: store header, transaction id and timestamp, item table with
// per-line discounts, totals, payment and change.

import (
	"fmt"
	"os"
	"path/filepath"

	"warungpos/internal/format"
	"warungpos/internal/model"

	"github.com/go-pdf/fpdf"
)

// GenerateReceiptPDF writes the receipt for a completed transaction and
// returns the absolute path of the generated file. storagePath is created if
// needed.
func GenerateReceiptPDF(txn *model.Transaction, names map[string]string, storeName, storagePath string) (string, error) {
	if err := os.MkdirAll(storagePath, 0o755); err != nil {
		return "", fmt.Errorf("pdf: create storage dir: %w", err)
	}

	fileName := fmt.Sprintf("receipt_%s.pdf", txn.TransactionID)
	filePath := filepath.Join(storagePath, fileName)

	// 74mm wide — close to 80mm thermal receipt paper
	pdf := fpdf.NewCustom(&fpdf.InitType{
		OrientationStr: "P",
		UnitStr:        "mm",
		Size:           fpdf.SizeType{Wd: 74, Ht: 160},
	})
	pdf.SetMargins(4, 4, 4)
	pdf.AddPage()

	pageW, _ := pdf.GetPageSize()
	contentW := pageW - 8

	pdf.SetFont("Helvetica", "B", 13)
	pdf.CellFormat(contentW, 7, storeName, "", 1, "C", false, 0, "")

	pdf.SetFont("Helvetica", "", 8)
	pdf.CellFormat(contentW, 5, "Sales Receipt", "", 1, "C", false, 0, "")
	pdf.Ln(2)

	pdf.SetFont("Helvetica", "B", 8)
	pdf.CellFormat(contentW, 5, txn.TransactionID, "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 7)
	pdf.CellFormat(contentW, 4, txn.CreatedAt.Format("02/01/2006  15:04"), "", 1, "L", false, 0, "")
	pdf.Ln(2)

	pdf.Line(4, pdf.GetY(), pageW-4, pdf.GetY())
	pdf.Ln(2)

	col1 := contentW * 0.46 // product
	col2 := contentW * 0.20 // qty x unit
	col3 := contentW * 0.34 // subtotal

	pdf.SetFont("Helvetica", "B", 7)
	pdf.CellFormat(col1, 5, "Product", "B", 0, "L", false, 0, "")
	pdf.CellFormat(col2, 5, "Qty", "B", 0, "C", false, 0, "")
	pdf.CellFormat(col3, 5, "Subtotal", "B", 1, "R", false, 0, "")

	pdf.SetFont("Helvetica", "", 7)
	for _, d := range txn.Details {
		name := names[d.SKU]
		if name == "" {
			name = d.SKU
		}
		if len(name) > 20 {
			name = name[:19] + "~"
		}
		pdf.CellFormat(col1, 5, name, "", 0, "L", false, 0, "")
		pdf.CellFormat(col2, 5, fmt.Sprintf("%dx%s", d.Qty, d.Unit), "", 0, "C", false, 0, "")
		pdf.CellFormat(col3, 5, format.Rupiah(d.SubTotal), "", 1, "R", false, 0, "")
	}

	pdf.Ln(2)
	pdf.Line(4, pdf.GetY(), pageW-4, pdf.GetY())
	pdf.Ln(2)

	pdf.SetFont("Helvetica", "", 7)
	if !txn.DiscountAmount.IsZero() {
		pdf.CellFormat(col1+col2, 5, "Discount:", "", 0, "L", false, 0, "")
		pdf.CellFormat(col3, 5, "-"+format.Rupiah(txn.DiscountAmount), "", 1, "R", false, 0, "")
	}
	if !txn.TaxAmount.IsZero() {
		pdf.CellFormat(col1+col2, 5, "Tax:", "", 0, "L", false, 0, "")
		pdf.CellFormat(col3, 5, format.Rupiah(txn.TaxAmount), "", 1, "R", false, 0, "")
	}

	pdf.SetFont("Helvetica", "B", 9)
	pdf.CellFormat(col1+col2, 6, "TOTAL:", "", 0, "L", false, 0, "")
	pdf.CellFormat(col3, 6, format.Rupiah(txn.TotalAmount), "", 1, "R", false, 0, "")

	pdf.Ln(2)
	pdf.SetFont("Helvetica", "", 7)
	pdf.CellFormat(col1+col2, 4, "Paid ("+txn.PaymentMethod+"):", "", 0, "L", false, 0, "")
	pdf.CellFormat(col3, 4, format.Rupiah(txn.PaymentRp), "", 1, "R", false, 0, "")
	pdf.CellFormat(col1+col2, 4, "Change:", "", 0, "L", false, 0, "")
	pdf.CellFormat(col3, 4, format.Rupiah(txn.PaymentChange.Abs()), "", 1, "R", false, 0, "")

	pdf.Ln(3)
	pdf.SetFont("Helvetica", "I", 7)
	pdf.CellFormat(contentW, 4, "Thank you for shopping with us!", "", 1, "C", false, 0, "")

	if err := pdf.OutputFileAndClose(filePath); err != nil {
		return "", fmt.Errorf("pdf: write file: %w", err)
	}

	return filePath, nil
}
