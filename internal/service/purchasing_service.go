package service

import (
	"context"
	"errors"
	"time"

	"warungpos/internal/apierror"
	"warungpos/internal/dto"
	"warungpos/internal/ledger"
	"warungpos/internal/model"
	"warungpos/internal/repository"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type PurchasingService struct {
	purchasing repository.PurchasingRepository
	products   repository.ProductRepository
	units      repository.UnitRepository
	suppliers  repository.SupplierRepository
	audits     AuditSink
	log        zerolog.Logger
}

func NewPurchasingService(
	purchasing repository.PurchasingRepository,
	products repository.ProductRepository,
	units repository.UnitRepository,
	suppliers repository.SupplierRepository,
	audits AuditSink,
	log zerolog.Logger,
) *PurchasingService {
	return &PurchasingService{
		purchasing: purchasing,
		products:   products,
		units:      units,
		suppliers:  suppliers,
		audits:     audits,
		log:        log.With().Str("component", "purchasing").Logger(),
	}
}

// Submit books a goods receipt: header, detail lines, and per-SKU cost
// updates (stock, last price, weighted average) in one transaction. Lines
// for the same (sku, unit) are merged before booking.
func (s *PurchasingService) Submit(ctx context.Context, req dto.PurchasingSubmitRequest, userID int64) (*dto.PurchasingResponse, error) {
	invoiceDate, err := parseDate(req.InvoiceDate)
	if err != nil {
		return nil, apierror.Validation("invoice_date must be YYYY-MM-DD")
	}
	expiredDate, err := parseDate(req.InvoiceExpiredDate)
	if err != nil {
		return nil, apierror.Validation("invoice_expired_date must be YYYY-MM-DD")
	}
	if _, err := s.suppliers.FindByID(ctx, req.SupplierID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierror.Validation("supplier does not exist")
		}
		return nil, apierror.Storage("supplier lookup failed", err)
	}

	lines, pcts, err := s.buildLines(ctx, req.Lines)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	var header *model.Purchasing
	err = s.purchasing.DB().WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// The id counts today's rows, so it must be derived inside the
		// transaction or two in-flight submits would collide on it.
		id, err := s.purchasing.NextIDTx(tx, now)
		if err != nil {
			return err
		}
		header = &model.Purchasing{
			PurchasingID:       id,
			SupplierID:         req.SupplierID,
			InvoiceDate:        invoiceDate,
			InvoiceNumber:      req.InvoiceNumber,
			InvoiceExpiredDate: expiredDate,
			TotalAmount:        lines.Total(),
			CreatedAt:          now,
			PurchasingRemarks:  req.Remarks,
		}
		if err := s.purchasing.CreateTx(tx, header); err != nil {
			return err
		}
		for _, ln := range lines.Lines() {
			discountRp := decimal.Zero
			if ln.Discount.Mode == ledger.DiscountFlat {
				discountRp = ln.DiscountRp
			}
			detail := &model.PurchasingDetail{
				PurchasingID: id,
				SKU:          ln.Key.SKU,
				Unit:         ln.Key.Unit,
				UnitValue:    ln.UnitValue,
				Qty:          ln.Qty,
				Price:        ln.Price,
				DiscountRp:   discountRp,
				DiscountPct:  pcts[ln.Key],
				Subtotal:     ln.Subtotal,
			}
			if err := s.purchasing.CreateDetailTx(tx, detail); err != nil {
				return err
			}

			p, err := s.products.FindBySKUTx(tx, ln.Key.SKU)
			if err != nil {
				return err
			}
			baseQty := ln.BaseQty()
			perBase := ln.Price
			if ln.UnitValue > 1 {
				perBase = ln.Price.Div(decimal.NewFromInt(int64(ln.UnitValue))).Floor()
			}
			newAvg := ledger.WeightedAverageCost(p.AveragePrice, p.Stock, perBase, baseQty)
			if err := s.products.ApplyReceiptTx(tx, ln.Key.SKU, baseQty, perBase, newAvg); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, apierror.Storage("receipt submission failed", err)
	}

	audit(ctx, s.audits, "purchasing_history", "goods receipt booked", LogCreate, nil, header, userID)
	s.log.Info().Str("purchasing_id", header.PurchasingID).Int("lines", lines.Len()).
		Str("total", header.TotalAmount.String()).Msg("goods receipt booked")

	return s.Get(ctx, header.PurchasingID)
}

// buildLines loads the referenced products, validates each line, and folds
// them through a ledger so duplicate (sku, unit) entries merge. Percent
// discounts are tracked per key for the stored detail rows.
func (s *PurchasingService) buildLines(ctx context.Context, reqs []dto.PurchasingLineRequest) (*ledger.Ledger, map[ledger.ItemKey]decimal.Decimal, error) {
	lines := ledger.New()
	pcts := make(map[ledger.ItemKey]decimal.Decimal)

	for _, lr := range reqs {
		if lr.DiscountRp.IsPositive() && lr.DiscountPct.IsPositive() {
			return nil, nil, apierror.Validation("a line may carry a rupiah or percent discount, not both")
		}
		if lr.DiscountRp.IsNegative() || lr.DiscountPct.IsNegative() {
			return nil, nil, apierror.Validation("discount cannot be negative")
		}
		if lr.Price.IsNegative() {
			return nil, nil, apierror.Validation("price cannot be negative")
		}

		p, err := s.products.FindBySKU(ctx, lr.SKU)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, nil, apierror.Validation("unknown sku: " + lr.SKU)
			}
			return nil, nil, apierror.Storage("product lookup failed", err)
		}

		unit := lr.Unit
		unitValue := 1
		if unit == "" {
			unit = p.Unit
		}
		if unit != p.Unit {
			u, err := s.units.FindBySKUAndUnit(ctx, lr.SKU, unit)
			if err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return nil, nil, apierror.Validation("unknown unit " + unit + " for sku " + lr.SKU)
				}
				return nil, nil, apierror.Storage("unit lookup failed", err)
			}
			unitValue = u.UnitValue
		}

		disc := ledger.Discount{Mode: ledger.DiscountNone}
		if lr.DiscountPct.IsPositive() {
			disc = ledger.Discount{Mode: ledger.DiscountPercent, Pct: lr.DiscountPct}
		} else if lr.DiscountRp.IsPositive() {
			disc = ledger.Discount{Mode: ledger.DiscountFlat, Flat: lr.DiscountRp}
		}

		key := ledger.ItemKey{SKU: lr.SKU, Unit: unit}
		lines.Add(ledger.Line{
			Key:         key,
			ProductName: p.ProductName,
			UnitValue:   unitValue,
			Price:       lr.Price,
			Qty:         lr.Qty,
			Discount:    disc,
		})
		// A merge keeps the first line's discount, so the recorded pct must
		// come from the first line too or it would disagree with the subtotal.
		if _, seen := pcts[key]; !seen {
			pcts[key] = lr.DiscountPct
		}
	}
	return lines, pcts, nil
}

// List returns receipt headers for an inclusive calendar-day range.
func (s *PurchasingService) List(ctx context.Context, start, end time.Time, search string) ([]dto.PurchasingResponse, error) {
	receipts, err := s.purchasing.List(ctx, start, end.AddDate(0, 0, 1), search)
	if err != nil {
		return nil, apierror.Storage("receipt list failed", err)
	}
	out := make([]dto.PurchasingResponse, 0, len(receipts))
	for i := range receipts {
		out = append(out, dto.FromPurchasing(&receipts[i]))
	}
	return out, nil
}

func (s *PurchasingService) Get(ctx context.Context, id string) (*dto.PurchasingResponse, error) {
	p, err := s.purchasing.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierror.NotFound("receipt not found")
		}
		return nil, apierror.Storage("receipt lookup failed", err)
	}
	resp := dto.FromPurchasing(p)
	return &resp, nil
}

// HistoryBySKU lists past receipt lines for one product, newest first. Feeds
// the price-history view when negotiating with suppliers.
func (s *PurchasingService) HistoryBySKU(ctx context.Context, sku string) ([]dto.PurchasingLineResponse, error) {
	if _, err := s.products.FindBySKU(ctx, sku); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierror.NotFound("product not found")
		}
		return nil, apierror.Storage("product lookup failed", err)
	}
	details, err := s.purchasing.DetailsBySKU(ctx, sku)
	if err != nil {
		return nil, apierror.Storage("receipt history failed", err)
	}
	out := make([]dto.PurchasingLineResponse, 0, len(details))
	for _, d := range details {
		out = append(out, dto.PurchasingLineResponse{
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
	return out, nil
}

func parseDate(s string) (time.Time, error) {
	return time.ParseInLocation("2006-01-02", s, time.Local)
}
