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

// ReceiptSink receives receipt-delivery jobs (PDF render + email) for
// asynchronous processing after a checkout commits.
type ReceiptSink interface {
	EnqueueReceipt(ctx context.Context, transactionID, email string) error
}

// loyaltyPointDivisor converts a sale total into points: one point per ten
// thousand rupiah spent, truncated.
var loyaltyPointDivisor = decimal.NewFromInt(10000)

type TransactionService struct {
	transactions repository.TransactionRepository
	products     repository.ProductRepository
	customers    repository.CustomerRepository
	carts        *CartService
	receipts     ReceiptSink
	audits       AuditSink
	log          zerolog.Logger
}

func NewTransactionService(
	transactions repository.TransactionRepository,
	products repository.ProductRepository,
	customers repository.CustomerRepository,
	carts *CartService,
	receipts ReceiptSink,
	audits AuditSink,
	log zerolog.Logger,
) *TransactionService {
	return &TransactionService{
		transactions: transactions,
		products:     products,
		customers:    customers,
		carts:        carts,
		receipts:     receipts,
		audits:       audits,
		log:          log.With().Str("component", "transactions").Logger(),
	}
}

// Checkout finalizes a sale cart: validates payment against the grand total,
// persists header and lines, decrements stock in base units, and bumps the
// customer's loyalty counters — all in one transaction. Stock may go
// negative; a short register should never block a sale.
func (s *TransactionService) Checkout(ctx context.Context, cartID string, req dto.CheckoutRequest, userID int64) (*dto.TransactionResponse, error) {
	_, lines, err := s.carts.takeLines(cartID, CartKindSale)
	if err != nil {
		return nil, err
	}

	if req.TaxPct.IsNegative() {
		return nil, apierror.Validation("tax_pct cannot be negative")
	}
	if req.CustomerID != nil {
		if _, err := s.customers.FindByID(ctx, *req.CustomerID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, apierror.Validation("customer does not exist")
			}
			return nil, apierror.Storage("customer lookup failed", err)
		}
	}

	total := decimal.Zero
	totalDiscount := decimal.Zero
	for _, ln := range lines {
		total = total.Add(ln.Subtotal)
		totalDiscount = totalDiscount.Add(ln.DiscountRp)
	}
	tax := total.Mul(req.TaxPct).Div(decimal.NewFromInt(100)).Floor()
	grandTotal := total.Add(tax)

	if req.PaymentRp.LessThan(grandTotal) {
		return nil, apierror.Validation("payment is less than the amount due")
	}
	change := req.PaymentRp.Sub(grandTotal)

	now := time.Now()
	var header *model.Transaction
	err = s.transactions.DB().WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// The id counts today's rows, so it must be derived inside the
		// transaction or two in-flight checkouts would collide on it.
		id, err := s.transactions.NextIDTx(tx, now, false)
		if err != nil {
			return err
		}
		header = &model.Transaction{
			TransactionID:  id,
			TotalAmount:    grandTotal,
			PaymentMethod:  req.PaymentMethod,
			PaymentRp:      req.PaymentRp,
			PaymentChange:  change,
			DiscountAmount: totalDiscount,
			TaxAmount:      tax,
			CustomerID:     req.CustomerID,
			CreatedAt:      now,
			PaymentRemarks: req.Remarks,
		}
		if err := s.transactions.CreateTx(tx, header); err != nil {
			return err
		}
		for _, ln := range lines {
			detail := &model.TransactionDetail{
				TransactionID: id,
				SKU:           ln.Key.SKU,
				Unit:          ln.Key.Unit,
				UnitValue:     ln.UnitValue,
				Qty:           ln.Qty,
				Price:         ln.Price,
				Discount:      ln.DiscountRp,
				SubTotal:      ln.Subtotal,
			}
			if err := s.transactions.CreateDetailTx(tx, detail); err != nil {
				return err
			}
			if err := s.products.AddStockTx(tx, ln.Key.SKU, -ln.BaseQty()); err != nil {
				return err
			}
		}
		if req.CustomerID != nil {
			points := int(grandTotal.Div(loyaltyPointDivisor).Floor().IntPart())
			if err := s.customers.RecordSaleTx(tx, *req.CustomerID, grandTotal, points); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, apierror.Storage("checkout failed", err)
	}

	s.carts.clearAfterSubmit(cartID)
	audit(ctx, s.audits, "transactions", "sale completed", LogCreate, nil, header, userID)
	s.log.Info().Str("transaction_id", header.TransactionID).Str("total", grandTotal.String()).
		Str("method", req.PaymentMethod).Msg("sale completed")

	if req.ReceiptEmail != "" && s.receipts != nil {
		if err := s.receipts.EnqueueReceipt(ctx, header.TransactionID, req.ReceiptEmail); err != nil {
			// The sale is committed; a lost receipt job is logged, not fatal.
			s.log.Error().Err(err).Str("transaction_id", header.TransactionID).Msg("receipt enqueue failed")
		}
	}

	return s.Get(ctx, header.TransactionID)
}

// Suspend parks the cart as a pending transaction so the register is free for
// the next customer. No stock moves until the sale is resumed and paid.
func (s *TransactionService) Suspend(ctx context.Context, cartID string, req dto.SuspendRequest, userID int64) (*dto.PendingTransactionResponse, error) {
	_, lines, err := s.carts.takeLines(cartID, CartKindSale)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	total := decimal.Zero
	totalDiscount := decimal.Zero
	pending := &model.PendingTransaction{
		CreatedAt:      now,
		PaymentRemarks: req.Remarks,
	}
	for _, ln := range lines {
		total = total.Add(ln.Subtotal)
		totalDiscount = totalDiscount.Add(ln.DiscountRp)
		pending.Details = append(pending.Details, model.PendingTransactionDetail{
			SKU:       ln.Key.SKU,
			Unit:      ln.Key.Unit,
			UnitValue: ln.UnitValue,
			Qty:       ln.Qty,
			Price:     ln.Price,
			Discount:  ln.DiscountRp,
			SubTotal:  ln.Subtotal,
		})
	}
	pending.TotalAmount = total
	pending.DiscountAmount = totalDiscount

	err = s.transactions.DB().WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		id, err := s.transactions.NextIDTx(tx, now, true)
		if err != nil {
			return err
		}
		pending.TransactionID = id
		return s.transactions.CreatePendingTx(tx, pending)
	})
	if err != nil {
		return nil, apierror.Storage("pending transaction save failed", err)
	}

	s.carts.clearAfterSubmit(cartID)
	audit(ctx, s.audits, "pending_transactions", "sale suspended", LogCreate, nil, pending, userID)
	s.log.Info().Str("transaction_id", pending.TransactionID).Int("lines", len(lines)).Msg("sale suspended")

	return &dto.PendingTransactionResponse{
		TransactionID:  pending.TransactionID,
		TotalAmount:    pending.TotalAmount,
		DiscountAmount: pending.DiscountAmount,
		CreatedAt:      pending.CreatedAt,
		Remarks:        pending.PaymentRemarks,
		ItemCount:      len(pending.Details),
	}, nil
}

// Resume loads a suspended sale into a fresh cart and deletes the pending
// record, so each suspension can be resumed exactly once.
func (s *TransactionService) Resume(ctx context.Context, pendingID string, userID int64) (*dto.CartResponse, error) {
	pending, err := s.transactions.TakePending(ctx, pendingID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierror.NotFound("pending transaction not found")
		}
		return nil, apierror.Storage("pending transaction load failed", err)
	}

	var lines []ledger.Line
	units := make(ledger.UnitCache)
	for _, d := range pending.Details {
		name := d.SKU
		stock := 0
		if p, err := s.products.FindBySKU(ctx, d.SKU); err == nil {
			name = p.ProductName
			stock = p.Stock
		}
		key := ledger.ItemKey{SKU: d.SKU, Unit: d.Unit}
		units.Put(key, ledger.UnitInfo{UnitValue: d.UnitValue, Price: d.Price, Stock: stock})
		lines = append(lines, ledger.Line{
			Key:         key,
			ProductName: name,
			UnitValue:   d.UnitValue,
			Price:       d.Price,
			Qty:         d.Qty,
			Discount:    ledger.Discount{Mode: ledger.DiscountFlat, Flat: d.Discount},
		})
	}

	audit(ctx, s.audits, "pending_transactions", "sale resumed", LogDelete, pending, nil, userID)
	s.log.Info().Str("transaction_id", pendingID).Msg("sale resumed")
	return s.carts.restore(lines, units), nil
}

func (s *TransactionService) ListPending(ctx context.Context, search string) ([]dto.PendingTransactionResponse, error) {
	pendings, err := s.transactions.ListPending(ctx, search)
	if err != nil {
		return nil, apierror.Storage("pending list failed", err)
	}
	out := make([]dto.PendingTransactionResponse, 0, len(pendings))
	for _, p := range pendings {
		out = append(out, dto.PendingTransactionResponse{
			TransactionID:  p.TransactionID,
			TotalAmount:    p.TotalAmount,
			DiscountAmount: p.DiscountAmount,
			CreatedAt:      p.CreatedAt,
			Remarks:        p.PaymentRemarks,
			ItemCount:      len(p.Details),
		})
	}
	return out, nil
}

// List returns completed sales for an inclusive calendar-day range.
func (s *TransactionService) List(ctx context.Context, start, end time.Time, search string) ([]dto.TransactionResponse, error) {
	txns, err := s.transactions.List(ctx, start, end.AddDate(0, 0, 1), search)
	if err != nil {
		return nil, apierror.Storage("transaction list failed", err)
	}
	out := make([]dto.TransactionResponse, 0, len(txns))
	for i := range txns {
		out = append(out, dto.FromTransaction(&txns[i]))
	}
	return out, nil
}

func (s *TransactionService) Get(ctx context.Context, id string) (*dto.TransactionResponse, error) {
	t, err := s.transactions.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierror.NotFound("transaction not found")
		}
		return nil, apierror.Storage("transaction lookup failed", err)
	}
	resp := dto.FromTransaction(t)
	return &resp, nil
}
