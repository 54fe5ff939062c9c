package service

import (
	"context"
	"errors"
	"sync"
	"time"

	"warungpos/internal/apierror"
	"warungpos/internal/dto"
	"warungpos/internal/ledger"
	"warungpos/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Cart kinds. A sale cart feeds checkout/suspend; a purchase draft feeds the
// goods-receipt flow. Both share the same ledger semantics.
const (
	CartKindSale     = "sale"
	CartKindPurchase = "purchase"
)

// draftTTL is how long an untouched cart survives before the janitor
// reclaims it.
const draftTTL = 2 * time.Hour

// draft is one open cart: its ledger plus the unit details cached when each
// product was first looked up, so unit switches and projections don't hit
// the database again.
type draft struct {
	id       string
	kind     string
	mu       sync.Mutex
	lines    *ledger.Ledger
	units    ledger.UnitCache
	lastUsed time.Time
}

// CartService is the registry of open carts. Carts are server-side state
// keyed by an opaque id handed to the client at creation.
type CartService struct {
	mu       sync.RWMutex
	drafts   map[string]*draft
	products repository.ProductRepository
	units    repository.UnitRepository
	log      zerolog.Logger
}

func NewCartService(products repository.ProductRepository, units repository.UnitRepository, log zerolog.Logger) *CartService {
	s := &CartService{
		drafts:   make(map[string]*draft),
		products: products,
		units:    units,
		log:      log.With().Str("component", "cart").Logger(),
	}
	go s.purgeLoop()
	return s
}

func (s *CartService) purgeLoop() {
	ticker := time.NewTicker(10 * time.Minute)
	defer ticker.Stop()
	for range ticker.C {
		cutoff := time.Now().Add(-draftTTL)
		s.mu.Lock()
		for id, d := range s.drafts {
			if d.lastUsed.Before(cutoff) {
				delete(s.drafts, id)
				s.log.Info().Str("cart_id", id).Msg("stale cart purged")
			}
		}
		s.mu.Unlock()
	}
}

// Create opens a new empty cart and returns its id.
func (s *CartService) Create(kind string) (*dto.CartResponse, error) {
	if kind != CartKindSale && kind != CartKindPurchase {
		return nil, apierror.Validation("unknown cart kind")
	}
	d := &draft{
		id:       uuid.NewString(),
		kind:     kind,
		lines:    ledger.New(),
		units:    make(ledger.UnitCache),
		lastUsed: time.Now(),
	}
	s.mu.Lock()
	s.drafts[d.id] = d
	s.mu.Unlock()
	return s.snapshot(d), nil
}

func (s *CartService) find(id string) (*draft, error) {
	s.mu.RLock()
	d, ok := s.drafts[id]
	s.mu.RUnlock()
	if !ok {
		return nil, apierror.NotFound("cart not found")
	}
	return d, nil
}

// Get returns the current cart state.
func (s *CartService) Get(id string) (*dto.CartResponse, error) {
	d, err := s.find(id)
	if err != nil {
		return nil, err
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	d.lastUsed = time.Now()
	return s.snapshot(d), nil
}

// resolveItem finds the product (by SKU or barcode, base or wholesale unit)
// and caches its unit info on the draft.
func (s *CartService) resolveItem(ctx context.Context, d *draft, sku, barcode, unit string) (ledger.ItemKey, ledger.UnitInfo, string, error) {
	var key ledger.ItemKey
	var info ledger.UnitInfo

	if sku == "" && barcode == "" {
		return key, info, "", apierror.Validation("sku or barcode is required")
	}

	// A barcode may belong to the product itself or to one of its wholesale
	// units; the unit barcode carries its own packaging.
	if sku == "" {
		p, err := s.products.FindByBarcode(ctx, barcode)
		if err == nil {
			sku = p.SKU
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return key, info, "", apierror.Storage("product lookup failed", err)
		} else {
			var found bool
			sku, unit, found, err = s.findUnitByBarcode(ctx, barcode)
			if err != nil {
				return key, info, "", err
			}
			if !found {
				return key, info, "", apierror.NotFound("barcode not recognized")
			}
		}
	}

	p, err := s.products.FindBySKU(ctx, sku)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return key, info, "", apierror.NotFound("product not found")
		}
		return key, info, "", apierror.Storage("product lookup failed", err)
	}

	if unit == "" || unit == p.Unit {
		key = ledger.ItemKey{SKU: p.SKU, Unit: p.Unit}
		info = ledger.UnitInfo{UnitValue: 1, Price: p.Price, Stock: p.Stock}
	} else {
		if cached, ok := d.units.Get(ledger.ItemKey{SKU: p.SKU, Unit: unit}); ok {
			key = ledger.ItemKey{SKU: p.SKU, Unit: unit}
			info = cached
		} else {
			u, err := s.units.FindBySKUAndUnit(ctx, p.SKU, unit)
			if err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return key, info, "", apierror.NotFound("unit not found for product")
				}
				return key, info, "", apierror.Storage("unit lookup failed", err)
			}
			key = ledger.ItemKey{SKU: u.SKU, Unit: u.Unit}
			info = ledger.UnitInfo{UnitValue: u.UnitValue, Price: u.Price, Stock: p.Stock}
		}
	}

	d.units.Put(key, info)
	// Base-unit info is always cached so projections know current stock.
	d.units.Put(ledger.ItemKey{SKU: p.SKU, Unit: p.Unit}, ledger.UnitInfo{UnitValue: 1, Price: p.Price, Stock: p.Stock})
	return key, info, p.ProductName, nil
}

func (s *CartService) findUnitByBarcode(ctx context.Context, barcode string) (string, string, bool, error) {
	// Unit barcodes are rare; a direct scan through the units table suffices.
	units, err := s.unitByBarcode(ctx, barcode)
	if err != nil {
		return "", "", false, apierror.Storage("unit lookup failed", err)
	}
	if units == nil {
		return "", "", false, nil
	}
	return units.SKU, units.Unit, true, nil
}

func (s *CartService) unitByBarcode(ctx context.Context, barcode string) (*unitRef, error) {
	var ref unitRef
	err := s.products.DB().WithContext(ctx).Table("units").
		Select("sku, unit").Where("barcode = ?", barcode).Scan(&ref).Error
	if err != nil {
		return nil, err
	}
	if ref.SKU == "" {
		return nil, nil
	}
	return &ref, nil
}

type unitRef struct {
	SKU  string
	Unit string
}

// AddItem inserts the item into the cart, merging with an existing line for
// the same (sku, unit).
func (s *CartService) AddItem(ctx context.Context, cartID string, req dto.AddItemRequest) (*dto.CartResponse, error) {
	d, err := s.find(cartID)
	if err != nil {
		return nil, err
	}
	disc, err := discountFrom(req.DiscountPct, req.DiscountUnit, req.DiscountFlat)
	if err != nil {
		return nil, err
	}
	if d.kind == CartKindPurchase && disc.Mode == ledger.DiscountPerUnit {
		return nil, apierror.Validation("per-unit discount is not available on purchase drafts")
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	d.lastUsed = time.Now()

	key, info, name, err := s.resolveItem(ctx, d, req.SKU, req.Barcode, req.Unit)
	if err != nil {
		return nil, err
	}

	ln, merged := d.lines.Add(ledger.Line{
		Key:         key,
		ProductName: name,
		UnitValue:   info.UnitValue,
		Price:       info.Price,
		Qty:         req.Qty,
		Discount:    disc.Normalize(),
	})
	s.log.Debug().Str("cart_id", cartID).Str("sku", ln.Key.SKU).
		Str("unit", ln.Key.Unit).Int("qty", ln.Qty).Bool("merged", merged).
		Msg("cart item added")
	return s.snapshot(d), nil
}

// UpdateItem overwrites quantity and discount of one line.
func (s *CartService) UpdateItem(cartID, sku, unit string, req dto.UpdateItemRequest) (*dto.CartResponse, error) {
	d, err := s.find(cartID)
	if err != nil {
		return nil, err
	}
	disc, err := discountFrom(req.DiscountPct, req.DiscountUnit, req.DiscountFlat)
	if err != nil {
		return nil, err
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	d.lastUsed = time.Now()

	if _, err := d.lines.Update(ledger.ItemKey{SKU: sku, Unit: unit}, req.Qty, disc); err != nil {
		return nil, apierror.NotFound("cart line not found")
	}
	return s.snapshot(d), nil
}

// RemoveItem deletes one line from the cart.
func (s *CartService) RemoveItem(cartID, sku, unit string) (*dto.CartResponse, error) {
	d, err := s.find(cartID)
	if err != nil {
		return nil, err
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	d.lastUsed = time.Now()

	if err := d.lines.Remove(ledger.ItemKey{SKU: sku, Unit: unit}); err != nil {
		return nil, apierror.NotFound("cart line not found")
	}
	return s.snapshot(d), nil
}

// Clear empties the cart without closing it.
func (s *CartService) Clear(cartID string) (*dto.CartResponse, error) {
	d, err := s.find(cartID)
	if err != nil {
		return nil, err
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	d.lastUsed = time.Now()
	d.lines.Clear()
	return s.snapshot(d), nil
}

// Close discards the cart entirely.
func (s *CartService) Close(cartID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.drafts[cartID]; !ok {
		return apierror.NotFound("cart not found")
	}
	delete(s.drafts, cartID)
	return nil
}

// StockCheck previews the stock-after projection for a typed quantity that has
// not been added to the cart yet. A negative result is informational only.
func (s *CartService) StockCheck(ctx context.Context, cartID string, req dto.StockCheckRequest) (*ledger.StockProjection, error) {
	d, err := s.find(cartID)
	if err != nil {
		return nil, err
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	d.lastUsed = time.Now()

	key, info, _, err := s.resolveItem(ctx, d, req.SKU, "", req.Unit)
	if err != nil {
		return nil, err
	}
	proj := d.lines.Project(key.SKU, info.Stock, req.Qty, info.UnitValue)
	return &proj, nil
}

// takeLines returns a snapshot of the cart lines for submission. The caller
// clears the cart after the submit transaction commits.
func (s *CartService) takeLines(cartID, kind string) (*draft, []ledger.Line, error) {
	d, err := s.find(cartID)
	if err != nil {
		return nil, nil, err
	}
	if d.kind != kind {
		return nil, nil, apierror.Validation("cart kind mismatch")
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.lines.Len() == 0 {
		return nil, nil, apierror.Validation("cart is empty")
	}
	return d, d.lines.Lines(), nil
}

// clearAfterSubmit empties a cart once its document has been persisted.
func (s *CartService) clearAfterSubmit(cartID string) {
	if d, err := s.find(cartID); err == nil {
		d.mu.Lock()
		d.lines.Clear()
		d.lastUsed = time.Now()
		d.mu.Unlock()
	}
}

// restore loads lines into a fresh sale cart, used when resuming a suspended
// transaction.
func (s *CartService) restore(lines []ledger.Line, units ledger.UnitCache) *dto.CartResponse {
	d := &draft{
		id:       uuid.NewString(),
		kind:     CartKindSale,
		lines:    ledger.New(),
		units:    units,
		lastUsed: time.Now(),
	}
	for _, ln := range lines {
		d.lines.Add(ln)
	}
	s.mu.Lock()
	s.drafts[d.id] = d
	s.mu.Unlock()
	return s.snapshot(d)
}

func (s *CartService) snapshot(d *draft) *dto.CartResponse {
	resp := &dto.CartResponse{
		CartID:        d.id,
		Kind:          d.kind,
		Items:         []dto.CartItemResponse{},
		Total:         d.lines.Total(),
		TotalDiscount: d.lines.TotalDiscount(),
	}
	for _, ln := range d.lines.Lines() {
		item := dto.CartItemResponse{
			SKU:         ln.Key.SKU,
			ProductName: ln.ProductName,
			Unit:        ln.Key.Unit,
			UnitValue:   ln.UnitValue,
			Qty:         ln.Qty,
			Price:       ln.Price,
			Discount:    ln.DiscountRp,
			Subtotal:    ln.Subtotal,
		}
		if info, ok := d.units.Get(ln.Key); ok {
			proj := d.lines.Project(ln.Key.SKU, info.Stock, 0, ln.UnitValue)
			item.Stock = &proj
		}
		resp.Items = append(resp.Items, item)
	}
	return resp
}

// discountFrom maps the three request fields onto one discount mode. At most
// one may be set.
func discountFrom(pct, perUnit, flat decimal.Decimal) (ledger.Discount, error) {
	set := 0
	d := ledger.Discount{Mode: ledger.DiscountNone}
	if pct.IsPositive() {
		set++
		d = ledger.Discount{Mode: ledger.DiscountPercent, Pct: pct}
	}
	if perUnit.IsPositive() {
		set++
		d = ledger.Discount{Mode: ledger.DiscountPerUnit, PerUnit: perUnit}
	}
	if flat.IsPositive() {
		set++
		d = ledger.Discount{Mode: ledger.DiscountFlat, Flat: flat}
	}
	if set > 1 {
		return d, apierror.Validation("only one discount mode may be set")
	}
	if pct.IsNegative() || perUnit.IsNegative() || flat.IsNegative() {
		return d, apierror.Validation("discount cannot be negative")
	}
	if d.Mode == ledger.DiscountPercent && d.Pct.GreaterThan(decimal.NewFromInt(100)) {
		return d, apierror.Validation("percent discount cannot exceed 100")
	}
	return d, nil
}
