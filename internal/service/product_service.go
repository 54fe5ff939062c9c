package service

import (
	"context"
	"errors"

	"warungpos/internal/apierror"
	"warungpos/internal/dto"
	"warungpos/internal/model"
	"warungpos/internal/repository"

	"github.com/rs/zerolog"
	"gorm.io/gorm"
)

// PriceCacheInvalidator drops a cached price-check entry when the product
// behind it changes, so an edited price never outlives its cache TTL.
type PriceCacheInvalidator interface {
	Invalidate(ctx context.Context, barcode string)
}

type ProductService struct {
	products repository.ProductRepository
	units    repository.UnitRepository
	prices   PriceCacheInvalidator
	audits   AuditSink
	log      zerolog.Logger
}

func NewProductService(products repository.ProductRepository, units repository.UnitRepository, prices PriceCacheInvalidator, audits AuditSink, log zerolog.Logger) *ProductService {
	return &ProductService{
		products: products,
		units:    units,
		prices:   prices,
		audits:   audits,
		log:      log.With().Str("component", "products").Logger(),
	}
}

func (s *ProductService) invalidatePrice(ctx context.Context, barcodes ...*string) {
	if s.prices == nil {
		return
	}
	for _, b := range barcodes {
		if b != nil && *b != "" {
			s.prices.Invalidate(ctx, *b)
		}
	}
}

func (s *ProductService) List(ctx context.Context, search string) ([]dto.ProductResponse, error) {
	products, err := s.products.List(ctx, search)
	if err != nil {
		return nil, apierror.Storage("product list failed", err)
	}
	out := make([]dto.ProductResponse, 0, len(products))
	for i := range products {
		out = append(out, dto.FromProduct(&products[i]))
	}
	return out, nil
}

func (s *ProductService) Get(ctx context.Context, sku string) (*dto.ProductResponse, error) {
	p, err := s.products.FindBySKU(ctx, sku)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierror.NotFound("product not found")
		}
		return nil, apierror.Storage("product lookup failed", err)
	}
	resp := dto.FromProduct(p)
	return &resp, nil
}

func (s *ProductService) Create(ctx context.Context, req dto.ProductRequest, userID int64) (*dto.ProductResponse, error) {
	if _, err := s.products.FindBySKU(ctx, req.SKU); err == nil {
		return nil, apierror.Conflict("sku already exists")
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apierror.Storage("product lookup failed", err)
	}

	p := &model.Product{
		SKU:         req.SKU,
		ProductName: req.ProductName,
		Barcode:     req.Barcode,
		CategoryID:  req.CategoryID,
		SupplierID:  req.SupplierID,
		CostPrice:   req.CostPrice,
		Price:       req.Price,
		Stock:       req.Stock,
		Unit:        req.Unit,
		Remarks:     req.Remarks,
	}
	if err := s.products.Create(ctx, p); err != nil {
		return nil, apierror.Storage("product creation failed", err)
	}

	audit(ctx, s.audits, "products", "product created", LogCreate, nil, p, userID)
	s.log.Info().Str("sku", p.SKU).Msg("product created")
	resp := dto.FromProduct(p)
	return &resp, nil
}

func (s *ProductService) Update(ctx context.Context, sku string, req dto.ProductRequest, userID int64) (*dto.ProductResponse, error) {
	p, err := s.products.FindBySKU(ctx, sku)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierror.NotFound("product not found")
		}
		return nil, apierror.Storage("product lookup failed", err)
	}
	before := *p

	p.ProductName = req.ProductName
	p.Barcode = req.Barcode
	p.CategoryID = req.CategoryID
	p.SupplierID = req.SupplierID
	p.CostPrice = req.CostPrice
	p.Price = req.Price
	p.Stock = req.Stock
	p.Unit = req.Unit
	p.Remarks = req.Remarks
	if err := s.products.Update(ctx, p); err != nil {
		return nil, apierror.Storage("product update failed", err)
	}
	// Both keys can be stale when the barcode itself was edited.
	s.invalidatePrice(ctx, before.Barcode, p.Barcode)

	audit(ctx, s.audits, "products", "product updated", LogUpdate, before, p, userID)
	resp := dto.FromProduct(p)
	return &resp, nil
}

func (s *ProductService) Delete(ctx context.Context, sku string, userID int64) error {
	p, err := s.products.FindBySKU(ctx, sku)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apierror.NotFound("product not found")
		}
		return apierror.Storage("product lookup failed", err)
	}
	if err := s.products.Delete(ctx, sku); err != nil {
		return apierror.Storage("product deletion failed", err)
	}
	s.invalidatePrice(ctx, p.Barcode)
	audit(ctx, s.audits, "products", "product deleted", LogDelete, p, nil, userID)
	s.log.Info().Str("sku", sku).Msg("product deleted")
	return nil
}

// Units

func (s *ProductService) ListUnits(ctx context.Context, sku string) ([]dto.UnitResponse, error) {
	if _, err := s.products.FindBySKU(ctx, sku); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierror.NotFound("product not found")
		}
		return nil, apierror.Storage("product lookup failed", err)
	}
	units, err := s.units.ListBySKU(ctx, sku)
	if err != nil {
		return nil, apierror.Storage("unit list failed", err)
	}
	out := make([]dto.UnitResponse, 0, len(units))
	for i := range units {
		out = append(out, dto.FromUnit(&units[i]))
	}
	return out, nil
}

func (s *ProductService) AddUnit(ctx context.Context, sku string, req dto.UnitRequest, userID int64) (*dto.UnitResponse, error) {
	if _, err := s.products.FindBySKU(ctx, sku); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierror.NotFound("product not found")
		}
		return nil, apierror.Storage("product lookup failed", err)
	}
	if _, err := s.units.FindBySKUAndUnit(ctx, sku, req.Unit); err == nil {
		return nil, apierror.Conflict("unit already exists for this product")
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apierror.Storage("unit lookup failed", err)
	}

	u := &model.ProductUnit{
		SKU:       sku,
		Unit:      req.Unit,
		UnitValue: req.UnitValue,
		Price:     req.Price,
		Barcode:   req.Barcode,
	}
	if err := s.units.Create(ctx, u); err != nil {
		return nil, apierror.Storage("unit creation failed", err)
	}
	audit(ctx, s.audits, "units", "unit added", LogCreate, nil, u, userID)
	resp := dto.FromUnit(u)
	return &resp, nil
}

func (s *ProductService) UpdateUnit(ctx context.Context, sku, unit string, req dto.UnitRequest, userID int64) (*dto.UnitResponse, error) {
	existing, err := s.units.FindBySKUAndUnit(ctx, sku, unit)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierror.NotFound("unit not found")
		}
		return nil, apierror.Storage("unit lookup failed", err)
	}
	before := *existing

	existing.UnitValue = req.UnitValue
	existing.Price = req.Price
	existing.Barcode = req.Barcode
	if err := s.units.Update(ctx, existing); err != nil {
		return nil, apierror.Storage("unit update failed", err)
	}
	audit(ctx, s.audits, "units", "unit updated", LogUpdate, before, existing, userID)
	resp := dto.FromUnit(existing)
	return &resp, nil
}

func (s *ProductService) DeleteUnit(ctx context.Context, sku, unit string, userID int64) error {
	existing, err := s.units.FindBySKUAndUnit(ctx, sku, unit)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apierror.NotFound("unit not found")
		}
		return apierror.Storage("unit lookup failed", err)
	}
	if err := s.units.Delete(ctx, sku, unit); err != nil {
		return apierror.Storage("unit deletion failed", err)
	}
	audit(ctx, s.audits, "units", "unit deleted", LogDelete, existing, nil, userID)
	return nil
}
