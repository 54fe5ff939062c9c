package service

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"warungpos/internal/apierror"
	"warungpos/internal/dto"
	"warungpos/internal/format"
	"warungpos/internal/repository"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"gorm.io/gorm"
)

const (
	priceCachePrefix = "price:"
	priceCacheTTL    = 5 * time.Minute
)

// PriceCheckService answers the customer-facing "how much is this" lookup.
// Results are cached in Redis since the same fast movers get scanned over and
// over; a cache failure silently degrades to a database hit.
type PriceCheckService struct {
	products repository.ProductRepository
	cache    *redis.Client
	log      zerolog.Logger
}

func NewPriceCheckService(products repository.ProductRepository, cache *redis.Client, log zerolog.Logger) *PriceCheckService {
	return &PriceCheckService{
		products: products,
		cache:    cache,
		log:      log.With().Str("component", "pricecheck").Logger(),
	}
}

func (s *PriceCheckService) Lookup(ctx context.Context, barcode string) (*dto.PriceCheckResponse, error) {
	barcode = format.Digits(barcode)
	if barcode == "" {
		return nil, apierror.Validation("barcode is required")
	}

	if s.cache != nil {
		if cached, err := s.cache.Get(ctx, priceCachePrefix+barcode).Result(); err == nil {
			var resp dto.PriceCheckResponse
			if json.Unmarshal([]byte(cached), &resp) == nil {
				return &resp, nil
			}
		} else if !errors.Is(err, redis.Nil) {
			s.log.Warn().Err(err).Msg("price cache read failed")
		}
	}

	p, err := s.products.FindByBarcode(ctx, barcode)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierror.NotFound("barcode not recognized")
		}
		return nil, apierror.Storage("product lookup failed", err)
	}

	resp := &dto.PriceCheckResponse{
		SKU:         p.SKU,
		ProductName: p.ProductName,
		Unit:        p.Unit,
		Price:       p.Price,
		PriceLabel:  format.Rupiah(p.Price),
	}

	if s.cache != nil {
		if b, err := json.Marshal(resp); err == nil {
			if err := s.cache.Set(ctx, priceCachePrefix+barcode, b, priceCacheTTL).Err(); err != nil {
				s.log.Warn().Err(err).Msg("price cache write failed")
			}
		}
	}
	return resp, nil
}

// Invalidate drops the cached price for a barcode. The product service calls
// it whenever the product behind a barcode is edited or removed. The key is
// normalized the same way Lookup normalizes scanner input.
func (s *PriceCheckService) Invalidate(ctx context.Context, barcode string) {
	barcode = format.Digits(barcode)
	if s.cache == nil || barcode == "" {
		return
	}
	if err := s.cache.Del(ctx, priceCachePrefix+barcode).Err(); err != nil {
		s.log.Warn().Err(err).Str("barcode", barcode).Msg("price cache invalidation failed")
	}
}
