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

type CategoryService struct {
	categories repository.CategoryRepository
	products   repository.ProductRepository
	audits     AuditSink
	log        zerolog.Logger
}

func NewCategoryService(categories repository.CategoryRepository, products repository.ProductRepository, audits AuditSink, log zerolog.Logger) *CategoryService {
	return &CategoryService{
		categories: categories,
		products:   products,
		audits:     audits,
		log:        log.With().Str("component", "categories").Logger(),
	}
}

func (s *CategoryService) List(ctx context.Context, search string) ([]dto.CategoryResponse, error) {
	categories, err := s.categories.List(ctx, search)
	if err != nil {
		return nil, apierror.Storage("category list failed", err)
	}
	out := make([]dto.CategoryResponse, 0, len(categories))
	for _, c := range categories {
		out = append(out, dto.CategoryResponse{CategoryID: c.CategoryID, CategoryName: c.CategoryName})
	}
	return out, nil
}

func (s *CategoryService) Get(ctx context.Context, id int64) (*dto.CategoryResponse, error) {
	c, err := s.categories.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierror.NotFound("category not found")
		}
		return nil, apierror.Storage("category lookup failed", err)
	}
	skus, err := s.categories.MemberSKUs(ctx, id)
	if err != nil {
		return nil, apierror.Storage("category members lookup failed", err)
	}
	return &dto.CategoryResponse{CategoryID: c.CategoryID, CategoryName: c.CategoryName, SKUs: skus}, nil
}

func (s *CategoryService) Create(ctx context.Context, req dto.CategoryRequest, userID int64) (*dto.CategoryResponse, error) {
	if err := s.checkSKUs(ctx, req.SKUs); err != nil {
		return nil, err
	}
	c := &model.Category{CategoryName: req.CategoryName}
	if err := s.categories.CreateWithProducts(ctx, c, req.SKUs); err != nil {
		return nil, apierror.Storage("category creation failed", err)
	}
	audit(ctx, s.audits, "categories", "category created", LogCreate, nil, c, userID)
	return &dto.CategoryResponse{CategoryID: c.CategoryID, CategoryName: c.CategoryName, SKUs: req.SKUs}, nil
}

// Update replaces the category name and membership. The request carries the
// desired member set; additions and removals are derived against the current
// one and applied in a single transaction.
func (s *CategoryService) Update(ctx context.Context, id int64, req dto.CategoryRequest, userID int64) (*dto.CategoryResponse, error) {
	c, err := s.categories.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierror.NotFound("category not found")
		}
		return nil, apierror.Storage("category lookup failed", err)
	}
	before := *c

	if err := s.checkSKUs(ctx, req.SKUs); err != nil {
		return nil, err
	}
	current, err := s.categories.MemberSKUs(ctx, id)
	if err != nil {
		return nil, apierror.Storage("category members lookup failed", err)
	}
	added, removed := diffStrings(current, req.SKUs)

	c.CategoryName = req.CategoryName
	if err := s.categories.UpdateWithProducts(ctx, c, added, removed); err != nil {
		return nil, apierror.Storage("category update failed", err)
	}
	audit(ctx, s.audits, "categories", "category updated", LogUpdate, before, c, userID)
	return &dto.CategoryResponse{CategoryID: c.CategoryID, CategoryName: c.CategoryName, SKUs: req.SKUs}, nil
}

func (s *CategoryService) Delete(ctx context.Context, id int64, userID int64) error {
	c, err := s.categories.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apierror.NotFound("category not found")
		}
		return apierror.Storage("category lookup failed", err)
	}
	if err := s.categories.Delete(ctx, id); err != nil {
		return apierror.Storage("category deletion failed", err)
	}
	audit(ctx, s.audits, "categories", "category deleted", LogDelete, c, nil, userID)
	return nil
}

func (s *CategoryService) checkSKUs(ctx context.Context, skus []string) error {
	for _, sku := range skus {
		if _, err := s.products.FindBySKU(ctx, sku); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apierror.Validation("unknown sku: " + sku)
			}
			return apierror.Storage("product lookup failed", err)
		}
	}
	return nil
}

// diffStrings splits desired into additions and removals relative to current.
func diffStrings(current, desired []string) (added, removed []string) {
	have := make(map[string]bool, len(current))
	for _, v := range current {
		have[v] = true
	}
	want := make(map[string]bool, len(desired))
	for _, v := range desired {
		want[v] = true
		if !have[v] {
			added = append(added, v)
		}
	}
	for _, v := range current {
		if !want[v] {
			removed = append(removed, v)
		}
	}
	return added, removed
}
