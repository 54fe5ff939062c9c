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

type SupplierService struct {
	suppliers repository.SupplierRepository
	audits    AuditSink
	log       zerolog.Logger
}

func NewSupplierService(suppliers repository.SupplierRepository, audits AuditSink, log zerolog.Logger) *SupplierService {
	return &SupplierService{
		suppliers: suppliers,
		audits:    audits,
		log:       log.With().Str("component", "suppliers").Logger(),
	}
}

func (s *SupplierService) List(ctx context.Context, search string) ([]dto.SupplierResponse, error) {
	suppliers, err := s.suppliers.List(ctx, search)
	if err != nil {
		return nil, apierror.Storage("supplier list failed", err)
	}
	out := make([]dto.SupplierResponse, 0, len(suppliers))
	for i := range suppliers {
		out = append(out, dto.FromSupplier(&suppliers[i]))
	}
	return out, nil
}

func (s *SupplierService) Get(ctx context.Context, id int64) (*dto.SupplierResponse, error) {
	sup, err := s.suppliers.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierror.NotFound("supplier not found")
		}
		return nil, apierror.Storage("supplier lookup failed", err)
	}
	resp := dto.FromSupplier(sup)
	return &resp, nil
}

func (s *SupplierService) Create(ctx context.Context, req dto.SupplierRequest, userID int64) (*dto.SupplierResponse, error) {
	sup := &model.Supplier{
		SupplierName:    req.SupplierName,
		SupplierAddress: req.SupplierAddress,
		SupplierCity:    req.SupplierCity,
		SupplierPhone:   req.SupplierPhone,
		SupplierRemarks: req.SupplierRemarks,
	}
	if err := s.suppliers.Create(ctx, sup); err != nil {
		return nil, apierror.Storage("supplier creation failed", err)
	}
	audit(ctx, s.audits, "suppliers", "supplier created", LogCreate, nil, sup, userID)
	resp := dto.FromSupplier(sup)
	return &resp, nil
}

func (s *SupplierService) Update(ctx context.Context, id int64, req dto.SupplierRequest, userID int64) (*dto.SupplierResponse, error) {
	sup, err := s.suppliers.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierror.NotFound("supplier not found")
		}
		return nil, apierror.Storage("supplier lookup failed", err)
	}
	before := *sup

	sup.SupplierName = req.SupplierName
	sup.SupplierAddress = req.SupplierAddress
	sup.SupplierCity = req.SupplierCity
	sup.SupplierPhone = req.SupplierPhone
	sup.SupplierRemarks = req.SupplierRemarks
	if err := s.suppliers.Update(ctx, sup); err != nil {
		return nil, apierror.Storage("supplier update failed", err)
	}
	audit(ctx, s.audits, "suppliers", "supplier updated", LogUpdate, before, sup, userID)
	resp := dto.FromSupplier(sup)
	return &resp, nil
}

func (s *SupplierService) Delete(ctx context.Context, id int64, userID int64) error {
	sup, err := s.suppliers.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apierror.NotFound("supplier not found")
		}
		return apierror.Storage("supplier lookup failed", err)
	}
	if err := s.suppliers.Delete(ctx, id); err != nil {
		return apierror.Storage("supplier deletion failed", err)
	}
	audit(ctx, s.audits, "suppliers", "supplier deleted", LogDelete, sup, nil, userID)
	return nil
}
