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

type CustomerService struct {
	customers repository.CustomerRepository
	audits    AuditSink
	log       zerolog.Logger
}

func NewCustomerService(customers repository.CustomerRepository, audits AuditSink, log zerolog.Logger) *CustomerService {
	return &CustomerService{
		customers: customers,
		audits:    audits,
		log:       log.With().Str("component", "customers").Logger(),
	}
}

func (s *CustomerService) List(ctx context.Context, search string) ([]dto.CustomerResponse, error) {
	customers, err := s.customers.List(ctx, search)
	if err != nil {
		return nil, apierror.Storage("customer list failed", err)
	}
	out := make([]dto.CustomerResponse, 0, len(customers))
	for i := range customers {
		out = append(out, dto.FromCustomer(&customers[i]))
	}
	return out, nil
}

func (s *CustomerService) Get(ctx context.Context, id int64) (*dto.CustomerResponse, error) {
	c, err := s.customers.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierror.NotFound("customer not found")
		}
		return nil, apierror.Storage("customer lookup failed", err)
	}
	resp := dto.FromCustomer(c)
	return &resp, nil
}

func (s *CustomerService) Create(ctx context.Context, req dto.CustomerRequest, userID int64) (*dto.CustomerResponse, error) {
	c := &model.Customer{
		CustomerName:  req.CustomerName,
		CustomerPhone: req.CustomerPhone,
	}
	if err := s.customers.Create(ctx, c); err != nil {
		return nil, apierror.Storage("customer creation failed", err)
	}
	audit(ctx, s.audits, "customers", "customer created", LogCreate, nil, c, userID)
	resp := dto.FromCustomer(c)
	return &resp, nil
}

func (s *CustomerService) Update(ctx context.Context, id int64, req dto.CustomerRequest, userID int64) (*dto.CustomerResponse, error) {
	c, err := s.customers.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierror.NotFound("customer not found")
		}
		return nil, apierror.Storage("customer lookup failed", err)
	}
	before := *c

	c.CustomerName = req.CustomerName
	c.CustomerPhone = req.CustomerPhone
	if err := s.customers.Update(ctx, c); err != nil {
		return nil, apierror.Storage("customer update failed", err)
	}
	audit(ctx, s.audits, "customers", "customer updated", LogUpdate, before, c, userID)
	resp := dto.FromCustomer(c)
	return &resp, nil
}

func (s *CustomerService) Delete(ctx context.Context, id int64, userID int64) error {
	c, err := s.customers.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apierror.NotFound("customer not found")
		}
		return apierror.Storage("customer lookup failed", err)
	}
	if err := s.customers.Delete(ctx, id); err != nil {
		return apierror.Storage("customer deletion failed", err)
	}
	audit(ctx, s.audits, "customers", "customer deleted", LogDelete, c, nil, userID)
	return nil
}
