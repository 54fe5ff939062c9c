package repository

import (
	"context"

	"warungpos/internal/model"

	"gorm.io/gorm"
)

type SupplierRepository interface {
	List(ctx context.Context, search string) ([]model.Supplier, error)
	FindByID(ctx context.Context, id int64) (*model.Supplier, error)
	Create(ctx context.Context, s *model.Supplier) error
	Update(ctx context.Context, s *model.Supplier) error
	Delete(ctx context.Context, id int64) error
}

type supplierRepo struct{ db *gorm.DB }

func NewSupplierRepository(db *gorm.DB) SupplierRepository { return &supplierRepo{db: db} }

func (r *supplierRepo) List(ctx context.Context, search string) ([]model.Supplier, error) {
	var suppliers []model.Supplier
	q := r.db.WithContext(ctx).Model(&model.Supplier{})
	if search != "" {
		like := "%" + search + "%"
		q = q.Where("supplier_name LIKE ? OR supplier_address LIKE ? OR supplier_city LIKE ? OR supplier_phone LIKE ?",
			like, like, like, like)
	}
	err := q.Order("supplier_id ASC").Find(&suppliers).Error
	return suppliers, err
}

func (r *supplierRepo) FindByID(ctx context.Context, id int64) (*model.Supplier, error) {
	var s model.Supplier
	err := r.db.WithContext(ctx).First(&s, id).Error
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *supplierRepo) Create(ctx context.Context, s *model.Supplier) error {
	return r.db.WithContext(ctx).Create(s).Error
}

func (r *supplierRepo) Update(ctx context.Context, s *model.Supplier) error {
	return r.db.WithContext(ctx).Save(s).Error
}

func (r *supplierRepo) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Delete(&model.Supplier{}, id).Error
}
