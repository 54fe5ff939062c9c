package repository

import (
	"context"

	"warungpos/internal/model"

	"gorm.io/gorm"
)

// UnitRepository manages the wholesale packaging units of a SKU.
type UnitRepository interface {
	ListBySKU(ctx context.Context, sku string) ([]model.ProductUnit, error)
	FindBySKUAndUnit(ctx context.Context, sku, unit string) (*model.ProductUnit, error)
	Create(ctx context.Context, u *model.ProductUnit) error
	Update(ctx context.Context, u *model.ProductUnit) error
	Delete(ctx context.Context, sku, unit string) error
}

type unitRepo struct{ db *gorm.DB }

func NewUnitRepository(db *gorm.DB) UnitRepository { return &unitRepo{db: db} }

func (r *unitRepo) ListBySKU(ctx context.Context, sku string) ([]model.ProductUnit, error) {
	var units []model.ProductUnit
	err := r.db.WithContext(ctx).Where("sku = ?", sku).Order("unit_value ASC").Find(&units).Error
	return units, err
}

func (r *unitRepo) FindBySKUAndUnit(ctx context.Context, sku, unit string) (*model.ProductUnit, error) {
	var u model.ProductUnit
	err := r.db.WithContext(ctx).Where("sku = ? AND unit = ?", sku, unit).First(&u).Error
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *unitRepo) Create(ctx context.Context, u *model.ProductUnit) error {
	return r.db.WithContext(ctx).Create(u).Error
}

func (r *unitRepo) Update(ctx context.Context, u *model.ProductUnit) error {
	return r.db.WithContext(ctx).Model(&model.ProductUnit{}).
		Where("sku = ? AND unit = ?", u.SKU, u.Unit).
		Updates(map[string]interface{}{
			"unit_value": u.UnitValue,
			"price":      u.Price,
			"barcode":    u.Barcode,
		}).Error
}

func (r *unitRepo) Delete(ctx context.Context, sku, unit string) error {
	return r.db.WithContext(ctx).Where("sku = ? AND unit = ?", sku, unit).
		Delete(&model.ProductUnit{}).Error
}
