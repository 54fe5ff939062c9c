package repository

import (
	"context"

	"warungpos/internal/model"

	"gorm.io/gorm"
)

// CategoryRepository manages categories and their product membership
// (product_categories_detail). Writes that touch both tables run in one
// transaction.
type CategoryRepository interface {
	List(ctx context.Context, search string) ([]model.Category, error)
	FindByID(ctx context.Context, id int64) (*model.Category, error)
	MemberSKUs(ctx context.Context, id int64) ([]string, error)
	CreateWithProducts(ctx context.Context, c *model.Category, skus []string) error
	UpdateWithProducts(ctx context.Context, c *model.Category, added, removed []string) error
	Delete(ctx context.Context, id int64) error
}

type categoryRepo struct{ db *gorm.DB }

func NewCategoryRepository(db *gorm.DB) CategoryRepository { return &categoryRepo{db: db} }

func (r *categoryRepo) List(ctx context.Context, search string) ([]model.Category, error) {
	var categories []model.Category
	q := r.db.WithContext(ctx).Model(&model.Category{})
	if search != "" {
		q = q.Where("category_name LIKE ?", "%"+search+"%")
	}
	err := q.Order("category_id ASC").Find(&categories).Error
	return categories, err
}

func (r *categoryRepo) FindByID(ctx context.Context, id int64) (*model.Category, error) {
	var c model.Category
	err := r.db.WithContext(ctx).First(&c, id).Error
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *categoryRepo) MemberSKUs(ctx context.Context, id int64) ([]string, error) {
	var skus []string
	err := r.db.WithContext(ctx).Model(&model.ProductCategory{}).
		Where("category_id = ?", id).Pluck("sku", &skus).Error
	return skus, err
}

func (r *categoryRepo) CreateWithProducts(ctx context.Context, c *model.Category, skus []string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(c).Error; err != nil {
			return err
		}
		for _, sku := range skus {
			pc := model.ProductCategory{SKU: sku, CategoryID: c.CategoryID}
			if err := tx.Create(&pc).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *categoryRepo) UpdateWithProducts(ctx context.Context, c *model.Category, added, removed []string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&model.Category{}).Where("category_id = ?", c.CategoryID).
			Update("category_name", c.CategoryName).Error; err != nil {
			return err
		}
		for _, sku := range added {
			pc := model.ProductCategory{SKU: sku, CategoryID: c.CategoryID}
			if err := tx.Create(&pc).Error; err != nil {
				return err
			}
		}
		if len(removed) > 0 {
			if err := tx.Where("category_id = ? AND sku IN ?", c.CategoryID, removed).
				Delete(&model.ProductCategory{}).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *categoryRepo) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("category_id = ?", id).Delete(&model.ProductCategory{}).Error; err != nil {
			return err
		}
		return tx.Delete(&model.Category{}, id).Error
	})
}
