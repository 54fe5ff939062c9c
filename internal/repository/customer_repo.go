package repository

import (
	"context"

	"warungpos/internal/model"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type CustomerRepository interface {
	List(ctx context.Context, search string) ([]model.Customer, error)
	FindByID(ctx context.Context, id int64) (*model.Customer, error)
	Create(ctx context.Context, c *model.Customer) error
	Update(ctx context.Context, c *model.Customer) error
	Delete(ctx context.Context, id int64) error

	// RecordSaleTx bumps the loyalty counters when a checkout names a
	// customer; runs inside the checkout transaction.
	RecordSaleTx(tx *gorm.DB, id int64, amount decimal.Decimal, points int) error
}

type customerRepo struct{ db *gorm.DB }

func NewCustomerRepository(db *gorm.DB) CustomerRepository { return &customerRepo{db: db} }

func (r *customerRepo) List(ctx context.Context, search string) ([]model.Customer, error) {
	var customers []model.Customer
	q := r.db.WithContext(ctx).Model(&model.Customer{})
	if search != "" {
		like := "%" + search + "%"
		q = q.Where("customer_name LIKE ? OR customer_phone LIKE ?", like, like)
	}
	err := q.Order("customer_id ASC").Find(&customers).Error
	return customers, err
}

func (r *customerRepo) FindByID(ctx context.Context, id int64) (*model.Customer, error) {
	var c model.Customer
	err := r.db.WithContext(ctx).First(&c, id).Error
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *customerRepo) Create(ctx context.Context, c *model.Customer) error {
	return r.db.WithContext(ctx).Create(c).Error
}

func (r *customerRepo) Update(ctx context.Context, c *model.Customer) error {
	return r.db.WithContext(ctx).Save(c).Error
}

func (r *customerRepo) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Delete(&model.Customer{}, id).Error
}

func (r *customerRepo) RecordSaleTx(tx *gorm.DB, id int64, amount decimal.Decimal, points int) error {
	res := tx.Model(&model.Customer{}).Where("customer_id = ?", id).Updates(map[string]interface{}{
		"number_of_transactions": gorm.Expr("number_of_transactions + 1"),
		"transaction_value":      gorm.Expr("transaction_value + ?", amount),
		"customer_points":        gorm.Expr("customer_points + ?", points),
	})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
