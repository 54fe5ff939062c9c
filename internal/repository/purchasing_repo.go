package repository

import (
	"context"
	"fmt"
	"time"

	"warungpos/internal/model"

	"gorm.io/gorm"
)

// PurchasingRepository persists goods receipts. Submitting a receipt is a
// multi-table write (header, detail lines, product cost columns) that the
// service composes inside one transaction; the Tx methods here are its
// building blocks.
type PurchasingRepository interface {
	// NextIDTx builds a PO{yyyymmdd}{seq} id from today's receipt count. It
	// runs on the submit transaction so concurrent submits cannot count the
	// same rows and collide on the id.
	NextIDTx(tx *gorm.DB, now time.Time) (string, error)
	CreateTx(tx *gorm.DB, p *model.Purchasing) error
	CreateDetailTx(tx *gorm.DB, d *model.PurchasingDetail) error
	List(ctx context.Context, start, end time.Time, search string) ([]model.Purchasing, error)
	FindByID(ctx context.Context, id string) (*model.Purchasing, error)
	DetailsBySKU(ctx context.Context, sku string) ([]model.PurchasingDetail, error)

	DB() *gorm.DB
}

type purchasingRepo struct{ db *gorm.DB }

func NewPurchasingRepository(db *gorm.DB) PurchasingRepository { return &purchasingRepo{db: db} }

func (r *purchasingRepo) NextIDTx(tx *gorm.DB, now time.Time) (string, error) {
	dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	var n int64
	err := tx.Model(&model.Purchasing{}).
		Where("created_at >= ? AND created_at < ?", dayStart, dayStart.AddDate(0, 0, 1)).
		Count(&n).Error
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("PO%s%04d", now.Format("20060102"), n+1), nil
}

func (r *purchasingRepo) CreateTx(tx *gorm.DB, p *model.Purchasing) error {
	return tx.Omit("Details", "Supplier").Create(p).Error
}

func (r *purchasingRepo) CreateDetailTx(tx *gorm.DB, d *model.PurchasingDetail) error {
	return tx.Create(d).Error
}

func (r *purchasingRepo) List(ctx context.Context, start, end time.Time, search string) ([]model.Purchasing, error) {
	var receipts []model.Purchasing
	q := r.db.WithContext(ctx).Model(&model.Purchasing{}).
		Preload("Supplier").
		Where("created_at >= ? AND created_at < ?", start, end)
	if search != "" {
		like := "%" + search + "%"
		q = q.Where("purchasing_id LIKE ? OR invoice_number LIKE ?", like, like)
	}
	err := q.Order("created_at DESC").Find(&receipts).Error
	return receipts, err
}

func (r *purchasingRepo) FindByID(ctx context.Context, id string) (*model.Purchasing, error) {
	var p model.Purchasing
	err := r.db.WithContext(ctx).Preload("Details").Preload("Supplier").
		Where("purchasing_id = ?", id).First(&p).Error
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *purchasingRepo) DetailsBySKU(ctx context.Context, sku string) ([]model.PurchasingDetail, error) {
	var details []model.PurchasingDetail
	err := r.db.WithContext(ctx).Where("sku = ?", sku).
		Order("id DESC").Find(&details).Error
	return details, err
}

func (r *purchasingRepo) DB() *gorm.DB { return r.db }
