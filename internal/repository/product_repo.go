package repository

import (
	"context"

	"warungpos/internal/model"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ProductRepository defines the data access contract for the stock master.
// Services depend on this interface, not on the concrete GORM implementation,
// enabling clean unit testing via stubs.
type ProductRepository interface {
	Create(ctx context.Context, p *model.Product) error
	FindBySKU(ctx context.Context, sku string) (*model.Product, error)
	FindByBarcode(ctx context.Context, barcode string) (*model.Product, error)
	List(ctx context.Context, search string) ([]model.Product, error)
	Update(ctx context.Context, p *model.Product) error
	Delete(ctx context.Context, sku string) error

	// Used inside transactions — callers must pass the tx instance.
	FindBySKUTx(tx *gorm.DB, sku string) (*model.Product, error)
	// AddStockTx shifts stock by delta base units; errors when no row matches
	// so a bad SKU forces the surrounding transaction to roll back.
	AddStockTx(tx *gorm.DB, sku string, delta int) error
	// ApplyReceiptTx records a purchasing line against the product: stock
	// gains baseQty, last_price becomes the line price, and average_price is
	// replaced with the already-computed weighted average.
	ApplyReceiptTx(tx *gorm.DB, sku string, baseQty int, lastPrice, newAvg decimal.Decimal) error

	// DB exposes the underlying *gorm.DB so services can open transactions.
	DB() *gorm.DB
}

type productRepo struct{ db *gorm.DB }

func NewProductRepository(db *gorm.DB) ProductRepository { return &productRepo{db: db} }

func (r *productRepo) Create(ctx context.Context, p *model.Product) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *productRepo) FindBySKU(ctx context.Context, sku string) (*model.Product, error) {
	var p model.Product
	err := r.db.WithContext(ctx).Where("sku = ?", sku).First(&p).Error
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *productRepo) FindByBarcode(ctx context.Context, barcode string) (*model.Product, error) {
	var p model.Product
	err := r.db.WithContext(ctx).Where("barcode = ?", barcode).First(&p).Error
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *productRepo) List(ctx context.Context, search string) ([]model.Product, error) {
	var products []model.Product
	q := r.db.WithContext(ctx).Model(&model.Product{})
	if search != "" {
		like := "%" + search + "%"
		q = q.Where("sku LIKE ? OR product_name LIKE ? OR unit LIKE ? OR remarks LIKE ?",
			like, like, like, like)
	}
	err := q.Order("sku ASC").Find(&products).Error
	return products, err
}

func (r *productRepo) Update(ctx context.Context, p *model.Product) error {
	return r.db.WithContext(ctx).Save(p).Error
}

func (r *productRepo) Delete(ctx context.Context, sku string) error {
	return r.db.WithContext(ctx).Where("sku = ?", sku).Delete(&model.Product{}).Error
}

func (r *productRepo) FindBySKUTx(tx *gorm.DB, sku string) (*model.Product, error) {
	var p model.Product
	err := tx.Where("sku = ?", sku).First(&p).Error
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *productRepo) AddStockTx(tx *gorm.DB, sku string, delta int) error {
	res := tx.Model(&model.Product{}).Where("sku = ?", sku).
		Update("stock", gorm.Expr("stock + ?", delta))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *productRepo) ApplyReceiptTx(tx *gorm.DB, sku string, baseQty int, lastPrice, newAvg decimal.Decimal) error {
	res := tx.Model(&model.Product{}).Where("sku = ?", sku).Updates(map[string]interface{}{
		"stock":         gorm.Expr("stock + ?", baseQty),
		"last_price":    lastPrice,
		"average_price": newAvg,
	})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *productRepo) DB() *gorm.DB { return r.db }
