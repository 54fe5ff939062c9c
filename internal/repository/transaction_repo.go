package repository

import (
	"context"
	"fmt"
	"time"

	"warungpos/internal/model"

	"gorm.io/gorm"
)

// TransactionRepository persists sales. Checkout is a multi-table write
// (header, detail lines, stock decrements, loyalty counters) composed by the
// service inside one transaction.
type TransactionRepository interface {
	// NextIDTx builds a sale id from today's count: A{yyyymmdd}{seq} for
	// completed sales, P{yyyymmdd}{seq} for suspended ones. It runs on the
	// submit transaction so concurrent checkouts cannot count the same rows
	// and collide on the id.
	NextIDTx(tx *gorm.DB, now time.Time, pending bool) (string, error)
	CreateTx(tx *gorm.DB, t *model.Transaction) error
	CreateDetailTx(tx *gorm.DB, d *model.TransactionDetail) error
	List(ctx context.Context, start, end time.Time, search string) ([]model.Transaction, error)
	FindByID(ctx context.Context, id string) (*model.Transaction, error)

	CreatePendingTx(tx *gorm.DB, p *model.PendingTransaction) error
	ListPending(ctx context.Context, search string) ([]model.PendingTransaction, error)
	// TakePending loads a suspended sale and deletes it in the same
	// transaction, so a sale can only be resumed once.
	TakePending(ctx context.Context, id string) (*model.PendingTransaction, error)

	DB() *gorm.DB
}

type transactionRepo struct{ db *gorm.DB }

func NewTransactionRepository(db *gorm.DB) TransactionRepository {
	return &transactionRepo{db: db}
}

func (r *transactionRepo) NextIDTx(tx *gorm.DB, now time.Time, pending bool) (string, error) {
	dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	dayEnd := dayStart.AddDate(0, 0, 1)

	var n int64
	var err error
	prefix := "A"
	if pending {
		prefix = "P"
		err = tx.Model(&model.PendingTransaction{}).
			Where("created_at >= ? AND created_at < ?", dayStart, dayEnd).Count(&n).Error
	} else {
		err = tx.Model(&model.Transaction{}).
			Where("created_at >= ? AND created_at < ?", dayStart, dayEnd).Count(&n).Error
	}
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s%s%04d", prefix, now.Format("20060102"), n+1), nil
}

func (r *transactionRepo) CreateTx(tx *gorm.DB, t *model.Transaction) error {
	return tx.Omit("Details").Create(t).Error
}

func (r *transactionRepo) CreateDetailTx(tx *gorm.DB, d *model.TransactionDetail) error {
	return tx.Create(d).Error
}

func (r *transactionRepo) List(ctx context.Context, start, end time.Time, search string) ([]model.Transaction, error) {
	var txns []model.Transaction
	q := r.db.WithContext(ctx).Model(&model.Transaction{}).
		Preload("Details").
		Where("created_at >= ? AND created_at < ?", start, end)
	if search != "" {
		q = q.Where("transaction_id LIKE ?", "%"+search+"%")
	}
	err := q.Order("created_at DESC").Find(&txns).Error
	return txns, err
}

func (r *transactionRepo) FindByID(ctx context.Context, id string) (*model.Transaction, error) {
	var t model.Transaction
	err := r.db.WithContext(ctx).Preload("Details").
		Where("transaction_id = ?", id).First(&t).Error
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *transactionRepo) CreatePendingTx(tx *gorm.DB, p *model.PendingTransaction) error {
	if err := tx.Omit("Details").Create(p).Error; err != nil {
		return err
	}
	for i := range p.Details {
		p.Details[i].TransactionID = p.TransactionID
		if err := tx.Create(&p.Details[i]).Error; err != nil {
			return err
		}
	}
	return nil
}

func (r *transactionRepo) ListPending(ctx context.Context, search string) ([]model.PendingTransaction, error) {
	var pendings []model.PendingTransaction
	q := r.db.WithContext(ctx).Model(&model.PendingTransaction{}).Preload("Details")
	if search != "" {
		like := "%" + search + "%"
		q = q.Where("transaction_id LIKE ? OR payment_remarks LIKE ?", like, like)
	}
	err := q.Order("created_at DESC").Find(&pendings).Error
	return pendings, err
}

func (r *transactionRepo) TakePending(ctx context.Context, id string) (*model.PendingTransaction, error) {
	var p model.PendingTransaction
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Preload("Details").Where("transaction_id = ?", id).First(&p).Error; err != nil {
			return err
		}
		if err := tx.Where("transaction_id = ?", id).Delete(&model.PendingTransactionDetail{}).Error; err != nil {
			return err
		}
		return tx.Where("transaction_id = ?", id).Delete(&model.PendingTransaction{}).Error
	})
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *transactionRepo) DB() *gorm.DB { return r.db }
