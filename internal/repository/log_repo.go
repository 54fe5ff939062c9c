package repository

import (
	"context"
	"time"

	"warungpos/internal/model"

	"gorm.io/gorm"
)

type LogRepository interface {
	Create(ctx context.Context, entry *model.Log) error
	List(ctx context.Context, start, end time.Time, search string) ([]model.Log, error)
}

type logRepo struct{ db *gorm.DB }

func NewLogRepository(db *gorm.DB) LogRepository { return &logRepo{db: db} }

func (r *logRepo) Create(ctx context.Context, entry *model.Log) error {
	return r.db.WithContext(ctx).Create(entry).Error
}

func (r *logRepo) List(ctx context.Context, start, end time.Time, search string) ([]model.Log, error) {
	var entries []model.Log
	q := r.db.WithContext(ctx).Model(&model.Log{}).
		Where("created_at >= ? AND created_at < ?", start, end)
	if search != "" {
		like := "%" + search + "%"
		q = q.Where("log_name LIKE ? OR log_description LIKE ? OR old_data LIKE ? OR new_data LIKE ?",
			like, like, like, like)
	}
	err := q.Order("created_at DESC").Find(&entries).Error
	return entries, err
}
