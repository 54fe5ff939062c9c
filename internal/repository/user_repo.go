package repository

import (
	"context"

	"warungpos/internal/model"

	"gorm.io/gorm"
)

type UserRepository interface {
	FindByUserName(ctx context.Context, userName string) (*model.User, error)
	FindByID(ctx context.Context, id int64) (*model.User, error)
	List(ctx context.Context, search string) ([]model.User, error)
	Create(ctx context.Context, u *model.User) error
	Update(ctx context.Context, u *model.User) error
	Delete(ctx context.Context, id int64) error
}

type userRepo struct{ db *gorm.DB }

func NewUserRepository(db *gorm.DB) UserRepository { return &userRepo{db: db} }

func (r *userRepo) FindByUserName(ctx context.Context, userName string) (*model.User, error) {
	var u model.User
	err := r.db.WithContext(ctx).Preload("Role").Where("user_name = ?", userName).First(&u).Error
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *userRepo) FindByID(ctx context.Context, id int64) (*model.User, error) {
	var u model.User
	err := r.db.WithContext(ctx).Preload("Role").First(&u, id).Error
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *userRepo) List(ctx context.Context, search string) ([]model.User, error) {
	var users []model.User
	q := r.db.WithContext(ctx).Model(&model.User{}).Preload("Role")
	if search != "" {
		q = q.Where("user_name LIKE ?", "%"+search+"%")
	}
	err := q.Order("user_id ASC").Find(&users).Error
	return users, err
}

func (r *userRepo) Create(ctx context.Context, u *model.User) error {
	return r.db.WithContext(ctx).Create(u).Error
}

func (r *userRepo) Update(ctx context.Context, u *model.User) error {
	return r.db.WithContext(ctx).Save(u).Error
}

func (r *userRepo) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Delete(&model.User{}, id).Error
}
