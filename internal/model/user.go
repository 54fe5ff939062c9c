package model

import "time"

type User struct {
	UserID       int64  `gorm:"primaryKey;autoIncrement"`
	UserName     string `gorm:"size:20;not null;uniqueIndex"`
	PasswordHash string `gorm:"size:255;not null"`
	RoleID       int64  `gorm:"not null"`
	IsActive     bool   `gorm:"not null;default:true"`
	CreatedAt    time.Time
	UpdatedAt    *time.Time

	Role *Role `gorm:"belongsTo;foreignKey:RoleID;references:RoleID"`
}

func (User) TableName() string { return "users" }
