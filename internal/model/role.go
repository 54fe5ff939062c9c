package model

type Role struct {
	RoleID          int64  `gorm:"primaryKey;autoIncrement"`
	RoleName        string `gorm:"size:20;not null;uniqueIndex"`
	RoleDescription string `gorm:"type:text;default:''"`
}

func (Role) TableName() string { return "roles" }

// Permission is a catalog entry; PermissionID is the stable machine name
// (e.g. "add_products"), PermissionName the display label.
type Permission struct {
	PermissionID   string `gorm:"primaryKey;size:30"`
	PermissionName string `gorm:"size:50;not null"`
}

func (Permission) TableName() string { return "permissions" }

type RolePermission struct {
	RoleID       int64  `gorm:"not null;index"`
	PermissionID string `gorm:"size:30;not null"`
}

func (RolePermission) TableName() string { return "role_permissions" }
