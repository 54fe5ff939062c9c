package repository

import (
	"context"

	"warungpos/internal/model"

	"gorm.io/gorm"
)

// RoleRepository covers roles, the permission catalog, and the join table
// binding them.
type RoleRepository interface {
	ListRoles(ctx context.Context, search string) ([]model.Role, error)
	FindRoleByID(ctx context.Context, id int64) (*model.Role, error)
	ListPermissions(ctx context.Context) ([]model.Permission, error)
	PermissionIDsByRole(ctx context.Context, roleID int64) ([]string, error)
	PermissionNamesByRole(ctx context.Context, roleID int64) ([]string, error)
	CreateWithPermissions(ctx context.Context, role *model.Role, permissionIDs []string) error
	UpdateWithPermissions(ctx context.Context, role *model.Role, added, removed []string) error
	Delete(ctx context.Context, id int64) error
	CountUsers(ctx context.Context, roleID int64) (int64, error)
}

type roleRepo struct{ db *gorm.DB }

func NewRoleRepository(db *gorm.DB) RoleRepository { return &roleRepo{db: db} }

func (r *roleRepo) ListRoles(ctx context.Context, search string) ([]model.Role, error) {
	var roles []model.Role
	q := r.db.WithContext(ctx).Model(&model.Role{})
	if search != "" {
		q = q.Where("role_name LIKE ?", "%"+search+"%")
	}
	err := q.Order("role_id ASC").Find(&roles).Error
	return roles, err
}

func (r *roleRepo) FindRoleByID(ctx context.Context, id int64) (*model.Role, error) {
	var role model.Role
	err := r.db.WithContext(ctx).First(&role, id).Error
	if err != nil {
		return nil, err
	}
	return &role, nil
}

func (r *roleRepo) ListPermissions(ctx context.Context) ([]model.Permission, error) {
	var permissions []model.Permission
	err := r.db.WithContext(ctx).Order("permission_id ASC").Find(&permissions).Error
	return permissions, err
}

func (r *roleRepo) PermissionIDsByRole(ctx context.Context, roleID int64) ([]string, error) {
	var ids []string
	err := r.db.WithContext(ctx).Model(&model.RolePermission{}).
		Where("role_id = ?", roleID).Pluck("permission_id", &ids).Error
	return ids, err
}

func (r *roleRepo) PermissionNamesByRole(ctx context.Context, roleID int64) ([]string, error) {
	var names []string
	err := r.db.WithContext(ctx).Model(&model.Permission{}).
		Joins("JOIN role_permissions ON role_permissions.permission_id = permissions.permission_id").
		Where("role_permissions.role_id = ?", roleID).
		Pluck("permissions.permission_name", &names).Error
	return names, err
}

func (r *roleRepo) CreateWithPermissions(ctx context.Context, role *model.Role, permissionIDs []string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(role).Error; err != nil {
			return err
		}
		for _, pid := range permissionIDs {
			rp := model.RolePermission{RoleID: role.RoleID, PermissionID: pid}
			if err := tx.Create(&rp).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *roleRepo) UpdateWithPermissions(ctx context.Context, role *model.Role, added, removed []string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&model.Role{}).Where("role_id = ?", role.RoleID).
			Update("role_name", role.RoleName).Error; err != nil {
			return err
		}
		for _, pid := range added {
			rp := model.RolePermission{RoleID: role.RoleID, PermissionID: pid}
			if err := tx.Create(&rp).Error; err != nil {
				return err
			}
		}
		if len(removed) > 0 {
			if err := tx.Where("role_id = ? AND permission_id IN ?", role.RoleID, removed).
				Delete(&model.RolePermission{}).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *roleRepo) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("role_id = ?", id).Delete(&model.RolePermission{}).Error; err != nil {
			return err
		}
		return tx.Delete(&model.Role{}, id).Error
	})
}

func (r *roleRepo) CountUsers(ctx context.Context, roleID int64) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&model.User{}).Where("role_id = ?", roleID).Count(&n).Error
	return n, err
}
