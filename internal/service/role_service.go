package service

import (
	"context"
	"errors"

	"warungpos/internal/apierror"
	"warungpos/internal/dto"
	"warungpos/internal/model"
	"warungpos/internal/repository"

	"github.com/rs/zerolog"
	"gorm.io/gorm"
)

type RoleService struct {
	roles  repository.RoleRepository
	audits AuditSink
	log    zerolog.Logger
}

func NewRoleService(roles repository.RoleRepository, audits AuditSink, log zerolog.Logger) *RoleService {
	return &RoleService{
		roles:  roles,
		audits: audits,
		log:    log.With().Str("component", "roles").Logger(),
	}
}

func (s *RoleService) List(ctx context.Context, search string) ([]dto.RoleResponse, error) {
	roles, err := s.roles.ListRoles(ctx, search)
	if err != nil {
		return nil, apierror.Storage("role list failed", err)
	}
	out := make([]dto.RoleResponse, 0, len(roles))
	for _, r := range roles {
		out = append(out, dto.RoleResponse{
			RoleID:          r.RoleID,
			RoleName:        r.RoleName,
			RoleDescription: r.RoleDescription,
		})
	}
	return out, nil
}

func (s *RoleService) Get(ctx context.Context, id int64) (*dto.RoleResponse, error) {
	r, err := s.roles.FindRoleByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierror.NotFound("role not found")
		}
		return nil, apierror.Storage("role lookup failed", err)
	}
	perms, err := s.roles.PermissionIDsByRole(ctx, id)
	if err != nil {
		return nil, apierror.Storage("permission lookup failed", err)
	}
	return &dto.RoleResponse{
		RoleID:          r.RoleID,
		RoleName:        r.RoleName,
		RoleDescription: r.RoleDescription,
		PermissionIDs:   perms,
	}, nil
}

func (s *RoleService) ListPermissions(ctx context.Context) ([]dto.PermissionResponse, error) {
	perms, err := s.roles.ListPermissions(ctx)
	if err != nil {
		return nil, apierror.Storage("permission list failed", err)
	}
	out := make([]dto.PermissionResponse, 0, len(perms))
	for _, p := range perms {
		out = append(out, dto.PermissionResponse{
			PermissionID:   p.PermissionID,
			PermissionName: p.PermissionName,
		})
	}
	return out, nil
}

func (s *RoleService) Create(ctx context.Context, req dto.RoleRequest, userID int64) (*dto.RoleResponse, error) {
	if err := s.checkPermissions(ctx, req.PermissionIDs); err != nil {
		return nil, err
	}
	r := &model.Role{RoleName: req.RoleName, RoleDescription: req.RoleDescription}
	if err := s.roles.CreateWithPermissions(ctx, r, req.PermissionIDs); err != nil {
		return nil, apierror.Storage("role creation failed", err)
	}
	audit(ctx, s.audits, "roles", "role created", LogCreate, nil, r, userID)
	return &dto.RoleResponse{
		RoleID:          r.RoleID,
		RoleName:        r.RoleName,
		RoleDescription: r.RoleDescription,
		PermissionIDs:   req.PermissionIDs,
	}, nil
}

// Update replaces the role name and its permission set; added and removed
// grants are derived against the current set and applied atomically.
func (s *RoleService) Update(ctx context.Context, id int64, req dto.RoleRequest, userID int64) (*dto.RoleResponse, error) {
	r, err := s.roles.FindRoleByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierror.NotFound("role not found")
		}
		return nil, apierror.Storage("role lookup failed", err)
	}
	before := *r

	if err := s.checkPermissions(ctx, req.PermissionIDs); err != nil {
		return nil, err
	}
	current, err := s.roles.PermissionIDsByRole(ctx, id)
	if err != nil {
		return nil, apierror.Storage("permission lookup failed", err)
	}
	added, removed := diffStrings(current, req.PermissionIDs)

	r.RoleName = req.RoleName
	r.RoleDescription = req.RoleDescription
	if err := s.roles.UpdateWithPermissions(ctx, r, added, removed); err != nil {
		return nil, apierror.Storage("role update failed", err)
	}
	audit(ctx, s.audits, "roles", "role updated", LogUpdate, before, r, userID)
	return &dto.RoleResponse{
		RoleID:          r.RoleID,
		RoleName:        r.RoleName,
		RoleDescription: r.RoleDescription,
		PermissionIDs:   req.PermissionIDs,
	}, nil
}

// Delete refuses to drop a role that still has users assigned.
func (s *RoleService) Delete(ctx context.Context, id int64, userID int64) error {
	r, err := s.roles.FindRoleByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apierror.NotFound("role not found")
		}
		return apierror.Storage("role lookup failed", err)
	}
	n, err := s.roles.CountUsers(ctx, id)
	if err != nil {
		return apierror.Storage("user count failed", err)
	}
	if n > 0 {
		return apierror.Conflict("role is still assigned to users")
	}
	if err := s.roles.Delete(ctx, id); err != nil {
		return apierror.Storage("role deletion failed", err)
	}
	audit(ctx, s.audits, "roles", "role deleted", LogDelete, r, nil, userID)
	return nil
}

func (s *RoleService) checkPermissions(ctx context.Context, ids []string) error {
	if len(ids) == 0 {
		return nil
	}
	catalog, err := s.roles.ListPermissions(ctx)
	if err != nil {
		return apierror.Storage("permission list failed", err)
	}
	known := make(map[string]bool, len(catalog))
	for _, p := range catalog {
		known[p.PermissionID] = true
	}
	for _, id := range ids {
		if !known[id] {
			return apierror.Validation("unknown permission: " + id)
		}
	}
	return nil
}
