package service

import (
	"context"
	"testing"

	"warungpos/internal/dto"
	"warungpos/internal/model"
	"warungpos/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

func newAuth(db *gorm.DB) *AuthService {
	return NewAuthService(
		repository.NewUserRepository(db),
		repository.NewRoleRepository(db),
		"test-secret",
		1,
		24,
		nopLogger(),
	)
}

func seedUserWithRole(t *testing.T, db *gorm.DB, userName, password string, perms ...string) *model.User {
	t.Helper()
	role := &model.Role{RoleName: "role-" + userName}
	require.NoError(t, db.Create(role).Error)
	for _, pid := range perms {
		require.NoError(t, db.Create(&model.Permission{PermissionID: pid, PermissionName: pid}).Error)
		require.NoError(t, db.Create(&model.RolePermission{RoleID: role.RoleID, PermissionID: pid}).Error)
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	u := &model.User{UserName: userName, PasswordHash: string(hash), RoleID: role.RoleID, IsActive: true}
	require.NoError(t, db.Create(u).Error)
	return u
}

func TestLoginIssuesTokenWithPermissions(t *testing.T) {
	db := newTestDB(t)
	seedUserWithRole(t, db, "admin", "secret123", "sell", "view_products")
	auth := newAuth(db)

	resp, err := auth.Login(context.Background(), dto.LoginRequest{UserName: "admin", Password: "secret123"})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.Token)
	assert.ElementsMatch(t, []string{"sell", "view_products"}, resp.Perms)

	claims, err := auth.Parse(resp.Token)
	require.NoError(t, err)
	assert.Equal(t, "admin", claims.UserName)
	assert.ElementsMatch(t, []string{"sell", "view_products"}, claims.Permissions)
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	db := newTestDB(t)
	seedUserWithRole(t, db, "admin", "secret123")
	auth := newAuth(db)
	ctx := context.Background()

	_, err := auth.Login(ctx, dto.LoginRequest{UserName: "admin", Password: "wrong"})
	assert.Error(t, err)
	_, err = auth.Login(ctx, dto.LoginRequest{UserName: "ghost", Password: "secret123"})
	assert.Error(t, err)
}

func TestLoginRejectsInactiveUser(t *testing.T) {
	db := newTestDB(t)
	u := seedUserWithRole(t, db, "former", "secret123")
	require.NoError(t, db.Model(u).Update("is_active", false).Error)
	auth := newAuth(db)

	_, err := auth.Login(context.Background(), dto.LoginRequest{UserName: "former", Password: "secret123"})
	assert.Error(t, err)
}

func TestParseRejectsForeignToken(t *testing.T) {
	db := newTestDB(t)
	seedUserWithRole(t, db, "admin", "secret123")

	issued, err := newAuth(db).Login(context.Background(), dto.LoginRequest{UserName: "admin", Password: "secret123"})
	require.NoError(t, err)

	other := NewAuthService(
		repository.NewUserRepository(db),
		repository.NewRoleRepository(db),
		"different-secret", 1, 24, nopLogger(),
	)
	_, err = other.Parse(issued.Token)
	assert.Error(t, err)
}

func TestRefreshReissuesToken(t *testing.T) {
	db := newTestDB(t)
	u := seedUserWithRole(t, db, "admin", "secret123", "sell")
	auth := newAuth(db)
	ctx := context.Background()

	issued, err := auth.Login(ctx, dto.LoginRequest{UserName: "admin", Password: "secret123"})
	require.NoError(t, err)
	claims, err := auth.Parse(issued.Token)
	require.NoError(t, err)

	refreshed, err := auth.Refresh(ctx, claims)
	require.NoError(t, err)
	assert.NotEmpty(t, refreshed.Token)
	assert.ElementsMatch(t, []string{"sell"}, refreshed.Perms)

	// A deactivated account cannot refresh.
	require.NoError(t, db.Model(u).Update("is_active", false).Error)
	_, err = auth.Refresh(ctx, claims)
	assert.Error(t, err)
}

func TestCreateUserHashesPassword(t *testing.T) {
	db := newTestDB(t)
	role := &model.Role{RoleName: "cashier"}
	require.NoError(t, db.Create(role).Error)
	auth := newAuth(db)
	ctx := context.Background()

	resp, err := auth.CreateUser(ctx, dto.CreateUserRequest{
		UserName: "kasir", Password: "kasir123", RoleID: role.RoleID,
	})
	require.NoError(t, err)
	assert.True(t, resp.IsActive)

	var u model.User
	require.NoError(t, db.Where("user_name = ?", "kasir").First(&u).Error)
	assert.NotEqual(t, "kasir123", u.PasswordHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte("kasir123")))

	_, err = auth.CreateUser(ctx, dto.CreateUserRequest{
		UserName: "kasir", Password: "other", RoleID: role.RoleID,
	})
	assert.Error(t, err, "duplicate user name")
}
