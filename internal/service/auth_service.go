package service

import (
	"context"
	"errors"
	"time"

	"warungpos/internal/apierror"
	"warungpos/internal/dto"
	"warungpos/internal/model"
	"warungpos/internal/repository"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Claims is the JWT payload. Permissions ride in the token so handlers can
// authorize without a database round trip per request.
type Claims struct {
	UserID      int64    `json:"user_id"`
	UserName    string   `json:"user_name"`
	RoleID      int64    `json:"role_id"`
	RoleName    string   `json:"role_name"`
	Permissions []string `json:"permissions"`
	jwt.RegisteredClaims
}

type AuthService struct {
	users     repository.UserRepository
	roles     repository.RoleRepository
	secret    []byte
	expiresIn time.Duration
	refreshIn time.Duration
	log       zerolog.Logger
}

func NewAuthService(users repository.UserRepository, roles repository.RoleRepository, secret string, expirationHours, refreshHours int, log zerolog.Logger) *AuthService {
	return &AuthService{
		users:     users,
		roles:     roles,
		secret:    []byte(secret),
		expiresIn: time.Duration(expirationHours) * time.Hour,
		refreshIn: time.Duration(refreshHours) * time.Hour,
		log:       log.With().Str("component", "auth").Logger(),
	}
}

func (s *AuthService) Login(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, error) {
	u, err := s.users.FindByUserName(ctx, req.UserName)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierror.Unauthorized("invalid credentials")
		}
		return nil, apierror.Storage("user lookup failed", err)
	}
	if !u.IsActive {
		return nil, apierror.Unauthorized("account is disabled")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(req.Password)); err != nil {
		s.log.Warn().Str("user_name", req.UserName).Msg("failed login attempt")
		return nil, apierror.Unauthorized("invalid credentials")
	}

	perms, err := s.roles.PermissionIDsByRole(ctx, u.RoleID)
	if err != nil {
		return nil, apierror.Storage("permission lookup failed", err)
	}

	roleName := ""
	if u.Role != nil {
		roleName = u.Role.RoleName
	}

	expiresAt := time.Now().Add(s.expiresIn)
	claims := Claims{
		UserID:      u.UserID,
		UserName:    u.UserName,
		RoleID:      u.RoleID,
		RoleName:    roleName,
		Permissions: perms,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			Subject:   u.UserName,
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return nil, apierror.Storage("token signing failed", err)
	}

	s.log.Info().Str("user_name", u.UserName).Str("role", roleName).Msg("user logged in")
	return &dto.LoginResponse{
		Token:     token,
		ExpiresAt: expiresAt.Unix(),
		UserID:    u.UserID,
		UserName:  u.UserName,
		RoleName:  roleName,
		Perms:     perms,
	}, nil
}

// Refresh issues a fresh token for a still-valid session, as long as the
// original login is inside the refresh window. The user record is re-read so
// a deactivated account or changed role takes effect on the next refresh.
func (s *AuthService) Refresh(ctx context.Context, claims *Claims) (*dto.LoginResponse, error) {
	if claims == nil || claims.IssuedAt == nil || time.Since(claims.IssuedAt.Time) > s.refreshIn {
		return nil, apierror.Unauthorized("refresh window expired, log in again")
	}

	u, err := s.users.FindByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierror.Unauthorized("account no longer exists")
		}
		return nil, apierror.Storage("user lookup failed", err)
	}
	if !u.IsActive {
		return nil, apierror.Unauthorized("account is disabled")
	}

	perms, err := s.roles.PermissionIDsByRole(ctx, u.RoleID)
	if err != nil {
		return nil, apierror.Storage("permission lookup failed", err)
	}
	roleName := ""
	if u.Role != nil {
		roleName = u.Role.RoleName
	}

	expiresAt := time.Now().Add(s.expiresIn)
	next := Claims{
		UserID:      u.UserID,
		UserName:    u.UserName,
		RoleID:      u.RoleID,
		RoleName:    roleName,
		Permissions: perms,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  claims.IssuedAt,
			Subject:   u.UserName,
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, next).SignedString(s.secret)
	if err != nil {
		return nil, apierror.Storage("token signing failed", err)
	}
	return &dto.LoginResponse{
		Token:     token,
		ExpiresAt: expiresAt.Unix(),
		UserID:    u.UserID,
		UserName:  u.UserName,
		RoleName:  roleName,
		Perms:     perms,
	}, nil
}

// Parse validates a token string and returns its claims.
func (s *AuthService) Parse(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return s.secret, nil
	})
	if err != nil || !token.Valid {
		return nil, apierror.Unauthorized("invalid or expired token")
	}
	claims, ok := token.Claims.(*Claims)
	if !ok {
		return nil, apierror.Unauthorized("invalid token claims")
	}
	return claims, nil
}

// CreateUser registers a user with a bcrypt-hashed password.
func (s *AuthService) CreateUser(ctx context.Context, req dto.CreateUserRequest) (*dto.UserResponse, error) {
	if _, err := s.roles.FindRoleByID(ctx, req.RoleID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierror.Validation("role does not exist")
		}
		return nil, apierror.Storage("role lookup failed", err)
	}
	if _, err := s.users.FindByUserName(ctx, req.UserName); err == nil {
		return nil, apierror.Conflict("user name already taken")
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apierror.Storage("user lookup failed", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, apierror.Storage("password hashing failed", err)
	}
	u := &model.User{
		UserName:     req.UserName,
		PasswordHash: string(hash),
		RoleID:       req.RoleID,
		IsActive:     true,
	}
	if err := s.users.Create(ctx, u); err != nil {
		return nil, apierror.Storage("user creation failed", err)
	}
	return userResponse(u), nil
}

func (s *AuthService) UpdateUser(ctx context.Context, id int64, req dto.UpdateUserRequest) (*dto.UserResponse, error) {
	u, err := s.users.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierror.NotFound("user not found")
		}
		return nil, apierror.Storage("user lookup failed", err)
	}
	if req.Password != nil {
		hash, err := bcrypt.GenerateFromPassword([]byte(*req.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, apierror.Storage("password hashing failed", err)
		}
		u.PasswordHash = string(hash)
	}
	if req.RoleID != nil {
		if _, err := s.roles.FindRoleByID(ctx, *req.RoleID); err != nil {
			return nil, apierror.Validation("role does not exist")
		}
		u.RoleID = *req.RoleID
	}
	if req.IsActive != nil {
		u.IsActive = *req.IsActive
	}
	u.Role = nil
	if err := s.users.Update(ctx, u); err != nil {
		return nil, apierror.Storage("user update failed", err)
	}
	return userResponse(u), nil
}

func (s *AuthService) ListUsers(ctx context.Context, search string) ([]dto.UserResponse, error) {
	users, err := s.users.List(ctx, search)
	if err != nil {
		return nil, apierror.Storage("user list failed", err)
	}
	out := make([]dto.UserResponse, 0, len(users))
	for i := range users {
		out = append(out, *userResponse(&users[i]))
	}
	return out, nil
}

func (s *AuthService) DeleteUser(ctx context.Context, id int64) error {
	if _, err := s.users.FindByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apierror.NotFound("user not found")
		}
		return apierror.Storage("user lookup failed", err)
	}
	if err := s.users.Delete(ctx, id); err != nil {
		return apierror.Storage("user deletion failed", err)
	}
	return nil
}

func userResponse(u *model.User) *dto.UserResponse {
	resp := &dto.UserResponse{
		UserID:   u.UserID,
		UserName: u.UserName,
		RoleID:   u.RoleID,
		IsActive: u.IsActive,
	}
	if u.Role != nil {
		resp.RoleName = u.Role.RoleName
	}
	return resp
}
