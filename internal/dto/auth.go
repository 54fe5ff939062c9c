package dto

type LoginRequest struct {
	UserName string `json:"user_name" binding:"required,min=3,max=20"`
	Password string `json:"password" binding:"required,min=4"`
}

type LoginResponse struct {
	Token     string   `json:"token"`
	ExpiresAt int64    `json:"expires_at"`
	UserID    int64    `json:"user_id"`
	UserName  string   `json:"user_name"`
	RoleName  string   `json:"role_name"`
	Perms     []string `json:"permissions"`
}

type CreateUserRequest struct {
	UserName string `json:"user_name" binding:"required,min=3,max=20"`
	Password string `json:"password" binding:"required,min=4"`
	RoleID   int64  `json:"role_id" binding:"required"`
}

type UpdateUserRequest struct {
	Password *string `json:"password,omitempty" binding:"omitempty,min=4"`
	RoleID   *int64  `json:"role_id,omitempty"`
	IsActive *bool   `json:"is_active,omitempty"`
}

type UserResponse struct {
	UserID   int64  `json:"user_id"`
	UserName string `json:"user_name"`
	RoleID   int64  `json:"role_id"`
	RoleName string `json:"role_name,omitempty"`
	IsActive bool   `json:"is_active"`
}
