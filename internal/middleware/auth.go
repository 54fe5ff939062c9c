package middleware

import (
	"net/http"
	"strings"

	"warungpos/internal/apierror"
	"warungpos/internal/service"

	"github.com/gin-gonic/gin"
)

const (
	ClaimsKey = "claims"
	UserIDKey = "user_id"
)

// JWTAuth validates the bearer token and stores its claims on the context.
func JWTAuth(auth *service.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized,
				apierror.New("missing bearer token"))
			return
		}
		claims, err := auth.Parse(strings.TrimPrefix(header, "Bearer "))
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized,
				apierror.New("invalid or expired token"))
			return
		}
		c.Set(ClaimsKey, claims)
		c.Set(UserIDKey, claims.UserID)
		c.Next()
	}
}

// RequirePermission gates a route on one permission id from the token.
func RequirePermission(permission string) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims := ClaimsFrom(c)
		if claims == nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized,
				apierror.New("missing bearer token"))
			return
		}
		for _, p := range claims.Permissions {
			if p == permission {
				c.Next()
				return
			}
		}
		c.AbortWithStatusJSON(http.StatusForbidden,
			apierror.New("permission denied"))
	}
}

// ClaimsFrom extracts the validated claims, or nil.
func ClaimsFrom(c *gin.Context) *service.Claims {
	v, ok := c.Get(ClaimsKey)
	if !ok {
		return nil
	}
	claims, ok := v.(*service.Claims)
	if !ok {
		return nil
	}
	return claims
}

// UserIDFrom returns the authenticated user id, or zero.
func UserIDFrom(c *gin.Context) int64 {
	return c.GetInt64(UserIDKey)
}
