package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/mindease/mindease-server/internal/app/models"
	"github.com/mindease/mindease-server/internal/app/models/dto"
	"github.com/mindease/mindease-server/internal/pkg/apperrors"
	"github.com/mindease/mindease-server/internal/pkg/auth"
)

// Context keys set by JWTAuth
const (
	ContextUserID   = "userID"
	ContextEmail    = "email"
	ContextUserType = "userType"
)

// AuthMiddleware for authentication and authorization
type AuthMiddleware struct {
	jwtService *auth.JWTService
}

// NewAuthMiddleware creates a new AuthMiddleware
func NewAuthMiddleware(jwtService *auth.JWTService) *AuthMiddleware {
	return &AuthMiddleware{
		jwtService: jwtService,
	}
}

// JWTAuth middleware for JWT token validation
func (m *AuthMiddleware) JWTAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString, err := auth.ExtractBearerToken(c.GetHeader("Authorization"))
		if err != nil {
			if errors.Is(err, apperrors.ErrTokenMissing) {
				c.AbortWithStatusJSON(http.StatusUnauthorized,
					dto.NewErrorResponse(dto.ErrorCodeUnauthorized, "Authentication required"))
				return
			}
			c.AbortWithStatusJSON(http.StatusUnauthorized,
				dto.NewErrorResponse(dto.ErrorCodeInvalidToken, "Invalid token format"))
			return
		}

		claims, err := m.jwtService.ValidateToken(tokenString)
		if err != nil {
			if errors.Is(err, apperrors.ErrTokenExpired) {
				c.AbortWithStatusJSON(http.StatusUnauthorized,
					dto.NewErrorResponse(dto.ErrorCodeExpiredToken, "Token has expired"))
				return
			}
			c.AbortWithStatusJSON(http.StatusUnauthorized,
				dto.NewErrorResponse(dto.ErrorCodeInvalidToken, "Invalid token"))
			return
		}

		c.Set(ContextUserID, claims.UserID)
		c.Set(ContextEmail, claims.Email)
		c.Set(ContextUserType, models.UserType(claims.UserType))

		c.Next()
	}
}

// RoleRequired lets the request through only if JWTAuth stored one of the given roles
func (m *AuthMiddleware) RoleRequired(roles ...models.UserType) gin.HandlerFunc {
	return func(c *gin.Context) {
		value, exists := c.Get(ContextUserType)
		if !exists {
			c.AbortWithStatusJSON(http.StatusUnauthorized,
				dto.NewErrorResponse(dto.ErrorCodeUnauthorized, "Authentication required"))
			return
		}

		userType, _ := value.(models.UserType)
		for _, role := range roles {
			if userType == role {
				c.Next()
				return
			}
		}

		c.AbortWithStatusJSON(http.StatusForbidden,
			dto.NewErrorResponse(dto.ErrorCodeForbidden, "You don't have sufficient permissions for this operation"))
	}
}

// GetUserID returns the authenticated user's id stored by JWTAuth
func GetUserID(c *gin.Context) (int64, bool) {
	value, exists := c.Get(ContextUserID)
	if !exists {
		return 0, false
	}
	id, ok := value.(int64)
	return id, ok
}
