package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/jyhan-dev/seodang/internal/app/models/dto"
	"github.com/jyhan-dev/seodang/internal/pkg/auth"
)

// ContextUserIDKey is the gin context key carrying the authenticated user id.
const ContextUserIDKey = "userID"

// AuthMiddleware guards report routes behind JWT validation
type AuthMiddleware struct {
	jwtService *auth.JWTService
}

// NewAuthMiddleware creates a new AuthMiddleware
func NewAuthMiddleware(jwtService *auth.JWTService) *AuthMiddleware {
	return &AuthMiddleware{jwtService: jwtService}
}

// JWTAuth validates the bearer token and stores the requester id on the
// context; the report pipeline records it on generated artifacts.
func (m *AuthMiddleware) JWTAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.APIResponse{
				Error: dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Authorization header required"),
			})
			return
		}

		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.APIResponse{
				Error: dto.NewErrorDetail(dto.ErrorCodeInvalidToken, "Invalid authorization header format"),
			})
			return
		}

		claims, err := m.jwtService.ValidateToken(parts[1])
		if err != nil {
			code := dto.ErrorCodeInvalidToken
			message := "Invalid token"
			if err == auth.ErrExpiredToken {
				code = dto.ErrorCodeExpiredToken
				message = "Token expired"
			}
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.APIResponse{
				Error: dto.NewErrorDetail(code, message),
			})
			return
		}

		c.Set(ContextUserIDKey, claims.UserID)
		c.Next()
	}
}

// RequesterID reads the authenticated user id set by JWTAuth. Returns 0 when
// the route is unauthenticated.
func RequesterID(c *gin.Context) int64 {
	if v, ok := c.Get(ContextUserIDKey); ok {
		if id, ok := v.(int64); ok {
			return id
		}
	}
	return 0
}
