package middleware

import (
	"net/http"
	"strings"

	"marketplace-backend/pkg/jwt"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"marketplace-backend/internal/shared/response"
)

// Context keys set by AuthMiddleware
const (
	ContextUserID = "userID"
	ContextRole   = "role"
)

// AuthMiddleware - Middleware xác thực JWT access token
func AuthMiddleware(tokens *jwt.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		// 1. Lấy token từ Authorization header
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			response.Abort(c, http.StatusUnauthorized, "Unauthorized", "missing authorization header")
			return
		}

		// 2. Extract token từ "Bearer <token>"
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" || parts[1] == "" {
			response.Abort(c, http.StatusUnauthorized, "Unauthorized", "invalid authorization header format")
			return
		}

		// 3. Verify và parse JWT
		claims, err := tokens.ValidateAccessToken(parts[1])
		if err != nil {
			response.Abort(c, http.StatusUnauthorized, "Unauthorized", "invalid token")
			return
		}

		// 4. user_id phải là UUID
		userID, err := uuid.Parse(claims.UserID)
		if err != nil {
			response.Abort(c, http.StatusUnauthorized, "Unauthorized", "invalid user ID in token")
			return
		}

		c.Set(ContextUserID, userID)
		c.Set(ContextRole, claims.Role)
		c.Next()
	}
}

// GetUserID - userID đã được AuthMiddleware set
func GetUserID(c *gin.Context) (uuid.UUID, bool) {
	v, ok := c.Get(ContextUserID)
	if !ok {
		return uuid.Nil, false
	}
	id, ok := v.(uuid.UUID)
	return id, ok
}

// GetRole - role từ token, "" nếu chưa xác thực
func GetRole(c *gin.Context) string {
	return c.GetString(ContextRole)
}
