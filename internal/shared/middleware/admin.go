package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"marketplace-backend/internal/shared/response"
)

// RequireRoles - Chỉ cho phép các role trong danh sách (chạy sau AuthMiddleware)
func RequireRoles(roles ...string) gin.HandlerFunc {
	allowed := make(map[string]struct{}, len(roles))
	for _, r := range roles {
		allowed[r] = struct{}{}
	}

	return func(c *gin.Context) {
		if _, ok := allowed[GetRole(c)]; !ok {
			response.Abort(c, http.StatusForbidden, "Forbidden", "Access denied: insufficient role")
			return
		}
		c.Next()
	}
}

// AdminMiddleware checks if user has admin role
func AdminMiddleware() gin.HandlerFunc {
	return RequireRoles("admin")
}
