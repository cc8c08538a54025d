package middleware

import (
	"net/http"
	"runtime/debug"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"marketplace-backend/internal/shared/response"
)

// Recovery - panic trong handler => 500 envelope chuẩn, stack ghi vào log
func Recovery() gin.HandlerFunc {
	return gin.CustomRecoveryWithWriter(nil, func(c *gin.Context, recovered any) {
		log.Error().
			Str("request_id", c.GetString(RequestIDKey)).
			Str("method", c.Request.Method).
			Str("route", c.FullPath()).
			Interface("panic", recovered).
			Bytes("stack", debug.Stack()).
			Msg("Panic recovered")

		response.Abort(c, http.StatusInternalServerError, "Internal server error", nil)
	})
}
