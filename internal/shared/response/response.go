package response

import (
	"github.com/gin-gonic/gin"
)

// Response - Envelope chung cho mọi API
type Response struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
	Error   *ErrorBody  `json:"error,omitempty"`
}

// ErrorBody - phần "error" của envelope
type ErrorBody struct {
	Title   string      `json:"title"`
	Details interface{} `json:"details,omitempty"`
}

// Success - 2xx với data
func Success(c *gin.Context, statusCode int, message string, data interface{}) {
	c.JSON(statusCode, Response{
		Success: true,
		Message: message,
		Data:    data,
	})
}

// Error - 4xx/5xx. details có thể là string, error hoặc validation.Errors
func Error(c *gin.Context, statusCode int, title string, details interface{}) {
	if err, ok := details.(error); ok {
		if _, isMarshaler := details.(interface{ MarshalJSON() ([]byte, error) }); !isMarshaler {
			details = err.Error()
		}
	}
	c.JSON(statusCode, Response{
		Success: false,
		Error: &ErrorBody{
			Title:   title,
			Details: details,
		},
	})
}

// Abort - Error + c.Abort(), dùng trong middleware
func Abort(c *gin.Context, statusCode int, title string, details interface{}) {
	Error(c, statusCode, title, details)
	c.Abort()
}
