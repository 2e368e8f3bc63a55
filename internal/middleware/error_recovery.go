// Package middleware provides gin middleware for panic recovery and
// request validation.
package middleware

import (
	"net/http"
	"runtime/debug"

	"teachassist/internal/observability"
	contextutils "teachassist/internal/utils"

	"github.com/gin-gonic/gin"
)

// ErrorRecoveryMiddleware converts panics into structured JSON error
// responses instead of letting gin kill the connection. The normalization
// core is total, so a panic here means a programming error; it is logged
// with the stack and answered with a 500.
func ErrorRecoveryMiddleware(logger *observability.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if r := recover(); r != nil {
				stackTrace := string(debug.Stack())
				logger.Error(c.Request.Context(), "Panic recovered in handler", nil, map[string]interface{}{
					"panic":  r,
					"method": c.Request.Method,
					"path":   c.Request.URL.Path,
					"stack":  stackTrace,
				})

				appErr := contextutils.NewAppError(
					contextutils.ErrorCodeInternalError,
					contextutils.SeverityFatal,
					"An unexpected error occurred",
					"",
				)
				c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
					"error": appErr.ToJSON(),
				})
			}
		}()
		c.Next()
	}
}
