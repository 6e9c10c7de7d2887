package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"go-interview-backend/internal/delivery/http/response"
	"go-interview-backend/pkg/apperror"
	"go-interview-backend/pkg/logger"
)

// ErrorHandler translates errors attached to the gin context into the
// standard response envelope. Typed AppErrors map to their status code
// and kind; anything else is logged server-side and returned as a
// generic 500 to avoid information disclosure.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) > 0 {
			err := c.Errors.Last().Err
			var appErr *apperror.AppError
			if errors.As(err, &appErr) {
				response.Error(c, appErr.Code, appErr.Message, gin.H{"kind": appErr.Kind})
				return
			}
			logger.Log.Error("unhandled error", "path", c.FullPath(), "error", err)
			response.Error(c, http.StatusInternalServerError, "An unexpected error occurred. Please try again later.", nil)
		}
	}
}
