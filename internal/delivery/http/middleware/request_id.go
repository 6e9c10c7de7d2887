package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// RequestID assigns each request a correlation id, echoed in responses
// and available to the response envelope.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader("X-Request-ID")
		if id == "" {
			id = uuid.NewString()
		}
		c.Set("RequestID", id)
		c.Header("X-Request-ID", id)
		c.Next()
	}
}
