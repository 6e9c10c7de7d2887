package middleware

import (
	"os"

	"github.com/gin-gonic/gin"
)

// CORSMiddleware adds CORS headers so the SPA frontend can talk to the
// API from its own origin. Allowed origins are the configured frontend
// URL plus localhost during development.
func CORSMiddleware(frontendURL string) gin.HandlerFunc {
	isProduction := os.Getenv("GIN_MODE") == "release"

	devOrigins := map[string]bool{
		"http://localhost:3000": true,
		"http://127.0.0.1:3000": true,
		"http://localhost:5173": true,
	}

	return func(c *gin.Context) {
		origin := c.Request.Header.Get("Origin")

		isAllowed := origin == "" || origin == frontendURL
		if !isProduction && devOrigins[origin] {
			isAllowed = true
		}

		if isAllowed {
			c.Header("Access-Control-Allow-Origin", origin)
			c.Header("Access-Control-Allow-Credentials", "true")
			c.Header("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, Authorization, accept, origin, Cache-Control, X-Requested-With, X-Request-ID")
			c.Header("Access-Control-Allow-Methods", "POST, GET, OPTIONS, PUT, DELETE, PATCH")
			c.Header("Access-Control-Max-Age", "86400")
		}

		c.Header("Vary", "Origin")

		if c.Request.Method == "OPTIONS" {
			if isAllowed {
				c.AbortWithStatus(204)
			} else {
				c.AbortWithStatus(403)
			}
			return
		}

		c.Next()
	}
}
