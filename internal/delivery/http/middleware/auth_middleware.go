package middleware

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"go-interview-backend/config"
	"go-interview-backend/internal/delivery/http/response"
	"go-interview-backend/internal/domain"
)

// AuthMiddleware validates the bearer token and places the caller's
// identity on the context. Ownership checks downstream rely on the
// subject claim set here.
func AuthMiddleware(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		var tokenString string

		if authHeader != "" {
			tokenString = strings.TrimPrefix(authHeader, "Bearer ")
		} else {
			cookie, err := c.Cookie("auth_token")
			if err == nil && cookie != "" {
				tokenString = cookie
			}
		}

		if tokenString == "" {
			response.Error(c, http.StatusUnauthorized, "Authorization header or auth_token cookie required", nil)
			c.Abort()
			return
		}

		token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
			}
			if cfg.JWTSecret == "" {
				return nil, fmt.Errorf("JWT_SECRET is not configured")
			}
			return []byte(cfg.JWTSecret), nil
		})
		if err != nil || !token.Valid {
			response.Error(c, http.StatusUnauthorized, "Invalid token", nil)
			c.Abort()
			return
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			response.Error(c, http.StatusUnauthorized, "Invalid claims", nil)
			c.Abort()
			return
		}

		sub, _ := claims["sub"].(string)
		email, _ := claims["email"].(string)
		if sub == "" {
			response.Error(c, http.StatusUnauthorized, "Token missing subject", nil)
			c.Abort()
			return
		}

		c.Set(string(domain.KeyUserID), sub)
		c.Set(string(domain.KeyUserEmail), email)

		c.Next()
	}
}
