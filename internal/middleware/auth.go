package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"sweetshop/api/internal/config"
	"sweetshop/api/internal/security"
)

const claimsKey = "access_claims"

// Auth derives the caller's identity from the Authorization header.
// The header must carry exactly "Bearer <token>"; anything else is
// rejected before the verifier is even consulted. Tokens are stateless,
// so no store lookup happens here.
func Auth(cfg *config.AppConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error":   "Unauthorized",
				"message": "Authentication required",
			})
			return
		}

		tokenStr := strings.TrimPrefix(authHeader, "Bearer ")

		claims, err := security.ParseToken(tokenStr, cfg.Security.JWTSecret)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error":   "Unauthorized",
				"message": "Authentication required",
			})
			return
		}

		c.Set(claimsKey, *claims)

		c.Next()
	}
}

// CurrentClaims returns the verified claims stored by Auth.
func CurrentClaims(c *gin.Context) (security.Claims, bool) {
	val, exists := c.Get(claimsKey)
	if !exists {
		return security.Claims{}, false
	}
	claims, ok := val.(security.Claims)
	return claims, ok
}
