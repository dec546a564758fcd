package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"sweetshop/api/internal/models"
)

// RequireRole gates a route on the caller's role claim. Runs after Auth,
// so a missing claim means the chain is miswired and reads as 401, while
// a present-but-wrong role is 403.
func RequireRole(roles ...models.Role) gin.HandlerFunc {
	roleSet := make(map[models.Role]struct{}, len(roles))
	for _, role := range roles {
		roleSet[role] = struct{}{}
	}

	return func(c *gin.Context) {
		claims, ok := CurrentClaims(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error":   "Unauthorized",
				"message": "Authentication required",
			})
			return
		}

		if _, ok := roleSet[claims.Role]; !ok {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"error":   "Forbidden",
				"message": "Admin access required",
			})
			return
		}

		c.Next()
	}
}
