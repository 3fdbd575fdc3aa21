package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// JWTAuthAdminMiddleware requires an authenticated caller whose token
// carries the admin flag. Must run after JWTAuthUserMiddleware.
func JWTAuthAdminMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		isAdmin, exists := c.Get("isAdmin")
		if !exists || isAdmin != true {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Admin access required"})
			return
		}
		c.Next()
	}
}
