package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"campuscare/services/user"
	"campuscare/utils"
)

// JWTAuthUserMiddleware validates the Bearer token and stores the
// caller identity on the context. With optional set, requests without
// a valid token pass through anonymously (used for guest booking
// creation); otherwise they are rejected. Tokens revoked via logout
// are treated as absent.
func JWTAuthUserMiddleware(optional bool, revoker user.TokenRevoker) gin.HandlerFunc {
	return func(c *gin.Context) {
		reject := func() {
			if optional {
				c.Next()
				return
			}
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Insufficient authorization"})
		}

		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			reject()
			return
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		claims, err := utils.ExtractClaimsFromToken(tokenString)
		if err != nil || claims.UserID == "" {
			reject()
			return
		}

		if revoker != nil {
			revoked, err := revoker.IsRevoked(c.Request.Context(), tokenString)
			if err != nil {
				// Fail open: an unreachable auth cache must not lock
				// every caller out.
				utils.GetLogger().Warn("revocation check failed", zap.Error(err))
			} else if revoked {
				reject()
				return
			}
		}

		c.Set("userID", claims.UserID)
		c.Set("userEmail", claims.Email)
		c.Set("isAdmin", claims.IsAdmin)
		c.Next()
	}
}
