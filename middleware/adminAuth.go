package middleware

import (
	"context"
	"net/http"
	"strings"

	"glowbook/services/session"
	"glowbook/utils"

	"github.com/gin-gonic/gin"
)

// AdminAuthMiddleware guards management endpoints. The bearer token must
// carry the admin claim and the client must still hold a live admin session
// in the store, so revoking the session cuts access immediately.
func AdminAuthMiddleware(store session.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "Insufficient authorization",
				"code":  0,
			})
			return
		}
		tokenString := strings.TrimPrefix(authHeader, "Bearer ")

		identity, err := utils.ExtractIdentityFromToken(tokenString)
		if err != nil || !identity.Admin {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"error": "Admin access required",
				"code":  0,
			})
			return
		}

		clientID := ClientID(c)
		stored, err := store.Load(context.Background(), clientID)
		if err != nil || stored == nil || !session.IsAdminUser(stored) {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "Admin session expired",
				"code":  0,
			})
			return
		}

		c.Set("adminID", identity.Subject)
		c.Next()
	}
}
