package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
)

// ClientIDKey is the context key holding the caller's client identifier.
const ClientIDKey = "clientID"

// ClientIDMiddleware resolves which client session the request belongs to.
// Well-behaved clients send a stable X-Client-ID; everything else is keyed
// by source IP so sessions still work, just with coarser identity.
func ClientIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		clientID := strings.TrimSpace(c.GetHeader("X-Client-ID"))
		if clientID == "" {
			clientID = "ip:" + getClientIP(c)
		}
		c.Set(ClientIDKey, clientID)
		c.Next()
	}
}

// ClientID returns the resolved client identifier for the request.
func ClientID(c *gin.Context) string {
	if v, ok := c.Get(ClientIDKey); ok {
		if id, ok := v.(string); ok {
			return id
		}
	}
	return "ip:" + getClientIP(c)
}
