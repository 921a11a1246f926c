package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/udaya-sanjeewa/charcoal-api/auth"
)

// ResolveScope establishes the identity that cart, wishlist and checkout
// rows are keyed by: the user id when a valid bearer token is presented,
// otherwise the opaque X-Session-ID the client generated for itself. A
// request carrying neither cannot be scoped and is rejected.
func ResolveScope(c *gin.Context) {
	if header := c.GetHeader("Authorization"); header != "" {
		claims, err := auth.ParseToken(strings.TrimPrefix(header, "Bearer "))
		if err == nil {
			if uid, ok := claims["user_id"].(string); ok && uid != "" {
				c.Set("user_id", uid)
				c.Next()
				return
			}
		}
	}

	if sid := c.GetHeader("X-Session-ID"); sid != "" {
		c.Set("session_id", sid)
		c.Next()
		return
	}

	c.JSON(http.StatusBadRequest, gin.H{"error": "A bearer token or X-Session-ID header is required"})
	c.Abort()
}

// ScopeFrom returns whichever identity ResolveScope stored. Exactly one of
// the two is non-empty.
func ScopeFrom(c *gin.Context) (userID, sessionID string) {
	if v, ok := c.Get("user_id"); ok {
		userID, _ = v.(string)
	}
	if v, ok := c.Get("session_id"); ok {
		sessionID, _ = v.(string)
	}
	return userID, sessionID
}
