package auth

import (
	"crypto/rand"
	"encoding/hex"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
)

// NewSessionID mints an opaque identity for an unauthenticated visitor. The
// client persists it and sends it back on every cart/wishlist call; the
// server never validates its shape.
func NewSessionID() string {
	return "anon_" + strconv.FormatInt(time.Now().UnixMilli(), 36) + "_" + randomHex(8)
}

// NewGuestToken mints the identifier stored on a guest order so a later
// claim flow could look it up. Distinct from the cart session id.
func NewGuestToken() string {
	return "guest_" + strconv.FormatInt(time.Now().UnixMilli(), 36) + "_" + randomHex(12)
}

// POST /api/auth/session
func CreateSession() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"session_id": NewSessionID()})
	}
}

func randomHex(n int) string {
	bytes := make([]byte, n)
	if _, err := rand.Read(bytes); err != nil {
		return "rand"
	}
	return hex.EncodeToString(bytes)
}
