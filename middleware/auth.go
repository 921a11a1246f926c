package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/udaya-sanjeewa/charcoal-api/auth"
	"github.com/udaya-sanjeewa/charcoal-api/models"
	"gorm.io/gorm"
)

// ValidateToken requires a valid session JWT and stores the caller's
// identity on the context.
func ValidateToken(c *gin.Context) {
	header := c.GetHeader("Authorization")
	if header == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authorization header is missing"})
		c.Abort()
		return
	}

	claims, err := auth.ParseToken(strings.TrimPrefix(header, "Bearer "))
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		c.Abort()
		return
	}

	c.Set("user_id", claims["user_id"])
	c.Set("email", claims["email"])
	c.Next()
}

// RequireAdmin verifies the bearer token against the identity provider and
// cross-checks the resulting account against the admins table. Every admin
// route goes through this; none bypass it.
func RequireAdmin(db *gorm.DB, verifier auth.Verifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Authorization header is missing"})
			c.Abort()
			return
		}

		id, err := verifier.VerifyIDToken(c.Request.Context(), strings.TrimPrefix(header, "Bearer "))
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
			c.Abort()
			return
		}

		var admin models.Admin
		if err := db.Where("email = ? AND is_active = ?", id.Email, true).First(&admin).Error; err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Not an active admin"})
			c.Abort()
			return
		}

		c.Set("admin_email", admin.Email)
		c.Next()
	}
}
