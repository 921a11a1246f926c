package auth

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/udaya-sanjeewa/charcoal-api/models"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type RegisterRequest struct {
	Email     string `json:"email" binding:"required,email"`
	Password  string `json:"password" binding:"required,min=6"`
	Name      string `json:"name"`
	SessionID string `json:"session_id"`
}

type LoginRequest struct {
	IDToken   string `json:"idToken" binding:"required"`
	SessionID string `json:"session_id"`
}

// POST /api/auth/register
func Register(db *gorm.DB, verifier Verifier, log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req RegisterRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		id, err := verifier.CreateUser(c.Request.Context(), req.Email, req.Password, req.Name)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to create account: " + err.Error()})
			return
		}

		user := models.User{
			ID:       id.UID,
			Email:    id.Email,
			Name:     req.Name,
			Provider: "password",
		}
		if err := db.Create(&user).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create user"})
			return
		}

		mergeStatus := reconcileSession(db, req.SessionID, user.ID, log)

		token, err := IssueToken(user.ID, user.Email, "user")
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Token generation failed"})
			return
		}

		c.JSON(http.StatusCreated, gin.H{
			"user":         user,
			"token":        token,
			"merge_status": mergeStatus,
		})
	}
}

// POST /api/auth/user-login
//
// Verifies the identity-provider token, upserts the local user row, then
// reconciles the visitor's anonymous cart and wishlist into the user scope.
func UserLogin(db *gorm.DB, verifier Verifier, log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req LoginRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		id, err := verifier.VerifyIDToken(c.Request.Context(), req.IDToken)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid ID token"})
			return
		}

		var user models.User
		err = db.First(&user, "id = ?", id.UID).Error
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			user = models.User{
				ID:       id.UID,
				Email:    id.Email,
				Name:     id.Name,
				Picture:  id.Picture,
				Provider: "firebase",
			}
			if err := db.Create(&user).Error; err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create user"})
				return
			}
		case err == nil:
			db.Model(&user).Updates(models.User{Name: id.Name, Picture: id.Picture})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
			return
		}

		mergeStatus := reconcileSession(db, req.SessionID, user.ID, log)

		token, err := IssueToken(user.ID, user.Email, "user")
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Token generation failed"})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"message":      "Login successful",
			"user":         user,
			"token":        token,
			"merge_status": mergeStatus,
		})
	}
}

// POST /api/auth/verify
func VerifyToken() gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Authorization header is missing"})
			return
		}
		claims, err := ParseToken(strings.TrimPrefix(header, "Bearer "))
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"user_id": claims["user_id"],
			"email":   claims["email"],
			"role":    claims["role"],
		})
	}
}

// POST /api/auth/logout
//
// Tokens are stateless; logout exists so clients have a uniform endpoint to
// call while discarding their local token.
func Logout() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "Logged out"})
	}
}

func reconcileSession(db *gorm.DB, sessionID, userID string, log *zap.Logger) string {
	if sessionID == "" {
		return "no-session"
	}
	merged, err := MergeSessionIntoUser(db, sessionID, userID)
	switch {
	case err != nil:
		log.Warn("session merge failed",
			zap.String("session_id", sessionID),
			zap.String("user_id", userID),
			zap.Error(err))
		return "merge-failed"
	case merged:
		return "merged"
	default:
		return "session-empty"
	}
}
