package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/udaya-sanjeewa/charcoal-api/auth"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// SetupAuthRoutes registers all /api/auth/* endpoints.
func SetupAuthRoutes(r *gin.Engine, db *gorm.DB, verifier auth.Verifier, log *zap.Logger) {
	authGroup := r.Group("/api/auth")
	{
		authGroup.POST("/session", auth.CreateSession())
		authGroup.POST("/register", auth.Register(db, verifier, log))
		authGroup.POST("/user-login", auth.UserLogin(db, verifier, log))
		authGroup.POST("/verify", auth.VerifyToken())
		authGroup.POST("/logout", auth.Logout())
	}
}
