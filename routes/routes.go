package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/udaya-sanjeewa/charcoal-api/auth"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// SetupRoutes is the single entry-point that wires up the public, auth,
// shopping, user and admin route groups.
func SetupRoutes(r *gin.Engine, db *gorm.DB, verifier auth.Verifier, log *zap.Logger) {
	SetupPublicRoutes(r, db)
	SetupAuthRoutes(r, db, verifier, log)
	SetupShoppingRoutes(r, db, log)
	SetupUserRoutes(r, db)
	SetupAdminRoutes(r, db, verifier)
}
