package routes

import (
	"github.com/gin-gonic/gin"
	bbqControllers "github.com/udaya-sanjeewa/charcoal-api/controllers/bbq"
	productcontroller "github.com/udaya-sanjeewa/charcoal-api/controllers/product"
	reviewControllers "github.com/udaya-sanjeewa/charcoal-api/controllers/review"
	"gorm.io/gorm"
)

// SetupPublicRoutes registers the catalog endpoints that need no identity
// at all.
func SetupPublicRoutes(r *gin.Engine, db *gorm.DB) {
	api := r.Group("/api")
	{
		api.GET("/products", productcontroller.GetActiveProducts(db))
		api.GET("/products/:slug", productcontroller.GetProductBySlug(db))
		api.GET("/bbq-packages", bbqControllers.GetActivePackages(db))
		api.GET("/reviews", reviewControllers.GetActiveReviews(db))
	}
}
