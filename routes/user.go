package routes

import (
	"github.com/gin-gonic/gin"
	addressControllers "github.com/udaya-sanjeewa/charcoal-api/controllers/address"
	orderControllers "github.com/udaya-sanjeewa/charcoal-api/controllers/order"
	"github.com/udaya-sanjeewa/charcoal-api/middleware"
	"gorm.io/gorm"
)

// SetupUserRoutes registers the JWT-protected account endpoints.
func SetupUserRoutes(r *gin.Engine, db *gorm.DB) {
	userGroup := r.Group("/api")
	userGroup.Use(middleware.ValidateToken)
	{
		addresses := userGroup.Group("/addresses")
		{
			addresses.GET("", addressControllers.GetAddresses(db))
			addresses.POST("", addressControllers.CreateAddress(db))
			addresses.PUT("/:id", addressControllers.UpdateAddress(db))
			addresses.PUT("/:id/default", addressControllers.SetDefaultAddress(db))
			addresses.DELETE("/:id", addressControllers.DeleteAddress(db))
		}

		userGroup.GET("/orders", orderControllers.GetUserOrders(db))
		userGroup.GET("/orders/:number", orderControllers.GetOrderByNumber(db))
	}
}
