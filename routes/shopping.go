package routes

import (
	"github.com/gin-gonic/gin"
	bbqControllers "github.com/udaya-sanjeewa/charcoal-api/controllers/bbq"
	cartControllers "github.com/udaya-sanjeewa/charcoal-api/controllers/cart"
	checkoutControllers "github.com/udaya-sanjeewa/charcoal-api/controllers/checkout"
	wishlistControllers "github.com/udaya-sanjeewa/charcoal-api/controllers/wishlist"
	"github.com/udaya-sanjeewa/charcoal-api/middleware"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// SetupShoppingRoutes registers cart, wishlist, checkout and booking
// endpoints. They work for signed-in customers and anonymous sessions
// alike; ResolveScope decides which identity keys the rows.
func SetupShoppingRoutes(r *gin.Engine, db *gorm.DB, log *zap.Logger) {
	api := r.Group("/api")
	api.Use(middleware.ResolveScope)
	{
		cart := api.Group("/cart")
		{
			cart.GET("", cartControllers.GetCart(db))
			cart.POST("", cartControllers.AddToCart(db))
			cart.PUT("/items/:id", cartControllers.UpdateQuantity(db))
			cart.DELETE("/items/:id", cartControllers.RemoveFromCart(db))
			cart.DELETE("", cartControllers.ClearCart(db))
		}

		wishlist := api.Group("/wishlist")
		{
			wishlist.GET("", wishlistControllers.GetWishlist(db))
			wishlist.POST("", wishlistControllers.AddToWishlist(db))
			wishlist.DELETE("/:product_id", wishlistControllers.RemoveFromWishlist(db))
			wishlist.DELETE("", wishlistControllers.ClearWishlist(db))
		}

		api.POST("/checkout", checkoutControllers.PlaceOrder(db, log))
		api.POST("/bbq-bookings", bbqControllers.PlaceBooking(db, log))
	}
}
