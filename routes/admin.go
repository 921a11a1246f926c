package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/udaya-sanjeewa/charcoal-api/auth"
	adminController "github.com/udaya-sanjeewa/charcoal-api/controllers/admin"
	bbqControllers "github.com/udaya-sanjeewa/charcoal-api/controllers/bbq"
	orderControllers "github.com/udaya-sanjeewa/charcoal-api/controllers/order"
	productcontroller "github.com/udaya-sanjeewa/charcoal-api/controllers/product"
	reviewControllers "github.com/udaya-sanjeewa/charcoal-api/controllers/review"
	"github.com/udaya-sanjeewa/charcoal-api/middleware"
	"gorm.io/gorm"
)

// SetupAdminRoutes registers all /api/admin/* endpoints. Every route goes
// through the admin check — including booking reads.
func SetupAdminRoutes(r *gin.Engine, db *gorm.DB, verifier auth.Verifier) {
	adminGroup := r.Group("/api/admin")
	adminGroup.Use(middleware.RequireAdmin(db, verifier))
	{
		products := adminGroup.Group("/products")
		{
			products.GET("", productcontroller.GetAllProducts(db))
			products.POST("", productcontroller.CreateProduct(db))
			products.PATCH("/:id", productcontroller.UpdateProduct(db))
			products.DELETE("/:id", productcontroller.DeleteProduct(db))
		}

		orders := adminGroup.Group("/orders")
		{
			orders.GET("", orderControllers.GetAllOrders(db))
			orders.GET("/export", adminController.ExportOrdersToExcel(db))
			orders.PATCH("/:id", orderControllers.UpdateOrder(db))
			orders.DELETE("/:id", orderControllers.DeleteOrder(db))
		}

		packages := adminGroup.Group("/bbq-packages")
		{
			packages.GET("", bbqControllers.GetAllPackages(db))
			packages.POST("", bbqControllers.CreatePackage(db))
			packages.PATCH("/:id", bbqControllers.UpdatePackage(db))
			packages.DELETE("/:id", bbqControllers.DeletePackage(db))
		}

		bookings := adminGroup.Group("/bbq-bookings")
		{
			bookings.GET("", bbqControllers.GetAllBookings(db))
			bookings.PUT("/:id", bbqControllers.UpdateBooking(db))
			bookings.DELETE("/:id", bbqControllers.DeleteBooking(db))
		}

		reviews := adminGroup.Group("/reviews")
		{
			reviews.GET("", reviewControllers.GetAllReviews(db))
			reviews.POST("", reviewControllers.CreateReview(db))
			reviews.PATCH("/:id", reviewControllers.UpdateReview(db))
			reviews.DELETE("/:id", reviewControllers.DeleteReview(db))
		}

		users := adminGroup.Group("/users")
		{
			users.GET("", adminController.GetAllUsers(db))
			users.DELETE("/:id", adminController.DeleteUser(db))
		}

		adminGroup.GET("/events", orderControllers.StatusFeedHandler)
	}
}
