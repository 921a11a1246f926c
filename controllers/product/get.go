package productcontroller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/udaya-sanjeewa/charcoal-api/models"
	"github.com/udaya-sanjeewa/charcoal-api/money"
	"gorm.io/gorm"
)

// ProductView decorates a product with its rendered price. Prices live as
// cents in the store; the display string exists only at this boundary.
type ProductView struct {
	models.Product
	PriceDisplay string `json:"price_display"`
}

func view(p models.Product) ProductView {
	return ProductView{Product: p, PriceDisplay: money.FormatCents(p.PriceCents, p.Currency)}
}

// GET /api/products
// Optional ?category= filter against the closed category enum.
func GetActiveProducts(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		q := db.Where("is_active = ?", true).Order("sort_order, id")
		if category := c.Query("category"); category != "" {
			if !models.ValidCategory(category) {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid category"})
				return
			}
			q = q.Where("category = ?", category)
		}

		var products []models.Product
		if err := q.Find(&products).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch products"})
			return
		}

		views := make([]ProductView, 0, len(products))
		for _, p := range products {
			views = append(views, view(p))
		}
		c.JSON(http.StatusOK, views)
	}
}

// GET /api/products/:slug
func GetProductBySlug(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var product models.Product
		err := db.Where("slug = ? AND is_active = ?", c.Param("slug"), true).First(&product).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve product"})
			return
		}
		c.JSON(http.StatusOK, view(product))
	}
}

// GET /api/admin/products
func GetAllProducts(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var products []models.Product
		if err := db.Order("sort_order, id").Find(&products).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch products"})
			return
		}
		c.JSON(http.StatusOK, products)
	}
}
