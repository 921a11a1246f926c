package productcontroller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/udaya-sanjeewa/charcoal-api/models"
	"github.com/udaya-sanjeewa/charcoal-api/money"
	"gorm.io/gorm"
)

// PATCH /api/admin/products/:id
//
// Orders snapshot product name and price at purchase, so edits here never
// touch placed orders.
func UpdateProduct(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var product models.Product
		if err := db.First(&product, "id = ?", c.Param("id")).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch product"})
			return
		}

		var updates map[string]interface{}
		if err := c.ShouldBindJSON(&updates); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		if category, ok := updates["category"].(string); ok && !models.ValidCategory(category) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid category"})
			return
		}

		// a display-form price is parsed to cents at this boundary
		if display, ok := updates["price"].(string); ok {
			cents, err := money.ParseDisplay(display)
			if err != nil || cents < 1 {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid price"})
				return
			}
			delete(updates, "price")
			updates["price_cents"] = cents
		}

		allowed := map[string]bool{
			"name": true, "category": true, "price_cents": true, "unit": true,
			"description": true, "images": true, "features": true, "specs": true,
			"is_active": true, "sort_order": true,
		}
		for key := range updates {
			if !allowed[key] {
				delete(updates, key)
			}
		}

		if len(updates) > 0 {
			if err := db.Model(&product).Updates(updates).Error; err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update product"})
				return
			}
		}
		c.JSON(http.StatusOK, product)
	}
}
