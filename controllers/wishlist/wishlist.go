package wishlistControllers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/udaya-sanjeewa/charcoal-api/middleware"
	"github.com/udaya-sanjeewa/charcoal-api/models"
	"gorm.io/gorm"
)

type AddToWishlistInput struct {
	ProductID uint `json:"product_id" binding:"required"`
}

type WishlistLine struct {
	models.WishlistItem
	Product models.Product `json:"product"`
}

func scopeQuery(db *gorm.DB, userID, sessionID string) *gorm.DB {
	if userID != "" {
		return db.Where("user_id = ?", userID)
	}
	return db.Where("session_id = ?", sessionID)
}

// GET /api/wishlist
func GetWishlist(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, sessionID := middleware.ScopeFrom(c)

		var items []models.WishlistItem
		if err := scopeQuery(db, userID, sessionID).Order("added_at").Find(&items).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch wishlist"})
			return
		}

		lines := []WishlistLine{}
		if len(items) > 0 {
			ids := make([]uint, 0, len(items))
			for _, item := range items {
				ids = append(ids, item.ProductID)
			}
			var products []models.Product
			if err := db.Where("id IN ?", ids).Find(&products).Error; err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch wishlist"})
				return
			}
			byID := make(map[uint]models.Product, len(products))
			for _, p := range products {
				byID[p.ID] = p
			}
			for _, item := range items {
				if product, ok := byID[item.ProductID]; ok {
					lines = append(lines, WishlistLine{WishlistItem: item, Product: product})
				}
			}
		}

		c.JSON(http.StatusOK, gin.H{"items": lines})
	}
}

// POST /api/wishlist
//
// Adding a product already on the list is a no-op with a notice, not an
// error. A unique-constraint violation from a racing add is treated the
// same way.
func AddToWishlist(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, sessionID := middleware.ScopeFrom(c)

		var input AddToWishlistInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		var product models.Product
		if err := db.First(&product, "id = ?", input.ProductID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Product does not exist"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to validate product"})
			return
		}

		var existing models.WishlistItem
		err := scopeQuery(db, userID, sessionID).
			Where("product_id = ?", input.ProductID).
			First(&existing).Error
		if err == nil {
			c.JSON(http.StatusOK, gin.H{"message": "Already in wishlist"})
			return
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to check wishlist"})
			return
		}

		item := models.WishlistItem{
			UserID:    userID,
			SessionID: sessionID,
			ProductID: input.ProductID,
			AddedAt:   time.Now(),
		}
		if err := db.Create(&item).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				c.JSON(http.StatusOK, gin.H{"message": "Already in wishlist"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to add to wishlist"})
			return
		}

		c.JSON(http.StatusCreated, gin.H{"message": "Added to wishlist", "item": item})
	}
}

// DELETE /api/wishlist/:product_id
//
// Deletes by (scope, product) rather than row id, so it works against a
// stale client view.
func RemoveFromWishlist(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, sessionID := middleware.ScopeFrom(c)
		productID := c.Param("product_id")

		result := scopeQuery(db, userID, sessionID).
			Where("product_id = ?", productID).
			Delete(&models.WishlistItem{})
		if result.Error != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to remove from wishlist"})
			return
		}
		if result.RowsAffected == 0 {
			c.JSON(http.StatusNotFound, gin.H{"error": "Wishlist item not found"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Removed from wishlist"})
	}
}

// DELETE /api/wishlist
func ClearWishlist(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, sessionID := middleware.ScopeFrom(c)

		if err := scopeQuery(db, userID, sessionID).Delete(&models.WishlistItem{}).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to clear wishlist"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Wishlist cleared"})
	}
}
