package adminController

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/udaya-sanjeewa/charcoal-api/models"
	"gorm.io/gorm"
)

// UserWithStats enriches a user row with aggregated order figures.
type UserWithStats struct {
	models.User
	OrderCount      int64 `json:"order_count"`
	TotalSpentCents int64 `json:"total_spent_cents"`
}

// GET /api/admin/users
func GetAllUsers(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var users []UserWithStats
		err := db.Model(&models.User{}).
			Select("users.*, COUNT(orders.id) AS order_count, COALESCE(SUM(orders.total_cents), 0) AS total_spent_cents").
			Joins("LEFT JOIN orders ON orders.user_id = users.id").
			Group("users.id").
			Order("users.created_at DESC").
			Scan(&users).Error
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, users)
	}
}

// DELETE /api/admin/users/:id
//
// Removes the account and its cart, wishlist and addresses. Orders are kept
// for the books; their user_id keeps pointing at the deleted id.
func DeleteUser(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.Param("id")

		err := db.Transaction(func(tx *gorm.DB) error {
			if err := tx.Where("user_id = ?", userID).Delete(&models.CartItem{}).Error; err != nil {
				return err
			}
			if err := tx.Where("user_id = ?", userID).Delete(&models.WishlistItem{}).Error; err != nil {
				return err
			}
			if err := tx.Where("user_id = ?", userID).Delete(&models.Address{}).Error; err != nil {
				return err
			}
			result := tx.Delete(&models.User{}, "id = ?", userID)
			if result.Error != nil {
				return result.Error
			}
			if result.RowsAffected == 0 {
				return gorm.ErrRecordNotFound
			}
			return nil
		})
		if err == gorm.ErrRecordNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
			return
		}
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "User deleted"})
	}
}
