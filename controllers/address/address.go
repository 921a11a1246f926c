package addressControllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/udaya-sanjeewa/charcoal-api/models"
	"gorm.io/gorm"
)

type AddressInput struct {
	Label     string `json:"label"`
	Recipient string `json:"recipient" binding:"required"`
	Phone     string `json:"phone"`
	Line1     string `json:"line1" binding:"required"`
	Line2     string `json:"line2"`
	City      string `json:"city"`
	State     string `json:"state"`
	Zip       string `json:"zip"`
	Country   string `json:"country"`
	IsDefault bool   `json:"is_default"`
}

// GET /api/addresses
func GetAddresses(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, _ := c.Get("user_id")

		var addresses []models.Address
		if err := db.Where("user_id = ?", userID).Order("is_default DESC, id").Find(&addresses).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch addresses"})
			return
		}
		c.JSON(http.StatusOK, addresses)
	}
}

// POST /api/addresses
func CreateAddress(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, _ := c.Get("user_id")

		var input AddressInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		addr := models.Address{
			UserID:    userID.(string),
			Label:     input.Label,
			Recipient: input.Recipient,
			Phone:     input.Phone,
			Line1:     input.Line1,
			Line2:     input.Line2,
			City:      input.City,
			State:     input.State,
			Zip:       input.Zip,
			Country:   input.Country,
		}

		err := db.Transaction(func(tx *gorm.DB) error {
			if input.IsDefault {
				if err := clearDefault(tx, addr.UserID); err != nil {
					return err
				}
				addr.IsDefault = true
			}
			return tx.Create(&addr).Error
		})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create address"})
			return
		}
		c.JSON(http.StatusCreated, addr)
	}
}

// PUT /api/addresses/:id
func UpdateAddress(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, _ := c.Get("user_id")

		var addr models.Address
		if err := db.Where("id = ? AND user_id = ?", c.Param("id"), userID).First(&addr).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "Address not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch address"})
			return
		}

		var input AddressInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		err := db.Transaction(func(tx *gorm.DB) error {
			if input.IsDefault && !addr.IsDefault {
				if err := clearDefault(tx, addr.UserID); err != nil {
					return err
				}
			}
			return tx.Model(&addr).Updates(map[string]interface{}{
				"label": input.Label, "recipient": input.Recipient, "phone": input.Phone,
				"line1": input.Line1, "line2": input.Line2, "city": input.City,
				"state": input.State, "zip": input.Zip, "country": input.Country,
				"is_default": input.IsDefault,
			}).Error
		})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update address"})
			return
		}
		c.JSON(http.StatusOK, addr)
	}
}

// PUT /api/addresses/:id/default
//
// Clear-then-set in one transaction so at most one default row per user
// can survive.
func SetDefaultAddress(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, _ := c.Get("user_id")

		var addr models.Address
		if err := db.Where("id = ? AND user_id = ?", c.Param("id"), userID).First(&addr).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "Address not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch address"})
			return
		}

		err := db.Transaction(func(tx *gorm.DB) error {
			if err := clearDefault(tx, addr.UserID); err != nil {
				return err
			}
			return tx.Model(&addr).Update("is_default", true).Error
		})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to set default address"})
			return
		}
		c.JSON(http.StatusOK, addr)
	}
}

// DELETE /api/addresses/:id
func DeleteAddress(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, _ := c.Get("user_id")

		result := db.Where("user_id = ?", userID).Delete(&models.Address{}, "id = ?", c.Param("id"))
		if result.Error != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete address"})
			return
		}
		if result.RowsAffected == 0 {
			c.JSON(http.StatusNotFound, gin.H{"error": "Address not found"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Address deleted"})
	}
}

func clearDefault(tx *gorm.DB, userID string) error {
	return tx.Model(&models.Address{}).
		Where("user_id = ? AND is_default = ?", userID, true).
		Update("is_default", false).Error
}
