package auth

import (
	"errors"
	"time"

	"github.com/udaya-sanjeewa/charcoal-api/models"
	"gorm.io/gorm"
)

// MergeSessionIntoUser folds an anonymous session's cart and wishlist into
// the user scope: cart quantities for the same product are summed, wishlist
// membership is unioned, and the session-scoped rows are deleted. Runs in a
// single transaction so a failed merge leaves the anonymous rows intact.
// Returns false when the session had nothing to merge.
func MergeSessionIntoUser(db *gorm.DB, sessionID, userID string) (bool, error) {
	var merged bool

	err := db.Transaction(func(tx *gorm.DB) error {
		var cartItems []models.CartItem
		if err := tx.Where("session_id = ?", sessionID).Find(&cartItems).Error; err != nil {
			return err
		}
		var wishItems []models.WishlistItem
		if err := tx.Where("session_id = ?", sessionID).Find(&wishItems).Error; err != nil {
			return err
		}
		if len(cartItems) == 0 && len(wishItems) == 0 {
			return nil
		}
		merged = true

		for _, item := range cartItems {
			var existing models.CartItem
			err := tx.Where("user_id = ? AND product_id = ?", userID, item.ProductID).
				First(&existing).Error

			switch {
			case err == nil:
				existing.Quantity += item.Quantity
				existing.AddedAt = time.Now()
				if err := tx.Save(&existing).Error; err != nil {
					return err
				}
			case errors.Is(err, gorm.ErrRecordNotFound):
				newItem := models.CartItem{
					UserID:    userID,
					ProductID: item.ProductID,
					Quantity:  item.Quantity,
					AddedAt:   time.Now(),
				}
				if err := tx.Create(&newItem).Error; err != nil {
					return err
				}
			default:
				return err
			}
		}

		for _, item := range wishItems {
			var existing models.WishlistItem
			err := tx.Where("user_id = ? AND product_id = ?", userID, item.ProductID).
				First(&existing).Error

			if errors.Is(err, gorm.ErrRecordNotFound) {
				newItem := models.WishlistItem{
					UserID:    userID,
					ProductID: item.ProductID,
					AddedAt:   time.Now(),
				}
				if err := tx.Create(&newItem).Error; err != nil {
					return err
				}
			} else if err != nil {
				return err
			}
		}

		if err := tx.Where("session_id = ?", sessionID).Delete(&models.CartItem{}).Error; err != nil {
			return err
		}
		return tx.Where("session_id = ?", sessionID).Delete(&models.WishlistItem{}).Error
	})

	return merged, err
}
