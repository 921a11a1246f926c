package models

import "time"

// WishlistItem mirrors CartItem's scoping without a quantity; presence is
// the only state.
type WishlistItem struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    string    `gorm:"index;uniqueIndex:ux_wishlist_scope_product" json:"user_id,omitempty"`
	SessionID string    `gorm:"index;uniqueIndex:ux_wishlist_scope_product" json:"session_id,omitempty"`
	ProductID uint      `gorm:"uniqueIndex:ux_wishlist_scope_product" json:"product_id"`
	AddedAt   time.Time `json:"added_at"`
}
