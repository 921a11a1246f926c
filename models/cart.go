package models

import "time"

// CartItem belongs to exactly one scope: UserID for signed-in customers,
// SessionID for anonymous visitors. Exactly one of the two is set. The
// composite unique index keeps at most one row per (scope, product); a
// racing duplicate insert surfaces as gorm.ErrDuplicatedKey and is merged
// by the caller.
type CartItem struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    string    `gorm:"index;uniqueIndex:ux_cart_scope_product" json:"user_id,omitempty"`
	SessionID string    `gorm:"index;uniqueIndex:ux_cart_scope_product" json:"session_id,omitempty"`
	ProductID uint      `gorm:"uniqueIndex:ux_cart_scope_product" json:"product_id"`
	Quantity  int       `gorm:"not null" json:"quantity"`
	AddedAt   time.Time `json:"added_at"`
}
