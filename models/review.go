package models

import "time"

// Review display order is a manually adjustable integer, not a recency sort.
type Review struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	CustomerName string    `gorm:"not null" json:"customer_name"`
	Title        string    `json:"title"`
	Body         string    `json:"body"`
	Rating       int       `gorm:"not null" json:"rating"` // 1..5
	IsActive     bool      `gorm:"default:true;index" json:"is_active"`
	DisplayOrder int       `gorm:"default:0" json:"display_order"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
