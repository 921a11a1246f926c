package models

import (
	"time"

	"gorm.io/gorm"
)

type ProductCategory string

const (
	CategoryFirewood ProductCategory = "firewood"
	CategoryCharcoal ProductCategory = "charcoal"
	CategoryBundles  ProductCategory = "bundles"
	CategoryRentals  ProductCategory = "rentals"
)

// ValidCategory reports whether s is one of the closed category values.
func ValidCategory(s string) bool {
	switch ProductCategory(s) {
	case CategoryFirewood, CategoryCharcoal, CategoryBundles, CategoryRentals:
		return true
	}
	return false
}

type Product struct {
	ID          uint              `gorm:"primaryKey;autoIncrement" json:"id"`
	Slug        string            `gorm:"uniqueIndex;not null" json:"slug"`
	Name        string            `gorm:"not null" json:"name"`
	Category    ProductCategory   `gorm:"type:VARCHAR(20);not null;index" json:"category"`
	PriceCents  int64             `gorm:"not null" json:"price_cents"`
	Currency    string            `gorm:"type:CHAR(3);not null;default:'USD'" json:"currency"`
	Unit        string            `json:"unit"` // e.g. "per bag", "per bundle"
	Description string            `json:"description"`
	Images      []string          `gorm:"serializer:json" json:"images"`
	Features    []string          `gorm:"serializer:json" json:"features"`
	Specs       map[string]string `gorm:"serializer:json" json:"specs"`
	IsActive    bool              `gorm:"default:true;index" json:"is_active"`
	SortOrder   int               `gorm:"default:0" json:"sort_order"`
	CreatedAt   time.Time         `json:"created_at"`
	UpdatedAt   time.Time         `json:"updated_at"`
	DeletedAt   gorm.DeletedAt    `gorm:"index" json:"-"`
}
