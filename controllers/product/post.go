package productcontroller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/udaya-sanjeewa/charcoal-api/models"
	"github.com/udaya-sanjeewa/charcoal-api/money"
	"gorm.io/gorm"
)

type ProductInput struct {
	Slug        string            `json:"slug" binding:"required"`
	Name        string            `json:"name" binding:"required"`
	Category    string            `json:"category" binding:"required"`
	PriceCents  int64             `json:"price_cents" binding:"omitempty,min=1"`
	Price       string            `json:"price"` // display form, e.g. "$12.50"; used when price_cents is absent
	Currency    string            `json:"currency"`
	Unit        string            `json:"unit"`
	Description string            `json:"description"`
	Images      []string          `json:"images"`
	Features    []string          `json:"features"`
	Specs       map[string]string `json:"specs"`
	IsActive    *bool             `json:"is_active"`
	SortOrder   int               `json:"sort_order"`
}

// POST /api/admin/products
func CreateProduct(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input ProductInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}
		if !models.ValidCategory(input.Category) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid category"})
			return
		}
		if input.PriceCents == 0 {
			cents, err := money.ParseDisplay(input.Price)
			if err != nil || cents < 1 {
				c.JSON(http.StatusBadRequest, gin.H{"error": "A positive price_cents or price is required"})
				return
			}
			input.PriceCents = cents
		}

		product := models.Product{
			Slug:        input.Slug,
			Name:        input.Name,
			Category:    models.ProductCategory(input.Category),
			PriceCents:  input.PriceCents,
			Currency:    input.Currency,
			Unit:        input.Unit,
			Description: input.Description,
			Images:      input.Images,
			Features:    input.Features,
			Specs:       input.Specs,
			IsActive:    true,
			SortOrder:   input.SortOrder,
		}
		if product.Currency == "" {
			product.Currency = "USD"
		}
		if input.IsActive != nil {
			product.IsActive = *input.IsActive
		}

		if err := db.Create(&product).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				c.JSON(http.StatusConflict, gin.H{"error": "A product with this slug already exists"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create product"})
			return
		}
		c.JSON(http.StatusCreated, product)
	}
}
