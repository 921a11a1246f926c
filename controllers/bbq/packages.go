package bbqControllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/udaya-sanjeewa/charcoal-api/models"
	"gorm.io/gorm"
)

type PackageInput struct {
	Slug        string   `json:"slug" binding:"required"`
	Name        string   `json:"name" binding:"required"`
	Description string   `json:"description"`
	PriceCents  int64    `json:"price_cents" binding:"required,min=1"`
	Currency    string   `json:"currency"`
	Includes    []string `json:"includes"`
	ImageURL    string   `json:"image_url"`
	IsActive    *bool    `json:"is_active"`
	SortOrder   int      `json:"sort_order"`
}

// GET /api/bbq-packages
func GetActivePackages(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var packages []models.BBQPackage
		if err := db.Where("is_active = ?", true).Order("sort_order, id").Find(&packages).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, packages)
	}
}

// GET /api/admin/bbq-packages
func GetAllPackages(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var packages []models.BBQPackage
		if err := db.Order("sort_order, id").Find(&packages).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, packages)
	}
}

// POST /api/admin/bbq-packages
func CreatePackage(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input PackageInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		pkg := models.BBQPackage{
			Slug:        input.Slug,
			Name:        input.Name,
			Description: input.Description,
			PriceCents:  input.PriceCents,
			Currency:    input.Currency,
			Includes:    input.Includes,
			ImageURL:    input.ImageURL,
			IsActive:    true,
			SortOrder:   input.SortOrder,
		}
		if pkg.Currency == "" {
			pkg.Currency = "USD"
		}
		if input.IsActive != nil {
			pkg.IsActive = *input.IsActive
		}

		if err := db.Create(&pkg).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				c.JSON(http.StatusConflict, gin.H{"error": "A package with this slug already exists"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusCreated, pkg)
	}
}

// PATCH /api/admin/bbq-packages/:id
func UpdatePackage(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var pkg models.BBQPackage
		if err := db.First(&pkg, "id = ?", c.Param("id")).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Package not found"})
			return
		}

		var updates map[string]interface{}
		if err := c.ShouldBindJSON(&updates); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}
		allowed := map[string]bool{
			"name": true, "description": true, "price_cents": true,
			"includes": true, "image_url": true, "is_active": true, "sort_order": true,
		}
		for key := range updates {
			if !allowed[key] {
				delete(updates, key)
			}
		}

		if len(updates) > 0 {
			if err := db.Model(&pkg).Updates(updates).Error; err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
				return
			}
		}
		c.JSON(http.StatusOK, pkg)
	}
}

// DELETE /api/admin/bbq-packages/:id
func DeletePackage(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		result := db.Delete(&models.BBQPackage{}, "id = ?", c.Param("id"))
		if result.Error != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": result.Error.Error()})
			return
		}
		if result.RowsAffected == 0 {
			c.JSON(http.StatusNotFound, gin.H{"error": "Package not found"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Package deleted"})
	}
}
