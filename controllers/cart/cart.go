package cartControllers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/udaya-sanjeewa/charcoal-api/middleware"
	"github.com/udaya-sanjeewa/charcoal-api/models"
	"github.com/udaya-sanjeewa/charcoal-api/money"
	"gorm.io/gorm"
)

type AddToCartInput struct {
	ProductID uint `json:"product_id" binding:"required"`
	Quantity  int  `json:"quantity" binding:"omitempty,min=1"`
}

type UpdateQuantityInput struct {
	Quantity int `json:"quantity"`
}

// CartLine is a cart row denormalized with the current product.
type CartLine struct {
	models.CartItem
	Product        models.Product `json:"product"`
	LineTotalCents int64          `json:"line_total_cents"`
}

type CartResponse struct {
	Items        []CartLine `json:"items"`
	ItemCount    int        `json:"item_count"`
	TotalCents   int64      `json:"total_cents"`
	TotalDisplay string     `json:"total_display"`
}

// scopeQuery keys the query by user id or anonymous session id, whichever
// ResolveScope established.
func scopeQuery(db *gorm.DB, userID, sessionID string) *gorm.DB {
	if userID != "" {
		return db.Where("user_id = ?", userID)
	}
	return db.Where("session_id = ?", sessionID)
}

// FetchCart reads all cart rows for the scope and joins each to its live
// product. Rows whose product no longer exists are left out of the view.
// Item count and total are derived on every read, never stored.
func FetchCart(db *gorm.DB, userID, sessionID string) (*CartResponse, error) {
	var items []models.CartItem
	if err := scopeQuery(db, userID, sessionID).Order("added_at").Find(&items).Error; err != nil {
		return nil, err
	}

	resp := &CartResponse{Items: []CartLine{}}
	if len(items) == 0 {
		resp.TotalDisplay = money.FormatCents(0, "USD")
		return resp, nil
	}

	ids := make([]uint, 0, len(items))
	for _, item := range items {
		ids = append(ids, item.ProductID)
	}
	var products []models.Product
	if err := db.Where("id IN ?", ids).Find(&products).Error; err != nil {
		return nil, err
	}
	byID := make(map[uint]models.Product, len(products))
	for _, p := range products {
		byID[p.ID] = p
	}

	currency := "USD"
	for _, item := range items {
		product, ok := byID[item.ProductID]
		if !ok {
			continue
		}
		lineTotal := product.PriceCents * int64(item.Quantity)
		resp.Items = append(resp.Items, CartLine{
			CartItem:       item,
			Product:        product,
			LineTotalCents: lineTotal,
		})
		resp.ItemCount += item.Quantity
		resp.TotalCents += lineTotal
		currency = product.Currency
	}
	resp.TotalDisplay = money.FormatCents(resp.TotalCents, currency)
	return resp, nil
}

// GET /api/cart
func GetCart(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, sessionID := middleware.ScopeFrom(c)
		resp, err := FetchCart(db, userID, sessionID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch cart"})
			return
		}
		c.JSON(http.StatusOK, resp)
	}
}

// POST /api/cart
//
// Merge-on-add: an existing row for the same (scope, product) gets its
// quantity increased instead of a duplicate insert. Two rapid adds can race
// past the existence check; the unique index turns the loser into a
// duplicate-key error which is retried as a quantity update.
func AddToCart(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, sessionID := middleware.ScopeFrom(c)

		var input AddToCartInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}
		if input.Quantity == 0 {
			input.Quantity = 1
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

		if err := addOrMerge(db, userID, sessionID, input.ProductID, input.Quantity); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to add item to cart"})
			return
		}

		resp, err := FetchCart(db, userID, sessionID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch cart"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Added to cart", "cart": resp})
	}
}

func addOrMerge(db *gorm.DB, userID, sessionID string, productID uint, quantity int) error {
	var item models.CartItem
	err := scopeQuery(db, userID, sessionID).
		Where("product_id = ?", productID).
		First(&item).Error

	if err == nil {
		item.Quantity += quantity
		item.AddedAt = time.Now()
		return db.Save(&item).Error
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	newItem := models.CartItem{
		UserID:    userID,
		SessionID: sessionID,
		ProductID: productID,
		Quantity:  quantity,
		AddedAt:   time.Now(),
	}
	err = db.Create(&newItem).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		// Lost the race to a concurrent add; fold into the winner's row.
		return addOrMerge(db, userID, sessionID, productID, quantity)
	}
	return err
}

// PUT /api/cart/items/:id
//
// A quantity below one removes the row; a non-positive quantity is never
// persisted.
func UpdateQuantity(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, sessionID := middleware.ScopeFrom(c)
		itemID := c.Param("id")

		var input UpdateQuantityInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		if input.Quantity < 1 {
			result := scopeQuery(db, userID, sessionID).
				Where("id = ?", itemID).
				Delete(&models.CartItem{})
			if result.Error != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to remove cart item"})
				return
			}
			if result.RowsAffected == 0 {
				c.JSON(http.StatusNotFound, gin.H{"error": "Cart item not found"})
				return
			}
			c.JSON(http.StatusOK, gin.H{"message": "Cart item removed"})
			return
		}

		result := scopeQuery(db.Model(&models.CartItem{}), userID, sessionID).
			Where("id = ?", itemID).
			Update("quantity", input.Quantity)
		if result.Error != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update cart item"})
			return
		}
		if result.RowsAffected == 0 {
			c.JSON(http.StatusNotFound, gin.H{"error": "Cart item not found"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Quantity updated"})
	}
}

// DELETE /api/cart/items/:id
func RemoveFromCart(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, sessionID := middleware.ScopeFrom(c)
		itemID := c.Param("id")

		result := scopeQuery(db, userID, sessionID).
			Where("id = ?", itemID).
			Delete(&models.CartItem{})
		if result.Error != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete item"})
			return
		}
		if result.RowsAffected == 0 {
			c.JSON(http.StatusNotFound, gin.H{"error": "Cart item not found"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Cart item deleted"})
	}
}

// DELETE /api/cart
//
// Clears by scope, not by item id list, so it is safe even when the
// caller's view of the cart is stale.
func ClearCart(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, sessionID := middleware.ScopeFrom(c)

		if err := scopeQuery(db, userID, sessionID).Delete(&models.CartItem{}).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to clear cart"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Cart cleared"})
	}
}
