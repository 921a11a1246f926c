package checkoutControllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/udaya-sanjeewa/charcoal-api/auth"
	cartControllers "github.com/udaya-sanjeewa/charcoal-api/controllers/cart"
	"github.com/udaya-sanjeewa/charcoal-api/middleware"
	"github.com/udaya-sanjeewa/charcoal-api/models"
	"github.com/udaya-sanjeewa/charcoal-api/money"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type ShippingForm struct {
	Recipient string `json:"recipient" binding:"required"`
	Phone     string `json:"phone"`
	Line1     string `json:"line1" binding:"required"`
	Line2     string `json:"line2"`
	City      string `json:"city" binding:"required"`
	State     string `json:"state"`
	Zip       string `json:"zip"`
	Country   string `json:"country"`
}

type CheckoutRequest struct {
	Email         string        `json:"email" binding:"required,email"`
	AddressID     *uint         `json:"address_id"`
	Shipping      *ShippingForm `json:"shipping"`
	PaymentMethod string        `json:"payment_method"`
	Notes         string        `json:"notes"`
}

// POST /api/checkout
//
// Snapshots the cart into an immutable order: shipping fields are copied
// verbatim (saved address or ad hoc form), item rows carry name and unit
// price at this instant, and the cart is cleared — all in one transaction,
// so a failure leaves both the cart and the order store untouched.
func PlaceOrder(db *gorm.DB, log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, sessionID := middleware.ScopeFrom(c)

		var req CheckoutRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		cart, err := cartControllers.FetchCart(db, userID, sessionID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch cart"})
			return
		}
		if len(cart.Items) == 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Cart is empty"})
			return
		}

		order := models.Order{
			UserID:        userID,
			Email:         req.Email,
			Status:        models.OrderStatusPending,
			PaymentStatus: models.PaymentStatusPending,
			PaymentMethod: req.PaymentMethod,
			TotalCents:    cart.TotalCents,
			Currency:      cart.Items[0].Product.Currency,
			Notes:         req.Notes,
		}

		if userID == "" {
			order.SessionID = sessionID
			order.GuestToken = auth.NewGuestToken()
		}

		if userID != "" && req.AddressID != nil {
			var addr models.Address
			if err := db.Where("id = ? AND user_id = ?", *req.AddressID, userID).First(&addr).Error; err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Address not found"})
				return
			}
			order.ShipRecipient = addr.Recipient
			order.ShipPhone = addr.Phone
			order.ShipLine1 = addr.Line1
			order.ShipLine2 = addr.Line2
			order.ShipCity = addr.City
			order.ShipState = addr.State
			order.ShipZip = addr.Zip
			order.ShipCountry = addr.Country
		} else if req.Shipping != nil {
			order.ShipRecipient = req.Shipping.Recipient
			order.ShipPhone = req.Shipping.Phone
			order.ShipLine1 = req.Shipping.Line1
			order.ShipLine2 = req.Shipping.Line2
			order.ShipCity = req.Shipping.City
			order.ShipState = req.Shipping.State
			order.ShipZip = req.Shipping.Zip
			order.ShipCountry = req.Shipping.Country
		} else {
			c.JSON(http.StatusBadRequest, gin.H{"error": "A saved address_id or shipping form is required"})
			return
		}

		for _, line := range cart.Items {
			order.Items = append(order.Items, models.OrderItem{
				ProductID:      line.ProductID,
				ProductName:    line.Product.Name,
				UnitPriceCents: line.Product.PriceCents,
				Quantity:       line.Quantity,
			})
		}

		err = db.Transaction(func(tx *gorm.DB) error {
			if err := createWithUniqueRef(tx, &order, func() string { return NewReference("ORD") }); err != nil {
				return err
			}

			scoped := tx.Where("user_id = ?", userID)
			if userID == "" {
				scoped = tx.Where("session_id = ?", sessionID)
			}
			return scoped.Delete(&models.CartItem{}).Error
		})
		if err != nil {
			log.Error("order placement failed",
				zap.String("email", req.Email),
				zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		log.Info("order placed",
			zap.String("order_number", order.OrderNumber),
			zap.Int64("total_cents", order.TotalCents),
			zap.Int("items", len(order.Items)))

		resp := gin.H{
			"order_number":  order.OrderNumber,
			"status":        order.Status,
			"total_cents":   order.TotalCents,
			"total_display": money.FormatCents(order.TotalCents, order.Currency),
		}
		if order.GuestToken != "" {
			resp["guest_token"] = order.GuestToken
		}
		c.JSON(http.StatusCreated, resp)
	}
}

// createWithUniqueRef inserts the order, regenerating the order number on a
// duplicate-key collision. Each attempt runs in its own savepoint: a unique
// violation aborts the enclosing Postgres transaction otherwise, and every
// later attempt would fail before reaching the index.
func createWithUniqueRef(tx *gorm.DB, order *models.Order, newRef func() string) error {
	for attempt := 0; attempt < 3; attempt++ {
		order.OrderNumber = newRef()
		err := tx.Transaction(func(tx *gorm.DB) error {
			return tx.Create(order).Error
		})
		if err == nil {
			return nil
		}
		if !errors.Is(err, gorm.ErrDuplicatedKey) {
			return err
		}
	}
	return errors.New("could not allocate a unique order number")
}
