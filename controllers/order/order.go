package orderControllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/udaya-sanjeewa/charcoal-api/models"
	"gorm.io/gorm"
)

type UpdateOrderRequest struct {
	Status        *models.OrderStatus   `json:"status"`
	PaymentStatus *models.PaymentStatus `json:"payment_status"`
	Notes         *string               `json:"notes"`
}

// GET /api/orders
func GetUserOrders(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, _ := c.Get("user_id")

		var orders []models.Order
		if err := db.
			Where("user_id = ?", userID).
			Preload("Items").
			Order("created_at DESC").
			Find(&orders).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, orders)
	}
}

// GET /api/orders/:number
func GetOrderByNumber(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, _ := c.Get("user_id")

		var order models.Order
		err := db.
			Preload("Items").
			Where("order_number = ? AND user_id = ?", c.Param("number"), userID).
			First(&order).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, order)
	}
}

// GET /api/admin/orders
func GetAllOrders(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		q := db.Preload("Items").Order("created_at DESC")
		if status := c.Query("status"); status != "" {
			q = q.Where("status = ?", status)
		}

		var orders []models.Order
		if err := q.Find(&orders).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, orders)
	}
}

// PATCH /api/admin/orders/:id
//
// Status moves are validated against the forward-only transition graph;
// skipping ahead or moving backwards is rejected. Payment status has its
// own graph and is deliberately not coupled to order status.
func UpdateOrder(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var order models.Order
		if err := db.First(&order, "id = ?", c.Param("id")).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		var req UpdateOrderRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		updates := make(map[string]interface{})
		if req.Status != nil {
			next := *req.Status
			if !next.Valid() {
				c.JSON(http.StatusBadRequest, gin.H{"error": "invalid order status"})
				return
			}
			if !order.Status.CanTransition(next) {
				c.JSON(http.StatusConflict, gin.H{
					"error": "cannot move order from " + string(order.Status) + " to " + string(next),
				})
				return
			}
			updates["status"] = next
		}
		if req.PaymentStatus != nil {
			next := *req.PaymentStatus
			if !next.Valid() {
				c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payment status"})
				return
			}
			if !order.PaymentStatus.CanTransition(next) {
				c.JSON(http.StatusConflict, gin.H{
					"error": "cannot move payment from " + string(order.PaymentStatus) + " to " + string(next),
				})
				return
			}
			updates["payment_status"] = next
		}
		if req.Notes != nil {
			updates["notes"] = *req.Notes
		}

		if len(updates) > 0 {
			if err := db.Model(&order).Updates(updates).Error; err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
				return
			}
		}

		if req.Status != nil || req.PaymentStatus != nil {
			ev := StatusEvent{Kind: "order", Reference: order.OrderNumber, Status: string(order.Status)}
			if req.Status != nil {
				ev.Status = string(*req.Status)
			}
			if req.PaymentStatus != nil {
				ev.PaymentStatus = string(*req.PaymentStatus)
			}
			BroadcastStatusEvent(ev)
		}

		c.JSON(http.StatusOK, order)
	}
}

// DELETE /api/admin/orders/:id
func DeleteOrder(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		err := db.Transaction(func(tx *gorm.DB) error {
			if err := tx.Where("order_id = ?", c.Param("id")).Delete(&models.OrderItem{}).Error; err != nil {
				return err
			}
			return tx.Delete(&models.Order{}, "id = ?", c.Param("id")).Error
		})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete order"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Order deleted"})
	}
}
