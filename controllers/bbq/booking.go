package bbqControllers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	checkoutControllers "github.com/udaya-sanjeewa/charcoal-api/controllers/checkout"
	orderControllers "github.com/udaya-sanjeewa/charcoal-api/controllers/order"
	"github.com/udaya-sanjeewa/charcoal-api/middleware"
	"github.com/udaya-sanjeewa/charcoal-api/models"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// depositPercent fixes the deposit/balance split of the package price.
const depositPercent = 30

type PlaceBookingRequest struct {
	PackageID  uint   `json:"package_id" binding:"required"`
	Email      string `json:"email" binding:"required,email"`
	Phone      string `json:"phone"`
	RentalDate string `json:"rental_date" binding:"required"` // 2006-01-02
	ReturnDate string `json:"return_date" binding:"required"`
	Notes      string `json:"notes"`
}

type UpdateBookingRequest struct {
	BookingStatus *models.BookingStatus `json:"booking_status"`
	PaymentStatus *models.PaymentStatus `json:"payment_status"`
	Notes         *string               `json:"notes"`
}

// POST /api/bbq-bookings
//
// Deposit is 30% of the package price, balance the remainder, so the two
// always sum to the total. Overlapping bookings for the same package are
// not rejected; dispatch resolves conflicts by hand.
func PlaceBooking(db *gorm.DB, log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, sessionID := middleware.ScopeFrom(c)

		var req PlaceBookingRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		rentalDate, err := time.Parse("2006-01-02", req.RentalDate)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid rental_date"})
			return
		}
		returnDate, err := time.Parse("2006-01-02", req.ReturnDate)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid return_date"})
			return
		}
		if returnDate.Before(rentalDate) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "return_date must not be before rental_date"})
			return
		}

		var pkg models.BBQPackage
		if err := db.Where("id = ? AND is_active = ?", req.PackageID, true).First(&pkg).Error; err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Package not found"})
			return
		}

		deposit := pkg.PriceCents * depositPercent / 100
		booking := models.BBQBooking{
			PackageID:     pkg.ID,
			PackageName:   pkg.Name,
			UserID:        userID,
			Email:         req.Email,
			Phone:         req.Phone,
			RentalDate:    rentalDate,
			ReturnDate:    returnDate,
			DepositCents:  deposit,
			BalanceCents:  pkg.PriceCents - deposit,
			TotalCents:    pkg.PriceCents,
			Currency:      pkg.Currency,
			BookingStatus: models.BookingStatusPending,
			PaymentStatus: models.PaymentStatusPending,
			Notes:         req.Notes,
		}
		if userID == "" {
			booking.SessionID = sessionID
		}

		err = db.Transaction(func(tx *gorm.DB) error {
			return createWithUniqueRef(tx, &booking, func() string {
				return checkoutControllers.NewReference("BBQ")
			})
		})
		if err != nil {
			log.Error("booking placement failed", zap.String("email", req.Email), zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		log.Info("booking placed",
			zap.String("booking_ref", booking.BookingRef),
			zap.Uint("package_id", pkg.ID))

		c.JSON(http.StatusCreated, gin.H{
			"booking_ref":    booking.BookingRef,
			"booking_status": booking.BookingStatus,
			"deposit_cents":  booking.DepositCents,
			"balance_cents":  booking.BalanceCents,
			"total_cents":    booking.TotalCents,
		})
	}
}

// createWithUniqueRef inserts the booking, regenerating the reference on a
// duplicate-key collision. Each attempt runs in its own savepoint: a unique
// violation aborts the enclosing Postgres transaction otherwise, and every
// later attempt would fail before reaching the index.
func createWithUniqueRef(tx *gorm.DB, booking *models.BBQBooking, newRef func() string) error {
	for attempt := 0; attempt < 3; attempt++ {
		booking.BookingRef = newRef()
		err := tx.Transaction(func(tx *gorm.DB) error {
			return tx.Create(booking).Error
		})
		if err == nil {
			return nil
		}
		if !errors.Is(err, gorm.ErrDuplicatedKey) {
			return err
		}
	}
	return errors.New("could not allocate a unique booking reference")
}

// GET /api/admin/bbq-bookings
func GetAllBookings(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var bookings []models.BBQBooking
		if err := db.Order("created_at DESC").Find(&bookings).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, bookings)
	}
}

// PUT /api/admin/bbq-bookings/:id
//
// Booking status moves are checked against the transition graph; the
// handover/return timestamps are recorded when those states are entered.
// Payment status remains independently settable.
func UpdateBooking(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var booking models.BBQBooking
		if err := db.First(&booking, "id = ?", c.Param("id")).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "Booking not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		var req UpdateBookingRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		updates := make(map[string]interface{})
		if req.BookingStatus != nil {
			next := *req.BookingStatus
			if !next.Valid() {
				c.JSON(http.StatusBadRequest, gin.H{"error": "invalid booking status"})
				return
			}
			if !booking.BookingStatus.CanTransition(next) {
				c.JSON(http.StatusConflict, gin.H{
					"error": "cannot move booking from " + string(booking.BookingStatus) + " to " + string(next),
				})
				return
			}
			updates["booking_status"] = next
			now := time.Now()
			switch next {
			case models.BookingStatusHandedOver:
				updates["handed_over_at"] = &now
			case models.BookingStatusReturned:
				updates["returned_at"] = &now
			}
		}
		if req.PaymentStatus != nil {
			next := *req.PaymentStatus
			if !next.Valid() {
				c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payment status"})
				return
			}
			if !booking.PaymentStatus.CanTransition(next) {
				c.JSON(http.StatusConflict, gin.H{
					"error": "cannot move payment from " + string(booking.PaymentStatus) + " to " + string(next),
				})
				return
			}
			updates["payment_status"] = next
		}
		if req.Notes != nil {
			updates["notes"] = *req.Notes
		}

		if len(updates) > 0 {
			if err := db.Model(&booking).Updates(updates).Error; err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
				return
			}
		}

		if req.BookingStatus != nil {
			orderControllers.BroadcastStatusEvent(orderControllers.StatusEvent{
				Kind:      "booking",
				Reference: booking.BookingRef,
				Status:    string(*req.BookingStatus),
			})
		}

		c.JSON(http.StatusOK, booking)
	}
}

// DELETE /api/admin/bbq-bookings/:id
func DeleteBooking(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		result := db.Delete(&models.BBQBooking{}, "id = ?", c.Param("id"))
		if result.Error != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": result.Error.Error()})
			return
		}
		if result.RowsAffected == 0 {
			c.JSON(http.StatusNotFound, gin.H{"error": "Booking not found"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Booking deleted"})
	}
}
