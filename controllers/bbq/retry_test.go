package bbqControllers

import (
	"testing"
	"time"

	"github.com/udaya-sanjeewa/charcoal-api/models"
	"github.com/udaya-sanjeewa/charcoal-api/testutil"
	"gorm.io/gorm"
)

func seedBookingWithRef(t *testing.T, db *gorm.DB, ref string) {
	t.Helper()
	booking := models.BBQBooking{
		BookingRef: ref,
		PackageID:  1,
		Email:      "taken@example.com",
		RentalDate: time.Date(2026, 9, 5, 0, 0, 0, 0, time.UTC),
		ReturnDate: time.Date(2026, 9, 7, 0, 0, 0, 0, time.UTC),
	}
	if err := db.Create(&booking).Error; err != nil {
		t.Fatalf("seed booking %s: %v", ref, err)
	}
}

func TestCreateWithUniqueRefRetriesAfterCollision(t *testing.T) {
	db := testutil.SetupTestDB(t)
	seedBookingWithRef(t, db, "BBQ-TAKEN-0001")

	refs := []string{"BBQ-TAKEN-0001", "BBQ-FRESH-0001"}
	var calls int
	newRef := func() string {
		ref := refs[calls]
		calls++
		return ref
	}

	booking := models.BBQBooking{
		PackageID:  1,
		Email:      "renter@example.com",
		RentalDate: time.Date(2026, 9, 10, 0, 0, 0, 0, time.UTC),
		ReturnDate: time.Date(2026, 9, 12, 0, 0, 0, 0, time.UTC),
	}

	err := db.Transaction(func(tx *gorm.DB) error {
		return createWithUniqueRef(tx, &booking, newRef)
	})
	if err != nil {
		t.Fatalf("create with retry: %v", err)
	}
	if booking.BookingRef != "BBQ-FRESH-0001" {
		t.Errorf("expected the second reference to win, got %s", booking.BookingRef)
	}

	var count int64
	db.Model(&models.BBQBooking{}).Count(&count)
	if count != 2 {
		t.Errorf("expected two bookings, got %d", count)
	}
}

func TestCreateWithUniqueRefGivesUp(t *testing.T) {
	db := testutil.SetupTestDB(t)
	seedBookingWithRef(t, db, "BBQ-TAKEN-0001")

	booking := models.BBQBooking{
		PackageID:  1,
		Email:      "renter@example.com",
		RentalDate: time.Date(2026, 9, 10, 0, 0, 0, 0, time.UTC),
		ReturnDate: time.Date(2026, 9, 12, 0, 0, 0, 0, time.UTC),
	}

	err := db.Transaction(func(tx *gorm.DB) error {
		return createWithUniqueRef(tx, &booking, func() string { return "BBQ-TAKEN-0001" })
	})
	if err == nil {
		t.Fatal("expected exhausted retries to fail")
	}

	var count int64
	db.Model(&models.BBQBooking{}).Count(&count)
	if count != 1 {
		t.Errorf("failed placement must leave only the seeded booking, got %d", count)
	}
}
