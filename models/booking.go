package models

import "time"

type BookingStatus string

const (
	BookingStatusPending    BookingStatus = "pending"
	BookingStatusConfirmed  BookingStatus = "confirmed"
	BookingStatusHandedOver BookingStatus = "handed_over"
	BookingStatusReturned   BookingStatus = "returned"  // terminal
	BookingStatusCancelled  BookingStatus = "cancelled" // terminal
)

var bookingTransitions = map[BookingStatus][]BookingStatus{
	BookingStatusPending:    {BookingStatusConfirmed, BookingStatusCancelled},
	BookingStatusConfirmed:  {BookingStatusHandedOver, BookingStatusCancelled},
	BookingStatusHandedOver: {BookingStatusReturned},
	BookingStatusReturned:   {},
	BookingStatusCancelled:  {},
}

func (s BookingStatus) Valid() bool {
	_, ok := bookingTransitions[s]
	return ok
}

func (s BookingStatus) CanTransition(next BookingStatus) bool {
	for _, t := range bookingTransitions[s] {
		if t == next {
			return true
		}
	}
	return false
}

// BBQPackage is a rentable equipment bundle (grill, tools, charcoal).
type BBQPackage struct {
	ID          uint           `gorm:"primaryKey;autoIncrement" json:"id"`
	Slug        string         `gorm:"uniqueIndex;not null" json:"slug"`
	Name        string         `gorm:"not null" json:"name"`
	Description string         `json:"description"`
	PriceCents  int64          `gorm:"not null" json:"price_cents"`
	Currency    string         `gorm:"type:CHAR(3);not null;default:'USD'" json:"currency"`
	Includes    []string       `gorm:"serializer:json" json:"includes"`
	ImageURL    string         `json:"image_url"`
	IsActive    bool           `gorm:"default:true;index" json:"is_active"`
	SortOrder   int            `gorm:"default:0" json:"sort_order"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
}

// BBQBooking records an equipment rental. Deposit and balance are fixed at
// placement as a 30%/70% split of the package price; handover and return
// timestamps stay nil until the admin records them. Overlapping bookings of
// the same package are not rejected; dispatch resolves conflicts manually.
type BBQBooking struct {
	ID            uint          `gorm:"primaryKey" json:"id"`
	BookingRef    string        `gorm:"uniqueIndex;not null" json:"booking_ref"`
	PackageID     uint          `gorm:"index;not null" json:"package_id"`
	PackageName   string        `json:"package_name"` // snapshot at booking time
	UserID        string        `gorm:"index" json:"user_id,omitempty"`
	SessionID     string        `gorm:"index" json:"session_id,omitempty"`
	Email         string        `gorm:"not null" json:"email"`
	Phone         string        `json:"phone"`
	RentalDate    time.Time     `gorm:"not null" json:"rental_date"`
	ReturnDate    time.Time     `gorm:"not null" json:"return_date"`
	HandedOverAt  *time.Time    `json:"handed_over_at"`
	ReturnedAt    *time.Time    `json:"returned_at"`
	DepositCents  int64         `json:"deposit_cents"`
	BalanceCents  int64         `json:"balance_cents"`
	TotalCents    int64         `json:"total_cents"`
	Currency      string        `gorm:"type:CHAR(3);not null;default:'USD'" json:"currency"`
	BookingStatus BookingStatus `gorm:"type:VARCHAR(20);default:'pending';index" json:"booking_status"`
	PaymentStatus PaymentStatus `gorm:"type:VARCHAR(20);default:'pending'" json:"payment_status"`
	Notes         string        `json:"notes"`
	CreatedAt     time.Time     `json:"created_at"`
	UpdatedAt     time.Time     `json:"updated_at"`
}
