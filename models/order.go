package models

import "time"

type OrderStatus string
type PaymentStatus string

const (
	OrderStatusPending    OrderStatus = "pending"    // placed, awaiting handling
	OrderStatusProcessing OrderStatus = "processing" // being packed
	OrderStatusShipped    OrderStatus = "shipped"    // out for delivery
	OrderStatusDelivered  OrderStatus = "delivered"  // terminal
	OrderStatusCancelled  OrderStatus = "cancelled"  // terminal

	PaymentStatusPending  PaymentStatus = "pending"
	PaymentStatusPartial  PaymentStatus = "partial"
	PaymentStatusPaid     PaymentStatus = "paid"
	PaymentStatusRefunded PaymentStatus = "refunded"
)

// orderTransitions is the forward-only status graph. Cancellation is allowed
// from any non-terminal state; delivered and cancelled are terminal.
var orderTransitions = map[OrderStatus][]OrderStatus{
	OrderStatusPending:    {OrderStatusProcessing, OrderStatusCancelled},
	OrderStatusProcessing: {OrderStatusShipped, OrderStatusCancelled},
	OrderStatusShipped:    {OrderStatusDelivered, OrderStatusCancelled},
	OrderStatusDelivered:  {},
	OrderStatusCancelled:  {},
}

// paymentTransitions is independent of the order status graph: an order can
// be delivered while payment is still pending (cash on delivery).
var paymentTransitions = map[PaymentStatus][]PaymentStatus{
	PaymentStatusPending:  {PaymentStatusPartial, PaymentStatusPaid, PaymentStatusRefunded},
	PaymentStatusPartial:  {PaymentStatusPaid, PaymentStatusRefunded},
	PaymentStatusPaid:     {PaymentStatusRefunded},
	PaymentStatusRefunded: {},
}

func (s OrderStatus) Valid() bool {
	_, ok := orderTransitions[s]
	return ok
}

func (s PaymentStatus) Valid() bool {
	_, ok := paymentTransitions[s]
	return ok
}

// CanTransition reports whether the order status may move from s to next.
func (s OrderStatus) CanTransition(next OrderStatus) bool {
	for _, t := range orderTransitions[s] {
		if t == next {
			return true
		}
	}
	return false
}

func (s PaymentStatus) CanTransition(next PaymentStatus) bool {
	for _, t := range paymentTransitions[s] {
		if t == next {
			return true
		}
	}
	return false
}

// Order is written once at checkout. The shipping fields are a verbatim copy
// of the chosen address, never a foreign key, so later address edits or
// deletes cannot alter a placed order. Only status, payment_status and notes
// are mutable afterwards, through the admin surface.
type Order struct {
	ID            uint          `gorm:"primaryKey" json:"id"`
	OrderNumber   string        `gorm:"uniqueIndex;not null" json:"order_number"`
	UserID        string        `gorm:"index" json:"user_id,omitempty"`    // empty for guest orders
	SessionID     string        `gorm:"index" json:"session_id,omitempty"` // anonymous scope for guest orders
	GuestToken    string        `json:"-"`                                 // provisioned for a later claim flow
	Email         string        `gorm:"not null" json:"email"`
	Status        OrderStatus   `gorm:"type:VARCHAR(20);default:'pending';index" json:"status"`
	PaymentStatus PaymentStatus `gorm:"type:VARCHAR(20);default:'pending'" json:"payment_status"`
	PaymentMethod string        `json:"payment_method"` // e.g. "cod"
	TotalCents    int64         `gorm:"not null" json:"total_cents"`
	Currency      string        `gorm:"type:CHAR(3);not null;default:'USD'" json:"currency"`

	ShipRecipient string `json:"ship_recipient"`
	ShipPhone     string `json:"ship_phone"`
	ShipLine1     string `json:"ship_line1"`
	ShipLine2     string `json:"ship_line2"`
	ShipCity      string `json:"ship_city"`
	ShipState     string `json:"ship_state"`
	ShipZip       string `json:"ship_zip"`
	ShipCountry   string `json:"ship_country"`

	Notes     string      `json:"notes"`
	Items     []OrderItem `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"items"`
	CreatedAt time.Time   `json:"created_at"`
	UpdatedAt time.Time   `json:"updated_at"`
}

// OrderItem snapshots name and unit price at purchase time, decoupled from
// the live Product row.
type OrderItem struct {
	ID             uint   `gorm:"primaryKey" json:"id"`
	OrderID        uint   `gorm:"index" json:"order_id"`
	ProductID      uint   `json:"product_id"`
	ProductName    string `json:"product_name"`
	UnitPriceCents int64  `json:"unit_price_cents"`
	Quantity       int    `json:"quantity"`
}
