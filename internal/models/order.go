package models

import (
	"strings"

	"github.com/google/uuid"
)

// Order statuses. Status updates accept exactly this set, nothing else.
const (
	StatusPending        = "Pending"
	StatusPreparing      = "Preparing"
	StatusReadyForPickup = "Ready for Pickup"
	StatusOutForDelivery = "Out for Delivery"
	StatusDelivered      = "Delivered"
)

// Payment statuses.
const (
	PaymentPending   = "pending"
	PaymentCompleted = "completed"
)

// Delivery types.
const (
	DeliveryTypePickup   = "pickup"
	DeliveryTypeDelivery = "delivery"
)

// OrderStatuses lists every accepted order status.
var OrderStatuses = []string{
	StatusPending,
	StatusPreparing,
	StatusReadyForPickup,
	StatusOutForDelivery,
	StatusDelivered,
}

// IsValidOrderStatus reports whether s is one of the enumerated statuses.
func IsValidOrderStatus(s string) bool {
	for _, status := range OrderStatuses {
		if s == status {
			return true
		}
	}
	return false
}

type Order struct {
	BaseModel
	UserID         uuid.UUID   `gorm:"type:uuid;index" json:"user_id"`
	User           *User       `json:"user,omitempty"`
	Items          []OrderItem `json:"items"`
	TotalAmount    float64     `json:"total_amount"`
	PaymentStatus  string      `gorm:"default:pending" json:"payment_status"`
	OrderStatus    string      `gorm:"default:Pending" json:"order_status"`
	CustomerName   string      `json:"customer_name"`
	CustomerEmail  string      `json:"customer_email"`
	PaymentMethod  string      `gorm:"default:card" json:"payment_method"`
	DeliveryType   string      `gorm:"default:pickup" json:"delivery_type"`
	Address        string      `json:"address"`
	Distance       float64     `json:"distance"`
	DeliveryCharge float64     `json:"delivery_charge"`
}

// OrderItem is a snapshot of a product at order time. Name, price and image
// are captured copies, never re-read from the live product.
type OrderItem struct {
	BaseModel
	OrderID   uuid.UUID  `gorm:"type:uuid;index" json:"order_id"`
	ProductID *uuid.UUID `gorm:"type:uuid" json:"product_id"`
	Name      string     `json:"name"`
	Price     float64    `json:"price"`
	Quantity  int        `json:"quantity"`
	Image     string     `json:"image"`
}

// ShortNumber returns the customer-facing order number, the last 8 hex
// characters of the order ID.
func (o *Order) ShortNumber() string {
	s := strings.ReplaceAll(o.ID.String(), "-", "")
	if len(s) < 8 {
		return s
	}
	return s[len(s)-8:]
}
