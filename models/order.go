package models

import (
	"errors"
	"strings"
	"time"
)

type OrderStatus string

const (
	// Fulfillment track, in order
	OrderStatusPending   OrderStatus = "pending"   // Order placed, awaiting confirmation
	OrderStatusConfirmed OrderStatus = "confirmed" // Confirmed by seller
	OrderStatusPreparing OrderStatus = "preparing" // Being packed
	OrderStatusShipped   OrderStatus = "shipped"   // Out for delivery
	OrderStatusDelivered OrderStatus = "delivered" // Customer received the item

	// Side branches, reachable from any non-terminal status
	OrderStatusCancelled OrderStatus = "cancelled"
	OrderStatusRefunded  OrderStatus = "refunded"
)

// orderStatusRank orders the fulfillment track. Side branches carry no rank.
var orderStatusRank = map[OrderStatus]int{
	OrderStatusPending:   0,
	OrderStatusConfirmed: 1,
	OrderStatusPreparing: 2,
	OrderStatusShipped:   3,
	OrderStatusDelivered: 4,
}

func ParseOrderStatus(s string) (OrderStatus, error) {
	status := OrderStatus(strings.ToLower(s))
	switch status {
	case OrderStatusPending, OrderStatusConfirmed, OrderStatusPreparing,
		OrderStatusShipped, OrderStatusDelivered, OrderStatusCancelled, OrderStatusRefunded:
		return status, nil
	default:
		return "", errors.New("invalid order status: " + s)
	}
}

func (s OrderStatus) Terminal() bool {
	return s == OrderStatusDelivered || s == OrderStatusCancelled || s == OrderStatusRefunded
}

// CanTransition reports whether the move from s to target is legal: forward
// along the fulfillment track (skips allowed), or sideways into cancelled or
// refunded. Terminal statuses never transition.
func (s OrderStatus) CanTransition(target OrderStatus) bool {
	if s.Terminal() || s == target {
		return false
	}
	if target == OrderStatusCancelled || target == OrderStatusRefunded {
		return true
	}
	fromRank, ok := orderStatusRank[s]
	if !ok {
		return false
	}
	toRank, ok := orderStatusRank[target]
	if !ok {
		return false
	}
	return toRank > fromRank
}

type Order struct {
	ID              uint        `gorm:"primaryKey" json:"id"`
	OrderRef        string      `gorm:"uniqueIndex;not null" json:"order_ref"` // human-readable, distinct from ID
	UserID          string      `gorm:"not null;index" json:"user_id"`
	Items           []OrderItem `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"items"`
	ShippingAddress Address     `gorm:"embedded;embeddedPrefix:ship_" json:"shipping_address"`
	PaymentMethod   string      `json:"payment_method"` // e.g. "card", "upi", "cod"
	CouponCode      string      `json:"coupon_code,omitempty"`
	Notes           string      `json:"notes,omitempty"`
	Subtotal        float64     `json:"subtotal"`
	Discount        float64     `json:"discount"`
	ShippingCost    float64     `json:"shipping_cost"`
	Tax             float64     `json:"tax"`
	TotalAmount     float64     `json:"total_amount"`
	Status          OrderStatus `gorm:"type:VARCHAR(20);default:'pending'" json:"status"`
	CreatedAt       time.Time   `json:"created_at"`
	UpdatedAt       time.Time   `json:"updated_at"`
}

// OrderItem is a snapshot copied from the cart and catalog at placement time,
// never a live product reference. Catalog changes must not touch placed orders.
type OrderItem struct {
	ID           uint    `gorm:"primaryKey" json:"id"`
	OrderID      uint    `gorm:"index" json:"order_id"`
	ProductID    uint    `json:"product_id"`
	ProductName  string  `json:"product_name"`
	ProductImage string  `json:"product_image"`
	UnitPrice    float64 `json:"unit_price"`
	Quantity     int     `json:"quantity"`
}

func (i OrderItem) LineTotal() float64 {
	return i.UnitPrice * float64(i.Quantity)
}
