package models

import "time"

type Cart struct {
	CartID    uint       `gorm:"primaryKey" json:"cart_id"`
	UserID    string     `gorm:"uniqueIndex" json:"user_id"` // one cart per user
	Items     []CartItem `gorm:"foreignKey:CartID;constraint:OnDelete:CASCADE" json:"items"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

type CartItem struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	CartID       uint      `gorm:"index" json:"cart_id"` // Faster queries
	ProductID    uint      `json:"product_id"`
	ProductName  string    `json:"product_name"`
	ProductImage string    `json:"product_image"`
	UnitPrice    float64   `json:"unit_price"` // display snapshot; order pricing re-resolves from the catalog
	Quantity     int       `json:"quantity"`
	AddedAt      time.Time `json:"added_at"`
}

func (i CartItem) LineTotal() float64 {
	return i.UnitPrice * float64(i.Quantity)
}

// Totals recomputes the item count and subtotal from the lines. The derived
// values are never stored independently; any divergence is a bug.
func (c Cart) Totals() (totalItems int, subtotal float64) {
	for _, item := range c.Items {
		totalItems += item.Quantity
		subtotal += item.LineTotal()
	}
	return totalItems, subtotal
}
