package model

import (
	"time"

	"github.com/google/uuid"
)

// Order is one store's purchase request. Immutable once created; demand only
// accumulates, it never decays until a consolidation cycle snapshots it.
type Order struct {
	ID        uuid.UUID   `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	StoreID   uuid.UUID   `gorm:"type:uuid;not null;index" json:"store_id"`
	Store     Store       `gorm:"foreignKey:StoreID" json:"-"`
	Items     []OrderItem `gorm:"foreignKey:OrderID" json:"items"`
	CreatedAt time.Time   `json:"created_at"`
}

// OrderItem is a (product, quantity) line within an order.
type OrderItem struct {
	ID        uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	OrderID   uuid.UUID `gorm:"type:uuid;not null;index" json:"order_id"`
	ProductID uuid.UUID `gorm:"type:uuid;not null;index" json:"product_id"`
	Product   Product   `gorm:"foreignKey:ProductID" json:"-"`
	Quantity  float64   `gorm:"type:decimal(12,3);not null" json:"quantity"`
}
