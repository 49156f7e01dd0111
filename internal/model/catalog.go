package model

import (
	"time"

	"github.com/google/uuid"
)

// Unit enum for product quantities
const (
	UnitKG = "KG" // sold by weight
	UnitUN = "UN" // sold by count
)

// Product is a catalog entry. Products are upserted by code on import and
// never deleted, since order and plan history reference them.
type Product struct {
	ID        uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Code      string    `gorm:"type:varchar(50);uniqueIndex;not null" json:"code"`
	Name      string    `gorm:"type:varchar(255);not null" json:"name"`
	Unit      string    `gorm:"type:varchar(5);not null" json:"unit"` // KG, UN
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Supplier is created lazily on first reference by name.
type Supplier struct {
	ID        uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Name      string    `gorm:"type:varchar(255);uniqueIndex;not null" json:"name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Store is a retail location placing orders. The set is seeded once and fixed.
type Store struct {
	ID        uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Code      string    `gorm:"type:varchar(10);uniqueIndex;not null" json:"code"`
	Name      string    `gorm:"type:varchar(255);uniqueIndex;not null" json:"name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
