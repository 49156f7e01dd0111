package model

import (
	"time"

	"github.com/google/uuid"
)

// SupplierAssignment maps (store, product) to its current supplier. Last
// write wins; no assignment history is kept.
type SupplierAssignment struct {
	ID         uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	StoreID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_assignment_store_product" json:"store_id"`
	ProductID  uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_assignment_store_product" json:"product_id"`
	SupplierID uuid.UUID `gorm:"type:uuid;not null;index" json:"supplier_id"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// PlanLine is one product's consolidated requirement within a purchasing
// cycle. ExpectedQuantity is frozen at creation; new orders start a new
// cycle rather than reopening this one.
type PlanLine struct {
	ID               uuid.UUID  `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	CycleID          uuid.UUID  `gorm:"type:uuid;not null;index" json:"cycle_id"`
	ProductID        uuid.UUID  `gorm:"type:uuid;not null;index" json:"product_id"`
	SupplierID       *uuid.UUID `gorm:"type:uuid;index" json:"supplier_id"`
	ExpectedQuantity float64    `gorm:"type:decimal(12,3);not null" json:"expected_quantity"`
	SentToLogistics  bool       `gorm:"not null;default:false" json:"sent_to_logistics"`
	CreatedAt        time.Time  `json:"created_at"`
}

func (PlanLine) TableName() string { return "logistics_plan" }

// ReceivedRecord tracks what the supplier actually delivered against a plan
// line. At most one record per line; later updates overwrite.
type ReceivedRecord struct {
	ID               uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	PlanLineID       uuid.UUID `gorm:"type:uuid;not null;uniqueIndex;column:logistics_plan_id" json:"plan_line_id"`
	ReceivedQuantity float64   `gorm:"type:decimal(12,3);not null" json:"received_quantity"`
	UpdatedAt        time.Time `json:"updated_at"`
}

func (ReceivedRecord) TableName() string { return "logistics_received" }

// DistributionLine is the operator's split of a plan line across stores,
// used for redelivery after goods arrive. Advisory: the engine does not
// force the splits to sum to the expected or received quantity.
type DistributionLine struct {
	ID         uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	PlanLineID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_distribution_plan_store;column:logistics_plan_id" json:"plan_line_id"`
	StoreID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_distribution_plan_store" json:"store_id"`
	Quantity   float64   `gorm:"type:decimal(12,3);not null" json:"quantity"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

func (DistributionLine) TableName() string { return "logistics_distribution" }
