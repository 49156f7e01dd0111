package repository

import (
	"context"

	"horti/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// AssignmentView is an assignment joined with its product and supplier.
type AssignmentView struct {
	ProductCode string `json:"product_code"`
	ProductName string `json:"product_name"`
	Unit        string `json:"unit"`
	Supplier    string `json:"supplier"`
}

// AssignmentKey identifies which supplier serves a (store, product) pair,
// the join side of supplier-scoped consolidation.
type AssignmentKey struct {
	StoreID      uuid.UUID `json:"store_id"`
	ProductID    uuid.UUID `json:"product_id"`
	SupplierName string    `json:"supplier_name"`
}

type AssignmentRepository interface {
	Upsert(ctx context.Context, assignment *model.SupplierAssignment) error
	ListByStore(ctx context.Context, storeID uuid.UUID) ([]AssignmentView, error)
	ListKeys(ctx context.Context) ([]AssignmentKey, error)
}

type assignmentRepository struct {
	db *gorm.DB
}

func NewAssignmentRepository(db *gorm.DB) AssignmentRepository {
	return &assignmentRepository{db: db}
}

// Upsert overwrites the supplier for the (store, product) pair. Last write
// wins; concurrent writers race at the conflict clause and the later commit
// prevails, which is the intended single-operator semantics.
func (r *assignmentRepository) Upsert(ctx context.Context, assignment *model.SupplierAssignment) error {
	return GetDB(ctx, r.db).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "store_id"}, {Name: "product_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"supplier_id", "updated_at"}),
	}).Create(assignment).Error
}

func (r *assignmentRepository) ListByStore(ctx context.Context, storeID uuid.UUID) ([]AssignmentView, error) {
	var views []AssignmentView
	if err := GetDB(ctx, r.db).Table("supplier_assignments").
		Select("products.code as product_code, products.name as product_name, products.unit, suppliers.name as supplier").
		Joins("JOIN products ON products.id = supplier_assignments.product_id").
		Joins("JOIN suppliers ON suppliers.id = supplier_assignments.supplier_id").
		Where("supplier_assignments.store_id = ?", storeID).
		Order("products.code asc").
		Scan(&views).Error; err != nil {
		return nil, err
	}
	return views, nil
}

func (r *assignmentRepository) ListKeys(ctx context.Context) ([]AssignmentKey, error) {
	var keys []AssignmentKey
	if err := GetDB(ctx, r.db).Table("supplier_assignments").
		Select("supplier_assignments.store_id, supplier_assignments.product_id, suppliers.name as supplier_name").
		Joins("JOIN suppliers ON suppliers.id = supplier_assignments.supplier_id").
		Scan(&keys).Error; err != nil {
		return nil, err
	}
	return keys, nil
}
