package repository

import (
	"context"

	"horti/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// PlanItemView is a plan line joined with product, supplier and the latest
// received quantity (zero when nothing has been received yet).
type PlanItemView struct {
	PlanLineID       uuid.UUID `json:"plan_line_id"`
	CycleID          uuid.UUID `json:"cycle_id"`
	ProductCode      string    `json:"product_code"`
	ProductName      string    `json:"product_name"`
	Unit             string    `json:"unit"`
	Supplier         string    `json:"supplier"`
	ExpectedQuantity float64   `json:"expected_quantity"`
	ReceivedQuantity float64   `json:"received_quantity"`
}

// DistributionView is a distribution line joined with its store.
type DistributionView struct {
	StoreCode string  `json:"store_code"`
	StoreName string  `json:"store_name"`
	Quantity  float64 `json:"quantity"`
}

type LogisticsRepository interface {
	CreateLines(ctx context.Context, lines []model.PlanLine) error
	FindLineByID(ctx context.Context, id uuid.UUID) (*model.PlanLine, error)
	ListPlan(ctx context.Context, supplier, search string, cycleID *uuid.UUID) ([]PlanItemView, error)
	ListPlanSuppliers(ctx context.Context) ([]string, error)
	FindReceived(ctx context.Context, planLineID uuid.UUID) (*model.ReceivedRecord, error)
	CreateReceived(ctx context.Context, record *model.ReceivedRecord) error
	UpdateReceived(ctx context.Context, record *model.ReceivedRecord) error
	UpsertDistribution(ctx context.Context, line *model.DistributionLine) error
	ListDistribution(ctx context.Context, planLineID uuid.UUID) ([]DistributionView, error)
}

type logisticsRepository struct {
	db *gorm.DB
}

func NewLogisticsRepository(db *gorm.DB) LogisticsRepository {
	return &logisticsRepository{db: db}
}

func (r *logisticsRepository) CreateLines(ctx context.Context, lines []model.PlanLine) error {
	if len(lines) == 0 {
		return nil
	}
	return GetDB(ctx, r.db).Create(&lines).Error
}

func (r *logisticsRepository) FindLineByID(ctx context.Context, id uuid.UUID) (*model.PlanLine, error) {
	var line model.PlanLine
	if err := GetDB(ctx, r.db).First(&line, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &line, nil
}

func (r *logisticsRepository) ListPlan(ctx context.Context, supplier, search string, cycleID *uuid.UUID) ([]PlanItemView, error) {
	var items []PlanItemView
	db := GetDB(ctx, r.db).Table("logistics_plan").
		Select("logistics_plan.id as plan_line_id, logistics_plan.cycle_id, "+
			"products.code as product_code, products.name as product_name, products.unit, "+
			"COALESCE(suppliers.name, '') as supplier, logistics_plan.expected_quantity, "+
			"COALESCE(logistics_received.received_quantity, 0) as received_quantity").
		Joins("JOIN products ON products.id = logistics_plan.product_id").
		Joins("LEFT JOIN suppliers ON suppliers.id = logistics_plan.supplier_id").
		Joins("LEFT JOIN logistics_received ON logistics_received.logistics_plan_id = logistics_plan.id").
		Where("logistics_plan.sent_to_logistics = ?", true)
	if supplier != "" {
		db = db.Where("suppliers.name = ?", supplier)
	}
	if search != "" {
		like := "%" + search + "%"
		db = db.Where("products.code ILIKE ? OR products.name ILIKE ?", like, like)
	}
	if cycleID != nil {
		db = db.Where("logistics_plan.cycle_id = ?", *cycleID)
	}
	if err := db.Order("products.code asc").Scan(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (r *logisticsRepository) ListPlanSuppliers(ctx context.Context) ([]string, error) {
	var names []string
	if err := GetDB(ctx, r.db).Table("logistics_plan").
		Distinct("suppliers.name").
		Joins("JOIN suppliers ON suppliers.id = logistics_plan.supplier_id").
		Where("logistics_plan.sent_to_logistics = ?", true).
		Order("suppliers.name asc").
		Pluck("suppliers.name", &names).Error; err != nil {
		return nil, err
	}
	return names, nil
}

func (r *logisticsRepository) FindReceived(ctx context.Context, planLineID uuid.UUID) (*model.ReceivedRecord, error) {
	var record model.ReceivedRecord
	if err := GetDB(ctx, r.db).Where("logistics_plan_id = ?", planLineID).First(&record).Error; err != nil {
		return nil, err
	}
	return &record, nil
}

func (r *logisticsRepository) CreateReceived(ctx context.Context, record *model.ReceivedRecord) error {
	return GetDB(ctx, r.db).Create(record).Error
}

func (r *logisticsRepository) UpdateReceived(ctx context.Context, record *model.ReceivedRecord) error {
	return GetDB(ctx, r.db).Save(record).Error
}

// UpsertDistribution overwrites the quantity for the (plan line, store) key.
func (r *logisticsRepository) UpsertDistribution(ctx context.Context, line *model.DistributionLine) error {
	return GetDB(ctx, r.db).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "logistics_plan_id"}, {Name: "store_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"quantity", "updated_at"}),
	}).Create(line).Error
}

func (r *logisticsRepository) ListDistribution(ctx context.Context, planLineID uuid.UUID) ([]DistributionView, error) {
	var views []DistributionView
	if err := GetDB(ctx, r.db).Table("logistics_distribution").
		Select("stores.code as store_code, stores.name as store_name, logistics_distribution.quantity").
		Joins("JOIN stores ON stores.id = logistics_distribution.store_id").
		Where("logistics_distribution.logistics_plan_id = ?", planLineID).
		Order("stores.code asc").
		Scan(&views).Error; err != nil {
		return nil, err
	}
	return views, nil
}
