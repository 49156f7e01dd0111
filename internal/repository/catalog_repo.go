package repository

import (
	"context"
	"strings"

	"horti/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ProductRepository interface {
	Upsert(ctx context.Context, product *model.Product) error
	FindByCode(ctx context.Context, code string) (*model.Product, error)
	List(ctx context.Context, search string, page, limit int) ([]model.Product, int64, error)
}

type productRepository struct {
	db *gorm.DB
}

func NewProductRepository(db *gorm.DB) ProductRepository {
	return &productRepository{db: db}
}

// Upsert inserts the product or, when the code already exists, refreshes its
// name and unit. Catalog imports run this per row.
func (r *productRepository) Upsert(ctx context.Context, product *model.Product) error {
	return GetDB(ctx, r.db).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "code"}},
		DoUpdates: clause.AssignmentColumns([]string{"name", "unit", "updated_at"}),
	}).Create(product).Error
}

func (r *productRepository) FindByCode(ctx context.Context, code string) (*model.Product, error) {
	var product model.Product
	if err := GetDB(ctx, r.db).Where("code = ?", code).First(&product).Error; err != nil {
		return nil, err
	}
	return &product, nil
}

func (r *productRepository) List(ctx context.Context, search string, page, limit int) ([]model.Product, int64, error) {
	var products []model.Product
	var total int64

	db := GetDB(ctx, r.db).Model(&model.Product{})
	if search != "" {
		like := "%" + search + "%"
		db = db.Where("code ILIKE ? OR name ILIKE ?", like, like)
	}

	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * limit
	if err := db.Order("code asc").Offset(offset).Limit(limit).Find(&products).Error; err != nil {
		return nil, 0, err
	}

	return products, total, nil
}

type StoreRepository interface {
	FindByCode(ctx context.Context, code string) (*model.Store, error)
	FindByID(ctx context.Context, id uuid.UUID) (*model.Store, error)
	List(ctx context.Context) ([]model.Store, error)
}

type storeRepository struct {
	db *gorm.DB
}

func NewStoreRepository(db *gorm.DB) StoreRepository {
	return &storeRepository{db: db}
}

func (r *storeRepository) FindByCode(ctx context.Context, code string) (*model.Store, error) {
	var store model.Store
	if err := GetDB(ctx, r.db).Where("code = ?", code).First(&store).Error; err != nil {
		return nil, err
	}
	return &store, nil
}

func (r *storeRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Store, error) {
	var store model.Store
	if err := GetDB(ctx, r.db).First(&store, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &store, nil
}

func (r *storeRepository) List(ctx context.Context) ([]model.Store, error) {
	var stores []model.Store
	if err := GetDB(ctx, r.db).Order("code asc").Find(&stores).Error; err != nil {
		return nil, err
	}
	return stores, nil
}

type SupplierRepository interface {
	FindOrCreateByName(ctx context.Context, name string) (*model.Supplier, error)
}

type supplierRepository struct {
	db *gorm.DB
}

func NewSupplierRepository(db *gorm.DB) SupplierRepository {
	return &supplierRepository{db: db}
}

// FindOrCreateByName resolves a supplier by trimmed, case-sensitive exact
// name match, creating it on first reference. Every caller that accepts a
// supplier name goes through here so the normalization rule stays uniform.
func (r *supplierRepository) FindOrCreateByName(ctx context.Context, name string) (*model.Supplier, error) {
	trimmed := strings.TrimSpace(name)
	var supplier model.Supplier
	if err := GetDB(ctx, r.db).Where("name = ?", trimmed).
		FirstOrCreate(&supplier, model.Supplier{Name: trimmed}).Error; err != nil {
		return nil, err
	}
	return &supplier, nil
}
