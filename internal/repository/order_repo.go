package repository

import (
	"context"

	"horti/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// OrderLineView is a raw order line joined with its store and product, the
// feed the consolidation engine aggregates over.
type OrderLineView struct {
	StoreID     uuid.UUID `json:"store_id"`
	StoreCode   string    `json:"store_code"`
	ProductID   uuid.UUID `json:"product_id"`
	ProductCode string    `json:"product_code"`
	ProductName string    `json:"product_name"`
	Unit        string    `json:"unit"`
	Quantity    float64   `json:"quantity"`
}

// OrderSummary is an order header joined with its store.
type OrderSummary struct {
	ID        uuid.UUID `json:"id"`
	StoreCode string    `json:"store_code"`
	StoreName string    `json:"store_name"`
	CreatedAt string    `json:"created_at"`
}

type OrderRepository interface {
	Create(ctx context.Context, order *model.Order) error
	List(ctx context.Context, storeCode string) ([]OrderSummary, error)
	ListItems(ctx context.Context, orderID uuid.UUID) ([]model.OrderItem, error)
	ListAllLines(ctx context.Context) ([]OrderLineView, error)
}

type orderRepository struct {
	db *gorm.DB
}

func NewOrderRepository(db *gorm.DB) OrderRepository {
	return &orderRepository{db: db}
}

func (r *orderRepository) Create(ctx context.Context, order *model.Order) error {
	return GetDB(ctx, r.db).Create(order).Error
}

func (r *orderRepository) List(ctx context.Context, storeCode string) ([]OrderSummary, error) {
	var summaries []OrderSummary
	db := GetDB(ctx, r.db).Table("orders").
		Select("orders.id, stores.code as store_code, stores.name as store_name, orders.created_at").
		Joins("JOIN stores ON stores.id = orders.store_id")
	if storeCode != "" {
		db = db.Where("stores.code = ?", storeCode)
	}
	if err := db.Order("orders.created_at DESC, orders.id DESC").Scan(&summaries).Error; err != nil {
		return nil, err
	}
	return summaries, nil
}

func (r *orderRepository) ListItems(ctx context.Context, orderID uuid.UUID) ([]model.OrderItem, error) {
	var items []model.OrderItem
	if err := GetDB(ctx, r.db).
		Preload("Product").
		Joins("JOIN products ON products.id = order_items.product_id").
		Where("order_items.order_id = ?", orderID).
		Order("products.code asc").
		Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (r *orderRepository) ListAllLines(ctx context.Context) ([]OrderLineView, error) {
	var lines []OrderLineView
	if err := GetDB(ctx, r.db).Table("order_items").
		Select("orders.store_id, stores.code as store_code, products.id as product_id, " +
			"products.code as product_code, products.name as product_name, products.unit, order_items.quantity").
		Joins("JOIN orders ON orders.id = order_items.order_id").
		Joins("JOIN stores ON stores.id = orders.store_id").
		Joins("JOIN products ON products.id = order_items.product_id").
		Scan(&lines).Error; err != nil {
		return nil, err
	}
	return lines, nil
}
