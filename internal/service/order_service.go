package service

import (
	"context"
	"errors"
	"fmt"

	"horti/internal/model"
	"horti/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// DTOs

type OrderItemRequest struct {
	Code     string  `json:"code" binding:"required"`
	Quantity float64 `json:"quantity" binding:"required"`
}

type CreateOrderRequest struct {
	StoreCode string             `json:"store_code" binding:"required"`
	Items     []OrderItemRequest `json:"items" binding:"required,min=1,dive"`
}

type OrderItemResponse struct {
	Code     string  `json:"code"`
	Name     string  `json:"name"`
	Unit     string  `json:"unit"`
	Quantity float64 `json:"quantity"`
}

type OrderService interface {
	CreateOrder(ctx context.Context, req CreateOrderRequest) (uuid.UUID, error)
	ListOrders(ctx context.Context, storeCode string) ([]repository.OrderSummary, error)
	ListOrderItems(ctx context.Context, orderID string) ([]OrderItemResponse, error)
}

type orderService struct {
	orderRepo   repository.OrderRepository
	storeRepo   repository.StoreRepository
	productRepo repository.ProductRepository
	txManager   repository.TransactionManager
}

func NewOrderService(
	orderRepo repository.OrderRepository,
	storeRepo repository.StoreRepository,
	productRepo repository.ProductRepository,
	txManager repository.TransactionManager,
) OrderService {
	return &orderService{
		orderRepo:   orderRepo,
		storeRepo:   storeRepo,
		productRepo: productRepo,
		txManager:   txManager,
	}
}

// CreateOrder records one store's order. Every reference is resolved before
// anything is written: an unknown store or product code fails the whole call
// with nothing committed.
func (s *orderService) CreateOrder(ctx context.Context, req CreateOrderRequest) (uuid.UUID, error) {
	if len(req.Items) == 0 {
		return uuid.Nil, fmt.Errorf("%w: order needs at least one item", ErrValidation)
	}
	for i, item := range req.Items {
		if item.Quantity <= 0 {
			return uuid.Nil, fmt.Errorf("%w: items[%d]: quantity must be positive", ErrValidation, i)
		}
	}

	var orderID uuid.UUID
	err := s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		store, err := s.storeRepo.FindByCode(txCtx, req.StoreCode)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: store %q", ErrNotFound, req.StoreCode)
			}
			return fmt.Errorf("failed to resolve store: %w", err)
		}

		items := make([]model.OrderItem, 0, len(req.Items))
		for _, item := range req.Items {
			product, err := s.productRepo.FindByCode(txCtx, item.Code)
			if err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return fmt.Errorf("%w: product %q", ErrNotFound, item.Code)
				}
				return fmt.Errorf("failed to resolve product: %w", err)
			}
			items = append(items, model.OrderItem{
				ProductID: product.ID,
				Quantity:  item.Quantity,
			})
		}

		order := &model.Order{StoreID: store.ID, Items: items}
		if err := s.orderRepo.Create(txCtx, order); err != nil {
			return fmt.Errorf("failed to create order: %w", err)
		}
		orderID = order.ID
		return nil
	})
	if err != nil {
		return uuid.Nil, err
	}
	return orderID, nil
}

func (s *orderService) ListOrders(ctx context.Context, storeCode string) ([]repository.OrderSummary, error) {
	orders, err := s.orderRepo.List(ctx, storeCode)
	if err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}
	return orders, nil
}

func (s *orderService) ListOrderItems(ctx context.Context, orderID string) ([]OrderItemResponse, error) {
	id, err := uuid.Parse(orderID)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid order ID", ErrValidation)
	}
	items, err := s.orderRepo.ListItems(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to list order items: %w", err)
	}
	res := make([]OrderItemResponse, 0, len(items))
	for _, item := range items {
		res = append(res, OrderItemResponse{
			Code:     item.Product.Code,
			Name:     item.Product.Name,
			Unit:     item.Product.Unit,
			Quantity: item.Quantity,
		})
	}
	return res, nil
}
