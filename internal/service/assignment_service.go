package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"horti/internal/model"
	"horti/internal/repository"

	"gorm.io/gorm"
)

type AssignRequest struct {
	StoreCode   string `json:"store_code" binding:"required"`
	ProductCode string `json:"product_code" binding:"required"`
	Supplier    string `json:"supplier" binding:"required"`
}

type AssignmentService interface {
	Assign(ctx context.Context, req AssignRequest) error
	ListAssignments(ctx context.Context, storeCode string) ([]repository.AssignmentView, error)
}

type assignmentService struct {
	assignmentRepo repository.AssignmentRepository
	storeRepo      repository.StoreRepository
	productRepo    repository.ProductRepository
	supplierRepo   repository.SupplierRepository
	txManager      repository.TransactionManager
}

func NewAssignmentService(
	assignmentRepo repository.AssignmentRepository,
	storeRepo repository.StoreRepository,
	productRepo repository.ProductRepository,
	supplierRepo repository.SupplierRepository,
	txManager repository.TransactionManager,
) AssignmentService {
	return &assignmentService{
		assignmentRepo: assignmentRepo,
		storeRepo:      storeRepo,
		productRepo:    productRepo,
		supplierRepo:   supplierRepo,
		txManager:      txManager,
	}
}

// Assign designates the supplier for a (store, product) pair, replacing any
// previous choice. The supplier is created on first reference by trimmed
// exact-name match; a misspelled name therefore becomes a new supplier,
// which is accepted as operator input, not detected.
func (s *assignmentService) Assign(ctx context.Context, req AssignRequest) error {
	if strings.TrimSpace(req.Supplier) == "" {
		return fmt.Errorf("%w: supplier name is required", ErrValidation)
	}

	return s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		store, err := s.storeRepo.FindByCode(txCtx, req.StoreCode)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: store %q", ErrNotFound, req.StoreCode)
			}
			return fmt.Errorf("failed to resolve store: %w", err)
		}
		product, err := s.productRepo.FindByCode(txCtx, req.ProductCode)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: product %q", ErrNotFound, req.ProductCode)
			}
			return fmt.Errorf("failed to resolve product: %w", err)
		}
		supplier, err := s.supplierRepo.FindOrCreateByName(txCtx, req.Supplier)
		if err != nil {
			return fmt.Errorf("failed to resolve supplier: %w", err)
		}

		assignment := &model.SupplierAssignment{
			StoreID:    store.ID,
			ProductID:  product.ID,
			SupplierID: supplier.ID,
		}
		if err := s.assignmentRepo.Upsert(txCtx, assignment); err != nil {
			return fmt.Errorf("failed to save assignment: %w", err)
		}
		return nil
	})
}

func (s *assignmentService) ListAssignments(ctx context.Context, storeCode string) ([]repository.AssignmentView, error) {
	store, err := s.storeRepo.FindByCode(ctx, storeCode)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: store %q", ErrNotFound, storeCode)
		}
		return nil, fmt.Errorf("failed to resolve store: %w", err)
	}
	views, err := s.assignmentRepo.ListByStore(ctx, store.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to list assignments: %w", err)
	}
	return views, nil
}
