package service

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"horti/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ConsolidatedRow is one product's total requirement across the order ledger.
// Code, name and unit are carried through from the catalog rows the order
// lines reference, never recomputed.
type ConsolidatedRow struct {
	ProductID     uuid.UUID `json:"product_id"`
	Code          string    `json:"code"`
	Name          string    `json:"name"`
	Unit          string    `json:"unit"`
	TotalQuantity float64   `json:"total_quantity"`
}

// SupplierConsolidatedRow is one (supplier, product) requirement, restricted
// to order lines whose (store, product) pair has a supplier assignment.
type SupplierConsolidatedRow struct {
	Supplier      string  `json:"supplier"`
	Code          string  `json:"code"`
	Name          string  `json:"name"`
	Unit          string  `json:"unit"`
	TotalQuantity float64 `json:"total_quantity"`
}

// UnassignedRow is demand excluded from supplier-scoped consolidation: order
// lines whose (store, product) pair has no assignment.
type UnassignedRow struct {
	StoreCode     string  `json:"store_code"`
	Code          string  `json:"code"`
	Name          string  `json:"name"`
	Unit          string  `json:"unit"`
	TotalQuantity float64 `json:"total_quantity"`
}

type ConsolidationService interface {
	Consolidate(ctx context.Context) ([]ConsolidatedRow, error)
	ConsolidateBySupplier(ctx context.Context) ([]SupplierConsolidatedRow, error)
	StoreTotals(ctx context.Context, storeCode string) ([]ConsolidatedRow, error)
	UnassignedDemand(ctx context.Context) ([]UnassignedRow, error)
}

type consolidationService struct {
	orderRepo      repository.OrderRepository
	storeRepo      repository.StoreRepository
	assignmentRepo repository.AssignmentRepository
}

func NewConsolidationService(
	orderRepo repository.OrderRepository,
	storeRepo repository.StoreRepository,
	assignmentRepo repository.AssignmentRepository,
) ConsolidationService {
	return &consolidationService{
		orderRepo:      orderRepo,
		storeRepo:      storeRepo,
		assignmentRepo: assignmentRepo,
	}
}

// Consolidate sums order lines by product across all stores and orders.
// Plain floating addition, no rounding; rounding belongs to export
// formatting. An empty ledger yields an empty result.
func (s *consolidationService) Consolidate(ctx context.Context) ([]ConsolidatedRow, error) {
	lines, err := s.orderRepo.ListAllLines(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load order lines: %w", err)
	}
	return foldByProduct(lines), nil
}

// ConsolidateBySupplier sums order lines by (supplier, product), joining on
// the assignment table. Lines whose (store, product) pair has no assignment
// are excluded by policy; UnassignedDemand reports them.
func (s *consolidationService) ConsolidateBySupplier(ctx context.Context) ([]SupplierConsolidatedRow, error) {
	lines, err := s.orderRepo.ListAllLines(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load order lines: %w", err)
	}
	keys, err := s.assignmentRepo.ListKeys(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load assignments: %w", err)
	}

	suppliers := assignmentIndex(keys)

	type groupKey struct {
		supplier  string
		productID uuid.UUID
	}
	totals := make(map[groupKey]*SupplierConsolidatedRow)
	for _, line := range lines {
		supplier, ok := suppliers[pairKey{line.StoreID, line.ProductID}]
		if !ok {
			continue
		}
		key := groupKey{supplier, line.ProductID}
		if row, exists := totals[key]; exists {
			row.TotalQuantity += line.Quantity
			continue
		}
		totals[key] = &SupplierConsolidatedRow{
			Supplier:      supplier,
			Code:          line.ProductCode,
			Name:          line.ProductName,
			Unit:          line.Unit,
			TotalQuantity: line.Quantity,
		}
	}

	rows := make([]SupplierConsolidatedRow, 0, len(totals))
	for _, row := range totals {
		rows = append(rows, *row)
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].Supplier != rows[j].Supplier {
			return rows[i].Supplier < rows[j].Supplier
		}
		return rows[i].Code < rows[j].Code
	})
	return rows, nil
}

// StoreTotals restricts consolidation to one store's orders.
func (s *consolidationService) StoreTotals(ctx context.Context, storeCode string) ([]ConsolidatedRow, error) {
	if _, err := s.storeRepo.FindByCode(ctx, storeCode); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: store %q", ErrNotFound, storeCode)
		}
		return nil, fmt.Errorf("failed to resolve store: %w", err)
	}
	lines, err := s.orderRepo.ListAllLines(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load order lines: %w", err)
	}
	scoped := make([]repository.OrderLineView, 0, len(lines))
	for _, line := range lines {
		if line.StoreCode == storeCode {
			scoped = append(scoped, line)
		}
	}
	return foldByProduct(scoped), nil
}

// UnassignedDemand is the complement of ConsolidateBySupplier: totals for
// order lines silently dropped from the supplier-scoped view.
func (s *consolidationService) UnassignedDemand(ctx context.Context) ([]UnassignedRow, error) {
	lines, err := s.orderRepo.ListAllLines(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load order lines: %w", err)
	}
	keys, err := s.assignmentRepo.ListKeys(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load assignments: %w", err)
	}

	suppliers := assignmentIndex(keys)

	type groupKey struct {
		storeCode string
		productID uuid.UUID
	}
	totals := make(map[groupKey]*UnassignedRow)
	for _, line := range lines {
		if _, ok := suppliers[pairKey{line.StoreID, line.ProductID}]; ok {
			continue
		}
		key := groupKey{line.StoreCode, line.ProductID}
		if row, exists := totals[key]; exists {
			row.TotalQuantity += line.Quantity
			continue
		}
		totals[key] = &UnassignedRow{
			StoreCode:     line.StoreCode,
			Code:          line.ProductCode,
			Name:          line.ProductName,
			Unit:          line.Unit,
			TotalQuantity: line.Quantity,
		}
	}

	rows := make([]UnassignedRow, 0, len(totals))
	for _, row := range totals {
		rows = append(rows, *row)
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].StoreCode != rows[j].StoreCode {
			return rows[i].StoreCode < rows[j].StoreCode
		}
		return rows[i].Code < rows[j].Code
	})
	return rows, nil
}

type pairKey struct {
	storeID   uuid.UUID
	productID uuid.UUID
}

func assignmentIndex(keys []repository.AssignmentKey) map[pairKey]string {
	index := make(map[pairKey]string, len(keys))
	for _, k := range keys {
		index[pairKey{k.StoreID, k.ProductID}] = k.SupplierName
	}
	return index
}

// foldByProduct groups lines by product identity and sums quantities. Output
// is ordered by product code ascending so downstream processing stays
// deterministic regardless of insertion sequence.
func foldByProduct(lines []repository.OrderLineView) []ConsolidatedRow {
	totals := make(map[uuid.UUID]*ConsolidatedRow)
	for _, line := range lines {
		if row, exists := totals[line.ProductID]; exists {
			row.TotalQuantity += line.Quantity
			continue
		}
		totals[line.ProductID] = &ConsolidatedRow{
			ProductID:     line.ProductID,
			Code:          line.ProductCode,
			Name:          line.ProductName,
			Unit:          line.Unit,
			TotalQuantity: line.Quantity,
		}
	}

	rows := make([]ConsolidatedRow, 0, len(totals))
	for _, row := range totals {
		rows = append(rows, *row)
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].Code < rows[j].Code })
	return rows
}
