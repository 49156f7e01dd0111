package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strings"

	"horti/internal/model"
	"horti/internal/repository"
	ws "horti/internal/websocket"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// DTOs

type SendToLogisticsResult struct {
	CycleID uuid.UUID `json:"cycle_id"`
	Count   int       `json:"count"`
}

type DistributionEntry struct {
	StoreCode string  `json:"store_code" binding:"required"`
	Quantity  float64 `json:"quantity"`
}

// DistributionResult reports what a distribution batch actually did: how
// many entries were applied and which store codes were skipped. Callers
// preserving the lenient legacy behavior just ignore Skipped.
type DistributionResult struct {
	Applied int      `json:"applied"`
	Skipped []string `json:"skipped"`
}

type SupplierPlanItem struct {
	repository.PlanItemView
	Distribution []repository.DistributionView `json:"distribution"`
}

// LogisticsEvent is the websocket payload broadcast on plan changes.
type LogisticsEvent struct {
	Event string                 `json:"event"`
	Data  map[string]interface{} `json:"data"`
}

type LogisticsService interface {
	SendToLogistics(ctx context.Context, supplierName string) (SendToLogisticsResult, error)
	ListPlan(ctx context.Context, supplier, search, cycle string) ([]repository.PlanItemView, error)
	PlanSuppliers(ctx context.Context) ([]string, error)
	SupplierPlan(ctx context.Context, supplier, search string) ([]SupplierPlanItem, error)
	RecordReceived(ctx context.Context, planLineID string, quantity float64) error
	SetDistribution(ctx context.Context, planLineID string, entries []DistributionEntry, strict bool) (DistributionResult, error)
	GetDistribution(ctx context.Context, planLineID string) ([]repository.DistributionView, error)
}

type logisticsService struct {
	logisticsRepo repository.LogisticsRepository
	storeRepo     repository.StoreRepository
	supplierRepo  repository.SupplierRepository
	consolidation ConsolidationService
	txManager     repository.TransactionManager
	hub           *ws.Hub
}

func NewLogisticsService(
	logisticsRepo repository.LogisticsRepository,
	storeRepo repository.StoreRepository,
	supplierRepo repository.SupplierRepository,
	consolidation ConsolidationService,
	txManager repository.TransactionManager,
	hub *ws.Hub,
) LogisticsService {
	return &logisticsService{
		logisticsRepo: logisticsRepo,
		storeRepo:     storeRepo,
		supplierRepo:  supplierRepo,
		consolidation: consolidation,
		txManager:     txManager,
		hub:           hub,
	}
}

// SendToLogistics freezes the current consolidation into a new plan batch.
// Every line gets the same cycle ID and, when given, the same supplier; a
// multi-supplier cycle means one call per supplier subset. The call is not
// idempotent: invoking it twice duplicates every line, so the caller owns
// at-most-once per purchasing cycle.
func (s *logisticsService) SendToLogistics(ctx context.Context, supplierName string) (SendToLogisticsResult, error) {
	rows, err := s.consolidation.Consolidate(ctx)
	if err != nil {
		return SendToLogisticsResult{}, err
	}

	cycleID := uuid.New()
	if len(rows) == 0 {
		return SendToLogisticsResult{CycleID: cycleID, Count: 0}, nil
	}

	err = s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		var supplierID *uuid.UUID
		if strings.TrimSpace(supplierName) != "" {
			supplier, err := s.supplierRepo.FindOrCreateByName(txCtx, supplierName)
			if err != nil {
				return fmt.Errorf("failed to resolve supplier: %w", err)
			}
			supplierID = &supplier.ID
		}

		lines := make([]model.PlanLine, 0, len(rows))
		for _, row := range rows {
			lines = append(lines, model.PlanLine{
				CycleID:          cycleID,
				ProductID:        row.ProductID,
				SupplierID:       supplierID,
				ExpectedQuantity: row.TotalQuantity,
				SentToLogistics:  true,
			})
		}
		if err := s.logisticsRepo.CreateLines(txCtx, lines); err != nil {
			return fmt.Errorf("failed to create plan lines: %w", err)
		}
		return nil
	})
	if err != nil {
		return SendToLogisticsResult{}, err
	}

	s.notify("plan_created", map[string]interface{}{
		"cycle_id": cycleID.String(),
		"count":    len(rows),
	})
	return SendToLogisticsResult{CycleID: cycleID, Count: len(rows)}, nil
}

func (s *logisticsService) ListPlan(ctx context.Context, supplier, search, cycle string) ([]repository.PlanItemView, error) {
	var cycleID *uuid.UUID
	if cycle != "" {
		id, err := uuid.Parse(cycle)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid cycle ID", ErrValidation)
		}
		cycleID = &id
	}
	items, err := s.logisticsRepo.ListPlan(ctx, supplier, search, cycleID)
	if err != nil {
		return nil, fmt.Errorf("failed to list plan: %w", err)
	}
	return items, nil
}

func (s *logisticsService) PlanSuppliers(ctx context.Context) ([]string, error) {
	names, err := s.logisticsRepo.ListPlanSuppliers(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list plan suppliers: %w", err)
	}
	return names, nil
}

// SupplierPlan returns plan lines with their per-store distribution attached,
// the view logistics operators work from when splitting deliveries.
func (s *logisticsService) SupplierPlan(ctx context.Context, supplier, search string) ([]SupplierPlanItem, error) {
	views, err := s.logisticsRepo.ListPlan(ctx, supplier, search, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to list plan: %w", err)
	}
	items := make([]SupplierPlanItem, 0, len(views))
	for _, view := range views {
		dist, err := s.logisticsRepo.ListDistribution(ctx, view.PlanLineID)
		if err != nil {
			return nil, fmt.Errorf("failed to load distribution: %w", err)
		}
		items = append(items, SupplierPlanItem{PlanItemView: view, Distribution: dist})
	}
	return items, nil
}

// RecordReceived upserts the delivered quantity for a plan line. Over- and
// under-delivery are recorded as-is; only negative quantities are rejected.
func (s *logisticsService) RecordReceived(ctx context.Context, planLineID string, quantity float64) error {
	id, err := uuid.Parse(planLineID)
	if err != nil {
		return fmt.Errorf("%w: invalid plan line ID", ErrValidation)
	}
	if quantity < 0 || math.IsNaN(quantity) || math.IsInf(quantity, 0) {
		return fmt.Errorf("%w: received quantity must be a non-negative number", ErrValidation)
	}

	err = s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		if _, err := s.logisticsRepo.FindLineByID(txCtx, id); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: plan line %s", ErrNotFound, planLineID)
			}
			return fmt.Errorf("failed to resolve plan line: %w", err)
		}

		record, err := s.logisticsRepo.FindReceived(txCtx, id)
		switch {
		case err == nil:
			record.ReceivedQuantity = quantity
			if err := s.logisticsRepo.UpdateReceived(txCtx, record); err != nil {
				return fmt.Errorf("failed to update received record: %w", err)
			}
		case errors.Is(err, gorm.ErrRecordNotFound):
			record = &model.ReceivedRecord{PlanLineID: id, ReceivedQuantity: quantity}
			if err := s.logisticsRepo.CreateReceived(txCtx, record); err != nil {
				return fmt.Errorf("failed to create received record: %w", err)
			}
		default:
			return fmt.Errorf("failed to load received record: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.notify("received_updated", map[string]interface{}{
		"plan_line_id":      planLineID,
		"received_quantity": quantity,
	})
	return nil
}

// SetDistribution upserts per-store splits for a plan line. By default
// entries for unknown stores are skipped and reported, allowing best-effort
// batch updates from the operator UI. With strict set, an unknown store or a
// total that differs from the recorded received quantity (expected quantity
// when nothing was received) aborts the whole batch.
func (s *logisticsService) SetDistribution(ctx context.Context, planLineID string, entries []DistributionEntry, strict bool) (DistributionResult, error) {
	id, err := uuid.Parse(planLineID)
	if err != nil {
		return DistributionResult{}, fmt.Errorf("%w: invalid plan line ID", ErrValidation)
	}
	for i, entry := range entries {
		if entry.Quantity < 0 || math.IsNaN(entry.Quantity) || math.IsInf(entry.Quantity, 0) {
			return DistributionResult{}, fmt.Errorf("%w: distribution[%d]: quantity must be a non-negative number", ErrValidation, i)
		}
	}

	result := DistributionResult{Skipped: []string{}}
	err = s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		line, err := s.logisticsRepo.FindLineByID(txCtx, id)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: plan line %s", ErrNotFound, planLineID)
			}
			return fmt.Errorf("failed to resolve plan line: %w", err)
		}

		if strict {
			target := line.ExpectedQuantity
			if record, err := s.logisticsRepo.FindReceived(txCtx, id); err == nil {
				target = record.ReceivedQuantity
			} else if !errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("failed to load received record: %w", err)
			}
			var sum float64
			for _, entry := range entries {
				sum += entry.Quantity
			}
			if math.Abs(sum-target) > 1e-9 {
				return fmt.Errorf("%w: distribution total %v does not match %v", ErrValidation, sum, target)
			}
		}

		for _, entry := range entries {
			store, err := s.storeRepo.FindByCode(txCtx, entry.StoreCode)
			if err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					if strict {
						return fmt.Errorf("%w: store %q", ErrNotFound, entry.StoreCode)
					}
					result.Skipped = append(result.Skipped, entry.StoreCode)
					continue
				}
				return fmt.Errorf("failed to resolve store: %w", err)
			}
			dist := &model.DistributionLine{
				PlanLineID: id,
				StoreID:    store.ID,
				Quantity:   entry.Quantity,
			}
			if err := s.logisticsRepo.UpsertDistribution(txCtx, dist); err != nil {
				return fmt.Errorf("failed to save distribution: %w", err)
			}
			result.Applied++
		}
		return nil
	})
	if err != nil {
		return DistributionResult{}, err
	}

	s.notify("distribution_updated", map[string]interface{}{
		"plan_line_id": planLineID,
		"applied":      result.Applied,
		"skipped":      result.Skipped,
	})
	return result, nil
}

func (s *logisticsService) GetDistribution(ctx context.Context, planLineID string) ([]repository.DistributionView, error) {
	id, err := uuid.Parse(planLineID)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid plan line ID", ErrValidation)
	}
	if _, err := s.logisticsRepo.FindLineByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: plan line %s", ErrNotFound, planLineID)
		}
		return nil, fmt.Errorf("failed to resolve plan line: %w", err)
	}
	views, err := s.logisticsRepo.ListDistribution(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to load distribution: %w", err)
	}
	return views, nil
}

func (s *logisticsService) notify(event string, data map[string]interface{}) {
	if s.hub == nil {
		return
	}
	payload, err := json.Marshal(LogisticsEvent{Event: event, Data: data})
	if err != nil {
		return
	}
	s.hub.Broadcast <- payload
}
