package service

import (
	"context"
	"fmt"
	"strings"

	"horti/internal/importer"
	"horti/internal/model"
	"horti/internal/repository"
)

type UpsertProductRequest struct {
	Code string `json:"code" binding:"required"`
	Name string `json:"name" binding:"required"`
	Unit string `json:"unit" binding:"required"`
}

type CatalogService interface {
	UpsertProduct(ctx context.Context, req UpsertProductRequest) (*model.Product, error)
	ListProducts(ctx context.Context, search string, page, limit int) ([]model.Product, int64, error)
	ListStores(ctx context.Context) ([]model.Store, error)
	ImportFromXLSX(ctx context.Context, path string) (int, error)
}

type catalogService struct {
	productRepo repository.ProductRepository
	storeRepo   repository.StoreRepository
}

func NewCatalogService(productRepo repository.ProductRepository, storeRepo repository.StoreRepository) CatalogService {
	return &catalogService{productRepo: productRepo, storeRepo: storeRepo}
}

// UpsertProduct creates the product or refreshes name/unit for an existing
// code. Unit must already be a valid enum value; only the importer applies
// fuzzy unit normalization.
func (s *catalogService) UpsertProduct(ctx context.Context, req UpsertProductRequest) (*model.Product, error) {
	code := strings.TrimSpace(req.Code)
	name := strings.TrimSpace(req.Name)
	unit := strings.ToUpper(strings.TrimSpace(req.Unit))
	if code == "" || name == "" {
		return nil, fmt.Errorf("%w: code and name are required", ErrValidation)
	}
	if unit != model.UnitKG && unit != model.UnitUN {
		return nil, fmt.Errorf("%w: unit must be %s or %s", ErrValidation, model.UnitKG, model.UnitUN)
	}

	product := &model.Product{Code: code, Name: name, Unit: unit}
	if err := s.productRepo.Upsert(ctx, product); err != nil {
		return nil, fmt.Errorf("failed to upsert product: %w", err)
	}
	return product, nil
}

func (s *catalogService) ListProducts(ctx context.Context, search string, page, limit int) ([]model.Product, int64, error) {
	products, total, err := s.productRepo.List(ctx, search, page, limit)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list products: %w", err)
	}
	return products, total, nil
}

func (s *catalogService) ListStores(ctx context.Context) ([]model.Store, error) {
	stores, err := s.storeRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list stores: %w", err)
	}
	return stores, nil
}

// ImportFromXLSX upserts one product per parsed spreadsheet row and returns
// how many rows were applied.
func (s *catalogService) ImportFromXLSX(ctx context.Context, path string) (int, error) {
	rows, err := importer.ReadProducts(path)
	if err != nil {
		return 0, fmt.Errorf("failed to read product sheet: %w", err)
	}
	count := 0
	for _, row := range rows {
		if _, err := s.UpsertProduct(ctx, UpsertProductRequest(row)); err != nil {
			return count, err
		}
		count++
	}
	return count, nil
}
