package service_test

import (
	"context"
	"testing"

	"horti/internal/model"
	"horti/internal/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCatalog(m *memRepo) service.CatalogService {
	return service.NewCatalogService(m, storeRepo{m})
}

func TestUpsertProductNormalizesInput(t *testing.T) {
	m := newMemRepo()
	svc := newCatalog(m)

	product, err := svc.UpsertProduct(context.Background(), service.UpsertProductRequest{
		Code: " 1778 ", Name: " ABACATE ORGANICO KG ", Unit: "kg",
	})
	require.NoError(t, err)
	assert.Equal(t, "1778", product.Code)
	assert.Equal(t, "ABACATE ORGANICO KG", product.Name)
	assert.Equal(t, model.UnitKG, product.Unit)
}

func TestUpsertProductRefreshesExistingCode(t *testing.T) {
	m := newMemRepo()
	svc := newCatalog(m)

	first, err := svc.UpsertProduct(context.Background(), service.UpsertProductRequest{
		Code: "1778", Name: "ABACATE KG", Unit: "KG",
	})
	require.NoError(t, err)

	second, err := svc.UpsertProduct(context.Background(), service.UpsertProductRequest{
		Code: "1778", Name: "ABACATE ORGANICO KG", Unit: "KG",
	})
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID)
	assert.Len(t, m.productsByCode, 1)
	assert.Equal(t, "ABACATE ORGANICO KG", m.productsByCode["1778"].Name)
}

func TestUpsertProductValidation(t *testing.T) {
	m := newMemRepo()
	svc := newCatalog(m)

	_, err := svc.UpsertProduct(context.Background(), service.UpsertProductRequest{
		Code: "", Name: "ABACATE", Unit: "KG",
	})
	assert.ErrorIs(t, err, service.ErrValidation)

	_, err = svc.UpsertProduct(context.Background(), service.UpsertProductRequest{
		Code: "1778", Name: "ABACATE", Unit: "CX",
	})
	assert.ErrorIs(t, err, service.ErrValidation)
}

func TestListProductsSearch(t *testing.T) {
	m := newMemRepo()
	m.addProduct("1778", "ABACATE ORGANICO KG", model.UnitKG)
	m.addProduct("1915", "ABACAXI ORGANICO UN", model.UnitUN)
	m.addProduct("1913", "TOMATE ORGANICO KG", model.UnitKG)

	svc := newCatalog(m)
	products, total, err := svc.ListProducts(context.Background(), "abaca", 1, 50)
	require.NoError(t, err)
	assert.EqualValues(t, 2, total)
	require.Len(t, products, 2)
	assert.Equal(t, "1778", products[0].Code)
	assert.Equal(t, "1915", products[1].Code)
}
