package service_test

import (
	"context"
	"testing"

	"horti/internal/model"
	"horti/internal/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAssignments(m *memRepo) service.AssignmentService {
	return service.NewAssignmentService(assignmentRepo{m}, storeRepo{m}, m, supplierRepo{m}, m)
}

func TestAssignReplacesPreviousSupplier(t *testing.T) {
	m := newMemRepo()
	m.addStore("PIT", "Pituba")
	m.addProduct("1778", "ABACATE ORGANICO KG", model.UnitKG)

	svc := newAssignments(m)
	require.NoError(t, svc.Assign(context.Background(), service.AssignRequest{
		StoreCode: "PIT", ProductCode: "1778", Supplier: "erico",
	}))
	require.NoError(t, svc.Assign(context.Background(), service.AssignRequest{
		StoreCode: "PIT", ProductCode: "1778", Supplier: "irece",
	}))

	views, err := svc.ListAssignments(context.Background(), "PIT")
	require.NoError(t, err)
	require.Len(t, views, 1)
	assert.Equal(t, "irece", views[0].Supplier)
}

func TestAssignTrimsSupplierName(t *testing.T) {
	m := newMemRepo()
	m.addStore("PIT", "Pituba")
	m.addStore("VIT", "Vitoria")
	m.addProduct("1778", "ABACATE ORGANICO KG", model.UnitKG)

	svc := newAssignments(m)
	require.NoError(t, svc.Assign(context.Background(), service.AssignRequest{
		StoreCode: "PIT", ProductCode: "1778", Supplier: "  erico  ",
	}))
	require.NoError(t, svc.Assign(context.Background(), service.AssignRequest{
		StoreCode: "VIT", ProductCode: "1778", Supplier: "erico",
	}))

	// Both assignments resolve to the same supplier record.
	assert.Len(t, m.suppliersByID, 1)
}

func TestAssignValidation(t *testing.T) {
	m := newMemRepo()
	m.addStore("PIT", "Pituba")
	m.addProduct("1778", "ABACATE ORGANICO KG", model.UnitKG)

	svc := newAssignments(m)

	err := svc.Assign(context.Background(), service.AssignRequest{
		StoreCode: "PIT", ProductCode: "1778", Supplier: "   ",
	})
	assert.ErrorIs(t, err, service.ErrValidation)

	err = svc.Assign(context.Background(), service.AssignRequest{
		StoreCode: "XXX", ProductCode: "1778", Supplier: "erico",
	})
	assert.ErrorIs(t, err, service.ErrNotFound)

	err = svc.Assign(context.Background(), service.AssignRequest{
		StoreCode: "PIT", ProductCode: "9999", Supplier: "erico",
	})
	assert.ErrorIs(t, err, service.ErrNotFound)
}

func TestListAssignmentsUnknownStore(t *testing.T) {
	m := newMemRepo()
	_, err := newAssignments(m).ListAssignments(context.Background(), "XXX")
	assert.ErrorIs(t, err, service.ErrNotFound)
}

func TestListAssignmentsOrderedByProductCode(t *testing.T) {
	m := newMemRepo()
	m.addStore("PIT", "Pituba")
	m.addProduct("1915", "ABACAXI ORGANICO UN", model.UnitUN)
	m.addProduct("1778", "ABACATE ORGANICO KG", model.UnitKG)

	svc := newAssignments(m)
	require.NoError(t, svc.Assign(context.Background(), service.AssignRequest{
		StoreCode: "PIT", ProductCode: "1915", Supplier: "irece",
	}))
	require.NoError(t, svc.Assign(context.Background(), service.AssignRequest{
		StoreCode: "PIT", ProductCode: "1778", Supplier: "erico",
	}))

	views, err := svc.ListAssignments(context.Background(), "PIT")
	require.NoError(t, err)
	require.Len(t, views, 2)
	assert.Equal(t, "1778", views[0].ProductCode)
	assert.Equal(t, "1915", views[1].ProductCode)
}
