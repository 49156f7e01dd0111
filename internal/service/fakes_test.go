package service_test

import (
	"context"
	"sort"
	"strings"

	"horti/internal/model"
	"horti/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// memRepo is an in-memory implementation of every repository interface plus
// the transaction manager, so the engines can be exercised without a
// database. Upsert/unique-key semantics mirror the schema constraints.
type memRepo struct {
	stores         []model.Store
	productsByCode map[string]model.Product
	productsByID   map[uuid.UUID]model.Product
	suppliersByID  map[uuid.UUID]model.Supplier
	orders         []model.Order
	assignments    map[[2]uuid.UUID]model.SupplierAssignment
	planOrder      []uuid.UUID
	planLines      map[uuid.UUID]model.PlanLine
	received       map[uuid.UUID]model.ReceivedRecord
	distributions  map[[2]uuid.UUID]model.DistributionLine

	receivedCreates int
	receivedUpdates int
}

func newMemRepo() *memRepo {
	return &memRepo{
		productsByCode: make(map[string]model.Product),
		productsByID:   make(map[uuid.UUID]model.Product),
		suppliersByID:  make(map[uuid.UUID]model.Supplier),
		assignments:    make(map[[2]uuid.UUID]model.SupplierAssignment),
		planLines:      make(map[uuid.UUID]model.PlanLine),
		received:       make(map[uuid.UUID]model.ReceivedRecord),
		distributions:  make(map[[2]uuid.UUID]model.DistributionLine),
	}
}

// test fixture helpers

func (m *memRepo) addStore(code, name string) model.Store {
	store := model.Store{ID: uuid.New(), Code: code, Name: name}
	m.stores = append(m.stores, store)
	return store
}

func (m *memRepo) addProduct(code, name, unit string) model.Product {
	product := model.Product{ID: uuid.New(), Code: code, Name: name, Unit: unit}
	m.productsByCode[code] = product
	m.productsByID[product.ID] = product
	return product
}

func (m *memRepo) addOrder(storeCode string, lines ...model.OrderItem) model.Order {
	store, _ := m.findStore(storeCode)
	order := model.Order{ID: uuid.New(), StoreID: store.ID, Items: lines}
	for i := range order.Items {
		order.Items[i].ID = uuid.New()
		order.Items[i].OrderID = order.ID
	}
	m.orders = append(m.orders, order)
	return order
}

func item(product model.Product, qty float64) model.OrderItem {
	return model.OrderItem{ProductID: product.ID, Quantity: qty}
}

func (m *memRepo) findStore(code string) (model.Store, bool) {
	for _, store := range m.stores {
		if store.Code == code {
			return store, true
		}
	}
	return model.Store{}, false
}

// TransactionManager

func (m *memRepo) RunInTx(ctx context.Context, fn func(txCtx context.Context) error) error {
	return fn(ctx)
}

// ProductRepository

func (m *memRepo) Upsert(ctx context.Context, product *model.Product) error {
	if existing, ok := m.productsByCode[product.Code]; ok {
		product.ID = existing.ID
	} else if product.ID == uuid.Nil {
		product.ID = uuid.New()
	}
	m.productsByCode[product.Code] = *product
	m.productsByID[product.ID] = *product
	return nil
}

func (m *memRepo) FindByCode(ctx context.Context, code string) (*model.Product, error) {
	if product, ok := m.productsByCode[code]; ok {
		return &product, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *memRepo) List(ctx context.Context, search string, page, limit int) ([]model.Product, int64, error) {
	var products []model.Product
	for _, product := range m.productsByCode {
		if search == "" ||
			strings.Contains(strings.ToLower(product.Code), strings.ToLower(search)) ||
			strings.Contains(strings.ToLower(product.Name), strings.ToLower(search)) {
			products = append(products, product)
		}
	}
	sort.Slice(products, func(i, j int) bool { return products[i].Code < products[j].Code })
	return products, int64(len(products)), nil
}

// storeRepo adapts memRepo to repository.StoreRepository; a separate type is
// needed because FindByCode collides with the product method.
type storeRepo struct{ m *memRepo }

func (r storeRepo) FindByCode(ctx context.Context, code string) (*model.Store, error) {
	if store, ok := r.m.findStore(code); ok {
		return &store, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (r storeRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Store, error) {
	for _, store := range r.m.stores {
		if store.ID == id {
			return &store, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r storeRepo) List(ctx context.Context) ([]model.Store, error) {
	stores := append([]model.Store(nil), r.m.stores...)
	sort.Slice(stores, func(i, j int) bool { return stores[i].Code < stores[j].Code })
	return stores, nil
}

// supplierRepo adapts memRepo to repository.SupplierRepository.
type supplierRepo struct{ m *memRepo }

func (r supplierRepo) FindOrCreateByName(ctx context.Context, name string) (*model.Supplier, error) {
	trimmed := strings.TrimSpace(name)
	for _, supplier := range r.m.suppliersByID {
		if supplier.Name == trimmed {
			return &supplier, nil
		}
	}
	supplier := model.Supplier{ID: uuid.New(), Name: trimmed}
	r.m.suppliersByID[supplier.ID] = supplier
	return &supplier, nil
}

// orderRepo adapts memRepo to repository.OrderRepository.
type orderRepo struct{ m *memRepo }

func (r orderRepo) Create(ctx context.Context, order *model.Order) error {
	order.ID = uuid.New()
	for i := range order.Items {
		order.Items[i].ID = uuid.New()
		order.Items[i].OrderID = order.ID
	}
	r.m.orders = append(r.m.orders, *order)
	return nil
}

func (r orderRepo) List(ctx context.Context, storeCode string) ([]repository.OrderSummary, error) {
	var summaries []repository.OrderSummary
	for i := len(r.m.orders) - 1; i >= 0; i-- {
		order := r.m.orders[i]
		for _, store := range r.m.stores {
			if store.ID == order.StoreID && (storeCode == "" || store.Code == storeCode) {
				summaries = append(summaries, repository.OrderSummary{
					ID:        order.ID,
					StoreCode: store.Code,
					StoreName: store.Name,
				})
			}
		}
	}
	return summaries, nil
}

func (r orderRepo) ListItems(ctx context.Context, orderID uuid.UUID) ([]model.OrderItem, error) {
	for _, order := range r.m.orders {
		if order.ID != orderID {
			continue
		}
		items := append([]model.OrderItem(nil), order.Items...)
		for i := range items {
			items[i].Product = r.m.productsByID[items[i].ProductID]
		}
		sort.Slice(items, func(i, j int) bool { return items[i].Product.Code < items[j].Product.Code })
		return items, nil
	}
	return nil, nil
}

func (r orderRepo) ListAllLines(ctx context.Context) ([]repository.OrderLineView, error) {
	var lines []repository.OrderLineView
	for _, order := range r.m.orders {
		var store model.Store
		for _, s := range r.m.stores {
			if s.ID == order.StoreID {
				store = s
			}
		}
		for _, it := range order.Items {
			product := r.m.productsByID[it.ProductID]
			lines = append(lines, repository.OrderLineView{
				StoreID:     store.ID,
				StoreCode:   store.Code,
				ProductID:   product.ID,
				ProductCode: product.Code,
				ProductName: product.Name,
				Unit:        product.Unit,
				Quantity:    it.Quantity,
			})
		}
	}
	return lines, nil
}

// assignmentRepo adapts memRepo to repository.AssignmentRepository.
type assignmentRepo struct{ m *memRepo }

func (r assignmentRepo) Upsert(ctx context.Context, assignment *model.SupplierAssignment) error {
	key := [2]uuid.UUID{assignment.StoreID, assignment.ProductID}
	if existing, ok := r.m.assignments[key]; ok {
		assignment.ID = existing.ID
	} else {
		assignment.ID = uuid.New()
	}
	r.m.assignments[key] = *assignment
	return nil
}

func (r assignmentRepo) ListByStore(ctx context.Context, storeID uuid.UUID) ([]repository.AssignmentView, error) {
	var views []repository.AssignmentView
	for _, assignment := range r.m.assignments {
		if assignment.StoreID != storeID {
			continue
		}
		product := r.m.productsByID[assignment.ProductID]
		views = append(views, repository.AssignmentView{
			ProductCode: product.Code,
			ProductName: product.Name,
			Unit:        product.Unit,
			Supplier:    r.m.suppliersByID[assignment.SupplierID].Name,
		})
	}
	sort.Slice(views, func(i, j int) bool { return views[i].ProductCode < views[j].ProductCode })
	return views, nil
}

func (r assignmentRepo) ListKeys(ctx context.Context) ([]repository.AssignmentKey, error) {
	var keys []repository.AssignmentKey
	for _, assignment := range r.m.assignments {
		keys = append(keys, repository.AssignmentKey{
			StoreID:      assignment.StoreID,
			ProductID:    assignment.ProductID,
			SupplierName: r.m.suppliersByID[assignment.SupplierID].Name,
		})
	}
	return keys, nil
}

// logisticsRepo adapts memRepo to repository.LogisticsRepository.
type logisticsRepo struct{ m *memRepo }

func (r logisticsRepo) CreateLines(ctx context.Context, lines []model.PlanLine) error {
	for _, line := range lines {
		line.ID = uuid.New()
		r.m.planLines[line.ID] = line
		r.m.planOrder = append(r.m.planOrder, line.ID)
	}
	return nil
}

func (r logisticsRepo) FindLineByID(ctx context.Context, id uuid.UUID) (*model.PlanLine, error) {
	if line, ok := r.m.planLines[id]; ok {
		return &line, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (r logisticsRepo) ListPlan(ctx context.Context, supplier, search string, cycleID *uuid.UUID) ([]repository.PlanItemView, error) {
	var items []repository.PlanItemView
	for _, id := range r.m.planOrder {
		line := r.m.planLines[id]
		if !line.SentToLogistics {
			continue
		}
		if cycleID != nil && line.CycleID != *cycleID {
			continue
		}
		supplierName := ""
		if line.SupplierID != nil {
			supplierName = r.m.suppliersByID[*line.SupplierID].Name
		}
		if supplier != "" && supplierName != supplier {
			continue
		}
		product := r.m.productsByID[line.ProductID]
		if search != "" &&
			!strings.Contains(strings.ToLower(product.Code), strings.ToLower(search)) &&
			!strings.Contains(strings.ToLower(product.Name), strings.ToLower(search)) {
			continue
		}
		received := 0.0
		if record, ok := r.m.received[line.ID]; ok {
			received = record.ReceivedQuantity
		}
		items = append(items, repository.PlanItemView{
			PlanLineID:       line.ID,
			CycleID:          line.CycleID,
			ProductCode:      product.Code,
			ProductName:      product.Name,
			Unit:             product.Unit,
			Supplier:         supplierName,
			ExpectedQuantity: line.ExpectedQuantity,
			ReceivedQuantity: received,
		})
	}
	sort.Slice(items, func(i, j int) bool { return items[i].ProductCode < items[j].ProductCode })
	return items, nil
}

func (r logisticsRepo) ListPlanSuppliers(ctx context.Context) ([]string, error) {
	seen := make(map[string]bool)
	var names []string
	for _, line := range r.m.planLines {
		if line.SupplierID == nil || !line.SentToLogistics {
			continue
		}
		name := r.m.suppliersByID[*line.SupplierID].Name
		if !seen[name] {
			seen[name] = true
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names, nil
}

func (r logisticsRepo) FindReceived(ctx context.Context, planLineID uuid.UUID) (*model.ReceivedRecord, error) {
	if record, ok := r.m.received[planLineID]; ok {
		return &record, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (r logisticsRepo) CreateReceived(ctx context.Context, record *model.ReceivedRecord) error {
	record.ID = uuid.New()
	r.m.received[record.PlanLineID] = *record
	r.m.receivedCreates++
	return nil
}

func (r logisticsRepo) UpdateReceived(ctx context.Context, record *model.ReceivedRecord) error {
	r.m.received[record.PlanLineID] = *record
	r.m.receivedUpdates++
	return nil
}

func (r logisticsRepo) UpsertDistribution(ctx context.Context, line *model.DistributionLine) error {
	key := [2]uuid.UUID{line.PlanLineID, line.StoreID}
	if existing, ok := r.m.distributions[key]; ok {
		line.ID = existing.ID
	} else {
		line.ID = uuid.New()
	}
	r.m.distributions[key] = *line
	return nil
}

func (r logisticsRepo) ListDistribution(ctx context.Context, planLineID uuid.UUID) ([]repository.DistributionView, error) {
	var views []repository.DistributionView
	for _, line := range r.m.distributions {
		if line.PlanLineID != planLineID {
			continue
		}
		for _, store := range r.m.stores {
			if store.ID == line.StoreID {
				views = append(views, repository.DistributionView{
					StoreCode: store.Code,
					StoreName: store.Name,
					Quantity:  line.Quantity,
				})
			}
		}
	}
	sort.Slice(views, func(i, j int) bool { return views[i].StoreCode < views[j].StoreCode })
	return views, nil
}
