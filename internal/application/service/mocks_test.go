package service_test

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/feedworks/feedmill-api/internal/domain/entity"
	"github.com/feedworks/feedmill-api/internal/domain/enum"
	"github.com/feedworks/feedmill-api/internal/domain/repository"
	"github.com/feedworks/feedmill-api/pkg/pagination"
)

type MockOrderRepository struct{ mock.Mock }

func (m *MockOrderRepository) Create(ctx context.Context, order *entity.Order) error {
	args := m.Called(ctx, order)
	return args.Error(0)
}

func (m *MockOrderRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Order), args.Error(1)
}

func (m *MockOrderRepository) GetWithDetails(ctx context.Context, id uuid.UUID) (*entity.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Order), args.Error(1)
}

func (m *MockOrderRepository) List(ctx context.Context, params *repository.OrderFilterParams) ([]entity.Order, int64, error) {
	args := m.Called(ctx, params)
	return args.Get(0).([]entity.Order), args.Get(1).(int64), args.Error(2)
}

func (m *MockOrderRepository) ListWithCursor(ctx context.Context, params *repository.OrderCursorFilterParams) ([]entity.Order, error) {
	args := m.Called(ctx, params)
	return args.Get(0).([]entity.Order), args.Error(1)
}

func (m *MockOrderRepository) GetDueOrders(ctx context.Context, params *pagination.PaginationParams) ([]entity.Order, int64, error) {
	args := m.Called(ctx, params)
	return args.Get(0).([]entity.Order), args.Get(1).(int64), args.Error(2)
}

func (m *MockOrderRepository) UpdateWhereStatus(ctx context.Context, id uuid.UUID, current enum.OrderStatus, updates map[string]interface{}) (bool, error) {
	args := m.Called(ctx, id, current, updates)
	return args.Bool(0), args.Error(1)
}

func (m *MockOrderRepository) SetPlantConfirmation(ctx context.Context, id uuid.UUID, actor entity.ActorSnapshot) (bool, error) {
	args := m.Called(ctx, id, actor)
	return args.Bool(0), args.Error(1)
}

func (m *MockOrderRepository) SetInvoiceSnapshot(ctx context.Context, id uuid.UUID, snap *entity.InvoiceDetails) (bool, error) {
	args := m.Called(ctx, id, snap)
	return args.Bool(0), args.Error(1)
}

func (m *MockOrderRepository) SetDueInvoiceSnapshot(ctx context.Context, id uuid.UUID, snap *entity.DueInvoiceDetails) (bool, error) {
	args := m.Called(ctx, id, snap)
	return args.Bool(0), args.Error(1)
}

func (m *MockOrderRepository) DeleteWherePlaced(ctx context.Context, id uuid.UUID) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

type MockOrderItemRepository struct{ mock.Mock }

func (m *MockOrderItemRepository) GetByOrderID(ctx context.Context, orderID uuid.UUID) ([]entity.OrderItem, error) {
	args := m.Called(ctx, orderID)
	return args.Get(0).([]entity.OrderItem), args.Error(1)
}

func (m *MockOrderItemRepository) DeleteByOrderID(ctx context.Context, orderID uuid.UUID) error {
	args := m.Called(ctx, orderID)
	return args.Error(0)
}

type MockPartyRepository struct{ mock.Mock }

func (m *MockPartyRepository) Create(ctx context.Context, party *entity.Party) error {
	args := m.Called(ctx, party)
	return args.Error(0)
}

func (m *MockPartyRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Party, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Party), args.Error(1)
}

func (m *MockPartyRepository) Update(ctx context.Context, party *entity.Party) error {
	args := m.Called(ctx, party)
	return args.Error(0)
}

func (m *MockPartyRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status enum.PartyStatus) error {
	args := m.Called(ctx, id, status)
	return args.Error(0)
}

func (m *MockPartyRepository) List(ctx context.Context, params *repository.PartyFilterParams) ([]entity.Party, int64, error) {
	args := m.Called(ctx, params)
	return args.Get(0).([]entity.Party), args.Get(1).(int64), args.Error(2)
}

func (m *MockPartyRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockPartyRepository) AdjustBalance(ctx context.Context, id uuid.UUID, delta int64) error {
	args := m.Called(ctx, id, delta)
	return args.Error(0)
}

type MockProductRepository struct{ mock.Mock }

func (m *MockProductRepository) Create(ctx context.Context, product *entity.Product) error {
	args := m.Called(ctx, product)
	return args.Error(0)
}

func (m *MockProductRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Product), args.Error(1)
}

func (m *MockProductRepository) GetByIDs(ctx context.Context, ids []uuid.UUID) ([]entity.Product, error) {
	args := m.Called(ctx, ids)
	return args.Get(0).([]entity.Product), args.Error(1)
}

func (m *MockProductRepository) Update(ctx context.Context, product *entity.Product) error {
	args := m.Called(ctx, product)
	return args.Error(0)
}

func (m *MockProductRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockProductRepository) List(ctx context.Context, params *repository.ProductFilterParams) ([]entity.Product, int64, error) {
	args := m.Called(ctx, params)
	return args.Get(0).([]entity.Product), args.Get(1).(int64), args.Error(2)
}

type MockWarehouseRepository struct{ mock.Mock }

func (m *MockWarehouseRepository) Create(ctx context.Context, warehouse *entity.Warehouse) error {
	args := m.Called(ctx, warehouse)
	return args.Error(0)
}

func (m *MockWarehouseRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Warehouse, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Warehouse), args.Error(1)
}

func (m *MockWarehouseRepository) GetWithStocks(ctx context.Context, id uuid.UUID) (*entity.Warehouse, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Warehouse), args.Error(1)
}

func (m *MockWarehouseRepository) Update(ctx context.Context, warehouse *entity.Warehouse) error {
	args := m.Called(ctx, warehouse)
	return args.Error(0)
}

func (m *MockWarehouseRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockWarehouseRepository) List(ctx context.Context, params *pagination.PaginationParams) ([]entity.Warehouse, int64, error) {
	args := m.Called(ctx, params)
	return args.Get(0).([]entity.Warehouse), args.Get(1).(int64), args.Error(2)
}

func (m *MockWarehouseRepository) UpsertStock(ctx context.Context, warehouseID, productID uuid.UUID, quantity int) error {
	args := m.Called(ctx, warehouseID, productID, quantity)
	return args.Error(0)
}

func (m *MockWarehouseRepository) GetStocks(ctx context.Context, warehouseID uuid.UUID) ([]entity.WarehouseStock, error) {
	args := m.Called(ctx, warehouseID)
	return args.Get(0).([]entity.WarehouseStock), args.Error(1)
}

type MockCounterRepository struct{ mock.Mock }

func (m *MockCounterRepository) Next(ctx context.Context, name string) (int64, error) {
	args := m.Called(ctx, name)
	return args.Get(0).(int64), args.Error(1)
}
