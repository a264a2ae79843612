package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/feedworks/feedmill-api/internal/domain/entity"
	"github.com/feedworks/feedmill-api/pkg/pagination"
)

// WarehouseRepository defines the interface for warehouse (plant) operations
type WarehouseRepository interface {
	Create(ctx context.Context, warehouse *entity.Warehouse) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Warehouse, error)
	GetWithStocks(ctx context.Context, id uuid.UUID) (*entity.Warehouse, error)
	Update(ctx context.Context, warehouse *entity.Warehouse) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, params *pagination.PaginationParams) ([]entity.Warehouse, int64, error)

	// UpsertStock sets the absolute stock quantity for a product at a warehouse.
	UpsertStock(ctx context.Context, warehouseID, productID uuid.UUID, quantity int) error
	GetStocks(ctx context.Context, warehouseID uuid.UUID) ([]entity.WarehouseStock, error)
}
