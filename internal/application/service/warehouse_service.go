package service

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/feedworks/feedmill-api/internal/domain/entity"
	"github.com/feedworks/feedmill-api/internal/domain/enum"
	"github.com/feedworks/feedmill-api/internal/domain/repository"
	"github.com/feedworks/feedmill-api/pkg/apperror"
	"github.com/feedworks/feedmill-api/pkg/pagination"
)

// WarehouseService handles plants and their stock levels. Stock is
// informational for the authorizer; assigning an order never reserves it.
type WarehouseService struct {
	warehouseRepo repository.WarehouseRepository
	productRepo   repository.ProductRepository
}

// NewWarehouseService creates a new warehouse service
func NewWarehouseService(warehouseRepo repository.WarehouseRepository, productRepo repository.ProductRepository) *WarehouseService {
	return &WarehouseService{warehouseRepo: warehouseRepo, productRepo: productRepo}
}

// WarehouseInput represents the create/update warehouse input
type WarehouseInput struct {
	Name     string
	Location string
}

// CreateWarehouse registers a new plant.
func (s *WarehouseService) CreateWarehouse(ctx context.Context, actor entity.ActorSnapshot, input *WarehouseInput) (*entity.Warehouse, error) {
	if actor.Role != enum.RoleAdmin {
		return nil, apperror.ErrForbidden
	}
	if strings.TrimSpace(input.Name) == "" {
		return nil, apperror.NewBadRequestError("Warehouse name is required")
	}

	warehouse := &entity.Warehouse{
		ID:       uuid.New(),
		Name:     input.Name,
		Location: input.Location,
	}
	if err := s.warehouseRepo.Create(ctx, warehouse); err != nil {
		return nil, err
	}
	return warehouse, nil
}

// UpdateWarehouse changes a plant's name or location.
func (s *WarehouseService) UpdateWarehouse(ctx context.Context, actor entity.ActorSnapshot, id uuid.UUID, input *WarehouseInput) (*entity.Warehouse, error) {
	if actor.Role != enum.RoleAdmin {
		return nil, apperror.ErrForbidden
	}

	warehouse, err := s.warehouseRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if warehouse == nil {
		return nil, apperror.NewNotFoundError("Warehouse")
	}

	if strings.TrimSpace(input.Name) != "" {
		warehouse.Name = input.Name
	}
	if strings.TrimSpace(input.Location) != "" {
		warehouse.Location = input.Location
	}

	if err := s.warehouseRepo.Update(ctx, warehouse); err != nil {
		return nil, err
	}
	return warehouse, nil
}

// GetWarehouse returns a plant with its stock rows loaded.
func (s *WarehouseService) GetWarehouse(ctx context.Context, id uuid.UUID) (*entity.Warehouse, error) {
	warehouse, err := s.warehouseRepo.GetWithStocks(ctx, id)
	if err != nil {
		return nil, err
	}
	if warehouse == nil {
		return nil, apperror.NewNotFoundError("Warehouse")
	}
	return warehouse, nil
}

// ListWarehouses returns a page of plants.
func (s *WarehouseService) ListWarehouses(ctx context.Context, params *pagination.PaginationParams) ([]entity.Warehouse, int64, error) {
	return s.warehouseRepo.List(ctx, params)
}

// DeleteWarehouse removes a plant.
func (s *WarehouseService) DeleteWarehouse(ctx context.Context, actor entity.ActorSnapshot, id uuid.UUID) error {
	if actor.Role != enum.RoleAdmin {
		return apperror.ErrForbidden
	}
	warehouse, err := s.warehouseRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if warehouse == nil {
		return apperror.NewNotFoundError("Warehouse")
	}
	return s.warehouseRepo.Delete(ctx, id)
}

// UpdateStock sets the absolute quantity of a product at a plant.
func (s *WarehouseService) UpdateStock(ctx context.Context, actor entity.ActorSnapshot, warehouseID, productID uuid.UUID, quantity int) error {
	if actor.Role != enum.RolePlantHead && actor.Role != enum.RoleAdmin {
		return apperror.ErrForbidden
	}
	if quantity < 0 {
		return apperror.NewBadRequestError("Stock quantity cannot be negative")
	}

	warehouse, err := s.warehouseRepo.GetByID(ctx, warehouseID)
	if err != nil {
		return err
	}
	if warehouse == nil {
		return apperror.NewNotFoundError("Warehouse")
	}

	product, err := s.productRepo.GetByID(ctx, productID)
	if err != nil {
		return err
	}
	if product == nil {
		return apperror.NewNotFoundError("Product")
	}

	return s.warehouseRepo.UpsertStock(ctx, warehouseID, productID, quantity)
}

// GetStocks returns the stock rows for a plant.
func (s *WarehouseService) GetStocks(ctx context.Context, warehouseID uuid.UUID) ([]entity.WarehouseStock, error) {
	warehouse, err := s.warehouseRepo.GetByID(ctx, warehouseID)
	if err != nil {
		return nil, err
	}
	if warehouse == nil {
		return nil, apperror.NewNotFoundError("Warehouse")
	}
	return s.warehouseRepo.GetStocks(ctx, warehouseID)
}
