package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/feedworks/feedmill-api/internal/domain/entity"
	"github.com/feedworks/feedmill-api/internal/domain/enum"
	domainRepo "github.com/feedworks/feedmill-api/internal/domain/repository"
	"github.com/feedworks/feedmill-api/pkg/pagination"
)

// orderSortColumns are the columns List accepts for sort_by. Anything
// else falls back to created_at so user input never reaches the ORDER BY
// clause directly.
var orderSortColumns = map[string]bool{
	"created_at":   true,
	"updated_at":   true,
	"order_no":     true,
	"order_status": true,
	"total_amount": true,
	"due_amount":   true,
}

func orderSortColumn(sortBy string) string {
	if orderSortColumns[sortBy] {
		return sortBy
	}
	return "created_at"
}

type orderRepository struct {
	db *gorm.DB
}

// NewOrderRepository creates a new order repository
func NewOrderRepository(db *gorm.DB) domainRepo.OrderRepository {
	return &orderRepository{db: db}
}

func (r *orderRepository) Create(ctx context.Context, order *entity.Order) error {
	return r.db.WithContext(ctx).Create(order).Error
}

func (r *orderRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Order, error) {
	var order entity.Order
	err := r.db.WithContext(ctx).
		Preload("Party").
		First(&order, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &order, err
}

func (r *orderRepository) GetWithDetails(ctx context.Context, id uuid.UUID) (*entity.Order, error) {
	var order entity.Order
	err := r.db.WithContext(ctx).
		Preload("Party").
		Preload("AssignedWarehouse").
		Preload("Items").
		Preload("Items.Product").
		First(&order, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &order, err
}

func (r *orderRepository) List(ctx context.Context, params *domainRepo.OrderFilterParams) ([]entity.Order, int64, error) {
	var orders []entity.Order
	var total int64

	query := r.db.WithContext(ctx).Model(&entity.Order{})

	if params.Search != "" {
		query = query.Joins("LEFT JOIN parties ON parties.id = orders.party_id").
			Where("orders.notes ILIKE ? OR parties.company_name ILIKE ?",
				"%"+params.Search+"%", "%"+params.Search+"%")
	}

	if params.OrderNo != nil {
		query = query.Where("orders.order_no = ?", *params.OrderNo)
	}

	if params.Status != nil {
		query = query.Where("orders.order_status = ?", *params.Status)
	}

	if params.PartyID != nil {
		query = query.Where("orders.party_id = ?", *params.PartyID)
	}

	if params.PlacedBy != nil {
		query = query.Where("orders.placed_by ->> 'user_id' = ?", params.PlacedBy.String())
	}

	if params.StartDate != nil {
		query = query.Where("orders.created_at >= ?", *params.StartDate)
	}

	if params.EndDate != nil {
		query = query.Where("orders.created_at <= ?", *params.EndDate)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	sortBy := orderSortColumn(params.SortBy)
	sortOrder := "DESC"
	if params.SortOrder == "ASC" || params.SortOrder == "asc" {
		sortOrder = "ASC"
	}

	params.Pagination.Validate()
	err := query.Offset(params.Pagination.Offset()).Limit(params.Pagination.PerPage).
		Preload("Party").
		Order("orders." + sortBy + " " + sortOrder).
		Find(&orders).Error

	return orders, total, err
}

// ListWithCursor returns orders using keyset pagination on (created_at, id)
func (r *orderRepository) ListWithCursor(ctx context.Context, params *domainRepo.OrderCursorFilterParams) ([]entity.Order, error) {
	var orders []entity.Order

	params.Cursor.Validate()
	query := r.db.WithContext(ctx).Model(&entity.Order{})

	if params.Status != nil {
		query = query.Where("order_status = ?", *params.Status)
	}

	if params.PartyID != nil {
		query = query.Where("party_id = ?", *params.PartyID)
	}

	if params.PlacedBy != nil {
		query = query.Where("placed_by ->> 'user_id' = ?", params.PlacedBy.String())
	}

	cursor, err := params.Cursor.DecodeCursor()
	if err != nil {
		return nil, err
	}

	if cursor != nil {
		if params.Cursor.Direction == pagination.CursorDirectionNext {
			query = query.Where("(created_at, id) > (?, ?)", cursor.CreatedAt, cursor.ID)
		} else {
			query = query.Where("(created_at, id) < (?, ?)", cursor.CreatedAt, cursor.ID)
		}
	}

	err = query.Limit(params.Cursor.Limit + 1).
		Preload("Party").
		Order("created_at ASC, id ASC").
		Find(&orders).Error

	return orders, err
}

func (r *orderRepository) GetDueOrders(ctx context.Context, params *pagination.PaginationParams) ([]entity.Order, int64, error) {
	var orders []entity.Order
	var total int64

	query := r.db.WithContext(ctx).Model(&entity.Order{}).
		Where("due_amount > 0").
		Where("order_status NOT IN ?", []enum.OrderStatus{enum.OrderStatusCancelled})

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	params.Validate()
	err := query.Offset(params.Offset()).Limit(params.PerPage).
		Preload("Party").
		Order("created_at DESC").
		Find(&orders).Error

	return orders, total, err
}

// UpdateWhereStatus is the engine's optimistic-concurrency primitive: one
// conditional UPDATE guarded on the status the caller read. RowsAffected 0
// means another writer got there first (or the order is gone).
func (r *orderRepository) UpdateWhereStatus(ctx context.Context, id uuid.UUID, current enum.OrderStatus, updates map[string]interface{}) (bool, error) {
	res := r.db.WithContext(ctx).Model(&entity.Order{}).
		Where("id = ? AND order_status = ?", id, current).
		Updates(updates)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *orderRepository) SetPlantConfirmation(ctx context.Context, id uuid.UUID, actor entity.ActorSnapshot) (bool, error) {
	res := r.db.WithContext(ctx).Model(&entity.Order{}).
		Where("id = ? AND order_status = ? AND approved_by IS NULL", id, enum.OrderStatusWarehouseAssigned).
		Update("approved_by", actor)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *orderRepository) SetInvoiceSnapshot(ctx context.Context, id uuid.UUID, snap *entity.InvoiceDetails) (bool, error) {
	res := r.db.WithContext(ctx).Model(&entity.Order{}).
		Where("id = ? AND invoice_details IS NULL", id).
		Update("invoice_details", snap)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *orderRepository) SetDueInvoiceSnapshot(ctx context.Context, id uuid.UUID, snap *entity.DueInvoiceDetails) (bool, error) {
	res := r.db.WithContext(ctx).Model(&entity.Order{}).
		Where("id = ? AND due_invoice_details IS NULL", id).
		Update("due_invoice_details", snap)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *orderRepository) DeleteWherePlaced(ctx context.Context, id uuid.UUID) (bool, error) {
	res := r.db.WithContext(ctx).
		Where("id = ? AND order_status = ? AND assigned_warehouse_id IS NULL", id, enum.OrderStatusPlaced).
		Delete(&entity.Order{})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

type orderItemRepository struct {
	db *gorm.DB
}

// NewOrderItemRepository creates a new order item repository
func NewOrderItemRepository(db *gorm.DB) domainRepo.OrderItemRepository {
	return &orderItemRepository{db: db}
}

func (r *orderItemRepository) GetByOrderID(ctx context.Context, orderID uuid.UUID) ([]entity.OrderItem, error) {
	var items []entity.OrderItem
	err := r.db.WithContext(ctx).
		Preload("Product").
		Where("order_id = ?", orderID).
		Find(&items).Error
	return items, err
}

func (r *orderItemRepository) DeleteByOrderID(ctx context.Context, orderID uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&entity.OrderItem{}, "order_id = ?", orderID).Error
}
