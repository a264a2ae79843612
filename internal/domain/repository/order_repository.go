package repository

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/feedworks/feedmill-api/internal/domain/entity"
	"github.com/feedworks/feedmill-api/internal/domain/enum"
	"github.com/feedworks/feedmill-api/pkg/pagination"
)

// OrderRepository defines the interface for order data operations.
//
// All status-changing writes go through UpdateWhereStatus: a single
// conditional UPDATE that only succeeds while the stored status still equals
// the status the caller read. A false return means another actor won the
// race and the caller must re-read.
type OrderRepository interface {
	Create(ctx context.Context, order *entity.Order) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Order, error)
	GetWithDetails(ctx context.Context, id uuid.UUID) (*entity.Order, error)
	List(ctx context.Context, params *OrderFilterParams) ([]entity.Order, int64, error)
	ListWithCursor(ctx context.Context, params *OrderCursorFilterParams) ([]entity.Order, error)
	GetDueOrders(ctx context.Context, params *pagination.PaginationParams) ([]entity.Order, int64, error)

	// UpdateWhereStatus applies updates iff the stored status still equals current.
	UpdateWhereStatus(ctx context.Context, id uuid.UUID, current enum.OrderStatus, updates map[string]interface{}) (bool, error)

	// SetPlantConfirmation records the plant-side availability confirmation
	// once, while the order is still WarehouseAssigned.
	SetPlantConfirmation(ctx context.Context, id uuid.UUID, actor entity.ActorSnapshot) (bool, error)

	// SetInvoiceSnapshot writes the advance-invoice snapshot iff none exists yet.
	SetInvoiceSnapshot(ctx context.Context, id uuid.UUID, snap *entity.InvoiceDetails) (bool, error)

	// SetDueInvoiceSnapshot writes the due-invoice snapshot iff none exists yet.
	SetDueInvoiceSnapshot(ctx context.Context, id uuid.UUID, snap *entity.DueInvoiceDetails) (bool, error)

	// DeleteWherePlaced removes an order only while it is still Placed with
	// no warehouse assignment and no downstream side effect.
	DeleteWherePlaced(ctx context.Context, id uuid.UUID) (bool, error)
}

// OrderFilterParams contains filtering parameters for order queries
type OrderFilterParams struct {
	Pagination *pagination.PaginationParams
	Search     string // matches notes and party company name
	OrderNo    *int64
	Status     *enum.OrderStatus
	PartyID    *uuid.UUID
	PlacedBy   *uuid.UUID // restrict to orders placed by this salesman
	StartDate  *time.Time
	EndDate    *time.Time
	SortBy     string
	SortOrder  string
}

// OrderCursorFilterParams contains cursor-based filtering for order queries
type OrderCursorFilterParams struct {
	Cursor   *pagination.CursorParams
	Status   *enum.OrderStatus
	PartyID  *uuid.UUID
	PlacedBy *uuid.UUID
}

// OrderItemRepository defines the interface for order line-item operations.
// Line items are inserted together with their order and are immutable after
// creation; there is no create or update method here.
type OrderItemRepository interface {
	GetByOrderID(ctx context.Context, orderID uuid.UUID) ([]entity.OrderItem, error)
	DeleteByOrderID(ctx context.Context, orderID uuid.UUID) error
}
