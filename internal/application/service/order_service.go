package service

import (
	"context"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/feedworks/feedmill-api/internal/application/notify"
	"github.com/feedworks/feedmill-api/internal/domain/entity"
	"github.com/feedworks/feedmill-api/internal/domain/enum"
	"github.com/feedworks/feedmill-api/internal/domain/repository"
	"github.com/feedworks/feedmill-api/internal/domain/workflow"
	"github.com/feedworks/feedmill-api/pkg/apperror"
	"github.com/feedworks/feedmill-api/pkg/pagination"
)

// OrderService is the workflow engine: every status change, payment
// sub-state change, and deletion goes through it. Checks run in a fixed
// order (NotFound, InvalidTransition, Forbidden, payload, then the
// conditional write) so callers get stable error semantics.
type OrderService struct {
	orderRepo     repository.OrderRepository
	orderItemRepo repository.OrderItemRepository
	partyRepo     repository.PartyRepository
	productRepo   repository.ProductRepository
	warehouseRepo repository.WarehouseRepository
	counterRepo   repository.CounterRepository
	events        *notify.Fanout
}

// NewOrderService creates a new order service
func NewOrderService(
	orderRepo repository.OrderRepository,
	orderItemRepo repository.OrderItemRepository,
	partyRepo repository.PartyRepository,
	productRepo repository.ProductRepository,
	warehouseRepo repository.WarehouseRepository,
	counterRepo repository.CounterRepository,
	events *notify.Fanout,
) *OrderService {
	return &OrderService{
		orderRepo:     orderRepo,
		orderItemRepo: orderItemRepo,
		partyRepo:     partyRepo,
		productRepo:   productRepo,
		warehouseRepo: warehouseRepo,
		counterRepo:   counterRepo,
		events:        events,
	}
}

func toPaise(amount float64) int64 {
	return int64(math.Round(amount * 100))
}

// OrderItemInput represents one line item in a create request
type OrderItemInput struct {
	ProductID uuid.UUID
	Quantity  int
}

// CreateOrderInput represents the create order input. Amounts are decimal
// rupees as received on the wire; everything is converted to paise here.
type CreateOrderInput struct {
	PartyID         uuid.UUID
	Items           []OrderItemInput
	DiscountPercent *float64 // nil means use the party's negotiated discount
	AdvanceAmount   float64
	PaymentMode     string
	DueDate         *time.Time
	Notes           string
}

// CreateOrder places a new order. Prices and product names are frozen into
// the line items, amounts are recomputed server-side, and the order number
// comes from the atomic sequence allocator.
func (s *OrderService) CreateOrder(ctx context.Context, actor entity.ActorSnapshot, input *CreateOrderInput) (*entity.Order, error) {
	if actor.Role != enum.RoleSalesman {
		return nil, apperror.ErrForbidden
	}
	if strings.TrimSpace(input.Notes) == "" {
		return nil, apperror.NewBadRequestError("Notes are required")
	}
	if len(input.Items) == 0 {
		return nil, apperror.NewInvalidAmountError("Order must have at least one item")
	}

	party, err := s.partyRepo.GetByID(ctx, input.PartyID)
	if err != nil {
		return nil, err
	}
	if party == nil {
		return nil, apperror.NewNotFoundError("Party")
	}
	if party.PartyStatus != enum.PartyStatusApproved {
		return nil, apperror.NewUnprocessableError("Party is not approved for orders")
	}

	// Batch fetch all products in one query (prevents N+1)
	productIDs := make([]uuid.UUID, len(input.Items))
	for i, item := range input.Items {
		productIDs[i] = item.ProductID
	}
	products, err := s.productRepo.GetByIDs(ctx, productIDs)
	if err != nil {
		return nil, err
	}
	productMap := make(map[uuid.UUID]*entity.Product, len(products))
	for i := range products {
		productMap[products[i].ID] = &products[i]
	}

	quantities := make([]int, len(input.Items))
	unitPrices := make([]int64, len(input.Items))
	for i, item := range input.Items {
		product, exists := productMap[item.ProductID]
		if !exists {
			return nil, apperror.NewNotFoundError("Product " + item.ProductID.String())
		}
		quantities[i] = item.Quantity
		unitPrices[i] = product.Price
	}

	discount := party.DiscountPercent
	if input.DiscountPercent != nil {
		discount = *input.DiscountPercent
	}

	result, err := ReconcileAmounts(ReconcileInput{
		Quantities:      quantities,
		UnitPrices:      unitPrices,
		DiscountPercent: discount,
		AdvanceAmount:   toPaise(input.AdvanceAmount),
	})
	if err != nil {
		return nil, err
	}

	// Limit 0 means unlimited credit.
	if party.Limit > 0 && party.Balance+result.DueAmount > party.Limit {
		return nil, apperror.NewInvalidAmountError("Order would exceed the party's credit limit")
	}

	orderNo, err := s.counterRepo.Next(ctx, entity.CounterOrderNumber)
	if err != nil {
		return nil, err
	}

	advanceStatus := enum.PaymentStatusPending
	if result.AdvanceAmount > 0 {
		advanceStatus = enum.PaymentStatusSentForApproval
	}

	order := &entity.Order{
		ID:                   uuid.New(),
		OrderNo:              orderNo,
		PartyID:              party.ID,
		PlacedBy:             actor,
		TotalAmount:          result.TotalAmount,
		DiscountPercent:      discount,
		AdvanceAmount:        result.AdvanceAmount,
		DueAmount:            result.DueAmount,
		DueDate:              input.DueDate,
		PaymentMode:          input.PaymentMode,
		OrderStatus:          enum.OrderStatusPlaced,
		AdvancePaymentStatus: advanceStatus,
		Notes:                input.Notes,
	}

	items := make([]entity.OrderItem, len(input.Items))
	for i, item := range input.Items {
		product := productMap[item.ProductID]
		items[i] = entity.OrderItem{
			OrderID:     order.ID,
			ProductID:   product.ID,
			ProductName: product.Name,
			Quantity:    item.Quantity,
			UnitPrice:   product.Price,
			Total:       result.LineTotals[i],
		}
	}
	order.Items = items

	// Order and line items go in together so a failed insert never leaves
	// an order behind without its items.
	if err := s.orderRepo.Create(ctx, order); err != nil {
		return nil, err
	}

	// The party's outstanding balance carries the unpaid due.
	if result.DueAmount > 0 {
		if err := s.partyRepo.AdjustBalance(ctx, party.ID, result.DueAmount); err != nil {
			return nil, err
		}
	}

	return s.orderRepo.GetWithDetails(ctx, order.ID)
}

// transition runs the shared guard sequence and applies the status change
// as one conditional write. buildUpdates may add sub-document columns and
// runs only after the role check passed.
func (s *OrderService) transition(
	ctx context.Context,
	actor entity.ActorSnapshot,
	orderID uuid.UUID,
	kind workflow.Kind,
	buildUpdates func(order *entity.Order) (map[string]interface{}, error),
) (*entity.Order, error) {
	order, err := s.orderRepo.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, apperror.NewNotFoundError("Order")
	}

	next, ok := workflow.Next(order.OrderStatus, kind)
	if !ok {
		return nil, apperror.ErrInvalidTransition
	}
	if !workflow.Allowed(kind, actor.Role) {
		return nil, apperror.ErrForbidden
	}

	updates := map[string]interface{}{"order_status": next}
	if buildUpdates != nil {
		extra, err := buildUpdates(order)
		if err != nil {
			return nil, err
		}
		for k, v := range extra {
			updates[k] = v
		}
	}

	applied, err := s.orderRepo.UpdateWhereStatus(ctx, orderID, order.OrderStatus, updates)
	if err != nil {
		return nil, err
	}
	if !applied {
		fresh, err := s.orderRepo.GetByID(ctx, orderID)
		if err != nil {
			return nil, err
		}
		if fresh == nil {
			return nil, apperror.NewNotFoundError("Order")
		}
		return nil, apperror.ErrConflict
	}

	s.events.Emit(notify.Event{
		OrderID:   order.ID,
		Number:    order.Number(),
		From:      order.OrderStatus,
		To:        next,
		ActorRole: actor.Role,
	})

	return s.orderRepo.GetWithDetails(ctx, orderID)
}

// Forward moves a placed order to the authorizer's queue.
func (s *OrderService) Forward(ctx context.Context, actor entity.ActorSnapshot, orderID uuid.UUID) (*entity.Order, error) {
	return s.transition(ctx, actor, orderID, workflow.KindForward, nil)
}

// AssignWarehouse picks the fulfilling plant for a forwarded order.
func (s *OrderService) AssignWarehouse(ctx context.Context, actor entity.ActorSnapshot, orderID, warehouseID uuid.UUID) (*entity.Order, error) {
	return s.transition(ctx, actor, orderID, workflow.KindAssignWarehouse, func(order *entity.Order) (map[string]interface{}, error) {
		warehouse, err := s.warehouseRepo.GetByID(ctx, warehouseID)
		if err != nil {
			return nil, err
		}
		if warehouse == nil {
			return nil, apperror.NewNotFoundError("Warehouse")
		}
		return map[string]interface{}{"assigned_warehouse_id": warehouseID}, nil
	})
}

// ConfirmAvailability records the plant's confirmation that the assigned
// warehouse can fulfill the order. Not a status transition; it is the
// precondition ApproveWarehouse checks.
func (s *OrderService) ConfirmAvailability(ctx context.Context, actor entity.ActorSnapshot, orderID uuid.UUID) (*entity.Order, error) {
	if actor.Role != enum.RolePlantHead {
		return nil, apperror.ErrForbidden
	}

	applied, err := s.orderRepo.SetPlantConfirmation(ctx, orderID, actor)
	if err != nil {
		return nil, err
	}
	if !applied {
		order, err := s.orderRepo.GetByID(ctx, orderID)
		if err != nil {
			return nil, err
		}
		if order == nil {
			return nil, apperror.NewNotFoundError("Order")
		}
		if order.OrderStatus != enum.OrderStatusWarehouseAssigned {
			return nil, apperror.ErrInvalidTransition
		}
		return nil, apperror.NewUnprocessableError("Availability already confirmed for this order")
	}

	return s.orderRepo.GetWithDetails(ctx, orderID)
}

// ApproveWarehouse approves the assignment once the plant has confirmed.
func (s *OrderService) ApproveWarehouse(ctx context.Context, actor entity.ActorSnapshot, orderID uuid.UUID) (*entity.Order, error) {
	return s.transition(ctx, actor, orderID, workflow.KindApproveWarehouse, func(order *entity.Order) (map[string]interface{}, error) {
		if order.ApprovedBy == nil {
			return nil, apperror.NewUnprocessableError("Plant has not confirmed availability yet")
		}
		return nil, nil
	})
}

// ForwardToPlant hands the approved order to the plant head for dispatch.
func (s *OrderService) ForwardToPlant(ctx context.Context, actor entity.ActorSnapshot, orderID uuid.UUID) (*entity.Order, error) {
	return s.transition(ctx, actor, orderID, workflow.KindForwardToPlant, nil)
}

// DispatchInput carries the transport details recorded at dispatch time.
type DispatchInput struct {
	DriverName       string
	DriverContact    string
	TransportCompany string
	VehicleNumber    string
	DispatchDocs     []string
}

func (in *DispatchInput) validate() error {
	var fieldErrors []apperror.FieldError
	if strings.TrimSpace(in.DriverName) == "" {
		fieldErrors = append(fieldErrors, apperror.FieldError{Field: "driver_name", Message: "required"})
	}
	if strings.TrimSpace(in.DriverContact) == "" {
		fieldErrors = append(fieldErrors, apperror.FieldError{Field: "driver_contact", Message: "required"})
	}
	if strings.TrimSpace(in.TransportCompany) == "" {
		fieldErrors = append(fieldErrors, apperror.FieldError{Field: "transport_company", Message: "required"})
	}
	if strings.TrimSpace(in.VehicleNumber) == "" {
		fieldErrors = append(fieldErrors, apperror.FieldError{Field: "vehicle_number", Message: "required"})
	}
	if len(in.DispatchDocs) == 0 {
		fieldErrors = append(fieldErrors, apperror.FieldError{Field: "dispatch_docs", Message: "at least one document reference is required"})
	}
	if len(fieldErrors) > 0 {
		return apperror.NewValidationError(fieldErrors)
	}
	return nil
}

// Dispatch releases the goods and freezes the transport details.
func (s *OrderService) Dispatch(ctx context.Context, actor entity.ActorSnapshot, orderID uuid.UUID, input *DispatchInput) (*entity.Order, error) {
	return s.transition(ctx, actor, orderID, workflow.KindDispatch, func(order *entity.Order) (map[string]interface{}, error) {
		if err := input.validate(); err != nil {
			return nil, err
		}
		info := &entity.DispatchInfo{
			DriverName:       input.DriverName,
			DriverContact:    input.DriverContact,
			TransportCompany: input.TransportCompany,
			VehicleNumber:    input.VehicleNumber,
			DispatchDocs:     input.DispatchDocs,
			DispatchedBy:     actor,
			DispatchDate:     time.Now(),
		}
		return map[string]interface{}{"dispatch_info": info}, nil
	})
}

// ConfirmDelivery marks the dispatched order as received by the party.
func (s *OrderService) ConfirmDelivery(ctx context.Context, actor entity.ActorSnapshot, orderID uuid.UUID) (*entity.Order, error) {
	return s.transition(ctx, actor, orderID, workflow.KindConfirmDelivery, nil)
}

// Cancel terminally cancels the order with a mandatory reason and releases
// the order's unpaid due from the party balance.
func (s *OrderService) Cancel(ctx context.Context, actor entity.ActorSnapshot, orderID uuid.UUID, reason string) (*entity.Order, error) {
	if strings.TrimSpace(reason) == "" {
		return nil, apperror.NewBadRequestError("Cancellation reason is required")
	}

	var releasedDue int64
	var partyID uuid.UUID
	order, err := s.transition(ctx, actor, orderID, workflow.KindCancel, func(order *entity.Order) (map[string]interface{}, error) {
		releasedDue = order.DueAmount
		partyID = order.PartyID
		record := &entity.CancelRecord{
			Role:   actor.Role,
			Name:   actor.Name,
			Date:   time.Now(),
			Reason: reason,
		}
		return map[string]interface{}{
			"canceled_by": record,
			"due_amount":  int64(0),
		}, nil
	})
	if err != nil {
		return nil, err
	}

	if releasedDue > 0 {
		if err := s.partyRepo.AdjustBalance(ctx, partyID, -releasedDue); err != nil {
			return nil, err
		}
	}
	return order, nil
}

// SubmitAdvancePayment records (or corrects, after a rejection) the advance
// the party paid, and recomputes the due accordingly.
func (s *OrderService) SubmitAdvancePayment(ctx context.Context, actor entity.ActorSnapshot, orderID uuid.UUID, amount float64) (*entity.Order, error) {
	if actor.Role != enum.RoleSalesman && actor.Role != enum.RoleAdmin {
		return nil, apperror.ErrForbidden
	}

	order, err := s.orderRepo.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, apperror.NewNotFoundError("Order")
	}
	if order.OrderStatus == enum.OrderStatusCancelled {
		return nil, apperror.ErrInvalidTransition
	}
	switch order.AdvancePaymentStatus {
	case enum.PaymentStatusSentForApproval:
		return nil, apperror.NewUnprocessableError("An advance payment is already awaiting approval")
	case enum.PaymentStatusApproved:
		return nil, apperror.NewUnprocessableError("The advance payment is already approved")
	}

	amountPaise := toPaise(amount)
	if amountPaise <= 0 {
		return nil, apperror.NewInvalidAmountError("Advance amount must be positive")
	}
	if amountPaise > order.TotalAmount {
		return nil, apperror.NewInvalidAmountError("Advance amount cannot exceed order total")
	}

	delta := amountPaise - order.AdvanceAmount
	newDue := order.DueAmount - delta
	if newDue < 0 {
		return nil, apperror.NewInvalidAmountError("Advance amount cannot exceed the outstanding due")
	}

	applied, err := s.orderRepo.UpdateWhereStatus(ctx, orderID, order.OrderStatus, map[string]interface{}{
		"advance_amount":         amountPaise,
		"due_amount":             newDue,
		"advance_payment_status": enum.PaymentStatusSentForApproval,
	})
	if err != nil {
		return nil, err
	}
	if !applied {
		return nil, apperror.ErrConflict
	}

	if delta != 0 {
		if err := s.partyRepo.AdjustBalance(ctx, order.PartyID, -delta); err != nil {
			return nil, err
		}
	}

	return s.orderRepo.GetWithDetails(ctx, orderID)
}

// ResolveAdvancePayment approves or rejects a submitted advance. Rejection
// never cancels the order; it only blocks the advance invoice.
func (s *OrderService) ResolveAdvancePayment(ctx context.Context, actor entity.ActorSnapshot, orderID uuid.UUID, approve bool) (*entity.Order, error) {
	if actor.Role != enum.RoleAccountant && actor.Role != enum.RoleAdmin {
		return nil, apperror.ErrForbidden
	}

	order, err := s.orderRepo.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, apperror.NewNotFoundError("Order")
	}
	if order.AdvancePaymentStatus != enum.PaymentStatusSentForApproval {
		return nil, apperror.NewUnprocessableError("No advance payment awaiting approval")
	}

	status := enum.PaymentStatusApproved
	if !approve {
		status = enum.PaymentStatusRejected
	}

	applied, err := s.orderRepo.UpdateWhereStatus(ctx, orderID, order.OrderStatus, map[string]interface{}{
		"advance_payment_status": status,
	})
	if err != nil {
		return nil, err
	}
	if !applied {
		return nil, apperror.ErrConflict
	}

	return s.orderRepo.GetWithDetails(ctx, orderID)
}

// DuePaymentInput records money received against the outstanding due.
type DuePaymentInput struct {
	Amount      float64
	PaymentMode string
}

// RecordDuePayment holds the paid amount pending approval: the due drops
// immediately, and a later rejection restores it.
func (s *OrderService) RecordDuePayment(ctx context.Context, actor entity.ActorSnapshot, orderID uuid.UUID, input *DuePaymentInput) (*entity.Order, error) {
	if actor.Role != enum.RoleAccountant && actor.Role != enum.RoleAdmin {
		return nil, apperror.ErrForbidden
	}
	if strings.TrimSpace(input.PaymentMode) == "" {
		return nil, apperror.NewBadRequestError("Payment mode is required")
	}

	order, err := s.orderRepo.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, apperror.NewNotFoundError("Order")
	}
	if order.OrderStatus != enum.OrderStatusDispatched && order.OrderStatus != enum.OrderStatusDelivered {
		return nil, apperror.ErrNotYetDispatched
	}
	if order.DuePaymentStatus != nil && *order.DuePaymentStatus == enum.PaymentStatusSentForApproval {
		return nil, apperror.NewUnprocessableError("A due payment is already awaiting approval")
	}

	amountPaise := toPaise(input.Amount)
	if amountPaise <= 0 {
		return nil, apperror.NewInvalidAmountError("Payment amount must be positive")
	}
	if amountPaise > order.DueAmount {
		return nil, apperror.NewInvalidAmountError("Payment amount cannot exceed the outstanding due")
	}

	applied, err := s.orderRepo.UpdateWhereStatus(ctx, orderID, order.OrderStatus, map[string]interface{}{
		"due_amount":         order.DueAmount - amountPaise,
		"pending_due_amount": amountPaise,
		"due_payment_mode":   input.PaymentMode,
		"due_payment_status": enum.PaymentStatusSentForApproval,
	})
	if err != nil {
		return nil, err
	}
	if !applied {
		return nil, apperror.ErrConflict
	}

	if err := s.partyRepo.AdjustBalance(ctx, order.PartyID, -amountPaise); err != nil {
		return nil, err
	}

	return s.orderRepo.GetWithDetails(ctx, orderID)
}

// ResolveDuePayment approves or rejects a recorded due payment. A rejection
// restores the held amount to the order's due and the party balance.
func (s *OrderService) ResolveDuePayment(ctx context.Context, actor entity.ActorSnapshot, orderID uuid.UUID, approve bool) (*entity.Order, error) {
	if actor.Role != enum.RoleAccountant && actor.Role != enum.RoleAdmin {
		return nil, apperror.ErrForbidden
	}

	order, err := s.orderRepo.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, apperror.NewNotFoundError("Order")
	}
	if order.DuePaymentStatus == nil || *order.DuePaymentStatus != enum.PaymentStatusSentForApproval {
		return nil, apperror.NewUnprocessableError("No due payment awaiting approval")
	}

	updates := map[string]interface{}{
		"pending_due_amount": int64(0),
	}
	if approve {
		updates["due_payment_status"] = enum.PaymentStatusApproved
	} else {
		updates["due_payment_status"] = enum.PaymentStatusRejected
		updates["due_amount"] = order.DueAmount + order.PendingDueAmount
	}

	applied, err := s.orderRepo.UpdateWhereStatus(ctx, orderID, order.OrderStatus, updates)
	if err != nil {
		return nil, err
	}
	if !applied {
		return nil, apperror.ErrConflict
	}

	if !approve && order.PendingDueAmount > 0 {
		if err := s.partyRepo.AdjustBalance(ctx, order.PartyID, order.PendingDueAmount); err != nil {
			return nil, err
		}
	}

	return s.orderRepo.GetWithDetails(ctx, orderID)
}

// DeleteOrder removes an order that is still Placed with no warehouse
// assignment. Anything further along has downstream side effects and can
// only be cancelled.
func (s *OrderService) DeleteOrder(ctx context.Context, actor entity.ActorSnapshot, orderID uuid.UUID) error {
	if actor.Role != enum.RoleSalesman && actor.Role != enum.RoleAdmin {
		return apperror.ErrForbidden
	}

	order, err := s.orderRepo.GetByID(ctx, orderID)
	if err != nil {
		return err
	}
	if order == nil {
		return apperror.NewNotFoundError("Order")
	}
	if actor.Role == enum.RoleSalesman && order.PlacedBy.UserID != actor.UserID {
		return apperror.ErrForbidden
	}

	applied, err := s.orderRepo.DeleteWherePlaced(ctx, orderID)
	if err != nil {
		return err
	}
	if !applied {
		fresh, err := s.orderRepo.GetByID(ctx, orderID)
		if err != nil {
			return err
		}
		if fresh == nil {
			return apperror.NewNotFoundError("Order")
		}
		return apperror.ErrInvalidTransition
	}

	if err := s.orderItemRepo.DeleteByOrderID(ctx, orderID); err != nil {
		return err
	}
	if order.DueAmount > 0 {
		if err := s.partyRepo.AdjustBalance(ctx, order.PartyID, -order.DueAmount); err != nil {
			return err
		}
	}
	return nil
}

// GetOrder returns the order with party, warehouse and line items loaded.
func (s *OrderService) GetOrder(ctx context.Context, id uuid.UUID) (*entity.Order, error) {
	order, err := s.orderRepo.GetWithDetails(ctx, id)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, apperror.NewNotFoundError("Order")
	}
	return order, nil
}

// ListOrders returns a filtered page of orders.
func (s *OrderService) ListOrders(ctx context.Context, params *repository.OrderFilterParams) ([]entity.Order, int64, error) {
	return s.orderRepo.List(ctx, params)
}

// ListOrdersWithCursor returns orders using keyset pagination.
func (s *OrderService) ListOrdersWithCursor(ctx context.Context, params *repository.OrderCursorFilterParams) ([]entity.Order, error) {
	return s.orderRepo.ListWithCursor(ctx, params)
}

// GetDueOrders returns live orders that still carry an outstanding due.
func (s *OrderService) GetDueOrders(ctx context.Context, params *pagination.PaginationParams) ([]entity.Order, int64, error) {
	return s.orderRepo.GetDueOrders(ctx, params)
}
