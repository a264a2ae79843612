package service_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/feedworks/feedmill-api/internal/application/notify"
	"github.com/feedworks/feedmill-api/internal/application/service"
	"github.com/feedworks/feedmill-api/internal/domain/entity"
	"github.com/feedworks/feedmill-api/internal/domain/enum"
	"github.com/feedworks/feedmill-api/pkg/apperror"
)

type orderServiceMocks struct {
	orderRepo     *MockOrderRepository
	orderItemRepo *MockOrderItemRepository
	partyRepo     *MockPartyRepository
	productRepo   *MockProductRepository
	warehouseRepo *MockWarehouseRepository
	counterRepo   *MockCounterRepository
}

func newOrderService() (*service.OrderService, *orderServiceMocks) {
	m := &orderServiceMocks{
		orderRepo:     new(MockOrderRepository),
		orderItemRepo: new(MockOrderItemRepository),
		partyRepo:     new(MockPartyRepository),
		productRepo:   new(MockProductRepository),
		warehouseRepo: new(MockWarehouseRepository),
		counterRepo:   new(MockCounterRepository),
	}
	svc := service.NewOrderService(
		m.orderRepo,
		m.orderItemRepo,
		m.partyRepo,
		m.productRepo,
		m.warehouseRepo,
		m.counterRepo,
		notify.NewFanout(),
	)
	return svc, m
}

func salesmanActor() entity.ActorSnapshot {
	return entity.ActorSnapshot{UserID: uuid.New(), Name: "Ravi", Role: enum.RoleSalesman}
}

func actorWithRole(role enum.Role) entity.ActorSnapshot {
	return entity.ActorSnapshot{UserID: uuid.New(), Name: "Test Actor", Role: role}
}

func approvedParty() *entity.Party {
	return &entity.Party{
		ID:                  uuid.New(),
		CompanyName:         "Sharma Poultry Farm",
		Address:             "NH-44, Karnal",
		ContactPersonNumber: "9876543210",
		DiscountPercent:     10,
		PartyStatus:         enum.PartyStatusApproved,
	}
}

func TestCreateOrder_ComputesAmountsServerSide(t *testing.T) {
	svc, m := newOrderService()
	ctx := context.Background()
	actor := salesmanActor()
	party := approvedParty()

	product := entity.Product{ID: uuid.New(), Name: "Broiler Starter", Price: 50000}

	m.partyRepo.On("GetByID", ctx, party.ID).Return(party, nil)
	m.productRepo.On("GetByIDs", ctx, []uuid.UUID{product.ID}).Return([]entity.Product{product}, nil)
	m.counterRepo.On("Next", ctx, entity.CounterOrderNumber).Return(int64(42), nil)

	var created *entity.Order
	m.orderRepo.On("Create", ctx, mock.AnythingOfType("*entity.Order")).
		Run(func(args mock.Arguments) { created = args.Get(1).(*entity.Order) }).
		Return(nil)
	// 4 x 50000 = 200000, minus 10% = 180000, advance 50000 leaves 130000 due
	m.partyRepo.On("AdjustBalance", ctx, party.ID, int64(130000)).Return(nil)
	m.orderRepo.On("GetWithDetails", ctx, mock.AnythingOfType("uuid.UUID")).
		Return(&entity.Order{}, nil)

	_, err := svc.CreateOrder(ctx, actor, &service.CreateOrderInput{
		PartyID:       party.ID,
		Items:         []service.OrderItemInput{{ProductID: product.ID, Quantity: 4}},
		AdvanceAmount: 500,
		PaymentMode:   "upi",
		Notes:         "Urgent, deliver before Friday",
	})
	require.NoError(t, err)
	require.NotNil(t, created)

	assert.Equal(t, int64(42), created.OrderNo)
	assert.Equal(t, "ORD-000042", created.Number())
	assert.Equal(t, int64(180000), created.TotalAmount)
	assert.Equal(t, int64(50000), created.AdvanceAmount)
	assert.Equal(t, int64(130000), created.DueAmount)
	assert.Equal(t, float64(10), created.DiscountPercent)
	assert.Equal(t, enum.OrderStatusPlaced, created.OrderStatus)
	assert.Equal(t, enum.PaymentStatusSentForApproval, created.AdvancePaymentStatus)
	assert.Equal(t, actor.UserID, created.PlacedBy.UserID)
	require.Len(t, created.Items, 1)
	m.partyRepo.AssertExpectations(t)
}

func TestCreateOrder_FreezesProductNameAndPrice(t *testing.T) {
	svc, m := newOrderService()
	ctx := context.Background()
	party := approvedParty()
	party.DiscountPercent = 0

	product := entity.Product{ID: uuid.New(), Name: "Layer Mash", Price: 120050}

	m.partyRepo.On("GetByID", ctx, party.ID).Return(party, nil)
	m.productRepo.On("GetByIDs", ctx, mock.Anything).Return([]entity.Product{product}, nil)
	m.counterRepo.On("Next", ctx, entity.CounterOrderNumber).Return(int64(1), nil)

	var items []entity.OrderItem
	m.orderRepo.On("Create", ctx, mock.AnythingOfType("*entity.Order")).
		Run(func(args mock.Arguments) { items = args.Get(1).(*entity.Order).Items }).
		Return(nil)
	m.partyRepo.On("AdjustBalance", ctx, party.ID, mock.Anything).Return(nil)
	m.orderRepo.On("GetWithDetails", ctx, mock.Anything).Return(&entity.Order{}, nil)

	_, err := svc.CreateOrder(ctx, salesmanActor(), &service.CreateOrderInput{
		PartyID: party.ID,
		Items:   []service.OrderItemInput{{ProductID: product.ID, Quantity: 3}},
		Notes:   "standing weekly order",
	})
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "Layer Mash", items[0].ProductName)
	assert.Equal(t, int64(120050), items[0].UnitPrice)
	assert.Equal(t, int64(360150), items[0].Total)
}

func TestCreateOrder_SalesmanOnly(t *testing.T) {
	svc, _ := newOrderService()

	for _, role := range []enum.Role{enum.RoleSalesManager, enum.RoleSalesAuthorizer, enum.RolePlantHead, enum.RoleAccountant, enum.RoleAdmin} {
		_, err := svc.CreateOrder(context.Background(), actorWithRole(role), &service.CreateOrderInput{Notes: "x"})
		assert.ErrorIs(t, err, apperror.ErrForbidden, "role %s", role)
	}
}

func TestCreateOrder_RequiresNotes(t *testing.T) {
	svc, _ := newOrderService()

	_, err := svc.CreateOrder(context.Background(), salesmanActor(), &service.CreateOrderInput{
		PartyID: uuid.New(),
		Items:   []service.OrderItemInput{{ProductID: uuid.New(), Quantity: 1}},
		Notes:   "   ",
	})
	require.Error(t, err)
	assert.Equal(t, 400, apperror.GetAppError(err).Code)
}

func TestCreateOrder_RejectsUnapprovedParty(t *testing.T) {
	svc, m := newOrderService()
	ctx := context.Background()
	party := approvedParty()
	party.PartyStatus = enum.PartyStatusSentForApproval

	m.partyRepo.On("GetByID", ctx, party.ID).Return(party, nil)

	_, err := svc.CreateOrder(ctx, salesmanActor(), &service.CreateOrderInput{
		PartyID: party.ID,
		Items:   []service.OrderItemInput{{ProductID: uuid.New(), Quantity: 1}},
		Notes:   "test",
	})
	require.Error(t, err)
	assert.Equal(t, 422, apperror.GetAppError(err).Code)
}

func TestCreateOrder_EnforcesCreditLimit(t *testing.T) {
	svc, m := newOrderService()
	ctx := context.Background()
	party := approvedParty()
	party.DiscountPercent = 0
	party.Limit = 100000  // 1000 rupees
	party.Balance = 50000 // already owes 500

	product := entity.Product{ID: uuid.New(), Name: "Cattle Feed", Price: 60000}

	m.partyRepo.On("GetByID", ctx, party.ID).Return(party, nil)
	m.productRepo.On("GetByIDs", ctx, mock.Anything).Return([]entity.Product{product}, nil)

	// New due of 600 would push the balance to 1100, over the 1000 limit.
	_, err := svc.CreateOrder(ctx, salesmanActor(), &service.CreateOrderInput{
		PartyID: party.ID,
		Items:   []service.OrderItemInput{{ProductID: product.ID, Quantity: 1}},
		Notes:   "over limit",
	})
	require.Error(t, err)
	assert.Equal(t, 400, apperror.GetAppError(err).Code)
	m.counterRepo.AssertNotCalled(t, "Next", mock.Anything, mock.Anything)
}

func TestCreateOrder_ZeroLimitMeansUnlimited(t *testing.T) {
	svc, m := newOrderService()
	ctx := context.Background()
	party := approvedParty()
	party.DiscountPercent = 0
	party.Limit = 0
	party.Balance = 99999999

	product := entity.Product{ID: uuid.New(), Name: "Cattle Feed", Price: 60000}

	m.partyRepo.On("GetByID", ctx, party.ID).Return(party, nil)
	m.productRepo.On("GetByIDs", ctx, mock.Anything).Return([]entity.Product{product}, nil)
	m.counterRepo.On("Next", ctx, entity.CounterOrderNumber).Return(int64(7), nil)
	m.orderRepo.On("Create", ctx, mock.Anything).Return(nil)
	m.partyRepo.On("AdjustBalance", ctx, party.ID, int64(60000)).Return(nil)
	m.orderRepo.On("GetWithDetails", ctx, mock.Anything).Return(&entity.Order{}, nil)

	_, err := svc.CreateOrder(ctx, salesmanActor(), &service.CreateOrderInput{
		PartyID: party.ID,
		Items:   []service.OrderItemInput{{ProductID: product.ID, Quantity: 1}},
		Notes:   "no limit set",
	})
	require.NoError(t, err)
}

func TestForward_MovesPlacedOrderToAuthorizer(t *testing.T) {
	svc, m := newOrderService()
	ctx := context.Background()
	orderID := uuid.New()
	order := &entity.Order{ID: orderID, OrderNo: 5, OrderStatus: enum.OrderStatusPlaced}

	m.orderRepo.On("GetByID", ctx, orderID).Return(order, nil)
	m.orderRepo.On("UpdateWhereStatus", ctx, orderID, enum.OrderStatusPlaced,
		mock.MatchedBy(func(u map[string]interface{}) bool {
			return u["order_status"] == enum.OrderStatusForwardedToAuthorizer
		})).Return(true, nil)
	m.orderRepo.On("GetWithDetails", ctx, orderID).Return(order, nil)

	_, err := svc.Forward(ctx, actorWithRole(enum.RoleSalesManager), orderID)
	require.NoError(t, err)
	m.orderRepo.AssertExpectations(t)
}

func TestForward_InvalidFromCancelled(t *testing.T) {
	svc, m := newOrderService()
	ctx := context.Background()
	orderID := uuid.New()
	m.orderRepo.On("GetByID", ctx, orderID).
		Return(&entity.Order{ID: orderID, OrderStatus: enum.OrderStatusCancelled}, nil)

	_, err := svc.Forward(ctx, actorWithRole(enum.RoleSalesManager), orderID)
	assert.ErrorIs(t, err, apperror.ErrInvalidTransition)
}

func TestForward_ForbiddenBeforePayloadChecks(t *testing.T) {
	svc, m := newOrderService()
	ctx := context.Background()
	orderID := uuid.New()
	m.orderRepo.On("GetByID", ctx, orderID).
		Return(&entity.Order{ID: orderID, OrderStatus: enum.OrderStatusPlaced}, nil)

	_, err := svc.Forward(ctx, actorWithRole(enum.RoleAccountant), orderID)
	assert.ErrorIs(t, err, apperror.ErrForbidden)
}

func TestForward_LostRaceReturnsConflict(t *testing.T) {
	svc, m := newOrderService()
	ctx := context.Background()
	orderID := uuid.New()
	order := &entity.Order{ID: orderID, OrderStatus: enum.OrderStatusPlaced}

	m.orderRepo.On("GetByID", ctx, orderID).Return(order, nil)
	m.orderRepo.On("UpdateWhereStatus", ctx, orderID, enum.OrderStatusPlaced, mock.Anything).
		Return(false, nil)

	_, err := svc.Forward(ctx, actorWithRole(enum.RoleSalesManager), orderID)
	assert.ErrorIs(t, err, apperror.ErrConflict)
}

func TestForward_LostRaceAgainstDeleteReturnsNotFound(t *testing.T) {
	svc, m := newOrderService()
	ctx := context.Background()
	orderID := uuid.New()
	order := &entity.Order{ID: orderID, OrderStatus: enum.OrderStatusPlaced}

	m.orderRepo.On("GetByID", ctx, orderID).Return(order, nil).Once()
	m.orderRepo.On("UpdateWhereStatus", ctx, orderID, enum.OrderStatusPlaced, mock.Anything).
		Return(false, nil)
	m.orderRepo.On("GetByID", ctx, orderID).Return(nil, nil).Once()

	_, err := svc.Forward(ctx, actorWithRole(enum.RoleSalesManager), orderID)
	require.Error(t, err)
	assert.Equal(t, 404, apperror.GetAppError(err).Code)
}

func TestAssignWarehouse_RecordsAssignment(t *testing.T) {
	svc, m := newOrderService()
	ctx := context.Background()
	orderID := uuid.New()
	warehouseID := uuid.New()
	order := &entity.Order{ID: orderID, OrderStatus: enum.OrderStatusForwardedToAuthorizer}

	m.orderRepo.On("GetByID", ctx, orderID).Return(order, nil)
	m.warehouseRepo.On("GetByID", ctx, warehouseID).
		Return(&entity.Warehouse{ID: warehouseID}, nil)
	m.orderRepo.On("UpdateWhereStatus", ctx, orderID, enum.OrderStatusForwardedToAuthorizer,
		mock.MatchedBy(func(u map[string]interface{}) bool {
			return u["order_status"] == enum.OrderStatusWarehouseAssigned &&
				u["assigned_warehouse_id"] == warehouseID
		})).Return(true, nil)
	m.orderRepo.On("GetWithDetails", ctx, orderID).Return(order, nil)

	_, err := svc.AssignWarehouse(ctx, actorWithRole(enum.RoleSalesAuthorizer), orderID, warehouseID)
	require.NoError(t, err)
}

func TestAssignWarehouse_UnknownWarehouse(t *testing.T) {
	svc, m := newOrderService()
	ctx := context.Background()
	orderID := uuid.New()
	warehouseID := uuid.New()

	m.orderRepo.On("GetByID", ctx, orderID).
		Return(&entity.Order{ID: orderID, OrderStatus: enum.OrderStatusForwardedToAuthorizer}, nil)
	m.warehouseRepo.On("GetByID", ctx, warehouseID).Return(nil, nil)

	_, err := svc.AssignWarehouse(ctx, actorWithRole(enum.RoleSalesAuthorizer), orderID, warehouseID)
	require.Error(t, err)
	assert.Equal(t, 404, apperror.GetAppError(err).Code)
}

func TestConfirmAvailability_PlantHeadOnly(t *testing.T) {
	svc, _ := newOrderService()

	_, err := svc.ConfirmAvailability(context.Background(), actorWithRole(enum.RoleSalesAuthorizer), uuid.New())
	assert.ErrorIs(t, err, apperror.ErrForbidden)
}

func TestConfirmAvailability_Success(t *testing.T) {
	svc, m := newOrderService()
	ctx := context.Background()
	orderID := uuid.New()
	actor := actorWithRole(enum.RolePlantHead)

	m.orderRepo.On("SetPlantConfirmation", ctx, orderID, actor).Return(true, nil)
	m.orderRepo.On("GetWithDetails", ctx, orderID).Return(&entity.Order{ID: orderID}, nil)

	_, err := svc.ConfirmAvailability(ctx, actor, orderID)
	require.NoError(t, err)
}

func TestConfirmAvailability_SecondConfirmationRejected(t *testing.T) {
	svc, m := newOrderService()
	ctx := context.Background()
	orderID := uuid.New()
	actor := actorWithRole(enum.RolePlantHead)
	confirmed := actorWithRole(enum.RolePlantHead)

	m.orderRepo.On("SetPlantConfirmation", ctx, orderID, actor).Return(false, nil)
	m.orderRepo.On("GetByID", ctx, orderID).Return(&entity.Order{
		ID:          orderID,
		OrderStatus: enum.OrderStatusWarehouseAssigned,
		ApprovedBy:  &confirmed,
	}, nil)

	_, err := svc.ConfirmAvailability(ctx, actor, orderID)
	require.Error(t, err)
	assert.Equal(t, 422, apperror.GetAppError(err).Code)
}

func TestApproveWarehouse_RequiresPlantConfirmation(t *testing.T) {
	svc, m := newOrderService()
	ctx := context.Background()
	orderID := uuid.New()

	m.orderRepo.On("GetByID", ctx, orderID).Return(&entity.Order{
		ID:          orderID,
		OrderStatus: enum.OrderStatusWarehouseAssigned,
	}, nil)

	_, err := svc.ApproveWarehouse(ctx, actorWithRole(enum.RoleSalesAuthorizer), orderID)
	require.Error(t, err)
	assert.Equal(t, 422, apperror.GetAppError(err).Code)
}

func TestDispatch_FreezesTransportDetails(t *testing.T) {
	svc, m := newOrderService()
	ctx := context.Background()
	orderID := uuid.New()
	order := &entity.Order{ID: orderID, OrderStatus: enum.OrderStatusForwardedToPlantHead}

	m.orderRepo.On("GetByID", ctx, orderID).Return(order, nil)
	m.orderRepo.On("UpdateWhereStatus", ctx, orderID, enum.OrderStatusForwardedToPlantHead,
		mock.MatchedBy(func(u map[string]interface{}) bool {
			info, ok := u["dispatch_info"].(*entity.DispatchInfo)
			return ok && info.DriverName == "Suresh" && len(info.DispatchDocs) == 1 &&
				u["order_status"] == enum.OrderStatusDispatched
		})).Return(true, nil)
	m.orderRepo.On("GetWithDetails", ctx, orderID).Return(order, nil)

	_, err := svc.Dispatch(ctx, actorWithRole(enum.RolePlantHead), orderID, &service.DispatchInput{
		DriverName:       "Suresh",
		DriverContact:    "9812345678",
		TransportCompany: "Shiv Transport",
		VehicleNumber:    "HR-38-AB-1234",
		DispatchDocs:     []string{"challan-81723.pdf"},
	})
	require.NoError(t, err)
}

func TestDispatch_ValidatesTransportFields(t *testing.T) {
	svc, m := newOrderService()
	ctx := context.Background()
	orderID := uuid.New()

	m.orderRepo.On("GetByID", ctx, orderID).
		Return(&entity.Order{ID: orderID, OrderStatus: enum.OrderStatusForwardedToPlantHead}, nil)

	_, err := svc.Dispatch(ctx, actorWithRole(enum.RolePlantHead), orderID, &service.DispatchInput{})
	require.Error(t, err)
	appErr := apperror.GetAppError(err)
	assert.Equal(t, 422, appErr.Code)
	assert.Len(t, appErr.Errors, 5)
}

func TestDispatch_TwiceIsInvalidTransition(t *testing.T) {
	svc, m := newOrderService()
	ctx := context.Background()
	orderID := uuid.New()

	m.orderRepo.On("GetByID", ctx, orderID).
		Return(&entity.Order{ID: orderID, OrderStatus: enum.OrderStatusDispatched}, nil)

	_, err := svc.Dispatch(ctx, actorWithRole(enum.RolePlantHead), orderID, &service.DispatchInput{})
	assert.ErrorIs(t, err, apperror.ErrInvalidTransition)
}

func TestCancel_ReleasesDueFromPartyBalance(t *testing.T) {
	svc, m := newOrderService()
	ctx := context.Background()
	orderID := uuid.New()
	partyID := uuid.New()
	order := &entity.Order{
		ID:          orderID,
		PartyID:     partyID,
		OrderStatus: enum.OrderStatusApproved,
		DueAmount:   130000,
	}

	m.orderRepo.On("GetByID", ctx, orderID).Return(order, nil)
	m.orderRepo.On("UpdateWhereStatus", ctx, orderID, enum.OrderStatusApproved,
		mock.MatchedBy(func(u map[string]interface{}) bool {
			record, ok := u["canceled_by"].(*entity.CancelRecord)
			return ok && record.Reason == "party shut down" &&
				u["order_status"] == enum.OrderStatusCancelled &&
				u["due_amount"] == int64(0)
		})).Return(true, nil)
	m.orderRepo.On("GetWithDetails", ctx, orderID).Return(order, nil)
	m.partyRepo.On("AdjustBalance", ctx, partyID, int64(-130000)).Return(nil)

	_, err := svc.Cancel(ctx, actorWithRole(enum.RoleSalesManager), orderID, "party shut down")
	require.NoError(t, err)
	m.partyRepo.AssertExpectations(t)
}

func TestCancel_RequiresReason(t *testing.T) {
	svc, _ := newOrderService()

	_, err := svc.Cancel(context.Background(), actorWithRole(enum.RoleAdmin), uuid.New(), "  ")
	require.Error(t, err)
	assert.Equal(t, 400, apperror.GetAppError(err).Code)
}

func TestCancel_NotAllowedAfterDispatch(t *testing.T) {
	svc, m := newOrderService()
	ctx := context.Background()
	orderID := uuid.New()

	m.orderRepo.On("GetByID", ctx, orderID).
		Return(&entity.Order{ID: orderID, OrderStatus: enum.OrderStatusDispatched}, nil)

	_, err := svc.Cancel(ctx, actorWithRole(enum.RoleAdmin), orderID, "too late")
	assert.ErrorIs(t, err, apperror.ErrInvalidTransition)
}

func TestSubmitAdvancePayment_AdjustsDueAndBalance(t *testing.T) {
	svc, m := newOrderService()
	ctx := context.Background()
	orderID := uuid.New()
	partyID := uuid.New()
	order := &entity.Order{
		ID:                   orderID,
		PartyID:              partyID,
		OrderStatus:          enum.OrderStatusPlaced,
		TotalAmount:          180000,
		AdvanceAmount:        0,
		DueAmount:            180000,
		AdvancePaymentStatus: enum.PaymentStatusPending,
	}

	m.orderRepo.On("GetByID", ctx, orderID).Return(order, nil)
	m.orderRepo.On("UpdateWhereStatus", ctx, orderID, enum.OrderStatusPlaced,
		mock.MatchedBy(func(u map[string]interface{}) bool {
			return u["advance_amount"] == int64(50000) &&
				u["due_amount"] == int64(130000) &&
				u["advance_payment_status"] == enum.PaymentStatusSentForApproval
		})).Return(true, nil)
	m.partyRepo.On("AdjustBalance", ctx, partyID, int64(-50000)).Return(nil)
	m.orderRepo.On("GetWithDetails", ctx, orderID).Return(order, nil)

	_, err := svc.SubmitAdvancePayment(ctx, salesmanActor(), orderID, 500)
	require.NoError(t, err)
	m.partyRepo.AssertExpectations(t)
}

func TestSubmitAdvancePayment_BlockedWhileAwaitingApproval(t *testing.T) {
	svc, m := newOrderService()
	ctx := context.Background()
	orderID := uuid.New()

	m.orderRepo.On("GetByID", ctx, orderID).Return(&entity.Order{
		ID:                   orderID,
		OrderStatus:          enum.OrderStatusPlaced,
		AdvancePaymentStatus: enum.PaymentStatusSentForApproval,
	}, nil)

	_, err := svc.SubmitAdvancePayment(ctx, salesmanActor(), orderID, 100)
	require.Error(t, err)
	assert.Equal(t, 422, apperror.GetAppError(err).Code)
}

func TestSubmitAdvancePayment_CannotExceedTotal(t *testing.T) {
	svc, m := newOrderService()
	ctx := context.Background()
	orderID := uuid.New()

	m.orderRepo.On("GetByID", ctx, orderID).Return(&entity.Order{
		ID:                   orderID,
		OrderStatus:          enum.OrderStatusPlaced,
		TotalAmount:          180000,
		DueAmount:            180000,
		AdvancePaymentStatus: enum.PaymentStatusPending,
	}, nil)

	_, err := svc.SubmitAdvancePayment(ctx, salesmanActor(), orderID, 2000)
	require.Error(t, err)
	assert.Equal(t, 400, apperror.GetAppError(err).Code)
}

func TestSubmitAdvancePayment_ResubmitAfterRejection(t *testing.T) {
	svc, m := newOrderService()
	ctx := context.Background()
	orderID := uuid.New()
	partyID := uuid.New()
	order := &entity.Order{
		ID:                   orderID,
		PartyID:              partyID,
		OrderStatus:          enum.OrderStatusPlaced,
		TotalAmount:          180000,
		AdvanceAmount:        50000,
		DueAmount:            130000,
		AdvancePaymentStatus: enum.PaymentStatusRejected,
	}

	m.orderRepo.On("GetByID", ctx, orderID).Return(order, nil)
	// Correcting 500 to 800 moves another 300 off the due.
	m.orderRepo.On("UpdateWhereStatus", ctx, orderID, enum.OrderStatusPlaced,
		mock.MatchedBy(func(u map[string]interface{}) bool {
			return u["advance_amount"] == int64(80000) && u["due_amount"] == int64(100000)
		})).Return(true, nil)
	m.partyRepo.On("AdjustBalance", ctx, partyID, int64(-30000)).Return(nil)
	m.orderRepo.On("GetWithDetails", ctx, orderID).Return(order, nil)

	_, err := svc.SubmitAdvancePayment(ctx, salesmanActor(), orderID, 800)
	require.NoError(t, err)
}

func TestResolveAdvancePayment_Approve(t *testing.T) {
	svc, m := newOrderService()
	ctx := context.Background()
	orderID := uuid.New()
	order := &entity.Order{
		ID:                   orderID,
		OrderStatus:          enum.OrderStatusPlaced,
		AdvancePaymentStatus: enum.PaymentStatusSentForApproval,
	}

	m.orderRepo.On("GetByID", ctx, orderID).Return(order, nil)
	m.orderRepo.On("UpdateWhereStatus", ctx, orderID, enum.OrderStatusPlaced,
		mock.MatchedBy(func(u map[string]interface{}) bool {
			return u["advance_payment_status"] == enum.PaymentStatusApproved
		})).Return(true, nil)
	m.orderRepo.On("GetWithDetails", ctx, orderID).Return(order, nil)

	_, err := svc.ResolveAdvancePayment(ctx, actorWithRole(enum.RoleAccountant), orderID, true)
	require.NoError(t, err)
}

func TestResolveAdvancePayment_NothingPending(t *testing.T) {
	svc, m := newOrderService()
	ctx := context.Background()
	orderID := uuid.New()

	m.orderRepo.On("GetByID", ctx, orderID).Return(&entity.Order{
		ID:                   orderID,
		AdvancePaymentStatus: enum.PaymentStatusPending,
	}, nil)

	_, err := svc.ResolveAdvancePayment(ctx, actorWithRole(enum.RoleAccountant), orderID, true)
	require.Error(t, err)
	assert.Equal(t, 422, apperror.GetAppError(err).Code)
}

func TestRecordDuePayment_HoldsAmountPendingApproval(t *testing.T) {
	svc, m := newOrderService()
	ctx := context.Background()
	orderID := uuid.New()
	partyID := uuid.New()
	order := &entity.Order{
		ID:          orderID,
		PartyID:     partyID,
		OrderStatus: enum.OrderStatusDispatched,
		DueAmount:   130000,
	}

	m.orderRepo.On("GetByID", ctx, orderID).Return(order, nil)
	m.orderRepo.On("UpdateWhereStatus", ctx, orderID, enum.OrderStatusDispatched,
		mock.MatchedBy(func(u map[string]interface{}) bool {
			return u["due_amount"] == int64(50000) &&
				u["pending_due_amount"] == int64(80000) &&
				u["due_payment_mode"] == "neft" &&
				u["due_payment_status"] == enum.PaymentStatusSentForApproval
		})).Return(true, nil)
	m.partyRepo.On("AdjustBalance", ctx, partyID, int64(-80000)).Return(nil)
	m.orderRepo.On("GetWithDetails", ctx, orderID).Return(order, nil)

	_, err := svc.RecordDuePayment(ctx, actorWithRole(enum.RoleAccountant), orderID, &service.DuePaymentInput{
		Amount:      800,
		PaymentMode: "neft",
	})
	require.NoError(t, err)
	m.partyRepo.AssertExpectations(t)
}

func TestRecordDuePayment_BeforeDispatch(t *testing.T) {
	svc, m := newOrderService()
	ctx := context.Background()
	orderID := uuid.New()

	m.orderRepo.On("GetByID", ctx, orderID).
		Return(&entity.Order{ID: orderID, OrderStatus: enum.OrderStatusApproved, DueAmount: 1000}, nil)

	_, err := svc.RecordDuePayment(ctx, actorWithRole(enum.RoleAccountant), orderID, &service.DuePaymentInput{
		Amount:      5,
		PaymentMode: "cash",
	})
	assert.ErrorIs(t, err, apperror.ErrNotYetDispatched)
}

func TestRecordDuePayment_CannotExceedOutstandingDue(t *testing.T) {
	svc, m := newOrderService()
	ctx := context.Background()
	orderID := uuid.New()

	m.orderRepo.On("GetByID", ctx, orderID).
		Return(&entity.Order{ID: orderID, OrderStatus: enum.OrderStatusDelivered, DueAmount: 10000}, nil)

	_, err := svc.RecordDuePayment(ctx, actorWithRole(enum.RoleAccountant), orderID, &service.DuePaymentInput{
		Amount:      500,
		PaymentMode: "cash",
	})
	require.Error(t, err)
	assert.Equal(t, 400, apperror.GetAppError(err).Code)
}

func TestResolveDuePayment_RejectRestoresDue(t *testing.T) {
	svc, m := newOrderService()
	ctx := context.Background()
	orderID := uuid.New()
	partyID := uuid.New()
	pending := enum.PaymentStatusSentForApproval
	order := &entity.Order{
		ID:               orderID,
		PartyID:          partyID,
		OrderStatus:      enum.OrderStatusDispatched,
		DueAmount:        50000,
		PendingDueAmount: 80000,
		DuePaymentStatus: &pending,
	}

	m.orderRepo.On("GetByID", ctx, orderID).Return(order, nil)
	m.orderRepo.On("UpdateWhereStatus", ctx, orderID, enum.OrderStatusDispatched,
		mock.MatchedBy(func(u map[string]interface{}) bool {
			return u["due_payment_status"] == enum.PaymentStatusRejected &&
				u["due_amount"] == int64(130000) &&
				u["pending_due_amount"] == int64(0)
		})).Return(true, nil)
	m.partyRepo.On("AdjustBalance", ctx, partyID, int64(80000)).Return(nil)
	m.orderRepo.On("GetWithDetails", ctx, orderID).Return(order, nil)

	_, err := svc.ResolveDuePayment(ctx, actorWithRole(enum.RoleAccountant), orderID, false)
	require.NoError(t, err)
	m.partyRepo.AssertExpectations(t)
}

func TestResolveDuePayment_ApproveClearsPending(t *testing.T) {
	svc, m := newOrderService()
	ctx := context.Background()
	orderID := uuid.New()
	pending := enum.PaymentStatusSentForApproval
	order := &entity.Order{
		ID:               orderID,
		OrderStatus:      enum.OrderStatusDelivered,
		DueAmount:        50000,
		PendingDueAmount: 80000,
		DuePaymentStatus: &pending,
	}

	m.orderRepo.On("GetByID", ctx, orderID).Return(order, nil)
	m.orderRepo.On("UpdateWhereStatus", ctx, orderID, enum.OrderStatusDelivered,
		mock.MatchedBy(func(u map[string]interface{}) bool {
			_, touchesDue := u["due_amount"]
			return u["due_payment_status"] == enum.PaymentStatusApproved &&
				u["pending_due_amount"] == int64(0) && !touchesDue
		})).Return(true, nil)
	m.orderRepo.On("GetWithDetails", ctx, orderID).Return(order, nil)

	_, err := svc.ResolveDuePayment(ctx, actorWithRole(enum.RoleAccountant), orderID, true)
	require.NoError(t, err)
	m.partyRepo.AssertNotCalled(t, "AdjustBalance", mock.Anything, mock.Anything, mock.Anything)
}

func TestDeleteOrder_SalesmanCanOnlyDeleteOwnOrders(t *testing.T) {
	svc, m := newOrderService()
	ctx := context.Background()
	orderID := uuid.New()
	actor := salesmanActor()

	m.orderRepo.On("GetByID", ctx, orderID).Return(&entity.Order{
		ID:          orderID,
		OrderStatus: enum.OrderStatusPlaced,
		PlacedBy:    entity.ActorSnapshot{UserID: uuid.New(), Role: enum.RoleSalesman},
	}, nil)

	err := svc.DeleteOrder(ctx, actor, orderID)
	assert.ErrorIs(t, err, apperror.ErrForbidden)
}

func TestDeleteOrder_RemovesItemsAndReleasesDue(t *testing.T) {
	svc, m := newOrderService()
	ctx := context.Background()
	orderID := uuid.New()
	partyID := uuid.New()
	actor := salesmanActor()

	m.orderRepo.On("GetByID", ctx, orderID).Return(&entity.Order{
		ID:          orderID,
		PartyID:     partyID,
		OrderStatus: enum.OrderStatusPlaced,
		DueAmount:   60000,
		PlacedBy:    actor,
	}, nil)
	m.orderRepo.On("DeleteWherePlaced", ctx, orderID).Return(true, nil)
	m.orderItemRepo.On("DeleteByOrderID", ctx, orderID).Return(nil)
	m.partyRepo.On("AdjustBalance", ctx, partyID, int64(-60000)).Return(nil)

	err := svc.DeleteOrder(ctx, actor, orderID)
	require.NoError(t, err)
	m.orderItemRepo.AssertExpectations(t)
	m.partyRepo.AssertExpectations(t)
}

func TestDeleteOrder_ForwardedOrderCannotBeDeleted(t *testing.T) {
	svc, m := newOrderService()
	ctx := context.Background()
	orderID := uuid.New()
	actor := salesmanActor()
	order := &entity.Order{
		ID:          orderID,
		OrderStatus: enum.OrderStatusForwardedToAuthorizer,
		PlacedBy:    actor,
	}

	m.orderRepo.On("GetByID", ctx, orderID).Return(order, nil)
	m.orderRepo.On("DeleteWherePlaced", ctx, orderID).Return(false, nil)

	err := svc.DeleteOrder(ctx, actor, orderID)
	assert.ErrorIs(t, err, apperror.ErrInvalidTransition)
}
