package service_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/feedworks/feedmill-api/internal/application/service"
	"github.com/feedworks/feedmill-api/internal/domain/entity"
	"github.com/feedworks/feedmill-api/internal/domain/enum"
	"github.com/feedworks/feedmill-api/pkg/apperror"
)

func dispatchedOrder() *entity.Order {
	return &entity.Order{
		ID:            uuid.New(),
		OrderNo:       9,
		OrderStatus:   enum.OrderStatusDispatched,
		TotalAmount:   180000,
		AdvanceAmount: 50000,
		DueAmount:     130000,
		Party: &entity.Party{
			CompanyName:         "Sharma Poultry Farm",
			Address:             "NH-44, Karnal",
			ContactPersonNumber: "9876543210",
		},
	}
}

func TestGenerateInvoice_ForbiddenForNonAccountants(t *testing.T) {
	svc := service.NewInvoiceService(new(MockOrderRepository))

	for _, role := range []enum.Role{enum.RoleSalesman, enum.RoleSalesManager, enum.RoleSalesAuthorizer, enum.RolePlantHead} {
		_, err := svc.Generate(context.Background(), actorWithRole(role), uuid.New(), service.InvoiceKindAdvance)
		assert.ErrorIs(t, err, apperror.ErrForbidden, "role %s", role)
	}
}

func TestGenerateInvoice_UnknownKind(t *testing.T) {
	svc := service.NewInvoiceService(new(MockOrderRepository))

	_, err := svc.Generate(context.Background(), actorWithRole(enum.RoleAccountant), uuid.New(), "proforma")
	require.Error(t, err)
	assert.Equal(t, 400, apperror.GetAppError(err).Code)
}

func TestGenerateInvoice_BeforeDispatch(t *testing.T) {
	repo := new(MockOrderRepository)
	svc := service.NewInvoiceService(repo)
	order := dispatchedOrder()
	order.OrderStatus = enum.OrderStatusApproved

	repo.On("GetWithDetails", mock.Anything, order.ID).Return(order, nil)

	_, err := svc.Generate(context.Background(), actorWithRole(enum.RoleAccountant), order.ID, service.InvoiceKindAdvance)
	assert.ErrorIs(t, err, apperror.ErrNotYetDispatched)
}

func TestGenerateInvoice_AdvanceSnapshotFields(t *testing.T) {
	repo := new(MockOrderRepository)
	svc := service.NewInvoiceService(repo)
	order := dispatchedOrder()
	actor := actorWithRole(enum.RoleAccountant)

	var snap *entity.InvoiceDetails
	repo.On("GetWithDetails", mock.Anything, order.ID).Return(order, nil)
	repo.On("SetInvoiceSnapshot", mock.Anything, order.ID, mock.AnythingOfType("*entity.InvoiceDetails")).
		Run(func(args mock.Arguments) { snap = args.Get(2).(*entity.InvoiceDetails) }).
		Return(true, nil)

	_, err := svc.Generate(context.Background(), actor, order.ID, service.InvoiceKindAdvance)
	require.NoError(t, err)
	require.NotNil(t, snap)

	assert.Equal(t, actor.UserID, snap.InvoicedBy.UserID)
	assert.Equal(t, int64(180000), snap.TotalAmount)
	assert.Equal(t, int64(50000), snap.AdvanceAmount)
	assert.Equal(t, int64(130000), snap.DueAmount)
	assert.Equal(t, "Sharma Poultry Farm", snap.PartyCompany)
	assert.Equal(t, "NH-44, Karnal", snap.PartyAddress)
	assert.Equal(t, "9876543210", snap.PartyContact)
	assert.False(t, snap.GeneratedAt.IsZero())
}

func TestGenerateInvoice_AdvanceAlreadyGenerated(t *testing.T) {
	repo := new(MockOrderRepository)
	svc := service.NewInvoiceService(repo)
	order := dispatchedOrder()
	order.InvoiceDetails = &entity.InvoiceDetails{}

	repo.On("GetWithDetails", mock.Anything, order.ID).Return(order, nil)

	_, err := svc.Generate(context.Background(), actorWithRole(enum.RoleAccountant), order.ID, service.InvoiceKindAdvance)
	assert.ErrorIs(t, err, apperror.ErrAlreadyGenerated)
}

func TestGenerateInvoice_AdvanceLostRaceAlsoAlreadyGenerated(t *testing.T) {
	repo := new(MockOrderRepository)
	svc := service.NewInvoiceService(repo)
	order := dispatchedOrder()

	repo.On("GetWithDetails", mock.Anything, order.ID).Return(order, nil)
	repo.On("SetInvoiceSnapshot", mock.Anything, order.ID, mock.Anything).Return(false, nil)

	_, err := svc.Generate(context.Background(), actorWithRole(enum.RoleAccountant), order.ID, service.InvoiceKindAdvance)
	assert.ErrorIs(t, err, apperror.ErrAlreadyGenerated)
}

func TestGenerateInvoice_AdvanceBlockedAfterRejection(t *testing.T) {
	repo := new(MockOrderRepository)
	svc := service.NewInvoiceService(repo)
	order := dispatchedOrder()
	order.AdvancePaymentStatus = enum.PaymentStatusRejected

	repo.On("GetWithDetails", mock.Anything, order.ID).Return(order, nil)

	_, err := svc.Generate(context.Background(), actorWithRole(enum.RoleAccountant), order.ID, service.InvoiceKindAdvance)
	require.Error(t, err)
	assert.Equal(t, 422, apperror.GetAppError(err).Code)
}

func TestGenerateInvoice_DueRequiresApprovedPayment(t *testing.T) {
	repo := new(MockOrderRepository)
	svc := service.NewInvoiceService(repo)
	order := dispatchedOrder()
	pending := enum.PaymentStatusSentForApproval
	order.DuePaymentStatus = &pending

	repo.On("GetWithDetails", mock.Anything, order.ID).Return(order, nil)

	_, err := svc.Generate(context.Background(), actorWithRole(enum.RoleAccountant), order.ID, service.InvoiceKindDue)
	assert.ErrorIs(t, err, apperror.ErrDuePaymentNotApproved)
}

func TestGenerateInvoice_DueSnapshotIncludesPaymentMode(t *testing.T) {
	repo := new(MockOrderRepository)
	svc := service.NewInvoiceService(repo)
	order := dispatchedOrder()
	approved := enum.PaymentStatusApproved
	mode := "neft"
	order.DuePaymentStatus = &approved
	order.DuePaymentMode = &mode

	var snap *entity.DueInvoiceDetails
	repo.On("GetWithDetails", mock.Anything, order.ID).Return(order, nil)
	repo.On("SetDueInvoiceSnapshot", mock.Anything, order.ID, mock.AnythingOfType("*entity.DueInvoiceDetails")).
		Run(func(args mock.Arguments) { snap = args.Get(2).(*entity.DueInvoiceDetails) }).
		Return(true, nil)

	_, err := svc.Generate(context.Background(), actorWithRole(enum.RoleAdmin), order.ID, service.InvoiceKindDue)
	require.NoError(t, err)
	require.NotNil(t, snap)
	assert.Equal(t, "neft", snap.PaymentMode)
	assert.Equal(t, "Sharma Poultry Farm", snap.PartyCompany)
}
