package workflow_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/feedworks/feedmill-api/internal/domain/enum"
	"github.com/feedworks/feedmill-api/internal/domain/workflow"
)

func TestNext_HappyPathChain(t *testing.T) {
	steps := []struct {
		kind workflow.Kind
		from enum.OrderStatus
		to   enum.OrderStatus
	}{
		{workflow.KindForward, enum.OrderStatusPlaced, enum.OrderStatusForwardedToAuthorizer},
		{workflow.KindAssignWarehouse, enum.OrderStatusForwardedToAuthorizer, enum.OrderStatusWarehouseAssigned},
		{workflow.KindApproveWarehouse, enum.OrderStatusWarehouseAssigned, enum.OrderStatusApproved},
		{workflow.KindForwardToPlant, enum.OrderStatusApproved, enum.OrderStatusForwardedToPlantHead},
		{workflow.KindDispatch, enum.OrderStatusForwardedToPlantHead, enum.OrderStatusDispatched},
		{workflow.KindConfirmDelivery, enum.OrderStatusDispatched, enum.OrderStatusDelivered},
	}

	for _, step := range steps {
		next, ok := workflow.Next(step.from, step.kind)
		require.True(t, ok, "%s from %s", step.kind, step.from)
		assert.Equal(t, step.to, next)
	}
}

func TestNext_RejectsSkippedSteps(t *testing.T) {
	// No transition may jump over an intermediate status.
	cases := []struct {
		kind workflow.Kind
		from enum.OrderStatus
	}{
		{workflow.KindForward, enum.OrderStatusForwardedToAuthorizer},
		{workflow.KindAssignWarehouse, enum.OrderStatusPlaced},
		{workflow.KindApproveWarehouse, enum.OrderStatusForwardedToAuthorizer},
		{workflow.KindDispatch, enum.OrderStatusApproved},
		{workflow.KindDispatch, enum.OrderStatusDispatched},
		{workflow.KindConfirmDelivery, enum.OrderStatusForwardedToPlantHead},
	}

	for _, tc := range cases {
		_, ok := workflow.Next(tc.from, tc.kind)
		assert.False(t, ok, "%s from %s", tc.kind, tc.from)
	}
}

func TestNext_TerminalStatusesAcceptNothing(t *testing.T) {
	kinds := []workflow.Kind{
		workflow.KindForward,
		workflow.KindAssignWarehouse,
		workflow.KindApproveWarehouse,
		workflow.KindForwardToPlant,
		workflow.KindDispatch,
		workflow.KindConfirmDelivery,
		workflow.KindCancel,
	}

	for _, status := range []enum.OrderStatus{enum.OrderStatusDelivered, enum.OrderStatusCancelled} {
		for _, kind := range kinds {
			_, ok := workflow.Next(status, kind)
			assert.False(t, ok, "%s from %s", kind, status)
		}
	}
}

func TestNext_UnknownKind(t *testing.T) {
	_, ok := workflow.Next(enum.OrderStatusPlaced, workflow.Kind("teleport"))
	assert.False(t, ok)
}

func TestCancellable(t *testing.T) {
	cancellable := []enum.OrderStatus{
		enum.OrderStatusPlaced,
		enum.OrderStatusForwardedToAuthorizer,
		enum.OrderStatusWarehouseAssigned,
		enum.OrderStatusApproved,
		enum.OrderStatusForwardedToPlantHead,
	}
	for _, status := range cancellable {
		assert.True(t, workflow.Cancellable(status), "status %s", status)
	}

	for _, status := range []enum.OrderStatus{enum.OrderStatusDispatched, enum.OrderStatusDelivered, enum.OrderStatusCancelled} {
		assert.False(t, workflow.Cancellable(status), "status %s", status)
	}
}

func TestAllowed_RolePerStep(t *testing.T) {
	cases := []struct {
		kind    workflow.Kind
		allowed []enum.Role
	}{
		{workflow.KindForward, []enum.Role{enum.RoleSalesManager}},
		{workflow.KindAssignWarehouse, []enum.Role{enum.RoleSalesAuthorizer}},
		{workflow.KindApproveWarehouse, []enum.Role{enum.RoleSalesAuthorizer, enum.RoleAdmin}},
		{workflow.KindForwardToPlant, []enum.Role{enum.RoleSalesAuthorizer}},
		{workflow.KindDispatch, []enum.Role{enum.RolePlantHead}},
		{workflow.KindConfirmDelivery, []enum.Role{enum.RoleAccountant, enum.RoleAdmin}},
	}

	for _, tc := range cases {
		allowedSet := make(map[enum.Role]bool, len(tc.allowed))
		for _, role := range tc.allowed {
			allowedSet[role] = true
		}
		for _, role := range enum.Roles {
			assert.Equal(t, allowedSet[role], workflow.Allowed(tc.kind, role), "%s by %s", tc.kind, role)
		}
	}
}

func TestAllowed_CancelExcludesAccountant(t *testing.T) {
	assert.False(t, workflow.Allowed(workflow.KindCancel, enum.RoleAccountant))

	for _, role := range []enum.Role{
		enum.RoleSalesman,
		enum.RoleSalesManager,
		enum.RoleSalesAuthorizer,
		enum.RolePlantHead,
		enum.RoleAdmin,
	} {
		assert.True(t, workflow.Allowed(workflow.KindCancel, role), "role %s", role)
	}
}
