// Package workflow holds the order state machine: which transition is legal
// from which status, and which roles may request it. It is the single
// server-side source of truth; no client-side gating is trusted.
package workflow

import (
	"github.com/feedworks/feedmill-api/internal/domain/enum"
)

// Kind identifies a requested transition against an order.
type Kind string

const (
	KindForward          Kind = "forward"
	KindAssignWarehouse  Kind = "assignWarehouse"
	KindApproveWarehouse Kind = "approveWarehouse"
	KindForwardToPlant   Kind = "forwardToPlant"
	KindDispatch         Kind = "dispatch"
	KindConfirmDelivery  Kind = "confirmDelivery"
	KindCancel           Kind = "cancel"
)

// rule is one row of the transition table.
type rule struct {
	from  []enum.OrderStatus
	to    enum.OrderStatus
	roles []enum.Role
}

var table = map[Kind]rule{
	KindForward: {
		from:  []enum.OrderStatus{enum.OrderStatusPlaced},
		to:    enum.OrderStatusForwardedToAuthorizer,
		roles: []enum.Role{enum.RoleSalesManager},
	},
	KindAssignWarehouse: {
		from:  []enum.OrderStatus{enum.OrderStatusForwardedToAuthorizer},
		to:    enum.OrderStatusWarehouseAssigned,
		roles: []enum.Role{enum.RoleSalesAuthorizer},
	},
	KindApproveWarehouse: {
		from:  []enum.OrderStatus{enum.OrderStatusWarehouseAssigned},
		to:    enum.OrderStatusApproved,
		roles: []enum.Role{enum.RoleSalesAuthorizer, enum.RoleAdmin},
	},
	KindForwardToPlant: {
		from:  []enum.OrderStatus{enum.OrderStatusApproved},
		to:    enum.OrderStatusForwardedToPlantHead,
		roles: []enum.Role{enum.RoleSalesAuthorizer},
	},
	KindDispatch: {
		from:  []enum.OrderStatus{enum.OrderStatusForwardedToPlantHead},
		to:    enum.OrderStatusDispatched,
		roles: []enum.Role{enum.RolePlantHead},
	},
	KindConfirmDelivery: {
		from:  []enum.OrderStatus{enum.OrderStatusDispatched},
		to:    enum.OrderStatusDelivered,
		roles: []enum.Role{enum.RoleAccountant, enum.RoleAdmin},
	},
	KindCancel: {
		from: []enum.OrderStatus{
			enum.OrderStatusPlaced,
			enum.OrderStatusForwardedToAuthorizer,
			enum.OrderStatusWarehouseAssigned,
			enum.OrderStatusApproved,
			enum.OrderStatusForwardedToPlantHead,
		},
		to: enum.OrderStatusCancelled,
		roles: []enum.Role{
			enum.RoleSalesman,
			enum.RoleSalesManager,
			enum.RoleSalesAuthorizer,
			enum.RolePlantHead,
			enum.RoleAdmin,
		},
	},
}

// Next returns the target status for applying kind to the current status.
// ok is false when the transition is not legal from that status, no matter
// which role asks.
func Next(current enum.OrderStatus, kind Kind) (enum.OrderStatus, bool) {
	r, exists := table[kind]
	if !exists {
		return current, false
	}
	for _, from := range r.from {
		if from == current {
			return r.to, true
		}
	}
	return current, false
}

// Allowed reports whether role is authorized to request kind.
// This check is independent of the order's current status.
func Allowed(kind Kind, role enum.Role) bool {
	r, exists := table[kind]
	if !exists {
		return false
	}
	for _, allowed := range r.roles {
		if allowed == role {
			return true
		}
	}
	return false
}

// Cancellable reports whether an order in the given status may still be cancelled.
func Cancellable(status enum.OrderStatus) bool {
	_, ok := Next(status, KindCancel)
	return ok
}
