package request

import (
	"github.com/google/uuid"
)

// OrderItemRequest is one line item in a create order request
type OrderItemRequest struct {
	ProductID uuid.UUID `json:"product_id" binding:"required"`
	Quantity  int       `json:"quantity" binding:"required,gt=0"`
}

// CreateOrderRequest represents a create order request. Amounts are
// decimal rupees; the server recomputes totals from the catalog.
type CreateOrderRequest struct {
	PartyID         uuid.UUID          `json:"party_id" binding:"required"`
	Items           []OrderItemRequest `json:"items" binding:"required,min=1,dive"`
	DiscountPercent *float64           `json:"discount_percent"`
	AdvanceAmount   float64            `json:"advance_amount"`
	PaymentMode     string             `json:"payment_mode"`
	DueDate         *string            `json:"due_date"` // YYYY-MM-DD
	Notes           string             `json:"notes" binding:"required"`
}

// AssignWarehouseRequest picks the fulfilling plant
type AssignWarehouseRequest struct {
	WarehouseID uuid.UUID `json:"warehouse_id" binding:"required"`
}

// DispatchRequest carries the transport details recorded at dispatch
type DispatchRequest struct {
	DriverName       string   `json:"driver_name" binding:"required"`
	DriverContact    string   `json:"driver_contact" binding:"required"`
	TransportCompany string   `json:"transport_company" binding:"required"`
	VehicleNumber    string   `json:"vehicle_number" binding:"required"`
	DispatchDocs     []string `json:"dispatch_docs" binding:"required,min=1"`
}

// CancelOrderRequest carries the mandatory cancellation reason
type CancelOrderRequest struct {
	Reason string `json:"reason" binding:"required"`
}

// AdvancePaymentRequest records a (re)submitted advance amount
type AdvancePaymentRequest struct {
	Amount float64 `json:"amount" binding:"required,gt=0"`
}

// DuePaymentRequest records money received against the outstanding due
type DuePaymentRequest struct {
	Amount      float64 `json:"amount" binding:"required,gt=0"`
	PaymentMode string  `json:"payment_mode" binding:"required"`
}

// ResolvePaymentRequest approves or rejects a submitted payment
type ResolvePaymentRequest struct {
	Approve bool `json:"approve"`
}
