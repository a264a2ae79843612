package entity

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/feedworks/feedmill-api/internal/domain/enum"
)

// ActorSnapshot freezes who performed an action at the time it happened.
// Stored as jsonb so later user edits never rewrite history.
type ActorSnapshot struct {
	UserID uuid.UUID `json:"user_id"`
	Name   string    `json:"name"`
	Role   enum.Role `json:"role"`
}

func (a ActorSnapshot) Value() (driver.Value, error) {
	return json.Marshal(a)
}

func (a *ActorSnapshot) Scan(value interface{}) error {
	return scanJSON(value, a)
}

// DispatchInfo is written exactly once when the plant releases the goods.
type DispatchInfo struct {
	DriverName       string        `json:"driver_name"`
	DriverContact    string        `json:"driver_contact"`
	TransportCompany string        `json:"transport_company"`
	VehicleNumber    string        `json:"vehicle_number"`
	DispatchDocs     []string      `json:"dispatch_docs"`
	DispatchedBy     ActorSnapshot `json:"dispatched_by"`
	DispatchDate     time.Time     `json:"dispatch_date"`
}

func (d DispatchInfo) Value() (driver.Value, error) {
	return json.Marshal(d)
}

func (d *DispatchInfo) Scan(value interface{}) error {
	return scanJSON(value, d)
}

// InvoiceDetails is the immutable advance-invoice snapshot.
type InvoiceDetails struct {
	InvoicedBy    ActorSnapshot `json:"invoiced_by"`
	TotalAmount   int64         `json:"total_amount"`
	AdvanceAmount int64         `json:"advance_amount"`
	DueAmount     int64         `json:"due_amount"`
	DueDate       *time.Time    `json:"due_date,omitempty"`
	PartyCompany  string        `json:"party_company"`
	PartyAddress  string        `json:"party_address"`
	PartyContact  string        `json:"party_contact"`
	GeneratedAt   time.Time     `json:"generated_at"`
}

func (i InvoiceDetails) Value() (driver.Value, error) {
	return json.Marshal(i)
}

func (i *InvoiceDetails) Scan(value interface{}) error {
	return scanJSON(value, i)
}

// DueInvoiceDetails is the immutable due-settlement invoice snapshot.
type DueInvoiceDetails struct {
	InvoicedBy    ActorSnapshot `json:"invoiced_by"`
	TotalAmount   int64         `json:"total_amount"`
	AdvanceAmount int64         `json:"advance_amount"`
	DueAmount     int64         `json:"due_amount"`
	DueDate       *time.Time    `json:"due_date,omitempty"`
	PaymentMode   string        `json:"payment_mode"`
	PartyCompany  string        `json:"party_company"`
	PartyAddress  string        `json:"party_address"`
	PartyContact  string        `json:"party_contact"`
	GeneratedAt   time.Time     `json:"generated_at"`
}

func (i DueInvoiceDetails) Value() (driver.Value, error) {
	return json.Marshal(i)
}

func (i *DueInvoiceDetails) Scan(value interface{}) error {
	return scanJSON(value, i)
}

// CancelRecord captures who cancelled an order, when, and why.
type CancelRecord struct {
	Role   enum.Role `json:"role"`
	Name   string    `json:"name"`
	Date   time.Time `json:"date"`
	Reason string    `json:"reason"`
}

func (c CancelRecord) Value() (driver.Value, error) {
	return json.Marshal(c)
}

func (c *CancelRecord) Scan(value interface{}) error {
	return scanJSON(value, c)
}

func scanJSON(value, dest interface{}) error {
	if value == nil {
		return nil
	}
	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, dest)
	case string:
		return json.Unmarshal([]byte(v), dest)
	default:
		return errors.New("unsupported column type for jsonb scan")
	}
}

// Order is the aggregate moving through the approval workflow. All monetary
// fields are stored in paise; MarshalJSON exposes decimal rupees. Status and
// the embedded sub-documents only change through guarded conditional writes.
type Order struct {
	ID      uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	OrderNo int64     `gorm:"uniqueIndex;not null" json:"order_no"`

	PartyID  uuid.UUID     `gorm:"type:uuid;not null;index" json:"party_id"`
	PlacedBy ActorSnapshot `gorm:"type:jsonb;not null" json:"placed_by"`

	TotalAmount      int64      `gorm:"not null" json:"-"` // paise
	DiscountPercent  float64    `gorm:"not null;default:0" json:"discount_percent"`
	AdvanceAmount    int64      `gorm:"not null;default:0" json:"-"` // paise
	DueAmount        int64      `gorm:"not null;default:0" json:"-"` // paise
	PendingDueAmount int64      `gorm:"not null;default:0" json:"-"` // paise awaiting due-payment approval
	DueDate          *time.Time `gorm:"type:date" json:"due_date,omitempty"`
	PaymentMode      string     `gorm:"size:50" json:"payment_mode"`
	DuePaymentMode   *string    `gorm:"size:50" json:"due_payment_mode,omitempty"`

	OrderStatus          enum.OrderStatus    `gorm:"not null;default:0;index" json:"order_status"`
	AdvancePaymentStatus enum.PaymentStatus  `gorm:"not null;default:0" json:"advance_payment_status"`
	DuePaymentStatus     *enum.PaymentStatus `json:"due_payment_status,omitempty"`

	AssignedWarehouseID *uuid.UUID         `gorm:"type:uuid;index" json:"assigned_warehouse_id,omitempty"`
	ApprovedBy          *ActorSnapshot     `gorm:"type:jsonb" json:"approved_by,omitempty"`
	DispatchInfo        *DispatchInfo      `gorm:"type:jsonb" json:"dispatch_info,omitempty"`
	InvoiceDetails      *InvoiceDetails    `gorm:"type:jsonb" json:"-"`
	DueInvoiceDetails   *DueInvoiceDetails `gorm:"type:jsonb" json:"-"`
	CanceledBy          *CancelRecord      `gorm:"type:jsonb" json:"canceled_by,omitempty"`

	Notes     string         `gorm:"type:text;not null" json:"notes"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	Party             *Party      `gorm:"foreignKey:PartyID" json:"party,omitempty"`
	AssignedWarehouse *Warehouse  `gorm:"foreignKey:AssignedWarehouseID" json:"assigned_warehouse,omitempty"`
	Items             []OrderItem `gorm:"foreignKey:OrderID" json:"items,omitempty"`
}

// Number returns the human-facing order number, e.g. ORD-000042.
func (o *Order) Number() string {
	return fmt.Sprintf("ORD-%06d", o.OrderNo)
}

// InvoiceGenerated is derived from the presence of the snapshot, never stored.
func (o *Order) InvoiceGenerated() bool {
	return o.InvoiceDetails != nil
}

// DueInvoiceGenerated is derived from the presence of the snapshot, never stored.
func (o *Order) DueInvoiceGenerated() bool {
	return o.DueInvoiceDetails != nil
}

// MarshalJSON converts paise to decimal rupees and adds derived fields.
func (o Order) MarshalJSON() ([]byte, error) {
	type Alias Order
	return json.Marshal(&struct {
		Alias
		Number              string             `json:"number"`
		TotalAmount         float64            `json:"total_amount"`
		AdvanceAmount       float64            `json:"advance_amount"`
		DueAmount           float64            `json:"due_amount"`
		PendingDueAmount    float64            `json:"pending_due_amount"`
		InvoiceGenerated    bool               `json:"invoice_generated"`
		DueInvoiceGenerated bool               `json:"due_invoice_generated"`
		InvoiceDetails      *InvoiceDetails    `json:"invoice_details,omitempty"`
		DueInvoiceDetails   *DueInvoiceDetails `json:"due_invoice_details,omitempty"`
	}{
		Alias:               Alias(o),
		Number:              o.Number(),
		TotalAmount:         float64(o.TotalAmount) / 100,
		AdvanceAmount:       float64(o.AdvanceAmount) / 100,
		DueAmount:           float64(o.DueAmount) / 100,
		PendingDueAmount:    float64(o.PendingDueAmount) / 100,
		InvoiceGenerated:    o.InvoiceGenerated(),
		DueInvoiceGenerated: o.DueInvoiceGenerated(),
		InvoiceDetails:      o.InvoiceDetails,
		DueInvoiceDetails:   o.DueInvoiceDetails,
	})
}

// BeforeCreate generates a UUID before creating a new order
func (o *Order) BeforeCreate(tx *gorm.DB) error {
	if o.ID == uuid.Nil {
		o.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Order model
func (Order) TableName() string {
	return "orders"
}

// OrderItem is a line item with the product name and unit price frozen at
// order-creation time, so later catalog edits never change past totals.
type OrderItem struct {
	ID          uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	OrderID     uuid.UUID      `gorm:"type:uuid;not null;index" json:"order_id"`
	ProductID   uuid.UUID      `gorm:"type:uuid;not null;index" json:"product_id"`
	ProductName string         `gorm:"size:255;not null" json:"product_name"`
	Quantity    int            `gorm:"not null" json:"quantity"`
	UnitPrice   int64          `gorm:"not null" json:"-"` // paise, frozen at creation
	Total       int64          `gorm:"not null" json:"-"` // paise
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	Order   Order    `gorm:"foreignKey:OrderID" json:"-"`
	Product *Product `gorm:"foreignKey:ProductID" json:"product,omitempty"`
}

// MarshalJSON converts paise to decimal rupees for API responses
func (i OrderItem) MarshalJSON() ([]byte, error) {
	type Alias OrderItem
	return json.Marshal(&struct {
		Alias
		UnitPrice float64 `json:"unit_price"`
		Total     float64 `json:"total"`
	}{
		Alias:     Alias(i),
		UnitPrice: float64(i.UnitPrice) / 100,
		Total:     float64(i.Total) / 100,
	})
}

// BeforeCreate generates a UUID before creating a new order item
func (i *OrderItem) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the OrderItem model
func (OrderItem) TableName() string {
	return "order_items"
}
