package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Warehouse is a fulfillment plant. Stock quantities are mutated only by
// PlantHead actions; the workflow engine reads them at assignment time and
// makes no reservation.
type Warehouse struct {
	ID        uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	Name      string         `gorm:"size:255;not null;uniqueIndex" json:"name"`
	Location  string         `gorm:"size:255;not null" json:"location"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	Stocks []WarehouseStock `gorm:"foreignKey:WarehouseID" json:"stocks,omitempty"`
}

// BeforeCreate generates a UUID before creating a new warehouse
func (w *Warehouse) BeforeCreate(tx *gorm.DB) error {
	if w.ID == uuid.Nil {
		w.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Warehouse model
func (Warehouse) TableName() string {
	return "warehouses"
}

// WarehouseStock is the per-product stock quantity at one warehouse.
type WarehouseStock struct {
	ID          uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	WarehouseID uuid.UUID `gorm:"type:uuid;not null;index:idx_warehouse_product,unique" json:"warehouse_id"`
	ProductID   uuid.UUID `gorm:"type:uuid;not null;index:idx_warehouse_product,unique" json:"product_id"`
	Quantity    int       `gorm:"not null;default:0" json:"quantity"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	// Relationships
	Warehouse Warehouse `gorm:"foreignKey:WarehouseID" json:"-"`
	Product   *Product  `gorm:"foreignKey:ProductID" json:"product,omitempty"`
}

// BeforeCreate generates a UUID before creating a new stock row
func (s *WarehouseStock) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the WarehouseStock model
func (WarehouseStock) TableName() string {
	return "warehouse_stocks"
}
