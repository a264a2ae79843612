package entity

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/feedworks/feedmill-api/internal/domain/enum"
)

// Party is a customer account. Orders may only be placed against approved
// parties; Balance tracks outstanding receivables in paise.
type Party struct {
	ID                  uuid.UUID        `gorm:"type:uuid;primary_key" json:"id"`
	CompanyName         string           `gorm:"size:255;not null" json:"company_name"`
	Address             string           `gorm:"type:text;not null" json:"address"`
	ContactPersonNumber string           `gorm:"size:50;not null" json:"contact_person_number"`
	Limit               int64            `gorm:"not null;default:0" json:"-"` // paise, 0 = unlimited
	DiscountPercent     float64          `gorm:"not null;default:0" json:"discount_percent"`
	PartyStatus         enum.PartyStatus `gorm:"not null;default:0;index" json:"party_status"`
	Balance             int64            `gorm:"not null;default:0" json:"-"` // paise
	CreatedBy           uuid.UUID        `gorm:"type:uuid;not null;index" json:"created_by"`
	CreatedAt           time.Time        `json:"created_at"`
	UpdatedAt           time.Time        `json:"updated_at"`
	DeletedAt           gorm.DeletedAt   `gorm:"index" json:"-"`

	// Relationships
	Orders []Order `gorm:"foreignKey:PartyID" json:"-"`
}

// MarshalJSON converts paise to decimal rupees for API responses
func (p Party) MarshalJSON() ([]byte, error) {
	type Alias Party
	return json.Marshal(&struct {
		Alias
		Limit   float64 `json:"limit"`
		Balance float64 `json:"balance"`
	}{
		Alias:   Alias(p),
		Limit:   float64(p.Limit) / 100,
		Balance: float64(p.Balance) / 100,
	})
}

// BeforeCreate generates a UUID before creating a new party
func (p *Party) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Party model
func (Party) TableName() string {
	return "parties"
}
