package entity

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/stockboard-api/pkg/money"
	"gorm.io/gorm"
)

// Proforma is a priced offer issued to a client before a sale
type Proforma struct {
	ID          uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	UserID      uuid.UUID      `gorm:"type:uuid;not null;index" json:"user_id"`
	Reference   string         `gorm:"size:100;unique;not null" json:"reference"`
	ClientName  string         `gorm:"size:255;not null" json:"client_name"`
	ClientPhone string         `gorm:"size:50" json:"client_phone"`
	ValidUntil  *time.Time     `gorm:"type:date" json:"valid_until,omitempty"`
	TotalAmount int64          `gorm:"default:0" json:"-"` // Stored in cents
	Note        *string        `gorm:"type:text" json:"note,omitempty"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	Items []ProformaItem `gorm:"foreignKey:ProformaID" json:"items,omitempty"`
}

// BeforeCreate generates a UUID before creating a new proforma
func (p *Proforma) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Proforma model
func (Proforma) TableName() string {
	return "proformas"
}

// MarshalJSON custom marshaler to convert cents to decimal for API responses
func (p Proforma) MarshalJSON() ([]byte, error) {
	type Alias Proforma
	return json.Marshal(&struct {
		Alias
		TotalAmount float64 `json:"total_amount"`
	}{
		Alias:       Alias(p),
		TotalAmount: money.FromCents(p.TotalAmount),
	})
}

// ProformaItem represents a line item in a proforma
type ProformaItem struct {
	ID          uuid.UUID  `gorm:"type:uuid;primary_key" json:"id"`
	ProformaID  uuid.UUID  `gorm:"type:uuid;not null;index" json:"proforma_id"`
	ProductID   *uuid.UUID `gorm:"type:uuid;index" json:"product_id,omitempty"`
	ProductName string     `gorm:"size:255;not null" json:"product_name"`
	Quantity    int        `gorm:"not null" json:"quantity"`
	UnitPrice   int64      `gorm:"not null" json:"-"` // Stored in cents
	SubTotal    int64      `gorm:"not null" json:"-"` // Stored in cents
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// BeforeCreate generates a UUID before creating a new proforma item
func (pi *ProformaItem) BeforeCreate(tx *gorm.DB) error {
	if pi.ID == uuid.Nil {
		pi.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the ProformaItem model
func (ProformaItem) TableName() string {
	return "proforma_items"
}

// MarshalJSON custom marshaler to convert cents to decimal for API responses
func (pi ProformaItem) MarshalJSON() ([]byte, error) {
	type Alias ProformaItem
	return json.Marshal(&struct {
		Alias
		UnitPrice float64 `json:"unit_price"`
		SubTotal  float64 `json:"sub_total"`
	}{
		Alias:     Alias(pi),
		UnitPrice: money.FromCents(pi.UnitPrice),
		SubTotal:  money.FromCents(pi.SubTotal),
	})
}
