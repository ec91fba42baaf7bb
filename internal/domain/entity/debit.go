package entity

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/stockboard-api/internal/domain/enum"
	"github.com/sangkips/stockboard-api/pkg/money"
	"gorm.io/gorm"
)

// Debit is money the shop owes a supplier
type Debit struct {
	ID           uuid.UUID             `gorm:"type:uuid;primary_key" json:"id"`
	UserID       uuid.UUID             `gorm:"type:uuid;not null;index" json:"user_id"`
	SupplierName string                `gorm:"size:255;not null" json:"supplier_name"`
	Description  string                `gorm:"type:text" json:"description"`
	TotalAmount  int64                 `gorm:"not null" json:"-"` // Stored in cents
	PaidAmount   int64                 `gorm:"not null;default:0" json:"-"`
	DueDate      *time.Time            `gorm:"type:date" json:"due_date,omitempty"`
	Status       enum.SettlementStatus `gorm:"default:0;index" json:"status"`
	CreatedAt    time.Time             `json:"created_at"`
	UpdatedAt    time.Time             `json:"updated_at"`
	DeletedAt    gorm.DeletedAt        `gorm:"index" json:"-"`

	// RemainingAmount is filled by the service from TotalAmount and PaidAmount
	RemainingAmount float64 `gorm:"-" json:"remaining_amount"`
}

// BeforeCreate generates a UUID before creating a new debit
func (d *Debit) BeforeCreate(tx *gorm.DB) error {
	if d.ID == uuid.Nil {
		d.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Debit model
func (Debit) TableName() string {
	return "debits"
}

// MarshalJSON custom marshaler to convert cents to decimal for API responses
func (d Debit) MarshalJSON() ([]byte, error) {
	type Alias Debit
	return json.Marshal(&struct {
		Alias
		TotalAmount float64 `json:"total_amount"`
		PaidAmount  float64 `json:"paid_amount"`
	}{
		Alias:       Alias(d),
		TotalAmount: money.FromCents(d.TotalAmount),
		PaidAmount:  money.FromCents(d.PaidAmount),
	})
}
