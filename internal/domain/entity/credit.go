package entity

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/stockboard-api/internal/domain/enum"
	"github.com/sangkips/stockboard-api/pkg/money"
	"gorm.io/gorm"
)

// Credit is goods handed to a customer who pays over time
type Credit struct {
	ID            uuid.UUID             `gorm:"type:uuid;primary_key" json:"id"`
	UserID        uuid.UUID             `gorm:"type:uuid;not null;index" json:"user_id"`
	CustomerName  string                `gorm:"size:255;not null" json:"customer_name"`
	CustomerPhone string                `gorm:"size:50" json:"customer_phone"`
	Description   string                `gorm:"type:text" json:"description"`
	TotalAmount   int64                 `gorm:"not null" json:"-"` // Stored in cents
	DownPayment   int64                 `gorm:"not null;default:0" json:"-"`
	DueDate       *time.Time            `gorm:"type:date" json:"due_date,omitempty"`
	Status        enum.SettlementStatus `gorm:"default:0;index" json:"status"`
	CreatedAt     time.Time             `json:"created_at"`
	UpdatedAt     time.Time             `json:"updated_at"`
	DeletedAt     gorm.DeletedAt        `gorm:"index" json:"-"`

	// CreditAmount is filled by the service from TotalAmount and DownPayment
	CreditAmount float64 `gorm:"-" json:"credit_amount"`
}

// BeforeCreate generates a UUID before creating a new credit
func (c *Credit) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Credit model
func (Credit) TableName() string {
	return "credits"
}

// MarshalJSON custom marshaler to convert cents to decimal for API responses
func (c Credit) MarshalJSON() ([]byte, error) {
	type Alias Credit
	return json.Marshal(&struct {
		Alias
		TotalAmount float64 `json:"total_amount"`
		DownPayment float64 `json:"down_payment"`
	}{
		Alias:       Alias(c),
		TotalAmount: money.FromCents(c.TotalAmount),
		DownPayment: money.FromCents(c.DownPayment),
	})
}
