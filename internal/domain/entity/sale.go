package entity

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/stockboard-api/internal/domain/enum"
	"github.com/sangkips/stockboard-api/pkg/money"
	"gorm.io/gorm"
)

// Sale records one product sold to a buyer
type Sale struct {
	ID           uuid.UUID        `gorm:"type:uuid;primary_key" json:"id"`
	UserID       uuid.UUID        `gorm:"type:uuid;not null;index" json:"user_id"`
	ProductID    uuid.UUID        `gorm:"type:uuid;not null;index" json:"product_id"`
	ProductName  string           `gorm:"size:255;not null" json:"product_name"`
	SellingPrice int64            `gorm:"not null" json:"-"` // Stored in cents
	ProductPrice int64            `gorm:"not null" json:"-"` // Cost at the time of sale, in cents
	Quantity     int              `gorm:"not null" json:"quantity"`
	BuyerName    string           `gorm:"size:255" json:"buyer_name"`
	PaymentMode  enum.PaymentMode `gorm:"size:20;not null;index" json:"payment_mode"`
	CreatedAt    time.Time        `gorm:"index" json:"created_at"`
	UpdatedAt    time.Time        `json:"updated_at"`
	DeletedAt    gorm.DeletedAt   `gorm:"index" json:"-"`

	// Relationships
	User    User    `gorm:"foreignKey:UserID" json:"-"`
	Product Product `gorm:"foreignKey:ProductID" json:"-"`
}

// BeforeCreate generates a UUID before creating a new sale
func (s *Sale) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Sale model
func (Sale) TableName() string {
	return "sales"
}

// Total returns SellingPrice × Quantity in cents
func (s *Sale) Total() int64 {
	return money.Multiply(s.SellingPrice, s.Quantity)
}

// MarshalJSON custom marshaler to convert cents to decimal for API responses
func (s Sale) MarshalJSON() ([]byte, error) {
	type Alias Sale
	return json.Marshal(&struct {
		Alias
		SellingPrice float64 `json:"selling_price"`
		ProductPrice float64 `json:"product_price"`
		Total        float64 `json:"total"`
	}{
		Alias:        Alias(s),
		SellingPrice: money.FromCents(s.SellingPrice),
		ProductPrice: money.FromCents(s.ProductPrice),
		Total:        money.FromCents(s.Total()),
	})
}
