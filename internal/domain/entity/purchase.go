package entity

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/stockboard-api/pkg/money"
	"gorm.io/gorm"
)

// Purchase represents stock bought from a supplier
type Purchase struct {
	ID           uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	SellerID     uuid.UUID      `gorm:"type:uuid;not null;index" json:"seller_id"` // Staff member who recorded it
	ProductID    uuid.UUID      `gorm:"type:uuid;not null;index" json:"product_id"`
	ProductName  string         `gorm:"size:255;not null" json:"product_name"`
	SupplierName string         `gorm:"size:255" json:"supplier_name"`
	UnitPrice    int64          `gorm:"not null" json:"-"` // Stored in cents
	Quantity     int            `gorm:"not null" json:"quantity"`
	TotalPrice   int64          `gorm:"not null" json:"-"` // UnitPrice × Quantity, in cents
	CreatedAt    time.Time      `gorm:"index" json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	Seller  User    `gorm:"foreignKey:SellerID" json:"-"`
	Product Product `gorm:"foreignKey:ProductID" json:"-"`
}

// BeforeCreate generates a UUID and fills the total before creating a new purchase
func (p *Purchase) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	p.TotalPrice = money.Multiply(p.UnitPrice, p.Quantity)
	return nil
}

// TableName returns the table name for the Purchase model
func (Purchase) TableName() string {
	return "purchases"
}

// MarshalJSON custom marshaler to convert cents to decimal for API responses
func (p Purchase) MarshalJSON() ([]byte, error) {
	type Alias Purchase
	return json.Marshal(&struct {
		Alias
		UnitPrice  float64 `json:"unit_price"`
		TotalPrice float64 `json:"total_price"`
	}{
		Alias:      Alias(p),
		UnitPrice:  money.FromCents(p.UnitPrice),
		TotalPrice: money.FromCents(p.TotalPrice),
	})
}
