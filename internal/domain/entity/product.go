package entity

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/stockboard-api/pkg/money"
	"gorm.io/gorm"
)

// Product represents a product in the inventory
type Product struct {
	ID            uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	UserID        uuid.UUID      `gorm:"type:uuid;not null;index" json:"user_id"`
	Name          string         `gorm:"size:255;not null" json:"name"`
	Slug          string         `gorm:"size:255;unique;not null" json:"slug"`
	Code          string         `gorm:"size:100;unique;not null" json:"code"`
	Category      string         `gorm:"size:255;index" json:"category"`
	Quantity      int            `gorm:"default:0" json:"quantity"`
	QuantityAlert int            `gorm:"default:0" json:"quantity_alert"`
	BuyingPrice   int64          `gorm:"default:0" json:"-"` // Stored in cents
	SellingPrice  int64          `gorm:"default:0" json:"-"` // Stored in cents
	Notes         *string        `gorm:"type:text" json:"notes,omitempty"`
	ProductImage  *string        `gorm:"size:255" json:"product_image,omitempty"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`
}

// BeforeCreate generates a UUID before creating a new product
func (p *Product) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Product model
func (Product) TableName() string {
	return "products"
}

// IsLowStock reports whether the stock has reached the alert threshold
func (p *Product) IsLowStock() bool {
	return p.Quantity <= p.QuantityAlert
}

// MarshalJSON converts Product to JSON with decimal prices
func (p Product) MarshalJSON() ([]byte, error) {
	type Alias Product
	return json.Marshal(&struct {
		Alias
		BuyingPrice  float64 `json:"buying_price"`
		SellingPrice float64 `json:"selling_price"`
		LowStock     bool    `json:"low_stock"`
	}{
		Alias:        Alias(p),
		BuyingPrice:  money.FromCents(p.BuyingPrice),
		SellingPrice: money.FromCents(p.SellingPrice),
		LowStock:     p.IsLowStock(),
	})
}
