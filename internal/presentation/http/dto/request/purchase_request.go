package request

import "github.com/google/uuid"

// CreatePurchaseRequest represents stock bought from a supplier
type CreatePurchaseRequest struct {
	ProductID    uuid.UUID `json:"product_id" binding:"required"`
	SupplierName string    `json:"supplier_name" binding:"max=255"`
	UnitPrice    float64   `json:"unit_price" binding:"min=0"`
	Quantity     int       `json:"quantity" binding:"required,min=1"`
}
