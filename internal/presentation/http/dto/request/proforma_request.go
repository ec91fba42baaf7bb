package request

import "github.com/google/uuid"

// ProformaItemRequest is one line of a proforma invoice. Lines without a
// product must carry a name and a unit price.
type ProformaItemRequest struct {
	ProductID   *uuid.UUID `json:"product_id"`
	ProductName string     `json:"product_name" binding:"max=255"`
	Quantity    int        `json:"quantity" binding:"required,min=1"`
	UnitPrice   *float64   `json:"unit_price" binding:"omitempty,min=0"`
}

// CreateProformaRequest represents a quote for a client
type CreateProformaRequest struct {
	ClientName  string                `json:"client_name" binding:"required,min=2,max=255"`
	ClientPhone string                `json:"client_phone" binding:"max=50"`
	ValidUntil  string                `json:"valid_until" binding:"omitempty,datetime=2006-01-02"`
	Note        *string               `json:"note"`
	Items       []ProformaItemRequest `json:"items" binding:"required,min=1,dive"`
}
