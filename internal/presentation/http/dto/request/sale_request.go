package request

import "github.com/google/uuid"

// CreateSaleRequest represents a sale at the counter
type CreateSaleRequest struct {
	ProductID    uuid.UUID `json:"product_id" binding:"required"`
	Quantity     int       `json:"quantity" binding:"required,min=1"`
	SellingPrice *float64  `json:"selling_price" binding:"omitempty,min=0"`
	BuyerName    string    `json:"buyer_name" binding:"max=255"`
	PaymentMode  string    `json:"payment_mode" binding:"required,payment_mode"`
}

// SaleFilterRequest represents sale filter parameters. Setting cursor or
// limit switches the listing to cursor pagination.
type SaleFilterRequest struct {
	Search      string `form:"search"`
	PaymentMode string `form:"payment_mode" binding:"omitempty,payment_mode"`
	ProductID   string `form:"product_id" binding:"omitempty,uuid"`
	StartDate   string `form:"start_date" binding:"omitempty,datetime=2006-01-02"`
	EndDate     string `form:"end_date" binding:"omitempty,datetime=2006-01-02"`
	SortBy      string `form:"sort_by"`
	SortOrder   string `form:"sort_order" binding:"omitempty,oneof=asc desc"`
	Page        int    `form:"page"`
	PerPage     int    `form:"per_page"`
	Cursor      string `form:"cursor"`
	Limit       int    `form:"limit"`
}

// SaleSummaryRequest is the inclusive date range of a sales summary
type SaleSummaryRequest struct {
	StartDate string `form:"start_date" binding:"required,datetime=2006-01-02"`
	EndDate   string `form:"end_date" binding:"required,datetime=2006-01-02"`
}
