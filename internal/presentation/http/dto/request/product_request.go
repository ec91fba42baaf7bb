package request

// CreateProductRequest represents a product creation request
type CreateProductRequest struct {
	Name          string  `json:"name" binding:"required,min=2,max=255"`
	Code          string  `json:"code" binding:"omitempty,max=100"`
	Category      string  `json:"category" binding:"omitempty,max=100"`
	Quantity      int     `json:"quantity" binding:"min=0"`
	QuantityAlert int     `json:"quantity_alert" binding:"min=0"`
	BuyingPrice   float64 `json:"buying_price" binding:"min=0"`
	SellingPrice  float64 `json:"selling_price" binding:"min=0"`
	Notes         *string `json:"notes"`
	ProductImage  *string `json:"product_image"`
}

// UpdateProductRequest represents a product update request
type UpdateProductRequest struct {
	Name          *string  `json:"name" binding:"omitempty,min=2,max=255"`
	Code          *string  `json:"code" binding:"omitempty,min=1,max=100"`
	Category      *string  `json:"category" binding:"omitempty,max=100"`
	Quantity      *int     `json:"quantity" binding:"omitempty,min=0"`
	QuantityAlert *int     `json:"quantity_alert" binding:"omitempty,min=0"`
	BuyingPrice   *float64 `json:"buying_price" binding:"omitempty,min=0"`
	SellingPrice  *float64 `json:"selling_price" binding:"omitempty,min=0"`
	Notes         *string  `json:"notes"`
	ProductImage  *string  `json:"product_image"`
}

// ProductFilterRequest represents product filter parameters
type ProductFilterRequest struct {
	Search    string `form:"search"`
	Category  string `form:"category"`
	LowStock  bool   `form:"low_stock"`
	SortBy    string `form:"sort_by"`
	SortOrder string `form:"sort_order" binding:"omitempty,oneof=asc desc"`
	Page      int    `form:"page"`
	PerPage   int    `form:"per_page"`
}
