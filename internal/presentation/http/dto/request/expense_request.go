package request

// CreateExpenseRequest represents an expense entry
type CreateExpenseRequest struct {
	Title    string  `json:"title" binding:"required,min=2,max=255"`
	Amount   float64 `json:"amount" binding:"min=0"`
	Category string  `json:"category" binding:"omitempty,max=100"`
	Date     string  `json:"date" binding:"required,datetime=2006-01-02"`
	Notes    *string `json:"notes"`
}

// UpdateExpenseRequest represents an expense update
type UpdateExpenseRequest struct {
	Title    *string  `json:"title" binding:"omitempty,min=2,max=255"`
	Amount   *float64 `json:"amount" binding:"omitempty,min=0"`
	Category *string  `json:"category" binding:"omitempty,max=100"`
	Date     *string  `json:"date" binding:"omitempty,datetime=2006-01-02"`
	Notes    *string  `json:"notes"`
}

// DateRangeFilterRequest is shared by listings filtered by day
type DateRangeFilterRequest struct {
	Search    string `form:"search"`
	Category  string `form:"category"`
	ProductID string `form:"product_id" binding:"omitempty,uuid"`
	StartDate string `form:"start_date" binding:"omitempty,datetime=2006-01-02"`
	EndDate   string `form:"end_date" binding:"omitempty,datetime=2006-01-02"`
	Page      int    `form:"page"`
	PerPage   int    `form:"per_page"`
}
