package request

// CreateCreditRequest represents goods sold on credit
type CreateCreditRequest struct {
	CustomerName  string  `json:"customer_name" binding:"required,min=2,max=255"`
	CustomerPhone string  `json:"customer_phone" binding:"max=50"`
	Description   string  `json:"description"`
	TotalAmount   float64 `json:"total_amount" binding:"gt=0"`
	DownPayment   float64 `json:"down_payment" binding:"min=0"`
	DueDate       string  `json:"due_date" binding:"omitempty,datetime=2006-01-02"`
}

// CreateDebitRequest represents an amount owed to a supplier
type CreateDebitRequest struct {
	SupplierName string  `json:"supplier_name" binding:"required,min=2,max=255"`
	Description  string  `json:"description"`
	TotalAmount  float64 `json:"total_amount" binding:"gt=0"`
	PaidAmount   float64 `json:"paid_amount" binding:"min=0"`
	DueDate      string  `json:"due_date" binding:"omitempty,datetime=2006-01-02"`
}

// PaymentRequest records a part payment against a credit or debit
type PaymentRequest struct {
	Amount float64 `json:"amount" binding:"gt=0"`
}

// LedgerFilterRequest represents credit and debit filter parameters
type LedgerFilterRequest struct {
	Search  string `form:"search"`
	Status  string `form:"status" binding:"omitempty,oneof=open settled"`
	Page    int    `form:"page"`
	PerPage int    `form:"per_page"`
}
