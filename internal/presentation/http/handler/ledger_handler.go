package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/sangkips/stockboard-api/internal/application/service"
	"github.com/sangkips/stockboard-api/internal/domain/enum"
	"github.com/sangkips/stockboard-api/internal/domain/repository"
	"github.com/sangkips/stockboard-api/internal/presentation/http/dto/request"
	"github.com/sangkips/stockboard-api/internal/presentation/http/dto/response"
)

func ledgerFilter(c *gin.Context) (*repository.LedgerFilterParams, bool) {
	var filter request.LedgerFilterRequest
	if err := c.ShouldBindQuery(&filter); err != nil {
		bindError(c, err)
		return nil, false
	}

	params := &repository.LedgerFilterParams{
		Pagination: pageParams(filter.Page, filter.PerPage),
		Search:     filter.Search,
	}
	switch filter.Status {
	case "open":
		status := enum.SettlementOpen
		params.Status = &status
	case "settled":
		status := enum.SettlementSettled
		params.Status = &status
	}
	return params, true
}

// CreditHandler handles HTTP requests for goods sold on credit
type CreditHandler struct {
	creditService *service.CreditService
}

// NewCreditHandler creates a new credit handler
func NewCreditHandler(creditService *service.CreditService) *CreditHandler {
	return &CreditHandler{creditService: creditService}
}

// List handles listing credits
func (h *CreditHandler) List(c *gin.Context) {
	params, ok := ledgerFilter(c)
	if !ok {
		return
	}

	result, err := h.creditService.ListCredits(c.Request.Context(), params)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Credits retrieved successfully", result)
}

// Create handles creating a credit
func (h *CreditHandler) Create(c *gin.Context) {
	var req request.CreateCreditRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	credit, err := h.creditService.CreateCredit(c.Request.Context(), &service.CreateCreditInput{
		CustomerName:  req.CustomerName,
		CustomerPhone: req.CustomerPhone,
		Description:   req.Description,
		TotalAmount:   req.TotalAmount,
		DownPayment:   req.DownPayment,
		DueDate:       parseDay(req.DueDate),
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Credit created successfully", credit)
}

// Get handles getting a single credit
func (h *CreditHandler) Get(c *gin.Context) {
	id, ok := parseID(c, "id", "credit")
	if !ok {
		return
	}

	credit, err := h.creditService.GetCredit(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Credit retrieved successfully", credit)
}

// RecordPayment handles a part payment from the customer
func (h *CreditHandler) RecordPayment(c *gin.Context) {
	id, ok := parseID(c, "id", "credit")
	if !ok {
		return
	}

	var req request.PaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	credit, err := h.creditService.RecordCreditPayment(c.Request.Context(), id, req.Amount)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Payment recorded successfully", credit)
}

// Settle handles marking a credit as fully paid
func (h *CreditHandler) Settle(c *gin.Context) {
	id, ok := parseID(c, "id", "credit")
	if !ok {
		return
	}

	credit, err := h.creditService.SettleCredit(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Credit settled successfully", credit)
}

// Delete handles deleting a credit
func (h *CreditHandler) Delete(c *gin.Context) {
	id, ok := parseID(c, "id", "credit")
	if !ok {
		return
	}

	if err := h.creditService.DeleteCredit(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	response.NoContent(c)
}

// DebitHandler handles HTTP requests for amounts owed to suppliers
type DebitHandler struct {
	debitService *service.DebitService
}

// NewDebitHandler creates a new debit handler
func NewDebitHandler(debitService *service.DebitService) *DebitHandler {
	return &DebitHandler{debitService: debitService}
}

// List handles listing debits
func (h *DebitHandler) List(c *gin.Context) {
	params, ok := ledgerFilter(c)
	if !ok {
		return
	}

	result, err := h.debitService.ListDebits(c.Request.Context(), params)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Debits retrieved successfully", result)
}

// Create handles creating a debit
func (h *DebitHandler) Create(c *gin.Context) {
	var req request.CreateDebitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	debit, err := h.debitService.CreateDebit(c.Request.Context(), &service.CreateDebitInput{
		SupplierName: req.SupplierName,
		Description:  req.Description,
		TotalAmount:  req.TotalAmount,
		PaidAmount:   req.PaidAmount,
		DueDate:      parseDay(req.DueDate),
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Debit created successfully", debit)
}

// Get handles getting a single debit
func (h *DebitHandler) Get(c *gin.Context) {
	id, ok := parseID(c, "id", "debit")
	if !ok {
		return
	}

	debit, err := h.debitService.GetDebit(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Debit retrieved successfully", debit)
}

// RecordPayment handles a part payment to the supplier
func (h *DebitHandler) RecordPayment(c *gin.Context) {
	id, ok := parseID(c, "id", "debit")
	if !ok {
		return
	}

	var req request.PaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	debit, err := h.debitService.RecordDebitPayment(c.Request.Context(), id, req.Amount)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Payment recorded successfully", debit)
}

// Settle handles marking a debit as fully paid
func (h *DebitHandler) Settle(c *gin.Context) {
	id, ok := parseID(c, "id", "debit")
	if !ok {
		return
	}

	debit, err := h.debitService.SettleDebit(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Debit settled successfully", debit)
}

// Delete handles deleting a debit
func (h *DebitHandler) Delete(c *gin.Context) {
	id, ok := parseID(c, "id", "debit")
	if !ok {
		return
	}

	if err := h.debitService.DeleteDebit(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	response.NoContent(c)
}
