package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/sangkips/stockboard-api/internal/application/service"
	"github.com/sangkips/stockboard-api/internal/domain/repository"
	"github.com/sangkips/stockboard-api/internal/presentation/http/dto/request"
	"github.com/sangkips/stockboard-api/internal/presentation/http/dto/response"
)

// ExpenseHandler handles expense-related HTTP requests
type ExpenseHandler struct {
	expenseService *service.ExpenseService
}

// NewExpenseHandler creates a new expense handler
func NewExpenseHandler(expenseService *service.ExpenseService) *ExpenseHandler {
	return &ExpenseHandler{expenseService: expenseService}
}

// List handles listing expenses
func (h *ExpenseHandler) List(c *gin.Context) {
	var filter request.DateRangeFilterRequest
	if err := c.ShouldBindQuery(&filter); err != nil {
		bindError(c, err)
		return
	}

	result, err := h.expenseService.ListExpenses(c.Request.Context(), &repository.ExpenseFilterParams{
		Pagination: pageParams(filter.Page, filter.PerPage),
		Search:     filter.Search,
		Category:   filter.Category,
		StartDate:  parseDay(filter.StartDate),
		EndDate:    parseDayEnd(filter.EndDate),
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Expenses retrieved successfully", result)
}

// Create handles creating an expense
func (h *ExpenseHandler) Create(c *gin.Context) {
	var req request.CreateExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	expense, err := h.expenseService.CreateExpense(c.Request.Context(), &service.CreateExpenseInput{
		Title:    req.Title,
		Amount:   req.Amount,
		Category: req.Category,
		Date:     *parseDay(req.Date),
		Notes:    req.Notes,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Expense created successfully", expense)
}

// Get handles getting a single expense
func (h *ExpenseHandler) Get(c *gin.Context) {
	id, ok := parseID(c, "id", "expense")
	if !ok {
		return
	}

	expense, err := h.expenseService.GetExpense(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Expense retrieved successfully", expense)
}

// Update handles updating an expense
func (h *ExpenseHandler) Update(c *gin.Context) {
	id, ok := parseID(c, "id", "expense")
	if !ok {
		return
	}

	var req request.UpdateExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	input := &service.UpdateExpenseInput{
		ID:       id,
		Title:    req.Title,
		Amount:   req.Amount,
		Category: req.Category,
		Notes:    req.Notes,
	}
	if req.Date != nil {
		input.Date = parseDay(*req.Date)
	}

	expense, err := h.expenseService.UpdateExpense(c.Request.Context(), input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Expense updated successfully", expense)
}

// Delete handles deleting an expense
func (h *ExpenseHandler) Delete(c *gin.Context) {
	id, ok := parseID(c, "id", "expense")
	if !ok {
		return
	}

	if err := h.expenseService.DeleteExpense(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	response.NoContent(c)
}
