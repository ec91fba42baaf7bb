package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/sangkips/stockboard-api/internal/application/service"
	"github.com/sangkips/stockboard-api/internal/domain/enum"
	"github.com/sangkips/stockboard-api/internal/domain/repository"
	"github.com/sangkips/stockboard-api/internal/presentation/http/dto/request"
	"github.com/sangkips/stockboard-api/internal/presentation/http/dto/response"
	"github.com/sangkips/stockboard-api/pkg/pagination"
)

// SaleHandler handles sale-related HTTP requests
type SaleHandler struct {
	saleService *service.SaleService
}

// NewSaleHandler creates a new sale handler
func NewSaleHandler(saleService *service.SaleService) *SaleHandler {
	return &SaleHandler{saleService: saleService}
}

// List handles listing sales (supports both page-based and cursor-based pagination)
func (h *SaleHandler) List(c *gin.Context) {
	var filter request.SaleFilterRequest
	if err := c.ShouldBindQuery(&filter); err != nil {
		bindError(c, err)
		return
	}

	var mode *enum.PaymentMode
	if filter.PaymentMode != "" {
		m, _ := enum.ParsePaymentMode(filter.PaymentMode)
		mode = &m
	}

	// Check if cursor-based pagination is requested
	if filter.Cursor != "" || filter.Limit > 0 {
		h.listWithCursor(c, &filter, mode)
		return
	}

	params := &repository.SaleFilterParams{
		Pagination:  pageParams(filter.Page, filter.PerPage),
		Search:      filter.Search,
		PaymentMode: mode,
		ProductID:   parseOptionalUUID(filter.ProductID),
		StartDate:   parseDay(filter.StartDate),
		EndDate:     parseDayEnd(filter.EndDate),
		SortBy:      filter.SortBy,
		SortOrder:   filter.SortOrder,
	}

	result, err := h.saleService.ListSales(c.Request.Context(), params)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Sales retrieved successfully", result)
}

// listWithCursor handles listing sales with cursor-based pagination
func (h *SaleHandler) listWithCursor(c *gin.Context, filter *request.SaleFilterRequest, mode *enum.PaymentMode) {
	params := &repository.SaleCursorFilterParams{
		Cursor: &pagination.CursorParams{
			Cursor: filter.Cursor,
			Limit:  filter.Limit,
		},
		PaymentMode: mode,
		StartDate:   parseDay(filter.StartDate),
		EndDate:     parseDayEnd(filter.EndDate),
	}

	result, err := h.saleService.ListSalesWithCursor(c.Request.Context(), params)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithCursor(c, "Sales retrieved successfully", result)
}

// Summary handles totalling the caller's sales over a date range
func (h *SaleHandler) Summary(c *gin.Context) {
	var req request.SaleSummaryRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		bindError(c, err)
		return
	}

	from := parseDay(req.StartDate)
	to := parseDay(req.EndDate).AddDate(0, 0, 1)
	summary, err := h.saleService.SummarizeSales(c.Request.Context(), *from, to)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Sales summary retrieved successfully", summary)
}

// Create handles recording a sale
func (h *SaleHandler) Create(c *gin.Context) {
	var req request.CreateSaleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	mode, _ := enum.ParsePaymentMode(req.PaymentMode)
	sale, err := h.saleService.CreateSale(c.Request.Context(), &service.CreateSaleInput{
		ProductID:    req.ProductID,
		Quantity:     req.Quantity,
		SellingPrice: req.SellingPrice,
		BuyerName:    req.BuyerName,
		PaymentMode:  mode,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Sale recorded successfully", sale)
}

// Get handles getting a single sale
func (h *SaleHandler) Get(c *gin.Context) {
	id, ok := parseID(c, "id", "sale")
	if !ok {
		return
	}

	sale, err := h.saleService.GetSale(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Sale retrieved successfully", sale)
}

// Delete handles voiding a sale, returning its quantity to stock
func (h *SaleHandler) Delete(c *gin.Context) {
	id, ok := parseID(c, "id", "sale")
	if !ok {
		return
	}

	if err := h.saleService.DeleteSale(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	response.NoContent(c)
}
