package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/sangkips/stockboard-api/internal/application/service"
	"github.com/sangkips/stockboard-api/internal/domain/repository"
	"github.com/sangkips/stockboard-api/internal/presentation/http/dto/request"
	"github.com/sangkips/stockboard-api/internal/presentation/http/dto/response"
)

// PurchaseHandler handles purchase-related HTTP requests
type PurchaseHandler struct {
	purchaseService *service.PurchaseService
}

// NewPurchaseHandler creates a new purchase handler
func NewPurchaseHandler(purchaseService *service.PurchaseService) *PurchaseHandler {
	return &PurchaseHandler{purchaseService: purchaseService}
}

// List handles listing purchases
func (h *PurchaseHandler) List(c *gin.Context) {
	var filter request.DateRangeFilterRequest
	if err := c.ShouldBindQuery(&filter); err != nil {
		bindError(c, err)
		return
	}

	result, err := h.purchaseService.ListPurchases(c.Request.Context(), &repository.PurchaseFilterParams{
		Pagination: pageParams(filter.Page, filter.PerPage),
		Search:     filter.Search,
		ProductID:  parseOptionalUUID(filter.ProductID),
		StartDate:  parseDay(filter.StartDate),
		EndDate:    parseDayEnd(filter.EndDate),
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Purchases retrieved successfully", result)
}

// Create handles recording stock bought in
func (h *PurchaseHandler) Create(c *gin.Context) {
	var req request.CreatePurchaseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	purchase, err := h.purchaseService.CreatePurchase(c.Request.Context(), &service.CreatePurchaseInput{
		ProductID:    req.ProductID,
		SupplierName: req.SupplierName,
		UnitPrice:    req.UnitPrice,
		Quantity:     req.Quantity,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Purchase created successfully", purchase)
}

// Get handles getting a single purchase
func (h *PurchaseHandler) Get(c *gin.Context) {
	id, ok := parseID(c, "id", "purchase")
	if !ok {
		return
	}

	purchase, err := h.purchaseService.GetPurchase(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Purchase retrieved successfully", purchase)
}

// Delete handles deleting a purchase, taking its quantity back out of stock
func (h *PurchaseHandler) Delete(c *gin.Context) {
	id, ok := parseID(c, "id", "purchase")
	if !ok {
		return
	}

	if err := h.purchaseService.DeletePurchase(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	response.NoContent(c)
}
