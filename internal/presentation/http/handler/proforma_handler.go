package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/sangkips/stockboard-api/internal/application/service"
	"github.com/sangkips/stockboard-api/internal/presentation/http/dto/request"
	"github.com/sangkips/stockboard-api/internal/presentation/http/dto/response"
)

// ProformaHandler handles proforma invoice HTTP requests
type ProformaHandler struct {
	proformaService *service.ProformaService
}

// NewProformaHandler creates a new proforma handler
func NewProformaHandler(proformaService *service.ProformaService) *ProformaHandler {
	return &ProformaHandler{proformaService: proformaService}
}

// List handles listing proformas
func (h *ProformaHandler) List(c *gin.Context) {
	var query struct {
		Search  string `form:"search"`
		Page    int    `form:"page"`
		PerPage int    `form:"per_page"`
	}
	if err := c.ShouldBindQuery(&query); err != nil {
		bindError(c, err)
		return
	}

	result, err := h.proformaService.ListProformas(c.Request.Context(), pageParams(query.Page, query.PerPage), query.Search)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Proformas retrieved successfully", result)
}

// Create handles drafting a proforma invoice. Stock is not touched.
func (h *ProformaHandler) Create(c *gin.Context) {
	var req request.CreateProformaRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	items := make([]service.ProformaItemInput, len(req.Items))
	for i, item := range req.Items {
		items[i] = service.ProformaItemInput{
			ProductID:   item.ProductID,
			ProductName: item.ProductName,
			Quantity:    item.Quantity,
			UnitPrice:   item.UnitPrice,
		}
	}

	proforma, err := h.proformaService.CreateProforma(c.Request.Context(), &service.CreateProformaInput{
		ClientName:  req.ClientName,
		ClientPhone: req.ClientPhone,
		ValidUntil:  parseDay(req.ValidUntil),
		Note:        req.Note,
		Items:       items,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Proforma created successfully", proforma)
}

// Get handles getting a proforma with its items
func (h *ProformaHandler) Get(c *gin.Context) {
	id, ok := parseID(c, "id", "proforma")
	if !ok {
		return
	}

	proforma, err := h.proformaService.GetProforma(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Proforma retrieved successfully", proforma)
}

// Delete handles deleting a proforma
func (h *ProformaHandler) Delete(c *gin.Context) {
	id, ok := parseID(c, "id", "proforma")
	if !ok {
		return
	}

	if err := h.proformaService.DeleteProforma(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	response.NoContent(c)
}
