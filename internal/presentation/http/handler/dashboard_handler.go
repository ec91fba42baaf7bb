package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/sangkips/stockboard-api/internal/application/service"
	"github.com/sangkips/stockboard-api/internal/presentation/http/dto/response"
)

// DashboardHandler handles dashboard-related HTTP requests
type DashboardHandler struct {
	dashboardService *service.DashboardService
}

// NewDashboardHandler creates a new dashboard handler
func NewDashboardHandler(dashboardService *service.DashboardService) *DashboardHandler {
	return &DashboardHandler{dashboardService: dashboardService}
}

// GetSummary handles the headline figures for today, this month and this year
func (h *DashboardHandler) GetSummary(c *gin.Context) {
	summary, err := h.dashboardService.GetSummary(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Dashboard summary retrieved successfully", summary)
}

// GetChart handles chart series at ?granularity=daily|monthly|yearly
func (h *DashboardHandler) GetChart(c *gin.Context) {
	chart, err := h.dashboardService.GetChart(c.Request.Context(), c.DefaultQuery("granularity", "monthly"))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Dashboard chart retrieved successfully", chart)
}
