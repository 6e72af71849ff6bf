package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"treefnio/internal/domain/reports"
	"treefnio/internal/infrastructure/http/v1/dto"
)

// ReportsHandler handles the sales report and BCG matrix endpoints.
type ReportsHandler struct {
	*BaseHandler
	service *reports.Service
}

// NewReportsHandler creates a new reports handler.
func NewReportsHandler(base *BaseHandler, service *reports.Service) *ReportsHandler {
	return &ReportsHandler{
		BaseHandler: base,
		service:     service,
	}
}

// GetSalesReport handles GET /reports/sales?start=...&end=...
// Dates are Shamsi strings, both bounds inclusive.
func (h *ReportsHandler) GetSalesReport(c *gin.Context) {
	ctx := c.Request.Context()

	var req dto.SalesReportRequest
	if !h.BindQuery(c, &req) {
		return
	}

	report, err := h.service.GetSalesReport(ctx, req.Start, req.End)
	if err != nil {
		h.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.FromSalesReport(report))
}

// GetSalesReportForSelection handles POST /reports/sales/selection
// Aggregates over an explicit batch list instead of a date range.
func (h *ReportsHandler) GetSalesReportForSelection(c *gin.Context) {
	ctx := c.Request.Context()

	var req dto.SalesReportSelectionRequest
	if !h.BindJSON(c, &req) {
		return
	}

	report, err := h.service.GetSalesReportForBatches(ctx, req.BatchIDs)
	if err != nil {
		h.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.FromSalesReport(report))
}

// GetBoston handles POST /reports/boston
func (h *ReportsHandler) GetBoston(c *gin.Context) {
	ctx := c.Request.Context()

	var req dto.BostonRequest
	if !h.BindJSON(c, &req) {
		return
	}

	data, err := h.service.GetBostonData(ctx, req.BatchIDs)
	if err != nil {
		h.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.FromBostonData(data))
}

// GetSalesHistory handles GET /reports/sales/history
// Returns all batches, newest first, without table parts expanded.
func (h *ReportsHandler) GetSalesHistory(c *gin.Context) {
	ctx := c.Request.Context()

	batches, err := h.service.GetSalesHistory(ctx)
	if err != nil {
		h.Error(c, err)
		return
	}

	items := make([]any, len(batches))
	for i, b := range batches {
		items[i] = dto.FromSaleBatch(b)
	}

	c.JSON(http.StatusOK, gin.H{"items": items})
}

// RegisterRoutes wires report routes into the group.
func (h *ReportsHandler) RegisterRoutes(group *gin.RouterGroup) {
	group.GET("/sales", h.GetSalesReport)
	group.GET("/sales/history", h.GetSalesHistory)
	group.POST("/sales/selection", h.GetSalesReportForSelection)
	group.POST("/boston", h.GetBoston)
}
