package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"treefnio/internal/core/apperror"
	"treefnio/internal/core/id"
	"treefnio/internal/domain/registers/stock"
	"treefnio/internal/infrastructure/http/v1/dto"
)

// StockHandler handles material stock register endpoints.
type StockHandler struct {
	*BaseHandler
	service *stock.Service
}

// NewStockHandler creates a new stock handler.
func NewStockHandler(base *BaseHandler, service *stock.Service) *StockHandler {
	return &StockHandler{
		BaseHandler: base,
		service:     service,
	}
}

// GetBalances handles GET /registers/stock/balances
func (h *StockHandler) GetBalances(c *gin.Context) {
	ctx := c.Request.Context()

	balances, err := h.service.GetStock(ctx)
	if err != nil {
		h.Error(c, err)
		return
	}

	items := make([]dto.StockBalanceResponse, len(balances))
	for i, b := range balances {
		items[i] = dto.FromStockBalance(b)
	}

	c.JSON(http.StatusOK, dto.StockBalanceListResponse{Items: items})
}

// GetAvailability handles GET /registers/stock/availability/:materialId
func (h *StockHandler) GetAvailability(c *gin.Context) {
	ctx := c.Request.Context()

	materialID, err := id.Parse(c.Param("materialId"))
	if err != nil {
		h.Error(c, apperror.NewValidation("invalid materialId format"))
		return
	}

	available, err := h.service.GetMaterialAvailability(ctx, materialID)
	if err != nil {
		h.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.MaterialAvailabilityResponse{
		MaterialID: materialID.String(),
		Available:  available,
	})
}

// GetMovements handles GET /registers/stock/movements/:materialId
func (h *StockHandler) GetMovements(c *gin.Context) {
	ctx := c.Request.Context()

	materialID, err := id.Parse(c.Param("materialId"))
	if err != nil {
		h.Error(c, apperror.NewValidation("invalid materialId format"))
		return
	}

	filter := stock.MovementFilter{
		Limit:  h.ParseIntQuery(c, "limit", 100),
		Offset: h.ParseIntQuery(c, "offset", 0),
	}

	if from, ok := h.parseTimeQuery(c, "fromDate"); ok {
		filter.FromDate = from
	} else {
		return
	}
	if to, ok := h.parseTimeQuery(c, "toDate"); ok {
		filter.ToDate = to
	} else {
		return
	}

	movements, err := h.service.GetMovementHistory(ctx, materialID, filter)
	if err != nil {
		h.Error(c, err)
		return
	}

	items := make([]dto.StockMovementResponse, len(movements))
	for i, m := range movements {
		items[i] = dto.FromStockMovement(m)
	}

	c.JSON(http.StatusOK, dto.StockMovementListResponse{Items: items})
}

// GetTurnover handles GET /registers/stock/turnover
func (h *StockHandler) GetTurnover(c *gin.Context) {
	ctx := c.Request.Context()

	fromDate, err := time.Parse(time.RFC3339, c.Query("fromDate"))
	if err != nil {
		h.Error(c, apperror.NewValidation("fromDate is required (RFC3339)"))
		return
	}
	toDate, err := time.Parse(time.RFC3339, c.Query("toDate"))
	if err != nil {
		h.Error(c, apperror.NewValidation("toDate is required (RFC3339)"))
		return
	}

	filter := stock.TurnoverFilter{
		FromDate: fromDate,
		ToDate:   toDate,
	}

	if materialStr := c.Query("materialId"); materialStr != "" {
		materialID, err := id.Parse(materialStr)
		if err != nil {
			h.Error(c, apperror.NewValidation("invalid materialId format"))
			return
		}
		filter.MaterialID = &materialID
	}

	turnover, err := h.service.GetStockReport(ctx, filter)
	if err != nil {
		h.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.FromStockTurnover(turnover))
}

// parseTimeQuery parses an optional RFC3339 query param.
// Returns (nil, true) when the param is absent.
func (h *StockHandler) parseTimeQuery(c *gin.Context, name string) (*time.Time, bool) {
	raw := c.Query(name)
	if raw == "" {
		return nil, true
	}
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		h.Error(c, apperror.NewValidation("invalid "+name+" format (RFC3339 expected)"))
		return nil, false
	}
	return &t, true
}

// RegisterRoutes wires stock register routes into the group.
func (h *StockHandler) RegisterRoutes(group *gin.RouterGroup) {
	group.GET("/balances", h.GetBalances)
	group.GET("/availability/:materialId", h.GetAvailability)
	group.GET("/movements/:materialId", h.GetMovements)
	group.GET("/turnover", h.GetTurnover)
}
