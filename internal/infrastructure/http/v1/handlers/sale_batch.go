package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"treefnio/internal/domain/documents/sale_batch"
	"treefnio/internal/infrastructure/http/v1/dto"
)

// SaleBatchHandler extends the generic document handler with
// date-range listing.
type SaleBatchHandler struct {
	*BaseDocumentHandler[*sale_batch.SaleBatch, dto.CreateSaleBatchRequest, dto.UpdateSaleBatchRequest]
	batches *sale_batch.Service
}

// NewSaleBatchHandler creates a configured handler for sale batches.
func NewSaleBatchHandler(
	base *BaseHandler,
	service *sale_batch.Service,
) *SaleBatchHandler {
	config := BaseDocumentHandlerConfig[
		*sale_batch.SaleBatch,
		dto.CreateSaleBatchRequest,
		dto.UpdateSaleBatchRequest,
	]{
		Service:    service,
		EntityName: "sale_batch",

		MapCreateDTO: func(req dto.CreateSaleBatchRequest) *sale_batch.SaleBatch {
			return req.ToEntity()
		},

		MapUpdateDTO: func(req dto.UpdateSaleBatchRequest, existing *sale_batch.SaleBatch) *sale_batch.SaleBatch {
			req.ApplyTo(existing)
			return existing
		},

		MapToDTO: func(entity *sale_batch.SaleBatch) any {
			return dto.FromSaleBatch(entity)
		},

		IsPostImmediately: func(req dto.CreateSaleBatchRequest) bool {
			return req.PostImmediately
		},
	}

	return &SaleBatchHandler{
		BaseDocumentHandler: NewBaseDocumentHandler(base, config),
		batches:             service,
	}
}

// List handles GET /sale-batches with optional Shamsi date bounds.
func (h *SaleBatchHandler) List(c *gin.Context) {
	ctx := c.Request.Context()

	filter := sale_batch.ListFilter{}
	filter.Limit = h.ParseIntQuery(c, "limit", 50)
	filter.Offset = h.ParseIntQuery(c, "offset", 0)
	filter.IncludeDeleted = c.Query("includeDeleted") == "true"
	filter.DateFrom = c.Query("dateFrom")
	filter.DateTo = c.Query("dateTo")

	result, err := h.batches.List(ctx, filter)
	if err != nil {
		h.Error(c, err)
		return
	}

	items := make([]any, len(result.Items))
	for i, item := range result.Items {
		items[i] = dto.FromSaleBatch(item)
	}

	c.JSON(http.StatusOK, dto.ListResponse{
		Items:      items,
		TotalCount: result.TotalCount,
		Limit:      result.Limit,
		Offset:     result.Offset,
	})
}
