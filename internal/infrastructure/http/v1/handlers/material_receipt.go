package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"treefnio/internal/domain/documents/material_receipt"
	"treefnio/internal/infrastructure/http/v1/dto"
)

// MaterialReceiptHandler extends the generic document handler with listing.
type MaterialReceiptHandler struct {
	*BaseDocumentHandler[*material_receipt.MaterialReceipt, dto.CreateMaterialReceiptRequest, dto.UpdateMaterialReceiptRequest]
	receipts *material_receipt.Service
}

// NewMaterialReceiptHandler creates a configured handler for material receipts.
func NewMaterialReceiptHandler(
	base *BaseHandler,
	service *material_receipt.Service,
) *MaterialReceiptHandler {
	config := BaseDocumentHandlerConfig[
		*material_receipt.MaterialReceipt,
		dto.CreateMaterialReceiptRequest,
		dto.UpdateMaterialReceiptRequest,
	]{
		Service:    service,
		EntityName: "material_receipt",

		MapCreateDTO: func(req dto.CreateMaterialReceiptRequest) *material_receipt.MaterialReceipt {
			return req.ToEntity()
		},

		MapUpdateDTO: func(req dto.UpdateMaterialReceiptRequest, existing *material_receipt.MaterialReceipt) *material_receipt.MaterialReceipt {
			req.ApplyTo(existing)
			return existing
		},

		MapToDTO: func(entity *material_receipt.MaterialReceipt) any {
			return dto.FromMaterialReceipt(entity)
		},

		IsPostImmediately: func(req dto.CreateMaterialReceiptRequest) bool {
			return req.PostImmediately
		},
	}

	return &MaterialReceiptHandler{
		BaseDocumentHandler: NewBaseDocumentHandler(base, config),
		receipts:            service,
	}
}

// List handles GET /material-receipts
func (h *MaterialReceiptHandler) List(c *gin.Context) {
	ctx := c.Request.Context()

	filter := material_receipt.ListFilter{}
	filter.Limit = h.ParseIntQuery(c, "limit", 50)
	filter.Offset = h.ParseIntQuery(c, "offset", 0)
	filter.IncludeDeleted = c.Query("includeDeleted") == "true"

	result, err := h.receipts.List(ctx, filter)
	if err != nil {
		h.Error(c, err)
		return
	}

	items := make([]any, len(result.Items))
	for i, item := range result.Items {
		items[i] = dto.FromMaterialReceipt(item)
	}

	c.JSON(http.StatusOK, dto.ListResponse{
		Items:      items,
		TotalCount: result.TotalCount,
		Limit:      result.Limit,
		Offset:     result.Offset,
	})
}
