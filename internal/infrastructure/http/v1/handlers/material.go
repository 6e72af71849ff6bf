package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"treefnio/internal/core/apperror"
	"treefnio/internal/core/id"
	"treefnio/internal/domain"
	"treefnio/internal/domain/catalogs/material"
	"treefnio/internal/infrastructure/http/v1/dto"
)

// MaterialHandler extends the generic catalog handler with
// material-specific endpoints.
type MaterialHandler struct {
	*CatalogHandler[*material.Material, dto.CreateMaterialRequest, dto.UpdateMaterialRequest]
	materials *material.Service
}

// NewMaterialHandler creates a configured handler for materials.
func NewMaterialHandler(
	base *BaseHandler,
	service *material.Service,
) *MaterialHandler {
	config := CatalogHandlerConfig[
		*material.Material,
		dto.CreateMaterialRequest,
		dto.UpdateMaterialRequest,
	]{
		Service:    service.CatalogService,
		EntityName: "material",

		MapCreateDTO: func(req dto.CreateMaterialRequest) *material.Material {
			return req.ToEntity()
		},

		MapUpdateDTO: func(req dto.UpdateMaterialRequest, existing *material.Material) *material.Material {
			req.ApplyTo(existing)
			return existing
		},

		MapToDTO: func(entity *material.Material) any {
			return dto.FromMaterial(entity)
		},
	}

	return &MaterialHandler{
		CatalogHandler: NewCatalogHandler(base, config),
		materials:      service,
	}
}

// LowStock handles GET /materials/low-stock - materials at or below
// their reorder threshold.
func (h *MaterialHandler) LowStock(c *gin.Context) {
	ctx := c.Request.Context()

	filter := domain.DefaultListFilter()
	filter.Limit = h.ParseIntQuery(c, "limit", 50)
	filter.Offset = h.ParseIntQuery(c, "offset", 0)

	result, err := h.materials.FindLowStock(ctx, filter)
	if err != nil {
		h.Error(c, err)
		return
	}

	items := make([]any, len(result.Items))
	for i, item := range result.Items {
		items[i] = dto.FromMaterial(item)
	}

	c.JSON(http.StatusOK, dto.ListResponse{
		Items:      items,
		TotalCount: result.TotalCount,
		Limit:      result.Limit,
		Offset:     result.Offset,
	})
}

// UpdatePrice handles PUT /materials/:id/price
func (h *MaterialHandler) UpdatePrice(c *gin.Context) {
	ctx := c.Request.Context()

	materialID, err := id.Parse(c.Param("id"))
	if err != nil {
		h.Error(c, apperror.NewValidation("invalid id format"))
		return
	}

	var req dto.UpdateMaterialPriceRequest
	if !h.BindJSON(c, &req) {
		return
	}

	if err := h.materials.UpdatePrice(ctx, materialID, req.Price); err != nil {
		h.Error(c, err)
		return
	}

	updated, err := h.materials.GetByID(ctx, materialID)
	if err != nil {
		h.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.FromMaterial(updated))
}
