package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"treefnio/internal/core/apperror"
	"treefnio/internal/core/id"
	"treefnio/internal/domain/catalogs/product"
	"treefnio/internal/infrastructure/http/v1/dto"
)

// ProductHandler extends the generic catalog handler with
// product-specific endpoints.
type ProductHandler struct {
	*CatalogHandler[*product.Product, dto.CreateProductRequest, dto.UpdateProductRequest]
	products *product.Service
}

// NewProductHandler creates a configured handler for products.
func NewProductHandler(
	base *BaseHandler,
	service *product.Service,
) *ProductHandler {
	config := CatalogHandlerConfig[
		*product.Product,
		dto.CreateProductRequest,
		dto.UpdateProductRequest,
	]{
		Service:    service.CatalogService,
		EntityName: "product",

		MapCreateDTO: func(req dto.CreateProductRequest) *product.Product {
			return req.ToEntity()
		},

		MapUpdateDTO: func(req dto.UpdateProductRequest, existing *product.Product) *product.Product {
			req.ApplyTo(existing)
			return existing
		},

		MapToDTO: func(entity *product.Product) any {
			return dto.FromProduct(entity)
		},
	}

	return &ProductHandler{
		CatalogHandler: NewCatalogHandler(base, config),
		products:       service,
	}
}

// ListByDepartment handles GET /products/by-department/:departmentId
func (h *ProductHandler) ListByDepartment(c *gin.Context) {
	ctx := c.Request.Context()

	departmentID, err := id.Parse(c.Param("departmentId"))
	if err != nil {
		h.Error(c, apperror.NewValidation("invalid departmentId format"))
		return
	}

	items, err := h.products.ListByDepartment(ctx, departmentID)
	if err != nil {
		h.Error(c, err)
		return
	}

	dtos := make([]any, len(items))
	for i, item := range items {
		dtos[i] = dto.FromProduct(item)
	}

	c.JSON(http.StatusOK, gin.H{"items": dtos})
}

// SetActiveRecipe handles PUT /products/:id/active-recipe
func (h *ProductHandler) SetActiveRecipe(c *gin.Context) {
	ctx := c.Request.Context()

	productID, err := id.Parse(c.Param("id"))
	if err != nil {
		h.Error(c, apperror.NewValidation("invalid id format"))
		return
	}

	var req dto.SetActiveRecipeRequest
	if !h.BindJSON(c, &req) {
		return
	}

	recipeID, err := id.Parse(req.RecipeID)
	if err != nil {
		h.Error(c, apperror.NewValidation("invalid recipeId format"))
		return
	}

	if err := h.products.SetActiveRecipe(ctx, productID, &recipeID); err != nil {
		h.Error(c, err)
		return
	}

	updated, err := h.products.GetByID(ctx, productID)
	if err != nil {
		h.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.FromProduct(updated))
}

// ClearActiveRecipe handles DELETE /products/:id/active-recipe
func (h *ProductHandler) ClearActiveRecipe(c *gin.Context) {
	ctx := c.Request.Context()

	productID, err := id.Parse(c.Param("id"))
	if err != nil {
		h.Error(c, apperror.NewValidation("invalid id format"))
		return
	}

	if err := h.products.SetActiveRecipe(ctx, productID, nil); err != nil {
		h.Error(c, err)
		return
	}

	h.Success(c, "active recipe cleared")
}
