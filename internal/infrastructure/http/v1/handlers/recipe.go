package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"treefnio/internal/core/apperror"
	"treefnio/internal/core/id"
	"treefnio/internal/domain"
	"treefnio/internal/domain/recipes"
	"treefnio/internal/infrastructure/http/v1/dto"
)

// RecipeHandler handles recipe endpoints. Recipes carry a table part,
// so they do not fit the generic catalog handler.
type RecipeHandler struct {
	*BaseHandler
	service *recipes.Service
}

// NewRecipeHandler creates a new recipe handler.
func NewRecipeHandler(base *BaseHandler, service *recipes.Service) *RecipeHandler {
	return &RecipeHandler{
		BaseHandler: base,
		service:     service,
	}
}

// List handles GET /recipes
func (h *RecipeHandler) List(c *gin.Context) {
	ctx := c.Request.Context()

	filter := domain.DefaultListFilter()
	filter.Search = c.Query("search")
	filter.Limit = h.ParseIntQuery(c, "limit", 50)
	filter.Offset = h.ParseIntQuery(c, "offset", 0)
	filter.IncludeDeleted = c.Query("includeDeleted") == "true"

	result, err := h.service.List(ctx, filter)
	if err != nil {
		h.Error(c, err)
		return
	}

	items := make([]any, len(result.Items))
	for i, item := range result.Items {
		items[i] = dto.FromRecipe(item)
	}

	c.JSON(http.StatusOK, dto.ListResponse{
		Items:      items,
		TotalCount: result.TotalCount,
		Limit:      result.Limit,
		Offset:     result.Offset,
	})
}

// ListByProduct handles GET /recipes/by-product/:productId
func (h *RecipeHandler) ListByProduct(c *gin.Context) {
	ctx := c.Request.Context()

	productID, err := id.Parse(c.Param("productId"))
	if err != nil {
		h.Error(c, apperror.NewValidation("invalid productId format"))
		return
	}

	items, err := h.service.ListByProduct(ctx, productID)
	if err != nil {
		h.Error(c, err)
		return
	}

	dtos := make([]any, len(items))
	for i, item := range items {
		dtos[i] = dto.FromRecipe(item)
	}

	c.JSON(http.StatusOK, gin.H{"items": dtos})
}

// Get handles GET /recipes/:id
func (h *RecipeHandler) Get(c *gin.Context) {
	ctx := c.Request.Context()

	recipeID, err := id.Parse(c.Param("id"))
	if err != nil {
		h.Error(c, apperror.NewValidation("invalid id format"))
		return
	}

	recipe, err := h.service.GetByID(ctx, recipeID)
	if err != nil {
		h.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.FromRecipe(recipe))
}

// Create handles POST /recipes
func (h *RecipeHandler) Create(c *gin.Context) {
	ctx := c.Request.Context()

	var req dto.CreateRecipeRequest
	if !h.BindJSON(c, &req) {
		return
	}

	recipe, err := req.ToEntity()
	if err != nil {
		h.Error(c, apperror.NewValidation("invalid id format in request"))
		return
	}

	if err := h.service.Create(ctx, recipe); err != nil {
		h.Error(c, err)
		return
	}

	response := dto.FromRecipe(recipe)
	h.CompleteIdempotency(c, http.StatusCreated, "application/json", response)
	c.JSON(http.StatusCreated, response)
}

// Update handles PUT /recipes/:id
func (h *RecipeHandler) Update(c *gin.Context) {
	ctx := c.Request.Context()

	recipeID, err := id.Parse(c.Param("id"))
	if err != nil {
		h.Error(c, apperror.NewValidation("invalid id format"))
		return
	}

	var req dto.UpdateRecipeRequest
	if !h.BindJSON(c, &req) {
		return
	}

	existing, err := h.service.GetByID(ctx, recipeID)
	if err != nil {
		h.Error(c, err)
		return
	}

	if err := req.ApplyTo(existing); err != nil {
		h.Error(c, apperror.NewValidation("invalid id format in request"))
		return
	}

	if err := h.service.Update(ctx, existing); err != nil {
		h.Error(c, err)
		return
	}

	response := dto.FromRecipe(existing)
	h.CompleteIdempotency(c, http.StatusOK, "application/json", response)
	c.JSON(http.StatusOK, response)
}

// Delete handles DELETE /recipes/:id
func (h *RecipeHandler) Delete(c *gin.Context) {
	ctx := c.Request.Context()

	recipeID, err := id.Parse(c.Param("id"))
	if err != nil {
		h.Error(c, apperror.NewValidation("invalid id format"))
		return
	}

	if err := h.service.Delete(ctx, recipeID); err != nil {
		h.Error(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// RegisterRoutes wires recipe routes into the group.
func (h *RecipeHandler) RegisterRoutes(group *gin.RouterGroup) {
	group.GET("", h.List)
	group.GET("/by-product/:productId", h.ListByProduct)
	group.GET("/:id", h.Get)
	group.POST("", h.Create)
	group.PUT("/:id", h.Update)
	group.DELETE("/:id", h.Delete)
}
