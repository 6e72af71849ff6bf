package dto

import (
	"treefnio/internal/core/entity"
	"treefnio/internal/core/id"
	"treefnio/internal/core/types"
	"treefnio/internal/domain/recipes"
)

// --- Request DTOs ---

// RecipeLineRequest is one material line in a recipe request.
type RecipeLineRequest struct {
	MaterialID string         `json:"materialId" binding:"required"`
	Quantity   types.Quantity `json:"quantity" binding:"required"`
}

// CreateRecipeRequest is the request body for creating a recipe.
type CreateRecipeRequest struct {
	Code        string              `json:"code"`
	Name        string              `json:"name" binding:"required"`
	ProductID   string              `json:"productId" binding:"required"`
	Yield       types.Quantity      `json:"yield"`
	Description *string             `json:"description"`
	Lines       []RecipeLineRequest `json:"lines" binding:"required"`
	Attributes  entity.Attributes   `json:"attributes"`
}

// ToEntity converts DTO to domain entity.
func (r *CreateRecipeRequest) ToEntity() (*recipes.Recipe, error) {
	productID, err := id.Parse(r.ProductID)
	if err != nil {
		return nil, err
	}

	rec := recipes.NewRecipe(r.Code, r.Name, productID)
	if r.Yield > 0 {
		rec.Yield = r.Yield
	}
	rec.Description = r.Description
	rec.Attributes = r.Attributes

	for _, line := range r.Lines {
		materialID, err := id.Parse(line.MaterialID)
		if err != nil {
			return nil, err
		}
		rec.AddLine(materialID, line.Quantity)
	}

	return rec, nil
}

// UpdateRecipeRequest is the request body for updating a recipe.
// Lines replace the existing table part wholesale.
type UpdateRecipeRequest struct {
	Code        string              `json:"code"`
	Name        string              `json:"name" binding:"required"`
	Yield       types.Quantity      `json:"yield"`
	Description *string             `json:"description"`
	Lines       []RecipeLineRequest `json:"lines" binding:"required"`
	Attributes  entity.Attributes   `json:"attributes"`
	Version     int                 `json:"version" binding:"required"`
}

// ApplyTo applies update DTO to existing entity.
func (r *UpdateRecipeRequest) ApplyTo(rec *recipes.Recipe) error {
	rec.Code = r.Code
	rec.Name = r.Name
	if r.Yield > 0 {
		rec.Yield = r.Yield
	}
	rec.Description = r.Description
	rec.Attributes = r.Attributes
	rec.Version = r.Version

	rec.Lines = rec.Lines[:0]
	for _, line := range r.Lines {
		materialID, err := id.Parse(line.MaterialID)
		if err != nil {
			return err
		}
		rec.AddLine(materialID, line.Quantity)
	}

	return nil
}

// --- Response DTOs ---

// RecipeLineResponse is one material line in a recipe response.
type RecipeLineResponse struct {
	LineID     string         `json:"lineId"`
	LineNo     int            `json:"lineNo"`
	MaterialID string         `json:"materialId"`
	Quantity   types.Quantity `json:"quantity"`
}

// RecipeResponse is the response body for a recipe.
type RecipeResponse struct {
	ID           string               `json:"id"`
	Code         string               `json:"code"`
	Name         string               `json:"name"`
	ProductID    string               `json:"productId"`
	Yield        types.Quantity       `json:"yield"`
	Description  *string              `json:"description,omitempty"`
	Lines        []RecipeLineResponse `json:"lines"`
	DeletionMark bool                 `json:"deletionMark"`
	Version      int                  `json:"version"`
	Attributes   entity.Attributes    `json:"attributes,omitempty"`
}

// FromRecipe creates response DTO from domain entity.
func FromRecipe(r *recipes.Recipe) *RecipeResponse {
	lines := make([]RecipeLineResponse, len(r.Lines))
	for i, line := range r.Lines {
		lines[i] = RecipeLineResponse{
			LineID:     line.LineID.String(),
			LineNo:     line.LineNo,
			MaterialID: line.MaterialID.String(),
			Quantity:   line.Quantity,
		}
	}

	return &RecipeResponse{
		ID:           r.ID.String(),
		Code:         r.Code,
		Name:         r.Name,
		ProductID:    r.ProductID.String(),
		Yield:        r.Yield,
		Description:  r.Description,
		Lines:        lines,
		DeletionMark: r.DeletionMark,
		Version:      r.Version,
		Attributes:   r.Attributes,
	}
}
