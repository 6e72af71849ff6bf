package dto

import (
	"treefnio/internal/core/entity"
	"treefnio/internal/core/types"
	"treefnio/internal/domain/catalogs/product"
)

// --- Request DTOs ---

// CreateProductRequest is the request body for creating a product.
type CreateProductRequest struct {
	Code         string            `json:"code"`
	Name         string            `json:"name" binding:"required"`
	DepartmentID *string           `json:"departmentId"`
	SegmentID    *string           `json:"segmentId"`
	SalePrice    types.Money       `json:"salePrice"`
	Description  *string           `json:"description"`
	ImageURL     *string           `json:"imageUrl"`
	ParentID     *string           `json:"parentId"`
	IsFolder     bool              `json:"isFolder"`
	Attributes   entity.Attributes `json:"attributes"`
}

// ToEntity converts DTO to domain entity.
func (r *CreateProductRequest) ToEntity() *product.Product {
	p := product.NewProduct(r.Code, r.Name)
	p.DepartmentID = r.DepartmentID
	p.SegmentID = r.SegmentID
	p.SalePrice = r.SalePrice
	p.Description = r.Description
	p.ImageURL = r.ImageURL
	p.ParentID = r.ParentID
	p.IsFolder = r.IsFolder
	p.Attributes = r.Attributes
	return p
}

// UpdateProductRequest is the request body for updating a product.
type UpdateProductRequest struct {
	Code         string            `json:"code"`
	Name         string            `json:"name" binding:"required"`
	DepartmentID *string           `json:"departmentId"`
	SegmentID    *string           `json:"segmentId"`
	SalePrice    types.Money       `json:"salePrice"`
	Description  *string           `json:"description"`
	ImageURL     *string           `json:"imageUrl"`
	ParentID     *string           `json:"parentId"`
	IsFolder     bool              `json:"isFolder"`
	Attributes   entity.Attributes `json:"attributes"`
	Version      int               `json:"version" binding:"required"`
}

// ApplyTo applies update DTO to existing entity.
func (r *UpdateProductRequest) ApplyTo(p *product.Product) {
	p.Code = r.Code
	p.Name = r.Name
	p.DepartmentID = r.DepartmentID
	p.SegmentID = r.SegmentID
	p.SalePrice = r.SalePrice
	p.Description = r.Description
	p.ImageURL = r.ImageURL
	p.ParentID = r.ParentID
	p.IsFolder = r.IsFolder
	p.Attributes = r.Attributes
	p.Version = r.Version
}

// SetActiveRecipeRequest selects the recipe used for cost calculation.
type SetActiveRecipeRequest struct {
	RecipeID string `json:"recipeId" binding:"required"`
}

// --- Response DTOs ---

// ProductResponse is the response body for a product.
type ProductResponse struct {
	ID             string            `json:"id"`
	Code           string            `json:"code"`
	Name           string            `json:"name"`
	DepartmentID   *string           `json:"departmentId,omitempty"`
	SegmentID      *string           `json:"segmentId,omitempty"`
	SalePrice      types.Money       `json:"salePrice"`
	ActiveRecipeID *string           `json:"activeRecipeId,omitempty"`
	Description    *string           `json:"description,omitempty"`
	ImageURL       *string           `json:"imageUrl,omitempty"`
	ParentID       *string           `json:"parentId,omitempty"`
	IsFolder       bool              `json:"isFolder"`
	DeletionMark   bool              `json:"deletionMark"`
	Version        int               `json:"version"`
	Attributes     entity.Attributes `json:"attributes,omitempty"`
}

// FromProduct creates response DTO from domain entity.
func FromProduct(p *product.Product) *ProductResponse {
	return &ProductResponse{
		ID:             p.ID.String(),
		Code:           p.Code,
		Name:           p.Name,
		DepartmentID:   p.DepartmentID,
		SegmentID:      p.SegmentID,
		SalePrice:      p.SalePrice,
		ActiveRecipeID: p.ActiveRecipeID,
		Description:    p.Description,
		ImageURL:       p.ImageURL,
		ParentID:       p.ParentID,
		IsFolder:       p.IsFolder,
		DeletionMark:   p.DeletionMark,
		Version:        p.Version,
		Attributes:     p.Attributes,
	}
}
