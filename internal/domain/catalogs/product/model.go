// Package product provides the Product catalog.
// Products are sellable menu items. Each product may reference a department,
// a market segment, and an active recipe used for cost calculation.
package product

import (
	"context"

	"treefnio/internal/core/apperror"
	"treefnio/internal/core/entity"
	"treefnio/internal/core/types"
)

// Product represents a sellable menu item.
type Product struct {
	entity.Catalog

	// DepartmentID links the product to a department (nullable).
	// Products without a department fall into the unknown bucket in reports.
	DepartmentID *string `db:"department_id" json:"departmentId,omitempty"`

	// SegmentID links the product to a market segment (nullable)
	SegmentID *string `db:"segment_id" json:"segmentId,omitempty"`

	// SalePrice is the default menu price
	SalePrice types.Money `db:"sale_price" json:"salePrice"`

	// ActiveRecipeID points to the recipe used for costing (nullable)
	ActiveRecipeID *string `db:"active_recipe_id" json:"activeRecipeId,omitempty"`

	// Description is a free-form note
	Description *string `db:"description" json:"description,omitempty"`

	// ImageURL is the item image URL
	ImageURL *string `db:"image_url" json:"imageUrl,omitempty"`
}

// NewProduct creates a new Product with required fields.
func NewProduct(code, name string) *Product {
	return &Product{
		Catalog:   entity.NewCatalog(code, name),
		SalePrice: types.Zero(),
	}
}

// Validate implements entity.Validatable interface.
func (p *Product) Validate(ctx context.Context) error {
	// Base catalog validation
	if err := p.Catalog.Validate(ctx); err != nil {
		return err
	}

	// Sale price must be non-negative
	if p.SalePrice.IsNegative() {
		return apperror.NewValidation("sale price cannot be negative").
			WithDetail("field", "salePrice")
	}

	return nil
}

// HasDepartment returns true if the product is assigned to a department.
func (p *Product) HasDepartment() bool {
	return p.DepartmentID != nil && *p.DepartmentID != ""
}

// HasSegment returns true if the product is assigned to a segment.
func (p *Product) HasSegment() bool {
	return p.SegmentID != nil && *p.SegmentID != ""
}

// HasActiveRecipe returns true if the product has a recipe selected for costing.
func (p *Product) HasActiveRecipe() bool {
	return p.ActiveRecipeID != nil && *p.ActiveRecipeID != ""
}
