// Package recipes provides product recipe definition.
// A recipe lists the materials consumed to produce one portion of a product.
// A product may have several recipes; one of them is selected as active for
// cost calculation.
package recipes

import (
	"context"

	"treefnio/internal/core/apperror"
	"treefnio/internal/core/entity"
	"treefnio/internal/core/id"
	"treefnio/internal/core/types"
)

// Recipe represents a bill of materials for a product.
type Recipe struct {
	entity.Catalog

	// ProductID is the product this recipe belongs to
	ProductID id.ID `db:"product_id" json:"productId"`

	// Yield is the number of portions produced by one batch (default 1)
	Yield types.Quantity `db:"yield" json:"yield"`

	// Description is a free-form note (preparation instructions etc.)
	Description *string `db:"description" json:"description,omitempty"`

	// Table part: consumed materials
	Lines []RecipeLine `db:"-" json:"lines"`
}

// RecipeLine represents one consumed material.
type RecipeLine struct {
	// Line identification
	LineID id.ID `db:"line_id" json:"lineId"`
	LineNo int   `db:"line_no" json:"lineNo"`

	// Material reference
	MaterialID id.ID `db:"material_id" json:"materialId"`

	// Quantity consumed per batch
	Quantity types.Quantity `db:"quantity" json:"quantity"`
}

// NewRecipe creates a new Recipe for a product.
func NewRecipe(code, name string, productID id.ID) *Recipe {
	return &Recipe{
		Catalog:   entity.NewCatalog(code, name),
		ProductID: productID,
		Yield:     types.NewQuantityFromFloat64(1),
		Lines:     make([]RecipeLine, 0),
	}
}

// AddLine appends a material line.
func (r *Recipe) AddLine(materialID id.ID, quantity types.Quantity) {
	r.Lines = append(r.Lines, RecipeLine{
		LineID:     id.New(),
		LineNo:     len(r.Lines) + 1,
		MaterialID: materialID,
		Quantity:   quantity,
	})
}

// Validate implements entity.Validatable.
func (r *Recipe) Validate(ctx context.Context) error {
	if err := r.Catalog.Validate(ctx); err != nil {
		return err
	}

	if id.IsNil(r.ProductID) {
		return apperror.NewValidation("product is required").
			WithDetail("field", "productId")
	}

	if !r.Yield.IsPositive() {
		return apperror.NewValidation("yield must be positive").
			WithDetail("field", "yield")
	}

	if len(r.Lines) == 0 {
		return apperror.NewValidation("at least one line is required").
			WithDetail("field", "lines")
	}

	seen := make(map[id.ID]bool, len(r.Lines))
	for i, line := range r.Lines {
		if id.IsNil(line.MaterialID) {
			return apperror.NewValidation("material is required").
				WithDetail("field", "lines").
				WithDetail("lineNo", i+1)
		}
		if !line.Quantity.IsPositive() {
			return apperror.NewValidation("quantity must be positive").
				WithDetail("field", "lines").
				WithDetail("lineNo", i+1)
		}
		if seen[line.MaterialID] {
			return apperror.NewValidation("duplicate material in recipe").
				WithDetail("field", "lines").
				WithDetail("lineNo", i+1)
		}
		seen[line.MaterialID] = true
	}

	return nil
}

// MaterialsPerPortion returns material quantities scaled to a single portion.
func (r *Recipe) MaterialsPerPortion() map[id.ID]types.Quantity {
	out := make(map[id.ID]types.Quantity, len(r.Lines))
	yield := r.Yield.Float64()
	if yield <= 0 {
		yield = 1
	}
	for _, line := range r.Lines {
		out[line.MaterialID] = types.NewQuantityFromFloat64(line.Quantity.Float64() / yield)
	}
	return out
}
