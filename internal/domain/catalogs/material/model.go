// Package material provides the Material catalog.
// Materials are raw ingredients consumed by product recipes.
package material

import (
	"context"

	"treefnio/internal/core/apperror"
	"treefnio/internal/core/entity"
	"treefnio/internal/core/types"
)

// Material represents a raw ingredient.
type Material struct {
	entity.Catalog

	// UnitID is the reference to the unit of measure
	UnitID *string `db:"unit_id" json:"unitId,omitempty"`

	// Price is the current purchase price per unit
	Price types.Money `db:"price" json:"price"`

	// MinStock is the reorder threshold
	MinStock types.Quantity `db:"min_stock" json:"minStock"`

	// Description is a free-form note
	Description *string `db:"description" json:"description,omitempty"`
}

// NewMaterial creates a new Material with required fields.
func NewMaterial(code, name string) *Material {
	return &Material{
		Catalog: entity.NewCatalog(code, name),
		Price:   types.Zero(),
	}
}

// Validate implements entity.Validatable interface.
func (m *Material) Validate(ctx context.Context) error {
	// Base catalog validation
	if err := m.Catalog.Validate(ctx); err != nil {
		return err
	}

	// Price must be non-negative
	if m.Price.IsNegative() {
		return apperror.NewValidation("price cannot be negative").
			WithDetail("field", "price")
	}

	if m.MinStock.IsNegative() {
		return apperror.NewValidation("minimum stock cannot be negative").
			WithDetail("field", "minStock")
	}

	return nil
}
