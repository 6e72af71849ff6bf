// Package department provides the Department catalog.
// Departments group products for sales reporting (e.g., kitchen, bar, bakery).
package department

import (
	"context"

	"treefnio/internal/core/entity"
)

// Department represents a production or sales department.
type Department struct {
	entity.Catalog

	// Description is a free-form note
	Description *string `db:"description" json:"description,omitempty"`

	// SortOrder controls display ordering in reports
	SortOrder int `db:"sort_order" json:"sortOrder"`
}

// NewDepartment creates a new Department with required fields.
func NewDepartment(code, name string) *Department {
	return &Department{
		Catalog: entity.NewCatalog(code, name),
	}
}

// Validate implements entity.Validatable interface.
func (d *Department) Validate(ctx context.Context) error {
	return d.Catalog.Validate(ctx)
}
