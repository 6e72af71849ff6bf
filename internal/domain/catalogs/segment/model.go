// Package segment provides the Segment catalog.
// Segments classify products by market positioning (e.g., breakfast, fast food).
package segment

import (
	"context"

	"treefnio/internal/core/entity"
)

// Segment represents a market segment for products.
type Segment struct {
	entity.Catalog

	// Description is a free-form note
	Description *string `db:"description" json:"description,omitempty"`

	// SortOrder controls display ordering in reports
	SortOrder int `db:"sort_order" json:"sortOrder"`
}

// NewSegment creates a new Segment with required fields.
func NewSegment(code, name string) *Segment {
	return &Segment{
		Catalog: entity.NewCatalog(code, name),
	}
}

// Validate implements entity.Validatable interface.
func (s *Segment) Validate(ctx context.Context) error {
	return s.Catalog.Validate(ctx)
}
