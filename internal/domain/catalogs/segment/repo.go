package segment

import (
	"context"

	"treefnio/internal/domain"
)

// Repository defines the interface for Segment persistence.
type Repository interface {
	domain.CatalogRepository[*Segment]

	// FindByName retrieves segment by exact name.
	FindByName(ctx context.Context, name string) (*Segment, error)
}
