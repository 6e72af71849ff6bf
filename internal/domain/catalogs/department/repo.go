package department

import (
	"context"

	"treefnio/internal/domain"
)

// Repository defines the interface for Department persistence.
type Repository interface {
	domain.CatalogRepository[*Department]

	// FindByName retrieves department by exact name.
	FindByName(ctx context.Context, name string) (*Department, error)
}
