package material

import (
	"context"

	"treefnio/internal/core/id"
	"treefnio/internal/domain"
)

// Repository defines the interface for Material persistence.
type Repository interface {
	domain.CatalogRepository[*Material]

	// FindByName retrieves material by exact name.
	FindByName(ctx context.Context, name string) (*Material, error)

	// GetForUpdate retrieves material with row lock.
	GetForUpdate(ctx context.Context, id id.ID) (*Material, error)

	// FindLowStock retrieves materials with stock below minimum.
	FindLowStock(ctx context.Context, filter domain.ListFilter) (domain.ListResult[*Material], error)
}
