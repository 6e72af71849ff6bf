package product

import (
	"context"

	"treefnio/internal/core/id"
	"treefnio/internal/domain"
)

// Repository defines the interface for Product persistence.
type Repository interface {
	domain.CatalogRepository[*Product]

	// FindByName retrieves product by exact name.
	FindByName(ctx context.Context, name string) (*Product, error)

	// GetForUpdate retrieves product with row lock.
	GetForUpdate(ctx context.Context, id id.ID) (*Product, error)

	// ListByDepartment retrieves products assigned to a department.
	ListByDepartment(ctx context.Context, departmentID id.ID) ([]*Product, error)
}
