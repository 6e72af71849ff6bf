package recipes

import (
	"context"

	"treefnio/internal/core/id"
	"treefnio/internal/domain"
)

// Repository defines operations for Recipe persistence.
type Repository interface {
	// CRUD operations
	Create(ctx context.Context, recipe *Recipe) error
	GetByID(ctx context.Context, recipeID id.ID) (*Recipe, error)
	Update(ctx context.Context, recipe *Recipe) error
	Delete(ctx context.Context, recipeID id.ID) error

	// Line operations
	GetLines(ctx context.Context, recipeID id.ID) ([]RecipeLine, error)
	SaveLines(ctx context.Context, recipeID id.ID, lines []RecipeLine) error

	// List operations
	List(ctx context.Context, filter domain.ListFilter) (domain.ListResult[*Recipe], error)
	ListByProduct(ctx context.Context, productID id.ID) ([]*Recipe, error)
}
