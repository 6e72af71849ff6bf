package catalog_repo

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	"treefnio/internal/core/id"
	"treefnio/internal/domain/recipes"
	"treefnio/internal/infrastructure/storage/postgres"
)

const (
	recipeTable      = "cat_recipes"
	recipeLinesTable = "cat_recipe_lines"
)

// RecipeRepo implements recipes.Repository.
// The recipe header is a catalog entity; lines live in a separate table part.
type RecipeRepo struct {
	*BaseCatalogRepo[*recipes.Recipe]
}

// NewRecipeRepo creates a new recipe repository.
func NewRecipeRepo(txm *postgres.TxManager) *RecipeRepo {
	return &RecipeRepo{
		BaseCatalogRepo: NewBaseCatalogRepo(
			txm,
			recipeTable,
			postgres.ExtractDBColumns[recipes.Recipe](),
			func() *recipes.Recipe { return &recipes.Recipe{} },
		),
	}
}

// Delete marks the recipe as deleted. Lines are kept for history.
func (r *RecipeRepo) Delete(ctx context.Context, recipeID id.ID) error {
	return r.SetDeletionMark(ctx, recipeID, true)
}

// GetLines retrieves lines for a recipe.
func (r *RecipeRepo) GetLines(ctx context.Context, recipeID id.ID) ([]recipes.RecipeLine, error) {
	q := r.Builder().
		Select("line_id", "line_no", "material_id", "quantity").
		From(recipeLinesTable).
		Where(squirrel.Eq{"recipe_id": recipeID}).
		OrderBy("line_no")

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var lines []recipes.RecipeLine
	if err := pgxscan.Select(ctx, r.querier(ctx), &lines, sql, args...); err != nil {
		return nil, fmt.Errorf("get lines: %w", err)
	}

	return lines, nil
}

// SaveLines saves lines for a recipe (delete existing + insert new).
func (r *RecipeRepo) SaveLines(ctx context.Context, recipeID id.ID, lines []recipes.RecipeLine) error {
	querier := r.querier(ctx)

	deleteSQL := "DELETE FROM " + recipeLinesTable + " WHERE recipe_id = $1"
	if _, err := querier.Exec(ctx, deleteSQL, recipeID); err != nil {
		return fmt.Errorf("delete existing lines: %w", err)
	}

	if len(lines) == 0 {
		return nil
	}

	q := r.Builder().
		Insert(recipeLinesTable).
		Columns("line_id", "recipe_id", "line_no", "material_id", "quantity")

	for _, line := range lines {
		q = q.Values(line.LineID, recipeID, line.LineNo, line.MaterialID, line.Quantity)
	}

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build insert lines: %w", err)
	}

	if _, err := querier.Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("insert lines: %w", err)
	}

	return nil
}

// ListByProduct retrieves all recipes for a product (headers only).
func (r *RecipeRepo) ListByProduct(ctx context.Context, productID id.ID) ([]*recipes.Recipe, error) {
	q := r.baseSelect().
		Where(squirrel.Eq{"product_id": productID}).
		Where(squirrel.Eq{"deletion_mark": false}).
		OrderBy("name")

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var items []*recipes.Recipe
	if err := pgxscan.Select(ctx, r.querier(ctx), &items, sql, args...); err != nil {
		return nil, fmt.Errorf("list by product: %w", err)
	}

	return items, nil
}

var _ recipes.Repository = (*RecipeRepo)(nil)
