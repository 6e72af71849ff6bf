package recipes

import (
	"context"
	"fmt"
	"time"

	"treefnio/internal/core/id"
	"treefnio/internal/core/tx"
	"treefnio/internal/domain"
	"treefnio/pkg/logger"
	"treefnio/pkg/numerator"
)

// Service provides business operations for recipes.
type Service struct {
	repo      Repository
	txManager tx.Manager
	numerator *numerator.Service
	hooks     *domain.HookRegistry[*Recipe]
}

// NewService creates a new recipe service.
func NewService(
	repo Repository,
	txManager tx.Manager,
	numerator *numerator.Service,
) *Service {
	return &Service{
		repo:      repo,
		txManager: txManager,
		numerator: numerator,
		hooks:     domain.NewHookRegistry[*Recipe](),
	}
}

// Hooks returns the hook registry for registering callbacks.
func (s *Service) Hooks() *domain.HookRegistry[*Recipe] {
	return s.hooks
}

// Create creates a new recipe with its lines.
func (s *Service) Create(ctx context.Context, recipe *Recipe) error {
	if err := s.hooks.RunBeforeCreate(ctx, recipe); err != nil {
		return err
	}

	if err := recipe.Validate(ctx); err != nil {
		return err
	}

	// Generate code if empty
	if recipe.Code == "" {
		code, err := s.numerator.GetNextNumber(ctx, numerator.DefaultConfig("RC"), nil, time.Now())
		if err != nil {
			return fmt.Errorf("generate code: %w", err)
		}
		recipe.Code = code
	}

	err := s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		if err := s.repo.Create(ctx, recipe); err != nil {
			return fmt.Errorf("create recipe: %w", err)
		}
		if err := s.repo.SaveLines(ctx, recipe.ID, recipe.Lines); err != nil {
			return fmt.Errorf("save lines: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	_ = s.hooks.RunAfterCreate(ctx, recipe)

	logger.Info(ctx, "recipe created",
		"id", recipe.ID,
		"product_id", recipe.ProductID)

	return nil
}

// GetByID retrieves a recipe with lines.
func (s *Service) GetByID(ctx context.Context, recipeID id.ID) (*Recipe, error) {
	recipe, err := s.repo.GetByID(ctx, recipeID)
	if err != nil {
		return nil, err
	}

	lines, err := s.repo.GetLines(ctx, recipeID)
	if err != nil {
		return nil, fmt.Errorf("get lines: %w", err)
	}
	recipe.Lines = lines

	return recipe, nil
}

// Update updates a recipe and replaces its lines.
func (s *Service) Update(ctx context.Context, recipe *Recipe) error {
	if err := s.hooks.RunBeforeUpdate(ctx, recipe); err != nil {
		return err
	}

	if err := recipe.Validate(ctx); err != nil {
		return err
	}

	return s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		if err := s.repo.Update(ctx, recipe); err != nil {
			return fmt.Errorf("update recipe: %w", err)
		}
		if err := s.repo.SaveLines(ctx, recipe.ID, recipe.Lines); err != nil {
			return fmt.Errorf("save lines: %w", err)
		}
		return nil
	})
}

// Delete soft-deletes a recipe.
func (s *Service) Delete(ctx context.Context, recipeID id.ID) error {
	recipe, err := s.repo.GetByID(ctx, recipeID)
	if err != nil {
		return err
	}

	if err := s.hooks.RunBeforeDelete(ctx, recipe); err != nil {
		return err
	}

	return s.repo.Delete(ctx, recipeID)
}

// List retrieves recipes with filtering.
func (s *Service) List(ctx context.Context, filter domain.ListFilter) (domain.ListResult[*Recipe], error) {
	return s.repo.List(ctx, filter)
}

// ListByProduct retrieves all recipes for a product (with lines).
func (s *Service) ListByProduct(ctx context.Context, productID id.ID) ([]*Recipe, error) {
	list, err := s.repo.ListByProduct(ctx, productID)
	if err != nil {
		return nil, err
	}
	for _, r := range list {
		lines, err := s.repo.GetLines(ctx, r.ID)
		if err != nil {
			return nil, fmt.Errorf("get lines: %w", err)
		}
		r.Lines = lines
	}
	return list, nil
}
