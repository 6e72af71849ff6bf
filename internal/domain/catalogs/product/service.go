package product

import (
	"context"
	"fmt"
	"time"

	"treefnio/internal/core/apperror"
	"treefnio/internal/core/id"
	"treefnio/internal/core/tx"
	"treefnio/internal/domain"
	"treefnio/pkg/numerator"
)

// Service provides business logic for Product catalog.
// Uses composition with domain.CatalogService for common CRUD operations.
type Service struct {
	*domain.CatalogService[*Product]
	repo      Repository
	txManager tx.Manager
	numerator *numerator.Service
}

// NewService creates a new Product service.
func NewService(
	repo Repository,
	txManager tx.Manager,
	numerator *numerator.Service,
) *Service {
	base := domain.NewCatalogService(domain.CatalogServiceConfig[*Product]{
		Repo:       repo,
		TxManager:  txManager,
		Numerator:  numerator,
		EntityName: "product",
	})

	svc := &Service{
		CatalogService: base,
		repo:           repo,
		txManager:      txManager,
		numerator:      numerator,
	}

	base.Hooks().OnBeforeCreate(svc.prepareForCreate)
	base.Hooks().OnBeforeUpdate(svc.checkNameUnique)

	return svc
}

// prepareForCreate handles code generation and uniqueness checks.
func (s *Service) prepareForCreate(ctx context.Context, prod *Product) error {
	if prod.Code == "" {
		code, err := s.numerator.GetNextNumber(ctx, numerator.DefaultConfig("PR"), nil, time.Now())
		if err != nil {
			return fmt.Errorf("generate code: %w", err)
		}
		prod.Code = code
	}

	return s.checkNameUnique(ctx, prod)
}

// checkNameUnique rejects duplicate product names.
// Sales import reconciles rows against products by name, so names must be unique.
func (s *Service) checkNameUnique(ctx context.Context, prod *Product) error {
	if exists, _ := s.nameExists(ctx, prod.Name, prod.ID); exists {
		return apperror.NewConflict("product with this name already exists").
			WithDetail("name", prod.Name)
	}
	return nil
}

// FindByName retrieves product by exact name.
func (s *Service) FindByName(ctx context.Context, name string) (*Product, error) {
	return s.repo.FindByName(ctx, name)
}

// ListByDepartment retrieves products assigned to a department.
func (s *Service) ListByDepartment(ctx context.Context, departmentID id.ID) ([]*Product, error) {
	return s.repo.ListByDepartment(ctx, departmentID)
}

// SetActiveRecipe selects the recipe used for cost calculation.
// Passing nil clears the selection.
func (s *Service) SetActiveRecipe(ctx context.Context, productID id.ID, recipeID *id.ID) error {
	return s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		prod, err := s.repo.GetForUpdate(ctx, productID)
		if err != nil {
			return err
		}
		if recipeID == nil {
			prod.ActiveRecipeID = nil
		} else {
			rid := recipeID.String()
			prod.ActiveRecipeID = &rid
		}
		if err := s.repo.Update(ctx, prod); err != nil {
			return fmt.Errorf("set active recipe: %w", err)
		}
		return nil
	})
}

func (s *Service) nameExists(ctx context.Context, name string, excludeID id.ID) (bool, error) {
	existing, err := s.repo.FindByName(ctx, name)
	if err != nil {
		return false, nil
	}
	return existing.ID != excludeID, nil
}
