package material

import (
	"context"
	"fmt"
	"time"

	"treefnio/internal/core/apperror"
	"treefnio/internal/core/id"
	"treefnio/internal/core/tx"
	"treefnio/internal/core/types"
	"treefnio/internal/domain"
	"treefnio/pkg/numerator"
)

// Service provides business logic for Material catalog.
// Uses composition with domain.CatalogService for common CRUD operations.
type Service struct {
	*domain.CatalogService[*Material]
	repo      Repository
	txManager tx.Manager
	numerator *numerator.Service
}

// NewService creates a new Material service.
func NewService(
	repo Repository,
	txManager tx.Manager,
	numerator *numerator.Service,
) *Service {
	base := domain.NewCatalogService(domain.CatalogServiceConfig[*Material]{
		Repo:       repo,
		TxManager:  txManager,
		Numerator:  numerator,
		EntityName: "material",
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
func (s *Service) prepareForCreate(ctx context.Context, mat *Material) error {
	if mat.Code == "" {
		code, err := s.numerator.GetNextNumber(ctx, numerator.DefaultConfig("MT"), nil, time.Now())
		if err != nil {
			return fmt.Errorf("generate code: %w", err)
		}
		mat.Code = code
	}

	return s.checkNameUnique(ctx, mat)
}

// checkNameUnique rejects duplicate material names.
// Recipe costing resolves materials by reference, but CSV import matches by name.
func (s *Service) checkNameUnique(ctx context.Context, mat *Material) error {
	if exists, _ := s.nameExists(ctx, mat.Name, mat.ID); exists {
		return apperror.NewConflict("material with this name already exists").
			WithDetail("name", mat.Name)
	}
	return nil
}

// FindByName retrieves material by exact name.
func (s *Service) FindByName(ctx context.Context, name string) (*Material, error) {
	return s.repo.FindByName(ctx, name)
}

// FindLowStock retrieves materials with stock below minimum.
func (s *Service) FindLowStock(ctx context.Context, filter domain.ListFilter) (domain.ListResult[*Material], error) {
	return s.repo.FindLowStock(ctx, filter)
}

// UpdatePrice updates the purchase price under a row lock.
func (s *Service) UpdatePrice(ctx context.Context, materialID id.ID, price types.Money) error {
	if price.IsNegative() {
		return apperror.NewValidation("price cannot be negative").
			WithDetail("field", "price")
	}

	return s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		mat, err := s.repo.GetForUpdate(ctx, materialID)
		if err != nil {
			return err
		}
		mat.Price = price
		if err := s.repo.Update(ctx, mat); err != nil {
			return fmt.Errorf("update material price: %w", err)
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
