package department

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

// Service provides business logic for Department catalog.
// Uses composition with domain.CatalogService for common CRUD operations.
type Service struct {
	*domain.CatalogService[*Department]
	repo      Repository
	numerator *numerator.Service
}

// NewService creates a new Department service.
func NewService(
	repo Repository,
	txManager tx.Manager,
	numerator *numerator.Service,
) *Service {
	base := domain.NewCatalogService(domain.CatalogServiceConfig[*Department]{
		Repo:       repo,
		TxManager:  txManager,
		Numerator:  numerator,
		EntityName: "department",
	})

	svc := &Service{
		CatalogService: base,
		repo:           repo,
		numerator:      numerator,
	}

	base.Hooks().OnBeforeCreate(svc.prepareForCreate)
	base.Hooks().OnBeforeUpdate(svc.checkNameUnique)

	return svc
}

// prepareForCreate handles code generation and uniqueness checks.
func (s *Service) prepareForCreate(ctx context.Context, dep *Department) error {
	if dep.Code == "" {
		code, err := s.numerator.GetNextNumber(ctx, numerator.DefaultConfig("DP"), nil, time.Now())
		if err != nil {
			return fmt.Errorf("generate code: %w", err)
		}
		dep.Code = code
	}

	return s.checkNameUnique(ctx, dep)
}

// checkNameUnique rejects duplicate department names.
// Sales rows are bucketed by department name, so duplicates would split totals.
func (s *Service) checkNameUnique(ctx context.Context, dep *Department) error {
	if exists, _ := s.nameExists(ctx, dep.Name, dep.ID); exists {
		return apperror.NewConflict("department with this name already exists").
			WithDetail("name", dep.Name)
	}
	return nil
}

// FindByName retrieves department by exact name.
func (s *Service) FindByName(ctx context.Context, name string) (*Department, error) {
	return s.repo.FindByName(ctx, name)
}

func (s *Service) nameExists(ctx context.Context, name string, excludeID id.ID) (bool, error) {
	existing, err := s.repo.FindByName(ctx, name)
	if err != nil {
		return false, nil
	}
	return existing.ID != excludeID, nil
}
