package segment

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

// Service provides business logic for Segment catalog.
type Service struct {
	*domain.CatalogService[*Segment]
	repo      Repository
	numerator *numerator.Service
}

// NewService creates a new Segment service.
func NewService(
	repo Repository,
	txManager tx.Manager,
	numerator *numerator.Service,
) *Service {
	base := domain.NewCatalogService(domain.CatalogServiceConfig[*Segment]{
		Repo:       repo,
		TxManager:  txManager,
		Numerator:  numerator,
		EntityName: "segment",
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
func (s *Service) prepareForCreate(ctx context.Context, seg *Segment) error {
	if seg.Code == "" {
		code, err := s.numerator.GetNextNumber(ctx, numerator.DefaultConfig("SG"), nil, time.Now())
		if err != nil {
			return fmt.Errorf("generate code: %w", err)
		}
		seg.Code = code
	}

	return s.checkNameUnique(ctx, seg)
}

// checkNameUnique rejects duplicate segment names.
func (s *Service) checkNameUnique(ctx context.Context, seg *Segment) error {
	if exists, _ := s.nameExists(ctx, seg.Name, seg.ID); exists {
		return apperror.NewConflict("segment with this name already exists").
			WithDetail("name", seg.Name)
	}
	return nil
}

// FindByName retrieves segment by exact name.
func (s *Service) FindByName(ctx context.Context, name string) (*Segment, error) {
	return s.repo.FindByName(ctx, name)
}

func (s *Service) nameExists(ctx context.Context, name string, excludeID id.ID) (bool, error) {
	existing, err := s.repo.FindByName(ctx, name)
	if err != nil {
		return false, nil
	}
	return existing.ID != excludeID, nil
}
