// Package material_receipt provides the MaterialReceipt document service.
package material_receipt

import (
	"context"
	"fmt"
	"time"

	"treefnio/internal/core/id"
	"treefnio/internal/core/tx"
	"treefnio/internal/domain"
	"treefnio/internal/domain/audit"
	"treefnio/internal/domain/posting"
	"treefnio/pkg/logger"
	"treefnio/pkg/numerator"
)

// Service provides business operations for material receipt documents.
type Service struct {
	repo          Repository
	postingEngine *posting.Engine
	numerator     *numerator.Service
	txManager     tx.Manager
	hooks         *domain.HookRegistry[*MaterialReceipt]
}

// NewService creates a new material receipt service.
func NewService(
	repo Repository,
	postingEngine *posting.Engine,
	numeratorSvc *numerator.Service,
	txManager tx.Manager,
) *Service {
	svc := &Service{
		repo:          repo,
		postingEngine: postingEngine,
		numerator:     numeratorSvc,
		txManager:     txManager,
		hooks:         domain.NewHookRegistry[*MaterialReceipt](),
	}

	svc.hooks.OnBeforeCreate(func(ctx context.Context, doc *MaterialReceipt) error {
		return audit.EnrichCreatedBy(ctx, doc)
	})
	svc.hooks.OnBeforeUpdate(func(ctx context.Context, doc *MaterialReceipt) error {
		return audit.EnrichUpdatedBy(ctx, doc)
	})

	return svc
}

// Hooks returns the hook registry for registering callbacks.
func (s *Service) Hooks() *domain.HookRegistry[*MaterialReceipt] {
	return s.hooks
}

// Create creates a new material receipt document.
func (s *Service) Create(ctx context.Context, doc *MaterialReceipt) error {
	if err := s.hooks.RunBeforeCreate(ctx, doc); err != nil {
		return err
	}

	if err := doc.Validate(ctx); err != nil {
		return err
	}

	// Generate number if empty
	if doc.Number == "" {
		cfg := numerator.DefaultConfig("MR")
		number, err := s.numerator.GetNextNumber(ctx, cfg, &numerator.Options{Strategy: NumeratorStrategy}, time.Now())
		if err != nil {
			return fmt.Errorf("generate number: %w", err)
		}
		doc.Number = number
	}

	err := s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		if err := s.repo.Create(ctx, doc); err != nil {
			return fmt.Errorf("create document: %w", err)
		}
		if err := s.repo.SaveLines(ctx, doc.ID, doc.Lines); err != nil {
			return fmt.Errorf("save lines: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	if err := s.hooks.RunAfterCreate(ctx, doc); err != nil {
		logger.Warn(ctx, "after-create hook failed", "error", err)
	}

	logger.Info(ctx, "material receipt created",
		"id", doc.ID,
		"number", doc.Number)

	return nil
}

// GetByID retrieves a material receipt with lines.
func (s *Service) GetByID(ctx context.Context, docID id.ID) (*MaterialReceipt, error) {
	doc, err := s.repo.GetByID(ctx, docID)
	if err != nil {
		return nil, err
	}

	lines, err := s.repo.GetLines(ctx, docID)
	if err != nil {
		return nil, fmt.Errorf("get lines: %w", err)
	}
	doc.Lines = lines

	return doc, nil
}

// Update updates a material receipt document.
func (s *Service) Update(ctx context.Context, doc *MaterialReceipt) error {
	if err := s.hooks.RunBeforeUpdate(ctx, doc); err != nil {
		return err
	}

	if err := doc.CanModify(); err != nil {
		return err
	}

	if err := doc.Validate(ctx); err != nil {
		return err
	}

	return s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		if err := s.repo.Update(ctx, doc); err != nil {
			return fmt.Errorf("update document: %w", err)
		}
		if err := s.repo.SaveLines(ctx, doc.ID, doc.Lines); err != nil {
			return fmt.Errorf("save lines: %w", err)
		}
		return nil
	})
}

// Delete soft-deletes a material receipt. Posted documents must be unposted first.
func (s *Service) Delete(ctx context.Context, docID id.ID) error {
	doc, err := s.repo.GetByID(ctx, docID)
	if err != nil {
		return err
	}

	if doc.Posted {
		return doc.CanModify()
	}

	return s.repo.Delete(ctx, docID)
}

// Post records document movements to the stock register.
func (s *Service) Post(ctx context.Context, docID id.ID) error {
	doc, err := s.GetByID(ctx, docID)
	if err != nil {
		return err
	}

	updateDoc := func(ctx context.Context) error {
		return s.repo.Update(ctx, doc)
	}

	return s.postingEngine.Post(ctx, doc, updateDoc)
}

// Unpost reverses document movements.
func (s *Service) Unpost(ctx context.Context, docID id.ID) error {
	doc, err := s.GetByID(ctx, docID)
	if err != nil {
		return err
	}

	updateDoc := func(ctx context.Context) error {
		return s.repo.Update(ctx, doc)
	}

	return s.postingEngine.Unpost(ctx, doc, updateDoc)
}

// PostAndSave posts the document and saves changes atomically.
// Used when creating and posting in one operation.
func (s *Service) PostAndSave(ctx context.Context, doc *MaterialReceipt) error {
	if err := doc.Validate(ctx); err != nil {
		return err
	}

	if doc.Number == "" {
		cfg := numerator.DefaultConfig("MR")
		number, err := s.numerator.GetNextNumber(ctx, cfg, &numerator.Options{Strategy: NumeratorStrategy}, time.Now())
		if err != nil {
			return fmt.Errorf("generate number: %w", err)
		}
		doc.Number = number
	}

	// Decide create-vs-update before the engine mutates the document.
	isNew := doc.Version == 1

	updateDoc := func(ctx context.Context) error {
		if isNew {
			if err := s.repo.Create(ctx, doc); err != nil {
				return err
			}
			return s.repo.SaveLines(ctx, doc.ID, doc.Lines)
		}
		return s.repo.Update(ctx, doc)
	}

	return s.postingEngine.Post(ctx, doc, updateDoc)
}

// List retrieves material receipts with filtering.
func (s *Service) List(ctx context.Context, filter ListFilter) (domain.ListResult[*MaterialReceipt], error) {
	return s.repo.List(ctx, filter)
}
