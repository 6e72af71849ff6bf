// Package sale_batch provides the SaleBatch document service.
package sale_batch

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"treefnio/internal/core/id"
	"treefnio/internal/core/tx"
	"treefnio/internal/core/types"
	"treefnio/internal/domain"
	"treefnio/internal/domain/audit"
	"treefnio/internal/domain/posting"
	"treefnio/pkg/logger"
	"treefnio/pkg/numerator"
)

// ProductInfo is a resolved product reference used to denormalize entries.
type ProductInfo struct {
	Name       string
	Code       string
	Department string
	Segment    string

	// UnitCost is the per-portion material cost from the active recipe
	UnitCost types.Money
}

// ProductResolver resolves product references at batch write time.
type ProductResolver interface {
	Resolve(ctx context.Context, productID string) (*ProductInfo, error)
}

// ConsumptionResolver expands a product into the material quantities its
// active recipe consumes for the given number of portions.
type ConsumptionResolver interface {
	ConsumptionFor(ctx context.Context, productID string, portions types.Quantity) ([]MaterialConsumption, error)
}

// Service provides business operations for sale batch documents.
type Service struct {
	repo          Repository
	resolver      ProductResolver
	consumption   ConsumptionResolver
	postingEngine *posting.Engine
	numerator     *numerator.Service
	txManager     tx.Manager
	hooks         *domain.HookRegistry[*SaleBatch]
}

// NewService creates a new sale batch service.
func NewService(
	repo Repository,
	resolver ProductResolver,
	consumption ConsumptionResolver,
	postingEngine *posting.Engine,
	numeratorSvc *numerator.Service,
	txManager tx.Manager,
) *Service {
	svc := &Service{
		repo:          repo,
		resolver:      resolver,
		consumption:   consumption,
		postingEngine: postingEngine,
		numerator:     numeratorSvc,
		txManager:     txManager,
		hooks:         domain.NewHookRegistry[*SaleBatch](),
	}

	svc.hooks.OnBeforeCreate(func(ctx context.Context, doc *SaleBatch) error {
		return audit.EnrichCreatedBy(ctx, doc)
	})
	svc.hooks.OnBeforeUpdate(func(ctx context.Context, doc *SaleBatch) error {
		return audit.EnrichUpdatedBy(ctx, doc)
	})

	return svc
}

// Hooks returns the hook registry for registering callbacks.
func (s *Service) Hooks() *domain.HookRegistry[*SaleBatch] {
	return s.hooks
}

// enrichLines fills denormalized product references and material costs.
// Lines whose product cannot be resolved keep their imported values - reports
// bucket them under the unknown key instead of dropping them.
func (s *Service) enrichLines(ctx context.Context, doc *SaleBatch) {
	if s.resolver == nil {
		return
	}

	for i := range doc.Lines {
		line := &doc.Lines[i]
		if line.ProductID == nil || *line.ProductID == "" {
			continue
		}

		info, err := s.resolver.Resolve(ctx, *line.ProductID)
		if err != nil {
			logger.Warn(ctx, "sale entry product not resolvable",
				"product_id", *line.ProductID,
				"line_no", line.LineNo)
			continue
		}

		line.ProductName = info.Name
		line.ProductCode = info.Code
		line.SaleDepartment = info.Department
		line.ProductionSegment = info.Segment

		if line.MaterialCost.IsZero() {
			qty := decimal.NewFromFloat(line.Quantity.Float64())
			line.MaterialCost = info.UnitCost.Mul(qty)
		}
	}
}

// Create creates a new sale batch with its entries.
// Entry material costs are computed here, at import time, and stored.
func (s *Service) Create(ctx context.Context, doc *SaleBatch) error {
	if err := s.hooks.RunBeforeCreate(ctx, doc); err != nil {
		return err
	}

	s.enrichLines(ctx, doc)
	doc.RecalculateTotals()

	if err := doc.Validate(ctx); err != nil {
		return err
	}

	// Generate number if empty
	if doc.Number == "" {
		number, err := s.numerator.GetNextNumber(ctx, numerator.DefaultConfig("SB"), &numerator.Options{Strategy: NumeratorStrategy}, time.Now())
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

	_ = s.hooks.RunAfterCreate(ctx, doc)

	logger.Info(ctx, "sale batch created",
		"id", doc.ID,
		"number", doc.Number,
		"entries", len(doc.Lines))

	return nil
}

// GetByID retrieves a sale batch with entries.
func (s *Service) GetByID(ctx context.Context, docID id.ID) (*SaleBatch, error) {
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

// Update replaces a sale batch wholesale (document fields and all entries).
func (s *Service) Update(ctx context.Context, doc *SaleBatch) error {
	if err := s.hooks.RunBeforeUpdate(ctx, doc); err != nil {
		return err
	}

	if err := doc.CanModify(); err != nil {
		return err
	}

	s.enrichLines(ctx, doc)
	doc.RecalculateTotals()

	if err := doc.Validate(ctx); err != nil {
		return err
	}

	err := s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		if err := s.repo.Update(ctx, doc); err != nil {
			return fmt.Errorf("update document: %w", err)
		}
		if err := s.repo.SaveLines(ctx, doc.ID, doc.Lines); err != nil {
			return fmt.Errorf("save lines: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	_ = s.hooks.RunAfterUpdate(ctx, doc)
	return nil
}

// Delete soft-deletes a sale batch. Posted batches must be unposted first.
func (s *Service) Delete(ctx context.Context, docID id.ID) error {
	doc, err := s.repo.GetByID(ctx, docID)
	if err != nil {
		return err
	}

	if doc.Posted {
		return doc.CanModify()
	}

	if err := s.hooks.RunBeforeDelete(ctx, doc); err != nil {
		return err
	}

	return s.repo.Delete(ctx, docID)
}

// computeConsumption aggregates recipe consumption across entries and
// stores it on the document for movement generation. Entries without a
// resolvable product consume nothing from the register.
func (s *Service) computeConsumption(ctx context.Context, doc *SaleBatch) {
	if s.consumption == nil {
		doc.SetConsumption(nil)
		return
	}

	totals := make(map[id.ID]*MaterialConsumption)
	order := make([]id.ID, 0)

	for _, line := range doc.Lines {
		if line.ProductID == nil || *line.ProductID == "" {
			continue
		}

		items, err := s.consumption.ConsumptionFor(ctx, *line.ProductID, line.Quantity)
		if err != nil {
			logger.Warn(ctx, "sale entry consumption not resolvable",
				"product_id", *line.ProductID,
				"line_no", line.LineNo)
			continue
		}

		for _, item := range items {
			total, ok := totals[item.MaterialID]
			if !ok {
				total = &MaterialConsumption{MaterialID: item.MaterialID}
				totals[item.MaterialID] = total
				order = append(order, item.MaterialID)
			}
			total.Quantity += item.Quantity
			total.Amount = total.Amount.Add(item.Amount)
		}
	}

	aggregated := make([]MaterialConsumption, 0, len(order))
	for _, materialID := range order {
		aggregated = append(aggregated, *totals[materialID])
	}
	doc.SetConsumption(aggregated)
}

// Post expands the batch's entries into material consumption and records
// expense movements on the stock register.
func (s *Service) Post(ctx context.Context, docID id.ID) error {
	doc, err := s.GetByID(ctx, docID)
	if err != nil {
		return err
	}

	s.computeConsumption(ctx, doc)

	updateDoc := func(ctx context.Context) error {
		return s.repo.Update(ctx, doc)
	}

	return s.postingEngine.Post(ctx, doc, updateDoc)
}

// Unpost reverses the batch's stock movements.
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

// PostAndSave creates (or updates) the batch and posts it atomically.
func (s *Service) PostAndSave(ctx context.Context, doc *SaleBatch) error {
	s.enrichLines(ctx, doc)
	doc.RecalculateTotals()

	if err := doc.Validate(ctx); err != nil {
		return err
	}

	if doc.Number == "" {
		number, err := s.numerator.GetNextNumber(ctx, numerator.DefaultConfig("SB"), &numerator.Options{Strategy: NumeratorStrategy}, time.Now())
		if err != nil {
			return fmt.Errorf("generate number: %w", err)
		}
		doc.Number = number
	}

	s.computeConsumption(ctx, doc)

	// Decide create-vs-update before the engine mutates the document.
	isNew := doc.Version == 1

	updateDoc := func(ctx context.Context) error {
		if isNew {
			if err := s.repo.Create(ctx, doc); err != nil {
				return err
			}
			return s.repo.SaveLines(ctx, doc.ID, doc.Lines)
		}
		if err := s.repo.Update(ctx, doc); err != nil {
			return err
		}
		return s.repo.SaveLines(ctx, doc.ID, doc.Lines)
	}

	return s.postingEngine.Post(ctx, doc, updateDoc)
}

// List retrieves sale batches with filtering.
func (s *Service) List(ctx context.Context, filter ListFilter) (domain.ListResult[*SaleBatch], error) {
	return s.repo.List(ctx, filter)
}

// GetWithLinesByIDs retrieves the selected batches, entries included.
func (s *Service) GetWithLinesByIDs(ctx context.Context, ids []id.ID) ([]*SaleBatch, error) {
	if len(ids) == 0 {
		return []*SaleBatch{}, nil
	}

	docs, err := s.repo.GetByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	for _, doc := range docs {
		lines, err := s.repo.GetLines(ctx, doc.ID)
		if err != nil {
			return nil, fmt.Errorf("get lines: %w", err)
		}
		doc.Lines = lines
	}
	return docs, nil
}
