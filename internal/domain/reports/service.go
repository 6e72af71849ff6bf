package reports

import (
	"context"
	"fmt"

	"treefnio/internal/core/apperror"
	"treefnio/internal/core/id"
	"treefnio/internal/domain/documents/sale_batch"
	"treefnio/pkg/shamsi"
)

// Service provides report generation operations.
type Service struct {
	repo   Repository
	engine *Engine
}

// NewService creates a new reports service.
func NewService(repo Repository, engine *Engine) *Service {
	if engine == nil {
		engine = NewEngine(nil)
	}
	return &Service{repo: repo, engine: engine}
}

// GetSalesHistory returns all sale batches with entries.
func (s *Service) GetSalesHistory(ctx context.Context) ([]*sale_batch.SaleBatch, error) {
	return s.repo.GetSalesHistory(ctx)
}

// GetSalesReport aggregates batches whose date falls within the inclusive
// Shamsi range [start, end].
func (s *Service) GetSalesReport(ctx context.Context, start, end string) (*SalesReport, error) {
	if !shamsi.IsValid(start) {
		return nil, apperror.NewValidation("start is not a valid shamsi date").
			WithDetail("field", "start").
			WithDetail("value", start)
	}
	if !shamsi.IsValid(end) {
		return nil, apperror.NewValidation("end is not a valid shamsi date").
			WithDetail("field", "end").
			WithDetail("value", end)
	}
	if shamsi.CompareStrings(start, end) > 0 {
		return nil, apperror.NewValidation("start is after end").
			WithDetail("field", "start")
	}

	batches, err := s.repo.GetSalesHistory(ctx)
	if err != nil {
		return nil, fmt.Errorf("get sales history: %w", err)
	}

	return s.engine.AggregateRange(batches, start, end), nil
}

// GetSalesReportForBatches aggregates only the explicitly selected batches.
// An empty selection yields an empty report, not the full history.
func (s *Service) GetSalesReportForBatches(ctx context.Context, batchIDs []string) (*SalesReport, error) {
	if len(batchIDs) == 0 {
		return NewSalesReport(TimeRange{}), nil
	}

	batches, err := s.fetchSelection(ctx, batchIDs)
	if err != nil {
		return nil, err
	}

	return s.engine.AggregateSelection(batches, batchIDs), nil
}

// GetBostonData classifies the products of the selected batches into the
// BCG matrix. Selection is mandatory - an empty set yields no rows.
func (s *Service) GetBostonData(ctx context.Context, batchIDs []string) ([]BostonData, error) {
	if len(batchIDs) == 0 {
		return []BostonData{}, nil
	}

	batches, err := s.fetchSelection(ctx, batchIDs)
	if err != nil {
		return nil, err
	}

	report := s.engine.AggregateSelection(batches, batchIDs)
	return ClassifyBoston(batches, report.Overall.TotalRevenue), nil
}

func (s *Service) fetchSelection(ctx context.Context, batchIDs []string) ([]*sale_batch.SaleBatch, error) {
	ids := make([]id.ID, 0, len(batchIDs))
	for _, raw := range batchIDs {
		parsed, err := id.Parse(raw)
		if err != nil {
			return nil, apperror.NewValidation("invalid batch id").
				WithDetail("field", "batchIds").
				WithDetail("value", raw)
		}
		ids = append(ids, parsed)
	}

	batches, err := s.repo.GetBatchesByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("get batches: %w", err)
	}
	return batches, nil
}
