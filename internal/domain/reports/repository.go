package reports

import (
	"context"

	"treefnio/internal/core/id"
	"treefnio/internal/domain/documents/sale_batch"
)

// Repository defines report data access. Batches come back with their
// entries loaded - the engine aggregates entries, not headers.
type Repository interface {
	// GetSalesHistory returns all non-deleted sale batches with entries.
	GetSalesHistory(ctx context.Context) ([]*sale_batch.SaleBatch, error)

	// GetBatchesByIDs returns the selected batches with entries.
	GetBatchesByIDs(ctx context.Context, ids []id.ID) ([]*sale_batch.SaleBatch, error)
}
