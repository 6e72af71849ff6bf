// Package sale_batch provides the SaleBatch document repository.
package sale_batch

import (
	"context"

	"treefnio/internal/core/id"
	"treefnio/internal/domain"
)

// Repository defines operations for sale batch documents.
type Repository interface {
	// CRUD operations
	Create(ctx context.Context, doc *SaleBatch) error
	GetByID(ctx context.Context, docID id.ID) (*SaleBatch, error)
	GetByNumber(ctx context.Context, number string) (*SaleBatch, error)
	Update(ctx context.Context, doc *SaleBatch) error
	Delete(ctx context.Context, docID id.ID) error

	// Line operations
	GetLines(ctx context.Context, docID id.ID) ([]SaleEntry, error)
	SaveLines(ctx context.Context, docID id.ID, lines []SaleEntry) error

	// List operations
	List(ctx context.Context, filter ListFilter) (domain.ListResult[*SaleBatch], error)

	// GetByIDs retrieves the batches in the given id set (without lines).
	GetByIDs(ctx context.Context, ids []id.ID) ([]*SaleBatch, error)

	// Locking
	GetForUpdate(ctx context.Context, docID id.ID) (*SaleBatch, error)
}

// ListFilter for filtering sale batches.
type ListFilter struct {
	domain.ListFilter

	// Shamsi date bounds (inclusive, applied to batch start date)
	DateFrom string
	DateTo   string
}
