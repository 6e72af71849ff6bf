// Package material_receipt provides the MaterialReceipt document repository.
package material_receipt

import (
	"context"
	"time"

	"treefnio/internal/core/id"
	"treefnio/internal/domain"
)

// Repository defines operations for material receipt documents.
type Repository interface {
	// CRUD operations
	Create(ctx context.Context, doc *MaterialReceipt) error
	GetByID(ctx context.Context, docID id.ID) (*MaterialReceipt, error)
	GetByNumber(ctx context.Context, number string) (*MaterialReceipt, error)
	Update(ctx context.Context, doc *MaterialReceipt) error
	Delete(ctx context.Context, docID id.ID) error

	// Line operations
	GetLines(ctx context.Context, docID id.ID) ([]MaterialReceiptLine, error)
	SaveLines(ctx context.Context, docID id.ID, lines []MaterialReceiptLine) error

	// List operations
	List(ctx context.Context, filter ListFilter) (domain.ListResult[*MaterialReceipt], error)

	// Locking
	GetForUpdate(ctx context.Context, docID id.ID) (*MaterialReceipt, error)
}

// ListFilter for filtering material receipts.
type ListFilter struct {
	domain.ListFilter

	// Document-specific filters
	MaterialID *id.ID
	Posted     *bool
	DateFrom   *time.Time
	DateTo     *time.Time
}
