// Package posting provides the document posting engine.
// Posting records a document's register movements atomically and marks the
// document as posted. Unposting reverses the movements.
package posting

import (
	"context"

	"treefnio/internal/core/apperror"
	"treefnio/internal/core/entity"
	"treefnio/internal/core/id"
	"treefnio/internal/core/tx"
	"treefnio/internal/domain/audit"
	"treefnio/internal/domain/registers/stock"
	"treefnio/pkg/logger"
)

// Postable is implemented by documents that produce register movements.
// entity.Document provides default implementations for everything except
// GetDocumentType and GenerateMovements.
type Postable interface {
	GetID() id.ID
	GetDocumentType() string
	GetPostedVersion() int
	IsPosted() bool
	CanPost(ctx context.Context) error
	MarkPosted()
	MarkUnposted()

	// GenerateMovements produces the movements for the next posting version.
	GenerateMovements(ctx context.Context) (*MovementSet, error)
}

// MovementSet aggregates movements across registers for a single posting.
type MovementSet struct {
	Stock []entity.StockMovement
}

// NewMovementSet creates an empty movement set.
func NewMovementSet() *MovementSet {
	return &MovementSet{}
}

// AddStock appends a stock movement.
func (m *MovementSet) AddStock(movement entity.StockMovement) {
	m.Stock = append(m.Stock, movement)
}

// IsEmpty returns true if the set contains no movements.
func (m *MovementSet) IsEmpty() bool {
	return len(m.Stock) == 0
}

// Engine executes posting and unposting atomically.
type Engine struct {
	txManager tx.Manager
	stock     *stock.Service
	audit     audit.Logger
}

// NewEngine creates a posting engine. auditLog may be nil to disable
// the audit trail.
func NewEngine(txManager tx.Manager, stockSvc *stock.Service, auditLog audit.Logger) *Engine {
	return &Engine{
		txManager: txManager,
		stock:     stockSvc,
		audit:     auditLog,
	}
}

// logAction records a posting action in the audit trail inside the
// current transaction.
func (e *Engine) logAction(ctx context.Context, doc Postable, action audit.Action, changes map[string]any) error {
	if e.audit == nil {
		return nil
	}
	return e.audit.Log(ctx, audit.Entry{
		EntityType: doc.GetDocumentType(),
		EntityID:   doc.GetID(),
		Action:     action,
		Changes:    changes,
	})
}

// Post records document movements and marks it posted.
// updateDoc persists the document state change and must run inside the
// same transaction as the movement writes.
func (e *Engine) Post(ctx context.Context, doc Postable, updateDoc func(ctx context.Context) error) error {
	if err := doc.CanPost(ctx); err != nil {
		return err
	}

	movements, err := doc.GenerateMovements(ctx)
	if err != nil {
		return apperror.NewInternal(err).WithDetail("stage", "generate_movements")
	}

	return e.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		doc.MarkPosted()
		newVersion := doc.GetPostedVersion()

		// Drop movements from earlier posting iterations (re-post case).
		if err := e.stock.ReverseMovements(ctx, doc.GetID(), newVersion); err != nil {
			return err
		}

		if err := e.stock.RecordMovements(ctx, movements.Stock); err != nil {
			return err
		}

		if err := updateDoc(ctx); err != nil {
			return err
		}

		if err := e.logAction(ctx, doc, audit.ActionPost, map[string]any{
			"posted_version": newVersion,
			"movements":      len(movements.Stock),
		}); err != nil {
			return err
		}

		logger.Info(ctx, "document posted",
			"id", doc.GetID(),
			"type", doc.GetDocumentType(),
			"version", newVersion,
		)
		return nil
	})
}

// Unpost reverses document movements and clears the posted flag.
func (e *Engine) Unpost(ctx context.Context, doc Postable, updateDoc func(ctx context.Context) error) error {
	if !doc.IsPosted() {
		return apperror.NewBusinessRule(
			apperror.CodeBusinessRule,
			"Document is not posted",
		).WithDetail("document_id", doc.GetID().String())
	}

	return e.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		// Delete movements from every posting iteration.
		if err := e.stock.ReverseMovements(ctx, doc.GetID(), doc.GetPostedVersion()+1); err != nil {
			return err
		}

		doc.MarkUnposted()

		if err := updateDoc(ctx); err != nil {
			return err
		}

		if err := e.logAction(ctx, doc, audit.ActionUnpost, nil); err != nil {
			return err
		}

		logger.Info(ctx, "document unposted",
			"id", doc.GetID(),
			"type", doc.GetDocumentType(),
		)
		return nil
	})
}
