// Package tx defines the transaction boundary used by domain services.
// Services depend on this interface instead of the pgx-backed manager in
// infrastructure/storage/postgres, which keeps posting and document flows
// testable with a pass-through fake.
package tx

import (
	"context"
)

// Manager runs a function inside a database transaction.
type Manager interface {
	// RunInTransaction executes fn within a transaction. An error from fn
	// rolls the transaction back; nil commits it. Nested calls reuse the
	// transaction already carried by the context.
	RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

// ReadOnlyManager extends Manager with read-only transaction support,
// used for multi-query report reads that need a consistent snapshot.
type ReadOnlyManager interface {
	Manager

	// ReadOnly executes fn in a read-only transaction. Writes fail.
	ReadOnly(ctx context.Context, fn func(ctx context.Context) error) error
}
