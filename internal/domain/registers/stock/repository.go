// Package stock provides the material stock accumulation register.
package stock

import (
	"context"
	"time"

	"treefnio/internal/core/entity"
	"treefnio/internal/core/id"
	"treefnio/internal/core/types"
)

// Repository defines operations for the material stock register.
type Repository interface {
	// Movement operations

	// CreateMovements batch inserts movements (used during posting)
	CreateMovements(ctx context.Context, movements []entity.StockMovement) error

	// DeleteMovementsByRecorder removes all movements for a document version
	// Used during unposting or re-posting
	DeleteMovementsByRecorder(ctx context.Context, recorderID id.ID, beforeVersion int) error

	// GetMovementsByRecorder retrieves all movements for a document
	GetMovementsByRecorder(ctx context.Context, recorderID id.ID) ([]entity.StockMovement, error)

	// Balance operations

	// GetBalance returns current balance for a material
	GetBalance(ctx context.Context, materialID id.ID) (entity.StockBalance, error)

	// GetBalanceForUpdate returns balance with row lock for stock control
	GetBalanceForUpdate(ctx context.Context, materialID id.ID) (entity.StockBalance, error)

	// GetBalances returns all non-zero balances
	GetBalances(ctx context.Context, filter BalanceFilter) ([]entity.StockBalance, error)

	// Reporting

	// GetMovementHistory returns movement history for a material
	GetMovementHistory(ctx context.Context, materialID id.ID, filter MovementFilter) ([]entity.StockMovement, error)

	// GetTurnover calculates receipt and expense totals for period
	GetTurnover(ctx context.Context, filter TurnoverFilter) (Turnover, error)

	// Maintenance

	// RecalculateBalances rebuilds balance table from movements
	RecalculateBalances(ctx context.Context, materialID *id.ID) error
}

// BalanceFilter for filtering balance queries.
type BalanceFilter struct {
	MaterialIDs []id.ID
	ExcludeZero bool
	MinQuantity *types.Quantity
	MaxQuantity *types.Quantity
}

// MovementFilter for filtering movement history.
type MovementFilter struct {
	RecordType *entity.RecordType
	FromDate   *time.Time
	ToDate     *time.Time
	Limit      int
	Offset     int
}

// TurnoverFilter for turnover reports.
type TurnoverFilter struct {
	MaterialID *id.ID
	FromDate   time.Time
	ToDate     time.Time
}

// Turnover represents receipt/expense totals.
type Turnover struct {
	MaterialID     id.ID          `json:"materialId,omitempty"`
	OpeningBalance types.Quantity `json:"openingBalance"`
	Receipt        types.Quantity `json:"receipt"`
	Expense        types.Quantity `json:"expense"`
	ClosingBalance types.Quantity `json:"closingBalance"`
}
