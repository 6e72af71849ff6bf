// Package stock provides the material stock register service.
package stock

import (
	"context"
	"fmt"

	"treefnio/internal/core/apperror"
	"treefnio/internal/core/entity"
	"treefnio/internal/core/id"
	"treefnio/internal/core/types"
	"treefnio/pkg/logger"
)

// Service provides business operations for the material stock register.
// Transactions are managed by the caller (posting engine).
type Service struct {
	repo Repository
}

// NewService creates a new stock register service.
func NewService(repo Repository) *Service {
	return &Service{
		repo: repo,
	}
}

// RecordMovements records stock movements from a document posting.
// This is called during document posting within a transaction.
func (s *Service) RecordMovements(ctx context.Context, movements []entity.StockMovement) error {
	if len(movements) == 0 {
		return nil
	}

	// Validate movements
	for i, m := range movements {
		if !m.Quantity.IsPositive() {
			return apperror.NewValidation(fmt.Sprintf("movement %d: quantity must be positive", i))
		}
		if id.IsNil(m.RecorderID) {
			return apperror.NewValidation(fmt.Sprintf("movement %d: recorder_id is required", i))
		}
	}

	// Create movements (triggers will update balances)
	if err := s.repo.CreateMovements(ctx, movements); err != nil {
		return fmt.Errorf("create movements: %w", err)
	}

	logger.Info(ctx, "recorded stock movements",
		"count", len(movements),
		"recorder_id", movements[0].RecorderID,
	)

	return nil
}

// ReverseMovements removes movements for a document (used during unposting).
func (s *Service) ReverseMovements(ctx context.Context, recorderID id.ID, beforeVersion int) error {
	if err := s.repo.DeleteMovementsByRecorder(ctx, recorderID, beforeVersion); err != nil {
		return fmt.Errorf("delete movements: %w", err)
	}

	logger.Info(ctx, "reversed stock movements",
		"recorder_id", recorderID,
		"before_version", beforeVersion,
	)

	return nil
}

// CheckAndReserveStock validates stock availability with pessimistic locking.
// Should be called within a transaction before creating expense movements.
func (s *Service) CheckAndReserveStock(ctx context.Context, items []StockReservation) error {
	for _, item := range items {
		balance, err := s.repo.GetBalanceForUpdate(ctx, item.MaterialID)
		if err != nil {
			return fmt.Errorf("get balance for %s: %w", item.MaterialID, err)
		}

		if balance.Quantity < item.RequiredQty {
			return apperror.NewInsufficientStock(
				item.MaterialID.String(),
				item.RequiredQty.Float64(),
				balance.Quantity.Float64(),
			)
		}
	}

	return nil
}

// StockReservation represents a stock check request.
type StockReservation struct {
	MaterialID  id.ID
	RequiredQty types.Quantity
}

// GetMaterialAvailability returns available quantity for a material.
func (s *Service) GetMaterialAvailability(ctx context.Context, materialID id.ID) (types.Quantity, error) {
	balance, err := s.repo.GetBalance(ctx, materialID)
	if err != nil {
		return 0, fmt.Errorf("get balance: %w", err)
	}
	return balance.Quantity, nil
}

// GetStock returns all materials with non-zero stock.
func (s *Service) GetStock(ctx context.Context) ([]entity.StockBalance, error) {
	return s.repo.GetBalances(ctx, BalanceFilter{
		ExcludeZero: true,
	})
}

// GetMovementHistory returns movement history for a material.
func (s *Service) GetMovementHistory(ctx context.Context, materialID id.ID, filter MovementFilter) ([]entity.StockMovement, error) {
	return s.repo.GetMovementHistory(ctx, materialID, filter)
}

// GetStockReport generates a turnover report for the period.
func (s *Service) GetStockReport(ctx context.Context, filter TurnoverFilter) (Turnover, error) {
	return s.repo.GetTurnover(ctx, filter)
}
