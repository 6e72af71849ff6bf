package dto

import (
	"time"

	"treefnio/internal/core/entity"
	"treefnio/internal/core/id"
	"treefnio/internal/core/types"
	"treefnio/internal/domain/registers/stock"
)

// --- Response DTOs for Stock Register ---

// StockBalanceResponse represents a material stock balance in API responses.
type StockBalanceResponse struct {
	MaterialID     string         `json:"materialId"`
	Quantity       types.Quantity `json:"quantity"`
	Amount         types.Money    `json:"amount"`
	LastMovementAt *time.Time     `json:"lastMovementAt,omitempty"`
}

// FromStockBalance converts entity to response DTO.
func FromStockBalance(b entity.StockBalance) StockBalanceResponse {
	// Zero-value timestamps become null in JSON instead of "0001-01-01"
	var lastMovement *time.Time
	if !b.LastMovementAt.IsZero() {
		val := b.LastMovementAt
		lastMovement = &val
	}

	return StockBalanceResponse{
		MaterialID:     b.MaterialID.String(),
		Quantity:       b.Quantity,
		Amount:         b.Amount,
		LastMovementAt: lastMovement,
	}
}

// StockMovementResponse represents a stock movement in API responses.
type StockMovementResponse struct {
	LineID          string         `json:"lineId"`
	RecorderID      string         `json:"recorderId"`
	RecorderType    string         `json:"recorderType"`
	RecorderVersion int            `json:"recorderVersion"`
	Period          time.Time      `json:"period"`
	RecordType      string         `json:"recordType"`
	MaterialID      string         `json:"materialId"`
	Quantity        types.Quantity `json:"quantity"`
	Amount          types.Money    `json:"amount"`
	CreatedAt       time.Time      `json:"createdAt"`
}

// FromStockMovement converts entity to response DTO.
func FromStockMovement(m entity.StockMovement) StockMovementResponse {
	return StockMovementResponse{
		LineID:          m.LineID.String(),
		RecorderID:      m.RecorderID.String(),
		RecorderType:    m.RecorderType,
		RecorderVersion: m.RecorderVersion,
		Period:          m.Period,
		RecordType:      string(m.RecordType),
		MaterialID:      m.MaterialID.String(),
		Quantity:        m.Quantity,
		Amount:          m.Amount,
		CreatedAt:       m.CreatedAt,
	}
}

// StockTurnoverResponse represents a stock turnover report.
type StockTurnoverResponse struct {
	MaterialID     string         `json:"materialId,omitempty"`
	OpeningBalance types.Quantity `json:"openingBalance"`
	Receipt        types.Quantity `json:"receipt"`
	Expense        types.Quantity `json:"expense"`
	ClosingBalance types.Quantity `json:"closingBalance"`
}

// FromStockTurnover converts domain turnover to response DTO.
func FromStockTurnover(t stock.Turnover) StockTurnoverResponse {
	resp := StockTurnoverResponse{
		OpeningBalance: t.OpeningBalance,
		Receipt:        t.Receipt,
		Expense:        t.Expense,
		ClosingBalance: t.ClosingBalance,
	}
	if !id.IsNil(t.MaterialID) {
		resp.MaterialID = t.MaterialID.String()
	}
	return resp
}

// StockBalanceListResponse represents a list of stock balances.
type StockBalanceListResponse struct {
	Items []StockBalanceResponse `json:"items"`
}

// StockMovementListResponse represents a list of stock movements.
type StockMovementListResponse struct {
	Items      []StockMovementResponse `json:"items"`
	TotalCount int                     `json:"totalCount,omitempty"`
}

// MaterialAvailabilityResponse reports on-hand quantity for one material.
type MaterialAvailabilityResponse struct {
	MaterialID string         `json:"materialId"`
	Available  types.Quantity `json:"available"`
}
