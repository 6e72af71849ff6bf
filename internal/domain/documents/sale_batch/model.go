// Package sale_batch provides the SaleBatch document.
// A sale batch groups sale entries submitted together (manual entry or file
// import). Batches are created wholesale and replaced wholesale on edit,
// never partially mutated.
package sale_batch

import (
	"context"

	"github.com/shopspring/decimal"

	"treefnio/internal/core/apperror"
	"treefnio/internal/core/entity"
	"treefnio/internal/core/id"
	"treefnio/internal/core/types"
	"treefnio/internal/domain/posting"
	"treefnio/pkg/shamsi"
)

// SaleBatch represents a group of sale entries sharing a submission event.
type SaleBatch struct {
	entity.Document

	// StartDate and EndDate bound the batch in the Persian calendar
	// (typically equal - the batch's recorded date)
	StartDate string `db:"start_date" json:"startDate"`
	EndDate   string `db:"end_date" json:"endDate"`

	// Totals (calculated from lines)
	TotalRevenue types.Money `db:"total_revenue" json:"totalRevenue"`
	TotalCost    types.Money `db:"total_cost" json:"totalCost"`

	// Table part: sale entries
	Lines []SaleEntry `db:"-" json:"entries"`

	// consumption holds the aggregated recipe consumption for posting.
	// The service computes it right before Post; it is never persisted
	// on the document itself.
	consumption []MaterialConsumption
}

// MaterialConsumption is one material's total consumption across all
// entries of a batch, expanded from the products' active recipes.
type MaterialConsumption struct {
	MaterialID id.ID
	Quantity   types.Quantity
	Amount     types.Money
}

// SaleEntry represents one line of a sale.
type SaleEntry struct {
	// Line identification
	LineID id.ID `db:"line_id" json:"lineId"`
	LineNo int   `db:"line_no" json:"lineNo"`

	// Product reference (nullable - imported rows may not resolve)
	ProductID *string `db:"product_id" json:"productId,omitempty"`

	// Denormalized product reference captured at write time.
	// Reports group by these strings, not by live catalog lookups.
	ProductName       string `db:"product_name" json:"productName"`
	ProductCode       string `db:"product_code" json:"productCode"`
	SaleDepartment    string `db:"sale_department" json:"saleDepartment"`
	ProductionSegment string `db:"production_segment" json:"productionSegment"`

	// Quantity and pricing
	Quantity  types.Quantity `db:"quantity" json:"quantity"`
	UnitPrice types.Money    `db:"unit_price" json:"unitPrice"`

	// TotalPrice is stored redundantly (= quantity * unitPrice at creation).
	// Aggregation trusts the stored value and does not recompute it.
	TotalPrice types.Money `db:"total_price" json:"totalPrice"`

	// MaterialCost is the raw-ingredient cost for this line,
	// computed from the product's active recipe at write time
	MaterialCost types.Money `db:"material_cost" json:"materialCost"`

	// SaleDate is the Shamsi date of the sale
	SaleDate string `db:"sale_date" json:"saleDate"`
}

// NewSaleBatch creates a new sale batch for the given Shamsi date.
func NewSaleBatch(date string) *SaleBatch {
	return &SaleBatch{
		Document:     entity.NewDocument(),
		StartDate:    date,
		EndDate:      date,
		TotalRevenue: types.Zero(),
		TotalCost:    types.Zero(),
		Lines:        make([]SaleEntry, 0),
	}
}

// AddLine adds an entry and recalculates totals.
// TotalPrice is fixed at quantity * unitPrice here and never revalidated.
func (b *SaleBatch) AddLine(entry SaleEntry) {
	if id.IsNil(entry.LineID) {
		entry.LineID = id.New()
	}
	entry.LineNo = len(b.Lines) + 1
	if entry.TotalPrice.IsZero() {
		qty := decimal.NewFromFloat(entry.Quantity.Float64())
		entry.TotalPrice = entry.UnitPrice.Mul(qty)
	}
	if entry.SaleDate == "" {
		entry.SaleDate = b.StartDate
	}

	b.Lines = append(b.Lines, entry)
	b.RecalculateTotals()
}

// RecalculateTotals updates batch totals from lines.
func (b *SaleBatch) RecalculateTotals() {
	revenue := decimal.Zero
	cost := decimal.Zero
	for _, line := range b.Lines {
		revenue = revenue.Add(line.TotalPrice)
		cost = cost.Add(line.MaterialCost)
	}
	b.TotalRevenue = revenue
	b.TotalCost = cost
}

// Validate implements entity.Validatable.
// Empty batches are legal - they contribute zero to every report bucket.
func (b *SaleBatch) Validate(ctx context.Context) error {
	if err := b.Document.Validate(ctx); err != nil {
		return err
	}

	if !shamsi.IsValid(b.StartDate) {
		return apperror.NewValidation("start date is not a valid shamsi date").
			WithDetail("field", "startDate").
			WithDetail("value", b.StartDate)
	}
	if !shamsi.IsValid(b.EndDate) {
		return apperror.NewValidation("end date is not a valid shamsi date").
			WithDetail("field", "endDate").
			WithDetail("value", b.EndDate)
	}
	if shamsi.CompareStrings(b.StartDate, b.EndDate) > 0 {
		return apperror.NewValidation("start date is after end date").
			WithDetail("field", "startDate")
	}

	for i, line := range b.Lines {
		if line.Quantity.IsNegative() {
			return apperror.NewValidation("quantity cannot be negative").
				WithDetail("field", "entries").
				WithDetail("lineNo", i+1)
		}
		if line.UnitPrice.IsNegative() {
			return apperror.NewValidation("unit price cannot be negative").
				WithDetail("field", "entries").
				WithDetail("lineNo", i+1)
		}
		if line.SaleDate != "" && !shamsi.IsValid(line.SaleDate) {
			return apperror.NewValidation("sale date is not a valid shamsi date").
				WithDetail("field", "entries").
				WithDetail("lineNo", i+1).
				WithDetail("value", line.SaleDate)
		}
	}

	return nil
}

// GetDocumentType returns the document type name.
func (b *SaleBatch) GetDocumentType() string {
	return "SaleBatch"
}

// SetConsumption stores the recipe consumption used by the next posting.
func (b *SaleBatch) SetConsumption(items []MaterialConsumption) {
	b.consumption = items
}

// GenerateMovements creates stock register movements for this document.
// Each consumed material becomes one expense movement dated at the
// batch's document date.
func (b *SaleBatch) GenerateMovements(ctx context.Context) (*posting.MovementSet, error) {
	movements := posting.NewMovementSet()

	newVersion := b.PostedVersion + 1

	for _, item := range b.consumption {
		if item.Quantity.IsZero() {
			continue
		}
		movements.AddStock(entity.NewStockMovement(
			b.ID,
			b.GetDocumentType(),
			newVersion,
			b.Date,
			entity.RecordTypeExpense,
			item.MaterialID,
			item.Quantity,
			item.Amount,
		))
	}

	return movements, nil
}

var _ posting.Postable = (*SaleBatch)(nil)
