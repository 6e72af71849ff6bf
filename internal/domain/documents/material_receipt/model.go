// Package material_receipt provides the MaterialReceipt document.
// Records purchased raw materials arriving into inventory.
package material_receipt

import (
	"context"

	"github.com/shopspring/decimal"

	"treefnio/internal/core/apperror"
	"treefnio/internal/core/entity"
	"treefnio/internal/core/id"
	"treefnio/internal/core/types"
	"treefnio/internal/domain/posting"
)

// MaterialReceipt represents a material receipt document.
type MaterialReceipt struct {
	entity.Document

	// SupplierName is free text - suppliers are not a managed catalog
	SupplierName string `db:"supplier_name" json:"supplierName,omitempty"`

	// SupplierDocNumber references the supplier's invoice
	SupplierDocNumber string `db:"supplier_doc_number" json:"supplierDocNumber,omitempty"`

	// Totals (calculated from lines)
	TotalQuantity types.Quantity `db:"total_quantity" json:"totalQuantity"`
	TotalAmount   types.Money    `db:"total_amount" json:"totalAmount"`

	// Table part: received materials
	Lines []MaterialReceiptLine `db:"-" json:"lines"`
}

// MaterialReceiptLine represents a line in the material receipt.
type MaterialReceiptLine struct {
	// Line identification
	LineID id.ID `db:"line_id" json:"lineId"`
	LineNo int   `db:"line_no" json:"lineNo"`

	// Material reference
	MaterialID id.ID `db:"material_id" json:"materialId"`

	// Quantity and pricing
	Quantity  types.Quantity `db:"quantity" json:"quantity"`
	UnitPrice types.Money    `db:"unit_price" json:"unitPrice"`
	Amount    types.Money    `db:"amount" json:"amount"`
}

// NewMaterialReceipt creates a new material receipt document.
func NewMaterialReceipt() *MaterialReceipt {
	return &MaterialReceipt{
		Document:    entity.NewDocument(),
		TotalAmount: types.Zero(),
		Lines:       make([]MaterialReceiptLine, 0),
	}
}

// AddLine adds a line to the receipt and recalculates totals.
func (m *MaterialReceipt) AddLine(materialID id.ID, quantity types.Quantity, unitPrice types.Money) {
	qty := decimal.NewFromFloat(quantity.Float64())

	line := MaterialReceiptLine{
		LineID:     id.New(),
		LineNo:     len(m.Lines) + 1,
		MaterialID: materialID,
		Quantity:   quantity,
		UnitPrice:  unitPrice,
		Amount:     unitPrice.Mul(qty),
	}

	m.Lines = append(m.Lines, line)
	m.recalculateTotals()
}

// recalculateTotals updates document totals from lines.
func (m *MaterialReceipt) recalculateTotals() {
	m.TotalQuantity = 0
	amount := decimal.Zero

	for _, line := range m.Lines {
		m.TotalQuantity += line.Quantity
		amount = amount.Add(line.Amount)
	}
	m.TotalAmount = amount
}

// Validate implements entity.Validatable.
func (m *MaterialReceipt) Validate(ctx context.Context) error {
	if err := m.Document.Validate(ctx); err != nil {
		return err
	}

	if len(m.Lines) == 0 {
		return apperror.NewValidation("at least one line is required").
			WithDetail("field", "lines")
	}

	for i, line := range m.Lines {
		if id.IsNil(line.MaterialID) {
			return apperror.NewValidation("material is required").
				WithDetail("field", "lines").
				WithDetail("lineNo", i+1)
		}
		if !line.Quantity.IsPositive() {
			return apperror.NewValidation("quantity must be positive").
				WithDetail("field", "lines").
				WithDetail("lineNo", i+1)
		}
		if line.UnitPrice.IsNegative() {
			return apperror.NewValidation("unit price cannot be negative").
				WithDetail("field", "lines").
				WithDetail("lineNo", i+1)
		}
	}

	return nil
}

// --- Postable interface implementation ---
// GetID, GetPostedVersion, IsPosted, CanPost are inherited from entity.Document

// GetDocumentType returns the document type name.
func (m *MaterialReceipt) GetDocumentType() string {
	return "MaterialReceipt"
}

// GenerateMovements creates stock register movements for this document.
func (m *MaterialReceipt) GenerateMovements(ctx context.Context) (*posting.MovementSet, error) {
	movements := posting.NewMovementSet()

	newVersion := m.PostedVersion + 1

	for _, line := range m.Lines {
		movements.AddStock(entity.NewStockMovement(
			m.ID,
			m.GetDocumentType(),
			newVersion,
			m.Date,
			entity.RecordTypeReceipt,
			line.MaterialID,
			line.Quantity,
			line.Amount,
		))
	}

	return movements, nil
}

// Ensure interface compliance at compile time.
var _ posting.Postable = (*MaterialReceipt)(nil)
