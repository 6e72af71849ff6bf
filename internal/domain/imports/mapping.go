// Package imports implements the sales file import flow: an uploaded
// CSV is parsed into rows, the user maps its column headers to semantic
// fields, rows are reconciled against the product catalog, and the result
// is committed as a sale batch.
package imports

import (
	"treefnio/internal/core/apperror"
	"treefnio/pkg/csvimport"
)

// ColumnMapping binds arbitrary file headers to semantic fields.
// Uploaded files come from POS exports with unpredictable column names,
// so the user picks the binding per file.
type ColumnMapping struct {
	ProductCode string `json:"productCode,omitempty"`
	ProductName string `json:"productName,omitempty"`
	Quantity    string `json:"quantity"`
	UnitPrice   string `json:"unitPrice"`
	SaleDate    string `json:"saleDate,omitempty"`
}

// Validate checks the mapping is usable: quantity and price are required,
// and at least one of code or name must be mapped for reconciliation.
func (m ColumnMapping) Validate() error {
	if m.Quantity == "" {
		return apperror.NewValidation("quantity column is required").
			WithDetail("field", "quantity")
	}
	if m.UnitPrice == "" {
		return apperror.NewValidation("unit price column is required").
			WithDetail("field", "unitPrice")
	}
	if m.ProductCode == "" && m.ProductName == "" {
		return apperror.NewValidation("a product code or product name column is required").
			WithDetail("field", "productCode")
	}
	return nil
}

// mappedColumns lists the non-empty column names for presence checks.
func (m ColumnMapping) mappedColumns() []string {
	cols := []string{m.Quantity, m.UnitPrice}
	if m.ProductCode != "" {
		cols = append(cols, m.ProductCode)
	}
	if m.ProductName != "" {
		cols = append(cols, m.ProductName)
	}
	if m.SaleDate != "" {
		cols = append(cols, m.SaleDate)
	}
	return cols
}

// checkColumns verifies every mapped column exists in the parsed table.
func (m ColumnMapping) checkColumns(table *csvimport.Table) error {
	if missing := table.MissingColumns(m.mappedColumns()...); len(missing) > 0 {
		return apperror.NewValidation("mapped columns not found in file").
			WithDetail("columns", missing)
	}
	return nil
}
