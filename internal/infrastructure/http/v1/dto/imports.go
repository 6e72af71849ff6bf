package dto

import (
	"treefnio/internal/domain/imports"
)

// --- Request DTOs ---

// ImportPreviewRequest carries the column mapping for a preview.
// The file itself arrives as multipart form data alongside this JSON.
type ImportPreviewRequest struct {
	Mapping imports.ColumnMapping `json:"mapping" binding:"required"`
}

// ImportCommitRequest commits a reviewed preview as a sale batch.
// The client sends the preview rows back, possibly after manual fixes
// to unmatched entries.
type ImportCommitRequest struct {
	Rows      []imports.PreviewRow `json:"rows" binding:"required,min=1"`
	BatchDate string               `json:"batchDate" binding:"required"`
}

// --- Response DTOs ---

// ImportPreviewResponse represents a reconciled import preview.
type ImportPreviewResponse struct {
	Rows      []imports.PreviewRow `json:"rows"`
	Matched   int                  `json:"matched"`
	Unmatched int                  `json:"unmatched"`
	Invalid   int                  `json:"invalid"`
	Columns   []string             `json:"columns,omitempty"`
}

// FromImportPreview converts domain preview to response DTO.
func FromImportPreview(p *imports.Preview, columns []string) *ImportPreviewResponse {
	return &ImportPreviewResponse{
		Rows:      p.Rows,
		Matched:   p.Matched,
		Unmatched: p.Unmatched,
		Invalid:   p.Invalid,
		Columns:   columns,
	}
}
