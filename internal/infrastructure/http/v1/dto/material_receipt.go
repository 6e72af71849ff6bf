package dto

import (
	"time"

	"treefnio/internal/core/id"
	"treefnio/internal/core/types"
	"treefnio/internal/domain/documents/material_receipt"
)

// --- Request DTOs ---

// CreateMaterialReceiptRequest represents a request to create a material receipt.
type CreateMaterialReceiptRequest struct {
	Number            string                       `json:"number,omitempty"`
	Date              time.Time                    `json:"date" binding:"required"`
	SupplierName      string                       `json:"supplierName,omitempty"`
	SupplierDocNumber string                       `json:"supplierDocNumber,omitempty"`
	Comment           string                       `json:"comment,omitempty"`
	Lines             []MaterialReceiptLineRequest `json:"lines" binding:"required,min=1,dive"`
	PostImmediately   bool                         `json:"postImmediately,omitempty"`
}

// MaterialReceiptLineRequest represents a line in create/update request.
type MaterialReceiptLineRequest struct {
	MaterialID string         `json:"materialId" binding:"required"`
	Quantity   types.Quantity `json:"quantity" binding:"required"`
	UnitPrice  types.Money    `json:"unitPrice"`
}

// ToEntity converts request to domain entity.
func (r *CreateMaterialReceiptRequest) ToEntity() *material_receipt.MaterialReceipt {
	doc := material_receipt.NewMaterialReceipt()
	doc.Number = r.Number
	doc.Date = r.Date
	doc.SupplierName = r.SupplierName
	doc.SupplierDocNumber = r.SupplierDocNumber
	doc.Comment = r.Comment

	for _, line := range r.Lines {
		materialID, _ := id.Parse(line.MaterialID)
		doc.AddLine(materialID, line.Quantity, line.UnitPrice)
	}

	return doc
}

// UpdateMaterialReceiptRequest represents a request to update a material receipt.
type UpdateMaterialReceiptRequest struct {
	Number            *string                      `json:"number,omitempty"`
	Date              *time.Time                   `json:"date,omitempty"`
	SupplierName      *string                      `json:"supplierName,omitempty"`
	SupplierDocNumber *string                      `json:"supplierDocNumber,omitempty"`
	Comment           *string                      `json:"comment,omitempty"`
	Lines             []MaterialReceiptLineRequest `json:"lines,omitempty"`
}

// ApplyTo applies updates to an existing entity.
func (r *UpdateMaterialReceiptRequest) ApplyTo(doc *material_receipt.MaterialReceipt) {
	if r.Number != nil {
		doc.Number = *r.Number
	}
	if r.Date != nil {
		doc.Date = *r.Date
	}
	if r.SupplierName != nil {
		doc.SupplierName = *r.SupplierName
	}
	if r.SupplierDocNumber != nil {
		doc.SupplierDocNumber = *r.SupplierDocNumber
	}
	if r.Comment != nil {
		doc.Comment = *r.Comment
	}

	// If lines are provided, rebuild them
	if r.Lines != nil {
		doc.Lines = make([]material_receipt.MaterialReceiptLine, 0, len(r.Lines))
		for _, line := range r.Lines {
			materialID, _ := id.Parse(line.MaterialID)
			doc.AddLine(materialID, line.Quantity, line.UnitPrice)
		}
	}
}

// --- Response DTOs ---

// MaterialReceiptResponse represents a material receipt in API responses.
type MaterialReceiptResponse struct {
	ID                string                        `json:"id"`
	Number            string                        `json:"number"`
	Date              time.Time                     `json:"date"`
	Posted            bool                          `json:"posted"`
	PostedVersion     int                           `json:"postedVersion,omitempty"`
	SupplierName      string                        `json:"supplierName,omitempty"`
	SupplierDocNumber string                        `json:"supplierDocNumber,omitempty"`
	TotalQuantity     types.Quantity                `json:"totalQuantity"`
	TotalAmount       types.Money                   `json:"totalAmount"`
	Comment           string                        `json:"comment,omitempty"`
	Lines             []MaterialReceiptLineResponse `json:"lines,omitempty"`
	DeletionMark      bool                          `json:"deletionMark,omitempty"`
	Version           int                           `json:"version"`
	CreatedAt         time.Time                     `json:"createdAt"`
	UpdatedAt         time.Time                     `json:"updatedAt"`
}

// MaterialReceiptLineResponse represents a line in API responses.
type MaterialReceiptLineResponse struct {
	LineID     string         `json:"lineId"`
	LineNo     int            `json:"lineNo"`
	MaterialID string         `json:"materialId"`
	Quantity   types.Quantity `json:"quantity"`
	UnitPrice  types.Money    `json:"unitPrice"`
	Amount     types.Money    `json:"amount"`
}

// FromMaterialReceipt creates response DTO from domain entity.
func FromMaterialReceipt(m *material_receipt.MaterialReceipt) *MaterialReceiptResponse {
	lines := make([]MaterialReceiptLineResponse, len(m.Lines))
	for i, line := range m.Lines {
		lines[i] = MaterialReceiptLineResponse{
			LineID:     line.LineID.String(),
			LineNo:     line.LineNo,
			MaterialID: line.MaterialID.String(),
			Quantity:   line.Quantity,
			UnitPrice:  line.UnitPrice,
			Amount:     line.Amount,
		}
	}

	return &MaterialReceiptResponse{
		ID:                m.ID.String(),
		Number:            m.Number,
		Date:              m.Date,
		Posted:            m.Posted,
		PostedVersion:     m.PostedVersion,
		SupplierName:      m.SupplierName,
		SupplierDocNumber: m.SupplierDocNumber,
		TotalQuantity:     m.TotalQuantity,
		TotalAmount:       m.TotalAmount,
		Comment:           m.Comment,
		Lines:             lines,
		DeletionMark:      m.DeletionMark,
		Version:           m.Version,
		CreatedAt:         m.CreatedAt,
		UpdatedAt:         m.UpdatedAt,
	}
}
