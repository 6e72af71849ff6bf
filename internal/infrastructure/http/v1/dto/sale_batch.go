package dto

import (
	"time"

	"treefnio/internal/core/types"
	"treefnio/internal/domain/documents/sale_batch"
)

// --- Request DTOs ---

// CreateSaleBatchRequest represents a request to create a sale batch.
type CreateSaleBatchRequest struct {
	Number    string             `json:"number,omitempty"`
	Date      time.Time          `json:"date"`
	StartDate string             `json:"startDate" binding:"required"`
	EndDate   string             `json:"endDate,omitempty"`
	Comment   string             `json:"comment,omitempty"`
	Entries   []SaleEntryRequest `json:"entries" binding:"required,dive"`

	// PostImmediately creates and posts the batch in one request
	PostImmediately bool `json:"postImmediately,omitempty"`
}

// SaleEntryRequest represents a sale line in create/update request.
type SaleEntryRequest struct {
	ProductID         *string        `json:"productId,omitempty"`
	ProductName       string         `json:"productName" binding:"required"`
	ProductCode       string         `json:"productCode,omitempty"`
	SaleDepartment    string         `json:"saleDepartment,omitempty"`
	ProductionSegment string         `json:"productionSegment,omitempty"`
	Quantity          types.Quantity `json:"quantity" binding:"required"`
	UnitPrice         types.Money    `json:"unitPrice"`
	TotalPrice        types.Money    `json:"totalPrice"`
	SaleDate          string         `json:"saleDate,omitempty"`
}

func (r *SaleEntryRequest) toEntry() sale_batch.SaleEntry {
	return sale_batch.SaleEntry{
		ProductID:         r.ProductID,
		ProductName:       r.ProductName,
		ProductCode:       r.ProductCode,
		SaleDepartment:    r.SaleDepartment,
		ProductionSegment: r.ProductionSegment,
		Quantity:          r.Quantity,
		UnitPrice:         r.UnitPrice,
		TotalPrice:        r.TotalPrice,
		SaleDate:          r.SaleDate,
	}
}

// ToEntity converts request to domain entity.
func (r *CreateSaleBatchRequest) ToEntity() *sale_batch.SaleBatch {
	doc := sale_batch.NewSaleBatch(r.StartDate)
	doc.Number = r.Number
	if !r.Date.IsZero() {
		doc.Date = r.Date
	}
	if r.EndDate != "" {
		doc.EndDate = r.EndDate
	}
	doc.Comment = r.Comment

	for _, entry := range r.Entries {
		doc.AddLine(entry.toEntry())
	}

	return doc
}

// UpdateSaleBatchRequest represents a request to update a sale batch.
// Entries replace the batch contents wholesale when provided.
type UpdateSaleBatchRequest struct {
	Number    *string            `json:"number,omitempty"`
	Date      *time.Time         `json:"date,omitempty"`
	StartDate *string            `json:"startDate,omitempty"`
	EndDate   *string            `json:"endDate,omitempty"`
	Comment   *string            `json:"comment,omitempty"`
	Entries   []SaleEntryRequest `json:"entries,omitempty"`
}

// ApplyTo applies updates to an existing entity.
func (r *UpdateSaleBatchRequest) ApplyTo(doc *sale_batch.SaleBatch) {
	if r.Number != nil {
		doc.Number = *r.Number
	}
	if r.Date != nil {
		doc.Date = *r.Date
	}
	if r.StartDate != nil {
		doc.StartDate = *r.StartDate
	}
	if r.EndDate != nil {
		doc.EndDate = *r.EndDate
	}
	if r.Comment != nil {
		doc.Comment = *r.Comment
	}

	if r.Entries != nil {
		doc.Lines = make([]sale_batch.SaleEntry, 0, len(r.Entries))
		for _, entry := range r.Entries {
			doc.AddLine(entry.toEntry())
		}
	}
}

// --- Response DTOs ---

// SaleBatchResponse represents a sale batch in API responses.
type SaleBatchResponse struct {
	ID           string              `json:"id"`
	Number       string              `json:"number"`
	Date         time.Time           `json:"date"`
	StartDate    string              `json:"startDate"`
	EndDate      string              `json:"endDate"`
	TotalRevenue types.Money         `json:"totalRevenue"`
	TotalCost    types.Money         `json:"totalCost"`
	Posted       bool                `json:"posted"`
	Comment      string              `json:"comment,omitempty"`
	Entries      []SaleEntryResponse `json:"entries,omitempty"`
	DeletionMark bool                `json:"deletionMark,omitempty"`
	Version      int                 `json:"version"`
	CreatedAt    time.Time           `json:"createdAt"`
	UpdatedAt    time.Time           `json:"updatedAt"`
}

// SaleEntryResponse represents a sale line in API responses.
type SaleEntryResponse struct {
	LineID            string         `json:"lineId"`
	LineNo            int            `json:"lineNo"`
	ProductID         *string        `json:"productId,omitempty"`
	ProductName       string         `json:"productName"`
	ProductCode       string         `json:"productCode,omitempty"`
	SaleDepartment    string         `json:"saleDepartment,omitempty"`
	ProductionSegment string         `json:"productionSegment,omitempty"`
	Quantity          types.Quantity `json:"quantity"`
	UnitPrice         types.Money    `json:"unitPrice"`
	TotalPrice        types.Money    `json:"totalPrice"`
	MaterialCost      types.Money    `json:"materialCost"`
	SaleDate          string         `json:"saleDate"`
}

// FromSaleBatch creates response DTO from domain entity.
func FromSaleBatch(b *sale_batch.SaleBatch) *SaleBatchResponse {
	entries := make([]SaleEntryResponse, len(b.Lines))
	for i, line := range b.Lines {
		entries[i] = SaleEntryResponse{
			LineID:            line.LineID.String(),
			LineNo:            line.LineNo,
			ProductID:         line.ProductID,
			ProductName:       line.ProductName,
			ProductCode:       line.ProductCode,
			SaleDepartment:    line.SaleDepartment,
			ProductionSegment: line.ProductionSegment,
			Quantity:          line.Quantity,
			UnitPrice:         line.UnitPrice,
			TotalPrice:        line.TotalPrice,
			MaterialCost:      line.MaterialCost,
			SaleDate:          line.SaleDate,
		}
	}

	return &SaleBatchResponse{
		ID:           b.ID.String(),
		Number:       b.Number,
		Date:         b.Date,
		StartDate:    b.StartDate,
		EndDate:      b.EndDate,
		TotalRevenue: b.TotalRevenue,
		TotalCost:    b.TotalCost,
		Posted:       b.Posted,
		Comment:      b.Comment,
		Entries:      entries,
		DeletionMark: b.DeletionMark,
		Version:      b.Version,
		CreatedAt:    b.CreatedAt,
		UpdatedAt:    b.UpdatedAt,
	}
}
