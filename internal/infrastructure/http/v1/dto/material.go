package dto

import (
	"treefnio/internal/core/entity"
	"treefnio/internal/core/types"
	"treefnio/internal/domain/catalogs/material"
)

// --- Request DTOs ---

// CreateMaterialRequest is the request body for creating a material.
type CreateMaterialRequest struct {
	Code        string            `json:"code"`
	Name        string            `json:"name" binding:"required"`
	UnitID      *string           `json:"unitId"`
	Price       types.Money       `json:"price"`
	MinStock    types.Quantity    `json:"minStock"`
	Description *string           `json:"description"`
	ParentID    *string           `json:"parentId"`
	IsFolder    bool              `json:"isFolder"`
	Attributes  entity.Attributes `json:"attributes"`
}

// ToEntity converts DTO to domain entity.
func (r *CreateMaterialRequest) ToEntity() *material.Material {
	m := material.NewMaterial(r.Code, r.Name)
	m.UnitID = r.UnitID
	m.Price = r.Price
	m.MinStock = r.MinStock
	m.Description = r.Description
	m.ParentID = r.ParentID
	m.IsFolder = r.IsFolder
	m.Attributes = r.Attributes
	return m
}

// UpdateMaterialRequest is the request body for updating a material.
type UpdateMaterialRequest struct {
	Code        string            `json:"code"`
	Name        string            `json:"name" binding:"required"`
	UnitID      *string           `json:"unitId"`
	Price       types.Money       `json:"price"`
	MinStock    types.Quantity    `json:"minStock"`
	Description *string           `json:"description"`
	ParentID    *string           `json:"parentId"`
	IsFolder    bool              `json:"isFolder"`
	Attributes  entity.Attributes `json:"attributes"`
	Version     int               `json:"version" binding:"required"`
}

// ApplyTo applies update DTO to existing entity.
func (r *UpdateMaterialRequest) ApplyTo(m *material.Material) {
	m.Code = r.Code
	m.Name = r.Name
	m.UnitID = r.UnitID
	m.Price = r.Price
	m.MinStock = r.MinStock
	m.Description = r.Description
	m.ParentID = r.ParentID
	m.IsFolder = r.IsFolder
	m.Attributes = r.Attributes
	m.Version = r.Version
}

// UpdateMaterialPriceRequest updates only the purchase price.
type UpdateMaterialPriceRequest struct {
	Price types.Money `json:"price" binding:"required"`
}

// --- Response DTOs ---

// MaterialResponse is the response body for a material.
type MaterialResponse struct {
	ID           string            `json:"id"`
	Code         string            `json:"code"`
	Name         string            `json:"name"`
	UnitID       *string           `json:"unitId,omitempty"`
	Price        types.Money       `json:"price"`
	MinStock     types.Quantity    `json:"minStock"`
	Description  *string           `json:"description,omitempty"`
	ParentID     *string           `json:"parentId,omitempty"`
	IsFolder     bool              `json:"isFolder"`
	DeletionMark bool              `json:"deletionMark"`
	Version      int               `json:"version"`
	Attributes   entity.Attributes `json:"attributes,omitempty"`
}

// FromMaterial creates response DTO from domain entity.
func FromMaterial(m *material.Material) *MaterialResponse {
	return &MaterialResponse{
		ID:           m.ID.String(),
		Code:         m.Code,
		Name:         m.Name,
		UnitID:       m.UnitID,
		Price:        m.Price,
		MinStock:     m.MinStock,
		Description:  m.Description,
		ParentID:     m.ParentID,
		IsFolder:     m.IsFolder,
		DeletionMark: m.DeletionMark,
		Version:      m.Version,
		Attributes:   m.Attributes,
	}
}
