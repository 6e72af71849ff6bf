package dto

import (
	"treefnio/internal/core/entity"
	"treefnio/internal/domain/catalogs/department"
)

// --- Request DTOs ---

// CreateDepartmentRequest is the request body for creating a department.
type CreateDepartmentRequest struct {
	Code        string            `json:"code"`
	Name        string            `json:"name" binding:"required"`
	Description *string           `json:"description"`
	SortOrder   int               `json:"sortOrder"`
	ParentID    *string           `json:"parentId"`
	IsFolder    bool              `json:"isFolder"`
	Attributes  entity.Attributes `json:"attributes"`
}

// ToEntity converts DTO to domain entity.
func (r *CreateDepartmentRequest) ToEntity() *department.Department {
	d := department.NewDepartment(r.Code, r.Name)
	d.Description = r.Description
	d.SortOrder = r.SortOrder
	d.ParentID = r.ParentID
	d.IsFolder = r.IsFolder
	d.Attributes = r.Attributes
	return d
}

// UpdateDepartmentRequest is the request body for updating a department.
type UpdateDepartmentRequest struct {
	Code        string            `json:"code"`
	Name        string            `json:"name" binding:"required"`
	Description *string           `json:"description"`
	SortOrder   int               `json:"sortOrder"`
	ParentID    *string           `json:"parentId"`
	IsFolder    bool              `json:"isFolder"`
	Attributes  entity.Attributes `json:"attributes"`
	Version     int               `json:"version" binding:"required"`
}

// ApplyTo applies update DTO to existing entity.
func (r *UpdateDepartmentRequest) ApplyTo(d *department.Department) {
	d.Code = r.Code
	d.Name = r.Name
	d.Description = r.Description
	d.SortOrder = r.SortOrder
	d.ParentID = r.ParentID
	d.IsFolder = r.IsFolder
	d.Attributes = r.Attributes
	d.Version = r.Version
}

// --- Response DTOs ---

// DepartmentResponse is the response body for a department.
type DepartmentResponse struct {
	ID           string            `json:"id"`
	Code         string            `json:"code"`
	Name         string            `json:"name"`
	Description  *string           `json:"description,omitempty"`
	SortOrder    int               `json:"sortOrder"`
	ParentID     *string           `json:"parentId,omitempty"`
	IsFolder     bool              `json:"isFolder"`
	DeletionMark bool              `json:"deletionMark"`
	Version      int               `json:"version"`
	Attributes   entity.Attributes `json:"attributes,omitempty"`
}

// FromDepartment creates response DTO from domain entity.
func FromDepartment(d *department.Department) *DepartmentResponse {
	return &DepartmentResponse{
		ID:           d.ID.String(),
		Code:         d.Code,
		Name:         d.Name,
		Description:  d.Description,
		SortOrder:    d.SortOrder,
		ParentID:     d.ParentID,
		IsFolder:     d.IsFolder,
		DeletionMark: d.DeletionMark,
		Version:      d.Version,
		Attributes:   d.Attributes,
	}
}
