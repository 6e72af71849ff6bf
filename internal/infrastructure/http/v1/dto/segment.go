package dto

import (
	"treefnio/internal/core/entity"
	"treefnio/internal/domain/catalogs/segment"
)

// --- Request DTOs ---

// CreateSegmentRequest is the request body for creating a production segment.
type CreateSegmentRequest struct {
	Code        string            `json:"code"`
	Name        string            `json:"name" binding:"required"`
	Description *string           `json:"description"`
	SortOrder   int               `json:"sortOrder"`
	ParentID    *string           `json:"parentId"`
	IsFolder    bool              `json:"isFolder"`
	Attributes  entity.Attributes `json:"attributes"`
}

// ToEntity converts DTO to domain entity.
func (r *CreateSegmentRequest) ToEntity() *segment.Segment {
	s := segment.NewSegment(r.Code, r.Name)
	s.Description = r.Description
	s.SortOrder = r.SortOrder
	s.ParentID = r.ParentID
	s.IsFolder = r.IsFolder
	s.Attributes = r.Attributes
	return s
}

// UpdateSegmentRequest is the request body for updating a production segment.
type UpdateSegmentRequest struct {
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
func (r *UpdateSegmentRequest) ApplyTo(s *segment.Segment) {
	s.Code = r.Code
	s.Name = r.Name
	s.Description = r.Description
	s.SortOrder = r.SortOrder
	s.ParentID = r.ParentID
	s.IsFolder = r.IsFolder
	s.Attributes = r.Attributes
	s.Version = r.Version
}

// --- Response DTOs ---

// SegmentResponse is the response body for a production segment.
type SegmentResponse struct {
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

// FromSegment creates response DTO from domain entity.
func FromSegment(s *segment.Segment) *SegmentResponse {
	return &SegmentResponse{
		ID:           s.ID.String(),
		Code:         s.Code,
		Name:         s.Name,
		Description:  s.Description,
		SortOrder:    s.SortOrder,
		ParentID:     s.ParentID,
		IsFolder:     s.IsFolder,
		DeletionMark: s.DeletionMark,
		Version:      s.Version,
		Attributes:   s.Attributes,
	}
}
