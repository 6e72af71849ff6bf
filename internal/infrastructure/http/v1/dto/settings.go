package dto

import (
	"encoding/json"
	"time"

	"treefnio/internal/domain/settings"
)

// --- Request DTOs ---

// SetSettingRequest stores a setting value under its key.
type SetSettingRequest struct {
	Value json.RawMessage `json:"value" binding:"required"`
}

// --- Response DTOs ---

// SettingResponse represents a setting in API responses.
type SettingResponse struct {
	Key       string          `json:"key"`
	Value     json.RawMessage `json:"value"`
	Version   int             `json:"version"`
	UpdatedAt time.Time       `json:"updatedAt"`
	UpdatedBy string          `json:"updatedBy,omitempty"`
}

// FromSetting converts domain setting to response DTO.
func FromSetting(s *settings.Setting) *SettingResponse {
	return &SettingResponse{
		Key:       s.Key,
		Value:     s.Value,
		Version:   s.Version,
		UpdatedAt: s.UpdatedAt,
		UpdatedBy: s.UpdatedBy,
	}
}

// SettingListResponse represents a list of settings.
type SettingListResponse struct {
	Items []*SettingResponse `json:"items"`
}

// FromSettings converts a settings slice to response DTO.
func FromSettings(items []*settings.Setting) *SettingListResponse {
	resp := &SettingListResponse{Items: make([]*SettingResponse, len(items))}
	for i, s := range items {
		resp.Items[i] = FromSetting(s)
	}
	return resp
}
