// Package settings provides application-wide settings with a change
// broadcast channel, so every connected client sees updates immediately.
package settings

import (
	"context"
	"encoding/json"
	"time"

	"treefnio/internal/core/apperror"
)

// Setting is one named application setting. Values are opaque JSON -
// the server stores and relays them, clients interpret them.
type Setting struct {
	Key       string          `db:"key" json:"key"`
	Value     json.RawMessage `db:"value" json:"value"`
	Version   int             `db:"version" json:"version"`
	UpdatedAt time.Time       `db:"updated_at" json:"updatedAt"`
	UpdatedBy string          `db:"updated_by" json:"updatedBy,omitempty"`
}

// Validate checks the setting is storable.
func (s *Setting) Validate(ctx context.Context) error {
	if s.Key == "" {
		return apperror.NewValidation("key is required").
			WithDetail("field", "key")
	}
	if len(s.Value) == 0 || !json.Valid(s.Value) {
		return apperror.NewValidation("value must be valid JSON").
			WithDetail("field", "value")
	}
	return nil
}

// ChangeAction describes what happened to a setting.
type ChangeAction string

const (
	ActionUpdated ChangeAction = "updated"
	ActionDeleted ChangeAction = "deleted"
)

// ChangeEvent is broadcast to subscribers whenever a setting changes.
type ChangeEvent struct {
	Action    ChangeAction    `json:"action"`
	Key       string          `json:"key"`
	Value     json.RawMessage `json:"value,omitempty"`
	Version   int             `json:"version,omitempty"`
	Timestamp int64           `json:"timestamp"`
}

// Broadcaster relays setting changes between server instances and to
// subscribed clients. Subscribe blocks until ctx is cancelled; callbacks
// run on the broadcaster's goroutines.
type Broadcaster interface {
	Publish(ctx context.Context, event ChangeEvent) error
	Subscribe(ctx context.Context, callback func(ChangeEvent)) error
	Close() error
}
