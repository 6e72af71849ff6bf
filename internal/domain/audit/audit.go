// Package audit provides audit trail types and entity enrichment helpers.
package audit

import (
	"context"
	"fmt"
	"time"

	"treefnio/internal/core/id"
)

// Action represents the type of audited operation.
type Action string

const (
	ActionCreate Action = "create"
	ActionUpdate Action = "update"
	ActionDelete Action = "delete"
	ActionPost   Action = "post"
	ActionUnpost Action = "unpost"
)

// Entry is a single audit trail record.
type Entry struct {
	ID         id.ID
	EntityType string
	EntityID   id.ID
	Action     Action
	UserID     string
	UserEmail  string
	Changes    map[string]any
	CreatedAt  time.Time
}

// Logger records audit entries. Implementations must be safe to call
// inside a transaction so the trail commits with the operation.
type Logger interface {
	Log(ctx context.Context, entry Entry) error
}

// Diff calculates the difference between old and new entity states.
func Diff(oldState, newState map[string]any) map[string]any {
	changes := make(map[string]any)

	// Find changed and new fields
	for key, newVal := range newState {
		oldVal, exists := oldState[key]
		if !exists {
			changes[key] = map[string]any{"old": nil, "new": newVal}
		} else if !equal(oldVal, newVal) {
			changes[key] = map[string]any{"old": oldVal, "new": newVal}
		}
	}

	// Find deleted fields
	for key, oldVal := range oldState {
		if _, exists := newState[key]; !exists {
			changes[key] = map[string]any{"old": oldVal, "new": nil}
		}
	}

	return changes
}

func equal(a, b any) bool {
	return fmt.Sprintf("%v", a) == fmt.Sprintf("%v", b)
}
