package settings

import (
	"context"
	"time"

	corecontext "treefnio/internal/core/context"
	"treefnio/pkg/logger"
)

// Service provides settings operations and change broadcasting.
type Service struct {
	repo        Repository
	broadcaster Broadcaster
}

// NewService creates a settings service. The broadcaster may be nil,
// in which case changes are persisted but not relayed.
func NewService(repo Repository, broadcaster Broadcaster) *Service {
	return &Service{repo: repo, broadcaster: broadcaster}
}

// Get retrieves one setting.
func (s *Service) Get(ctx context.Context, key string) (*Setting, error) {
	return s.repo.Get(ctx, key)
}

// List retrieves all settings.
func (s *Service) List(ctx context.Context) ([]*Setting, error) {
	return s.repo.List(ctx)
}

// Set upserts a setting and broadcasts the change.
func (s *Service) Set(ctx context.Context, setting *Setting) error {
	if err := setting.Validate(ctx); err != nil {
		return err
	}

	setting.UpdatedBy = corecontext.GetUserID(ctx)
	setting.UpdatedAt = time.Now().UTC()

	if err := s.repo.Upsert(ctx, setting); err != nil {
		return err
	}

	s.broadcast(ctx, ChangeEvent{
		Action:  ActionUpdated,
		Key:     setting.Key,
		Value:   setting.Value,
		Version: setting.Version,
	})

	logger.Info(ctx, "setting updated", "key", setting.Key, "version", setting.Version)
	return nil
}

// Delete removes a setting and broadcasts the removal.
func (s *Service) Delete(ctx context.Context, key string) error {
	if err := s.repo.Delete(ctx, key); err != nil {
		return err
	}

	s.broadcast(ctx, ChangeEvent{
		Action: ActionDeleted,
		Key:    key,
	})

	logger.Info(ctx, "setting deleted", "key", key)
	return nil
}

// Watch blocks, delivering change events to the callback until ctx is
// cancelled. Used by the HTTP watch endpoint to stream changes.
func (s *Service) Watch(ctx context.Context, callback func(ChangeEvent)) error {
	if s.broadcaster == nil {
		<-ctx.Done()
		return ctx.Err()
	}
	return s.broadcaster.Subscribe(ctx, callback)
}

// broadcast publishes the event if a broadcaster is configured.
// Broadcast failures do not fail the write: persistence already succeeded
// and clients resync on reconnect.
func (s *Service) broadcast(ctx context.Context, event ChangeEvent) {
	if s.broadcaster == nil {
		return
	}
	if event.Timestamp == 0 {
		event.Timestamp = time.Now().UnixNano()
	}
	if err := s.broadcaster.Publish(ctx, event); err != nil {
		logger.Warn(ctx, "settings broadcast failed", "key", event.Key, "error", err)
	}
}
