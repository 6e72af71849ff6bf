// Package sync provides settings change broadcasters: an in-process one
// for single-instance deployments and tests, and a Redis Pub/Sub one for
// multi-instance deployments.
package sync

import (
	"context"
	"sync"

	"treefnio/internal/domain/settings"
	"treefnio/pkg/logger"
)

// MemoryBroadcaster relays change events between subscribers in the same
// process. Suitable when the server runs as a single instance.
type MemoryBroadcaster struct {
	mu     sync.Mutex
	nextID int
	subs   map[int]chan settings.ChangeEvent
	closed bool
}

// subscriberBuffer bounds per-subscriber queues. A subscriber that stops
// draining loses events instead of blocking publishers.
const subscriberBuffer = 64

// NewMemoryBroadcaster creates an in-process broadcaster.
func NewMemoryBroadcaster() *MemoryBroadcaster {
	return &MemoryBroadcaster{subs: make(map[int]chan settings.ChangeEvent)}
}

// Publish delivers the event to every subscriber.
func (b *MemoryBroadcaster) Publish(ctx context.Context, event settings.ChangeEvent) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	for id, ch := range b.subs {
		select {
		case ch <- event:
		default:
			logger.Warn(ctx, "settings subscriber queue full, dropping event",
				"subscriber", id, "key", event.Key)
		}
	}
	return nil
}

// Subscribe delivers events to the callback until ctx is cancelled.
func (b *MemoryBroadcaster) Subscribe(ctx context.Context, callback func(settings.ChangeEvent)) error {
	b.mu.Lock()
	if b.closed {
		b.mu.Unlock()
		return context.Canceled
	}
	id := b.nextID
	b.nextID++
	ch := make(chan settings.ChangeEvent, subscriberBuffer)
	b.subs[id] = ch
	b.mu.Unlock()

	defer func() {
		b.mu.Lock()
		delete(b.subs, id)
		b.mu.Unlock()
	}()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case event, ok := <-ch:
			if !ok {
				return nil
			}
			callback(event)
		}
	}
}

// Close disconnects all subscribers.
func (b *MemoryBroadcaster) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return nil
	}
	b.closed = true
	for id, ch := range b.subs {
		close(ch)
		delete(b.subs, id)
	}
	return nil
}

var _ settings.Broadcaster = (*MemoryBroadcaster)(nil)
