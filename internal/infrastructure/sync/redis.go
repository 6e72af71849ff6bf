package sync

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"treefnio/internal/domain/settings"
	"treefnio/pkg/logger"
)

// DefaultChannel is the Pub/Sub channel for settings changes.
const DefaultChannel = "treefnio:settings"

// RedisBroadcaster relays change events through Redis Pub/Sub so that all
// server instances (and their watch subscribers) see every change.
type RedisBroadcaster struct {
	client  *redis.Client
	channel string
}

// RedisOption configures the broadcaster.
type RedisOption func(*RedisBroadcaster)

// WithChannel overrides the Pub/Sub channel name.
func WithChannel(channel string) RedisOption {
	return func(b *RedisBroadcaster) { b.channel = channel }
}

// NewRedisBroadcaster creates a broadcaster over an existing client.
// The caller owns the client and closes it.
func NewRedisBroadcaster(client *redis.Client, opts ...RedisOption) (*RedisBroadcaster, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("connect to redis: %w", err)
	}

	b := &RedisBroadcaster{client: client, channel: DefaultChannel}
	for _, opt := range opts {
		opt(b)
	}
	return b, nil
}

// Publish sends the event to all instances.
func (b *RedisBroadcaster) Publish(ctx context.Context, event settings.ChangeEvent) error {
	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}
	if err := b.client.Publish(ctx, b.channel, data).Err(); err != nil {
		return fmt.Errorf("publish event: %w", err)
	}
	return nil
}

// Subscribe blocks, delivering events to the callback until ctx is
// cancelled. Malformed payloads are logged and skipped.
func (b *RedisBroadcaster) Subscribe(ctx context.Context, callback func(settings.ChangeEvent)) error {
	pubsub := b.client.Subscribe(ctx, b.channel)
	defer pubsub.Close()

	if _, err := pubsub.Receive(ctx); err != nil {
		return fmt.Errorf("subscribe to channel: %w", err)
	}

	logger.Info(ctx, "subscribed to settings channel", "channel", b.channel)

	ch := pubsub.Channel()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case msg, ok := <-ch:
			if !ok {
				return nil
			}
			var event settings.ChangeEvent
			if err := json.Unmarshal([]byte(msg.Payload), &event); err != nil {
				logger.Warn(ctx, "malformed settings event", "error", err)
				continue
			}
			callback(event)
		}
	}
}

// Close is a no-op: the Redis client is owned by the caller.
func (b *RedisBroadcaster) Close() error {
	return nil
}

var _ settings.Broadcaster = (*RedisBroadcaster)(nil)
