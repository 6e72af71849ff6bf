package sync

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"treefnio/internal/domain/settings"
)

func TestMemoryBroadcaster_PublishReachesSubscriber(t *testing.T) {
	b := NewMemoryBroadcaster()
	defer b.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	received := make(chan settings.ChangeEvent, 1)
	go func() {
		_ = b.Subscribe(ctx, func(e settings.ChangeEvent) {
			received <- e
		})
	}()

	// Let the subscriber register before publishing
	require.Eventually(t, func() bool {
		b.mu.Lock()
		defer b.mu.Unlock()
		return len(b.subs) == 1
	}, time.Second, 5*time.Millisecond)

	err := b.Publish(context.Background(), settings.ChangeEvent{
		Action: settings.ActionUpdated,
		Key:    "theme",
	})
	require.NoError(t, err)

	select {
	case e := <-received:
		assert.Equal(t, "theme", e.Key)
		assert.Equal(t, settings.ActionUpdated, e.Action)
	case <-time.After(time.Second):
		t.Fatal("event not delivered")
	}
}

func TestMemoryBroadcaster_SubscribeStopsOnCancel(t *testing.T) {
	b := NewMemoryBroadcaster()
	defer b.Close()

	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	go func() {
		done <- b.Subscribe(ctx, func(settings.ChangeEvent) {})
	}()

	cancel()

	select {
	case err := <-done:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(time.Second):
		t.Fatal("subscribe did not return after cancel")
	}
}

func TestMemoryBroadcaster_PublishWithoutSubscribers(t *testing.T) {
	b := NewMemoryBroadcaster()
	defer b.Close()

	err := b.Publish(context.Background(), settings.ChangeEvent{Key: "x"})
	assert.NoError(t, err)
}

func TestMemoryBroadcaster_CloseDisconnectsSubscribers(t *testing.T) {
	b := NewMemoryBroadcaster()

	done := make(chan error, 1)
	go func() {
		done <- b.Subscribe(context.Background(), func(settings.ChangeEvent) {})
	}()

	require.Eventually(t, func() bool {
		b.mu.Lock()
		defer b.mu.Unlock()
		return len(b.subs) == 1
	}, time.Second, 5*time.Millisecond)

	require.NoError(t, b.Close())

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("subscriber not released on close")
	}
}
