package infrastructure

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/disgoorg/snowflake/v2"

	"github.com/mwestergaard/minstrel/internal/modules/music/domain"
)

func TestChannelEventBus_DeliversTracksEnqueued(t *testing.T) {
	bus := NewChannelEventBus(DefaultEventBufferSize)
	defer bus.Close()

	var wg sync.WaitGroup
	wg.Add(1)

	var received domain.TracksEnqueuedEvent
	bus.OnTracksEnqueued(func(_ context.Context, event domain.TracksEnqueuedEvent) {
		received = event
		wg.Done()
	})

	bus.PublishTracksEnqueued(domain.TracksEnqueuedEvent{
		GuildID:   snowflake.ID(1),
		ChannelID: snowflake.ID(2),
		Count:     3,
		WasIdle:   true,
	})

	waitWithTimeout(t, &wg)

	if received.GuildID != snowflake.ID(1) {
		t.Errorf("expected guild 1, got %d", received.GuildID)
	}
	if received.Count != 3 || !received.WasIdle {
		t.Errorf("unexpected event payload: %+v", received)
	}
}

func TestChannelEventBus_DeliversTrackEndedWithError(t *testing.T) {
	bus := NewChannelEventBus(DefaultEventBufferSize)
	defer bus.Close()

	var wg sync.WaitGroup
	wg.Add(1)

	playbackErr := errors.New("stream broke")
	var received domain.TrackEndedEvent
	bus.OnTrackEnded(func(_ context.Context, event domain.TrackEndedEvent) {
		received = event
		wg.Done()
	})

	bus.PublishTrackEnded(domain.TrackEndedEvent{GuildID: snowflake.ID(7), Err: playbackErr})

	waitWithTimeout(t, &wg)

	if !errors.Is(received.Err, playbackErr) {
		t.Errorf("expected playback error to be delivered, got %v", received.Err)
	}
}

func TestChannelEventBus_MultipleHandlers(t *testing.T) {
	bus := NewChannelEventBus(DefaultEventBufferSize)
	defer bus.Close()

	var wg sync.WaitGroup
	wg.Add(2)

	var mu sync.Mutex
	calls := 0
	handler := func(_ context.Context, _ domain.QueueDrainedEvent) {
		mu.Lock()
		calls++
		mu.Unlock()
		wg.Done()
	}

	bus.OnQueueDrained(handler)
	bus.OnQueueDrained(handler)

	bus.PublishQueueDrained(domain.QueueDrainedEvent{GuildID: snowflake.ID(1)})

	waitWithTimeout(t, &wg)

	mu.Lock()
	defer mu.Unlock()
	if calls != 2 {
		t.Errorf("expected 2 handler calls, got %d", calls)
	}
}

func TestChannelEventBus_PublishAfterCloseDoesNotPanic(t *testing.T) {
	bus := NewChannelEventBus(DefaultEventBufferSize)
	bus.Close()

	// Must not panic or block
	bus.PublishPlaybackStarted(domain.PlaybackStartedEvent{GuildID: snowflake.ID(1)})
	bus.PublishTrackEnded(domain.TrackEndedEvent{GuildID: snowflake.ID(1)})
}

func waitWithTimeout(t *testing.T, wg *sync.WaitGroup) {
	t.Helper()

	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for event delivery")
	}
}
