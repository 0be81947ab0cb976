package infrastructure

import (
	"context"
	"log/slog"
	"sync"

	"github.com/mwestergaard/minstrel/internal/modules/music/application/ports"
	"github.com/mwestergaard/minstrel/internal/modules/music/domain"
)

// DefaultEventBufferSize is the default buffer size for event channels.
const DefaultEventBufferSize = 100

// Compile-time checks that ChannelEventBus implements ports interfaces.
var (
	_ ports.EventPublisher  = (*ChannelEventBus)(nil)
	_ ports.EventSubscriber = (*ChannelEventBus)(nil)
)

// ChannelEventBus provides a channel-based event bus for async event handling.
// It implements both EventPublisher and EventSubscriber interfaces. All
// handlers for one event type run on the same dispatcher goroutine, which is
// what marshals voice transport completions off their own goroutine.
type ChannelEventBus struct {
	tracksEnqueued  chan domain.TracksEnqueuedEvent
	playbackStarted chan domain.PlaybackStartedEvent
	trackEnded      chan domain.TrackEndedEvent
	queueDrained    chan domain.QueueDrainedEvent

	tracksEnqueuedHandlers  []func(context.Context, domain.TracksEnqueuedEvent)
	playbackStartedHandlers []func(context.Context, domain.PlaybackStartedEvent)
	trackEndedHandlers      []func(context.Context, domain.TrackEndedEvent)
	queueDrainedHandlers    []func(context.Context, domain.QueueDrainedEvent)

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
	closed bool
	mu     sync.RWMutex
}

// NewChannelEventBus creates a new ChannelEventBus with the given buffer size.
func NewChannelEventBus(bufferSize int) *ChannelEventBus {
	if bufferSize <= 0 {
		bufferSize = DefaultEventBufferSize
	}

	ctx, cancel := context.WithCancel(context.Background())

	bus := &ChannelEventBus{
		tracksEnqueued:  make(chan domain.TracksEnqueuedEvent, bufferSize),
		playbackStarted: make(chan domain.PlaybackStartedEvent, bufferSize),
		trackEnded:      make(chan domain.TrackEndedEvent, bufferSize),
		queueDrained:    make(chan domain.QueueDrainedEvent, bufferSize),
		ctx:             ctx,
		cancel:          cancel,
	}

	bus.startDispatchers()

	return bus
}

func (b *ChannelEventBus) startDispatchers() {
	b.wg.Add(4)

	go b.dispatchTracksEnqueued()
	go b.dispatchPlaybackStarted()
	go b.dispatchTrackEnded()
	go b.dispatchQueueDrained()
}

func (b *ChannelEventBus) dispatchTracksEnqueued() {
	defer b.wg.Done()
	for {
		select {
		case <-b.ctx.Done():
			return
		case event, ok := <-b.tracksEnqueued:
			if !ok {
				return
			}
			b.mu.RLock()
			handlers := b.tracksEnqueuedHandlers
			b.mu.RUnlock()
			for _, handler := range handlers {
				handler(b.ctx, event)
			}
		}
	}
}

func (b *ChannelEventBus) dispatchPlaybackStarted() {
	defer b.wg.Done()
	for {
		select {
		case <-b.ctx.Done():
			return
		case event, ok := <-b.playbackStarted:
			if !ok {
				return
			}
			b.mu.RLock()
			handlers := b.playbackStartedHandlers
			b.mu.RUnlock()
			for _, handler := range handlers {
				handler(b.ctx, event)
			}
		}
	}
}

func (b *ChannelEventBus) dispatchTrackEnded() {
	defer b.wg.Done()
	for {
		select {
		case <-b.ctx.Done():
			return
		case event, ok := <-b.trackEnded:
			if !ok {
				return
			}
			b.mu.RLock()
			handlers := b.trackEndedHandlers
			b.mu.RUnlock()
			for _, handler := range handlers {
				handler(b.ctx, event)
			}
		}
	}
}

func (b *ChannelEventBus) dispatchQueueDrained() {
	defer b.wg.Done()
	for {
		select {
		case <-b.ctx.Done():
			return
		case event, ok := <-b.queueDrained:
			if !ok {
				return
			}
			b.mu.RLock()
			handlers := b.queueDrainedHandlers
			b.mu.RUnlock()
			for _, handler := range handlers {
				handler(b.ctx, event)
			}
		}
	}
}

// --- EventPublisher interface ---

// PublishTracksEnqueued publishes a TracksEnqueuedEvent.
// Non-blocking: if the channel buffer is full, the event is dropped with a warning.
func (b *ChannelEventBus) PublishTracksEnqueued(event domain.TracksEnqueuedEvent) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if b.closed {
		slog.Warn("attempted to publish to closed event bus", "type", "TracksEnqueued")
		return
	}

	select {
	case b.tracksEnqueued <- event:
		slog.Debug("published event", "type", "TracksEnqueued", "guild", event.GuildID)
	default:
		slog.Warn("event buffer full, dropping event", "type", "TracksEnqueued")
	}
}

// PublishPlaybackStarted publishes a PlaybackStartedEvent.
// Non-blocking: if the channel buffer is full, the event is dropped with a warning.
func (b *ChannelEventBus) PublishPlaybackStarted(event domain.PlaybackStartedEvent) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if b.closed {
		slog.Warn("attempted to publish to closed event bus", "type", "PlaybackStarted")
		return
	}

	select {
	case b.playbackStarted <- event:
		slog.Debug("published event", "type", "PlaybackStarted", "guild", event.GuildID)
	default:
		slog.Warn("event buffer full, dropping event", "type", "PlaybackStarted")
	}
}

// PublishTrackEnded publishes a TrackEndedEvent.
// Non-blocking: if the channel buffer is full, the event is dropped with a warning.
func (b *ChannelEventBus) PublishTrackEnded(event domain.TrackEndedEvent) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if b.closed {
		slog.Warn("attempted to publish to closed event bus", "type", "TrackEnded")
		return
	}

	select {
	case b.trackEnded <- event:
		slog.Debug("published event", "type", "TrackEnded", "guild", event.GuildID)
	default:
		slog.Warn("event buffer full, dropping event", "type", "TrackEnded")
	}
}

// PublishQueueDrained publishes a QueueDrainedEvent.
// Non-blocking: if the channel buffer is full, the event is dropped with a warning.
func (b *ChannelEventBus) PublishQueueDrained(event domain.QueueDrainedEvent) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if b.closed {
		slog.Warn("attempted to publish to closed event bus", "type", "QueueDrained")
		return
	}

	select {
	case b.queueDrained <- event:
		slog.Debug("published event", "type", "QueueDrained", "guild", event.GuildID)
	default:
		slog.Warn("event buffer full, dropping event", "type", "QueueDrained")
	}
}

// --- EventSubscriber interface ---

// OnTracksEnqueued registers a handler for TracksEnqueuedEvent.
func (b *ChannelEventBus) OnTracksEnqueued(
	handler func(context.Context, domain.TracksEnqueuedEvent),
) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.tracksEnqueuedHandlers = append(b.tracksEnqueuedHandlers, handler)
}

// OnPlaybackStarted registers a handler for PlaybackStartedEvent.
func (b *ChannelEventBus) OnPlaybackStarted(
	handler func(context.Context, domain.PlaybackStartedEvent),
) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.playbackStartedHandlers = append(b.playbackStartedHandlers, handler)
}

// OnTrackEnded registers a handler for TrackEndedEvent.
func (b *ChannelEventBus) OnTrackEnded(handler func(context.Context, domain.TrackEndedEvent)) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.trackEndedHandlers = append(b.trackEndedHandlers, handler)
}

// OnQueueDrained registers a handler for QueueDrainedEvent.
func (b *ChannelEventBus) OnQueueDrained(handler func(context.Context, domain.QueueDrainedEvent)) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.queueDrainedHandlers = append(b.queueDrainedHandlers, handler)
}

// Close closes all event channels and stops dispatchers.
// After calling Close, publishing will no longer send events.
func (b *ChannelEventBus) Close() {
	b.mu.Lock()
	if b.closed {
		b.mu.Unlock()
		return
	}
	b.closed = true
	b.mu.Unlock()

	// Cancel context to stop dispatchers
	b.cancel()

	// Close channels to unblock any pending reads
	close(b.tracksEnqueued)
	close(b.playbackStarted)
	close(b.trackEnded)
	close(b.queueDrained)

	// Wait for dispatchers to finish
	b.wg.Wait()

	slog.Debug("channel event bus closed")
}
