package ports

import (
	"context"

	"github.com/mwestergaard/minstrel/internal/modules/music/domain"
)

// EventPublisher defines the interface for publishing playback events
// asynchronously.
type EventPublisher interface {
	PublishTracksEnqueued(event domain.TracksEnqueuedEvent)
	PublishPlaybackStarted(event domain.PlaybackStartedEvent)
	PublishTrackEnded(event domain.TrackEndedEvent)
	PublishQueueDrained(event domain.QueueDrainedEvent)
}

// EventSubscriber defines the interface for subscribing to playback events.
// Handlers are invoked on the bus's dispatcher goroutine.
type EventSubscriber interface {
	OnTracksEnqueued(handler func(context.Context, domain.TracksEnqueuedEvent))
	OnPlaybackStarted(handler func(context.Context, domain.PlaybackStartedEvent))
	OnTrackEnded(handler func(context.Context, domain.TrackEndedEvent))
	OnQueueDrained(handler func(context.Context, domain.QueueDrainedEvent))
}
