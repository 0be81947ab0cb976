package application

import (
	"context"
	"log/slog"

	"github.com/mwestergaard/minstrel/internal/modules/music/application/ports"
	"github.com/mwestergaard/minstrel/internal/modules/music/application/usecases"
	"github.com/mwestergaard/minstrel/internal/modules/music/domain"
)

// PlaybackEventHandler bridges bus events into the sequencer and the status
// surface. All queue continuation decisions run here, on the bus dispatcher
// goroutine, so transport callbacks never mutate guild state from their own
// goroutine.
type PlaybackEventHandler struct {
	repo       domain.GuildStateRepository
	sequencer  *usecases.SequencerService
	notifier   ports.NotificationSender
	subscriber ports.EventSubscriber
}

// NewPlaybackEventHandler creates a new PlaybackEventHandler.
func NewPlaybackEventHandler(
	repo domain.GuildStateRepository,
	sequencer *usecases.SequencerService,
	notifier ports.NotificationSender,
	subscriber ports.EventSubscriber,
) *PlaybackEventHandler {
	return &PlaybackEventHandler{
		repo:       repo,
		sequencer:  sequencer,
		notifier:   notifier,
		subscriber: subscriber,
	}
}

// Start registers event handlers with the subscriber.
func (h *PlaybackEventHandler) Start() {
	h.subscriber.OnTracksEnqueued(h.handleTracksEnqueued)
	h.subscriber.OnPlaybackStarted(h.handlePlaybackStarted)
	h.subscriber.OnTrackEnded(h.handleTrackEnded)
	h.subscriber.OnQueueDrained(h.handleQueueDrained)

	slog.Debug("playback event handlers registered")
}

// handleTracksEnqueued kicks the sequencer when tracks land on an idle guild.
func (h *PlaybackEventHandler) handleTracksEnqueued(ctx context.Context, event domain.TracksEnqueuedEvent) {
	if !event.WasIdle {
		return
	}
	h.sequencer.Advance(ctx, event.GuildID, event.ChannelID)
}

// handlePlaybackStarted posts the player status embed for the new track.
func (h *PlaybackEventHandler) handlePlaybackStarted(_ context.Context, event domain.PlaybackStartedEvent) {
	var upcoming []*domain.Track
	if state := h.repo.Get(event.GuildID); state != nil {
		upcoming = state.QueueSnapshot()
	}
	_ = h.notifier.SendPlayerStatus(event.ChannelID, event.Track, upcoming)
}

// handleTrackEnded advances the queue after a track completes, whether
// naturally, by skip, or with a transport error. An explicit stop suppresses
// the continuation.
func (h *PlaybackEventHandler) handleTrackEnded(ctx context.Context, event domain.TrackEndedEvent) {
	state := h.repo.Get(event.GuildID)
	if state == nil {
		slog.Debug("track ended for unknown guild", "guild", event.GuildID)
		return
	}

	if event.Err != nil {
		slog.Warn("playback ended with error",
			"guild", event.GuildID, "error", event.Err)
	}

	state.ClearCurrentTrack()

	if state.ConsumeStopRequest() {
		slog.Debug("playback stopped explicitly, not advancing", "guild", event.GuildID)
		return
	}

	// The transport does not know the text channel; fall back to the
	// channel the last play command came from.
	channelID := event.ChannelID
	if channelID == 0 {
		channelID = state.NotificationChannelID()
	}

	h.sequencer.Advance(ctx, event.GuildID, channelID)
}

// handleQueueDrained posts the idle status embed once playback runs out.
func (h *PlaybackEventHandler) handleQueueDrained(_ context.Context, event domain.QueueDrainedEvent) {
	channelID := event.ChannelID
	if channelID == 0 {
		if state := h.repo.Get(event.GuildID); state != nil {
			channelID = state.NotificationChannelID()
		}
	}
	if channelID == 0 {
		return
	}
	_ = h.notifier.SendPlayerStatus(channelID, nil, nil)
}
