package usecases

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/disgoorg/snowflake/v2"

	"github.com/mwestergaard/minstrel/internal/modules/music/application/ports"
	"github.com/mwestergaard/minstrel/internal/modules/music/domain"
)

const (
	// maxAdvanceRetries bounds consecutive stream resolution failures per
	// advance before playback halts.
	maxAdvanceRetries = 3

	// streamResolveTimeout bounds each stream resolution attempt.
	streamResolveTimeout = 30 * time.Second
)

// SequencerService advances a guild's queue: it pops the next track,
// resolves its concrete stream, and hands it to the voice transport.
type SequencerService struct {
	repo      domain.GuildStateRepository
	extractor ports.MediaExtractor
	player    ports.AudioPlayer
	notifier  ports.NotificationSender
	publisher ports.EventPublisher
}

// NewSequencerService creates a new SequencerService.
func NewSequencerService(
	repo domain.GuildStateRepository,
	extractor ports.MediaExtractor,
	player ports.AudioPlayer,
	notifier ports.NotificationSender,
	publisher ports.EventPublisher,
) *SequencerService {
	return &SequencerService{
		repo:      repo,
		extractor: extractor,
		player:    player,
		notifier:  notifier,
		publisher: publisher,
	}
}

// Advance starts the next playable track. Advances are serialized per guild
// by a single-slot token: if another advance is in progress this call is a
// no-op. Tracks whose stream cannot be resolved are skipped with a notice,
// up to a budget of three consecutive failures.
func (s *SequencerService) Advance(ctx context.Context, guildID, channelID snowflake.ID) {
	state := s.repo.Get(guildID)
	if state == nil {
		return
	}

	if !state.TryBeginAdvance() {
		return
	}
	defer state.EndAdvance()

	// A track may have started between the triggering event and now, e.g.
	// two enqueues both observed an idle guild. Never preempt it.
	if state.IsPlaying() {
		return
	}

	failures := 0
	for failures < maxAdvanceRetries {
		track := state.PopNext()
		if track == nil {
			break
		}

		stream, err := s.resolveStream(ctx, track)
		if err != nil {
			failures++
			slog.Warn("failed to resolve track stream",
				"guild", guildID, "track", track.Title, "error", err)
			s.warnSkipped(channelID, track, failures)
			continue
		}

		track.StreamURL = stream.URL
		if err := s.player.Play(ctx, guildID, stream.URL); err != nil {
			failures++
			slog.Warn("failed to start playback",
				"guild", guildID, "track", track.Title, "error", err)
			s.warnSkipped(channelID, track, failures)
			continue
		}

		state.SetCurrentTrack(track)
		slog.Info("started playback", "guild", guildID, "track", track.Title)

		s.publisher.PublishPlaybackStarted(domain.PlaybackStartedEvent{
			GuildID:   guildID,
			ChannelID: channelID,
			Track:     track,
		})
		return
	}

	// Nothing started: the queue drained or the retry budget ran out.
	state.ClearCurrentTrack()

	if failures >= maxAdvanceRetries {
		_ = s.notifier.SendError(channelID, "Could not play any more songs due to errors")
	}

	s.publisher.PublishQueueDrained(domain.QueueDrainedEvent{
		GuildID:   guildID,
		ChannelID: channelID,
	})
}

// warnSkipped notifies about an unplayable track, except on the failure that
// exhausts the retry budget, where the halt notice speaks instead.
func (s *SequencerService) warnSkipped(channelID snowflake.ID, track *domain.Track, failures int) {
	if failures >= maxAdvanceRetries {
		return
	}
	_ = s.notifier.SendWarning(channelID,
		fmt.Sprintf("Skipping unavailable song: %s", track.Title))
}

func (s *SequencerService) resolveStream(ctx context.Context, track *domain.Track) (*ports.StreamInfo, error) {
	resolveCtx, cancel := context.WithTimeout(ctx, streamResolveTimeout)
	defer cancel()
	return s.extractor.ResolveStream(resolveCtx, track.Locator)
}
