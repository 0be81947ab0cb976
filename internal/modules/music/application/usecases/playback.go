package usecases

import (
	"context"

	"github.com/disgoorg/snowflake/v2"

	"github.com/mwestergaard/minstrel/internal/modules/music/application/ports"
	"github.com/mwestergaard/minstrel/internal/modules/music/domain"
)

// PlaybackService handles pause, resume, skip, and stop.
type PlaybackService struct {
	repo   domain.GuildStateRepository
	player ports.AudioPlayer
}

// NewPlaybackService creates a new PlaybackService.
func NewPlaybackService(repo domain.GuildStateRepository, player ports.AudioPlayer) *PlaybackService {
	return &PlaybackService{
		repo:   repo,
		player: player,
	}
}

// Pause pauses the current playback.
func (p *PlaybackService) Pause(ctx context.Context, guildID snowflake.ID) error {
	if !p.player.IsPlaying(guildID) || p.player.IsPaused(guildID) {
		return ErrNotPlaying
	}
	return p.player.Pause(ctx, guildID)
}

// Resume resumes the paused playback.
func (p *PlaybackService) Resume(ctx context.Context, guildID snowflake.ID) error {
	if !p.player.IsPaused(guildID) {
		return ErrNotPaused
	}
	return p.player.Resume(ctx, guildID)
}

// Skip stops the current track. The transport's completion event drives the
// sequencer to the next queued track.
func (p *PlaybackService) Skip(ctx context.Context, guildID snowflake.ID) error {
	state := p.repo.Get(guildID)
	if state == nil || !state.IsPlaying() {
		return ErrNotPlaying
	}
	return p.player.Stop(ctx, guildID)
}

// Stop clears the queue and stops playback entirely.
func (p *PlaybackService) Stop(ctx context.Context, guildID snowflake.ID) error {
	state := p.repo.Get(guildID)
	if state == nil || !state.IsPlaying() {
		return ErrNotPlaying
	}

	state.ClearQueue()
	state.RequestStop()
	return p.player.Stop(ctx, guildID)
}

// IsPaused reports whether the guild's transport is paused. Used by the
// pause/resume toggle button.
func (p *PlaybackService) IsPaused(guildID snowflake.ID) bool {
	return p.player.IsPaused(guildID)
}

// IsPlaying reports whether the guild's transport is streaming.
func (p *PlaybackService) IsPlaying(guildID snowflake.ID) bool {
	return p.player.IsPlaying(guildID)
}
