package ports

import (
	"context"

	"github.com/disgoorg/snowflake/v2"
)

// AudioPlayer defines the interface for audio playback over the voice
// transport. Completion is delivered as a TrackEndedEvent on the event bus,
// never as a callback into guild state.
type AudioPlayer interface {
	// Play starts streaming the given resolved stream URL to the guild's
	// voice connection.
	Play(ctx context.Context, guildID snowflake.ID, streamURL string) error

	// Stop stops the current playback.
	Stop(ctx context.Context, guildID snowflake.ID) error

	// Pause pauses the current playback.
	Pause(ctx context.Context, guildID snowflake.ID) error

	// Resume resumes the paused playback.
	Resume(ctx context.Context, guildID snowflake.ID) error

	// IsPlaying returns true if audio is being streamed (paused or not).
	IsPlaying(guildID snowflake.ID) bool

	// IsPaused returns true if the stream is currently paused.
	IsPaused(guildID snowflake.ID) bool
}
