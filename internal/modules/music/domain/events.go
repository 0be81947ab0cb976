package domain

import (
	"github.com/disgoorg/snowflake/v2"
)

// TracksEnqueuedEvent is published when tracks are added to a guild's queue.
type TracksEnqueuedEvent struct {
	GuildID   snowflake.ID
	ChannelID snowflake.ID // text channel the request came from
	Count     int
	WasIdle   bool // true if nothing was playing when the tracks were enqueued
}

// PlaybackStartedEvent is published when a track starts playing.
type PlaybackStartedEvent struct {
	GuildID   snowflake.ID
	ChannelID snowflake.ID
	Track     *Track
}

// TrackEndedEvent is published when the voice transport finishes a track,
// either naturally or with an error. Completion is always delivered through
// the event bus so transport goroutines never touch guild state directly.
type TrackEndedEvent struct {
	GuildID   snowflake.ID
	ChannelID snowflake.ID
	Err       error // nil on natural completion
}

// QueueDrainedEvent is published when the sequencer runs out of tracks.
type QueueDrainedEvent struct {
	GuildID   snowflake.ID
	ChannelID snowflake.ID
}
