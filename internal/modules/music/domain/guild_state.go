package domain

import (
	"sync"

	"github.com/disgoorg/snowflake/v2"
)

// GuildState holds the playback state for one guild. All mutators take an
// internal mutex so queue operations are atomic with respect to concurrent
// command handlers and the sequencer.
type GuildState struct {
	mu                    sync.Mutex
	guildID               snowflake.ID
	voiceChannelID        snowflake.ID
	notificationChannelID snowflake.ID
	queue                 Queue
	currentTrack          *Track
	playing               bool
	advancing             bool
	stopRequested         bool
}

// NewGuildState creates a new GuildState for the given guild.
func NewGuildState(guildID snowflake.ID) *GuildState {
	return &GuildState{
		guildID: guildID,
		queue:   NewQueue(),
	}
}

// GuildID returns the guild ID.
func (s *GuildState) GuildID() snowflake.ID {
	// No mutex: guildID is never modified after creation
	return s.guildID
}

// VoiceChannelID returns the voice channel the bot is connected to.
func (s *GuildState) VoiceChannelID() snowflake.ID {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.voiceChannelID
}

// SetVoiceChannelID updates the connected voice channel.
func (s *GuildState) SetVoiceChannelID(channelID snowflake.ID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.voiceChannelID = channelID
}

// NotificationChannelID returns the text channel used for notifications.
func (s *GuildState) NotificationChannelID() snowflake.ID {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.notificationChannelID
}

// SetNotificationChannelID updates the notification channel.
func (s *GuildState) SetNotificationChannelID(channelID snowflake.ID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.notificationChannelID = channelID
}

// Enqueue appends tracks to the pending queue. Returns true if nothing was
// playing at the time, meaning the caller should kick the sequencer.
func (s *GuildState) Enqueue(tracks ...*Track) (wasIdle bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	wasIdle = !s.playing
	s.queue.Append(tracks...)
	return wasIdle
}

// PopNext removes and returns the next pending track, or nil if none.
func (s *GuildState) PopNext() *Track {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.queue.PopFront()
}

// QueueLen returns the number of pending tracks.
func (s *GuildState) QueueLen() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.queue.Len()
}

// QueueSnapshot returns a copy of the pending tracks in order.
func (s *GuildState) QueueSnapshot() []*Track {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.queue.List()
}

// ShuffleQueue randomly permutes the pending tracks. Returns false if the
// queue was empty.
func (s *GuildState) ShuffleQueue() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.queue.IsEmpty() {
		return false
	}
	s.queue.Shuffle()
	return true
}

// ClearQueue removes all pending tracks. Returns false if the queue was
// already empty.
func (s *GuildState) ClearQueue() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.queue.IsEmpty() {
		return false
	}
	s.queue.Clear()
	return true
}

// CurrentTrack returns the currently playing track, or nil if idle.
func (s *GuildState) CurrentTrack() *Track {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.currentTrack
}

// SetCurrentTrack marks a track as actively playing.
func (s *GuildState) SetCurrentTrack(track *Track) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.currentTrack = track
	s.playing = true
}

// ClearCurrentTrack marks the guild as idle.
func (s *GuildState) ClearCurrentTrack() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.currentTrack = nil
	s.playing = false
}

// IsPlaying returns true if a track is actively handed to the voice
// transport. Pause does not affect this; the transport owns the paused bit.
func (s *GuildState) IsPlaying() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.playing
}

// TryBeginAdvance acquires the single-slot advance token for this guild.
// Returns false if another advance is already in progress, in which case the
// caller must not proceed.
func (s *GuildState) TryBeginAdvance() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.advancing {
		return false
	}
	s.advancing = true
	return true
}

// EndAdvance releases the advance token.
func (s *GuildState) EndAdvance() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.advancing = false
}

// RequestStop marks that the next track completion was caused by an explicit
// stop, so the sequencer should not continue to the next track.
func (s *GuildState) RequestStop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stopRequested = true
}

// ConsumeStopRequest returns true exactly once after RequestStop was called.
func (s *GuildState) ConsumeStopRequest() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	requested := s.stopRequested
	s.stopRequested = false
	return requested
}
