package usecases

import "errors"

// User-facing errors for the music module. These are checked before any
// state mutation and rendered verbatim in error embeds.
var (
	// ErrNotConnected is returned when an operation requires the bot to be in a voice channel.
	ErrNotConnected = errors.New("the bot is not connected to a voice channel")

	// ErrUserNotInVoice is returned when the user is not in a voice channel.
	ErrUserNotInVoice = errors.New("you need to be in a voice channel to do that")

	// ErrNotPlaying is returned when no track is currently playing.
	ErrNotPlaying = errors.New("nothing is playing right now")

	// ErrNotPaused is returned when trying to resume while not paused.
	ErrNotPaused = errors.New("the music is not paused")

	// ErrQueueEmpty is returned when the queue is empty.
	ErrQueueEmpty = errors.New("the queue is empty")

	// ErrNoResults is returned when resolution yields no playable tracks.
	ErrNoResults = errors.New("could not find any valid songs to play")

	// ErrEmptyQuery is returned when the play command carries no query.
	ErrEmptyQuery = errors.New("you need to provide a link or a search term")
)
