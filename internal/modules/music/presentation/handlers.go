package presentation

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/disgoorg/snowflake/v2"

	"github.com/mwestergaard/minstrel/internal/modules/music/application/ports"
	"github.com/mwestergaard/minstrel/internal/modules/music/application/usecases"
)

// resolveTimeout bounds a single play request, including catalog lookups and
// per-entry media searches for large playlists.
const resolveTimeout = 2 * time.Minute

// Handlers implements the guild-scoped operations behind both the prefix
// commands and the player control buttons. Both surfaces dispatch into the
// same methods.
type Handlers struct {
	resolver     *usecases.ResolverService
	playback     *usecases.PlaybackService
	queue        *usecases.QueueService
	voiceChannel *usecases.VoiceChannelService
	notifier     ports.NotificationSender
}

// NewHandlers creates new Handlers.
func NewHandlers(
	resolver *usecases.ResolverService,
	playback *usecases.PlaybackService,
	queue *usecases.QueueService,
	voiceChannel *usecases.VoiceChannelService,
	notifier ports.NotificationSender,
) *Handlers {
	return &Handlers{
		resolver:     resolver,
		playback:     playback,
		queue:        queue,
		voiceChannel: voiceChannel,
		notifier:     notifier,
	}
}

// userFacing reports whether the error describes a user-correctable
// condition rather than an internal failure.
func userFacing(err error) bool {
	for _, candidate := range []error{
		usecases.ErrNotConnected,
		usecases.ErrUserNotInVoice,
		usecases.ErrNotPlaying,
		usecases.ErrNotPaused,
		usecases.ErrQueueEmpty,
		usecases.ErrNoResults,
		usecases.ErrEmptyQuery,
	} {
		if errors.Is(err, candidate) {
			return true
		}
	}
	return false
}

// reply renders user-correctable errors as an error embed in the channel and
// swallows them; anything else propagates to the bot's generic handler.
func (h *Handlers) reply(channelID snowflake.ID, err error) error {
	if err == nil {
		return nil
	}
	if userFacing(err) {
		return h.notifier.SendError(channelID, err.Error())
	}
	return err
}

func (h *Handlers) play(guildID, channelID, userID snowflake.ID, query string) error {
	ctx, cancel := context.WithTimeout(context.Background(), resolveTimeout)
	defer cancel()

	err := h.voiceChannel.EnsureJoined(ctx, usecases.JoinInput{
		GuildID:               guildID,
		UserID:                userID,
		NotificationChannelID: channelID,
	})
	if err != nil {
		return h.reply(channelID, err)
	}

	_, err = h.resolver.Play(ctx, usecases.PlayInput{
		GuildID:     guildID,
		ChannelID:   channelID,
		RequesterID: userID,
		Query:       query,
	})
	return h.reply(channelID, err)
}

func (h *Handlers) skip(guildID, channelID snowflake.ID) error {
	if err := h.playback.Skip(context.Background(), guildID); err != nil {
		return h.reply(channelID, err)
	}
	return h.notifier.SendSuccess(channelID, "Skipped the current song")
}

func (h *Handlers) pause(guildID, channelID snowflake.ID) error {
	if err := h.playback.Pause(context.Background(), guildID); err != nil {
		return h.reply(channelID, err)
	}
	return h.notifier.SendSuccess(channelID, "Paused the current song")
}

func (h *Handlers) resume(guildID, channelID snowflake.ID) error {
	if err := h.playback.Resume(context.Background(), guildID); err != nil {
		return h.reply(channelID, err)
	}
	return h.notifier.SendSuccess(channelID, "Resumed the current song")
}

// pauseResume toggles between pause and resume based on the current state.
func (h *Handlers) pauseResume(guildID, channelID snowflake.ID) error {
	if h.playback.IsPaused(guildID) {
		return h.resume(guildID, channelID)
	}
	return h.pause(guildID, channelID)
}

func (h *Handlers) stop(guildID, channelID snowflake.ID) error {
	if err := h.playback.Stop(context.Background(), guildID); err != nil {
		return h.reply(channelID, err)
	}
	return h.notifier.SendSuccess(channelID, "Stopped the music and cleared the queue")
}

func (h *Handlers) join(guildID, channelID, userID snowflake.ID) error {
	output, err := h.voiceChannel.Join(context.Background(), usecases.JoinInput{
		GuildID:               guildID,
		UserID:                userID,
		NotificationChannelID: channelID,
	})
	if err != nil {
		return h.reply(channelID, err)
	}
	return h.notifier.SendSuccess(channelID, fmt.Sprintf("Joined <#%s>", output.VoiceChannelID))
}

func (h *Handlers) leave(guildID, channelID snowflake.ID) error {
	if err := h.voiceChannel.Leave(context.Background(), guildID); err != nil {
		return h.reply(channelID, err)
	}
	return h.notifier.SendSuccess(channelID, "Disconnected from voice channel")
}

func (h *Handlers) showQueue(guildID, channelID snowflake.ID) error {
	view := h.queue.View(guildID)
	return h.notifier.SendPlayerStatus(channelID, view.Current, view.Upcoming)
}

func (h *Handlers) shuffleQueue(guildID, channelID snowflake.ID) error {
	if err := h.queue.Shuffle(guildID); err != nil {
		return h.reply(channelID, err)
	}
	return h.notifier.SendSuccess(channelID, "Queue has been shuffled!")
}

func (h *Handlers) clearQueue(guildID, channelID snowflake.ID) error {
	if err := h.queue.Clear(guildID); err != nil {
		return h.reply(channelID, err)
	}
	return h.notifier.SendSuccess(channelID, "Queue has been cleared!")
}
