package usecases

import (
	"context"

	"github.com/disgoorg/snowflake/v2"

	"github.com/mwestergaard/minstrel/internal/modules/music/application/ports"
	"github.com/mwestergaard/minstrel/internal/modules/music/domain"
)

// JoinInput contains the input for the Join use case.
type JoinInput struct {
	GuildID               snowflake.ID
	UserID                snowflake.ID
	NotificationChannelID snowflake.ID
}

// JoinOutput contains the result of the Join use case.
type JoinOutput struct {
	VoiceChannelID snowflake.ID
}

// VoiceChannelService handles voice channel membership.
type VoiceChannelService struct {
	repo            domain.GuildStateRepository
	voiceConnection ports.VoiceConnection
	voiceState      ports.VoiceStateProvider
}

// NewVoiceChannelService creates a new VoiceChannelService.
func NewVoiceChannelService(
	repo domain.GuildStateRepository,
	voiceConnection ports.VoiceConnection,
	voiceState ports.VoiceStateProvider,
) *VoiceChannelService {
	return &VoiceChannelService{
		repo:            repo,
		voiceConnection: voiceConnection,
		voiceState:      voiceState,
	}
}

// Join connects the bot to the requesting user's voice channel.
func (v *VoiceChannelService) Join(ctx context.Context, input JoinInput) (*JoinOutput, error) {
	userChannel, err := v.voiceState.GetUserVoiceChannel(input.GuildID, input.UserID)
	if err != nil {
		return nil, err
	}
	if userChannel == nil {
		return nil, ErrUserNotInVoice
	}

	state := v.repo.GetOrCreate(input.GuildID)

	// Already in the requested channel, just refresh the notification channel
	if v.voiceConnection.IsConnected(input.GuildID) && state.VoiceChannelID() == *userChannel {
		state.SetNotificationChannelID(input.NotificationChannelID)
		return &JoinOutput{VoiceChannelID: *userChannel}, nil
	}

	if err := v.voiceConnection.JoinChannel(ctx, input.GuildID, *userChannel); err != nil {
		return nil, err
	}

	state.SetVoiceChannelID(*userChannel)
	state.SetNotificationChannelID(input.NotificationChannelID)

	return &JoinOutput{VoiceChannelID: *userChannel}, nil
}

// EnsureJoined joins the user's voice channel unless already connected.
// Used by the play command so a bare `play` works without a prior `join`.
func (v *VoiceChannelService) EnsureJoined(ctx context.Context, input JoinInput) error {
	userChannel, err := v.voiceState.GetUserVoiceChannel(input.GuildID, input.UserID)
	if err != nil {
		return err
	}
	if userChannel == nil {
		return ErrUserNotInVoice
	}

	if v.voiceConnection.IsConnected(input.GuildID) {
		return nil
	}

	if err := v.voiceConnection.JoinChannel(ctx, input.GuildID, *userChannel); err != nil {
		return err
	}

	state := v.repo.GetOrCreate(input.GuildID)
	state.SetVoiceChannelID(*userChannel)
	state.SetNotificationChannelID(input.NotificationChannelID)

	return nil
}

// Leave disconnects from the voice channel and evicts the guild state so
// idle guilds do not accumulate for the process lifetime.
func (v *VoiceChannelService) Leave(ctx context.Context, guildID snowflake.ID) error {
	if !v.voiceConnection.IsConnected(guildID) {
		return ErrNotConnected
	}

	if err := v.voiceConnection.LeaveChannel(ctx, guildID); err != nil {
		return err
	}

	v.repo.Delete(guildID)
	return nil
}
