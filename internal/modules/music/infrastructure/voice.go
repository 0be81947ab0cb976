package infrastructure

import (
	"context"
	"fmt"

	"github.com/bwmarrin/discordgo"
	"github.com/disgoorg/snowflake/v2"

	"github.com/mwestergaard/minstrel/internal/modules/music/application/ports"
)

// DiscordVoiceGateway manages gateway voice connections.
type DiscordVoiceGateway struct {
	session *discordgo.Session
}

var _ ports.VoiceConnection = (*DiscordVoiceGateway)(nil)

// NewDiscordVoiceGateway creates a new DiscordVoiceGateway.
func NewDiscordVoiceGateway(session *discordgo.Session) *DiscordVoiceGateway {
	return &DiscordVoiceGateway{session: session}
}

// JoinChannel connects the bot to the specified voice channel. The
// connection is unmuted and deafened; the bot never consumes audio.
func (g *DiscordVoiceGateway) JoinChannel(ctx context.Context, guildID, channelID snowflake.ID) error {
	_, err := g.session.ChannelVoiceJoin(guildID.String(), channelID.String(), false, true)
	if err != nil {
		return fmt.Errorf("failed to join voice channel: %w", err)
	}
	return nil
}

// LeaveChannel disconnects the bot from its voice channel in the guild.
func (g *DiscordVoiceGateway) LeaveChannel(ctx context.Context, guildID snowflake.ID) error {
	vc, ok := g.session.VoiceConnections[guildID.String()]
	if !ok || vc == nil {
		return fmt.Errorf("no voice connection for guild %s", guildID)
	}
	if err := vc.Disconnect(); err != nil {
		return fmt.Errorf("failed to disconnect: %w", err)
	}
	return nil
}

// IsConnected returns true if the bot has a voice connection in the guild.
func (g *DiscordVoiceGateway) IsConnected(guildID snowflake.ID) bool {
	_, ok := g.session.VoiceConnections[guildID.String()]
	return ok
}

// VoiceStateProvider reads user voice states from the gateway state cache.
type VoiceStateProvider struct {
	session *discordgo.Session
}

var _ ports.VoiceStateProvider = (*VoiceStateProvider)(nil)

// NewVoiceStateProvider creates a new VoiceStateProvider.
func NewVoiceStateProvider(session *discordgo.Session) *VoiceStateProvider {
	return &VoiceStateProvider{session: session}
}

// GetUserVoiceChannel returns the voice channel ID that the user is
// currently in, or nil if the user is not in a voice channel.
func (v *VoiceStateProvider) GetUserVoiceChannel(guildID, userID snowflake.ID) (*snowflake.ID, error) {
	guild, err := v.session.State.Guild(guildID.String())
	if err != nil {
		return nil, err
	}

	for _, vs := range guild.VoiceStates {
		if vs.UserID == userID.String() && vs.ChannelID != "" {
			channelID, err := snowflake.Parse(vs.ChannelID)
			if err != nil {
				return nil, err
			}
			return &channelID, nil
		}
	}

	return nil, nil
}
