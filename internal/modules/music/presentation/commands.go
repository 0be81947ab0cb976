package presentation

import (
	"fmt"

	"github.com/bwmarrin/discordgo"
	"github.com/disgoorg/snowflake/v2"

	"github.com/mwestergaard/minstrel/internal/bot"
)

// CommandHandlers returns the prefix command handlers keyed by command name.
func (h *Handlers) CommandHandlers() map[string]bot.CommandHandler {
	return map[string]bot.CommandHandler{
		"play":        h.handlePlayCommand,
		"skip":        h.guildCommand(h.skip),
		"pause":       h.guildCommand(h.pause),
		"resume":      h.guildCommand(h.resume),
		"stop":        h.guildCommand(h.stop),
		"join":        h.handleJoinCommand,
		"leave":       h.guildCommand(h.leave),
		"queue":       h.guildCommand(h.showQueue),
		"clear_queue": h.guildCommand(h.clearQueue),
		"shuffle":     h.guildCommand(h.shuffleQueue),
	}
}

// messageScope extracts the typed IDs a command handler needs from the
// triggering message.
func messageScope(m *discordgo.MessageCreate) (guildID, channelID, userID snowflake.ID, err error) {
	guildID, err = snowflake.Parse(m.GuildID)
	if err != nil {
		return 0, 0, 0, fmt.Errorf("invalid guild ID %q: %w", m.GuildID, err)
	}
	channelID, err = snowflake.Parse(m.ChannelID)
	if err != nil {
		return 0, 0, 0, fmt.Errorf("invalid channel ID %q: %w", m.ChannelID, err)
	}
	userID, err = snowflake.Parse(m.Author.ID)
	if err != nil {
		return 0, 0, 0, fmt.Errorf("invalid user ID %q: %w", m.Author.ID, err)
	}
	return guildID, channelID, userID, nil
}

// guildCommand adapts a guild-scoped operation to the command handler
// signature.
func (h *Handlers) guildCommand(op func(guildID, channelID snowflake.ID) error) bot.CommandHandler {
	return func(s *discordgo.Session, m *discordgo.MessageCreate, args string) error {
		guildID, channelID, _, err := messageScope(m)
		if err != nil {
			return err
		}
		return op(guildID, channelID)
	}
}

func (h *Handlers) handlePlayCommand(s *discordgo.Session, m *discordgo.MessageCreate, args string) error {
	guildID, channelID, userID, err := messageScope(m)
	if err != nil {
		return err
	}
	return h.play(guildID, channelID, userID, args)
}

func (h *Handlers) handleJoinCommand(s *discordgo.Session, m *discordgo.MessageCreate, args string) error {
	guildID, channelID, userID, err := messageScope(m)
	if err != nil {
		return err
	}
	return h.join(guildID, channelID, userID)
}
