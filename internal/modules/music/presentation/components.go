package presentation

import (
	"fmt"

	"github.com/bwmarrin/discordgo"
	"github.com/disgoorg/snowflake/v2"

	"github.com/mwestergaard/minstrel/internal/bot"
	"github.com/mwestergaard/minstrel/internal/modules/music/application/ports"
)

// ComponentHandlers returns the control button handlers keyed by custom ID.
// Each button dispatches into the same operation as its command counterpart.
func (h *Handlers) ComponentHandlers() map[string]bot.ComponentHandler {
	return map[string]bot.ComponentHandler{
		ports.ComponentSkip:        h.guildComponent(h.skip),
		ports.ComponentPauseResume: h.guildComponent(h.pauseResume),
		ports.ComponentStop:        h.guildComponent(h.stop),
		ports.ComponentShuffle:     h.guildComponent(h.shuffleQueue),
		ports.ComponentClearQueue:  h.guildComponent(h.clearQueue),
	}
}

// guildComponent adapts a guild-scoped operation to the component handler
// signature.
func (h *Handlers) guildComponent(op func(guildID, channelID snowflake.ID) error) bot.ComponentHandler {
	return func(s *discordgo.Session, i *discordgo.InteractionCreate) error {
		guildID, err := snowflake.Parse(i.GuildID)
		if err != nil {
			return fmt.Errorf("invalid guild ID %q: %w", i.GuildID, err)
		}
		channelID, err := snowflake.Parse(i.ChannelID)
		if err != nil {
			return fmt.Errorf("invalid channel ID %q: %w", i.ChannelID, err)
		}
		return op(guildID, channelID)
	}
}
