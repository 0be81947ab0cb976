package domain

import (
	"github.com/disgoorg/snowflake/v2"
)

// GuildStateRepository stores per-guild playback state.
type GuildStateRepository interface {
	// GetOrCreate returns the GuildState for the given guild, creating it on
	// first access. Idempotent.
	GetOrCreate(guildID snowflake.ID) *GuildState

	// Get returns the GuildState for the given guild, or nil if none exists.
	Get(guildID snowflake.ID) *GuildState

	// Delete evicts the GuildState for the given guild.
	Delete(guildID snowflake.ID)
}
