package ports

import (
	"github.com/disgoorg/snowflake/v2"

	"github.com/mwestergaard/minstrel/internal/modules/music/domain"
)

// Custom IDs of the control buttons attached to the player status embed.
// The component dispatcher keys its handlers on these.
const (
	ComponentSkip        = "skip"
	ComponentPauseResume = "pause_resume"
	ComponentStop        = "stop"
	ComponentShuffle     = "shuffle"
	ComponentClearQueue  = "clear_queue"
)

// NotificationSender defines the interface for sending notifications to Discord channels.
type NotificationSender interface {
	// SendInfo sends an informational embed.
	SendInfo(channelID snowflake.ID, message string) error

	// SendSuccess sends a success embed.
	SendSuccess(channelID snowflake.ID, message string) error

	// SendWarning sends a warning embed.
	SendWarning(channelID snowflake.ID, message string) error

	// SendError sends an error embed.
	SendError(channelID snowflake.ID, message string) error

	// SendPlayerStatus sends the player status embed with the control
	// buttons attached. now is nil when nothing is playing.
	SendPlayerStatus(channelID snowflake.ID, now *domain.Track, upcoming []*domain.Track) error
}
