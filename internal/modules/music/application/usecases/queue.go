package usecases

import (
	"github.com/disgoorg/snowflake/v2"

	"github.com/mwestergaard/minstrel/internal/modules/music/domain"
)

// QueueView is a snapshot of a guild's playback state for display.
type QueueView struct {
	Current  *domain.Track // nil when idle
	Upcoming []*domain.Track
}

// QueueService handles queue inspection and mutation.
type QueueService struct {
	repo domain.GuildStateRepository
}

// NewQueueService creates a new QueueService.
func NewQueueService(repo domain.GuildStateRepository) *QueueService {
	return &QueueService{repo: repo}
}

// View returns the current track and the pending queue.
func (q *QueueService) View(guildID snowflake.ID) QueueView {
	state := q.repo.Get(guildID)
	if state == nil {
		return QueueView{}
	}
	return QueueView{
		Current:  state.CurrentTrack(),
		Upcoming: state.QueueSnapshot(),
	}
}

// Shuffle randomly permutes the pending tracks.
func (q *QueueService) Shuffle(guildID snowflake.ID) error {
	state := q.repo.Get(guildID)
	if state == nil || !state.ShuffleQueue() {
		return ErrQueueEmpty
	}
	return nil
}

// Clear removes all pending tracks. The current track keeps playing.
func (q *QueueService) Clear(guildID snowflake.ID) error {
	state := q.repo.Get(guildID)
	if state == nil || !state.ClearQueue() {
		return ErrQueueEmpty
	}
	return nil
}
