package infrastructure

import (
	"sync"

	"github.com/disgoorg/snowflake/v2"

	"github.com/mwestergaard/minstrel/internal/modules/music/domain"
)

// MemoryRepository is an in-memory implementation of GuildStateRepository.
type MemoryRepository struct {
	mu     sync.RWMutex
	states map[snowflake.ID]*domain.GuildState
}

// NewMemoryRepository creates a new MemoryRepository.
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		states: make(map[snowflake.ID]*domain.GuildState),
	}
}

// GetOrCreate returns the GuildState for the given guild, creating it on
// first access.
func (r *MemoryRepository) GetOrCreate(guildID snowflake.ID) *domain.GuildState {
	r.mu.Lock()
	defer r.mu.Unlock()

	if state, ok := r.states[guildID]; ok {
		return state
	}

	state := domain.NewGuildState(guildID)
	r.states[guildID] = state
	return state
}

// Get returns the GuildState for the given guild, or nil if none exists.
func (r *MemoryRepository) Get(guildID snowflake.ID) *domain.GuildState {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.states[guildID]
}

// Delete evicts the GuildState for the given guild.
func (r *MemoryRepository) Delete(guildID snowflake.ID) {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.states, guildID)
}

// Count returns the number of guild states (for testing/monitoring).
func (r *MemoryRepository) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.states)
}

// Ensure MemoryRepository implements GuildStateRepository.
var _ domain.GuildStateRepository = (*MemoryRepository)(nil)
