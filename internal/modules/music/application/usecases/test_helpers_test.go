package usecases

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/disgoorg/snowflake/v2"

	"github.com/mwestergaard/minstrel/internal/modules/music/application/ports"
	"github.com/mwestergaard/minstrel/internal/modules/music/domain"
)

func mockTrack(locator string) *domain.Track {
	return &domain.Track{
		Locator:     locator,
		Title:       "Track " + locator,
		Duration:    3 * time.Minute,
		RequesterID: snowflake.ID(123),
		Source:      domain.TrackSourcePrimary,
	}
}

type mockRepository struct {
	mu      sync.Mutex
	states  map[snowflake.ID]*domain.GuildState
	deleted []snowflake.ID
}

func newMockRepository() *mockRepository {
	return &mockRepository{
		states: make(map[snowflake.ID]*domain.GuildState),
	}
}

func (m *mockRepository) GetOrCreate(guildID snowflake.ID) *domain.GuildState {
	m.mu.Lock()
	defer m.mu.Unlock()
	if state, ok := m.states[guildID]; ok {
		return state
	}
	state := domain.NewGuildState(guildID)
	m.states[guildID] = state
	return state
}

func (m *mockRepository) Get(guildID snowflake.ID) *domain.GuildState {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.states[guildID]
}

func (m *mockRepository) Delete(guildID snowflake.ID) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.deleted = append(m.deleted, guildID)
	delete(m.states, guildID)
}

type mockAudioPlayer struct {
	playErr    error
	stopErr    error
	pauseErr   error
	resumeErr  error
	playing    bool
	paused     bool
	playCalls  []string
	stopCalls  int
	pauseCalls int
}

func (m *mockAudioPlayer) Play(_ context.Context, _ snowflake.ID, streamURL string) error {
	if m.playErr != nil {
		return m.playErr
	}
	m.playCalls = append(m.playCalls, streamURL)
	m.playing = true
	return nil
}

func (m *mockAudioPlayer) Stop(_ context.Context, _ snowflake.ID) error {
	if m.stopErr != nil {
		return m.stopErr
	}
	m.stopCalls++
	m.playing = false
	m.paused = false
	return nil
}

func (m *mockAudioPlayer) Pause(_ context.Context, _ snowflake.ID) error {
	if m.pauseErr != nil {
		return m.pauseErr
	}
	m.pauseCalls++
	m.paused = true
	return nil
}

func (m *mockAudioPlayer) Resume(_ context.Context, _ snowflake.ID) error {
	if m.resumeErr != nil {
		return m.resumeErr
	}
	m.paused = false
	return nil
}

func (m *mockAudioPlayer) IsPlaying(_ snowflake.ID) bool { return m.playing }
func (m *mockAudioPlayer) IsPaused(_ snowflake.ID) bool  { return m.paused }

type mockVoiceConnection struct {
	joinErr   error
	leaveErr  error
	connected bool
	joined    []snowflake.ID
	left      []snowflake.ID
}

func (m *mockVoiceConnection) JoinChannel(_ context.Context, _, channelID snowflake.ID) error {
	if m.joinErr != nil {
		return m.joinErr
	}
	m.connected = true
	m.joined = append(m.joined, channelID)
	return nil
}

func (m *mockVoiceConnection) LeaveChannel(_ context.Context, guildID snowflake.ID) error {
	if m.leaveErr != nil {
		return m.leaveErr
	}
	m.connected = false
	m.left = append(m.left, guildID)
	return nil
}

func (m *mockVoiceConnection) IsConnected(_ snowflake.ID) bool { return m.connected }

type mockVoiceStateProvider struct {
	channels map[snowflake.ID]snowflake.ID // userID -> channelID
	err      error
}

func (m *mockVoiceStateProvider) GetUserVoiceChannel(
	_, userID snowflake.ID,
) (*snowflake.ID, error) {
	if m.err != nil {
		return nil, m.err
	}
	channelID, ok := m.channels[userID]
	if !ok {
		return nil, nil
	}
	return &channelID, nil
}

type mockCatalog struct {
	track    *ports.CatalogEntry
	album    []ports.CatalogEntry
	playlist []ports.CatalogEntry
	err      error
}

func (m *mockCatalog) GetTrack(_ context.Context, _ string) (*ports.CatalogEntry, error) {
	return m.track, m.err
}

func (m *mockCatalog) GetAlbum(_ context.Context, _ string) ([]ports.CatalogEntry, error) {
	return m.album, m.err
}

func (m *mockCatalog) GetPlaylist(_ context.Context, _ string) ([]ports.CatalogEntry, error) {
	return m.playlist, m.err
}

type mockExtractor struct {
	searchResults map[string]*ports.MediaEntry
	searchErr     error
	listResults   []ports.MediaEntry
	listErr       error
	fetchResults  map[string]*ports.MediaEntry
	fetchErr      error
	streamErr     error
	// locators for which ResolveStream fails even when streamErr is nil
	badLocators map[string]bool
}

func (m *mockExtractor) Search(_ context.Context, query string) (*ports.MediaEntry, error) {
	if m.searchErr != nil {
		return nil, m.searchErr
	}
	return m.searchResults[query], nil
}

func (m *mockExtractor) ListPlaylist(_ context.Context, _ string) ([]ports.MediaEntry, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}
	return m.listResults, nil
}

func (m *mockExtractor) FetchEntry(_ context.Context, url string) (*ports.MediaEntry, error) {
	if m.fetchErr != nil {
		return nil, m.fetchErr
	}
	return m.fetchResults[url], nil
}

func (m *mockExtractor) ResolveStream(_ context.Context, locator string) (*ports.StreamInfo, error) {
	if m.streamErr != nil {
		return nil, m.streamErr
	}
	if m.badLocators[locator] {
		return nil, errUnavailable
	}
	return &ports.StreamInfo{
		URL:   "https://stream.example/" + strings.TrimPrefix(locator, "https://"),
		Title: "Resolved " + locator,
	}, nil
}

type mockNotifier struct {
	info     []string
	success  []string
	warnings []string
	errs     []string
	statuses int
}

func (m *mockNotifier) SendInfo(_ snowflake.ID, message string) error {
	m.info = append(m.info, message)
	return nil
}

func (m *mockNotifier) SendSuccess(_ snowflake.ID, message string) error {
	m.success = append(m.success, message)
	return nil
}

func (m *mockNotifier) SendWarning(_ snowflake.ID, message string) error {
	m.warnings = append(m.warnings, message)
	return nil
}

func (m *mockNotifier) SendError(_ snowflake.ID, message string) error {
	m.errs = append(m.errs, message)
	return nil
}

func (m *mockNotifier) SendPlayerStatus(_ snowflake.ID, _ *domain.Track, _ []*domain.Track) error {
	m.statuses++
	return nil
}

type mockEventPublisher struct {
	tracksEnqueued  []domain.TracksEnqueuedEvent
	playbackStarted []domain.PlaybackStartedEvent
	trackEnded      []domain.TrackEndedEvent
	queueDrained    []domain.QueueDrainedEvent
}

func (m *mockEventPublisher) PublishTracksEnqueued(event domain.TracksEnqueuedEvent) {
	m.tracksEnqueued = append(m.tracksEnqueued, event)
}

func (m *mockEventPublisher) PublishPlaybackStarted(event domain.PlaybackStartedEvent) {
	m.playbackStarted = append(m.playbackStarted, event)
}

func (m *mockEventPublisher) PublishTrackEnded(event domain.TrackEndedEvent) {
	m.trackEnded = append(m.trackEnded, event)
}

func (m *mockEventPublisher) PublishQueueDrained(event domain.QueueDrainedEvent) {
	m.queueDrained = append(m.queueDrained, event)
}
