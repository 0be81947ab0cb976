package music

import (
	"context"
	"log/slog"

	"github.com/caarlos0/env/v11"

	"github.com/mwestergaard/minstrel/internal/bot"
	"github.com/mwestergaard/minstrel/internal/modules/music/application"
	"github.com/mwestergaard/minstrel/internal/modules/music/application/usecases"
	"github.com/mwestergaard/minstrel/internal/modules/music/infrastructure"
	"github.com/mwestergaard/minstrel/internal/modules/music/presentation"
)

func init() {
	bot.Register(&Module{})
}

// Compile-time interface checks.
var _ bot.ConfigurableModule = (*Module)(nil)

// Module provides music playback commands.
type Module struct {
	config   *Config
	handlers *presentation.Handlers

	eventBus        *infrastructure.ChannelEventBus
	playbackHandler *application.PlaybackEventHandler
}

// Name returns the module name.
func (m *Module) Name() string {
	return "music"
}

// LoadConfig loads module-specific configuration from environment variables.
func (m *Module) LoadConfig() error {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return err
	}
	m.config = cfg
	return nil
}

// CommandHandlers returns the prefix command handlers for this module.
func (m *Module) CommandHandlers() map[string]bot.CommandHandler {
	return m.handlers.CommandHandlers()
}

// ComponentHandlers returns the control button handlers for this module.
func (m *Module) ComponentHandlers() map[string]bot.ComponentHandler {
	return m.handlers.ComponentHandlers()
}

// EventHandlers returns the gateway event handlers for this module.
func (m *Module) EventHandlers() []bot.EventHandler {
	return nil
}

// Init wires the module's services and starts the event pipeline.
func (m *Module) Init(deps bot.ModuleDependencies) error {
	m.eventBus = infrastructure.NewChannelEventBus(infrastructure.DefaultEventBufferSize)

	catalog, err := infrastructure.NewSpotifyCatalog(
		context.Background(),
		m.config.CatalogClientID,
		m.config.CatalogClientSecret,
	)
	if err != nil {
		return err
	}

	repo := infrastructure.NewMemoryRepository()
	extractor := infrastructure.NewYtdlpExtractor(m.config.YtdlpCookies, m.config.YtdlpSourceAddress)
	player := infrastructure.NewDCAPlayer(deps.Session, m.eventBus)
	voiceGateway := infrastructure.NewDiscordVoiceGateway(deps.Session)
	voiceState := infrastructure.NewVoiceStateProvider(deps.Session)
	notifier := infrastructure.NewNotifier(deps.Session)

	resolver := usecases.NewResolverService(repo, catalog, extractor, notifier, m.eventBus)
	sequencer := usecases.NewSequencerService(repo, extractor, player, notifier, m.eventBus)
	playback := usecases.NewPlaybackService(repo, player)
	queue := usecases.NewQueueService(repo)
	voiceChannel := usecases.NewVoiceChannelService(repo, voiceGateway, voiceState)

	m.playbackHandler = application.NewPlaybackEventHandler(repo, sequencer, notifier, m.eventBus)
	m.playbackHandler.Start()

	m.handlers = presentation.NewHandlers(resolver, playback, queue, voiceChannel, notifier)

	slog.Info("music module initialized")

	return nil
}

// Shutdown cleans up module resources.
func (m *Module) Shutdown() error {
	if m.eventBus != nil {
		m.eventBus.Close()
	}
	return nil
}
