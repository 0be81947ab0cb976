package bot

import (
	"fmt"
	"log/slog"
	"maps"
	"strings"

	"github.com/bwmarrin/discordgo"
)

// Bot manages the Discord bot lifecycle and module coordination.
type Bot struct {
	config            *Config
	session           *discordgo.Session
	modules           []Module
	commandHandlers   map[string]CommandHandler
	componentHandlers map[string]ComponentHandler
}

// NewBot creates a new Bot instance with the given configuration.
func NewBot(cfg *Config) *Bot {
	return &Bot{
		config:            cfg,
		modules:           make([]Module, 0),
		commandHandlers:   make(map[string]CommandHandler),
		componentHandlers: make(map[string]ComponentHandler),
	}
}

// LoadModules loads modules from the global registry.
func (b *Bot) LoadModules() {
	b.modules = Modules()
}

// Start initializes the bot, connects to Discord, and wires up routing.
func (b *Bot) Start() error {
	session, err := discordgo.New("Bot " + b.config.BotToken)
	if err != nil {
		return fmt.Errorf("failed to create Discord session: %w", err)
	}
	session.Identify.Intents = discordgo.IntentsGuilds |
		discordgo.IntentsGuildMessages |
		discordgo.IntentsGuildVoiceStates |
		discordgo.IntentsMessageContent
	b.session = session

	// Load module configuration before touching Discord
	for _, mod := range b.modules {
		if cm, ok := mod.(ConfigurableModule); ok {
			if err := cm.LoadConfig(); err != nil {
				return fmt.Errorf("failed to load %s module config: %w", mod.Name(), err)
			}
		}
	}

	// Open the connection first: modules need session state (bot user, guilds)
	if err := b.session.Open(); err != nil {
		return fmt.Errorf("failed to open Discord connection: %w", err)
	}

	if err := b.initModules(); err != nil {
		return fmt.Errorf("failed to initialize modules: %w", err)
	}

	b.buildHandlerMaps()

	b.session.AddHandler(b.handleMessage)
	b.session.AddHandler(b.handleComponent)
	b.registerEventHandlers()

	slog.Info("started bot",
		"user_id", b.session.State.User.ID,
		"username", b.session.State.User.Username,
		"prefix", b.config.CommandPrefix,
	)

	return nil
}

// Stop gracefully shuts down the bot.
func (b *Bot) Stop() error {
	for _, mod := range b.modules {
		if err := mod.Shutdown(); err != nil {
			slog.Warn("failed to shutdown module", "module", mod.Name(), "error", err)
		}
	}

	if b.session != nil {
		return b.session.Close()
	}

	return nil
}

// initModules initializes all loaded modules.
func (b *Bot) initModules() error {
	deps := ModuleDependencies{
		Session: b.session,
	}

	for _, mod := range b.modules {
		if err := mod.Init(deps); err != nil {
			return fmt.Errorf("failed to initialize %s module: %w", mod.Name(), err)
		}
		slog.Debug("initialized module", "module", mod.Name())
	}

	moduleNames := make([]string, len(b.modules))
	for i, mod := range b.modules {
		moduleNames[i] = mod.Name()
	}
	slog.Info("initialized modules", "modules", moduleNames)

	return nil
}

// buildHandlerMaps builds the command/component name to handler mappings.
func (b *Bot) buildHandlerMaps() {
	for _, mod := range b.modules {
		maps.Copy(b.commandHandlers, mod.CommandHandlers())
		maps.Copy(b.componentHandlers, mod.ComponentHandlers())
	}
}

// registerEventHandlers registers all module event handlers with the session.
func (b *Bot) registerEventHandlers() {
	for _, mod := range b.modules {
		for _, handler := range mod.EventHandlers() {
			b.session.AddHandler(handler)
		}
	}
}

// Embed color for fallback responses.
const colorRed = 0xFF0000

// handleMessage routes prefix commands to the appropriate handler.
func (b *Bot) handleMessage(s *discordgo.Session, m *discordgo.MessageCreate) {
	if m.Author == nil || m.Author.Bot {
		return
	}

	name, args, ok := ParseCommand(m.Content, b.config.CommandPrefix)
	if !ok {
		return
	}

	handler, found := b.commandHandlers[name]
	if !found {
		return
	}

	if err := handler(s, m, args); err != nil {
		slog.Error("failed to handle command", "command", name, "error", err)
		b.sendErrorEmbed(s, m.ChannelID)
	}
}

// handleComponent routes button interactions to the appropriate handler.
func (b *Bot) handleComponent(s *discordgo.Session, i *discordgo.InteractionCreate) {
	if i.Type != discordgo.InteractionMessageComponent {
		return
	}

	customID := i.MessageComponentData().CustomID
	handler, found := b.componentHandlers[customID]
	if !found {
		slog.Warn("found no handler for component", "custom_id", customID)
		return
	}

	// Acknowledge the interaction; the handler replies via channel messages,
	// exactly like the equivalent text command.
	if err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseDeferredMessageUpdate,
	}); err != nil {
		slog.Warn("failed to acknowledge component interaction", "error", err)
	}

	if err := handler(s, i); err != nil {
		slog.Error("failed to handle component", "custom_id", customID, "error", err)
		b.sendErrorEmbed(s, i.ChannelID)
	}
}

// ParseCommand splits a prefixed message into a command name and the argument
// rest. Returns ok=false if the content does not carry the prefix or names no
// command.
func ParseCommand(content, prefix string) (name, args string, ok bool) {
	if prefix == "" || !strings.HasPrefix(content, prefix) {
		return "", "", false
	}

	rest := strings.TrimSpace(strings.TrimPrefix(content, prefix))
	if rest == "" {
		return "", "", false
	}

	name, args, _ = strings.Cut(rest, " ")
	return strings.ToLower(name), strings.TrimSpace(args), true
}

// sendErrorEmbed sends a generic failure embed to a channel.
func (b *Bot) sendErrorEmbed(s *discordgo.Session, channelID string) {
	_, err := s.ChannelMessageSendEmbed(channelID, &discordgo.MessageEmbed{
		Description: "An error occurred while processing your command.",
		Color:       colorRed,
	})
	if err != nil {
		slog.Error("failed to send error embed", "error", err)
	}
}
