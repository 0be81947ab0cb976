package bot

import (
	"errors"
	"testing"

	"github.com/bwmarrin/discordgo"
)

func TestNewBot(t *testing.T) {
	cfg := &Config{
		BotToken:      "test-token",
		CommandPrefix: "!",
	}

	b := NewBot(cfg)

	if b == nil {
		t.Fatal("expected bot to be created, got nil")
	}
	if b.config != cfg {
		t.Error("expected config to be stored")
	}
}

func TestBot_InitModules_InitializesModules(t *testing.T) {
	cfg := &Config{BotToken: "test-token"}
	b := NewBot(cfg)

	initCalled := false
	trackingMod := &trackingStubModule{
		stubModule: stubModule{name: "tracking"},
		initCalled: &initCalled,
	}
	b.modules = []Module{trackingMod}

	err := b.initModules()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !initCalled {
		t.Error("expected Init to be called")
	}
}

func TestBot_InitModules_ReturnsInitError(t *testing.T) {
	cfg := &Config{BotToken: "test-token"}
	b := NewBot(cfg)

	expectedErr := errors.New("init failed")
	mod := &stubModule{
		name:    "failing",
		initErr: expectedErr,
	}
	b.modules = []Module{mod}

	err := b.initModules()
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	if !errors.Is(err, expectedErr) {
		t.Errorf("expected error %v, got %v", expectedErr, err)
	}
}

func TestBot_BuildHandlerMaps(t *testing.T) {
	cfg := &Config{BotToken: "test-token"}
	b := NewBot(cfg)

	cmdHandler := func(s *discordgo.Session, m *discordgo.MessageCreate, args string) error {
		return nil
	}
	compHandler := func(s *discordgo.Session, i *discordgo.InteractionCreate) error {
		return nil
	}

	mod := &stubModule{
		name: "test",
		commandHandlers: map[string]CommandHandler{
			"play": cmdHandler,
		},
		componentHandlers: map[string]ComponentHandler{
			"skip": compHandler,
		},
	}
	b.modules = []Module{mod}

	b.buildHandlerMaps()

	if _, ok := b.commandHandlers["play"]; !ok {
		t.Error("expected play handler to be registered")
	}
	if _, ok := b.componentHandlers["skip"]; !ok {
		t.Error("expected skip component handler to be registered")
	}
}

func TestBot_BuildHandlerMaps_MultipleModules(t *testing.T) {
	cfg := &Config{BotToken: "test-token"}
	b := NewBot(cfg)

	handler := func(s *discordgo.Session, m *discordgo.MessageCreate, args string) error {
		return nil
	}

	mod1 := &stubModule{
		name: "mod1",
		commandHandlers: map[string]CommandHandler{
			"cmd1": handler,
		},
	}
	mod2 := &stubModule{
		name: "mod2",
		commandHandlers: map[string]CommandHandler{
			"cmd2": handler,
		},
	}
	b.modules = []Module{mod1, mod2}

	b.buildHandlerMaps()

	if len(b.commandHandlers) != 2 {
		t.Errorf("expected 2 handlers, got %d", len(b.commandHandlers))
	}
}

func TestParseCommand(t *testing.T) {
	tests := []struct {
		name     string
		content  string
		prefix   string
		wantName string
		wantArgs string
		wantOK   bool
	}{
		{
			name:     "command with args",
			content:  "!play never gonna give you up",
			prefix:   "!",
			wantName: "play",
			wantArgs: "never gonna give you up",
			wantOK:   true,
		},
		{
			name:     "command without args",
			content:  "!skip",
			prefix:   "!",
			wantName: "skip",
			wantArgs: "",
			wantOK:   true,
		},
		{
			name:     "uppercase command is normalized",
			content:  "!PLAY something",
			prefix:   "!",
			wantName: "play",
			wantArgs: "something",
			wantOK:   true,
		},
		{
			name:    "missing prefix",
			content: "play something",
			prefix:  "!",
			wantOK:  false,
		},
		{
			name:    "bare prefix",
			content: "!",
			prefix:  "!",
			wantOK:  false,
		},
		{
			name:     "multi-character prefix",
			content:  "m!queue",
			prefix:   "m!",
			wantName: "queue",
			wantArgs: "",
			wantOK:   true,
		},
		{
			name:     "extra whitespace around args",
			content:  "!play   some song  ",
			prefix:   "!",
			wantName: "play",
			wantArgs: "some song",
			wantOK:   true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			name, args, ok := ParseCommand(tt.content, tt.prefix)
			if ok != tt.wantOK {
				t.Fatalf("expected ok=%v, got %v", tt.wantOK, ok)
			}
			if !tt.wantOK {
				return
			}
			if name != tt.wantName {
				t.Errorf("expected name %q, got %q", tt.wantName, name)
			}
			if args != tt.wantArgs {
				t.Errorf("expected args %q, got %q", tt.wantArgs, args)
			}
		})
	}
}

// trackingStubModule is a stub that tracks if Init was called
type trackingStubModule struct {
	stubModule
	initCalled *bool
}

func (m *trackingStubModule) Init(deps ModuleDependencies) error {
	*m.initCalled = true
	return m.stubModule.Init(deps)
}
