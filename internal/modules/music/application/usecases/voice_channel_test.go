package usecases

import (
	"context"
	"errors"
	"testing"

	"github.com/disgoorg/snowflake/v2"
)

func TestVoiceChannelService_Join(t *testing.T) {
	guildID := snowflake.ID(1)
	userID := snowflake.ID(2)
	textChannelID := snowflake.ID(3)
	voiceChannelID := snowflake.ID(4)

	tests := []struct {
		name       string
		setupVoice func(*mockVoiceStateProvider, *mockVoiceConnection)
		wantErr    error
	}{
		{
			name: "join user's channel",
			setupVoice: func(vs *mockVoiceStateProvider, _ *mockVoiceConnection) {
				vs.channels[userID] = voiceChannelID
			},
		},
		{
			name:    "user not in voice",
			wantErr: ErrUserNotInVoice,
		},
		{
			name: "join fails",
			setupVoice: func(vs *mockVoiceStateProvider, vc *mockVoiceConnection) {
				vs.channels[userID] = voiceChannelID
				vc.joinErr = errors.New("join failed")
			},
			wantErr: errors.New("join failed"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := newMockRepository()
			voiceState := &mockVoiceStateProvider{channels: make(map[snowflake.ID]snowflake.ID)}
			voiceConn := &mockVoiceConnection{}
			if tt.setupVoice != nil {
				tt.setupVoice(voiceState, voiceConn)
			}

			service := NewVoiceChannelService(repo, voiceConn, voiceState)
			out, err := service.Join(context.Background(), JoinInput{
				GuildID:               guildID,
				UserID:                userID,
				NotificationChannelID: textChannelID,
			})

			if tt.wantErr != nil {
				if err == nil || err.Error() != tt.wantErr.Error() {
					t.Errorf("expected error %v, got %v", tt.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if out.VoiceChannelID != voiceChannelID {
				t.Errorf("expected channel %d, got %d", voiceChannelID, out.VoiceChannelID)
			}

			state := repo.Get(guildID)
			if state == nil {
				t.Fatal("expected guild state to be created")
			}
			if state.VoiceChannelID() != voiceChannelID {
				t.Errorf("expected state channel %d, got %d", voiceChannelID, state.VoiceChannelID())
			}
		})
	}
}

func TestVoiceChannelService_Join_AlreadyConnected(t *testing.T) {
	guildID := snowflake.ID(1)
	userID := snowflake.ID(2)
	voiceChannelID := snowflake.ID(4)

	repo := newMockRepository()
	state := repo.GetOrCreate(guildID)
	state.SetVoiceChannelID(voiceChannelID)

	voiceState := &mockVoiceStateProvider{
		channels: map[snowflake.ID]snowflake.ID{userID: voiceChannelID},
	}
	voiceConn := &mockVoiceConnection{connected: true}

	service := NewVoiceChannelService(repo, voiceConn, voiceState)
	_, err := service.Join(context.Background(), JoinInput{
		GuildID:               guildID,
		UserID:                userID,
		NotificationChannelID: snowflake.ID(9),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(voiceConn.joined) != 0 {
		t.Error("expected no re-join when already in the user's channel")
	}
	if state.NotificationChannelID() != snowflake.ID(9) {
		t.Error("expected notification channel to be refreshed")
	}
}

func TestVoiceChannelService_EnsureJoined(t *testing.T) {
	guildID := snowflake.ID(1)
	userID := snowflake.ID(2)
	voiceChannelID := snowflake.ID(4)

	t.Run("joins when disconnected", func(t *testing.T) {
		repo := newMockRepository()
		voiceState := &mockVoiceStateProvider{
			channels: map[snowflake.ID]snowflake.ID{userID: voiceChannelID},
		}
		voiceConn := &mockVoiceConnection{}

		service := NewVoiceChannelService(repo, voiceConn, voiceState)
		err := service.EnsureJoined(context.Background(), JoinInput{
			GuildID: guildID,
			UserID:  userID,
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(voiceConn.joined) != 1 {
			t.Errorf("expected 1 join, got %d", len(voiceConn.joined))
		}
	})

	t.Run("no-op when connected", func(t *testing.T) {
		repo := newMockRepository()
		voiceState := &mockVoiceStateProvider{
			channels: map[snowflake.ID]snowflake.ID{userID: voiceChannelID},
		}
		voiceConn := &mockVoiceConnection{connected: true}

		service := NewVoiceChannelService(repo, voiceConn, voiceState)
		err := service.EnsureJoined(context.Background(), JoinInput{
			GuildID: guildID,
			UserID:  userID,
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(voiceConn.joined) != 0 {
			t.Error("expected no join when already connected")
		}
	})

	t.Run("user not in voice", func(t *testing.T) {
		repo := newMockRepository()
		voiceState := &mockVoiceStateProvider{channels: make(map[snowflake.ID]snowflake.ID)}
		service := NewVoiceChannelService(repo, &mockVoiceConnection{}, voiceState)
		err := service.EnsureJoined(context.Background(), JoinInput{GuildID: guildID, UserID: userID})
		if !errors.Is(err, ErrUserNotInVoice) {
			t.Errorf("expected ErrUserNotInVoice, got %v", err)
		}
	})
}

func TestVoiceChannelService_Leave(t *testing.T) {
	guildID := snowflake.ID(1)

	t.Run("leave evicts state", func(t *testing.T) {
		repo := newMockRepository()
		repo.GetOrCreate(guildID)
		voiceConn := &mockVoiceConnection{connected: true}

		service := NewVoiceChannelService(repo, voiceConn, &mockVoiceStateProvider{})
		if err := service.Leave(context.Background(), guildID); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if len(voiceConn.left) != 1 {
			t.Errorf("expected 1 leave call, got %d", len(voiceConn.left))
		}
		if repo.Get(guildID) != nil {
			t.Error("expected guild state to be evicted on leave")
		}
	})

	t.Run("not connected", func(t *testing.T) {
		repo := newMockRepository()
		service := NewVoiceChannelService(repo, &mockVoiceConnection{}, &mockVoiceStateProvider{})
		if err := service.Leave(context.Background(), guildID); !errors.Is(err, ErrNotConnected) {
			t.Errorf("expected ErrNotConnected, got %v", err)
		}
	})
}
