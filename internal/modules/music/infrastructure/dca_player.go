package infrastructure

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sync"

	"github.com/bwmarrin/discordgo"
	"github.com/disgoorg/snowflake/v2"
	"github.com/jonas747/dca"

	"github.com/mwestergaard/minstrel/internal/modules/music/application/ports"
	"github.com/mwestergaard/minstrel/internal/modules/music/domain"
)

// DCAPlayer encodes stream URLs to Opus with dca and sends the frames over
// the gateway voice connection. When a track finishes for any reason a
// TrackEndedEvent is published; queue advancement happens elsewhere.
type DCAPlayer struct {
	session   *discordgo.Session
	publisher ports.EventPublisher

	mu       sync.Mutex
	sessions map[snowflake.ID]*playbackSession
}

type playbackSession struct {
	encoder *dca.EncodeSession
	stream  *dca.StreamingSession
	stopped bool
}

var _ ports.AudioPlayer = (*DCAPlayer)(nil)

func NewDCAPlayer(session *discordgo.Session, publisher ports.EventPublisher) *DCAPlayer {
	return &DCAPlayer{
		session:   session,
		publisher: publisher,
		sessions:  make(map[snowflake.ID]*playbackSession),
	}
}

func (p *DCAPlayer) Play(ctx context.Context, guildID snowflake.ID, streamURL string) error {
	vc, ok := p.session.VoiceConnections[guildID.String()]
	if !ok || vc == nil {
		return fmt.Errorf("no voice connection for guild %s", guildID)
	}

	p.Stop(ctx, guildID)

	opts := dca.StdEncodeOptions
	opts.RawOutput = true
	opts.Bitrate = 96
	opts.Application = dca.AudioApplicationLowDelay

	encoder, err := dca.EncodeFile(streamURL, opts)
	if err != nil {
		return fmt.Errorf("failed to start encoder: %w", err)
	}

	if err := vc.Speaking(true); err != nil {
		slog.Warn("Failed to set speaking state", "guild_id", guildID, "error", err)
	}

	done := make(chan error)
	stream := dca.NewStream(encoder, vc, done)

	ps := &playbackSession{encoder: encoder, stream: stream}
	p.mu.Lock()
	p.sessions[guildID] = ps
	p.mu.Unlock()

	go p.waitForEnd(guildID, ps, vc, done)

	return nil
}

func (p *DCAPlayer) waitForEnd(guildID snowflake.ID, ps *playbackSession, vc *discordgo.VoiceConnection, done chan error) {
	err := <-done
	if err == io.EOF {
		err = nil
	}

	ps.encoder.Cleanup()
	if speakErr := vc.Speaking(false); speakErr != nil {
		slog.Debug("Failed to clear speaking state", "guild_id", guildID, "error", speakErr)
	}

	p.mu.Lock()
	stopped := ps.stopped
	if p.sessions[guildID] == ps {
		delete(p.sessions, guildID)
	}
	p.mu.Unlock()

	// An explicit stop tears down the encoder mid-stream, which surfaces
	// as a send error; that is not a playback failure.
	if stopped {
		err = nil
	}

	p.publisher.PublishTrackEnded(domain.TrackEndedEvent{GuildID: guildID, Err: err})
}

func (p *DCAPlayer) Stop(ctx context.Context, guildID snowflake.ID) error {
	p.mu.Lock()
	ps, ok := p.sessions[guildID]
	if ok {
		ps.stopped = true
	}
	p.mu.Unlock()

	if !ok {
		return nil
	}

	// Cleanup kills the ffmpeg process, which terminates the stream and
	// unblocks the completion goroutine.
	ps.encoder.Cleanup()
	return nil
}

func (p *DCAPlayer) Pause(ctx context.Context, guildID snowflake.ID) error {
	ps := p.current(guildID)
	if ps == nil {
		return fmt.Errorf("nothing is playing in guild %s", guildID)
	}
	ps.stream.SetPaused(true)
	return nil
}

func (p *DCAPlayer) Resume(ctx context.Context, guildID snowflake.ID) error {
	ps := p.current(guildID)
	if ps == nil {
		return fmt.Errorf("nothing is playing in guild %s", guildID)
	}
	ps.stream.SetPaused(false)
	return nil
}

func (p *DCAPlayer) IsPlaying(guildID snowflake.ID) bool {
	return p.current(guildID) != nil
}

func (p *DCAPlayer) IsPaused(guildID snowflake.ID) bool {
	ps := p.current(guildID)
	if ps == nil {
		return false
	}
	return ps.stream.Paused()
}

func (p *DCAPlayer) current(guildID snowflake.ID) *playbackSession {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.sessions[guildID]
}
