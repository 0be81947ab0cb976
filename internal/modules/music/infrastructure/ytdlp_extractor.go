package infrastructure

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/lrstanley/go-ytdlp"

	"github.com/mwestergaard/minstrel/internal/modules/music/application/ports"
)

const mediaPrintFormat = "%(url)s\t%(title)s\t%(duration)s\t%(thumbnail)s"

// YtdlpExtractor resolves media metadata and stream URLs through yt-dlp.
type YtdlpExtractor struct {
	cookiesPath   string
	sourceAddress string
}

var _ ports.MediaExtractor = (*YtdlpExtractor)(nil)

// NewYtdlpExtractor creates an extractor. cookiesPath and sourceAddress are
// optional and passed through to yt-dlp when set.
func NewYtdlpExtractor(cookiesPath, sourceAddress string) *YtdlpExtractor {
	return &YtdlpExtractor{cookiesPath: cookiesPath, sourceAddress: sourceAddress}
}

func (e *YtdlpExtractor) newCommand() *ytdlp.Command {
	cmd := ytdlp.New().
		NoWarnings().
		IgnoreConfig()
	if e.cookiesPath != "" {
		cmd = cmd.Cookies(e.cookiesPath)
	}
	if e.sourceAddress != "" {
		cmd = cmd.SourceAddress(e.sourceAddress)
	}
	return cmd
}

func (e *YtdlpExtractor) Search(ctx context.Context, query string) (*ports.MediaEntry, error) {
	res, err := e.newCommand().
		FlatPlaylist().
		Print(mediaPrintFormat).
		PlaylistItems("1-1").
		Run(ctx, "ytsearch1:"+query)
	if err != nil {
		return nil, fmt.Errorf("search failed: %w", err)
	}

	entries := parseMediaLines(res.Stdout)
	if len(entries) == 0 {
		return nil, nil
	}
	return &entries[0], nil
}

func (e *YtdlpExtractor) ListPlaylist(ctx context.Context, url string) ([]ports.MediaEntry, error) {
	res, err := e.newCommand().
		FlatPlaylist().
		Print(mediaPrintFormat).
		Run(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("playlist extraction failed: %w", err)
	}

	return parseMediaLines(res.Stdout), nil
}

func (e *YtdlpExtractor) FetchEntry(ctx context.Context, url string) (*ports.MediaEntry, error) {
	res, err := e.newCommand().
		Print(mediaPrintFormat).
		NoPlaylist().
		Run(ctx, "--skip-download", url)
	if err != nil {
		return nil, fmt.Errorf("metadata extraction failed: %w", err)
	}

	entries := parseMediaLines(res.Stdout)
	if len(entries) == 0 {
		return nil, fmt.Errorf("no metadata returned for %s", url)
	}

	entry := entries[0]
	// In full extraction mode %(url)s is a format URL; keep the page
	// locator stable so the queue is deduplicated by source link.
	entry.Locator = url
	return &entry, nil
}

func (e *YtdlpExtractor) ResolveStream(ctx context.Context, locator string) (*ports.StreamInfo, error) {
	res, err := e.newCommand().
		Print(mediaPrintFormat).
		Format("bestaudio/best").
		NoPlaylist().
		Run(ctx, "--skip-download", locator)
	if err != nil {
		return nil, fmt.Errorf("stream resolution failed: %w", err)
	}

	entries := parseMediaLines(res.Stdout)
	if len(entries) == 0 || entries[0].Locator == "" {
		return nil, fmt.Errorf("no playable stream found for %s", locator)
	}

	entry := entries[0]
	return &ports.StreamInfo{
		URL:          entry.Locator,
		Title:        entry.Title,
		ThumbnailURL: entry.ThumbnailURL,
		Duration:     entry.Duration,
	}, nil
}

// parseMediaLines parses tab-separated print output into media entries.
// yt-dlp prints "NA" for fields it cannot fill; those are treated as unset.
func parseMediaLines(stdout string) []ports.MediaEntry {
	lines := strings.Split(strings.TrimSpace(stdout), "\n")
	entries := make([]ports.MediaEntry, 0, len(lines))
	for _, line := range lines {
		fields := strings.Split(line, "\t")
		if len(fields) < 4 {
			continue
		}
		entry := ports.MediaEntry{
			Locator:      printedField(fields[0]),
			Title:        printedField(fields[1]),
			ThumbnailURL: printedField(fields[3]),
		}
		if raw := printedField(fields[2]); raw != "" {
			entry.Duration, _ = time.ParseDuration(raw + "s")
		}
		entries = append(entries, entry)
	}
	return entries
}

func printedField(s string) string {
	if s == "NA" {
		return ""
	}
	return s
}
