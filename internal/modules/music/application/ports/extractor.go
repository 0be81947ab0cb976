package ports

import (
	"context"
	"time"
)

// MediaEntry is a track listed by the media platform. Entries from a flat
// playlist listing may carry only a placeholder locator and missing metadata.
type MediaEntry struct {
	Locator      string // page URL, usable for stream resolution
	Title        string
	ThumbnailURL string
	Duration     time.Duration // 0 means live or unknown
}

// StreamInfo is a concrete playable stream resolved from a locator.
type StreamInfo struct {
	URL          string
	Title        string
	ThumbnailURL string
	Duration     time.Duration
}

// MediaExtractor defines the interface for the media search and extraction
// service. Implementations must tolerate missing metadata fields.
type MediaExtractor interface {
	// Search performs a top-1 search and returns the best match, or nil if
	// nothing was found.
	Search(ctx context.Context, query string) (*MediaEntry, error)

	// ListPlaylist performs a cheap flat listing of a playlist URL. Entries
	// without a playable locator have Locator set to empty.
	ListPlaylist(ctx context.Context, url string) ([]MediaEntry, error)

	// FetchEntry fetches full metadata for a single media URL.
	FetchEntry(ctx context.Context, url string) (*MediaEntry, error)

	// ResolveStream resolves a locator into a concrete playable stream.
	ResolveStream(ctx context.Context, locator string) (*StreamInfo, error)
}
