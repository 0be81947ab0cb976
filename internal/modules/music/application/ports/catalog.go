package ports

import (
	"context"
	"time"
)

// CatalogEntry is a single track's metadata from the catalog service.
// Catalog entries carry no playable locator; playback requires a best-effort
// search against the media platform.
type CatalogEntry struct {
	Title        string
	Artist       string
	Duration     time.Duration
	ThumbnailURL string
}

// SearchQuery returns the search string used to find a playable match.
func (e CatalogEntry) SearchQuery() string {
	return e.Title + " " + e.Artist
}

// CatalogClient defines the interface for the music catalog metadata service.
type CatalogClient interface {
	// GetTrack returns metadata for a single catalog track.
	GetTrack(ctx context.Context, id string) (*CatalogEntry, error)

	// GetAlbum returns metadata for every track on a catalog album.
	GetAlbum(ctx context.Context, id string) ([]CatalogEntry, error)

	// GetPlaylist returns metadata for every track on a catalog playlist,
	// following pagination.
	GetPlaylist(ctx context.Context, id string) ([]CatalogEntry, error)
}
