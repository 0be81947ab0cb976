package infrastructure

import (
	"context"
	"fmt"
	"time"

	"github.com/zmb3/spotify/v2"
	spotifyauth "github.com/zmb3/spotify/v2/auth"
	"golang.org/x/oauth2/clientcredentials"

	"github.com/mwestergaard/minstrel/internal/modules/music/application/ports"
)

const playlistPageSize = 100

// SpotifyCatalog resolves catalog links against the Spotify Web API using
// the client credentials flow. Catalog entries carry metadata only; playable
// streams are obtained separately through the media extractor.
type SpotifyCatalog struct {
	client *spotify.Client
}

var _ ports.CatalogClient = (*SpotifyCatalog)(nil)

// NewSpotifyCatalog creates a catalog client authenticated with the given
// application credentials.
func NewSpotifyCatalog(ctx context.Context, clientID, clientSecret string) (*SpotifyCatalog, error) {
	if clientID == "" || clientSecret == "" {
		return nil, fmt.Errorf("catalog credentials are required")
	}

	config := &clientcredentials.Config{
		ClientID:     clientID,
		ClientSecret: clientSecret,
		TokenURL:     spotifyauth.TokenURL,
	}

	httpClient := config.Client(ctx)

	return &SpotifyCatalog{client: spotify.New(httpClient)}, nil
}

func (c *SpotifyCatalog) GetTrack(ctx context.Context, id string) (*ports.CatalogEntry, error) {
	track, err := c.client.GetTrack(ctx, spotify.ID(id))
	if err != nil {
		return nil, fmt.Errorf("failed to get track: %w", err)
	}

	entry := fullTrackEntry(track)
	return &entry, nil
}

func (c *SpotifyCatalog) GetAlbum(ctx context.Context, id string) ([]ports.CatalogEntry, error) {
	album, err := c.client.GetAlbum(ctx, spotify.ID(id))
	if err != nil {
		return nil, fmt.Errorf("failed to get album: %w", err)
	}

	var albumArt string
	if len(album.Images) > 0 {
		albumArt = album.Images[0].URL
	}

	entries := make([]ports.CatalogEntry, 0, len(album.Tracks.Tracks))
	for _, track := range album.Tracks.Tracks {
		entry := simpleTrackEntry(&track)
		entry.ThumbnailURL = albumArt
		entries = append(entries, entry)
	}

	return entries, nil
}

func (c *SpotifyCatalog) GetPlaylist(ctx context.Context, id string) ([]ports.CatalogEntry, error) {
	var entries []ports.CatalogEntry
	offset := 0

	for {
		page, err := c.client.GetPlaylistItems(ctx, spotify.ID(id),
			spotify.Limit(playlistPageSize),
			spotify.Offset(offset),
		)
		if err != nil {
			return nil, fmt.Errorf("failed to get playlist items: %w", err)
		}

		for _, item := range page.Items {
			// Playlists may contain episodes; only tracks are queueable.
			if item.Track.Track == nil || item.Track.Track.ID == "" {
				continue
			}
			entries = append(entries, fullTrackEntry(item.Track.Track))
		}

		if len(page.Items) < playlistPageSize {
			break
		}
		offset += playlistPageSize
	}

	return entries, nil
}

func fullTrackEntry(t *spotify.FullTrack) ports.CatalogEntry {
	entry := simpleTrackEntry(&t.SimpleTrack)
	if len(t.Album.Images) > 0 {
		entry.ThumbnailURL = t.Album.Images[0].URL
	}
	return entry
}

func simpleTrackEntry(t *spotify.SimpleTrack) ports.CatalogEntry {
	var artist string
	if len(t.Artists) > 0 {
		artist = t.Artists[0].Name
	}

	return ports.CatalogEntry{
		Title:    t.Name,
		Artist:   artist,
		Duration: time.Duration(t.Duration) * time.Millisecond,
	}
}
