package usecases

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/disgoorg/snowflake/v2"

	"github.com/mwestergaard/minstrel/internal/modules/music/application/ports"
	"github.com/mwestergaard/minstrel/internal/modules/music/domain"
)

const (
	// MaxPlaylistTracks is the upper bound on tracks enqueued per request.
	MaxPlaylistTracks = 500

	// LargePlaylistThreshold triggers an advisory notice when exceeded.
	LargePlaylistThreshold = 50
)

// PlayInput contains the input for the Play use case.
type PlayInput struct {
	GuildID     snowflake.ID
	ChannelID   snowflake.ID // text channel for notices
	RequesterID snowflake.ID
	Query       string
}

// PlayOutput contains the result of the Play use case.
type PlayOutput struct {
	Tracks  []*domain.Track
	WasIdle bool
}

// ResolverService turns user queries into playable tracks and enqueues them.
type ResolverService struct {
	repo      domain.GuildStateRepository
	catalog   ports.CatalogClient
	extractor ports.MediaExtractor
	notifier  ports.NotificationSender
	publisher ports.EventPublisher
}

// NewResolverService creates a new ResolverService.
func NewResolverService(
	repo domain.GuildStateRepository,
	catalog ports.CatalogClient,
	extractor ports.MediaExtractor,
	notifier ports.NotificationSender,
	publisher ports.EventPublisher,
) *ResolverService {
	return &ResolverService{
		repo:      repo,
		catalog:   catalog,
		extractor: extractor,
		notifier:  notifier,
		publisher: publisher,
	}
}

// Play resolves the query, enqueues the resulting tracks, and publishes a
// TracksEnqueuedEvent so the sequencer starts playback if the guild was idle.
func (r *ResolverService) Play(ctx context.Context, input PlayInput) (*PlayOutput, error) {
	tracks, err := r.Resolve(ctx, input)
	if err != nil {
		return nil, err
	}

	state := r.repo.GetOrCreate(input.GuildID)
	state.SetNotificationChannelID(input.ChannelID)
	wasIdle := state.Enqueue(tracks...)

	if len(tracks) > 1 {
		_ = r.notifier.SendSuccess(input.ChannelID,
			fmt.Sprintf("Added %d songs to the queue", len(tracks)))
	} else {
		verb := "Added to queue"
		if wasIdle {
			verb = "Playing"
		}
		_ = r.notifier.SendSuccess(input.ChannelID,
			fmt.Sprintf("%s: %s", verb, tracks[0].Title))
	}

	r.publisher.PublishTracksEnqueued(domain.TracksEnqueuedEvent{
		GuildID:   input.GuildID,
		ChannelID: input.ChannelID,
		Count:     len(tracks),
		WasIdle:   wasIdle,
	})

	return &PlayOutput{Tracks: tracks, WasIdle: wasIdle}, nil
}

// Resolve turns a user query into zero or more playable tracks. Individual
// entry failures inside a batch are skipped; only a total failure surfaces
// as an error.
func (r *ResolverService) Resolve(ctx context.Context, input PlayInput) ([]*domain.Track, error) {
	query := domain.ParseQuery(input.Query)
	if !query.IsValid() {
		return nil, ErrEmptyQuery
	}

	var (
		tracks []*domain.Track
		err    error
	)

	switch query.Kind {
	case domain.QueryCatalogLink:
		tracks, err = r.resolveCatalog(ctx, query, input.RequesterID)
	case domain.QueryDirectLink:
		tracks, err = r.resolveLink(ctx, query.Raw, input.RequesterID)
	default:
		tracks, err = r.resolveSearch(ctx, query.Raw, input.RequesterID)
	}
	if err != nil {
		return nil, err
	}

	if len(tracks) > MaxPlaylistTracks {
		tracks = tracks[:MaxPlaylistTracks]
		_ = r.notifier.SendWarning(input.ChannelID,
			fmt.Sprintf("Playlist too large! Only the first %d songs will be queued.", MaxPlaylistTracks))
	}

	if len(tracks) > LargePlaylistThreshold {
		_ = r.notifier.SendInfo(input.ChannelID,
			fmt.Sprintf("Processing large playlist... Added %d songs to queue.", len(tracks)))
	}

	if len(tracks) == 0 {
		return nil, ErrNoResults
	}

	return tracks, nil
}

// resolveCatalog looks up catalog metadata and finds a playable match for
// each entry via a best-effort top-1 search. Entries whose sub-lookup fails
// are skipped, never aborting the batch.
func (r *ResolverService) resolveCatalog(ctx context.Context, query domain.Query, requesterID snowflake.ID) ([]*domain.Track, error) {
	var (
		entries []ports.CatalogEntry
		err     error
	)

	switch query.CatalogKind {
	case domain.CatalogLinkTrack:
		var entry *ports.CatalogEntry
		entry, err = r.catalog.GetTrack(ctx, query.CatalogID)
		if entry != nil {
			entries = []ports.CatalogEntry{*entry}
		}
	case domain.CatalogLinkAlbum:
		entries, err = r.catalog.GetAlbum(ctx, query.CatalogID)
	case domain.CatalogLinkPlaylist:
		entries, err = r.catalog.GetPlaylist(ctx, query.CatalogID)
	}
	if err != nil {
		return nil, fmt.Errorf("catalog lookup failed: %w", err)
	}

	tracks := make([]*domain.Track, 0, len(entries))
	for _, entry := range entries {
		match, searchErr := r.extractor.Search(ctx, entry.SearchQuery())
		if searchErr != nil || match == nil {
			slog.Warn("skipping catalog entry with no playable match",
				"title", entry.Title, "artist", entry.Artist, "error", searchErr)
			continue
		}

		track := domain.NewTrack(
			match.Locator,
			entry.Title+" - "+entry.Artist,
			entry.ThumbnailURL,
			entry.Duration,
			requesterID,
			domain.TrackSourceCatalog,
		)
		tracks = append(tracks, track)
	}

	return tracks, nil
}

// resolveLink expands a direct media link. Playlist links are listed flat
// first; entries that come back without full metadata are escalated to a
// per-entry fetch.
func (r *ResolverService) resolveLink(ctx context.Context, url string, requesterID snowflake.ID) ([]*domain.Track, error) {
	entries, err := r.extractor.ListPlaylist(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("failed to list media link: %w", err)
	}

	tracks := make([]*domain.Track, 0, len(entries))
	for _, entry := range entries {
		if entry.Locator == "" {
			continue
		}

		if entry.Title == "" {
			full, fetchErr := r.extractor.FetchEntry(ctx, entry.Locator)
			if fetchErr != nil || full == nil {
				slog.Warn("skipping playlist entry", "locator", entry.Locator, "error", fetchErr)
				continue
			}
			entry = *full
		}

		track := domain.NewTrack(
			entry.Locator,
			entry.Title,
			entry.ThumbnailURL,
			entry.Duration,
			requesterID,
			domain.TrackSourcePrimary,
		)
		tracks = append(tracks, track)
	}

	return tracks, nil
}

// resolveSearch performs a top-1 free-text search.
func (r *ResolverService) resolveSearch(ctx context.Context, term string, requesterID snowflake.ID) ([]*domain.Track, error) {
	match, err := r.extractor.Search(ctx, term)
	if err != nil {
		return nil, fmt.Errorf("search failed: %w", err)
	}
	if match == nil {
		return nil, nil
	}

	title := match.Title
	if title == "" {
		title = "Unknown"
	}

	track := domain.NewTrack(
		match.Locator,
		title,
		match.ThumbnailURL,
		match.Duration,
		requesterID,
		domain.TrackSourcePrimary,
	)
	return []*domain.Track{track}, nil
}
