package domain

import (
	"strconv"
	"time"

	"github.com/disgoorg/snowflake/v2"
)

// TrackSource represents the origin platform of a track.
type TrackSource string

const (
	// TrackSourcePrimary is a track found on the media platform directly
	// (direct link or search result).
	TrackSourcePrimary TrackSource = "primary"
	// TrackSourceCatalog is a track resolved from a catalog share link.
	TrackSourceCatalog TrackSource = "catalog"
)

// Emoji returns the marker used when rendering the track in embeds.
func (s TrackSource) Emoji() string {
	if s == TrackSourceCatalog {
		return "\U0001F49A" // green heart
	}
	return "\U0001F3B5" // musical note
}

// Track represents a playable audio track.
type Track struct {
	Locator      string // page URL or resolver reference, not directly streamable
	StreamURL    string // concrete stream URL, attached just before playback
	Title        string
	ThumbnailURL string
	Duration     time.Duration // 0 means live or unknown
	RequesterID  snowflake.ID
	Source       TrackSource
	EnqueuedAt   time.Time
}

// NewTrack creates a new Track with the given parameters.
func NewTrack(
	locator string,
	title string,
	thumbnailURL string,
	duration time.Duration,
	requesterID snowflake.ID,
	source TrackSource,
) *Track {
	return &Track{
		Locator:      locator,
		Title:        title,
		ThumbnailURL: thumbnailURL,
		Duration:     duration,
		RequesterID:  requesterID,
		Source:       source,
		EnqueuedAt:   time.Now().UTC(),
	}
}

// IsValid returns true if the track has the minimum required fields.
func (t *Track) IsValid() bool {
	return t.Locator != "" && t.Title != ""
}

// FormattedDuration returns the duration as a human-readable string.
func (t *Track) FormattedDuration() string {
	if t.Duration <= 0 {
		return "LIVE"
	}

	totalSeconds := int(t.Duration.Seconds())
	hours := totalSeconds / 3600
	minutes := (totalSeconds % 3600) / 60
	seconds := totalSeconds % 60

	switch {
	case hours > 0:
		return strconv.Itoa(hours) + " hr " + strconv.Itoa(minutes) + " min " + strconv.Itoa(seconds) + " sec"
	case minutes > 0:
		return strconv.Itoa(minutes) + " min " + strconv.Itoa(seconds) + " sec"
	default:
		return strconv.Itoa(seconds) + " sec"
	}
}
