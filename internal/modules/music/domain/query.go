package domain

import (
	"regexp"
	"strings"
)

// QueryKind classifies user input to the play command.
type QueryKind int

const (
	// QueryCatalogLink is a share link into the music catalog
	// (track, album, or playlist).
	QueryCatalogLink QueryKind = iota
	// QueryDirectLink is a direct media URL.
	QueryDirectLink
	// QuerySearchTerm is free text to search for.
	QuerySearchTerm
)

// CatalogLinkKind is the type of catalog entity a share link points at.
type CatalogLinkKind string

const (
	CatalogLinkTrack    CatalogLinkKind = "track"
	CatalogLinkAlbum    CatalogLinkKind = "album"
	CatalogLinkPlaylist CatalogLinkKind = "playlist"
)

// Regional share links carry an intl-xx path segment before the entity type.
var catalogLinkPattern = regexp.MustCompile(`open\.spotify\.com/(?:intl-[a-zA-Z-]+/)?(track|album|playlist)/([a-zA-Z0-9]+)`)

// Query is a classified play request.
type Query struct {
	Raw         string
	Kind        QueryKind
	CatalogKind CatalogLinkKind // set when Kind == QueryCatalogLink
	CatalogID   string          // set when Kind == QueryCatalogLink
}

// ParseQuery classifies user input into a catalog link, a direct media link,
// or a free-text search term.
func ParseQuery(input string) Query {
	input = strings.TrimSpace(input)

	if m := catalogLinkPattern.FindStringSubmatch(input); m != nil {
		return Query{
			Raw:         input,
			Kind:        QueryCatalogLink,
			CatalogKind: CatalogLinkKind(m[1]),
			CatalogID:   m[2],
		}
	}

	if isURL(input) {
		return Query{Raw: input, Kind: QueryDirectLink}
	}

	return Query{Raw: input, Kind: QuerySearchTerm}
}

// IsValid returns true if the query is not empty.
func (q Query) IsValid() bool {
	return q.Raw != ""
}

func isURL(input string) bool {
	return strings.HasPrefix(input, "http://") ||
		strings.HasPrefix(input, "https://") ||
		strings.HasPrefix(input, "www.")
}
