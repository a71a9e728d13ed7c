package catalog

// Wire shapes for the subset of the catalog API the application depends on.

// Track is a raw catalog track record.
type Track struct {
	ID           string       `json:"id"`
	Name         string       `json:"name"`
	Artists      []Artist     `json:"artists"`
	Album        *Album       `json:"album,omitempty"`
	DurationMS   int          `json:"duration_ms"`
	PreviewURL   string       `json:"preview_url"`
	ExternalURLs ExternalURLs `json:"external_urls"`
	ExternalIDs  ExternalIDs  `json:"external_ids"`
}

// PrimaryArtist returns the first artist credit, the ownership determinant
// for roster eligibility.
func (t Track) PrimaryArtist() (Artist, bool) {
	if len(t.Artists) == 0 {
		return Artist{}, false
	}
	return t.Artists[0], true
}

type Artist struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type Album struct {
	ID     string  `json:"id"`
	Name   string  `json:"name"`
	Images []Image `json:"images"`
}

type Image struct {
	URL    string `json:"url"`
	Height int    `json:"height"`
	Width  int    `json:"width"`
}

type ExternalURLs struct {
	Spotify string `json:"spotify"`
}

type ExternalIDs struct {
	ISRC string `json:"isrc"`
}

// AlbumRef is an album entry from an artist's album listing.
type AlbumRef struct {
	ID         string  `json:"id"`
	Name       string  `json:"name"`
	AlbumGroup string  `json:"album_group"`
	Images     []Image `json:"images"`
}

type topTracksResponse struct {
	Tracks []Track `json:"tracks"`
}

type pagedAlbums struct {
	Items []AlbumRef `json:"items"`
	Next  string     `json:"next"`
}

type pagedTracks struct {
	Items []Track `json:"items"`
	Next  string  `json:"next"`
}
