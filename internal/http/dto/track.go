package dto

import (
	"github.com/mcerda31/fanpulse/internal/domain"
)

// Track is the wire shape served to clients. It mirrors the catalog's track
// object so existing fan-site frontends can consume it unchanged.
type Track struct {
	ID           string       `json:"id"`
	Name         string       `json:"name"`
	Artists      []Artist     `json:"artists"`
	Album        *Album       `json:"album,omitempty"`
	DurationMS   int          `json:"duration_ms"`
	PreviewURL   string       `json:"preview_url,omitempty"`
	LocalAudio   string       `json:"local_audio_url,omitempty"`
	ExternalURLs ExternalURLs `json:"external_urls"`
}

// TrackListResponse is the envelope for collection endpoints.
type TrackListResponse struct {
	Tracks []Track `json:"tracks"`
}

// TrackResponse is the envelope for single-track lookups.
type TrackResponse struct {
	Track Track `json:"track"`
}

type Artist struct {
	Name string `json:"name"`
}

type Album struct {
	Name   string         `json:"name"`
	Images []domain.Image `json:"images"`
}

type ExternalURLs struct {
	Spotify string `json:"spotify,omitempty"`
}

// FromDetail shapes one stored track row. A playable local file takes the
// preview_url slot so clients always stream the best available source.
func FromDetail(d domain.TrackDetail) Track {
	preview := d.PreviewURL
	if d.LocalAudioURL != "" {
		preview = d.LocalAudioURL
	}
	t := Track{
		ID:           d.SpotifyID,
		Name:         d.Title,
		DurationMS:   d.DurationMS,
		PreviewURL:   preview,
		LocalAudio:   d.LocalAudioURL,
		ExternalURLs: ExternalURLs{Spotify: d.SpotifyURL},
	}
	if d.ArtistName != "" {
		t.Artists = []Artist{{Name: d.ArtistName}}
	}
	if d.AlbumName != "" || len(d.AlbumImages) > 0 {
		images := d.AlbumImages
		if images == nil {
			images = domain.ImageList{}
		}
		t.Album = &Album{Name: d.AlbumName, Images: images}
	}
	return t
}

func FromDetails(details []domain.TrackDetail) []Track {
	tracks := make([]Track, len(details))
	for i, d := range details {
		tracks[i] = FromDetail(d)
	}
	return tracks
}
