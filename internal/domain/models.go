package domain

import (
	"errors"
	"time"
)

// ErrNotFound is returned when a track, member, or artist cannot be resolved
// locally or upstream.
var ErrNotFound = errors.New("not found")

// Artist represents a performer: the group itself or one of its members.
// The artists table is a closed membership list seeded at startup; the sync
// engine links tracks to these rows and never creates new ones.
type Artist struct {
	ID        int       `json:"id" db:"id"`
	Name      string    `json:"name" db:"name"`
	SpotifyID string    `json:"spotify_id" db:"spotify_id"`
	Role      string    `json:"role" db:"role"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// Album is a catalog-sourced collection, keyed by its external identifier.
type Album struct {
	ID        int       `json:"id" db:"id"`
	SpotifyID string    `json:"spotify_id" db:"spotify_id"`
	Name      string    `json:"name" db:"name"`
	Images    ImageList `json:"images" db:"images"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// Track is the central entity. SpotifyID is the upsert key; LocalAudioURL,
// once set by the upload boundary, is the authoritative playback source.
type Track struct {
	ID            int       `json:"id" db:"id"`
	SpotifyID     string    `json:"spotify_id" db:"spotify_id"`
	ISRC          string    `json:"isrc" db:"isrc"`
	Title         string    `json:"title" db:"title"`
	ArtistID      int       `json:"artist_id" db:"artist_id"`
	AlbumID       *int64    `json:"album_id,omitempty" db:"album_id"`
	DurationMS    int       `json:"duration_ms" db:"duration_ms"`
	LocalAudioURL string    `json:"local_audio_url" db:"local_audio_url"`
	SpotifyURL    string    `json:"spotify_url" db:"spotify_url"`
	PreviewURL    string    `json:"preview_url" db:"preview_url"`
	IsFeatured    bool      `json:"is_featured" db:"is_featured"`
	IsPopular     bool      `json:"is_popular" db:"is_popular"`
	SortOrder     int       `json:"sort_order" db:"sort_order"`
	Images        ImageList `json:"images" db:"images"`
	CreatedAt     time.Time `json:"created_at" db:"created_at"`
	UpdatedAt     time.Time `json:"updated_at" db:"updated_at"`
}

// TrackDetail is a track joined with its owning artist and album, as served
// by the read service.
type TrackDetail struct {
	Track
	ArtistName  string    `db:"artist_name"`
	AlbumName   string    `db:"album_name"`
	AlbumImages ImageList `db:"album_images"`
}

// TrackMessage is an editorial one-to-one annotation per track.
type TrackMessage struct {
	ID        int       `json:"id" db:"id"`
	TrackID   int       `json:"track_id" db:"track_id"`
	Body      string    `json:"body" db:"body"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}
