package sync

import (
	"context"
	"fmt"

	"github.com/mcerda31/fanpulse/internal/catalog"
)

// ImportArtist walks an artist's full discography upstream and imports every
// track the artist is primarily credited on. Tracks appearing on several
// releases are imported once, first sighting wins.
func (e *Engine) ImportArtist(ctx context.Context, artistID string) (*Summary, error) {
	albums, err := e.catalog.ArtistAlbums(ctx, artistID)
	if err != nil {
		return nil, fmt.Errorf("failed to list artist albums: %w", err)
	}

	seen := map[string]bool{}
	var tracks []catalog.Track
	for _, al := range albums {
		albumTracks, err := e.catalog.AlbumTracks(ctx, al.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to list tracks for album %s: %w", al.ID, err)
		}

		album := &catalog.Album{ID: al.ID, Name: al.Name, Images: al.Images}
		for _, ct := range albumTracks {
			primary, ok := ct.PrimaryArtist()
			if !ok || primary.ID != artistID {
				continue
			}
			if seen[ct.ID] {
				continue
			}
			seen[ct.ID] = true
			// Album-track records carry no album object of their own.
			ct.Album = album
			tracks = append(tracks, ct)
		}
	}

	e.log.Info("discography walk complete", "artist_id", artistID, "albums", len(albums), "tracks", len(tracks))
	return e.ImportTracks(ctx, tracks)
}
