// Package sync ingests catalog track data into the local database. The
// regular path is roster-closed: tracks credited to performers outside the
// roster are skipped. The admin import path is permissive and creates artist
// rows on demand.
package sync

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/mcerda31/fanpulse/internal/catalog"
	"github.com/mcerda31/fanpulse/internal/domain"
	"github.com/mcerda31/fanpulse/internal/logger"
	"github.com/mcerda31/fanpulse/internal/roster"
	"github.com/mcerda31/fanpulse/internal/store"
)

// Catalog is the slice of the catalog client discovery needs.
type Catalog interface {
	ArtistAlbums(ctx context.Context, artistID string) ([]catalog.AlbumRef, error)
	AlbumTracks(ctx context.Context, albumID string) ([]catalog.Track, error)
}

// Summary reports the outcome of one ingest batch. Errors holds per-track
// failures; a failed track never aborts the batch.
type Summary struct {
	BatchID  string   `json:"batch_id"`
	Total    int      `json:"total"`
	Inserted int      `json:"inserted"`
	Updated  int      `json:"updated"`
	Skipped  int      `json:"skipped"`
	Errors   []string `json:"errors,omitempty"`
}

type Engine struct {
	db      *store.DB
	roster  *roster.Roster
	catalog Catalog
	log     *logger.Logger
}

func NewEngine(db *store.DB, r *roster.Roster, cat Catalog, log *logger.Logger) *Engine {
	return &Engine{
		db:      db,
		roster:  r,
		catalog: cat,
		log:     log.WithComponent("sync"),
	}
}

// PersistTracks upserts a batch of catalog tracks inside one transaction,
// linking each to its roster artist. Tracks credited outside the roster are
// skipped. markPopular flags the batch as a top-tracks snapshot: rows gain
// the popular flag and their position in the batch.
func (e *Engine) PersistTracks(ctx context.Context, tracks []catalog.Track, markPopular bool) (*Summary, error) {
	summary := &Summary{BatchID: uuid.New().String(), Total: len(tracks)}
	log := e.log.WithBatch(summary.BatchID, "sync")

	err := e.db.RunInTx(ctx, func(txDB *store.DB) error {
		for i, ct := range tracks {
			if ct.ID == "" {
				summary.Skipped++
				log.Warn("track has no catalog id", "title", ct.Name)
				continue
			}

			primary, ok := ct.PrimaryArtist()
			if !ok {
				summary.Skipped++
				log.Warn("track has no artist credit", "spotify_id", ct.ID)
				continue
			}

			member, ok := e.roster.Lookup(primary.ID, primary.Name)
			if !ok {
				summary.Skipped++
				log.Debug("skipping non-roster track", "spotify_id", ct.ID, "artist", primary.Name)
				continue
			}

			artistRow, err := txDB.GetArtistByName(member.Name)
			if err != nil {
				summary.Errors = append(summary.Errors, fmt.Sprintf("%s: roster artist %q not in db: %v", ct.ID, member.Name, err))
				log.Error("roster artist missing from db", "artist", member.Name, "error", err)
				continue
			}

			sortOrder := 0
			if markPopular {
				sortOrder = i + 1
			}
			if err := e.upsertOne(txDB, summary, ct, artistRow.ID, markPopular, sortOrder); err != nil {
				log.Error("track upsert failed", "spotify_id", ct.ID, "error", err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	log.Info("sync batch complete",
		"total", summary.Total,
		"inserted", summary.Inserted,
		"updated", summary.Updated,
		"skipped", summary.Skipped,
		"errors", len(summary.Errors))
	return summary, nil
}

// ImportTracks upserts admin-supplied tracks, creating artist rows for
// performers not yet present. Unlike PersistTracks it accepts any artist.
func (e *Engine) ImportTracks(ctx context.Context, tracks []catalog.Track) (*Summary, error) {
	summary := &Summary{BatchID: uuid.New().String(), Total: len(tracks)}
	log := e.log.WithBatch(summary.BatchID, "import")

	err := e.db.RunInTx(ctx, func(txDB *store.DB) error {
		for _, ct := range tracks {
			if ct.ID == "" {
				summary.Skipped++
				log.Warn("track has no catalog id", "title", ct.Name)
				continue
			}

			primary, ok := ct.PrimaryArtist()
			if !ok {
				summary.Skipped++
				log.Warn("track has no artist credit", "spotify_id", ct.ID)
				continue
			}

			artistRow, err := e.findOrCreateArtist(txDB, primary)
			if err != nil {
				summary.Errors = append(summary.Errors, fmt.Sprintf("%s: %v", ct.ID, err))
				log.Error("artist resolution failed", "spotify_id", ct.ID, "error", err)
				continue
			}

			if err := e.upsertOne(txDB, summary, ct, artistRow.ID, false, 0); err != nil {
				log.Error("track upsert failed", "spotify_id", ct.ID, "error", err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	log.Info("import batch complete",
		"total", summary.Total,
		"inserted", summary.Inserted,
		"updated", summary.Updated,
		"skipped", summary.Skipped,
		"errors", len(summary.Errors))
	return summary, nil
}

// upsertOne writes a single track inside its own savepoint so a failure
// rolls back only that track's rows and the batch carries on.
func (e *Engine) upsertOne(txDB *store.DB, summary *Summary, ct catalog.Track, artistID int, markPopular bool, sortOrder int) error {
	err := txDB.Savepoint(fmt.Sprintf("track_%d", summary.Inserted+summary.Updated+len(summary.Errors)), func() error {
		albumID, images, err := e.upsertAlbum(txDB, ct.Album)
		if err != nil {
			return err
		}

		existing, err := txDB.GetTrackBySpotifyID(ct.ID)
		if err != nil && !errors.Is(err, domain.ErrNotFound) {
			return err
		}

		row := trackRow(ct, artistID, albumID, images, markPopular, sortOrder)
		if existing == nil {
			summary.Inserted++
			return txDB.CreateTrack(row)
		}
		summary.Updated++
		return txDB.BackfillTrack(existing.ID, row)
	})
	if err != nil {
		summary.Errors = append(summary.Errors, fmt.Sprintf("%s: %v", ct.ID, err))
	}
	return err
}

// upsertAlbum writes the album record if the track carries one, refreshing
// name and artwork on later sightings.
func (e *Engine) upsertAlbum(txDB *store.DB, al *catalog.Album) (*int64, domain.ImageList, error) {
	if al == nil || al.ID == "" {
		return nil, nil, nil
	}

	images := toImageList(al.Images)
	existing, err := txDB.GetAlbumBySpotifyID(al.ID)
	if errors.Is(err, domain.ErrNotFound) {
		album := &domain.Album{SpotifyID: al.ID, Name: al.Name, Images: images}
		if err := txDB.CreateAlbum(album); err != nil {
			return nil, nil, err
		}
		id := int64(album.ID)
		return &id, images, nil
	}
	if err != nil {
		return nil, nil, err
	}

	if existing.Name != al.Name || len(images) > 0 {
		if err := txDB.UpdateAlbumMeta(existing.ID, al.Name, images); err != nil {
			return nil, nil, err
		}
	}
	id := int64(existing.ID)
	return &id, images, nil
}

func (e *Engine) findOrCreateArtist(txDB *store.DB, credit catalog.Artist) (*domain.Artist, error) {
	if credit.ID != "" {
		if artist, err := txDB.GetArtistBySpotifyID(credit.ID); err == nil {
			return artist, nil
		} else if !errors.Is(err, domain.ErrNotFound) {
			return nil, err
		}
	}
	if artist, err := txDB.GetArtistByName(credit.Name); err == nil {
		return artist, nil
	} else if !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}

	artist := &domain.Artist{Name: credit.Name, SpotifyID: credit.ID, Role: "external"}
	if err := txDB.CreateArtist(artist); err != nil {
		return nil, err
	}
	e.log.Info("created artist from import", "name", credit.Name, "spotify_id", credit.ID)
	return artist, nil
}

func trackRow(ct catalog.Track, artistID int, albumID *int64, images domain.ImageList, markPopular bool, sortOrder int) *domain.Track {
	return &domain.Track{
		SpotifyID:  ct.ID,
		ISRC:       ct.ExternalIDs.ISRC,
		Title:      ct.Name,
		ArtistID:   artistID,
		AlbumID:    albumID,
		DurationMS: ct.DurationMS,
		SpotifyURL: ct.ExternalURLs.Spotify,
		PreviewURL: ct.PreviewURL,
		IsPopular:  markPopular,
		SortOrder:  sortOrder,
		Images:     images,
	}
}

func toImageList(images []catalog.Image) domain.ImageList {
	if len(images) == 0 {
		return nil
	}
	out := make(domain.ImageList, 0, len(images))
	for _, img := range images {
		out = append(out, domain.Image{URL: img.URL, Height: img.Height, Width: img.Width})
	}
	return out
}
