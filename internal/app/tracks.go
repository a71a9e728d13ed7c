// Package app holds the read service the HTTP layer talks to. Reads are
// cache-first against the database; an empty collection triggers a catalog
// fetch that is persisted through the sync engine before re-reading.
package app

import (
	"context"
	"errors"
	"fmt"

	"github.com/mcerda31/fanpulse/internal/catalog"
	"github.com/mcerda31/fanpulse/internal/domain"
	"github.com/mcerda31/fanpulse/internal/logger"
	"github.com/mcerda31/fanpulse/internal/resolver"
	"github.com/mcerda31/fanpulse/internal/roster"
	"github.com/mcerda31/fanpulse/internal/store"
	"github.com/mcerda31/fanpulse/internal/sync"
)

// Catalog is the slice of the catalog client the read service needs.
type Catalog interface {
	ArtistTopTracks(ctx context.Context, artistID string) ([]catalog.Track, error)
	GetTrack(ctx context.Context, trackID string) (*catalog.Track, error)
}

// Syncer persists fetched catalog tracks.
type Syncer interface {
	PersistTracks(ctx context.Context, tracks []catalog.Track, markPopular bool) (*sync.Summary, error)
}

type TrackService struct {
	db       *store.DB
	catalog  Catalog
	syncer   Syncer
	roster   *roster.Roster
	resolver *resolver.Resolver
	log      *logger.Logger
}

func NewTrackService(db *store.DB, cat Catalog, syncer Syncer, r *roster.Roster, res *resolver.Resolver, log *logger.Logger) *TrackService {
	return &TrackService{
		db:       db,
		catalog:  cat,
		syncer:   syncer,
		roster:   r,
		resolver: res,
		log:      log.WithComponent("tracks"),
	}
}

// Popular returns the group's popular tracks. An empty table triggers a
// top-tracks fetch which is persisted before re-reading, so the response
// always reflects stored rows.
func (s *TrackService) Popular(ctx context.Context) ([]domain.TrackDetail, error) {
	tracks, err := s.db.ListPopularTracks()
	if err != nil {
		return nil, err
	}
	if len(tracks) > 0 {
		return s.enrich(tracks), nil
	}

	s.log.Info("popular cache empty, fetching from catalog")
	fetched, err := s.catalog.ArtistTopTracks(ctx, s.roster.Group().SpotifyID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch top tracks: %w", err)
	}
	if _, err := s.syncer.PersistTracks(ctx, fetched, true); err != nil {
		return nil, fmt.Errorf("failed to persist top tracks: %w", err)
	}

	tracks, err = s.db.ListPopularTracks()
	if err != nil {
		return nil, err
	}
	return s.enrich(tracks), nil
}

// ByMember returns a member's stored tracks, filling the cache from the
// member's top tracks on first read. Unknown member identifiers map to
// domain.ErrNotFound.
func (s *TrackService) ByMember(ctx context.Context, memberID string) ([]domain.TrackDetail, error) {
	member, ok := s.roster.Resolve(memberID)
	if !ok {
		return nil, domain.ErrNotFound
	}
	artist, err := s.db.GetArtistByName(member.Name)
	if err != nil {
		return nil, err
	}

	tracks, err := s.db.ListTracksByArtist(artist.ID)
	if err != nil {
		return nil, err
	}
	if len(tracks) > 0 {
		return s.enrich(tracks), nil
	}

	s.log.Info("member cache empty, fetching from catalog", "member", member.Slug)
	fetched, err := s.catalog.ArtistTopTracks(ctx, member.SpotifyID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch member tracks: %w", err)
	}
	if _, err := s.syncer.PersistTracks(ctx, fetched, false); err != nil {
		return nil, fmt.Errorf("failed to persist member tracks: %w", err)
	}

	tracks, err = s.db.ListTracksByArtist(artist.ID)
	if err != nil {
		return nil, err
	}
	return s.enrich(tracks), nil
}

// All returns every stored track. A completely empty table triggers one
// top-tracks fetch per roster entry.
func (s *TrackService) All(ctx context.Context) ([]domain.TrackDetail, error) {
	tracks, err := s.db.ListAllTracks()
	if err != nil {
		return nil, err
	}
	if len(tracks) > 0 {
		return s.enrich(tracks), nil
	}

	s.log.Info("track cache empty, fetching roster top tracks")
	for _, member := range s.roster.Members() {
		fetched, err := s.catalog.ArtistTopTracks(ctx, member.SpotifyID)
		if err != nil {
			return nil, fmt.Errorf("failed to fetch tracks for %s: %w", member.Slug, err)
		}
		markPopular := member.Role == roster.RoleGroup
		if _, err := s.syncer.PersistTracks(ctx, fetched, markPopular); err != nil {
			return nil, fmt.Errorf("failed to persist tracks for %s: %w", member.Slug, err)
		}
	}

	tracks, err = s.db.ListAllTracks()
	if err != nil {
		return nil, err
	}
	return s.enrich(tracks), nil
}

// ByID returns a single track by internal id, catalog id, or ISRC. A local
// miss falls through to the catalog; the result is served directly without
// being persisted.
func (s *TrackService) ByID(ctx context.Context, id string) (*domain.TrackDetail, error) {
	detail, err := s.db.GetTrackByAnyID(id)
	if err == nil {
		enriched := s.enrichOne(*detail)
		return &enriched, nil
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}

	s.log.Info("track not cached, fetching from catalog", "id", id)
	ct, err := s.catalog.GetTrack(ctx, id)
	if err != nil {
		return nil, err
	}
	detail = transientDetail(ct)
	enriched := s.enrichOne(*detail)
	return &enriched, nil
}

// enrich resolves the playback source for each row. A stored upload wins; a
// probed on-disk file fills local_audio_url when the row has none.
func (s *TrackService) enrich(tracks []domain.TrackDetail) []domain.TrackDetail {
	out := make([]domain.TrackDetail, len(tracks))
	for i, tr := range tracks {
		out[i] = s.enrichOne(tr)
	}
	return out
}

func (s *TrackService) enrichOne(tr domain.TrackDetail) domain.TrackDetail {
	if tr.LocalAudioURL == "" {
		folder := ""
		if member, ok := s.roster.Lookup("", tr.ArtistName); ok {
			folder = member.Folder
		}
		tr.LocalAudioURL = s.resolver.LocalURL(tr.SpotifyID, folder)
	}
	return tr
}

// transientDetail shapes an upstream track that has no local row.
func transientDetail(ct *catalog.Track) *domain.TrackDetail {
	detail := &domain.TrackDetail{
		Track: domain.Track{
			SpotifyID:  ct.ID,
			ISRC:       ct.ExternalIDs.ISRC,
			Title:      ct.Name,
			DurationMS: ct.DurationMS,
			SpotifyURL: ct.ExternalURLs.Spotify,
			PreviewURL: ct.PreviewURL,
		},
	}
	if primary, ok := ct.PrimaryArtist(); ok {
		detail.ArtistName = primary.Name
	}
	if ct.Album != nil {
		detail.AlbumName = ct.Album.Name
		for _, img := range ct.Album.Images {
			detail.AlbumImages = append(detail.AlbumImages, domain.Image{URL: img.URL, Height: img.Height, Width: img.Width})
		}
		detail.Images = detail.AlbumImages
	}
	return detail
}
