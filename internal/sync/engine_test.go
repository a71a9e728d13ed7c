package sync

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/mcerda31/fanpulse/internal/catalog"
	"github.com/mcerda31/fanpulse/internal/domain"
	"github.com/mcerda31/fanpulse/internal/logger"
	"github.com/mcerda31/fanpulse/internal/roster"
	"github.com/mcerda31/fanpulse/internal/store"
)

type fakeCatalog struct {
	albums map[string][]catalog.AlbumRef
	tracks map[string][]catalog.Track
	err    error
}

func (f *fakeCatalog) ArtistAlbums(_ context.Context, artistID string) ([]catalog.AlbumRef, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.albums[artistID], nil
}

func (f *fakeCatalog) AlbumTracks(_ context.Context, albumID string) ([]catalog.Track, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.tracks[albumID], nil
}

func setupEngine(t *testing.T) (*Engine, *store.DB, *fakeCatalog) {
	t.Helper()

	db, err := store.NewSQLiteDB(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Failed to open db: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	r := roster.Default()
	if err := db.SeedArtists(r.SeedRows()); err != nil {
		t.Fatalf("SeedArtists failed: %v", err)
	}

	fake := &fakeCatalog{albums: map[string][]catalog.AlbumRef{}, tracks: map[string][]catalog.Track{}}
	return NewEngine(db, r, fake, logger.Default()), db, fake
}

func groupTrack(id, name string) catalog.Track {
	return catalog.Track{
		ID:         id,
		Name:       name,
		Artists:    []catalog.Artist{{ID: "3g7vYcdDXnqnDKYFwqXBJP", Name: "SB19"}},
		DurationMS: 200000,
		PreviewURL: "https://preview/" + id + ".mp3",
		ExternalURLs: catalog.ExternalURLs{
			Spotify: "https://open.spotify.com/track/" + id,
		},
	}
}

func TestPersistTracksInsertsRosterTracks(t *testing.T) {
	engine, db, _ := setupEngine(t)

	tracks := []catalog.Track{
		groupTrack("t1", "GENTO"),
		groupTrack("t2", "MAPA"),
	}
	tracks[0].Album = &catalog.Album{
		ID:     "a1",
		Name:   "PAGTATAG!",
		Images: []catalog.Image{{URL: "https://img/a1.jpg", Height: 640, Width: 640}},
	}

	summary, err := engine.PersistTracks(context.Background(), tracks, true)
	if err != nil {
		t.Fatalf("PersistTracks failed: %v", err)
	}
	if summary.Inserted != 2 || summary.Skipped != 0 || len(summary.Errors) != 0 {
		t.Errorf("Unexpected summary: %+v", summary)
	}
	if summary.BatchID == "" {
		t.Error("Expected a batch id")
	}

	got, err := db.GetTrackBySpotifyID("t1")
	if err != nil {
		t.Fatalf("GetTrackBySpotifyID failed: %v", err)
	}
	if !got.IsPopular || got.SortOrder != 1 {
		t.Errorf("Expected popular rank 1, got popular=%v order=%d", got.IsPopular, got.SortOrder)
	}
	if got.AlbumID == nil {
		t.Fatal("Expected album to be linked")
	}
	album, err := db.GetAlbumBySpotifyID("a1")
	if err != nil {
		t.Fatalf("GetAlbumBySpotifyID failed: %v", err)
	}
	if album.Name != "PAGTATAG!" || len(album.Images) != 1 {
		t.Errorf("Unexpected album: %+v", album)
	}
}

func TestPersistTracksIsIdempotent(t *testing.T) {
	engine, db, _ := setupEngine(t)

	tracks := []catalog.Track{groupTrack("t1", "GENTO")}
	if _, err := engine.PersistTracks(context.Background(), tracks, true); err != nil {
		t.Fatalf("PersistTracks failed: %v", err)
	}
	summary, err := engine.PersistTracks(context.Background(), tracks, true)
	if err != nil {
		t.Fatalf("PersistTracks (repeat) failed: %v", err)
	}
	if summary.Inserted != 0 || summary.Updated != 1 {
		t.Errorf("Repeat run must update, not insert: %+v", summary)
	}

	count, err := db.CountTracks()
	if err != nil {
		t.Fatalf("CountTracks failed: %v", err)
	}
	if count != 1 {
		t.Errorf("Expected 1 track after repeated sync, got %d", count)
	}
}

func TestPersistTracksSkipsNonRoster(t *testing.T) {
	engine, db, _ := setupEngine(t)

	outsider := catalog.Track{
		ID:      "x1",
		Name:    "Other Song",
		Artists: []catalog.Artist{{ID: "someone-else", Name: "Other Artist"}},
	}
	noCredit := catalog.Track{ID: "x2", Name: "Orphan"}

	summary, err := engine.PersistTracks(context.Background(), []catalog.Track{
		groupTrack("t1", "GENTO"), outsider, noCredit,
	}, false)
	if err != nil {
		t.Fatalf("PersistTracks failed: %v", err)
	}
	if summary.Inserted != 1 || summary.Skipped != 2 {
		t.Errorf("Unexpected summary: %+v", summary)
	}

	if _, err := db.GetTrackBySpotifyID("x1"); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("Non-roster track must not be persisted, got %v", err)
	}
	artists, err := db.ListArtists()
	if err != nil {
		t.Fatalf("ListArtists failed: %v", err)
	}
	if len(artists) != 6 {
		t.Errorf("Sync must never grow the roster, got %d artists", len(artists))
	}
}

func TestPersistTracksSkipsMissingCatalogID(t *testing.T) {
	engine, db, _ := setupEngine(t)

	noID := groupTrack("", "No ID One")
	noIDToo := groupTrack("", "No ID Two")
	summary, err := engine.PersistTracks(context.Background(), []catalog.Track{
		noID, groupTrack("t1", "GENTO"), noIDToo,
	}, false)
	if err != nil {
		t.Fatalf("PersistTracks failed: %v", err)
	}
	if summary.Inserted != 1 || summary.Skipped != 2 || summary.Updated != 0 {
		t.Errorf("Unexpected summary: %+v", summary)
	}

	if _, err := db.GetTrackBySpotifyID(""); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("A track without a catalog id must never be persisted, got %v", err)
	}
}

func TestImportTracksSkipsMissingCatalogID(t *testing.T) {
	engine, db, _ := setupEngine(t)

	noID := catalog.Track{
		Name:    "Unreleased Demo",
		Artists: []catalog.Artist{{ID: "guest-artist", Name: "Guest Artist"}},
	}
	summary, err := engine.ImportTracks(context.Background(), []catalog.Track{noID})
	if err != nil {
		t.Fatalf("ImportTracks failed: %v", err)
	}
	if summary.Skipped != 1 || summary.Inserted != 0 {
		t.Errorf("Unexpected summary: %+v", summary)
	}

	count, err := db.CountTracks()
	if err != nil {
		t.Fatalf("CountTracks failed: %v", err)
	}
	if count != 0 {
		t.Errorf("Expected no rows, got %d", count)
	}
}

func TestPersistTracksBackfillKeepsExisting(t *testing.T) {
	engine, db, _ := setupEngine(t)

	first := groupTrack("t1", "GENTO")
	if _, err := engine.PersistTracks(context.Background(), []catalog.Track{first}, false); err != nil {
		t.Fatalf("PersistTracks failed: %v", err)
	}

	second := groupTrack("t1", "GENTO (Remix)")
	second.PreviewURL = "https://preview/other.mp3"
	summary, err := engine.PersistTracks(context.Background(), []catalog.Track{second}, true)
	if err != nil {
		t.Fatalf("PersistTracks failed: %v", err)
	}
	if summary.Updated != 1 {
		t.Errorf("Expected 1 update, got %+v", summary)
	}

	got, err := db.GetTrackBySpotifyID("t1")
	if err != nil {
		t.Fatalf("GetTrackBySpotifyID failed: %v", err)
	}
	if got.Title != "GENTO" {
		t.Errorf("Populated title must survive resync, got %q", got.Title)
	}
	if got.PreviewURL != "https://preview/t1.mp3" {
		t.Errorf("Populated preview must survive resync, got %q", got.PreviewURL)
	}
	if !got.IsPopular {
		t.Error("Popularity must upgrade on a popular sighting")
	}
}

func TestPersistTracksPartialFailure(t *testing.T) {
	// A database seeded with only the group row makes any member-credited
	// track fail individually; the batch must still complete.
	db, err := store.NewSQLiteDB(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Failed to open db: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	if err := db.SeedArtists([]domain.Artist{{Name: "SB19", SpotifyID: "3g7vYcdDXnqnDKYFwqXBJP", Role: "group"}}); err != nil {
		t.Fatalf("SeedArtists failed: %v", err)
	}
	engine := NewEngine(db, roster.Default(), nil, logger.Default())

	memberTrack := catalog.Track{
		ID:      "m1",
		Name:    "La Luna",
		Artists: []catalog.Artist{{ID: "5XhUiCLKmdLEKrmgKUVVC1", Name: "Pablo"}},
	}
	summary, err := engine.PersistTracks(context.Background(), []catalog.Track{
		groupTrack("t1", "GENTO"), memberTrack, groupTrack("t2", "MAPA"),
	}, false)
	if err != nil {
		t.Fatalf("PersistTracks failed: %v", err)
	}
	if summary.Inserted != 2 {
		t.Errorf("Expected healthy tracks to land, got %+v", summary)
	}
	if len(summary.Errors) != 1 {
		t.Errorf("Expected 1 per-track error, got %+v", summary.Errors)
	}
	if _, err := db.GetTrackBySpotifyID("t2"); err != nil {
		t.Errorf("Track after the failing one must still land: %v", err)
	}
}

func TestImportTracksCreatesArtists(t *testing.T) {
	engine, db, _ := setupEngine(t)

	guest := catalog.Track{
		ID:      "c1",
		Name:    "Collab Song",
		Artists: []catalog.Artist{{ID: "guest-artist", Name: "Guest Artist"}},
	}
	summary, err := engine.ImportTracks(context.Background(), []catalog.Track{guest})
	if err != nil {
		t.Fatalf("ImportTracks failed: %v", err)
	}
	if summary.Inserted != 1 || len(summary.Errors) != 0 {
		t.Errorf("Unexpected summary: %+v", summary)
	}

	artist, err := db.GetArtistBySpotifyID("guest-artist")
	if err != nil {
		t.Fatalf("Import must create the artist: %v", err)
	}
	if artist.Role != "external" {
		t.Errorf("Expected external role, got %q", artist.Role)
	}

	// A second import for the same artist reuses the row
	again := catalog.Track{
		ID:      "c2",
		Name:    "Second Song",
		Artists: []catalog.Artist{{ID: "guest-artist", Name: "Guest Artist"}},
	}
	if _, err := engine.ImportTracks(context.Background(), []catalog.Track{again}); err != nil {
		t.Fatalf("ImportTracks failed: %v", err)
	}
	artists, err := db.ListArtists()
	if err != nil {
		t.Fatalf("ListArtists failed: %v", err)
	}
	if len(artists) != 7 {
		t.Errorf("Expected exactly one new artist, got %d total", len(artists))
	}
}

func TestImportArtistWalksDiscography(t *testing.T) {
	engine, db, fake := setupEngine(t)

	fake.albums["guest"] = []catalog.AlbumRef{
		{ID: "a1", Name: "Debut", Images: []catalog.Image{{URL: "https://img/a1.jpg"}}},
		{ID: "a2", Name: "Deluxe"},
	}
	fake.tracks["a1"] = []catalog.Track{
		{ID: "t1", Name: "Song One", Artists: []catalog.Artist{{ID: "guest", Name: "Guest"}}},
		{ID: "t2", Name: "Feature", Artists: []catalog.Artist{{ID: "other", Name: "Other"}}},
	}
	fake.tracks["a2"] = []catalog.Track{
		// Same track re-released; must import once
		{ID: "t1", Name: "Song One", Artists: []catalog.Artist{{ID: "guest", Name: "Guest"}}},
		{ID: "t3", Name: "Song Three", Artists: []catalog.Artist{{ID: "guest", Name: "Guest"}}},
	}

	summary, err := engine.ImportArtist(context.Background(), "guest")
	if err != nil {
		t.Fatalf("ImportArtist failed: %v", err)
	}
	if summary.Total != 2 || summary.Inserted != 2 {
		t.Errorf("Expected 2 deduped primary-credit tracks, got %+v", summary)
	}

	got, err := db.GetTrackBySpotifyID("t1")
	if err != nil {
		t.Fatalf("GetTrackBySpotifyID failed: %v", err)
	}
	if got.AlbumID == nil {
		t.Error("Discography import must attach the album")
	}
	if _, err := db.GetTrackBySpotifyID("t2"); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("Non-primary credits must be excluded, got %v", err)
	}
}

func TestImportArtistUpstreamFailure(t *testing.T) {
	engine, _, fake := setupEngine(t)

	fake.err = errors.New("upstream down")
	if _, err := engine.ImportArtist(context.Background(), "guest"); err == nil {
		t.Fatal("Expected error when discovery fetch fails")
	}
}
