package store

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/mcerda31/fanpulse/internal/domain"
)

// SeedArtists inserts roster rows that are not present yet. Existing rows are
// left untouched so manual edits survive restarts.
func (db *DB) SeedArtists(artists []domain.Artist) error {
	query := `INSERT INTO artists (name, spotify_id, role)
		VALUES (:name, :spotify_id, :role)
		ON CONFLICT(name) DO NOTHING`

	for i := range artists {
		if _, err := db.q.NamedExec(query, &artists[i]); err != nil {
			return fmt.Errorf("failed to seed artist %q: %w", artists[i].Name, err)
		}
	}
	return nil
}

func (db *DB) GetArtistBySpotifyID(spotifyID string) (*domain.Artist, error) {
	var artist domain.Artist
	err := db.q.Get(&artist, `SELECT * FROM artists WHERE spotify_id = ? AND spotify_id != ''`, spotifyID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get artist by spotify id: %w", err)
	}
	return &artist, nil
}

func (db *DB) GetArtistByName(name string) (*domain.Artist, error) {
	var artist domain.Artist
	err := db.q.Get(&artist, `SELECT * FROM artists WHERE name = ?`, name)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get artist by name: %w", err)
	}
	return &artist, nil
}

func (db *DB) CreateArtist(artist *domain.Artist) error {
	res, err := db.q.NamedExec(`INSERT INTO artists (name, spotify_id, role)
		VALUES (:name, :spotify_id, :role)`, artist)
	if err != nil {
		return fmt.Errorf("failed to create artist: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to read artist id: %w", err)
	}
	artist.ID = int(id)
	return nil
}

func (db *DB) ListArtists() ([]domain.Artist, error) {
	var artists []domain.Artist
	if err := db.q.Select(&artists, `SELECT * FROM artists ORDER BY id`); err != nil {
		return nil, fmt.Errorf("failed to list artists: %w", err)
	}
	return artists, nil
}
