package store

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/mcerda31/fanpulse/internal/domain"
)

func (db *DB) GetAlbumBySpotifyID(spotifyID string) (*domain.Album, error) {
	var album domain.Album
	err := db.q.Get(&album, `SELECT * FROM albums WHERE spotify_id = ?`, spotifyID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get album: %w", err)
	}
	return &album, nil
}

func (db *DB) CreateAlbum(album *domain.Album) error {
	res, err := db.q.NamedExec(`INSERT INTO albums (spotify_id, name, images)
		VALUES (:spotify_id, :name, :images)`, album)
	if err != nil {
		return fmt.Errorf("failed to create album: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to read album id: %w", err)
	}
	album.ID = int(id)
	return nil
}

// UpdateAlbumMeta refreshes the catalog-sourced fields of an existing album.
func (db *DB) UpdateAlbumMeta(id int, name string, images domain.ImageList) error {
	_, err := db.q.Exec(`UPDATE albums
		SET name = ?, images = ?, updated_at = CURRENT_TIMESTAMP
		WHERE id = ?`, name, images, id)
	if err != nil {
		return fmt.Errorf("failed to update album: %w", err)
	}
	return nil
}
