package store

import (
	"database/sql"
	"errors"
	"fmt"
	"strconv"

	"github.com/mcerda31/fanpulse/internal/domain"
)

const trackDetailSelect = `
	SELECT t.*,
		a.name AS artist_name,
		COALESCE(al.name, '') AS album_name,
		COALESCE(al.images, '[]') AS album_images
	FROM tracks t
	JOIN artists a ON a.id = t.artist_id
	LEFT JOIN albums al ON al.id = t.album_id`

const trackDetailOrder = ` ORDER BY t.sort_order, t.created_at DESC, t.id DESC`

func (db *DB) CreateTrack(track *domain.Track) error {
	query := `INSERT INTO tracks (
		spotify_id, isrc, title, artist_id, album_id, duration_ms,
		local_audio_url, spotify_url, preview_url,
		is_featured, is_popular, sort_order, images
	) VALUES (
		:spotify_id, :isrc, :title, :artist_id, :album_id, :duration_ms,
		:local_audio_url, :spotify_url, :preview_url,
		:is_featured, :is_popular, :sort_order, :images
	)`

	res, err := db.q.NamedExec(query, track)
	if err != nil {
		return fmt.Errorf("failed to create track: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to read track id: %w", err)
	}
	track.ID = int(id)
	return nil
}

func (db *DB) GetTrackBySpotifyID(spotifyID string) (*domain.Track, error) {
	var track domain.Track
	err := db.q.Get(&track, `SELECT * FROM tracks WHERE spotify_id = ?`, spotifyID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get track: %w", err)
	}
	return &track, nil
}

// GetTrackByAnyID resolves an identifier that may be the internal numeric id,
// the catalog id, or an ISRC, in that order.
func (db *DB) GetTrackByAnyID(id string) (*domain.TrackDetail, error) {
	if n, err := strconv.Atoi(id); err == nil {
		var track domain.TrackDetail
		err := db.q.Get(&track, trackDetailSelect+` WHERE t.id = ?`, n)
		if err == nil {
			return &track, nil
		}
		if !errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("failed to get track: %w", err)
		}
	}

	var track domain.TrackDetail
	err := db.q.Get(&track, trackDetailSelect+` WHERE t.spotify_id = ? OR (t.isrc = ? AND t.isrc != '') LIMIT 1`, id, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get track: %w", err)
	}
	return &track, nil
}

// BackfillTrack fills gaps in an existing row from freshly fetched catalog
// data. Populated columns keep their current value; popularity only ever
// upgrades.
func (db *DB) BackfillTrack(id int, incoming *domain.Track) error {
	query := `UPDATE tracks SET
		isrc = CASE WHEN isrc = '' THEN :isrc ELSE isrc END,
		title = CASE WHEN title = '' THEN :title ELSE title END,
		album_id = COALESCE(album_id, :album_id),
		duration_ms = CASE WHEN duration_ms = 0 THEN :duration_ms ELSE duration_ms END,
		spotify_url = CASE WHEN spotify_url = '' THEN :spotify_url ELSE spotify_url END,
		preview_url = CASE WHEN preview_url = '' THEN :preview_url ELSE preview_url END,
		images = CASE WHEN images = '[]' THEN :images ELSE images END,
		is_popular = is_popular OR :is_popular,
		sort_order = CASE WHEN :sort_order > 0 THEN :sort_order ELSE sort_order END,
		updated_at = CURRENT_TIMESTAMP
	WHERE id = :id`

	arg := *incoming
	arg.ID = id
	if _, err := db.q.NamedExec(query, &arg); err != nil {
		return fmt.Errorf("failed to backfill track: %w", err)
	}
	return nil
}

// SetTrackAudioPath records the public URL of an uploaded audio file.
func (db *DB) SetTrackAudioPath(id int, publicURL string) error {
	res, err := db.q.Exec(`UPDATE tracks
		SET local_audio_url = ?, updated_at = CURRENT_TIMESTAMP
		WHERE id = ?`, publicURL, id)
	if err != nil {
		return fmt.Errorf("failed to set audio path: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read rows affected: %w", err)
	}
	if n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (db *DB) ListPopularTracks() ([]domain.TrackDetail, error) {
	var tracks []domain.TrackDetail
	err := db.q.Select(&tracks, trackDetailSelect+` WHERE t.is_popular = 1`+trackDetailOrder)
	if err != nil {
		return nil, fmt.Errorf("failed to list popular tracks: %w", err)
	}
	return tracks, nil
}

func (db *DB) ListTracksByArtist(artistID int) ([]domain.TrackDetail, error) {
	var tracks []domain.TrackDetail
	err := db.q.Select(&tracks, trackDetailSelect+` WHERE t.artist_id = ?`+trackDetailOrder, artistID)
	if err != nil {
		return nil, fmt.Errorf("failed to list artist tracks: %w", err)
	}
	return tracks, nil
}

func (db *DB) ListAllTracks() ([]domain.TrackDetail, error) {
	var tracks []domain.TrackDetail
	err := db.q.Select(&tracks, trackDetailSelect+trackDetailOrder)
	if err != nil {
		return nil, fmt.Errorf("failed to list tracks: %w", err)
	}
	return tracks, nil
}

func (db *DB) CountTracks() (int, error) {
	var count int
	if err := db.q.Get(&count, `SELECT COUNT(*) FROM tracks`); err != nil {
		return 0, fmt.Errorf("failed to count tracks: %w", err)
	}
	return count, nil
}
