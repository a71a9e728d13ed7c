package store

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/mcerda31/fanpulse/internal/domain"
)

func (db *DB) GetTrackMessage(trackID int) (*domain.TrackMessage, error) {
	var msg domain.TrackMessage
	err := db.q.Get(&msg, `SELECT * FROM track_messages WHERE track_id = ?`, trackID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get track message: %w", err)
	}
	return &msg, nil
}

// UpsertTrackMessage creates or replaces the single message attached to a
// track.
func (db *DB) UpsertTrackMessage(trackID int, body string) (*domain.TrackMessage, error) {
	query := `INSERT INTO track_messages (track_id, body)
		VALUES (?, ?)
		ON CONFLICT(track_id) DO UPDATE SET
			body = excluded.body,
			updated_at = CURRENT_TIMESTAMP`

	if _, err := db.q.Exec(query, trackID, body); err != nil {
		return nil, fmt.Errorf("failed to upsert track message: %w", err)
	}
	return db.GetTrackMessage(trackID)
}
