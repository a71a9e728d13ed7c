package app

import (
	"github.com/mcerda31/fanpulse/internal/domain"
)

// Message returns the editorial note attached to a track, resolving the
// track by any of its identifiers. Only stored tracks carry messages.
func (s *TrackService) Message(trackID string) (*domain.TrackMessage, error) {
	track, err := s.db.GetTrackByAnyID(trackID)
	if err != nil {
		return nil, err
	}
	return s.db.GetTrackMessage(track.ID)
}

// SetMessage creates or replaces a track's editorial note.
func (s *TrackService) SetMessage(trackID, body string) (*domain.TrackMessage, error) {
	track, err := s.db.GetTrackByAnyID(trackID)
	if err != nil {
		return nil, err
	}
	return s.db.UpsertTrackMessage(track.ID, body)
}
