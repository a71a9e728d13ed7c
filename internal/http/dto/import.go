package dto

import (
	"github.com/mcerda31/fanpulse/internal/catalog"
	"github.com/mcerda31/fanpulse/internal/sync"
)

// ImportRequest carries either a raw track payload or an artist id whose
// discography should be walked upstream. Exactly one must be present.
type ImportRequest struct {
	ArtistID string          `json:"artistId,omitempty"`
	Tracks   []catalog.Track `json:"tracks,omitempty"`
}

// Validate checks the request shape. A track with no catalog id is not a
// request error; the import batch skips it and reports it in the summary.
func (r *ImportRequest) Validate() []ValidationError {
	var errs []ValidationError
	if r.ArtistID == "" && len(r.Tracks) == 0 {
		errs = append(errs, ValidationError{Field: "request", Message: "either artistId or tracks is required"})
	}
	if r.ArtistID != "" && len(r.Tracks) > 0 {
		errs = append(errs, ValidationError{Field: "request", Message: "artistId and tracks are mutually exclusive"})
	}
	for _, tr := range r.Tracks {
		if verrs := validateISRC(tr.ExternalIDs.ISRC); len(verrs) > 0 {
			errs = append(errs, verrs...)
			break
		}
	}
	return errs
}

// ImportResponse is the envelope for the bulk import endpoint. Callers read
// the summary to see which tracks were skipped or failed.
type ImportResponse struct {
	Message string        `json:"message"`
	Summary *sync.Summary `json:"summary"`
}

// MessageRequest sets a track's editorial note.
type MessageRequest struct {
	Body string `json:"body"`
}
