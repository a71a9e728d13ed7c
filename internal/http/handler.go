// Package httpapp exposes the JSON API.
package httpapp

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-playground/form/v4"

	"github.com/mcerda31/fanpulse/internal/catalog"
	"github.com/mcerda31/fanpulse/internal/domain"
	"github.com/mcerda31/fanpulse/internal/logger"
	"github.com/mcerda31/fanpulse/internal/sync"
	"github.com/mcerda31/fanpulse/internal/upload"
)

// TrackReader serves the read endpoints.
type TrackReader interface {
	Popular(ctx context.Context) ([]domain.TrackDetail, error)
	ByMember(ctx context.Context, memberID string) ([]domain.TrackDetail, error)
	All(ctx context.Context) ([]domain.TrackDetail, error)
	ByID(ctx context.Context, id string) (*domain.TrackDetail, error)
	Message(trackID string) (*domain.TrackMessage, error)
	SetMessage(trackID, body string) (*domain.TrackMessage, error)
}

// Importer serves the admin bulk import endpoint.
type Importer interface {
	ImportTracks(ctx context.Context, tracks []catalog.Track) (*sync.Summary, error)
	ImportArtist(ctx context.Context, artistID string) (*sync.Summary, error)
}

// Uploader binds uploaded audio files to tracks.
type Uploader interface {
	SaveTrackAudio(trackID, filename string, data []byte) (string, error)
}

type Handler struct {
	Tracks   TrackReader
	Importer Importer
	Uploader Uploader
	Logger   *logger.Logger

	queryDecoder *form.Decoder
}

func NewHandler(tracks TrackReader, importer Importer, uploader Uploader, log *logger.Logger) *Handler {
	return &Handler{
		Tracks:       tracks,
		Importer:     importer,
		Uploader:     uploader,
		Logger:       log.WithComponent("http"),
		queryDecoder: form.NewDecoder(),
	}
}

func (h *Handler) respondJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		h.Logger.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) respondError(w http.ResponseWriter, status int, message string) {
	h.respondJSON(w, status, map[string]string{"error": message})
}

// serviceError maps service layer failures onto HTTP statuses.
func (h *Handler) serviceError(w http.ResponseWriter, err error) {
	var mismatch *upload.MismatchError
	var authErr *catalog.AuthError
	var upstreamErr *catalog.UpstreamError

	switch {
	case errors.Is(err, domain.ErrNotFound):
		h.respondError(w, http.StatusNotFound, "not found")
	case errors.As(err, &mismatch):
		h.respondError(w, http.StatusUnprocessableEntity, mismatch.Error())
	case errors.As(err, &authErr):
		h.Logger.Error("catalog auth failed", "error", err)
		h.respondError(w, http.StatusBadGateway, "catalog authentication failed")
	case errors.As(err, &upstreamErr):
		h.Logger.Error("catalog request failed", "error", err)
		h.respondError(w, http.StatusBadGateway, "catalog unavailable")
	default:
		h.Logger.Error("request failed", "error", err)
		h.respondError(w, http.StatusInternalServerError, "internal error")
	}
}
