package httpapp

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/mcerda31/fanpulse/internal/constants"
	"github.com/mcerda31/fanpulse/internal/domain"
	"github.com/mcerda31/fanpulse/internal/http/dto"
	"github.com/mcerda31/fanpulse/internal/sync"
)

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/healthz", h.Healthz)

	r.Route("/tracks", func(r chi.Router) {
		r.Get("/", h.ListTracks)
		r.Get("/popular", h.PopularTracks)
		r.Get("/member/{memberId}", h.MemberTracks)
		r.Post("/import", h.ImportTracks)

		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", h.GetTrack)
			r.Post("/audio", h.UploadAudio)
			r.Get("/message", h.GetMessage)
			r.Put("/message", h.PutMessage)
		})
	})
}

func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	h.respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// ListTracks returns the full stored catalog. Query params narrow it so
// clients with a single endpoint can still filter.
func (h *Handler) ListTracks(w http.ResponseWriter, r *http.Request) {
	var query dto.TrackListQuery
	if err := h.queryDecoder.Decode(&query, r.URL.Query()); err != nil {
		h.respondError(w, http.StatusBadRequest, "invalid query parameters")
		return
	}
	if errs := query.Validate(); len(errs) > 0 {
		h.respondError(w, http.StatusBadRequest, dto.ToResponse(errs))
		return
	}

	var details []domain.TrackDetail
	var err error
	switch {
	case query.Member != "":
		details, err = h.Tracks.ByMember(r.Context(), query.Member)
	case query.Popular:
		details, err = h.Tracks.Popular(r.Context())
	default:
		details, err = h.Tracks.All(r.Context())
	}
	if err != nil {
		h.serviceError(w, err)
		return
	}

	if query.Featured {
		featured := details[:0]
		for _, d := range details {
			if d.IsFeatured {
				featured = append(featured, d)
			}
		}
		details = featured
	}
	if query.Limit > 0 && query.Limit < len(details) {
		details = details[:query.Limit]
	}
	h.respondJSON(w, http.StatusOK, dto.TrackListResponse{Tracks: dto.FromDetails(details)})
}

func (h *Handler) PopularTracks(w http.ResponseWriter, r *http.Request) {
	tracks, err := h.Tracks.Popular(r.Context())
	if err != nil {
		h.serviceError(w, err)
		return
	}
	h.respondJSON(w, http.StatusOK, dto.TrackListResponse{Tracks: dto.FromDetails(tracks)})
}

func (h *Handler) MemberTracks(w http.ResponseWriter, r *http.Request) {
	tracks, err := h.Tracks.ByMember(r.Context(), chi.URLParam(r, "memberId"))
	if err != nil {
		h.serviceError(w, err)
		return
	}
	h.respondJSON(w, http.StatusOK, dto.TrackListResponse{Tracks: dto.FromDetails(tracks)})
}

func (h *Handler) GetTrack(w http.ResponseWriter, r *http.Request) {
	detail, err := h.Tracks.ByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.serviceError(w, err)
		return
	}
	h.respondJSON(w, http.StatusOK, dto.TrackResponse{Track: dto.FromDetail(*detail)})
}

// ImportTracks accepts a raw track payload or an artist id to walk. The
// response is always a batch summary; per-track failures land in its errors
// list rather than failing the request.
func (h *Handler) ImportTracks(w http.ResponseWriter, r *http.Request) {
	var req dto.ImportRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if errs := req.Validate(); len(errs) > 0 {
		h.respondError(w, http.StatusBadRequest, dto.ToResponse(errs))
		return
	}

	var summary *sync.Summary
	var err error
	if req.ArtistID != "" {
		summary, err = h.Importer.ImportArtist(r.Context(), req.ArtistID)
	} else {
		summary, err = h.Importer.ImportTracks(r.Context(), req.Tracks)
	}
	if err != nil {
		h.serviceError(w, err)
		return
	}
	h.respondJSON(w, http.StatusOK, dto.ImportResponse{Message: "import complete", Summary: summary})
}

// UploadAudio receives a multipart "audio" file for the track.
func (h *Handler) UploadAudio(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, constants.MaxUploadBytes)
	if err := r.ParseMultipartForm(constants.MaxUploadBytes); err != nil {
		h.respondError(w, http.StatusBadRequest, "invalid multipart body")
		return
	}

	file, header, err := r.FormFile("audio")
	if err != nil {
		h.respondError(w, http.StatusBadRequest, "missing audio file")
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		h.respondError(w, http.StatusBadRequest, "failed to read audio file")
		return
	}

	url, err := h.Uploader.SaveTrackAudio(chi.URLParam(r, "id"), header.Filename, data)
	if err != nil {
		h.serviceError(w, err)
		return
	}
	h.respondJSON(w, http.StatusOK, map[string]string{"local_audio_url": url})
}

func (h *Handler) GetMessage(w http.ResponseWriter, r *http.Request) {
	msg, err := h.Tracks.Message(chi.URLParam(r, "id"))
	if err != nil {
		h.serviceError(w, err)
		return
	}
	h.respondJSON(w, http.StatusOK, msg)
}

func (h *Handler) PutMessage(w http.ResponseWriter, r *http.Request) {
	var req dto.MessageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	msg, err := h.Tracks.SetMessage(chi.URLParam(r, "id"), req.Body)
	if err != nil {
		h.serviceError(w, err)
		return
	}
	h.respondJSON(w, http.StatusOK, msg)
}
