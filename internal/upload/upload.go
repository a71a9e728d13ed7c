// Package upload accepts admin audio uploads and binds them to tracks. The
// filename contract is strict: the base name must be the track's catalog id
// so files on disk are resolvable without a database lookup.
package upload

import (
	"fmt"
	"path"
	"path/filepath"
	"strings"

	"github.com/mcerda31/fanpulse/internal/constants"
	"github.com/mcerda31/fanpulse/internal/logger"
	"github.com/mcerda31/fanpulse/internal/roster"
	"github.com/mcerda31/fanpulse/internal/storage"
	"github.com/mcerda31/fanpulse/internal/store"
	"github.com/mcerda31/fanpulse/internal/tagging"
)

// MismatchError reports an upload whose filename does not name the track it
// was posted to.
type MismatchError struct {
	Expected string
	Received string
}

func (e *MismatchError) Error() string {
	return fmt.Sprintf("filename must match the track id: expected %q, received %q", e.Expected, e.Received)
}

type Service struct {
	db         *store.DB
	roster     *roster.Roster
	audioDir   string
	publicBase string
	log        *logger.Logger
}

func NewService(db *store.DB, r *roster.Roster, audioDir, publicBase string, log *logger.Logger) *Service {
	return &Service{
		db:         db,
		roster:     r,
		audioDir:   audioDir,
		publicBase: publicBase,
		log:        log.WithComponent("upload"),
	}
}

// SaveTrackAudio stores an uploaded file under the owning performer's
// folder, tags it from the track's stored metadata, and records its public
// URL. It returns that URL.
func (s *Service) SaveTrackAudio(trackID, filename string, data []byte) (string, error) {
	track, err := s.db.GetTrackByAnyID(trackID)
	if err != nil {
		return "", err
	}

	ext := strings.ToLower(filepath.Ext(filename))
	if ext != constants.ExtMP3 && ext != constants.ExtFLAC {
		return "", fmt.Errorf("unsupported audio format: %q", ext)
	}

	base := strings.TrimSuffix(filepath.Base(filename), filepath.Ext(filename))
	if base != track.SpotifyID {
		return "", &MismatchError{Expected: track.SpotifyID, Received: base}
	}

	folder := s.folderFor(track.ArtistName)
	dir := filepath.Join(s.audioDir, folder)
	if err := storage.EnsureDir(dir); err != nil {
		return "", fmt.Errorf("failed to create audio directory: %w", err)
	}

	name := track.SpotifyID + ext
	dst := filepath.Join(dir, name)
	if err := storage.WriteFile(dst, data); err != nil {
		return "", fmt.Errorf("failed to write audio file: %w", err)
	}

	meta := tagging.Metadata{
		Title:  track.Title,
		Artist: track.ArtistName,
		Album:  track.AlbumName,
		ISRC:   track.ISRC,
	}
	if len(track.AlbumImages) > 0 {
		art, err := tagging.DownloadImage(track.AlbumImages[0].URL)
		if err != nil {
			s.log.Warn("failed to fetch cover art", "track", track.SpotifyID, "error", err)
		}
		meta.Artwork = art
	}
	if err := tagging.TagFile(dst, meta); err != nil {
		// The upload itself succeeded; stale tags are recoverable.
		s.log.Warn("failed to tag uploaded file", "path", dst, "error", err)
	}

	publicURL := path.Join(s.publicBase, folder, name)
	if err := s.db.SetTrackAudioPath(track.ID, publicURL); err != nil {
		return "", err
	}

	s.log.Info("audio uploaded", "track", track.SpotifyID, "path", dst)
	return publicURL, nil
}

func (s *Service) folderFor(artistName string) string {
	if member, ok := s.roster.Lookup("", artistName); ok {
		return member.Folder
	}
	return storage.Sanitize(strings.ToLower(artistName))
}
