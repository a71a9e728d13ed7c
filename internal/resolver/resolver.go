// Package resolver decides where a track's audio actually comes from:
// previously uploaded files on disk, a freshly probed local file, or the
// catalog's preview clip.
package resolver

import (
	"path"
	"path/filepath"

	"github.com/mcerda31/fanpulse/internal/constants"
	"github.com/mcerda31/fanpulse/internal/storage"
)

// Resolver probes the audio directory for files named after a track's
// catalog id.
type Resolver struct {
	audioDir   string
	publicBase string
	folders    []string
}

// New builds a resolver over audioDir. folders is the probe order of
// subdirectories; the flat audioDir itself is always probed last.
func New(audioDir, publicBase string, folders []string) *Resolver {
	return &Resolver{
		audioDir:   audioDir,
		publicBase: publicBase,
		folders:    folders,
	}
}

// LocalURL returns the public URL of an on-disk audio file for the track, or
// "" when none exists. preferredFolder, when set, is probed before the
// configured folder order. For each location the mp3 name is tried before
// the flac name.
func (r *Resolver) LocalURL(trackID, preferredFolder string) string {
	if trackID == "" {
		return ""
	}

	seen := map[string]bool{}
	probe := make([]string, 0, len(r.folders)+2)
	if preferredFolder != "" {
		probe = append(probe, preferredFolder)
		seen[preferredFolder] = true
	}
	for _, f := range r.folders {
		if !seen[f] {
			probe = append(probe, f)
			seen[f] = true
		}
	}
	probe = append(probe, "")

	for _, folder := range probe {
		for _, ext := range []string{constants.ExtMP3, constants.ExtFLAC} {
			name := trackID + ext
			if storage.FileExists(filepath.Join(r.audioDir, folder, name)) {
				if folder == "" {
					return path.Join(r.publicBase, name)
				}
				return path.Join(r.publicBase, folder, name)
			}
		}
	}
	return ""
}
