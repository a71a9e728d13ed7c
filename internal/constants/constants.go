// Package constants contains application-wide constants to avoid magic numbers and strings.
package constants

import "time"

// Application defaults
const (
	DefaultPort            = "8080"
	DefaultDBPath          = "fanpulse.db"
	DefaultAudioDir        = "uploads/audio"
	DefaultPublicAudioBase = "/media/audio"
	DefaultCatalogURL      = "https://api.spotify.com/v1"
	DefaultTokenURL        = "https://accounts.spotify.com/api/token"
	DefaultMarket          = "PH"
	CatalogHTTPTimeout     = 10 * time.Second
	CatalogRequestInterval = 250 * time.Millisecond
	DefaultRetryCount      = 3
	DefaultRetryBase       = 1 * time.Second
	DefaultPageLimit       = 50
	MaxUploadBytes         = 64 << 20
)

// File Extensions
const (
	ExtMP3  = ".mp3"
	ExtFLAC = ".flac"
)

// File Permissions
const (
	DirPermissions  = 0755
	FilePermissions = 0644
)

// Characters to sanitize from filesystem paths
const InvalidPathChars = "<>:\"/\\|?*"
