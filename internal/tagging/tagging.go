// Package tagging writes metadata into uploaded audio files so downloads
// and local players show the right track info.
package tagging

import (
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/bogem/id3v2/v2"
	"github.com/go-flac/flacpicture"
	"github.com/go-flac/flacvorbis"
	"github.com/go-flac/go-flac"

	"github.com/mcerda31/fanpulse/internal/constants"
)

// Metadata is the tag set written to an uploaded file.
type Metadata struct {
	Title   string
	Artist  string
	Album   string
	ISRC    string
	Artwork []byte
}

// TagFile writes metadata into the audio file at filePath, dispatching on
// the file extension.
func TagFile(filePath string, meta Metadata) error {
	switch strings.ToLower(filepath.Ext(filePath)) {
	case constants.ExtMP3:
		return tagMP3(filePath, meta)
	case constants.ExtFLAC:
		return tagFLAC(filePath, meta)
	default:
		return fmt.Errorf("unsupported file format: %s", filepath.Ext(filePath))
	}
}

func tagMP3(filePath string, meta Metadata) error {
	tag, err := id3v2.Open(filePath, id3v2.Options{Parse: true})
	if err != nil {
		return fmt.Errorf("failed to open MP3 file: %w", err)
	}
	defer tag.Close()

	tag.SetVersion(4)

	if meta.Title != "" {
		tag.SetTitle(meta.Title)
	}
	if meta.Artist != "" {
		tag.SetArtist(meta.Artist)
	}
	if meta.Album != "" {
		tag.SetAlbum(meta.Album)
	}
	if meta.ISRC != "" {
		tag.AddTextFrame(tag.CommonID("ISRC"), tag.DefaultEncoding(), meta.ISRC)
	}
	if len(meta.Artwork) > 0 {
		tag.AddAttachedPicture(id3v2.PictureFrame{
			Encoding:    id3v2.EncodingUTF8,
			MimeType:    detectMime(meta.Artwork),
			PictureType: id3v2.PTFrontCover,
			Description: "Front Cover",
			Picture:     meta.Artwork,
		})
	}

	return tag.Save()
}

// tagFLAC replaces any existing vorbis comment and picture blocks and
// rewrites the file in place.
func tagFLAC(filePath string, meta Metadata) error {
	f, err := flac.ParseFile(filePath)
	if err != nil {
		return fmt.Errorf("failed to parse FLAC file: %w", err)
	}

	kept := f.Meta[:0]
	for _, block := range f.Meta {
		if block.Type == flac.VorbisComment || block.Type == flac.Picture {
			continue
		}
		kept = append(kept, block)
	}

	cmt := flacvorbis.New()
	add := func(field, value string) error {
		if value == "" {
			return nil
		}
		return cmt.Add(field, value)
	}
	if err := add(flacvorbis.FIELD_TITLE, meta.Title); err != nil {
		return fmt.Errorf("failed to add title: %w", err)
	}
	if err := add(flacvorbis.FIELD_ARTIST, meta.Artist); err != nil {
		return fmt.Errorf("failed to add artist: %w", err)
	}
	if err := add(flacvorbis.FIELD_ALBUM, meta.Album); err != nil {
		return fmt.Errorf("failed to add album: %w", err)
	}
	if err := add(flacvorbis.FIELD_ISRC, meta.ISRC); err != nil {
		return fmt.Errorf("failed to add isrc: %w", err)
	}
	cmtBlock := cmt.Marshal()
	kept = append(kept, &cmtBlock)

	if len(meta.Artwork) > 0 {
		pic, err := flacpicture.NewFromImageData(
			flacpicture.PictureTypeFrontCover, "Front Cover", meta.Artwork, detectMime(meta.Artwork))
		if err != nil {
			return fmt.Errorf("failed to build picture block: %w", err)
		}
		picBlock := pic.Marshal()
		kept = append(kept, &picBlock)
	}

	f.Meta = kept
	if err := f.Save(filePath); err != nil {
		return fmt.Errorf("failed to save FLAC file: %w", err)
	}
	return nil
}

// DownloadImage fetches cover art bytes. An empty URL returns nil without
// error.
func DownloadImage(url string) ([]byte, error) {
	if url == "" {
		return nil, nil
	}

	client := &http.Client{Timeout: constants.CatalogHTTPTimeout}
	resp, err := client.Get(url)
	if err != nil {
		return nil, fmt.Errorf("failed to download image: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("failed to download image: status %d", resp.StatusCode)
	}
	return io.ReadAll(resp.Body)
}

func detectMime(data []byte) string {
	mime := http.DetectContentType(data)
	if idx := strings.Index(mime, ";"); idx != -1 {
		mime = strings.TrimSpace(mime[:idx])
	}
	return mime
}
