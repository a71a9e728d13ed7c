// Package catalog wraps the external music catalog API: client-credentials
// token exchange plus the authenticated read endpoints the application uses.
package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/clientcredentials"

	"github.com/mcerda31/fanpulse/internal/constants"
	"github.com/mcerda31/fanpulse/internal/domain"
	"github.com/mcerda31/fanpulse/internal/httpclient"
	"github.com/mcerda31/fanpulse/internal/logger"
)

// Options configures a Client.
type Options struct {
	BaseURL      string
	TokenURL     string
	ClientID     string
	ClientSecret string
	Market       string
	HTTPClient   *httpclient.Client
	Logger       *logger.Logger
}

// Client issues authenticated catalog reads. Tokens are fetched per logical
// call rather than cached, tolerating short-lived tokens. Retry of failed
// operations is left to callers.
type Client struct {
	baseURL string
	market  string
	http    *httpclient.Client
	creds   *clientcredentials.Config
	log     *logger.Logger
}

func NewClient(opts Options) *Client {
	hc := opts.HTTPClient
	if hc == nil {
		hc = httpclient.New(nil, constants.CatalogRequestInterval)
	}
	log := opts.Logger
	if log == nil {
		log = logger.Default()
	}
	return &Client{
		baseURL: strings.TrimSuffix(opts.BaseURL, "/"),
		market:  opts.Market,
		http:    hc,
		creds: &clientcredentials.Config{
			ClientID:     opts.ClientID,
			ClientSecret: opts.ClientSecret,
			TokenURL:     opts.TokenURL,
		},
		log: log.WithComponent("catalog"),
	}
}

// FetchToken exchanges the stored application credentials for a bearer token.
func (c *Client) FetchToken(ctx context.Context) (string, error) {
	ctx = context.WithValue(ctx, oauth2.HTTPClient, c.http.Underlying())
	tok, err := c.creds.Token(ctx)
	if err != nil {
		return "", &AuthError{Err: err}
	}
	return tok.AccessToken, nil
}

// ArtistTopTracks fetches the artist's current top tracks for the configured
// market.
func (c *Client) ArtistTopTracks(ctx context.Context, artistID string) ([]Track, error) {
	params := url.Values{"market": {c.market}}
	var resp topTracksResponse
	if err := c.get(ctx, "/artists/"+url.PathEscape(artistID)+"/top-tracks", params, &resp); err != nil {
		return nil, err
	}
	return resp.Tracks, nil
}

// ArtistAlbums lists every album and single credited to the artist, following
// pagination to exhaustion.
func (c *Client) ArtistAlbums(ctx context.Context, artistID string) ([]AlbumRef, error) {
	params := url.Values{
		"include_groups": {"album,single"},
		"market":         {c.market},
		"limit":          {strconv.Itoa(constants.DefaultPageLimit)},
	}

	next := c.baseURL + "/artists/" + url.PathEscape(artistID) + "/albums?" + params.Encode()
	var albums []AlbumRef
	for next != "" {
		var page pagedAlbums
		if err := c.getURL(ctx, next, &page); err != nil {
			return nil, err
		}
		albums = append(albums, page.Items...)
		next = page.Next
	}
	return albums, nil
}

// AlbumTracks lists an album's tracks, following pagination. Album-track
// records carry no album object of their own; callers attach the album.
func (c *Client) AlbumTracks(ctx context.Context, albumID string) ([]Track, error) {
	params := url.Values{
		"market": {c.market},
		"limit":  {strconv.Itoa(constants.DefaultPageLimit)},
	}

	next := c.baseURL + "/albums/" + url.PathEscape(albumID) + "/tracks?" + params.Encode()
	var tracks []Track
	for next != "" {
		var page pagedTracks
		if err := c.getURL(ctx, next, &page); err != nil {
			return nil, err
		}
		tracks = append(tracks, page.Items...)
		next = page.Next
	}
	return tracks, nil
}

// GetTrack fetches a single track by its catalog identifier. A missing track
// maps to domain.ErrNotFound.
func (c *Client) GetTrack(ctx context.Context, trackID string) (*Track, error) {
	params := url.Values{"market": {c.market}}
	var track Track
	if err := c.get(ctx, "/tracks/"+url.PathEscape(trackID), params, &track); err != nil {
		var ue *UpstreamError
		if errors.As(err, &ue) && ue.Status == http.StatusNotFound {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &track, nil
}

func (c *Client) get(ctx context.Context, path string, params url.Values, out interface{}) error {
	u := c.baseURL + path
	if len(params) > 0 {
		u += "?" + params.Encode()
	}
	return c.getURL(ctx, u, out)
}

// getURL performs one authenticated GET, fetching a fresh token first.
func (c *Client) getURL(ctx context.Context, u string, out interface{}) error {
	token, err := c.FetchToken(ctx)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(ctx, req)
	if err != nil {
		return fmt.Errorf("failed to execute request: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		c.log.Warn("catalog request failed", "url", u, "status", resp.StatusCode)
		return &UpstreamError{Status: resp.StatusCode, Body: strings.TrimSpace(string(body))}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}
