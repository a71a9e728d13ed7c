package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/mcerda31/fanpulse/internal/domain"
	"github.com/mcerda31/fanpulse/internal/httpclient"
)

func newTestClient(t *testing.T, handler http.Handler) (*Client, *httptest.Server) {
	t.Helper()

	mux := http.NewServeMux()
	mux.HandleFunc("/api/token", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"access_token": "test-token",
			"token_type":   "Bearer",
			"expires_in":   3600,
		})
	})
	mux.Handle("/", handler)

	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)

	client := NewClient(Options{
		BaseURL:      server.URL,
		TokenURL:     server.URL + "/api/token",
		ClientID:     "test-client",
		ClientSecret: "test-secret",
		Market:       "PH",
		HTTPClient:   httpclient.New(server.Client(), 0),
	})
	return client, server
}

func TestFetchToken(t *testing.T) {
	client, _ := newTestClient(t, http.NotFoundHandler())

	token, err := client.FetchToken(context.Background())
	if err != nil {
		t.Fatalf("FetchToken failed: %v", err)
	}
	if token != "test-token" {
		t.Errorf("Expected token 'test-token', got %q", token)
	}
}

func TestFetchTokenBadCredentials(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer server.Close()

	client := NewClient(Options{
		TokenURL:     server.URL + "/api/token",
		ClientID:     "bad",
		ClientSecret: "bad",
		HTTPClient:   httpclient.New(server.Client(), 0),
	})

	_, err := client.FetchToken(context.Background())
	if err == nil {
		t.Fatal("Expected error for rejected credentials")
	}
	var ae *AuthError
	if !errors.As(err, &ae) {
		t.Errorf("Expected AuthError, got %T: %v", err, err)
	}
}

func TestArtistTopTracks(t *testing.T) {
	var gotAuth, gotMarket string
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/artists/artist123/top-tracks" {
			t.Errorf("Unexpected path: %s", r.URL.Path)
		}
		gotAuth = r.Header.Get("Authorization")
		gotMarket = r.URL.Query().Get("market")
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(topTracksResponse{Tracks: []Track{
			{ID: "t1", Name: "GENTO", Artists: []Artist{{ID: "artist123", Name: "SB19"}}},
			{ID: "t2", Name: "MAPA", Artists: []Artist{{ID: "artist123", Name: "SB19"}}},
		}})
	})

	client, _ := newTestClient(t, handler)

	tracks, err := client.ArtistTopTracks(context.Background(), "artist123")
	if err != nil {
		t.Fatalf("ArtistTopTracks failed: %v", err)
	}
	if gotAuth != "Bearer test-token" {
		t.Errorf("Expected bearer auth header, got %q", gotAuth)
	}
	if gotMarket != "PH" {
		t.Errorf("Expected market PH, got %q", gotMarket)
	}
	if len(tracks) != 2 {
		t.Fatalf("Expected 2 tracks, got %d", len(tracks))
	}
	if tracks[0].ID != "t1" || tracks[0].Name != "GENTO" {
		t.Errorf("Unexpected first track: %+v", tracks[0])
	}
}

func TestArtistAlbumsPagination(t *testing.T) {
	var server *httptest.Server
	var calls int32
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		n := atomic.AddInt32(&calls, 1)
		w.Header().Set("Content-Type", "application/json")
		switch n {
		case 1:
			_ = json.NewEncoder(w).Encode(pagedAlbums{
				Items: []AlbumRef{{ID: "a1", Name: "Get In The Zone"}},
				Next:  server.URL + "/artists/artist123/albums?offset=1",
			})
		default:
			_ = json.NewEncoder(w).Encode(pagedAlbums{
				Items: []AlbumRef{{ID: "a2", Name: "Pagsibol"}},
			})
		}
	})

	client, srv := newTestClient(t, handler)
	server = srv

	albums, err := client.ArtistAlbums(context.Background(), "artist123")
	if err != nil {
		t.Fatalf("ArtistAlbums failed: %v", err)
	}
	if len(albums) != 2 {
		t.Fatalf("Expected 2 albums across pages, got %d", len(albums))
	}
	if albums[0].ID != "a1" || albums[1].ID != "a2" {
		t.Errorf("Unexpected album order: %+v", albums)
	}
	if atomic.LoadInt32(&calls) != 2 {
		t.Errorf("Expected 2 page fetches, got %d", calls)
	}
}

func TestAlbumTracks(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/albums/album1/tracks" {
			t.Errorf("Unexpected path: %s", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(pagedTracks{
			Items: []Track{{ID: "t1", Name: "SLMT", Artists: []Artist{{ID: "artist123", Name: "SB19"}}}},
		})
	})

	client, _ := newTestClient(t, handler)

	tracks, err := client.AlbumTracks(context.Background(), "album1")
	if err != nil {
		t.Fatalf("AlbumTracks failed: %v", err)
	}
	if len(tracks) != 1 || tracks[0].ID != "t1" {
		t.Errorf("Unexpected tracks: %+v", tracks)
	}
	if tracks[0].Album != nil {
		t.Error("Album-track records should carry no album object")
	}
}

func TestGetTrack(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(Track{
			ID:         "t1",
			Name:       "Bazinga",
			DurationMS: 211000,
			Artists:    []Artist{{ID: "artist123", Name: "SB19"}},
			Album:      &Album{ID: "a1", Name: "Pagsibol"},
		})
	})

	client, _ := newTestClient(t, handler)

	track, err := client.GetTrack(context.Background(), "t1")
	if err != nil {
		t.Fatalf("GetTrack failed: %v", err)
	}
	if track.Name != "Bazinga" {
		t.Errorf("Expected name 'Bazinga', got %q", track.Name)
	}
	if track.Album == nil || track.Album.Name != "Pagsibol" {
		t.Errorf("Unexpected album: %+v", track.Album)
	}
}

func TestGetTrackNotFound(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	client, _ := newTestClient(t, handler)

	_, err := client.GetTrack(context.Background(), "missing")
	if !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("Expected domain.ErrNotFound, got %v", err)
	}
}

func TestGetUpstreamError(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		_, _ = w.Write([]byte("upstream exploded"))
	})

	client, _ := newTestClient(t, handler)

	_, err := client.ArtistTopTracks(context.Background(), "artist123")
	var ue *UpstreamError
	if !errors.As(err, &ue) {
		t.Fatalf("Expected UpstreamError, got %T: %v", err, err)
	}
	if ue.Status != http.StatusBadGateway {
		t.Errorf("Expected status 502, got %d", ue.Status)
	}
	if ue.Body != "upstream exploded" {
		t.Errorf("Unexpected body: %q", ue.Body)
	}
}

func TestPrimaryArtist(t *testing.T) {
	track := Track{Artists: []Artist{{ID: "a", Name: "SB19"}, {ID: "b", Name: "Guest"}}}
	primary, ok := track.PrimaryArtist()
	if !ok || primary.ID != "a" {
		t.Errorf("Expected first credited artist, got %+v ok=%v", primary, ok)
	}

	empty := Track{}
	if _, ok := empty.PrimaryArtist(); ok {
		t.Error("Expected no primary artist for empty credit list")
	}
}
