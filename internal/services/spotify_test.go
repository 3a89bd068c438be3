package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/slapelachie/topsongs/internal/shared"
	"golang.org/x/oauth2"
)

// countingTransport fails every request and counts how many were attempted.
type countingTransport struct {
	requests int
}

func (c *countingTransport) RoundTrip(*http.Request) (*http.Response, error) {
	c.requests++
	return nil, errors.New("no network in this test")
}

func newTestService(t *testing.T, baseURL string) *SpotifyService {
	t.Helper()

	srv, err := NewSpotifyService(map[string]string{
		"client_id":     "test_client_id",
		"client_secret": "test_client_secret",
	})
	if err != nil {
		t.Fatalf("failed to create service: %v", err)
	}

	srv.token = &oauth2.Token{AccessToken: "test_access_token"}
	srv.httpClient = http.DefaultClient
	if baseURL != "" {
		srv.baseURL = baseURL
	}
	return srv
}

func TestSpotifyService(t *testing.T) {
	t.Run("NewSpotifyService", func(t *testing.T) {
		t.Run("With Valid Credentials", func(t *testing.T) {
			srv, err := NewSpotifyService(map[string]string{
				"client_id":     "test_client_id",
				"client_secret": "test_client_secret",
				"redirect_uri":  "http://localhost:9999/callback",
			})
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if srv.Name() != "Spotify" {
				t.Errorf("expected service name 'Spotify', got %s", srv.Name())
			}
			if srv.config.RedirectURL != "http://localhost:9999/callback" {
				t.Errorf("expected redirect URI to be kept, got %s", srv.config.RedirectURL)
			}
		})

		t.Run("Missing Client ID", func(t *testing.T) {
			_, err := NewSpotifyService(map[string]string{"client_secret": "s"})
			if !errors.Is(err, shared.ErrMissingCredentials) {
				t.Errorf("expected missing credentials error, got %v", err)
			}
		})

		t.Run("Missing Client Secret", func(t *testing.T) {
			_, err := NewSpotifyService(map[string]string{"client_id": "c"})
			if !errors.Is(err, shared.ErrMissingCredentials) {
				t.Errorf("expected missing credentials error, got %v", err)
			}
		})

		t.Run("Requested Scopes", func(t *testing.T) {
			srv, err := NewSpotifyService(map[string]string{
				"client_id":     "c",
				"client_secret": "s",
			})
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}

			want := []string{"user-top-read", "playlist-modify-public", "playlist-modify-private"}
			if len(srv.config.Scopes) != len(want) {
				t.Fatalf("expected %d scopes, got %d", len(want), len(srv.config.Scopes))
			}
			for i, scope := range want {
				if srv.config.Scopes[i] != scope {
					t.Errorf("expected scope %q at %d, got %q", scope, i, srv.config.Scopes[i])
				}
			}
		})
	})

	t.Run("GetAuthURL", func(t *testing.T) {
		srv := newTestService(t, "")

		authURL := srv.GetAuthURL("test_state")
		if !strings.Contains(authURL, "accounts.spotify.com") {
			t.Error("auth URL should contain Spotify domain")
		}
		if !strings.Contains(authURL, "test_client_id") {
			t.Error("auth URL should contain client_id")
		}
		if !strings.Contains(authURL, "test_state") {
			t.Error("auth URL should contain state")
		}
	})

	t.Run("Authenticate", func(t *testing.T) {
		srv, err := NewSpotifyService(map[string]string{
			"client_id":     "test_client_id",
			"client_secret": "test_client_secret",
		})
		if err != nil {
			t.Fatalf("failed to create service: %v", err)
		}

		t.Run("With Access Token", func(t *testing.T) {
			err := srv.Authenticate(context.Background(), map[string]string{"access_token": "tok"})
			if err != nil {
				t.Errorf("expected no error with access token, got %v", err)
			}
			if srv.token == nil || srv.token.AccessToken != "tok" {
				t.Error("expected token to be set")
			}
		})

		t.Run("Missing Credentials", func(t *testing.T) {
			err := srv.Authenticate(context.Background(), map[string]string{})
			if !errors.Is(err, shared.ErrMissingCredentials) {
				t.Errorf("expected missing credentials error, got %v", err)
			}
		})

		t.Run("OAuthenticate Rejects Empty Token", func(t *testing.T) {
			if err := srv.OAuthenticate(context.Background(), nil); !errors.Is(err, shared.ErrAuthFailed) {
				t.Errorf("expected auth failed error, got %v", err)
			}
		})
	})
}

func TestSpotifyAPI(t *testing.T) {
	ctx := context.Background()

	t.Run("TopTracks", func(t *testing.T) {
		t.Run("Invalid Time Range Makes No Request", func(t *testing.T) {
			srv := newTestService(t, "")
			transport := &countingTransport{}
			srv.httpClient = &http.Client{Transport: transport}

			_, err := srv.TopTracks(ctx, TimeRange("yearly"), 50)
			if !errors.Is(err, shared.ErrInvalidArgument) {
				t.Fatalf("expected invalid argument error, got %v", err)
			}
			if transport.requests != 0 {
				t.Errorf("expected zero network calls, got %d", transport.requests)
			}
		})

		t.Run("Maps Response In Order", func(t *testing.T) {
			ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if r.URL.Path != "/me/top/tracks" {
					t.Errorf("unexpected path %s", r.URL.Path)
				}
				if got := r.URL.Query().Get("time_range"); got != "short_term" {
					t.Errorf("expected time_range short_term, got %s", got)
				}
				if got := r.URL.Query().Get("limit"); got != "3" {
					t.Errorf("expected limit 3, got %s", got)
				}
				if auth := r.Header.Get("Authorization"); auth != "Bearer test_access_token" {
					t.Errorf("unexpected authorization header %s", auth)
				}

				fmt.Fprint(w, `{
					"items": [
						{"id": "a", "name": "First", "artists": [{"name": "Artist A"}], "album": {"name": "Album A"}},
						{"id": "b", "name": "Second", "artists": [{"name": "Artist B"}]},
						{"id": "", "name": "No ID", "artists": []}
					],
					"total": 3, "limit": 3, "offset": 0, "next": null
				}`)
			}))
			defer ts.Close()

			srv := newTestService(t, ts.URL)

			tracks, err := srv.TopTracks(ctx, ShortTerm, 3)
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}

			if len(tracks) != 3 {
				t.Fatalf("expected 3 tracks, got %d", len(tracks))
			}
			if tracks[0].ID != "a" || tracks[1].ID != "b" || tracks[2].ID != "" {
				t.Errorf("unexpected track order: %v", tracks)
			}
			if tracks[0].Artist != "Artist A" || tracks[0].Title != "First" || tracks[0].Album != "Album A" {
				t.Errorf("unexpected track mapping: %+v", tracks[0])
			}
		})
	})

	t.Run("GetPlaylists", func(t *testing.T) {
		t.Run("Paginates Until No Next", func(t *testing.T) {
			var requests int
			ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				requests++
				if r.URL.Path != "/me/playlists" {
					t.Errorf("unexpected path %s", r.URL.Path)
				}

				offset := r.URL.Query().Get("offset")
				w.Header().Set("Content-Type", "application/json")

				switch offset {
				case "0":
					items := make([]map[string]any, 50)
					for i := range items {
						items[i] = map[string]any{"id": fmt.Sprintf("p%d", i), "name": fmt.Sprintf("Playlist %d", i)}
					}
					json.NewEncoder(w).Encode(map[string]any{
						"items": items, "total": 63, "limit": 50, "offset": 0,
						"next": "https://api.spotify.com/v1/me/playlists?offset=50&limit=50",
					})
				case "50":
					items := make([]map[string]any, 13)
					for i := range items {
						items[i] = map[string]any{"id": fmt.Sprintf("p%d", 50+i), "name": fmt.Sprintf("Playlist %d", 50+i)}
					}
					json.NewEncoder(w).Encode(map[string]any{
						"items": items, "total": 63, "limit": 50, "offset": 50, "next": nil,
					})
				default:
					t.Errorf("unexpected offset %s", offset)
				}
			}))
			defer ts.Close()

			srv := newTestService(t, ts.URL)

			playlists, err := srv.GetPlaylists(ctx)
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}

			if requests != 2 {
				t.Errorf("expected 2 page requests, got %d", requests)
			}
			if len(playlists) != 63 {
				t.Fatalf("expected 63 playlists, got %d", len(playlists))
			}
			for i, p := range playlists {
				if want := fmt.Sprintf("p%d", i); p.ID != want {
					t.Fatalf("expected playlist %s at %d, got %s", want, i, p.ID)
				}
			}
		})
	})

	t.Run("CreatePlaylist", func(t *testing.T) {
		t.Run("Posts Name Description And Visibility", func(t *testing.T) {
			ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if r.Method != http.MethodPost {
					t.Errorf("expected POST, got %s", r.Method)
				}
				if r.URL.Path != "/users/test_user/playlists" {
					t.Errorf("unexpected path %s", r.URL.Path)
				}

				var body map[string]any
				if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
					t.Fatalf("failed to decode body: %v", err)
				}
				if body["name"] != "Top Songs - Last Month" {
					t.Errorf("unexpected name %v", body["name"])
				}
				if body["description"] != "Generated: 2024-03-01 12:00" {
					t.Errorf("unexpected description %v", body["description"])
				}
				if body["public"] != true {
					t.Errorf("expected public playlist, got %v", body["public"])
				}

				fmt.Fprint(w, `{"id": "new_playlist", "name": "Top Songs - Last Month"}`)
			}))
			defer ts.Close()

			srv := newTestService(t, ts.URL)

			playlist, err := srv.CreatePlaylist(ctx, "test_user", "Top Songs - Last Month", "Generated: 2024-03-01 12:00", true)
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if playlist.ID != "new_playlist" {
				t.Errorf("expected created playlist ID, got %s", playlist.ID)
			}
		})

		t.Run("Missing Playlist ID In Response", func(t *testing.T) {
			ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				fmt.Fprint(w, `{"name": "whatever"}`)
			}))
			defer ts.Close()

			srv := newTestService(t, ts.URL)

			_, err := srv.CreatePlaylist(ctx, "test_user", "Some Playlist", "", true)
			if err == nil {
				t.Fatal("expected error for missing playlist ID")
			}
			if !strings.Contains(err.Error(), "Some Playlist") {
				t.Errorf("error should name the playlist, got %v", err)
			}
		})

		t.Run("Missing User Identity", func(t *testing.T) {
			srv := newTestService(t, "")
			transport := &countingTransport{}
			srv.httpClient = &http.Client{Transport: transport}

			_, err := srv.CreatePlaylist(ctx, "", "Name", "", true)
			if !errors.Is(err, shared.ErrMissingArgument) {
				t.Errorf("expected missing argument error, got %v", err)
			}
			if transport.requests != 0 {
				t.Errorf("expected zero network calls, got %d", transport.requests)
			}
		})
	})

	t.Run("ReplacePlaylistTracks", func(t *testing.T) {
		ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method != http.MethodPut {
				t.Errorf("expected PUT, got %s", r.Method)
			}
			if r.URL.Path != "/playlists/p1/tracks" {
				t.Errorf("unexpected path %s", r.URL.Path)
			}

			var body map[string][]string
			if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
				t.Fatalf("failed to decode body: %v", err)
			}

			want := []string{"spotify:track:a", "spotify:track:b", "spotify:track:c"}
			uris := body["uris"]
			if len(uris) != len(want) {
				t.Fatalf("expected %d uris, got %d", len(want), len(uris))
			}
			for i := range want {
				if uris[i] != want[i] {
					t.Errorf("expected uri %q at %d, got %q", want[i], i, uris[i])
				}
			}

			w.WriteHeader(http.StatusCreated)
			fmt.Fprint(w, `{"snapshot_id": "snap"}`)
		}))
		defer ts.Close()

		srv := newTestService(t, ts.URL)

		if err := srv.ReplacePlaylistTracks(ctx, "p1", []string{"a", "b", "c"}); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
	})

	t.Run("AddPlaylistTracks", func(t *testing.T) {
		ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method != http.MethodPost {
				t.Errorf("expected POST, got %s", r.Method)
			}
			if r.URL.Path != "/playlists/p1/tracks" {
				t.Errorf("unexpected path %s", r.URL.Path)
			}
			w.WriteHeader(http.StatusCreated)
			fmt.Fprint(w, `{"snapshot_id": "snap"}`)
		}))
		defer ts.Close()

		srv := newTestService(t, ts.URL)

		if err := srv.AddPlaylistTracks(ctx, "p1", []string{"a"}); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
	})

	t.Run("UpdatePlaylistDetails", func(t *testing.T) {
		ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method != http.MethodPut {
				t.Errorf("expected PUT, got %s", r.Method)
			}
			if r.URL.Path != "/playlists/p1" {
				t.Errorf("unexpected path %s", r.URL.Path)
			}

			var body map[string]string
			if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
				t.Fatalf("failed to decode body: %v", err)
			}
			if body["description"] != "Generated: 2024-03-01 12:00" {
				t.Errorf("unexpected description %q", body["description"])
			}
		}))
		defer ts.Close()

		srv := newTestService(t, ts.URL)

		if err := srv.UpdatePlaylistDetails(ctx, "p1", "Generated: 2024-03-01 12:00"); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
	})

	t.Run("Error Handling", func(t *testing.T) {
		t.Run("401 Surfaces Token Expired", func(t *testing.T) {
			ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusUnauthorized)
			}))
			defer ts.Close()

			srv := newTestService(t, ts.URL)

			_, err := srv.GetPlaylists(ctx)
			if !errors.Is(err, shared.ErrTokenExpired) {
				t.Errorf("expected token expired error, got %v", err)
			}
		})

		t.Run("Server Error Identifies Operation", func(t *testing.T) {
			ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusInternalServerError)
			}))
			defer ts.Close()

			srv := newTestService(t, ts.URL)

			err := srv.ReplacePlaylistTracks(ctx, "p9", []string{"a"})
			if !errors.Is(err, shared.ErrAPIRequest) {
				t.Fatalf("expected API request error, got %v", err)
			}
			if !strings.Contains(err.Error(), "replace tracks in playlist p9") {
				t.Errorf("error should identify the failing operation, got %v", err)
			}
		})

		t.Run("Unauthenticated Client Makes No Request", func(t *testing.T) {
			srv, err := NewSpotifyService(map[string]string{
				"client_id":     "c",
				"client_secret": "s",
			})
			if err != nil {
				t.Fatalf("failed to create service: %v", err)
			}

			transport := &countingTransport{}
			srv.httpClient = &http.Client{Transport: transport}

			if _, err := srv.GetPlaylists(ctx); !errors.Is(err, shared.ErrNotAuthenticated) {
				t.Errorf("expected not authenticated error, got %v", err)
			}
			if transport.requests != 0 {
				t.Errorf("expected zero network calls, got %d", transport.requests)
			}
		})
	})
}
