// package testing contains shared testing utilities
package testing

import (
	"context"
	"errors"
	"net/http"

	"github.com/slapelachie/topsongs/internal/services"
)

// CreateCall records the arguments of one CreatePlaylist invocation.
type CreateCall struct {
	UserID      string
	Name        string
	Description string
	Public      bool
}

// TrackCall records the arguments of one replace or add invocation.
type TrackCall struct {
	PlaylistID string
	TrackIDs   []string
}

// DetailCall records the arguments of one UpdatePlaylistDetails invocation.
type DetailCall struct {
	PlaylistID  string
	Description string
}

// RecordingService is a configurable test double for [services.Service]
// that records every call in invocation order.
type RecordingService struct {
	Calls []string

	CreateCalls  []CreateCall
	ReplaceCalls []TrackCall
	AddCalls     []TrackCall
	DetailCalls  []DetailCall

	User      *services.User
	Tracks    map[services.TimeRange][]services.Track
	Playlists []services.Playlist

	AuthenticateErr error
	CurrentUserErr  error
	TopTracksErr    error
	PlaylistsErr    error
	CreateErr       error
	ReplaceErr      error
	AddErr          error
	DetailsErr      error

	// CreatedID is assigned to playlists created during the test.
	CreatedID string
}

func (m *RecordingService) record(call string) {
	m.Calls = append(m.Calls, call)
}

// CallCount returns how many times the named method was invoked.
func (m *RecordingService) CallCount(name string) int {
	count := 0
	for _, call := range m.Calls {
		if call == name {
			count++
		}
	}
	return count
}

func (m *RecordingService) Authenticate(ctx context.Context, credentials map[string]string) error {
	m.record("Authenticate")
	return m.AuthenticateErr
}

func (m *RecordingService) CurrentUser(ctx context.Context) (*services.User, error) {
	m.record("CurrentUser")
	if m.CurrentUserErr != nil {
		return nil, m.CurrentUserErr
	}
	if m.User == nil {
		return &services.User{ID: "test_user"}, nil
	}
	return m.User, nil
}

func (m *RecordingService) TopTracks(ctx context.Context, timeRange services.TimeRange, limit int) ([]services.Track, error) {
	if err := timeRange.Validate(); err != nil {
		return nil, err
	}
	m.record("TopTracks")
	if m.TopTracksErr != nil {
		return nil, m.TopTracksErr
	}
	tracks := m.Tracks[timeRange]
	if limit > 0 && limit < len(tracks) {
		tracks = tracks[:limit]
	}
	return tracks, nil
}

func (m *RecordingService) GetPlaylists(ctx context.Context) ([]services.Playlist, error) {
	m.record("GetPlaylists")
	if m.PlaylistsErr != nil {
		return nil, m.PlaylistsErr
	}
	return m.Playlists, nil
}

func (m *RecordingService) CreatePlaylist(ctx context.Context, userID, name, description string, public bool) (*services.Playlist, error) {
	m.record("CreatePlaylist")
	m.CreateCalls = append(m.CreateCalls, CreateCall{UserID: userID, Name: name, Description: description, Public: public})
	if m.CreateErr != nil {
		return nil, m.CreateErr
	}
	id := m.CreatedID
	if id == "" {
		id = "created_playlist"
	}
	return &services.Playlist{ID: id, Name: name, Description: description, Public: public}, nil
}

func (m *RecordingService) ReplacePlaylistTracks(ctx context.Context, playlistID string, trackIDs []string) error {
	m.record("ReplacePlaylistTracks")
	m.ReplaceCalls = append(m.ReplaceCalls, TrackCall{PlaylistID: playlistID, TrackIDs: trackIDs})
	return m.ReplaceErr
}

func (m *RecordingService) AddPlaylistTracks(ctx context.Context, playlistID string, trackIDs []string) error {
	m.record("AddPlaylistTracks")
	m.AddCalls = append(m.AddCalls, TrackCall{PlaylistID: playlistID, TrackIDs: trackIDs})
	return m.AddErr
}

func (m *RecordingService) UpdatePlaylistDetails(ctx context.Context, playlistID, description string) error {
	m.record("UpdatePlaylistDetails")
	m.DetailCalls = append(m.DetailCalls, DetailCall{PlaylistID: playlistID, Description: description})
	return m.DetailsErr
}

func (m *RecordingService) Name() string { return "mock" }

// FWriter always returns an error on Write
type FWriter struct{}

func (f *FWriter) Write(p []byte) (n int, err error) {
	return 0, errors.New("write failed")
}

// MockRoundTripper allows custom HTTP responses for testing and counts the
// requests it serves.
type MockRoundTripper struct {
	Response *http.Response
	Err      error
	Requests int
}

func NewMockRoundTripper(r *http.Response, e error) *MockRoundTripper {
	return &MockRoundTripper{Response: r, Err: e}
}

func (m *MockRoundTripper) RoundTrip(*http.Request) (*http.Response, error) {
	m.Requests++
	return m.Response, m.Err
}
