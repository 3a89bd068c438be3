// package services defines interface Service for interacting with the Spotify Web API
package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/slapelachie/topsongs/internal/shared"
	"golang.org/x/oauth2"
)

// TimeRange is the window over which the service computes a user's top tracks.
type TimeRange string

const (
	ShortTerm  TimeRange = "short_term"  // roughly the last month
	MediumTerm TimeRange = "medium_term" // roughly the last six months
	LongTerm   TimeRange = "long_term"   // all time
)

// playlistNames maps each valid time range to its generated playlist name.
var playlistNames = map[TimeRange]string{
	ShortTerm:  "Top Songs - Last Month",
	MediumTerm: "Top Songs - Last 6 Months",
	LongTerm:   "Top Songs - All Time",
}

// ValidTimeRanges returns the accepted time range values in a stable order.
func ValidTimeRanges() []TimeRange {
	return []TimeRange{ShortTerm, MediumTerm, LongTerm}
}

// DefaultTimeRanges returns the ranges synced when none are requested.
func DefaultTimeRanges() []TimeRange {
	return []TimeRange{MediumTerm, ShortTerm}
}

// Validate checks that the time range is one of the three accepted values.
func (t TimeRange) Validate() error {
	if _, ok := playlistNames[t]; !ok {
		return fmt.Errorf("%w: invalid time range %q, choose from %v", shared.ErrInvalidArgument, string(t), ValidTimeRanges())
	}
	return nil
}

// PlaylistName resolves the generated playlist name for the time range.
func (t TimeRange) PlaylistName() (string, error) {
	name, ok := playlistNames[t]
	if !ok {
		return "", fmt.Errorf("%w: invalid time range %q, choose from %v", shared.ErrInvalidArgument, string(t), ValidTimeRanges())
	}
	return name, nil
}

// ParseTimeRanges parses a comma-separated list of time range keywords.
//
// An empty input yields [DefaultTimeRanges]. Every entry must be valid.
func ParseTimeRanges(s string) ([]TimeRange, error) {
	if strings.TrimSpace(s) == "" {
		return DefaultTimeRanges(), nil
	}

	var ranges []TimeRange
	for _, part := range strings.Split(s, ",") {
		tr := TimeRange(strings.TrimSpace(part))
		if err := tr.Validate(); err != nil {
			return nil, err
		}
		ranges = append(ranges, tr)
	}

	return ranges, nil
}

// Track represents a music track returned by the service.
type Track struct {
	ID     string
	Title  string
	Artist string
	Album  string
}

// Playlist represents a playlist owned by the user.
type Playlist struct {
	ID          string
	Name        string
	Description string
	TrackCount  int
	Public      bool
}

// User represents the authenticated account.
type User struct {
	ID          string
	DisplayName string
}

// Service defines the operations the playlist sync workflow needs from a
// music service provider.
type Service interface {
	// Authenticate performs token authentication with the service.
	// Returns an error if authentication fails.
	Authenticate(ctx context.Context, credentials map[string]string) error

	// CurrentUser retrieves the authenticated user's profile.
	CurrentUser(ctx context.Context) (*User, error)

	// TopTracks retrieves the user's most played tracks for a time range,
	// in the service's own ranking order.
	TopTracks(ctx context.Context, timeRange TimeRange, limit int) ([]Track, error)

	// GetPlaylists retrieves all playlists for the authenticated user.
	GetPlaylists(ctx context.Context) ([]Playlist, error)

	// CreatePlaylist creates a playlist owned by userID with the given
	// name and description.
	CreatePlaylist(ctx context.Context, userID, name, description string, public bool) (*Playlist, error)

	// ReplacePlaylistTracks overwrites a playlist's full track list.
	ReplacePlaylistTracks(ctx context.Context, playlistID string, trackIDs []string) error

	// AddPlaylistTracks appends tracks to a playlist.
	AddPlaylistTracks(ctx context.Context, playlistID string, trackIDs []string) error

	// UpdatePlaylistDetails updates a playlist's description.
	UpdatePlaylistDetails(ctx context.Context, playlistID, description string) error

	// Name returns the name of the service (e.g., "Spotify")
	Name() string
}

// OAuthService extends [Service] for providers using the OAuth2
// authorization code flow.
type OAuthService interface {
	Service

	// GetAuthURL returns the consent URL to open in the user's browser.
	GetAuthURL(state string) string

	// GetOAuthConfig exposes the underlying [oauth2.Config] for the
	// callback handler.
	GetOAuthConfig() *oauth2.Config

	// OAuthenticate authenticates with a previously obtained token.
	OAuthenticate(ctx context.Context, token *oauth2.Token) error
}
