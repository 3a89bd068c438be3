// package tasks implements the top-tracks playlist sync workflow.
package tasks

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/slapelachie/topsongs/internal/services"
	"github.com/slapelachie/topsongs/internal/shared"
)

// SyncEngine orchestrates the per-time-range workflow: fetch top tracks,
// resolve the playlist name, and create or replace the playlist.
type SyncEngine struct {
	spotify  services.Service
	username string
	public   bool
	limit    int
	logger   *log.Logger
	now      func() time.Time
}

// SyncOpts contains configuration options for creating a SyncEngine.
type SyncOpts struct {
	Spotify  services.Service
	Username string
	Public   bool
	Limit    int
	Logger   *log.Logger
	Now      func() time.Time
}

// NewSyncEngine creates a SyncEngine with the provided configuration.
func NewSyncEngine(opts SyncOpts) *SyncEngine {
	if opts.Limit <= 0 {
		opts.Limit = 50
	}
	if opts.Logger == nil {
		opts.Logger = shared.NewLogger(nil)
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}

	return &SyncEngine{
		spotify:  opts.Spotify,
		username: opts.Username,
		public:   opts.Public,
		limit:    opts.Limit,
		logger:   opts.Logger,
		now:      opts.Now,
	}
}

// SyncResult describes the outcome of syncing one time range.
type SyncResult struct {
	TimeRange    services.TimeRange
	PlaylistID   string
	PlaylistName string
	Created      bool
	TrackCount   int
}

// TrackIDs extracts track identifiers, dropping entries without one and
// preserving the relative order of the remainder.
func TrackIDs(tracks []services.Track) []string {
	ids := make([]string, 0, len(tracks))
	for _, track := range tracks {
		if track.ID == "" {
			continue
		}
		ids = append(ids, track.ID)
	}
	return ids
}

// FindPlaylistByName returns the ID of the first playlist whose name equals
// name exactly. Absence is a normal outcome signaling the playlist must be
// created.
func FindPlaylistByName(playlists []services.Playlist, name string) (string, bool) {
	for _, playlist := range playlists {
		if playlist.Name == name {
			return playlist.ID, true
		}
	}
	return "", false
}

// Description returns the generation timestamp stamped into each synced
// playlist's description.
func (e *SyncEngine) Description() string {
	return "Generated: " + e.now().Format("2006-01-02 15:04")
}

// SyncPlaylist creates or replaces the named playlist with trackIDs.
//
// When a same-named playlist exists, its track list is replaced and its
// description updated. Otherwise a new playlist is created with the
// description set at creation time and the tracks appended.
func (e *SyncEngine) SyncPlaylist(ctx context.Context, playlists []services.Playlist, name string, trackIDs []string) (*SyncResult, error) {
	description := e.Description()

	if id, ok := FindPlaylistByName(playlists, name); ok {
		e.logger.Info("replacing playlist tracks", "playlist", name, "id", id, "tracks", len(trackIDs))

		if err := e.spotify.ReplacePlaylistTracks(ctx, id, trackIDs); err != nil {
			return nil, fmt.Errorf("failed to replace tracks of playlist %q: %w", name, err)
		}
		if err := e.spotify.UpdatePlaylistDetails(ctx, id, description); err != nil {
			return nil, fmt.Errorf("failed to update description of playlist %q: %w", name, err)
		}

		return &SyncResult{
			PlaylistID:   id,
			PlaylistName: name,
			TrackCount:   len(trackIDs),
		}, nil
	}

	e.logger.Info("creating playlist", "playlist", name, "tracks", len(trackIDs))

	created, err := e.spotify.CreatePlaylist(ctx, e.username, name, description, e.public)
	if err != nil {
		return nil, fmt.Errorf("failed to create playlist %q: %w", name, err)
	}

	if len(trackIDs) > 0 {
		if err := e.spotify.AddPlaylistTracks(ctx, created.ID, trackIDs); err != nil {
			return nil, fmt.Errorf("failed to add tracks to playlist %q: %w", name, err)
		}
	}

	return &SyncResult{
		PlaylistID:   created.ID,
		PlaylistName: name,
		Created:      true,
		TrackCount:   len(trackIDs),
	}, nil
}

// Run processes the requested time ranges in order, halting on the first
// failure. An empty request falls back to [services.DefaultTimeRanges].
//
// The playlist inventory is fetched once and shared by all time ranges.
func (e *SyncEngine) Run(ctx context.Context, timeRanges []services.TimeRange) ([]SyncResult, error) {
	if len(timeRanges) == 0 {
		timeRanges = services.DefaultTimeRanges()
	}

	for _, tr := range timeRanges {
		if err := tr.Validate(); err != nil {
			return nil, err
		}
	}

	if e.username == "" {
		user, err := e.spotify.CurrentUser(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve user identity: %w", err)
		}
		e.username = user.ID
	}

	playlists, err := e.spotify.GetPlaylists(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list playlists: %w", err)
	}

	var results []SyncResult
	for _, tr := range timeRanges {
		tracks, err := e.spotify.TopTracks(ctx, tr, e.limit)
		if err != nil {
			return nil, err
		}

		name, err := tr.PlaylistName()
		if err != nil {
			return nil, err
		}

		result, err := e.SyncPlaylist(ctx, playlists, name, TrackIDs(tracks))
		if err != nil {
			return nil, err
		}
		result.TimeRange = tr

		if result.Created {
			// Keep the inventory current so a later range resolving to
			// the same name replaces instead of creating a duplicate.
			playlists = append(playlists, services.Playlist{
				ID:     result.PlaylistID,
				Name:   result.PlaylistName,
				Public: e.public,
			})
		}

		results = append(results, *result)
	}

	return results, nil
}
