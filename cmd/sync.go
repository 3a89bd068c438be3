package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/slapelachie/topsongs/internal/services"
	"github.com/slapelachie/topsongs/internal/shared"
	"github.com/slapelachie/topsongs/internal/tasks"
	"github.com/slapelachie/topsongs/internal/ui"
	"github.com/urfave/cli/v3"
)

// ensureAuthenticated authenticates the Spotify service with the tokens
// saved in the configuration.
//
// Authentication failure is fatal: no workflow stage runs without a token.
func (r *Runner) ensureAuthenticated(ctx context.Context) error {
	if r.spotify == nil {
		return fmt.Errorf("%w: Spotify service not initialized, set credentials via 'topsongs setup'", shared.ErrServiceUnavailable)
	}

	token := r.config.Credentials.Spotify.Token()
	if token == nil {
		r.logger.Error("no Spotify token available")
		return fmt.Errorf("%w: run 'topsongs auth' first", shared.ErrNotAuthenticated)
	}

	oauthSrv, ok := r.spotify.(services.OAuthService)
	if !ok {
		return r.spotify.Authenticate(ctx, map[string]string{"access_token": token.AccessToken})
	}

	if err := oauthSrv.OAuthenticate(ctx, token); err != nil {
		r.logger.Error("failed to authenticate with saved token", "error", err)
		return fmt.Errorf("%w: %v", shared.ErrAuthFailed, err)
	}

	return nil
}

// resolveUsername returns the configured Spotify username, prompting
// interactively when the configuration omits it.
func (r *Runner) resolveUsername() (string, error) {
	if username := r.config.Credentials.Spotify.Username; username != "" {
		return username, nil
	}

	r.logger.Info("no username configured, prompting")
	username, err := ui.PromptUsername()
	if err != nil {
		return "", err
	}

	r.config.Credentials.Spotify.Username = username
	return username, nil
}

// SyncRun executes the playlist sync workflow for the requested time ranges.
func (r *Runner) SyncRun(ctx context.Context, cmd *cli.Command) error {
	rangesFlag := cmd.String("time-ranges")
	if rangesFlag == "" {
		rangesFlag = strings.Join(r.config.Sync.TimeRanges, ",")
	}

	// Validated before any network call.
	timeRanges, err := services.ParseTimeRanges(rangesFlag)
	if err != nil {
		return err
	}

	limit := cmd.Int("limit")
	if limit <= 0 {
		limit = r.config.Sync.Limit
	}

	public := r.config.Sync.Public
	if cmd.IsSet("private") {
		public = !cmd.Bool("private")
	}

	if err := r.ensureAuthenticated(ctx); err != nil {
		return err
	}

	username, err := r.resolveUsername()
	if err != nil {
		return err
	}

	engine := tasks.NewSyncEngine(tasks.SyncOpts{
		Spotify:  r.spotify,
		Username: username,
		Public:   public,
		Limit:    limit,
		Logger:   r.logger,
	})

	r.logger.Infof("syncing %d time range(s)", len(timeRanges))

	results, err := engine.Run(ctx, timeRanges)
	if err != nil {
		if reauthed, authErr := r.handleSpotifyAuthError(ctx, err, cmd); reauthed {
			if authErr != nil {
				return authErr
			}
			if results, err = engine.Run(ctx, timeRanges); err != nil {
				return fmt.Errorf("%w: %v", shared.ErrAPIRequest, err)
			}
		} else {
			return err
		}
	}

	for _, result := range results {
		action := "Replaced"
		if result.Created {
			action = "Created"
		}
		r.writePlain("✓ %s %q (%s) with %d tracks\n", action, result.PlaylistName, result.TimeRange, result.TrackCount)
	}

	return nil
}

// TopTracks prints the user's top tracks for one time range.
func (r *Runner) TopTracks(ctx context.Context, cmd *cli.Command) error {
	timeRange := services.TimeRange(cmd.String("time-range"))
	limit := cmd.Int("limit")
	useJSON := cmd.Bool("json")
	pretty := cmd.Bool("pretty")

	if err := timeRange.Validate(); err != nil {
		return err
	}

	if err := r.ensureAuthenticated(ctx); err != nil {
		return err
	}

	r.logger.Infof("fetching top tracks for %v with limit %v", timeRange, limit)

	fetch := func() ([]services.Track, error) { return r.spotify.TopTracks(ctx, timeRange, limit) }

	tracks, err := fetch()
	if err != nil {
		if reauthed, authErr := r.handleSpotifyAuthError(ctx, err, cmd); reauthed {
			if authErr != nil {
				return authErr
			}
			if tracks, err = fetch(); err != nil {
				return fmt.Errorf("%w: %v", shared.ErrAPIRequest, err)
			}
		} else {
			return err
		}
	}

	if useJSON {
		return r.writeJSON(tracks, pretty)
	}

	name, _ := timeRange.PlaylistName()
	r.writePlain("%s (%d tracks):\n\n", name, len(tracks))
	for i, track := range tracks {
		r.writePlain("%d. %s - %s\n", i+1, track.Artist, track.Title)
		if track.Album != "" {
			r.writePlain("   Album: %s\n", track.Album)
		}
	}

	return nil
}

// Playlists lists the user's Spotify playlists.
func (r *Runner) Playlists(ctx context.Context, cmd *cli.Command) error {
	limit := cmd.Int("limit")
	useJSON := cmd.Bool("json")
	pretty := cmd.Bool("pretty")

	if err := r.ensureAuthenticated(ctx); err != nil {
		return err
	}

	r.logger.Info("listing spotify playlists")

	playlists, err := r.spotify.GetPlaylists(ctx)
	if err != nil {
		if reauthed, authErr := r.handleSpotifyAuthError(ctx, err, cmd); reauthed {
			if authErr != nil {
				return authErr
			}
			if playlists, err = r.spotify.GetPlaylists(ctx); err != nil {
				return fmt.Errorf("%w: %v", shared.ErrAPIRequest, err)
			}
		} else {
			return err
		}
	}

	if limit > 0 && limit < len(playlists) {
		playlists = playlists[:limit]
	}

	if useJSON {
		return r.writeJSON(playlists, pretty)
	}

	r.writePlain("Found %d playlists:\n\n", len(playlists))
	for i, p := range playlists {
		r.writePlain("%d. %s\n", i+1, p.Name)
		if p.Description != "" {
			r.writePlain("   Description: %s\n", p.Description)
		}
		r.writePlain("   ID: %s\n", p.ID)
		r.writePlain("   Tracks: %d\n", p.TrackCount)
		if p.Public {
			r.writePlain("   Visibility: Public\n")
		} else {
			r.writePlain("   Visibility: Private\n")
		}
		r.writePlain("\n")
	}

	return nil
}

// Setup creates a configuration file from the embedded template.
func (r *Runner) Setup(ctx context.Context, cmd *cli.Command) error {
	configPath := cmd.String("config")

	if err := shared.CreateConfigFile(configPath); err != nil {
		return err
	}

	r.logger.Info("config file created", "path", configPath)

	r.writePlain("✓ Configuration written to %s\n", configPath)
	r.writePlainln("Next steps:")
	r.writePlain("1. Add your Spotify client_id and client_secret to %s\n", configPath)
	r.writePlain("2. Run 'topsongs auth' to authorize the application\n")
	r.writePlain("3. Run 'topsongs sync' to generate your playlists\n")

	return nil
}
