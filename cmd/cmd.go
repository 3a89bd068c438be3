// submodule cmd contains command definitions
package main

import "github.com/urfave/cli/v3"

func configFlag() cli.Flag {
	return &cli.StringFlag{
		Name:    "config",
		Aliases: []string{"c"},
		Usage:   "Path to configuration file",
		Value:   "config.toml",
	}
}

// authCommand handles the Spotify OAuth2 authorization flow
func authCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:   "auth",
		Usage:  "Authenticate with Spotify using OAuth2",
		Flags:  []cli.Flag{configFlag()},
		Action: r.SpotifyAuth,
	}
}

// syncCommand runs the top-tracks playlist sync workflow
func syncCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "sync",
		Aliases: []string{"run"},
		Usage:   "Create or replace the generated top-track playlists",
		Flags: []cli.Flag{
			configFlag(),
			&cli.StringFlag{
				Name:    "time-ranges",
				Aliases: []string{"t"},
				Usage:   "Comma-separated time ranges (short_term, medium_term, long_term)",
			},
			&cli.IntFlag{
				Name:  "limit",
				Usage: "Maximum number of top tracks per playlist",
			},
			&cli.BoolFlag{
				Name:  "private",
				Usage: "Create new playlists as private",
			},
		},
		Action: r.SyncRun,
	}
}

// topCommand prints the user's top tracks for one time range
func topCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "top",
		Usage: "Show your top tracks for a time range",
		Flags: []cli.Flag{
			configFlag(),
			&cli.StringFlag{
				Name:    "time-range",
				Aliases: []string{"t"},
				Usage:   "Time range (short_term, medium_term, long_term)",
				Value:   "medium_term",
			},
			&cli.IntFlag{
				Name:  "limit",
				Usage: "Maximum number of tracks to return",
				Value: 50,
			},
			&cli.BoolFlag{
				Name:  "json",
				Usage: "Output raw JSON",
			},
			&cli.BoolFlag{
				Name:  "pretty",
				Usage: "Pretty-print output",
			},
		},
		Action: r.TopTracks,
	}
}

// playlistsCommand lists the user's playlists
func playlistsCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "playlists",
		Usage: "List your Spotify playlists",
		Flags: []cli.Flag{
			configFlag(),
			&cli.IntFlag{
				Name:  "limit",
				Usage: "Maximum number of playlists to show",
			},
			&cli.BoolFlag{
				Name:  "json",
				Usage: "Output raw JSON",
			},
			&cli.BoolFlag{
				Name:  "pretty",
				Usage: "Pretty-print output",
			},
		},
		Action: r.Playlists,
	}
}

// setupCommand writes a config.toml template
func setupCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:   "setup",
		Usage:  "Create a configuration file from the embedded template",
		Flags:  []cli.Flag{configFlag()},
		Action: r.Setup,
	}
}
