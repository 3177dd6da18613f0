// submodule cmd contains command definitions
package main

import (
	"strings"

	"github.com/desertthunder/artx/internal/formatter"
	"github.com/urfave/cli/v3"
)

func propertiesFlag() cli.Flag {
	return &cli.StringFlag{
		Name:    "properties",
		Aliases: []string{"p"},
		Usage:   "Path to a credentials properties file (client_id, client_secret)",
	}
}

// searchCommand handles one-shot and batch artist searches
func searchCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:      "search",
		Aliases:   []string{"s"},
		Usage:     "Search for artists by name",
		ArgsUsage: "<artist name>",
		Flags: []cli.Flag{
			propertiesFlag(),
			&cli.StringFlag{
				Name:    "format",
				Aliases: []string{"f"},
				Usage:   "Output format (" + strings.Join(formatter.Formats, ", ") + ")",
				Value:   formatter.FormatText,
			},
			&cli.StringFlag{
				Name:    "output",
				Aliases: []string{"o"},
				Usage:   "Write results to a file instead of stdout",
			},
			&cli.StringFlag{
				Name:  "file",
				Usage: "Read one query per line from a file and search them concurrently",
			},
			&cli.BoolFlag{
				Name:  "closest",
				Usage: "Show only the artist whose name best matches the query",
			},
			&cli.IntFlag{
				Name:  "workers",
				Usage: "Concurrent searches for --file",
				Value: 4,
			},
		},
		Action: r.Search,
	}
}

// authCommand handles token operations
func authCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "auth",
		Usage: "Manage client-credentials authentication",
		Commands: []*cli.Command{
			{
				Name:  "token",
				Usage: "Request an access token and print it",
				Flags: []cli.Flag{
					propertiesFlag(),
					&cli.BoolFlag{
						Name:  "show",
						Usage: "Print the full access token instead of a masked one",
					},
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Output raw JSON",
					},
				},
				Action: r.AuthToken,
			},
		},
	}
}

// serveCommand runs the JSON search endpoint
func serveCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "Serve artist search over HTTP",
		Flags: []cli.Flag{
			propertiesFlag(),
			&cli.StringFlag{
				Name:  "addr",
				Usage: "Listen address (default from server.host and server.port)",
			},
		},
		Action: r.Serve,
	}
}

// tuiCommand returns the top-level TUI command for interactive search.
func tuiCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "tui",
		Aliases: []string{"interactive", "ui"},
		Usage:   "Launch interactive TUI for artist search",
		Flags: []cli.Flag{
			propertiesFlag(),
			&cli.StringFlag{
				Name:  "log-file",
				Usage: "Where TUI logs are written",
				Value: "./tmp/artx-tui.log",
			},
		},
		Action: r.TUI,
	}
}

// historyCommand handles the recorded search history
func historyCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "history",
		Usage: "Inspect recorded searches",
		Commands: []*cli.Command{
			{
				Name:    "list",
				Aliases: []string{"ls"},
				Usage:   "List recent searches, newest first",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "filter",
						Usage: "Fuzzy-match recorded queries",
					},
					&cli.IntFlag{
						Name:  "limit",
						Usage: "Maximum number of searches to show (0 for all)",
						Value: 20,
					},
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Output raw JSON",
					},
				},
				Action: r.HistoryList,
			},
			{
				Name:   "clear",
				Usage:  "Delete all recorded searches",
				Action: r.HistoryClear,
			},
		},
	}
}

// setupCommand handles setup operations for configuration and the database.
func setupCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "setup",
		Usage: "Setup and configuration commands",
		Commands: []*cli.Command{
			{
				Name:   "config",
				Usage:  "Write an example config file to the --config path",
				Action: r.SetupConfig,
			},
			{
				Name:   "database",
				Usage:  "Initialize database and run migrations",
				Action: r.SetupDatabase,
			},
		},
	}
}
