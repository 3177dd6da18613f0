package main

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/artx/internal/models"
	"github.com/desertthunder/artx/internal/repositories"
	"github.com/desertthunder/artx/internal/services"
	"github.com/desertthunder/artx/internal/shared"
	"github.com/desertthunder/artx/internal/tasks"
	"github.com/urfave/cli/v3"
)

const defaultConfigPath = "config.toml"

// Runner holds all dependencies for CLI commands and provides methods for each command action.
type Runner struct {
	config      *shared.Config
	configPath  string
	fixedConfig bool
	service     services.Service
	httpClient  *http.Client
	logger      *log.Logger
	output      io.Writer
	db          *sql.DB
	ownsDB      bool
}

// RunnerOpts contains configuration options for creating a Runner.
//
// A non-nil Config is used as-is and the --config flag is not read.
// A non-nil Service bypasses credential resolution.
// A non-nil DB is used for search history instead of the configured database path.
type RunnerOpts struct {
	Config     *shared.Config
	ConfigPath string
	Service    services.Service
	HTTPClient *http.Client
	Logger     *log.Logger
	Output     io.Writer
	DB         *sql.DB
}

// NewRunner creates a new Runner with the provided configuration
func NewRunner(opts RunnerOpts) *Runner {
	fixed := opts.Config != nil
	if opts.Config == nil {
		opts.Config = shared.DefaultConfig()
	}
	if opts.ConfigPath == "" {
		opts.ConfigPath = defaultConfigPath
	}
	if opts.Logger == nil {
		opts.Logger = shared.NewLogger(nil)
	}
	if opts.Output == nil {
		opts.Output = os.Stdout
	}
	if opts.HTTPClient == nil {
		opts.HTTPClient = http.DefaultClient
	}

	return &Runner{
		config:      opts.Config,
		configPath:  opts.ConfigPath,
		fixedConfig: fixed,
		service:     opts.Service,
		httpClient:  opts.HTTPClient,
		logger:      opts.Logger,
		output:      opts.Output,
		db:          opts.DB,
	}
}

func (r *Runner) app() *cli.Command {
	return &cli.Command{
		Name:    "artx",
		Usage:   "Search the Spotify catalog for artists",
		Version: "0.1.0",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to configuration file",
				Value:   r.configPath,
			},
			&cli.StringFlag{
				Name:  "log-level",
				Usage: "Log level (debug, info, warn, error); overrides log.level in config",
			},
		},
		Before:   r.configure,
		Commands: r.register(),
	}
}

func (r *Runner) register() []*cli.Command {
	commands := []*cli.Command{}
	for _, fn := range [](func(*Runner) *cli.Command){
		searchCommand, authCommand, serveCommand, tuiCommand, historyCommand, setupCommand,
	} {
		commands = append(commands, fn(r))
	}

	return commands
}

// configure loads the config file named by --config and applies the log level.
func (r *Runner) configure(ctx context.Context, cmd *cli.Command) (context.Context, error) {
	if path := cmd.String("config"); path != "" {
		r.configPath = path
	}

	if !r.fixedConfig {
		config, err := shared.LoadConfigOrDefault(r.configPath)
		if err != nil {
			return ctx, err
		}
		r.config = config
	}

	level := r.config.Log.Level
	if cmd.IsSet("log-level") {
		level = cmd.String("log-level")
	}
	ll, err := shared.ParseLogLevel(level)
	if err != nil {
		return ctx, err
	}
	shared.SetLogLevel(r.logger, ll)

	r.logger.Debug("configuration loaded", "path", r.configPath, "history", r.config.History.Enabled)
	return ctx, nil
}

// SetLogger replaces the runner's logger. Components built afterwards use the new logger.
func (r *Runner) SetLogger(logger *log.Logger) {
	if logger == nil {
		return
	}
	logger.SetLevel(r.logger.GetLevel())
	r.logger = logger
}

// Close releases the history database when the runner opened it.
func (r *Runner) Close() {
	if r.db != nil && r.ownsDB {
		if err := r.db.Close(); err != nil {
			r.logger.Warn("failed to close database", "error", err)
		}
		r.db = nil
	}
}

// searchService returns the injected service or builds one from resolved credentials.
func (r *Runner) searchService(propertiesPath string) (services.Service, error) {
	if r.service != nil {
		return r.service, nil
	}

	creds, err := shared.ResolveCredentials(r.config, propertiesPath)
	if err != nil {
		return nil, err
	}

	svc, err := services.NewSpotifyService(creds, r.config.Spotify, r.httpClient)
	if err != nil {
		return nil, fmt.Errorf("failed to create Spotify service: %w", err)
	}

	r.logger.Debug("spotify service ready", "credentials", creds, "token_url", r.config.Spotify.TokenURL)
	r.service = svc
	return svc, nil
}

// history opens (and migrates) the history database on first use.
func (r *Runner) history() (*repositories.SearchRepository, error) {
	if r.db == nil {
		db, err := shared.OpenDatabase(r.config.Database)
		if err != nil {
			return nil, err
		}
		r.db = db
		r.ownsDB = true
	} else if err := shared.RunMigrations(r.db); err != nil {
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return repositories.NewSearchRepository(r.db), nil
}

// recorder returns a history recorder, or nil when history is disabled or unavailable.
func (r *Runner) recorder() tasks.Recorder {
	if !r.config.History.Enabled {
		return nil
	}

	repo, err := r.history()
	if err != nil {
		r.logger.Warn("search history unavailable", "error", err)
		return nil
	}
	return repositories.NewHistoryRecorder(repo)
}

func (r *Runner) explorer(cmd *cli.Command, source models.SearchSource) (*tasks.Explorer, error) {
	svc, err := r.searchService(cmd.String("properties"))
	if err != nil {
		return nil, err
	}
	return tasks.NewExplorer(svc, r.recorder(), source, r.logger), nil
}

// watchProgress logs progress updates until the returned stop function is called.
func (r *Runner) watchProgress(level log.Level) (chan tasks.ProgressUpdate, func()) {
	progress := make(chan tasks.ProgressUpdate, 32)
	done := make(chan struct{})

	go func() {
		defer close(done)
		for update := range progress {
			r.logger.Log(level, update.Message, "phase", update.Phase, "step", update.Step, "total", update.Total)
		}
	}()

	return progress, func() {
		close(progress)
		<-done
	}
}

func (r *Runner) writeJSON(data any, pretty bool) error {
	var output []byte
	var err error

	if pretty {
		output, err = json.MarshalIndent(data, "", "  ")
	} else {
		output, err = json.Marshal(data)
	}

	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}

	if _, err := r.output.Write(output); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}

	if _, err := r.output.Write([]byte("\n")); err != nil {
		return fmt.Errorf("failed to write newline: %w", err)
	}

	return nil
}

func (r *Runner) writePlain(format string, args ...any) error {
	text := fmt.Sprintf(format, args...)
	if _, err := r.output.Write([]byte(text)); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func (r *Runner) writeBytes(data []byte) error {
	if _, err := r.output.Write(data); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	if len(data) > 0 && data[len(data)-1] != '\n' {
		if _, err := r.output.Write([]byte("\n")); err != nil {
			return fmt.Errorf("failed to write newline: %w", err)
		}
	}
	return nil
}
