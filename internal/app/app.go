package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/five82/lamplight/client"
	"github.com/five82/lamplight/datain"
	"github.com/five82/lamplight/internal/config"
	"github.com/five82/lamplight/internal/logging"
	"github.com/five82/lamplight/internal/prefs"
	"github.com/five82/lamplight/internal/state"
	"github.com/five82/lamplight/internal/ui"
)

// Options configure the CLI environment.
type Options struct {
	ConfigPath string
	PrefsPath  string // empty uses ~/.config/lamplight/prefs.toml
	// Interactive discards log output unless a log file is configured, so
	// the terminal UI owns the screen.
	Interactive bool
	// Policy overrides how submission responses are read. Nil uses
	// datain.DefaultPolicy.
	Policy *datain.Policy
}

// Env is everything a command needs to talk to the API.
type Env struct {
	Config config.Config
	Prefs  prefs.Prefs
	Logger *zap.Logger
	Client *client.Client

	prefsPath string
}

// Setup loads configuration and preferences, builds the logger and returns a
// ready client. Missing credentials are an error.
func Setup(opts Options) (*Env, error) {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	userPrefs, err := prefs.Load(opts.PrefsPath)
	if err != nil {
		return nil, fmt.Errorf("load prefs: %w", err)
	}

	logger := zap.NewNop()
	if !opts.Interactive || cfg.LogFile != "" {
		logger, err = logging.New(cfg.LogLevel, cfg.LogFile)
		if err != nil {
			return nil, fmt.Errorf("init logging: %w", err)
		}
	}

	clientOpts := []client.Option{
		client.WithBaseURL(cfg.BaseURL),
		client.WithTimeout(cfg.Timeout),
		client.WithLogger(logger),
	}
	if opts.Policy != nil {
		clientOpts = append(clientOpts, client.WithDatainPolicy(*opts.Policy))
	}
	c, err := client.New(client.Credentials{
		Key:     cfg.Key,
		LampID:  cfg.LampID,
		Project: cfg.Project,
	}, clientOpts...)
	if err != nil {
		_ = logger.Sync()
		return nil, fmt.Errorf("init lamplight client: %w", err)
	}

	logger.Debug("environment ready",
		zap.String("base_url", cfg.BaseURL),
		zap.Bool("env_file", cfg.EnvFile != ""),
	)

	prefsPath := opts.PrefsPath
	if prefsPath == "" {
		prefsPath = prefs.DefaultPath()
	}
	return &Env{
		Config:    cfg,
		Prefs:     userPrefs,
		Logger:    logger,
		Client:    c,
		prefsPath: prefsPath,
	}, nil
}

// Close releases idle connections and flushes the logger.
func (e *Env) Close() error {
	if e == nil {
		return nil
	}
	if e.Client != nil {
		e.Client.CloseIdleConnections()
	}
	if e.Logger == nil {
		return nil
	}
	// Syncing stderr fails on some platforms; that is not worth reporting.
	if err := e.Logger.Sync(); err != nil && e.Config.LogFile != "" {
		return err
	}
	return nil
}

// Template returns the user's render template for recordType.
func (e *Env) Template(recordType string) string {
	return e.Prefs.Template(recordType)
}

// Browse runs the record browser for query until the user quits or ctx is
// cancelled. interval is the poll cadence; zero uses the default and a
// negative value fetches only on demand.
func Browse(ctx context.Context, env *Env, query client.FetchQuery, interval time.Duration) error {
	if env == nil || env.Client == nil {
		return errors.New("browse: environment is not set up")
	}
	if _, err := query.Values(); err != nil {
		return err
	}
	if interval == 0 {
		interval = defaultPollInterval
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	store := &state.Store{}
	poller := StartPoller(ctx, store, env.Client, query, interval, env.Logger)

	err := ui.Run(ui.Options{
		Context:   ctx,
		Store:     store,
		Refresh:   poller.Refresh,
		Title:     fmt.Sprintf("lamplight %s/%s", query.Action, query.Method),
		PrefsPath: env.prefsPath,
		Prefs:     env.Prefs,
	})

	cancel()
	<-poller.Done()
	return err
}
