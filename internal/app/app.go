package app

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/bsj5/profilecard/internal/config"
	"github.com/bsj5/profilecard/internal/lanyard"
	"github.com/bsj5/profilecard/internal/prefs"
	"github.com/bsj5/profilecard/internal/state"
	"github.com/bsj5/profilecard/internal/ui"
)

// Options configure the profilecard application.
type Options struct {
	ConfigPath string
	PrefsPath  string        // empty uses default ~/.config/profilecard/prefs.toml
	UserID     string        // overrides user_id from the config file
	PollEvery  time.Duration // zero uses the config value
	LogFile    string        // overrides log_file from the config file
	Debug      bool
	Version    string
}

// Run boots the profilecard TUI until the context is cancelled or the user
// quits.
func Run(ctx context.Context, opts Options) error {
	cfg, err := loadConfig(opts)
	if err != nil {
		return err
	}

	logFile, err := OpenLogFile(cfg.LogFile)
	if err != nil {
		return err
	}
	defer func() { _ = logFile.Close() }()
	logger := NewLogger(logFile, opts.Debug)

	userPrefs, _ := prefs.Load(opts.PrefsPath)

	client, err := newClient(cfg, opts.Version)
	if err != nil {
		return fmt.Errorf("init lanyard client: %w", err)
	}

	store := &state.Store{}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	var program *tea.Program
	poller := NewPoller(client, cfg.UserID, store, cfg.PollInterval, logger, func(doc lanyard.Document) {
		program.Send(ui.PresenceMsg{Document: doc})
	})

	model := ui.New(ui.Options{
		Store:        store,
		Profile:      cfg.Profile,
		PollInterval: cfg.PollInterval,
		ThemeName:    userPrefs.Theme,
		ShowLinks:    userPrefs.ShowLinks,
		PrefsPath:    opts.PrefsPath,
		LogPath:      cfg.LogFile,
		Logger:       logger,
		Refresh:      poller.Refresh,
	})
	program = ui.NewProgram(ctx, model)

	logger.Info("starting",
		"version", opts.Version,
		"user", cfg.UserID,
		"api", cfg.APIBase,
		"poll", cfg.PollInterval,
	)

	go poller.Run(ctx)
	go watchProfile(ctx, cfg.Path, logger, program.Send)

	_, err = program.Run()
	cancel()
	if err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return fmt.Errorf("run ui: %w", err)
	}
	logger.Info("stopped")
	return nil
}

// loadConfig reads the config file and applies command line overrides.
func loadConfig(opts Options) (config.Config, error) {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return config.Config{}, fmt.Errorf("load config: %w", err)
	}
	if id := strings.TrimSpace(opts.UserID); id != "" {
		cfg.UserID = id
	}
	if opts.PollEvery > 0 {
		cfg.PollInterval = config.ClampPollInterval(opts.PollEvery)
	}
	if path := strings.TrimSpace(opts.LogFile); path != "" {
		cfg.LogFile = path
	}
	if strings.TrimSpace(cfg.UserID) == "" {
		return config.Config{}, lanyard.ErrNoUser
	}
	return cfg, nil
}

func newClient(cfg config.Config, version string) (*lanyard.Client, error) {
	ua := "profilecard"
	if version != "" {
		ua += "/" + version
	}
	return lanyard.NewClient(cfg.APIBase, lanyard.WithUserAgent(ua))
}

// watchProfile forwards profile edits to the UI until ctx is cancelled.
func watchProfile(ctx context.Context, path string, logger *log.Logger, send func(tea.Msg)) {
	err := config.Watch(ctx, path, func(cfg config.Config, err error) {
		if err != nil {
			logger.Warn("reload config failed", "path", path, "err", err)
			return
		}
		send(ui.ProfileMsg{Profile: cfg.Profile})
	})
	if err != nil && ctx.Err() == nil {
		logger.Warn("config watcher stopped", "path", path, "err", err)
	}
}
