package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"golang.org/x/term"

	"github.com/vovakirdan/term2048/internal/config"
	"github.com/vovakirdan/term2048/internal/core"
	"github.com/vovakirdan/term2048/internal/platform/tui"
	"github.com/vovakirdan/term2048/internal/share"
	"github.com/vovakirdan/term2048/internal/storage"
)

// app bundles what every command needs after flags are parsed.
type app struct {
	cfg    config.Config
	source string
	logger *log.Logger
	store  *storage.Store
	logOut io.Closer
}

// setup loads the config, applies flag overrides, opens the log and the
// result database. A database that cannot be opened is logged and play
// continues without history.
func setup() (*app, error) {
	cfg, source, err := loadConfig()
	if err != nil {
		return nil, err
	}

	logger, logOut, logErr := newLogger(cfg.Log.File, cfg.Log.Level)
	if logger == nil {
		return nil, logErr
	}
	if logErr != nil {
		fmt.Fprintf(os.Stderr, "Warning: logging disabled: %v\n", logErr)
	}
	logger.Debug("config loaded", "source", source)

	a := &app{cfg: cfg, source: source, logger: logger, logOut: logOut}

	store, err := storage.Open(cfg.Storage.DBPath)
	if err != nil {
		logger.Warn("could not open result database", "path", cfg.Storage.DBPath, "error", err)
	} else {
		a.store = store
	}
	return a, nil
}

// loadConfig loads the config and applies the global flag overrides.
func loadConfig() (config.Config, string, error) {
	cfg, source, err := config.Load(flagConfig)
	if err != nil {
		return cfg, source, err
	}

	if flagDBPath != "" {
		cfg.Storage.DBPath = flagDBPath
	}
	if flagScoring != "" {
		cfg.Game.Scoring = flagScoring
	}
	if flagLogFile != "" {
		cfg.Log.File = flagLogFile
	}
	if flagLogLevel != "" {
		cfg.Log.Level = flagLogLevel
	}
	cfg, err = cfg.Resolve()
	return cfg, source, err
}

// Close releases the database and the log file.
func (a *app) Close() {
	var errs []error
	if a.store != nil {
		errs = append(errs, a.store.Close())
	}
	errs = append(errs, a.logOut.Close())
	if err := errors.Join(errs...); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
	}
}

// runtimeConfig returns the terminal size and the --seed flag.
func (a *app) runtimeConfig() core.RuntimeConfig {
	cfg := core.DefaultConfig()
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		cfg.ScreenW, cfg.ScreenH = w, h
	}
	cfg.Seed = flagSeed
	return cfg
}

// sharer builds the configured share targets. Targets whose dependencies
// are missing are skipped with a warning.
func (a *app) sharer() share.Sharer {
	filePath, err := config.ExpandPath(a.cfg.Share.File)
	if err != nil {
		a.logger.Warn("cannot expand share file path", "error", err)
		filePath = ""
	}

	deps := share.Deps{
		Logger:   a.logger,
		Store:    a.store,
		FilePath: filePath,
		Terminal: os.Stdout,
	}

	multi, err := share.Build(a.cfg.Share.Targets, deps)
	if err != nil {
		a.logger.Warn("share targets disabled", "error", err)
	}
	a.logger.Debug("share targets ready", "count", multi.Len())
	return multi
}

// play runs one interactive session.
func (a *app) play(rt core.RuntimeConfig) error {
	return tui.Run(tui.Options{
		Config:  a.cfg,
		Runtime: rt,
		Store:   a.store,
		Sharer:  a.sharer(),
		Logger:  a.logger,
	})
}
