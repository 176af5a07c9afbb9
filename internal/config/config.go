// Package config provides YAML-based configuration loading for term2048.
package config

import (
	"errors"
	"fmt"
	"slices"

	"github.com/vovakirdan/term2048/internal/engine"
	"github.com/vovakirdan/term2048/internal/share"
)

// Config is the full application configuration.
type Config struct {
	Game    GameConfig    `yaml:"game"`
	Share   ShareConfig   `yaml:"share"`
	Storage StorageConfig `yaml:"storage"`
	Log     LogConfig     `yaml:"log"`
}

// GameConfig holds move-engine parameters.
type GameConfig struct {
	WinTarget            int     `yaml:"win_target"`
	SpawnFourProbability float64 `yaml:"spawn_four_probability"`
	InitialTiles         int     `yaml:"initial_tiles"`
	Scoring              string  `yaml:"scoring"` // "board_sum" or "merge"
}

// ShareConfig controls what happens with the final result on game over.
type ShareConfig struct {
	Template string   `yaml:"template"` // fmt template: score, then URL
	URL      string   `yaml:"url"`
	Targets  []string `yaml:"targets"`
	File     string   `yaml:"file"`
}

// StorageConfig locates the result database.
type StorageConfig struct {
	DBPath string `yaml:"db_path"`
}

// LogConfig controls the file logger.
type LogConfig struct {
	Level string `yaml:"level"`
	File  string `yaml:"file"`
}

var logLevels = []string{"debug", "info", "warn", "error"}

// ErrInvalid is wrapped by every validation error.
var ErrInvalid = errors.New("invalid configuration")

// Validate checks the configuration for values the engine cannot use.
func (c Config) Validate() error {
	var errs []error

	if p := c.Game.SpawnFourProbability; p < 0 || p > 1 {
		errs = append(errs, fmt.Errorf("game.spawn_four_probability %v outside [0,1]", p))
	}
	if t := c.Game.WinTarget; t < 4 || !engine.IsPowerOfTwo(t) {
		errs = append(errs, fmt.Errorf("game.win_target %d is not a power of two >= 4", t))
	}
	if n := c.Game.InitialTiles; n < 0 || n > engine.Size*engine.Size {
		errs = append(errs, fmt.Errorf("game.initial_tiles %d out of range", n))
	}
	if _, err := engine.ParseScoring(c.Game.Scoring); err != nil {
		errs = append(errs, err)
	}
	known := share.Names()
	for _, target := range c.Share.Targets {
		if !slices.Contains(known, target) {
			errs = append(errs, fmt.Errorf("share.targets: unknown target %q", target))
		}
	}
	if c.Log.Level != "" && !slices.Contains(logLevels, c.Log.Level) {
		errs = append(errs, fmt.Errorf("log.level: unknown level %q", c.Log.Level))
	}

	if len(errs) == 0 {
		return nil
	}
	return fmt.Errorf("config: %w: %w", ErrInvalid, errors.Join(errs...))
}

// Resolve validates the configuration and returns it with the scoring rule
// in canonical form, so an empty rule is stored as board_sum.
func (c Config) Resolve() (Config, error) {
	if err := c.Validate(); err != nil {
		return c, err
	}
	scoring, _ := engine.ParseScoring(c.Game.Scoring)
	c.Game.Scoring = string(scoring)
	return c, nil
}

// EngineOptions converts the game section into engine options.
// The config must already be valid.
func (c Config) EngineOptions() []engine.Option {
	scoring, _ := engine.ParseScoring(c.Game.Scoring)
	return []engine.Option{
		engine.WithWinTarget(c.Game.WinTarget),
		engine.WithSpawnFourProbability(c.Game.SpawnFourProbability),
		engine.WithInitialTiles(c.Game.InitialTiles),
		engine.WithScoring(scoring),
	}
}

// ShareMessage formats the share text for a final score.
func (c Config) ShareMessage(score int) string {
	return fmt.Sprintf(c.Share.Template, score, c.Share.URL)
}
