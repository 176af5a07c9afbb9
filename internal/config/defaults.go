package config

import (
	_ "embed"

	"github.com/vovakirdan/term2048/internal/engine"
	"github.com/vovakirdan/term2048/internal/share"
)

//go:embed defaults/term2048.yaml
var defaultYAML []byte

// DefaultYAML returns the embedded default configuration file.
func DefaultYAML() []byte {
	return defaultYAML
}

// Default returns the hardcoded default configuration.
func Default() Config {
	return Config{
		Game: GameConfig{
			WinTarget:            engine.WinTile,
			SpawnFourProbability: engine.DefaultFourProbability,
			InitialTiles:         2,
			Scoring:              string(engine.ScoreBoardSum),
		},
		Share: ShareConfig{
			Template: "I scored %d in 2048! %s",
			URL:      "https://github.com/vovakirdan/term2048",
			Targets:  []string{share.TargetLog, share.TargetScoreboard},
			File:     "~/.term2048/shares.txt",
		},
		Storage: StorageConfig{
			DBPath: "~/.term2048/scores.db",
		},
		Log: LogConfig{
			Level: "info",
			File:  "~/.term2048/term2048.log",
		},
	}
}
