package main

import (
	"github.com/spf13/cobra"
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play a game",
	Long: `Start a game of 2048 directly, skipping the menu.

Controls:
  Arrows/WASD/hjkl - Slide tiles
  R                - New game (after game over)
  ?                - Toggle help
  Ctrl+S           - Save a screenshot
  Q/Ctrl+C         - Quit

When the board locks up the result is handed to the configured share
targets (log, file, clipboard, scoreboard).

Examples:
  term2048 play
  term2048 play --seed 42
  term2048 play --scoring merge
  term2048 play --config ./my-2048.yaml`,
	Args: cobra.NoArgs,
	RunE: runPlay,
}

func runPlay(_ *cobra.Command, _ []string) error {
	a, err := setup()
	if err != nil {
		return err
	}
	defer a.Close()

	return a.play(a.runtimeConfig())
}
