package main

import (
	"github.com/spf13/cobra"

	"github.com/vovakirdan/term2048/internal/engine"
	"github.com/vovakirdan/term2048/internal/platform/tui"
)

var boardCmd = &cobra.Command{
	Use:   "board",
	Short: "Browse the result history",
	Long: `Open the interactive high score table.

Tab switches between scoring rules, up/down scrolls, q quits.`,
	Args: cobra.NoArgs,
	RunE: runBoard,
}

func runBoard(_ *cobra.Command, _ []string) error {
	a, err := setup()
	if err != nil {
		return err
	}
	defer a.Close()

	rt := a.runtimeConfig()
	return tui.RunScoreboard(a.store, engine.Scoring(a.cfg.Game.Scoring), rt.ScreenW, rt.ScreenH)
}
