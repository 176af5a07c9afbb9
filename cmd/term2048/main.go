// term2048 is the 2048 sliding-tile puzzle for the terminal.
//
// Usage:
//
//	term2048                 - Start the main menu
//	term2048 play            - Play a game directly
//	term2048 scores          - Print the result history
//	term2048 board           - Browse the result history interactively
//	term2048 config          - Print the effective configuration
//
// Global flags:
//
//	--seed <value>       - Set RNG seed for reproducible games
//	--config <path>      - Use a custom config YAML
//	--db <path>          - Override the result database path
//	--scoring <rule>     - board_sum or merge
//	--log-file <path>    - Override the log file
//	--log-level <level>  - debug, info, warn or error
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/term2048/internal/engine"
	"github.com/vovakirdan/term2048/internal/platform/tui"
)

var (
	// Global flags
	flagSeed     int64
	flagConfig   string
	flagDBPath   string
	flagScoring  string
	flagLogFile  string
	flagLogLevel string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "term2048",
	Short: "2048 in your terminal",
	Long: `term2048 is the 2048 sliding-tile puzzle for the terminal.

Slide the board with the arrow keys, WASD or hjkl. Equal tiles merge
when they collide. Reach the 2048 tile to win, and keep going until
the board locks up.

Without a subcommand the main menu starts.

Examples:
  term2048
  term2048 play --seed 42
  term2048 play --scoring merge
  term2048 scores --limit 5
  term2048 config`,
	SilenceUsage: true,
	RunE:         runMenu,
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	pf.StringVar(&flagConfig, "config", "", "Path to custom config YAML")
	pf.StringVar(&flagDBPath, "db", "", "Path to result database (default from config)")
	pf.StringVar(&flagScoring, "scoring", "", "Scoring rule: board_sum or merge (default from config)")
	pf.StringVar(&flagLogFile, "log-file", "", "Path to log file (default from config)")
	pf.StringVar(&flagLogLevel, "log-level", "", "Log level: debug, info, warn, error")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(boardCmd)
	rootCmd.AddCommand(configCmd)
}

// runMenu shows the main menu until the user quits.
func runMenu(_ *cobra.Command, _ []string) error {
	a, err := setup()
	if err != nil {
		return err
	}
	defer a.Close()

	rt := a.runtimeConfig()
	scoring := engine.Scoring(a.cfg.Game.Scoring)

	for {
		res, err := tui.RunMenu(rt, scoring)
		if err != nil {
			return err
		}
		rt, scoring = res.Config, res.Scoring

		switch res.Choice {
		case tui.ChoicePlay:
			a.cfg.Game.Scoring = string(scoring)
			if err := a.play(rt); err != nil {
				return err
			}
			// A replay from the menu gets a fresh seed.
			rt.Seed = 0
		case tui.ChoiceScores:
			if err := tui.RunScoreboard(a.store, scoring, rt.ScreenW, rt.ScreenH); err != nil {
				return err
			}
		default:
			return nil
		}
	}
}
