package main

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/term2048/internal/storage"
)

var (
	flagLimit int
	flagClear bool
	flagID    string
)

var scoresCmd = &cobra.Command{
	Use:   "scores",
	Short: "Show the result history",
	Long: `Print the best results for the active scoring rule.

Scores computed with different scoring rules are kept apart.

Examples:
  term2048 scores
  term2048 scores --limit 5
  term2048 scores --scoring merge
  term2048 scores --id 3f1c...
  term2048 scores --clear`,
	Args: cobra.NoArgs,
	RunE: runScores,
}

func init() {
	scoresCmd.Flags().IntVar(&flagLimit, "limit", 10, "Number of results to show")
	scoresCmd.Flags().BoolVar(&flagClear, "clear", false, "Delete all results for the scoring rule")
	scoresCmd.Flags().StringVar(&flagID, "id", "", "Show a single result by ID")
}

func runScores(cmd *cobra.Command, _ []string) error {
	a, err := setup()
	if err != nil {
		return err
	}
	defer a.Close()

	if a.store == nil {
		return errors.New("result database is unavailable, see the log for details")
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	scoring := a.cfg.Game.Scoring

	if flagID != "" {
		return printResult(ctx, cmd.OutOrStdout(), a.store, flagID)
	}

	if flagClear {
		if err := a.store.ClearResults(ctx, scoring); err != nil {
			return err
		}
		a.logger.Info("results cleared", "scoring", scoring)
		fmt.Fprintf(cmd.OutOrStdout(), "Cleared all %s results.\n", scoring)
		return nil
	}

	return printScores(ctx, cmd.OutOrStdout(), a.store, scoring, flagLimit)
}

// printScores writes the top results and a summary line to w.
func printScores(ctx context.Context, w io.Writer, store *storage.Store, scoring string, limit int) error {
	results, err := store.TopResults(ctx, scoring, limit)
	if err != nil {
		return err
	}

	fmt.Fprintf(w, "High Scores - %s\n", scoring)
	fmt.Fprintln(w)

	if len(results) == 0 {
		fmt.Fprintln(w, "No results recorded yet.")
		fmt.Fprintln(w)
		fmt.Fprintln(w, "Run 'term2048 play' to set the first high score!")
		return nil
	}

	total, err := store.Count(ctx, scoring)
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "Showing %d of %d results\n\n", len(results), total)

	fmt.Fprintf(w, "  %-4s  %-8s  %-6s  %-6s  %-3s  %s\n", "Rank", "Score", "Tile", "Moves", "Won", "Date")
	fmt.Fprintf(w, "  %-4s  %-8s  %-6s  %-6s  %-3s  %s\n", "----", "-----", "----", "-----", "---", "----")

	for i, r := range results {
		won := "no"
		if r.Won {
			won = "yes"
		}
		fmt.Fprintf(w, "  %-4d  %-8d  %-6d  %-6d  %-3s  %s\n",
			i+1, r.Score, r.MaxTile, r.Moves, won, r.CreatedAt.Format("2006-01-02 15:04"))
	}

	st, err := store.Stats(ctx, scoring)
	if err != nil {
		return err
	}
	fmt.Fprintln(w)
	fmt.Fprintf(w, "Best: %d  Games: %d  Wins: %d  Average: %.0f  Best tile: %d\n",
		st.HighScore, st.Games, st.Wins, st.AvgScore, st.BestTile)
	return nil
}

// printResult writes the details of one stored result to w.
func printResult(ctx context.Context, w io.Writer, store *storage.Store, id string) error {
	r, err := store.ResultByID(ctx, id)
	if errors.Is(err, storage.ErrNotFound) {
		return fmt.Errorf("no result with id %q", id)
	}
	if err != nil {
		return err
	}

	fmt.Fprintf(w, "Result %s\n\n", r.ID)
	fmt.Fprintf(w, "  Scoring:   %s\n", r.Scoring)
	fmt.Fprintf(w, "  Score:     %d\n", r.Score)
	fmt.Fprintf(w, "  Max tile:  %d\n", r.MaxTile)
	fmt.Fprintf(w, "  Moves:     %d\n", r.Moves)
	fmt.Fprintf(w, "  Won:       %t\n", r.Won)
	fmt.Fprintf(w, "  Played:    %s\n", r.CreatedAt.Format("2006-01-02 15:04"))
	return nil
}
