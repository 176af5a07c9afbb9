package game

import "github.com/vovakirdan/term2048/internal/engine"

// StateType represents the current game state.
type StateType string

const (
	StatePlaying     StateType = "playing"
	StateWon         StateType = "won"
	StateGameOver    StateType = "game_over"
	StatePausedSmall StateType = "paused_small_window"
)

// Snapshot captures the complete game state for determinism testing.
type Snapshot struct {
	Seed    int64
	Moves   int
	Score   int
	Board   engine.Grid
	MaxTile int
	Won     bool
	State   StateType
}

// Snapshot returns the current game snapshot.
func (g *Game) Snapshot() Snapshot {
	st := g.engine.State()

	state := StatePlaying
	switch {
	case g.tooSmall:
		state = StatePausedSmall
	case st.GameOver:
		state = StateGameOver
	case st.Won:
		state = StateWon
	}

	return Snapshot{
		Seed:    g.seed,
		Moves:   st.Moves,
		Score:   st.Score,
		Board:   st.Grid,
		MaxTile: st.MaxTile,
		Won:     st.Won,
		State:   state,
	}
}
