// Package game adapts the move engine to the terminal shell: it turns
// actions into moves and draws the board into a core.Screen.
package game

import (
	"github.com/vovakirdan/term2048/internal/core"
	"github.com/vovakirdan/term2048/internal/engine"
)

// ID identifies the game in logs and the result history.
const ID = "2048"

// Game implements the 2048 puzzle on top of engine.Engine.
type Game struct {
	engine *engine.Engine
	opts   []engine.Option
	seed   int64

	last engine.Result
	best int

	// Screen dimensions
	screenW  int
	screenH  int
	tooSmall bool
}

// New creates a game. The options are applied to every engine the game
// creates on Reset.
func New(opts ...engine.Option) *Game {
	return &Game{opts: opts}
}

// Reset starts a new game with the given runtime config.
func (g *Game) Reset(cfg core.RuntimeConfig) {
	g.seed = cfg.Seed
	opts := append([]engine.Option{engine.WithSeed(cfg.Seed)}, g.opts...)
	g.engine = engine.New(opts...)
	g.last = engine.Result{State: g.engine.State()}
	g.Resize(cfg.ScreenW, cfg.ScreenH)
}

// Restart begins a new game on the existing engine, keeping its RNG stream.
func (g *Game) Restart() {
	g.engine.NewGame()
	g.last = engine.Result{State: g.engine.State()}
}

// Resize updates the screen dimensions without touching the board.
func (g *Game) Resize(w, h int) {
	g.screenW = w
	g.screenH = h
	g.checkScreenSize()
}

// checkScreenSize checks if the screen is large enough.
func (g *Game) checkScreenSize() {
	g.tooSmall = g.screenW < minScreenW || g.screenH < minScreenH
}

// Seed returns the seed of the current engine (0 means clock-seeded).
func (g *Game) Seed() int64 {
	return g.seed
}

// SetBest sets the best score shown in the HUD.
func (g *Game) SetBest(best int) {
	g.best = best
}

// Best returns the best score known to the game.
func (g *Game) Best() int {
	return g.best
}

// Engine exposes the underlying engine.
func (g *Game) Engine() *engine.Engine {
	return g.engine
}

// DirectionFor maps a move action to an engine direction.
func DirectionFor(a core.Action) (engine.Direction, bool) {
	switch a {
	case core.ActionUp:
		return engine.Up, true
	case core.ActionDown:
		return engine.Down, true
	case core.ActionLeft:
		return engine.Left, true
	case core.ActionRight:
		return engine.Right, true
	}
	return 0, false
}

// Apply handles one action. Moves are ignored while the window is too small.
// Restart only takes effect once the game is over. It returns the engine
// result of the move, or a zero-move result for other actions.
func (g *Game) Apply(a core.Action) engine.Result {
	if a == core.ActionRestart {
		if g.engine.GameOver() {
			g.Restart()
		}
		return engine.Result{State: g.engine.State()}
	}

	dir, ok := DirectionFor(a)
	if !ok || g.tooSmall {
		return engine.Result{State: g.engine.State()}
	}

	res := g.engine.Move(dir)
	if res.Moved {
		g.last = res
	}
	g.best = max(g.best, res.State.Score)
	return res
}

// State returns the state published to the platform.
func (g *Game) State() core.GameState {
	st := g.engine.State()
	return core.GameState{
		Score:    st.Score,
		MaxTile:  st.MaxTile,
		Moves:    st.Moves,
		Won:      st.Won,
		GameOver: st.GameOver,
	}
}
