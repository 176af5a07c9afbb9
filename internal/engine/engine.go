package engine

import (
	"fmt"
	"math/rand"
	"time"
)

// Scoring selects how Engine computes the score after a move.
type Scoring string

const (
	// ScoreBoardSum sets the score to the sum of all tiles after each move.
	ScoreBoardSum Scoring = "board_sum"
	// ScoreMerge accumulates the value of every merged tile.
	ScoreMerge Scoring = "merge"
)

// ParseScoring validates a scoring rule name. The empty string selects
// ScoreBoardSum.
func ParseScoring(s string) (Scoring, error) {
	switch Scoring(s) {
	case "", ScoreBoardSum:
		return ScoreBoardSum, nil
	case ScoreMerge:
		return ScoreMerge, nil
	}
	return "", fmt.Errorf("engine: unknown scoring rule %q", s)
}

// State is the engine state published to renderers.
type State struct {
	Grid     Grid
	Score    int
	Won      bool
	GameOver bool
	Moves    int
	MaxTile  int
}

// Result describes what a single Engine.Move call did.
type Result struct {
	Direction Direction
	// Moved is true when the grid changed and a tile was spawned.
	Moved bool
	// Rejected is true when the game was already over.
	Rejected bool
	// Spawned is the cell that received a new tile, valid when Moved.
	Spawned Cell
	// JustWon is true on the move that first reached the win target.
	JustWon bool
	// JustEnded is true on the move that ended the game.
	JustEnded bool
	State     State
}

// Engine owns the grid of a single game and applies moves to it.
// It is not safe for concurrent use.
type Engine struct {
	rng          Source
	fourProb     float64
	winTarget    int
	scoring      Scoring
	initialTiles int

	grid     Grid
	score    int
	moves    int
	won      bool
	gameOver bool
}

// Option configures an Engine.
type Option func(*Engine)

// WithRand sets the randomness source used for spawning tiles.
func WithRand(rng Source) Option {
	return func(e *Engine) {
		e.rng = rng
	}
}

// WithSeed seeds a math/rand source. Zero seeds from the clock.
func WithSeed(seed int64) Option {
	return func(e *Engine) {
		if seed == 0 {
			seed = time.Now().UnixNano()
		}
		e.rng = rand.New(rand.NewSource(seed))
	}
}

// WithSpawnFourProbability sets the chance of spawning a 4 instead of a 2.
func WithSpawnFourProbability(p float64) Option {
	return func(e *Engine) {
		e.fourProb = p
	}
}

// WithWinTarget sets the tile value that counts as a win.
func WithWinTarget(target int) Option {
	return func(e *Engine) {
		e.winTarget = target
	}
}

// WithScoring selects the scoring rule.
func WithScoring(s Scoring) Option {
	return func(e *Engine) {
		e.scoring = s
	}
}

// WithInitialTiles sets how many tiles NewGame spawns.
func WithInitialTiles(n int) Option {
	return func(e *Engine) {
		e.initialTiles = n
	}
}

// New creates an engine and starts a game on it.
func New(opts ...Option) *Engine {
	e := &Engine{
		fourProb:     DefaultFourProbability,
		winTarget:    WinTile,
		scoring:      ScoreBoardSum,
		initialTiles: 2,
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.rng == nil {
		e.rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	e.NewGame()
	return e
}

// NewGame clears the board and spawns the initial tiles.
func (e *Engine) NewGame() {
	e.grid = Grid{}
	e.score = 0
	e.moves = 0
	e.won = false
	e.gameOver = false

	for range e.initialTiles {
		e.grid, _ = SpawnTile(e.grid, e.rng, e.fourProb)
	}
}

// Load replaces the board with grid and recomputes the derived flags.
// Under ScoreBoardSum the score becomes the board sum, under ScoreMerge it
// restarts at zero.
func (e *Engine) Load(grid Grid) {
	e.grid = grid
	e.score = 0
	if e.scoring != ScoreMerge {
		e.score = grid.Sum()
	}
	e.moves = 0
	e.won = Reached(grid, e.winTarget)
	e.gameOver = IsGameOver(grid)
}

// Move slides the board in dir. A move that changes nothing leaves the
// state untouched and spawns no tile. Once the game is over every move is
// rejected.
func (e *Engine) Move(dir Direction) Result {
	res := Result{Direction: dir}

	if e.gameOver {
		res.Rejected = true
		res.State = e.State()
		return res
	}

	out := Move(e.grid, dir)
	if !out.Moved {
		res.State = e.State()
		return res
	}

	switch e.scoring {
	case ScoreMerge:
		e.score += out.Gained
	default:
		e.score = out.Score
	}

	grid, _ := SpawnTile(out.Grid, e.rng, e.fourProb)
	res.Spawned = spawnedCell(out.Grid, grid)
	e.grid = grid
	e.moves++

	if !e.won && Reached(e.grid, e.winTarget) {
		e.won = true
		res.JustWon = true
	}
	if IsGameOver(e.grid) {
		e.gameOver = true
		res.JustEnded = true
	}

	res.Moved = true
	res.State = e.State()
	return res
}

// spawnedCell finds the single cell that differs between two grids.
func spawnedCell(before, after Grid) Cell {
	for r := range Size {
		for c := range Size {
			if before[r][c] != after[r][c] {
				return Cell{Row: r, Col: c}
			}
		}
	}
	return Cell{Row: -1, Col: -1}
}

// State returns a copy of the current state.
func (e *Engine) State() State {
	return State{
		Grid:     e.grid,
		Score:    e.score,
		Won:      e.won,
		GameOver: e.gameOver,
		Moves:    e.moves,
		MaxTile:  e.grid.MaxTile(),
	}
}

// Grid returns a copy of the current grid.
func (e *Engine) Grid() Grid {
	return e.grid
}

// Score returns the current score.
func (e *Engine) Score() int {
	return e.score
}

// Won reports whether the win target has been reached.
func (e *Engine) Won() bool {
	return e.won
}

// GameOver reports whether no further moves are accepted.
func (e *Engine) GameOver() bool {
	return e.gameOver
}

// WinTarget returns the configured win tile.
func (e *Engine) WinTarget() int {
	return e.winTarget
}
