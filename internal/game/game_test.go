package game

import (
	"strings"
	"testing"

	"github.com/vovakirdan/term2048/internal/core"
	"github.com/vovakirdan/term2048/internal/engine"
)

func newTestGame(t *testing.T, seed int64) *Game {
	t.Helper()
	g := New()
	g.Reset(core.RuntimeConfig{ScreenW: 80, ScreenH: 24, Seed: seed})
	return g
}

var gameOverGrid = engine.Grid{
	{2, 4, 2, 4},
	{4, 2, 4, 2},
	{2, 4, 2, 4},
	{4, 2, 4, 2},
}

func TestGameDeterminism(t *testing.T) {
	actions := []core.Action{
		core.ActionLeft, core.ActionUp, core.ActionRight, core.ActionDown,
		core.ActionLeft, core.ActionLeft, core.ActionUp, core.ActionRight,
	}

	a := newTestGame(t, 12345)
	b := newTestGame(t, 12345)

	for i, act := range actions {
		a.Apply(act)
		b.Apply(act)
		if a.Snapshot() != b.Snapshot() {
			t.Fatalf("snapshots diverged at action %d (%s)", i, act)
		}
	}
}

func TestGameResetStartsPlaying(t *testing.T) {
	g := newTestGame(t, 1)

	snap := g.Snapshot()
	if snap.State != StatePlaying {
		t.Errorf("State = %s, want %s", snap.State, StatePlaying)
	}
	if snap.Board.TileCount() != 2 {
		t.Errorf("board has %d tiles, want 2", snap.Board.TileCount())
	}
	if snap.Seed != 1 {
		t.Errorf("Seed = %d, want 1", snap.Seed)
	}
}

func TestGameIgnoresNonMoveActions(t *testing.T) {
	g := newTestGame(t, 2)
	before := g.Snapshot()

	for _, a := range []core.Action{core.ActionNone, core.ActionHelp, core.ActionQuit, core.ActionRestart} {
		if res := g.Apply(a); res.Moved {
			t.Errorf("Apply(%s) should not move", a)
		}
	}

	if g.Snapshot() != before {
		t.Error("non-move actions changed the board")
	}
}

func TestGameTooSmallBlocksMoves(t *testing.T) {
	g := New()
	g.Reset(core.RuntimeConfig{ScreenW: 20, ScreenH: 10, Seed: 3})

	if g.Snapshot().State != StatePausedSmall {
		t.Fatalf("State = %s, want %s", g.Snapshot().State, StatePausedSmall)
	}

	before := g.Snapshot().Board
	for _, a := range []core.Action{core.ActionLeft, core.ActionRight, core.ActionUp, core.ActionDown} {
		g.Apply(a)
	}
	if g.Snapshot().Board != before {
		t.Error("moves should be ignored while the window is too small")
	}

	g.Resize(80, 24)
	if g.Snapshot().State != StatePlaying {
		t.Error("resizing should resume play without a reset")
	}
	if g.Snapshot().Board != before {
		t.Error("resize should keep the board")
	}
}

func TestGameRestartOnlyWhenOver(t *testing.T) {
	g := newTestGame(t, 4)
	g.Engine().Load(engine.Grid{{2, 2}})

	g.Apply(core.ActionRestart)
	if g.Snapshot().Board[0][0] != 2 || g.Snapshot().Board[0][1] != 2 {
		t.Error("restart during play should be ignored")
	}

	g.Engine().Load(gameOverGrid)
	if g.Snapshot().State != StateGameOver {
		t.Fatalf("State = %s, want %s", g.Snapshot().State, StateGameOver)
	}
	if res := g.Apply(core.ActionLeft); !res.Rejected {
		t.Error("moves after game over should be rejected")
	}

	g.Apply(core.ActionRestart)
	snap := g.Snapshot()
	if snap.State != StatePlaying || snap.Board.TileCount() != 2 || snap.Score != 0 {
		t.Errorf("restart after game over = %+v", snap)
	}
}

func TestGameTracksBest(t *testing.T) {
	g := newTestGame(t, 5)
	g.SetBest(10)
	g.Engine().Load(engine.Grid{{8, 8}, {4}})

	g.Apply(core.ActionLeft)

	if g.Best() < 20 {
		t.Errorf("Best() = %d, want at least the score 20", g.Best())
	}
}

func TestGameWonState(t *testing.T) {
	g := newTestGame(t, 6)
	g.Engine().Load(engine.Grid{{1024, 1024}})

	g.Apply(core.ActionLeft)

	snap := g.Snapshot()
	if snap.State != StateWon || !snap.Won {
		t.Errorf("State = %s, want %s", snap.State, StateWon)
	}
	if st := g.State(); !st.Won || st.GameOver {
		t.Errorf("State() = %+v, want won and still playing", st)
	}
}

func TestRenderBoard(t *testing.T) {
	g := newTestGame(t, 7)
	g.Engine().Load(engine.Grid{
		{2048, 0, 0, 0},
		{0, 16, 0, 0},
	})

	screen := core.NewScreen(80, 24)
	g.Render(screen)
	out := screen.String()

	for _, want := range []string{"2048", "16", "Score: 2064", "┌", "┘", "You reached 2048!"} {
		if !strings.Contains(out, want) {
			t.Errorf("render output missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "GAME OVER") {
		t.Error("game over overlay should not be shown while playing")
	}
}

func TestRenderTileColors(t *testing.T) {
	g := newTestGame(t, 8)
	g.Engine().Load(engine.Grid{{64}})

	screen := core.NewScreen(80, 24)
	g.Render(screen)

	found := false
	for y := 0; y < screen.Height() && !found; y++ {
		row := screen.Row(y)
		if x := strings.Index(row, "64"); x >= 0 && strings.Contains(row, "│") {
			runeX := len([]rune(row[:x]))
			if screen.GetCell(runeX, y).Color != core.ColorOrange {
				t.Errorf("tile 64 color = %d, want %d", screen.GetCell(runeX, y).Color, core.ColorOrange)
			}
			found = true
		}
	}
	if !found {
		t.Error("tile 64 not rendered")
	}
}

func TestRenderGameOver(t *testing.T) {
	g := newTestGame(t, 9)
	g.Engine().Load(gameOverGrid)

	screen := core.NewScreen(80, 24)
	g.Render(screen)
	out := screen.String()

	if !strings.Contains(out, "GAME OVER") || !strings.Contains(out, "Press R to restart") {
		t.Errorf("game over overlay missing:\n%s", out)
	}
}

func TestRenderTooSmall(t *testing.T) {
	g := New()
	g.Reset(core.RuntimeConfig{ScreenW: 20, ScreenH: 10, Seed: 10})

	screen := core.NewScreen(20, 10)
	g.Render(screen)

	if !strings.Contains(screen.String(), "Window too small") {
		t.Errorf("expected too-small message:\n%s", screen.String())
	}
}

func TestDirectionFor(t *testing.T) {
	tests := []struct {
		action core.Action
		dir    engine.Direction
		ok     bool
	}{
		{core.ActionUp, engine.Up, true},
		{core.ActionDown, engine.Down, true},
		{core.ActionLeft, engine.Left, true},
		{core.ActionRight, engine.Right, true},
		{core.ActionRestart, 0, false},
	}

	for _, tt := range tests {
		dir, ok := DirectionFor(tt.action)
		if ok != tt.ok || (ok && dir != tt.dir) {
			t.Errorf("DirectionFor(%s) = %v, %v", tt.action, dir, ok)
		}
	}
}
