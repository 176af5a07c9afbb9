package game

import (
	"fmt"
	"strconv"

	"github.com/vovakirdan/term2048/internal/core"
	"github.com/vovakirdan/term2048/internal/engine"
)

const (
	cellWidth  = 7 // Width of each cell (including left border)
	cellHeight = 2 // Height of each cell (including top border)

	boardW    = engine.Size*cellWidth + 1
	boardH    = engine.Size*cellHeight + 1
	hudHeight = 3

	// Minimum size: board + HUD + status line + hint line
	minScreenW = boardW + 2
	minScreenH = hudHeight + boardH + 3
)

// Render draws the game state to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()

	if g.tooSmall {
		g.renderTooSmall(dst)
		return
	}

	boardX := (g.screenW - boardW) / 2
	boardY := hudHeight + max((g.screenH-minScreenH)/2, 0)

	g.renderHUD(dst, boardX, boardY-hudHeight)
	g.renderBoard(dst, boardX, boardY)
	g.renderStatus(dst, boardX, boardY+boardH)

	if g.engine.GameOver() {
		g.renderGameOver(dst, boardX, boardY)
	}
}

// renderTooSmall shows a "window too small" message.
func (g *Game) renderTooSmall(dst *core.Screen) {
	y := g.screenH / 2
	dst.DrawTextCentered(y, "Window too small")
	dst.DrawTextCentered(y+1, fmt.Sprintf("Need %dx%d", minScreenW, minScreenH))
}

// renderHUD draws the title, score and best score.
func (g *Game) renderHUD(dst *core.Screen, boardX, y int) {
	title := "2048"
	dst.DrawTextColored(boardX+(boardW-len(title))/2, y, title, core.ColorDeepOrange)

	st := g.engine.State()
	dst.DrawText(boardX, y+1, fmt.Sprintf("Score: %d", st.Score))

	best := fmt.Sprintf("Best: %d", max(g.best, st.Score))
	dst.DrawText(boardX+boardW-len(best), y+1, best)

	moves := fmt.Sprintf("Moves: %d", st.Moves)
	dst.DrawTextColored(boardX+(boardW-len(moves))/2, y+2, moves, core.ColorGray)
}

// renderBoard draws the 4x4 grid with tiles.
func (g *Game) renderBoard(dst *core.Screen, boardX, boardY int) {
	for y := range engine.Size + 1 {
		for x := range engine.Size + 1 {
			px := boardX + x*cellWidth
			py := boardY + y*cellHeight

			dst.SetColored(px, py, junction(x, y), core.ColorGray)

			if x < engine.Size {
				for i := 1; i < cellWidth; i++ {
					dst.SetColored(px+i, py, '─', core.ColorGray)
				}
			}
			if y < engine.Size {
				for i := 1; i < cellHeight; i++ {
					dst.SetColored(px, py+i, '│', core.ColorGray)
				}
			}
		}
	}

	grid := g.engine.Grid()
	spawned := g.last.Spawned
	for r := range engine.Size {
		for c := range engine.Size {
			cellX := boardX + c*cellWidth + 1
			cellY := boardY + r*cellHeight + 1

			val := grid[r][c]
			if val == 0 {
				dst.SetColored(cellX+(cellWidth-1)/2, cellY, '·', core.ColorGray)
				continue
			}

			color := core.TileColor(val)
			if g.last.Moved && spawned.Row == r && spawned.Col == c {
				color = core.ColorBrightWhite
			}

			valStr := strconv.Itoa(val)
			padLeft := max((cellWidth-1-len(valStr))/2, 0)
			dst.DrawTextColored(cellX+padLeft, cellY, valStr, color)
		}
	}
}

// junction returns the box-drawing rune at grid intersection (x, y).
func junction(x, y int) rune {
	last := engine.Size
	switch {
	case y == 0 && x == 0:
		return '┌'
	case y == 0 && x == last:
		return '┐'
	case y == last && x == 0:
		return '└'
	case y == last && x == last:
		return '┘'
	case y == 0:
		return '┬'
	case y == last:
		return '┴'
	case x == 0:
		return '├'
	case x == last:
		return '┤'
	default:
		return '┼'
	}
}

// renderStatus draws the win banner and control hints below the board.
func (g *Game) renderStatus(dst *core.Screen, boardX, y int) {
	if g.engine.Won() {
		msg := fmt.Sprintf("You reached %d!", g.engine.WinTarget())
		dst.DrawTextColored(boardX+(boardW-len(msg))/2, y+1, msg, core.ColorGreen)
	}

	hint := g.Controls()
	dst.DrawTextColored(max((g.screenW-len(hint))/2, 0), y+2, hint, core.ColorGray)
}

// renderGameOver draws a centered overlay over the board.
func (g *Game) renderGameOver(dst *core.Screen, boardX, boardY int) {
	st := g.engine.State()
	lines := []string{
		"GAME OVER",
		fmt.Sprintf("Score: %d", st.Score),
		fmt.Sprintf("Max tile: %d", st.MaxTile),
		"Press R to restart",
	}

	maxLen := 0
	for _, line := range lines {
		maxLen = max(maxLen, len(line))
	}

	board := core.NewRect(boardX, boardY, boardW, boardH)
	box := board.CenteredIn(maxLen+4, len(lines)+2)

	dst.FillRect(box, ' ', core.ColorDefault)
	dst.DrawBoxColored(box, core.ColorRed)

	centerX, _ := box.Center()
	for i, line := range lines {
		color := core.ColorWhite
		if i == 0 {
			color = core.ColorRed
		}
		dst.DrawTextColored(centerX-len(line)/2, box.Y+1+i, line, color)
	}
}

// Controls returns the control hints for the game.
func (g *Game) Controls() string {
	return "Arrows/WASD: Move | R: Restart | ?: Help | Q: Quit"
}
