// Package engine implements the 2048 move engine: grid rotation, line
// merging, tile spawning and terminal-state detection.
//
// The free functions are pure and operate on Grid values. Engine owns a
// single game's grid and applies the move -> spawn -> status sequence.
package engine

import (
	"fmt"
	"strings"
)

// Size is the board dimension.
const Size = 4

// WinTile is the tile value that marks a won game.
const WinTile = 2048

// Line is a single row of the grid.
type Line [Size]int

// Grid is the 4x4 board. Zero cells are empty.
type Grid [Size][Size]int

// Direction represents a move direction.
type Direction int

const (
	Up Direction = iota
	Down
	Left
	Right
)

// Directions lists all directions in a stable order.
var Directions = []Direction{Up, Down, Left, Right}

// String returns the lowercase name of the direction.
func (d Direction) String() string {
	switch d {
	case Up:
		return "up"
	case Down:
		return "down"
	case Left:
		return "left"
	case Right:
		return "right"
	default:
		return "unknown"
	}
}

// ParseDirection parses "up", "down", "left" or "right".
// Unrecognized input returns false.
func ParseDirection(s string) (Direction, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "up":
		return Up, true
	case "down":
		return Down, true
	case "left":
		return Left, true
	case "right":
		return Right, true
	}
	return 0, false
}

// Cell is a grid coordinate.
type Cell struct {
	Row, Col int
}

// EmptyCells returns the coordinates of all empty cells in row-major order.
func (g Grid) EmptyCells() []Cell {
	var cells []Cell
	for r := range Size {
		for c := range Size {
			if g[r][c] == 0 {
				cells = append(cells, Cell{Row: r, Col: c})
			}
		}
	}
	return cells
}

// HasEmpty reports whether any cell is empty.
func (g Grid) HasEmpty() bool {
	for r := range Size {
		for c := range Size {
			if g[r][c] == 0 {
				return true
			}
		}
	}
	return false
}

// Sum returns the sum of all cell values.
func (g Grid) Sum() int {
	total := 0
	for r := range Size {
		for c := range Size {
			total += g[r][c]
		}
	}
	return total
}

// MaxTile returns the highest tile on the board.
func (g Grid) MaxTile() int {
	maxVal := 0
	for r := range Size {
		for c := range Size {
			maxVal = max(maxVal, g[r][c])
		}
	}
	return maxVal
}

// TileCount returns the number of non-empty cells.
func (g Grid) TileCount() int {
	n := 0
	for r := range Size {
		for c := range Size {
			if g[r][c] != 0 {
				n++
			}
		}
	}
	return n
}

// String renders the grid as rows of right-aligned numbers, with "." for
// empty cells.
func (g Grid) String() string {
	var sb strings.Builder
	for r := range Size {
		for c := range Size {
			if c > 0 {
				sb.WriteByte(' ')
			}
			if g[r][c] == 0 {
				sb.WriteString(fmt.Sprintf("%5s", "."))
				continue
			}
			sb.WriteString(fmt.Sprintf("%5d", g[r][c]))
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

// IsPowerOfTwo reports whether n is a power of two >= 2.
func IsPowerOfTwo(n int) bool {
	return n >= 2 && n&(n-1) == 0
}
