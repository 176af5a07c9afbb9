package engine

// Outcome is the result of sliding a grid in one direction.
type Outcome struct {
	Grid  Grid
	Moved bool
	// Score is the sum of all cells after the merge (before any spawn).
	Score int
	// Gained is the total value of tiles created by merges.
	Gained int
}

// RotateGrid rotates the grid 90 degrees clockwise the given number of times.
// times is taken modulo 4, so RotateGrid(RotateGrid(g, k), 4-k) == g.
func RotateGrid(grid Grid, times int) Grid {
	times = ((times % 4) + 4) % 4

	res := grid
	for range times {
		var tmp Grid
		for r := range Size {
			for c := range Size {
				tmp[c][Size-1-r] = res[r][c]
			}
		}
		res = tmp
	}
	return res
}

// MergeLine collapses a line towards index 0.
// Zeros are dropped, then a single left-to-right pass combines equal
// neighbours; a merged tile never merges again in the same pass.
func MergeLine(line Line) Line {
	merged, _ := mergeLine(line)
	return merged
}

// mergeLine is MergeLine plus the total value of merged tiles.
func mergeLine(line Line) (Line, int) {
	filtered := make([]int, 0, Size)
	for _, v := range line {
		if v != 0 {
			filtered = append(filtered, v)
		}
	}

	var result Line
	gained := 0
	pos := 0
	for i := 0; i < len(filtered); {
		if i+1 < len(filtered) && filtered[i] == filtered[i+1] {
			result[pos] = filtered[i] * 2
			gained += result[pos]
			i += 2
		} else {
			result[pos] = filtered[i]
			i++
		}
		pos++
	}

	return result, gained
}

// rotations returns how many clockwise turns normalise dir to a left move,
// and how many turns undo it. Three clockwise turns bring column tops to
// the start of each row, so up uses 3/1 and down uses 1/3. These are
// deliberately the reverse of the 1/3 and 3/1 counts the web version pairs
// with the same rotation, which slide tiles away from the pressed arrow.
func rotations(dir Direction) (before, after int) {
	switch dir {
	case Up:
		return 3, 1
	case Right:
		return 2, 2
	case Down:
		return 1, 3
	default:
		return 0, 0
	}
}

// Move slides the grid in the given direction.
// The input grid is not modified.
func Move(grid Grid, dir Direction) Outcome {
	before, after := rotations(dir)

	work := RotateGrid(grid, before)

	moved := false
	gained := 0
	for r := range Size {
		original := Line(work[r])
		merged, g := mergeLine(original)
		if merged != original {
			moved = true
		}
		gained += g
		work[r] = merged
	}

	out := RotateGrid(work, after)
	return Outcome{
		Grid:   out,
		Moved:  moved,
		Score:  out.Sum(),
		Gained: gained,
	}
}

// Source is the randomness SpawnTile needs. *math/rand.Rand satisfies it.
type Source interface {
	Intn(n int) int
	Float64() float64
}

// DefaultFourProbability is the chance that a spawned tile is a 4.
const DefaultFourProbability = 0.1

// SpawnTile places a new tile in a uniformly chosen empty cell: 4 with
// probability fourProb, otherwise 2. When the grid is full it is returned
// unchanged and ok is false.
func SpawnTile(grid Grid, rng Source, fourProb float64) (out Grid, ok bool) {
	empty := grid.EmptyCells()
	if len(empty) == 0 {
		return grid, false
	}

	cell := empty[rng.Intn(len(empty))]

	value := 2
	if rng.Float64() < fourProb {
		value = 4
	}

	out = grid
	out[cell.Row][cell.Col] = value
	return out, true
}

// HasPossibleMerge reports whether any two horizontally or vertically
// adjacent cells hold the same value.
func HasPossibleMerge(grid Grid) bool {
	for r := range Size {
		for c := range Size {
			val := grid[r][c]
			if c+1 < Size && grid[r][c+1] == val {
				return true
			}
			if r+1 < Size && grid[r+1][c] == val {
				return true
			}
		}
	}
	return false
}

// IsGameOver reports whether the grid is full and no merge is possible.
func IsGameOver(grid Grid) bool {
	return !grid.HasEmpty() && !HasPossibleMerge(grid)
}

// HasWon reports whether any cell holds WinTile.
func HasWon(grid Grid) bool {
	for r := range Size {
		for c := range Size {
			if grid[r][c] == WinTile {
				return true
			}
		}
	}
	return false
}

// Reached reports whether any cell is at least target.
func Reached(grid Grid, target int) bool {
	return grid.MaxTile() >= target
}
