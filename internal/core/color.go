package core

// Color represents a foreground color for a screen cell.
// Uses ANSI 256-color codes for terminal compatibility.
type Color uint8

// Predefined colors for board elements.
const (
	ColorDefault Color = iota
	ColorGray
	ColorWhite
	ColorRed
	ColorGreen
	ColorYellowLight // 2, 4
	ColorYellow      // 8
	ColorGold        // 16
	ColorAmber       // 32
	ColorOrange      // 64
	ColorDeepOrange  // 128 and up
	ColorBrightWhite
)

// TileColor returns the color bucket for a tile value. Empty cells are gray.
func TileColor(value int) Color {
	switch {
	case value == 0:
		return ColorGray
	case value <= 4:
		return ColorYellowLight
	case value <= 8:
		return ColorYellow
	case value <= 16:
		return ColorGold
	case value <= 32:
		return ColorAmber
	case value <= 64:
		return ColorOrange
	default:
		return ColorDeepOrange
	}
}
