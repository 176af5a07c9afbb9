package core

import "testing"

func TestRectCenteredIn(t *testing.T) {
	outer := NewRect(0, 0, 80, 24)
	inner := outer.CenteredIn(21, 9)

	if inner.X != 29 || inner.Y != 7 {
		t.Errorf("CenteredIn origin = (%d, %d), expected (29, 7)", inner.X, inner.Y)
	}
	if inner.W != 21 || inner.H != 9 {
		t.Errorf("CenteredIn size = %dx%d, expected 21x9", inner.W, inner.H)
	}

	cx, cy := outer.Center()
	if cx != 40 || cy != 12 {
		t.Errorf("Center() = (%d, %d), expected (40, 12)", cx, cy)
	}
}

func TestTileColor(t *testing.T) {
	tests := []struct {
		value    int
		expected Color
	}{
		{0, ColorGray},
		{2, ColorYellowLight},
		{4, ColorYellowLight},
		{8, ColorYellow},
		{16, ColorGold},
		{32, ColorAmber},
		{64, ColorOrange},
		{128, ColorDeepOrange},
		{2048, ColorDeepOrange},
	}

	for _, tc := range tests {
		if got := TileColor(tc.value); got != tc.expected {
			t.Errorf("TileColor(%d) = %d, expected %d", tc.value, got, tc.expected)
		}
	}
}
