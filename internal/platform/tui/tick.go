// Package tui provides the Bubble Tea shell for term2048.
// It handles the terminal UI loop, input routing, and result sharing.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// flashExpiredMsg clears the flash message with the matching id.
type flashExpiredMsg struct {
	id int
}

// bestMsg carries the stored high score.
type bestMsg struct {
	score int
	err   error
}

// sharedMsg reports the outcome of sharing a final result.
type sharedMsg struct {
	text string
	err  error
}

// flashCmd returns a command that expires flash id after d.
func flashCmd(id int, d time.Duration) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg {
		return flashExpiredMsg{id: id}
	})
}
